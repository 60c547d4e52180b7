// Package diff compares two estimates of the same proposal line by line.
package diff

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"poolcost/core/engine"
	"poolcost/core/types"
)

// Result is the complete diff between two estimates
type Result struct {
	TotalBefore  decimal.Decimal `json:"totalBefore"`
	TotalAfter   decimal.Decimal `json:"totalAfter"`
	TotalDelta   decimal.Decimal `json:"totalDelta"`
	DeltaPercent decimal.Decimal `json:"deltaPercent"`

	RetailBefore decimal.Decimal `json:"retailBefore"`
	RetailAfter  decimal.Decimal `json:"retailAfter"`
	RetailDelta  decimal.Decimal `json:"retailDelta"`

	// Categories lists only categories whose total moved, in
	// breakdown order
	Categories []CategoryDiff `json:"categories"`

	Added   []*ItemDiff `json:"added"`
	Removed []*ItemDiff `json:"removed"`
	Changed []*ItemDiff `json:"changed"`

	UnchangedCount int `json:"unchangedCount"`

	// RateTableChanged is set when the two sides were priced against
	// different snapshots
	RateTableChanged bool `json:"rateTableChanged"`
}

// CategoryDiff is a category whose total moved
type CategoryDiff struct {
	Category types.Category  `json:"category"`
	Before   decimal.Decimal `json:"before"`
	After    decimal.Decimal `json:"after"`
	Delta    decimal.Decimal `json:"delta"`
}

// ItemDiff describes one line item
type ItemDiff struct {
	Category    types.Category  `json:"category"`
	Description string          `json:"description"`
	ChangeType  ChangeType      `json:"change"`
	Before      decimal.Decimal `json:"before"`
	After       decimal.Decimal `json:"after"`
	Delta       decimal.Decimal `json:"delta"`
}

// ChangeType indicates the type of change
type ChangeType int

const (
	ChangeAdded     ChangeType = iota // line only in the new estimate
	ChangeRemoved   // line only in the old estimate
	ChangeModified  // line total moved
	ChangeUnchanged // no cost change
)

// String returns the change type name
func (c ChangeType) String() string {
	switch c {
	case ChangeAdded:
		return "added"
	case ChangeRemoved:
		return "removed"
	case ChangeModified:
		return "modified"
	case ChangeUnchanged:
		return "unchanged"
	default:
		return "unknown"
	}
}

// MarshalText encodes the change type by name
func (c ChangeType) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText decodes a change type name
func (c *ChangeType) UnmarshalText(b []byte) error {
	for _, t := range []ChangeType{ChangeAdded, ChangeRemoved, ChangeModified, ChangeUnchanged} {
		if t.String() == string(b) {
			*c = t
			return nil
		}
	}
	return fmt.Errorf("unknown change type %q", b)
}

// Differ computes diffs between estimates
type Differ struct {
	// Threshold is the smallest line movement, in dollars, reported as a
	// change
	Threshold decimal.Decimal
}

// NewDiffer creates a differ. A threshold of zero or less reports any
// movement of a cent or more.
func NewDiffer(threshold decimal.Decimal) *Differ {
	if !threshold.IsPositive() {
		threshold = decimal.New(1, -2)
	}
	return &Differ{Threshold: threshold}
}

type lineKey struct {
	category    types.Category
	description string
	occurrence  int
}

// index keys every line by category, description and occurrence so
// repeated descriptions pair up in order
func index(b *types.Breakdown) (map[lineKey]types.LineItem, []lineKey) {
	out := make(map[lineKey]types.LineItem)
	var order []lineKey
	for _, c := range types.Categories {
		seen := make(map[string]int)
		for _, item := range b.Items[c] {
			k := lineKey{c, item.Description, seen[item.Description]}
			seen[item.Description]++
			out[k] = item
			order = append(order, k)
		}
	}
	return out, order
}

// Diff computes the diff between before and after
func (d *Differ) Diff(before, after *engine.Result) *Result {
	res := &Result{
		TotalBefore:      before.TotalCost,
		TotalAfter:       after.TotalCost,
		TotalDelta:       after.TotalCost.Sub(before.TotalCost),
		DeltaPercent:     decimal.Zero,
		RetailBefore:     before.Pricing.RetailPrice,
		RetailAfter:      after.Pricing.RetailPrice,
		RetailDelta:      after.Pricing.RetailPrice.Sub(before.Pricing.RetailPrice),
		Categories:       []CategoryDiff{},
		Added:            []*ItemDiff{},
		Removed:          []*ItemDiff{},
		Changed:          []*ItemDiff{},
		RateTableChanged: before.RateTable.ContentHash != after.RateTable.ContentHash,
	}
	if !before.TotalCost.IsZero() {
		res.DeltaPercent = res.TotalDelta.Div(before.TotalCost).Mul(decimal.NewFromInt(100)).Round(2)
	}

	for _, c := range types.Categories {
		b, a := before.Breakdown.Totals[c], after.Breakdown.Totals[c]
		if b.Equal(a) {
			continue
		}
		res.Categories = append(res.Categories, CategoryDiff{Category: c, Before: b, After: a, Delta: a.Sub(b)})
	}

	beforeItems, beforeOrder := index(before.Breakdown)
	afterItems, afterOrder := index(after.Breakdown)

	for _, k := range afterOrder {
		a := afterItems[k]
		b, existed := beforeItems[k]
		if !existed {
			res.Added = append(res.Added, d.item(k, ChangeAdded, decimal.Zero, a.Total))
			continue
		}
		if a.Total.Sub(b.Total).Abs().LessThan(d.Threshold) {
			res.UnchangedCount++
			continue
		}
		res.Changed = append(res.Changed, d.item(k, ChangeModified, b.Total, a.Total))
	}
	for _, k := range beforeOrder {
		if _, exists := afterItems[k]; !exists {
			res.Removed = append(res.Removed, d.item(k, ChangeRemoved, beforeItems[k].Total, decimal.Zero))
		}
	}
	return res
}

func (d *Differ) item(k lineKey, change ChangeType, before, after decimal.Decimal) *ItemDiff {
	return &ItemDiff{
		Category:    k.category,
		Description: k.description,
		ChangeType:  change,
		Before:      before,
		After:       after,
		Delta:       after.Sub(before),
	}
}

// Summary provides a human-readable summary
func (r *Result) Summary() string {
	var sb strings.Builder

	switch {
	case r.TotalDelta.IsZero():
		sb.WriteString("No cost change\n")
	case r.TotalDelta.IsNegative():
		fmt.Fprintf(&sb, "Cost decreased by $%s (%s%%)\n", r.TotalDelta.Neg().StringFixed(2), r.DeltaPercent.StringFixed(2))
	default:
		fmt.Fprintf(&sb, "Cost increased by $%s (%s%%)\n", r.TotalDelta.StringFixed(2), r.DeltaPercent.StringFixed(2))
	}
	if !r.RetailDelta.IsZero() {
		fmt.Fprintf(&sb, "Retail price moved by $%s\n", r.RetailDelta.StringFixed(2))
	}

	if n := len(r.Added); n > 0 {
		fmt.Fprintf(&sb, "  + %d lines added\n", n)
	}
	if n := len(r.Removed); n > 0 {
		fmt.Fprintf(&sb, "  - %d lines removed\n", n)
	}
	if n := len(r.Changed); n > 0 {
		fmt.Fprintf(&sb, "  ~ %d lines changed\n", n)
	}
	if r.RateTableChanged {
		sb.WriteString("  ! priced against a different rate table\n")
	}
	return sb.String()
}

// TopChanges returns the lines with the largest cost impact
func (r *Result) TopChanges(n int) []*ItemDiff {
	all := make([]*ItemDiff, 0, len(r.Added)+len(r.Removed)+len(r.Changed))
	all = append(all, r.Added...)
	all = append(all, r.Removed...)
	all = append(all, r.Changed...)

	sort.SliceStable(all, func(i, j int) bool {
		return all[i].Delta.Abs().GreaterThan(all[j].Delta.Abs())
	})

	if n > len(all) {
		n = len(all)
	}
	return all[:n]
}
