// Package pricing - rate table invariant tests
package pricing

import (
	"testing"

	"github.com/shopspring/decimal"

	"poolcost/core/input"
	"poolcost/internal/errors"
)

// TestDefaultTableIsValid proves the built-in snapshot passes validation
func TestDefaultTableIsValid(t *testing.T) {
	r := Default()
	if err := Validate(&r); err != nil {
		t.Fatalf("built-in rates invalid: %v", err)
	}
	table := DefaultTable()
	if table.Hash() == "" {
		t.Fatal("expected a content hash")
	}
	if DefaultTable().Hash() != table.Hash() {
		t.Error("hash must be deterministic")
	}
}

// TestPartialOverrideKeepsDefaults proves a sparse override never leaves
// a rate undefined
func TestPartialOverrideKeepsDefaults(t *testing.T) {
	doc := []byte(`{"plumbing": {"skimmer": {"overrunPerFt": 30}}, "markup": {"targetMargin": 0.65}}`)
	table, err := Parse(Meta{ID: "t1"}, doc, input.FormatJSON)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	r := table.Rates()

	if r.Plumbing.Skimmer.OverrunPerFt != 30 {
		t.Errorf("override lost: %v", r.Plumbing.Skimmer.OverrunPerFt)
	}
	if r.Plumbing.Skimmer.Threshold != 33 {
		t.Errorf("sibling default lost: threshold = %v", r.Plumbing.Skimmer.Threshold)
	}
	if r.Markup.TargetMargin != 0.65 {
		t.Errorf("targetMargin = %v", r.Markup.TargetMargin)
	}
	if r.Markup.DigCommissionRate != 0.0275 {
		t.Errorf("digCommissionRate default lost: %v", r.Markup.DigCommissionRate)
	}
	if len(r.Equipment.Pumps) != len(Default().Equipment.Pumps) {
		t.Errorf("untouched catalog changed size: %d", len(r.Equipment.Pumps))
	}
}

func TestMergeCatalogByKey(t *testing.T) {
	base := map[string]any{
		"pumps": []any{
			map[string]any{"key": "a", "name": "Pump A", "basePrice": 100.0},
			map[string]any{"key": "b", "name": "Pump B", "basePrice": 200.0},
		},
	}
	override := map[string]any{
		"pumps": []any{
			map[string]any{"key": "b", "basePrice": 250.0},
			map[string]any{"key": "c", "name": "Pump C", "basePrice": 300.0},
		},
	}

	merged := Merge(base, override)
	pumps := merged["pumps"].([]any)
	if len(pumps) != 3 {
		t.Fatalf("expected 3 pumps, got %d", len(pumps))
	}
	b := pumps[1].(map[string]any)
	if b["basePrice"] != 250.0 || b["name"] != "Pump B" {
		t.Errorf("keyed merge wrong: %v", b)
	}
	if pumps[2].(map[string]any)["key"] != "c" {
		t.Errorf("new key not appended: %v", pumps[2])
	}

	// base must be untouched
	if base["pumps"].([]any)[1].(map[string]any)["basePrice"] != 200.0 {
		t.Error("Merge mutated its input")
	}
}

func TestMergeByIndexAndScalars(t *testing.T) {
	base := map[string]any{
		"ranges": []any{
			map[string]any{"maxSqft": 400.0, "price": 2700.0},
			map[string]any{"maxSqft": 500.0, "price": 2775.0},
		},
		"tags": []any{"a", "b"},
		"rate": 1.0,
	}
	override := map[string]any{
		"ranges": []any{map[string]any{"price": 2800.0}},
		"tags":   []any{"c"},
		"rate":   nil,
	}

	merged := Merge(base, override)
	ranges := merged["ranges"].([]any)
	first := ranges[0].(map[string]any)
	if first["maxSqft"] != 400.0 || first["price"] != 2800.0 {
		t.Errorf("index merge wrong: %v", first)
	}
	if len(ranges) != 2 {
		t.Errorf("trailing base entries dropped: %d", len(ranges))
	}
	if tags := merged["tags"].([]any); len(tags) != 1 || tags[0] != "c" {
		t.Errorf("scalar arrays should be replaced: %v", tags)
	}
	if merged["rate"] != 1.0 {
		t.Errorf("null override should keep base: %v", merged["rate"])
	}
}

func TestLookupPaths(t *testing.T) {
	table := DefaultTable()

	tests := []struct {
		name string
		path []string
		def  float64
		want float64
	}{
		{"scalar", []string{"plumbing", "shortStub"}, -1, 550},
		{"nested", []string{"gas", "run", "threshold"}, -1, 25},
		{"map key", []string{"excavation", "rbb", "12"}, -1, 6.5},
		{"array index", []string{"excavation", "baseRanges", "0", "price"}, -1, 2700},
		{"missing", []string{"excavation", "moat"}, 42, 42},
		{"bad index", []string{"excavation", "baseRanges", "99", "price"}, 7, 7},
		{"not a number", []string{"equipment", "heaterFlowUpgradeKey"}, 3, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := table.Float(tt.def, tt.path...); got != tt.want {
				t.Errorf("Float(%v) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}

	if got := table.String("", "equipment", "heaterFlowUpgradeKey"); got != "jandy-400k-versaflo" {
		t.Errorf("String = %q", got)
	}
}

// TestWithReturnsNewSnapshot proves snapshots are never mutated in place
func TestWithReturnsNewSnapshot(t *testing.T) {
	orig := DefaultTable()
	edited, err := orig.With(map[string]any{"permit": map[string]any{"poolOnly": 900.0}})
	if err != nil {
		t.Fatalf("With: %v", err)
	}
	if orig.Rates().Permit.PoolOnly != 850 {
		t.Errorf("original mutated: %v", orig.Rates().Permit.PoolOnly)
	}
	if edited.Rates().Permit.PoolOnly != 900 {
		t.Errorf("edit lost: %v", edited.Rates().Permit.PoolOnly)
	}
	if orig.Hash() == edited.Hash() {
		t.Error("different content must hash differently")
	}
}

func TestValidateRejectsMalformedTables(t *testing.T) {
	tests := []struct {
		name     string
		override map[string]any
	}{
		{"zero margin", map[string]any{"markup": map[string]any{"targetMargin": 0.0}}},
		{"margin over one", map[string]any{"markup": map[string]any{"targetMargin": 1.5}}},
		{"discount over one", map[string]any{"papDiscountRates": map[string]any{"steel": 1.2}}},
		{"reserved key", map[string]any{"waterFeatures": []any{
			map[string]any{"key": "none", "name": "Nothing", "basePrice": 0.0},
		}}},
		{"unsorted ranges", map[string]any{"excavation": map[string]any{"baseRanges": []any{
			map[string]any{"maxSqft": 900.0},
			map[string]any{"maxSqft": 400.0},
		}}}},
		{"missing upgrade heater", map[string]any{"equipment": map[string]any{"heaterFlowUpgradeKey": "nope"}}},
		{"bad truck", map[string]any{"waterTruck": map[string]any{"loadSizeGallons": 0.0}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Build(Meta{}, tt.override)
			if !errors.IsType(err, errors.TypeRateTable) {
				t.Fatalf("expected rate table error, got %v", err)
			}
			t.Logf("rejected: %v", err)
		})
	}
}

func TestNewTableRejectsDuplicateKeys(t *testing.T) {
	r := Default()
	r.Equipment.Filters = append(r.Equipment.Filters, CatalogItem{Key: "de-60", Name: "Duplicate DE"})
	if _, err := NewTable(Meta{}, r); !errors.IsType(err, errors.TypeRateTable) {
		t.Fatalf("expected rate table error, got %v", err)
	}
}

func TestParseRejectsGarbage(t *testing.T) {
	_, err := Parse(Meta{}, []byte(`{"markup": `), input.FormatJSON)
	if err == nil {
		t.Fatal("expected error for truncated document")
	}
}

// TestCatalogLookupDegradesToNone proves unknown names never fail
func TestCatalogLookupDegradesToNone(t *testing.T) {
	pumps := Default().Equipment.Pumps

	if item := pumps.Find("does-not-exist"); !item.IsNone() {
		t.Errorf("expected none, got %+v", item)
	}
	if !pumps.Find("").IsNone() || !pumps.Find(NoneKey).IsNone() {
		t.Error("empty and none keys must resolve to none")
	}
	if !pumps.Find("missing").UnitPrice(1.1).IsZero() {
		t.Error("none must cost nothing")
	}

	byName := pumps.Resolve("  jandy 1.85hp variable PUMP ")
	if byName.Key != "jandy-vs-185" {
		t.Errorf("name shim failed: %+v", byName)
	}
	if pumps.Resolve("jandy-vs-185").Name != "Jandy 1.85HP Variable Pump" {
		t.Error("key lookup failed")
	}
}

func TestUnitPrice(t *testing.T) {
	tests := []struct {
		name     string
		item     CatalogItem
		overhead float64
		want     string
	}{
		{"base only", CatalogItem{Key: "x", BasePrice: 1000}, 1, "1000"},
		{"add costs", CatalogItem{Key: "x", BasePrice: 1000, AddCost1: 50, AddCost2: 25}, 1, "1075"},
		{"percent increase", CatalogItem{Key: "x", BasePrice: 2000, PercentIncrease: 15}, 1, "2300"},
		{"pump overhead", CatalogItem{Key: "x", BasePrice: 2000}, 1.1, "2200"},
		{"both", CatalogItem{Key: "x", BasePrice: 1000, PercentIncrease: 10}, 1.1, "1210"},
		{"none", None, 1.1, "0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			want := decimal.RequireFromString(tt.want)
			if got := tt.item.UnitPrice(tt.overhead); !got.Equal(want) {
				t.Errorf("UnitPrice = %s, want %s", got, want)
			}
		})
	}
}

func TestSheerDescentsSortedBySpan(t *testing.T) {
	c := Catalog{
		{Key: "s-48", Category: GroupSheerDescent, SpanInches: 48},
		{Key: "jet", Category: GroupJet},
		{Key: "s-12", Category: GroupSheerDescent, SpanInches: 12},
		{Key: "s-24", Category: GroupSheerDescent, SpanInches: 24},
	}
	got := c.SheerDescents()
	if len(got) != 3 || got[0].Key != "s-12" || got[1].Key != "s-24" || got[2].Key != "s-48" {
		t.Errorf("unexpected order: %+v", got)
	}

	woks := Default().WaterFeatures.Woks(WokFireOnly)
	for _, w := range woks {
		if w.Category != GroupWokFire {
			t.Errorf("fire-only wok list contains %s", w.Key)
		}
	}
	if len(woks) == 0 {
		t.Error("expected fire-only woks in built-in catalog")
	}
}
