// Package engine provides the API-primary pricing engine.
// CLI and HTTP are thin wrappers around this package.
package engine

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"poolcost/core/calc"
	"poolcost/core/cost"
	"poolcost/core/pricing"
	"poolcost/core/retail"
	"poolcost/core/types"
	"poolcost/internal/errors"
	"poolcost/internal/logging"
)

// RateTableRef identifies the snapshot an estimate was priced against
type RateTableRef struct {
	ID          string `json:"id,omitempty"`
	FranchiseID string `json:"franchiseId,omitempty"`
	Name        string `json:"name,omitempty"`
	Version     string `json:"version,omitempty"`
	ContentHash string `json:"contentHash"`
}

// Result is the complete output of one calculation
type Result struct {
	Breakdown *types.Breakdown    `json:"costBreakdown"`
	Pricing   types.PricingResult `json:"pricing"`
	Subtotal  decimal.Decimal     `json:"subtotal"`
	TaxRate   decimal.Decimal     `json:"taxRate"`
	TaxAmount decimal.Decimal     `json:"taxAmount"`
	TotalCost decimal.Decimal     `json:"totalCost"`
	Geometry  calc.Geometry       `json:"geometry"`
	Warnings  []types.Warning     `json:"warnings,omitempty"`
	RateTable RateTableRef        `json:"rateTable"`

	// InputHash fingerprints the specification and discounts
	InputHash string `json:"inputHash"`
}

// Calculate prices spec against table. It keeps no state between calls
// and never mutates its inputs. Only nil arguments are errors.
func Calculate(spec *types.Specification, table *pricing.Table, discounts types.PAPDiscounts) (*Result, error) {
	if spec == nil {
		return nil, errors.New(errors.TypeInput, "specification is required")
	}
	if table == nil {
		return nil, errors.New(errors.TypeRateTable, "rate table is required")
	}
	start := time.Now()
	rates := table.Rates()

	out := calc.Run(spec, rates)
	breakdown, err := cost.Aggregate(out.Items)
	if err != nil {
		return nil, err
	}
	warnings := append([]types.Warning{}, out.Warnings...)
	warnings = append(warnings, cost.ApplyDiscounts(breakdown, discounts)...)
	if err := breakdown.Verify(); err != nil {
		return nil, errors.Wrap(errors.TypeInternal, "breakdown invariant broken", err)
	}

	priced, retailWarnings := retail.Finalize(breakdown, rates, spec)
	warnings = append(warnings, retailWarnings...)

	meta := table.Meta()
	res := &Result{
		Breakdown: breakdown,
		Pricing:   priced,
		Subtotal:  breakdown.GrandTotal,
		TaxRate:   decimal.NewFromFloat(rates.Markup.SalesTaxRate),
		Geometry:  out.Geometry,
		Warnings:  warnings,
		RateTable: RateTableRef{
			ID:          meta.ID,
			FranchiseID: meta.FranchiseID,
			Name:        meta.Name,
			Version:     meta.Version,
			ContentHash: table.Hash(),
		},
		InputHash: inputHash(spec, discounts),
	}
	res.TaxAmount = res.Subtotal.Mul(res.TaxRate).Round(2)
	res.TotalCost = res.Subtotal.Add(res.TaxAmount)

	logging.Debug("estimate calculated",
		zap.Int("categories", len(types.Categories)),
		zap.Int("items", breakdown.ItemCount()),
		zap.Int("warnings", len(warnings)),
		zap.String("total", res.TotalCost.StringFixed(2)),
		zap.Duration("duration", time.Since(start)))
	return res, nil
}

// DefaultDiscounts returns the discount map carried by the rate table
func DefaultDiscounts(table *pricing.Table) types.PAPDiscounts {
	out := make(types.PAPDiscounts, len(table.Rates().PAPDiscountRates))
	for k, v := range table.Rates().PAPDiscountRates {
		out[types.DiscountKey(k)] = v
	}
	return out
}

func inputHash(spec *types.Specification, discounts types.PAPDiscounts) string {
	// encoding/json sorts map keys, so the encoding is canonical
	data, err := json.Marshal(struct {
		Spec      *types.Specification `json:"spec"`
		Discounts types.PAPDiscounts   `json:"discounts"`
	}{spec, discounts})
	if err != nil {
		return ""
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// Config configures the engine wrapper
type Config struct {
	// UseTableDiscounts applies the table's discount map when a request
	// carries none
	UseTableDiscounts bool
}

// Engine resolves rate tables through a provider and calculates
type Engine struct {
	provider *pricing.Provider
	config   Config
}

// New creates an engine
func New(provider *pricing.Provider, config Config) *Engine {
	if provider == nil {
		provider = pricing.NewProvider(nil, nil)
	}
	return &Engine{provider: provider, config: config}
}

// Provider exposes the rate table provider
func (e *Engine) Provider() *pricing.Provider {
	return e.provider
}

// Request is the input to Estimate
type Request struct {
	Specification *types.Specification `json:"specification"`
	Discounts     types.PAPDiscounts   `json:"papDiscounts,omitempty"`
	FranchiseID   string               `json:"franchiseId,omitempty"`
	RateTableID   string               `json:"rateTableId,omitempty"`

	// RateOverrides are merged onto the selected table for this request only
	RateOverrides map[string]any `json:"rateOverrides,omitempty"`
}

// Estimate selects the rate table named by the request and calculates
func (e *Engine) Estimate(ctx context.Context, req *Request) (*Result, error) {
	if req == nil || req.Specification == nil {
		return nil, errors.New(errors.TypeInput, "specification is required")
	}
	franchise := req.FranchiseID
	if franchise == "" {
		franchise = req.Specification.Customer.FranchiseID
	}
	id := req.RateTableID
	if id == "" {
		id = req.Specification.Customer.RateTableID
	}

	table, err := e.provider.Select(ctx, franchise, id)
	if err != nil {
		return nil, err
	}
	if len(req.RateOverrides) > 0 {
		if table, err = table.With(req.RateOverrides); err != nil {
			return nil, err
		}
	}

	discounts := req.Discounts
	if discounts == nil && e.config.UseTableDiscounts {
		discounts = DefaultDiscounts(table)
	}
	return Calculate(req.Specification, table, discounts)
}
