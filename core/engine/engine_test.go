package engine

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"

	"poolcost/core/pricing"
	"poolcost/core/types"
	"poolcost/internal/errors"
)

func poolSpec() *types.Specification {
	return &types.Specification{
		Pool: types.Pool{
			Type:         types.PoolGunite,
			Perimeter:    90,
			SurfaceArea:  400,
			ShallowDepth: 4,
			EndDepth:     6,
			SpaType:      types.SpaNone,
		},
		CustomFeatures: []types.CustomFeature{{Name: "Fire bowl", LaborCost: 300, MaterialCost: 900}},
	}
}

// TestCalculateIsDeterministic proves identical inputs give identical results
func TestCalculateIsDeterministic(t *testing.T) {
	table := pricing.DefaultTable()
	discounts := types.PAPDiscounts{types.DiscountExcavation: 0.1, types.DiscountSteel: 0.05}

	first, err := Calculate(poolSpec(), table, discounts)
	if err != nil {
		t.Fatalf("Calculate: %v", err)
	}
	second, err := Calculate(poolSpec(), table, discounts)
	if err != nil {
		t.Fatalf("Calculate: %v", err)
	}
	a, _ := json.Marshal(first)
	b, _ := json.Marshal(second)
	if string(a) != string(b) {
		t.Error("two runs over the same input differ")
	}
	if first.InputHash == "" || first.InputHash != second.InputHash {
		t.Errorf("input hash unstable: %q vs %q", first.InputHash, second.InputHash)
	}

	other, _ := Calculate(poolSpec(), table, nil)
	if other.InputHash == first.InputHash {
		t.Error("discounts must change the input hash")
	}
}

func TestCalculateInvariants(t *testing.T) {
	res, err := Calculate(poolSpec(), pricing.DefaultTable(), nil)
	if err != nil {
		t.Fatalf("Calculate: %v", err)
	}
	if len(res.Breakdown.Items) != len(types.Categories) {
		t.Errorf("expected %d categories, got %d", len(types.Categories), len(res.Breakdown.Items))
	}
	if err := res.Breakdown.Verify(); err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if !res.Subtotal.Equal(res.Breakdown.GrandTotal) {
		t.Errorf("subtotal %s != grand total %s", res.Subtotal, res.Breakdown.GrandTotal)
	}
	if !res.TotalCost.Equal(res.Subtotal.Add(res.TaxAmount)) {
		t.Errorf("total %s != subtotal + tax", res.TotalCost)
	}
	if !res.Pricing.TotalCOGS.Equal(res.Subtotal) {
		t.Errorf("COGS %s != subtotal %s", res.Pricing.TotalCOGS, res.Subtotal)
	}
	if !res.Pricing.RetailPrice.GreaterThan(res.Subtotal) {
		t.Errorf("retail %s should exceed cost %s", res.Pricing.RetailPrice, res.Subtotal)
	}
	if res.RateTable.ContentHash != pricing.DefaultTable().Hash() {
		t.Error("result should reference the table it was priced with")
	}
	t.Logf("subtotal %s retail %s margin %s%%", res.Subtotal, res.Pricing.RetailPrice, res.Pricing.GrossProfitMargin)
}

func TestCalculateDoesNotMutateInputs(t *testing.T) {
	spec := poolSpec()
	discounts := types.PAPDiscounts{types.DiscountPlumbing: 0.2}
	before, _ := json.Marshal(spec)

	if _, err := Calculate(spec, pricing.DefaultTable(), discounts); err != nil {
		t.Fatalf("Calculate: %v", err)
	}
	after, _ := json.Marshal(spec)
	if string(before) != string(after) {
		t.Error("specification was modified")
	}
	if len(discounts) != 1 || discounts[types.DiscountPlumbing] != 0.2 {
		t.Errorf("discounts were modified: %v", discounts)
	}
}

func TestCalculateRejectsNilInputs(t *testing.T) {
	if _, err := Calculate(nil, pricing.DefaultTable(), nil); !errors.IsType(err, errors.TypeInput) {
		t.Errorf("nil spec: got %v", err)
	}
	if _, err := Calculate(poolSpec(), nil, nil); !errors.IsType(err, errors.TypeRateTable) {
		t.Errorf("nil table: got %v", err)
	}
}

func TestEmptySpecificationCostsNothing(t *testing.T) {
	res, err := Calculate(&types.Specification{}, pricing.DefaultTable(), nil)
	if err != nil {
		t.Fatalf("Calculate: %v", err)
	}
	if !res.TotalCost.IsZero() || !res.Pricing.RetailPrice.IsZero() {
		t.Errorf("empty spec priced at %s / %s", res.TotalCost, res.Pricing.RetailPrice)
	}
}

// TestDiscountsReduceCost proves PAP discounts lower COGS and are reported
func TestDiscountsReduceCost(t *testing.T) {
	table := pricing.DefaultTable()
	full, _ := Calculate(poolSpec(), table, nil)
	discounted, err := Calculate(poolSpec(), table, DefaultDiscounts(table))
	if err != nil {
		t.Fatalf("Calculate: %v", err)
	}
	if !discounted.Subtotal.LessThan(full.Subtotal) {
		t.Errorf("discounted %s should be below %s", discounted.Subtotal, full.Subtotal)
	}
	saved := full.Subtotal.Sub(discounted.Subtotal)
	if !discounted.Pricing.DiscountTotal.Neg().Equal(saved) {
		t.Errorf("discount total %s, cost difference %s", discounted.Pricing.DiscountTotal, saved)
	}
}

func TestSalesTax(t *testing.T) {
	table, err := pricing.DefaultTable().With(map[string]any{
		"markup": map[string]any{"salesTaxRate": 0.08},
	})
	if err != nil {
		t.Fatalf("With: %v", err)
	}
	res, err := Calculate(poolSpec(), table, nil)
	if err != nil {
		t.Fatalf("Calculate: %v", err)
	}
	want := res.Subtotal.Mul(decimal.RequireFromString("0.08")).Round(2)
	if !res.TaxAmount.Equal(want) {
		t.Errorf("tax = %s, want %s", res.TaxAmount, want)
	}
	if !res.TotalCost.Equal(res.Subtotal.Add(want)) {
		t.Errorf("total = %s", res.TotalCost)
	}
}

type recordStore struct {
	records []pricing.Record
}

func (s *recordStore) List(_ context.Context, franchiseID string) ([]pricing.Record, error) {
	return s.records, nil
}

func (s *recordStore) Get(_ context.Context, franchiseID, id string) (*pricing.Record, error) {
	for i := range s.records {
		if s.records[i].ID == id && s.records[i].FranchiseID == franchiseID {
			return &s.records[i], nil
		}
	}
	return nil, errors.NotFound("rate table", id)
}

func (s *recordStore) GetDefault(_ context.Context, franchiseID string) (*pricing.Record, error) {
	for i := range s.records {
		if s.records[i].IsDefault && s.records[i].FranchiseID == franchiseID {
			return &s.records[i], nil
		}
	}
	return nil, errors.NotFound("default rate table", franchiseID)
}

func (s *recordStore) Save(_ context.Context, rec *pricing.Record) error {
	s.records = append(s.records, *rec)
	return nil
}

func permitTotal(res *Result) decimal.Decimal {
	return res.Breakdown.Totals[types.CategoryPermit]
}

func TestEstimateSelectsTable(t *testing.T) {
	store := &recordStore{}
	provider := pricing.NewProvider(store, nil)
	ctx := context.Background()

	table, err := provider.Publish(ctx, &pricing.Record{
		ID:          "spring",
		FranchiseID: "f1",
		Name:        "Spring",
		Document:    []byte(`{"permit": {"poolOnly": 1000}}`),
	})
	if err != nil {
		t.Fatalf("Publish: %v", err)
	}

	e := New(provider, Config{})
	builtIn, err := e.Estimate(ctx, &Request{Specification: poolSpec()})
	if err != nil {
		t.Fatalf("Estimate: %v", err)
	}
	if !permitTotal(builtIn).Equal(decimal.NewFromInt(925)) {
		t.Errorf("built-in permit = %s, want 925", permitTotal(builtIn))
	}

	spec := poolSpec()
	spec.Customer.FranchiseID = "f1"
	spec.Customer.RateTableID = "spring"
	selected, err := e.Estimate(ctx, &Request{Specification: spec})
	if err != nil {
		t.Fatalf("Estimate: %v", err)
	}
	if !permitTotal(selected).Equal(decimal.NewFromInt(1075)) {
		t.Errorf("selected permit = %s, want 1075", permitTotal(selected))
	}
	if selected.RateTable.ID != "spring" || selected.RateTable.ContentHash != table.Hash() {
		t.Errorf("wrong table reference: %+v", selected.RateTable)
	}

	_, err = e.Estimate(ctx, &Request{Specification: poolSpec(), FranchiseID: "f1", RateTableID: "missing"})
	if !errors.IsType(err, errors.TypeNotFound) {
		t.Errorf("expected not found, got %v", err)
	}
}

func TestEstimateOverridesAndTableDiscounts(t *testing.T) {
	ctx := context.Background()

	e := New(nil, Config{UseTableDiscounts: true})
	res, err := e.Estimate(ctx, &Request{
		Specification: poolSpec(),
		RateOverrides: map[string]any{"permit": map[string]any{"permitRunner": 125}},
	})
	if err != nil {
		t.Fatalf("Estimate: %v", err)
	}
	if !permitTotal(res).Equal(decimal.NewFromInt(975)) {
		t.Errorf("override permit = %s, want 975", permitTotal(res))
	}
	if !res.Pricing.DiscountTotal.IsNegative() {
		t.Error("table discounts were not applied")
	}
	if res.RateTable.ContentHash == pricing.DefaultTable().Hash() {
		t.Error("overrides must produce a new snapshot")
	}

	plain := New(nil, Config{})
	res, err = plain.Estimate(ctx, &Request{Specification: poolSpec()})
	if err != nil {
		t.Fatalf("Estimate: %v", err)
	}
	if !res.Pricing.DiscountTotal.IsZero() {
		t.Errorf("discounts applied without request: %s", res.Pricing.DiscountTotal)
	}

	if _, err := plain.Estimate(ctx, &Request{}); !errors.IsType(err, errors.TypeInput) {
		t.Errorf("empty request: got %v", err)
	}
}
