package diff

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"poolcost/core/engine"
	"poolcost/core/pricing"
	"poolcost/core/types"
)

func estimate(t *testing.T, spec *types.Specification) *engine.Result {
	t.Helper()
	res, err := engine.Calculate(spec, pricing.DefaultTable(), nil)
	if err != nil {
		t.Fatalf("Calculate: %v", err)
	}
	return res
}

func baseSpec() *types.Specification {
	return &types.Specification{
		Pool: types.Pool{
			Type:         types.PoolGunite,
			Perimeter:    90,
			SurfaceArea:  400,
			ShallowDepth: 4,
			EndDepth:     6,
			SpaType:      types.SpaNone,
		},
	}
}

func TestDiffIdentical(t *testing.T) {
	a, b := estimate(t, baseSpec()), estimate(t, baseSpec())
	res := NewDiffer(decimal.Zero).Diff(a, b)
	if len(res.Added)+len(res.Removed)+len(res.Changed) != 0 || len(res.Categories) != 0 {
		t.Errorf("identical estimates differ: %+v", res)
	}
	if res.UnchangedCount != a.Breakdown.ItemCount() {
		t.Errorf("unchanged = %d, want %d", res.UnchangedCount, a.Breakdown.ItemCount())
	}
	if !strings.HasPrefix(res.Summary(), "No cost change") {
		t.Errorf("summary: %q", res.Summary())
	}
}

// TestDiffAddedFeature proves a new custom feature shows as added lines
func TestDiffAddedFeature(t *testing.T) {
	head := baseSpec()
	head.CustomFeatures = []types.CustomFeature{{Name: "Fire bowl", LaborCost: 300, MaterialCost: 900}}

	res := NewDiffer(decimal.Zero).Diff(estimate(t, baseSpec()), estimate(t, head))
	if len(res.Added) == 0 {
		t.Fatal("expected added lines")
	}
	for _, item := range res.Added {
		if item.ChangeType != ChangeAdded || item.Category != types.CategoryCustomFeatures {
			t.Errorf("unexpected added line %+v", item)
		}
	}
	if !res.TotalDelta.Equal(decimal.NewFromInt(1200)) {
		t.Errorf("total delta = %s, want 1200", res.TotalDelta)
	}
	if len(res.Categories) != 1 || res.Categories[0].Category != types.CategoryCustomFeatures {
		t.Errorf("categories = %+v", res.Categories)
	}

	back := NewDiffer(decimal.Zero).Diff(estimate(t, head), estimate(t, baseSpec()))
	if len(back.Removed) != len(res.Added) || !back.TotalDelta.Equal(res.TotalDelta.Neg()) {
		t.Errorf("reverse diff is not symmetric: %+v", back)
	}
	t.Log(res.Summary())
}

func TestDiffThreshold(t *testing.T) {
	head := baseSpec()
	head.Pool.Perimeter = 91

	all := NewDiffer(decimal.Zero).Diff(estimate(t, baseSpec()), estimate(t, head))
	if len(all.Changed) == 0 {
		t.Fatal("perimeter change should move some lines")
	}
	coarse := NewDiffer(decimal.NewFromInt(1_000_000)).Diff(estimate(t, baseSpec()), estimate(t, head))
	if len(coarse.Changed) != 0 {
		t.Errorf("threshold ignored: %d changed", len(coarse.Changed))
	}

	top := all.TopChanges(1)
	for _, c := range all.Changed {
		if c.Delta.Abs().GreaterThan(top[0].Delta.Abs()) {
			t.Errorf("top change %s is not the largest (%s)", top[0].Delta, c.Delta)
		}
	}
	if got := all.TopChanges(1000); len(got) != len(all.Changed) {
		t.Errorf("TopChanges over length returned %d", len(got))
	}
}
