package calc

import (
	"strconv"

	"poolcost/core/types"
)

// CustomFeatures prices free-form entries up to the configured limit.
// Negative entries are price reductions.
func CustomFeatures(c *Context) []types.LineItem {
	var out lines
	limit := c.Rates.CustomFeatures.MaxEntries
	for i, f := range c.Spec.CustomFeatures {
		if limit > 0 && i >= limit {
			c.Warn(types.WarnCustomFeatureLimit, "custom feature %q dropped: only %d entries are priced", featureName(f, i), limit)
			continue
		}
		out.flat(featureName(f, i), f.LaborCost+f.MaterialCost)
	}
	return out.items()
}

// NegativeCustomFeatures is the absolute size of every priced reduction
func NegativeCustomFeatures(spec *types.Specification, limit int) float64 {
	total := 0.0
	for i, f := range spec.CustomFeatures {
		if limit > 0 && i >= limit {
			break
		}
		if v := f.LaborCost + f.MaterialCost; v < 0 {
			total -= v
		}
	}
	return total
}

func featureName(f types.CustomFeature, i int) string {
	if f.Name != "" {
		return f.Name
	}
	return "Custom feature " + strconv.Itoa(i+1)
}
