package calc

import "poolcost/core/types"

// WaterFeatures prices catalog water feature selections
func WaterFeatures(c *Context) []types.LineItem {
	var out lines
	catalog := c.Rates.WaterFeatures
	for _, sel := range c.Spec.WaterFeatures.Selections {
		if sel.Quantity <= 0 {
			continue
		}
		item := catalog.Resolve(sel.Key)
		if item.IsNone() {
			c.Warn(types.WarnUnknownCatalogKey, "water feature %q not in catalog", sel.Key)
			continue
		}
		out.priced(item.Name, sel.Quantity, item.UnitPrice(1))
	}
	return out.items()
}
