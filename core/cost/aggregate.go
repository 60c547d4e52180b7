// Package cost assembles module output into the cost breakdown and
// applies PAP discounts to it.
package cost

import (
	"poolcost/core/types"
	"poolcost/internal/errors"
)

// Aggregate builds a breakdown from per-category items in the fixed
// category order. Categories with no items are still present.
func Aggregate(items map[types.Category][]types.LineItem) (*types.Breakdown, error) {
	b := types.NewBreakdown()
	for c := range items {
		if !c.Valid() {
			return nil, errors.Newf(errors.TypeBreakdown, "unknown category %q", c)
		}
	}
	for _, c := range types.Categories {
		if err := b.Add(c, items[c]...); err != nil {
			return nil, err
		}
	}
	b.Recalculate()
	return b, nil
}
