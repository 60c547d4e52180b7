package cost

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"poolcost/core/types"
)

// ClampDiscount limits a discount fraction to [0,1]
func ClampDiscount(d float64) float64 {
	switch {
	case d < 0:
		return 0
	case d > 1:
		return 1
	}
	return d
}

// ApplyDiscounts appends a discount line to every category in the scope
// of a positive discount and recomputes totals. Tax and earlier discount
// lines are never discounted. Unknown keys are skipped with a warning.
func ApplyDiscounts(b *types.Breakdown, discounts types.PAPDiscounts) []types.Warning {
	var warnings []types.Warning

	unknown := make([]string, 0)
	for key := range discounts {
		if _, ok := types.DiscountScope[key]; !ok {
			unknown = append(unknown, string(key))
		}
	}
	sort.Strings(unknown)
	for _, key := range unknown {
		warnings = append(warnings, types.Warning{
			Code:    types.WarnUnknownDiscountKey,
			Message: fmt.Sprintf("discount %q ignored: no such discount", key),
		})
	}

	for _, key := range types.DiscountKeys {
		d := ClampDiscount(discounts[key])
		if d == 0 {
			continue
		}
		rate := decimal.NewFromFloat(d)
		for _, c := range types.DiscountScope[key] {
			base := b.DiscountableSubtotal(c)
			if !base.IsPositive() {
				continue
			}
			description := fmt.Sprintf("PAP discount (%s%%)", rate.Shift(2).String())
			amount := base.Mul(rate).Neg()
			line := types.Discount(description, amount)
			if d == 1 {
				// a full discount must cancel sub-cent line totals too
				line.UnitPrice, line.Total = amount, amount
			}
			b.Items[c] = append(b.Items[c], line)
		}
	}

	b.Recalculate()
	return warnings
}
