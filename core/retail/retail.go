// Package retail turns the cost of goods into a customer price with
// commissions, fees and gross margin.
package retail

import (
	"fmt"

	"github.com/shopspring/decimal"

	"poolcost/core/calc"
	"poolcost/core/pricing"
	"poolcost/core/types"
)

var hundred = decimal.NewFromInt(100)

// CeilTo rounds v up to the next multiple of step. A step of zero or less
// leaves v unchanged.
func CeilTo(v decimal.Decimal, step float64) decimal.Decimal {
	if step <= 0 {
		return v
	}
	s := decimal.NewFromFloat(step)
	return v.Div(s).Ceil().Mul(s)
}

// BaseRetail marks COGS up to the target margin
func BaseRetail(cogs decimal.Decimal, m pricing.Markup) decimal.Decimal {
	if !cogs.IsPositive() || m.TargetMargin <= 0 {
		return decimal.Zero
	}
	overhead := m.OverheadMultiplier
	if overhead <= 0 {
		overhead = 1
	}
	price := cogs.Mul(decimal.NewFromFloat(overhead)).Div(decimal.NewFromFloat(m.TargetMargin))
	return CeilTo(price, m.RoundTo)
}

// Finalize prices the breakdown. The breakdown must already carry its
// discounts. Warnings are advisory.
func Finalize(b *types.Breakdown, r *pricing.Rates, spec *types.Specification) (types.PricingResult, []types.Warning) {
	m := r.Markup
	cogs := b.GrandTotal

	res := types.PricingResult{
		TotalCOGS:              cogs,
		BaseRetailPrice:        BaseRetail(cogs, m),
		G3UpgradeCost:          decimal.Zero,
		ManualAdjustments:      decimal.NewFromFloat(spec.Adjustments.Net()),
		DiscountTotal:          b.DiscountTotal(),
		DigCommissionRate:      decimal.NewFromFloat(m.DigCommissionRate),
		AdminFeeRate:           decimal.NewFromFloat(m.AdminFeeRate),
		CloseoutCommissionRate: decimal.NewFromFloat(m.CloseoutCommissionRate),
	}
	if spec.Pool.HasG3Upgrade {
		res.G3UpgradeCost = decimal.NewFromFloat(m.G3UpgradeCost)
	}
	res.RetailPrice = res.BaseRetailPrice.Add(res.G3UpgradeCost).Add(res.ManualAdjustments)

	res.DigCommission = res.RetailPrice.Mul(res.DigCommissionRate).Round(2)
	res.AdminFee = res.RetailPrice.Mul(res.AdminFeeRate).Round(2)
	res.CloseoutCommission = res.RetailPrice.Mul(res.CloseoutCommissionRate).Round(2)

	fees := res.DigCommission.Add(res.AdminFee).Add(res.CloseoutCommission)
	res.GrossProfit = res.RetailPrice.Sub(cogs).Sub(fees)
	res.GrossProfitMargin = decimal.Zero
	if !res.RetailPrice.IsZero() {
		res.GrossProfitMargin = res.GrossProfit.Div(res.RetailPrice).Mul(hundred).Round(2)
	}

	var warnings []types.Warning
	negatives := decimal.NewFromFloat(spec.Adjustments.Negatives() +
		calc.NegativeCustomFeatures(spec, r.CustomFeatures.MaxEntries))
	limit := res.RetailPrice.Mul(decimal.NewFromFloat(m.NegativeAdjustmentWarnRatio))
	if negatives.IsPositive() && res.RetailPrice.IsPositive() && negatives.GreaterThan(limit) {
		pct := negatives.Div(res.RetailPrice).Mul(hundred).Round(1)
		warnings = append(warnings, types.Warning{
			Code:    types.WarnNegativeAdjustments,
			Message: fmt.Sprintf("negative adjustments are %s%% of the retail price", pct),
		})
	}
	return res, warnings
}
