package pricing

import (
	"sort"
	"strconv"

	"poolcost/internal/errors"
)

// RBBHeights are the raised-bond-beam height tiers in inches
var RBBHeights = []int{6, 12, 18, 24, 30, 36}

// HeightKey is the rate-table key of an RBB height tier
func HeightKey(height int) string {
	return strconv.Itoa(height)
}

// Validate rejects rate tables calculation cannot trust. These are
// configuration errors, not user input errors.
func Validate(r *Rates) error {
	m := r.Markup
	if m.TargetMargin <= 0 || m.TargetMargin > 1 {
		return errors.RateTable("markup.targetMargin must be in (0, 1], got %v", m.TargetMargin)
	}
	if m.OverheadMultiplier <= 0 {
		return errors.RateTable("markup.overheadMultiplier must be positive, got %v", m.OverheadMultiplier)
	}
	for name, rate := range map[string]float64{
		"markup.roundTo":                m.RoundTo,
		"markup.digCommissionRate":      m.DigCommissionRate,
		"markup.adminFeeRate":           m.AdminFeeRate,
		"markup.closeoutCommissionRate": m.CloseoutCommissionRate,
		"markup.salesTaxRate":           m.SalesTaxRate,
		"shotcrete.material.taxRate":    r.Shotcrete.Material.TaxRate,
		"equipment.taxRate":             r.Equipment.TaxRate,
		"waterTruck.base":               r.WaterTruck.Base,
	} {
		if rate < 0 {
			return errors.RateTable("%s must not be negative, got %v", name, rate)
		}
	}
	for key, d := range r.PAPDiscountRates {
		if d < 0 || d > 1 {
			return errors.RateTable("papDiscountRates.%s must be in [0, 1], got %v", key, d)
		}
	}
	if r.WaterTruck.LoadSizeGallons <= 0 {
		return errors.RateTable("waterTruck.loadSizeGallons must be positive")
	}

	if len(r.Excavation.BaseRanges) == 0 {
		return errors.RateTable("excavation.baseRanges is empty")
	}
	if !sort.SliceIsSorted(r.Excavation.BaseRanges, func(i, j int) bool {
		return r.Excavation.BaseRanges[i].MaxSqft < r.Excavation.BaseRanges[j].MaxSqft
	}) {
		return errors.RateTable("excavation.baseRanges must be ordered by maxSqft")
	}
	for _, h := range RBBHeights {
		if _, ok := r.Excavation.RBB[HeightKey(h)]; !ok {
			return errors.RateTable("excavation.rbb is missing the %d\" tier", h)
		}
		if _, ok := r.Steel.RBBPerLnft[HeightKey(h)]; !ok {
			return errors.RateTable("steel.rbbPerLnft is missing the %d\" tier", h)
		}
	}

	catalogs := map[string]Catalog{
		"equipment.pumps":           r.Equipment.Pumps,
		"equipment.filters":         r.Equipment.Filters,
		"equipment.cleaners":        r.Equipment.Cleaners,
		"equipment.heaters":         r.Equipment.Heaters,
		"equipment.poolLights":      r.Equipment.PoolLights,
		"equipment.spaLights":       r.Equipment.SpaLights,
		"equipment.automation":      r.Equipment.Automation,
		"equipment.saltSystems":     r.Equipment.SaltSystems,
		"equipment.autoFillSystems": r.Equipment.AutoFillSystems,
		"waterFeatures":             r.WaterFeatures,
		"fiberglass.spaModels":      r.Fiberglass.SpaModels,
		"fiberglass.cranes":         r.Fiberglass.Cranes,
	}
	for name, c := range catalogs {
		if err := validateCatalog(name, c); err != nil {
			return err
		}
	}
	if key := r.Equipment.HeaterFlowUpgradeKey; key != "" && !r.Equipment.Heaters.Has(key) {
		return errors.RateTable("equipment.heaterFlowUpgradeKey %q is not in equipment.heaters", key)
	}

	seen := make(map[string]bool)
	for _, f := range r.Interior.Finishes {
		if f.Key == "" || seen[f.Key] {
			return errors.RateTable("interiorFinish.finishes has an empty or duplicate key %q", f.Key)
		}
		seen[f.Key] = true
	}
	return nil
}

func validateCatalog(name string, c Catalog) error {
	seen := make(map[string]bool, len(c))
	for i, item := range c {
		if item.Key == "" {
			return errors.RateTable("%s[%d] has no key", name, i).WithContext("name", item.Name)
		}
		if item.Key == NoneKey {
			return errors.RateTable("%s[%d] uses the reserved key %q", name, i, NoneKey)
		}
		if seen[item.Key] {
			return errors.RateTable("%s has duplicate key %q", name, item.Key)
		}
		seen[item.Key] = true
		if item.BasePrice < 0 || item.AddCost1 < 0 || item.AddCost2 < 0 {
			return errors.RateTable("%s[%s] has a negative price", name, item.Key)
		}
	}
	return nil
}
