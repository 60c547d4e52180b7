package calc

import (
	"math"

	"poolcost/core/pricing"
	"poolcost/core/types"
)

// Plans prices plans and engineering
func Plans(c *Context) []types.LineItem {
	var out lines
	if !c.Geo.HasPool {
		return out.items()
	}
	r := c.Rates.Plans
	out.flat("Pool plans & engineering", r.PoolOnly)
	if c.Geo.HasSpa {
		out.flat("Spa plans", r.Spa)
	}
	out.item("Water feature engineering", float64(waterFeatureUnits(c.Spec)), r.PerWaterFeature)
	return out.items()
}

// Layout prices the site layout
func Layout(c *Context) []types.LineItem {
	var out lines
	if !c.Geo.HasPool {
		return out.items()
	}
	r := c.Rates.Layout
	out.flat("Pool layout", r.PoolOnly)
	if c.Geo.HasSpa {
		out.flat("Spa layout", r.Spa)
	}
	if c.Spec.Excavation.HasSiltFencing {
		out.flat("Silt fencing", r.SiltFencing)
	}
	return out.items()
}

// Permit prices the building permit
func Permit(c *Context) []types.LineItem {
	var out lines
	if !c.Geo.HasPool {
		return out.items()
	}
	r := c.Rates.Permit
	out.flat("Pool permit", r.PoolOnly)
	if c.Geo.HasSpa {
		out.flat("Spa permit", r.Spa)
	}
	out.flat("Permit runner", r.PermitRunner)
	return out.items()
}

// Cleanup prices final cleanup and rough grading
func Cleanup(c *Context) []types.LineItem {
	var out lines
	r := c.Rates.Cleanup
	if c.Geo.HasPool {
		out.flat("Pool cleanup", r.BasePool)
		out.item("Cleanup over 500 sqft", math.Max(0, c.Spec.Pool.SurfaceArea-500), r.PerSqftOver500)
	}
	if c.Geo.HasSpa {
		out.flat("Spa cleanup", r.Spa)
	}
	if c.Spec.TileCopingDecking.HasRoughGrading {
		out.flat("Rough grading", r.RoughGrading)
	}
	return out.items()
}

// EquipmentSet prices setting the equipment pad
func EquipmentSet(c *Context) []types.LineItem {
	var out lines
	r := c.Rates.EquipmentSet
	eq := c.Spec.Equipment
	if c.Geo.HasPool {
		out.flat("Equipment set", r.Base)
	}
	if c.Geo.HasSpa {
		out.flat("Spa equipment set", r.Spa)
	}
	if eq.Automation.Included() {
		out.flat("Automation set", r.Automation)
	}
	if isHeatPump(c) {
		out.flat("Heat pump set", r.HeatPump)
	}
	out.item("Auxiliary pump set", float64(includedCount(eq.AuxiliaryPumps)), r.AuxiliaryPump)
	return out.items()
}

// WaterTruck prices filling the pool by truck
func WaterTruck(c *Context) []types.LineItem {
	var out lines
	r := c.Rates.WaterTruck
	if c.Geo.Gallons <= 0 || r.LoadSizeGallons <= 0 {
		return out.items()
	}
	loads := math.Ceil(c.Geo.Gallons / r.LoadSizeGallons)
	out.item("Water truck loads", loads, r.Base)
	return out.items()
}

// Startup prices startup and owner orientation
func Startup(c *Context) []types.LineItem {
	var out lines
	if !c.Geo.HasPool {
		return out.items()
	}
	r := c.Rates.Startup
	out.flat("Startup & orientation", r.Base)
	if c.Spec.Equipment.Automation.Included() {
		out.flat("Automation programming", r.AutomationAdd)
	}
	return out.items()
}

func waterFeatureUnits(spec *types.Specification) int {
	n := 0
	for _, s := range spec.WaterFeatures.Selections {
		if s.Quantity > 0 {
			n += s.Quantity
		}
	}
	return n
}

func includedCount(choices []types.Choice) int {
	n := 0
	for i := range choices {
		n += choices[i].Qty()
	}
	return n
}

// heater resolves the selected heater, or None
func heater(c *Context) pricing.CatalogItem {
	return c.Rates.Equipment.Heaters.Resolve(c.Spec.Equipment.Heater.Selected())
}

func isHeatPump(c *Context) bool {
	return c.Spec.Equipment.Heater.Included() && heater(c).Flag == pricing.HeatPumpFlag
}
