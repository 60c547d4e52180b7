package calc

import (
	"math"

	"poolcost/core/pricing"
	"poolcost/core/types"
)

// InteriorFinish prices plaster or pebble finish on a gunite shell
func InteriorFinish(c *Context) []types.LineItem {
	var out lines
	if c.Geo.Fiberglass || !c.Geo.HasPool {
		return out.items()
	}
	r := c.Rates.Interior
	spec := c.Spec.InteriorFinish
	key := spec.FinishType
	if key == "" || key == pricing.NoneKey {
		return out.items()
	}
	finish, ok := r.FindFinish(key)
	if !ok {
		c.Warn(types.WarnUnknownCatalogKey, "unknown interior finish %q", key)
		return out.items()
	}
	area := c.Geo.InteriorArea

	out.flat(finish.Name+" labor", finish.LaborBase)
	hundreds := math.Floor(math.Max(0, area-r.LaborFloorSqft) / 100)
	out.item(finish.Name+" labor per 100 sqft over minimum", hundreds, finish.LaborPer100Sqft)
	out.item(finish.Name+" material (sqft)", math.Max(area, r.MinimumChargeSqft), finish.MaterialPerSqft)
	if c.Geo.HasSpa {
		out.flat("Spa finish labor", finish.SpaLabor)
		out.flat("Spa finish material", finish.SpaMaterial)
	}

	out.flat("Pool prep", r.PoolPrepBase)
	out.item("Pool prep over threshold (sqft)", math.Max(0, area-r.PoolPrepThreshold), r.PoolPrepOverRate)
	if c.Geo.HasSpa {
		out.flat("Spa prep", r.SpaPrep)
	}
	if spec.HasWaterproofing {
		out.item("Waterproofing (sqft)", area, r.WaterproofingPerSqft)
	}
	return out.items()
}
