package calc

import (
	"fmt"

	"poolcost/core/pricing"
	"poolcost/core/types"
)

// Steel prices reinforcing steel. Fiberglass shells carry none.
func Steel(c *Context) []types.LineItem {
	var out lines
	if c.Geo.Fiberglass {
		return out.items()
	}
	r := c.Rates.Steel
	p := c.Spec.Pool
	ex := c.Spec.Excavation

	out.item("Pool steel (sqft)", p.SurfaceArea, r.PoolBasePerSqft)
	if c.Geo.HasSpa {
		out.flat("Spa steel", r.SpaBase)
		if p.IsRaisedSpa {
			out.flat("Raised spa steel", r.RaisedSpa)
		}
	}
	out.item("Steps & bench (lnft)", p.TotalStepsBench, r.StepsPerLnft)
	if p.HasTanningShelf {
		out.flat("Tanning shelf", r.TanningShelf)
	}
	out.item(`Depth over 8ft (per 6")`, c.Geo.DepthIncrements, r.DepthOver8FtPer6In)

	for _, level := range ex.RBBLevels {
		if level.Length <= 0 {
			continue
		}
		rate, ok := r.RBBPerLnft[pricing.HeightKey(level.Height)]
		if !ok {
			continue
		}
		out.item(fmt.Sprintf(`%d" RBB steel`, level.Height), level.Length, rate)
	}

	if ex.HasDoubleCurtain || ex.DoubleCurtainLength > 0 {
		out.item("Double curtain (lnft)", ex.DoubleCurtainLength, r.DoubleCurtainPerLnft)
		if c.Geo.HasSpa {
			out.flat("Spa double curtain", r.SpaDoubleCurtain)
		}
	}
	if c.Geo.HasPool {
		out.flat("Pool bonding", r.Bonding)
	}
	return out.items()
}
