package calc

import (
	"fmt"
	"math"

	"poolcost/core/pricing"
	"poolcost/core/types"
)

// BaseExcavation returns the price of the first range covering sqft
func BaseExcavation(r pricing.Excavation, sqft float64) float64 {
	for _, br := range r.BaseRanges {
		if sqft <= br.MaxSqft {
			return br.Price
		}
	}
	return r.OverMaxPrice
}

// Excavation prices the dig, structural add-ons and site work
func Excavation(c *Context) []types.LineItem {
	var out lines
	r := c.Rates.Excavation
	ex := c.Spec.Excavation
	p := c.Spec.Pool

	if c.Geo.HasPool {
		out.flat("Excavation base", BaseExcavation(r, p.SurfaceArea))
	}
	out.item(`Additional 6" depth`, c.Geo.DepthIncrements, r.Additional6InchDepth)

	if c.Geo.HasSpa {
		out.flat("Spa excavation", r.BaseSpa)
		if p.IsRaisedSpa {
			out.flat("Raised spa", r.RaisedSpa)
		}
	}

	for _, level := range ex.RBBLevels {
		if level.Length <= 0 {
			continue
		}
		key := pricing.HeightKey(level.Height)
		rate, ok := r.RBB[key]
		if !ok {
			c.Warn(types.WarnUnknownCatalogKey, "no raised bond beam rate for %d\" height", level.Height)
			continue
		}
		out.item(fmt.Sprintf(`%d" RBB`, level.Height), level.Length, rate)
		facingSqft := level.Length * float64(level.Height) / 12
		addFacing(c, &out, fmt.Sprintf(`%d" RBB facing`, level.Height), level.Facing, facingSqft)
	}

	cols := ex.Columns
	if cols.Count > 0 && cols.Height > 0 {
		count := float64(cols.Count)
		out.item("Columns", count*cols.Height, r.ColumnPerFt)
		addFacing(c, &out, "Column facing", cols.Facing, count*2*(cols.Width+cols.Depth)*cols.Height)
	}

	if ex.RetainingWallType != "" && ex.RetainingWallType != pricing.NoneKey && ex.RetainingWallLength > 0 {
		wall, ok := r.FindRetainingWall(ex.RetainingWallType)
		switch {
		case !ok:
			c.Warn(types.WarnUnknownCatalogKey, "unknown retaining wall %q", ex.RetainingWallType)
		case wall.CostPerLnft > 0:
			out.item("Retaining wall: "+wall.Name, ex.RetainingWallLength, wall.CostPerLnft)
		default:
			out.item("Retaining wall: "+wall.Name, ex.RetainingWallLength*wall.HeightFt, wall.CostPerSqft)
		}
	}

	if ex.HasGravelInstall {
		out.item("Gravel install", p.SurfaceArea, r.GravelPerSqft)
	}
	if ex.HasDirtHaul {
		yards := math.Ceil(p.SurfaceArea * c.Geo.AvgDepth / 27)
		out.item("Dirt haul (yd)", yards, r.DirtHaulPerYard)
	}
	if ex.HasSoilSampleEngineer {
		out.flat("Soil sample & engineer", r.SoilSampleEngineer)
	}
	if ex.HasDoubleCurtain {
		out.flat("Double curtain", r.DoubleCurtain)
	}
	out.item("Additional site prep (hr)", ex.AdditionalSitePrepHours, r.SitePrepPerHour)
	if p.HasAutoCover {
		out.flat("Cover box", r.CoverBox)
	}
	out.item("Travel (mi)", p.TravelDistance, r.TravelPerMile)
	return out.items()
}

func addFacing(c *Context, out *lines, description, facing string, sqft float64) {
	if facing == "" || facing == pricing.NoneKey || sqft <= 0 {
		return
	}
	rate, ok := c.Rates.Excavation.Facing[facing]
	if !ok {
		c.Warn(types.WarnUnknownCatalogKey, "unknown facing %q", facing)
		return
	}
	out.item(description+" ("+facing+")", sqft, rate.Labor+rate.Material)
}
