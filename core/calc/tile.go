package calc

import (
	"strconv"

	"poolcost/core/pricing"
	"poolcost/core/types"
)

func tileLevel(t types.TileCopingDecking) int {
	if t.TileLevel < 1 {
		return 1
	}
	return t.TileLevel
}

func tiled(c *Context) bool {
	return c.Geo.HasPool && !c.Geo.Fiberglass
}

// TileLabor prices setting waterline tile
func TileLabor(c *Context) []types.LineItem {
	var out lines
	if !tiled(c) {
		return out.items()
	}
	r := c.Rates.TileCoping.Tile
	t := c.Spec.TileCopingDecking

	out.item("Waterline tile labor (lnft)", c.Geo.Perimeter, r.Labor)
	out.item("Spa waterline tile labor (lnft)", c.Geo.SpaPerimeter, r.Labor)
	if t.HasTrimTileOnSteps {
		out.item("Step trim tile labor (lnft)", c.Spec.Pool.TotalStepsBench, r.StepTrimLabor)
	}
	return out.items()
}

// TileMaterial prices waterline tile, its level upgrade and tax
func TileMaterial(c *Context) []types.LineItem {
	var out lines
	if !tiled(c) {
		return out.items()
	}
	r := c.Rates.TileCoping.Tile
	t := c.Spec.TileCopingDecking
	length := c.Geo.Perimeter + c.Geo.SpaPerimeter

	out.item("Waterline tile material (lnft)", length, r.Material)
	level := tileLevel(t)
	out.item("Tile level "+strconv.Itoa(level)+" upgrade (lnft)", length, r.LevelUpgrade[strconv.Itoa(level)])
	if t.HasTrimTileOnSteps {
		out.item("Step trim tile material (lnft)", c.Spec.Pool.TotalStepsBench, r.StepTrimMaterial)
	}
	out.tax("Tile material tax", c.Rates.TileCoping.TileMaterialTaxRate)
	return out.items()
}

// copingLength is the explicit coping length, or the pool perimeter
func copingLength(c *Context) float64 {
	if l := c.Spec.TileCopingDecking.CopingLength; l > 0 {
		return l
	}
	return c.Geo.Perimeter
}

func lookupRate(rates map[string]pricing.FacingRate, key string) (pricing.FacingRate, bool) {
	if key == "" || key == pricing.NoneKey {
		return pricing.FacingRate{}, false
	}
	rate, ok := rates[key]
	return rate, ok
}

// CopingDeckingLabor prices installing coping, decking and edge details
func CopingDeckingLabor(c *Context) []types.LineItem {
	var out lines
	if !tiled(c) {
		return out.items()
	}
	r := c.Rates.TileCoping
	t := c.Spec.TileCopingDecking

	if rate, ok := lookupRate(r.Coping, t.CopingType); ok {
		out.item("Coping labor: "+t.CopingType+" (lnft)", copingLength(c), rate.Labor)
	} else if t.CopingType != "" && t.CopingType != pricing.NoneKey {
		c.Warn(types.WarnUnknownCatalogKey, "unknown coping type %q", t.CopingType)
	}
	if rate, ok := lookupRate(r.Decking, t.DeckingType); ok {
		out.item("Decking labor: "+t.DeckingType+" (sqft)", t.DeckingArea, rate.Labor)
		if t.DeckingType == "concrete" {
			out.item("Concrete steps labor (lnft)", t.ConcreteStepsLength, r.ConcreteSteps.Labor)
		}
	} else if t.DeckingType != "" && t.DeckingType != pricing.NoneKey {
		c.Warn(types.WarnUnknownCatalogKey, "unknown decking type %q", t.DeckingType)
	}
	out.item("Bullnose labor (lnft)", t.BullnoseLength, r.Bullnose.Labor)
	out.item("Double bullnose labor (lnft)", t.DoubleBullnoseLength, r.DoubleBullnose.Labor)
	out.item("Spillway labor (lnft)", t.SpillwayLength, r.Spillway.Labor)
	return out.items()
}

// CopingDeckingMaterial prices coping, decking and edge material plus tax
func CopingDeckingMaterial(c *Context) []types.LineItem {
	var out lines
	if !tiled(c) {
		return out.items()
	}
	r := c.Rates.TileCoping
	t := c.Spec.TileCopingDecking

	if rate, ok := lookupRate(r.Coping, t.CopingType); ok {
		out.item("Coping material: "+t.CopingType+" (lnft)", copingLength(c), rate.Material)
	}
	if rate, ok := lookupRate(r.Decking, t.DeckingType); ok {
		out.item("Decking material: "+t.DeckingType+" (sqft)", t.DeckingArea, rate.Material)
		if t.DeckingType == "concrete" {
			out.item("Concrete steps material (lnft)", t.ConcreteStepsLength, r.ConcreteSteps.Material)
		}
	}
	out.item("Bullnose material (lnft)", t.BullnoseLength, r.Bullnose.Material)
	out.item("Double bullnose material (lnft)", t.DoubleBullnoseLength, r.DoubleBullnose.Material)
	out.item("Spillway material (lnft)", t.SpillwayLength, r.Spillway.Material)
	out.tax("Coping & decking material tax", r.MaterialTaxRate)
	return out.items()
}

// StoneRockworkLabor prices rockwork and raised spa facing labor
func StoneRockworkLabor(c *Context) []types.LineItem {
	var out lines
	r := c.Rates.Masonry
	t := c.Spec.TileCopingDecking

	if rate, ok := lookupRate(r.Rockwork, t.RockworkType); ok {
		out.item("Rockwork labor: "+t.RockworkType+" (sqft)", t.RockworkArea, rate.Labor)
	} else if t.RockworkType != "" && t.RockworkType != pricing.NoneKey {
		c.Warn(types.WarnUnknownCatalogKey, "unknown rockwork type %q", t.RockworkType)
	}
	if c.Spec.Pool.IsRaisedSpa && c.Geo.HasSpa {
		if rate, ok := lookupRate(r.RaisedSpaFacing, t.RaisedSpaFacing); ok {
			out.flat("Raised spa facing labor: "+t.RaisedSpaFacing, rate.Labor)
		}
	}
	return out.items()
}

// StoneRockworkMaterial prices rockwork material with waste
func StoneRockworkMaterial(c *Context) []types.LineItem {
	var out lines
	r := c.Rates.Masonry
	t := c.Spec.TileCopingDecking

	if rate, ok := lookupRate(r.Rockwork, t.RockworkType); ok {
		waste := r.RockworkMaterialWaste
		if waste <= 0 {
			waste = 1
		}
		out.item("Rockwork material: "+t.RockworkType+" (sqft)", t.RockworkArea*waste, rate.Material)
	}
	if c.Spec.Pool.IsRaisedSpa && c.Geo.HasSpa {
		if rate, ok := lookupRate(r.RaisedSpaFacing, t.RaisedSpaFacing); ok {
			out.flat("Raised spa facing material: "+t.RaisedSpaFacing, rate.Material)
		}
	}
	return out.items()
}
