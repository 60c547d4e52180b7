package calc

import (
	"math"

	"poolcost/core/types"
)

// ShotcreteYards is the shell volume in cubic yards
func ShotcreteYards(c *Context) float64 {
	if c.Geo.Fiberglass || !c.Geo.HasPool {
		return 0
	}
	r := c.Rates.Shotcrete
	p := c.Spec.Pool
	shellSqft := p.SurfaceArea + c.Geo.Perimeter*c.Geo.AvgDepth + c.Geo.RBBFaceSqft
	yards := math.Ceil(shellSqft * r.ShellThicknessInches / 12 / 27)
	if c.Geo.HasSpa {
		yards += r.SpaYards
	}
	return yards
}

// ShotcreteLabor prices shooting the shell
func ShotcreteLabor(c *Context) []types.LineItem {
	var out lines
	yards := ShotcreteYards(c)
	if yards == 0 {
		return out.items()
	}
	r := c.Rates.Shotcrete.Labor
	p := c.Spec.Pool

	out.item("Shotcrete labor (yd)", math.Max(yards, r.MinimumYards), r.PerYard)
	if c.Geo.HasSpa {
		out.flat("Spa shotcrete labor", r.Spa)
	}
	if p.HasAutoCover {
		out.flat("Automatic cover vault", r.AutoCover)
	}
	switch p.PoolToStreetDistance {
	case 1:
		out.flat("Pool to street 250-300ft", r.Distance250To300)
	case 2:
		out.flat("Pool to street 300-350ft", r.Distance300To350)
	}
	out.item("Travel (mi)", p.TravelDistance, r.TravelPerMile)
	return out.items()
}

// ShotcreteMaterial prices concrete, fees and tax
func ShotcreteMaterial(c *Context) []types.LineItem {
	var out lines
	yards := ShotcreteYards(c)
	if yards == 0 {
		return out.items()
	}
	r := c.Rates.Shotcrete.Material

	out.item("Shotcrete material (yd)", yards, r.PerYard)
	out.flat("Clean out", r.CleanOut)
	out.item("Environmental & fuel (yd)", yards, r.EnvFuelPerYard)
	out.flat("Misc", r.Misc)
	out.tax("Shotcrete material tax", r.TaxRate)
	return out.items()
}
