package calc

import (
	"math"

	"poolcost/core/pricing"
	"poolcost/core/types"
)

// Geometry are measurements derived from the pool description
type Geometry struct {
	HasPool    bool    `json:"hasPool"`
	HasSpa     bool    `json:"hasSpa"`
	Fiberglass bool    `json:"fiberglass"`
	Perimeter  float64 `json:"perimeter"`
	AvgDepth   float64 `json:"avgDepth"`
	Gallons    float64 `json:"gallons"`

	SpaPerimeter float64 `json:"spaPerimeter"`
	InteriorArea float64 `json:"interiorArea"`

	// DepthIncrements counts 6" steps of end depth beyond 8ft
	DepthIncrements float64 `json:"depthIncrements"`

	// RBBFaceSqft is the exposed face of every raised bond beam
	RBBFaceSqft float64 `json:"rbbFaceSqft"`
}

// Measure derives geometry from spec
func Measure(spec *types.Specification, r *pricing.Rates) Geometry {
	p := spec.Pool
	g := Geometry{
		HasSpa:     p.HasSpa(),
		Fiberglass: p.IsFiberglass(),
		Perimeter:  p.Perimeter,
		AvgDepth:   AverageDepth(p),
	}

	if g.Fiberglass && g.Perimeter == 0 {
		if m, ok := r.Fiberglass.FindModel(p.FiberglassModel); ok {
			g.Perimeter = m.Perimeter
		}
	}
	g.HasPool = HasPool(p)
	g.Gallons = Gallons(p, r)
	g.SpaPerimeter = SpaPerimeter(p)
	g.InteriorArea = InteriorArea(spec)

	if p.EndDepth > 8 {
		g.DepthIncrements = math.Ceil((p.EndDepth - 8) / 0.5)
	}
	for _, level := range spec.Excavation.RBBLevels {
		g.RBBFaceSqft += level.Length * float64(level.Height) / 12
	}
	return g
}

// AverageDepth is the mean of shallow and end depth
func AverageDepth(p types.Pool) float64 {
	return (p.ShallowDepth + p.EndDepth) / 2
}

// HasPool reports whether enough of the pool is described to price it
func HasPool(p types.Pool) bool {
	return p.Perimeter > 0 || p.SurfaceArea > 0 || p.FiberglassModel != ""
}

// Gallons is the water volume. Gunite volume is rounded up to ten gallons
// before the tanning shelf allowance is taken off.
func Gallons(p types.Pool, r *pricing.Rates) float64 {
	if p.IsFiberglass() {
		size := p.FiberglassSize
		if m, ok := r.Fiberglass.FindModel(p.FiberglassModel); ok {
			if m.Gallons > 0 {
				return m.Gallons
			}
			if size == "" {
				size = m.Size
			}
		}
		return r.Geometry.FiberglassGallons[size]
	}

	volume := p.SurfaceArea * AverageDepth(p) * r.Geometry.GallonsPerCubicFoot
	gallons := math.Ceil(volume/10) * 10
	if p.HasTanningShelf {
		gallons -= r.Geometry.TanningShelfGallons
	}
	return math.Max(0, gallons)
}

// SpaPerimeter is the explicit spa perimeter, or the one derived from the
// dimensions of a custom spa.
func SpaPerimeter(p types.Pool) float64 {
	if p.SpaPerimeter > 0 {
		return p.SpaPerimeter
	}
	if p.SpaType != types.SpaGunite {
		return 0
	}
	if p.SpaShape == types.SpaRound {
		return math.Ceil(p.SpaLength * 3.14)
	}
	return math.Ceil(2*p.SpaLength + 2*p.SpaWidth)
}

// InteriorArea is the finish area: the explicit value, or floor plus walls
func InteriorArea(spec *types.Specification) float64 {
	if spec.InteriorFinish.SurfaceArea > 0 {
		return spec.InteriorFinish.SurfaceArea
	}
	p := spec.Pool
	if p.SurfaceArea == 0 && p.Perimeter == 0 {
		return 0
	}
	return math.Ceil(p.SurfaceArea + p.Perimeter*AverageDepth(p))
}
