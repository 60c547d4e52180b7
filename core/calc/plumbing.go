package calc

import (
	"math"

	"github.com/shopspring/decimal"

	"poolcost/core/pricing"
	"poolcost/core/types"
)

// Overrun is the footage of run beyond the allowance threshold
func Overrun(run float64, a pricing.Allowance) float64 {
	return math.Max(0, run-a.Threshold)
}

// Surcharge prices the overrun of a run
func Surcharge(run float64, a pricing.Allowance) decimal.Decimal {
	return dec(Overrun(run, a)).Mul(dec(a.OverrunPerFt))
}

func (l *lines) overrun(description string, run float64, a pricing.Allowance) {
	l.item(description, Overrun(run, a), a.OverrunPerFt)
}

// Runs are the run lengths after disabled sub-items are forced to zero
type Runs struct {
	Skimmer      float64
	MainDrain    float64
	Spa          float64
	Cleaner      float64
	AutoFill     float64
	Gas          float64
	WaterFeature float64
	Infloor      float64
	Electrical   float64
	Light        float64
	HeatPump     float64
}

// EffectiveRuns zeroes the runs of anything not being built
func EffectiveRuns(c *Context) Runs {
	pl := c.Spec.Plumbing
	el := c.Spec.Electrical
	eq := c.Spec.Equipment
	runs := Runs{
		Skimmer:      pl.Skimmer,
		MainDrain:    pl.MainDrain,
		Spa:          pl.Spa,
		Cleaner:      pl.Cleaner,
		AutoFill:     pl.AutoFill,
		Gas:          pl.Gas,
		WaterFeature: pl.WaterFeature,
		Infloor:      pl.Infloor,
		Electrical:   el.Electrical,
		Light:        el.Light,
		HeatPump:     el.HeatPump,
	}
	if !c.Geo.HasSpa {
		runs.Spa = 0
	}
	if !eq.Cleaner.Included() {
		runs.Cleaner = 0
	}
	if !eq.AutoFillSystem.Included() {
		runs.AutoFill = 0
	}
	heatPump := isHeatPump(c)
	if !eq.Heater.Included() || heatPump {
		runs.Gas = 0
	}
	if !heatPump {
		runs.HeatPump = 0
	}
	return runs
}

// Plumbing prices plumbing runs
func Plumbing(c *Context) []types.LineItem {
	var out lines
	r := c.Rates.Plumbing
	runs := EffectiveRuns(c)

	if c.Geo.HasPool {
		out.flat("Short stub", r.ShortStub)
	}
	out.overrun("Skimmer run overrun (ft)", runs.Skimmer, r.Skimmer)
	out.overrun("Main drain run overrun (ft)", runs.MainDrain, r.MainDrain)
	if c.Geo.HasSpa {
		out.flat("Spa plumbing", r.SpaBase)
		out.overrun("Spa run overrun (ft)", runs.Spa, r.Spa)
	}
	out.overrun("Cleaner run (ft)", runs.Cleaner, r.Cleaner)
	out.overrun("Auto-fill run (ft)", runs.AutoFill, r.AutoFill)
	out.item("Additional skimmers", float64(c.Spec.Plumbing.AdditionalSkimmers), r.AdditionalSkimmer)
	if runs.WaterFeature > 0 {
		out.flat("Water feature run setup", r.WaterFeatureRun.Setup)
		out.overrun("Water feature run overrun (ft)", runs.WaterFeature, r.WaterFeatureRun.Allowance)
	}
	out.item("Infloor valve to equipment (ft)", runs.Infloor, r.InfloorPerFt)
	return out.items()
}

// Gas prices the gas line to a fuel-fired heater
func Gas(c *Context) []types.LineItem {
	var out lines
	r := c.Rates.Gas
	run := EffectiveRuns(c).Gas
	if run <= 0 {
		return out.items()
	}
	out.flat("Gas line", r.Base)
	out.overrun("Gas run overrun (ft)", run, r.Run)
	return out.items()
}
