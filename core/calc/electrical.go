package calc

import "poolcost/core/types"

// Electrical prices electrical service, lighting and controls
func Electrical(c *Context) []types.LineItem {
	var out lines
	r := c.Rates.Electrical
	eq := c.Spec.Equipment
	runs := EffectiveRuns(c)

	if c.Geo.HasPool {
		out.flat("Base electrical", r.Base)
	}
	out.overrun("Electrical run overrun (ft)", runs.Electrical, r.Run)
	if c.Geo.HasSpa {
		out.flat("Spa/heater electrical", r.SpaHeater)
	}
	out.overrun("Light run overrun (ft)", runs.Light, r.LightRun)
	out.item("Additional lights", float64(eq.ExtraLights()), r.AdditionalLight)
	if isHeatPump(c) {
		out.flat("Heat pump electrical", r.HeatPumpBase)
		out.overrun("Heat pump run overrun (ft)", runs.HeatPump, r.HeatPumpRun)
	}
	if eq.Automation.Included() {
		out.flat("Automation electrical", r.Automation)
	}
	if eq.SaltSystem.Included() {
		out.flat("Salt system electrical", r.SaltSystem)
	}
	return out.items()
}
