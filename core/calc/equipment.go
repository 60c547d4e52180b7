package calc

import (
	"github.com/shopspring/decimal"

	"poolcost/core/pricing"
	"poolcost/core/types"
)

// EquipmentOrdered prices the equipment package
func EquipmentOrdered(c *Context) []types.LineItem {
	var out lines
	r := c.Rates.Equipment
	eq := c.Spec.Equipment
	pumpOverhead := r.PumpOverheadMultiplier

	addChoice(c, &out, "Pump", r.Pumps, eq.Pump, pumpOverhead)
	for i := range eq.AuxiliaryPumps {
		addChoice(c, &out, "Auxiliary pump", r.Pumps, &eq.AuxiliaryPumps[i], pumpOverhead)
	}
	addChoice(c, &out, "Filter", r.Filters, eq.Filter, 1)
	addChoice(c, &out, "Cleaner", r.Cleaners, eq.Cleaner, 1)
	addChoice(c, &out, "Heater", r.Heaters, eq.Heater, 1)
	addChoice(c, &out, "Automation", r.Automation, eq.Automation, 1)
	if eq.Automation.Included() {
		out.item("Automation zones", float64(eq.AutomationZones), r.AutomationZoneAddon)
	}
	addChoice(c, &out, "Salt system", r.SaltSystems, eq.SaltSystem, 1)
	addChoice(c, &out, "Auto-fill", r.AutoFillSystems, eq.AutoFillSystem, 1)

	for i := range eq.PoolLights {
		addChoice(c, &out, "Pool light", r.PoolLights, &eq.PoolLights[i], 1)
	}
	for i := range eq.SpaLights {
		addChoice(c, &out, "Spa light", r.SpaLights, &eq.SpaLights[i], 1)
	}

	if upgrade := HeaterFlowUpgrade(c); upgrade.IsPositive() {
		out = append(out, types.Flat("Heater flow upgrade", upgrade))
	}

	out.tax("Equipment tax", r.TaxRate)
	return out.items()
}

// HeaterFlowUpgrade is the price difference to a flow-capable heater. It
// applies only to spa builds whose heater cannot already carry the flow.
func HeaterFlowUpgrade(c *Context) decimal.Decimal {
	eq := c.Spec.Equipment
	if !eq.HasHeaterFlowUpgrade || !c.Geo.HasSpa {
		return decimal.Zero
	}
	r := c.Rates.Equipment
	current := decimal.Zero
	if eq.Heater.Included() {
		h := r.Heaters.Resolve(eq.Heater.Key)
		if h.Flag == pricing.FlowCapable {
			return decimal.Zero
		}
		current = h.UnitPrice(1)
	}
	flow := r.Heaters.Find(r.HeaterFlowUpgradeKey).UnitPrice(1)
	diff := flow.Sub(current)
	if diff.IsNegative() {
		return decimal.Zero
	}
	return diff
}

func addChoice(c *Context, out *lines, label string, catalog pricing.Catalog, choice *types.Choice, overhead float64) {
	if !choice.Included() {
		return
	}
	item := catalog.Resolve(choice.Key)
	if item.IsNone() {
		c.Warn(types.WarnUnknownCatalogKey, "%s %q not in catalog", label, choice.Key)
		return
	}
	out.priced(label+": "+item.Name, choice.Qty(), item.UnitPrice(overhead))
}
