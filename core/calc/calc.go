// Package calc holds the per-category calculation modules. Each module
// reads the specification and the rate table and returns line items for
// exactly one breakdown category. Modules never read each other's output.
package calc

import (
	"fmt"

	"github.com/shopspring/decimal"

	"poolcost/core/pricing"
	"poolcost/core/types"
)

// Context is everything a module may read. Geometry is derived once per
// run so every module sees the same measurements.
type Context struct {
	Spec  *types.Specification
	Rates *pricing.Rates
	Geo   Geometry

	warnings []types.Warning
}

// NewContext derives geometry for spec
func NewContext(spec *types.Specification, r *pricing.Rates) *Context {
	return &Context{
		Spec:  spec,
		Rates: r,
		Geo:   Measure(spec, r),
	}
}

// Warn records an advisory
func (c *Context) Warn(code types.WarningCode, format string, args ...interface{}) {
	c.warnings = append(c.warnings, types.Warning{Code: code, Message: fmt.Sprintf(format, args...)})
}

// Warnings returns the advisories raised so far
func (c *Context) Warnings() []types.Warning {
	return c.warnings
}

// Module calculates one breakdown category
type Module struct {
	Category types.Category
	Calc     func(*Context) []types.LineItem
}

var modules = []Module{
	{types.CategoryPlans, Plans},
	{types.CategoryLayout, Layout},
	{types.CategoryPermit, Permit},
	{types.CategoryExcavation, Excavation},
	{types.CategoryPlumbing, Plumbing},
	{types.CategoryGas, Gas},
	{types.CategorySteel, Steel},
	{types.CategoryElectrical, Electrical},
	{types.CategoryShotcreteLabor, ShotcreteLabor},
	{types.CategoryShotcreteMaterial, ShotcreteMaterial},
	{types.CategoryTileLabor, TileLabor},
	{types.CategoryTileMaterial, TileMaterial},
	{types.CategoryCopingDeckingLabor, CopingDeckingLabor},
	{types.CategoryCopingDeckingMaterial, CopingDeckingMaterial},
	{types.CategoryStoneRockworkLabor, StoneRockworkLabor},
	{types.CategoryStoneRockworkMaterial, StoneRockworkMaterial},
	{types.CategoryDrainage, Drainage},
	{types.CategoryEquipmentOrdered, EquipmentOrdered},
	{types.CategoryEquipmentSet, EquipmentSet},
	{types.CategoryWaterFeatures, WaterFeatures},
	{types.CategoryCleanup, Cleanup},
	{types.CategoryInteriorFinish, InteriorFinish},
	{types.CategoryWaterTruck, WaterTruck},
	{types.CategoryFiberglassShell, FiberglassShell},
	{types.CategoryFiberglassInstall, FiberglassInstall},
	{types.CategoryStartupOrientation, Startup},
	{types.CategoryCustomFeatures, CustomFeatures},
}

// Modules returns the registered modules in breakdown order
func Modules() []Module {
	out := make([]Module, len(modules))
	copy(out, modules)
	return out
}

// Output is the raw module output before aggregation
type Output struct {
	Items    map[types.Category][]types.LineItem
	Warnings []types.Warning
	Geometry Geometry
}

// Run executes every module against spec
func Run(spec *types.Specification, r *pricing.Rates) *Output {
	ctx := NewContext(spec, r)
	out := &Output{
		Items:    make(map[types.Category][]types.LineItem, len(modules)),
		Geometry: ctx.Geo,
	}
	for _, m := range modules {
		out.Items[m.Category] = m.Calc(ctx)
	}
	out.Warnings = ctx.Warnings()
	return out
}

func dec(f float64) decimal.Decimal {
	return decimal.NewFromFloat(f)
}

// lines accumulates the items of one category. Zero quantities and zero
// amounts never produce a line.
type lines []types.LineItem

func (l *lines) item(description string, qty, unit float64) {
	if qty == 0 || unit == 0 {
		return
	}
	*l = append(*l, types.Item(description, dec(qty), dec(unit)))
}

func (l *lines) priced(description string, qty int, unit decimal.Decimal) {
	if qty == 0 || unit.IsZero() {
		return
	}
	*l = append(*l, types.Item(description, decimal.NewFromInt(int64(qty)), unit))
}

func (l *lines) flat(description string, amount float64) {
	if amount == 0 {
		return
	}
	*l = append(*l, types.Flat(description, dec(amount)))
}

func (l *lines) subtotal() decimal.Decimal {
	sum := decimal.Zero
	for _, item := range *l {
		sum = sum.Add(item.Total)
	}
	return sum
}

// tax appends a tax line on everything accumulated so far
func (l *lines) tax(description string, rate float64) {
	base := l.subtotal()
	if rate == 0 || !base.IsPositive() {
		return
	}
	*l = append(*l, types.Tax(description, base.Mul(dec(rate))))
}

func (l *lines) items() []types.LineItem {
	if *l == nil {
		return []types.LineItem{}
	}
	return *l
}
