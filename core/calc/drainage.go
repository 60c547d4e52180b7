package calc

import (
	"math"

	"poolcost/core/types"
)

// Drainage prices deck and yard drains. The base covers the first few feet.
func Drainage(c *Context) []types.LineItem {
	var out lines
	r := c.Rates.Drainage
	total := c.Spec.Drainage.TotalLength()
	if total <= 0 {
		return out.items()
	}
	out.flat("Drainage", r.Base)
	out.item("Drainage over included footage (ft)", math.Max(0, total-r.IncludedFt), r.PerFtOver)
	return out.items()
}
