package calc

import (
	"poolcost/core/pricing"
	"poolcost/core/types"
)

// FiberglassShell prices the manufactured shell, delivery and tax
func FiberglassShell(c *Context) []types.LineItem {
	var out lines
	if !c.Geo.Fiberglass {
		return out.items()
	}
	r := c.Rates.Fiberglass
	p := c.Spec.Pool

	if m, ok := r.FindModel(p.FiberglassModel); ok {
		out.flat("Fiberglass shell: "+m.Name, m.Price)
	} else {
		if p.FiberglassModel != "" {
			c.Warn(types.WarnUnknownCatalogKey, "fiberglass model %q not in catalog", p.FiberglassModel)
		}
		out.flat("Fiberglass shell ("+p.FiberglassSize+")", r.SizePrices[p.FiberglassSize])
	}

	if c.Geo.HasSpa {
		if p.SpaType == types.SpaFiberglass && p.SpaFiberglassModel != "" {
			spa := r.SpaModels.Resolve(p.SpaFiberglassModel)
			if spa.IsNone() {
				c.Warn(types.WarnUnknownCatalogKey, "fiberglass spa %q not in catalog", p.SpaFiberglassModel)
			} else {
				out.priced("Fiberglass spa: "+spa.Name, 1, spa.UnitPrice(1))
			}
		}
		out.flat("Spa spillover", r.Spillover)
	}

	if p.FiberglassCrane != "" && p.FiberglassCrane != pricing.NoneKey {
		crane := r.Cranes.Resolve(p.FiberglassCrane)
		if crane.IsNone() {
			c.Warn(types.WarnUnknownCatalogKey, "crane option %q not in catalog", p.FiberglassCrane)
		} else {
			out.priced(crane.Name, 1, crane.UnitPrice(1))
		}
	}
	out.flat("Freight", r.Freight)

	if base := out.subtotal(); base.IsPositive() && r.DiscountRate > 0 {
		out = append(out, types.Discount("Manufacturer discount", base.Mul(dec(r.DiscountRate)).Neg()))
	}
	out.tax("Fiberglass tax", r.TaxRate)
	return out.items()
}

// FiberglassInstall prices setting the shell
func FiberglassInstall(c *Context) []types.LineItem {
	var out lines
	if !c.Geo.Fiberglass || !c.Geo.HasPool {
		return out.items()
	}
	r := c.Rates.Fiberglass
	out.flat("Fiberglass install labor", r.InstallLabor)
	out.flat("Fiberglass install gravel", r.InstallGravel)
	return out.items()
}
