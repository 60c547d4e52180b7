package pricing

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// NoneKey is the key of the zero-cost placeholder every lookup falls
// back to.
const NoneKey = "none"

// FlowCapable marks heaters that already support whole-house flow
const FlowCapable = "flow-capable"

// HeatPumpFlag marks heaters that are heat pumps
const HeatPumpFlag = "heat-pump"

// CatalogItem is a priced catalog entry. Key is stable; Name is the
// display label and may be renamed freely.
type CatalogItem struct {
	Key             string  `json:"key"`
	Name            string  `json:"name"`
	Category        string  `json:"category,omitempty"`
	BasePrice       float64 `json:"basePrice"`
	AddCost1        float64 `json:"addCost1"`
	AddCost2        float64 `json:"addCost2"`
	PercentIncrease float64 `json:"percentIncrease,omitempty"`
	Flag            string  `json:"flag,omitempty"`
	SpanInches      float64 `json:"spanInches,omitempty"`
}

// None is the placeholder returned for unmatched lookups
var None = CatalogItem{Key: NoneKey, Name: "None"}

// IsNone reports whether the item is the placeholder
func (c CatalogItem) IsNone() bool {
	return c.Key == NoneKey || c.Key == ""
}

// UnitPrice is (base + add1 + add2) scaled by the percent increase and
// the given overhead multiplier.
func (c CatalogItem) UnitPrice(overhead float64) decimal.Decimal {
	if c.IsNone() {
		return decimal.Zero
	}
	price := decimal.NewFromFloat(c.BasePrice).
		Add(decimal.NewFromFloat(c.AddCost1)).
		Add(decimal.NewFromFloat(c.AddCost2))
	if c.PercentIncrease != 0 {
		factor := decimal.NewFromInt(1).Add(decimal.NewFromFloat(c.PercentIncrease).Div(decimal.NewFromInt(100)))
		price = price.Mul(factor)
	}
	if overhead != 0 && overhead != 1 {
		price = price.Mul(decimal.NewFromFloat(overhead))
	}
	return price
}

// Catalog is an ordered list of priced items
type Catalog []CatalogItem

// Find returns the item with key, or None
func (c Catalog) Find(key string) CatalogItem {
	if key == "" || key == NoneKey {
		return None
	}
	for _, item := range c {
		if item.Key == key {
			return item
		}
	}
	return None
}

// FindByName matches the display name, ignoring case and surrounding
// space. Older saved proposals reference items this way.
func (c Catalog) FindByName(name string) CatalogItem {
	want := strings.ToLower(strings.TrimSpace(name))
	if want == "" {
		return None
	}
	for _, item := range c {
		if strings.ToLower(strings.TrimSpace(item.Name)) == want {
			return item
		}
	}
	return None
}

// Resolve tries the key first and falls back to the display name
func (c Catalog) Resolve(keyOrName string) CatalogItem {
	if item := c.Find(keyOrName); !item.IsNone() {
		return item
	}
	return c.FindByName(keyOrName)
}

// Has reports whether key resolves to a real item
func (c Catalog) Has(keyOrName string) bool {
	return !c.Resolve(keyOrName).IsNone()
}

// Group returns the items of one category in catalog order
func (c Catalog) Group(category string) Catalog {
	var out Catalog
	for _, item := range c {
		if item.Category == category {
			out = append(out, item)
		}
	}
	return out
}

// Water feature catalog groups
const (
	GroupSheerDescent = "sheerDescent"
	GroupWokWater     = "wokWater"
	GroupWokFire      = "wokFire"
	GroupWokWaterFire = "wokWaterFire"
	GroupJet          = "jet"
	GroupBubbler      = "bubbler"
)

// WokKind is the three-way wok pot choice
type WokKind string

const (
	WokWaterOnly WokKind = "water"
	WokFireOnly  WokKind = "fire"
	WokWaterFire WokKind = "waterAndFire"
)

// SheerDescents returns sheer descents ordered by span
func (c Catalog) SheerDescents() Catalog {
	out := c.Group(GroupSheerDescent)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].SpanInches < out[j].SpanInches
	})
	return out
}

// Woks returns the wok pots of one kind. Kinds are mutually exclusive:
// a wok pot is water-only, fire-only or both, never a combination of
// separate selections.
func (c Catalog) Woks(kind WokKind) Catalog {
	switch kind {
	case WokWaterOnly:
		return c.Group(GroupWokWater)
	case WokFireOnly:
		return c.Group(GroupWokFire)
	case WokWaterFire:
		return c.Group(GroupWokWaterFire)
	}
	return nil
}

// WokChoice returns the wok pot of one kind and span, or None
func (c Catalog) WokChoice(kind WokKind, spanInches float64) CatalogItem {
	for _, item := range c.Woks(kind) {
		if item.SpanInches == spanInches {
			return item
		}
	}
	return None
}
