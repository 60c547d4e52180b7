package types

import (
	"github.com/shopspring/decimal"

	"poolcost/internal/errors"
)

// Category names a section of the cost breakdown
type Category string

const (
	CategoryPlans                 Category = "plansAndEngineering"
	CategoryLayout                Category = "layout"
	CategoryPermit                Category = "permit"
	CategoryExcavation            Category = "excavation"
	CategoryPlumbing              Category = "plumbing"
	CategoryGas                   Category = "gas"
	CategorySteel                 Category = "steel"
	CategoryElectrical            Category = "electrical"
	CategoryShotcreteLabor        Category = "shotcreteLabor"
	CategoryShotcreteMaterial     Category = "shotcreteMaterial"
	CategoryTileLabor             Category = "tileLabor"
	CategoryTileMaterial          Category = "tileMaterial"
	CategoryCopingDeckingLabor    Category = "copingDeckingLabor"
	CategoryCopingDeckingMaterial Category = "copingDeckingMaterial"
	CategoryStoneRockworkLabor    Category = "stoneRockworkLabor"
	CategoryStoneRockworkMaterial Category = "stoneRockworkMaterial"
	CategoryDrainage              Category = "drainage"
	CategoryEquipmentOrdered      Category = "equipmentOrdered"
	CategoryEquipmentSet          Category = "equipmentSet"
	CategoryWaterFeatures         Category = "waterFeatures"
	CategoryCleanup               Category = "cleanup"
	CategoryInteriorFinish        Category = "interiorFinish"
	CategoryWaterTruck            Category = "waterTruck"
	CategoryFiberglassShell       Category = "fiberglassShell"
	CategoryFiberglassInstall     Category = "fiberglassInstall"
	CategoryStartupOrientation    Category = "startupOrientation"
	CategoryCustomFeatures        Category = "customFeatures"
)

// Categories is the fixed presentation order of the breakdown
var Categories = []Category{
	CategoryPlans,
	CategoryLayout,
	CategoryPermit,
	CategoryExcavation,
	CategoryPlumbing,
	CategoryGas,
	CategorySteel,
	CategoryElectrical,
	CategoryShotcreteLabor,
	CategoryShotcreteMaterial,
	CategoryTileLabor,
	CategoryTileMaterial,
	CategoryCopingDeckingLabor,
	CategoryCopingDeckingMaterial,
	CategoryStoneRockworkLabor,
	CategoryStoneRockworkMaterial,
	CategoryDrainage,
	CategoryEquipmentOrdered,
	CategoryEquipmentSet,
	CategoryWaterFeatures,
	CategoryCleanup,
	CategoryInteriorFinish,
	CategoryWaterTruck,
	CategoryFiberglassShell,
	CategoryFiberglassInstall,
	CategoryStartupOrientation,
	CategoryCustomFeatures,
}

var categorySet = func() map[Category]bool {
	m := make(map[Category]bool, len(Categories))
	for _, c := range Categories {
		m[c] = true
	}
	return m
}()

// Valid reports whether c is a known category
func (c Category) Valid() bool {
	return categorySet[c]
}

// LineKind tells renderers how to show a line item
type LineKind string

const (
	// KindStandard items satisfy Total == Quantity * UnitPrice
	KindStandard LineKind = "standard"
	// KindFlat items are lump sums; quantity is shown blank
	KindFlat LineKind = "flat"
	// KindTax items are taxes on a material subtotal
	KindTax LineKind = "tax"
	// KindDiscount items are negative PAP adjustments
	KindDiscount LineKind = "discount"
)

// LineItem is one priced row of the breakdown
type LineItem struct {
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	Total       decimal.Decimal `json:"total"`
	Kind        LineKind        `json:"kind"`
}

// Item builds a quantity-priced line
func Item(description string, quantity, unitPrice decimal.Decimal) LineItem {
	return LineItem{
		Description: description,
		Quantity:    quantity,
		UnitPrice:   unitPrice,
		Total:       quantity.Mul(unitPrice),
		Kind:        KindStandard,
	}
}

// Flat builds a lump-sum line
func Flat(description string, amount decimal.Decimal) LineItem {
	return lump(description, amount, KindFlat)
}

// Tax builds a tax line rounded to cents
func Tax(description string, amount decimal.Decimal) LineItem {
	return lump(description, amount.Round(2), KindTax)
}

// Discount builds a discount line rounded to cents
func Discount(description string, amount decimal.Decimal) LineItem {
	return lump(description, amount.Round(2), KindDiscount)
}

func lump(description string, amount decimal.Decimal, kind LineKind) LineItem {
	return LineItem{
		Description: description,
		Quantity:    decimal.NewFromInt(1),
		UnitPrice:   amount,
		Total:       amount,
		Kind:        kind,
	}
}

// ShowQuantity reports whether the quantity column is meaningful
func (li LineItem) ShowQuantity() bool {
	return li.Kind == KindStandard || li.Kind == ""
}

// Discountable reports whether a PAP discount may reduce this line
func (li LineItem) Discountable() bool {
	return li.Kind != KindTax && li.Kind != KindDiscount
}

// Breakdown is the nested cost breakdown. Every category in Categories
// is present, even when it has no items.
type Breakdown struct {
	Items      map[Category][]LineItem      `json:"items"`
	Totals     map[Category]decimal.Decimal `json:"totals"`
	GrandTotal decimal.Decimal              `json:"grandTotal"`
}

// NewBreakdown returns a breakdown with every category empty
func NewBreakdown() *Breakdown {
	b := &Breakdown{
		Items:  make(map[Category][]LineItem, len(Categories)),
		Totals: make(map[Category]decimal.Decimal, len(Categories)),
	}
	for _, c := range Categories {
		b.Items[c] = []LineItem{}
		b.Totals[c] = decimal.Zero
	}
	b.GrandTotal = decimal.Zero
	return b
}

// Add appends items to a category. Unknown categories are a programming
// error.
func (b *Breakdown) Add(c Category, items ...LineItem) error {
	if !c.Valid() {
		return errors.Newf(errors.TypeBreakdown, "unknown category %q", c)
	}
	b.Items[c] = append(b.Items[c], items...)
	return nil
}

// Recalculate recomputes category totals and the grand total
func (b *Breakdown) Recalculate() {
	grand := decimal.Zero
	for _, c := range Categories {
		sum := decimal.Zero
		for _, item := range b.Items[c] {
			sum = sum.Add(item.Total)
		}
		b.Totals[c] = sum
		grand = grand.Add(sum)
	}
	b.GrandTotal = grand
}

// DiscountableSubtotal sums the lines of c a discount may apply to
func (b *Breakdown) DiscountableSubtotal(c Category) decimal.Decimal {
	sum := decimal.Zero
	for _, item := range b.Items[c] {
		if item.Discountable() {
			sum = sum.Add(item.Total)
		}
	}
	return sum
}

// Verify checks the breakdown invariants
func (b *Breakdown) Verify() error {
	grand := decimal.Zero
	for _, c := range Categories {
		items, ok := b.Items[c]
		if !ok {
			return errors.Newf(errors.TypeBreakdown, "category %q missing", c)
		}
		sum := decimal.Zero
		for _, item := range items {
			if item.Kind == KindStandard && !item.Quantity.Mul(item.UnitPrice).Equal(item.Total) {
				return errors.Newf(errors.TypeBreakdown, "%s: %q total %s != %s x %s",
					c, item.Description, item.Total, item.Quantity, item.UnitPrice)
			}
			sum = sum.Add(item.Total)
		}
		if !sum.Equal(b.Totals[c]) {
			return errors.Newf(errors.TypeBreakdown, "%s: total %s != sum of items %s", c, b.Totals[c], sum)
		}
		grand = grand.Add(sum)
	}
	for c := range b.Items {
		if !c.Valid() {
			return errors.Newf(errors.TypeBreakdown, "unknown category %q", c)
		}
	}
	if !grand.Equal(b.GrandTotal) {
		return errors.Newf(errors.TypeBreakdown, "grand total %s != sum of categories %s", b.GrandTotal, grand)
	}
	return nil
}

// ItemCount is the number of line items across all categories
func (b *Breakdown) ItemCount() int {
	n := 0
	for _, items := range b.Items {
		n += len(items)
	}
	return n
}

// DiscountTotal sums every discount line; the result is zero or negative
func (b *Breakdown) DiscountTotal() decimal.Decimal {
	sum := decimal.Zero
	for _, c := range Categories {
		for _, item := range b.Items[c] {
			if item.Kind == KindDiscount {
				sum = sum.Add(item.Total)
			}
		}
	}
	return sum
}
