package types

import "github.com/shopspring/decimal"

// DiscountKey names a PAP discount bucket
type DiscountKey string

const (
	DiscountExcavation         DiscountKey = "excavation"
	DiscountPlumbing           DiscountKey = "plumbing"
	DiscountSteel              DiscountKey = "steel"
	DiscountElectrical         DiscountKey = "electrical"
	DiscountShotcrete          DiscountKey = "shotcrete"
	DiscountTileCopingLabor    DiscountKey = "tileCopingLabor"
	DiscountTileCopingMaterial DiscountKey = "tileCopingMaterial"
	DiscountEquipment          DiscountKey = "equipment"
	DiscountInteriorFinish     DiscountKey = "interiorFinish"
	DiscountStartup            DiscountKey = "startup"
)

// DiscountKeys lists buckets in application order
var DiscountKeys = []DiscountKey{
	DiscountExcavation,
	DiscountPlumbing,
	DiscountSteel,
	DiscountElectrical,
	DiscountShotcrete,
	DiscountTileCopingLabor,
	DiscountTileCopingMaterial,
	DiscountEquipment,
	DiscountInteriorFinish,
	DiscountStartup,
}

// DiscountScope maps each bucket to the categories it reduces
var DiscountScope = map[DiscountKey][]Category{
	DiscountExcavation:         {CategoryExcavation},
	DiscountPlumbing:           {CategoryPlumbing},
	DiscountSteel:              {CategorySteel},
	DiscountElectrical:         {CategoryElectrical},
	DiscountShotcrete:          {CategoryShotcreteLabor, CategoryShotcreteMaterial},
	DiscountTileCopingLabor:    {CategoryTileLabor, CategoryCopingDeckingLabor},
	DiscountTileCopingMaterial: {CategoryTileMaterial, CategoryCopingDeckingMaterial},
	DiscountEquipment:          {CategoryEquipmentOrdered},
	DiscountInteriorFinish:     {CategoryInteriorFinish},
	DiscountStartup:            {CategoryStartupOrientation},
}

// PAPDiscounts maps a bucket to a fraction in [0,1]
type PAPDiscounts map[DiscountKey]float64

// PricingResult is the retail side of an estimate
type PricingResult struct {
	TotalCOGS              decimal.Decimal `json:"totalCOGS"`
	BaseRetailPrice        decimal.Decimal `json:"baseRetailPrice"`
	G3UpgradeCost          decimal.Decimal `json:"g3UpgradeCost"`
	ManualAdjustments      decimal.Decimal `json:"manualAdjustments"`
	DiscountTotal          decimal.Decimal `json:"discountTotal"`
	RetailPrice            decimal.Decimal `json:"retailPrice"`
	DigCommissionRate      decimal.Decimal `json:"digCommissionRate"`
	DigCommission          decimal.Decimal `json:"digCommission"`
	AdminFeeRate           decimal.Decimal `json:"adminFeeRate"`
	AdminFee               decimal.Decimal `json:"adminFee"`
	CloseoutCommissionRate decimal.Decimal `json:"closeoutCommissionRate"`
	CloseoutCommission     decimal.Decimal `json:"closeoutCommission"`
	GrossProfit            decimal.Decimal `json:"grossProfit"`
	GrossProfitMargin      decimal.Decimal `json:"grossProfitMargin"`
}

// WarningCode identifies an advisory raised during calculation
type WarningCode string

const (
	WarnUnknownCatalogKey   WarningCode = "unknown_catalog_key"
	WarnUnknownDiscountKey  WarningCode = "unknown_discount_key"
	WarnCustomFeatureLimit  WarningCode = "custom_feature_limit"
	WarnNegativeAdjustments WarningCode = "negative_adjustments"
)

// Warning is advisory only; the estimate is still complete
type Warning struct {
	Code    WarningCode `json:"code"`
	Message string      `json:"message"`
}
