// Package pricing holds the franchise rate table: its schema, the
// built-in default snapshot, deep-merge of partial overrides, catalog
// lookups and the cached provider that loads tables from a store.
package pricing

// Rates is the decoded rate table. Rates are plain float64 so documents
// decode without ceremony; calculation converts them to decimals.
type Rates struct {
	Markup           Markup             `json:"markup"`
	PAPDiscountRates map[string]float64 `json:"papDiscountRates"`
	Geometry         Geometry           `json:"geometry"`
	Plans            Plans              `json:"plans"`
	Layout           Layout             `json:"layout"`
	Permit           Permit             `json:"permit"`
	Excavation       Excavation         `json:"excavation"`
	Plumbing         Plumbing           `json:"plumbing"`
	Gas              Gas                `json:"gas"`
	Electrical       Electrical         `json:"electrical"`
	Steel            Steel              `json:"steel"`
	Shotcrete        Shotcrete          `json:"shotcrete"`
	TileCoping       TileCoping         `json:"tileCoping"`
	Masonry          Masonry            `json:"masonry"`
	Drainage         Drainage           `json:"drainage"`
	Equipment        Equipment          `json:"equipment"`
	EquipmentSet     EquipmentSet       `json:"equipmentSet"`
	WaterFeatures    Catalog            `json:"waterFeatures"`
	Interior         Interior           `json:"interiorFinish"`
	WaterTruck       WaterTruck         `json:"waterTruck"`
	Cleanup          Cleanup            `json:"cleanup"`
	Fiberglass       Fiberglass         `json:"fiberglass"`
	Startup          Startup            `json:"startup"`
	CustomFeatures   CustomFeatures     `json:"customFeatures"`
}

// Markup is the retail configuration applied to COGS
type Markup struct {
	OverheadMultiplier          float64 `json:"overheadMultiplier"`
	TargetMargin                float64 `json:"targetMargin"`
	RoundTo                     float64 `json:"roundTo"`
	DigCommissionRate           float64 `json:"digCommissionRate"`
	AdminFeeRate                float64 `json:"adminFeeRate"`
	CloseoutCommissionRate      float64 `json:"closeoutCommissionRate"`
	G3UpgradeCost               float64 `json:"g3UpgradeCost"`
	NegativeAdjustmentWarnRatio float64 `json:"negativeAdjustmentWarnRatio"`
	SalesTaxRate                float64 `json:"salesTaxRate"`
}

// Geometry constants used to derive gallons
type Geometry struct {
	GallonsPerCubicFoot float64            `json:"gallonsPerCubicFoot"`
	TanningShelfGallons float64            `json:"tanningShelfGallons"`
	FiberglassGallons   map[string]float64 `json:"fiberglassGallons"`
}

// Allowance is an included run length with a per-foot overrun rate
type Allowance struct {
	Threshold    float64 `json:"threshold"`
	OverrunPerFt float64 `json:"overrunPerFt"`
}

type Plans struct {
	PoolOnly        float64 `json:"poolOnly"`
	Spa             float64 `json:"spa"`
	PerWaterFeature float64 `json:"perWaterFeature"`
}

type Layout struct {
	PoolOnly    float64 `json:"poolOnly"`
	Spa         float64 `json:"spa"`
	SiltFencing float64 `json:"siltFencing"`
}

type Permit struct {
	PoolOnly     float64 `json:"poolOnly"`
	Spa          float64 `json:"spa"`
	PermitRunner float64 `json:"permitRunner"`
}

// BaseRange prices excavation for pools up to MaxSqft
type BaseRange struct {
	MaxSqft float64 `json:"maxSqft"`
	Price   float64 `json:"price"`
}

// FacingRate is a per-sqft labor and material pair
type FacingRate struct {
	Labor    float64 `json:"labor"`
	Material float64 `json:"material"`
}

// RetainingWall is a wall type priced per linear foot, or per face sqft
// when CostPerLnft is zero.
type RetainingWall struct {
	Key         string  `json:"key"`
	Name        string  `json:"name"`
	HeightFt    float64 `json:"heightFt"`
	CostPerSqft float64 `json:"costPerSqft"`
	CostPerLnft float64 `json:"costPerLnft"`
}

type Excavation struct {
	BaseRanges           []BaseRange           `json:"baseRanges"`
	OverMaxPrice         float64               `json:"over1000Sqft"`
	Additional6InchDepth float64               `json:"additional6InchDepth"`
	BaseSpa              float64               `json:"baseSpa"`
	RaisedSpa            float64               `json:"raisedSpa"`
	RBB                  map[string]float64    `json:"rbb"`
	Facing               map[string]FacingRate `json:"facing"`
	ColumnPerFt          float64               `json:"columnPerFt"`
	RetainingWalls       []RetainingWall       `json:"retainingWalls"`
	GravelPerSqft        float64               `json:"gravelPerSqft"`
	DirtHaulPerYard      float64               `json:"dirtHaulPerYard"`
	SoilSampleEngineer   float64               `json:"soilSampleEngineer"`
	DoubleCurtain        float64               `json:"doubleCurtain"`
	SitePrepPerHour      float64               `json:"sitePrepPerHour"`
	CoverBox             float64               `json:"coverBox"`
	TravelPerMile        float64               `json:"travelPerMile"`
}

// WaterFeatureRun is the plumbing for a water feature
type WaterFeatureRun struct {
	Setup float64 `json:"setup"`
	Allowance
}

type Plumbing struct {
	ShortStub         float64         `json:"shortStub"`
	SpaBase           float64         `json:"spaBase"`
	Skimmer           Allowance       `json:"skimmer"`
	MainDrain         Allowance       `json:"mainDrain"`
	Spa               Allowance       `json:"spa"`
	Cleaner           Allowance       `json:"cleaner"`
	AutoFill          Allowance       `json:"autoFill"`
	AdditionalSkimmer float64         `json:"additionalSkimmer"`
	WaterFeatureRun   WaterFeatureRun `json:"waterFeatureRun"`
	InfloorPerFt      float64         `json:"infloorPerFt"`
}

type Gas struct {
	Base float64   `json:"base"`
	Run  Allowance `json:"run"`
}

type Electrical struct {
	Base            float64   `json:"base"`
	Run             Allowance `json:"run"`
	SpaHeater       float64   `json:"spaHeater"`
	LightRun        Allowance `json:"lightRun"`
	AdditionalLight float64   `json:"additionalLight"`
	HeatPumpBase    float64   `json:"heatPumpBase"`
	HeatPumpRun     Allowance `json:"heatPumpRun"`
	Automation      float64   `json:"automation"`
	SaltSystem      float64   `json:"saltSystem"`
}

type Steel struct {
	PoolBasePerSqft      float64            `json:"poolBasePerSqft"`
	SpaBase              float64            `json:"spaBase"`
	RaisedSpa            float64            `json:"raisedSpa"`
	StepsPerLnft         float64            `json:"stepsPerLnft"`
	TanningShelf         float64            `json:"tanningShelf"`
	DepthOver8FtPer6In   float64            `json:"depthOver8Ft"`
	RBBPerLnft           map[string]float64 `json:"rbbPerLnft"`
	DoubleCurtainPerLnft float64            `json:"doubleCurtainPerLnft"`
	SpaDoubleCurtain     float64            `json:"spaDoubleCurtain"`
	Bonding              float64            `json:"poolBonding"`
}

type ShotcreteLabor struct {
	PerYard          float64 `json:"perYard"`
	MinimumYards     float64 `json:"minimumYards"`
	Spa              float64 `json:"spa"`
	AutoCover        float64 `json:"autoCover"`
	Distance250To300 float64 `json:"distance250to300"`
	Distance300To350 float64 `json:"distance300to350"`
	TravelPerMile    float64 `json:"travelPerMile"`
}

type ShotcreteMaterial struct {
	PerYard        float64 `json:"perYard"`
	CleanOut       float64 `json:"cleanOut"`
	EnvFuelPerYard float64 `json:"envFuelPerYard"`
	Misc           float64 `json:"misc"`
	TaxRate        float64 `json:"taxRate"`
}

type Shotcrete struct {
	ShellThicknessInches float64           `json:"shellThicknessInches"`
	SpaYards             float64           `json:"spaYards"`
	Labor                ShotcreteLabor    `json:"labor"`
	Material             ShotcreteMaterial `json:"material"`
}

// TileRates are per-linear-foot waterline tile rates
type TileRates struct {
	Labor            float64            `json:"labor"`
	Material         float64            `json:"material"`
	LevelUpgrade     map[string]float64 `json:"levelUpgrade"`
	StepTrimLabor    float64            `json:"stepTrimLabor"`
	StepTrimMaterial float64            `json:"stepTrimMaterial"`
}

type TileCoping struct {
	Tile                TileRates             `json:"tile"`
	Coping              map[string]FacingRate `json:"coping"`
	Decking             map[string]FacingRate `json:"decking"`
	ConcreteSteps       FacingRate            `json:"concreteSteps"`
	Bullnose            FacingRate            `json:"bullnose"`
	DoubleBullnose      FacingRate            `json:"doubleBullnose"`
	Spillway            FacingRate            `json:"spillway"`
	MaterialTaxRate     float64               `json:"materialTaxRate"`
	TileMaterialTaxRate float64               `json:"tileMaterialTaxRate"`
}

type Masonry struct {
	Rockwork              map[string]FacingRate `json:"rockwork"`
	RockworkMaterialWaste float64               `json:"rockworkMaterialWaste"`
	RaisedSpaFacing       map[string]FacingRate `json:"raisedSpaFacing"`
}

type Drainage struct {
	Base       float64 `json:"base"`
	IncludedFt float64 `json:"includedFt"`
	PerFtOver  float64 `json:"perFtOver"`
}

type Equipment struct {
	PumpOverheadMultiplier float64 `json:"pumpOverheadMultiplier"`
	Pumps                  Catalog `json:"pumps"`
	Filters                Catalog `json:"filters"`
	Cleaners               Catalog `json:"cleaners"`
	Heaters                Catalog `json:"heaters"`
	PoolLights             Catalog `json:"poolLights"`
	SpaLights              Catalog `json:"spaLights"`
	Automation             Catalog `json:"automation"`
	SaltSystems            Catalog `json:"saltSystems"`
	AutoFillSystems        Catalog `json:"autoFillSystems"`
	AutomationZoneAddon    float64 `json:"automationZoneAddon"`
	HeaterFlowUpgradeKey   string  `json:"heaterFlowUpgradeKey"`
	TaxRate                float64 `json:"taxRate"`
}

type EquipmentSet struct {
	Base          float64 `json:"base"`
	Spa           float64 `json:"spa"`
	Automation    float64 `json:"automation"`
	HeatPump      float64 `json:"heatPump"`
	AuxiliaryPump float64 `json:"auxiliaryPump"`
}

// Finish is an interior finish with its labor and material rates
type Finish struct {
	Key             string  `json:"key"`
	Name            string  `json:"name"`
	LaborBase       float64 `json:"laborBase"`
	LaborPer100Sqft float64 `json:"laborPer100Sqft"`
	MaterialPerSqft float64 `json:"materialPerSqft"`
	SpaLabor        float64 `json:"spaLabor"`
	SpaMaterial     float64 `json:"spaMaterial"`
}

type Interior struct {
	Finishes             []Finish `json:"finishes"`
	LaborFloorSqft       float64  `json:"laborFloorSqft"`
	MinimumChargeSqft    float64  `json:"minimumChargeSqft"`
	PoolPrepBase         float64  `json:"poolPrepBase"`
	PoolPrepThreshold    float64  `json:"poolPrepThreshold"`
	PoolPrepOverRate     float64  `json:"poolPrepOverRate"`
	SpaPrep              float64  `json:"spaPrep"`
	WaterproofingPerSqft float64  `json:"waterproofingPerSqft"`
}

type WaterTruck struct {
	Base            float64 `json:"base"`
	LoadSizeGallons float64 `json:"loadSizeGallons"`
}

type Cleanup struct {
	BasePool       float64 `json:"basePool"`
	Spa            float64 `json:"spa"`
	PerSqftOver500 float64 `json:"perSqftOver500"`
	RoughGrading   float64 `json:"roughGrading"`
}

// FiberglassModel is a manufactured shell
type FiberglassModel struct {
	Key       string  `json:"key"`
	Name      string  `json:"name"`
	Size      string  `json:"size"`
	Price     float64 `json:"price"`
	Perimeter float64 `json:"perimeter"`
	Gallons   float64 `json:"gallons"`
}

type Fiberglass struct {
	SizePrices    map[string]float64 `json:"sizePrices"`
	Models        []FiberglassModel  `json:"models"`
	SpaModels     Catalog            `json:"spaModels"`
	Cranes        Catalog            `json:"cranes"`
	Spillover     float64            `json:"spillover"`
	Freight       float64            `json:"freight"`
	DiscountRate  float64            `json:"discountRate"`
	TaxRate       float64            `json:"taxRate"`
	InstallLabor  float64            `json:"installLabor"`
	InstallGravel float64            `json:"installGravel"`
}

type Startup struct {
	Base          float64 `json:"base"`
	AutomationAdd float64 `json:"automationAdd"`
}

type CustomFeatures struct {
	MaxEntries int `json:"maxEntries"`
}

// FindModel returns the fiberglass model with key, if any
func (f Fiberglass) FindModel(key string) (FiberglassModel, bool) {
	for _, m := range f.Models {
		if m.Key == key {
			return m, true
		}
	}
	return FiberglassModel{}, false
}

// FindFinish returns the interior finish with key, if any
func (i Interior) FindFinish(key string) (Finish, bool) {
	for _, f := range i.Finishes {
		if f.Key == key {
			return f, true
		}
	}
	return Finish{}, false
}

// FindRetainingWall returns the wall type with key, if any
func (e Excavation) FindRetainingWall(key string) (RetainingWall, bool) {
	for _, w := range e.RetainingWalls {
		if w.Key == key {
			return w, true
		}
	}
	return RetainingWall{}, false
}
