// Package types holds the records exchanged with the pricing engine:
// the project specification going in, the cost breakdown and pricing
// result coming out.
package types

// PoolType distinguishes custom-built from manufactured shells
type PoolType string

const (
	PoolGunite     PoolType = "gunite"
	PoolFiberglass PoolType = "fiberglass"
)

// SpaType describes the spa attached to the pool, if any
type SpaType string

const (
	SpaNone       SpaType = "none"
	SpaGunite     SpaType = "gunite"
	SpaFiberglass SpaType = "fiberglass"
)

// SpaShape selects the perimeter formula for custom spas
type SpaShape string

const (
	SpaRound       SpaShape = "round"
	SpaRectangular SpaShape = "rectangular"
)

// Specification is a full project description. The engine reads it and
// never writes to it. Missing numeric fields are zero.
type Specification struct {
	Customer          Customer          `json:"customer" yaml:"customer"`
	Pool              Pool              `json:"pool" yaml:"pool"`
	Excavation        Excavation        `json:"excavation" yaml:"excavation"`
	Plumbing          PlumbingRuns      `json:"plumbing" yaml:"plumbing"`
	Electrical        ElectricalRuns    `json:"electrical" yaml:"electrical"`
	TileCopingDecking TileCopingDecking `json:"tileCopingDecking" yaml:"tileCopingDecking"`
	Drainage          Drainage          `json:"drainage" yaml:"drainage"`
	Equipment         Equipment         `json:"equipment" yaml:"equipment"`
	WaterFeatures     WaterFeatures     `json:"waterFeatures" yaml:"waterFeatures"`
	InteriorFinish    InteriorFinish    `json:"interiorFinish" yaml:"interiorFinish"`
	CustomFeatures    []CustomFeature   `json:"customFeatures" yaml:"customFeatures"`
	Adjustments       ManualAdjustments `json:"manualAdjustments" yaml:"manualAdjustments"`
}

// Customer carries proposal metadata and the rate table the proposal
// was priced against.
type Customer struct {
	Name        string `json:"customerName" yaml:"customerName"`
	City        string `json:"city" yaml:"city"`
	Address     string `json:"address" yaml:"address"`
	Designer    string `json:"designerName" yaml:"designerName"`
	FranchiseID string `json:"franchiseId" yaml:"franchiseId"`
	RateTableID string `json:"rateTableId" yaml:"rateTableId"`
}

// Pool describes shell geometry, spa and site access
type Pool struct {
	Type            PoolType `json:"poolType" yaml:"poolType"`
	Perimeter       float64  `json:"perimeter" yaml:"perimeter"`
	SurfaceArea     float64  `json:"surfaceArea" yaml:"surfaceArea"`
	ShallowDepth    float64  `json:"shallowDepth" yaml:"shallowDepth"`
	EndDepth        float64  `json:"endDepth" yaml:"endDepth"`
	TotalStepsBench float64  `json:"totalStepsAndBench" yaml:"totalStepsAndBench"`
	HasTanningShelf bool     `json:"hasTanningShelf" yaml:"hasTanningShelf"`
	HasAutoCover    bool     `json:"hasAutomaticCover" yaml:"hasAutomaticCover"`

	FiberglassSize  string `json:"fiberglassSize" yaml:"fiberglassSize"`
	FiberglassModel string `json:"fiberglassModel" yaml:"fiberglassModel"`
	FiberglassCrane string `json:"fiberglassCrane" yaml:"fiberglassCrane"`
	HasG3Upgrade    bool   `json:"hasG3Upgrade" yaml:"hasG3Upgrade"`

	SpaType            SpaType  `json:"spaType" yaml:"spaType"`
	SpaShape           SpaShape `json:"spaShape" yaml:"spaShape"`
	SpaLength          float64  `json:"spaLength" yaml:"spaLength"`
	SpaWidth           float64  `json:"spaWidth" yaml:"spaWidth"`
	SpaPerimeter       float64  `json:"spaPerimeter" yaml:"spaPerimeter"`
	IsRaisedSpa        bool     `json:"isRaisedSpa" yaml:"isRaisedSpa"`
	SpaFiberglassModel string   `json:"spaFiberglassModel" yaml:"spaFiberglassModel"`

	// PoolToStreetDistance is a tier: 0 under 250ft, 1 for 250-300ft, 2 for 300-350ft
	PoolToStreetDistance int     `json:"poolToStreetDistance" yaml:"poolToStreetDistance"`
	TravelDistance       float64 `json:"travelDistance" yaml:"travelDistance"`
}

// HasSpa reports whether a spa is part of the build
func (p Pool) HasSpa() bool {
	return p.SpaType == SpaGunite || p.SpaType == SpaFiberglass
}

// IsFiberglass reports whether the shell is manufactured
func (p Pool) IsFiberglass() bool {
	return p.Type == PoolFiberglass
}

// RBBLevel is one raised-bond-beam run
type RBBLevel struct {
	Height int     `json:"height" yaml:"height"`
	Length float64 `json:"length" yaml:"length"`
	Facing string  `json:"facing" yaml:"facing"`
}

// Columns are decorative columns with an optional facing
type Columns struct {
	Count  int     `json:"count" yaml:"count"`
	Width  float64 `json:"width" yaml:"width"`
	Depth  float64 `json:"depth" yaml:"depth"`
	Height float64 `json:"height" yaml:"height"`
	Facing string  `json:"facing" yaml:"facing"`
}

// Excavation covers dig, structural add-ons and site work
type Excavation struct {
	RBBLevels               []RBBLevel `json:"rbbLevels" yaml:"rbbLevels"`
	Columns                 Columns    `json:"columns" yaml:"columns"`
	RetainingWallType       string     `json:"retainingWallType" yaml:"retainingWallType"`
	RetainingWallLength     float64    `json:"retainingWallLength" yaml:"retainingWallLength"`
	HasGravelInstall        bool       `json:"hasGravelInstall" yaml:"hasGravelInstall"`
	HasDirtHaul             bool       `json:"hasDirtHaul" yaml:"hasDirtHaul"`
	HasSoilSampleEngineer   bool       `json:"needsSoilSampleEngineer" yaml:"needsSoilSampleEngineer"`
	HasDoubleCurtain        bool       `json:"hasDoubleCurtain" yaml:"hasDoubleCurtain"`
	DoubleCurtainLength     float64    `json:"doubleCurtainLength" yaml:"doubleCurtainLength"`
	AdditionalSitePrepHours float64    `json:"additionalSitePrepHours" yaml:"additionalSitePrepHours"`
	HasSiltFencing          bool       `json:"hasSiltFencing" yaml:"hasSiltFencing"`
}

// PlumbingRuns are run lengths in feet
type PlumbingRuns struct {
	Skimmer            float64 `json:"skimmerRun" yaml:"skimmerRun"`
	MainDrain          float64 `json:"mainDrainRun" yaml:"mainDrainRun"`
	Spa                float64 `json:"spaRun" yaml:"spaRun"`
	Cleaner            float64 `json:"cleanerRun" yaml:"cleanerRun"`
	AutoFill           float64 `json:"autoFillRun" yaml:"autoFillRun"`
	Gas                float64 `json:"gasRun" yaml:"gasRun"`
	WaterFeature       float64 `json:"waterFeature1Run" yaml:"waterFeature1Run"`
	Infloor            float64 `json:"infloorValveToEQ" yaml:"infloorValveToEQ"`
	AdditionalSkimmers int     `json:"additionalSkimmers" yaml:"additionalSkimmers"`
}

// ElectricalRuns are run lengths in feet
type ElectricalRuns struct {
	Electrical float64 `json:"electricalRun" yaml:"electricalRun"`
	Light      float64 `json:"lightRun" yaml:"lightRun"`
	HeatPump   float64 `json:"heatPumpElectricalRun" yaml:"heatPumpElectricalRun"`
}

// TileCopingDecking covers waterline tile, coping, decking and stonework
type TileCopingDecking struct {
	TileLevel            int     `json:"tileLevel" yaml:"tileLevel"`
	HasTrimTileOnSteps   bool    `json:"hasTrimTileOnSteps" yaml:"hasTrimTileOnSteps"`
	CopingType           string  `json:"copingType" yaml:"copingType"`
	CopingLength         float64 `json:"copingLength" yaml:"copingLength"`
	DeckingType          string  `json:"deckingType" yaml:"deckingType"`
	DeckingArea          float64 `json:"deckingArea" yaml:"deckingArea"`
	ConcreteStepsLength  float64 `json:"concreteStepsLength" yaml:"concreteStepsLength"`
	BullnoseLength       float64 `json:"bullnoseLnft" yaml:"bullnoseLnft"`
	DoubleBullnoseLength float64 `json:"doubleBullnoseLnft" yaml:"doubleBullnoseLnft"`
	SpillwayLength       float64 `json:"spillwayLnft" yaml:"spillwayLnft"`
	RockworkType         string  `json:"rockworkType" yaml:"rockworkType"`
	RockworkArea         float64 `json:"rockworkSqft" yaml:"rockworkSqft"`
	RaisedSpaFacing      string  `json:"raisedSpaFacing" yaml:"raisedSpaFacing"`
	HasRoughGrading      bool    `json:"hasRoughGrading" yaml:"hasRoughGrading"`
}

// Drainage run lengths in feet
type Drainage struct {
	Downspout   float64 `json:"downspoutTotalLF" yaml:"downspoutTotalLF"`
	DeckDrain   float64 `json:"deckDrainTotalLF" yaml:"deckDrainTotalLF"`
	FrenchDrain float64 `json:"frenchDrainTotalLF" yaml:"frenchDrainTotalLF"`
	BoxDrain    float64 `json:"boxDrainTotalLF" yaml:"boxDrainTotalLF"`
}

// TotalLength is the combined drain run
func (d Drainage) TotalLength() float64 {
	return d.Downspout + d.DeckDrain + d.FrenchDrain + d.BoxDrain
}

// WaterFeatureSelection picks a catalog item and a quantity
type WaterFeatureSelection struct {
	Key      string `json:"featureId" yaml:"featureId"`
	Quantity int    `json:"quantity" yaml:"quantity"`
}

// WaterFeatures is the list of selections
type WaterFeatures struct {
	Selections []WaterFeatureSelection `json:"selections" yaml:"selections"`
}

// InteriorFinish selects the plaster/pebble finish
type InteriorFinish struct {
	FinishType       string  `json:"finishType" yaml:"finishType"`
	SurfaceArea      float64 `json:"surfaceArea" yaml:"surfaceArea"`
	HasWaterproofing bool    `json:"hasWaterproofing" yaml:"hasWaterproofing"`
}

// CustomFeature is a free-form priced entry. Negative costs are price
// reductions.
type CustomFeature struct {
	Name         string  `json:"name" yaml:"name"`
	Description  string  `json:"description" yaml:"description"`
	LaborCost    float64 `json:"laborCost" yaml:"laborCost"`
	MaterialCost float64 `json:"materialCost" yaml:"materialCost"`
}

// ManualAdjustments move the retail price directly, after markup
type ManualAdjustments struct {
	Positive1 float64 `json:"positive1" yaml:"positive1"`
	Positive2 float64 `json:"positive2" yaml:"positive2"`
	Negative1 float64 `json:"negative1" yaml:"negative1"`
	Negative2 float64 `json:"negative2" yaml:"negative2"`
}

// Net returns positives minus negatives
func (a ManualAdjustments) Net() float64 {
	return a.Positive1 + a.Positive2 - a.Negative1 - a.Negative2
}

// Negatives returns the absolute size of the price reductions
func (a ManualAdjustments) Negatives() float64 {
	return abs(a.Negative1) + abs(a.Negative2)
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
