package pricing

// Default returns the complete built-in rate table. Every override is
// merged onto this snapshot, so no rate is ever undefined.
func Default() Rates {
	return Rates{
		Markup: Markup{
			OverheadMultiplier:          1.01,
			TargetMargin:                0.70,
			RoundTo:                     10,
			DigCommissionRate:           0.0275,
			AdminFeeRate:                0.029,
			CloseoutCommissionRate:      0.0275,
			G3UpgradeCost:               1250,
			NegativeAdjustmentWarnRatio: 0.18,
			SalesTaxRate:                0,
		},
		PAPDiscountRates: map[string]float64{
			"excavation":         0.10,
			"plumbing":           0.10,
			"steel":              0.10,
			"electrical":         0,
			"shotcrete":          0.10,
			"tileCopingLabor":    0.10,
			"tileCopingMaterial": 0.10,
			"equipment":          0.10,
			"interiorFinish":     0.10,
			"startup":            0.10,
		},
		Geometry: Geometry{
			GallonsPerCubicFoot: 7.6,
			TanningShelfGallons: 850,
			FiberglassGallons: map[string]float64{
				"small":    8000,
				"medium":   12000,
				"large":    16000,
				"crystite": 10000,
			},
		},
		Plans:  Plans{PoolOnly: 410, Spa: 80, PerWaterFeature: 10},
		Layout: Layout{PoolOnly: 50, Spa: 15, SiltFencing: 500},
		Permit: Permit{PoolOnly: 850, Spa: 150, PermitRunner: 75},
		Excavation: Excavation{
			BaseRanges: []BaseRange{
				{MaxSqft: 400, Price: 2700},
				{MaxSqft: 500, Price: 2775},
				{MaxSqft: 600, Price: 2850},
				{MaxSqft: 700, Price: 2925},
				{MaxSqft: 800, Price: 3000},
				{MaxSqft: 900, Price: 3075},
				{MaxSqft: 1000, Price: 3150},
			},
			OverMaxPrice:         4900,
			Additional6InchDepth: 90,
			BaseSpa:              200,
			RaisedSpa:            350,
			RBB: map[string]float64{
				"6":  5,
				"12": 6.5,
				"18": 7.5,
				"24": 8.5,
				"30": 9,
				"36": 10,
			},
			Facing: map[string]FacingRate{
				"tile":          {Labor: 0, Material: 0},
				"panel-ledge":   {Labor: 12.5, Material: 13},
				"stacked-stone": {Labor: 16, Material: 27},
			},
			ColumnPerFt: 500,
			RetainingWalls: []RetainingWall{
				{Key: "standard-12", Name: `12" High - Standard`, HeightFt: 2, CostPerSqft: 50},
				{Key: "standard-24", Name: `24" High - Standard`, HeightFt: 3, CostPerSqft: 50},
				{Key: "standard-36", Name: `36" High - Standard`, HeightFt: 4, CostPerSqft: 50},
				{Key: "standard-48", Name: `48" High - Standard`, HeightFt: 5, CostPerSqft: 50},
				{Key: "cmu-veneer-1-24", Name: `24" High - CMU - Veneer Facing - 1-Side`, HeightFt: 3, CostPerSqft: 65},
				{Key: "cmu-veneer-1-36", Name: `36" High - CMU - Veneer Facing - 1-Side`, HeightFt: 4, CostPerSqft: 65},
				{Key: "cmu-veneer-2-24", Name: `24" High - CMU - Veneer Facing - 2-Sides`, HeightFt: 3, CostPerSqft: 75},
				{Key: "cmu-veneer-2-36", Name: `36" High - CMU - Veneer Facing - 2-Sides`, HeightFt: 4, CostPerSqft: 75},
				{Key: "block-lnft", Name: "Segmental Block (per lnft)", HeightFt: 2, CostPerLnft: 95},
			},
			GravelPerSqft:      2.75,
			DirtHaulPerYard:    18,
			SoilSampleEngineer: 750,
			DoubleCurtain:      250,
			SitePrepPerHour:    200,
			CoverBox:           450,
			TravelPerMile:      7,
		},
		Plumbing: Plumbing{
			ShortStub:         550,
			SpaBase:           750,
			Skimmer:           Allowance{Threshold: 33, OverrunPerFt: 25},
			MainDrain:         Allowance{Threshold: 33, OverrunPerFt: 25},
			Spa:               Allowance{Threshold: 30, OverrunPerFt: 22},
			Cleaner:           Allowance{Threshold: 0, OverrunPerFt: 3.25},
			AutoFill:          Allowance{Threshold: 0, OverrunPerFt: 3.5},
			AdditionalSkimmer: 275,
			WaterFeatureRun: WaterFeatureRun{
				Setup:     200,
				Allowance: Allowance{Threshold: 30, OverrunPerFt: 5.5},
			},
			InfloorPerFt: 10,
		},
		Gas: Gas{
			Base: 1500,
			Run:  Allowance{Threshold: 25, OverrunPerFt: 11},
		},
		Electrical: Electrical{
			Base:            1650,
			Run:             Allowance{Threshold: 65, OverrunPerFt: 18},
			SpaHeater:       255,
			LightRun:        Allowance{Threshold: 100, OverrunPerFt: 2.75},
			AdditionalLight: 100,
			HeatPumpBase:    450,
			HeatPumpRun:     Allowance{Threshold: 40, OverrunPerFt: 6},
			Automation:      250,
			SaltSystem:      200,
		},
		Steel: Steel{
			PoolBasePerSqft:    2.5,
			SpaBase:            450,
			RaisedSpa:          150,
			StepsPerLnft:       8,
			TanningShelf:       275,
			DepthOver8FtPer6In: 80,
			RBBPerLnft: map[string]float64{
				"6":  3,
				"12": 4,
				"18": 5,
				"24": 6,
				"30": 7,
				"36": 7,
			},
			DoubleCurtainPerLnft: 35,
			SpaDoubleCurtain:     75,
			Bonding:              500,
		},
		Shotcrete: Shotcrete{
			ShellThicknessInches: 9,
			SpaYards:             6,
			Labor: ShotcreteLabor{
				PerYard:          90,
				MinimumYards:     32,
				Spa:              250,
				AutoCover:        250,
				Distance250To300: 500,
				Distance300To350: 1000,
				TravelPerMile:    7,
			},
			Material: ShotcreteMaterial{
				PerYard:        228,
				CleanOut:       125,
				EnvFuelPerYard: 25,
				Misc:           125,
				TaxRate:        0.0725,
			},
		},
		TileCoping: TileCoping{
			Tile: TileRates{
				Labor:    10,
				Material: 7,
				LevelUpgrade: map[string]float64{
					"1": 0,
					"2": 20,
					"3": 50,
				},
				StepTrimLabor:    10,
				StepTrimMaterial: 4,
			},
			Coping: map[string]FacingRate{
				"cantilever":        {Labor: 0, Material: 0},
				"flagstone":         {Labor: 15, Material: 27.5},
				"pavers":            {Labor: 12, Material: 9},
				"travertine-level1": {Labor: 12, Material: 11},
				"travertine-level2": {Labor: 12, Material: 12},
				"concrete":          {Labor: 0, Material: 0},
			},
			Decking: map[string]FacingRate{
				"pavers":            {Labor: 8, Material: 7},
				"travertine-level1": {Labor: 8, Material: 7.5},
				"travertine-level2": {Labor: 8, Material: 9.75},
				"concrete":          {Labor: 16.5, Material: 7},
			},
			ConcreteSteps:       FacingRate{Labor: 27, Material: 7.5},
			Bullnose:            FacingRate{Labor: 8, Material: 0},
			DoubleBullnose:      FacingRate{Labor: 8, Material: 0},
			Spillway:            FacingRate{Labor: 150, Material: 150},
			MaterialTaxRate:     0.0725,
			TileMaterialTaxRate: 0.075,
		},
		Masonry: Masonry{
			Rockwork: map[string]FacingRate{
				"panel-ledge":   {Labor: 12.5, Material: 13},
				"stacked-stone": {Labor: 16, Material: 27},
				"tile":          {Labor: 0, Material: 0},
			},
			RockworkMaterialWaste: 1.15,
			RaisedSpaFacing: map[string]FacingRate{
				"tile":          {Labor: 0, Material: 350},
				"ledgestone":    {Labor: 400, Material: 450},
				"stacked-stone": {Labor: 450, Material: 600},
			},
		},
		Drainage: Drainage{Base: 150, IncludedFt: 10, PerFtOver: 12.5},
		Equipment: Equipment{
			PumpOverheadMultiplier: 1.1,
			Pumps: Catalog{
				{Key: "jandy-vs-165", Name: "Jandy 1.65HP Variable Pump", BasePrice: 2310},
				{Key: "jandy-vs-185", Name: "Jandy 1.85HP Variable Pump", BasePrice: 2540},
				{Key: "jandy-vs-27", Name: "Jandy 2.7HP Variable Pump", BasePrice: 2174.15},
				{Key: "jandy-ss-10", Name: "Jandy 1.0HP Single Speed Pump", BasePrice: 1900},
				{Key: "jandy-ss-20", Name: "Jandy 2.0HP Single Speed Pump", BasePrice: 2060},
			},
			Filters: Catalog{
				{Key: "cartridge-200", Name: "200 SQFT Cartridge Filter", BasePrice: 1103.57},
				{Key: "cartridge-340", Name: "340 SQFT Cartridge Filter", BasePrice: 1618.57},
				{Key: "cartridge-460", Name: "460 SQFT Cartridge Filter", BasePrice: 1174.20},
				{Key: "cartridge-580", Name: "580 SQFT Cartridge Filter", BasePrice: 2133.57},
				{Key: "sand-49", Name: "4.9 SQFT Sand Filter", BasePrice: 1115.2},
				{Key: "de-60", Name: "60 SQFT DE Filter", BasePrice: 1224.37},
			},
			Cleaners: Catalog{
				{Key: "polaris-epic-iq", Name: "Polaris Epic IQ", BasePrice: 1540},
				{Key: "polaris-alpha-iq", Name: "Polaris Alpha IQ", BasePrice: 1397.13},
				{Key: "polaris-360", Name: "Polaris 360 Standard", BasePrice: 1618.57},
				{Key: "polaris-360-black", Name: "Polaris 360 Black", BasePrice: 1677.43},
				{Key: "polaris-280-booster", Name: "Polaris 280 w/ Booster", BasePrice: 2133.57},
			},
			Heaters: Catalog{
				{Key: "jandy-400k-versaflo", Name: "Jandy 400K BTU - VersaFlo", BasePrice: 3297, Flag: FlowCapable},
				{Key: "jandy-lxi-250k", Name: "Jandy LXI 250K BTU", BasePrice: 1885},
				{Key: "jandy-jxi-400k", Name: "Jandy JXI 400K - No Bypass", BasePrice: 2308},
				{Key: "jandy-jxi-400k-bypass", Name: "Jandy JXI 400K - w/ Bypass", BasePrice: 2475},
				{Key: "heat-pump", Name: "Heat Pump", BasePrice: 4200, Flag: HeatPumpFlag},
			},
			PoolLights: Catalog{
				{Key: "nicheless-led-24w", Name: "24W Nicheless LED", BasePrice: 601},
				{Key: "low-voltage-led", Name: "Low Voltage LED", BasePrice: 650},
			},
			SpaLights: Catalog{
				{Key: "spa-led", Name: "Spa LED", BasePrice: 528},
				{Key: "spa-color-led", Name: "Spa Color LED", BasePrice: 650},
			},
			Automation: Catalog{
				{Key: "apl-6614", Name: "6614 APL BASE PANEL", BasePrice: 1600},
				{Key: "apl-6614-jva", Name: "Additional JVA", BasePrice: 1800},
				{Key: "tcx", Name: "Jandy TCX Controler (1 JVA, Lights and Heater Control)", BasePrice: 2250},
				{Key: "iaqualink-p4", Name: "iAqualink Only P-4", BasePrice: 2575},
				{Key: "iaqualink-ps6", Name: "iAqualink Only PS-6", BasePrice: 3722},
				{Key: "iaqualink-ps8", Name: "iAqualink Only PS-8", BasePrice: 4525},
				{Key: "iaqualink-ps8-premium", Name: "iAqualink PS-8 Premium", BasePrice: 4525, PercentIncrease: 15},
			},
			SaltSystems: Catalog{
				{Key: "aquapure-1400", Name: "Jandy AquaPure 1400", BasePrice: 0},
				{Key: "tru-clear", Name: "Jandy Tru-Clear", BasePrice: 1150},
				{Key: "fusion-soft", Name: "Salt/mineral System - Fusion Soft", BasePrice: 1000},
			},
			AutoFillSystems: Catalog{
				{Key: "auto-fill", Name: "Auto-Fill System", BasePrice: 0},
				{Key: "levolor-k1100", Name: "Levolor K1100 Auto-Fill", BasePrice: 385},
			},
			AutomationZoneAddon:  365,
			HeaterFlowUpgradeKey: "jandy-400k-versaflo",
			TaxRate:              0.0725,
		},
		EquipmentSet: EquipmentSet{Base: 750, Spa: 100, Automation: 200, HeatPump: 100, AuxiliaryPump: 150},
		WaterFeatures: Catalog{
			{Key: "sheer-12", Name: `Sheer Descent 12"`, Category: GroupSheerDescent, BasePrice: 760, SpanInches: 12},
			{Key: "sheer-18", Name: `Sheer Descent 18"`, Category: GroupSheerDescent, BasePrice: 780, SpanInches: 18},
			{Key: "sheer-2ft", Name: "Sheer Descent 2'", Category: GroupSheerDescent, BasePrice: 820, SpanInches: 24},
			{Key: "sheer-3ft", Name: "Sheer Descent 3'", Category: GroupSheerDescent, BasePrice: 880, SpanInches: 36},
			{Key: "sheer-4ft", Name: "Sheer Descent 4'", Category: GroupSheerDescent, BasePrice: 1000, SpanInches: 48},
			{Key: "sheer-5ft", Name: "Sheer Descent 5'", Category: GroupSheerDescent, BasePrice: 1120, SpanInches: 60},
			{Key: "sheer-6ft", Name: "Sheer Descent 6'", Category: GroupSheerDescent, BasePrice: 1300, SpanInches: 72},
			{Key: "jet-deck", Name: "Deck Jet", Category: GroupJet, BasePrice: 420},
			{Key: "jet-laminar", Name: "Laminar Jet", Category: GroupJet, BasePrice: 1760},
			{Key: "wok-water-24", Name: `Wok Pot 24" - Water Only`, Category: GroupWokWater, BasePrice: 1920, SpanInches: 24},
			{Key: "wok-water-30", Name: `Wok Pot 30" - Water Only`, Category: GroupWokWater, BasePrice: 2060, SpanInches: 30},
			{Key: "wok-water-36", Name: `Wok Pot 36" - Water Only`, Category: GroupWokWater, BasePrice: 2260, SpanInches: 36},
			{Key: "wok-fire-24", Name: `Wok Pot 24" - Fire Only`, Category: GroupWokFire, BasePrice: 1760, SpanInches: 24},
			{Key: "wok-fire-30", Name: `Wok Pot 30" - Fire Only`, Category: GroupWokFire, BasePrice: 2100, SpanInches: 30},
			{Key: "wok-water-fire-24", Name: `Wok Pot 24" - Water & Fire`, Category: GroupWokWaterFire, BasePrice: 5060, SpanInches: 24},
			{Key: "wok-water-fire-30", Name: `Wok Pot 30" - Water & Fire`, Category: GroupWokWaterFire, BasePrice: 6020, SpanInches: 30},
			{Key: "bubbler-led", Name: "LED Bubbler", Category: GroupBubbler, BasePrice: 1380},
		},
		Interior: Interior{
			Finishes: []Finish{
				{Key: "ivory-quartz", Name: "Ivory Quartz", LaborBase: 2100, LaborPer100Sqft: 200, MaterialPerSqft: 5.5, SpaLabor: 450, SpaMaterial: 850},
				{Key: "pebble-tec-l1", Name: "Pebble Tec - Level 1", LaborBase: 2400, LaborPer100Sqft: 225, MaterialPerSqft: 6.3, SpaLabor: 500, SpaMaterial: 1150},
				{Key: "pebble-tec-l2", Name: "Pebble Tec - Level 2", LaborBase: 2400, LaborPer100Sqft: 225, MaterialPerSqft: 7.9, SpaLabor: 500, SpaMaterial: 1150},
				{Key: "pebble-tec-l3", Name: "Pebble Tec - Level 3", LaborBase: 2400, LaborPer100Sqft: 225, MaterialPerSqft: 8.85, SpaLabor: 500, SpaMaterial: 1150},
				{Key: "pebble-sheen-l1", Name: "Pebble Sheen - Level 1", LaborBase: 2500, LaborPer100Sqft: 240, MaterialPerSqft: 6.75, SpaLabor: 525, SpaMaterial: 1250},
				{Key: "pebble-fina-l1", Name: "Pebble Fina - Level 1", LaborBase: 2500, LaborPer100Sqft: 240, MaterialPerSqft: 7.75, SpaLabor: 525, SpaMaterial: 1050},
				{Key: "pebble-brilliance", Name: "Pebble Brilliance", LaborBase: 2800, LaborPer100Sqft: 260, MaterialPerSqft: 17, SpaLabor: 550, SpaMaterial: 1050},
			},
			LaborFloorSqft:       500,
			MinimumChargeSqft:    850,
			PoolPrepBase:         750,
			PoolPrepThreshold:    1200,
			PoolPrepOverRate:     1,
			SpaPrep:              100,
			WaterproofingPerSqft: 1.95,
		},
		WaterTruck: WaterTruck{Base: 490, LoadSizeGallons: 7000},
		Cleanup:    Cleanup{BasePool: 700, Spa: 100, PerSqftOver500: 0.5, RoughGrading: 700},
		Fiberglass: Fiberglass{
			SizePrices: map[string]float64{
				"small":    12192,
				"medium":   15120,
				"large":    18228,
				"crystite": 16632,
			},
			Models: []FiberglassModel{
				{Key: "caeser", Name: "Caeser", Size: "small", Price: 11325, Perimeter: 48},
				{Key: "chateau-gayla-12", Name: "Chateau & Gayla 12", Size: "small", Price: 14825, Perimeter: 70},
				{Key: "gayla-12-freeport", Name: "Gayla 12/Freeport", Size: "small", Price: 14375, Perimeter: 64},
				{Key: "lotus-12-bermuda", Name: "Lotus 12/Bermuda", Size: "small", Price: 15375, Perimeter: 73},
			},
			SpaModels: Catalog{
				{Key: "meridian", Name: "Meridian", BasePrice: 4794},
				{Key: "mystic", Name: "Mystic", BasePrice: 4575},
				{Key: "regal", Name: "Regal", BasePrice: 5000},
				{Key: "royal", Name: "Royal", BasePrice: 5000},
				{Key: "shasta", Name: "Shasta", BasePrice: 4150},
			},
			Cranes: Catalog{
				{Key: "no-crane", Name: "No Crane", BasePrice: 150},
				{Key: "crane", Name: "Crane", BasePrice: 2500},
			},
			Spillover:     1000,
			Freight:       900,
			DiscountRate:  0.10,
			TaxRate:       0.0725,
			InstallLabor:  2500,
			InstallGravel: 600,
		},
		Startup:        Startup{Base: 700, AutomationAdd: 300},
		CustomFeatures: CustomFeatures{MaxEntries: 7},
	}
}
