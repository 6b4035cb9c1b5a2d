package envelope

// Per-inch thermal resistance, ft²·°F·hr/BTU per inch of thickness.
const (
	FiberglassRPerInch     = 3.14
	MineralWoolRPerInch    = 4.00
	OpenCellFoamRPerInch   = 3.60
	ClosedCellFoamRPerInch = 6.50

	// WoodRPerInch is softwood framing lumber.
	WoodRPerInch = 1.25
)

// Fixed-layer R-values, ft²·°F·hr/BTU.
const (
	InteriorAirFilmR = 0.68
	ExteriorAirFilmR = 0.17
	DrywallR         = 0.45
	SidingR          = 0.62

	// StructuralSheathingR is 7/16" OSB, used for every non-insulated sheathing kind.
	StructuralSheathingR  = 0.62
	InsulatedR3SheathingR = 3.0
	InsulatedR6SheathingR = 6.0

	// InteriorThermalBreakR is the continuous layer added to both wall paths when enabled.
	InteriorThermalBreakR = 2.5

	// CeilingAirFilmsR is inside still air plus vented attic air. Ceiling inputs are
	// insulation-only R-values, unlike the wall which already embeds its films.
	CeilingAirFilmsR = 1.22
)

// Conversion constants.
const (
	BTUPerKWh   = 3412.0
	HoursPerDay = 24.0

	// SensibleHeatFactor is BTU/(hr·CFM·°F) for standard air.
	SensibleHeatFactor = 1.08

	// InfiltrationConstant is SensibleHeatFactor × (1/60 min/hr) × 24 hr/day, so that
	// annual infiltration BTU = 0.432 × ACHnat × volume × degree days.
	InfiltrationConstant = 0.432

	// WhPerKWh turns SEER (BTU/Wh) into BTU per kWh.
	WhPerKWh = 1000.0
)

// Clamps applied before dividing by user-supplied quantities.
const (
	MinCOP               = 0.5
	MinSEER              = 8.0
	MinWindowWallDivisor = 0.01
	MinStoryCount        = 1
)

const (
	DefaultFramingFraction = 0.23
	DefaultNatFactor       = 0.07
	DefaultOtherSiteKWh    = 8000.0
)

// FlashBattFoamDepthIn is the closed-cell layer sprayed before the batt fill.
const FlashBattFoamDepthIn = 1.0

var insulationRPerInch = map[InsulationKind]float64{
	InsulationFiberglass:     FiberglassRPerInch,
	InsulationMineralWool:    MineralWoolRPerInch,
	InsulationOpenCellFoam:   OpenCellFoamRPerInch,
	InsulationClosedCellFoam: ClosedCellFoamRPerInch,
}

// RPerInch returns the per-inch R of a homogeneous fill. Unknown kinds, and the
// composite flash & batt, fall back to fiberglass.
func RPerInch(k InsulationKind) float64 {
	if r, ok := insulationRPerInch[k]; ok {
		return r
	}
	return FiberglassRPerInch
}

// SheathingR returns the R-value the sheathing layer adds to each wall path.
func SheathingR(k SheathingKind) float64 {
	if !k.Insulated() {
		return StructuralSheathingR
	}
	if k == SheathingInsulatedR6 {
		return InsulatedR6SheathingR
	}
	return InsulatedR3SheathingR
}

// CommonLayersR is the sum of layers shared by both wall paths. Sheathing is
// not part of it; see SheathingR.
func CommonLayersR() float64 {
	return InteriorAirFilmR + ExteriorAirFilmR + DrywallR + SidingR
}
