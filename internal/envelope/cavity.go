package envelope

import "math"

// CavityR converts a cavity fill and its depth into an R-value.
//
// Flash & batt is a composite: the first inch is closed-cell foam, the rest is
// fiberglass batt. Depths at or below one inch yield the full one-inch foam R with
// no batt contribution. Unknown kinds behave as fiberglass.
func CavityR(depthIn float64, kind InsulationKind) float64 {
	if kind == InsulationFlashBatt {
		foamR := FlashBattFoamDepthIn * ClosedCellFoamRPerInch
		battR := math.Max(0, depthIn-FlashBattFoamDepthIn) * FiberglassRPerInch
		return foamR + battR
	}
	return depthIn * RPerInch(kind)
}
