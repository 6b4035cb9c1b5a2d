package envelope

import "math"

// CheckResult is one named invariant of the self-check battery.
type CheckResult struct {
	Name string `json:"name" yaml:"name"`
	Pass bool   `json:"pass" yaml:"pass"`
}

type selfCheck struct {
	name string
	run  func() bool
}

// The battery runs once when the package is loaded and is read-only afterwards.
var selfCheckResults = runSelfChecks(selfChecks())

// SelfCheck returns a copy of the startup self-check results.
func SelfCheck() []CheckResult {
	return append([]CheckResult(nil), selfCheckResults...)
}

// SelfCheckPassed reports whether every startup check passed.
func SelfCheckPassed() bool {
	for _, r := range selfCheckResults {
		if !r.Pass {
			return false
		}
	}
	return true
}

func runSelfChecks(checks []selfCheck) []CheckResult {
	out := make([]CheckResult, 0, len(checks))
	for _, c := range checks {
		out = append(out, CheckResult{Name: c.name, Pass: c.run()})
	}
	return out
}

func selfChecks() []selfCheck {
	return []selfCheck{
		{"whole-wall R lies between stud and cavity path R", checkEffectiveRBetweenPaths},
		{"2x6 wall beats 2x4 wall", checkDeeperFramingRaisesR},
		{"ACH50 7 to 3 lowers heating kWh", checkTighterHouseLowersHeating},
		{"identical inputs give identical outputs", checkDeterministic},
		{"reference house rates HERS 100", checkHERSParity},
		{"zero reference total falls back to HERS 100", checkHERSZeroGuard},
		{"whole-house outputs are finite", checkFiniteOutputs},
		{"UA times degree-days reproduces surface loads", checkUAMatchesLoads},
		{"flash & batt at 1 in is pure closed-cell foam", checkFlashBattOneInch},
		{"flash & batt below 1 in keeps full foam R", checkFlashBattShallow},
		{"end-to-end cost equals kWh times price", checkEndToEndCost},
	}
}

func checkWall(depth float64, k InsulationKind) WallAssemblyConfig {
	return WallAssemblyConfig{
		FramingDepthIn:    depth,
		CavityInsulation:  k,
		ExteriorSheathing: SheathingOSBWrap,
		FramingFraction:   DefaultFramingFraction,
	}
}

func checkEffectiveRBetweenPaths() bool {
	for _, depth := range []float64{Framing2x4, Framing2x6, Framing2x8} {
		for k := InsulationFiberglass; k.Valid(); k++ {
			for s := SheathingOSBWrap; s.Valid(); s++ {
				for _, brk := range []bool{false, true} {
					w := checkWall(depth, k)
					w.ExteriorSheathing = s
					w.InteriorThermalBreak = brk
					r := WholeWallR(w)
					lo := math.Min(r.StudPathR, r.CavityPathR)
					hi := math.Max(r.StudPathR, r.CavityPathR)
					if !(r.EffectiveR > lo && r.EffectiveR < hi) {
						return false
					}
				}
			}
		}
	}
	return true
}

func checkDeeperFramingRaisesR() bool {
	a := WholeWallR(checkWall(Framing2x4, InsulationFiberglass))
	b := WholeWallR(checkWall(Framing2x6, InsulationFiberglass))
	return b.EffectiveR > a.EffectiveR
}

func checkTighterHouseLowersHeating() bool {
	shared := DefaultSharedInputs()
	s := DefaultScenarioA()
	s.ACH50 = 7
	leaky := EvaluateScenario(shared, s)
	s.ACH50 = 3
	tight := EvaluateScenario(shared, s)
	return tight.Rated.HeatingKWh < leaky.Rated.HeatingKWh
}

func checkDeterministic() bool {
	shared := DefaultSharedInputs()
	a, b := DefaultScenarioA(), DefaultScenarioB()
	return Evaluate(shared, a, b) == Evaluate(shared, a, b)
}

func checkHERSParity() bool {
	shared := DefaultSharedInputs()
	rated := shared.Reference.Envelope(DefaultScenarioA().Envelope(shared.ACH50ToNatFactor))
	r := WholeHouseEnergy(shared.Geometry, shared.Climate, rated, shared.HVAC, shared.Economics)
	ref := ReferenceHouseEnergy(shared.Geometry, shared.Climate, shared.Reference, rated, shared.HVAC, shared.Economics)
	idx := EstimateHERSIndex(r.HeatingKWh, r.CoolingKWh, ref.HeatingKWh, ref.CoolingKWh, shared.OtherSiteKWh)
	return math.Abs(idx-100)/100 <= 1e-6
}

func checkHERSZeroGuard() bool {
	return EstimateHERSIndex(1000, 500, 0, 0, 0) == 100
}

func checkFiniteOutputs() bool {
	c := Evaluate(DefaultSharedInputs(), DefaultScenarioA(), DefaultScenarioB())
	for _, v := range []float64{
		c.A.Rated.HeatingKWh, c.A.Rated.CoolingKWh, c.A.Reference.HeatingKWh, c.A.Reference.CoolingKWh,
		c.B.Rated.HeatingKWh, c.B.Rated.CoolingKWh, c.B.Reference.HeatingKWh, c.B.Reference.CoolingKWh,
		c.A.HERSIndex, c.B.HERSIndex,
	} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func checkUAMatchesLoads() bool {
	shared := DefaultSharedInputs()
	r := EvaluateScenario(shared, DefaultScenarioA()).Rated
	near := func(a, b float64) bool { return math.Abs(a-b) <= 1e-9*math.Max(1, math.Abs(b)) }
	return near(r.UA.AnnualBTU(shared.Climate.HeatingDegreeDays65), r.Heating.Total) &&
		near(r.UA.AnnualBTU(shared.Climate.CoolingDegreeDays65), r.Cooling.Total)
}

func checkFlashBattOneInch() bool {
	return CavityR(1.0, InsulationFlashBatt) == ClosedCellFoamRPerInch
}

func checkFlashBattShallow() bool {
	return CavityR(0.5, InsulationFlashBatt) == ClosedCellFoamRPerInch
}

func checkEndToEndCost() bool {
	const price = 0.14
	wall := WholeWallR(checkWall(Framing2x4, InsulationFiberglass))
	r := CalculateLoad(LoadInputs{
		WallAreaFt2:  3000,
		VolumeFt3:    3500 * 9,
		Climate:      ClimateData{HeatingDegreeDays65: 3450, CoolingDegreeDays65: 1730},
		EffectiveR:   wall.EffectiveR,
		Airtightness: AirtightnessSpec{ACH50: 5, ACH50ToNatFactor: DefaultNatFactor},
		Economics:    EconomicParams{ElectricityPricePerKWh: price},
		HVAC:         HVACParams{HeatPumpCOP: 3.0, CoolingSEER: 15},
	})
	return r.HeatingKWh > 0 && r.CoolingKWh > 0 &&
		r.HeatingCost == r.HeatingKWh*price &&
		r.CoolingCost == r.CoolingKWh*price &&
		r.TotalCost == r.TotalKWh*price
}
