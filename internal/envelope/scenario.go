package envelope

// SharedInputs are the inputs both design scenarios have in common.
type SharedInputs struct {
	Climate          ClimateData       `json:"climate" yaml:"climate"`
	Geometry         HouseGeometry     `json:"geometry" yaml:"geometry"`
	Economics        EconomicParams    `json:"economics" yaml:"economics"`
	HVAC             HVACParams        `json:"hvac" yaml:"hvac"`
	ACH50ToNatFactor float64           `json:"ach50_to_nat_factor" yaml:"ach50_to_nat_factor"`
	OtherSiteKWh     float64           `json:"other_site_kwh" yaml:"other_site_kwh"`
	Reference        HERSReferenceSpec `json:"reference" yaml:"reference"`
}

func (s SharedInputs) Validate() error {
	if err := s.Climate.Validate(); err != nil {
		return err
	}
	if err := s.Geometry.Validate(); err != nil {
		return err
	}
	if err := s.Economics.Validate(); err != nil {
		return err
	}
	if err := s.HVAC.Validate(); err != nil {
		return err
	}
	if !(s.ACH50ToNatFactor > 0) {
		return ErrInvalidNatFactor
	}
	if s.OtherSiteKWh < 0 {
		return ErrNegativeOtherEnergy
	}
	return s.Reference.Validate()
}

// ScenarioInputs are the envelope choices of one design scenario.
type ScenarioInputs struct {
	Name     string             `json:"name" yaml:"name"`
	Wall     WallAssemblyConfig `json:"wall" yaml:"wall"`
	WindowU  float64            `json:"window_u" yaml:"window_u"`
	CeilingR float64            `json:"ceiling_r" yaml:"ceiling_r"`
	ACH50    float64            `json:"ach50" yaml:"ach50"`
}

func (s ScenarioInputs) Validate() error {
	// The conversion factor is shared; any positive value checks the rest.
	return s.Envelope(DefaultNatFactor).Validate()
}

func (s ScenarioInputs) Envelope(natFactor float64) EnvelopeSpec {
	return EnvelopeSpec{
		Wall:     s.Wall,
		WindowU:  s.WindowU,
		CeilingR: s.CeilingR,
		Airtightness: AirtightnessSpec{
			ACH50:            s.ACH50,
			ACH50ToNatFactor: natFactor,
		},
	}
}

type ScenarioResult struct {
	Name      string                 `json:"name" yaml:"name"`
	Envelope  EnvelopeSpec           `json:"envelope" yaml:"envelope"`
	Wall      WholeWallResult        `json:"wall" yaml:"wall"`
	WallLoad  LoadResult             `json:"wall_load" yaml:"wall_load"`
	Rated     WholeHouseEnergyResult `json:"rated" yaml:"rated"`
	Reference WholeHouseEnergyResult `json:"reference" yaml:"reference"`
	HERSIndex float64                `json:"hers_index" yaml:"hers_index"`

	// ReportedCoolingBTU is for display only, see ReportedCoolingBTU.
	ReportedCoolingBTU float64 `json:"reported_cooling_btu" yaml:"reported_cooling_btu"`
}

// Comparison holds both scenarios. Savings are A minus B, so positive values mean
// B uses less.
type Comparison struct {
	A           ScenarioResult `json:"a" yaml:"a"`
	B           ScenarioResult `json:"b" yaml:"b"`
	SavingsKWh  float64        `json:"savings_kwh" yaml:"savings_kwh"`
	SavingsCost float64        `json:"savings_cost" yaml:"savings_cost"`
	HERSDelta   float64        `json:"hers_delta" yaml:"hers_delta"`
}

// EvaluateScenario runs the full chain for one scenario.
func EvaluateScenario(shared SharedInputs, s ScenarioInputs) ScenarioResult {
	env := s.Envelope(shared.ACH50ToNatFactor)
	wall := WholeWallR(env.Wall)

	wallLoad := CalculateLoad(LoadInputs{
		WallAreaFt2:  shared.Geometry.NetWallAreaFt2,
		VolumeFt3:    shared.Geometry.VolumeFt3(),
		Climate:      shared.Climate,
		EffectiveR:   wall.EffectiveR,
		Airtightness: env.Airtightness,
		Economics:    shared.Economics,
		HVAC:         shared.HVAC,
	})

	rated := WholeHouseEnergy(shared.Geometry, shared.Climate, env, shared.HVAC, shared.Economics)
	ref := ReferenceHouseEnergy(shared.Geometry, shared.Climate, shared.Reference, env, shared.HVAC, shared.Economics)

	return ScenarioResult{
		Name:      s.Name,
		Envelope:  env,
		Wall:      wall,
		WallLoad:  wallLoad,
		Rated:     rated,
		Reference: ref,
		HERSIndex: EstimateHERSIndex(rated.HeatingKWh, rated.CoolingKWh,
			ref.HeatingKWh, ref.CoolingKWh, shared.OtherSiteKWh),
		ReportedCoolingBTU: ReportedCoolingBTU(rated.CoolingKWh, shared.HVAC),
	}
}

// Evaluate compares two scenarios over the same shared inputs.
func Evaluate(shared SharedInputs, a, b ScenarioInputs) Comparison {
	ra := EvaluateScenario(shared, a)
	rb := EvaluateScenario(shared, b)
	return Comparison{
		A:           ra,
		B:           rb,
		SavingsKWh:  ra.Rated.TotalKWh - rb.Rated.TotalKWh,
		SavingsCost: ra.Rated.TotalCost - rb.Rated.TotalCost,
		HERSDelta:   ra.HERSIndex - rb.HERSIndex,
	}
}

// ---- defaults ----

func DefaultSharedInputs() SharedInputs {
	return SharedInputs{
		Climate: ClimateData{HeatingDegreeDays65: 3450, CoolingDegreeDays65: 1730},
		Geometry: HouseGeometry{
			NetWallAreaFt2:          3000,
			ConditionedFloorAreaFt2: 3500,
			AvgCeilingHeightFt:      9,
			StoryCount:              2,
			WindowToWallRatio:       0.15,
		},
		Economics:        EconomicParams{ElectricityPricePerKWh: 0.14},
		HVAC:             HVACParams{HeatPumpCOP: 3.0, CoolingSEER: 15},
		ACH50ToNatFactor: DefaultNatFactor,
		OtherSiteKWh:     DefaultOtherSiteKWh,
		Reference:        DefaultHERSReference(),
	}
}

func DefaultScenarioA() ScenarioInputs {
	w, _ := Construction("code_2x4")
	return ScenarioInputs{Name: "Scenario A", Wall: w, WindowU: 0.30, CeilingR: 38, ACH50: 5}
}

func DefaultScenarioB() ScenarioInputs {
	w, _ := Construction("mineral_wool_r3")
	w.InteriorThermalBreak = true
	return ScenarioInputs{Name: "Scenario B", Wall: w, WindowU: 0.25, CeilingR: 49, ACH50: 3}
}
