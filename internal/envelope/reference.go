package envelope

// ReferenceWall is the reference wall build-up. It has no framing fraction of its
// own; see HERSReferenceSpec.Envelope.
type ReferenceWall struct {
	FramingDepthIn       float64        `json:"framing_depth_in" yaml:"framing_depth_in"`
	CavityInsulation     InsulationKind `json:"cavity_insulation" yaml:"cavity_insulation"`
	ExteriorSheathing    SheathingKind  `json:"exterior_sheathing" yaml:"exterior_sheathing"`
	InteriorThermalBreak bool           `json:"interior_thermal_break" yaml:"interior_thermal_break"`
}

// HERSReferenceSpec is the code-minimum house the rated house is normalized against.
type HERSReferenceSpec struct {
	Wall     ReferenceWall `json:"wall" yaml:"wall"`
	WindowU  float64       `json:"window_u" yaml:"window_u"`
	CeilingR float64       `json:"ceiling_r" yaml:"ceiling_r"`
	ACH50    float64       `json:"ach50" yaml:"ach50"`
}

// Validate checks the reference on its own, with default values standing in for
// the fields borrowed from the rated house.
func (r HERSReferenceSpec) Validate() error {
	stand := EnvelopeSpec{
		Wall:         WallAssemblyConfig{FramingFraction: DefaultFramingFraction},
		Airtightness: AirtightnessSpec{ACH50ToNatFactor: DefaultNatFactor},
	}
	return r.Envelope(stand).Validate()
}

// DefaultHERSReference is a 2x4 fiberglass wall with OSB and house wrap, U-0.40
// windows, an R-30 ceiling and 7 ACH50.
func DefaultHERSReference() HERSReferenceSpec {
	return HERSReferenceSpec{
		Wall: ReferenceWall{
			FramingDepthIn:    Framing2x4,
			CavityInsulation:  InsulationFiberglass,
			ExteriorSheathing: SheathingOSBWrap,
		},
		WindowU:  0.40,
		CeilingR: 30,
		ACH50:    7,
	}
}

// Envelope expands the reference into a full EnvelopeSpec. The framing fraction
// and the ACH50 conversion factor are taken from the rated house, so both sides of
// the HERS ratio share them.
func (r HERSReferenceSpec) Envelope(rated EnvelopeSpec) EnvelopeSpec {
	return EnvelopeSpec{
		Wall: WallAssemblyConfig{
			FramingDepthIn:       r.Wall.FramingDepthIn,
			CavityInsulation:     r.Wall.CavityInsulation,
			ExteriorSheathing:    r.Wall.ExteriorSheathing,
			InteriorThermalBreak: r.Wall.InteriorThermalBreak,
			FramingFraction:      rated.Wall.FramingFraction,
		},
		WindowU:  r.WindowU,
		CeilingR: r.CeilingR,
		Airtightness: AirtightnessSpec{
			ACH50:            r.ACH50,
			ACH50ToNatFactor: rated.Airtightness.ACH50ToNatFactor,
		},
	}
}

// ReferenceHouseEnergy runs the whole-house calculation on the reference envelope
// for the rated house's geometry.
func ReferenceHouseEnergy(g HouseGeometry, c ClimateData, ref HERSReferenceSpec, rated EnvelopeSpec, hvac HVACParams, econ EconomicParams) WholeHouseEnergyResult {
	return WholeHouseEnergy(g, c, ref.Envelope(rated), hvac, econ)
}
