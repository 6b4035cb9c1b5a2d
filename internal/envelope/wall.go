package envelope

// WallAssemblyConfig describes one framed wall build-up.
type WallAssemblyConfig struct {
	FramingDepthIn       float64        `json:"framing_depth_in" yaml:"framing_depth_in"`
	CavityInsulation     InsulationKind `json:"cavity_insulation" yaml:"cavity_insulation"`
	ExteriorSheathing    SheathingKind  `json:"exterior_sheathing" yaml:"exterior_sheathing"`
	InteriorThermalBreak bool           `json:"interior_thermal_break" yaml:"interior_thermal_break"`
	// FramingFraction is the share of wall area that is solid framing, in (0,1).
	FramingFraction float64 `json:"framing_fraction" yaml:"framing_fraction"`
}

func (w WallAssemblyConfig) Validate() error {
	if !(w.FramingDepthIn > 0) {
		return ErrInvalidFramingDepth
	}
	if !w.CavityInsulation.Valid() {
		return ErrInvalidInsulation
	}
	if !w.ExteriorSheathing.Valid() {
		return ErrInvalidSheathing
	}
	if !(w.FramingFraction > 0 && w.FramingFraction < 1) {
		return ErrInvalidFramingFraction
	}
	return nil
}

type WholeWallResult struct {
	EffectiveR  float64 `json:"effective_r" yaml:"effective_r"`
	StudPathR   float64 `json:"stud_path_r" yaml:"stud_path_r"`
	CavityPathR float64 `json:"cavity_path_r" yaml:"cavity_path_r"`
}

// U returns the whole-wall U-value, BTU/(hr·ft²·°F).
func (r WholeWallResult) U() float64 {
	return 1 / r.EffectiveR
}

// WholeWallR combines the stud and cavity heat-flow paths of a wall assembly into
// one parallel-path effective R.
//
// Both paths carry the common layers, the optional interior thermal break and the
// sheathing; they differ only in what fills the framing depth. The paths are
// combined by conductance: U = f/R_stud + (1-f)/R_cavity.
func WholeWallR(w WallAssemblyConfig) WholeWallResult {
	cavityR := CavityR(w.FramingDepthIn, w.CavityInsulation)
	studR := w.FramingDepthIn * WoodRPerInch

	shared := CommonLayersR() + SheathingR(w.ExteriorSheathing)
	if w.InteriorThermalBreak {
		shared += InteriorThermalBreakR
	}

	studPathR := shared + studR
	cavityPathR := shared + cavityR

	u := w.FramingFraction/studPathR + (1-w.FramingFraction)/cavityPathR
	return WholeWallResult{
		EffectiveR:  1 / u,
		StudPathR:   studPathR,
		CavityPathR: cavityPathR,
	}
}
