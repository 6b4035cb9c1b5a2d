package envelope

import "fmt"

// InsulationKind is an integer enum for the cavity fill.
type InsulationKind int

const (
	InsulationUnknown InsulationKind = iota
	InsulationFiberglass
	InsulationMineralWool
	InsulationFlashBatt
	InsulationOpenCellFoam
	InsulationClosedCellFoam
)

func (k InsulationKind) Valid() bool {
	return k >= InsulationFiberglass && k <= InsulationClosedCellFoam
}

func (k InsulationKind) String() string {
	switch k {
	case InsulationFiberglass:
		return "fiberglass"
	case InsulationMineralWool:
		return "mineral_wool"
	case InsulationFlashBatt:
		return "flash_batt"
	case InsulationOpenCellFoam:
		return "open_cell_foam"
	case InsulationClosedCellFoam:
		return "closed_cell_foam"
	default:
		return "unknown"
	}
}

// ParseInsulationKind is used by config files and transports.
func ParseInsulationKind(s string) (InsulationKind, error) {
	switch s {
	case "fiberglass":
		return InsulationFiberglass, nil
	case "mineral_wool":
		return InsulationMineralWool, nil
	case "flash_batt":
		return InsulationFlashBatt, nil
	case "open_cell_foam":
		return InsulationOpenCellFoam, nil
	case "closed_cell_foam":
		return InsulationClosedCellFoam, nil
	default:
		return InsulationUnknown, fmt.Errorf("%w: %q", ErrInvalidInsulation, s)
	}
}

// SheathingKind is an integer enum for the exterior sheathing layer.
type SheathingKind int

const (
	SheathingUnknown SheathingKind = iota
	SheathingOSBWrap
	SheathingTapedOSB
	SheathingInsulatedR3
	SheathingInsulatedR6
)

func (k SheathingKind) Valid() bool {
	return k >= SheathingOSBWrap && k <= SheathingInsulatedR6
}

func (k SheathingKind) String() string {
	switch k {
	case SheathingOSBWrap:
		return "osb_wrap"
	case SheathingTapedOSB:
		return "taped_osb"
	case SheathingInsulatedR3:
		return "insulated_r3"
	case SheathingInsulatedR6:
		return "insulated_r6"
	default:
		return "unknown"
	}
}

// Insulated reports whether the sheathing carries its own continuous R-value.
func (k SheathingKind) Insulated() bool {
	return k == SheathingInsulatedR3 || k == SheathingInsulatedR6
}

func ParseSheathingKind(s string) (SheathingKind, error) {
	switch s {
	case "osb_wrap":
		return SheathingOSBWrap, nil
	case "taped_osb":
		return SheathingTapedOSB, nil
	case "insulated_r3":
		return SheathingInsulatedR3, nil
	case "insulated_r6":
		return SheathingInsulatedR6, nil
	default:
		return SheathingUnknown, fmt.Errorf("%w: %q", ErrInvalidSheathing, s)
	}
}

func (k InsulationKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *InsulationKind) UnmarshalText(b []byte) error {
	v, err := ParseInsulationKind(string(b))
	if err != nil {
		return err
	}
	*k = v
	return nil
}

func (k SheathingKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *SheathingKind) UnmarshalText(b []byte) error {
	v, err := ParseSheathingKind(string(b))
	if err != nil {
		return err
	}
	*k = v
	return nil
}
