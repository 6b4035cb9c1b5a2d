package envelope

import "sort"

// Nominal lumber depths, inches.
const (
	Framing2x4 = 3.5
	Framing2x6 = 5.5
	Framing2x8 = 7.25
)

// Preset is a named catalog entry.
type Preset[T any] struct {
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
	Value       T      `json:"value" yaml:"value"`
}

var framingPresets = []Preset[float64]{
	{Name: "2x4", Description: "2x4 studs, 3.5 in cavity", Value: Framing2x4},
	{Name: "2x6", Description: "2x6 studs, 5.5 in cavity", Value: Framing2x6},
	{Name: "2x8", Description: "2x8 studs, 7.25 in cavity", Value: Framing2x8},
}

var airtightnessPresets = []Preset[float64]{
	{Name: "leaky", Description: "pre-1980 construction", Value: 10},
	{Name: "older", Description: "typical 1980s-2000s house", Value: 7},
	{Name: "code", Description: "current code maximum in many zones", Value: 5},
	{Name: "tight", Description: "air-sealed with blower-door verification", Value: 3},
	{Name: "very_tight", Description: "taped sheathing, sealed penetrations", Value: 1.5},
	{Name: "passive", Description: "Passive House limit", Value: 0.6},
}

var constructionPresets = []Preset[WallAssemblyConfig]{
	{
		Name:        "code_2x4",
		Description: "2x4 fiberglass, OSB and house wrap",
		Value: WallAssemblyConfig{
			FramingDepthIn:    Framing2x4,
			CavityInsulation:  InsulationFiberglass,
			ExteriorSheathing: SheathingOSBWrap,
			FramingFraction:   DefaultFramingFraction,
		},
	},
	{
		Name:        "code_2x6",
		Description: "2x6 fiberglass, OSB and house wrap",
		Value: WallAssemblyConfig{
			FramingDepthIn:    Framing2x6,
			CavityInsulation:  InsulationFiberglass,
			ExteriorSheathing: SheathingOSBWrap,
			FramingFraction:   DefaultFramingFraction,
		},
	},
	{
		Name:        "mineral_wool_r3",
		Description: "2x6 mineral wool, R-3 insulated sheathing",
		Value: WallAssemblyConfig{
			FramingDepthIn:    Framing2x6,
			CavityInsulation:  InsulationMineralWool,
			ExteriorSheathing: SheathingInsulatedR3,
			FramingFraction:   DefaultFramingFraction,
		},
	},
	{
		Name:        "flash_batt_taped",
		Description: "2x6 flash & batt, taped OSB",
		Value: WallAssemblyConfig{
			FramingDepthIn:    Framing2x6,
			CavityInsulation:  InsulationFlashBatt,
			ExteriorSheathing: SheathingTapedOSB,
			FramingFraction:   DefaultFramingFraction,
		},
	},
	{
		Name:        "high_performance",
		Description: "2x6 closed-cell foam, R-6 sheathing, interior thermal break",
		Value: WallAssemblyConfig{
			FramingDepthIn:       Framing2x6,
			CavityInsulation:     InsulationClosedCellFoam,
			ExteriorSheathing:    SheathingInsulatedR6,
			InteriorThermalBreak: true,
			FramingFraction:      DefaultFramingFraction,
		},
	},
}

// Catalog is a read-only view of every preset table.
type Catalog struct {
	Framing      []Preset[float64]            `json:"framing" yaml:"framing"`
	Airtightness []Preset[float64]            `json:"airtightness" yaml:"airtightness"`
	Construction []Preset[WallAssemblyConfig] `json:"construction" yaml:"construction"`
	Insulation   []string                     `json:"insulation" yaml:"insulation"`
	Sheathing    []string                     `json:"sheathing" yaml:"sheathing"`
}

// Presets returns copies of the catalog tables.
func Presets() Catalog {
	c := Catalog{
		Framing:      append([]Preset[float64](nil), framingPresets...),
		Airtightness: append([]Preset[float64](nil), airtightnessPresets...),
		Construction: append([]Preset[WallAssemblyConfig](nil), constructionPresets...),
	}
	for k := InsulationFiberglass; k.Valid(); k++ {
		c.Insulation = append(c.Insulation, k.String())
	}
	for k := SheathingOSBWrap; k.Valid(); k++ {
		c.Sheathing = append(c.Sheathing, k.String())
	}
	sort.Strings(c.Insulation)
	sort.Strings(c.Sheathing)
	return c
}

func FramingDepth(name string) (float64, bool) {
	return lookup(framingPresets, name)
}

func AirtightnessACH50(name string) (float64, bool) {
	return lookup(airtightnessPresets, name)
}

func Construction(name string) (WallAssemblyConfig, bool) {
	return lookup(constructionPresets, name)
}

func lookup[T any](presets []Preset[T], name string) (T, bool) {
	for _, p := range presets {
		if p.Name == name {
			return p.Value, true
		}
	}
	var zero T
	return zero, false
}
