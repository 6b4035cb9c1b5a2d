package envelope

import "math"

type HouseGeometry struct {
	NetWallAreaFt2          float64 `json:"net_wall_area_ft2" yaml:"net_wall_area_ft2"`
	ConditionedFloorAreaFt2 float64 `json:"conditioned_floor_area_ft2" yaml:"conditioned_floor_area_ft2"`
	AvgCeilingHeightFt      float64 `json:"avg_ceiling_height_ft" yaml:"avg_ceiling_height_ft"`
	StoryCount              int     `json:"story_count" yaml:"story_count"`
	WindowToWallRatio       float64 `json:"window_to_wall_ratio" yaml:"window_to_wall_ratio"`
}

func (g HouseGeometry) Validate() error {
	if !(g.NetWallAreaFt2 > 0) || !(g.ConditionedFloorAreaFt2 > 0) || !(g.AvgCeilingHeightFt > 0) {
		return ErrInvalidGeometry
	}
	if g.StoryCount < MinStoryCount {
		return ErrInvalidStoryCount
	}
	if g.WindowToWallRatio < 0 || g.WindowToWallRatio >= 1 {
		return ErrInvalidWindowRatio
	}
	return nil
}

func (g HouseGeometry) VolumeFt3() float64 {
	return g.ConditionedFloorAreaFt2 * g.AvgCeilingHeightFt
}

// GrossWallAreaFt2 backs the window area out of the net (opaque) wall area. The
// divisor is floored at MinWindowWallDivisor.
func (g HouseGeometry) GrossWallAreaFt2() float64 {
	return g.NetWallAreaFt2 / math.Max(MinWindowWallDivisor, 1-g.WindowToWallRatio)
}

func (g HouseGeometry) WindowAreaFt2() float64 {
	return g.GrossWallAreaFt2() * g.WindowToWallRatio
}

// CeilingAreaFt2 is the top-floor footprint.
func (g HouseGeometry) CeilingAreaFt2() float64 {
	return g.ConditionedFloorAreaFt2 / float64(max(MinStoryCount, g.StoryCount))
}

// EnvelopeSpec is everything that differs between two houses of the same geometry.
type EnvelopeSpec struct {
	Wall         WallAssemblyConfig `json:"wall" yaml:"wall"`
	WindowU      float64            `json:"window_u" yaml:"window_u"`
	CeilingR     float64            `json:"ceiling_r" yaml:"ceiling_r"`
	Airtightness AirtightnessSpec   `json:"airtightness" yaml:"airtightness"`
}

func (e EnvelopeSpec) Validate() error {
	if err := e.Wall.Validate(); err != nil {
		return err
	}
	if !(e.WindowU > 0) {
		return ErrInvalidWindowU
	}
	if e.CeilingR < 0 {
		return ErrInvalidCeilingR
	}
	return e.Airtightness.Validate()
}

// CeilingU adds the ceiling air films to the insulation R before inverting.
func CeilingU(ceilingR float64) float64 {
	return 1 / (ceilingR + CeilingAirFilmsR)
}

// SurfaceLoads is one season's annual load split by heat-flow path, BTU.
type SurfaceLoads struct {
	Wall         float64 `json:"wall" yaml:"wall"`
	Window       float64 `json:"window" yaml:"window"`
	Ceiling      float64 `json:"ceiling" yaml:"ceiling"`
	Infiltration float64 `json:"infiltration" yaml:"infiltration"`
	Total        float64 `json:"total" yaml:"total"`
}

type WholeHouseEnergyResult struct {
	VolumeFt3      float64 `json:"volume_ft3" yaml:"volume_ft3"`
	WallAreaFt2    float64 `json:"wall_area_ft2" yaml:"wall_area_ft2"`
	WindowAreaFt2  float64 `json:"window_area_ft2" yaml:"window_area_ft2"`
	CeilingAreaFt2 float64 `json:"ceiling_area_ft2" yaml:"ceiling_area_ft2"`

	Wall     WholeWallResult `json:"wall" yaml:"wall"`
	WallU    float64         `json:"wall_u" yaml:"wall_u"`
	WindowU  float64         `json:"window_u" yaml:"window_u"`
	CeilingU float64         `json:"ceiling_u" yaml:"ceiling_u"`
	ACHNat   float64         `json:"ach_nat" yaml:"ach_nat"`

	UA      HeatLossCoefficient `json:"ua" yaml:"ua"`
	Heating SurfaceLoads        `json:"heating_btu" yaml:"heating_btu"`
	Cooling SurfaceLoads        `json:"cooling_btu" yaml:"cooling_btu"`

	HeatingKWh  float64 `json:"heating_kwh" yaml:"heating_kwh"`
	CoolingKWh  float64 `json:"cooling_kwh" yaml:"cooling_kwh"`
	TotalKWh    float64 `json:"total_kwh" yaml:"total_kwh"`
	HeatingCost float64 `json:"heating_cost" yaml:"heating_cost"`
	CoolingCost float64 `json:"cooling_cost" yaml:"cooling_cost"`
	TotalCost   float64 `json:"total_cost" yaml:"total_cost"`
}

// WholeHouseEnergy estimates annual heating and cooling for a whole house: wall,
// window and ceiling conduction plus one whole-house infiltration term.
//
// The rated and reference houses both go through here with the same geometry;
// only the envelope differs.
func WholeHouseEnergy(g HouseGeometry, c ClimateData, e EnvelopeSpec, hvac HVACParams, econ EconomicParams) WholeHouseEnergyResult {
	volume := g.VolumeFt3()
	wallArea := g.NetWallAreaFt2
	windowArea := g.WindowAreaFt2()
	ceilingArea := g.CeilingAreaFt2()

	wall := WholeWallR(e.Wall)
	wallU := wall.U()
	windowU := e.WindowU
	ceilingU := CeilingU(e.CeilingR)
	achNat := NaturalACH(e.Airtightness)

	hdd := c.HeatingDegreeDays65
	cdd := c.CoolingDegreeDays65

	wallHeat := ConductionBTU(wallU, wallArea, hdd)
	windowHeat := ConductionBTU(windowU, windowArea, hdd)
	ceilingHeat := ConductionBTU(ceilingU, ceilingArea, hdd)
	infHeat := InfiltrationBTU(achNat, volume, hdd)
	heating := SurfaceLoads{
		Wall:         wallHeat,
		Window:       windowHeat,
		Ceiling:      ceilingHeat,
		Infiltration: infHeat,
		Total:        wallHeat + windowHeat + ceilingHeat + infHeat,
	}

	wallCool := ConductionBTU(wallU, wallArea, cdd)
	windowCool := ConductionBTU(windowU, windowArea, cdd)
	ceilingCool := ConductionBTU(ceilingU, ceilingArea, cdd)
	infCool := InfiltrationBTU(achNat, volume, cdd)
	cooling := SurfaceLoads{
		Wall:         wallCool,
		Window:       windowCool,
		Ceiling:      ceilingCool,
		Infiltration: infCool,
		Total:        wallCool + windowCool + ceilingCool + infCool,
	}

	r := WholeHouseEnergyResult{
		VolumeFt3:      volume,
		WallAreaFt2:    wallArea,
		WindowAreaFt2:  windowArea,
		CeilingAreaFt2: ceilingArea,
		Wall:           wall,
		WallU:          wallU,
		WindowU:        windowU,
		CeilingU:       ceilingU,
		ACHNat:         achNat,
		UA: HeatLossCoefficient{
			Wall:         wallU * wallArea,
			Window:       windowU * windowArea,
			Ceiling:      ceilingU * ceilingArea,
			Infiltration: InfiltrationUA(achNat, volume),
		},
		Heating:    heating,
		Cooling:    cooling,
		HeatingKWh: HeatingKWh(heating.Total, hvac),
		CoolingKWh: CoolingKWh(cooling.Total, hvac),
	}
	r.TotalKWh = r.HeatingKWh + r.CoolingKWh

	price := econ.ElectricityPricePerKWh
	r.HeatingCost = r.HeatingKWh * price
	r.CoolingCost = r.CoolingKWh * price
	r.TotalCost = r.TotalKWh * price
	return r
}
