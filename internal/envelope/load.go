package envelope

import "math"

type ClimateData struct {
	HeatingDegreeDays65 float64 `json:"hdd65" yaml:"hdd65"`
	CoolingDegreeDays65 float64 `json:"cdd65" yaml:"cdd65"`
}

func (c ClimateData) Validate() error {
	if c.HeatingDegreeDays65 < 0 || c.CoolingDegreeDays65 < 0 {
		return ErrNegativeDegreeDays
	}
	return nil
}

type EconomicParams struct {
	ElectricityPricePerKWh float64 `json:"electricity_price_per_kwh" yaml:"electricity_price_per_kwh"`
}

func (e EconomicParams) Validate() error {
	if e.ElectricityPricePerKWh < 0 {
		return ErrNegativePrice
	}
	return nil
}

// HVACParams are the heat pump ratings. Both are clamped at use, see HeatingKWh
// and CoolingKWh.
type HVACParams struct {
	HeatPumpCOP float64 `json:"heat_pump_cop" yaml:"heat_pump_cop"`
	CoolingSEER float64 `json:"cooling_seer" yaml:"cooling_seer"`
}

func (h HVACParams) Validate() error {
	if !(h.HeatPumpCOP > 0) || !(h.CoolingSEER > 0) {
		return ErrInvalidEfficiency
	}
	return nil
}

// LoadInputs drive the single-surface load estimate.
type LoadInputs struct {
	WallAreaFt2  float64
	VolumeFt3    float64
	Climate      ClimateData
	EffectiveR   float64
	Airtightness AirtightnessSpec
	Economics    EconomicParams
	HVAC         HVACParams
}

type LoadResult struct {
	ACHNat float64 `json:"ach_nat" yaml:"ach_nat"`

	HeatingConductionBTU   float64 `json:"heating_conduction_btu" yaml:"heating_conduction_btu"`
	HeatingInfiltrationBTU float64 `json:"heating_infiltration_btu" yaml:"heating_infiltration_btu"`
	HeatingBTU             float64 `json:"heating_btu" yaml:"heating_btu"`
	CoolingConductionBTU   float64 `json:"cooling_conduction_btu" yaml:"cooling_conduction_btu"`
	CoolingInfiltrationBTU float64 `json:"cooling_infiltration_btu" yaml:"cooling_infiltration_btu"`
	CoolingBTU             float64 `json:"cooling_btu" yaml:"cooling_btu"`

	HeatingKWh float64 `json:"heating_kwh" yaml:"heating_kwh"`
	CoolingKWh float64 `json:"cooling_kwh" yaml:"cooling_kwh"`
	TotalKWh   float64 `json:"total_kwh" yaml:"total_kwh"`

	HeatingCost float64 `json:"heating_cost" yaml:"heating_cost"`
	CoolingCost float64 `json:"cooling_cost" yaml:"cooling_cost"`
	TotalCost   float64 `json:"total_cost" yaml:"total_cost"`
}

// ConductionBTU is the annual conduction load through a surface:
// U × area × degree days × 24.
func ConductionBTU(u, areaFt2, degreeDays float64) float64 {
	return u * areaFt2 * degreeDays * HoursPerDay
}

// InfiltrationBTU is the annual sensible infiltration load:
// 0.432 × ACHnat × volume × degree days.
func InfiltrationBTU(achNat, volumeFt3, degreeDays float64) float64 {
	return InfiltrationConstant * achNat * volumeFt3 * degreeDays
}

// HeatingKWh converts a heating load to heat pump electricity. COP is floored at MinCOP.
func HeatingKWh(btu float64, hvac HVACParams) float64 {
	return btu / BTUPerKWh / math.Max(MinCOP, hvac.HeatPumpCOP)
}

// CoolingKWh converts a cooling load to electricity. SEER is floored at MinSEER.
func CoolingKWh(btu float64, hvac HVACParams) float64 {
	return btu / (math.Max(MinSEER, hvac.CoolingSEER) * WhPerKWh)
}

// ReportedCoolingBTU turns cooling kWh back into a BTU figure for display. It is
// the algebraic inverse of CoolingKWh and carries no physics of its own.
func ReportedCoolingBTU(kwh float64, hvac HVACParams) float64 {
	return kwh * math.Max(MinSEER, hvac.CoolingSEER) * WhPerKWh
}

// CalculateLoad estimates annual heating and cooling for a single wall area plus
// whole-house infiltration, and converts it into electricity and cost.
func CalculateLoad(in LoadInputs) LoadResult {
	achNat := NaturalACH(in.Airtightness)
	u := 1 / in.EffectiveR
	hdd := in.Climate.HeatingDegreeDays65
	cdd := in.Climate.CoolingDegreeDays65

	heatCond := ConductionBTU(u, in.WallAreaFt2, hdd)
	heatInf := InfiltrationBTU(achNat, in.VolumeFt3, hdd)
	coolCond := ConductionBTU(u, in.WallAreaFt2, cdd)
	coolInf := InfiltrationBTU(achNat, in.VolumeFt3, cdd)

	r := LoadResult{
		ACHNat:                 achNat,
		HeatingConductionBTU:   heatCond,
		HeatingInfiltrationBTU: heatInf,
		HeatingBTU:             heatCond + heatInf,
		CoolingConductionBTU:   coolCond,
		CoolingInfiltrationBTU: coolInf,
		CoolingBTU:             coolCond + coolInf,
	}
	r.HeatingKWh = HeatingKWh(r.HeatingBTU, in.HVAC)
	r.CoolingKWh = CoolingKWh(r.CoolingBTU, in.HVAC)
	r.TotalKWh = r.HeatingKWh + r.CoolingKWh

	price := in.Economics.ElectricityPricePerKWh
	r.HeatingCost = r.HeatingKWh * price
	r.CoolingCost = r.CoolingKWh * price
	r.TotalCost = r.TotalKWh * price
	return r
}
