package envelope

// HeatLossCoefficient is the whole-house UA, BTU/(hr·°F), split by path.
type HeatLossCoefficient struct {
	Wall         float64 `json:"wall" yaml:"wall"`
	Window       float64 `json:"window" yaml:"window"`
	Ceiling      float64 `json:"ceiling" yaml:"ceiling"`
	Infiltration float64 `json:"infiltration" yaml:"infiltration"`
}

func (h HeatLossCoefficient) Total() float64 {
	return h.Wall + h.Window + h.Ceiling + h.Infiltration
}

// AnnualBTU integrates the coefficient over a degree-day total.
func (h HeatLossCoefficient) AnnualBTU(degreeDays float64) float64 {
	return h.Total() * degreeDays * HoursPerDay
}

// InfiltrationUA is 1.08 × CFM, with CFM = ACHnat × volume / 60.
func InfiltrationUA(achNat, volumeFt3 float64) float64 {
	return SensibleHeatFactor * achNat * volumeFt3 / 60
}
