package envelope

// AirtightnessSpec is a blower-door result plus the factor used to estimate
// natural (un-pressurized) infiltration from it.
type AirtightnessSpec struct {
	ACH50            float64 `json:"ach50" yaml:"ach50"`
	ACH50ToNatFactor float64 `json:"ach50_to_nat_factor" yaml:"ach50_to_nat_factor"`
}

func (a AirtightnessSpec) Validate() error {
	if !(a.ACH50 > 0) {
		return ErrInvalidACH50
	}
	if !(a.ACH50ToNatFactor > 0) {
		return ErrInvalidNatFactor
	}
	return nil
}

// NaturalACH returns ACHnat = ACH50 × factor.
func NaturalACH(a AirtightnessSpec) float64 {
	return a.ACH50 * a.ACH50ToNatFactor
}
