package envelope

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func endToEndLoadInputs() LoadInputs {
	wall := WholeWallR(WallAssemblyConfig{
		FramingDepthIn:    Framing2x4,
		CavityInsulation:  InsulationFiberglass,
		ExteriorSheathing: SheathingOSBWrap,
		FramingFraction:   DefaultFramingFraction,
	})
	return LoadInputs{
		WallAreaFt2:  3000,
		VolumeFt3:    3500 * 9,
		Climate:      ClimateData{HeatingDegreeDays65: 3450, CoolingDegreeDays65: 1730},
		EffectiveR:   wall.EffectiveR,
		Airtightness: AirtightnessSpec{ACH50: 5, ACH50ToNatFactor: 0.07},
		Economics:    EconomicParams{ElectricityPricePerKWh: 0.14},
		HVAC:         HVACParams{HeatPumpCOP: 3.0, CoolingSEER: 15},
	}
}

func TestCalculateLoad_EndToEnd(t *testing.T) {
	in := endToEndLoadInputs()
	r := CalculateLoad(in)

	assert.InDelta(t, 0.35, r.ACHNat, 1e-12)

	u := 1 / in.EffectiveR
	assert.InDelta(t, u*3000*3450*24, r.HeatingConductionBTU, 1e-6)
	assert.InDelta(t, u*3000*1730*24, r.CoolingConductionBTU, 1e-6)
	assert.InDelta(t, 0.432*0.35*31500*3450, r.HeatingInfiltrationBTU, 1e-6)
	assert.InDelta(t, 0.432*0.35*31500*1730, r.CoolingInfiltrationBTU, 1e-6)
	assert.Equal(t, r.HeatingConductionBTU+r.HeatingInfiltrationBTU, r.HeatingBTU)
	assert.Equal(t, r.CoolingConductionBTU+r.CoolingInfiltrationBTU, r.CoolingBTU)

	assert.InDelta(t, r.HeatingBTU/3412/3.0, r.HeatingKWh, 1e-9)
	assert.InDelta(t, r.CoolingBTU/15000, r.CoolingKWh, 1e-9)

	for _, v := range []float64{r.HeatingKWh, r.CoolingKWh, r.HeatingCost, r.CoolingCost} {
		require.False(t, math.IsNaN(v) || math.IsInf(v, 0))
		require.Greater(t, v, 0.0)
	}
	assert.Equal(t, r.HeatingKWh*0.14, r.HeatingCost)
	assert.Equal(t, r.CoolingKWh*0.14, r.CoolingCost)
	assert.Equal(t, r.TotalKWh*0.14, r.TotalCost)
}

func TestCalculateLoad_Deterministic(t *testing.T) {
	in := endToEndLoadInputs()
	assert.Equal(t, CalculateLoad(in), CalculateLoad(in))
}

func TestCalculateLoad_TighterHouseLowersHeating(t *testing.T) {
	leaky := endToEndLoadInputs()
	leaky.Airtightness.ACH50 = 7
	tight := endToEndLoadInputs()
	tight.Airtightness.ACH50 = 3

	assert.Less(t, CalculateLoad(tight).HeatingKWh, CalculateLoad(leaky).HeatingKWh)
}

func TestEfficiencyClamps(t *testing.T) {
	tests := []struct {
		name string
		hvac HVACParams
		heat float64
		cool float64
	}{
		{"in range", HVACParams{HeatPumpCOP: 2, CoolingSEER: 10}, 3412.0 / 2, 10000.0 / 10000},
		{"COP floored", HVACParams{HeatPumpCOP: 0.1, CoolingSEER: 10}, 3412.0 / 0.5, 10000.0 / 10000},
		{"zero COP floored", HVACParams{HeatPumpCOP: 0, CoolingSEER: 10}, 3412.0 / 0.5, 10000.0 / 10000},
		{"SEER floored", HVACParams{HeatPumpCOP: 2, CoolingSEER: 4}, 3412.0 / 2, 10000.0 / 8000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.heat/BTUPerKWh, HeatingKWh(3412, tt.hvac), 1e-12)
			assert.InDelta(t, tt.cool, CoolingKWh(10000, tt.hvac), 1e-12)
		})
	}
}

func TestReportedCoolingBTU_InvertsCoolingKWh(t *testing.T) {
	hvac := HVACParams{HeatPumpCOP: 3, CoolingSEER: 16}
	kwh := CoolingKWh(48000, hvac)
	assert.InDelta(t, 48000, ReportedCoolingBTU(kwh, hvac), 1e-9)
}

func TestNaturalACH(t *testing.T) {
	assert.InDelta(t, 0.35, NaturalACH(AirtightnessSpec{ACH50: 5, ACH50ToNatFactor: 0.07}), 1e-12)
	assert.InDelta(t, 0.5, NaturalACH(AirtightnessSpec{ACH50: 5, ACH50ToNatFactor: 0.1}), 1e-12)
}

func TestAirtightnessValidate(t *testing.T) {
	assert.NoError(t, AirtightnessSpec{ACH50: 3, ACH50ToNatFactor: 0.07}.Validate())
	assert.ErrorIs(t, AirtightnessSpec{ACH50: 0, ACH50ToNatFactor: 0.07}.Validate(), ErrInvalidACH50)
	assert.ErrorIs(t, AirtightnessSpec{ACH50: 3}.Validate(), ErrInvalidNatFactor)
}
