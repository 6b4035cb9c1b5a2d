package envelope

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluate_DefaultComparison(t *testing.T) {
	shared := DefaultSharedInputs()
	c := Evaluate(shared, DefaultScenarioA(), DefaultScenarioB())

	assert.Equal(t, "Scenario A", c.A.Name)
	assert.Equal(t, "Scenario B", c.B.Name)
	assert.Less(t, c.B.HERSIndex, c.A.HERSIndex)
	assert.Less(t, c.A.HERSIndex, 100.0)
	assert.InDelta(t, c.A.Rated.TotalKWh-c.B.Rated.TotalKWh, c.SavingsKWh, 1e-9)
	assert.InDelta(t, c.A.Rated.TotalCost-c.B.Rated.TotalCost, c.SavingsCost, 1e-9)
	assert.InDelta(t, c.A.HERSIndex-c.B.HERSIndex, c.HERSDelta, 1e-12)
	assert.Greater(t, c.SavingsKWh, 0.0)
}

func TestEvaluate_ScenarioWiring(t *testing.T) {
	shared := DefaultSharedInputs()
	shared.ACH50ToNatFactor = 0.05
	s := DefaultScenarioA()
	r := EvaluateScenario(shared, s)

	assert.Equal(t, WholeWallR(s.Wall), r.Wall)
	assert.Equal(t, r.Wall, r.Rated.Wall)
	assert.InDelta(t, s.ACH50*0.05, r.Rated.ACHNat, 1e-12)
	assert.InDelta(t, shared.Reference.ACH50*0.05, r.Reference.ACHNat, 1e-12)
	assert.InDelta(t, r.Rated.CoolingKWh*shared.HVAC.CoolingSEER*1000, r.ReportedCoolingBTU, 1e-6)

	require.Equal(t, shared.Geometry.NetWallAreaFt2, r.Rated.WallAreaFt2)
	assert.InDelta(t, r.Rated.Heating.Wall+r.Rated.Heating.Infiltration, r.WallLoad.HeatingBTU, 1e-6)
}

func TestEvaluate_Deterministic(t *testing.T) {
	shared := DefaultSharedInputs()
	a, b := DefaultScenarioA(), DefaultScenarioB()
	assert.True(t, Evaluate(shared, a, b) == Evaluate(shared, a, b))
}

func TestEvaluate_InputsNotAliased(t *testing.T) {
	shared := DefaultSharedInputs()
	a, b := DefaultScenarioA(), DefaultScenarioB()
	before := Evaluate(shared, a, b)

	a.ACH50 = 12
	shared.Climate.HeatingDegreeDays65 = 9000
	assert.Equal(t, 5.0, before.A.Envelope.Airtightness.ACH50)
	assert.NotEqual(t, before, Evaluate(shared, a, b))
}

func TestSharedInputsValidate(t *testing.T) {
	tests := []struct {
		name string
		mod  func(*SharedInputs)
		want error
	}{
		{"defaults", func(*SharedInputs) {}, nil},
		{"negative hdd", func(s *SharedInputs) { s.Climate.HeatingDegreeDays65 = -1 }, ErrNegativeDegreeDays},
		{"bad geometry", func(s *SharedInputs) { s.Geometry.AvgCeilingHeightFt = 0 }, ErrInvalidGeometry},
		{"negative price", func(s *SharedInputs) { s.Economics.ElectricityPricePerKWh = -0.1 }, ErrNegativePrice},
		{"zero cop", func(s *SharedInputs) { s.HVAC.HeatPumpCOP = 0 }, ErrInvalidEfficiency},
		{"zero factor", func(s *SharedInputs) { s.ACH50ToNatFactor = 0 }, ErrInvalidNatFactor},
		{"negative other", func(s *SharedInputs) { s.OtherSiteKWh = -5 }, ErrNegativeOtherEnergy},
		{"bad reference", func(s *SharedInputs) { s.Reference.WindowU = 0 }, ErrInvalidWindowU},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := DefaultSharedInputs()
			tt.mod(&s)
			assert.ErrorIs(t, s.Validate(), tt.want)
		})
	}
}

func TestScenarioInputsValidate(t *testing.T) {
	tests := []struct {
		name string
		mod  func(*ScenarioInputs)
		want error
	}{
		{"defaults", func(*ScenarioInputs) {}, nil},
		{"zero ach", func(s *ScenarioInputs) { s.ACH50 = 0 }, ErrInvalidACH50},
		{"zero window u", func(s *ScenarioInputs) { s.WindowU = 0 }, ErrInvalidWindowU},
		{"negative ceiling", func(s *ScenarioInputs) { s.CeilingR = -1 }, ErrInvalidCeilingR},
		{"bad framing", func(s *ScenarioInputs) { s.Wall.FramingFraction = 1.2 }, ErrInvalidFramingFraction},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := DefaultScenarioB()
			tt.mod(&s)
			assert.ErrorIs(t, s.Validate(), tt.want)
		})
	}
}
