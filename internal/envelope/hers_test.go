package envelope

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEstimateHERSIndex(t *testing.T) {
	tests := []struct {
		name                                   string
		ratedHeat, ratedCool, refHeat, refCool float64
		other                                  float64
		want                                   float64
	}{
		{"parity", 5000, 2000, 5000, 2000, 8000, 100},
		{"half the envelope energy", 2500, 1000, 5000, 2000, 0, 50},
		{"other dilutes the ratio", 2500, 1000, 5000, 2000, 7000, 100 * 10500.0 / 14000},
		{"worse than reference", 8000, 3000, 5000, 2000, 0, 100 * 11000.0 / 7000},
		{"zero reference", 1000, 500, 0, 0, 0, 100},
		{"negative reference", 1000, 500, -3000, 0, 0, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EstimateHERSIndex(tt.ratedHeat, tt.ratedCool, tt.refHeat, tt.refCool, tt.other)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestEstimateHERSIndex_ZeroGuardIsExact(t *testing.T) {
	got := EstimateHERSIndex(0, 0, 0, 0, 0)
	assert.Equal(t, 100.0, got)
	assert.False(t, math.IsNaN(got) || math.IsInf(got, 0))
}

func TestEstimateHERSIndex_ParityWithReferenceEnvelope(t *testing.T) {
	shared := DefaultSharedInputs()
	ref := shared.Reference
	s := ScenarioInputs{
		Name: "reference twin",
		Wall: WallAssemblyConfig{
			FramingDepthIn:       ref.Wall.FramingDepthIn,
			CavityInsulation:     ref.Wall.CavityInsulation,
			ExteriorSheathing:    ref.Wall.ExteriorSheathing,
			InteriorThermalBreak: ref.Wall.InteriorThermalBreak,
			FramingFraction:      0.3,
		},
		WindowU:  ref.WindowU,
		CeilingR: ref.CeilingR,
		ACH50:    ref.ACH50,
	}

	r := EvaluateScenario(shared, s)
	assert.InEpsilon(t, 100, r.HERSIndex, 1e-6)
}
