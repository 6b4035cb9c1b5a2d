package envelope

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHouseGeometryDerived(t *testing.T) {
	g := HouseGeometry{
		NetWallAreaFt2:          1700,
		ConditionedFloorAreaFt2: 2000,
		AvgCeilingHeightFt:      8,
		StoryCount:              2,
		WindowToWallRatio:       0.15,
	}
	assert.InDelta(t, 16000, g.VolumeFt3(), 1e-9)
	assert.InDelta(t, 2000, g.GrossWallAreaFt2(), 1e-9)
	assert.InDelta(t, 300, g.WindowAreaFt2(), 1e-9)
	assert.InDelta(t, 1000, g.CeilingAreaFt2(), 1e-9)
}

func TestHouseGeometryClamps(t *testing.T) {
	g := HouseGeometry{NetWallAreaFt2: 100, ConditionedFloorAreaFt2: 1000, AvgCeilingHeightFt: 8, StoryCount: 0, WindowToWallRatio: 0.999}
	assert.InDelta(t, 100/MinWindowWallDivisor, g.GrossWallAreaFt2(), 1e-9)
	assert.InDelta(t, 1000, g.CeilingAreaFt2(), 1e-9, "story count floored at 1")
}

func TestHouseGeometryValidate(t *testing.T) {
	base := DefaultSharedInputs().Geometry
	tests := []struct {
		name string
		mod  func(*HouseGeometry)
		want error
	}{
		{"valid", func(*HouseGeometry) {}, nil},
		{"no walls", func(g *HouseGeometry) { g.NetWallAreaFt2 = 0 }, ErrInvalidGeometry},
		{"no floor", func(g *HouseGeometry) { g.ConditionedFloorAreaFt2 = -1 }, ErrInvalidGeometry},
		{"no stories", func(g *HouseGeometry) { g.StoryCount = 0 }, ErrInvalidStoryCount},
		{"all glass", func(g *HouseGeometry) { g.WindowToWallRatio = 1 }, ErrInvalidWindowRatio},
		{"negative glass", func(g *HouseGeometry) { g.WindowToWallRatio = -0.1 }, ErrInvalidWindowRatio},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := base
			tt.mod(&g)
			assert.ErrorIs(t, g.Validate(), tt.want)
		})
	}
}

func TestCeilingU_IncludesFilms(t *testing.T) {
	assert.InDelta(t, 1/(38+CeilingAirFilmsR), CeilingU(38), 1e-12)
	assert.InDelta(t, 1/CeilingAirFilmsR, CeilingU(0), 1e-12)
}

func TestWholeHouseEnergy_SurfaceBreakdown(t *testing.T) {
	shared := DefaultSharedInputs()
	env := DefaultScenarioA().Envelope(shared.ACH50ToNatFactor)
	r := WholeHouseEnergy(shared.Geometry, shared.Climate, env, shared.HVAC, shared.Economics)

	g := shared.Geometry
	hdd := shared.Climate.HeatingDegreeDays65
	cdd := shared.Climate.CoolingDegreeDays65
	wall := WholeWallR(env.Wall)

	assert.InDelta(t, g.VolumeFt3(), r.VolumeFt3, 1e-9)
	assert.InDelta(t, ConductionBTU(wall.U(), g.NetWallAreaFt2, hdd), r.Heating.Wall, 1e-6)
	assert.InDelta(t, ConductionBTU(env.WindowU, g.WindowAreaFt2(), hdd), r.Heating.Window, 1e-6)
	assert.InDelta(t, ConductionBTU(CeilingU(env.CeilingR), g.CeilingAreaFt2(), hdd), r.Heating.Ceiling, 1e-6)
	assert.InDelta(t, InfiltrationBTU(NaturalACH(env.Airtightness), g.VolumeFt3(), hdd), r.Heating.Infiltration, 1e-6)
	assert.InDelta(t, ConductionBTU(CeilingU(env.CeilingR), g.CeilingAreaFt2(), cdd), r.Cooling.Ceiling, 1e-6)

	sum := r.Heating.Wall + r.Heating.Window + r.Heating.Ceiling + r.Heating.Infiltration
	assert.InDelta(t, sum, r.Heating.Total, 1e-6)
	assert.InDelta(t, HeatingKWh(r.Heating.Total, shared.HVAC), r.HeatingKWh, 1e-9)
	assert.InDelta(t, CoolingKWh(r.Cooling.Total, shared.HVAC), r.CoolingKWh, 1e-9)
	assert.Equal(t, r.TotalKWh*shared.Economics.ElectricityPricePerKWh, r.TotalCost)
}

func TestWholeHouseEnergy_UAMatchesAnnualLoads(t *testing.T) {
	shared := DefaultSharedInputs()
	env := DefaultScenarioB().Envelope(shared.ACH50ToNatFactor)
	r := WholeHouseEnergy(shared.Geometry, shared.Climate, env, shared.HVAC, shared.Economics)

	assert.InDelta(t, r.Heating.Total, r.UA.AnnualBTU(shared.Climate.HeatingDegreeDays65), 1e-3)
	assert.InDelta(t, r.Cooling.Total, r.UA.AnnualBTU(shared.Climate.CoolingDegreeDays65), 1e-3)
}

func TestWholeHouseEnergy_TighterHouseLowersHeating(t *testing.T) {
	shared := DefaultSharedInputs()
	s := DefaultScenarioA()

	s.ACH50 = 7
	leaky := WholeHouseEnergy(shared.Geometry, shared.Climate, s.Envelope(shared.ACH50ToNatFactor), shared.HVAC, shared.Economics)
	s.ACH50 = 3
	tight := WholeHouseEnergy(shared.Geometry, shared.Climate, s.Envelope(shared.ACH50ToNatFactor), shared.HVAC, shared.Economics)

	assert.Less(t, tight.HeatingKWh, leaky.HeatingKWh)
}

func TestWholeHouseEnergy_Finite(t *testing.T) {
	shared := DefaultSharedInputs()
	for _, wwr := range []float64{0, 0.2, 0.6, 0.99} {
		for _, cop := range []float64{0.5, 3, 5} {
			g := shared.Geometry
			g.WindowToWallRatio = wwr
			hvac := HVACParams{HeatPumpCOP: cop, CoolingSEER: 8}
			env := DefaultScenarioA().Envelope(shared.ACH50ToNatFactor)
			r := WholeHouseEnergy(g, shared.Climate, env, hvac, shared.Economics)
			ref := ReferenceHouseEnergy(g, shared.Climate, shared.Reference, env, hvac, shared.Economics)
			for _, v := range []float64{r.HeatingKWh, r.CoolingKWh, ref.HeatingKWh, ref.CoolingKWh} {
				require.False(t, math.IsNaN(v) || math.IsInf(v, 0), "wwr=%v cop=%v", wwr, cop)
			}
		}
	}
}

func TestReferenceHouse_UsesRatedFramingFraction(t *testing.T) {
	shared := DefaultSharedInputs()
	rated := DefaultScenarioA().Envelope(shared.ACH50ToNatFactor)
	rated.Wall.FramingFraction = 0.4

	env := shared.Reference.Envelope(rated)
	assert.Equal(t, 0.4, env.Wall.FramingFraction)
	assert.Equal(t, shared.Reference.ACH50, env.Airtightness.ACH50)
	assert.Equal(t, rated.Airtightness.ACH50ToNatFactor, env.Airtightness.ACH50ToNatFactor)
	assert.Equal(t, shared.Reference.WindowU, env.WindowU)
}

func TestReferenceHouse_SameGeometry(t *testing.T) {
	shared := DefaultSharedInputs()
	rated := DefaultScenarioB().Envelope(shared.ACH50ToNatFactor)
	r := WholeHouseEnergy(shared.Geometry, shared.Climate, rated, shared.HVAC, shared.Economics)
	ref := ReferenceHouseEnergy(shared.Geometry, shared.Climate, shared.Reference, rated, shared.HVAC, shared.Economics)

	assert.Equal(t, r.VolumeFt3, ref.VolumeFt3)
	assert.Equal(t, r.WindowAreaFt2, ref.WindowAreaFt2)
	assert.Equal(t, r.CeilingAreaFt2, ref.CeilingAreaFt2)
	assert.Greater(t, ref.TotalKWh, r.TotalKWh)
}
