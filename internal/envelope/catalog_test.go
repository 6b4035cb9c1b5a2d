package envelope

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogLookups(t *testing.T) {
	d, ok := FramingDepth("2x6")
	require.True(t, ok)
	assert.Equal(t, Framing2x6, d)

	ach, ok := AirtightnessACH50("tight")
	require.True(t, ok)
	assert.Equal(t, 3.0, ach)

	_, ok = FramingDepth("2x12")
	assert.False(t, ok)
	_, ok = Construction("log cabin")
	assert.False(t, ok)
}

func TestCatalogConstructionsAreValid(t *testing.T) {
	for _, p := range Presets().Construction {
		assert.NoErrorf(t, p.Value.Validate(), "preset %s", p.Name)
	}
}

func TestPresetsReturnsCopies(t *testing.T) {
	c := Presets()
	c.Framing[0].Value = 99
	d, _ := FramingDepth(c.Framing[0].Name)
	assert.NotEqual(t, 99.0, d)

	assert.Len(t, c.Insulation, 5)
	assert.Len(t, c.Sheathing, 4)
	assert.Contains(t, c.Insulation, "flash_batt")
}

func TestRPerInchAndSheathingR(t *testing.T) {
	assert.Equal(t, FiberglassRPerInch, RPerInch(InsulationFlashBatt))
	assert.Equal(t, FiberglassRPerInch, RPerInch(InsulationUnknown))
	assert.Equal(t, ClosedCellFoamRPerInch, RPerInch(InsulationClosedCellFoam))
	assert.Equal(t, StructuralSheathingR, SheathingR(SheathingTapedOSB))
	assert.Equal(t, StructuralSheathingR, SheathingR(SheathingUnknown))
	assert.Equal(t, InsulatedR6SheathingR, SheathingR(SheathingInsulatedR6))
	assert.Equal(t, InsulatedR3SheathingR, SheathingR(SheathingInsulatedR3))
	assert.Equal(t, StructuralSheathingR, SheathingR(SheathingOSBWrap))
	assert.True(t, SheathingInsulatedR3.Insulated())
	assert.False(t, SheathingOSBWrap.Insulated())
}
