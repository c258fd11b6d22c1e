package convert

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvertIdentity(t *testing.T) {
	result, err := Convert(NewQuantity(5, "mg"), "mg", Context{})
	require.NoError(t, err)
	assert.True(t, result.Value.Equal(decimal.NewFromFloat(5)))
}

func TestConvertMassLadder(t *testing.T) {
	result, err := Convert(NewQuantity(250, "mg"), "g", Context{})
	require.NoError(t, err)
	assert.Equal(t, "0.25", result.Value.String())
}

func TestConvertVolumeLadder(t *testing.T) {
	result, err := Convert(NewQuantity(1500, "mL"), "L", Context{})
	require.NoError(t, err)
	assert.Equal(t, "1.5", result.Value.String())
}

func TestConvertStrengthRatioBridging(t *testing.T) {
	ctx := Context{Strength: &StrengthRatio{
		NumeratorValue: 50, NumeratorUnit: "mg",
		DenominatorValue: 1, DenominatorUnit: "mL",
	}}
	result, err := Convert(NewQuantity(2, "mL"), "mg", ctx)
	require.NoError(t, err)
	assert.Equal(t, "100", result.Value.String())

	back, err := Convert(NewQuantity(100, "mg"), "mL", ctx)
	require.NoError(t, err)
	assert.Equal(t, "2", back.Value.String())
}

func TestConvertTopiclickClicksToMl(t *testing.T) {
	ctx := Context{Dispenser: &DispenserInfo{
		Type: "Topiclick", Unit: "click", BridgeUnit: "mL", ConversionRatio: 4,
	}}
	result, err := Convert(NewQuantity(4, "click"), "mL", ctx)
	require.NoError(t, err)
	assert.Equal(t, "1", result.Value.String())
}

func TestConvertTopiclickClicksToMgViaStrength(t *testing.T) {
	ctx := Context{
		Dispenser: &DispenserInfo{Type: "Topiclick", Unit: "click", BridgeUnit: "mL", ConversionRatio: 4},
		Strength:  &StrengthRatio{NumeratorValue: 10, NumeratorUnit: "mg", DenominatorValue: 1, DenominatorUnit: "mL"},
	}
	result, err := Convert(NewQuantity(4, "click"), "mg", ctx)
	require.NoError(t, err)
	assert.Equal(t, "10", result.Value.String())
}

func TestConvertUnrelatedUnitsFails(t *testing.T) {
	_, err := Convert(NewQuantity(1, "mg"), "click", Context{})
	assert.Error(t, err)
}

func TestConvertRejectsNonPositive(t *testing.T) {
	_, err := Convert(NewQuantity(0, "mg"), "g", Context{})
	assert.Error(t, err)
}

func TestConvertRounding(t *testing.T) {
	result, err := Convert(NewQuantity(1, "mg"), "g", Context{Precision: 6})
	require.NoError(t, err)
	assert.Equal(t, "0.001", result.Value.String())
}
