package timing

import (
	"testing"

	"github.com/medsig/engine/pkg/fhirtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSimpleFrequency(t *testing.T) {
	result := Parse("twice daily")
	require.NotNil(t, result.Timing)
	assert.False(t, result.IsTitration)
	assert.Equal(t, 2.0, result.Timing.Repeat.Frequency)
	assert.Equal(t, fhirtype.PeriodUnitDay, result.Timing.Repeat.PeriodUnit)
	assert.Equal(t, 0.9, result.Confidence)
}

func TestParseEveryNHours(t *testing.T) {
	result := Parse("every 6 hours")
	require.NotNil(t, result.Timing)
	assert.Equal(t, 1.0, result.Timing.Repeat.Frequency)
	assert.Equal(t, 6.0, result.Timing.Repeat.Period)
	assert.Equal(t, fhirtype.PeriodUnitHour, result.Timing.Repeat.PeriodUnit)
}

func TestParseCommonPattern(t *testing.T) {
	result := Parse("3 times daily")
	require.NotNil(t, result.Timing)
	assert.Equal(t, 3.0, result.Timing.Repeat.Frequency)
	assert.Equal(t, 0.8, result.Confidence)
}

func TestParseFallback(t *testing.T) {
	result := Parse("as directed")
	require.NotNil(t, result.Timing)
	assert.Equal(t, 1.0, result.Timing.Repeat.Frequency)
	assert.Equal(t, 0.6, result.Confidence)
}

func TestParseStructuredTimingPassesThrough(t *testing.T) {
	in := fhirtype.Timing{Repeat: fhirtype.TimingRepeat{Frequency: 4, Period: 1, PeriodUnit: fhirtype.PeriodUnitDay}}
	result := Parse(in)
	require.NotNil(t, result.Timing)
	assert.Equal(t, 1.0, result.Confidence)
	assert.Equal(t, 4.0, result.Timing.Repeat.Frequency)
}

func TestParseTitrationStringWithThen(t *testing.T) {
	result := Parse("Week 1-4: once daily then Week 5+: twice daily")
	assert.True(t, result.IsTitration)
	require.Len(t, result.Phases, 2)
	assert.False(t, result.Phases[0].IsMaintenance)
	assert.True(t, result.Phases[1].IsMaintenance)
	assert.Equal(t, 0.85, result.Confidence)
	assert.Empty(t, result.Warnings)
}

func TestParseTitrationArray(t *testing.T) {
	result := Parse([]string{
		"Week 1-4: once weekly",
		"Week 5-8: once weekly",
		"Week 9+: once weekly",
	})
	assert.True(t, result.IsTitration)
	require.Len(t, result.Phases, 3)
	assert.Equal(t, 0, result.Phases[0].SequenceIndex)
	assert.Equal(t, 2, result.Phases[2].SequenceIndex)
	assert.True(t, result.Phases[2].IsMaintenance)
	require.NotNil(t, result.Phases[0].Timing.Repeat.BoundsDuration)
	assert.Equal(t, "wk", result.Phases[0].Timing.Repeat.BoundsDuration.Unit)
	assert.Equal(t, 4.0, result.Phases[0].Timing.Repeat.BoundsDuration.Value)
}

func TestParseTitrationMissingMaintenanceWarns(t *testing.T) {
	result := Parse("Week 1-4: once daily then Week 5-8: twice daily")
	assert.True(t, result.IsTitration)
	assert.Contains(t, result.Warnings[0], "no maintenance phase")
}

func TestIsTitrationStringDetection(t *testing.T) {
	assert.True(t, isTitrationString("Week 1-4: once daily"))
	assert.True(t, isTitrationString("Day 1+: once daily"))
	assert.True(t, isTitrationString("start low then increase"))
	assert.False(t, isTitrationString("twice daily"))
}
