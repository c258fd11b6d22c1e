package timing

import (
	"testing"

	"github.com/medsig/engine/pkg/fhirtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFrequencyOverridesRegistersNewPhrase(t *testing.T) {
	yamlData := []byte(`
every third day:
  frequency: 1
  period: 3
  periodUnit: d
`)
	require.NoError(t, LoadFrequencyOverrides(yamlData))

	result := Parse("every third day")
	require.NotNil(t, result.Timing)
	assert.Equal(t, 1.0, result.Timing.Repeat.Frequency)
	assert.Equal(t, 3.0, result.Timing.Repeat.Period)
	assert.Equal(t, fhirtype.PeriodUnitDay, result.Timing.Repeat.PeriodUnit)
	assert.Equal(t, 0.9, result.Confidence)
}

func TestLoadFrequencyOverridesRejectsBadPeriodUnit(t *testing.T) {
	yamlData := []byte(`
nonsense phrase:
  frequency: 1
  period: 1
  periodUnit: fortnight
`)
	err := LoadFrequencyOverrides(yamlData)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "periodUnit")
}

func TestLoadFrequencyOverridesRejectsNonPositiveRate(t *testing.T) {
	yamlData := []byte(`
zero frequency phrase:
  frequency: 0
  period: 1
  periodUnit: d
`)
	err := LoadFrequencyOverrides(yamlData)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "positive")
}

func TestLoadFrequencyOverridesRejectsMalformedYAML(t *testing.T) {
	err := LoadFrequencyOverrides([]byte("not: valid: yaml: ["))
	require.Error(t, err)
}

func TestLoadFrequencyOverridesDoesNotPartiallyApply(t *testing.T) {
	yamlData := []byte(`
every fourth day:
  frequency: 1
  period: 4
  periodUnit: d
broken entry:
  frequency: -1
  period: 1
  periodUnit: d
`)
	err := LoadFrequencyOverrides(yamlData)
	require.Error(t, err)

	result := Parse("every fourth day")
	assert.NotEqual(t, 0.9, result.Confidence, "a rejected override file must not have registered its valid entries")
}
