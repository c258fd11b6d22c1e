package timing

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/medsig/engine/pkg/fhirtype"
)

// frequencyOverrideEntry is one YAML-sourced frequency pattern: a phrase
// mapped to its repeat rate, e.g.
//
//	every third day: {frequency: 1, period: 3, periodUnit: d}
type frequencyOverrideEntry struct {
	Frequency  float64 `yaml:"frequency"`
	Period     float64 `yaml:"period"`
	PeriodUnit string  `yaml:"periodUnit"`
}

var validPeriodUnits = map[fhirtype.PeriodUnit]bool{
	fhirtype.PeriodUnitSecond: true,
	fhirtype.PeriodUnitMinute: true,
	fhirtype.PeriodUnitHour:   true,
	fhirtype.PeriodUnitDay:    true,
	fhirtype.PeriodUnitWeek:   true,
	fhirtype.PeriodUnitMonth:  true,
	fhirtype.PeriodUnitYear:   true,
}

// LoadFrequencyOverrides extends the canonical frequency table at runtime
// from a YAML document of the form `phrase: {frequency, period, periodUnit}`,
// the same operator-extensible shape pkg/route.LoadAliasOverrides offers for
// route aliases. Every entry is validated before any of them are registered,
// so a malformed override file never partially applies. Overrides are
// matched at the same 0.9 confidence as the built-in exact phrases.
func LoadFrequencyOverrides(yamlData []byte) error {
	var overrides map[string]frequencyOverrideEntry
	if err := yaml.Unmarshal(yamlData, &overrides); err != nil {
		return fmt.Errorf("timing: parsing frequency overrides: %w", err)
	}

	parsed := make(map[string]fhirtype.TimingRepeat, len(overrides))
	for phrase, entry := range overrides {
		unit := fhirtype.PeriodUnit(entry.PeriodUnit)
		if !validPeriodUnits[unit] {
			return fmt.Errorf("timing: frequency override %q has unrecognized periodUnit %q", phrase, entry.PeriodUnit)
		}
		if entry.Frequency <= 0 || entry.Period <= 0 {
			return fmt.Errorf("timing: frequency override %q must have a positive frequency and period", phrase)
		}
		key := strings.ToLower(strings.TrimSpace(phrase))
		if key == "" {
			return fmt.Errorf("timing: frequency override has an empty phrase")
		}
		parsed[key] = fhirtype.TimingRepeat{Frequency: entry.Frequency, Period: entry.Period, PeriodUnit: unit}
	}

	for phrase, repeat := range parsed {
		exactFrequencies[phrase] = repeat
	}
	exactFrequencyOrder = rebuildFrequencyOrder()
	return nil
}
