package timing

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/medsig/engine/pkg/fhirtype"
)

// frequencyMatch is one entry of the canonical pattern table.
type frequencyMatch struct {
	repeat     fhirtype.TimingRepeat
	confidence float64
}

var everyNHours = regexp.MustCompile(`(?i)every\s+(\d+)\s+hours?`)
var nTimesPer = regexp.MustCompile(`(?i)(\d+)\s*times?\s*(daily|weekly|monthly)`)

// exact canonical phrases, matched after lower-casing and trimming.
var exactFrequencies = map[string]fhirtype.TimingRepeat{
	"once daily":         {Frequency: 1, Period: 1, PeriodUnit: fhirtype.PeriodUnitDay},
	"twice daily":        {Frequency: 2, Period: 1, PeriodUnit: fhirtype.PeriodUnitDay},
	"three times daily":  {Frequency: 3, Period: 1, PeriodUnit: fhirtype.PeriodUnitDay},
	"four times daily":   {Frequency: 4, Period: 1, PeriodUnit: fhirtype.PeriodUnitDay},
	"once weekly":        {Frequency: 1, Period: 1, PeriodUnit: fhirtype.PeriodUnitWeek},
	"twice weekly":       {Frequency: 2, Period: 1, PeriodUnit: fhirtype.PeriodUnitWeek},
	"every other day":    {Frequency: 1, Period: 2, PeriodUnit: fhirtype.PeriodUnitDay},
}

var periodUnitByWord = map[string]fhirtype.PeriodUnit{
	"daily":   fhirtype.PeriodUnitDay,
	"weekly":  fhirtype.PeriodUnitWeek,
	"monthly": fhirtype.PeriodUnitMonth,
}

// exactFrequencyOrder lists exactFrequencies' keys longest-first so a
// substring search never lets a shorter phrase shadow a longer one it is
// contained in. Rebuilt once at init and again by LoadFrequencyOverrides
// whenever it extends exactFrequencies at runtime.
var exactFrequencyOrder = rebuildFrequencyOrder()

func rebuildFrequencyOrder() []string {
	keys := make([]string, 0, len(exactFrequencies))
	for k := range exactFrequencies {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return len(keys[i]) > len(keys[j]) })
	return keys
}

// parseFrequency matches text against the canonical frequency table. The
// phrase may appear anywhere in text (phase strings carry a week/day range
// prefix alongside the frequency). Returns ok=false only on no match at
// all; callers apply the 0.6 fallback.
func parseFrequency(text string) (frequencyMatch, bool) {
	normalized := strings.ToLower(strings.TrimSpace(text))

	for _, phrase := range exactFrequencyOrder {
		if strings.Contains(normalized, phrase) {
			return frequencyMatch{repeat: exactFrequencies[phrase], confidence: 0.9}, true
		}
	}

	if m := everyNHours.FindStringSubmatch(normalized); m != nil {
		hours, err := strconv.ParseFloat(m[1], 64)
		if err == nil && hours > 0 {
			return frequencyMatch{
				repeat:     fhirtype.TimingRepeat{Frequency: 1, Period: hours, PeriodUnit: fhirtype.PeriodUnitHour},
				confidence: 0.9,
			}, true
		}
	}

	if m := nTimesPer.FindStringSubmatch(normalized); m != nil {
		count, err := strconv.ParseFloat(m[1], 64)
		if err == nil && count > 0 {
			unit := periodUnitByWord[m[2]]
			return frequencyMatch{
				repeat:     fhirtype.TimingRepeat{Frequency: count, Period: 1, PeriodUnit: unit},
				confidence: 0.8,
			}, true
		}
	}

	return frequencyMatch{}, false
}

// fallbackFrequency is applied when nothing in the table matches: once
// daily, confidence 0.6.
func fallbackFrequency() frequencyMatch {
	return frequencyMatch{
		repeat:     fhirtype.TimingRepeat{Frequency: 1, Period: 1, PeriodUnit: fhirtype.PeriodUnitDay},
		confidence: 0.6,
	}
}
