package builders

import (
	"fmt"

	"github.com/medsig/engine/pkg/fhirtype"
	"github.com/medsig/engine/pkg/timing"
)

// timingPtr extracts the structured Timing a timing.Result carries, if any.
// Titration results (Phases/Timings set, Timing nil) are rendered by
// tapering.go's per-phase loop instead.
func timingPtr(r timing.Result) *fhirtype.Timing {
	return r.Timing
}

// frequencyText renders a timing.Result's repeat pattern back into the
// sentence fragment a template expects, e.g. "twice daily" or
// "every 8 hours". It re-derives English from the structured Timing rather
// than keeping the original input string, so a caller that builds a Timing
// directly (already-structured input) still renders consistently.
func frequencyText(r timing.Result) string {
	if r.Timing == nil {
		return ""
	}
	repeat := r.Timing.Repeat

	switch {
	case repeat.FrequencyMax > 0 && repeat.PeriodUnit == fhirtype.PeriodUnitHour:
		return fmt.Sprintf("every %s to %s hours", formatFreqNumber(repeat.Period/repeat.FrequencyMax), formatFreqNumber(repeat.Period/repeat.Frequency))
	case repeat.PeriodUnit == fhirtype.PeriodUnitHour && repeat.Frequency == 1:
		return fmt.Sprintf("every %s hours", formatFreqNumber(repeat.Period))
	case repeat.PeriodUnit == fhirtype.PeriodUnitDay && repeat.Period == 2 && repeat.Frequency == 1:
		return "every other day"
	case repeat.Period == 1 && repeat.FrequencyMax == 0:
		return fmt.Sprintf("%s %s", timesPhrase(repeat.Frequency), periodWord(repeat.PeriodUnit))
	case repeat.FrequencyMax > 0:
		return fmt.Sprintf("%s to %s times %s", formatFreqNumber(repeat.Frequency), formatFreqNumber(repeat.FrequencyMax), periodWord(repeat.PeriodUnit))
	default:
		return fmt.Sprintf("%s times every %s %s", formatFreqNumber(repeat.Frequency), formatFreqNumber(repeat.Period), periodWord(repeat.PeriodUnit))
	}
}

func timesPhrase(frequency float64) string {
	switch frequency {
	case 1:
		return "once"
	case 2:
		return "twice"
	default:
		return fmt.Sprintf("%s times", formatFreqNumber(frequency))
	}
}

func periodWord(unit fhirtype.PeriodUnit) string {
	switch unit {
	case fhirtype.PeriodUnitDay:
		return "daily"
	case fhirtype.PeriodUnitWeek:
		return "weekly"
	case fhirtype.PeriodUnitMonth:
		return "monthly"
	case fhirtype.PeriodUnitHour:
		return "hourly"
	default:
		return string(unit)
	}
}

func formatFreqNumber(v float64) string {
	if v == float64(int(v)) {
		return fmt.Sprintf("%d", int(v))
	}
	return fmt.Sprintf("%.2f", v)
}

// doseFormString reads the dose form off the builder's medication profile,
// tolerating a builder constructed without one (tests, ad-hoc use).
func doseFormString(b *Builder) string {
	if b.medProfile == nil {
		return ""
	}
	return string(b.medProfile.DoseForm)
}
