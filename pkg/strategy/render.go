package strategy

import (
	"fmt"

	"github.com/medsig/engine/pkg/fhirtype"
	"github.com/medsig/engine/pkg/timing"
)

// frequencySentence renders a timing.Result's repeat pattern back into the
// sentence fragment the Template Engine expects, mirroring
// pkg/builders' own frequencyText; kept as a separate, smaller copy here
// since this package never depends on pkg/builders (it is an alternative
// dispatch path, not a layer on top of it).
func frequencySentence(r timing.Result) string {
	if r.Timing == nil {
		return ""
	}
	repeat := r.Timing.Repeat

	switch {
	case repeat.PeriodUnit == fhirtype.PeriodUnitHour && repeat.Frequency == 1 && repeat.FrequencyMax == 0:
		return fmt.Sprintf("every %s hours", formatNumber(repeat.Period))
	case repeat.PeriodUnit == fhirtype.PeriodUnitDay && repeat.Period == 2 && repeat.Frequency == 1:
		return "every other day"
	case repeat.Frequency == 1 && repeat.Period == 1 && repeat.FrequencyMax == 0:
		return "once " + periodAdverb(repeat.PeriodUnit)
	case repeat.Frequency == 2 && repeat.Period == 1 && repeat.FrequencyMax == 0:
		return "twice " + periodAdverb(repeat.PeriodUnit)
	default:
		return fmt.Sprintf("%s times every %s %s", formatNumber(repeat.Frequency), formatNumber(repeat.Period), periodAdverb(repeat.PeriodUnit))
	}
}

func periodAdverb(unit fhirtype.PeriodUnit) string {
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

func formatNumber(v float64) string {
	if v == float64(int64(v)) {
		return fmt.Sprintf("%d", int64(v))
	}
	return fmt.Sprintf("%.2f", v)
}
