package timing

import "github.com/medsig/engine/pkg/fhirtype"

// DosesPerPeriod converts a Timing's repeat pattern into a doses-per-period
// rate, e.g. DosesPerPeriod(t, fhirtype.PeriodUnitDay, 1) for "doses per
// day", the rate every days-supply calculation strategy starts from.
func DosesPerPeriod(t fhirtype.Timing, periodUnit fhirtype.PeriodUnit, periodValue float64) float64 {
	repeat := t.Repeat
	freq := repeat.Frequency
	if freq <= 0 {
		freq = 1
	}
	sourceDays := periodInDays(repeat.Period, repeat.PeriodUnit)
	targetDays := periodInDays(periodValue, periodUnit)
	if sourceDays <= 0 || targetDays <= 0 {
		return 0
	}
	return (freq / sourceDays) * targetDays
}

// periodInDays converts a period into days. With no absolute date anchor to
// calendar-align against, a month is standardized to 30 days and a year to
// 365 (Open Question decision #1 in DESIGN.md).
func periodInDays(value float64, unit fhirtype.PeriodUnit) float64 {
	switch unit {
	case fhirtype.PeriodUnitSecond:
		return value / 86400
	case fhirtype.PeriodUnitMinute:
		return value / 1440
	case fhirtype.PeriodUnitHour:
		return value / 24
	case fhirtype.PeriodUnitDay:
		return value
	case fhirtype.PeriodUnitWeek:
		return value * 7
	case fhirtype.PeriodUnitMonth:
		return value * 30
	case fhirtype.PeriodUnitYear:
		return value * 365
	default:
		return value
	}
}
