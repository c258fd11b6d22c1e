package units

import (
	"fmt"

	"github.com/medsig/engine/pkg/fhirtype"
)

// Frequency is either a regular dosing cadence (count times per period,
// optionally a range of counts/periods) or a PRN ("as needed") indication
// with no fixed cadence.
type Frequency struct {
	prn bool

	count    float64
	countMax float64 // 0 when not a range

	period     float64
	periodMax  float64 // 0 when not a range
	periodUnit fhirtype.PeriodUnit
}

// NewRegularFrequency builds a fixed-cadence Frequency: count times every
// period periodUnit (e.g. 2 times per 1 day == "twice daily").
func NewRegularFrequency(count, period float64, periodUnit fhirtype.PeriodUnit) (Frequency, error) {
	if count <= 0 {
		return Frequency{}, fmt.Errorf("frequency count must be positive, got %v", count)
	}
	if period <= 0 {
		return Frequency{}, fmt.Errorf("frequency period must be positive, got %v", period)
	}
	return Frequency{count: count, period: period, periodUnit: periodUnit}, nil
}

// NewFrequencyRange builds a ComplexPRNBuilder-style frequency range, e.g.
// "every 4-6 hours". A range whose min equals its max collapses
// to a single frequency with no range text.
func NewFrequencyRange(countMin, countMax, periodMin, periodMax float64, periodUnit fhirtype.PeriodUnit) (Frequency, error) {
	if countMin <= 0 || countMax <= 0 {
		return Frequency{}, fmt.Errorf("frequency count bounds must be positive")
	}
	if countMin > countMax {
		return Frequency{}, fmt.Errorf("frequency count min %v exceeds max %v", countMin, countMax)
	}
	if periodMin <= 0 || periodMax <= 0 {
		return Frequency{}, fmt.Errorf("frequency period bounds must be positive")
	}
	if periodMin > periodMax {
		return Frequency{}, fmt.Errorf("frequency period min %v exceeds max %v", periodMin, periodMax)
	}
	return Frequency{
		count: countMin, countMax: countMax,
		period: periodMin, periodMax: periodMax,
		periodUnit: periodUnit,
	}, nil
}

// NewPRNFrequency builds an "as needed" Frequency with no fixed cadence.
func NewPRNFrequency() Frequency {
	return Frequency{prn: true}
}

func (f Frequency) IsPRN() bool { return f.prn }

// IsRange reports whether this frequency has a genuine min/max spread
// (collapsed: min == max is not a range).
func (f Frequency) IsRange() bool {
	return !f.prn && (f.countMax > 0 && f.countMax != f.count || f.periodMax > 0 && f.periodMax != f.period)
}

func (f Frequency) Count() float64                    { return f.count }
func (f Frequency) CountMax() float64                 { return f.countMax }
func (f Frequency) Period() float64                   { return f.period }
func (f Frequency) PeriodMax() float64                { return f.periodMax }
func (f Frequency) PeriodUnit() fhirtype.PeriodUnit    { return f.periodUnit }

// DosesPerPeriod returns how many administrations occur per the given
// reference period (e.g. per day), using the minimum count/period when a
// range is present. Used by pkg/dayssupply for consumption estimates.
func (f Frequency) DosesPerPeriod(referencePeriod float64, referenceUnit fhirtype.PeriodUnit) float64 {
	if f.prn || f.period <= 0 {
		return 0
	}
	if f.periodUnit != referenceUnit {
		// Callers are expected to normalize units before calling; treat
		// mismatched units as non-comparable rather than silently wrong.
		return 0
	}
	return (f.count / f.period) * referencePeriod
}
