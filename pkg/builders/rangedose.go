package builders

// rangeDoseAspect configures ComplexPRNBuilder's dose-range, frequency-
// range, and max-daily-dose handling.
type rangeDoseAspect struct {
	minFrequency float64
	maxFrequency float64
	maxDailyDose float64
	maxDailyUnit string
}

// derivedIntervals computes the min/max-interval-between-doses and
// max-administrations-per-day ComplexPRNBuilder derives from its frequency
// range: minInterval/maxInterval are period/frequency (the
// time between doses at the fastest/slowest pace), maxAdministrationsPerDay
// is the fastest pace's count per day.
func (r *rangeDoseAspect) derivedIntervals(period float64) (minInterval, maxInterval, maxAdministrationsPerDay float64) {
	if r.maxFrequency > 0 {
		minInterval = period / r.maxFrequency
	}
	if r.minFrequency > 0 {
		maxInterval = period / r.minFrequency
	}
	maxAdministrationsPerDay = r.maxFrequency
	return
}
