package dayssupply

import (
	"math"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/medsig/engine/pkg/common"
	"github.com/rs/zerolog"
)

// Dispatcher selects the highest-specificity matching Strategy and runs it,
// the same specificity-ranked selection pkg/strategy uses, recording one
// audit entry per call. Not safe for concurrent use without external
// mutual exclusion, same as pkg/strategy.Dispatcher.
type Dispatcher struct {
	registry *Registry
	audit    *auditLog

	// Logger is the dispatcher's optional trace hook; nil (the zero value)
	// means silent, matching pkg/strategy.Dispatcher's ambient-stack rule.
	Logger *zerolog.Logger
}

// NewDispatcher builds a Dispatcher over registry with the given audit-log
// capacity (0 or negative uses the default of 1000).
func NewDispatcher(registry *Registry, auditCapacity int) *Dispatcher {
	return &Dispatcher{registry: registry, audit: newAuditLog(auditCapacity)}
}

func contextID(ctx Context) string {
	if ctx.Medication != nil && ctx.Medication.ID != "" {
		return ctx.Medication.ID
	}
	return "unknown"
}

func (d *Dispatcher) matchStrategy(ctx Context) (Strategy, error) {
	strategies := d.registry.Strategies()
	var matched []Strategy
	for _, s := range strategies {
		if s.Matches(ctx) {
			matched = append(matched, s)
		}
	}

	if len(matched) == 0 {
		names := make([]string, len(strategies))
		for i, s := range strategies {
			names[i] = s.Name()
		}
		return nil, &common.NoMatchingStrategyError{Context: contextID(ctx), Registered: names}
	}

	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].Specificity() > matched[j].Specificity()
	})

	if len(matched) >= 2 && matched[0].Specificity() == matched[1].Specificity() {
		candidates := []string{matched[0].Name(), matched[1].Name()}
		for _, s := range matched[2:] {
			if s.Specificity() == matched[0].Specificity() {
				candidates = append(candidates, s.Name())
			}
		}
		return nil, &common.AmbiguousStrategyError{Context: contextID(ctx), Candidates: candidates}
	}

	return matched[0], nil
}

// Calculate picks the winning strategy for ctx, runs it, and records one
// audit entry.
func (d *Dispatcher) Calculate(ctx Context) (Result, error) {
	start := time.Now()
	entry := AuditEntry{
		ID:        uuid.NewString(),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		ContextID: contextID(ctx),
	}

	winner, err := d.matchStrategy(ctx)
	if err != nil {
		entry.Error = err.Error()
		d.audit.append(entry)
		return Result{}, err
	}
	entry.Winner = winner.Name()

	result, err := winner.Calculate(ctx)
	if err != nil {
		entry.Error = err.Error()
		d.audit.append(entry)
		return Result{}, err
	}

	entry.DurationNs = time.Since(start).Nanoseconds()
	d.audit.append(entry)
	if d.Logger != nil {
		d.Logger.Debug().
			Str("strategy", entry.Winner).
			Dur("duration", time.Duration(entry.DurationNs)).
			Msg("days-supply calculation")
	}
	return result, nil
}

// AuditLog returns every recorded calculation entry, oldest first.
func (d *Dispatcher) AuditLog() []AuditEntry {
	return d.audit.entries()
}

// ClearAuditLog discards every recorded entry.
func (d *Dispatcher) ClearAuditLog() {
	d.audit.clear()
}

// PerformanceStats summarizes per-calculation durations across the current
// audit log, the same shape as pkg/strategy.PerformanceStats.
type PerformanceStats struct {
	Count int
	Mean  time.Duration
	P50   time.Duration
	P95   time.Duration
	P99   time.Duration
}

// GetPerformanceStats computes count/mean/p50/p95/p99 of per-calculation
// durations recorded in the audit log (soft p95 <= 5ms target).
// Entries that errored out before a duration was recorded are excluded.
func (d *Dispatcher) GetPerformanceStats() PerformanceStats {
	entries := d.audit.entries()
	durations := make([]time.Duration, 0, len(entries))
	var total time.Duration
	for _, e := range entries {
		if e.Error != "" {
			continue
		}
		dur := time.Duration(e.DurationNs)
		durations = append(durations, dur)
		total += dur
	}
	if len(durations) == 0 {
		return PerformanceStats{}
	}
	sort.Slice(durations, func(i, j int) bool { return durations[i] < durations[j] })

	return PerformanceStats{
		Count: len(durations),
		Mean:  total / time.Duration(len(durations)),
		P50:   percentile(durations, 0.50),
		P95:   percentile(durations, 0.95),
		P99:   percentile(durations, 0.99),
	}
}

func percentile(sorted []time.Duration, p float64) time.Duration {
	if len(sorted) == 0 {
		return 0
	}
	idx := int(math.Ceil(p*float64(len(sorted)))) - 1
	if idx < 0 {
		idx = 0
	}
	if idx >= len(sorted) {
		idx = len(sorted) - 1
	}
	return sorted[idx]
}
