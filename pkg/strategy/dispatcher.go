package strategy

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/medsig/engine/pkg/common"
	"github.com/medsig/engine/pkg/profile"
	"github.com/rs/zerolog"
)

// Dispatcher runs the six-step dispatch algorithm against an
// immutable Registry. A Dispatcher's audit log is not safe
// for concurrent use; a caller sharing one dispatcher across goroutines
// must supply external mutual exclusion around Dispatch/AuditLog/ClearAuditLog.
type Dispatcher struct {
	registry *Registry
	audit    *auditLog

	// Logger is the dispatcher's optional trace hook: library code never
	// logs on its own initiative, so Dispatch only emits a debug-level
	// record when a caller opts in by setting this field. Nil (the zero
	// value) means silent.
	Logger *zerolog.Logger
}

// NewDispatcher builds a Dispatcher over registry with the given audit-log
// capacity (0 or negative uses the default of 1000).
func NewDispatcher(registry *Registry, auditCapacity int) *Dispatcher {
	return &Dispatcher{registry: registry, audit: newAuditLog(auditCapacity)}
}

func contextID(ctx *profile.MedicationRequestContext) string {
	if ctx != nil && ctx.RequestID != "" {
		return ctx.RequestID
	}
	return "unknown"
}

// matchStrategies runs dispatch steps 1–3: match every registered
// strategy, sort the matches by specificity, and return either the winner
// or a typed ambiguity/no-match error.
func (d *Dispatcher) matchStrategies(ctx *profile.MedicationRequestContext) ([]MatchRecord, Strategy, error) {
	strategies := d.registry.Strategies()
	records := make([]MatchRecord, 0, len(strategies))
	var matched []Strategy
	for _, s := range strategies {
		ok := s.Matches(ctx)
		records = append(records, MatchRecord{Name: s.Name(), Specificity: s.Specificity(), Matched: ok})
		if ok {
			matched = append(matched, s)
		}
	}

	if len(matched) == 0 {
		names := make([]string, len(strategies))
		for i, s := range strategies {
			names[i] = s.Name()
		}
		return records, nil, &common.NoMatchingStrategyError{Context: contextID(ctx), Registered: names}
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
		return records, nil, &common.AmbiguousStrategyError{Context: contextID(ctx), Candidates: candidates}
	}

	return records, matched[0], nil
}

// applicableModifiers runs dispatch step 5's selection: every modifier
// whose AppliesTo matches, sorted ascending by priority.
func (d *Dispatcher) applicableModifiers(ctx *profile.MedicationRequestContext) []Modifier {
	var applicable []Modifier
	for _, m := range d.registry.Modifiers() {
		if m.AppliesTo(ctx) {
			applicable = append(applicable, m)
		}
	}
	sort.SliceStable(applicable, func(i, j int) bool {
		return applicable[i].Priority() < applicable[j].Priority()
	})
	return applicable
}

// Dispatch runs the full six-step algorithm: match, pick the
// most specific winner (or fail with AmbiguousStrategyError /
// NoMatchingStrategyError), build, fold applicable modifiers over the
// result in priority order, and record one audit entry.
func (d *Dispatcher) Dispatch(ctx *profile.MedicationRequestContext) (profile.SignatureInstruction, error) {
	start := time.Now()
	records, winner, err := d.matchStrategies(ctx)

	entry := AuditEntry{
		ID:        uuid.NewString(),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		ContextID: contextID(ctx),
		Matched:   records,
	}
	if err != nil {
		entry.Error = err.Error()
		d.audit.append(entry)
		return profile.SignatureInstruction{}, err
	}
	entry.Winner = winner.Name()
	entry.Specificity = winner.Specificity()

	instr, err := winner.Build(ctx)
	if err != nil {
		entry.Error = err.Error()
		d.audit.append(entry)
		return profile.SignatureInstruction{}, err
	}

	for _, m := range d.applicableModifiers(ctx) {
		instr, err = m.Apply(ctx, instr)
		if err != nil {
			entry.Error = err.Error()
			d.audit.append(entry)
			return profile.SignatureInstruction{}, err
		}
		entry.Modifiers = append(entry.Modifiers, m.Name())
	}

	entry.DurationNs = time.Since(start).Nanoseconds()
	d.audit.append(entry)
	if d.Logger != nil {
		d.Logger.Debug().
			Str("strategy", entry.Winner).
			Strs("modifiers", entry.Modifiers).
			Dur("duration", time.Duration(entry.DurationNs)).
			Msg("strategy dispatch")
	}
	return instr, nil
}

// Preview returns the strategy and modifier names Dispatch would use for
// ctx, without building or applying anything.
func (d *Dispatcher) Preview(ctx *profile.MedicationRequestContext) (strategyName string, modifierNames []string, err error) {
	_, winner, err := d.matchStrategies(ctx)
	if err != nil {
		return "", nil, err
	}
	for _, m := range d.applicableModifiers(ctx) {
		modifierNames = append(modifierNames, m.Name())
	}
	return winner.Name(), modifierNames, nil
}

// ExplainSelection returns a multi-line human trace of dispatch's decision
// for ctx: every strategy's match outcome,
// the winner, and the modifiers that would run.
func (d *Dispatcher) ExplainSelection(ctx *profile.MedicationRequestContext) string {
	records, winner, err := d.matchStrategies(ctx)

	var b strings.Builder
	fmt.Fprintf(&b, "strategy selection for %s:\n", contextID(ctx))
	for _, r := range records {
		status := "no match"
		if r.Matched {
			status = "matched"
		}
		fmt.Fprintf(&b, "  [%s] %s (specificity=%s)\n", status, r.Name, r.Specificity)
	}
	if err != nil {
		fmt.Fprintf(&b, "=> %v\n", err)
		return b.String()
	}
	fmt.Fprintf(&b, "=> winner: %s (specificity=%s)\n", winner.Name(), winner.Specificity())

	modifiers := d.applicableModifiers(ctx)
	if len(modifiers) == 0 {
		b.WriteString("=> no modifiers applied\n")
		return b.String()
	}
	for _, m := range modifiers {
		fmt.Fprintf(&b, "=> modifier: %s (priority=%d)\n", m.Name(), m.Priority())
	}
	return b.String()
}

// AuditLog returns every recorded dispatch entry, oldest first.
func (d *Dispatcher) AuditLog() []AuditEntry {
	return d.audit.entries()
}

// ClearAuditLog discards every recorded entry.
func (d *Dispatcher) ClearAuditLog() {
	d.audit.clear()
}

// PerformanceStats summarizes per-dispatch durations across the current
// audit log.
type PerformanceStats struct {
	Count int
	Mean  time.Duration
	P50   time.Duration
	P95   time.Duration
	P99   time.Duration
}

// GetPerformanceStats computes count/mean/p50/p95/p99 of per-dispatch
// durations recorded in the audit log. Entries that errored out before a
// duration was recorded are excluded. This sorts and indexes directly
// rather than pulling in a percentile library for five numbers.
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
