package strategy

import "container/ring"

// MatchRecord is one strategy's match outcome within a single dispatch, as
// recorded in that dispatch's AuditEntry.
type MatchRecord struct {
	Name        string
	Specificity Specificity
	Matched     bool
}

// AuditEntry is one dispatch's trace: every strategy's match outcome, the
// winner (if any), the modifiers that ran in execution order, and how long
// the whole dispatch took.
type AuditEntry struct {
	ID          string
	Timestamp   string
	ContextID   string
	Matched     []MatchRecord
	Winner      string
	Specificity Specificity
	Modifiers   []string
	DurationNs  int64
	Error       string
}

// auditLog is a bounded ring buffer of AuditEntry, default capacity 1000,
// built on the standard library's container/ring rather than a hand-rolled
// indexed slice.
type auditLog struct {
	cursor   *ring.Ring
	capacity int
}

func newAuditLog(capacity int) *auditLog {
	if capacity <= 0 {
		capacity = 1000
	}
	return &auditLog{cursor: ring.New(capacity), capacity: capacity}
}

func (a *auditLog) append(e AuditEntry) {
	a.cursor.Value = e
	a.cursor = a.cursor.Next()
}

// entries returns every recorded entry oldest-first. container/ring
// pre-allocates every slot as a nil Value; a's cursor always sits at the
// oldest unwritten-or-about-to-be-overwritten slot, so a single pass from
// the cursor yields entries in write order once nil slots are skipped,
// whether or not the buffer has wrapped yet.
func (a *auditLog) entries() []AuditEntry {
	var out []AuditEntry
	a.cursor.Do(func(v any) {
		if v == nil {
			return
		}
		out = append(out, v.(AuditEntry))
	})
	return out
}

func (a *auditLog) clear() {
	a.cursor = ring.New(a.capacity)
}
