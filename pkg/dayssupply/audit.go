package dayssupply

import "container/ring"

// AuditEntry is one calculateDaysSupply call's trace: which strategy won
// and how long the call took (the performance-stats requirement for
// calculateDaysSupply, mirroring pkg/strategy's dispatch audit entries).
type AuditEntry struct {
	ID         string
	Timestamp  string
	ContextID  string
	Winner     string
	DurationNs int64
	Error      string
}

// auditLog is a bounded ring buffer of AuditEntry, the same shape and
// rationale as pkg/strategy's.
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
