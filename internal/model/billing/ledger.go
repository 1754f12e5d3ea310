package billing

import "sync"

// Ledger is an append-only in-memory record store shared by all concurrent
// relay sessions. It is created once at service start and passed by
// reference into every component that needs it.
type Ledger struct {
	mu      sync.RWMutex
	records []Record
}

// NewLedger returns an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{records: make([]Record, 0, 16)}
}

// Append adds one completed-turn record. Safe under concurrent sessions.
func (l *Ledger) Append(record Record) {
	l.mu.Lock()
	l.records = append(l.records, record)
	l.mu.Unlock()
}

// Dump returns all records in insertion order. Diagnostic read path only.
func (l *Ledger) Dump() []Record {
	l.mu.RLock()
	defer l.mu.RUnlock()

	copied := make([]Record, len(l.records))
	copy(copied, l.records)
	return copied
}

// Len reports the number of recorded turns.
func (l *Ledger) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.records)
}
