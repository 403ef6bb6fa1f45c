package order

import "time"

// HistoryEntry is one record in an order's append-only status history.
// Entries are never mutated or reordered after being appended; together they
// form the audit trail of every fulfillment status the order passed through.
type HistoryEntry struct {
	Status    Status
	Timestamp time.Time
	Location  string
	Note      string
	UpdatedBy string
}
