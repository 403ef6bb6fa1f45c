package order

import "time"

// SyncStatus is the outcome of submitting an order to the external courier
// platform. It is tracked separately from the order's fulfillment status:
// local state is the source of truth and remote sync is best-effort.
type SyncStatus int

const (
	// SyncPending means the order awaits submission (or re-submission) to the
	// courier platform.
	SyncPending SyncStatus = iota

	// SyncSynced means the courier platform accepted the order.
	SyncSynced

	// SyncFailed means the last submission attempt failed; the failure detail
	// is recorded on the CourierSync.
	SyncFailed
)

func getSyncStatusStrings() map[SyncStatus]string {
	return map[SyncStatus]string{
		SyncPending: "pending",
		SyncSynced:  "synced",
		SyncFailed:  "failed",
	}
}

// String returns the wire representation of the sync status.
func (s SyncStatus) String() string {
	if str, ok := getSyncStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// CourierSync records the integration state between an order and the external
// courier platform.
type CourierSync struct {
	// ExternalOrderID is the courier platform's identifier for the order,
	// set after a successful submission.
	ExternalOrderID string

	// Platform names the courier platform the order was submitted to.
	Platform string

	// SubmittedAt is the time of the last submission attempt.
	SubmittedAt *time.Time

	// Status is the sync outcome of the last submission attempt.
	Status SyncStatus

	// LastError holds the failure detail of the last failed attempt.
	LastError string

	// Retryable reports whether the last failure is worth re-submitting.
	Retryable bool
}
