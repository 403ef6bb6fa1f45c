package ports

import (
	"context"

	"bakery/internal/core/domain/model/kernel"
	"bakery/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate. History entries
	// are appended, never rewritten; the aggregate's scalar state is replaced
	// atomically per order row.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetByTrackingID retrieves an order by its customer-facing tracking code.
	GetByTrackingID(ctx context.Context, trackingID kernel.TrackingID) (*order.Order, error)

	// GetAllAwaitingCourierSync retrieves orders in courier-handoff status
	// whose courier-platform sync is pending or retryably failed. Used by the
	// scheduled re-sync job.
	GetAllAwaitingCourierSync(ctx context.Context) ([]*order.Order, error)

	// Delete hard-removes an order. Administrative override, permitted
	// regardless of status.
	Delete(ctx context.Context, id kernel.UUID) error
}
