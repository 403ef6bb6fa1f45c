// Package queries contains read-only operations over the order store.
// Queries bypass the aggregate and read projections straight from the
// database; they never mutate state.
package queries

import (
	"errors"
	"time"

	"bakery/internal/core/domain/model/kernel"
	"bakery/internal/core/domain/model/order"
	"bakery/internal/pkg/errs"
	"bakery/internal/pkg/guard"
)

var ErrGetOrderStatusQueryIsNotConstructed = errors.New(
	"GetOrderStatusQuery must be created via NewGetOrderStatusQuery constructor",
)

// GetOrderStatusQuery retrieves the current fulfillment status of one order.
// The order reference accepts either the internal UUID or the customer-facing
// tracking ID, so the same lookup serves the admin panel and the public
// tracking page.
type GetOrderStatusQuery struct { //nolint:recvcheck //using for validation
	orderID    *kernel.UUID
	trackingID *kernel.TrackingID

	guard guard.ConstructorGuard
}

// NewGetOrderStatusQuery creates a status lookup from an order reference.
// The reference is tried as a UUID first, then as a tracking ID.
func NewGetOrderStatusQuery(reference string) (GetOrderStatusQuery, error) {
	if id, err := kernel.UUIDFromString(reference); err == nil {
		return GetOrderStatusQuery{
			orderID: &id,
			guard:   guard.NewConstructorGuard(),
		}, nil
	}

	trackingID, err := kernel.TrackingIDFromString(reference)
	if err != nil {
		return GetOrderStatusQuery{}, errs.NewValueIsInvalidErrorWithCause("orderReference", err)
	}

	return GetOrderStatusQuery{
		trackingID: &trackingID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderStatusQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderStatusQueryIsNotConstructed)
}

// Reference returns the normalized order reference for error reporting.
func (q GetOrderStatusQuery) Reference() string {
	if q.orderID != nil {
		return q.orderID.String()
	}
	if q.trackingID != nil {
		return q.trackingID.String()
	}
	return ""
}

// OrderID returns the UUID reference, or nil when looking up by tracking ID.
func (q GetOrderStatusQuery) OrderID() *kernel.UUID {
	return q.orderID
}

// TrackingID returns the tracking reference, or nil when looking up by UUID.
func (q GetOrderStatusQuery) TrackingID() *kernel.TrackingID {
	return q.trackingID
}

// GetOrderStatusQueryResponse is the status projection of one order.
type GetOrderStatusQueryResponse struct {
	ID              kernel.UUID
	TrackingID      string
	Status          order.Status
	BranchID        *kernel.UUID
	AssignmentMode  order.AssignmentMode
	AssignmentState order.AssignmentState
	CourierCode     string
	SentToCourierAt *time.Time
	CourierSync     *CourierSyncProjection
}

// CourierSyncProjection mirrors the courier-platform sync record for reads.
// Present only after the order has been handed to a courier.
type CourierSyncProjection struct {
	ExternalOrderID string
	Platform        string
	Status          order.SyncStatus
	LastError       string
	Retryable       bool
}
