package queries

import (
	"errors"
	"time"

	"bakery/internal/core/domain/model/kernel"
	"bakery/internal/core/domain/model/order"
	"bakery/internal/pkg/errs"
	"bakery/internal/pkg/guard"
)

var ErrGetOrderTimelineQueryIsNotConstructed = errors.New(
	"GetOrderTimelineQuery must be created via NewGetOrderTimelineQuery constructor",
)

// GetOrderTimelineQuery retrieves the customer-facing fulfillment timeline of
// one order: the milestones it has passed through, oldest first, plus the
// current status. Like the status lookup, the reference accepts the internal
// UUID or the tracking ID so the public tracking page can use it directly.
type GetOrderTimelineQuery struct { //nolint:recvcheck //using for validation
	orderID    *kernel.UUID
	trackingID *kernel.TrackingID

	guard guard.ConstructorGuard
}

// NewGetOrderTimelineQuery creates a timeline lookup from an order reference.
// The reference is tried as a UUID first, then as a tracking ID.
func NewGetOrderTimelineQuery(reference string) (GetOrderTimelineQuery, error) {
	if id, err := kernel.UUIDFromString(reference); err == nil {
		return GetOrderTimelineQuery{
			orderID: &id,
			guard:   guard.NewConstructorGuard(),
		}, nil
	}

	trackingID, err := kernel.TrackingIDFromString(reference)
	if err != nil {
		return GetOrderTimelineQuery{}, errs.NewValueIsInvalidErrorWithCause("orderReference", err)
	}

	return GetOrderTimelineQuery{
		trackingID: &trackingID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderTimelineQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderTimelineQueryIsNotConstructed)
}

// Reference returns the normalized order reference for error reporting.
func (q GetOrderTimelineQuery) Reference() string {
	if q.orderID != nil {
		return q.orderID.String()
	}
	if q.trackingID != nil {
		return q.trackingID.String()
	}
	return ""
}

// OrderID returns the UUID reference, or nil when looking up by tracking ID.
func (q GetOrderTimelineQuery) OrderID() *kernel.UUID {
	return q.orderID
}

// TrackingID returns the tracking reference, or nil when looking up by UUID.
func (q GetOrderTimelineQuery) TrackingID() *kernel.TrackingID {
	return q.trackingID
}

// GetOrderTimelineQueryResponse is the timeline projection of one order.
type GetOrderTimelineQueryResponse struct {
	TrackingID string
	Status     order.Status
	Entries    []TimelineEntry
}

// TimelineEntry is one milestone on the order's fulfillment timeline.
// Operator attribution is deliberately absent; the timeline is the
// customer-facing view of the status history.
type TimelineEntry struct {
	Status    order.Status
	Timestamp time.Time
	Location  string
	Note      string
}
