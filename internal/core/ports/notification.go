package ports

import (
	"context"

	"bakery/internal/core/domain/model/order"
)

// Recipient carries the contact channels for a notification.
type Recipient struct {
	Email string
	Phone string
}

// HasChannel reports whether any contact channel is present. Notifications
// are dispatched only when one exists.
func (r Recipient) HasChannel() bool {
	return r.Email != "" || r.Phone != ""
}

// NotificationDispatcher is the contract to the external notification
// subsystem (email/SMS). The core calls it opportunistically and never lets
// a dispatch failure abort a fulfillment transition; callers log returned
// errors and move on.
type NotificationDispatcher interface {
	// NotifyOrderConfirmation confirms order placement to the customer.
	NotifyOrderConfirmation(ctx context.Context, o *order.Order, recipient Recipient) error

	// NotifyStatusUpdate informs the customer of a status change.
	NotifyStatusUpdate(ctx context.Context, o *order.Order, status order.Status, recipient Recipient) error

	// NotifyCourierAssigned informs the customer the order left for delivery.
	NotifyCourierAssigned(ctx context.Context, o *order.Order, recipient Recipient) error

	// NotifyDeliveryCompleted informs the customer of completed delivery.
	NotifyDeliveryCompleted(ctx context.Context, o *order.Order, recipient Recipient) error
}
