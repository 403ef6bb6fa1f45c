// Package notification provides a log-only NotificationDispatcher. It stands
// in for the real email/SMS subsystem so the service runs without external
// providers; every dispatch is recorded in the structured log.
package notification

import (
	"context"
	"log/slog"

	"bakery/internal/core/domain/model/order"
	"bakery/internal/core/ports"
)

// LogDispatcher implements ports.NotificationDispatcher by writing each
// notification to the structured log.
type LogDispatcher struct {
	logger *slog.Logger
}

// NewLogDispatcher creates a dispatcher logging to the given logger.
func NewLogDispatcher(logger *slog.Logger) *LogDispatcher {
	return &LogDispatcher{logger: logger.With("component", "notification")}
}

// NotifyOrderConfirmation confirms order placement to the customer.
func (d *LogDispatcher) NotifyOrderConfirmation(ctx context.Context, o *order.Order, recipient ports.Recipient) error {
	d.log(ctx, "order confirmation", o, recipient)
	return nil
}

// NotifyStatusUpdate informs the customer of a status change.
func (d *LogDispatcher) NotifyStatusUpdate(
	ctx context.Context, o *order.Order, status order.Status, recipient ports.Recipient,
) error {
	d.logger.InfoContext(ctx, "notification dispatched",
		"kind", "status update",
		"orderId", o.ID().String(),
		"trackingId", o.TrackingID().String(),
		"status", status.String(),
		"email", recipient.Email,
		"phone", recipient.Phone,
	)
	return nil
}

// NotifyCourierAssigned informs the customer the order left for delivery.
func (d *LogDispatcher) NotifyCourierAssigned(ctx context.Context, o *order.Order, recipient ports.Recipient) error {
	d.log(ctx, "courier assigned", o, recipient)
	return nil
}

// NotifyDeliveryCompleted informs the customer of completed delivery.
func (d *LogDispatcher) NotifyDeliveryCompleted(ctx context.Context, o *order.Order, recipient ports.Recipient) error {
	d.log(ctx, "delivery completed", o, recipient)
	return nil
}

func (d *LogDispatcher) log(ctx context.Context, kind string, o *order.Order, recipient ports.Recipient) {
	d.logger.InfoContext(ctx, "notification dispatched",
		"kind", kind,
		"orderId", o.ID().String(),
		"trackingId", o.TrackingID().String(),
		"email", recipient.Email,
		"phone", recipient.Phone,
	)
}
