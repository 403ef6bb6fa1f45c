package commands

import (
	"context"
	"fmt"
	"log/slog"

	"bakery/internal/core/application/events"
	"bakery/internal/core/domain/model/order"
	"bakery/internal/core/ports"
)

// UpdateStatusCommandHandler applies a lifecycle transition to an order.
type UpdateStatusCommandHandler struct {
	uowFactory OrderUoWFactory
	notifier   ports.NotificationDispatcher
	bus        *events.Bus
	logger     *slog.Logger
}

// NewUpdateStatusCommandHandler creates a handler with the given
// collaborators.
func NewUpdateStatusCommandHandler(
	uowFactory OrderUoWFactory,
	notifier ports.NotificationDispatcher,
	bus *events.Bus,
	logger *slog.Logger,
) UpdateStatusCommandHandler {
	return UpdateStatusCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		bus:        bus,
		logger:     logger.With("component", "update_status"),
	}
}

// Handle transitions the order to the command's target status, persists the
// result and publishes the matching events. Notification failures are logged
// and never fail the transition.
func (h UpdateStatusCommandHandler) Handle(ctx context.Context, cmd UpdateStatusCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer func() { _ = uow.Rollback(ctx) }()

	o, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if err := o.UpdateStatus(cmd.Target(), cmd.Location(), cmd.Note(), "admin"); err != nil {
		return err
	}

	if err := uow.OrderRepository().Update(ctx, o); err != nil {
		return fmt.Errorf("update order: %w", err)
	}
	if err := uow.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}

	h.publishStatusEvents(ctx, o)
	h.notifyStatusChange(ctx, o)

	return nil
}

func (h UpdateStatusCommandHandler) publishStatusEvents(ctx context.Context, o *order.Order) {
	h.bus.Publish(ctx, events.NewEvent(events.StatusChanged, o))

	switch o.Status() {
	case order.Delivered:
		h.bus.Publish(ctx, events.NewEvent(events.OrderDelivered, o))
	case order.Cancelled:
		h.bus.Publish(ctx, events.NewEvent(events.OrderCancelled, o))
	case order.CourierHandoff:
		h.bus.Publish(ctx, events.NewEvent(events.CourierAssigned, o))
	}
}

func (h UpdateStatusCommandHandler) notifyStatusChange(ctx context.Context, o *order.Order) {
	if !o.HasContact() {
		return
	}

	recipient := ports.Recipient{Email: o.CustomerEmail(), Phone: o.CustomerPhone()}

	var err error
	if o.Status() == order.Delivered {
		err = h.notifier.NotifyDeliveryCompleted(ctx, o, recipient)
	} else {
		err = h.notifier.NotifyStatusUpdate(ctx, o, o.Status(), recipient)
	}
	if err != nil {
		h.logger.WarnContext(ctx, "status notification failed",
			"orderId", o.ID().String(), "status", o.Status().String(), "error", err)
	}
}
