package commands

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"bakery/internal/core/application/events"
	"bakery/internal/core/domain/model/order"
	"bakery/internal/core/ports"
)

// SendToCourierCommandHandler moves a prepared order to courier handoff and
// submits it to the external courier platform.
//
// The local transition is committed before the platform is contacted and is
// never rolled back on a platform failure: the courier platform is a mirror
// of local state, not the other way around. The sync outcome is persisted in
// a second transaction and retried by the scheduled re-sync job when it
// reports a retryable failure.
type SendToCourierCommandHandler struct {
	uowFactory OrderUoWFactory
	gateway    ports.CourierGateway
	notifier   ports.NotificationDispatcher
	bus        *events.Bus
	logger     *slog.Logger
}

// NewSendToCourierCommandHandler creates a handler with the given
// collaborators.
func NewSendToCourierCommandHandler(
	uowFactory OrderUoWFactory,
	gateway ports.CourierGateway,
	notifier ports.NotificationDispatcher,
	bus *events.Bus,
	logger *slog.Logger,
) SendToCourierCommandHandler {
	return SendToCourierCommandHandler{
		uowFactory: uowFactory,
		gateway:    gateway,
		notifier:   notifier,
		bus:        bus,
		logger:     logger.With("component", "send_to_courier"),
	}
}

// Handle transitions the order to "courier-handoff", commits, then submits
// the order to the courier platform and records the sync outcome.
func (h SendToCourierCommandHandler) Handle(ctx context.Context, cmd SendToCourierCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	o, err := h.commitHandoff(ctx, cmd)
	if err != nil {
		return err
	}

	h.bus.Publish(ctx, events.NewEvent(events.CourierAssigned, o))
	h.bus.Publish(ctx, events.NewEvent(events.StatusChanged, o))
	h.notifyCourierAssigned(ctx, o)

	sync := h.submit(ctx, o)
	if err := h.recordSync(ctx, cmd, sync); err != nil {
		h.logger.ErrorContext(ctx, "failed to persist courier sync outcome",
			"orderId", cmd.OrderID().String(), "error", err)
	}

	return nil
}

func (h SendToCourierCommandHandler) commitHandoff(
	ctx context.Context, cmd SendToCourierCommand,
) (*order.Order, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer func() { _ = uow.Rollback(ctx) }()

	o, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	if err := o.HandToCourier("admin"); err != nil {
		return nil, err
	}

	if err := uow.OrderRepository().Update(ctx, o); err != nil {
		return nil, fmt.Errorf("update order: %w", err)
	}
	if err := uow.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}

	return o, nil
}

func (h SendToCourierCommandHandler) submit(ctx context.Context, o *order.Order) order.CourierSync {
	if err := h.gateway.Initialize(ctx); err != nil {
		h.logger.WarnContext(ctx, "courier gateway initialization failed",
			"orderId", o.ID().String(), "error", err)
		return order.CourierSync{
			Status:    order.SyncFailed,
			LastError: err.Error(),
			Retryable: true,
		}
	}

	result := h.gateway.SubmitOrder(ctx, o)
	if !result.Success {
		h.logger.WarnContext(ctx, "courier platform rejected order",
			"orderId", o.ID().String(),
			"platform", result.Platform,
			"retryable", result.Retryable,
			"error", result.Error,
		)
		return order.CourierSync{
			Platform:  result.Platform,
			Status:    order.SyncFailed,
			LastError: result.Error,
			Retryable: result.Retryable,
		}
	}

	now := time.Now()
	return order.CourierSync{
		ExternalOrderID: result.ExternalOrderID,
		Platform:        result.Platform,
		SubmittedAt:     &now,
		Status:          order.SyncSynced,
	}
}

func (h SendToCourierCommandHandler) recordSync(
	ctx context.Context, cmd SendToCourierCommand, sync order.CourierSync,
) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer func() { _ = uow.Rollback(ctx) }()

	o, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if err := o.RecordCourierSync(sync); err != nil {
		return err
	}

	if err := uow.OrderRepository().Update(ctx, o); err != nil {
		return fmt.Errorf("update order: %w", err)
	}
	return uow.Commit(ctx)
}

func (h SendToCourierCommandHandler) notifyCourierAssigned(ctx context.Context, o *order.Order) {
	if !o.HasContact() {
		return
	}

	recipient := ports.Recipient{Email: o.CustomerEmail(), Phone: o.CustomerPhone()}
	if err := h.notifier.NotifyCourierAssigned(ctx, o, recipient); err != nil {
		h.logger.WarnContext(ctx, "courier assignment notification failed",
			"orderId", o.ID().String(), "error", err)
	}
}
