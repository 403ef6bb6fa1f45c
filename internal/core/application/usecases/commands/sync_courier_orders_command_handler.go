package commands

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"bakery/internal/core/domain/model/kernel"
	"bakery/internal/core/domain/model/order"
	"bakery/internal/core/ports"
)

// SyncCourierOrdersCommandHandler re-submits unsynced courier-handoff orders
// to the courier platform. Invoked by the scheduled re-sync job; a platform
// outage simply leaves the affected orders for the next sweep.
type SyncCourierOrdersCommandHandler struct {
	uowFactory OrderUoWFactory
	gateway    ports.CourierGateway
	logger     *slog.Logger
}

// NewSyncCourierOrdersCommandHandler creates a handler with the given unit
// of work factory and courier gateway.
func NewSyncCourierOrdersCommandHandler(
	uowFactory OrderUoWFactory, gateway ports.CourierGateway, logger *slog.Logger,
) SyncCourierOrdersCommandHandler {
	return SyncCourierOrdersCommandHandler{
		uowFactory: uowFactory,
		gateway:    gateway,
		logger:     logger.With("component", "sync_courier_orders"),
	}
}

// Handle loads all orders awaiting sync and attempts each submission. Each
// outcome is persisted in its own transaction so one failing order does not
// block the rest of the sweep.
func (h SyncCourierOrdersCommandHandler) Handle(ctx context.Context, cmd SyncCourierOrdersCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	pending, err := h.loadPending(ctx)
	if err != nil {
		return err
	}
	if len(pending) == 0 {
		return nil
	}

	if err := h.gateway.Initialize(ctx); err != nil {
		return fmt.Errorf("initialize courier gateway: %w", err)
	}

	synced := 0
	for _, o := range pending {
		if h.syncOne(ctx, o) {
			synced++
		}
	}

	h.logger.InfoContext(ctx, "courier sync sweep finished",
		"pending", len(pending), "synced", synced)

	return nil
}

func (h SyncCourierOrdersCommandHandler) loadPending(ctx context.Context) ([]*order.Order, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer func() { _ = uow.Rollback(ctx) }()

	pending, err := uow.OrderRepository().GetAllAwaitingCourierSync(ctx)
	if err != nil {
		return nil, fmt.Errorf("load orders awaiting sync: %w", err)
	}
	return pending, nil
}

func (h SyncCourierOrdersCommandHandler) syncOne(ctx context.Context, o *order.Order) bool {
	result := h.gateway.SubmitOrder(ctx, o)

	var sync order.CourierSync
	if result.Success {
		now := time.Now()
		sync = order.CourierSync{
			ExternalOrderID: result.ExternalOrderID,
			Platform:        result.Platform,
			SubmittedAt:     &now,
			Status:          order.SyncSynced,
		}
	} else {
		sync = order.CourierSync{
			Platform:  result.Platform,
			Status:    order.SyncFailed,
			LastError: result.Error,
			Retryable: result.Retryable,
		}
		h.logger.WarnContext(ctx, "courier re-submission failed",
			"orderId", o.ID().String(),
			"retryable", result.Retryable,
			"error", result.Error,
		)
	}

	if err := h.persistSync(ctx, o.ID(), sync); err != nil {
		h.logger.ErrorContext(ctx, "failed to persist courier sync outcome",
			"orderId", o.ID().String(), "error", err)
		return false
	}
	return result.Success
}

// persistSync records the submission outcome against a fresh read of the
// order. The sweep's snapshot is stale by the time the platform call returns;
// writing it back would clobber any transition an operator committed in
// between, so the outcome is applied to the current aggregate and discarded
// when the order is no longer awaiting sync.
func (h SyncCourierOrdersCommandHandler) persistSync(
	ctx context.Context, orderID kernel.UUID, sync order.CourierSync,
) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer func() { _ = uow.Rollback(ctx) }()

	o, err := uow.OrderRepository().Get(ctx, orderID)
	if err != nil {
		return err
	}
	if !o.AwaitingCourierSync() {
		h.logger.InfoContext(ctx, "order advanced during sweep, sync outcome discarded",
			"orderId", orderID.String(), "status", o.Status().String())
		return nil
	}

	if err := o.RecordCourierSync(sync); err != nil {
		return err
	}
	if err := uow.OrderRepository().Update(ctx, o); err != nil {
		return fmt.Errorf("update order: %w", err)
	}
	return uow.Commit(ctx)
}
