package commands

import (
	"context"
	"fmt"
	"log/slog"
)

// DeleteOrderCommandHandler hard-deletes an order with its items and history.
type DeleteOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	logger     *slog.Logger
}

// NewDeleteOrderCommandHandler creates a handler with the given unit of work
// factory.
func NewDeleteOrderCommandHandler(uowFactory OrderUoWFactory, logger *slog.Logger) DeleteOrderCommandHandler {
	return DeleteOrderCommandHandler{
		uowFactory: uowFactory,
		logger:     logger.With("component", "delete_order"),
	}
}

// Handle deletes the order. Deleting a missing order returns the repository's
// not-found error.
func (h DeleteOrderCommandHandler) Handle(ctx context.Context, cmd DeleteOrderCommand) error {
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

	if err := uow.OrderRepository().Delete(ctx, o.ID()); err != nil {
		return fmt.Errorf("delete order: %w", err)
	}
	if err := uow.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}

	h.logger.InfoContext(ctx, "order deleted",
		"orderId", o.ID().String(), "status", o.Status().String())

	return nil
}
