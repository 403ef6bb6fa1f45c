package commands

import (
	"context"
	"fmt"
	"log/slog"

	"bakery/internal/core/application/events"
)

// PrepareOrderCommandHandler starts preparation of an order at its branch.
type PrepareOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	bus        *events.Bus
	logger     *slog.Logger
}

// NewPrepareOrderCommandHandler creates a handler with the given unit of
// work factory and event bus.
func NewPrepareOrderCommandHandler(
	uowFactory OrderUoWFactory, bus *events.Bus, logger *slog.Logger,
) PrepareOrderCommandHandler {
	return PrepareOrderCommandHandler{
		uowFactory: uowFactory,
		bus:        bus,
		logger:     logger.With("component", "prepare_order"),
	}
}

// Handle moves the order to "preparing". Calling it on an order already in
// preparation is a no-op and publishes nothing.
func (h PrepareOrderCommandHandler) Handle(ctx context.Context, cmd PrepareOrderCommand) error {
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

	before := len(o.History())
	if err := o.Prepare("branch"); err != nil {
		return err
	}
	if len(o.History()) == before {
		// already preparing, nothing changed
		return nil
	}

	if err := uow.OrderRepository().Update(ctx, o); err != nil {
		return fmt.Errorf("update order: %w", err)
	}
	if err := uow.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}

	h.bus.Publish(ctx, events.NewEvent(events.OrderPreparing, o))
	h.bus.Publish(ctx, events.NewEvent(events.StatusChanged, o))

	return nil
}
