package commands

import (
	"context"
	"fmt"
	"log/slog"

	"bakery/internal/core/application/events"
)

// ApproveAssignmentCommandHandler commits a suggested branch assignment.
type ApproveAssignmentCommandHandler struct {
	uowFactory OrderUoWFactory
	bus        *events.Bus
	logger     *slog.Logger
}

// NewApproveAssignmentCommandHandler creates a handler with the given
// unit of work factory and event bus.
func NewApproveAssignmentCommandHandler(
	uowFactory OrderUoWFactory, bus *events.Bus, logger *slog.Logger,
) ApproveAssignmentCommandHandler {
	return ApproveAssignmentCommandHandler{
		uowFactory: uowFactory,
		bus:        bus,
		logger:     logger.With("component", "approve_assignment"),
	}
}

// Handle approves the suggested branch of the order and persists the result.
func (h ApproveAssignmentCommandHandler) Handle(ctx context.Context, cmd ApproveAssignmentCommand) error {
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

	if err := o.ApproveAssignment("admin"); err != nil {
		return err
	}

	if err := uow.OrderRepository().Update(ctx, o); err != nil {
		return fmt.Errorf("update order: %w", err)
	}
	if err := uow.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}

	h.bus.Publish(ctx, events.NewEvent(events.AssignmentApproved, o))
	h.bus.Publish(ctx, events.NewEvent(events.BranchAssigned, o))

	return nil
}
