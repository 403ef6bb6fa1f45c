package commands

import (
	"context"
	"fmt"
	"log/slog"

	"bakery/internal/core/application/events"
	"bakery/internal/core/domain/model/order"
	"bakery/internal/pkg/errs"
)

// AssignBranchCommandHandler applies a manual branch assignment to an order.
type AssignBranchCommandHandler struct {
	uowFactory OrderBranchUoWFactory
	bus        *events.Bus
	logger     *slog.Logger
}

// NewAssignBranchCommandHandler creates a handler with the given unit of
// work factory and event bus.
func NewAssignBranchCommandHandler(
	uowFactory OrderBranchUoWFactory, bus *events.Bus, logger *slog.Logger,
) AssignBranchCommandHandler {
	return AssignBranchCommandHandler{
		uowFactory: uowFactory,
		bus:        bus,
		logger:     logger.With("component", "assign_branch"),
	}
}

// Handle assigns the branch to the order. The branch must exist and be
// active; an order in a terminal status cannot be reassigned.
func (h AssignBranchCommandHandler) Handle(ctx context.Context, cmd AssignBranchCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer func() { _ = uow.Rollback(ctx) }()

	b, err := uow.BranchRepository().Get(ctx, cmd.BranchID())
	if err != nil {
		return err
	}
	if !b.IsActive() {
		return errs.NewPreconditionFailedError("assign branch",
			fmt.Sprintf("branch %s is not active", b.Code()))
	}

	o, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	note := cmd.Note()
	if note == "" {
		note = fmt.Sprintf("assigned to branch %s by operator", b.Code())
	}
	if err := o.AssignBranch(b.ID(), order.ModeManual, "admin", note); err != nil {
		return err
	}

	if err := uow.OrderRepository().Update(ctx, o); err != nil {
		return fmt.Errorf("update order: %w", err)
	}
	if err := uow.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}

	h.bus.Publish(ctx, events.NewEvent(events.BranchAssigned, o))

	return nil
}
