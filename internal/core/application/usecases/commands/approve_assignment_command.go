package commands

import (
	"errors"

	"bakery/internal/core/domain/model/kernel"
	"bakery/internal/pkg/guard"
)

var ErrApproveAssignmentCommandIsNotConstructed = errors.New(
	"ApproveAssignmentCommand must be created via NewApproveAssignmentCommand constructor",
)

// ApproveAssignmentCommand represents an operator approving a suggested
// branch assignment (hybrid mode). Approving an order whose assignment is
// not in the suggested state fails with a precondition error, which makes
// double approval safe under concurrent operators.
type ApproveAssignmentCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewApproveAssignmentCommand creates a command to approve the suggested
// branch of the given order.
func NewApproveAssignmentCommand(orderID kernel.UUID) (ApproveAssignmentCommand, error) {
	if err := orderID.Validate(); err != nil {
		return ApproveAssignmentCommand{}, err
	}

	return ApproveAssignmentCommand{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c ApproveAssignmentCommand) Validate() error {
	return c.guard.Validate(ErrApproveAssignmentCommandIsNotConstructed)
}

// OrderID returns the order whose assignment is approved.
func (c ApproveAssignmentCommand) OrderID() kernel.UUID {
	return c.orderID
}
