package commands

import (
	"errors"

	"bakery/internal/core/domain/model/kernel"
	"bakery/internal/pkg/guard"
)

var ErrAssignBranchCommandIsNotConstructed = errors.New(
	"AssignBranchCommand must be created via NewAssignBranchCommand constructor",
)

// AssignBranchCommand represents an operator assigning a fulfillment branch
// to an order, overriding whatever the coordinator decided at placement.
type AssignBranchCommand struct { //nolint:recvcheck //using for validation
	orderID  kernel.UUID
	branchID kernel.UUID
	note     string

	guard guard.ConstructorGuard
}

// NewAssignBranchCommand creates a command to assign the given branch to the
// given order. The note is optional free text stored with the history entry.
func NewAssignBranchCommand(orderID kernel.UUID, branchID kernel.UUID, note string) (AssignBranchCommand, error) {
	err := errors.Join(
		orderID.Validate(),
		branchID.Validate(),
	)
	if err != nil {
		return AssignBranchCommand{}, err
	}

	return AssignBranchCommand{
		orderID:  orderID,
		branchID: branchID,
		note:     note,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c AssignBranchCommand) Validate() error {
	return c.guard.Validate(ErrAssignBranchCommandIsNotConstructed)
}

// OrderID returns the order to assign.
func (c AssignBranchCommand) OrderID() kernel.UUID {
	return c.orderID
}

// BranchID returns the branch chosen by the operator.
func (c AssignBranchCommand) BranchID() kernel.UUID {
	return c.branchID
}

// Note returns the operator note, possibly empty.
func (c AssignBranchCommand) Note() string {
	return c.note
}
