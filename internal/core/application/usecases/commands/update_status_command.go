package commands

import (
	"errors"

	"bakery/internal/core/domain/model/kernel"
	"bakery/internal/core/domain/model/order"
	"bakery/internal/pkg/guard"
)

var ErrUpdateStatusCommandIsNotConstructed = errors.New(
	"UpdateStatusCommand must be created via NewUpdateStatusCommand constructor",
)

// UpdateStatusCommand represents an operator moving an order along the
// fulfillment lifecycle. The target status is parsed and validated at
// construction; which transitions are legal from the order's current status
// is decided by the aggregate.
type UpdateStatusCommand struct { //nolint:recvcheck //using for validation
	orderID  kernel.UUID
	target   order.Status
	location string
	note     string

	guard guard.ConstructorGuard
}

// NewUpdateStatusCommand creates a command to move the order to the given
// status. Location and note are optional free text stored with the history
// entry.
func NewUpdateStatusCommand(
	orderID kernel.UUID, status string, location string, note string,
) (UpdateStatusCommand, error) {
	if err := orderID.Validate(); err != nil {
		return UpdateStatusCommand{}, err
	}

	target, err := order.StatusFromString(status)
	if err != nil {
		return UpdateStatusCommand{}, err
	}

	return UpdateStatusCommand{
		orderID:  orderID,
		target:   target,
		location: location,
		note:     note,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateStatusCommand) Validate() error {
	return c.guard.Validate(ErrUpdateStatusCommandIsNotConstructed)
}

// OrderID returns the order to update.
func (c UpdateStatusCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Target returns the requested status.
func (c UpdateStatusCommand) Target() order.Status {
	return c.target
}

// Location returns the optional location annotation.
func (c UpdateStatusCommand) Location() string {
	return c.location
}

// Note returns the optional note annotation.
func (c UpdateStatusCommand) Note() string {
	return c.note
}
