package commands

import (
	"errors"

	"bakery/internal/core/domain/model/kernel"
	"bakery/internal/pkg/guard"
)

var ErrSendToCourierCommandIsNotConstructed = errors.New(
	"SendToCourierCommand must be created via NewSendToCourierCommand constructor",
)

// SendToCourierCommand represents handing a prepared order to the courier.
type SendToCourierCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewSendToCourierCommand creates a command to hand the order to the courier.
func NewSendToCourierCommand(orderID kernel.UUID) (SendToCourierCommand, error) {
	if err := orderID.Validate(); err != nil {
		return SendToCourierCommand{}, err
	}

	return SendToCourierCommand{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c SendToCourierCommand) Validate() error {
	return c.guard.Validate(ErrSendToCourierCommandIsNotConstructed)
}

// OrderID returns the order to hand off.
func (c SendToCourierCommand) OrderID() kernel.UUID {
	return c.orderID
}
