package commands

import (
	"errors"

	"bakery/internal/pkg/guard"
)

var ErrSyncCourierOrdersCommandIsNotConstructed = errors.New(
	"SyncCourierOrdersCommand must be created via NewSyncCourierOrdersCommand constructor",
)

// SyncCourierOrdersCommand represents a sweep over orders whose courier
// platform submission is still pending or retryably failed.
type SyncCourierOrdersCommand struct { //nolint:recvcheck //using for validation
	guard guard.ConstructorGuard
}

// NewSyncCourierOrdersCommand creates a command to re-submit unsynced orders.
func NewSyncCourierOrdersCommand() (SyncCourierOrdersCommand, error) {
	return SyncCourierOrdersCommand{
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c SyncCourierOrdersCommand) Validate() error {
	return c.guard.Validate(ErrSyncCourierOrdersCommandIsNotConstructed)
}
