package order

import (
	"fmt"

	"bakery/internal/pkg/errs"
)

// MissingBranchError is returned when a transition that requires an assigned
// fulfillment branch is attempted on an order without one. It unwraps to
// errs.ErrPreconditionFailed: the operator resolves it by assigning a branch
// first.
type MissingBranchError struct {
	Op      string
	OrderID string
}

// NewMissingBranchError creates a MissingBranchError for the given operation.
func NewMissingBranchError(op, orderID string) *MissingBranchError {
	return &MissingBranchError{Op: op, OrderID: orderID}
}

func (e *MissingBranchError) Error() string {
	return fmt.Sprintf("cannot %s order %s: no branch is assigned", e.Op, e.OrderID)
}

func (e *MissingBranchError) Unwrap() error {
	return errs.ErrPreconditionFailed
}

// InvalidStateError is returned when an operation requires the order to be in
// a status it is not in, or when a requested transition is not in the legal
// transition table. The message always cites the actual current status so
// concurrent operators can see which step already happened. It unwraps to
// errs.ErrPreconditionFailed.
type InvalidStateError struct {
	Op      string
	Current Status
	Target  Status
}

// NewInvalidStateError creates an InvalidStateError for the given operation,
// current status, and attempted target status.
func NewInvalidStateError(op string, current, target Status) *InvalidStateError {
	return &InvalidStateError{Op: op, Current: current, Target: target}
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("cannot %s: order is in %q status, transition to %q is not allowed",
		e.Op, e.Current, e.Target)
}

func (e *InvalidStateError) Unwrap() error {
	return errs.ErrPreconditionFailed
}
