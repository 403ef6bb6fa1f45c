package order

import (
	"fmt"

	"bakery/internal/pkg/errs"
)

// Status represents the fulfillment state of an order.
// It implements a state machine with a central transition table so every
// status change in the system is validated against the same legal pairs.
//
// State transitions:
//
//	received ──> preparing ──> courier-handoff ──> delivered
//	    │            │               │
//	    └────────────┴───────────────┴──> cancelled
//
// delivered and cancelled are terminal. cancelled is reachable from every
// non-terminal state; this is the documented cancellation policy for the
// whole system.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Received is the initial status set when an order is placed.
	Received

	// Preparing indicates the assigned branch has started preparing the order.
	Preparing

	// CourierHandoff indicates the order has left branch custody for delivery.
	CourierHandoff

	// Delivered indicates the order reached the customer. Terminal.
	Delivered

	// Cancelled indicates the order was cancelled before delivery. Terminal.
	Cancelled
)

// getStatusStrings returns the string representation for every Status,
// including Unknown.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:        "unknown",
		Received:       "received",
		Preparing:      "preparing",
		CourierHandoff: "courier-handoff",
		Delivered:      "delivered",
		Cancelled:      "cancelled",
	}
}

// getValidStatusStrings returns only the statuses an order may legally hold.
func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Received:       "received",
		Preparing:      "preparing",
		CourierHandoff: "courier-handoff",
		Delivered:      "delivered",
		Cancelled:      "cancelled",
	}
}

// getTransitions is the central transition table encoding legal
// source -> target pairs. Every mutation of an order's status routes
// through this table; there are no per-handler status checks.
func getTransitions() map[Status][]Status {
	return map[Status][]Status{
		Received:       {Preparing, Cancelled},
		Preparing:      {CourierHandoff, Cancelled},
		CourierHandoff: {Delivered, Cancelled},
		Delivered:      {},
		Cancelled:      {},
	}
}

// StatusFromString parses a status from its wire representation
// ("received", "preparing", "courier-handoff", "delivered", "cancelled").
// Returns an error for unrecognized values.
func StatusFromString(s string) (Status, error) {
	for status, str := range getValidStatusStrings() {
		if str == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status",
		fmt.Errorf("%q is not a recognized status", s))
}

// Validate checks if the Status value is valid.
// Unknown (0) and out-of-range values are invalid.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the wire representation of the status.
// Implements fmt.Stringer and is safe on any Status value.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsTerminal reports whether the status admits no further transitions.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Cancelled
}

// CanTransitionTo reports whether the transition table allows moving from
// this status to target.
func (s Status) CanTransitionTo(target Status) bool {
	for _, allowed := range getTransitions()[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

// TransitionTo validates and performs a transition against the central table.
//
// Returns:
//   - (target, nil) when the source -> target pair is legal
//   - (0, error) when target is not a valid status or the pair is illegal;
//     the error cites the current status
func (s Status) TransitionTo(target Status) (Status, error) {
	if err := target.Validate(); err != nil {
		return 0, err
	}

	if !s.CanTransitionTo(target) {
		return 0, NewInvalidStateError("updateStatus", s, target)
	}

	return target, nil
}
