// Package order contains the Order aggregate and its supporting value
// objects: the fulfillment Status state machine with its central transition
// table, the branch Assignment decision record, the courier-platform
// CourierSync record, line items, payment methods, and the append-only
// status history.
//
// The aggregate enforces the fulfillment invariants: a branch must be
// assigned before preparing, status moves monotonically along
// received -> preparing -> courier-handoff -> delivered with cancellation
// reachable from any non-terminal state, and every successful transition
// appends exactly one history entry.
package order
