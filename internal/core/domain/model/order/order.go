package order

import (
	"errors"
	"fmt"
	"time"

	"bakery/internal/core/domain/model/kernel"
	"bakery/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not
	// created through NewOrder or RestoreOrder. This ensures all orders are
	// properly validated.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")

	// ErrNoItems is returned when an order is created without line items.
	ErrNoItems = errors.New("order must contain at least one item")
)

// Order is the aggregate root for a customer order moving through
// fulfillment. It owns the status state machine, the branch-assignment
// decision, the courier-platform sync record, and the append-only status
// history.
//
// Order maintains these invariants:
//   - Status transitions follow the central transition table in status.go
//   - A branch must be assigned before the order can start preparing
//   - statusHistory only grows; prior entries are never mutated
//   - preparationStartedAt and sentToCourierAt are recorded once and never
//     overwritten on retry
//
// All fields are private; mutation happens only through the transition
// methods, which makes the precondition checks the effective concurrency
// guard when storage applies updates atomically per order.
type Order struct {
	id            kernel.UUID
	trackingID    kernel.TrackingID
	items         []Item
	totalAmount   float64
	address       kernel.Address
	paymentMethod PaymentMethod
	guest         bool
	customerEmail string
	customerPhone string

	status     Status
	branchID   *kernel.UUID
	assignment Assignment

	courierCode string
	courierSync *CourierSync

	history []HistoryEntry

	preparationStartedAt *time.Time
	sentToCourierAt      *time.Time

	isConstructed bool
}

// NewOrder creates a new order in "received" status with an initial history
// entry. The total amount is computed from the line items.
//
// Parameters:
//   - id: unique identifier (must be valid)
//   - trackingID: customer-facing tracking code (must be valid)
//   - items: at least one validated line item
//   - address: validated delivery address
//   - paymentMethod: how the order is paid
//   - guest: whether the order was placed without an account
//   - email, phone: contact channels for notifications; both may be empty
func NewOrder(
	id kernel.UUID,
	trackingID kernel.TrackingID,
	items []Item,
	address kernel.Address,
	paymentMethod PaymentMethod,
	guest bool,
	email, phone string,
) (*Order, error) {
	if err := errors.Join(
		id.Validate(),
		trackingID.Validate(),
		address.Validate(),
		paymentMethod.Validate(),
	); err != nil {
		return nil, err
	}

	if len(items) == 0 {
		return nil, ErrNoItems
	}

	total := 0.0
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return nil, err
		}
		total += item.Subtotal()
	}

	o := &Order{
		id:            id,
		trackingID:    trackingID,
		items:         append([]Item(nil), items...),
		totalAmount:   total,
		address:       address,
		paymentMethod: paymentMethod,
		guest:         guest,
		customerEmail: email,
		customerPhone: phone,
		status:        Received,
		assignment:    NewUnassignedAssignment(ModeUnknown),
		isConstructed: true,
	}

	o.appendHistory(Received, "", "order received", "system")
	return o, nil
}

// RestoreOrder reconstructs an order from persistence without re-running
// placement logic. Used only by repository adapters; the caller is
// responsible for passing values that were persisted from a valid aggregate.
func RestoreOrder(
	id kernel.UUID,
	trackingID kernel.TrackingID,
	items []Item,
	totalAmount float64,
	address kernel.Address,
	paymentMethod PaymentMethod,
	guest bool,
	email, phone string,
	status Status,
	branchID *kernel.UUID,
	assignment Assignment,
	courierCode string,
	courierSync *CourierSync,
	history []HistoryEntry,
	preparationStartedAt *time.Time,
	sentToCourierAt *time.Time,
) (*Order, error) {
	if err := errors.Join(
		id.Validate(),
		trackingID.Validate(),
		status.Validate(),
	); err != nil {
		return nil, err
	}

	return &Order{
		id:                   id,
		trackingID:           trackingID,
		items:                append([]Item(nil), items...),
		totalAmount:          totalAmount,
		address:              address,
		paymentMethod:        paymentMethod,
		guest:                guest,
		customerEmail:        email,
		customerPhone:        phone,
		status:               status,
		branchID:             branchID,
		assignment:           assignment,
		courierCode:          courierCode,
		courierSync:          courierSync,
		history:              append([]HistoryEntry(nil), history...),
		preparationStartedAt: preparationStartedAt,
		sentToCourierAt:      sentToCourierAt,
		isConstructed:        true,
	}, nil
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// TrackingID returns the customer-facing tracking code.
func (o *Order) TrackingID() kernel.TrackingID {
	return o.trackingID
}

// Items returns a copy of the ordered line items.
func (o *Order) Items() []Item {
	return append([]Item(nil), o.items...)
}

// TotalAmount returns the computed order total.
func (o *Order) TotalAmount() float64 {
	return o.totalAmount
}

// Address returns the delivery address.
func (o *Order) Address() kernel.Address {
	return o.address
}

// PaymentMethod returns how the order is paid.
func (o *Order) PaymentMethod() PaymentMethod {
	return o.paymentMethod
}

// IsGuest reports whether the order was placed without an account.
func (o *Order) IsGuest() bool {
	return o.guest
}

// CustomerEmail returns the contact email, or "" when absent.
func (o *Order) CustomerEmail() string {
	return o.customerEmail
}

// CustomerPhone returns the contact phone, or "" when absent.
func (o *Order) CustomerPhone() string {
	return o.customerPhone
}

// HasContact reports whether any notification channel exists for the order.
func (o *Order) HasContact() bool {
	return o.customerEmail != "" || o.customerPhone != ""
}

// Status returns the current fulfillment status.
func (o *Order) Status() Status {
	return o.status
}

// BranchID returns the assigned fulfillment branch, or nil while unassigned.
func (o *Order) BranchID() *kernel.UUID {
	return o.branchID
}

// Assignment returns the branch-assignment decision record.
func (o *Order) Assignment() Assignment {
	return o.assignment
}

// CourierCode returns the internal courier-tracking code, distinct from the
// customer-facing tracking ID, or "" before courier handoff.
func (o *Order) CourierCode() string {
	return o.courierCode
}

// CourierSync returns a copy of the courier-platform sync record, or nil
// before courier handoff.
func (o *Order) CourierSync() *CourierSync {
	if o.courierSync == nil {
		return nil
	}
	sync := *o.courierSync
	return &sync
}

// AwaitingCourierSync reports whether the order still needs a courier-platform
// submission: it is in courier handoff and the sync is pending or retryably
// failed. Once the order leaves courier handoff or the sync is settled, the
// re-sync sweep must leave it alone.
func (o *Order) AwaitingCourierSync() bool {
	if o.status != CourierHandoff || o.courierSync == nil {
		return false
	}

	switch o.courierSync.Status {
	case SyncPending:
		return true
	case SyncFailed:
		return o.courierSync.Retryable
	default:
		return false
	}
}

// History returns a copy of the append-only status history in append order.
func (o *Order) History() []HistoryEntry {
	return append([]HistoryEntry(nil), o.history...)
}

// PreparationStartedAt returns when preparation first started, or nil.
func (o *Order) PreparationStartedAt() *time.Time {
	return o.preparationStartedAt
}

// SentToCourierAt returns when the order was first handed to a courier, or nil.
func (o *Order) SentToCourierAt() *time.Time {
	return o.sentToCourierAt
}

// SuggestAssignment records the assignment policy's suggested branch without
// committing it. Under hybrid mode the assignment becomes "suggested"
// (awaiting approveAssignment); under manual mode it becomes "pending".
// The order's BranchID stays unset.
func (o *Order) SuggestAssignment(branchID kernel.UUID, mode AssignmentMode) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if o.status.IsTerminal() {
		return NewInvalidStateError("suggestAssignment", o.status, o.status)
	}

	assignment, err := NewSuggestedAssignment(mode, branchID)
	if err != nil {
		return err
	}

	o.assignment = assignment
	return nil
}

// SuggestAssignmentNone records that no assignment decision could be made,
// keeping the configured mode on the record so operator tooling presents the
// correct pending state. BranchID stays unset; the order remains assignable
// manually.
func (o *Order) SuggestAssignmentNone(mode AssignmentMode) {
	o.assignment = NewUnassignedAssignment(mode)
}

// AssignBranch commits a branch decision directly: BranchID is set and the
// assignment becomes "assigned". Used for auto mode, fallback assignment,
// and explicit operator assignment. Appends a history entry carrying the
// note under the current status.
//
// Re-assignment of an already assigned order is allowed while the order is
// not terminal; assigning a terminal order fails.
func (o *Order) AssignBranch(branchID kernel.UUID, mode AssignmentMode, decidedBy, note string) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if err := branchID.Validate(); err != nil {
		return err
	}
	if o.status.IsTerminal() {
		return NewInvalidStateError("assignBranch", o.status, o.status)
	}

	assignment, err := NewCommittedAssignment(mode, decidedBy, time.Now())
	if err != nil {
		return err
	}

	o.branchID = &branchID
	o.assignment = assignment
	o.appendHistory(o.status, "", note, decidedBy)
	return nil
}

// ApproveAssignment commits a previously suggested branch (hybrid mode only).
//
// Preconditions: assignment mode is hybrid and state is "suggested";
// otherwise a precondition error is returned, which makes a second approval
// of an already approved order fail cleanly without touching history.
func (o *Order) ApproveAssignment(decidedBy string) error {
	if err := o.Validate(); err != nil {
		return err
	}

	if o.assignment.Mode() != ModeHybrid {
		return errs.NewPreconditionFailedError("approveAssignment",
			fmt.Sprintf("assignment mode is %q, approval only applies to hybrid mode", o.assignment.Mode()))
	}
	if o.assignment.State() != StateSuggested {
		return errs.NewPreconditionFailedError("approveAssignment",
			fmt.Sprintf("assignment is in %q state, requires suggested", o.assignment.State()))
	}

	suggested := o.assignment.SuggestedBranchID()
	if suggested == nil {
		return errs.NewPreconditionFailedError("approveAssignment", "no suggested branch is recorded")
	}

	assignment, err := NewCommittedAssignment(ModeHybrid, decidedBy, time.Now())
	if err != nil {
		return err
	}

	branchID := *suggested
	o.branchID = &branchID
	o.assignment = assignment
	o.appendHistory(o.status, "", "branch assignment approved", decidedBy)
	return nil
}

// Prepare transitions the order from "received" to "preparing".
//
// Preconditions: a branch must be assigned (MissingBranchError otherwise).
// Calling Prepare on an order already preparing is an idempotent no-op: no
// error, no history entry. Any other status fails with InvalidStateError.
//
// preparationStartedAt is recorded on the first successful call and never
// overwritten.
func (o *Order) Prepare(updatedBy string) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if o.branchID == nil {
		return NewMissingBranchError("prepare", o.id.String())
	}
	if o.status == Preparing {
		return nil
	}
	if o.status != Received {
		return NewInvalidStateError("prepare", o.status, Preparing)
	}

	newStatus, err := o.status.TransitionTo(Preparing)
	if err != nil {
		return err
	}

	o.status = newStatus
	if o.preparationStartedAt == nil {
		now := time.Now()
		o.preparationStartedAt = &now
	}
	o.appendHistory(Preparing, "", "preparation started", updatedBy)
	return nil
}

// HandToCourier transitions the order from "preparing" to "courier-handoff".
//
// Preconditions: a branch must be assigned and the status must be exactly
// "preparing"; the error cites the actual current status otherwise.
//
// On success the internal courier-tracking code is generated if not already
// present, sentToCourierAt is recorded once, and the courier sync record is
// initialized as pending. The external submission itself is performed by the
// courier gateway afterwards; its outcome never rolls back this transition.
func (o *Order) HandToCourier(updatedBy string) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if o.branchID == nil {
		return NewMissingBranchError("sendToCourier", o.id.String())
	}
	if o.status != Preparing {
		return NewInvalidStateError("sendToCourier", o.status, CourierHandoff)
	}

	newStatus, err := o.status.TransitionTo(CourierHandoff)
	if err != nil {
		return err
	}

	o.status = newStatus
	o.initCourierHandoff()
	o.appendHistory(CourierHandoff, "", "handed to courier", updatedBy)
	return nil
}

// initCourierHandoff records the handoff bookkeeping exactly once: the
// internal courier-tracking code, the handoff timestamp and the pending sync
// record.
func (o *Order) initCourierHandoff() {
	if o.courierCode == "" {
		o.courierCode = "CR-" + kernel.NewTrackingID().String()
	}
	if o.sentToCourierAt == nil {
		now := time.Now()
		o.sentToCourierAt = &now
	}
	if o.courierSync == nil {
		o.courierSync = &CourierSync{Status: SyncPending}
	}
}

// RecordCourierSync overwrites the courier-platform sync record with the
// outcome of a submission attempt. It does not touch status or history;
// sync state is deliberately decoupled from customer-visible progress.
func (o *Order) RecordCourierSync(sync CourierSync) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if o.courierSync == nil {
		return errs.NewPreconditionFailedError("recordCourierSync",
			"order has not been handed to a courier")
	}

	o.courierSync = &sync
	return nil
}

// UpdateStatus performs a generic admin-driven transition validated against
// the central transition table ("courier-handoff" to "delivered",
// cancellation from any non-terminal state). Appends one history entry.
func (o *Order) UpdateStatus(target Status, location, note, updatedBy string) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if (target == Preparing || target == CourierHandoff) && o.branchID == nil {
		return NewMissingBranchError("updateStatus", o.id.String())
	}

	newStatus, err := o.status.TransitionTo(target)
	if err != nil {
		return err
	}

	o.status = newStatus
	switch newStatus {
	case Preparing:
		if o.preparationStartedAt == nil {
			now := time.Now()
			o.preparationStartedAt = &now
		}
	case CourierHandoff:
		o.initCourierHandoff()
	}
	if note == "" {
		note = fmt.Sprintf("status updated to %s", newStatus)
	}
	o.appendHistory(newStatus, location, note, updatedBy)
	return nil
}

// Cancel transitions the order to "cancelled" from any non-terminal state.
func (o *Order) Cancel(note, updatedBy string) error {
	return o.UpdateStatus(Cancelled, "", note, updatedBy)
}

// appendHistory appends a single entry; prior entries are never touched.
// Timestamps use the wall clock so entries across a request share ordering;
// ties within the same millisecond are acceptable.
func (o *Order) appendHistory(status Status, location, note, updatedBy string) {
	o.history = append(o.history, HistoryEntry{
		Status:    status,
		Timestamp: time.Now(),
		Location:  location,
		Note:      note,
		UpdatedBy: updatedBy,
	})
}
