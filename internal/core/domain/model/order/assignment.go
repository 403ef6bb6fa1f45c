package order

import (
	"fmt"
	"time"

	"bakery/internal/core/domain/model/kernel"
	"bakery/internal/pkg/errs"
)

// AssignmentMode is the operator-configured policy governing how much human
// confirmation a branch assignment requires.
type AssignmentMode int

const (
	// ModeUnknown represents an invalid or undefined mode.
	ModeUnknown AssignmentMode = iota

	// ModeAuto commits the policy's suggestion immediately without review.
	ModeAuto

	// ModeHybrid stores the suggestion for explicit operator approval.
	ModeHybrid

	// ModeManual leaves assignment fully pending for the operator; the
	// policy's suggestion is recorded as a hint only.
	ModeManual
)

func getAssignmentModeStrings() map[AssignmentMode]string {
	return map[AssignmentMode]string{
		ModeAuto:   "auto",
		ModeHybrid: "hybrid",
		ModeManual: "manual",
	}
}

// AssignmentModeFromString parses a mode from its configuration
// representation ("auto", "hybrid", "manual").
func AssignmentModeFromString(s string) (AssignmentMode, error) {
	for mode, str := range getAssignmentModeStrings() {
		if str == s {
			return mode, nil
		}
	}
	return ModeUnknown, errs.NewValueIsInvalidErrorWithCause("assignmentMode",
		fmt.Errorf("%q is not a recognized assignment mode", s))
}

// Validate checks if the mode is one of the defined values.
func (m AssignmentMode) Validate() error {
	if _, ok := getAssignmentModeStrings()[m]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("assignmentMode",
			fmt.Errorf("%d is not a valid assignment mode", m))
	}
	return nil
}

// String returns the configuration representation of the mode.
func (m AssignmentMode) String() string {
	if str, ok := getAssignmentModeStrings()[m]; ok {
		return str
	}
	return "unknown"
}

// AssignmentState is the lifecycle state of a branch assignment decision.
type AssignmentState int

const (
	// StateUnassigned means no assignment decision has been made.
	// This is the zero value of a fresh order.
	StateUnassigned AssignmentState = iota

	// StatePending means assignment awaits a fully manual operator decision;
	// a policy suggestion may be recorded as a hint.
	StatePending

	// StateSuggested means the policy's suggestion awaits explicit approval
	// (hybrid mode).
	StateSuggested

	// StateAssigned means a branch decision is committed.
	StateAssigned
)

func getAssignmentStateStrings() map[AssignmentState]string {
	return map[AssignmentState]string{
		StateUnassigned: "unassigned",
		StatePending:    "pending",
		StateSuggested:  "suggested",
		StateAssigned:   "assigned",
	}
}

// String returns the wire representation of the assignment state.
func (s AssignmentState) String() string {
	if str, ok := getAssignmentStateStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// Assignment records the branch-assignment decision attached to an order.
// It is a tagged value: the constructors are the only way to produce each
// state, so an assigned decision always carries who decided and when, and a
// suggestion always carries the suggested branch. The committed branch itself
// lives on the order's BranchID, set in the same mutation that commits the
// assignment.
//
// The zero value is a valid "unassigned" assignment with unknown mode.
type Assignment struct {
	mode              AssignmentMode
	state             AssignmentState
	suggestedBranchID *kernel.UUID
	decidedBy         string
	decidedAt         *time.Time
}

// NewUnassignedAssignment creates an assignment with no decision under the
// given mode.
func NewUnassignedAssignment(mode AssignmentMode) Assignment {
	return Assignment{mode: mode, state: StateUnassigned}
}

// NewSuggestedAssignment records the policy's suggestion. Under hybrid mode
// the state is "suggested" (awaiting approval); under manual mode the state
// is "pending" (the suggestion is a hint only, with no approval path).
func NewSuggestedAssignment(mode AssignmentMode, suggestedBranchID kernel.UUID) (Assignment, error) {
	if err := suggestedBranchID.Validate(); err != nil {
		return Assignment{}, err
	}

	state := StateSuggested
	if mode == ModeManual {
		state = StatePending
	}

	return Assignment{
		mode:              mode,
		state:             state,
		suggestedBranchID: &suggestedBranchID,
	}, nil
}

// NewCommittedAssignment records a committed decision made by decidedBy at
// the given time.
func NewCommittedAssignment(mode AssignmentMode, decidedBy string, decidedAt time.Time) (Assignment, error) {
	if decidedBy == "" {
		return Assignment{}, errs.NewValueIsRequiredError("decidedBy")
	}

	return Assignment{
		mode:      mode,
		state:     StateAssigned,
		decidedBy: decidedBy,
		decidedAt: &decidedAt,
	}, nil
}

// Mode returns the assignment mode active when the decision was recorded.
func (a Assignment) Mode() AssignmentMode {
	return a.mode
}

// State returns the lifecycle state of the assignment.
func (a Assignment) State() AssignmentState {
	return a.state
}

// SuggestedBranchID returns the branch suggested by the policy, or nil.
func (a Assignment) SuggestedBranchID() *kernel.UUID {
	return a.suggestedBranchID
}

// DecidedBy returns who committed the assignment ("system" or "admin"),
// or "" while undecided.
func (a Assignment) DecidedBy() string {
	return a.decidedBy
}

// DecidedAt returns when the assignment was committed, or nil while undecided.
func (a Assignment) DecidedAt() *time.Time {
	return a.decidedAt
}

// RestoreAssignment reconstructs an assignment from persistence without
// re-running decision logic. Used only by repository adapters.
func RestoreAssignment(
	mode AssignmentMode,
	state AssignmentState,
	suggestedBranchID *kernel.UUID,
	decidedBy string,
	decidedAt *time.Time,
) Assignment {
	return Assignment{
		mode:              mode,
		state:             state,
		suggestedBranchID: suggestedBranchID,
		decidedBy:         decidedBy,
		decidedAt:         decidedAt,
	}
}
