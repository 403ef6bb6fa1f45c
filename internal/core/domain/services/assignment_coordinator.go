package services

import (
	"fmt"

	"bakery/internal/core/domain/model/branch"
	"bakery/internal/core/domain/model/order"
)

// AssignmentConfig is the explicit configuration for branch assignment,
// injected at construction instead of read from a settings store at call
// time. DefaultAssignmentConfig documents the defaults applied when the
// operator has not configured anything.
type AssignmentConfig struct {
	// Enabled gates automatic and suggested assignment. When false, orders
	// fall back to the default branch directly.
	Enabled bool

	// Mode governs how the policy's suggestion is committed
	// (auto / hybrid / manual).
	Mode order.AssignmentMode

	// DefaultBranchCode is the stable code of the branch used when
	// assignment is disabled or no branch matches the delivery context.
	DefaultBranchCode string
}

// DefaultAssignmentConfig returns the documented defaults: assignment
// enabled, auto mode, default branch "MAIN".
func DefaultAssignmentConfig() AssignmentConfig {
	return AssignmentConfig{
		Enabled:           true,
		Mode:              order.ModeAuto,
		DefaultBranchCode: "MAIN",
	}
}

// AssignmentCoordinator translates the BranchAssigner's raw suggestion into
// the order's committed assignment record, according to the configured mode:
//
//	auto    suggestion committed immediately, decided by "system"
//	hybrid  suggestion stored for explicit operator approval
//	manual  suggestion stored as a hint, assignment fully pending
//
// When assignment is disabled or no branch matches, the coordinator falls
// back to the default branch and commits it directly regardless of mode,
// with a note explaining the fallback. When even the default branch is
// missing, the order proceeds unassigned; it can be assigned manually later
// and this is not a failure of order placement.
type AssignmentCoordinator struct {
	assigner BranchAssigner
	config   AssignmentConfig
}

// NewAssignmentCoordinator creates a coordinator using the given policy and
// configuration.
func NewAssignmentCoordinator(assigner BranchAssigner, config AssignmentConfig) AssignmentCoordinator {
	return AssignmentCoordinator{
		assigner: assigner,
		config:   config,
	}
}

// Config returns the coordinator's assignment configuration.
func (c AssignmentCoordinator) Config() AssignmentConfig {
	return c.config
}

// Assign decides the branch assignment for a newly placed order.
//
// Parameters:
//   - o: the order to assign (mutated in place)
//   - branches: the active branches to score (from the branch directory)
//   - defaultBranch: the branch looked up by DefaultBranchCode, or nil when
//     it does not exist
//
// The caller persists the order after Assign returns.
func (c AssignmentCoordinator) Assign(o *order.Order, branches []*branch.Branch, defaultBranch *branch.Branch) error {
	if err := o.Validate(); err != nil {
		return err
	}

	if !c.config.Enabled {
		return c.fallback(o, defaultBranch, "automatic assignment is disabled")
	}

	addr := o.Address()
	best := c.assigner.FindBestBranch(DeliveryContext{
		ZoneID:   addr.ZoneID(),
		City:     addr.City(),
		District: addr.District(),
	}, branches)

	if best == nil {
		return c.fallback(o, defaultBranch, "no branch matched the delivery area")
	}

	switch c.config.Mode {
	case order.ModeAuto:
		return o.AssignBranch(best.ID(), order.ModeAuto, "system",
			fmt.Sprintf("auto-assigned to branch %s by service-area match", best.Code()))
	case order.ModeHybrid, order.ModeManual:
		return o.SuggestAssignment(best.ID(), c.config.Mode)
	default:
		return c.fallback(o, defaultBranch, fmt.Sprintf("assignment mode %q is not configured", c.config.Mode))
	}
}

// fallback commits the default branch directly regardless of mode. A missing
// default branch leaves the order unassigned for later manual assignment.
func (c AssignmentCoordinator) fallback(o *order.Order, defaultBranch *branch.Branch, reason string) error {
	if defaultBranch == nil {
		o.SuggestAssignmentNone(c.config.Mode)
		return nil
	}

	return o.AssignBranch(defaultBranch.ID(), c.config.Mode, "system",
		fmt.Sprintf("fallback to default branch %s: %s", defaultBranch.Code(), reason))
}
