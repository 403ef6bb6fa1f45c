// Package services contains domain services for branch assignment: the pure
// BranchAssigner policy that scores branches by service-area fit, and the
// AssignmentCoordinator that turns the policy's suggestion into a committed,
// suggested, or pending assignment according to the configured mode.
package services
