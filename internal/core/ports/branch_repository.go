package ports

import (
	"context"

	"bakery/internal/core/domain/model/branch"
	"bakery/internal/core/domain/model/kernel"
)

// BranchRepository is the read-only contract to the branch directory.
// Branch lifecycle is managed by an external collaborator; the assignment
// subsystem only consults it.
type BranchRepository interface {
	// Get retrieves a branch by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*branch.Branch, error)

	// FindByCode retrieves a branch by its stable code (e.g. "MAIN").
	// Returns an error wrapping errs.ErrObjectNotFound when absent.
	FindByCode(ctx context.Context, code string) (*branch.Branch, error)

	// ListActive retrieves all branches currently operational.
	ListActive(ctx context.Context) ([]*branch.Branch, error)
}
