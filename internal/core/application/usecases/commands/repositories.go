// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations; all commands follow a
// consistent shape: validated construction, transaction management through a
// unit of work, persistence, then decoupled side effects (events,
// notifications) after commit.
package commands

import (
	"context"

	"bakery/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// These abstractions ensure data consistency across aggregate boundaries.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to the order repository within a
	// transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// BranchRepoFactory provides access to the branch directory within a
	// transaction.
	BranchRepoFactory interface {
		BranchRepository() ports.BranchRepository
	}

	// ZoneRepoFactory provides access to delivery-zone configuration within
	// a transaction.
	ZoneRepoFactory interface {
		ZoneRepository() ports.ZoneRepository
	}

	// OrderUoW manages transactions for order-only operations.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// OrderBranchUoW manages transactions for operations that read branches
	// while mutating an order.
	OrderBranchUoW interface {
		TxManager
		OrderRepoFactory
		BranchRepoFactory
	}

	// OrderBranchUoWFactory creates new order+branch unit of work instances.
	OrderBranchUoWFactory interface {
		Create() OrderBranchUoW
	}

	// UoW manages transactions across orders, branches, and zones.
	// Used by order placement, which touches all three.
	UoW interface {
		TxManager
		OrderRepoFactory
		BranchRepoFactory
		ZoneRepoFactory
	}

	// UoWFactory creates new unit of work instances for cross-aggregate
	// operations.
	UoWFactory interface {
		Create() UoW
	}
)
