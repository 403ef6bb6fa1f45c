package ports

import (
	"context"

	"bakery/internal/core/domain/model/kernel"
	"bakery/internal/core/domain/model/order"
)

// StockService is the contract to the external inventory collaborator.
// The core calls ReduceStock during order placement, before the order
// transaction commits; a stock failure aborts placement.
type StockService interface {
	// ReduceStock decrements stock for the ordered items.
	ReduceStock(ctx context.Context, items []order.Item) error

	// CheckLowStockAlert triggers the collaborator's low-stock alerting for
	// a product. Best-effort; the core ignores its outcome.
	CheckLowStockAlert(ctx context.Context, productID kernel.UUID)
}
