// Package stock provides a pass-through StockService adapter. The real
// inventory subsystem lives outside this service; this adapter records the
// reductions it would apply so placement flows end to end without it.
package stock

import (
	"context"
	"log/slog"

	"bakery/internal/core/domain/model/kernel"
	"bakery/internal/core/domain/model/order"
)

// LogStockService implements ports.StockService by logging every reduction.
type LogStockService struct {
	logger *slog.Logger
}

// NewLogStockService creates a stock service logging to the given logger.
func NewLogStockService(logger *slog.Logger) *LogStockService {
	return &LogStockService{logger: logger.With("component", "stock")}
}

// ReduceStock records the reduction for each line item.
func (s *LogStockService) ReduceStock(ctx context.Context, items []order.Item) error {
	for _, item := range items {
		s.logger.InfoContext(ctx, "stock reduced",
			"productId", item.ProductID.String(),
			"quantity", item.Quantity,
		)
	}
	return nil
}

// CheckLowStockAlert records the low-stock check for the product.
func (s *LogStockService) CheckLowStockAlert(ctx context.Context, productID kernel.UUID) {
	s.logger.DebugContext(ctx, "low stock check",
		"productId", productID.String(),
	)
}
