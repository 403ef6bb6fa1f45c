package queries

import (
	"context"
	"time"

	"bakery/internal/core/domain/model/order"
	"bakery/internal/pkg/errs"

	"gorm.io/gorm"
)

// GetOrderHistoryQueryHandler reads an order's status history from the
// database.
type GetOrderHistoryQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderHistoryQueryHandler creates a handler for history lookups.
func NewGetOrderHistoryQueryHandler(db *gorm.DB) GetOrderHistoryQueryHandler {
	return GetOrderHistoryQueryHandler{db: db}
}

// Handle executes the lookup. A missing order returns ErrObjectNotFound;
// entries are returned in the order they were appended.
func (h GetOrderHistoryQueryHandler) Handle(
	ctx context.Context,
	query GetOrderHistoryQuery,
) ([]GetOrderHistoryQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	var exists int64
	if err := h.db.WithContext(ctx).
		Raw(`SELECT COUNT(1) FROM orders WHERE id = ?`, query.OrderID().Bytes()).
		Scan(&exists).Error; err != nil {
		return nil, err
	}
	if exists == 0 {
		return nil, errs.NewObjectNotFoundError("order", query.OrderID().String())
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			status,
			timestamp,
			location,
			note,
			updated_by
		FROM order_status_history
		WHERE order_id = ?
		ORDER BY seq
	`, query.OrderID().Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]GetOrderHistoryQueryResponse, 0)
	for rows.Next() {
		var (
			status    int
			timestamp time.Time
			location  string
			note      string
			updatedBy string
		)
		if err = rows.Scan(&status, &timestamp, &location, &note, &updatedBy); err != nil {
			return nil, err
		}

		entries = append(entries, GetOrderHistoryQueryResponse{
			Status:    order.Status(status),
			Timestamp: timestamp,
			Location:  location,
			Note:      note,
			UpdatedBy: updatedBy,
		})
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}
