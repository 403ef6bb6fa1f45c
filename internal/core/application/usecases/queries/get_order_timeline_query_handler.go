package queries

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"bakery/internal/core/domain/model/order"
	"bakery/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOrderTimelineQueryHandler reads the customer-facing timeline of one
// order from the database.
type GetOrderTimelineQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderTimelineQueryHandler creates a handler for timeline lookups.
func NewGetOrderTimelineQueryHandler(db *gorm.DB) GetOrderTimelineQueryHandler {
	return GetOrderTimelineQueryHandler{db: db}
}

// Handle executes the lookup. A missing order returns ErrObjectNotFound;
// milestones are returned oldest first.
func (h GetOrderTimelineQueryHandler) Handle(
	ctx context.Context,
	query GetOrderTimelineQuery,
) (GetOrderTimelineQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderTimelineQueryResponse{}, err
	}

	const selectOrder = `SELECT id, tracking_id, status FROM orders `

	var row *sql.Row
	if id := query.OrderID(); id != nil {
		row = h.db.WithContext(ctx).Raw(selectOrder+`WHERE id = ?`, id.Bytes()).Row()
	} else {
		row = h.db.WithContext(ctx).Raw(selectOrder+`WHERE tracking_id = ?`, query.TrackingID().String()).Row()
	}

	var (
		id         uuid.UUID
		trackingID string
		status     int
	)
	err := row.Scan(&id, &trackingID, &status)
	if errors.Is(err, sql.ErrNoRows) {
		return GetOrderTimelineQueryResponse{}, errs.NewObjectNotFoundError("order", query.Reference())
	}
	if err != nil {
		return GetOrderTimelineQueryResponse{}, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			status,
			timestamp,
			location,
			note
		FROM order_status_history
		WHERE order_id = ?
		ORDER BY seq
	`, id).Rows()
	if err != nil {
		return GetOrderTimelineQueryResponse{}, err
	}
	defer rows.Close()

	entries := make([]TimelineEntry, 0)
	for rows.Next() {
		var (
			entryStatus int
			timestamp   time.Time
			location    string
			note        string
		)
		if err = rows.Scan(&entryStatus, &timestamp, &location, &note); err != nil {
			return GetOrderTimelineQueryResponse{}, err
		}

		entries = append(entries, TimelineEntry{
			Status:    order.Status(entryStatus),
			Timestamp: timestamp,
			Location:  location,
			Note:      note,
		})
	}
	if err = rows.Err(); err != nil {
		return GetOrderTimelineQueryResponse{}, err
	}

	return GetOrderTimelineQueryResponse{
		TrackingID: trackingID,
		Status:     order.Status(status),
		Entries:    entries,
	}, nil
}
