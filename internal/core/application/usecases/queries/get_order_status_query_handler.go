package queries

import (
	"context"
	"database/sql"
	"errors"

	"bakery/internal/core/domain/model/kernel"
	"bakery/internal/core/domain/model/order"
	"bakery/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOrderStatusQueryHandler reads the status projection of one order
// directly from the database.
type GetOrderStatusQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderStatusQueryHandler creates a handler for status lookups.
func NewGetOrderStatusQueryHandler(db *gorm.DB) GetOrderStatusQueryHandler {
	return GetOrderStatusQueryHandler{db: db}
}

// Handle executes the lookup. A missing order returns ErrObjectNotFound.
func (h GetOrderStatusQueryHandler) Handle(
	ctx context.Context,
	query GetOrderStatusQuery,
) (GetOrderStatusQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderStatusQueryResponse{}, err
	}

	const selectColumns = `
		SELECT
			id,
			tracking_id,
			status,
			branch_id,
			assignment_mode,
			assignment_state,
			courier_code,
			sent_to_courier_at,
			courier_sync_status,
			courier_external_order_id,
			courier_platform,
			courier_last_error,
			courier_retryable
		FROM orders
	`

	var row *sql.Row
	if id := query.OrderID(); id != nil {
		row = h.db.WithContext(ctx).Raw(selectColumns+`WHERE id = ?`, id.Bytes()).Row()
	} else {
		row = h.db.WithContext(ctx).Raw(selectColumns+`WHERE tracking_id = ?`, query.TrackingID().String()).Row()
	}

	var (
		id              uuid.UUID
		trackingID      string
		status          int
		branchID        uuid.NullUUID
		assignmentMode  int
		assignmentState int
		courierCode     string
		sentToCourierAt sql.NullTime
		syncStatus      sql.NullInt32
		syncExternalID  sql.NullString
		syncPlatform    sql.NullString
		syncLastError   sql.NullString
		syncRetryable   sql.NullBool
	)

	err := row.Scan(
		&id,
		&trackingID,
		&status,
		&branchID,
		&assignmentMode,
		&assignmentState,
		&courierCode,
		&sentToCourierAt,
		&syncStatus,
		&syncExternalID,
		&syncPlatform,
		&syncLastError,
		&syncRetryable,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return GetOrderStatusQueryResponse{}, errs.NewObjectNotFoundError("order", query.Reference())
	}
	if err != nil {
		return GetOrderStatusQueryResponse{}, err
	}

	orderID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return GetOrderStatusQueryResponse{}, err
	}

	resp := GetOrderStatusQueryResponse{
		ID:              orderID,
		TrackingID:      trackingID,
		Status:          order.Status(status),
		AssignmentMode:  order.AssignmentMode(assignmentMode),
		AssignmentState: order.AssignmentState(assignmentState),
		CourierCode:     courierCode,
	}

	if branchID.Valid {
		bID, bErr := kernel.UUIDFromBytes(branchID.UUID[:])
		if bErr != nil {
			return GetOrderStatusQueryResponse{}, bErr
		}
		resp.BranchID = &bID
	}
	if sentToCourierAt.Valid {
		t := sentToCourierAt.Time
		resp.SentToCourierAt = &t
	}
	if syncStatus.Valid {
		resp.CourierSync = &CourierSyncProjection{
			ExternalOrderID: syncExternalID.String,
			Platform:        syncPlatform.String,
			Status:          order.SyncStatus(syncStatus.Int32),
			LastError:       syncLastError.String,
			Retryable:       syncRetryable.Bool,
		}
	}

	return resp, nil
}
