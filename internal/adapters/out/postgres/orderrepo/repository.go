package orderrepo

import (
	"context"
	"errors"

	"bakery/internal/core/domain/model/kernel"
	"bakery/internal/core/domain/model/order"
	"bakery/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormOrderRepository implements OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new order with its items and initial history.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing order. The orders row is replaced atomically;
// line items are immutable after placement and are left untouched; history
// rows are append-only, so only entries beyond the persisted count are
// inserted.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)

	result := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Select("*").
		Omit("Items", "History").
		Where("id = ?", dto.ID).
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("order", aggregate.ID().String())
	}

	if err := r.appendNewHistory(ctx, dto); err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// appendNewHistory inserts history rows whose seq is beyond the persisted
// count. Existing rows are never rewritten.
func (r *GormOrderRepository) appendNewHistory(ctx context.Context, dto OrderDTO) error {
	var persisted int64
	if err := r.db.WithContext(ctx).
		Model(&HistoryEntryDTO{}).
		Where("order_id = ?", dto.ID).
		Count(&persisted).Error; err != nil {
		return err
	}

	if int(persisted) >= len(dto.History) {
		return nil
	}

	newEntries := dto.History[persisted:]
	return r.db.WithContext(ctx).Create(&newEntries).Error
}

// Get retrieves an order by ID with its items and full history.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	err := r.preloaded(ctx).First(&dto, "id = ?", id.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetByTrackingID retrieves an order by its customer-facing tracking code.
func (r *GormOrderRepository) GetByTrackingID(ctx context.Context, trackingID kernel.TrackingID) (*order.Order, error) {
	if err := trackingID.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	err := r.preloaded(ctx).First(&dto, "tracking_id = ?", trackingID.String()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", trackingID.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAllAwaitingCourierSync retrieves orders in courier-handoff status whose
// platform sync is pending or retryably failed, oldest handoff first.
func (r *GormOrderRepository) GetAllAwaitingCourierSync(ctx context.Context) ([]*order.Order, error) {
	var dtos []OrderDTO
	err := r.preloaded(ctx).
		Where("status = ?", int(order.CourierHandoff)).
		Where(
			r.db.Where("courier_sync_status = ?", int(order.SyncPending)).
				Or("courier_sync_status = ? AND courier_retryable", int(order.SyncFailed)),
		).
		Order("sent_to_courier_at").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, domainErr := toDomain(dto)
		if domainErr != nil {
			return nil, domainErr
		}
		orders = append(orders, o)
	}

	return orders, nil
}

// Delete hard-removes an order with its items and history.
func (r *GormOrderRepository) Delete(ctx context.Context, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	raw := id.Bytes()
	if err := r.db.WithContext(ctx).Delete(&HistoryEntryDTO{}, "order_id = ?", raw).Error; err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Delete(&ItemDTO{}, "order_id = ?", raw).Error; err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Delete(&OrderDTO{}, "id = ?", raw)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("order", id.String())
	}

	return nil
}

func (r *GormOrderRepository) preloaded(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Items").
		Preload("History", func(db *gorm.DB) *gorm.DB {
			return db.Order("seq")
		})
}
