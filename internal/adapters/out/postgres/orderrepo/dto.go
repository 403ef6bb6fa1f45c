// Package orderrepo provides data transfer objects and mapping functions for
// order persistence. It converts between the order aggregate and its
// relational representation: one orders row, a child row per line item, and
// an append-only history table keyed by (order_id, seq).
package orderrepo

import (
	"time"

	"bakery/internal/core/domain/model/kernel"
	"bakery/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order
// aggregates. Indexed by status and branch for the assignment and sync
// queries.
type OrderDTO struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey"`
	TrackingID    string     `gorm:"type:varchar(16);uniqueIndex"`
	TotalAmount   float64    `gorm:"type:numeric(12,2)"`
	Address       AddressDTO `gorm:"embedded;embeddedPrefix:address_"`
	PaymentMethod int
	Guest         bool
	CustomerEmail string
	CustomerPhone string

	Status   int        `gorm:"index"`
	BranchID *uuid.UUID `gorm:"type:uuid;index"`

	Assignment AssignmentDTO  `gorm:"embedded;embeddedPrefix:assignment_"`
	Courier    CourierSyncDTO `gorm:"embedded;embeddedPrefix:courier_"`

	PreparationStartedAt *time.Time
	SentToCourierAt      *time.Time

	Items   []ItemDTO          `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	History []HistoryEntryDTO  `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// AddressDTO represents the embedded delivery address within the order table.
type AddressDTO struct {
	Street   string
	City     string
	District string
	ZoneID   *uuid.UUID `gorm:"type:uuid"`
}

// AssignmentDTO represents the embedded branch-assignment decision within
// the order table.
type AssignmentDTO struct {
	Mode              int
	State             int
	SuggestedBranchID *uuid.UUID `gorm:"type:uuid"`
	DecidedBy         string
	DecidedAt         *time.Time
}

// CourierSyncDTO represents the embedded courier-platform sync record within
// the order table. SyncStatus is nil until the order is handed to a courier;
// its column doubles as the presence marker on restore.
type CourierSyncDTO struct {
	Code            string
	SyncStatus      *int
	ExternalOrderID string
	Platform        string
	SubmittedAt     *time.Time
	LastError       string
	Retryable       bool
}

// ItemDTO represents one order line item row.
type ItemDTO struct {
	ID        uint      `gorm:"primaryKey;autoIncrement"`
	OrderID   uuid.UUID `gorm:"type:uuid;index"`
	ProductID uuid.UUID `gorm:"type:uuid"`
	Name      string
	Quantity  int
	UnitPrice float64 `gorm:"type:numeric(12,2)"`
	Size      string
}

// TableName specifies the database table name for order line items.
func (ItemDTO) TableName() string {
	return "order_items"
}

// HistoryEntryDTO represents one row of an order's append-only status
// history. Seq preserves append order and makes the primary key stable, so
// existing rows are never rewritten.
type HistoryEntryDTO struct {
	OrderID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	Seq       int       `gorm:"primaryKey"`
	Status    int
	Timestamp time.Time
	Location  string
	Note      string
	UpdatedBy string
}

// TableName specifies the database table name for order status history.
func (HistoryEntryDTO) TableName() string {
	return "order_status_history"
}

// fromDomain converts an order aggregate to its database representation.
func fromDomain(aggregate *order.Order) OrderDTO {
	id := aggregate.ID().Bytes()

	dto := OrderDTO{
		ID:          id,
		TrackingID:  aggregate.TrackingID().String(),
		TotalAmount: aggregate.TotalAmount(),
		Address: AddressDTO{
			Street:   aggregate.Address().Street(),
			City:     aggregate.Address().City(),
			District: aggregate.Address().District(),
			ZoneID:   uuidPtr(aggregate.Address().ZoneID()),
		},
		PaymentMethod: int(aggregate.PaymentMethod()),
		Guest:         aggregate.IsGuest(),
		CustomerEmail: aggregate.CustomerEmail(),
		CustomerPhone: aggregate.CustomerPhone(),
		Status:        int(aggregate.Status()),
		BranchID:      uuidPtr(aggregate.BranchID()),
		Assignment: AssignmentDTO{
			Mode:              int(aggregate.Assignment().Mode()),
			State:             int(aggregate.Assignment().State()),
			SuggestedBranchID: uuidPtr(aggregate.Assignment().SuggestedBranchID()),
			DecidedBy:         aggregate.Assignment().DecidedBy(),
			DecidedAt:         aggregate.Assignment().DecidedAt(),
		},
		Courier: CourierSyncDTO{
			Code: aggregate.CourierCode(),
		},
		PreparationStartedAt: aggregate.PreparationStartedAt(),
		SentToCourierAt:      aggregate.SentToCourierAt(),
	}

	if sync := aggregate.CourierSync(); sync != nil {
		status := int(sync.Status)
		dto.Courier.SyncStatus = &status
		dto.Courier.ExternalOrderID = sync.ExternalOrderID
		dto.Courier.Platform = sync.Platform
		dto.Courier.SubmittedAt = sync.SubmittedAt
		dto.Courier.LastError = sync.LastError
		dto.Courier.Retryable = sync.Retryable
	}

	for _, item := range aggregate.Items() {
		dto.Items = append(dto.Items, ItemDTO{
			OrderID:   id,
			ProductID: item.ProductID.Bytes(),
			Name:      item.Name,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			Size:      item.Size,
		})
	}

	for seq, entry := range aggregate.History() {
		dto.History = append(dto.History, HistoryEntryDTO{
			OrderID:   id,
			Seq:       seq,
			Status:    int(entry.Status),
			Timestamp: entry.Timestamp,
			Location:  entry.Location,
			Note:      entry.Note,
			UpdatedBy: entry.UpdatedBy,
		})
	}

	return dto
}

// toDomain converts a database DTO to an order aggregate using RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	trackingID, err := kernel.TrackingIDFromString(dto.TrackingID)
	if err != nil {
		return nil, err
	}

	zoneID, err := kernelUUIDPtr(dto.Address.ZoneID)
	if err != nil {
		return nil, err
	}

	address, err := kernel.NewAddress(dto.Address.Street, dto.Address.City, dto.Address.District, zoneID)
	if err != nil {
		return nil, err
	}

	branchID, err := kernelUUIDPtr(dto.BranchID)
	if err != nil {
		return nil, err
	}

	suggestedBranchID, err := kernelUUIDPtr(dto.Assignment.SuggestedBranchID)
	if err != nil {
		return nil, err
	}

	items := make([]order.Item, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		productID, itemErr := kernel.UUIDFromBytes(itemDTO.ProductID[:])
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, order.Item{
			ProductID: productID,
			Name:      itemDTO.Name,
			Quantity:  itemDTO.Quantity,
			UnitPrice: itemDTO.UnitPrice,
			Size:      itemDTO.Size,
		})
	}

	history := make([]order.HistoryEntry, 0, len(dto.History))
	for _, entryDTO := range dto.History {
		history = append(history, order.HistoryEntry{
			Status:    order.Status(entryDTO.Status),
			Timestamp: entryDTO.Timestamp,
			Location:  entryDTO.Location,
			Note:      entryDTO.Note,
			UpdatedBy: entryDTO.UpdatedBy,
		})
	}

	var courierSync *order.CourierSync
	if dto.Courier.SyncStatus != nil {
		courierSync = &order.CourierSync{
			ExternalOrderID: dto.Courier.ExternalOrderID,
			Platform:        dto.Courier.Platform,
			SubmittedAt:     dto.Courier.SubmittedAt,
			Status:          order.SyncStatus(*dto.Courier.SyncStatus),
			LastError:       dto.Courier.LastError,
			Retryable:       dto.Courier.Retryable,
		}
	}

	return order.RestoreOrder(
		id,
		trackingID,
		items,
		dto.TotalAmount,
		address,
		order.PaymentMethod(dto.PaymentMethod),
		dto.Guest,
		dto.CustomerEmail,
		dto.CustomerPhone,
		order.Status(dto.Status),
		branchID,
		order.RestoreAssignment(
			order.AssignmentMode(dto.Assignment.Mode),
			order.AssignmentState(dto.Assignment.State),
			suggestedBranchID,
			dto.Assignment.DecidedBy,
			dto.Assignment.DecidedAt,
		),
		dto.Courier.Code,
		courierSync,
		history,
		dto.PreparationStartedAt,
		dto.SentToCourierAt,
	)
}

func uuidPtr(id *kernel.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}
	raw := id.Bytes()
	return &raw
}

func kernelUUIDPtr(raw *uuid.UUID) (*kernel.UUID, error) {
	if raw == nil {
		return nil, nil
	}
	id, err := kernel.UUIDFromBytes((*raw)[:])
	if err != nil {
		return nil, err
	}
	return &id, nil
}
