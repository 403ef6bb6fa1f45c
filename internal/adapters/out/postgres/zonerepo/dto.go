// Package zonerepo provides data transfer objects and mapping functions for
// delivery-zone configuration. Zones are reference data consulted at order
// placement.
package zonerepo

import (
	"bakery/internal/core/domain/model/kernel"
	"bakery/internal/core/domain/model/zone"

	"github.com/google/uuid"
)

// ZoneDTO represents the database structure for delivery zones.
type ZoneDTO struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name            string
	MinOrderAmount  float64 `gorm:"type:numeric(12,2)"`
	SameDayDelivery bool
	City            string
	District        string
}

// TableName specifies the database table name for delivery zones.
func (ZoneDTO) TableName() string {
	return "delivery_zones"
}

// toDomain converts a database DTO to a delivery zone domain entity.
func toDomain(dto ZoneDTO) (*zone.DeliveryZone, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	return zone.NewDeliveryZone(id, dto.Name, dto.MinOrderAmount, dto.SameDayDelivery, dto.City, dto.District)
}
