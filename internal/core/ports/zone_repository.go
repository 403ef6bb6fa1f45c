package ports

import (
	"context"

	"bakery/internal/core/domain/model/kernel"
	"bakery/internal/core/domain/model/zone"
)

// ZoneRepository is the read-only contract to delivery-zone configuration.
type ZoneRepository interface {
	// Get retrieves a delivery zone by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*zone.DeliveryZone, error)
}
