// Package zone contains the DeliveryZone read model. Zones are configuration
// supplied by an external collaborator: the core reads their minimum order
// amount at placement and their descriptors feed branch assignment scoring.
package zone

import (
	"errors"
	"fmt"

	"bakery/internal/core/domain/model/kernel"
	"bakery/internal/pkg/errs"
)

// ErrZoneIsNotConstructed is returned when a DeliveryZone instance was not
// created through the NewDeliveryZone factory method.
var ErrZoneIsNotConstructed = errors.New("DeliveryZone must be created via NewDeliveryZone constructor")

// DeliveryZone is a geographic delivery area with ordering constraints.
type DeliveryZone struct {
	id              kernel.UUID
	name            string
	minOrderAmount  float64
	sameDayDelivery bool
	city            string
	district        string

	isConstructed bool
}

// NewDeliveryZone creates a validated delivery zone.
func NewDeliveryZone(
	id kernel.UUID,
	name string,
	minOrderAmount float64,
	sameDayDelivery bool,
	city, district string,
) (*DeliveryZone, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if name == "" {
		return nil, errs.NewValueIsRequiredError("zone name")
	}
	if minOrderAmount < 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("minOrderAmount",
			fmt.Errorf("%.2f is negative", minOrderAmount))
	}

	return &DeliveryZone{
		id:              id,
		name:            name,
		minOrderAmount:  minOrderAmount,
		sameDayDelivery: sameDayDelivery,
		city:            city,
		district:        district,
		isConstructed:   true,
	}, nil
}

// Validate ensures the DeliveryZone instance was properly constructed.
func (z *DeliveryZone) Validate() error {
	if z == nil || !z.isConstructed {
		return ErrZoneIsNotConstructed
	}
	return nil
}

// ID returns the zone's unique identifier.
func (z *DeliveryZone) ID() kernel.UUID {
	return z.id
}

// Name returns the zone's display name.
func (z *DeliveryZone) Name() string {
	return z.name
}

// MinOrderAmount returns the minimum order total required for delivery
// into this zone.
func (z *DeliveryZone) MinOrderAmount() float64 {
	return z.minOrderAmount
}

// SameDayDelivery reports whether the zone is eligible for same-day delivery.
func (z *DeliveryZone) SameDayDelivery() bool {
	return z.sameDayDelivery
}

// City returns the city descriptor of the zone.
func (z *DeliveryZone) City() string {
	return z.city
}

// District returns the district descriptor of the zone.
func (z *DeliveryZone) District() string {
	return z.district
}
