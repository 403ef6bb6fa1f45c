package kernel

import (
	"bakery/internal/pkg/errs"
)

// Address is the structured delivery destination for an order.
// Street and city are required; district and the delivery-zone reference are
// optional descriptors used by branch assignment to score service-area fit.
//
// Address is an immutable value object; use NewAddress to construct it.
type Address struct {
	street   string
	city     string
	district string
	zoneID   *UUID

	isConstructed bool
}

// NewAddress creates a validated delivery address.
// The zoneID may be nil for addresses outside any configured delivery zone.
func NewAddress(street, city, district string, zoneID *UUID) (Address, error) {
	if street == "" {
		return Address{}, errs.NewValueIsRequiredError("street")
	}
	if city == "" {
		return Address{}, errs.NewValueIsRequiredError("city")
	}
	if zoneID != nil {
		if err := zoneID.Validate(); err != nil {
			return Address{}, err
		}
	}

	return Address{
		street:        street,
		city:          city,
		district:      district,
		zoneID:        zoneID,
		isConstructed: true,
	}, nil
}

// Street returns the street line of the address.
func (a Address) Street() string {
	return a.street
}

// City returns the city of the address.
func (a Address) City() string {
	return a.city
}

// District returns the district of the address, or "" when unknown.
func (a Address) District() string {
	return a.district
}

// ZoneID returns the referenced delivery zone, or nil when the address is
// outside any configured zone.
func (a Address) ZoneID() *UUID {
	return a.zoneID
}

// Validate ensures the address was created via NewAddress.
func (a Address) Validate() error {
	if !a.isConstructed {
		return errs.NewValueIsRequiredError("address must be created via NewAddress")
	}
	return nil
}
