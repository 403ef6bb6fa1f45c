package order

import (
	"fmt"

	"bakery/internal/core/domain/model/kernel"
	"bakery/internal/pkg/errs"
)

// Item is a single ordered line: a product reference, the quantity requested,
// the unit price at the time of ordering, and an optional size variant.
type Item struct {
	ProductID kernel.UUID
	Name      string
	Quantity  int
	UnitPrice float64
	Size      string
}

// Subtotal returns quantity times unit price for this line.
func (i Item) Subtotal() float64 {
	return float64(i.Quantity) * i.UnitPrice
}

// Validate checks the line item invariants: a valid product reference,
// a non-empty name, a positive quantity, and a non-negative unit price.
func (i Item) Validate() error {
	if err := i.ProductID.Validate(); err != nil {
		return err
	}
	if i.Name == "" {
		return errs.NewValueIsRequiredError("item name")
	}
	if i.Quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("item quantity",
			fmt.Errorf("%d is not greater than 0", i.Quantity))
	}
	if i.UnitPrice < 0 {
		return errs.NewValueIsInvalidErrorWithCause("item unit price",
			fmt.Errorf("%.2f is negative", i.UnitPrice))
	}
	return nil
}
