package commands

import (
	"errors"

	"bakery/internal/core/domain/model/kernel"
	"bakery/internal/core/domain/model/order"
	"bakery/internal/pkg/guard"
)

var (
	ErrPlaceOrderCommandIsNotConstructed = errors.New(
		"PlaceOrderCommand must be created via NewPlaceOrderCommand constructor",
	)
)

// PlaceOrderCommand represents a request to place a new order: the line
// items, the structured delivery address, the payment method, and the
// customer contact channels used for notifications.
//
// Example:
//
//	cmd, err := NewPlaceOrderCommand(kernel.NewUUID(), items,
//	    "12 Mill Lane", "Riverton", "Old Town", &zoneID,
//	    "cash-on-delivery", false, "jo@example.com", "")
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
type PlaceOrderCommand struct { //nolint:recvcheck //using for validation
	orderID       kernel.UUID
	items         []order.Item
	street        string
	city          string
	district      string
	zoneID        *kernel.UUID
	paymentMethod order.PaymentMethod
	guest         bool
	email         string
	phone         string

	guard guard.ConstructorGuard
}

// NewPlaceOrderCommand creates a command to place a new order.
// Validates the order ID, every line item, the required address parts, and
// the payment method string ("cash-on-delivery", "bank-transfer",
// "online-gateway").
func NewPlaceOrderCommand(
	orderID kernel.UUID,
	items []order.Item,
	street, city, district string,
	zoneID *kernel.UUID,
	paymentMethod string,
	guest bool,
	email, phone string,
) (PlaceOrderCommand, error) {
	cmd := PlaceOrderCommand{
		district: district,
		zoneID:   zoneID,
		guest:    guest,
		email:    email,
		phone:    phone,
		guard:    guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setItems(items),
		cmd.setAddress(street, city),
		cmd.setPaymentMethod(paymentMethod),
	); err != nil {
		return PlaceOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c PlaceOrderCommand) Validate() error {
	return c.guard.Validate(ErrPlaceOrderCommandIsNotConstructed)
}

// OrderID returns the unique identifier for the order.
func (c PlaceOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Items returns the ordered line items.
func (c PlaceOrderCommand) Items() []order.Item {
	return append([]order.Item(nil), c.items...)
}

// Street returns the delivery street line.
func (c PlaceOrderCommand) Street() string {
	return c.street
}

// City returns the delivery city.
func (c PlaceOrderCommand) City() string {
	return c.city
}

// District returns the delivery district, or "".
func (c PlaceOrderCommand) District() string {
	return c.district
}

// ZoneID returns the referenced delivery zone, or nil.
func (c PlaceOrderCommand) ZoneID() *kernel.UUID {
	return c.zoneID
}

// PaymentMethod returns the parsed payment method.
func (c PlaceOrderCommand) PaymentMethod() order.PaymentMethod {
	return c.paymentMethod
}

// IsGuest reports whether the order is placed without an account.
func (c PlaceOrderCommand) IsGuest() bool {
	return c.guest
}

// Email returns the contact email, or "".
func (c PlaceOrderCommand) Email() string {
	return c.email
}

// Phone returns the contact phone, or "".
func (c PlaceOrderCommand) Phone() string {
	return c.phone
}

func (c *PlaceOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *PlaceOrderCommand) setItems(items []order.Item) error {
	if len(items) == 0 {
		return order.ErrNoItems
	}
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
	}

	c.items = append([]order.Item(nil), items...)
	return nil
}

func (c *PlaceOrderCommand) setAddress(street, city string) error {
	// full address construction happens in the handler; required parts are
	// rejected early here
	addr, err := kernel.NewAddress(street, city, c.district, c.zoneID)
	if err != nil {
		return err
	}

	c.street = addr.Street()
	c.city = addr.City()
	return nil
}

func (c *PlaceOrderCommand) setPaymentMethod(paymentMethod string) error {
	parsed, err := order.PaymentMethodFromString(paymentMethod)
	if err != nil {
		return err
	}

	c.paymentMethod = parsed
	return nil
}
