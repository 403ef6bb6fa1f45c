package commands_test

import (
	"testing"

	"bakery/internal/core/application/usecases/commands"
	"bakery/internal/core/domain/model/kernel"
	"bakery/internal/core/domain/model/order"
	"bakery/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPlaceOrderCommand_ValidInput(t *testing.T) {
	orderID := kernel.NewUUID()
	zoneID := kernel.NewUUID()
	items := placeOrderItems()

	cmd, err := commands.NewPlaceOrderCommand(orderID, items,
		"12 Mill Lane", "Riverton", "Old Town", &zoneID,
		"cash-on-delivery", true, "jo@example.com", "+15550100")

	require.NoError(t, err)
	assert.Equal(t, orderID, cmd.OrderID())
	assert.Len(t, cmd.Items(), 1)
	assert.Equal(t, "12 Mill Lane", cmd.Street())
	assert.Equal(t, "Riverton", cmd.City())
	assert.Equal(t, "Old Town", cmd.District())
	require.NotNil(t, cmd.ZoneID())
	assert.True(t, cmd.ZoneID().IsEqual(zoneID))
	assert.Equal(t, order.CashOnDelivery, cmd.PaymentMethod())
	assert.True(t, cmd.IsGuest())
	assert.Equal(t, "jo@example.com", cmd.Email())
	assert.Equal(t, "+15550100", cmd.Phone())
}

func TestNewPlaceOrderCommand_InvalidOrderID(t *testing.T) {
	_, err := commands.NewPlaceOrderCommand(kernel.UUID{}, placeOrderItems(),
		"12 Mill Lane", "Riverton", "", nil, "cash-on-delivery", false, "", "")

	require.Error(t, err)
	assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
}

func TestNewPlaceOrderCommand_NoItems(t *testing.T) {
	_, err := commands.NewPlaceOrderCommand(kernel.NewUUID(), nil,
		"12 Mill Lane", "Riverton", "", nil, "cash-on-delivery", false, "", "")

	require.Error(t, err)
	assert.ErrorIs(t, err, order.ErrNoItems)
}

func TestNewPlaceOrderCommand_InvalidItem(t *testing.T) {
	items := []order.Item{{ProductID: kernel.NewUUID(), Name: "", Quantity: 1, UnitPrice: 2}}

	_, err := commands.NewPlaceOrderCommand(kernel.NewUUID(), items,
		"12 Mill Lane", "Riverton", "", nil, "cash-on-delivery", false, "", "")

	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestNewPlaceOrderCommand_MissingStreet(t *testing.T) {
	_, err := commands.NewPlaceOrderCommand(kernel.NewUUID(), placeOrderItems(),
		"", "Riverton", "", nil, "cash-on-delivery", false, "", "")

	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestNewPlaceOrderCommand_UnknownPaymentMethod(t *testing.T) {
	_, err := commands.NewPlaceOrderCommand(kernel.NewUUID(), placeOrderItems(),
		"12 Mill Lane", "Riverton", "", nil, "store-credit", false, "", "")

	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestPlaceOrderCommand_Validate_NotConstructed(t *testing.T) {
	cmd := commands.PlaceOrderCommand{}

	err := cmd.Validate()

	require.Error(t, err)
	assert.ErrorIs(t, err, commands.ErrPlaceOrderCommandIsNotConstructed)
}
