package kernel_test

import (
	"testing"

	"bakery/internal/core/domain/model/kernel"
	"bakery/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAddress(t *testing.T) {
	t.Run("should create address with all fields", func(t *testing.T) {
		zoneID := kernel.NewUUID()

		address, err := kernel.NewAddress("12 Mill Lane", "Riverton", "Old Town", &zoneID)

		require.NoError(t, err)
		assert.NoError(t, address.Validate())
		assert.Equal(t, "12 Mill Lane", address.Street())
		assert.Equal(t, "Riverton", address.City())
		assert.Equal(t, "Old Town", address.District())
		require.NotNil(t, address.ZoneID())
		assert.True(t, address.ZoneID().IsEqual(zoneID))
	})

	t.Run("should allow empty district and nil zone", func(t *testing.T) {
		address, err := kernel.NewAddress("12 Mill Lane", "Riverton", "", nil)

		require.NoError(t, err)
		assert.Empty(t, address.District())
		assert.Nil(t, address.ZoneID())
	})

	t.Run("should require street", func(t *testing.T) {
		_, err := kernel.NewAddress("", "Riverton", "Old Town", nil)

		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.Contains(t, err.Error(), "street")
	})

	t.Run("should require city", func(t *testing.T) {
		_, err := kernel.NewAddress("12 Mill Lane", "", "Old Town", nil)

		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.Contains(t, err.Error(), "city")
	})

	t.Run("should reject uninitialized zone reference", func(t *testing.T) {
		var zoneID kernel.UUID
		_, err := kernel.NewAddress("12 Mill Lane", "Riverton", "Old Town", &zoneID)

		assert.Equal(t, kernel.ErrUUIDIsNotConstructed, err)
	})
}

func TestAddress_Validate(t *testing.T) {
	t.Run("should return error for zero value address", func(t *testing.T) {
		var address kernel.Address

		err := address.Validate()
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	})
}
