package services_test

import (
	"testing"

	"bakery/internal/core/domain/model/branch"
	"bakery/internal/core/domain/model/kernel"
	"bakery/internal/core/domain/model/order"
	"bakery/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newOrderIn(t *testing.T, city, district string) *order.Order {
	t.Helper()

	address, err := kernel.NewAddress("12 Mill Lane", city, district, nil)
	require.NoError(t, err)

	o, err := order.NewOrder(
		kernel.NewUUID(),
		kernel.NewTrackingID(),
		[]order.Item{{ProductID: kernel.NewUUID(), Name: "sourdough loaf", Quantity: 1, UnitPrice: 4.50}},
		address,
		order.CashOnDelivery,
		false,
		"jo@example.com", "",
	)
	require.NoError(t, err)
	return o
}

func newCoordinator(enabled bool, mode order.AssignmentMode) services.AssignmentCoordinator {
	return services.NewAssignmentCoordinator(services.NewBranchAssigner(), services.AssignmentConfig{
		Enabled:           enabled,
		Mode:              mode,
		DefaultBranchCode: "MAIN",
	})
}

func TestAssignmentCoordinator_Assign(t *testing.T) {
	t.Run("should commit the matched branch under auto mode", func(t *testing.T) {
		o := newOrderIn(t, "Riverton", "Old Town")
		matched := newBranch(t, "OLDTOWN", true, branch.ServiceArea{District: "Old Town"})

		err := newCoordinator(true, order.ModeAuto).Assign(o, []*branch.Branch{matched}, nil)

		require.NoError(t, err)
		require.NotNil(t, o.BranchID())
		assert.True(t, o.BranchID().IsEqual(matched.ID()))
		assert.Equal(t, order.StateAssigned, o.Assignment().State())
		assert.Equal(t, "system", o.Assignment().DecidedBy())
	})

	t.Run("should store a suggestion under hybrid mode without committing", func(t *testing.T) {
		o := newOrderIn(t, "Riverton", "")
		matched := newBranch(t, "RIVER", true, branch.ServiceArea{City: "Riverton"})

		err := newCoordinator(true, order.ModeHybrid).Assign(o, []*branch.Branch{matched}, nil)

		require.NoError(t, err)
		assert.Nil(t, o.BranchID())
		assert.Equal(t, order.StateSuggested, o.Assignment().State())
		require.NotNil(t, o.Assignment().SuggestedBranchID())
		assert.True(t, o.Assignment().SuggestedBranchID().IsEqual(matched.ID()))
	})

	t.Run("should leave assignment pending under manual mode", func(t *testing.T) {
		o := newOrderIn(t, "Riverton", "")
		matched := newBranch(t, "RIVER", true, branch.ServiceArea{City: "Riverton"})

		err := newCoordinator(true, order.ModeManual).Assign(o, []*branch.Branch{matched}, nil)

		require.NoError(t, err)
		assert.Nil(t, o.BranchID())
		assert.Equal(t, order.StatePending, o.Assignment().State())
	})

	t.Run("should fall back to the default branch when disabled", func(t *testing.T) {
		o := newOrderIn(t, "Riverton", "")
		matched := newBranch(t, "RIVER", true, branch.ServiceArea{City: "Riverton"})
		fallback := newBranch(t, "MAIN", true)

		err := newCoordinator(false, order.ModeAuto).Assign(o, []*branch.Branch{matched}, fallback)

		require.NoError(t, err)
		require.NotNil(t, o.BranchID())
		assert.True(t, o.BranchID().IsEqual(fallback.ID()))

		history := o.History()
		assert.Contains(t, history[len(history)-1].Note, "disabled")
	})

	t.Run("should fall back when no branch matches", func(t *testing.T) {
		o := newOrderIn(t, "Riverton", "")
		unrelated := newBranch(t, "NORTH", true, branch.ServiceArea{City: "Hillcrest"})
		fallback := newBranch(t, "MAIN", true)

		err := newCoordinator(true, order.ModeAuto).Assign(o, []*branch.Branch{unrelated}, fallback)

		require.NoError(t, err)
		require.NotNil(t, o.BranchID())
		assert.True(t, o.BranchID().IsEqual(fallback.ID()))
		assert.Equal(t, order.StateAssigned, o.Assignment().State())
	})

	t.Run("should commit fallback directly even under hybrid mode", func(t *testing.T) {
		o := newOrderIn(t, "Riverton", "")
		fallback := newBranch(t, "MAIN", true)

		err := newCoordinator(true, order.ModeHybrid).Assign(o, nil, fallback)

		require.NoError(t, err)
		require.NotNil(t, o.BranchID())
		assert.Equal(t, order.StateAssigned, o.Assignment().State())
	})

	t.Run("should leave the order unassigned when even the default branch is missing", func(t *testing.T) {
		o := newOrderIn(t, "Riverton", "")

		err := newCoordinator(true, order.ModeAuto).Assign(o, nil, nil)

		require.NoError(t, err)
		assert.Nil(t, o.BranchID())
		assert.Equal(t, order.StateUnassigned, o.Assignment().State())
		assert.Equal(t, order.ModeAuto, o.Assignment().Mode())
	})
}

func TestDefaultAssignmentConfig(t *testing.T) {
	t.Run("should enable auto assignment with the MAIN fallback", func(t *testing.T) {
		config := services.DefaultAssignmentConfig()

		assert.True(t, config.Enabled)
		assert.Equal(t, order.ModeAuto, config.Mode)
		assert.Equal(t, "MAIN", config.DefaultBranchCode)
	})
}
