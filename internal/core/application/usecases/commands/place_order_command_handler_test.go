package commands_test

import (
	"errors"
	"testing"

	"bakery/internal/core/application/events"
	"bakery/internal/core/application/usecases/commands"
	"bakery/internal/core/domain/model/branch"
	"bakery/internal/core/domain/model/kernel"
	"bakery/internal/core/domain/model/order"
	"bakery/internal/core/domain/model/zone"
	"bakery/internal/core/domain/services"
	"bakery/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func placeOrderItems() []order.Item {
	return []order.Item{
		{ProductID: kernel.NewUUID(), Name: "sourdough loaf", Quantity: 2, UnitPrice: 4.50},
	}
}

func placeOrderCommand(t *testing.T, zoneID *kernel.UUID) commands.PlaceOrderCommand {
	t.Helper()

	cmd, err := commands.NewPlaceOrderCommand(
		kernel.NewUUID(), placeOrderItems(),
		"12 Mill Lane", "Riverton", "Old Town", zoneID,
		"cash-on-delivery", false, "jo@example.com", "")
	require.NoError(t, err)
	return cmd
}

func autoCoordinator() services.AssignmentCoordinator {
	return services.NewAssignmentCoordinator(services.NewBranchAssigner(), services.DefaultAssignmentConfig())
}

func TestPlaceOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	cmd := placeOrderCommand(t, nil)

	matched, err := branch.NewBranch(kernel.NewUUID(), "OLDTOWN", "Old Town bakery", true,
		[]branch.ServiceArea{{District: "Old Town"}})
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	branchRepo := new(MockBranchRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("BranchRepository").Return(branchRepo).Twice()
	branchRepo.On("ListActive", ctx).Return([]*branch.Branch{matched}, nil).Once()
	branchRepo.On("FindByCode", ctx, "MAIN").
		Return(nil, errs.NewObjectNotFoundError("branch", "MAIN")).Once()
	uow.On("OrderRepository").Return(orderRepo).Once()
	orderRepo.On("Add", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	stock := new(MockStockService)
	stock.On("ReduceStock", ctx, mock.Anything).Return(nil).Once()
	stock.On("CheckLowStockAlert", ctx, mock.Anything).Return().Once()

	notifier := new(MockNotificationDispatcher)
	notifier.On("NotifyOrderConfirmation", ctx, mock.Anything, mock.Anything).Return(nil).Once()

	recorder := newRecordingBus(events.OrderCreated, events.BranchAssigned)

	h := commands.NewPlaceOrderCommandHandler(factory, autoCoordinator(), stock, notifier, recorder.bus, testLogger())
	o, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	require.NotNil(t, o)
	assert.Equal(t, order.Received, o.Status())
	require.NotNil(t, o.BranchID())
	assert.True(t, o.BranchID().IsEqual(matched.ID()))
	assert.Equal(t, []string{events.OrderCreated, events.BranchAssigned}, recorder.seen)

	orderRepo.AssertExpectations(t)
	branchRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
	stock.AssertExpectations(t)
	notifier.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestPlaceOrderCommandHandler_Handle_ZoneMinimumNotMet(t *testing.T) {
	ctx := t.Context()
	zoneID := kernel.NewUUID()
	cmd := placeOrderCommand(t, &zoneID) // total 9.00

	z, err := zone.NewDeliveryZone(zoneID, "Old Town", 25.00, false, "Riverton", "Old Town")
	require.NoError(t, err)

	zoneRepo := new(MockZoneRepository)
	zoneRepo.On("Get", ctx, zoneID).Return(z, nil).Once()

	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("ZoneRepository").Return(zoneRepo).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewPlaceOrderCommandHandler(factory, autoCoordinator(),
		new(MockStockService), new(MockNotificationDispatcher), testBus(), testLogger())
	o, err := h.Handle(ctx, cmd)

	require.Error(t, err)
	assert.Nil(t, o)
	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	assert.Contains(t, err.Error(), "below the zone minimum")
	uow.AssertNotCalled(t, "Commit", mock.Anything)
	zoneRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestPlaceOrderCommandHandler_Handle_StockFailureAbortsPlacement(t *testing.T) {
	ctx := t.Context()
	cmd := placeOrderCommand(t, nil)

	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	stock := new(MockStockService)
	stock.On("ReduceStock", ctx, mock.Anything).Return(errors.New("sourdough out of stock")).Once()

	h := commands.NewPlaceOrderCommandHandler(factory, autoCoordinator(),
		stock, new(MockNotificationDispatcher), testBus(), testLogger())
	o, err := h.Handle(ctx, cmd)

	require.Error(t, err)
	assert.Nil(t, o)
	assert.Contains(t, err.Error(), "reduce stock")
	uow.AssertNotCalled(t, "Commit", mock.Anything)
	stock.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestPlaceOrderCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	cmd := commands.PlaceOrderCommand{} // not constructed properly

	h := commands.NewPlaceOrderCommandHandler(new(MockUoWFactory), autoCoordinator(),
		new(MockStockService), new(MockNotificationDispatcher), testBus(), testLogger())
	_, err := h.Handle(ctx, cmd)

	require.Error(t, err)
}

func TestPlaceOrderCommandHandler_Handle_BeginError(t *testing.T) {
	ctx := t.Context()
	cmd := placeOrderCommand(t, nil)

	uow := new(MockUoW)
	factory := new(MockUoWFactory)
	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(errors.New("begin error")).Once(),
	)

	h := commands.NewPlaceOrderCommandHandler(factory, autoCoordinator(),
		new(MockStockService), new(MockNotificationDispatcher), testBus(), testLogger())
	_, err := h.Handle(ctx, cmd)

	require.Error(t, err)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestPlaceOrderCommandHandler_Handle_NotificationFailureDoesNotFailPlacement(t *testing.T) {
	ctx := t.Context()
	cmd := placeOrderCommand(t, nil)

	branchRepo := new(MockBranchRepository)
	branchRepo.On("ListActive", ctx).Return(nil, nil).Once()
	branchRepo.On("FindByCode", ctx, "MAIN").
		Return(nil, errs.NewObjectNotFoundError("branch", "MAIN")).Once()

	orderRepo := new(MockOrderRepository)
	orderRepo.On("Add", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once()

	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("BranchRepository").Return(branchRepo).Twice()
	uow.On("OrderRepository").Return(orderRepo).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	stock := new(MockStockService)
	stock.On("ReduceStock", ctx, mock.Anything).Return(nil).Once()
	stock.On("CheckLowStockAlert", ctx, mock.Anything).Return().Once()

	notifier := new(MockNotificationDispatcher)
	notifier.On("NotifyOrderConfirmation", ctx, mock.Anything, mock.Anything).
		Return(errors.New("smtp unavailable")).Once()

	h := commands.NewPlaceOrderCommandHandler(factory, autoCoordinator(), stock, notifier, testBus(), testLogger())
	o, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	require.NotNil(t, o)
	notifier.AssertExpectations(t)
}
