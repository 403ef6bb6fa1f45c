package commands_test

import (
	"testing"

	"bakery/internal/core/application/events"
	"bakery/internal/core/application/usecases/commands"
	"bakery/internal/core/domain/model/kernel"
	"bakery/internal/core/domain/model/order"
	"bakery/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestNewUpdateStatusCommand(t *testing.T) {
	t.Run("should parse the target status", func(t *testing.T) {
		orderID := kernel.NewUUID()
		cmd, err := commands.NewUpdateStatusCommand(orderID, "delivered", "front door", "left with customer")

		require.NoError(t, err)
		assert.Equal(t, orderID, cmd.OrderID())
		assert.Equal(t, order.Delivered, cmd.Target())
		assert.Equal(t, "front door", cmd.Location())
		assert.Equal(t, "left with customer", cmd.Note())
	})

	t.Run("should reject an unknown status", func(t *testing.T) {
		_, err := commands.NewUpdateStatusCommand(kernel.NewUUID(), "shipped", "", "")

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should reject a zero order id", func(t *testing.T) {
		_, err := commands.NewUpdateStatusCommand(kernel.UUID{}, "delivered", "", "")

		require.Error(t, err)
	})
}

func TestUpdateStatusCommandHandler_Handle_Delivered(t *testing.T) {
	ctx := t.Context()

	o := storedHandoffOrder(t)
	cmd, err := commands.NewUpdateStatusCommand(o.ID(), "delivered", "front door", "")
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(repo).Twice()
	repo.On("Get", ctx, o.ID()).Return(o, nil).Once()
	repo.On("Update", ctx, o).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	notifier := new(MockNotificationDispatcher)
	notifier.On("NotifyDeliveryCompleted", ctx, o, mock.Anything).Return(nil).Once()

	recorder := newRecordingBus(events.StatusChanged, events.OrderDelivered)

	h := commands.NewUpdateStatusCommandHandler(factory, notifier, recorder.bus, testLogger())
	err = h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.Delivered, o.Status())
	assert.Equal(t, []string{events.StatusChanged, events.OrderDelivered}, recorder.seen)
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
	notifier.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestUpdateStatusCommandHandler_Handle_Cancelled(t *testing.T) {
	ctx := t.Context()

	o := storedAssignedOrder(t)
	cmd, err := commands.NewUpdateStatusCommand(o.ID(), "cancelled", "", "customer request")
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(repo).Twice()
	repo.On("Get", ctx, o.ID()).Return(o, nil).Once()
	repo.On("Update", ctx, o).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	notifier := new(MockNotificationDispatcher)
	notifier.On("NotifyStatusUpdate", ctx, o, order.Cancelled, mock.Anything).Return(nil).Once()

	recorder := newRecordingBus(events.StatusChanged, events.OrderCancelled)

	h := commands.NewUpdateStatusCommandHandler(factory, notifier, recorder.bus, testLogger())
	err = h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.Cancelled, o.Status())
	assert.Equal(t, []string{events.StatusChanged, events.OrderCancelled}, recorder.seen)
	notifier.AssertExpectations(t)
}

func TestUpdateStatusCommandHandler_Handle_IllegalTransition(t *testing.T) {
	ctx := t.Context()

	o := storedAssignedOrder(t) // received, cannot jump to delivered
	cmd, err := commands.NewUpdateStatusCommand(o.ID(), "delivered", "", "")
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(repo).Once()
	repo.On("Get", ctx, o.ID()).Return(o, nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewUpdateStatusCommandHandler(factory, new(MockNotificationDispatcher), testBus(), testLogger())
	err = h.Handle(ctx, cmd)

	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrPreconditionFailed)
	assert.Equal(t, order.Received, o.Status())
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestUpdateStatusCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	cmd := commands.UpdateStatusCommand{} // not constructed properly

	h := commands.NewUpdateStatusCommandHandler(new(MockOrderUoWFactory),
		new(MockNotificationDispatcher), testBus(), testLogger())
	err := h.Handle(ctx, cmd)

	require.Error(t, err)
	assert.ErrorIs(t, err, commands.ErrUpdateStatusCommandIsNotConstructed)
}
