package commands_test

import (
	"testing"

	"bakery/internal/core/application/events"
	"bakery/internal/core/application/usecases/commands"
	"bakery/internal/core/domain/model/branch"
	"bakery/internal/core/domain/model/kernel"
	"bakery/internal/core/domain/model/order"
	"bakery/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func activeBranch(t *testing.T) *branch.Branch {
	t.Helper()

	b, err := branch.NewBranch(kernel.NewUUID(), "RIVER", "Riverton bakery", true, nil)
	require.NoError(t, err)
	return b
}

func TestAssignBranchCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()

	o := storedOrder(t)
	b := activeBranch(t)
	cmd, err := commands.NewAssignBranchCommand(o.ID(), b.ID(), "")
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	branchRepo := new(MockBranchRepository)
	uow := new(MockOrderBranchUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("BranchRepository").Return(branchRepo).Once()
	branchRepo.On("Get", ctx, b.ID()).Return(b, nil).Once()
	uow.On("OrderRepository").Return(orderRepo).Twice()
	orderRepo.On("Get", ctx, o.ID()).Return(o, nil).Once()
	orderRepo.On("Update", ctx, o).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockOrderBranchUoWFactory)
	factory.On("Create").Return(uow).Once()

	recorder := newRecordingBus(events.BranchAssigned)

	h := commands.NewAssignBranchCommandHandler(factory, recorder.bus, testLogger())
	err = h.Handle(ctx, cmd)

	require.NoError(t, err)
	require.NotNil(t, o.BranchID())
	assert.True(t, o.BranchID().IsEqual(b.ID()))
	assert.Equal(t, order.ModeManual, o.Assignment().Mode())
	assert.Equal(t, "admin", o.Assignment().DecidedBy())
	assert.Equal(t, []string{events.BranchAssigned}, recorder.seen)

	// empty note falls back to the operator default
	history := o.History()
	assert.Contains(t, history[len(history)-1].Note, "assigned to branch RIVER")

	orderRepo.AssertExpectations(t)
	branchRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestAssignBranchCommandHandler_Handle_InactiveBranch(t *testing.T) {
	ctx := t.Context()

	o := storedOrder(t)
	b, err := branch.NewBranch(kernel.NewUUID(), "CLOSED", "Closed bakery", false, nil)
	require.NoError(t, err)
	cmd, err := commands.NewAssignBranchCommand(o.ID(), b.ID(), "")
	require.NoError(t, err)

	branchRepo := new(MockBranchRepository)
	uow := new(MockOrderBranchUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("BranchRepository").Return(branchRepo).Once()
	branchRepo.On("Get", ctx, b.ID()).Return(b, nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockOrderBranchUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewAssignBranchCommandHandler(factory, testBus(), testLogger())
	err = h.Handle(ctx, cmd)

	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrPreconditionFailed)
	assert.Contains(t, err.Error(), "not active")
	uow.AssertNotCalled(t, "Commit", mock.Anything)
	uow.AssertNotCalled(t, "OrderRepository")
}

func TestAssignBranchCommandHandler_Handle_BranchNotFound(t *testing.T) {
	ctx := t.Context()

	o := storedOrder(t)
	branchID := kernel.NewUUID()
	cmd, err := commands.NewAssignBranchCommand(o.ID(), branchID, "")
	require.NoError(t, err)

	branchRepo := new(MockBranchRepository)
	uow := new(MockOrderBranchUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("BranchRepository").Return(branchRepo).Once()
	branchRepo.On("Get", ctx, branchID).
		Return(nil, errs.NewObjectNotFoundError("branch", branchID)).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockOrderBranchUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewAssignBranchCommandHandler(factory, testBus(), testLogger())
	err = h.Handle(ctx, cmd)

	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestAssignBranchCommandHandler_Handle_TerminalOrder(t *testing.T) {
	ctx := t.Context()

	o := storedAssignedOrder(t)
	require.NoError(t, o.Cancel("customer request", "admin"))

	b := activeBranch(t)
	cmd, err := commands.NewAssignBranchCommand(o.ID(), b.ID(), "second thoughts")
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	branchRepo := new(MockBranchRepository)
	uow := new(MockOrderBranchUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("BranchRepository").Return(branchRepo).Once()
	branchRepo.On("Get", ctx, b.ID()).Return(b, nil).Once()
	uow.On("OrderRepository").Return(orderRepo).Once()
	orderRepo.On("Get", ctx, o.ID()).Return(o, nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockOrderBranchUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewAssignBranchCommandHandler(factory, testBus(), testLogger())
	err = h.Handle(ctx, cmd)

	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrPreconditionFailed)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}
