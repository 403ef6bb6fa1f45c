package commands_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"bakery/internal/core/application/events"
	"bakery/internal/core/application/usecases/commands"
	"bakery/internal/core/domain/model/branch"
	"bakery/internal/core/domain/model/kernel"
	"bakery/internal/core/domain/model/order"
	"bakery/internal/core/domain/model/zone"
	"bakery/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// Shared test doubles for the command handler tests. All handlers in this
// package consume the same unit-of-work shapes, so the mocks live in one
// place instead of being redeclared per test file.

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if o := args.Get(0); o != nil {
		return o.(*order.Order), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockOrderRepository) GetByTrackingID(ctx context.Context, trackingID kernel.TrackingID) (*order.Order, error) {
	args := m.Called(ctx, trackingID)
	if o := args.Get(0); o != nil {
		return o.(*order.Order), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockOrderRepository) GetAllAwaitingCourierSync(ctx context.Context) ([]*order.Order, error) {
	args := m.Called(ctx)
	if orders := args.Get(0); orders != nil {
		return orders.([]*order.Order), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockOrderRepository) Delete(ctx context.Context, id kernel.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockBranchRepository struct{ mock.Mock }

func (m *MockBranchRepository) Get(ctx context.Context, id kernel.UUID) (*branch.Branch, error) {
	args := m.Called(ctx, id)
	if b := args.Get(0); b != nil {
		return b.(*branch.Branch), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockBranchRepository) FindByCode(ctx context.Context, code string) (*branch.Branch, error) {
	args := m.Called(ctx, code)
	if b := args.Get(0); b != nil {
		return b.(*branch.Branch), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockBranchRepository) ListActive(ctx context.Context) ([]*branch.Branch, error) {
	args := m.Called(ctx)
	if branches := args.Get(0); branches != nil {
		return branches.([]*branch.Branch), args.Error(1)
	}
	return nil, args.Error(1)
}

type MockZoneRepository struct{ mock.Mock }

func (m *MockZoneRepository) Get(ctx context.Context, id kernel.UUID) (*zone.DeliveryZone, error) {
	args := m.Called(ctx, id)
	if z := args.Get(0); z != nil {
		return z.(*zone.DeliveryZone), args.Error(1)
	}
	return nil, args.Error(1)
}

type MockOrderUoW struct{ mock.Mock }

func (m *MockOrderUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockOrderBranchUoW struct{ MockOrderUoW }

func (m *MockOrderBranchUoW) BranchRepository() ports.BranchRepository {
	args := m.Called()
	return args.Get(0).(ports.BranchRepository)
}

type MockOrderBranchUoWFactory struct{ mock.Mock }

func (m *MockOrderBranchUoWFactory) Create() commands.OrderBranchUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderBranchUoW)
}

type MockUoW struct{ MockOrderBranchUoW }

func (m *MockUoW) ZoneRepository() ports.ZoneRepository {
	args := m.Called()
	return args.Get(0).(ports.ZoneRepository)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

type MockCourierGateway struct{ mock.Mock }

func (m *MockCourierGateway) Initialize(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockCourierGateway) SubmitOrder(ctx context.Context, o *order.Order) ports.SubmitResult {
	args := m.Called(ctx, o)
	return args.Get(0).(ports.SubmitResult)
}

type MockNotificationDispatcher struct{ mock.Mock }

func (m *MockNotificationDispatcher) NotifyOrderConfirmation(ctx context.Context, o *order.Order, recipient ports.Recipient) error {
	args := m.Called(ctx, o, recipient)
	return args.Error(0)
}

func (m *MockNotificationDispatcher) NotifyStatusUpdate(ctx context.Context, o *order.Order, status order.Status, recipient ports.Recipient) error {
	args := m.Called(ctx, o, status, recipient)
	return args.Error(0)
}

func (m *MockNotificationDispatcher) NotifyCourierAssigned(ctx context.Context, o *order.Order, recipient ports.Recipient) error {
	args := m.Called(ctx, o, recipient)
	return args.Error(0)
}

func (m *MockNotificationDispatcher) NotifyDeliveryCompleted(ctx context.Context, o *order.Order, recipient ports.Recipient) error {
	args := m.Called(ctx, o, recipient)
	return args.Error(0)
}

type MockStockService struct{ mock.Mock }

func (m *MockStockService) ReduceStock(ctx context.Context, items []order.Item) error {
	args := m.Called(ctx, items)
	return args.Error(0)
}

func (m *MockStockService) CheckLowStockAlert(ctx context.Context, productID kernel.UUID) {
	m.Called(ctx, productID)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testBus() *events.Bus {
	return events.NewBus(testLogger())
}

// recordingBus subscribes to the given event names and records every
// delivery, so handler tests can assert on published events.
type recordingBus struct {
	bus  *events.Bus
	seen []string
}

func newRecordingBus(names ...string) *recordingBus {
	r := &recordingBus{bus: testBus()}
	for _, name := range names {
		n := name
		r.bus.Subscribe(n, func(ctx context.Context, evt events.Event) {
			r.seen = append(r.seen, n)
		})
	}
	return r
}

func storedOrder(t *testing.T) *order.Order {
	t.Helper()

	address, err := kernel.NewAddress("12 Mill Lane", "Riverton", "Old Town", nil)
	require.NoError(t, err)

	o, err := order.NewOrder(
		kernel.NewUUID(),
		kernel.NewTrackingID(),
		[]order.Item{{ProductID: kernel.NewUUID(), Name: "sourdough loaf", Quantity: 2, UnitPrice: 4.50}},
		address,
		order.CashOnDelivery,
		false,
		"jo@example.com", "",
	)
	require.NoError(t, err)
	return o
}

func storedAssignedOrder(t *testing.T) *order.Order {
	t.Helper()

	o := storedOrder(t)
	require.NoError(t, o.AssignBranch(kernel.NewUUID(), order.ModeAuto, "system", "assigned"))
	return o
}

func storedPreparingOrder(t *testing.T) *order.Order {
	t.Helper()

	o := storedAssignedOrder(t)
	require.NoError(t, o.Prepare("branch"))
	return o
}

func storedHandoffOrder(t *testing.T) *order.Order {
	t.Helper()

	o := storedPreparingOrder(t)
	require.NoError(t, o.HandToCourier("admin"))
	return o
}
