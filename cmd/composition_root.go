package cmd

import (
	"log/slog"
	"os"

	"bakery/internal/adapters/out/courier"
	"bakery/internal/adapters/out/notification"
	"bakery/internal/adapters/out/postgres"
	"bakery/internal/adapters/out/stock"
	"bakery/internal/core/application/events"
	"bakery/internal/core/application/usecases/commands"
	"bakery/internal/core/application/usecases/queries"
	"bakery/internal/core/domain/model/order"
	"bakery/internal/core/domain/services"
	"bakery/internal/core/ports"
	"bakery/internal/jobs"

	"gorm.io/gorm"
)

// CompositionRoot wires adapters, domain services, and use case handlers.
// All dependencies are constructed once and shared.
type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory

	coordinator services.AssignmentCoordinator
	gateway     ports.CourierGateway
	notifier    ports.NotificationDispatcher
	stock       ports.StockService
	bus         *events.Bus
	logger      *slog.Logger
}

// NewCompositionRoot builds the object graph from configuration and an open
// database connection.
func NewCompositionRoot(config Config, gormDB *gorm.DB) CompositionRoot {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	return CompositionRoot{
		gormDB:      gormDB,
		uowFactory:  *postgres.NewGormUnitOfWorkFactory(gormDB),
		coordinator: services.NewAssignmentCoordinator(services.NewBranchAssigner(), assignmentConfig(config)),
		gateway: courier.NewGateway(courier.Config{
			BaseURL:  config.CourierAPIURL,
			APIKey:   config.CourierAPIKey,
			Platform: config.CourierPlatform,
			Timeout:  config.CourierAPITimeout,
		}, logger),
		notifier: notification.NewLogDispatcher(logger),
		stock:    stock.NewLogStockService(logger),
		bus:      events.NewBus(logger),
		logger:   logger,
	}
}

// assignmentConfig maps env-backed settings to the coordinator config,
// falling back to the defaults for unset or unparseable values.
func assignmentConfig(config Config) services.AssignmentConfig {
	cfg := services.DefaultAssignmentConfig()
	cfg.Enabled = config.AssignmentEnabled

	if config.AssignmentMode != "" {
		if mode, err := order.AssignmentModeFromString(config.AssignmentMode); err == nil {
			cfg.Mode = mode
		}
	}
	if config.DefaultBranchCode != "" {
		cfg.DefaultBranchCode = config.DefaultBranchCode
	}

	return cfg
}

// EventBus returns the shared in-process event bus so main can register
// listeners before the server starts.
func (c *CompositionRoot) EventBus() *events.Bus {
	return c.bus
}

// Logger returns the shared structured logger.
func (c *CompositionRoot) Logger() *slog.Logger {
	return c.logger
}

// Gateway returns the courier platform gateway.
func (c *CompositionRoot) Gateway() ports.CourierGateway {
	return c.gateway
}

func (c *CompositionRoot) CreatePlaceOrderCommandHandler() commands.PlaceOrderCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewPlaceOrderCommandHandler(f, c.coordinator, c.stock, c.notifier, c.bus, c.logger)
}

func (c *CompositionRoot) CreateAssignBranchCommandHandler() commands.AssignBranchCommandHandler {
	var f commands.OrderBranchUoWFactory = FuncOrderBranchUoWFactory(func() commands.OrderBranchUoW {
		return c.uowFactory.Create()
	})
	return commands.NewAssignBranchCommandHandler(f, c.bus, c.logger)
}

func (c *CompositionRoot) CreateApproveAssignmentCommandHandler() commands.ApproveAssignmentCommandHandler {
	return commands.NewApproveAssignmentCommandHandler(c.orderUoWFactory(), c.bus, c.logger)
}

func (c *CompositionRoot) CreatePrepareOrderCommandHandler() commands.PrepareOrderCommandHandler {
	return commands.NewPrepareOrderCommandHandler(c.orderUoWFactory(), c.bus, c.logger)
}

func (c *CompositionRoot) CreateSendToCourierCommandHandler() commands.SendToCourierCommandHandler {
	return commands.NewSendToCourierCommandHandler(c.orderUoWFactory(), c.gateway, c.notifier, c.bus, c.logger)
}

func (c *CompositionRoot) CreateUpdateStatusCommandHandler() commands.UpdateStatusCommandHandler {
	return commands.NewUpdateStatusCommandHandler(c.orderUoWFactory(), c.notifier, c.bus, c.logger)
}

func (c *CompositionRoot) CreateDeleteOrderCommandHandler() commands.DeleteOrderCommandHandler {
	return commands.NewDeleteOrderCommandHandler(c.orderUoWFactory(), c.logger)
}

func (c *CompositionRoot) CreateSyncCourierOrdersCommandHandler() commands.SyncCourierOrdersCommandHandler {
	return commands.NewSyncCourierOrdersCommandHandler(c.orderUoWFactory(), c.gateway, c.logger)
}

func (c *CompositionRoot) CreateGetOrderStatusQueryHandler() queries.GetOrderStatusQueryHandler {
	return queries.NewGetOrderStatusQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOrderHistoryQueryHandler() queries.GetOrderHistoryQueryHandler {
	return queries.NewGetOrderHistoryQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOrderTimelineQueryHandler() queries.GetOrderTimelineQueryHandler {
	return queries.NewGetOrderTimelineQueryHandler(c.gormDB)
}

// CreateJobManager wires the scheduled jobs.
func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(c.CreateSyncCourierOrdersCommandHandler(), c.logger)
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncOrderBranchUoWFactory func() commands.OrderBranchUoW

func (f FuncOrderBranchUoWFactory) Create() commands.OrderBranchUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
