package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"bakery/internal/core/application/events"
	"bakery/internal/core/domain/model/kernel"
	"bakery/internal/core/domain/model/order"
	"bakery/internal/core/domain/services"
	"bakery/internal/core/ports"
	"bakery/internal/pkg/errs"
)

// PlaceOrderCommandHandler handles order placement: zone minimum-amount
// validation, stock reduction, branch assignment under the configured mode,
// and persistence of the new order in "received" status. After the
// transaction commits it publishes fulfillment events and dispatches the
// confirmation notification; both side effects degrade independently and
// never fail the placement.
type PlaceOrderCommandHandler struct {
	uowFactory  UoWFactory
	coordinator services.AssignmentCoordinator
	stock       ports.StockService
	notifier    ports.NotificationDispatcher
	bus         *events.Bus
	logger      *slog.Logger
}

// NewPlaceOrderCommandHandler creates a handler for order placement.
func NewPlaceOrderCommandHandler(
	uowFactory UoWFactory,
	coordinator services.AssignmentCoordinator,
	stock ports.StockService,
	notifier ports.NotificationDispatcher,
	bus *events.Bus,
	logger *slog.Logger,
) PlaceOrderCommandHandler {
	return PlaceOrderCommandHandler{
		uowFactory:  uowFactory,
		coordinator: coordinator,
		stock:       stock,
		notifier:    notifier,
		bus:         bus,
		logger:      logger.With("component", "place_order"),
	}
}

// Handle processes the order placement command and returns the created
// aggregate so the transport layer can render the tracking ID and
// assignment outcome.
func (h PlaceOrderCommandHandler) Handle(ctx context.Context, cmd PlaceOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	address, err := kernel.NewAddress(cmd.Street(), cmd.City(), cmd.District(), cmd.ZoneID())
	if err != nil {
		return nil, err
	}

	o, err := order.NewOrder(
		cmd.OrderID(),
		kernel.NewTrackingID(),
		cmd.Items(),
		address,
		cmd.PaymentMethod(),
		cmd.IsGuest(),
		cmd.Email(),
		cmd.Phone(),
	)
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = h.checkZoneMinimum(ctx, uow, o); err != nil {
		return nil, err
	}

	// stock must be reduced before the order commit; a stock failure aborts
	// placement
	if err = h.stock.ReduceStock(ctx, o.Items()); err != nil {
		return nil, fmt.Errorf("reduce stock: %w", err)
	}
	for _, item := range o.Items() {
		h.stock.CheckLowStockAlert(ctx, item.ProductID)
	}

	if err = h.assignBranch(ctx, uow, o); err != nil {
		return nil, err
	}

	if err = uow.OrderRepository().Add(ctx, o); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.publishPlacementEvents(ctx, o)
	h.notifyConfirmation(ctx, o)

	return o, nil
}

// checkZoneMinimum enforces the delivery zone's minimum order amount.
// Orders without a zone reference are not constrained.
func (h PlaceOrderCommandHandler) checkZoneMinimum(ctx context.Context, uow UoW, o *order.Order) error {
	zoneID := o.Address().ZoneID()
	if zoneID == nil {
		return nil
	}

	z, err := uow.ZoneRepository().Get(ctx, *zoneID)
	if err != nil {
		return err
	}

	if o.TotalAmount() < z.MinOrderAmount() {
		return errs.NewValueIsInvalidErrorWithCause("order total",
			fmt.Errorf("total %.2f is below the zone minimum %.2f (short by %.2f)",
				o.TotalAmount(), z.MinOrderAmount(), z.MinOrderAmount()-o.TotalAmount()))
	}

	return nil
}

// assignBranch runs the assignment coordinator with the active branches and
// the configured default branch. A missing default branch is tolerated: the
// order proceeds unassigned.
func (h PlaceOrderCommandHandler) assignBranch(ctx context.Context, uow UoW, o *order.Order) error {
	branches, err := uow.BranchRepository().ListActive(ctx)
	if err != nil {
		return err
	}

	defaultBranch, err := uow.BranchRepository().FindByCode(ctx, h.coordinator.Config().DefaultBranchCode)
	if err != nil {
		if !errors.Is(err, errs.ErrObjectNotFound) {
			return err
		}
		defaultBranch = nil
	}

	return h.coordinator.Assign(o, branches, defaultBranch)
}

func (h PlaceOrderCommandHandler) publishPlacementEvents(ctx context.Context, o *order.Order) {
	evt := events.Event{
		Name:       events.OrderCreated,
		OrderID:    o.ID(),
		TrackingID: o.TrackingID().String(),
		Status:     o.Status(),
		BranchID:   o.BranchID(),
		OccurredAt: time.Now(),
	}
	h.bus.Publish(ctx, evt)

	switch o.Assignment().State() {
	case order.StateAssigned:
		evt.Name = events.BranchAssigned
		h.bus.Publish(ctx, evt)
	case order.StateSuggested:
		evt.Name = events.BranchSuggested
		h.bus.Publish(ctx, evt)
	}
}

func (h PlaceOrderCommandHandler) notifyConfirmation(ctx context.Context, o *order.Order) {
	if !o.HasContact() {
		return
	}

	recipient := ports.Recipient{Email: o.CustomerEmail(), Phone: o.CustomerPhone()}
	if err := h.notifier.NotifyOrderConfirmation(ctx, o, recipient); err != nil {
		h.logger.WarnContext(ctx, "order confirmation notification failed",
			"orderId", o.ID().String(), "error", err)
	}
}
