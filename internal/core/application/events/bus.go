// Package events provides the synchronous in-process publish point for
// fulfillment events, so other subsystems (admin live view, reporting hooks)
// can react without coupling to the command handlers.
package events

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"bakery/internal/core/domain/model/kernel"
	"bakery/internal/core/domain/model/order"
)

// Fulfillment event names published by the command handlers.
const (
	OrderCreated       = "order:created"
	BranchSuggested    = "order:branchSuggested"
	BranchAssigned     = "order:branchAssigned"
	AssignmentApproved = "order:assignmentApproved"
	OrderPreparing     = "order:preparing"
	CourierAssigned    = "order:courierAssigned"
	StatusChanged      = "order:statusChanged"
	OrderDelivered     = "order:delivered"
	OrderCancelled     = "order:cancelled"
)

// Event is a single fulfillment event.
type Event struct {
	Name       string
	OrderID    kernel.UUID
	TrackingID string
	Status     order.Status
	BranchID   *kernel.UUID
	OccurredAt time.Time
}

// NewEvent builds an event snapshot of the order for the given event name.
func NewEvent(name string, o *order.Order) Event {
	return Event{
		Name:       name,
		OrderID:    o.ID(),
		TrackingID: o.TrackingID().String(),
		Status:     o.Status(),
		BranchID:   o.BranchID(),
		OccurredAt: time.Now(),
	}
}

// Handler consumes a published event. Handlers run synchronously on the
// publishing goroutine; a slow handler slows the triggering request.
type Handler func(ctx context.Context, evt Event)

// Bus is a synchronous in-process event bus. Publish never propagates a
// listener failure outward: a panicking handler is recovered and logged so
// order placement and status updates succeed even when a listener
// misbehaves.
//
// Bus is safe for concurrent use.
type Bus struct {
	mu       sync.RWMutex
	handlers map[string][]Handler
	logger   *slog.Logger
}

// NewBus creates an event bus logging handler failures to the given logger.
func NewBus(logger *slog.Logger) *Bus {
	return &Bus{
		handlers: make(map[string][]Handler),
		logger:   logger.With("component", "event_bus"),
	}
}

// Subscribe registers a handler for the named event.
func (b *Bus) Subscribe(name string, h Handler) {
	if h == nil {
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[name] = append(b.handlers[name], h)
}

// Publish delivers the event to all handlers registered for its name,
// in subscription order. Handler panics are recovered and logged.
func (b *Bus) Publish(ctx context.Context, evt Event) {
	b.mu.RLock()
	handlers := append([]Handler(nil), b.handlers[evt.Name]...)
	b.mu.RUnlock()

	for _, h := range handlers {
		b.deliver(ctx, h, evt)
	}
}

func (b *Bus) deliver(ctx context.Context, h Handler, evt Event) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.ErrorContext(ctx, "event handler panicked",
				"event", evt.Name,
				"orderId", evt.OrderID.String(),
				"panic", r,
			)
		}
	}()

	h(ctx, evt)
}
