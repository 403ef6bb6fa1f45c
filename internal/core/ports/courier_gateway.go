package ports

import (
	"context"

	"bakery/internal/core/domain/model/order"
)

// SubmitResult is the structured outcome of submitting an order to the
// external courier platform. Failures are data, not errors: the gateway
// never propagates a platform outage as a hard failure of the triggering
// transition.
type SubmitResult struct {
	// Success reports whether the platform accepted the order.
	Success bool

	// ExternalOrderID is the platform's identifier for the accepted order.
	ExternalOrderID string

	// Platform names the courier platform submitted to.
	Platform string

	// Error holds the failure detail when Success is false.
	Error string

	// Retryable reports whether re-submitting later may succeed
	// (timeouts, platform-side errors) as opposed to permanent rejections.
	Retryable bool
}

// CourierGateway adapts an order to the external courier platform's
// submission contract.
type CourierGateway interface {
	// Initialize establishes session/auth state with the platform before
	// first use. Safe to call multiple times.
	Initialize(ctx context.Context) error

	// SubmitOrder submits the order to the platform. Network or
	// platform-side failures are converted into a failure result, never
	// returned as an error. The implementation imposes an explicit timeout;
	// timeouts are retryable failures.
	SubmitOrder(ctx context.Context, o *order.Order) SubmitResult
}
