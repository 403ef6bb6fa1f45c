// Package courier provides the HTTP client for the external courier
// platform. The client translates submission failures into structured
// results rather than errors: the fulfillment state machine is the source
// of truth and a platform outage must never look like a local failure.
package courier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"bakery/internal/core/domain/model/order"
	"bakery/internal/core/ports"
)

const defaultTimeout = 10 * time.Second

// Config holds the courier platform connection settings.
type Config struct {
	// BaseURL is the platform API root, e.g. "https://api.courier.example".
	BaseURL string

	// APIKey authenticates the session handshake.
	APIKey string

	// Platform names the courier platform in sync records.
	Platform string

	// Timeout bounds each HTTP call. Zero means the default of 10s.
	Timeout time.Duration
}

// Gateway is the HTTP implementation of ports.CourierGateway.
//
// Initialize performs a session handshake once; subsequent calls reuse the
// token. Gateway is safe for concurrent use.
type Gateway struct {
	config Config
	client *http.Client
	logger *slog.Logger

	mu    sync.Mutex
	token string
}

// NewGateway creates a courier gateway with the given configuration.
func NewGateway(config Config, logger *slog.Logger) *Gateway {
	timeout := config.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &Gateway{
		config: config,
		client: &http.Client{Timeout: timeout},
		logger: logger.With("component", "courier_gateway"),
	}
}

type sessionRequest struct {
	APIKey string `json:"apiKey"`
}

type sessionResponse struct {
	Token string `json:"token"`
}

// Initialize establishes the platform session. Calling it again with a live
// session is a no-op.
func (g *Gateway) Initialize(ctx context.Context) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.token != "" {
		return nil
	}

	body, err := json.Marshal(sessionRequest{APIKey: g.config.APIKey})
	if err != nil {
		return fmt.Errorf("encode session request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		g.config.BaseURL+"/v1/sessions", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build session request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return fmt.Errorf("courier session handshake: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return fmt.Errorf("courier session handshake: unexpected status %d", resp.StatusCode)
	}

	var session sessionResponse
	if err := json.NewDecoder(resp.Body).Decode(&session); err != nil {
		return fmt.Errorf("decode session response: %w", err)
	}
	if session.Token == "" {
		return fmt.Errorf("courier session handshake: empty token")
	}

	g.token = session.Token
	return nil
}

type submitItem struct {
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unitPrice"`
	Size      string  `json:"size,omitempty"`
}

type submitRequest struct {
	Reference     string       `json:"reference"`
	TrackingID    string       `json:"trackingId"`
	CourierCode   string       `json:"courierCode"`
	Street        string       `json:"street"`
	City          string       `json:"city"`
	District      string       `json:"district,omitempty"`
	PaymentMethod string       `json:"paymentMethod"`
	TotalAmount   float64      `json:"totalAmount"`
	Items         []submitItem `json:"items"`
}

type submitResponse struct {
	OrderID string `json:"orderId"`
	Message string `json:"message"`
}

// SubmitOrder submits the order to the platform. Network failures, 429 and
// platform-side errors are retryable; other rejections are permanent.
func (g *Gateway) SubmitOrder(ctx context.Context, o *order.Order) ports.SubmitResult {
	g.mu.Lock()
	token := g.token
	g.mu.Unlock()

	if token == "" {
		return g.failure("courier session is not initialized", true)
	}

	payload := submitRequest{
		Reference:     o.ID().String(),
		TrackingID:    o.TrackingID().String(),
		CourierCode:   o.CourierCode(),
		Street:        o.Address().Street(),
		City:          o.Address().City(),
		District:      o.Address().District(),
		PaymentMethod: o.PaymentMethod().String(),
		TotalAmount:   o.TotalAmount(),
	}
	for _, item := range o.Items() {
		payload.Items = append(payload.Items, submitItem{
			Name:      item.Name,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			Size:      item.Size,
		})
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return g.failure(fmt.Sprintf("encode order: %v", err), false)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		g.config.BaseURL+"/v1/orders", bytes.NewReader(body))
	if err != nil {
		return g.failure(fmt.Sprintf("build request: %v", err), false)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := g.client.Do(req)
	if err != nil {
		// covers timeouts and connection failures
		return g.failure(fmt.Sprintf("submit order: %v", err), true)
	}
	defer resp.Body.Close()

	return g.classify(resp)
}

func (g *Gateway) classify(resp *http.Response) ports.SubmitResult {
	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if err != nil {
		return g.failure(fmt.Sprintf("read response: %v", err), true)
	}

	var decoded submitResponse
	_ = json.Unmarshal(raw, &decoded)

	switch {
	case resp.StatusCode == http.StatusOK || resp.StatusCode == http.StatusCreated:
		return ports.SubmitResult{
			Success:         true,
			ExternalOrderID: decoded.OrderID,
			Platform:        g.config.Platform,
		}

	case resp.StatusCode == http.StatusUnauthorized:
		// session expired; drop the token so the next Initialize renews it
		g.mu.Lock()
		g.token = ""
		g.mu.Unlock()
		return g.failure("courier session expired", true)

	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
		return g.failure(g.detail(resp.StatusCode, decoded.Message), true)

	default:
		return g.failure(g.detail(resp.StatusCode, decoded.Message), false)
	}
}

func (g *Gateway) detail(statusCode int, message string) string {
	if message == "" {
		return fmt.Sprintf("courier platform returned status %d", statusCode)
	}
	return fmt.Sprintf("courier platform returned status %d: %s", statusCode, message)
}

func (g *Gateway) failure(detail string, retryable bool) ports.SubmitResult {
	return ports.SubmitResult{
		Platform:  g.config.Platform,
		Error:     detail,
		Retryable: retryable,
	}
}
