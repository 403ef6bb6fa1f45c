// Package http exposes the fulfillment core over a thin echo surface.
// Handlers translate between JSON payloads and command/query objects; all
// business rules live behind them.
package http

import (
	"errors"
	"net/http"
	"time"

	"bakery/internal/core/application/usecases/commands"
	"bakery/internal/core/application/usecases/queries"
	"bakery/internal/core/domain/model/kernel"
	"bakery/internal/core/domain/model/order"
	"bakery/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	placeOrderHandler        commands.PlaceOrderCommandHandler
	assignBranchHandler      commands.AssignBranchCommandHandler
	approveAssignmentHandler commands.ApproveAssignmentCommandHandler
	prepareOrderHandler      commands.PrepareOrderCommandHandler
	sendToCourierHandler     commands.SendToCourierCommandHandler
	updateStatusHandler      commands.UpdateStatusCommandHandler
	deleteOrderHandler       commands.DeleteOrderCommandHandler

	getOrderStatusHandler   queries.GetOrderStatusQueryHandler
	getOrderHistoryHandler  queries.GetOrderHistoryQueryHandler
	getOrderTimelineHandler queries.GetOrderTimelineQueryHandler
}

// NewServer creates an HTTP server with the required command and query
// handlers.
func NewServer(
	placeOrderHandler commands.PlaceOrderCommandHandler,
	assignBranchHandler commands.AssignBranchCommandHandler,
	approveAssignmentHandler commands.ApproveAssignmentCommandHandler,
	prepareOrderHandler commands.PrepareOrderCommandHandler,
	sendToCourierHandler commands.SendToCourierCommandHandler,
	updateStatusHandler commands.UpdateStatusCommandHandler,
	deleteOrderHandler commands.DeleteOrderCommandHandler,
	getOrderStatusHandler queries.GetOrderStatusQueryHandler,
	getOrderHistoryHandler queries.GetOrderHistoryQueryHandler,
	getOrderTimelineHandler queries.GetOrderTimelineQueryHandler,
) *Server {
	return &Server{
		placeOrderHandler:        placeOrderHandler,
		assignBranchHandler:      assignBranchHandler,
		approveAssignmentHandler: approveAssignmentHandler,
		prepareOrderHandler:      prepareOrderHandler,
		sendToCourierHandler:     sendToCourierHandler,
		updateStatusHandler:      updateStatusHandler,
		deleteOrderHandler:       deleteOrderHandler,
		getOrderStatusHandler:    getOrderStatusHandler,
		getOrderHistoryHandler:   getOrderHistoryHandler,
		getOrderTimelineHandler:  getOrderTimelineHandler,
	}
}

// RegisterRoutes attaches all order routes to the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")
	api.POST("/orders", s.PlaceOrder)
	api.POST("/orders/:id/assign-branch", s.AssignBranch)
	api.POST("/orders/:id/approve-branch", s.ApproveBranch)
	api.POST("/orders/:id/prepare", s.PrepareOrder)
	api.POST("/orders/:id/send-to-courier", s.SendToCourier)
	api.POST("/orders/:id/status", s.UpdateStatus)
	api.DELETE("/orders/:id", s.DeleteOrder)
	api.GET("/orders/:id/status", s.GetOrderStatus)
	api.GET("/orders/:id/history", s.GetOrderHistory)
	api.GET("/orders/:id/timeline", s.GetOrderTimeline)
}

type successEnvelope struct {
	Success bool `json:"success"`
	Data    any  `json:"data,omitempty"`
}

type errorEnvelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func ok(ctx echo.Context, statusCode int, data any) error {
	return ctx.JSON(statusCode, successEnvelope{Success: true, Data: data})
}

func fail(ctx echo.Context, statusCode int, message string) error {
	return ctx.JSON(statusCode, errorEnvelope{Success: false, Message: message})
}

// failFrom maps domain errors to HTTP statuses: not-found to 404, validation
// and precondition failures to 400, anything else to 500.
func failFrom(ctx echo.Context, err error) error {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return fail(ctx, http.StatusNotFound, err.Error())
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrPreconditionFailed),
		errors.Is(err, order.ErrNoItems):
		return fail(ctx, http.StatusBadRequest, err.Error())
	default:
		return fail(ctx, http.StatusInternalServerError, "internal error")
	}
}

type orderItemRequest struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unitPrice"`
	Size      string  `json:"size"`
}

type placeOrderRequest struct {
	Items         []orderItemRequest `json:"items"`
	Street        string             `json:"street"`
	City          string             `json:"city"`
	District      string             `json:"district"`
	ZoneID        string             `json:"zoneId"`
	PaymentMethod string             `json:"paymentMethod"`
	Guest         bool               `json:"guest"`
	Email         string             `json:"email"`
	Phone         string             `json:"phone"`
}

type placeOrderResponse struct {
	ID              string  `json:"id"`
	TrackingID      string  `json:"trackingId"`
	Status          string  `json:"status"`
	TotalAmount     float64 `json:"totalAmount"`
	BranchID        string  `json:"branchId,omitempty"`
	AssignmentState string  `json:"assignmentState"`
}

// PlaceOrder handles POST /api/v1/orders.
func (s *Server) PlaceOrder(ctx echo.Context) error {
	var req placeOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return fail(ctx, http.StatusBadRequest, "invalid request body")
	}

	items := make([]order.Item, 0, len(req.Items))
	for _, itemReq := range req.Items {
		productID, err := kernel.UUIDFromString(itemReq.ProductID)
		if err != nil {
			return fail(ctx, http.StatusBadRequest, "invalid product id: "+itemReq.ProductID)
		}
		items = append(items, order.Item{
			ProductID: productID,
			Name:      itemReq.Name,
			Quantity:  itemReq.Quantity,
			UnitPrice: itemReq.UnitPrice,
			Size:      itemReq.Size,
		})
	}

	var zoneID *kernel.UUID
	if req.ZoneID != "" {
		zID, err := kernel.UUIDFromString(req.ZoneID)
		if err != nil {
			return fail(ctx, http.StatusBadRequest, "invalid zone id: "+req.ZoneID)
		}
		zoneID = &zID
	}

	cmd, err := commands.NewPlaceOrderCommand(
		kernel.NewUUID(),
		items,
		req.Street, req.City, req.District,
		zoneID,
		req.PaymentMethod,
		req.Guest,
		req.Email, req.Phone,
	)
	if err != nil {
		return fail(ctx, http.StatusBadRequest, err.Error())
	}

	o, err := s.placeOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return failFrom(ctx, err)
	}

	resp := placeOrderResponse{
		ID:              o.ID().String(),
		TrackingID:      o.TrackingID().String(),
		Status:          o.Status().String(),
		TotalAmount:     o.TotalAmount(),
		AssignmentState: o.Assignment().State().String(),
	}
	if branchID := o.BranchID(); branchID != nil {
		resp.BranchID = branchID.String()
	}

	return ok(ctx, http.StatusOK, resp)
}

type assignBranchRequest struct {
	BranchID string `json:"branchId"`
	Note     string `json:"note"`
}

// AssignBranch handles POST /api/v1/orders/:id/assign-branch.
func (s *Server) AssignBranch(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return fail(ctx, http.StatusBadRequest, "invalid order id")
	}

	var req assignBranchRequest
	if err = ctx.Bind(&req); err != nil {
		return fail(ctx, http.StatusBadRequest, "invalid request body")
	}

	branchID, err := kernel.UUIDFromString(req.BranchID)
	if err != nil {
		return fail(ctx, http.StatusBadRequest, "invalid branch id")
	}

	cmd, err := commands.NewAssignBranchCommand(orderID, branchID, req.Note)
	if err != nil {
		return fail(ctx, http.StatusBadRequest, err.Error())
	}

	if err = s.assignBranchHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return failFrom(ctx, err)
	}

	return ok(ctx, http.StatusOK, nil)
}

// ApproveBranch handles POST /api/v1/orders/:id/approve-branch.
func (s *Server) ApproveBranch(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return fail(ctx, http.StatusBadRequest, "invalid order id")
	}

	cmd, err := commands.NewApproveAssignmentCommand(orderID)
	if err != nil {
		return fail(ctx, http.StatusBadRequest, err.Error())
	}

	if err = s.approveAssignmentHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return failFrom(ctx, err)
	}

	return ok(ctx, http.StatusOK, nil)
}

// PrepareOrder handles POST /api/v1/orders/:id/prepare.
func (s *Server) PrepareOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return fail(ctx, http.StatusBadRequest, "invalid order id")
	}

	cmd, err := commands.NewPrepareOrderCommand(orderID)
	if err != nil {
		return fail(ctx, http.StatusBadRequest, err.Error())
	}

	if err = s.prepareOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return failFrom(ctx, err)
	}

	return ok(ctx, http.StatusOK, nil)
}

// SendToCourier handles POST /api/v1/orders/:id/send-to-courier. A courier
// platform failure does not fail the request; the sync outcome is readable
// from the status endpoint.
func (s *Server) SendToCourier(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return fail(ctx, http.StatusBadRequest, "invalid order id")
	}

	cmd, err := commands.NewSendToCourierCommand(orderID)
	if err != nil {
		return fail(ctx, http.StatusBadRequest, err.Error())
	}

	if err = s.sendToCourierHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return failFrom(ctx, err)
	}

	return ok(ctx, http.StatusOK, nil)
}

type updateStatusRequest struct {
	Status   string `json:"status"`
	Location string `json:"location"`
	Note     string `json:"note"`
}

// UpdateStatus handles POST /api/v1/orders/:id/status.
func (s *Server) UpdateStatus(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return fail(ctx, http.StatusBadRequest, "invalid order id")
	}

	var req updateStatusRequest
	if err = ctx.Bind(&req); err != nil {
		return fail(ctx, http.StatusBadRequest, "invalid request body")
	}

	cmd, err := commands.NewUpdateStatusCommand(orderID, req.Status, req.Location, req.Note)
	if err != nil {
		return fail(ctx, http.StatusBadRequest, err.Error())
	}

	if err = s.updateStatusHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return failFrom(ctx, err)
	}

	return ok(ctx, http.StatusOK, nil)
}

// DeleteOrder handles DELETE /api/v1/orders/:id.
func (s *Server) DeleteOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return fail(ctx, http.StatusBadRequest, "invalid order id")
	}

	cmd, err := commands.NewDeleteOrderCommand(orderID)
	if err != nil {
		return fail(ctx, http.StatusBadRequest, err.Error())
	}

	if err = s.deleteOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return failFrom(ctx, err)
	}

	return ok(ctx, http.StatusOK, nil)
}

type orderStatusResponse struct {
	ID              string              `json:"id"`
	TrackingID      string              `json:"trackingId"`
	Status          string              `json:"status"`
	BranchID        string              `json:"branchId,omitempty"`
	AssignmentMode  string              `json:"assignmentMode"`
	AssignmentState string              `json:"assignmentState"`
	CourierCode     string              `json:"courierCode,omitempty"`
	SentToCourierAt string              `json:"sentToCourierAt,omitempty"`
	CourierSync     *courierSyncPayload `json:"courierSync,omitempty"`
}

type courierSyncPayload struct {
	ExternalOrderID string `json:"externalOrderId,omitempty"`
	Platform        string `json:"platform,omitempty"`
	Status          string `json:"status"`
	LastError       string `json:"lastError,omitempty"`
	Retryable       bool   `json:"retryable"`
}

// GetOrderStatus handles GET /api/v1/orders/:id/status. The path parameter
// accepts the order UUID or the customer-facing tracking ID.
func (s *Server) GetOrderStatus(ctx echo.Context) error {
	query, err := queries.NewGetOrderStatusQuery(ctx.Param("id"))
	if err != nil {
		return fail(ctx, http.StatusBadRequest, "invalid order reference")
	}

	status, err := s.getOrderStatusHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return failFrom(ctx, err)
	}

	resp := orderStatusResponse{
		ID:              status.ID.String(),
		TrackingID:      status.TrackingID,
		Status:          status.Status.String(),
		AssignmentMode:  status.AssignmentMode.String(),
		AssignmentState: status.AssignmentState.String(),
		CourierCode:     status.CourierCode,
	}
	if status.BranchID != nil {
		resp.BranchID = status.BranchID.String()
	}
	if status.SentToCourierAt != nil {
		resp.SentToCourierAt = status.SentToCourierAt.Format(time.RFC3339)
	}
	if status.CourierSync != nil {
		resp.CourierSync = &courierSyncPayload{
			ExternalOrderID: status.CourierSync.ExternalOrderID,
			Platform:        status.CourierSync.Platform,
			Status:          status.CourierSync.Status.String(),
			LastError:       status.CourierSync.LastError,
			Retryable:       status.CourierSync.Retryable,
		}
	}

	return ok(ctx, http.StatusOK, resp)
}

type historyEntryResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Location  string `json:"location,omitempty"`
	Note      string `json:"note,omitempty"`
	UpdatedBy string `json:"updatedBy"`
}

// GetOrderHistory handles GET /api/v1/orders/:id/history.
func (s *Server) GetOrderHistory(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return fail(ctx, http.StatusBadRequest, "invalid order id")
	}

	query, err := queries.NewGetOrderHistoryQuery(orderID)
	if err != nil {
		return fail(ctx, http.StatusBadRequest, err.Error())
	}

	entries, err := s.getOrderHistoryHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return failFrom(ctx, err)
	}

	resp := make([]historyEntryResponse, 0, len(entries))
	for _, entry := range entries {
		resp = append(resp, historyEntryResponse{
			Status:    entry.Status.String(),
			Timestamp: entry.Timestamp.Format(time.RFC3339),
			Location:  entry.Location,
			Note:      entry.Note,
			UpdatedBy: entry.UpdatedBy,
		})
	}

	return ok(ctx, http.StatusOK, resp)
}

type timelineResponse struct {
	TrackingID string                  `json:"trackingId"`
	Status     string                  `json:"status"`
	Entries    []timelineEntryResponse `json:"entries"`
}

type timelineEntryResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Location  string `json:"location,omitempty"`
	Note      string `json:"note,omitempty"`
}

// GetOrderTimeline handles GET /api/v1/orders/:id/timeline. The path
// parameter accepts the order UUID or the customer-facing tracking ID; the
// payload carries no operator attribution.
func (s *Server) GetOrderTimeline(ctx echo.Context) error {
	query, err := queries.NewGetOrderTimelineQuery(ctx.Param("id"))
	if err != nil {
		return fail(ctx, http.StatusBadRequest, "invalid order reference")
	}

	timeline, err := s.getOrderTimelineHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return failFrom(ctx, err)
	}

	resp := timelineResponse{
		TrackingID: timeline.TrackingID,
		Status:     timeline.Status.String(),
		Entries:    make([]timelineEntryResponse, 0, len(timeline.Entries)),
	}
	for _, entry := range timeline.Entries {
		resp.Entries = append(resp.Entries, timelineEntryResponse{
			Status:    entry.Status.String(),
			Timestamp: entry.Timestamp.Format(time.RFC3339),
			Location:  entry.Location,
			Note:      entry.Note,
		})
	}

	return ok(ctx, http.StatusOK, resp)
}
