// Package http contains the inbound REST adapter. It translates echo
// requests into commands and queries and maps application errors onto
// the fixed response contract.
package http

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"shipping/internal/core/application/usecases/commands"
	"shipping/internal/core/application/usecases/queries"
	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/order"
	"shipping/internal/pkg/errs"
)

// OutsideWindowMessage is the exact error body returned when an order
// operation is attempted outside the pickup window. API consumers match
// on this string.
const OutsideWindowMessage = "You can only pick up a product from 8:00 am to 18:00 pm."

// ErrorResponse is the uniform error body of the API.
type ErrorResponse struct {
	Error string `json:"error"`
}

// CreateOrderRequest is the body of POST /orders.
type CreateOrderRequest struct {
	Product       string  `json:"product"`
	RecipientID   string  `json:"recipient_id"`
	DeliverymanID string  `json:"deliveryman_id"`
	SignatureID   *string `json:"signature_id"`
}

// UpdateOrderRequest is the body of PUT /orders/:id. Every field is
// optional; absent fields leave the order untouched.
type UpdateOrderRequest struct {
	Product       *string    `json:"product"`
	RecipientID   *string    `json:"recipient_id"`
	DeliverymanID *string    `json:"deliveryman_id"`
	SignatureID   *string    `json:"signature_id"`
	StartDate     *time.Time `json:"start_date"`
	EndDate       *time.Time `json:"end_date"`
}

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	createOrderHandler CreateOrderHandler
	updateOrderHandler UpdateOrderHandler
	cancelOrderHandler CancelOrderHandler
	listOrdersHandler  ListOrdersHandler
	getOrderHandler    GetOrderHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	createOrderHandler CreateOrderHandler,
	updateOrderHandler UpdateOrderHandler,
	cancelOrderHandler CancelOrderHandler,
	listOrdersHandler ListOrdersHandler,
	getOrderHandler GetOrderHandler,
) *Server {
	return &Server{
		createOrderHandler: createOrderHandler,
		updateOrderHandler: updateOrderHandler,
		cancelOrderHandler: cancelOrderHandler,
		listOrdersHandler:  listOrdersHandler,
		getOrderHandler:    getOrderHandler,
	}
}

// RegisterRoutes attaches the order routes to the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/orders", s.ListOrders)
	e.POST("/orders", s.CreateOrder)
	e.GET("/orders/:id", s.GetOrder)
	e.PUT("/orders/:id", s.UpdateOrder)
	e.DELETE("/orders/:id", s.CancelOrder)
}

// ListOrders handles GET /orders - retrieves active orders, paginated.
// Absent or malformed page/per_page values fall back to the defaults.
func (s *Server) ListOrders(ctx echo.Context) error {
	page := queryParamInt(ctx, "page")
	perPage := queryParamInt(ctx, "per_page")

	query := queries.NewListOrdersQuery(page, perPage)

	views, err := s.listOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, views)
}

// GetOrder handles GET /orders/:id - retrieves one order with its
// related entities.
func (s *Server) GetOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid order id"})
	}

	query, err := queries.NewGetOrderQuery(orderID)
	if err != nil {
		return writeError(ctx, err)
	}

	view, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, view)
}

// CreateOrder handles POST /orders - registers a new order and returns
// its full view.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var request CreateOrderRequest
	if err := ctx.Bind(&request); err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
	}

	recipientID, err := kernel.UUIDFromString(request.RecipientID)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid recipient_id"})
	}

	deliverymanID, err := kernel.UUIDFromString(request.DeliverymanID)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid deliveryman_id"})
	}

	signatureID, err := optionalUUID(request.SignatureID)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid signature_id"})
	}

	cmd, err := commands.NewCreateOrderCommand(
		kernel.NewUUID(), recipientID, deliverymanID, signatureID, request.Product,
	)
	if err != nil {
		return writeError(ctx, err)
	}

	view, err := s.createOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, view)
}

// UpdateOrder handles PUT /orders/:id - applies a partial patch and
// returns the updated view.
func (s *Server) UpdateOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid order id"})
	}

	var request UpdateOrderRequest
	if err := ctx.Bind(&request); err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
	}

	recipientID, err := optionalUUID(request.RecipientID)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid recipient_id"})
	}

	deliverymanID, err := optionalUUID(request.DeliverymanID)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid deliveryman_id"})
	}

	signatureID, err := optionalUUID(request.SignatureID)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid signature_id"})
	}

	cmd, err := commands.NewUpdateOrderCommand(
		orderID, request.Product, recipientID, deliverymanID, signatureID,
		request.StartDate, request.EndDate,
	)
	if err != nil {
		return writeError(ctx, err)
	}

	view, err := s.updateOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, view)
}

// CancelOrder handles DELETE /orders/:id - soft-cancels the order and
// returns the view carrying the cancellation timestamp.
func (s *Server) CancelOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid order id"})
	}

	cmd, err := commands.NewCancelOrderCommand(orderID)
	if err != nil {
		return writeError(ctx, err)
	}

	view, err := s.cancelOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, view)
}

// writeError maps application errors onto the response contract.
func writeError(ctx echo.Context, err error) error {
	switch {
	case errors.Is(err, commands.ErrOutsideOperatingWindow):
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{Error: OutsideWindowMessage})
	case errors.Is(err, errs.ErrObjectNotFound):
		return ctx.JSON(http.StatusNotFound, ErrorResponse{Error: "Order not found"})
	case errors.Is(err, order.ErrOrderIsCanceled):
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{Error: "Order is already canceled"})
	case errors.Is(err, errs.ErrValueIsRequired), errors.Is(err, errs.ErrValueIsInvalid):
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	default:
		return ctx.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Internal server error"})
	}
}

func queryParamInt(ctx echo.Context, name string) int {
	value, err := strconv.Atoi(ctx.QueryParam(name))
	if err != nil {
		return 0
	}
	return value
}

func optionalUUID(raw *string) (*kernel.UUID, error) {
	if raw == nil {
		return nil, nil
	}
	id, err := kernel.UUIDFromString(*raw)
	if err != nil {
		return nil, err
	}
	return &id, nil
}
