// Package http exposes the order lifecycle over an echo HTTP API. The
// adapter is thin: it parses requests, resolves the acting user from
// headers, delegates to command and query handlers, and maps the error
// taxonomy to status codes. No business rule lives here.
package http

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"foodcourt/internal/core/application/usecases/commands"
	"foodcourt/internal/core/application/usecases/queries"
	"foodcourt/internal/core/domain/model/kernel"
	"foodcourt/internal/core/domain/model/order"
	"foodcourt/internal/core/domain/services"
	"foodcourt/internal/pkg/errs"
)

// Actor identity headers. Authentication itself is out of scope; an upstream
// gateway is expected to set these after verifying credentials.
const (
	HeaderUserID   = "X-User-Id"
	HeaderUserRole = "X-User-Role"
)

// RequestValidator adapts go-playground/validator to echo's Validator
// interface so handlers can call ctx.Validate on bound request bodies.
type RequestValidator struct {
	validate *validator.Validate
}

// NewRequestValidator creates a validator for request body structs.
func NewRequestValidator() *RequestValidator {
	return &RequestValidator{validate: validator.New()}
}

// Validate checks the struct's validate tags.
func (v *RequestValidator) Validate(i interface{}) error {
	return v.validate.Struct(i)
}

// Server coordinates between HTTP requests and the application use cases.
type Server struct {
	createOrderHandler  commands.CreateOrderCommandHandler
	updateStatusHandler commands.UpdateOrderStatusCommandHandler

	getOrderHandler   queries.GetOrderQueryHandler
	listOrdersHandler queries.ListOrdersQueryHandler
}

// NewServer creates an HTTP server with the required command and query handlers.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	updateStatusHandler commands.UpdateOrderStatusCommandHandler,
	getOrderHandler queries.GetOrderQueryHandler,
	listOrdersHandler queries.ListOrdersQueryHandler,
) *Server {
	return &Server{
		createOrderHandler:  createOrderHandler,
		updateStatusHandler: updateStatusHandler,
		getOrderHandler:     getOrderHandler,
		listOrdersHandler:   listOrdersHandler,
	}
}

// RegisterRoutes attaches all order endpoints and the health check to e.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.Validator = NewRequestValidator()

	e.GET("/health", s.Health)

	v1 := e.Group("/api/v1")
	v1.POST("/orders", s.CreateOrder)
	v1.GET("/orders", s.ListOrders)
	v1.GET("/orders/:orderId", s.GetOrder)
	v1.PATCH("/orders/:orderId/status", s.UpdateOrderStatus)
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Healthy")
}

// CreateOrder handles POST /api/v1/orders - places a new order for the
// acting customer and returns its full projection.
func (s *Server) CreateOrder(ctx echo.Context) error {
	actor, err := s.actorFromRequest(ctx)
	if err != nil {
		return s.writeError(ctx, err)
	}

	var req CreateOrderRequest
	if err = ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}
	if err = ctx.Validate(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid order data: " + err.Error(),
		})
	}

	cmd, err := s.buildCreateOrderCommand(actor, req)
	if err != nil {
		return s.writeError(ctx, err)
	}

	orderID, err := s.createOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.writeError(ctx, err)
	}

	return s.respondWithProjection(ctx, http.StatusCreated, orderID, actor)
}

// GetOrder handles GET /api/v1/orders/:orderId - returns one order's
// projection when the actor may view it.
func (s *Server) GetOrder(ctx echo.Context) error {
	actor, err := s.actorFromRequest(ctx)
	if err != nil {
		return s.writeError(ctx, err)
	}

	orderID, err := kernel.UUIDFromString(ctx.Param("orderId"))
	if err != nil {
		return s.writeError(ctx, err)
	}

	return s.respondWithProjection(ctx, http.StatusOK, orderID, actor)
}

// ListOrders handles GET /api/v1/orders - returns the summaries visible to
// the acting user, newest first.
func (s *Server) ListOrders(ctx echo.Context) error {
	actor, err := s.actorFromRequest(ctx)
	if err != nil {
		return s.writeError(ctx, err)
	}

	query, err := queries.NewListOrdersQuery(actor)
	if err != nil {
		return s.writeError(ctx, err)
	}

	summaries, err := s.listOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.writeError(ctx, err)
	}

	response := make([]OrderSummary, 0, len(summaries))
	for _, summary := range summaries {
		response = append(response, orderSummaryFromProjection(summary))
	}

	return ctx.JSON(http.StatusOK, response)
}

// UpdateOrderStatus handles PATCH /api/v1/orders/:orderId/status - moves the
// order to the requested status and returns the refreshed projection.
func (s *Server) UpdateOrderStatus(ctx echo.Context) error {
	actor, err := s.actorFromRequest(ctx)
	if err != nil {
		return s.writeError(ctx, err)
	}

	orderID, err := kernel.UUIDFromString(ctx.Param("orderId"))
	if err != nil {
		return s.writeError(ctx, err)
	}

	var req UpdateOrderStatusRequest
	if err = ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}
	if err = ctx.Validate(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid status data: " + err.Error(),
		})
	}

	target, err := order.ParseStatus(req.Status)
	if err != nil {
		return s.writeError(ctx, err)
	}

	cmd, err := commands.NewUpdateOrderStatusCommand(orderID, actor, target, req.Comment)
	if err != nil {
		return s.writeError(ctx, err)
	}

	if err = s.updateStatusHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.writeError(ctx, err)
	}

	return s.respondWithProjection(ctx, http.StatusOK, orderID, actor)
}

func (s *Server) buildCreateOrderCommand(
	actor services.Actor, req CreateOrderRequest,
) (commands.CreateOrderCommand, error) {
	storeID, err := kernel.UUIDFromString(req.StoreID)
	if err != nil {
		return commands.CreateOrderCommand{}, err
	}

	var cardID *kernel.UUID
	if req.CardID != nil {
		id, cardErr := kernel.UUIDFromString(*req.CardID)
		if cardErr != nil {
			return commands.CreateOrderCommand{}, cardErr
		}
		cardID = &id
	}

	lines := make([]commands.OrderLine, 0, len(req.Items))
	for _, item := range req.Items {
		productID, itemErr := kernel.UUIDFromString(item.ProductID)
		if itemErr != nil {
			return commands.CreateOrderCommand{}, itemErr
		}

		line, itemErr := commands.NewOrderLine(productID, item.Quantity)
		if itemErr != nil {
			return commands.CreateOrderCommand{}, itemErr
		}
		lines = append(lines, line)
	}

	return commands.NewCreateOrderCommand(
		actor.ID, storeID, lines, cardID, req.Address, req.Notes,
	)
}

// respondWithProjection reloads the order through the query side and writes
// it with the given status code. Commands return only the aggregate ID; the
// response body always comes from the projection.
func (s *Server) respondWithProjection(
	ctx echo.Context, code int, orderID kernel.UUID, actor services.Actor,
) error {
	query, err := queries.NewGetOrderQuery(orderID, actor)
	if err != nil {
		return s.writeError(ctx, err)
	}

	projection, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.writeError(ctx, err)
	}

	return ctx.JSON(code, orderResponseFromProjection(projection))
}

func (s *Server) actorFromRequest(ctx echo.Context) (services.Actor, error) {
	userID, err := kernel.UUIDFromString(ctx.Request().Header.Get(HeaderUserID))
	if err != nil {
		return services.Actor{}, err
	}

	role, err := services.ParseRole(ctx.Request().Header.Get(HeaderUserRole))
	if err != nil {
		return services.Actor{}, err
	}

	return services.NewActor(userID, role)
}

// writeError maps the error taxonomy to HTTP status codes: validation 400,
// not found 404, forbidden 403, invalid transition 400, storage conflict 409.
func (s *Server) writeError(ctx echo.Context, err error) error {
	code := http.StatusBadRequest

	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		code = http.StatusNotFound
	case errors.Is(err, errs.ErrForbidden):
		code = http.StatusForbidden
	case errors.Is(err, errs.ErrStorageConflict):
		code = http.StatusConflict
	}

	return ctx.JSON(code, ErrorResponse{
		Code:    code,
		Message: err.Error(),
	})
}
