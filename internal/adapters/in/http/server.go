package http

import (
	"errors"
	"net/http"

	"agenthub/internal/core/application/usecases/commands"
	"agenthub/internal/core/application/usecases/queries"
	"agenthub/internal/core/domain/model/kernel"
	"agenthub/internal/core/domain/model/order"
	"agenthub/internal/core/ports"
	"agenthub/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Server coordinates between the agent UI's HTTP requests and the
// application use cases.
type Server struct {
	acceptOrderHandler commands.AcceptOrderCommandHandler
	rejectOrderHandler commands.RejectOrderCommandHandler

	getAssignedOrdersHandler queries.GetAssignedOrdersQueryHandler
	getActiveRouteHandler    queries.GetActiveRouteQueryHandler

	routes ports.RoutePublisher
}

// NewServer creates an HTTP server with the required command and query handlers.
// The route publisher is needed directly for DELETE /route (closing the map view).
func NewServer(
	acceptOrderHandler commands.AcceptOrderCommandHandler,
	rejectOrderHandler commands.RejectOrderCommandHandler,
	getAssignedOrdersHandler queries.GetAssignedOrdersQueryHandler,
	getActiveRouteHandler queries.GetActiveRouteQueryHandler,
	routes ports.RoutePublisher,
) *Server {
	return &Server{
		acceptOrderHandler:       acceptOrderHandler,
		rejectOrderHandler:       rejectOrderHandler,
		getAssignedOrdersHandler: getAssignedOrdersHandler,
		getActiveRouteHandler:    getActiveRouteHandler,
		routes:                   routes,
	}
}

// RegisterRoutes mounts all endpoints on the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", s.Health)
	e.GET("/api/v1/orders", s.GetOrders)
	e.POST("/api/v1/orders/:orderId/accept", s.AcceptOrder)
	e.POST("/api/v1/orders/:orderId/reject", s.RejectOrder)
	e.GET("/api/v1/route", s.GetRoute)
	e.DELETE("/api/v1/route", s.CloseRoute)
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, HealthResponse{Status: "ok"})
}

// GetOrders handles GET /api/v1/orders - the visible order list in display order.
func (s *Server) GetOrders(ctx echo.Context) error {
	query := queries.NewGetAssignedOrdersQuery()

	orders, err := s.getAssignedOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return ctx.JSON(http.StatusInternalServerError, ErrorResponse{
			Code:    http.StatusInternalServerError,
			Message: "Failed to retrieve orders",
		})
	}

	response := make([]OrderResponse, len(orders))
	for i, o := range orders {
		response[i] = OrderResponse{
			ID:              o.ID.String(),
			CustomerName:    o.CustomerName,
			DeliveryAddress: o.DeliveryAddress,
			Destination: LocationResponse{
				Lat: o.Destination.Lat(),
				Lon: o.Destination.Lon(),
			},
			TotalAmount: o.TotalAmount,
			Status:      o.Status,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// AcceptOrder handles POST /api/v1/orders/:orderId/accept.
//
// A location failure after the backend recorded the acceptance still returns
// 200: the order is accepted, only the route is missing, and the body carries
// a notice so the UI can tell the two outcomes apart.
func (s *Server) AcceptOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderId"))
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid order id",
		})
	}

	cmd, err := commands.NewAcceptOrderCommand(orderID)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: err.Error(),
		})
	}

	err = s.acceptOrderHandler.Handle(ctx.Request().Context(), cmd)
	switch {
	case err == nil:
		return ctx.JSON(http.StatusOK, AcceptResponse{Accepted: true, RouteAvailable: true})
	case errors.Is(err, ports.ErrLocationUnavailable):
		return ctx.JSON(http.StatusOK, AcceptResponse{
			Accepted:       true,
			RouteAvailable: false,
			Notice:         "Current position unavailable, route not shown",
		})
	default:
		return s.actionError(ctx, err, "Failed to accept order")
	}
}

// RejectOrder handles POST /api/v1/orders/:orderId/reject.
func (s *Server) RejectOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderId"))
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid order id",
		})
	}

	cmd, err := commands.NewRejectOrderCommand(orderID)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: err.Error(),
		})
	}

	if err = s.rejectOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.actionError(ctx, err, "Failed to reject order")
	}
	return ctx.JSON(http.StatusOK, RejectResponse{Rejected: true})
}

// GetRoute handles GET /api/v1/route - the route on the map view.
// Responds 404 before any accept and after the view was closed.
func (s *Server) GetRoute(ctx echo.Context) error {
	query := queries.NewGetActiveRouteQuery()

	r, err := s.getActiveRouteHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return ctx.JSON(http.StatusNotFound, ErrorResponse{
				Code:    http.StatusNotFound,
				Message: "No active route",
			})
		}
		return ctx.JSON(http.StatusInternalServerError, ErrorResponse{
			Code:    http.StatusInternalServerError,
			Message: "Failed to retrieve route",
		})
	}

	return ctx.JSON(http.StatusOK, RouteResponse{
		Start: LocationResponse{Lat: r.Start.Lat(), Lon: r.Start.Lon()},
		End:   LocationResponse{Lat: r.End.Lat(), Lon: r.End.Lon()},
	})
}

// CloseRoute handles DELETE /api/v1/route - the agent closed the map view.
func (s *Server) CloseRoute(ctx echo.Context) error {
	if err := s.routes.Clear(ctx.Request().Context()); err != nil {
		return ctx.JSON(http.StatusInternalServerError, ErrorResponse{
			Code:    http.StatusInternalServerError,
			Message: "Failed to close route",
		})
	}
	return ctx.NoContent(http.StatusNoContent)
}

// actionError maps accept/reject failures onto response codes: conflicts for
// duplicate or terminal actions, 404 for unknown orders, 502 for collaborator
// failures. The order's prior status is unchanged in every case.
func (s *Server) actionError(ctx echo.Context, err error, fallback string) error {
	switch {
	case errors.Is(err, commands.ErrActionInFlight), errors.Is(err, order.ErrStatusIsFinal):
		return ctx.JSON(http.StatusConflict, ErrorResponse{
			Code:    http.StatusConflict,
			Message: err.Error(),
		})
	case errors.Is(err, errs.ErrObjectNotFound):
		return ctx.JSON(http.StatusNotFound, ErrorResponse{
			Code:    http.StatusNotFound,
			Message: "Order not found",
		})
	case errors.Is(err, ports.ErrNetworkFailure), errors.Is(err, ports.ErrBackendRejected):
		return ctx.JSON(http.StatusBadGateway, ErrorResponse{
			Code:    http.StatusBadGateway,
			Message: err.Error(),
		})
	default:
		return ctx.JSON(http.StatusInternalServerError, ErrorResponse{
			Code:    http.StatusInternalServerError,
			Message: fallback,
		})
	}
}
