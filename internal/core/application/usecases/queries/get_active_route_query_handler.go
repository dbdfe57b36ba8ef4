package queries

import (
	"context"

	"agenthub/internal/core/ports"
)

// GetActiveRouteQueryHandler serves the currently displayed route.
// When no route is active the underlying publisher reports
// errs.ErrObjectNotFound, which is passed through to the caller.
type GetActiveRouteQueryHandler struct {
	routes ports.RoutePublisher
}

// NewGetActiveRouteQueryHandler creates a handler for active-route queries.
func NewGetActiveRouteQueryHandler(routes ports.RoutePublisher) GetActiveRouteQueryHandler {
	return GetActiveRouteQueryHandler{routes: routes}
}

// Handle executes the query and maps the route endpoints into the read model.
func (h GetActiveRouteQueryHandler) Handle(
	ctx context.Context,
	query GetActiveRouteQuery,
) (GetActiveRouteQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetActiveRouteQueryResponse{}, err
	}

	r, err := h.routes.Current(ctx)
	if err != nil {
		return GetActiveRouteQueryResponse{}, err
	}

	return GetActiveRouteQueryResponse{
		Start: r.Start(),
		End:   r.End(),
	}, nil
}
