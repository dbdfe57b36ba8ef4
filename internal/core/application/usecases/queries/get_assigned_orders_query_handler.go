package queries

import (
	"context"

	"agenthub/internal/core/ports"
)

// GetAssignedOrdersQueryHandler serves the visible order list from the
// session store. The store hands out copies, so responses are stable even
// while mutations are applied concurrently.
type GetAssignedOrdersQueryHandler struct {
	store ports.OrderStore
}

// NewGetAssignedOrdersQueryHandler creates a handler for visible-order queries.
func NewGetAssignedOrdersQueryHandler(store ports.OrderStore) GetAssignedOrdersQueryHandler {
	return GetAssignedOrdersQueryHandler{store: store}
}

// Handle executes the query and maps the orders into the read model,
// preserving display order.
func (h GetAssignedOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetAssignedOrdersQuery,
) ([]GetAssignedOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	orders, err := h.store.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	response := make([]GetAssignedOrdersQueryResponse, 0, len(orders))
	for _, o := range orders {
		response = append(response, GetAssignedOrdersQueryResponse{
			ID:              o.ID(),
			CustomerName:    o.CustomerName(),
			DeliveryAddress: o.DeliveryAddress(),
			Destination:     o.Destination(),
			TotalAmount:     o.TotalAmount(),
			Status:          o.Status().String(),
		})
	}

	return response, nil
}
