// Package backendhttp implements the AgentBackend port against the delivery
// backend's REST surface. Responses arrive wrapped in a status envelope; a
// completed call whose envelope says anything but "success" is a backend
// refusal, while a call that never completed is a network failure.
package backendhttp

import (
	"agenthub/internal/core/domain/model/kernel"
	"agenthub/internal/core/domain/model/order"
)

// envelope is the backend's uniform response wrapper.
type envelope struct {
	Status string `json:"status"`
}

// historyEnvelope wraps the snapshot payload.
type historyEnvelope struct {
	Status string     `json:"status"`
	Data   []OrderDTO `json:"data"`
}

// OrderDTO represents one order as the backend serializes it. The status
// field may be empty for orders the agent has not acted on yet.
type OrderDTO struct {
	OrderID         string  `json:"orderId"`
	CustomerName    string  `json:"customerName"`
	DeliveryAddress string  `json:"deliveryAddress"`
	CustomerLat     float64 `json:"customerLat"`
	CustomerLon     float64 `json:"customerLon"`
	TotalAmount     float64 `json:"totalAmount"`
	Status          string  `json:"status"`
}

// toDomain converts a wire DTO to an order aggregate.
// An empty status is restored as Assigned.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromString(dto.OrderID)
	if err != nil {
		return nil, err
	}

	destination, err := kernel.NewLocation(dto.CustomerLat, dto.CustomerLon)
	if err != nil {
		return nil, err
	}

	status, err := order.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(id, dto.CustomerName, dto.DeliveryAddress, destination, dto.TotalAmount, status)
}
