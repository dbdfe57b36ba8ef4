// Package amqp implements the NotificationChannel port on a RabbitMQ topic
// exchange. Each agent subscribes to its own routing key; the broker pushes
// order assignments the moment the backend dispatches them.
package amqp

import (
	"encoding/json"

	"agenthub/internal/core/domain/model/kernel"
	"agenthub/internal/core/domain/model/order"
)

// pushDTO is the shape of one pushed order assignment. Push payloads always
// describe orders the agent has not acted on yet, so there is no status field.
type pushDTO struct {
	OrderID         string  `json:"orderId"`
	CustomerName    string  `json:"customerName"`
	DeliveryAddress string  `json:"deliveryAddress"`
	CustomerLat     float64 `json:"customerLat"`
	CustomerLon     float64 `json:"customerLon"`
	TotalAmount     float64 `json:"totalAmount"`
}

// parseOrder converts a push payload to an order aggregate in Assigned status.
func parseOrder(body []byte) (*order.Order, error) {
	var dto pushDTO
	if err := json.Unmarshal(body, &dto); err != nil {
		return nil, err
	}

	id, err := kernel.UUIDFromString(dto.OrderID)
	if err != nil {
		return nil, err
	}

	destination, err := kernel.NewLocation(dto.CustomerLat, dto.CustomerLon)
	if err != nil {
		return nil, err
	}

	return order.NewOrder(id, dto.CustomerName, dto.DeliveryAddress, destination, dto.TotalAmount)
}
