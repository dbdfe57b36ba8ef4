// Package redispub fans domain events out on Redis pub/sub so UI-layer
// consumers can react to session activity without touching the channel
// plumbing that produced it. The process publishes on a per-agent channel;
// subscribers that are absent simply miss events, matching pub/sub semantics.
package redispub

import (
	"context"
	"encoding/json"
	"fmt"

	"agenthub/internal/core/domain/events"
	"agenthub/internal/core/domain/model/session"
	"agenthub/internal/pkg/errs"

	"github.com/redis/go-redis/v9"
)

// message is the wire shape of one published event.
type message struct {
	Event   string `json:"event"`
	Payload any    `json:"payload"`
}

// orderPayload carries the full order for assignment events.
type orderPayload struct {
	OrderID         string  `json:"orderId"`
	CustomerName    string  `json:"customerName"`
	DeliveryAddress string  `json:"deliveryAddress"`
	CustomerLat     float64 `json:"customerLat"`
	CustomerLon     float64 `json:"customerLon"`
	TotalAmount     float64 `json:"totalAmount"`
	Status          string  `json:"status"`
}

// orderRefPayload carries only an order reference.
type orderRefPayload struct {
	OrderID string `json:"orderId"`
}

// routePayload carries the two endpoints of a published route.
type routePayload struct {
	OrderID  string  `json:"orderId"`
	StartLat float64 `json:"startLat"`
	StartLon float64 `json:"startLon"`
	EndLat   float64 `json:"endLat"`
	EndLon   float64 `json:"endLon"`
}

// Publisher implements ports.EventPublisher on a Redis pub/sub channel named
// after the agent, "agent.<agentId>.events".
type Publisher struct {
	client  *redis.Client
	channel string
}

// NewPublisher creates a publisher for the given session's event channel.
func NewPublisher(client *redis.Client, sess session.Session) (*Publisher, error) {
	if client == nil {
		return nil, errs.NewValueIsRequiredError("client")
	}
	if err := sess.Validate(); err != nil {
		return nil, err
	}

	return &Publisher{
		client:  client,
		channel: fmt.Sprintf("agent.%s.events", sess.AgentID()),
	}, nil
}

// Channel returns the pub/sub channel name events are published on.
func (p *Publisher) Channel() string {
	return p.channel
}

// Publish serializes the event and fans it out on the agent's channel.
func (p *Publisher) Publish(ctx context.Context, event events.Event) error {
	payload, err := toPayload(event)
	if err != nil {
		return err
	}

	body, err := json.Marshal(message{Event: event.Name(), Payload: payload})
	if err != nil {
		return err
	}

	if err = p.client.Publish(ctx, p.channel, body).Err(); err != nil {
		return fmt.Errorf("publish %s on %s: %w", event.Name(), p.channel, err)
	}
	return nil
}

func toPayload(event events.Event) (any, error) {
	switch e := event.(type) {
	case events.OrderAssigned:
		o := e.Order
		if err := o.Validate(); err != nil {
			return nil, err
		}
		return orderPayload{
			OrderID:         o.ID().String(),
			CustomerName:    o.CustomerName(),
			DeliveryAddress: o.DeliveryAddress(),
			CustomerLat:     o.Destination().Lat(),
			CustomerLon:     o.Destination().Lon(),
			TotalAmount:     o.TotalAmount(),
			Status:          o.Status().String(),
		}, nil
	case events.OrderAccepted:
		return orderRefPayload{OrderID: e.OrderID.String()}, nil
	case events.OrderRejected:
		return orderRefPayload{OrderID: e.OrderID.String()}, nil
	case events.LocationUnavailable:
		return orderRefPayload{OrderID: e.OrderID.String()}, nil
	case events.RoutePublished:
		return routePayload{
			OrderID:  e.OrderID.String(),
			StartLat: e.Route.Start().Lat(),
			StartLon: e.Route.Start().Lon(),
			EndLat:   e.Route.End().Lat(),
			EndLon:   e.Route.End().Lon(),
		}, nil
	default:
		return nil, errs.NewValueIsInvalidError("event")
	}
}
