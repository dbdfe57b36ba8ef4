package amqp

import (
	"fmt"
	"log/slog"
	"sync"

	"agenthub/internal/core/domain/model/order"
	"agenthub/internal/core/ports"
	"agenthub/internal/pkg/errs"

	"github.com/google/uuid"
	amqp091 "github.com/rabbitmq/amqp091-go"
)

// wire is the subset of *amqp091.Channel the adapter uses. Narrowing the
// surface lets tests inject a fake broker.
type wire interface {
	ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp091.Table) error
	QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, args amqp091.Table) (amqp091.Queue, error)
	QueueBind(name, key, exchange string, noWait bool, args amqp091.Table) error
	Consume(queue, consumer string, autoAck, exclusive, noLocal, noWait bool, args amqp091.Table) (<-chan amqp091.Delivery, error)
	Cancel(consumer string, noWait bool) error
}

// subscription is one topic binding, live or parked.
type subscription struct {
	handle  ports.SubscriptionHandle
	handler ports.MessageHandler

	mu       sync.Mutex
	bound    bool
	tornDown bool
}

// tearDown marks the subscription dead. It takes the same lock invoke holds
// across a handler call, so it returns only once any in-flight invocation has
// drained: after tearDown no handler can be mutating state.
func (s *subscription) tearDown() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tornDown = true
}

func (s *subscription) isTornDown() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tornDown
}

// invoke runs the handler for one delivery unless the subscription was torn
// down. The lock is held across the handler call; see tearDown.
func (s *subscription) invoke(o *order.Order) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.tornDown {
		return
	}
	s.handler(o)
}

// Channel implements ports.NotificationChannel on a RabbitMQ topic exchange.
//
// The adapter tolerates starting disconnected: Subscribe parks the intent
// with a logged warning and Connect completes every parked binding, so a
// broker outage at boot never silently loses future order notifications.
// Calling Connect again after a connection loss rebinds all live
// subscriptions on the fresh channel.
type Channel struct {
	exchange string
	logger   *slog.Logger

	mu     sync.Mutex
	w      wire
	subs   map[uuid.UUID]*subscription
	closed bool
}

// NewChannel creates a (not yet connected) notification channel for the given
// topic exchange.
func NewChannel(exchange string, logger *slog.Logger) (*Channel, error) {
	if exchange == "" {
		return nil, errs.NewValueIsRequiredError("exchange")
	}
	if logger == nil {
		return nil, errs.NewValueIsRequiredError("logger")
	}

	return &Channel{
		exchange: exchange,
		logger:   logger.With("component", "notification-channel"),
		subs:     make(map[uuid.UUID]*subscription),
	}, nil
}

// Connect attaches the channel to a live broker channel: the exchange is
// declared and every parked or previously bound subscription is (re)bound.
func (c *Channel) Connect(w wire) error {
	if w == nil {
		return errs.NewValueIsRequiredError("wire")
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return ports.ErrChannelDisconnected
	}

	if err := w.ExchangeDeclare(c.exchange, "topic", true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare exchange %s: %w", c.exchange, err)
	}
	c.w = w

	for _, sub := range c.subs {
		if sub.isTornDown() {
			continue
		}
		if err := c.bind(sub); err != nil {
			return err
		}
	}
	return nil
}

// Subscribe registers handler for messages addressed to topic. When the
// transport is disconnected the intent is parked and completes on Connect;
// the returned handle is valid either way.
func (c *Channel) Subscribe(topic string, handler ports.MessageHandler) (ports.SubscriptionHandle, error) {
	if topic == "" {
		return ports.SubscriptionHandle{}, errs.NewValueIsRequiredError("topic")
	}
	if handler == nil {
		return ports.SubscriptionHandle{}, errs.NewValueIsRequiredError("handler")
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return ports.SubscriptionHandle{}, ports.ErrChannelDisconnected
	}

	sub := &subscription{
		handle:  ports.SubscriptionHandle{ID: uuid.New(), Topic: topic},
		handler: handler,
	}
	c.subs[sub.handle.ID] = sub

	if c.w == nil {
		c.logger.Warn("transport disconnected, subscription parked until reconnect", "topic", topic)
		return sub.handle, nil
	}

	if err := c.bind(sub); err != nil {
		delete(c.subs, sub.handle.ID)
		return ports.SubscriptionHandle{}, err
	}
	return sub.handle, nil
}

// Unsubscribe stops delivery for the handle immediately. Deliveries already
// in flight when teardown happens are dropped, not queued. Safe to call more
// than once and on a disconnected or closed channel.
func (c *Channel) Unsubscribe(handle ports.SubscriptionHandle) {
	c.mu.Lock()
	defer c.mu.Unlock()

	sub, known := c.subs[handle.ID]
	if !known {
		return
	}
	delete(c.subs, handle.ID)
	sub.tearDown()

	if c.w != nil && sub.bound {
		if err := c.w.Cancel(handle.ID.String(), false); err != nil {
			c.logger.Warn("cancel consumer failed", "topic", handle.Topic, "error", err)
		}
	}
}

// Close tears down every subscription and refuses further use.
func (c *Channel) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.closed = true
	for id, sub := range c.subs {
		sub.tearDown()
		if c.w != nil && sub.bound {
			if err := c.w.Cancel(id.String(), false); err != nil {
				c.logger.Warn("cancel consumer failed", "topic", sub.handle.Topic, "error", err)
			}
		}
	}
	c.subs = make(map[uuid.UUID]*subscription)
	c.w = nil
}

// bind declares an exclusive queue for the subscription, binds it to the
// topic and starts the dispatch loop. Caller holds c.mu.
func (c *Channel) bind(sub *subscription) error {
	queue, err := c.w.QueueDeclare("", false, true, true, false, nil)
	if err != nil {
		return fmt.Errorf("declare queue for %s: %w", sub.handle.Topic, err)
	}
	if err = c.w.QueueBind(queue.Name, sub.handle.Topic, c.exchange, false, nil); err != nil {
		return fmt.Errorf("bind %s to %s: %w", queue.Name, sub.handle.Topic, err)
	}

	deliveries, err := c.w.Consume(queue.Name, sub.handle.ID.String(), true, true, false, false, nil)
	if err != nil {
		return fmt.Errorf("consume %s: %w", queue.Name, err)
	}

	sub.mu.Lock()
	sub.bound = true
	sub.mu.Unlock()

	go c.dispatch(sub, deliveries)
	return nil
}

// dispatch feeds broker deliveries to the handler in transport order until
// the delivery channel closes or the subscription is torn down.
func (c *Channel) dispatch(sub *subscription, deliveries <-chan amqp091.Delivery) {
	for delivery := range deliveries {
		if sub.isTornDown() {
			return
		}

		o, err := parseOrder(delivery.Body)
		if err != nil {
			c.logger.Warn("dropping malformed push message", "topic", sub.handle.Topic, "error", err)
			continue
		}
		sub.invoke(o)
	}
}
