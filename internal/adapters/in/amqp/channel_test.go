package amqp

import (
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"agenthub/internal/core/domain/model/kernel"
	"agenthub/internal/core/domain/model/order"
	"agenthub/internal/core/ports"

	amqp091 "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeWire simulates a broker channel: one delivery stream per queue, with
// bindings from routing keys to queues.
type fakeWire struct {
	mu         sync.Mutex
	exchanges  map[string]string
	queues     map[string]chan amqp091.Delivery
	bindings   map[string]string // routing key -> queue name
	consumers  map[string]string // consumer tag -> queue name
	queueSeq   int
	cancelFunc func(consumer string)
}

func newFakeWire() *fakeWire {
	return &fakeWire{
		exchanges: make(map[string]string),
		queues:    make(map[string]chan amqp091.Delivery),
		bindings:  make(map[string]string),
		consumers: make(map[string]string),
	}
}

func (f *fakeWire) ExchangeDeclare(name, kind string, _, _, _, _ bool, _ amqp091.Table) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.exchanges[name] = kind
	return nil
}

func (f *fakeWire) QueueDeclare(name string, _, _, _, _ bool, _ amqp091.Table) (amqp091.Queue, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if name == "" {
		f.queueSeq++
		name = fmt.Sprintf("amq.gen-%d", f.queueSeq)
	}
	f.queues[name] = make(chan amqp091.Delivery, 16)
	return amqp091.Queue{Name: name}, nil
}

func (f *fakeWire) QueueBind(name, key, _ string, _ bool, _ amqp091.Table) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.bindings[key] = name
	return nil
}

func (f *fakeWire) Consume(queue, consumer string, _, _, _, _ bool, _ amqp091.Table) (<-chan amqp091.Delivery, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.consumers[consumer] = queue
	return f.queues[queue], nil
}

func (f *fakeWire) Cancel(consumer string, _ bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	queue, known := f.consumers[consumer]
	if known {
		close(f.queues[queue])
		delete(f.queues, queue)
		delete(f.consumers, consumer)
	}
	if f.cancelFunc != nil {
		f.cancelFunc(consumer)
	}
	return nil
}

// deliver routes a message body to the queue bound to the routing key.
func (f *fakeWire) deliver(t *testing.T, routingKey string, body string) {
	t.Helper()
	f.mu.Lock()
	queueName, bound := f.bindings[routingKey]
	queue := f.queues[queueName]
	f.mu.Unlock()
	require.True(t, bound, "no queue bound to "+routingKey)
	queue <- amqp091.Delivery{Body: []byte(body)}
}

func pushBody(orderID kernel.UUID) string {
	return fmt.Sprintf(`{
		"orderId": %q,
		"customerName": "Asha",
		"deliveryAddress": "12 MG Road",
		"customerLat": 12.95,
		"customerLon": 77.65,
		"totalAmount": 420
	}`, orderID)
}

func collectOrders(received chan *order.Order, want int, timeout time.Duration) []*order.Order {
	var result []*order.Order
	deadline := time.After(timeout)
	for len(result) < want {
		select {
		case o := <-received:
			result = append(result, o)
		case <-deadline:
			return result
		}
	}
	return result
}

func newTestChannel(t *testing.T) *Channel {
	t.Helper()
	channel, err := NewChannel("orders.topic", slog.Default())
	require.NoError(t, err)
	return channel
}

func TestChannel_SubscribeDeliversParsedOrders(t *testing.T) {
	w := newFakeWire()
	channel := newTestChannel(t)
	require.NoError(t, channel.Connect(w))

	received := make(chan *order.Order, 4)
	handle, err := channel.Subscribe("agent-42", func(o *order.Order) { received <- o })
	require.NoError(t, err)
	assert.Equal(t, "agent-42", handle.Topic)

	orderID := kernel.NewUUID()
	w.deliver(t, "agent-42", pushBody(orderID))

	orders := collectOrders(received, 1, 2*time.Second)
	require.Len(t, orders, 1)
	assert.True(t, orders[0].ID().IsEqual(orderID))
	assert.Equal(t, order.Assigned, orders[0].Status())
	assert.Equal(t, "topic", w.exchanges["orders.topic"])
}

func TestChannel_DeliveryKeepsTransportOrder(t *testing.T) {
	w := newFakeWire()
	channel := newTestChannel(t)
	require.NoError(t, channel.Connect(w))

	received := make(chan *order.Order, 4)
	_, err := channel.Subscribe("agent-42", func(o *order.Order) { received <- o })
	require.NoError(t, err)

	first := kernel.NewUUID()
	second := kernel.NewUUID()
	w.deliver(t, "agent-42", pushBody(first))
	w.deliver(t, "agent-42", pushBody(second))

	orders := collectOrders(received, 2, 2*time.Second)
	require.Len(t, orders, 2)
	assert.True(t, orders[0].ID().IsEqual(first))
	assert.True(t, orders[1].ID().IsEqual(second))
}

func TestChannel_MalformedMessageIsDroppedNotFatal(t *testing.T) {
	w := newFakeWire()
	channel := newTestChannel(t)
	require.NoError(t, channel.Connect(w))

	received := make(chan *order.Order, 4)
	_, err := channel.Subscribe("agent-42", func(o *order.Order) { received <- o })
	require.NoError(t, err)

	orderID := kernel.NewUUID()
	w.deliver(t, "agent-42", `{"orderId": "not-a-uuid"}`)
	w.deliver(t, "agent-42", pushBody(orderID))

	orders := collectOrders(received, 1, 2*time.Second)
	require.Len(t, orders, 1)
	assert.True(t, orders[0].ID().IsEqual(orderID))
}

func TestChannel_SubscribeWhileDisconnectedParksIntent(t *testing.T) {
	channel := newTestChannel(t)

	received := make(chan *order.Order, 4)
	handle, err := channel.Subscribe("agent-42", func(o *order.Order) { received <- o })
	require.NoError(t, err, "the intent must be parked, not refused")
	require.Equal(t, "agent-42", handle.Topic)

	// Connectivity arrives later; the parked binding completes now.
	w := newFakeWire()
	require.NoError(t, channel.Connect(w))

	orderID := kernel.NewUUID()
	w.deliver(t, "agent-42", pushBody(orderID))

	orders := collectOrders(received, 1, 2*time.Second)
	require.Len(t, orders, 1)
	assert.True(t, orders[0].ID().IsEqual(orderID))
}

func TestChannel_ReconnectRebindsLiveSubscriptions(t *testing.T) {
	first := newFakeWire()
	channel := newTestChannel(t)
	require.NoError(t, channel.Connect(first))

	received := make(chan *order.Order, 4)
	_, err := channel.Subscribe("agent-42", func(o *order.Order) { received <- o })
	require.NoError(t, err)

	second := newFakeWire()
	require.NoError(t, channel.Connect(second))

	orderID := kernel.NewUUID()
	second.deliver(t, "agent-42", pushBody(orderID))

	orders := collectOrders(received, 1, 2*time.Second)
	require.Len(t, orders, 1)
}

func TestChannel_UnsubscribeStopsDelivery(t *testing.T) {
	w := newFakeWire()
	channel := newTestChannel(t)
	require.NoError(t, channel.Connect(w))

	received := make(chan *order.Order, 4)
	handle, err := channel.Subscribe("agent-42", func(o *order.Order) { received <- o })
	require.NoError(t, err)

	channel.Unsubscribe(handle)

	orders := collectOrders(received, 1, 200*time.Millisecond)
	assert.Empty(t, orders, "deliveries after teardown are dropped")

	// Idempotent on repeat and after close.
	channel.Unsubscribe(handle)
	channel.Close()
	channel.Unsubscribe(handle)
}

func TestChannel_UnsubscribeWaitsForInFlightHandler(t *testing.T) {
	w := newFakeWire()
	channel := newTestChannel(t)
	require.NoError(t, channel.Connect(w))

	started := make(chan struct{})
	release := make(chan struct{})
	var mutations atomic.Int32

	handle, err := channel.Subscribe("agent-42", func(*order.Order) {
		close(started)
		<-release
		mutations.Add(1)
	})
	require.NoError(t, err)

	w.deliver(t, "agent-42", pushBody(kernel.NewUUID()))
	<-started

	returned := make(chan struct{})
	go func() {
		channel.Unsubscribe(handle)
		close(returned)
	}()

	select {
	case <-returned:
		t.Fatal("Unsubscribe returned while a handler invocation was in flight")
	case <-time.After(100 * time.Millisecond):
	}

	close(release)
	select {
	case <-returned:
	case <-time.After(2 * time.Second):
		t.Fatal("Unsubscribe did not return after the handler drained")
	}

	assert.Equal(t, int32(1), mutations.Load(),
		"the invocation begun before teardown completes before Unsubscribe returns")
}

func TestChannel_SubscribeAfterClose(t *testing.T) {
	channel := newTestChannel(t)
	channel.Close()

	_, err := channel.Subscribe("agent-42", func(*order.Order) {})

	require.ErrorIs(t, err, ports.ErrChannelDisconnected)
}
