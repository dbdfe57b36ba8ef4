package ports

import (
	"errors"

	"agenthub/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// ErrChannelDisconnected indicates the push transport was not connected when a
// subscription was requested. Implementations must not silently drop the
// intent: they either park it for completion on reconnect or surface this error.
var ErrChannelDisconnected = errors.New("push transport is not connected")

// MessageHandler is invoked once per inbound message addressed to the
// subscribed topic, in the order the transport received them.
type MessageHandler func(o *order.Order)

// SubscriptionHandle binds one agent identity to one topic name.
// It is returned by Subscribe and must be released via Unsubscribe on
// component teardown to avoid leaking channel resources.
type SubscriptionHandle struct {
	ID    uuid.UUID
	Topic string
}

// NotificationChannel manages a live subscription to a per-agent topic on the
// push transport and delivers push messages as parsed orders.
//
// No cross-topic ordering is guaranteed; messages within one topic are
// delivered in transport order.
type NotificationChannel interface {
	// Subscribe registers handler for messages addressed to topic and returns
	// a handle. If the transport is disconnected, the intent is queued and the
	// binding completes once connectivity is (re)established.
	Subscribe(topic string, handler MessageHandler) (SubscriptionHandle, error)

	// Unsubscribe deregisters the handle and stops further delivery
	// immediately: handler invocations after teardown are dropped, not queued.
	// It is safe to call more than once per handle and on a torn-down channel.
	Unsubscribe(handle SubscriptionHandle)
}
