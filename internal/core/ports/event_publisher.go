package ports

import (
	"context"

	"agenthub/internal/core/domain/events"
)

// EventPublisher fans domain events out to UI-layer consumers.
// Publication failures are surfaced to callers but never roll back the
// business state the event describes.
type EventPublisher interface {
	Publish(ctx context.Context, event events.Event) error
}
