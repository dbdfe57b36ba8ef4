package commands

import (
	"context"

	"agenthub/internal/core/domain/events"
	"agenthub/internal/core/ports"
)

// IngestOrderCommandHandler adds push-delivered orders to the visible set and
// announces them to the UI layer as OrderAssigned events.
//
// Ingestion is valid at any time relative to the snapshot load: the store
// merges the two sources without losing either. A push for an id the session
// already knows (including one accepted or rejected locally) is dropped:
// local state wins and no event is emitted.
type IngestOrderCommandHandler struct {
	store     ports.OrderStore
	publisher ports.EventPublisher
}

// NewIngestOrderCommandHandler creates a handler for push ingestion.
func NewIngestOrderCommandHandler(store ports.OrderStore, publisher ports.EventPublisher) IngestOrderCommandHandler {
	return IngestOrderCommandHandler{
		store:     store,
		publisher: publisher,
	}
}

// Handle processes the ingest command: the order is prepended to the visible
// set and, if it was actually inserted, an OrderAssigned event is published.
func (h IngestOrderCommandHandler) Handle(ctx context.Context, command IngestOrderCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	inserted, err := h.store.Ingest(ctx, command.Order())
	if err != nil {
		return err
	}
	if !inserted {
		return nil
	}

	return h.publisher.Publish(ctx, events.OrderAssigned{Order: command.Order()})
}
