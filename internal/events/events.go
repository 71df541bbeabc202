// Package events carries change notifications out of the service layer to
// websocket clients and, optionally, a message broker.
package events

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"
)

// Event announces that an aggregate changed. It is only published after the
// write that produced it has been committed.
type Event struct {
	Type       string    `json:"type"`
	Entity     string    `json:"entity"`
	Action     string    `json:"action"`
	ID         string    `json:"id"`
	PropertyID string    `json:"property_id,omitempty"`
	Version    int64     `json:"version,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// New builds an Event whose Type is derived from entity and action.
func New(entity, action, id string) Event {
	return Event{
		Type:       fmt.Sprintf("%s_%s", entity, action),
		Entity:     entity,
		Action:     action,
		ID:         id,
		OccurredAt: time.Now().UTC(),
	}
}

// WithProperty sets the owning property and the aggregate version.
func (e Event) WithProperty(propertyID string, version int64) Event {
	e.PropertyID = propertyID
	e.Version = version
	return e
}

type Publisher interface {
	Publish(ctx context.Context, e Event) error
}

// Nop discards every event.
type Nop struct{}

func (Nop) Publish(context.Context, Event) error { return nil }

// Multi fans an event out to several publishers. Every publisher is tried;
// failures are logged and joined.
type Multi struct {
	publishers []Publisher
	logger     *slog.Logger
}

func NewMulti(logger *slog.Logger, publishers ...Publisher) *Multi {
	return &Multi{publishers: publishers, logger: logger}
}

func (m *Multi) Publish(ctx context.Context, e Event) error {
	var errs []error
	for _, p := range m.publishers {
		if err := p.Publish(ctx, e); err != nil {
			m.logger.Warn("publish event", "type", e.Type, "id", e.ID, "error", err)
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
