// Package service orchestrates the pure domain packages against storage.
// Every mutating operation loads the aggregate, computes the next value with
// a pure function, persists it with one conditional write and only then
// publishes a change event.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/dukerupert/hudson/internal/events"
	"github.com/dukerupert/hudson/internal/store"
)

var (
	ErrNotFound  = errors.New("not found")
	ErrConflict  = errors.New("modified concurrently, reload and retry")
	ErrForbidden = errors.New("forbidden")
)

// Options carries the collaborators shared by every service. Zero fields are
// filled with production defaults.
type Options struct {
	Logger    *slog.Logger
	Publisher events.Publisher
	Now       func() time.Time
	NewID     func() string
}

func (o Options) withDefaults() Options {
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	if o.Publisher == nil {
		o.Publisher = events.Nop{}
	}
	if o.Now == nil {
		o.Now = func() time.Time { return time.Now().UTC() }
	}
	if o.NewID == nil {
		o.NewID = uuid.NewString
	}
	return o
}

// persistErr wraps a store error, translating lost version races.
func persistErr(op string, err error) error {
	if errors.Is(err, store.ErrVersionConflict) {
		return fmt.Errorf("%s: %w", op, ErrConflict)
	}
	return fmt.Errorf("%s: %w", op, err)
}

// publish sends e and logs failures. A committed write is never undone
// because a subscriber is unavailable.
func publish(ctx context.Context, o Options, e events.Event) {
	if err := o.Publisher.Publish(ctx, e); err != nil {
		o.Logger.Warn("publish change event", "type", e.Type, "id", e.ID, "error", err)
	}
}
