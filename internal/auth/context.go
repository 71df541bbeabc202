// Package auth carries the caller's identity through a request. Identity is
// asserted by an authenticating proxy in front of the server.
package auth

import (
	"context"
	"slices"

	"github.com/dukerupert/hudson/internal/model"
)

type contextKey struct{}

func WithActor(ctx context.Context, a model.Actor) context.Context {
	return context.WithValue(ctx, contextKey{}, a)
}

func FromContext(ctx context.Context) (model.Actor, bool) {
	a, ok := ctx.Value(contextKey{}).(model.Actor)
	return a, ok
}

func UserID(ctx context.Context) string {
	a, ok := FromContext(ctx)
	if !ok {
		return ""
	}
	return a.UserID
}

// HasRole reports whether the caller holds one of roles.
func HasRole(ctx context.Context, roles ...model.Role) bool {
	a, ok := FromContext(ctx)
	if !ok {
		return false
	}
	return slices.Contains(roles, a.Role)
}
