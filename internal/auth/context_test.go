package auth

import (
	"context"
	"testing"

	"github.com/dukerupert/hudson/internal/model"
)

func TestWithActorAndFromContext(t *testing.T) {
	a := model.Actor{UserID: "u1", UserName: "Dana", Role: model.RoleHomeowner}

	ctx := WithActor(context.Background(), a)
	got, ok := FromContext(ctx)
	if !ok {
		t.Fatal("expected actor in context")
	}
	if got != a {
		t.Errorf("got %+v, want %+v", got, a)
	}
	if UserID(ctx) != "u1" {
		t.Errorf("UserID = %q, want u1", UserID(ctx))
	}
}

func TestFromContextMissing(t *testing.T) {
	if _, ok := FromContext(context.Background()); ok {
		t.Error("expected false for missing actor")
	}
	if UserID(context.Background()) != "" {
		t.Error("expected empty user id for missing actor")
	}
	if HasRole(context.Background(), model.RoleAdmin) {
		t.Error("expected no role for missing actor")
	}
}

func TestHasRole(t *testing.T) {
	ctx := WithActor(context.Background(), model.Actor{UserID: "t1", Role: model.RoleTech})
	if !HasRole(ctx, model.RoleTech, model.RoleAdmin) {
		t.Error("tech should match")
	}
	if HasRole(ctx, model.RoleHomeowner) {
		t.Error("tech should not match homeowner")
	}
}
