package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dukerupert/hudson/internal/auth"
	"github.com/dukerupert/hudson/internal/model"
)

func TestIdentityMissingUser(t *testing.T) {
	handler := Identity(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("should not reach handler")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}

func TestIdentityUnknownRole(t *testing.T) {
	handler := Identity(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("should not reach handler")
	}))

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set(HeaderUserID, "u1")
	req.Header.Set(HeaderUserRole, "landlord")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusForbidden)
	}
}

func TestIdentityPopulatesContext(t *testing.T) {
	var got model.Actor
	handler := Identity(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		a, ok := auth.FromContext(r.Context())
		if !ok {
			t.Fatal("expected actor in request context")
		}
		got = a
	}))

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set(HeaderUserID, "t1")
	req.Header.Set(HeaderUserName, "Tess")
	req.Header.Set(HeaderUserRole, "Tech")
	handler.ServeHTTP(httptest.NewRecorder(), req)

	want := model.Actor{UserID: "t1", UserName: "Tess", Role: model.RoleTech}
	if got != want {
		t.Errorf("actor = %+v, want %+v", got, want)
	}
}

func TestIdentityDefaults(t *testing.T) {
	var got model.Actor
	handler := Identity(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = auth.FromContext(r.Context())
	}))

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set(HeaderUserID, "u1")
	handler.ServeHTTP(httptest.NewRecorder(), req)

	if got.Role != model.RoleHomeowner || got.UserName != "u1" {
		t.Errorf("actor = %+v", got)
	}
}

func TestRequireRole(t *testing.T) {
	handler := Identity(RequireRole(model.RoleTech, model.RoleAdmin)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})))

	for role, want := range map[string]int{
		"tech":      http.StatusNoContent,
		"admin":     http.StatusNoContent,
		"homeowner": http.StatusForbidden,
	} {
		req := httptest.NewRequest("POST", "/", nil)
		req.Header.Set(HeaderUserID, "u1")
		req.Header.Set(HeaderUserRole, role)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		if rec.Code != want {
			t.Errorf("%s: status = %d, want %d", role, rec.Code, want)
		}
	}
}
