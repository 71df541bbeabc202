package middleware

import (
	"net/http"
	"strings"

	"github.com/dukerupert/hudson/internal/auth"
	"github.com/dukerupert/hudson/internal/model"
)

const (
	HeaderUserID   = "X-User-ID"
	HeaderUserName = "X-User-Name"
	HeaderUserRole = "X-User-Role"
)

// Identity reads the caller from headers set by the authenticating proxy and
// stores it in the request context. Requests without a user id or with an
// unknown role are rejected.
func Identity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		a := model.Actor{
			UserID:   strings.TrimSpace(r.Header.Get(HeaderUserID)),
			UserName: strings.TrimSpace(r.Header.Get(HeaderUserName)),
			Role:     model.Role(strings.ToLower(strings.TrimSpace(r.Header.Get(HeaderUserRole)))),
		}
		if a.UserID == "" {
			http.Error(w, "Missing identity", http.StatusUnauthorized)
			return
		}
		if a.Role == "" {
			a.Role = model.RoleHomeowner
		}
		if !a.Role.Valid() {
			http.Error(w, "Unknown role", http.StatusForbidden)
			return
		}
		if a.UserName == "" {
			a.UserName = a.UserID
		}
		next.ServeHTTP(w, r.WithContext(auth.WithActor(r.Context(), a)))
	})
}

// RequireRole rejects callers that hold none of roles.
func RequireRole(roles ...model.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !auth.HasRole(r.Context(), roles...) {
				http.Error(w, "Forbidden", http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
