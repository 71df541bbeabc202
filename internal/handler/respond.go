package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/dukerupert/hudson/internal/auth"
	"github.com/dukerupert/hudson/internal/blueprint"
	"github.com/dukerupert/hudson/internal/model"
	"github.com/dukerupert/hudson/internal/scoring"
	"github.com/dukerupert/hudson/internal/service"
	"github.com/dukerupert/hudson/internal/subscription"
)

const maxBodyBytes = 1 << 20

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return false
	}
	return true
}

// preconditions are domain rules that reject an operation in the
// aggregate's current state.
var preconditions = []error{
	subscription.ErrAlreadyActive,
	subscription.ErrNotActive,
	subscription.ErrVisitClosed,
	scoring.ErrClosed,
	scoring.ErrNoRooms,
	scoring.ErrUnassigned,
	blueprint.ErrItemClosed,
	blueprint.ErrInvalidTransition,
}

// writeError answers with one generic message per error class. The detailed
// error only reaches the log.
func writeError(w http.ResponseWriter, logger *slog.Logger, op string, err error) {
	if fields := service.ValidationMessages(err); fields != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "invalid input", "fields": fields})
		return
	}
	switch {
	case errors.Is(err, blueprint.ErrInvalidStatus):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid input"})
		return
	case errors.Is(err, service.ErrNotFound):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
		return
	case errors.Is(err, service.ErrForbidden):
		writeJSON(w, http.StatusForbidden, map[string]string{"error": "forbidden"})
		return
	case errors.Is(err, service.ErrConflict):
		writeJSON(w, http.StatusConflict, map[string]string{"error": "modified concurrently, reload and retry"})
		return
	}
	for _, p := range preconditions {
		if errors.Is(err, p) {
			logger.Info(op+" rejected", "error", err)
			writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"error": "not allowed in current state"})
			return
		}
	}
	logger.Error(op+" failed", "error", err)
	writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
}

func actor(r *http.Request) model.Actor {
	a, _ := auth.FromContext(r.Context())
	return a
}

// queryInt reads a non-negative integer query parameter, falling back to def
// when absent.
func queryInt(r *http.Request, name string, def int) (int, bool) {
	s := r.URL.Query().Get(name)
	if s == "" {
		return def, true
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}
