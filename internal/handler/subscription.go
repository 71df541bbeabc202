package handler

import (
	"log/slog"
	"net/http"

	"github.com/dukerupert/hudson/internal/service"
)

type SubscriptionHandler struct {
	subs   *service.SubscriptionService
	logger *slog.Logger
}

func NewSubscriptionHandler(ss *service.SubscriptionService, logger *slog.Logger) *SubscriptionHandler {
	return &SubscriptionHandler{subs: ss, logger: logger}
}

func (h *SubscriptionHandler) Get(w http.ResponseWriter, r *http.Request) {
	sub, err := h.subs.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, h.logger, "get subscription", err)
		return
	}
	writeJSON(w, http.StatusOK, sub)
}

// Subscribe starts a subscription for the property, or reactivates a
// cancelled one.
func (h *SubscriptionHandler) Subscribe(w http.ResponseWriter, r *http.Request) {
	sub, err := h.subs.Subscribe(r.Context(), actor(r), r.PathValue("id"))
	if err != nil {
		writeError(w, h.logger, "subscribe", err)
		return
	}
	writeJSON(w, http.StatusCreated, sub)
}

func (h *SubscriptionHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	sub, err := h.subs.Cancel(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, h.logger, "cancel subscription", err)
		return
	}
	writeJSON(w, http.StatusOK, sub)
}

func (h *SubscriptionHandler) ToggleTask(w http.ResponseWriter, r *http.Request) {
	sub, err := h.subs.ToggleVisitTask(r.Context(), r.PathValue("id"), r.PathValue("visit_id"), r.PathValue("task_id"))
	if err != nil {
		writeError(w, h.logger, "toggle visit task", err)
		return
	}
	writeJSON(w, http.StatusOK, sub)
}

type completeVisitRequest struct {
	Notes string `json:"notes"`
}

func (h *SubscriptionHandler) CompleteVisit(w http.ResponseWriter, r *http.Request) {
	var req completeVisitRequest
	if r.ContentLength != 0 && !decodeJSON(w, r, &req) {
		return
	}
	sub, err := h.subs.CompleteVisit(r.Context(), r.PathValue("id"), r.PathValue("visit_id"), req.Notes)
	if err != nil {
		writeError(w, h.logger, "complete visit", err)
		return
	}
	writeJSON(w, http.StatusOK, sub)
}
