package handler

import (
	"net/http"

	"github.com/dukerupert/hudson/internal/model"
	"github.com/dukerupert/hudson/internal/service"
)

func (h *SubscriptionHandler) History(w http.ResponseWriter, r *http.Request) {
	view, err := h.subs.History(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, h.logger, "blueprint history", err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

type planItemResponse struct {
	Item         *model.PlanItem     `json:"item"`
	Subscription *model.Subscription `json:"subscription"`
}

func (h *SubscriptionHandler) AddPlanItem(w http.ResponseWriter, r *http.Request) {
	var in service.PlanItemInput
	if !decodeJSON(w, r, &in) {
		return
	}
	sub, item, err := h.subs.AddPlanItem(r.Context(), actor(r), r.PathValue("id"), in)
	if err != nil {
		writeError(w, h.logger, "add plan item", err)
		return
	}
	writeJSON(w, http.StatusCreated, planItemResponse{Item: item, Subscription: sub})
}

func (h *SubscriptionHandler) UpdatePlanItem(w http.ResponseWriter, r *http.Request) {
	var in service.PlanItemUpdate
	if !decodeJSON(w, r, &in) {
		return
	}
	sub, err := h.subs.UpdatePlanItem(r.Context(), actor(r), r.PathValue("id"), r.PathValue("item_id"), in)
	if err != nil {
		writeError(w, h.logger, "update plan item", err)
		return
	}
	writeJSON(w, http.StatusOK, sub)
}

func (h *SubscriptionHandler) RemovePlanItem(w http.ResponseWriter, r *http.Request) {
	sub, err := h.subs.RemovePlanItem(r.Context(), actor(r), r.PathValue("id"), r.PathValue("item_id"))
	if err != nil {
		writeError(w, h.logger, "remove plan item", err)
		return
	}
	writeJSON(w, http.StatusOK, sub)
}

func (h *SubscriptionHandler) ReplacePlan(w http.ResponseWriter, r *http.Request) {
	var in service.PlanInput
	if !decodeJSON(w, r, &in) {
		return
	}
	sub, err := h.subs.ReplacePlan(r.Context(), actor(r), r.PathValue("id"), in)
	if err != nil {
		writeError(w, h.logger, "replace plan", err)
		return
	}
	writeJSON(w, http.StatusOK, sub)
}

// Notifications lists unread notifications addressed to the caller's role.
func (h *SubscriptionHandler) Notifications(w http.ResponseWriter, r *http.Request) {
	list, err := h.subs.Notifications(r.Context(), actor(r), r.PathValue("id"))
	if err != nil {
		writeError(w, h.logger, "list notifications", err)
		return
	}
	if list == nil {
		list = []model.Notification{}
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *SubscriptionHandler) MarkNotificationRead(w http.ResponseWriter, r *http.Request) {
	sub, err := h.subs.MarkNotificationRead(r.Context(), r.PathValue("id"), r.PathValue("notification_id"))
	if err != nil {
		writeError(w, h.logger, "mark notification read", err)
		return
	}
	writeJSON(w, http.StatusOK, sub)
}
