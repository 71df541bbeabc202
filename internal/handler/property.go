package handler

import (
	"log/slog"
	"net/http"

	"github.com/dukerupert/hudson/internal/service"
)

type PropertyHandler struct {
	properties *service.PropertyService
	logger     *slog.Logger
}

func NewPropertyHandler(ps *service.PropertyService, logger *slog.Logger) *PropertyHandler {
	return &PropertyHandler{properties: ps, logger: logger}
}

func (h *PropertyHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in service.PropertyInput
	if !decodeJSON(w, r, &in) {
		return
	}
	p, err := h.properties.Create(r.Context(), actor(r), in)
	if err != nil {
		writeError(w, h.logger, "create property", err)
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

// List returns the caller's properties, primary first.
func (h *PropertyHandler) List(w http.ResponseWriter, r *http.Request) {
	props, err := h.properties.ListForOwner(r.Context(), actor(r).UserID)
	if err != nil {
		writeError(w, h.logger, "list properties", err)
		return
	}
	writeJSON(w, http.StatusOK, props)
}

func (h *PropertyHandler) Get(w http.ResponseWriter, r *http.Request) {
	p, err := h.properties.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, h.logger, "get property", err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *PropertyHandler) SetPrimary(w http.ResponseWriter, r *http.Request) {
	p, err := h.properties.SetPrimary(r.Context(), actor(r), r.PathValue("id"))
	if err != nil {
		writeError(w, h.logger, "set primary property", err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *PropertyHandler) AddInsight(w http.ResponseWriter, r *http.Request) {
	var in service.InsightInput
	if !decodeJSON(w, r, &in) {
		return
	}
	p, err := h.properties.AddInsight(r.Context(), r.PathValue("id"), in)
	if err != nil {
		writeError(w, h.logger, "add insight", err)
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

func (h *PropertyHandler) AddReminder(w http.ResponseWriter, r *http.Request) {
	var in service.ReminderInput
	if !decodeJSON(w, r, &in) {
		return
	}
	p, err := h.properties.AddReminder(r.Context(), r.PathValue("id"), in)
	if err != nil {
		writeError(w, h.logger, "add reminder", err)
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

func (h *PropertyHandler) CompleteReminder(w http.ResponseWriter, r *http.Request) {
	p, err := h.properties.CompleteReminder(r.Context(), r.PathValue("id"), r.PathValue("reminder_id"))
	if err != nil {
		writeError(w, h.logger, "complete reminder", err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *PropertyHandler) Upcoming(w http.ResponseWriter, r *http.Request) {
	days, ok := queryInt(r, "days", 0)
	if !ok {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid days"})
		return
	}
	list, err := h.properties.UpcomingReminders(r.Context(), r.PathValue("id"), days)
	if err != nil {
		writeError(w, h.logger, "list upcoming reminders", err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *PropertyHandler) Overdue(w http.ResponseWriter, r *http.Request) {
	list, err := h.properties.OverdueReminders(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, h.logger, "list overdue reminders", err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

// Board groups every reminder of the property by status.
func (h *PropertyHandler) Board(w http.ResponseWriter, r *http.Request) {
	board, err := h.properties.ReminderBoard(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, h.logger, "reminder board", err)
		return
	}
	writeJSON(w, http.StatusOK, board)
}
