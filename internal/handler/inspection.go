package handler

import (
	"log/slog"
	"net/http"

	"github.com/dukerupert/hudson/internal/model"
	"github.com/dukerupert/hudson/internal/service"
)

type InspectionHandler struct {
	inspections *service.InspectionService
	logger      *slog.Logger
}

func NewInspectionHandler(is *service.InspectionService, logger *slog.Logger) *InspectionHandler {
	return &InspectionHandler{inspections: is, logger: logger}
}

func (h *InspectionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in service.InspectionInput
	if !decodeJSON(w, r, &in) {
		return
	}
	insp, err := h.inspections.Create(r.Context(), actor(r), in)
	if err != nil {
		writeError(w, h.logger, "create inspection", err)
		return
	}
	writeJSON(w, http.StatusCreated, insp)
}

func (h *InspectionHandler) Get(w http.ResponseWriter, r *http.Request) {
	insp, err := h.inspections.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, h.logger, "get inspection", err)
		return
	}
	writeJSON(w, http.StatusOK, insp)
}

func (h *InspectionHandler) ListForProperty(w http.ResponseWriter, r *http.Request) {
	list, err := h.inspections.ListForProperty(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, h.logger, "list inspections", err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

type assignRequest struct {
	PropertyID string `json:"propertyId"`
}

func (h *InspectionHandler) Assign(w http.ResponseWriter, r *http.Request) {
	var req assignRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	insp, err := h.inspections.Assign(r.Context(), r.PathValue("id"), req.PropertyID)
	if err != nil {
		writeError(w, h.logger, "assign inspection", err)
		return
	}
	writeJSON(w, http.StatusOK, insp)
}

func (h *InspectionHandler) UpsertRoom(w http.ResponseWriter, r *http.Request) {
	var in service.RoomInput
	if !decodeJSON(w, r, &in) {
		return
	}
	insp, err := h.inspections.UpsertRoom(r.Context(), r.PathValue("id"), r.PathValue("room_id"), in)
	if err != nil {
		writeError(w, h.logger, "upsert room", err)
		return
	}
	writeJSON(w, http.StatusOK, insp)
}

func (h *InspectionHandler) SetScores(w http.ResponseWriter, r *http.Request) {
	var scores model.CategoryScores
	if !decodeJSON(w, r, &scores) {
		return
	}
	insp, err := h.inspections.SetScores(r.Context(), r.PathValue("id"), scores)
	if err != nil {
		writeError(w, h.logger, "set scores", err)
		return
	}
	writeJSON(w, http.StatusOK, insp)
}

// Complete finalizes the inspection and returns it with the resulting home
// score.
func (h *InspectionHandler) Complete(w http.ResponseWriter, r *http.Request) {
	res, err := h.inspections.Complete(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, h.logger, "complete inspection", err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}
