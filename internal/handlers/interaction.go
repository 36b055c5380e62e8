package handlers

import (
	"FriendKeeper/internal/service"
	"net/http"

	"go.uber.org/zap"
)

// InteractionHandler — журнал контактов; редактирования нет.
type InteractionHandler struct {
	InteractionService *service.InteractionService
	Logger             *zap.SugaredLogger
}

func NewInteractionHandler(interactionService *service.InteractionService, logger *zap.SugaredLogger) *InteractionHandler {
	return &InteractionHandler{InteractionService: interactionService, Logger: logger}
}

// List — GET /api/interactions?page=&per_page=
func (h *InteractionHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	page, err := queryInt(r, "page", 1)
	if err != nil {
		writeError(w, r, h.Logger, err)
		return
	}
	perPage, err := queryInt(r, "per_page", service.InteractionsPerPage)
	if err != nil {
		writeError(w, r, h.Logger, err)
		return
	}
	res, err := h.InteractionService.List(r.Context(), userID, page, perPage)
	if err != nil {
		writeError(w, r, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, service.MapPage(res, toInteractionDTO))
}

// Create — POST /api/interactions
func (h *InteractionHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	var attrs service.InteractionAttrs
	if !decodeJSON(w, r, h.Logger, &attrs) {
		return
	}
	it, err := h.InteractionService.Create(r.Context(), userID, attrs)
	if err != nil {
		writeError(w, r, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, toInteractionDTO(*it))
}

// Show — GET /api/interactions/{id}
func (h *InteractionHandler) Show(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	it, err := h.InteractionService.Get(r.Context(), userID, id)
	if err != nil {
		writeError(w, r, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, toInteractionDTO(*it))
}

// Delete — DELETE /api/interactions/{id}
func (h *InteractionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.InteractionService.Delete(r.Context(), userID, id); err != nil {
		writeError(w, r, h.Logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
