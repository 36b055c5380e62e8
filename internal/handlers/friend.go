package handlers

import (
	"FriendKeeper/internal/service"
	"FriendKeeper/internal/storage"
	"net/http"
	"strings"

	"go.uber.org/zap"
)

// FriendHandler — CRUD друзей и оконные выборки.
type FriendHandler struct {
	FriendService *service.FriendService
	Files         *storage.Local
	Logger        *zap.SugaredLogger
}

func NewFriendHandler(friendService *service.FriendService, files *storage.Local, logger *zap.SugaredLogger) *FriendHandler {
	return &FriendHandler{FriendService: friendService, Files: files, Logger: logger}
}

// checkPicture пропускает пустое значение и пути из каталога userID; остальное — 422.
func (h *FriendHandler) checkPicture(userID int64, p *string) error {
	if h.Files == nil || p == nil {
		return nil
	}
	v := strings.TrimSpace(*p)
	if v == "" || h.Files.Owns(userID, v) {
		return nil
	}
	return &service.ValidationError{Fields: map[string]string{
		"profile_picture": "The selected profile picture is invalid.",
	}}
}

// dropPicture удаляет старый файл фото userID, если запись на него больше не ссылается.
// Ошибка удаления только логируется.
func (h *FriendHandler) dropPicture(userID int64, old, current *string) {
	if h.Files == nil || old == nil || *old == "" {
		return
	}
	if current != nil && *current == *old {
		return
	}
	if err := h.Files.Remove(userID, *old); err != nil {
		h.Logger.Warnw("failed to remove profile picture", "user_id", userID, "path", *old, "error", err)
	}
}

// List — GET /api/friends?page=&per_page=
func (h *FriendHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	page, err := queryInt(r, "page", 1)
	if err != nil {
		writeError(w, r, h.Logger, err)
		return
	}
	perPage, err := queryInt(r, "per_page", service.FriendsPerPage)
	if err != nil {
		writeError(w, r, h.Logger, err)
		return
	}
	res, err := h.FriendService.List(r.Context(), userID, page, perPage)
	if err != nil {
		writeError(w, r, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, service.MapPage(res, toFriendDTO))
}

// Create — POST /api/friends
func (h *FriendHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	var attrs service.FriendAttrs
	if !decodeJSON(w, r, h.Logger, &attrs) {
		return
	}
	if err := h.checkPicture(userID, attrs.ProfilePicture); err != nil {
		writeError(w, r, h.Logger, err)
		return
	}
	f, err := h.FriendService.Create(r.Context(), userID, attrs)
	if err != nil {
		writeError(w, r, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, toFriendDTO(*f))
}

// Show — GET /api/friends/{id}, вместе с взаимодействиями.
func (h *FriendHandler) Show(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	f, err := h.FriendService.Get(r.Context(), userID, id)
	if err != nil {
		writeError(w, r, h.Logger, err)
		return
	}
	dto := toFriendDTO(*f)
	if dto.Interactions == nil {
		dto.Interactions = []InteractionDTO{}
	}
	writeJSON(w, http.StatusOK, dto)
}

// Update — PATCH/PUT /api/friends/{id}; меняются только переданные поля.
func (h *FriendHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var patch service.FriendPatch
	if !decodeJSON(w, r, h.Logger, &patch) {
		return
	}
	var oldPicture *string
	if patch.ProfilePicture.Set {
		before, err := h.FriendService.Get(r.Context(), userID, id)
		if err != nil {
			writeError(w, r, h.Logger, err)
			return
		}
		if err := h.checkPicture(userID, patch.ProfilePicture.Value); err != nil {
			writeError(w, r, h.Logger, err)
			return
		}
		oldPicture = before.ProfilePicture
	}
	f, err := h.FriendService.Update(r.Context(), userID, id, patch)
	if err != nil {
		writeError(w, r, h.Logger, err)
		return
	}
	h.dropPicture(userID, oldPicture, f.ProfilePicture)
	writeJSON(w, http.StatusOK, toFriendDTO(*f))
}

// Delete — DELETE /api/friends/{id}
func (h *FriendHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	f, err := h.FriendService.Get(r.Context(), userID, id)
	if err != nil {
		writeError(w, r, h.Logger, err)
		return
	}
	if err := h.FriendService.Delete(r.Context(), userID, id); err != nil {
		writeError(w, r, h.Logger, err)
		return
	}
	h.dropPicture(userID, f.ProfilePicture, nil)
	w.WriteHeader(http.StatusNoContent)
}

// Options — GET /api/friends/options
func (h *FriendHandler) Options(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	list, err := h.FriendService.Options(r.Context(), userID)
	if err != nil {
		writeError(w, r, h.Logger, err)
		return
	}
	out := make([]FriendOptionDTO, 0, len(list))
	for _, f := range list {
		out = append(out, FriendOptionDTO{ID: f.ID, Name: f.Name})
	}
	writeJSON(w, http.StatusOK, out)
}

// UpcomingBirthdays — GET /api/friends/upcoming-birthdays?days=&as_of=
func (h *FriendHandler) UpcomingBirthdays(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	days, err := queryInt(r, "days", service.DefaultBirthdayWindowDays)
	if err != nil {
		writeError(w, r, h.Logger, err)
		return
	}
	asOf, err := queryAsOf(r, h.FriendService.Today())
	if err != nil {
		writeError(w, r, h.Logger, err)
		return
	}
	list, err := h.FriendService.UpcomingBirthdays(r.Context(), userID, days, asOf)
	if err != nil {
		writeError(w, r, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, toBirthdayDTOs(list, asOf))
}

// NeedsContact — GET /api/friends/needs-contact?days=&limit=&as_of=
func (h *FriendHandler) NeedsContact(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	days, err := queryInt(r, "days", service.DefaultContactThreshold)
	if err != nil {
		writeError(w, r, h.Logger, err)
		return
	}
	limit, err := queryInt(r, "limit", service.DefaultNeedsContactLimit)
	if err != nil {
		writeError(w, r, h.Logger, err)
		return
	}
	asOf, err := queryAsOf(r, h.FriendService.Today())
	if err != nil {
		writeError(w, r, h.Logger, err)
		return
	}
	list, err := h.FriendService.NeedsContact(r.Context(), userID, days, asOf, limit)
	if err != nil {
		writeError(w, r, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, toFriendDTOs(list))
}
