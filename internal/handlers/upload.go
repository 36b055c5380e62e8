package handlers

import (
	"FriendKeeper/internal/service"
	"FriendKeeper/internal/storage"
	"errors"
	"fmt"
	"net/http"

	"go.uber.org/zap"
)

// UploadHandler принимает фото друзей.
type UploadHandler struct {
	Files  *storage.Local
	Logger *zap.SugaredLogger
}

func NewUploadHandler(files *storage.Local, logger *zap.SugaredLogger) *UploadHandler {
	return &UploadHandler{Files: files, Logger: logger}
}

func fileError(msg string) error {
	return &service.ValidationError{Fields: map[string]string{"file": msg}}
}

// ProfilePicture — POST /api/uploads/profile-pictures, multipart-поле file.
// Отвечает {"path": "..."}; этот путь клиент кладёт в profile_picture друга.
func (h *UploadHandler) ProfilePicture(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	maxBytes := h.Files.MaxBytes()
	tooLarge := fileError(fmt.Sprintf("The file field must not be greater than %d kilobytes.", maxBytes>>10))

	// запас на заголовки multipart
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes+1<<20)
	if err := r.ParseMultipartForm(maxBytes); err != nil {
		var mbe *http.MaxBytesError
		if errors.As(err, &mbe) {
			writeError(w, r, h.Logger, tooLarge)
			return
		}
		h.Logger.Warnw("upload: invalid multipart form", "user_id", userID, "error", err)
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid multipart form"})
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		writeError(w, r, h.Logger, fileError("The file field is required."))
		return
	}
	defer file.Close()

	path, err := h.Files.SaveProfilePicture(userID, file)
	switch {
	case errors.Is(err, storage.ErrTooLarge):
		writeError(w, r, h.Logger, tooLarge)
		return
	case errors.Is(err, storage.ErrUnsupportedType), errors.Is(err, storage.ErrEmpty):
		writeError(w, r, h.Logger, fileError("The file field must be an image (jpeg, png, gif, webp)."))
		return
	case err != nil:
		writeError(w, r, h.Logger, err)
		return
	}

	h.Logger.Infow("profile picture uploaded", "user_id", userID, "path", path)
	writeJSON(w, http.StatusCreated, map[string]string{"path": path, "url": "/storage/" + path})
}
