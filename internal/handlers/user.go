package handlers

import (
	"FriendKeeper/internal/config"
	"FriendKeeper/internal/middleware"
	"FriendKeeper/internal/service"
	"fmt"
	"net/http"

	"go.uber.org/zap"
)

// UserHandler — регистрация, вход и статус сессии.
type UserHandler struct {
	UserService *service.UserService
	Logger      *zap.SugaredLogger
	Config      *config.Config
}

func NewUserHandler(userService *service.UserService, logger *zap.SugaredLogger, cfg *config.Config) *UserHandler {
	return &UserHandler{UserService: userService, Logger: logger, Config: cfg}
}

type credentialsRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

type userResponse struct {
	ID    int64  `json:"id"`
	Login string `json:"login"`
}

// Register регистрирует пользователя и сразу выдаёт cookie.
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if !decodeJSON(w, r, h.Logger, &req) {
		return
	}
	user, err := h.UserService.Register(r.Context(), req.Login, req.Password)
	if err != nil {
		writeError(w, r, h.Logger, err)
		return
	}
	if err := middleware.SetLoginCookie(w, user.ID, h.Config.AuthSecret); err != nil {
		writeError(w, r, h.Logger, fmt.Errorf("set cookie: %w", err))
		return
	}
	h.Logger.Infow("user registered", "user_id", user.ID, "login", user.Login)
	writeJSON(w, http.StatusOK, userResponse{ID: user.ID, Login: user.Login})
}

// Login проверяет пароль и выдаёт cookie.
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if !decodeJSON(w, r, h.Logger, &req) {
		return
	}
	user, err := h.UserService.Login(r.Context(), req.Login, req.Password)
	if err != nil {
		writeError(w, r, h.Logger, err)
		return
	}
	if err := middleware.SetLoginCookie(w, user.ID, h.Config.AuthSecret); err != nil {
		writeError(w, r, h.Logger, fmt.Errorf("set cookie: %w", err))
		return
	}
	writeJSON(w, http.StatusOK, userResponse{ID: user.ID, Login: user.Login})
}

// Logout удаляет cookie.
func (h *UserHandler) Logout(w http.ResponseWriter, r *http.Request) {
	middleware.ClearLoginCookie(w)
	w.WriteHeader(http.StatusNoContent)
}

// Me сообщает, кто авторизован.
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	result := "anonymous"
	if userID, ok := middleware.GetUserIDFromContext(r.Context()); ok {
		result = fmt.Sprintf("user %d", userID)
	}
	writeJSON(w, http.StatusOK, map[string]string{"result": result})
}
