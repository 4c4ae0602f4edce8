package handlers

import (
	"ListKeeper/internal/config"
	"ListKeeper/internal/middleware"
	"ListKeeper/internal/model"
	"ListKeeper/internal/service"
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"
)

// UserHandler — регистрация, вход, выход и профиль.
type UserHandler struct {
	UserService *service.UserService
	Logger      *zap.SugaredLogger
	Config      *config.Config
}

func NewUserHandler(userService *service.UserService, logger *zap.SugaredLogger, cfg *config.Config) *UserHandler {
	return &UserHandler{UserService: userService, Logger: logger, Config: cfg}
}

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ProfileDTO — профиль пользователя в ответах API.
type ProfileDTO struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func toProfile(u *model.User) ProfileDTO {
	return ProfileDTO{ID: u.ID, Name: u.Name, Email: u.Email}
}

// Register регистрация пользователя с последующей авторизацией
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Logger.Warnw("Register: invalid request body", "error", err)
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	user, err := h.UserService.Register(r.Context(), req.Email, req.Password, req.Name)
	switch {
	case errors.Is(err, service.ErrEmptyCredentials):
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	case errors.Is(err, service.ErrEmailTaken):
		http.Error(w, err.Error(), http.StatusConflict)
		return
	case err != nil:
		h.Logger.Errorw("Register: service error", "email", req.Email, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	if err := middleware.SetLoginCookie(w, user.ID, h.Config.AuthSecret); err != nil {
		h.Logger.Errorw("Register: failed to set cookie", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	h.Logger.Infow("user registered", "user_id", user.ID)
	writeJSON(w, http.StatusOK, toProfile(user))
}

// Login вход по email и паролю
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Logger.Warnw("Login: invalid request body", "error", err)
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	user, err := h.UserService.Login(r.Context(), req.Email, req.Password)
	switch {
	case errors.Is(err, service.ErrEmptyCredentials):
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	case errors.Is(err, service.ErrInvalidCredentials):
		http.Error(w, err.Error(), http.StatusUnauthorized)
		return
	case err != nil:
		h.Logger.Errorw("Login: service error", "email", req.Email, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	if err := middleware.SetLoginCookie(w, user.ID, h.Config.AuthSecret); err != nil {
		h.Logger.Errorw("Login: failed to set cookie", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, toProfile(user))
}

// Logout сбрасывает cookie авторизации
func (h *UserHandler) Logout(w http.ResponseWriter, r *http.Request) {
	middleware.ClearLoginCookie(w)
	w.WriteHeader(http.StatusNoContent)
}

// Me профиль текущего пользователя
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())
	user, err := h.UserService.Profile(r.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			// токен валиден, но пользователя уже нет
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		h.Logger.Errorw("Me: service error", "user_id", userID, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, toProfile(user))
}
