package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/forgo/holocron/internal/model"
	"github.com/forgo/holocron/internal/service"
)

// AuthService is the account behavior the handler needs
type AuthService interface {
	Signup(ctx context.Context, req model.SignupRequest) (*model.User, error)
	Login(ctx context.Context, req model.LoginRequest) (*service.LoginResult, error)
}

// AuthHandler handles signup and login
type AuthHandler struct {
	authService AuthService
	logger      *slog.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService AuthService, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{authService: authService, logger: logger}
}

// Signup handles POST /signup
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req model.SignupRequest
	if err := DecodeJSON(w, r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	user, err := h.authService.Signup(r.Context(), req)
	if err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}
	WriteJSON(w, http.StatusCreated, user)
}

// Login handles POST /login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req model.LoginRequest
	if err := DecodeJSON(w, r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	result, err := h.authService.Login(r.Context(), req)
	if err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}
	WriteJSON(w, http.StatusOK, result)
}
