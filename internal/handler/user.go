package handler

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/forgo/holocron/internal/middleware"
	"github.com/forgo/holocron/internal/model"
)

// UserService is the user behavior the handler needs
type UserService interface {
	List(ctx context.Context) ([]*model.User, error)
	Delete(ctx context.Context, actorID, id int64) error
}

// UserHandler handles user listing and account deletion
type UserHandler struct {
	service UserService
	logger  *slog.Logger
}

// NewUserHandler creates a new user handler
func NewUserHandler(svc UserService, logger *slog.Logger) *UserHandler {
	return &UserHandler{service: svc, logger: logger}
}

// List handles GET /users
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.service.List(r.Context())
	if err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}
	WriteJSON(w, http.StatusOK, users)
}

// Delete handles DELETE /users/{id}
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	actorID := middleware.GetUserID(r.Context())
	if actorID == 0 {
		WriteError(w, model.NewUnauthorizedError("authentication required"))
		return
	}

	id, apiErr := pathID(r, "id")
	if apiErr != nil {
		WriteError(w, apiErr)
		return
	}

	if err := h.service.Delete(r.Context(), actorID, id); err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}
	WriteMessage(w, http.StatusOK, fmt.Sprintf("User %d deleted", id))
}
