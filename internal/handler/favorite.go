package handler

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/forgo/holocron/internal/middleware"
	"github.com/forgo/holocron/internal/model"
)

// FavoriteService is the favorites behavior the handler needs
type FavoriteService interface {
	AddFavorite(ctx context.Context, userID int64, kind model.EntityKind, entityID int64) (*model.Favorite, error)
	RemoveFavorite(ctx context.Context, userID int64, kind model.EntityKind, entityID int64) error
	ListFavorites(ctx context.Context, userID int64, kind model.EntityKind) ([]*model.Favorite, error)
	GetUserFavorites(ctx context.Context, userID int64) (*model.UserFavorites, error)
}

// FavoriteHandler handles favorite mutations and queries
type FavoriteHandler struct {
	service FavoriteService
	logger  *slog.Logger
}

// NewFavoriteHandler creates a new favorite handler
func NewFavoriteHandler(svc FavoriteService, logger *slog.Logger) *FavoriteHandler {
	return &FavoriteHandler{service: svc, logger: logger}
}

// FavoriteResponse is returned when a favorite is added
type FavoriteResponse struct {
	Message  string          `json:"message"`
	Favorite *model.Favorite `json:"favorite"`
}

// Add handles POST /favorite/{kind}/{id}
func (h *FavoriteHandler) Add(w http.ResponseWriter, r *http.Request) {
	userID, kind, entityID, ok := h.favoriteTarget(w, r)
	if !ok {
		return
	}

	fav, err := h.service.AddFavorite(r.Context(), userID, kind, entityID)
	if err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}

	WriteJSON(w, http.StatusCreated, FavoriteResponse{
		Message:  fmt.Sprintf("Favorite %s added successfully", kind),
		Favorite: fav,
	})
}

// Remove handles DELETE /favorite/{kind}/{id}
func (h *FavoriteHandler) Remove(w http.ResponseWriter, r *http.Request) {
	userID, kind, entityID, ok := h.favoriteTarget(w, r)
	if !ok {
		return
	}

	if err := h.service.RemoveFavorite(r.Context(), userID, kind, entityID); err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}
	WriteMessage(w, http.StatusOK, fmt.Sprintf("Favorite %s removed successfully", kind))
}

// GetUserFavorites handles GET /users/{id}/favorites
func (h *FavoriteHandler) GetUserFavorites(w http.ResponseWriter, r *http.Request) {
	userID, apiErr := pathID(r, "id")
	if apiErr != nil {
		WriteError(w, apiErr)
		return
	}

	favs, err := h.service.GetUserFavorites(r.Context(), userID)
	if err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}
	WriteJSON(w, http.StatusOK, favs)
}

// ListByKind handles GET /users/{id}/favorites/{kind}
func (h *FavoriteHandler) ListByKind(w http.ResponseWriter, r *http.Request) {
	userID, apiErr := pathID(r, "id")
	if apiErr != nil {
		WriteError(w, apiErr)
		return
	}
	kind, apiErr := pathKind(r)
	if apiErr != nil {
		WriteError(w, apiErr)
		return
	}

	favs, err := h.service.ListFavorites(r.Context(), userID, kind)
	if err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}
	WriteJSON(w, http.StatusOK, favs)
}

// favoriteTarget resolves the acting user and the {kind}/{id} path, writing
// the error response itself when any part is missing or malformed
func (h *FavoriteHandler) favoriteTarget(w http.ResponseWriter, r *http.Request) (int64, model.EntityKind, int64, bool) {
	userID := middleware.GetUserID(r.Context())
	if userID == 0 {
		WriteError(w, model.NewUnauthorizedError("authentication required"))
		return 0, "", 0, false
	}

	kind, apiErr := pathKind(r)
	if apiErr != nil {
		WriteError(w, apiErr)
		return 0, "", 0, false
	}

	entityID, apiErr := pathID(r, "id")
	if apiErr != nil {
		WriteError(w, apiErr)
		return 0, "", 0, false
	}

	return userID, kind, entityID, true
}
