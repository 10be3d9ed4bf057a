package handler

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/forgo/holocron/internal/model"
	"github.com/forgo/holocron/internal/service"
)

// CatalogService is the catalog behavior the handler needs for one kind
type CatalogService[T any] interface {
	Kind() model.EntityKind
	List(ctx context.Context) ([]*T, error)
	Get(ctx context.Context, id int64) (*T, error)
	Create(ctx context.Context, entity *T) (*T, error)
	Delete(ctx context.Context, id int64) error
}

// CatalogHandler serves /planets, /characters and /vehicles
type CatalogHandler[T any] struct {
	service CatalogService[T]
	decode  func(w http.ResponseWriter, r *http.Request) (*T, error)
	logger  *slog.Logger
}

// NewPlanetHandler creates the planet catalog handler
func NewPlanetHandler(svc CatalogService[model.Planet], logger *slog.Logger) *CatalogHandler[model.Planet] {
	return &CatalogHandler[model.Planet]{
		service: svc,
		logger:  logger,
		decode: func(w http.ResponseWriter, r *http.Request) (*model.Planet, error) {
			var req model.CreatePlanetRequest
			if err := DecodeJSON(w, r, &req); err != nil {
				return nil, err
			}
			return req.ToPlanet(), nil
		},
	}
}

// NewCharacterHandler creates the character catalog handler
func NewCharacterHandler(svc CatalogService[model.Character], logger *slog.Logger) *CatalogHandler[model.Character] {
	return &CatalogHandler[model.Character]{
		service: svc,
		logger:  logger,
		decode: func(w http.ResponseWriter, r *http.Request) (*model.Character, error) {
			var req model.CreateCharacterRequest
			if err := DecodeJSON(w, r, &req); err != nil {
				return nil, err
			}
			return req.ToCharacter(), nil
		},
	}
}

// NewVehicleHandler creates the vehicle catalog handler
func NewVehicleHandler(svc CatalogService[model.Vehicle], logger *slog.Logger) *CatalogHandler[model.Vehicle] {
	return &CatalogHandler[model.Vehicle]{
		service: svc,
		logger:  logger,
		decode: func(w http.ResponseWriter, r *http.Request) (*model.Vehicle, error) {
			var req model.CreateVehicleRequest
			if err := DecodeJSON(w, r, &req); err != nil {
				return nil, err
			}
			return req.ToVehicle(), nil
		},
	}
}

// List handles GET /{kinds}
func (h *CatalogHandler[T]) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.List(r.Context())
	if err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}
	WriteJSON(w, http.StatusOK, items)
}

// Get handles GET /{kinds}/{id}
func (h *CatalogHandler[T]) Get(w http.ResponseWriter, r *http.Request) {
	id, apiErr := pathID(r, "id")
	if apiErr != nil {
		WriteError(w, apiErr)
		return
	}

	item, err := h.service.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}
	WriteJSON(w, http.StatusOK, item)
}

// Create handles POST /{kinds}
func (h *CatalogHandler[T]) Create(w http.ResponseWriter, r *http.Request) {
	entity, err := h.decode(w, r)
	if err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body: "+err.Error()))
		return
	}

	created, err := h.service.Create(r.Context(), entity)
	if err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}
	WriteJSON(w, http.StatusCreated, created)
}

// Delete handles DELETE /{kinds}/{id}
func (h *CatalogHandler[T]) Delete(w http.ResponseWriter, r *http.Request) {
	id, apiErr := pathID(r, "id")
	if apiErr != nil {
		WriteError(w, apiErr)
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}
	WriteMessage(w, http.StatusOK, fmt.Sprintf("%s %d deleted", titleKind(h.service.Kind()), id))
}

// titleKind renders a kind for user-facing messages
func titleKind(kind model.EntityKind) string {
	s := string(kind)
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

var (
	_ CatalogService[model.Planet]    = (*service.CatalogService[model.Planet])(nil)
	_ CatalogService[model.Character] = (*service.CatalogService[model.Character])(nil)
	_ CatalogService[model.Vehicle]   = (*service.CatalogService[model.Vehicle])(nil)
)
