package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/forgo/holocron/internal/database"
	"github.com/forgo/holocron/internal/model"
)

// CatalogService handles read and administration operations for one entity kind
type CatalogService[T any] struct {
	repo CatalogRepository[T]
	kind model.EntityKind
	name func(*T) *string
	id   func(*T) int64
}

// NewPlanetService creates the planet catalog service
func NewPlanetService(repo CatalogRepository[model.Planet]) *CatalogService[model.Planet] {
	return &CatalogService[model.Planet]{
		repo: repo,
		kind: model.KindPlanet,
		name: func(p *model.Planet) *string { return &p.Name },
		id:   func(p *model.Planet) int64 { return p.ID },
	}
}

// NewCharacterService creates the character catalog service
func NewCharacterService(repo CatalogRepository[model.Character]) *CatalogService[model.Character] {
	return &CatalogService[model.Character]{
		repo: repo,
		kind: model.KindCharacter,
		name: func(c *model.Character) *string { return &c.Name },
		id:   func(c *model.Character) int64 { return c.ID },
	}
}

// NewVehicleService creates the vehicle catalog service
func NewVehicleService(repo CatalogRepository[model.Vehicle]) *CatalogService[model.Vehicle] {
	return &CatalogService[model.Vehicle]{
		repo: repo,
		kind: model.KindVehicle,
		name: func(v *model.Vehicle) *string { return &v.Name },
		id:   func(v *model.Vehicle) int64 { return v.ID },
	}
}

// Kind returns the entity kind served
func (s *CatalogService[T]) Kind() model.EntityKind {
	return s.kind
}

// List returns every entity of the kind
func (s *CatalogService[T]) List(ctx context.Context) ([]*T, error) {
	items, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = make([]*T, 0)
	}
	return items, nil
}

// Get returns one entity by id
func (s *CatalogService[T]) Get(ctx context.Context, id int64) (*T, error) {
	if id <= 0 {
		return nil, ErrInvalidID
	}

	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("getting %s %d: %w", s.kind, id, err)
	}
	if item == nil {
		return nil, notFoundFor(s.kind)
	}
	return item, nil
}

// Create validates and stores a new entity
func (s *CatalogService[T]) Create(ctx context.Context, entity *T) (*T, error) {
	name := s.name(entity)
	*name = strings.TrimSpace(*name)
	if *name == "" {
		return nil, ErrNameRequired
	}
	if len(*name) > model.MaxNameLength {
		return nil, ErrNameTooLong
	}
	if s.id(entity) < 0 {
		return nil, ErrInvalidID
	}

	created, err := s.repo.Create(ctx, entity)
	if err != nil {
		if errors.Is(err, database.ErrDuplicate) {
			return nil, ErrEntityExists
		}
		return nil, err
	}
	return created, nil
}

// Delete removes an entity and, through the store, its favorites
func (s *CatalogService[T]) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return ErrInvalidID
	}

	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return notFoundFor(s.kind)
	}
	return nil
}

// notFoundFor returns the not-found error for an entity kind
func notFoundFor(kind model.EntityKind) error {
	switch kind {
	case model.KindPlanet:
		return ErrPlanetNotFound
	case model.KindCharacter:
		return ErrCharacterNotFound
	case model.KindVehicle:
		return ErrVehicleNotFound
	}
	return ErrInvalidEntityKind
}
