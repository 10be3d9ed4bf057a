package service

import (
	"context"

	"github.com/forgo/holocron/internal/model"
)

// CatalogRepository defines storage for one catalog entity kind.
// GetByID returns (nil, nil) when the entity does not exist.
type CatalogRepository[T any] interface {
	GetAll(ctx context.Context) ([]*T, error)
	GetByID(ctx context.Context, id int64) (*T, error)
	Create(ctx context.Context, entity *T) (*T, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

// UserRepository defines the interface for user storage
type UserRepository interface {
	GetAll(ctx context.Context) ([]*model.User, error)
	GetByID(ctx context.Context, id int64) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	Create(ctx context.Context, user *model.User) (*model.User, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

// FavoriteRepository defines storage for the user/entity favorite associations.
// Add returns database.ErrDuplicate for an existing pair.
type FavoriteRepository interface {
	Add(ctx context.Context, kind model.EntityKind, userID, entityID int64) (*model.Favorite, error)
	Remove(ctx context.Context, kind model.EntityKind, userID, entityID int64) (bool, error)
	ListByUser(ctx context.Context, kind model.EntityKind, userID int64) ([]*model.Favorite, error)
}

// Repositories groups the storage a backend provides
type Repositories struct {
	Planets    CatalogRepository[model.Planet]
	Characters CatalogRepository[model.Character]
	Vehicles   CatalogRepository[model.Vehicle]
	Users      UserRepository
	Favorites  FavoriteRepository
}
