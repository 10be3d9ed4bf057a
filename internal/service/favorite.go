package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/forgo/holocron/internal/database"
	"github.com/forgo/holocron/internal/model"
)

// FavoriteService manages favorites and assembles a user's full favorites set
type FavoriteService struct {
	favorites  FavoriteRepository
	users      UserRepository
	planets    CatalogRepository[model.Planet]
	characters CatalogRepository[model.Character]
	vehicles   CatalogRepository[model.Vehicle]
	logger     *slog.Logger
}

// FavoriteServiceConfig holds configuration for the favorite service
type FavoriteServiceConfig struct {
	Repos  Repositories
	Logger *slog.Logger
}

// NewFavoriteService creates a new favorite service
func NewFavoriteService(cfg FavoriteServiceConfig) *FavoriteService {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &FavoriteService{
		favorites:  cfg.Repos.Favorites,
		users:      cfg.Repos.Users,
		planets:    cfg.Repos.Planets,
		characters: cfg.Repos.Characters,
		vehicles:   cfg.Repos.Vehicles,
		logger:     logger,
	}
}

// AddFavorite marks an entity as a favorite of a user.
// A second add for the same pair returns ErrFavoriteExists and leaves the store unchanged.
func (s *FavoriteService) AddFavorite(ctx context.Context, userID int64, kind model.EntityKind, entityID int64) (*model.Favorite, error) {
	if err := validateFavoriteArgs(userID, kind, entityID); err != nil {
		return nil, err
	}
	if err := s.requireUser(ctx, userID); err != nil {
		return nil, err
	}

	exists, err := s.entityExists(ctx, kind, entityID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, notFoundFor(kind)
	}

	fav, err := s.favorites.Add(ctx, kind, userID, entityID)
	if err != nil {
		if errors.Is(err, database.ErrDuplicate) {
			return nil, ErrFavoriteExists
		}
		return nil, fmt.Errorf("adding favorite %s %d: %w", kind, entityID, err)
	}
	return fav, nil
}

// RemoveFavorite deletes a favorite, returning ErrFavoriteNotFound when there is none
func (s *FavoriteService) RemoveFavorite(ctx context.Context, userID int64, kind model.EntityKind, entityID int64) error {
	if err := validateFavoriteArgs(userID, kind, entityID); err != nil {
		return err
	}

	removed, err := s.favorites.Remove(ctx, kind, userID, entityID)
	if err != nil {
		return fmt.Errorf("removing favorite %s %d: %w", kind, entityID, err)
	}
	if !removed {
		return ErrFavoriteNotFound
	}
	return nil
}

// ListFavorites returns a user's favorite associations of one kind
func (s *FavoriteService) ListFavorites(ctx context.Context, userID int64, kind model.EntityKind) ([]*model.Favorite, error) {
	if !kind.Valid() {
		return nil, ErrInvalidEntityKind
	}
	if userID <= 0 {
		return nil, ErrInvalidID
	}
	if err := s.requireUser(ctx, userID); err != nil {
		return nil, err
	}

	favs, err := s.favorites.ListByUser(ctx, kind, userID)
	if err != nil {
		return nil, err
	}
	if favs == nil {
		favs = make([]*model.Favorite, 0)
	}
	return favs, nil
}

// GetUserFavorites resolves every favorite of a user to its entity.
// A favorite whose entity is gone fails the whole call with ErrOrphanedFavorite.
func (s *FavoriteService) GetUserFavorites(ctx context.Context, userID int64) (*model.UserFavorites, error) {
	if userID <= 0 {
		return nil, ErrInvalidID
	}
	if err := s.requireUser(ctx, userID); err != nil {
		return nil, err
	}

	result := model.NewUserFavorites()
	var err error

	if result.Planets, err = resolveFavorites(ctx, s, s.planets, model.KindPlanet, userID); err != nil {
		return nil, err
	}
	if result.Characters, err = resolveFavorites(ctx, s, s.characters, model.KindCharacter, userID); err != nil {
		return nil, err
	}
	if result.Vehicles, err = resolveFavorites(ctx, s, s.vehicles, model.KindVehicle, userID); err != nil {
		return nil, err
	}

	return result, nil
}

func resolveFavorites[T any](ctx context.Context, s *FavoriteService, repo CatalogRepository[T], kind model.EntityKind, userID int64) ([]*T, error) {
	favs, err := s.favorites.ListByUser(ctx, kind, userID)
	if err != nil {
		return nil, fmt.Errorf("listing %s favorites: %w", kind, err)
	}

	items := make([]*T, 0, len(favs))
	for _, fav := range favs {
		item, err := repo.GetByID(ctx, fav.EntityID)
		if err != nil {
			return nil, fmt.Errorf("resolving %s %d: %w", kind, fav.EntityID, err)
		}
		if item == nil {
			s.logger.ErrorContext(ctx, "favorite references missing entity",
				"kind", kind,
				"user_id", userID,
				"entity_id", fav.EntityID,
			)
			return nil, fmt.Errorf("%w: user %d %s %d", ErrOrphanedFavorite, userID, kind, fav.EntityID)
		}
		items = append(items, item)
	}
	return items, nil
}

func (s *FavoriteService) requireUser(ctx context.Context, userID int64) error {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("getting user %d: %w", userID, err)
	}
	if user == nil {
		return ErrUserNotFound
	}
	return nil
}

func (s *FavoriteService) entityExists(ctx context.Context, kind model.EntityKind, id int64) (bool, error) {
	var (
		found bool
		err   error
	)
	switch kind {
	case model.KindPlanet:
		var p *model.Planet
		p, err = s.planets.GetByID(ctx, id)
		found = p != nil
	case model.KindCharacter:
		var c *model.Character
		c, err = s.characters.GetByID(ctx, id)
		found = c != nil
	case model.KindVehicle:
		var v *model.Vehicle
		v, err = s.vehicles.GetByID(ctx, id)
		found = v != nil
	default:
		return false, ErrInvalidEntityKind
	}
	if err != nil {
		return false, fmt.Errorf("getting %s %d: %w", kind, id, err)
	}
	return found, nil
}

func validateFavoriteArgs(userID int64, kind model.EntityKind, entityID int64) error {
	if !kind.Valid() {
		return ErrInvalidEntityKind
	}
	if userID <= 0 || entityID <= 0 {
		return ErrInvalidID
	}
	return nil
}
