package repository

import (
	"cmp"
	"context"
	"fmt"
	"slices"

	"github.com/forgo/holocron/internal/database"
	"github.com/forgo/holocron/internal/model"
)

// FavoriteRepository stores favorites as graph edges:
// user ->favorite_planet-> planet, and likewise for characters and vehicles.
type FavoriteRepository struct {
	db database.Database
}

// NewFavoriteRepository creates a new favorite repository
func NewFavoriteRepository(db database.Database) *FavoriteRepository {
	return &FavoriteRepository{db: db}
}

// Add relates a user to an entity. The unique (in, out) index rejects a second
// edge for the same pair with database.ErrDuplicate.
func (r *FavoriteRepository) Add(ctx context.Context, kind model.EntityKind, userID, entityID int64) (*model.Favorite, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("%w: unknown entity kind %q", database.ErrQuery, kind)
	}

	query := fmt.Sprintf(`RELATE $user->%s->$entity SET created_on = time::now()`, kind.FavoriteTable())
	vars := map[string]interface{}{
		"user":   recordID("user", userID),
		"entity": recordID(kind.Table(), entityID),
	}

	result, err := r.db.Query(ctx, query, vars)
	if err != nil {
		if isUniqueConstraintError(err) {
			return nil, fmt.Errorf("%w: %s %d is already a favorite of user %d", database.ErrDuplicate, kind, entityID, userID)
		}
		return nil, err
	}

	records := statementRecords(result, 0)
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: relate returned no edge", database.ErrQuery)
	}
	return parseFavoriteRecord(kind, records[0])
}

// Remove deletes the edge between a user and an entity in a single statement.
// Returns false when no such favorite existed.
func (r *FavoriteRepository) Remove(ctx context.Context, kind model.EntityKind, userID, entityID int64) (bool, error) {
	if !kind.Valid() {
		return false, fmt.Errorf("%w: unknown entity kind %q", database.ErrQuery, kind)
	}

	query := fmt.Sprintf(`DELETE %s WHERE in = $user AND out = $entity RETURN BEFORE`, kind.FavoriteTable())
	vars := map[string]interface{}{
		"user":   recordID("user", userID),
		"entity": recordID(kind.Table(), entityID),
	}

	result, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return false, err
	}

	return len(statementRecords(result, 0)) > 0, nil
}

// ListByUser returns a user's favorites of one kind ordered by entity id
func (r *FavoriteRepository) ListByUser(ctx context.Context, kind model.EntityKind, userID int64) ([]*model.Favorite, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("%w: unknown entity kind %q", database.ErrQuery, kind)
	}

	query := fmt.Sprintf(`SELECT in, out, created_on FROM %s WHERE in = $user`, kind.FavoriteTable())
	vars := map[string]interface{}{"user": recordID("user", userID)}

	result, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return nil, fmt.Errorf("listing %s favorites: %w", kind, err)
	}

	records := statementRecords(result, 0)
	favorites := make([]*model.Favorite, 0, len(records))
	for _, rec := range records {
		fav, err := parseFavoriteRecord(kind, rec)
		if err != nil {
			return nil, err
		}
		favorites = append(favorites, fav)
	}

	slices.SortFunc(favorites, func(a, b *model.Favorite) int {
		return cmp.Compare(a.EntityID, b.EntityID)
	})
	return favorites, nil
}

func parseFavoriteRecord(kind model.EntityKind, data map[string]interface{}) (*model.Favorite, error) {
	userID, ok := extractRecordInt(data["in"])
	if !ok {
		return nil, fmt.Errorf("%w: favorite edge has no user", database.ErrQuery)
	}
	entityID, ok := extractRecordInt(data["out"])
	if !ok {
		return nil, fmt.Errorf("%w: favorite edge has no %s", database.ErrQuery, kind)
	}

	return &model.Favorite{
		UserID:    userID,
		Kind:      kind,
		EntityID:  entityID,
		CreatedOn: parseTime(data["created_on"]),
	}, nil
}
