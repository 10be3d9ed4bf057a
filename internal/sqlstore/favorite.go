package sqlstore

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/forgo/holocron/internal/model"
)

// FavoriteStore handles the favorite join tables
type FavoriteStore struct {
	db *gorm.DB
}

// NewFavoriteStore creates a new favorite store
func NewFavoriteStore(db *gorm.DB) *FavoriteStore {
	return &FavoriteStore{db: db}
}

// Add inserts a favorite. The composite primary key rejects a second row for
// the same pair with database.ErrDuplicate.
func (s *FavoriteStore) Add(ctx context.Context, kind model.EntityKind, userID, entityID int64) (*model.Favorite, error) {
	fav, err := favoriteModel(kind)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Model(fav).Create(map[string]interface{}{
			"user_id":         userID,
			kind.ForeignKey(): entityID,
			"created_on":      now,
		}).Error
	})
	if err != nil {
		return nil, translate(err)
	}

	return &model.Favorite{UserID: userID, Kind: kind, EntityID: entityID, CreatedOn: now}, nil
}

// Remove deletes a favorite in a single statement.
// Returns false when no such favorite existed.
func (s *FavoriteStore) Remove(ctx context.Context, kind model.EntityKind, userID, entityID int64) (bool, error) {
	fav, err := favoriteModel(kind)
	if err != nil {
		return false, err
	}

	var removed bool
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where(map[string]interface{}{
			"user_id":         userID,
			kind.ForeignKey(): entityID,
		}).Delete(fav)
		removed = res.RowsAffected > 0
		return res.Error
	})
	if err != nil {
		return false, translate(err)
	}
	return removed, nil
}

// ListByUser returns a user's favorites of one kind ordered by entity id
func (s *FavoriteStore) ListByUser(ctx context.Context, kind model.EntityKind, userID int64) ([]*model.Favorite, error) {
	fav, err := favoriteModel(kind)
	if err != nil {
		return nil, err
	}

	var rows []favoriteRow
	err = s.db.WithContext(ctx).
		Model(fav).
		Select(fmt.Sprintf("user_id, %s AS entity_id, created_on", kind.ForeignKey())).
		Where("user_id = ?", userID).
		Order(kind.ForeignKey()).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("listing %s favorites: %w", kind, translate(err))
	}

	favorites := make([]*model.Favorite, 0, len(rows))
	for _, r := range rows {
		favorites = append(favorites, &model.Favorite{
			UserID:    r.UserID,
			Kind:      kind,
			EntityID:  r.EntityID,
			CreatedOn: r.CreatedOn,
		})
	}
	return favorites, nil
}
