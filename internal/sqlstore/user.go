package sqlstore

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/forgo/holocron/internal/database"
	"github.com/forgo/holocron/internal/model"
)

// UserStore handles user data access
type UserStore struct {
	db *gorm.DB
}

// NewUserStore creates a new user store
func NewUserStore(db *gorm.DB) *UserStore {
	return &UserStore{db: db}
}

// Create creates a new user
func (s *UserStore) Create(ctx context.Context, user *model.User) (*model.User, error) {
	row := &userRecord{
		Username: user.Username,
		Email:    user.Email,
		Name:     user.Name,
		Password: user.Hash,
	}

	if err := s.db.WithContext(ctx).Create(row).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: username or email already exists", database.ErrDuplicate)
		}
		return nil, translate(err)
	}
	return toUser(row), nil
}

// GetAll retrieves every user ordered by id
func (s *UserStore) GetAll(ctx context.Context) ([]*model.User, error) {
	var rows []userRecord
	if err := s.db.WithContext(ctx).Order("id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("listing users: %w", translate(err))
	}

	users := make([]*model.User, 0, len(rows))
	for i := range rows {
		users = append(users, toUser(&rows[i]))
	}
	return users, nil
}

// GetByID retrieves a user by ID
func (s *UserStore) GetByID(ctx context.Context, id int64) (*model.User, error) {
	return s.first(ctx, "id = ?", id)
}

// GetByEmail retrieves a user by email
func (s *UserStore) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	return s.first(ctx, "email = ?", email)
}

// GetByUsername retrieves a user by username
func (s *UserStore) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	return s.first(ctx, "username = ?", username)
}

// Delete deletes a user together with all of their favorites.
// Returns false when the user did not exist.
func (s *UserStore) Delete(ctx context.Context, id int64) (bool, error) {
	var deleted bool
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, kind := range model.EntityKinds {
			fav, err := favoriteModel(kind)
			if err != nil {
				return err
			}
			if err := tx.Where("user_id = ?", id).Delete(fav).Error; err != nil {
				return err
			}
		}
		res := tx.Where("id = ?", id).Delete(&userRecord{})
		if res.Error != nil {
			return res.Error
		}
		deleted = res.RowsAffected > 0
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("deleting user %d: %w", id, translate(err))
	}
	return deleted, nil
}

func (s *UserStore) first(ctx context.Context, cond string, arg interface{}) (*model.User, error) {
	var row userRecord
	if err := s.db.WithContext(ctx).Where(cond, arg).Take(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, translate(err)
	}
	return toUser(&row), nil
}

func toUser(r *userRecord) *model.User {
	return &model.User{
		ID:        r.ID,
		Username:  r.Username,
		Email:     r.Email,
		Name:      r.Name,
		Hash:      r.Password,
		CreatedOn: r.CreatedOn,
	}
}
