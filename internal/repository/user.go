package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/forgo/holocron/internal/database"
	"github.com/forgo/holocron/internal/model"
)

// UserRepository handles user data access
type UserRepository struct {
	db database.Database
}

// NewUserRepository creates a new user repository
func NewUserRepository(db database.Database) *UserRepository {
	return &UserRepository{db: db}
}

// Create creates a new user, allocating the next integer id
func (r *UserRepository) Create(ctx context.Context, user *model.User) (*model.User, error) {
	query := `
		LET $next = (math::max((SELECT VALUE record::id(id) FROM user)) ?? 0) + 1;
		CREATE type::thing("user", $next) CONTENT {
			username: $username,
			email: $email,
			name: $name,
			hash: $hash,
			created_on: time::now()
		};
	`

	vars := map[string]interface{}{
		"username": user.Username,
		"email":    user.Email,
		"name":     user.Name,
		"hash":     user.Hash,
	}

	result, err := r.db.Query(ctx, query, vars)
	if err != nil {
		if isUniqueConstraintError(err) {
			if strings.Contains(err.Error(), "user_username") {
				return nil, fmt.Errorf("%w: username already exists", database.ErrDuplicate)
			}
			return nil, fmt.Errorf("%w: email already exists", database.ErrDuplicate)
		}
		return nil, err
	}

	records := statementRecords(result, -1)
	if len(records) == 0 {
		return nil, errors.New("no result returned")
	}
	return parseUserRecord(records[0])
}

// GetAll retrieves every user ordered by id
func (r *UserRepository) GetAll(ctx context.Context) ([]*model.User, error) {
	result, err := r.db.Query(ctx, `SELECT * FROM user ORDER BY id`, nil)
	if err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}

	records := statementRecords(result, 0)
	users := make([]*model.User, 0, len(records))
	for _, rec := range records {
		user, err := parseUserRecord(rec)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, nil
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	query := `SELECT * FROM $id`
	vars := map[string]interface{}{"id": recordID("user", id)}

	return r.queryOne(ctx, query, vars)
}

// GetByEmail retrieves a user by email
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	query := `SELECT * FROM user WHERE email = $email LIMIT 1`
	vars := map[string]interface{}{"email": email}

	return r.queryOne(ctx, query, vars)
}

// GetByUsername retrieves a user by username
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	query := `SELECT * FROM user WHERE username = $username LIMIT 1`
	vars := map[string]interface{}{"username": username}

	return r.queryOne(ctx, query, vars)
}

// Delete deletes a user together with all of their favorites.
// Returns false when the user did not exist.
func (r *UserRepository) Delete(ctx context.Context, id int64) (bool, error) {
	user := recordID("user", id)

	batch := database.NewAtomicBatch()
	for _, kind := range model.EntityKinds {
		batch.Add(fmt.Sprintf("DELETE %s WHERE in = $user", kind.FavoriteTable()), map[string]interface{}{"user": user})
	}
	batch.Add("DELETE $user RETURN BEFORE", map[string]interface{}{"user": user})

	result, err := batch.Execute(ctx, r.db)
	if err != nil {
		return false, fmt.Errorf("deleting user %d: %w", id, err)
	}

	return len(statementRecords(result, -1)) > 0, nil
}

func (r *UserRepository) queryOne(ctx context.Context, query string, vars map[string]interface{}) (*model.User, error) {
	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	data, ok := asRecord(result)
	if !ok {
		return nil, nil
	}
	return parseUserRecord(data)
}

func parseUserRecord(data map[string]interface{}) (*model.User, error) {
	id, ok := extractRecordInt(data["id"])
	if !ok {
		return nil, errors.New("unexpected result format: user id is not an integer")
	}

	return &model.User{
		ID:        id,
		Username:  getString(data, "username"),
		Email:     getString(data, "email"),
		Name:      getString(data, "name"),
		Hash:      getString(data, "hash"),
		CreatedOn: parseTime(data["created_on"]),
	}, nil
}
