package service

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/forgo/holocron/internal/database"
	"github.com/forgo/holocron/internal/model"
)

// ============================================================================
// Mock Repositories
// ============================================================================

type mockCatalogRepo[T any] struct {
	getAllFunc  func(ctx context.Context) ([]*T, error)
	getByIDFunc func(ctx context.Context, id int64) (*T, error)
	createFunc  func(ctx context.Context, entity *T) (*T, error)
	deleteFunc  func(ctx context.Context, id int64) (bool, error)
}

func (m *mockCatalogRepo[T]) GetAll(ctx context.Context) ([]*T, error) {
	if m.getAllFunc != nil {
		return m.getAllFunc(ctx)
	}
	return nil, nil
}

func (m *mockCatalogRepo[T]) GetByID(ctx context.Context, id int64) (*T, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockCatalogRepo[T]) Create(ctx context.Context, entity *T) (*T, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, entity)
	}
	return entity, nil
}

func (m *mockCatalogRepo[T]) Delete(ctx context.Context, id int64) (bool, error) {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return false, nil
}

type mockUserRepo struct {
	getAllFunc        func(ctx context.Context) ([]*model.User, error)
	getByIDFunc       func(ctx context.Context, id int64) (*model.User, error)
	getByEmailFunc    func(ctx context.Context, email string) (*model.User, error)
	getByUsernameFunc func(ctx context.Context, username string) (*model.User, error)
	createFunc        func(ctx context.Context, user *model.User) (*model.User, error)
	deleteFunc        func(ctx context.Context, id int64) (bool, error)
}

func (m *mockUserRepo) GetAll(ctx context.Context) ([]*model.User, error) {
	if m.getAllFunc != nil {
		return m.getAllFunc(ctx)
	}
	return nil, nil
}

func (m *mockUserRepo) GetByID(ctx context.Context, id int64) (*model.User, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	if m.getByEmailFunc != nil {
		return m.getByEmailFunc(ctx, email)
	}
	return nil, nil
}

func (m *mockUserRepo) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	if m.getByUsernameFunc != nil {
		return m.getByUsernameFunc(ctx, username)
	}
	return nil, nil
}

func (m *mockUserRepo) Create(ctx context.Context, user *model.User) (*model.User, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, user)
	}
	created := *user
	created.ID = 1
	return &created, nil
}

func (m *mockUserRepo) Delete(ctx context.Context, id int64) (bool, error) {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return false, nil
}

type mockFavoriteRepo struct {
	addFunc        func(ctx context.Context, kind model.EntityKind, userID, entityID int64) (*model.Favorite, error)
	removeFunc     func(ctx context.Context, kind model.EntityKind, userID, entityID int64) (bool, error)
	listByUserFunc func(ctx context.Context, kind model.EntityKind, userID int64) ([]*model.Favorite, error)
}

func (m *mockFavoriteRepo) Add(ctx context.Context, kind model.EntityKind, userID, entityID int64) (*model.Favorite, error) {
	if m.addFunc != nil {
		return m.addFunc(ctx, kind, userID, entityID)
	}
	return &model.Favorite{UserID: userID, Kind: kind, EntityID: entityID}, nil
}

func (m *mockFavoriteRepo) Remove(ctx context.Context, kind model.EntityKind, userID, entityID int64) (bool, error) {
	if m.removeFunc != nil {
		return m.removeFunc(ctx, kind, userID, entityID)
	}
	return false, nil
}

func (m *mockFavoriteRepo) ListByUser(ctx context.Context, kind model.EntityKind, userID int64) ([]*model.Favorite, error) {
	if m.listByUserFunc != nil {
		return m.listByUserFunc(ctx, kind, userID)
	}
	return nil, nil
}

// ============================================================================
// In-memory store
// ============================================================================

type favKey struct {
	kind     model.EntityKind
	userID   int64
	entityID int64
}

// memStore backs the mocks with maps so tests can observe the store state
type memStore struct {
	users      map[int64]*model.User
	planets    map[int64]*model.Planet
	characters map[int64]*model.Character
	vehicles   map[int64]*model.Vehicle
	favorites  map[favKey]*model.Favorite
}

func newMemStore() *memStore {
	return &memStore{
		users:      make(map[int64]*model.User),
		planets:    make(map[int64]*model.Planet),
		characters: make(map[int64]*model.Character),
		vehicles:   make(map[int64]*model.Vehicle),
		favorites:  make(map[favKey]*model.Favorite),
	}
}

func memCatalog[T any](items map[int64]*T) *mockCatalogRepo[T] {
	return &mockCatalogRepo[T]{
		getByIDFunc: func(_ context.Context, id int64) (*T, error) {
			return items[id], nil
		},
		deleteFunc: func(_ context.Context, id int64) (bool, error) {
			_, ok := items[id]
			delete(items, id)
			return ok, nil
		},
	}
}

func (m *memStore) repos() Repositories {
	return Repositories{
		Planets:    memCatalog(m.planets),
		Characters: memCatalog(m.characters),
		Vehicles:   memCatalog(m.vehicles),
		Users: &mockUserRepo{
			getByIDFunc: func(_ context.Context, id int64) (*model.User, error) {
				return m.users[id], nil
			},
		},
		Favorites: &mockFavoriteRepo{
			addFunc: func(_ context.Context, kind model.EntityKind, userID, entityID int64) (*model.Favorite, error) {
				key := favKey{kind, userID, entityID}
				if _, ok := m.favorites[key]; ok {
					return nil, fmt.Errorf("%w: pair exists", database.ErrDuplicate)
				}
				fav := &model.Favorite{UserID: userID, Kind: kind, EntityID: entityID, CreatedOn: time.Now()}
				m.favorites[key] = fav
				return fav, nil
			},
			removeFunc: func(_ context.Context, kind model.EntityKind, userID, entityID int64) (bool, error) {
				key := favKey{kind, userID, entityID}
				_, ok := m.favorites[key]
				delete(m.favorites, key)
				return ok, nil
			},
			listByUserFunc: func(_ context.Context, kind model.EntityKind, userID int64) ([]*model.Favorite, error) {
				var out []*model.Favorite
				for k, fav := range m.favorites {
					if k.kind == kind && k.userID == userID {
						out = append(out, fav)
					}
				}
				slices.SortFunc(out, func(a, b *model.Favorite) int { return int(a.EntityID - b.EntityID) })
				return out, nil
			},
		},
	}
}

func strPtr(s string) *string { return &s }

func int64Ptr(n int64) *int64 { return &n }
