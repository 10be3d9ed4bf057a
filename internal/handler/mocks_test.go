package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/forgo/holocron/internal/middleware"
	"github.com/forgo/holocron/internal/model"
	"github.com/forgo/holocron/internal/service"
)

// ============================================================================
// Mock Services
// ============================================================================

type mockCatalogService[T any] struct {
	kind       model.EntityKind
	listFunc   func(ctx context.Context) ([]*T, error)
	getFunc    func(ctx context.Context, id int64) (*T, error)
	createFunc func(ctx context.Context, entity *T) (*T, error)
	deleteFunc func(ctx context.Context, id int64) error
}

func (m *mockCatalogService[T]) Kind() model.EntityKind { return m.kind }

func (m *mockCatalogService[T]) List(ctx context.Context) ([]*T, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx)
	}
	return []*T{}, nil
}

func (m *mockCatalogService[T]) Get(ctx context.Context, id int64) (*T, error) {
	if m.getFunc != nil {
		return m.getFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockCatalogService[T]) Create(ctx context.Context, entity *T) (*T, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, entity)
	}
	return entity, nil
}

func (m *mockCatalogService[T]) Delete(ctx context.Context, id int64) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return nil
}

type mockFavoriteService struct {
	addFunc    func(ctx context.Context, userID int64, kind model.EntityKind, entityID int64) (*model.Favorite, error)
	removeFunc func(ctx context.Context, userID int64, kind model.EntityKind, entityID int64) error
	listFunc   func(ctx context.Context, userID int64, kind model.EntityKind) ([]*model.Favorite, error)
	getAllFunc func(ctx context.Context, userID int64) (*model.UserFavorites, error)
}

func (m *mockFavoriteService) AddFavorite(ctx context.Context, userID int64, kind model.EntityKind, entityID int64) (*model.Favorite, error) {
	if m.addFunc != nil {
		return m.addFunc(ctx, userID, kind, entityID)
	}
	return &model.Favorite{UserID: userID, Kind: kind, EntityID: entityID}, nil
}

func (m *mockFavoriteService) RemoveFavorite(ctx context.Context, userID int64, kind model.EntityKind, entityID int64) error {
	if m.removeFunc != nil {
		return m.removeFunc(ctx, userID, kind, entityID)
	}
	return nil
}

func (m *mockFavoriteService) ListFavorites(ctx context.Context, userID int64, kind model.EntityKind) ([]*model.Favorite, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, userID, kind)
	}
	return []*model.Favorite{}, nil
}

func (m *mockFavoriteService) GetUserFavorites(ctx context.Context, userID int64) (*model.UserFavorites, error) {
	if m.getAllFunc != nil {
		return m.getAllFunc(ctx, userID)
	}
	return model.NewUserFavorites(), nil
}

type mockUserService struct {
	listFunc   func(ctx context.Context) ([]*model.User, error)
	deleteFunc func(ctx context.Context, actorID, id int64) error
}

func (m *mockUserService) List(ctx context.Context) ([]*model.User, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx)
	}
	return []*model.User{}, nil
}

func (m *mockUserService) Delete(ctx context.Context, actorID, id int64) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, actorID, id)
	}
	return nil
}

type mockAuthService struct {
	signupFunc func(ctx context.Context, req model.SignupRequest) (*model.User, error)
	loginFunc  func(ctx context.Context, req model.LoginRequest) (*service.LoginResult, error)
}

func (m *mockAuthService) Signup(ctx context.Context, req model.SignupRequest) (*model.User, error) {
	if m.signupFunc != nil {
		return m.signupFunc(ctx, req)
	}
	return &model.User{ID: 1, Username: req.Username, Email: req.Email, Name: req.Name}, nil
}

func (m *mockAuthService) Login(ctx context.Context, req model.LoginRequest) (*service.LoginResult, error) {
	if m.loginFunc != nil {
		return m.loginFunc(ctx, req)
	}
	return &service.LoginResult{User: &model.User{ID: 1, Email: req.Email}}, nil
}

// ============================================================================
// Test Helpers
// ============================================================================

// testRouter holds the mocks behind a router so tests can override them
type testRouter struct {
	planets    *mockCatalogService[model.Planet]
	characters *mockCatalogService[model.Character]
	vehicles   *mockCatalogService[model.Vehicle]
	favorites  *mockFavoriteService
	users      *mockUserService
	auth       *mockAuthService
	pingErr    error
	userID     int64
}

func newTestRouter() *testRouter {
	return &testRouter{
		planets:    &mockCatalogService[model.Planet]{kind: model.KindPlanet},
		characters: &mockCatalogService[model.Character]{kind: model.KindCharacter},
		vehicles:   &mockCatalogService[model.Vehicle]{kind: model.KindVehicle},
		favorites:  &mockFavoriteService{},
		users:      &mockUserService{},
		auth:       &mockAuthService{},
		userID:     1,
	}
}

// serve routes one request through a router built from the current mocks
func (tr *testRouter) serve(req *http.Request) *httptest.ResponseRecorder {
	current := middleware.Middleware(func(next http.Handler) http.Handler { return next })
	if tr.userID != 0 {
		current = middleware.FixedUser(tr.userID)
	}

	mux := NewRouter(RouterConfig{
		Planets:     tr.planets,
		Characters:  tr.characters,
		Vehicles:    tr.vehicles,
		Favorites:   tr.favorites,
		Users:       tr.users,
		Auth:        tr.auth,
		DB:          PingFunc(func(context.Context) error { return tr.pingErr }),
		CurrentUser: current,
	})

	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)
	return rr
}

func makeJSONRequest(method, path string, body interface{}) *http.Request {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	return req
}

func parseErrorResponse(t *testing.T, body []byte) *model.APIError {
	t.Helper()
	var apiErr model.APIError
	if err := json.Unmarshal(body, &apiErr); err != nil {
		t.Fatalf("failed to parse error response: %v", err)
	}
	return &apiErr
}

func stringPtr(s string) *string { return &s }
