package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/forgo/holocron/internal/model"
	"github.com/forgo/holocron/internal/service"
)

// ============================================================================
// Add Tests
// ============================================================================

func TestFavoriteAdd_Returns201WithMessage(t *testing.T) {
	t.Parallel()
	tr := newTestRouter()
	tr.userID = 3

	var gotUser, gotEntity int64
	var gotKind model.EntityKind
	tr.favorites.addFunc = func(_ context.Context, userID int64, kind model.EntityKind, entityID int64) (*model.Favorite, error) {
		gotUser, gotKind, gotEntity = userID, kind, entityID
		return &model.Favorite{UserID: userID, Kind: kind, EntityID: entityID}, nil
	}

	rr := tr.serve(httptest.NewRequest(http.MethodPost, "/favorite/planet/5", nil))

	if rr.Code != http.StatusCreated {
		t.Fatalf("expected status %d, got %d: %s", http.StatusCreated, rr.Code, rr.Body.String())
	}
	if gotUser != 3 || gotKind != model.KindPlanet || gotEntity != 5 {
		t.Errorf("unexpected call user=%d kind=%s entity=%d", gotUser, gotKind, gotEntity)
	}

	var resp FavoriteResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Message != "Favorite planet added successfully" {
		t.Errorf("unexpected message %q", resp.Message)
	}
	if resp.Favorite == nil || resp.Favorite.EntityID != 5 {
		t.Errorf("unexpected favorite %+v", resp.Favorite)
	}
}

func TestFavoriteAdd_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		path     string
		userID   int64
		svcErr   error
		wantCode int
	}{
		{"no current user", "/favorite/planet/5", 0, nil, http.StatusUnauthorized},
		{"unknown kind", "/favorite/starship/5", 1, nil, http.StatusBadRequest},
		{"non-integer id", "/favorite/planet/five", 1, nil, http.StatusBadRequest},
		{"duplicate", "/favorite/character/1", 1, service.ErrFavoriteExists, http.StatusConflict},
		{"missing entity", "/favorite/vehicle/99", 1, service.ErrVehicleNotFound, http.StatusNotFound},
		{"missing user", "/favorite/planet/1", 9, service.ErrUserNotFound, http.StatusNotFound},
		{"store failure", "/favorite/planet/1", 1, fmt.Errorf("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			tr := newTestRouter()
			tr.userID = tt.userID
			tr.favorites.addFunc = func(context.Context, int64, model.EntityKind, int64) (*model.Favorite, error) {
				if tt.svcErr != nil {
					return nil, tt.svcErr
				}
				return &model.Favorite{}, nil
			}

			rr := tr.serve(httptest.NewRequest(http.MethodPost, tt.path, nil))

			if rr.Code != tt.wantCode {
				t.Errorf("expected status %d, got %d", tt.wantCode, rr.Code)
			}
			if apiErr := parseErrorResponse(t, rr.Body.Bytes()); apiErr.StatusCode != tt.wantCode {
				t.Errorf("body status_code %d does not match %d", apiErr.StatusCode, tt.wantCode)
			}
		})
	}
}

// ============================================================================
// Remove Tests
// ============================================================================

func TestFavoriteRemove_Success(t *testing.T) {
	t.Parallel()
	tr := newTestRouter()

	rr := tr.serve(httptest.NewRequest(http.MethodDelete, "/favorite/vehicle/14", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rr.Code)
	}
	var msg MessageResponse
	_ = json.NewDecoder(rr.Body).Decode(&msg)
	if msg.Message != "Favorite vehicle removed successfully" {
		t.Errorf("unexpected message %q", msg.Message)
	}
}

func TestFavoriteRemove_Missing_Returns404(t *testing.T) {
	t.Parallel()
	tr := newTestRouter()
	tr.favorites.removeFunc = func(context.Context, int64, model.EntityKind, int64) error {
		return service.ErrFavoriteNotFound
	}

	rr := tr.serve(httptest.NewRequest(http.MethodDelete, "/favorite/planet/5", nil))

	if rr.Code != http.StatusNotFound {
		t.Errorf("expected status %d, got %d", http.StatusNotFound, rr.Code)
	}
	if apiErr := parseErrorResponse(t, rr.Body.Bytes()); apiErr.Message != "favorite not found" {
		t.Errorf("unexpected message %q", apiErr.Message)
	}
}

// ============================================================================
// Query Tests
// ============================================================================

func TestGetUserFavorites_ReturnsAggregate(t *testing.T) {
	t.Parallel()
	tr := newTestRouter()
	tr.favorites.getAllFunc = func(_ context.Context, userID int64) (*model.UserFavorites, error) {
		favs := model.NewUserFavorites()
		favs.Planets = append(favs.Planets, &model.Planet{ID: 1, Name: "Tatooine"})
		return favs, nil
	}

	rr := tr.serve(httptest.NewRequest(http.MethodGet, "/users/1/favorites", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rr.Code)
	}
	want := `{"planets":[{"id":1,"name":"Tatooine","climate":null,"terrain":null,"population":null}],"characters":[],"vehicles":[]}` + "\n"
	if rr.Body.String() != want {
		t.Errorf("got %s want %s", rr.Body.String(), want)
	}
}

func TestGetUserFavorites_Orphan_Returns500(t *testing.T) {
	t.Parallel()
	tr := newTestRouter()
	tr.favorites.getAllFunc = func(context.Context, int64) (*model.UserFavorites, error) {
		return nil, fmt.Errorf("%w: user 1 planet 5", service.ErrOrphanedFavorite)
	}

	rr := tr.serve(httptest.NewRequest(http.MethodGet, "/users/1/favorites", nil))

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("expected status %d, got %d", http.StatusInternalServerError, rr.Code)
	}
	if apiErr := parseErrorResponse(t, rr.Body.Bytes()); apiErr.Code != model.ErrCodeIntegrity {
		t.Errorf("expected integrity code, got %d", apiErr.Code)
	}
}

func TestListByKind_PassesKind(t *testing.T) {
	t.Parallel()
	tr := newTestRouter()
	var gotKind model.EntityKind
	tr.favorites.listFunc = func(_ context.Context, userID int64, kind model.EntityKind) ([]*model.Favorite, error) {
		gotKind = kind
		return []*model.Favorite{{UserID: userID, Kind: kind, EntityID: 3}}, nil
	}

	rr := tr.serve(httptest.NewRequest(http.MethodGet, "/users/2/favorites/characters", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rr.Code)
	}
	if gotKind != model.KindCharacter {
		t.Errorf("expected character kind, got %q", gotKind)
	}
}

func TestListByKind_BadKind_Returns400(t *testing.T) {
	t.Parallel()
	tr := newTestRouter()

	rr := tr.serve(httptest.NewRequest(http.MethodGet, "/users/2/favorites/droids", nil))

	if rr.Code != http.StatusBadRequest {
		t.Errorf("expected status %d, got %d", http.StatusBadRequest, rr.Code)
	}
}
