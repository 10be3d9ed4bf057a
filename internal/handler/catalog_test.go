package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/forgo/holocron/internal/model"
	"github.com/forgo/holocron/internal/service"
)

// ============================================================================
// List / Get Tests
// ============================================================================

func TestCatalogList_ReturnsArray(t *testing.T) {
	t.Parallel()
	tr := newTestRouter()
	tr.planets.listFunc = func(context.Context) ([]*model.Planet, error) {
		return []*model.Planet{{ID: 1, Name: "Tatooine"}, {ID: 2, Name: "Alderaan"}}, nil
	}

	rr := tr.serve(httptest.NewRequest(http.MethodGet, "/planets", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rr.Code)
	}
	var planets []model.Planet
	if err := json.NewDecoder(rr.Body).Decode(&planets); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(planets) != 2 || planets[0].Name != "Tatooine" {
		t.Errorf("unexpected planets %+v", planets)
	}
}

func TestCatalogList_Empty_ReturnsEmptyArray(t *testing.T) {
	t.Parallel()
	tr := newTestRouter()

	rr := tr.serve(httptest.NewRequest(http.MethodGet, "/vehicles", nil))

	if body := rr.Body.String(); body != "[]\n" {
		t.Errorf("expected [], got %q", body)
	}
}

func TestCatalogGet_Missing_Returns404WithBody(t *testing.T) {
	t.Parallel()
	tr := newTestRouter()
	tr.planets.getFunc = func(_ context.Context, id int64) (*model.Planet, error) {
		return nil, service.ErrPlanetNotFound
	}

	rr := tr.serve(httptest.NewRequest(http.MethodGet, "/planets/999", nil))

	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected status %d, got %d", http.StatusNotFound, rr.Code)
	}
	if ct := rr.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("expected JSON content type, got %q", ct)
	}
	apiErr := parseErrorResponse(t, rr.Body.Bytes())
	if apiErr.Message != "planet not found" || apiErr.StatusCode != http.StatusNotFound {
		t.Errorf("unexpected error body %+v", apiErr)
	}
}

func TestCatalogGet_Found(t *testing.T) {
	t.Parallel()
	tr := newTestRouter()
	tr.characters.getFunc = func(_ context.Context, id int64) (*model.Character, error) {
		return &model.Character{ID: id, Name: "Yoda", Species: stringPtr("Yoda's species")}, nil
	}

	rr := tr.serve(httptest.NewRequest(http.MethodGet, "/characters/20", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rr.Code)
	}
	want := `{"id":20,"name":"Yoda","species":"Yoda's species","homeworld":null}` + "\n"
	if rr.Body.String() != want {
		t.Errorf("got %s want %s", rr.Body.String(), want)
	}
}

func TestCatalogGet_InvalidID_Returns400(t *testing.T) {
	t.Parallel()
	tr := newTestRouter()

	for _, path := range []string{"/planets/abc", "/planets/0", "/planets/-3"} {
		rr := tr.serve(httptest.NewRequest(http.MethodGet, path, nil))
		if rr.Code != http.StatusBadRequest {
			t.Errorf("%s: expected status %d, got %d", path, http.StatusBadRequest, rr.Code)
		}
	}
}

// ============================================================================
// Create / Delete Tests
// ============================================================================

func TestCatalogCreate_Returns201(t *testing.T) {
	t.Parallel()
	tr := newTestRouter()
	tr.vehicles.createFunc = func(_ context.Context, v *model.Vehicle) (*model.Vehicle, error) {
		created := *v
		created.ID = 4
		return &created, nil
	}

	rr := tr.serve(makeJSONRequest(http.MethodPost, "/vehicles", map[string]any{"name": "Sand Crawler", "hp": 150}))

	if rr.Code != http.StatusCreated {
		t.Fatalf("expected status %d, got %d: %s", http.StatusCreated, rr.Code, rr.Body.String())
	}
	var v model.Vehicle
	_ = json.NewDecoder(rr.Body).Decode(&v)
	if v.ID != 4 || v.HP == nil || *v.HP != 150 {
		t.Errorf("unexpected vehicle %+v", v)
	}
}

func TestCatalogCreate_UnknownField_Returns400(t *testing.T) {
	t.Parallel()
	tr := newTestRouter()

	rr := tr.serve(makeJSONRequest(http.MethodPost, "/planets", map[string]any{"name": "Hoth", "moons": 3}))

	if rr.Code != http.StatusBadRequest {
		t.Errorf("expected status %d, got %d", http.StatusBadRequest, rr.Code)
	}
}

func TestCatalogDelete_ReturnsMessage(t *testing.T) {
	t.Parallel()
	tr := newTestRouter()
	var deleted int64
	tr.planets.deleteFunc = func(_ context.Context, id int64) error {
		deleted = id
		return nil
	}

	rr := tr.serve(httptest.NewRequest(http.MethodDelete, "/planets/5", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rr.Code)
	}
	if deleted != 5 {
		t.Errorf("expected planet 5 deleted, got %d", deleted)
	}
	var msg MessageResponse
	_ = json.NewDecoder(rr.Body).Decode(&msg)
	if msg.Message != "Planet 5 deleted" {
		t.Errorf("unexpected message %q", msg.Message)
	}
}

func TestUnknownRoute_ReturnsJSON404(t *testing.T) {
	t.Parallel()
	tr := newTestRouter()

	rr := tr.serve(httptest.NewRequest(http.MethodGet, "/starships", nil))

	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected status %d, got %d", http.StatusNotFound, rr.Code)
	}
	if apiErr := parseErrorResponse(t, rr.Body.Bytes()); apiErr.Message != "route not found" {
		t.Errorf("unexpected message %q", apiErr.Message)
	}
}

func TestWrongMethod_Returns405WithAllow(t *testing.T) {
	t.Parallel()

	tests := []struct {
		method    string
		path      string
		wantAllow string
	}{
		{http.MethodPut, "/planets", "GET, HEAD, POST"},
		{http.MethodPatch, "/vehicles/5", "DELETE, GET, HEAD"},
		{http.MethodGet, "/favorite/planet/1", "DELETE, POST"},
		{http.MethodPost, "/users/1/favorites", "GET, HEAD"},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			t.Parallel()
			tr := newTestRouter()

			rr := tr.serve(httptest.NewRequest(tt.method, tt.path, nil))

			if rr.Code != http.StatusMethodNotAllowed {
				t.Fatalf("expected status %d, got %d", http.StatusMethodNotAllowed, rr.Code)
			}
			if got := rr.Header().Get("Allow"); got != tt.wantAllow {
				t.Errorf("expected Allow %q, got %q", tt.wantAllow, got)
			}
			apiErr := parseErrorResponse(t, rr.Body.Bytes())
			if apiErr.Code != model.ErrCodeInvalidInput {
				t.Errorf("expected code %d, got %d", model.ErrCodeInvalidInput, apiErr.Code)
			}
		})
	}
}
