package bootstrap_test

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forgo/holocron/internal/bootstrap"
	"github.com/forgo/holocron/internal/config"
	"github.com/forgo/holocron/internal/handler"
	"github.com/forgo/holocron/internal/model"
	"github.com/forgo/holocron/internal/service"
	"github.com/forgo/holocron/internal/testing/fixtures"
	"github.com/forgo/holocron/internal/testing/helpers"
	"github.com/forgo/holocron/internal/testing/testdb"
)

/*
FEATURE: Favorites over HTTP
DOMAIN: Catalog

ACCEPTANCE CRITERIA:
===================

AC-FAV-001: Signup, Login, Favorite
  GIVEN a new account
  WHEN the user logs in and favorites a planet
  THEN the aggregate lists exactly that planet and empty character/vehicle lists

AC-FAV-002: Duplicate Favorite
  GIVEN a planet already favorited by the user
  WHEN the user favorites it again
  THEN the request fails with 409 and one association remains

AC-FAV-003: Remove Missing Favorite
  GIVEN no association between the user and a vehicle
  WHEN the user removes it
  THEN the request fails with 404

AC-FAV-004: Cascade On Entity Delete
  GIVEN user 1 favorites planet 5
  WHEN planet 5 is deleted
  THEN the aggregate for user 1 has an empty planet list

AC-FAV-005: Unknown Entity
  WHEN a client requests GET /planets/999
  THEN the response is 404 with a JSON error body

AC-AUTH-001: Protected Routes
  GIVEN no token, or an expired token
  WHEN a favorite is added
  THEN the request fails with 401

AC-AUTH-002: Fixed User Mode
  GIVEN AUTH_MODE=fixed
  WHEN a favorite is added without a token
  THEN it is recorded for FIXED_USER_ID
*/

// app holds a fully wired handler over an in-memory SQLite store
type app struct {
	handler  http.Handler
	store    *bootstrap.Store
	fixtures *fixtures.Factory
}

func newApp(t *testing.T, env map[string]string) *app {
	t.Helper()
	return newAppWithLogger(t, env, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func newAppWithLogger(t *testing.T, env map[string]string, logger *slog.Logger) *app {
	t.Helper()

	vars := map[string]string{
		"DATABASE_URL": testdb.SQLiteMemoryURL(),
		"SERVER_ENV":   "test",
		"BCRYPT_COST":  "4",
	}
	for k, v := range env {
		vars[k] = v
	}
	cfg := config.FromLookup(func(key string) string { return vars[key] })
	require.NoError(t, cfg.Validate())

	ctx := context.Background()

	store, err := bootstrap.Open(ctx, cfg.Database, logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	require.NoError(t, store.Migrate(ctx))

	h, err := bootstrap.NewHandler(store, cfg, logger)
	require.NoError(t, err)

	return &app{handler: h, store: store, fixtures: fixtures.New(store.Repos)}
}

func newJWTApp(t *testing.T) *app {
	return newApp(t, helpers.TestAuthEnv())
}

// ============================================================================
// AC-FAV-001: Signup, Login, Favorite
// ============================================================================

func TestE2E_SignupLoginFavorite(t *testing.T) {
	a := newJWTApp(t)
	a.fixtures.CreatePlanet(t, model.Planet{ID: 1, Name: "Tatooine", Climate: helpers.StringPtr("arid")})

	rr := helpers.NewRequest(t, http.MethodPost, "/signup").
		WithBody(model.SignupRequest{Username: "luke", Email: "luke@rebellion.org", Name: "Luke Skywalker", Password: "usetheforce"}).
		Do(a.handler)
	helpers.AssertStatus(t, rr, http.StatusCreated)

	var user model.User
	helpers.DecodeResponse(t, rr, &user)
	require.Positive(t, user.ID)

	rr = helpers.NewRequest(t, http.MethodPost, "/login").
		WithBody(model.LoginRequest{Email: "luke@rebellion.org", Password: "usetheforce"}).
		Do(a.handler)
	helpers.AssertStatus(t, rr, http.StatusOK)

	var login service.LoginResult
	helpers.DecodeResponse(t, rr, &login)
	require.NotEmpty(t, login.AccessToken)
	assert.Equal(t, "Bearer", login.TokenType)

	rr = helpers.NewRequest(t, http.MethodPost, "/favorite/planet/1").
		WithHeader("Authorization", "Bearer "+login.AccessToken).
		Do(a.handler)
	helpers.AssertStatus(t, rr, http.StatusCreated)

	var added handler.FavoriteResponse
	helpers.DecodeResponse(t, rr, &added)
	assert.Equal(t, "Favorite planet added successfully", added.Message)

	rr = helpers.NewRequest(t, http.MethodGet, "/users/"+itoa(user.ID)+"/favorites").Do(a.handler)
	helpers.AssertStatus(t, rr, http.StatusOK)
	assert.JSONEq(t,
		`{"planets":[{"id":1,"name":"Tatooine","climate":"arid","terrain":null,"population":null}],"characters":[],"vehicles":[]}`,
		rr.Body.String())
}

func TestE2E_WrongPassword(t *testing.T) {
	a := newJWTApp(t)
	user := a.fixtures.CreateUser(t)

	rr := helpers.NewRequest(t, http.MethodPost, "/login").
		WithBody(model.LoginRequest{Email: user.Email, Password: "not-the-password"}).
		Do(a.handler)
	apiErr := helpers.AssertAPIError(t, rr, http.StatusUnauthorized, model.ErrCodeLoginFailed)
	assert.Equal(t, "invalid email or password", apiErr.Message)
}

// ============================================================================
// AC-FAV-002 / AC-FAV-003: Duplicate and Missing Favorites
// ============================================================================

func TestE2E_DuplicateFavorite(t *testing.T) {
	a := newJWTApp(t)
	jwtHelper := helpers.NewJWTHelper(t)
	g := a.fixtures.CreateGalaxy(t)

	rr := helpers.NewRequest(t, http.MethodPost, "/favorite/planet/1").
		WithAuth(jwtHelper, g.User).
		Do(a.handler)
	helpers.AssertAPIError(t, rr, http.StatusConflict, model.ErrCodeConflict)

	favs, err := a.store.Repos.Favorites.ListByUser(context.Background(), model.KindPlanet, g.User.ID)
	require.NoError(t, err)
	assert.Len(t, favs, 1)
}

func TestE2E_RemoveMissingFavorite(t *testing.T) {
	a := newJWTApp(t)
	jwtHelper := helpers.NewJWTHelper(t)
	g := a.fixtures.CreateGalaxy(t)

	rr := helpers.NewRequest(t, http.MethodDelete, "/favorite/planet/5").
		WithAuth(jwtHelper, g.User).
		Do(a.handler)
	apiErr := helpers.AssertAPIError(t, rr, http.StatusNotFound, model.ErrCodeNotFound)
	assert.Equal(t, "favorite not found", apiErr.Message)

	rr = helpers.NewRequest(t, http.MethodDelete, "/favorite/vehicle/14").
		WithAuth(jwtHelper, g.User).
		Do(a.handler)
	helpers.AssertStatus(t, rr, http.StatusOK)
}

func TestE2E_FavoriteValidation(t *testing.T) {
	a := newJWTApp(t)
	jwtHelper := helpers.NewJWTHelper(t)
	user := a.fixtures.CreateUser(t)

	rr := helpers.NewRequest(t, http.MethodPost, "/favorite/starship/1").
		WithAuth(jwtHelper, user).
		Do(a.handler)
	helpers.AssertValidationError(t, rr, "kind")

	rr = helpers.NewRequest(t, http.MethodPost, "/favorite/planet/abc").
		WithAuth(jwtHelper, user).
		Do(a.handler)
	helpers.AssertValidationError(t, rr, "id")

	rr = helpers.NewRequest(t, http.MethodPost, "/favorite/planet/42").
		WithAuth(jwtHelper, user).
		Do(a.handler)
	helpers.AssertAPIError(t, rr, http.StatusNotFound, model.ErrCodeNotFound)
}

// ============================================================================
// AC-FAV-004: Cascade On Entity Delete
// ============================================================================

func TestE2E_DeletePlanetCascades(t *testing.T) {
	a := newJWTApp(t)
	jwtHelper := helpers.NewJWTHelper(t)
	user := a.fixtures.CreateUser(t)
	a.fixtures.CreatePlanet(t, model.Planet{ID: 5, Name: "Dagobah"})
	a.fixtures.AddFavorite(t, model.KindPlanet, user, 5)

	rr := helpers.NewRequest(t, http.MethodDelete, "/planets/5").
		WithAuth(jwtHelper, user).
		Do(a.handler)
	helpers.AssertStatus(t, rr, http.StatusOK)

	rr = helpers.NewRequest(t, http.MethodGet, "/users/"+itoa(user.ID)+"/favorites").Do(a.handler)
	helpers.AssertStatus(t, rr, http.StatusOK)

	var favs model.UserFavorites
	helpers.DecodeResponse(t, rr, &favs)
	assert.NotNil(t, favs.Planets)
	assert.Empty(t, favs.Planets)
}

// ============================================================================
// AC-FAV-005: Unknown Entity
// ============================================================================

func TestE2E_UnknownPlanet(t *testing.T) {
	a := newJWTApp(t)

	rr := helpers.NewRequest(t, http.MethodGet, "/planets/999").Do(a.handler)

	apiErr := helpers.AssertAPIError(t, rr, http.StatusNotFound, model.ErrCodeNotFound)
	assert.Equal(t, "planet not found", apiErr.Message)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
	assert.NotEmpty(t, rr.Header().Get("X-Request-ID"))
}

func TestE2E_WrongMethod(t *testing.T) {
	a := newJWTApp(t)

	rr := helpers.NewRequest(t, http.MethodPut, "/planets").Do(a.handler)
	apiErr := helpers.AssertAPIError(t, rr, http.StatusMethodNotAllowed, model.ErrCodeInvalidInput)
	assert.Equal(t, "method PUT not allowed", apiErr.Message)
	assert.Equal(t, "GET, HEAD, POST", rr.Header().Get("Allow"))

	rr = helpers.NewRequest(t, http.MethodPatch, "/planets/5").Do(a.handler)
	helpers.AssertStatus(t, rr, http.StatusMethodNotAllowed)
	assert.Equal(t, "DELETE, GET, HEAD", rr.Header().Get("Allow"))

	rr = helpers.NewRequest(t, http.MethodGet, "/starships").Do(a.handler)
	helpers.AssertAPIError(t, rr, http.StatusNotFound, model.ErrCodeNotFound)
}

func TestE2E_ExpectedFailuresAreNotLoggedAsErrors(t *testing.T) {
	var logs bytes.Buffer
	a := newAppWithLogger(t, helpers.TestAuthEnv(), slog.New(slog.NewJSONHandler(&logs, nil)))
	jwtHelper := helpers.NewJWTHelper(t)
	g := a.fixtures.CreateGalaxy(t)

	rr := helpers.NewRequest(t, http.MethodGet, "/planets/999").Do(a.handler)
	helpers.AssertStatus(t, rr, http.StatusNotFound)

	rr = helpers.NewRequest(t, http.MethodPost, "/favorite/planet/1").
		WithAuth(jwtHelper, g.User).
		Do(a.handler)
	helpers.AssertStatus(t, rr, http.StatusConflict)

	assert.NotContains(t, logs.String(), `"level":"ERROR"`)
	assert.NotContains(t, logs.String(), "record not found")
	assert.NotContains(t, logs.String(), "duplicated key")
	assert.Contains(t, logs.String(), `"path":"/planets/999"`)
}

// ============================================================================
// AC-AUTH-001 / AC-AUTH-002: Current User
// ============================================================================

func TestE2E_ProtectedRoutesNeedToken(t *testing.T) {
	a := newJWTApp(t)
	jwtHelper := helpers.NewJWTHelper(t)
	g := a.fixtures.CreateGalaxy(t)

	rr := helpers.NewRequest(t, http.MethodPost, "/favorite/planet/5").Do(a.handler)
	helpers.AssertAPIError(t, rr, http.StatusUnauthorized, model.ErrCodeUnauthorized)

	rr = helpers.NewRequest(t, http.MethodPost, "/favorite/planet/5").
		WithHeader("Authorization", "Bearer "+jwtHelper.GenerateExpiredToken(t, g.User)).
		Do(a.handler)
	apiErr := helpers.AssertAPIError(t, rr, http.StatusUnauthorized, model.ErrCodeTokenExpired)
	assert.Equal(t, "token expired", apiErr.Message)

	// Reads stay public
	rr = helpers.NewRequest(t, http.MethodGet, "/planets").Do(a.handler)
	helpers.AssertStatus(t, rr, http.StatusOK)
}

func TestE2E_DeleteOtherUserForbidden(t *testing.T) {
	a := newJWTApp(t)
	jwtHelper := helpers.NewJWTHelper(t)
	alice := a.fixtures.CreateUser(t)
	bob := a.fixtures.CreateUser(t)

	rr := helpers.NewRequest(t, http.MethodDelete, "/users/"+itoa(bob.ID)).
		WithAuth(jwtHelper, alice).
		Do(a.handler)
	helpers.AssertAPIError(t, rr, http.StatusForbidden, model.ErrCodeForbidden)
}

func TestE2E_FixedUserMode(t *testing.T) {
	a := newApp(t, map[string]string{"AUTH_MODE": "fixed", "FIXED_USER_ID": "1"})
	user := a.fixtures.CreateUser(t)
	require.Equal(t, int64(1), user.ID)
	a.fixtures.CreateCharacter(t, model.Character{ID: 20, Name: "Yoda"})

	rr := helpers.NewRequest(t, http.MethodPost, "/favorite/characters/20").Do(a.handler)
	helpers.AssertStatus(t, rr, http.StatusCreated)

	favs, err := a.store.Repos.Favorites.ListByUser(context.Background(), model.KindCharacter, 1)
	require.NoError(t, err)
	require.Len(t, favs, 1)
	assert.Equal(t, int64(20), favs[0].EntityID)
}

func TestE2E_Health(t *testing.T) {
	a := newJWTApp(t)

	rr := helpers.NewRequest(t, http.MethodGet, "/health").Do(a.handler)

	helpers.AssertStatus(t, rr, http.StatusOK)
	assert.JSONEq(t, `{"status":"ok","database":"ok"}`, rr.Body.String())
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}
