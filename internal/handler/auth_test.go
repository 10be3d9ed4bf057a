package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/forgo/holocron/internal/model"
	"github.com/forgo/holocron/internal/service"
)

// ============================================================================
// Signup Tests
// ============================================================================

func TestSignup_ValidInput_ReturnsCreated(t *testing.T) {
	t.Parallel()
	tr := newTestRouter()

	rr := tr.serve(makeJSONRequest(http.MethodPost, "/signup", model.SignupRequest{
		Username: "leia",
		Email:    "leia@alderaan.gov",
		Name:     "Leia Organa",
		Password: "password123",
	}))

	if rr.Code != http.StatusCreated {
		t.Fatalf("expected status %d, got %d", http.StatusCreated, rr.Code)
	}
	body := rr.Body.String()
	if strings.Contains(body, "password") || strings.Contains(body, "hash") {
		t.Errorf("response must not expose credentials: %s", body)
	}
	var user model.User
	_ = json.Unmarshal(rr.Body.Bytes(), &user)
	if user.Username != "leia" {
		t.Errorf("unexpected user %+v", user)
	}
}

func TestSignup_ServiceErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		err       error
		wantCode  int
		wantField string
	}{
		{"email taken", service.ErrEmailAlreadyExists, http.StatusConflict, ""},
		{"username taken", service.ErrUsernameTaken, http.StatusConflict, ""},
		{"short password", service.ErrPasswordTooShort, http.StatusBadRequest, "password"},
		{"bad email", service.ErrInvalidEmail, http.StatusBadRequest, "email"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			tr := newTestRouter()
			tr.auth.signupFunc = func(context.Context, model.SignupRequest) (*model.User, error) {
				return nil, tt.err
			}

			rr := tr.serve(makeJSONRequest(http.MethodPost, "/signup", model.SignupRequest{Username: "x"}))

			if rr.Code != tt.wantCode {
				t.Errorf("expected status %d, got %d", tt.wantCode, rr.Code)
			}
			apiErr := parseErrorResponse(t, rr.Body.Bytes())
			if tt.wantField != "" && (len(apiErr.Errors) != 1 || apiErr.Errors[0].Field != tt.wantField) {
				t.Errorf("expected field error on %s, got %+v", tt.wantField, apiErr.Errors)
			}
		})
	}
}

func TestSignup_MalformedBody_Returns400(t *testing.T) {
	t.Parallel()
	tr := newTestRouter()

	req := httptest.NewRequest(http.MethodPost, "/signup", strings.NewReader("{not json"))
	rr := tr.serve(req)

	if rr.Code != http.StatusBadRequest {
		t.Errorf("expected status %d, got %d", http.StatusBadRequest, rr.Code)
	}
}

// ============================================================================
// Login Tests
// ============================================================================

func TestLogin_Success_ReturnsToken(t *testing.T) {
	t.Parallel()
	tr := newTestRouter()
	tr.auth.loginFunc = func(_ context.Context, req model.LoginRequest) (*service.LoginResult, error) {
		return &service.LoginResult{
			AccessToken: "token",
			TokenType:   "Bearer",
			ExpiresIn:   3600,
			User:        &model.User{ID: 1, Email: req.Email},
		}, nil
	}

	rr := tr.serve(makeJSONRequest(http.MethodPost, "/login", model.LoginRequest{Email: "leia@alderaan.gov", Password: "password123"}))

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rr.Code)
	}
	var result service.LoginResult
	_ = json.Unmarshal(rr.Body.Bytes(), &result)
	if result.AccessToken != "token" || result.TokenType != "Bearer" || result.User == nil {
		t.Errorf("unexpected login result %+v", result)
	}
}

func TestLogin_InvalidCredentials_Returns401(t *testing.T) {
	t.Parallel()
	tr := newTestRouter()
	tr.auth.loginFunc = func(context.Context, model.LoginRequest) (*service.LoginResult, error) {
		return nil, service.ErrInvalidCredentials
	}

	rr := tr.serve(makeJSONRequest(http.MethodPost, "/login", model.LoginRequest{Email: "a@b.co", Password: "nope"}))

	if rr.Code != http.StatusUnauthorized {
		t.Errorf("expected status %d, got %d", http.StatusUnauthorized, rr.Code)
	}
}

// ============================================================================
// User Tests
// ============================================================================

func TestUserList_ReturnsArray(t *testing.T) {
	t.Parallel()
	tr := newTestRouter()
	tr.users.listFunc = func(context.Context) ([]*model.User, error) {
		return []*model.User{{ID: 1, Username: "luke", Hash: "secret"}}, nil
	}

	rr := tr.serve(httptest.NewRequest(http.MethodGet, "/users", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rr.Code)
	}
	if strings.Contains(rr.Body.String(), "secret") {
		t.Error("password hash must not be serialized")
	}
}

func TestUserDelete_OtherUser_Returns403(t *testing.T) {
	t.Parallel()
	tr := newTestRouter()
	tr.userID = 1
	tr.users.deleteFunc = func(_ context.Context, actorID, id int64) error {
		if actorID != id {
			return service.ErrForbidden
		}
		return nil
	}

	rr := tr.serve(httptest.NewRequest(http.MethodDelete, "/users/2", nil))

	if rr.Code != http.StatusForbidden {
		t.Errorf("expected status %d, got %d", http.StatusForbidden, rr.Code)
	}
}

func TestUserDelete_Self_ReturnsOK(t *testing.T) {
	t.Parallel()
	tr := newTestRouter()
	tr.userID = 2

	rr := tr.serve(httptest.NewRequest(http.MethodDelete, "/users/2", nil))

	if rr.Code != http.StatusOK {
		t.Errorf("expected status %d, got %d", http.StatusOK, rr.Code)
	}
}

// ============================================================================
// Health Tests
// ============================================================================

func TestHealth(t *testing.T) {
	t.Parallel()

	tr := newTestRouter()
	rr := tr.serve(httptest.NewRequest(http.MethodGet, "/health", nil))
	if rr.Code != http.StatusOK {
		t.Errorf("expected status %d, got %d", http.StatusOK, rr.Code)
	}

	tr.pingErr = errors.New("connection refused")
	rr = tr.serve(httptest.NewRequest(http.MethodGet, "/health", nil))
	if rr.Code != http.StatusServiceUnavailable {
		t.Errorf("expected status %d, got %d", http.StatusServiceUnavailable, rr.Code)
	}
	var health HealthResponse
	_ = json.Unmarshal(rr.Body.Bytes(), &health)
	if health.Database != "unreachable" {
		t.Errorf("unexpected health body %+v", health)
	}
}
