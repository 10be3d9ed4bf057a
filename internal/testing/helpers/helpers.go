// Package helpers provides common test utilities for end-to-end testing.
//
// This package includes JWT token generation, HTTP request builders and
// assertion helpers for the API's JSON error bodies.
package helpers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"

	"github.com/forgo/holocron/internal/model"
	"github.com/forgo/holocron/pkg/jwt"
)

// Test token settings shared by NewJWTHelper and TestAuthEnv
const (
	TestSecret = "holocron-test-secret"
	TestIssuer = "holocron-test"
)

// ============================================================================
// JWT Helpers
// ============================================================================

// JWTHelper provides JWT token generation for tests
type JWTHelper struct {
	service *jwt.Service
}

// NewJWTHelper creates a JWT helper signing with TestSecret and TestIssuer
func NewJWTHelper(t *testing.T) *JWTHelper {
	t.Helper()

	svc, err := jwt.NewService(jwt.Config{
		Secret:         TestSecret,
		Issuer:         TestIssuer,
		ExpirationMins: 15,
	})
	if err != nil {
		t.Fatalf("helpers: failed to create JWT service: %v", err)
	}
	return &JWTHelper{service: svc}
}

// GenerateToken creates a valid JWT token for the user
func (h *JWTHelper) GenerateToken(t *testing.T, user *model.User) string {
	t.Helper()
	token, err := h.service.Sign(user.ID, user.Username)
	if err != nil {
		t.Fatalf("helpers: failed to sign token: %v", err)
	}
	return token
}

// GenerateExpiredToken creates an expired JWT token for the user
func (h *JWTHelper) GenerateExpiredToken(t *testing.T, user *model.User) string {
	t.Helper()
	claims := jwt.Claims{UserID: user.ID, Username: user.Username}
	claims.ExpiresAt = gojwt.NewNumericDate(time.Now().Add(-1 * time.Hour))

	token, err := h.service.SignClaims(claims)
	if err != nil {
		t.Fatalf("helpers: failed to sign token: %v", err)
	}
	return token
}

// TestAuthEnv returns the AUTH_* variables matching NewJWTHelper
func TestAuthEnv() map[string]string {
	return map[string]string{
		"AUTH_MODE":  "jwt",
		"JWT_SECRET": TestSecret,
		"JWT_ISSUER": TestIssuer,
	}
}

// ============================================================================
// HTTP Request Helpers
// ============================================================================

// RequestBuilder helps construct HTTP requests for testing
type RequestBuilder struct {
	t       *testing.T
	method  string
	path    string
	body    interface{}
	headers map[string]string
	jwt     *JWTHelper
	user    *model.User
}

// NewRequest creates a new request builder
func NewRequest(t *testing.T, method, path string) *RequestBuilder {
	t.Helper()
	return &RequestBuilder{
		t:       t,
		method:  method,
		path:    path,
		headers: make(map[string]string),
	}
}

// WithBody sets the request body (will be JSON encoded)
func (rb *RequestBuilder) WithBody(body interface{}) *RequestBuilder {
	rb.body = body
	return rb
}

// WithHeader adds a header to the request
func (rb *RequestBuilder) WithHeader(key, value string) *RequestBuilder {
	rb.headers[key] = value
	return rb
}

// WithAuth adds a bearer token for the given user
func (rb *RequestBuilder) WithAuth(jwt *JWTHelper, user *model.User) *RequestBuilder {
	rb.jwt = jwt
	rb.user = user
	return rb
}

// Build creates the HTTP request
func (rb *RequestBuilder) Build() *http.Request {
	rb.t.Helper()

	var bodyReader io.Reader
	if rb.body != nil {
		bodyBytes, err := json.Marshal(rb.body)
		if err != nil {
			rb.t.Fatalf("helpers: failed to marshal body: %v", err)
		}
		bodyReader = bytes.NewReader(bodyBytes)
	}

	req := httptest.NewRequest(rb.method, rb.path, bodyReader)

	// Set content type for requests with body
	if rb.body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	// Add custom headers
	for k, v := range rb.headers {
		req.Header.Set(k, v)
	}

	// Add auth header
	if rb.jwt != nil && rb.user != nil {
		req.Header.Set("Authorization", "Bearer "+rb.jwt.GenerateToken(rb.t, rb.user))
	}

	return req
}

// Do builds the request and serves it through h
func (rb *RequestBuilder) Do(h http.Handler) *httptest.ResponseRecorder {
	rb.t.Helper()
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, rb.Build())
	return rr
}

// ============================================================================
// Response Assertion Helpers
// ============================================================================

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, resp *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if resp.Code != expected {
		t.Errorf("expected status %d, got %d. Body: %s", expected, resp.Code, resp.Body.String())
	}
}

// AssertAPIError validates an error response body
func AssertAPIError(t *testing.T, resp *httptest.ResponseRecorder, expectedStatus int, expectedCode model.ErrorCode) *model.APIError {
	t.Helper()

	AssertStatus(t, resp, expectedStatus)

	var apiErr model.APIError
	bodyBytes := resp.Body.Bytes()
	if err := json.Unmarshal(bodyBytes, &apiErr); err != nil {
		t.Fatalf("failed to decode error body: %v. Body: %s", err, string(bodyBytes))
	}

	if apiErr.StatusCode != expectedStatus {
		t.Errorf("expected status_code %d, got %d", expectedStatus, apiErr.StatusCode)
	}
	if expectedCode != 0 && apiErr.Code != expectedCode {
		t.Errorf("expected code %d, got %d", expectedCode, apiErr.Code)
	}
	return &apiErr
}

// AssertValidationError checks for a validation error on a specific field
func AssertValidationError(t *testing.T, resp *httptest.ResponseRecorder, field string) {
	t.Helper()

	apiErr := AssertAPIError(t, resp, http.StatusBadRequest, model.ErrCodeValidation)
	for _, fe := range apiErr.Errors {
		if fe.Field == field {
			return // Found the expected field error
		}
	}

	t.Errorf("expected validation error on field %q, but not found. Errors: %+v", field, apiErr.Errors)
}

// DecodeResponse decodes the response body into the given struct
func DecodeResponse(t *testing.T, resp *httptest.ResponseRecorder, v interface{}) {
	t.Helper()

	bodyBytes := resp.Body.Bytes()
	if err := json.Unmarshal(bodyBytes, v); err != nil {
		t.Fatalf("failed to decode response: %v. Body: %s", err, string(bodyBytes))
	}
}

// ============================================================================
// Utility Helpers
// ============================================================================

// StringPtr returns a pointer to s
func StringPtr(s string) *string {
	return &s
}

// Int64Ptr returns a pointer to i
func Int64Ptr(i int64) *int64 {
	return &i
}
