// Package helpers provides test utility functions for end-to-end tests.
//
// # JWT Helpers
//
// Tokens signed with the same secret and issuer the test server is
// configured with (see TestAuthEnv):
//
//	jwtHelper := helpers.NewJWTHelper(t)
//	token := jwtHelper.GenerateToken(t, user)
//
// # Requests
//
//	rr := helpers.NewRequest(t, http.MethodPost, "/favorite/planet/1").
//	    WithAuth(jwtHelper, user).
//	    Do(app)
//
// # Assertions
//
//	helpers.AssertStatus(t, rr, http.StatusCreated)
//	helpers.AssertAPIError(t, rr, http.StatusConflict, model.ErrCodeConflict)
//	helpers.AssertValidationError(t, rr, "kind")
package helpers
