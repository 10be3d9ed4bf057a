// Package middleware provides HTTP middleware for the Holocron API.
//
// # Available Middleware
//
//   - RequestID: propagates or generates an X-Request-ID
//   - Logger: one structured slog line per request
//   - Recovery: converts panics into a JSON 500
//   - CORS: origin allow-list and preflight handling
//   - Auth: bearer token validation (AUTH_MODE=jwt)
//   - FixedUser: acts as a configured user on every request (AUTH_MODE=fixed)
//
// # Authentication
//
// Handlers never parse credentials. They read the already-resolved user:
//
//	userID := middleware.GetUserID(r.Context())
//
// Both Auth and FixedUser store the id under UserIDKey, so handlers behave
// the same whichever mode the server runs in.
//
// # Usage
//
//	handler := middleware.Chain(mux,
//	    middleware.RequestID,
//	    middleware.Logger(logger),
//	    middleware.Recovery,
//	    middleware.CORS(cfg.Server.CORSAllowedOrigins),
//	)
package middleware
