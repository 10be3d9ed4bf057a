// Package config manages application configuration for the Holocron API.
//
// Configuration comes from environment variables, optionally seeded from a
// .env file in the working directory:
//
//	cfg, err := config.Load()
//	if err != nil { ... }
//	if err := cfg.Validate(); err != nil { ... }
//
// FromLookup accepts any key lookup, which lets holocronctl layer viper
// (config file, HOLOCRON_* variables, flags) over the same keys.
//
// # Configuration Groups
//
//   - ServerConfig: port, environment, timeouts, CORS origins
//   - DatabaseConfig: backend driver plus SQL URL or SurrealDB settings
//   - AuthConfig: jwt or fixed current-user mode, signing secret
//   - LogConfig: slog level and format
//
// # Environment Variables
//
//	PORT                 - HTTP server port (default: 3000)
//	SERVER_ENV           - development, production or test
//	DB_DRIVER            - surrealdb, postgres or sqlite (inferred from DATABASE_URL)
//	DATABASE_URL         - postgres://... or sqlite:///path
//	DB_HOST, DB_PORT     - SurrealDB endpoint
//	DB_NAMESPACE         - SurrealDB namespace
//	DB_DATABASE          - SurrealDB database
//	AUTH_MODE            - jwt (default) or fixed
//	JWT_SECRET           - HS256 signing secret (SECRET_KEY accepted)
//	JWT_EXPIRATION_MINS  - token lifetime (default: 60)
//	FIXED_USER_ID        - acting user when AUTH_MODE=fixed (default: 1)
//	LOG_LEVEL            - debug, info, warn, error
//	LOG_FORMAT           - json or text
package config
