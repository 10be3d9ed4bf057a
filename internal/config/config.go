package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/forgo/holocron/internal/database"
)

// Supported AUTH_MODE values
const (
	AuthModeJWT   = "jwt"
	AuthModeFixed = "fixed"
)

// Config holds all application configuration
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Auth     AuthConfig
	Log      LogConfig
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port           string
	Env            string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	AllowedOrigins []string
}

// DatabaseConfig selects the store backend and holds its connection settings.
// URL is used by the SQL drivers, the remaining fields by SurrealDB.
type DatabaseConfig struct {
	Driver    string
	URL       string
	Debug     bool
	Host      string
	Port      string
	Namespace string
	Database  string
	User      string
	Password  string
}

// AuthConfig holds current-user resolution and token settings
type AuthConfig struct {
	Mode           string
	Secret         string
	Issuer         string
	ExpirationMins int
	FixedUserID    int64
	BcryptCost     int
}

// LogConfig holds slog settings
type LogConfig struct {
	Level  string
	Format string
}

// Load reads an optional .env file and then configuration from environment
// variables with sensible defaults
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}
	return FromLookup(os.Getenv), nil
}

// FromLookup builds the configuration from an arbitrary key lookup.
// Empty values fall back to defaults.
func FromLookup(lookup func(string) string) *Config {
	e := env(lookup)

	databaseURL := e.str("DATABASE_URL", "")
	driver := strings.ToLower(e.str("DB_DRIVER", ""))
	if driver == "" {
		driver = database.DriverFromURL(databaseURL)
	}

	return &Config{
		Server: ServerConfig{
			Port:           e.str("PORT", "3000"),
			Env:            e.str("SERVER_ENV", "development"),
			ReadTimeout:    e.duration("SERVER_READ_TIMEOUT", 15*time.Second),
			WriteTimeout:   e.duration("SERVER_WRITE_TIMEOUT", 15*time.Second),
			AllowedOrigins: e.slice("CORS_ALLOWED_ORIGINS", []string{"*"}),
		},
		Database: DatabaseConfig{
			Driver:    driver,
			URL:       databaseURL,
			Debug:     e.boolean("DB_DEBUG", false),
			Host:      e.str("DB_HOST", "localhost"),
			Port:      e.str("DB_PORT", "8000"),
			Namespace: e.str("DB_NAMESPACE", "holocron"),
			Database:  e.str("DB_DATABASE", "main"),
			User:      e.str("DB_USER", "root"),
			Password:  e.str("DB_PASSWORD", "root"),
		},
		Auth: AuthConfig{
			Mode:           strings.ToLower(e.str("AUTH_MODE", AuthModeJWT)),
			Secret:         e.str("JWT_SECRET", e.str("SECRET_KEY", "")),
			Issuer:         e.str("JWT_ISSUER", "holocron"),
			ExpirationMins: e.integer("JWT_EXPIRATION_MINS", 60),
			FixedUserID:    int64(e.integer("FIXED_USER_ID", 1)),
			BcryptCost:     e.integer("BCRYPT_COST", 12),
		},
		Log: LogConfig{
			Level:  strings.ToLower(e.str("LOG_LEVEL", "info")),
			Format: strings.ToLower(e.str("LOG_FORMAT", "json")),
		},
	}
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Server.Env == "development"
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	return c.Server.Env == "production"
}

// Validate checks that all required configuration values are present and valid.
// It returns an error describing all validation failures, or nil if valid.
func (c *Config) Validate() error {
	var errs []error

	// Server validation
	if c.Server.Port == "" {
		errs = append(errs, errors.New("PORT is required"))
	}
	if c.Server.Env != "development" && c.Server.Env != "production" && c.Server.Env != "test" {
		errs = append(errs, fmt.Errorf("SERVER_ENV must be 'development', 'production', or 'test', got '%s'", c.Server.Env))
	}
	if len(c.Server.AllowedOrigins) == 0 {
		errs = append(errs, errors.New("CORS_ALLOWED_ORIGINS must have at least one origin"))
	}

	// Database validation
	if err := c.Database.Validate(); err != nil {
		errs = append(errs, err)
	}

	// Auth validation
	switch c.Auth.Mode {
	case AuthModeJWT:
		if c.Auth.Secret == "" {
			errs = append(errs, errors.New("JWT_SECRET (or SECRET_KEY) is required when AUTH_MODE is jwt"))
		}
		if c.Auth.ExpirationMins <= 0 {
			errs = append(errs, errors.New("JWT_EXPIRATION_MINS must be positive"))
		}
	case AuthModeFixed:
		if c.Auth.FixedUserID <= 0 {
			errs = append(errs, errors.New("FIXED_USER_ID must be positive"))
		}
		if c.IsProduction() {
			errs = append(errs, errors.New("AUTH_MODE fixed is not allowed in production"))
		}
	default:
		errs = append(errs, fmt.Errorf("AUTH_MODE must be 'jwt' or 'fixed', got '%s'", c.Auth.Mode))
	}
	if c.Auth.BcryptCost < 4 || c.Auth.BcryptCost > 31 {
		errs = append(errs, errors.New("BCRYPT_COST must be between 4 and 31"))
	}

	// Log validation
	if _, err := c.Log.level(); err != nil {
		errs = append(errs, err)
	}
	if c.Log.Format != "json" && c.Log.Format != "text" {
		errs = append(errs, fmt.Errorf("LOG_FORMAT must be 'json' or 'text', got '%s'", c.Log.Format))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// Validate checks the settings the selected driver needs
func (d DatabaseConfig) Validate() error {
	var errs []error

	switch d.Driver {
	case database.DriverSurrealDB:
		if d.Host == "" {
			errs = append(errs, errors.New("DB_HOST is required for surrealdb"))
		}
		if d.Port == "" {
			errs = append(errs, errors.New("DB_PORT is required for surrealdb"))
		}
		if d.Namespace == "" {
			errs = append(errs, errors.New("DB_NAMESPACE is required for surrealdb"))
		}
		if d.Database == "" {
			errs = append(errs, errors.New("DB_DATABASE is required for surrealdb"))
		}
	case database.DriverPostgres, database.DriverSQLite:
		if d.URL == "" {
			errs = append(errs, fmt.Errorf("DATABASE_URL is required for %s", d.Driver))
		}
	default:
		errs = append(errs, fmt.Errorf("DB_DRIVER must be 'surrealdb', 'postgres', or 'sqlite', got '%s'", d.Driver))
	}

	return errors.Join(errs...)
}

// SurrealConfig returns the SurrealDB connection settings
func (d DatabaseConfig) SurrealConfig() database.Config {
	return database.Config{
		Host:      d.Host,
		Port:      d.Port,
		User:      d.User,
		Password:  d.Password,
		Namespace: d.Namespace,
		Database:  d.Database,
	}
}

// SQLConfig returns the GORM connection settings
func (d DatabaseConfig) SQLConfig() database.SQLConfig {
	return database.SQLConfig{Driver: d.Driver, URL: d.URL, Debug: d.Debug}
}

// NewLogger builds the process logger writing to w
func (l LogConfig) NewLogger(w io.Writer) *slog.Logger {
	level, err := l.level()
	if err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	if l.Format == "text" {
		return slog.New(slog.NewTextHandler(w, opts))
	}
	return slog.New(slog.NewJSONHandler(w, opts))
}

func (l LogConfig) level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(l.Level)); err != nil {
		return slog.LevelInfo, fmt.Errorf("LOG_LEVEL must be debug, info, warn or error, got '%s'", l.Level)
	}
	return level, nil
}

// Helper functions for reading environment variables

type env func(string) string

func (e env) str(key, defaultValue string) string {
	if value := strings.TrimSpace(e(key)); value != "" {
		return value
	}
	return defaultValue
}

func (e env) integer(key string, defaultValue int) int {
	if value := e(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func (e env) duration(key string, defaultValue time.Duration) time.Duration {
	if value := e(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func (e env) slice(key string, defaultValue []string) []string {
	value := e(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func (e env) boolean(key string, defaultValue bool) bool {
	if value := e(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}
