package database

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Supported DB_DRIVER values
const (
	DriverSurrealDB = "surrealdb"
	DriverPostgres  = "postgres"
	DriverSQLite    = "sqlite"
)

// SQLConfig holds settings for the GORM-backed drivers
type SQLConfig struct {
	Driver string // postgres or sqlite
	URL    string // postgres://... or sqlite:///path, a bare path, or a file: DSN
	Debug  bool   // log every statement
	Logger *slog.Logger
}

// OpenSQL opens a GORM connection for PostgreSQL or SQLite.
// Driver errors are translated so unique violations surface as gorm.ErrDuplicatedKey.
func OpenSQL(cfg SQLConfig) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case DriverPostgres:
		dialector = postgres.Open(cfg.URL)
	case DriverSQLite:
		dialector = sqlite.Open(SQLiteDSN(cfg.URL))
	default:
		return nil, fmt.Errorf("%w: unsupported sql driver %q", ErrConnection, cfg.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         newGormLogger(cfg.Logger, cfg.Debug),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConnection, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConnection, err)
	}
	if cfg.Driver == DriverSQLite {
		// SQLite serializes writers; a single connection avoids "database is locked".
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetMaxOpenConns(50)
		sqlDB.SetConnMaxLifetime(time.Hour)
	}

	return db, nil
}

// newGormLogger routes GORM output through slog. Statements are logged only
// in debug mode; otherwise only failed queries are, at error level.
func newGormLogger(l *slog.Logger, debug bool) logger.Interface {
	if l == nil {
		l = slog.Default()
	}
	level, slogLevel := logger.Error, slog.LevelError
	if debug {
		level, slogLevel = logger.Info, slog.LevelInfo
	}
	return expectedErrors{logger.New(slog.NewLogLogger(l.Handler(), slogLevel), logger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  level,
		IgnoreRecordNotFoundError: true,
		Colorful:                  false,
	})}
}

// expectedErrors drops errors the stores turn into results (absent rows,
// unique violations) before they reach the GORM logger
type expectedErrors struct {
	logger.Interface
}

func (l expectedErrors) LogMode(level logger.LogLevel) logger.Interface {
	return expectedErrors{l.Interface.LogMode(level)}
}

func (l expectedErrors) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if errors.Is(err, gorm.ErrRecordNotFound) || errors.Is(err, gorm.ErrDuplicatedKey) {
		err = nil
	}
	l.Interface.Trace(ctx, begin, fc, err)
}

// SQLiteDSN turns a sqlite:// URL or plain path into a DSN with foreign keys enabled.
func SQLiteDSN(url string) string {
	// sqlite:///rel.db is relative, sqlite:////abs.db is absolute
	dsn := strings.TrimPrefix(url, "sqlite:///")
	if strings.Contains(dsn, "_foreign_keys=") {
		return dsn
	}
	if strings.Contains(dsn, "?") {
		return dsn + "&_foreign_keys=on"
	}
	return dsn + "?_foreign_keys=on"
}

// DriverFromURL infers the DB_DRIVER value from a DATABASE_URL.
func DriverFromURL(url string) string {
	switch {
	case url == "":
		return DriverSurrealDB
	case strings.HasPrefix(url, "postgres://"), strings.HasPrefix(url, "postgresql://"):
		return DriverPostgres
	default:
		return DriverSQLite
	}
}
