// Package bootstrap opens the configured storage backend and exposes it as
// the repository set the services consume.
package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"gorm.io/gorm"

	"github.com/forgo/holocron/internal/config"
	"github.com/forgo/holocron/internal/database"
	"github.com/forgo/holocron/internal/repository"
	"github.com/forgo/holocron/internal/service"
	"github.com/forgo/holocron/internal/sqlstore"
	"github.com/forgo/holocron/migrations"
)

// Store is an open backend: its repositories plus lifecycle hooks
type Store struct {
	Driver string
	Repos  service.Repositories

	surreal *database.SurrealDB
	gormDB  *gorm.DB
	sqlDB   *sql.DB
	logger  *slog.Logger
}

// Open connects to the backend named by cfg.Driver
func Open(ctx context.Context, cfg config.DatabaseConfig, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}

	switch cfg.Driver {
	case database.DriverSurrealDB:
		db := database.NewSurrealDB(cfg.SurrealConfig())
		if err := db.Connect(ctx); err != nil {
			return nil, fmt.Errorf("connecting to surrealdb: %w", err)
		}
		logger.Info("connected to database",
			slog.String("driver", cfg.Driver),
			slog.String("host", cfg.Host),
			slog.String("namespace", cfg.Namespace),
			slog.String("database", cfg.Database),
		)
		return &Store{
			Driver:  cfg.Driver,
			Repos:   SurrealRepositories(db),
			surreal: db,
			logger:  logger,
		}, nil

	case database.DriverPostgres, database.DriverSQLite:
		sqlCfg := cfg.SQLConfig()
		sqlCfg.Logger = logger
		gdb, err := database.OpenSQL(sqlCfg)
		if err != nil {
			return nil, err
		}
		sqlDB, err := gdb.DB()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", database.ErrConnection, err)
		}
		if err := sqlDB.PingContext(ctx); err != nil {
			_ = sqlDB.Close()
			return nil, fmt.Errorf("%w: %v", database.ErrConnection, err)
		}
		logger.Info("connected to database", slog.String("driver", cfg.Driver))
		return &Store{
			Driver: cfg.Driver,
			Repos:  SQLRepositories(gdb),
			gormDB: gdb,
			sqlDB:  sqlDB,
			logger: logger,
		}, nil

	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.Driver)
	}
}

// SurrealRepositories builds the repository set over a SurrealDB connection
func SurrealRepositories(db database.Database) service.Repositories {
	return service.Repositories{
		Planets:    repository.NewPlanetRepository(db),
		Characters: repository.NewCharacterRepository(db),
		Vehicles:   repository.NewVehicleRepository(db),
		Users:      repository.NewUserRepository(db),
		Favorites:  repository.NewFavoriteRepository(db),
	}
}

// SQLRepositories builds the repository set over a GORM connection
func SQLRepositories(db *gorm.DB) service.Repositories {
	return service.Repositories{
		Planets:    sqlstore.NewPlanetStore(db),
		Characters: sqlstore.NewCharacterStore(db),
		Vehicles:   sqlstore.NewVehicleStore(db),
		Users:      sqlstore.NewUserStore(db),
		Favorites:  sqlstore.NewFavoriteStore(db),
	}
}

// Migrate applies the schema for the open backend
func (s *Store) Migrate(ctx context.Context) error {
	if s.surreal != nil {
		n, err := database.ApplyMigrations(ctx, s.surreal, migrations.FS)
		if err != nil {
			return err
		}
		s.logger.Info("applied migrations", slog.Int("files", n))
		return nil
	}
	if err := sqlstore.Migrate(s.gormDB.WithContext(ctx)); err != nil {
		return err
	}
	s.logger.Info("migrated tables", slog.String("driver", s.Driver))
	return nil
}

// Ping reports whether the backend is reachable
func (s *Store) Ping(ctx context.Context) error {
	if s.surreal != nil {
		return s.surreal.Ping(ctx)
	}
	return s.sqlDB.PingContext(ctx)
}

// Close releases the connection
func (s *Store) Close() error {
	if s.surreal != nil {
		return s.surreal.Close()
	}
	return s.sqlDB.Close()
}
