// Package sqlstore implements the repositories on PostgreSQL or SQLite through GORM.
//
// It satisfies the same service interfaces as the SurrealDB repository
// package. Favorites live in one join table per entity kind with a
// composite (user, entity) primary key and ON DELETE CASCADE foreign keys.
// Deletes also remove favorites explicitly inside the same transaction so
// SQLite connections opened without foreign key enforcement stay consistent.
package sqlstore

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/forgo/holocron/internal/database"
	"github.com/forgo/holocron/internal/model"
)

// Migrate creates or updates every table
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(allRecords()...); err != nil {
		return fmt.Errorf("%w: auto migrate: %v", database.ErrQuery, err)
	}
	return nil
}

// translate maps GORM errors onto the database sentinels
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%w: %v", database.ErrDuplicate, err)
	case errors.Is(err, gorm.ErrRecordNotFound):
		return database.ErrNotFound
	case errors.Is(err, database.ErrDuplicate), errors.Is(err, database.ErrQuery):
		return err
	default:
		return fmt.Errorf("%w: %v", database.ErrQuery, err)
	}
}

// favoriteModel returns the join table model for a kind
func favoriteModel(kind model.EntityKind) (interface{}, error) {
	switch kind {
	case model.KindPlanet:
		return &favoritePlanetRecord{}, nil
	case model.KindCharacter:
		return &favoriteCharacterRecord{}, nil
	case model.KindVehicle:
		return &favoriteVehicleRecord{}, nil
	}
	return nil, fmt.Errorf("%w: unknown entity kind %q", database.ErrQuery, kind)
}
