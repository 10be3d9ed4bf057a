package sqlstore

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/forgo/holocron/internal/model"
)

// CatalogStore handles data access for one catalog entity kind.
// T is the domain type, R its table row.
type CatalogStore[T any, R any] struct {
	db         *gorm.DB
	kind       model.EntityKind
	toRecord   func(*T) *R
	fromRecord func(*R) *T
	idOf       func(*T) int64
	setID      func(*T, int64)
}

// NewPlanetStore creates a planet store
func NewPlanetStore(db *gorm.DB) *CatalogStore[model.Planet, planetRecord] {
	return &CatalogStore[model.Planet, planetRecord]{
		db:   db,
		kind: model.KindPlanet,
		toRecord: func(p *model.Planet) *planetRecord {
			return &planetRecord{ID: p.ID, Name: p.Name, Climate: p.Climate, Terrain: p.Terrain, Population: p.Population}
		},
		fromRecord: func(r *planetRecord) *model.Planet {
			return &model.Planet{ID: r.ID, Name: r.Name, Climate: r.Climate, Terrain: r.Terrain, Population: r.Population}
		},
		idOf:  func(p *model.Planet) int64 { return p.ID },
		setID: func(p *model.Planet, id int64) { p.ID = id },
	}
}

// NewCharacterStore creates a character store
func NewCharacterStore(db *gorm.DB) *CatalogStore[model.Character, characterRecord] {
	return &CatalogStore[model.Character, characterRecord]{
		db:   db,
		kind: model.KindCharacter,
		toRecord: func(c *model.Character) *characterRecord {
			return &characterRecord{ID: c.ID, Name: c.Name, Species: c.Species, Homeworld: c.Homeworld}
		},
		fromRecord: func(r *characterRecord) *model.Character {
			return &model.Character{ID: r.ID, Name: r.Name, Species: r.Species, Homeworld: r.Homeworld}
		},
		idOf:  func(c *model.Character) int64 { return c.ID },
		setID: func(c *model.Character, id int64) { c.ID = id },
	}
}

// NewVehicleStore creates a vehicle store
func NewVehicleStore(db *gorm.DB) *CatalogStore[model.Vehicle, vehicleRecord] {
	return &CatalogStore[model.Vehicle, vehicleRecord]{
		db:   db,
		kind: model.KindVehicle,
		toRecord: func(v *model.Vehicle) *vehicleRecord {
			return &vehicleRecord{ID: v.ID, Name: v.Name, Model: v.Model, HP: v.HP}
		},
		fromRecord: func(r *vehicleRecord) *model.Vehicle {
			return &model.Vehicle{ID: r.ID, Name: r.Name, Model: r.Model, HP: r.HP}
		},
		idOf:  func(v *model.Vehicle) int64 { return v.ID },
		setID: func(v *model.Vehicle, id int64) { v.ID = id },
	}
}

// GetAll retrieves every entity of the kind ordered by id
func (s *CatalogStore[T, R]) GetAll(ctx context.Context) ([]*T, error) {
	var rows []R
	if err := s.db.WithContext(ctx).Order("id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("listing %s: %w", s.kind.Plural(), translate(err))
	}

	items := make([]*T, 0, len(rows))
	for i := range rows {
		items = append(items, s.fromRecord(&rows[i]))
	}
	return items, nil
}

// GetByID retrieves an entity by ID, returning nil when it does not exist
func (s *CatalogStore[T, R]) GetByID(ctx context.Context, id int64) (*T, error) {
	var row R
	err := s.db.WithContext(ctx).Where("id = ?", id).Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, translate(err)
	}
	return s.fromRecord(&row), nil
}

// Create inserts an entity. A zero ID is replaced by max(id)+1.
func (s *CatalogStore[T, R]) Create(ctx context.Context, entity *T) (*T, error) {
	item := *entity

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if s.idOf(&item) == 0 {
			var maxID int64
			if err := tx.Model(new(R)).Select("COALESCE(MAX(id), 0)").Scan(&maxID).Error; err != nil {
				return err
			}
			s.setID(&item, maxID+1)
		}
		return tx.Create(s.toRecord(&item)).Error
	})
	if err != nil {
		return nil, translate(err)
	}
	return &item, nil
}

// Delete removes an entity and every favorite that references it.
// Returns false when the entity did not exist.
func (s *CatalogStore[T, R]) Delete(ctx context.Context, id int64) (bool, error) {
	fav, err := favoriteModel(s.kind)
	if err != nil {
		return false, err
	}

	var deleted bool
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where(map[string]interface{}{s.kind.ForeignKey(): id}).Delete(fav).Error; err != nil {
			return err
		}
		res := tx.Where("id = ?", id).Delete(new(R))
		if res.Error != nil {
			return res.Error
		}
		deleted = res.RowsAffected > 0
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("deleting %s %d: %w", s.kind, id, translate(err))
	}
	return deleted, nil
}
