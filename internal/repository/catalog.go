package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/forgo/holocron/internal/database"
	"github.com/forgo/holocron/internal/model"
)

// catalogCodec maps one entity kind to and from SurrealDB records
type catalogCodec[T any] struct {
	kind    model.EntityKind
	id      func(*T) int64
	content func(*T) map[string]interface{}
	decode  func(id int64, m map[string]interface{}) *T
}

// CatalogRepository handles data access for one catalog entity kind
type CatalogRepository[T any] struct {
	db    database.Database
	codec catalogCodec[T]
}

// NewPlanetRepository creates a planet repository
func NewPlanetRepository(db database.Database) *CatalogRepository[model.Planet] {
	return &CatalogRepository[model.Planet]{db: db, codec: catalogCodec[model.Planet]{
		kind: model.KindPlanet,
		id:   func(p *model.Planet) int64 { return p.ID },
		content: func(p *model.Planet) map[string]interface{} {
			c := map[string]interface{}{"name": p.Name}
			putIfSet(c, "climate", p.Climate)
			putIfSet(c, "terrain", p.Terrain)
			putIfSet(c, "population", p.Population)
			return c
		},
		decode: func(id int64, m map[string]interface{}) *model.Planet {
			return &model.Planet{
				ID:         id,
				Name:       getString(m, "name"),
				Climate:    getStringPtr(m, "climate"),
				Terrain:    getStringPtr(m, "terrain"),
				Population: getInt64Ptr(m, "population"),
			}
		},
	}}
}

// NewCharacterRepository creates a character repository
func NewCharacterRepository(db database.Database) *CatalogRepository[model.Character] {
	return &CatalogRepository[model.Character]{db: db, codec: catalogCodec[model.Character]{
		kind: model.KindCharacter,
		id:   func(c *model.Character) int64 { return c.ID },
		content: func(ch *model.Character) map[string]interface{} {
			c := map[string]interface{}{"name": ch.Name}
			putIfSet(c, "species", ch.Species)
			putIfSet(c, "homeworld", ch.Homeworld)
			return c
		},
		decode: func(id int64, m map[string]interface{}) *model.Character {
			return &model.Character{
				ID:        id,
				Name:      getString(m, "name"),
				Species:   getStringPtr(m, "species"),
				Homeworld: getStringPtr(m, "homeworld"),
			}
		},
	}}
}

// NewVehicleRepository creates a vehicle repository
func NewVehicleRepository(db database.Database) *CatalogRepository[model.Vehicle] {
	return &CatalogRepository[model.Vehicle]{db: db, codec: catalogCodec[model.Vehicle]{
		kind: model.KindVehicle,
		id:   func(v *model.Vehicle) int64 { return v.ID },
		content: func(v *model.Vehicle) map[string]interface{} {
			c := map[string]interface{}{"name": v.Name}
			putIfSet(c, "model", v.Model)
			putIfSet(c, "hp", v.HP)
			return c
		},
		decode: func(id int64, m map[string]interface{}) *model.Vehicle {
			return &model.Vehicle{
				ID:    id,
				Name:  getString(m, "name"),
				Model: getStringPtr(m, "model"),
				HP:    getInt64Ptr(m, "hp"),
			}
		},
	}}
}

// Kind returns the entity kind this repository stores
func (r *CatalogRepository[T]) Kind() model.EntityKind {
	return r.codec.kind
}

// GetAll retrieves every entity of the kind ordered by id
func (r *CatalogRepository[T]) GetAll(ctx context.Context) ([]*T, error) {
	query := `SELECT * FROM type::table($tb) ORDER BY id`
	vars := map[string]interface{}{"tb": r.codec.kind.Table()}

	result, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", r.codec.kind.Plural(), err)
	}

	return r.parseRecords(statementRecords(result, 0))
}

// GetByID retrieves an entity by ID, returning nil when it does not exist
func (r *CatalogRepository[T]) GetByID(ctx context.Context, id int64) (*T, error) {
	query := `SELECT * FROM $id`
	vars := map[string]interface{}{"id": recordID(r.codec.kind.Table(), id)}

	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	data, ok := asRecord(result)
	if !ok {
		return nil, nil
	}
	return r.parseRecord(data)
}

// Create inserts an entity, allocating the next id when none is set
func (r *CatalogRepository[T]) Create(ctx context.Context, entity *T) (*T, error) {
	query := `
		LET $next = IF $given > 0 THEN $given ELSE (math::max((SELECT VALUE record::id(id) FROM type::table($tb))) ?? 0) + 1 END;
		CREATE type::thing($tb, $next) CONTENT $content;
	`
	vars := map[string]interface{}{
		"tb":      r.codec.kind.Table(),
		"given":   r.codec.id(entity),
		"content": r.codec.content(entity),
	}

	result, err := r.db.Query(ctx, query, vars)
	if err != nil {
		if isUniqueConstraintError(err) {
			return nil, fmt.Errorf("%w: %s %d already exists", database.ErrDuplicate, r.codec.kind, r.codec.id(entity))
		}
		return nil, err
	}

	records := statementRecords(result, -1)
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: create %s returned no record", database.ErrQuery, r.codec.kind)
	}
	return r.parseRecord(records[0])
}

// Delete removes an entity and every favorite that references it.
// Returns false when the entity did not exist.
func (r *CatalogRepository[T]) Delete(ctx context.Context, id int64) (bool, error) {
	entity := recordID(r.codec.kind.Table(), id)

	batch := database.NewAtomicBatch().
		Add(fmt.Sprintf("DELETE %s WHERE out = $entity", r.codec.kind.FavoriteTable()), map[string]interface{}{"entity": entity}).
		Add("DELETE $entity RETURN BEFORE", map[string]interface{}{"entity": entity})

	result, err := batch.Execute(ctx, r.db)
	if err != nil {
		return false, fmt.Errorf("deleting %s %d: %w", r.codec.kind, id, err)
	}

	return len(statementRecords(result, -1)) > 0, nil
}

func (r *CatalogRepository[T]) parseRecord(data map[string]interface{}) (*T, error) {
	id, ok := extractRecordInt(data["id"])
	if !ok {
		return nil, fmt.Errorf("%w: %s record has no integer id", database.ErrQuery, r.codec.kind)
	}
	return r.codec.decode(id, data), nil
}

func (r *CatalogRepository[T]) parseRecords(records []map[string]interface{}) ([]*T, error) {
	items := make([]*T, 0, len(records))
	for _, rec := range records {
		item, err := r.parseRecord(rec)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}
