package service

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/goccy/go-yaml"

	"github.com/forgo/holocron/internal/model"
)

// SeederService loads catalog data from YAML seed files
type SeederService struct {
	planets    CatalogRepository[model.Planet]
	characters CatalogRepository[model.Character]
	vehicles   CatalogRepository[model.Vehicle]
}

// NewSeederService creates a new seeder service
func NewSeederService(repos Repositories) *SeederService {
	return &SeederService{
		planets:    repos.Planets,
		characters: repos.Characters,
		vehicles:   repos.Vehicles,
	}
}

// SeedResult contains the results of a seeding operation
type SeedResult struct {
	Created  map[model.EntityKind]int `json:"created"`
	Skipped  map[model.EntityKind]int `json:"skipped"`
	Duration int64                    `json:"duration_ms"`
}

// ParseCatalogSeed decodes a YAML catalog seed
func ParseCatalogSeed(r io.Reader) (*model.CatalogSeed, error) {
	var seed model.CatalogSeed
	if err := yaml.NewDecoder(r, yaml.Strict()).Decode(&seed); err != nil {
		if err == io.EOF {
			return &seed, nil
		}
		return nil, fmt.Errorf("decoding seed: %w", err)
	}
	return &seed, nil
}

// SeedCatalog inserts every seed entity whose id is not already present
func (s *SeederService) SeedCatalog(ctx context.Context, seed *model.CatalogSeed) (*SeedResult, error) {
	start := time.Now()
	result := &SeedResult{
		Created: make(map[model.EntityKind]int),
		Skipped: make(map[model.EntityKind]int),
	}

	if err := seedKind(ctx, s.planets, model.KindPlanet, seed.Planets, func(p *model.Planet) int64 { return p.ID }, result); err != nil {
		return nil, err
	}
	if err := seedKind(ctx, s.characters, model.KindCharacter, seed.Characters, func(c *model.Character) int64 { return c.ID }, result); err != nil {
		return nil, err
	}
	if err := seedKind(ctx, s.vehicles, model.KindVehicle, seed.Vehicles, func(v *model.Vehicle) int64 { return v.ID }, result); err != nil {
		return nil, err
	}

	result.Duration = time.Since(start).Milliseconds()
	return result, nil
}

func seedKind[T any](ctx context.Context, repo CatalogRepository[T], kind model.EntityKind, items []T, idOf func(*T) int64, result *SeedResult) error {
	for i := range items {
		item := &items[i]
		if id := idOf(item); id > 0 {
			existing, err := repo.GetByID(ctx, id)
			if err != nil {
				return fmt.Errorf("checking %s %d: %w", kind, id, err)
			}
			if existing != nil {
				result.Skipped[kind]++
				continue
			}
		}
		if _, err := repo.Create(ctx, item); err != nil {
			return fmt.Errorf("seeding %s %d: %w", kind, idOf(item), err)
		}
		result.Created[kind]++
	}
	return nil
}
