package model

import (
	"fmt"
	"strings"
)

// Validation constants
const (
	MaxNameLength = 250
)

// EntityKind identifies one of the favoritable catalog entity types
type EntityKind string

const (
	KindPlanet    EntityKind = "planet"
	KindCharacter EntityKind = "character"
	KindVehicle   EntityKind = "vehicle"
)

// EntityKinds lists every kind in the order favorites are aggregated.
var EntityKinds = []EntityKind{KindPlanet, KindCharacter, KindVehicle}

// ParseEntityKind accepts the singular or plural form of a kind, case-insensitively.
func ParseEntityKind(s string) (EntityKind, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, k := range EntityKinds {
		if s == string(k) || s == k.Plural() {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown entity kind %q", s)
}

// Valid reports whether k is one of the known kinds
func (k EntityKind) Valid() bool {
	switch k {
	case KindPlanet, KindCharacter, KindVehicle:
		return true
	}
	return false
}

// Plural returns the collection name used in URLs and responses.
func (k EntityKind) Plural() string {
	return string(k) + "s"
}

// Table returns the base table holding entities of this kind.
func (k EntityKind) Table() string {
	return string(k)
}

// FavoriteTable returns the association table linking users to this kind.
func (k EntityKind) FavoriteTable() string {
	return "favorite_" + string(k)
}

// ForeignKey returns the association column referencing the entity.
func (k EntityKind) ForeignKey() string {
	return string(k) + "_id"
}

// Planet is a catalog planet
type Planet struct {
	ID         int64   `json:"id" yaml:"id"`
	Name       string  `json:"name" yaml:"name"`
	Climate    *string `json:"climate" yaml:"climate"`
	Terrain    *string `json:"terrain" yaml:"terrain"`
	Population *int64  `json:"population" yaml:"population"`
}

// Character is a catalog character
type Character struct {
	ID        int64   `json:"id" yaml:"id"`
	Name      string  `json:"name" yaml:"name"`
	Species   *string `json:"species" yaml:"species"`
	Homeworld *string `json:"homeworld" yaml:"homeworld"`
}

// Vehicle is a catalog vehicle
type Vehicle struct {
	ID    int64   `json:"id" yaml:"id"`
	Name  string  `json:"name" yaml:"name"`
	Model *string `json:"model" yaml:"model"`
	HP    *int64  `json:"hp" yaml:"hp"`
}

// CreatePlanetRequest represents a request to add a planet to the catalog
type CreatePlanetRequest struct {
	ID         int64   `json:"id,omitempty"`
	Name       string  `json:"name"`
	Climate    *string `json:"climate,omitempty"`
	Terrain    *string `json:"terrain,omitempty"`
	Population *int64  `json:"population,omitempty"`
}

// ToPlanet converts the request into a Planet
func (r *CreatePlanetRequest) ToPlanet() *Planet {
	return &Planet{ID: r.ID, Name: r.Name, Climate: r.Climate, Terrain: r.Terrain, Population: r.Population}
}

// CreateCharacterRequest represents a request to add a character to the catalog
type CreateCharacterRequest struct {
	ID        int64   `json:"id,omitempty"`
	Name      string  `json:"name"`
	Species   *string `json:"species,omitempty"`
	Homeworld *string `json:"homeworld,omitempty"`
}

// ToCharacter converts the request into a Character
func (r *CreateCharacterRequest) ToCharacter() *Character {
	return &Character{ID: r.ID, Name: r.Name, Species: r.Species, Homeworld: r.Homeworld}
}

// CreateVehicleRequest represents a request to add a vehicle to the catalog
type CreateVehicleRequest struct {
	ID    int64   `json:"id,omitempty"`
	Name  string  `json:"name"`
	Model *string `json:"model,omitempty"`
	HP    *int64  `json:"hp,omitempty"`
}

// ToVehicle converts the request into a Vehicle
func (r *CreateVehicleRequest) ToVehicle() *Vehicle {
	return &Vehicle{ID: r.ID, Name: r.Name, Model: r.Model, HP: r.HP}
}

// CatalogSeed is the on-disk layout of a catalog seed file
type CatalogSeed struct {
	Planets    []Planet    `yaml:"planets"`
	Characters []Character `yaml:"characters"`
	Vehicles   []Vehicle   `yaml:"vehicles"`
}
