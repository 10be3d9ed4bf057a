package fixtures

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/forgo/holocron/internal/model"
	"github.com/forgo/holocron/internal/service"
)

// DefaultPassword is the plaintext password of every fixture user
const DefaultPassword = "testpass123"

// Factory creates test entities through a backend's repositories
type Factory struct {
	repos service.Repositories
	seq   atomic.Int64
}

// New creates a new fixture factory
func New(repos service.Repositories) *Factory {
	return &Factory{repos: repos}
}

// next returns a per-factory sequence number for unique names
func (f *Factory) next() int64 {
	return f.seq.Add(1)
}

// ctx returns a context with timeout
func ctx() context.Context {
	c, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	// Store cancel to prevent leak warning
	_ = cancel
	return c
}

// ============================================================================
// User Fixtures
// ============================================================================

// UserOpts customizes user creation
type UserOpts struct {
	Username string
	Email    string
	Name     string
	Password string
}

// CreateUser creates a user with optional customizations
func (f *Factory) CreateUser(t *testing.T, opts ...func(*UserOpts)) *model.User {
	t.Helper()

	n := f.next()
	o := &UserOpts{
		Username: fmt.Sprintf("user_%d", n),
		Email:    fmt.Sprintf("user_%d@test.local", n),
		Name:     fmt.Sprintf("Test User %d", n),
		Password: DefaultPassword,
	}
	for _, fn := range opts {
		fn(o)
	}

	// Hash password
	hash, err := bcrypt.GenerateFromPassword([]byte(o.Password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("fixtures: failed to hash password: %v", err)
	}

	user, err := f.repos.Users.Create(ctx(), &model.User{
		Username: o.Username,
		Email:    o.Email,
		Name:     o.Name,
		Hash:     string(hash),
	})
	if err != nil {
		t.Fatalf("fixtures: failed to create user: %v", err)
	}
	return user
}

// ============================================================================
// Catalog Fixtures
// ============================================================================

// CreatePlanet creates a planet. A zero ID lets the store allocate one.
func (f *Factory) CreatePlanet(t *testing.T, p model.Planet) *model.Planet {
	t.Helper()
	if p.Name == "" {
		p.Name = fmt.Sprintf("Planet %d", f.next())
	}
	created, err := f.repos.Planets.Create(ctx(), &p)
	if err != nil {
		t.Fatalf("fixtures: failed to create planet: %v", err)
	}
	return created
}

// CreateCharacter creates a character. A zero ID lets the store allocate one.
func (f *Factory) CreateCharacter(t *testing.T, c model.Character) *model.Character {
	t.Helper()
	if c.Name == "" {
		c.Name = fmt.Sprintf("Character %d", f.next())
	}
	created, err := f.repos.Characters.Create(ctx(), &c)
	if err != nil {
		t.Fatalf("fixtures: failed to create character: %v", err)
	}
	return created
}

// CreateVehicle creates a vehicle. A zero ID lets the store allocate one.
func (f *Factory) CreateVehicle(t *testing.T, v model.Vehicle) *model.Vehicle {
	t.Helper()
	if v.Name == "" {
		v.Name = fmt.Sprintf("Vehicle %d", f.next())
	}
	created, err := f.repos.Vehicles.Create(ctx(), &v)
	if err != nil {
		t.Fatalf("fixtures: failed to create vehicle: %v", err)
	}
	return created
}

// ============================================================================
// Favorite Fixtures
// ============================================================================

// AddFavorite stores a favorite association directly
func (f *Factory) AddFavorite(t *testing.T, kind model.EntityKind, user *model.User, entityID int64) *model.Favorite {
	t.Helper()
	fav, err := f.repos.Favorites.Add(ctx(), kind, user.ID, entityID)
	if err != nil {
		t.Fatalf("fixtures: failed to add %s favorite: %v", kind, err)
	}
	return fav
}

// ============================================================================
// Scenarios
// ============================================================================

// Galaxy is a small catalog with one user who likes a bit of everything
type Galaxy struct {
	User     *model.User
	Tatooine *model.Planet
	Dagobah  *model.Planet
	Yoda     *model.Character
	Speeder  *model.Vehicle
}

// CreateGalaxy seeds the catalog used by most store and end-to-end tests.
// The user has Tatooine, Yoda and the speeder as favorites; Dagobah is not one.
func (f *Factory) CreateGalaxy(t *testing.T) *Galaxy {
	t.Helper()

	g := &Galaxy{
		User: f.CreateUser(t),
		Tatooine: f.CreatePlanet(t, model.Planet{
			ID: 1, Name: "Tatooine", Climate: strPtr("arid"), Terrain: strPtr("desert"), Population: int64Ptr(200000),
		}),
		Dagobah: f.CreatePlanet(t, model.Planet{ID: 5, Name: "Dagobah", Climate: strPtr("murky")}),
		Yoda:    f.CreateCharacter(t, model.Character{ID: 20, Name: "Yoda", Species: strPtr("Yoda's species")}),
		Speeder: f.CreateVehicle(t, model.Vehicle{ID: 14, Name: "Snowspeeder", HP: int64Ptr(650)}),
	}

	f.AddFavorite(t, model.KindPlanet, g.User, g.Tatooine.ID)
	f.AddFavorite(t, model.KindCharacter, g.User, g.Yoda.ID)
	f.AddFavorite(t, model.KindVehicle, g.User, g.Speeder.ID)
	return g
}

func strPtr(s string) *string { return &s }

func int64Ptr(i int64) *int64 { return &i }
