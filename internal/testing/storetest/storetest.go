// Package storetest is the behavioral contract every storage backend must
// satisfy. Backends run it from their own tests:
//
//	func TestContract(t *testing.T) {
//	    storetest.Run(t, func(t *testing.T) service.Repositories {
//	        return bootstrap.SQLRepositories(testdb.NewSQL(t))
//	    })
//	}
package storetest

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forgo/holocron/internal/database"
	"github.com/forgo/holocron/internal/model"
	"github.com/forgo/holocron/internal/service"
	"github.com/forgo/holocron/internal/testing/fixtures"
)

// Factory returns repositories over a fresh, migrated, empty database
type Factory func(t *testing.T) service.Repositories

// Run executes the full contract against the backend built by newRepos
func Run(t *testing.T, newRepos Factory) {
	t.Run("Catalog", func(t *testing.T) { testCatalog(t, newRepos) })
	t.Run("Users", func(t *testing.T) { testUsers(t, newRepos) })
	t.Run("Favorites", func(t *testing.T) { testFavorites(t, newRepos) })
	t.Run("Cascade", func(t *testing.T) { testCascade(t, newRepos) })
	t.Run("Aggregation", func(t *testing.T) { testAggregation(t, newRepos) })
}

// ============================================================================
// Catalog
// ============================================================================

func testCatalog(t *testing.T, newRepos Factory) {
	ctx := context.Background()

	t.Run("create with explicit id keeps nullable fields", func(t *testing.T) {
		repos := newRepos(t)

		created, err := repos.Planets.Create(ctx, &model.Planet{
			ID: 1, Name: "Tatooine", Climate: strPtr("arid"), Population: int64Ptr(200000),
		})
		require.NoError(t, err)
		assert.Equal(t, int64(1), created.ID)

		got, err := repos.Planets.GetByID(ctx, 1)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, "Tatooine", got.Name)
		require.NotNil(t, got.Climate)
		assert.Equal(t, "arid", *got.Climate)
		assert.Nil(t, got.Terrain)
		require.NotNil(t, got.Population)
		assert.Equal(t, int64(200000), *got.Population)
	})

	t.Run("zero id allocates the next id", func(t *testing.T) {
		repos := newRepos(t)

		_, err := repos.Vehicles.Create(ctx, &model.Vehicle{ID: 14, Name: "Snowspeeder"})
		require.NoError(t, err)
		next, err := repos.Vehicles.Create(ctx, &model.Vehicle{Name: "AT-AT"})
		require.NoError(t, err)
		assert.Equal(t, int64(15), next.ID)
	})

	t.Run("duplicate id is rejected", func(t *testing.T) {
		repos := newRepos(t)

		_, err := repos.Characters.Create(ctx, &model.Character{ID: 20, Name: "Yoda"})
		require.NoError(t, err)
		_, err = repos.Characters.Create(ctx, &model.Character{ID: 20, Name: "Another Yoda"})
		require.ErrorIs(t, err, database.ErrDuplicate)
	})

	t.Run("missing entity is nil without error", func(t *testing.T) {
		repos := newRepos(t)

		got, err := repos.Planets.GetByID(ctx, 999)
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("list is ordered by id", func(t *testing.T) {
		repos := newRepos(t)

		for _, id := range []int64{3, 1, 2} {
			_, err := repos.Planets.Create(ctx, &model.Planet{ID: id, Name: "P"})
			require.NoError(t, err)
		}
		planets, err := repos.Planets.GetAll(ctx)
		require.NoError(t, err)
		require.Len(t, planets, 3)
		assert.Equal(t, []int64{1, 2, 3}, []int64{planets[0].ID, planets[1].ID, planets[2].ID})
	})

	t.Run("delete reports whether a row existed", func(t *testing.T) {
		repos := newRepos(t)

		_, err := repos.Planets.Create(ctx, &model.Planet{ID: 5, Name: "Dagobah"})
		require.NoError(t, err)

		deleted, err := repos.Planets.Delete(ctx, 5)
		require.NoError(t, err)
		assert.True(t, deleted)

		deleted, err = repos.Planets.Delete(ctx, 5)
		require.NoError(t, err)
		assert.False(t, deleted)
	})
}

// ============================================================================
// Users
// ============================================================================

func testUsers(t *testing.T, newRepos Factory) {
	ctx := context.Background()

	t.Run("lookups by id, email and username", func(t *testing.T) {
		repos := newRepos(t)
		user := fixtures.New(repos).CreateUser(t, func(o *fixtures.UserOpts) {
			o.Username = "leia"
			o.Email = "leia@alderaan.gov"
		})
		assert.Positive(t, user.ID)
		assert.NotEmpty(t, user.Hash)

		byID, err := repos.Users.GetByID(ctx, user.ID)
		require.NoError(t, err)
		require.NotNil(t, byID)
		assert.Equal(t, "leia", byID.Username)

		byEmail, err := repos.Users.GetByEmail(ctx, "leia@alderaan.gov")
		require.NoError(t, err)
		require.NotNil(t, byEmail)
		assert.Equal(t, user.ID, byEmail.ID)

		byName, err := repos.Users.GetByUsername(ctx, "leia")
		require.NoError(t, err)
		require.NotNil(t, byName)
		assert.Equal(t, user.ID, byName.ID)

		missing, err := repos.Users.GetByEmail(ctx, "nobody@test.local")
		require.NoError(t, err)
		assert.Nil(t, missing)
	})

	t.Run("ids are allocated sequentially", func(t *testing.T) {
		repos := newRepos(t)
		f := fixtures.New(repos)

		first := f.CreateUser(t)
		second := f.CreateUser(t)
		assert.Equal(t, first.ID+1, second.ID)
	})

	t.Run("duplicate email is rejected", func(t *testing.T) {
		repos := newRepos(t)
		fixtures.New(repos).CreateUser(t, func(o *fixtures.UserOpts) { o.Email = "dup@test.local" })

		_, err := repos.Users.Create(ctx, &model.User{Username: "other", Email: "dup@test.local", Hash: "x"})
		require.ErrorIs(t, err, database.ErrDuplicate)
	})

	t.Run("delete removes the user and their favorites", func(t *testing.T) {
		repos := newRepos(t)
		g := fixtures.New(repos).CreateGalaxy(t)

		deleted, err := repos.Users.Delete(ctx, g.User.ID)
		require.NoError(t, err)
		assert.True(t, deleted)

		for _, kind := range model.EntityKinds {
			favs, err := repos.Favorites.ListByUser(ctx, kind, g.User.ID)
			require.NoError(t, err)
			assert.Empty(t, favs, "kind %s", kind)
		}

		// Catalog entities survive their fans
		planet, err := repos.Planets.GetByID(ctx, g.Tatooine.ID)
		require.NoError(t, err)
		assert.NotNil(t, planet)
	})
}

// ============================================================================
// Favorites
// ============================================================================

func testFavorites(t *testing.T, newRepos Factory) {
	ctx := context.Background()

	t.Run("add then list contains exactly one association", func(t *testing.T) {
		repos := newRepos(t)
		f := fixtures.New(repos)
		user := f.CreateUser(t)
		planet := f.CreatePlanet(t, model.Planet{ID: 5, Name: "Dagobah"})

		fav, err := repos.Favorites.Add(ctx, model.KindPlanet, user.ID, planet.ID)
		require.NoError(t, err)
		assert.Equal(t, user.ID, fav.UserID)
		assert.Equal(t, int64(5), fav.EntityID)
		assert.Equal(t, model.KindPlanet, fav.Kind)

		favs, err := repos.Favorites.ListByUser(ctx, model.KindPlanet, user.ID)
		require.NoError(t, err)
		require.Len(t, favs, 1)
		assert.Equal(t, int64(5), favs[0].EntityID)
	})

	t.Run("second add of the same pair is a duplicate", func(t *testing.T) {
		repos := newRepos(t)
		f := fixtures.New(repos)
		user := f.CreateUser(t)
		yoda := f.CreateCharacter(t, model.Character{ID: 20, Name: "Yoda"})
		f.AddFavorite(t, model.KindCharacter, user, yoda.ID)

		_, err := repos.Favorites.Add(ctx, model.KindCharacter, user.ID, yoda.ID)
		require.ErrorIs(t, err, database.ErrDuplicate)

		favs, err := repos.Favorites.ListByUser(ctx, model.KindCharacter, user.ID)
		require.NoError(t, err)
		assert.Len(t, favs, 1)
	})

	t.Run("concurrent adds of one pair create a single association", func(t *testing.T) {
		repos := newRepos(t)
		f := fixtures.New(repos)
		user := f.CreateUser(t)
		f.CreatePlanet(t, model.Planet{ID: 5, Name: "Dagobah"})

		errs := concurrently(concurrentCalls, func() error {
			_, err := repos.Favorites.Add(ctx, model.KindPlanet, user.ID, 5)
			return err
		})

		succeeded := 0
		for _, err := range errs {
			if err == nil {
				succeeded++
				continue
			}
			assert.ErrorIs(t, err, database.ErrDuplicate)
		}
		assert.Equal(t, 1, succeeded)

		favs, err := repos.Favorites.ListByUser(ctx, model.KindPlanet, user.ID)
		require.NoError(t, err)
		assert.Len(t, favs, 1)
	})

	t.Run("concurrent removes of one pair report a single removal", func(t *testing.T) {
		repos := newRepos(t)
		g := fixtures.New(repos).CreateGalaxy(t)

		var mu sync.Mutex
		removedCount := 0
		errs := concurrently(concurrentCalls, func() error {
			removed, err := repos.Favorites.Remove(ctx, model.KindCharacter, g.User.ID, g.Yoda.ID)
			if removed {
				mu.Lock()
				removedCount++
				mu.Unlock()
			}
			return err
		})

		for _, err := range errs {
			assert.NoError(t, err)
		}
		assert.Equal(t, 1, removedCount)

		favs, err := repos.Favorites.ListByUser(ctx, model.KindCharacter, g.User.ID)
		require.NoError(t, err)
		assert.Empty(t, favs)
	})

	t.Run("same entity id in different kinds is independent", func(t *testing.T) {
		repos := newRepos(t)
		f := fixtures.New(repos)
		user := f.CreateUser(t)
		f.CreatePlanet(t, model.Planet{ID: 1, Name: "Tatooine"})
		f.CreateCharacter(t, model.Character{ID: 1, Name: "Luke Skywalker"})

		f.AddFavorite(t, model.KindPlanet, user, 1)
		f.AddFavorite(t, model.KindCharacter, user, 1)

		vehicles, err := repos.Favorites.ListByUser(ctx, model.KindVehicle, user.ID)
		require.NoError(t, err)
		assert.Empty(t, vehicles)
	})

	t.Run("remove reports whether the association existed", func(t *testing.T) {
		repos := newRepos(t)
		g := fixtures.New(repos).CreateGalaxy(t)

		removed, err := repos.Favorites.Remove(ctx, model.KindVehicle, g.User.ID, g.Speeder.ID)
		require.NoError(t, err)
		assert.True(t, removed)

		removed, err = repos.Favorites.Remove(ctx, model.KindVehicle, g.User.ID, g.Speeder.ID)
		require.NoError(t, err)
		assert.False(t, removed)

		// Other kinds are untouched
		planets, err := repos.Favorites.ListByUser(ctx, model.KindPlanet, g.User.ID)
		require.NoError(t, err)
		assert.Len(t, planets, 1)
	})

	t.Run("list is ordered by entity id", func(t *testing.T) {
		repos := newRepos(t)
		f := fixtures.New(repos)
		user := f.CreateUser(t)
		for _, id := range []int64{8, 2, 5} {
			f.CreatePlanet(t, model.Planet{ID: id})
			f.AddFavorite(t, model.KindPlanet, user, id)
		}

		favs, err := repos.Favorites.ListByUser(ctx, model.KindPlanet, user.ID)
		require.NoError(t, err)
		require.Len(t, favs, 3)
		assert.Equal(t, []int64{2, 5, 8}, []int64{favs[0].EntityID, favs[1].EntityID, favs[2].EntityID})
	})
}

// ============================================================================
// Cascade
// ============================================================================

func testCascade(t *testing.T, newRepos Factory) {
	ctx := context.Background()
	repos := newRepos(t)
	f := fixtures.New(repos)

	user := f.CreateUser(t)
	f.CreatePlanet(t, model.Planet{ID: 5, Name: "Dagobah"})
	f.AddFavorite(t, model.KindPlanet, user, 5)

	deleted, err := repos.Planets.Delete(ctx, 5)
	require.NoError(t, err)
	require.True(t, deleted)

	favs, err := repos.Favorites.ListByUser(ctx, model.KindPlanet, user.ID)
	require.NoError(t, err)
	assert.Empty(t, favs, "deleting an entity must remove its favorites")
}

// ============================================================================
// Aggregation
// ============================================================================

func testAggregation(t *testing.T, newRepos Factory) {
	ctx := context.Background()

	t.Run("favorites resolve across every kind", func(t *testing.T) {
		repos := newRepos(t)
		g := fixtures.New(repos).CreateGalaxy(t)
		svc := service.NewFavoriteService(service.FavoriteServiceConfig{Repos: repos})

		favs, err := svc.GetUserFavorites(ctx, g.User.ID)
		require.NoError(t, err)
		require.Len(t, favs.Planets, 1)
		assert.Equal(t, "Tatooine", favs.Planets[0].Name)
		require.Len(t, favs.Characters, 1)
		assert.Equal(t, "Yoda", favs.Characters[0].Name)
		require.Len(t, favs.Vehicles, 1)
		assert.Equal(t, "Snowspeeder", favs.Vehicles[0].Name)
	})

	t.Run("deleted favorite entity leaves a consistent empty list", func(t *testing.T) {
		repos := newRepos(t)
		f := fixtures.New(repos)
		user := f.CreateUser(t)
		f.CreatePlanet(t, model.Planet{ID: 5, Name: "Dagobah"})
		f.AddFavorite(t, model.KindPlanet, user, 5)

		planets := service.NewPlanetService(repos.Planets)
		require.NoError(t, planets.Delete(ctx, 5))

		svc := service.NewFavoriteService(service.FavoriteServiceConfig{Repos: repos})
		favs, err := svc.GetUserFavorites(ctx, user.ID)
		require.NoError(t, err)
		assert.NotNil(t, favs.Planets)
		assert.Empty(t, favs.Planets)
	})

	t.Run("duplicate add surfaces as a conflict", func(t *testing.T) {
		repos := newRepos(t)
		g := fixtures.New(repos).CreateGalaxy(t)
		svc := service.NewFavoriteService(service.FavoriteServiceConfig{Repos: repos})

		_, err := svc.AddFavorite(ctx, g.User.ID, model.KindPlanet, g.Tatooine.ID)
		require.ErrorIs(t, err, service.ErrFavoriteExists)
	})

	t.Run("concurrent service adds yield one success and conflicts", func(t *testing.T) {
		repos := newRepos(t)
		f := fixtures.New(repos)
		user := f.CreateUser(t)
		f.CreateVehicle(t, model.Vehicle{ID: 14, Name: "Snowspeeder"})
		svc := service.NewFavoriteService(service.FavoriteServiceConfig{Repos: repos})

		errs := concurrently(concurrentCalls, func() error {
			_, err := svc.AddFavorite(ctx, user.ID, model.KindVehicle, 14)
			return err
		})

		succeeded := 0
		for _, err := range errs {
			if err == nil {
				succeeded++
				continue
			}
			assert.ErrorIs(t, err, service.ErrFavoriteExists)
		}
		assert.Equal(t, 1, succeeded)

		favs, err := svc.GetUserFavorites(ctx, user.ID)
		require.NoError(t, err)
		assert.Len(t, favs.Vehicles, 1)
	})
}

// concurrentCalls is how many goroutines race on one association
const concurrentCalls = 16

// concurrently runs fn n times in parallel and returns each call's error
func concurrently(n int, fn func() error) []error {
	errs := make([]error, n)
	start := make(chan struct{})

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			errs[i] = fn()
		}(i)
	}
	close(start)
	wg.Wait()

	return errs
}

func strPtr(s string) *string { return &s }

func int64Ptr(i int64) *int64 { return &i }
