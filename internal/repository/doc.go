// Package repository implements the SurrealDB data access layer for the Holocron API.
//
// Each repository handles one domain concern and is constructed with a
// database.Database:
//
//   - CatalogRepository[T]: planets, characters and vehicles (NewPlanetRepository, ...)
//   - UserRepository: user accounts
//   - FavoriteRepository: favorite edges between users and catalog entities
//
// # Record IDs
//
// Records use integer keys (planet:5, user:1) so ids match the SQL backend.
// Create allocates max(id)+1 when the caller leaves ID zero.
//
// # Query Patterns
//
//   - Parameterized queries with $variable syntax
//   - RELATE statements for favorites, one edge table per entity kind
//   - AtomicBatch for deletes that cascade to favorites
//   - Absent records are reported as (nil, nil)
//
// # Example Usage
//
//	repo := repository.NewPlanetRepository(db)
//	planet, err := repo.GetByID(ctx, 5)
//	if err != nil {
//	    return err
//	}
//	if planet == nil {
//	    // Handle not found
//	}
package repository
