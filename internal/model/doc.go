// Package model defines domain entities and data structures for the Holocron API.
//
// The model package contains all struct definitions for domain objects, request types,
// and the error body. Models are used across all layers of the application.
//
// # Domain Entities
//
//   - User: Application user with authentication credentials
//   - Planet, Character, Vehicle: Read-mostly catalog entities
//   - Favorite: Association between a user and one catalog entity
//   - UserFavorites: A user's favorites resolved to full entities
//
// # Entity Kinds
//
// EntityKind names the three favoritable kinds and derives table names from them:
//
//	model.KindPlanet.Table()         // "planet"
//	model.KindPlanet.FavoriteTable() // "favorite_planet"
//	model.KindPlanet.ForeignKey()    // "planet_id"
//
// # Error Body
//
// Every error response uses APIError:
//
//	{"message": "planet not found", "status_code": 404, "code": 3001}
package model
