// Package service implements the business logic layer for the Holocron API.
//
// Services own validation, favorites integrity rules, and orchestration of
// repository calls. They sit between the HTTP handlers and whichever store
// backend (SurrealDB or SQL) the process was started with.
//
// # Service Pattern
//
//   - Constructor functions (NewXxxService) accept repositories or a config struct
//   - Methods take a context and return sentinel or wrapped errors
//   - Catalog services are generic over the entity type (planet, character, vehicle)
//
// # Repository Interfaces
//
// Services define their own repository interfaces in repositories.go. Both
// the SurrealDB repositories and the GORM stores satisfy them, and tests
// substitute function-field mocks.
//
// # Error Handling
//
// Domain errors are package-level variables in errors.go:
//
//	var (
//	    ErrPlanetNotFound = errors.New("planet not found")
//	    ErrFavoriteExists = errors.New("favorite already exists")
//	)
//
// Handlers translate them to HTTP responses through a single mapper.
//
// # Example Usage
//
//	favorites := NewFavoriteService(FavoriteServiceConfig{
//	    Repos:  repos,
//	    Logger: logger,
//	})
//	fav, err := favorites.AddFavorite(ctx, userID, model.KindPlanet, 5)
//	if errors.Is(err, ErrFavoriteExists) {
//	    // already favorited
//	}
package service
