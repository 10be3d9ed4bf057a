// Package fixtures provides test data factories.
//
// A Factory writes through the repository interfaces, so the same fixtures
// serve the SurrealDB and SQL backends:
//
//	f := fixtures.New(bootstrap.SQLRepositories(testdb.NewSQL(t)))
//	user := f.CreateUser(t)
//	planet := f.CreatePlanet(t, model.Planet{Name: "Hoth"})
//	f.AddFavorite(t, model.KindPlanet, user, planet.ID)
//
// CreateGalaxy builds the shared scenario most tests start from.
package fixtures
