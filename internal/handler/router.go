package handler

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/forgo/holocron/internal/middleware"
	"github.com/forgo/holocron/internal/model"
)

// RouterConfig holds everything the HTTP surface is built from
type RouterConfig struct {
	Planets    CatalogService[model.Planet]
	Characters CatalogService[model.Character]
	Vehicles   CatalogService[model.Vehicle]
	Favorites  FavoriteService
	Users      UserService
	Auth       AuthService
	DB         Pinger

	// CurrentUser resolves the acting user on protected routes
	// (middleware.Auth or middleware.FixedUser)
	CurrentUser middleware.Middleware
	Logger      *slog.Logger
}

// NewRouter registers every route on a new ServeMux
func NewRouter(cfg RouterConfig) *http.ServeMux {
	protect := func(h http.HandlerFunc) http.Handler {
		return cfg.CurrentUser(h)
	}

	favoriteHandler := NewFavoriteHandler(cfg.Favorites, cfg.Logger)
	userHandler := NewUserHandler(cfg.Users, cfg.Logger)
	authHandler := NewAuthHandler(cfg.Auth, cfg.Logger)

	mux := http.NewServeMux()

	// Health check endpoint
	mux.HandleFunc("GET /health", Health(cfg.DB, cfg.Logger))

	// Catalog endpoints
	registerCatalog(mux, model.KindPlanet, NewPlanetHandler(cfg.Planets, cfg.Logger), protect)
	registerCatalog(mux, model.KindCharacter, NewCharacterHandler(cfg.Characters, cfg.Logger), protect)
	registerCatalog(mux, model.KindVehicle, NewVehicleHandler(cfg.Vehicles, cfg.Logger), protect)

	// User endpoints
	mux.HandleFunc("GET /users", userHandler.List)
	mux.Handle("DELETE /users/{id}", protect(userHandler.Delete))
	mux.HandleFunc("GET /users/{id}/favorites", favoriteHandler.GetUserFavorites)
	mux.HandleFunc("GET /users/{id}/favorites/{kind}", favoriteHandler.ListByKind)

	// Favorite mutations for the current user
	mux.Handle("POST /favorite/{kind}/{id}", protect(favoriteHandler.Add))
	mux.Handle("DELETE /favorite/{kind}/{id}", protect(favoriteHandler.Remove))

	// Account endpoints (public)
	mux.HandleFunc("POST /signup", authHandler.Signup)
	mux.HandleFunc("POST /login", authHandler.Login)

	// Unmatched requests get the JSON error body instead of the mux's plain
	// text. The catch-all also shadows the mux's own 405 handling.
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if allowed := allowedMethods(mux, r); len(allowed) > 0 {
			w.Header().Set("Allow", strings.Join(allowed, ", "))
			WriteError(w, model.NewMethodNotAllowedError(r.Method))
			return
		}
		WriteError(w, model.NewNotFoundError("route"))
	})

	return mux
}

var routeMethods = []string{
	http.MethodDelete,
	http.MethodGet,
	http.MethodHead,
	http.MethodPatch,
	http.MethodPost,
	http.MethodPut,
}

// allowedMethods lists the methods with a route other than the catch-all for r's path
func allowedMethods(mux *http.ServeMux, r *http.Request) []string {
	var allowed []string
	for _, method := range routeMethods {
		if method == r.Method {
			continue
		}
		candidate := r.Clone(r.Context())
		candidate.Method = method
		if _, pattern := mux.Handler(candidate); pattern != "" && pattern != "/" {
			allowed = append(allowed, method)
		}
	}
	return allowed
}

func registerCatalog[T any](mux *http.ServeMux, kind model.EntityKind, h *CatalogHandler[T], protect func(http.HandlerFunc) http.Handler) {
	base := "/" + kind.Plural()
	mux.HandleFunc("GET "+base, h.List)
	mux.HandleFunc("GET "+base+"/{id}", h.Get)
	mux.Handle("POST "+base, protect(h.Create))
	mux.Handle("DELETE "+base+"/{id}", protect(h.Delete))
}
