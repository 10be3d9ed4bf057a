package bootstrap

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/forgo/holocron/internal/config"
	"github.com/forgo/holocron/internal/handler"
	"github.com/forgo/holocron/internal/middleware"
	"github.com/forgo/holocron/internal/service"
	"github.com/forgo/holocron/pkg/jwt"
)

// NewHandler assembles services, routes and the global middleware chain
// over an open store
func NewHandler(store *Store, cfg *config.Config, logger *slog.Logger) (http.Handler, error) {
	if logger == nil {
		logger = slog.Default()
	}

	// Initialize token issuing (jwt mode only)
	var tokens service.TokenIssuer
	if cfg.Auth.Mode == config.AuthModeJWT {
		jwtService, err := jwt.NewService(jwt.Config{
			Secret:         cfg.Auth.Secret,
			Issuer:         cfg.Auth.Issuer,
			ExpirationMins: cfg.Auth.ExpirationMins,
		})
		if err != nil {
			return nil, fmt.Errorf("initializing JWT service: %w", err)
		}
		tokens = jwtService
	}

	// Initialize services
	authService := service.NewAuthService(service.AuthServiceConfig{
		UserRepo:   store.Repos.Users,
		Tokens:     tokens,
		BcryptCost: cfg.Auth.BcryptCost,
	})
	favoriteService := service.NewFavoriteService(service.FavoriteServiceConfig{
		Repos:  store.Repos,
		Logger: logger,
	})

	currentUser := middleware.Auth(authService)
	if cfg.Auth.Mode == config.AuthModeFixed {
		logger.Warn("using fixed current user", slog.Int64("user_id", cfg.Auth.FixedUserID))
		currentUser = middleware.FixedUser(cfg.Auth.FixedUserID)
	}

	mux := handler.NewRouter(handler.RouterConfig{
		Planets:     service.NewPlanetService(store.Repos.Planets),
		Characters:  service.NewCharacterService(store.Repos.Characters),
		Vehicles:    service.NewVehicleService(store.Repos.Vehicles),
		Favorites:   favoriteService,
		Users:       service.NewUserService(store.Repos.Users),
		Auth:        authService,
		DB:          store,
		CurrentUser: currentUser,
		Logger:      logger,
	})

	// Apply global middleware
	return middleware.Chain(
		mux,
		middleware.RequestID,
		middleware.Logger(logger),
		middleware.Recovery,
		middleware.CORS(cfg.Server.AllowedOrigins),
	), nil
}
