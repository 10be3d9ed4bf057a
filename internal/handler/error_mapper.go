package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/forgo/holocron/internal/database"
	"github.com/forgo/holocron/internal/middleware"
	"github.com/forgo/holocron/internal/model"
	"github.com/forgo/holocron/internal/service"
)

// MapServiceError converts a service error to an APIError response.
// This centralizes error handling logic for all handlers, ensuring consistent
// HTTP status codes and error messages across the API.
func MapServiceError(err error) *model.APIError {
	if err == nil {
		return nil
	}

	switch {
	// ===== Authentication Errors → 401 =====
	case errors.Is(err, service.ErrInvalidCredentials):
		return model.NewLoginFailedError(err.Error())

	// ===== Authorization Errors → 403 =====
	case errors.Is(err, service.ErrForbidden):
		return model.NewForbiddenError(err.Error())

	// ===== Not Found Errors → 404 =====
	case errors.Is(err, service.ErrUserNotFound):
		return model.NewNotFoundError("user")
	case errors.Is(err, service.ErrPlanetNotFound):
		return model.NewNotFoundError("planet")
	case errors.Is(err, service.ErrCharacterNotFound):
		return model.NewNotFoundError("character")
	case errors.Is(err, service.ErrVehicleNotFound):
		return model.NewNotFoundError("vehicle")
	case errors.Is(err, service.ErrFavoriteNotFound):
		return model.NewNotFoundError("favorite")

	// ===== Conflict Errors → 409 =====
	case errors.Is(err, service.ErrFavoriteExists),
		errors.Is(err, service.ErrEntityExists),
		errors.Is(err, service.ErrEmailAlreadyExists),
		errors.Is(err, service.ErrUsernameTaken):
		return model.NewConflictError(err.Error())

	// ===== Validation Errors → 400 =====
	case errors.Is(err, service.ErrInvalidEntityKind):
		return model.NewValidationError([]model.FieldError{{Field: "kind", Message: err.Error()}})
	case errors.Is(err, service.ErrInvalidID):
		return model.NewValidationError([]model.FieldError{{Field: "id", Message: err.Error()}})
	case errors.Is(err, service.ErrNameRequired),
		errors.Is(err, service.ErrNameTooLong):
		return model.NewValidationError([]model.FieldError{{Field: "name", Message: err.Error()}})
	case errors.Is(err, service.ErrUsernameRequired),
		errors.Is(err, service.ErrUsernameTooLong):
		return model.NewValidationError([]model.FieldError{{Field: "username", Message: err.Error()}})
	case errors.Is(err, service.ErrInvalidEmail):
		return model.NewValidationError([]model.FieldError{{Field: "email", Message: err.Error()}})
	case errors.Is(err, service.ErrPasswordRequired),
		errors.Is(err, service.ErrPasswordTooShort),
		errors.Is(err, service.ErrPasswordTooLong):
		return model.NewValidationError([]model.FieldError{{Field: "password", Message: err.Error()}})

	// ===== Integrity Errors → 500 =====
	case errors.Is(err, service.ErrOrphanedFavorite):
		return model.NewIntegrityError("favorites reference a missing catalog entity")

	// ===== Storage Errors → 500 =====
	case errors.Is(err, database.ErrConnection),
		errors.Is(err, database.ErrQuery):
		return model.NewDatabaseError()

	// ===== Default → 500 =====
	default:
		return model.NewInternalError("")
	}
}

// writeServiceError maps err and writes it, logging anything that becomes a 500
func writeServiceError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	apiErr := MapServiceError(err)
	if apiErr.StatusCode >= http.StatusInternalServerError {
		if logger == nil {
			logger = slog.Default()
		}
		logger.ErrorContext(r.Context(), "request failed",
			slog.String("error", err.Error()),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.String("request_id", middleware.GetRequestID(r.Context())),
		)
	}
	WriteError(w, apiErr)
}
