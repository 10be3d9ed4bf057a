package service

import "errors"

// Centralized service layer errors.
// All errors returned by service methods are defined here for consistency
// and to make error handling in handlers predictable.

// ===== Authentication Errors =====
var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailAlreadyExists = errors.New("email already registered")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrUsernameRequired   = errors.New("username is required")
	ErrUsernameTooLong    = errors.New("username exceeds maximum length")
	ErrPasswordRequired   = errors.New("password is required")
	ErrPasswordTooShort   = errors.New("password must be at least 8 characters")
	ErrPasswordTooLong    = errors.New("password must be at most 128 characters")
	ErrInvalidEmail       = errors.New("invalid email format")
	ErrForbidden          = errors.New("not authorized to perform this action")
)

// ===== Not Found Errors =====
var (
	ErrUserNotFound      = errors.New("user not found")
	ErrPlanetNotFound    = errors.New("planet not found")
	ErrCharacterNotFound = errors.New("character not found")
	ErrVehicleNotFound   = errors.New("vehicle not found")
	ErrFavoriteNotFound  = errors.New("favorite not found")
)

// ===== Catalog Errors =====
var (
	ErrInvalidEntityKind = errors.New("entity kind must be planet, character or vehicle")
	ErrInvalidID         = errors.New("id must be a positive integer")
	ErrNameRequired      = errors.New("name is required")
	ErrNameTooLong       = errors.New("name exceeds maximum length")
	ErrEntityExists      = errors.New("an entity with this id already exists")
)

// ===== Favorite Errors =====
var (
	ErrFavoriteExists = errors.New("entity is already a favorite")

	// ErrOrphanedFavorite means a favorite references an entity that no longer
	// exists. It is a storage integrity failure, not a client error.
	ErrOrphanedFavorite = errors.New("favorite references a missing entity")
)
