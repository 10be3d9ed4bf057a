package model

import "time"

// Validation constants
const (
	MinPasswordLength = 8
	MaxPasswordLength = 128
	MaxUsernameLength = 250
	MaxEmailLength    = 250
)

// User represents a user account
type User struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Hash      string    `json:"-"` // Never expose password hash
	CreatedOn time.Time `json:"-"`
}

// SignupRequest represents a request to create an account
type SignupRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

// LoginRequest represents a request to exchange credentials for a token
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
