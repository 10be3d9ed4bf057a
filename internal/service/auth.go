package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/forgo/holocron/internal/database"
	"github.com/forgo/holocron/internal/model"
	"github.com/forgo/holocron/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

// bcrypt cost factor (10-14 recommended for production)
const defaultBcryptCost = 12

// TokenIssuer signs and validates access tokens
type TokenIssuer interface {
	Sign(userID int64, username string) (string, error)
	Validate(token string) (*jwt.Claims, error)
	GetExpiration() time.Duration
}

// AuthService handles signup and login
type AuthService struct {
	userRepo   UserRepository
	tokens     TokenIssuer
	bcryptCost int
}

// AuthServiceConfig holds configuration for the auth service.
// Tokens may be nil, in which case Login verifies credentials without issuing a token.
type AuthServiceConfig struct {
	UserRepo   UserRepository
	Tokens     TokenIssuer
	BcryptCost int
}

// NewAuthService creates a new auth service
func NewAuthService(cfg AuthServiceConfig) *AuthService {
	cost := cfg.BcryptCost
	if cost == 0 {
		cost = defaultBcryptCost
	}
	return &AuthService{
		userRepo:   cfg.UserRepo,
		tokens:     cfg.Tokens,
		bcryptCost: cost,
	}
}

// LoginResult represents a successful login
type LoginResult struct {
	AccessToken string      `json:"access_token,omitempty"`
	TokenType   string      `json:"token_type,omitempty"`
	ExpiresIn   int         `json:"expires_in,omitempty"`
	User        *model.User `json:"user"`
}

// Signup creates a new user account
func (s *AuthService) Signup(ctx context.Context, req model.SignupRequest) (*model.User, error) {
	username := strings.TrimSpace(req.Username)
	if username == "" {
		return nil, ErrUsernameRequired
	}
	if len(username) > model.MaxUsernameLength {
		return nil, ErrUsernameTooLong
	}

	email := strings.TrimSpace(strings.ToLower(req.Email))
	if !isValidEmail(email) {
		return nil, ErrInvalidEmail
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, ErrNameRequired
	}
	if len(name) > model.MaxNameLength {
		return nil, ErrNameTooLong
	}

	if err := validatePassword(req.Password); err != nil {
		return nil, err
	}

	existing, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailAlreadyExists
	}

	existing, err = s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrUsernameTaken
	}

	hash, err := s.hashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.Create(ctx, &model.User{
		Username: username,
		Email:    email,
		Name:     name,
		Hash:     hash,
	})
	if err != nil {
		// Lost a race with a concurrent signup
		if errors.Is(err, database.ErrDuplicate) {
			if strings.Contains(err.Error(), "username already") {
				return nil, ErrUsernameTaken
			}
			return nil, ErrEmailAlreadyExists
		}
		return nil, fmt.Errorf("creating user: %w", err)
	}
	return user, nil
}

// Login authenticates a user with email/password
func (s *AuthService) Login(ctx context.Context, req model.LoginRequest) (*LoginResult, error) {
	email := strings.TrimSpace(strings.ToLower(req.Email))

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil || user.Hash == "" {
		return nil, ErrInvalidCredentials
	}

	if !checkPassword(req.Password, user.Hash) {
		return nil, ErrInvalidCredentials
	}

	result := &LoginResult{User: user}
	if s.tokens == nil {
		return result, nil
	}

	token, err := s.tokens.Sign(user.ID, user.Username)
	if err != nil {
		return nil, fmt.Errorf("signing token: %w", err)
	}
	result.AccessToken = token
	result.TokenType = "Bearer"
	result.ExpiresIn = int(s.tokens.GetExpiration().Seconds())
	return result, nil
}

// ValidateAccessToken validates an access token and returns the claims
func (s *AuthService) ValidateAccessToken(token string) (*jwt.Claims, error) {
	if s.tokens == nil {
		return nil, jwt.ErrInvalidKey
	}
	return s.tokens.Validate(token)
}

// Helper functions

func (s *AuthService) hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func checkPassword(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

func validatePassword(password string) error {
	if password == "" {
		return ErrPasswordRequired
	}
	if len(password) < model.MinPasswordLength {
		return ErrPasswordTooShort
	}
	if len(password) > model.MaxPasswordLength {
		return ErrPasswordTooLong
	}
	return nil
}

func isValidEmail(email string) bool {
	// Basic email validation
	if email == "" || len(email) > model.MaxEmailLength {
		return false
	}
	atIndex := strings.Index(email, "@")
	if atIndex < 1 {
		return false
	}
	dotIndex := strings.LastIndex(email, ".")
	if dotIndex < atIndex+2 {
		return false
	}
	if dotIndex >= len(email)-1 {
		return false
	}
	return true
}
