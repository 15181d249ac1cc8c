// Package services contains server-side business logic. This file implements
// UserService: registration, login, and "who am I" lookups, minting stateless
// bearer tokens on the way out.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dkoloskov/wellspring/internal/server/auth"
	"github.com/dkoloskov/wellspring/internal/server/config"
	"github.com/dkoloskov/wellspring/internal/server/models"
	"github.com/dkoloskov/wellspring/internal/server/repositories/repomanager"
	"github.com/dkoloskov/wellspring/internal/shared"
)

// AuthResult bundles a freshly minted bearer token with the authenticated user.
type AuthResult struct {
	Token string
	User  *models.User
}

// UserService provides authentication-related operations:
// - Register: create a user and mint a token
// - Login: verify credentials and mint a token
// - GetByID: resolve a token subject back to a user
type UserService struct {
	db                    *sql.DB
	repomanager           repomanager.RepositoryManager
	jwtSecret             []byte
	tokenValidityDuration time.Duration
}

// NewUserService constructs a UserService using repositories and server config.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *UserService {
	return &UserService{
		db:                    db,
		repomanager:           m,
		jwtSecret:             []byte(cfg.SecretKey),
		tokenValidityDuration: cfg.TokenValidityDuration,
	}
}

// Register creates a user with a bcrypt-hashed password and returns a token
// bound to the new user id. A duplicate email (any case variant) yields
// shared.ErrorAlreadyExists and creates nothing.
func (s *UserService) Register(ctx context.Context, email, password string) (*AuthResult, error) {
	repo := s.repomanager.Users(s.db)

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrorInternal, err)
	}

	user := &models.User{Email: normalizeEmail(email), PasswordHash: hash}
	user, err = repo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, shared.ErrorAlreadyExists) {
			return nil, shared.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("%w: %v", shared.ErrorInternal, err)
	}

	token, err := auth.GenerateToken(user.ID, s.jwtSecret, s.tokenValidityDuration)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrorInternal, err)
	}

	return &AuthResult{Token: token, User: user}, nil
}

// Login verifies the supplied credentials and mints a token. Unknown email
// and wrong password are indistinguishable to the caller: both yield
// shared.ErrorUnauthorized.
func (s *UserService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	repo := s.repomanager.Users(s.db)

	user, err := repo.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, shared.ErrorNotFound) {
			return nil, shared.ErrorUnauthorized
		}
		return nil, fmt.Errorf("%w: %v", shared.ErrorInternal, err)
	}

	if !auth.CheckPassword(user.PasswordHash, password) {
		return nil, shared.ErrorUnauthorized
	}

	token, err := auth.GenerateToken(user.ID, s.jwtSecret, s.tokenValidityDuration)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrorInternal, err)
	}

	return &AuthResult{Token: token, User: user}, nil
}

// GetByID returns the user a verified token resolved to. The password hash
// never serializes (json:"-").
func (s *UserService) GetByID(ctx context.Context, id string) (*models.User, error) {
	repo := s.repomanager.Users(s.db)

	user, err := repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrorNotFound) {
			return nil, shared.ErrorNotFound
		}
		return nil, fmt.Errorf("%w: %v", shared.ErrorInternal, err)
	}
	return user, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
