// Package services contains server-side business logic. This file implements
// UserService: registration, login and bearer-session verification.
package services

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/dsmirnov/stockfolio/internal/common"
	"github.com/dsmirnov/stockfolio/internal/server/auth"
	"github.com/dsmirnov/stockfolio/internal/server/config"
	"github.com/dsmirnov/stockfolio/internal/server/models"
	"github.com/dsmirnov/stockfolio/internal/server/repositories/repomanager"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// AuthResult is what a successful register or login hands back to the client.
type AuthResult struct {
	UserID string
	Token  string
}

// Identity is the authenticated view of a user. It deliberately has no
// password-hash field, so the hash cannot leak through any response path.
type Identity struct {
	ID       string
	Email    string
	UserName string
}

// UserService provides the authentication flows:
//   - Register: create a user and mint a session token
//   - Login: verify credentials and mint a session token
//   - VerifySession: resolve a bearer token to an Identity
type UserService struct {
	db            *sql.DB
	repomanager   repomanager.RepositoryManager
	jwtSecret     []byte
	tokenValidity time.Duration
}

// NewUserService constructs a UserService using repositories and server config.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *UserService {
	return &UserService{
		db:            db,
		repomanager:   m,
		jwtSecret:     []byte(cfg.SecretKey),
		tokenValidity: cfg.TokenValidityDuration,
	}
}

// Register creates a user for email/password and issues a session token.
//
// The email lookup and the insert are not one atomic step; two concurrent
// registrations can both pass the lookup. The unique index on users.email is
// the real uniqueness check, and its violation also maps to
// common.ErrorAlreadyExists.
func (s *UserService) Register(ctx context.Context, email, password string) (*AuthResult, error) {
	if email == "" || password == "" {
		return nil, common.ErrorInvalidInput
	}

	repo := s.repomanager.Users(s.db)

	_, err := repo.GetByEmail(ctx, email)
	if err == nil {
		return nil, common.ErrorAlreadyExists
	}
	if !errors.Is(err, common.ErrorNotFound) {
		return nil, common.ErrorInternal
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, common.ErrorInternal
	}

	user := &models.User{ID: uuid.NewString(), Email: email, PasswordHash: string(hash)}
	user, err = repo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, common.ErrorAlreadyExists
		}
		return nil, common.ErrorInternal
	}

	token, err := auth.IssueToken(user.ID, s.jwtSecret, s.tokenValidity)
	if err != nil {
		return nil, common.ErrorInternal
	}

	return &AuthResult{UserID: user.ID, Token: token}, nil
}

// Login verifies email/password and issues a session token. An unknown email
// and a wrong password are indistinguishable to the caller.
func (s *UserService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	if email == "" || password == "" {
		return nil, common.ErrorInvalidInput
	}

	repo := s.repomanager.Users(s.db)

	user, err := repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, common.ErrorInternal
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, common.ErrorUnauthorized
	}

	token, err := auth.IssueToken(user.ID, s.jwtSecret, s.tokenValidity)
	if err != nil {
		return nil, common.ErrorInternal
	}

	return &AuthResult{UserID: user.ID, Token: token}, nil
}

// VerifySession checks the token and resolves its subject to a stored user.
// Token failures pass through as the common.ErrToken* sentinels so the caller
// can log the reason; a valid token whose user no longer exists yields
// common.ErrorNotFound, which is a distinct outcome from an invalid token.
func (s *UserService) VerifySession(ctx context.Context, token string) (*Identity, error) {
	userID, err := auth.UserIDFromToken(token, s.jwtSecret)
	if err != nil {
		return nil, err
	}

	repo := s.repomanager.Users(s.db)
	user, err := repo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, common.ErrorInternal
	}

	return &Identity{ID: user.ID, Email: user.Email, UserName: user.UserName}, nil
}
