// Package services contains application services for the stockfolio CLI.
// This file defines the auth service: session bootstrap at startup, sign-in,
// sign-up and logout, plus housekeeping of the locally persisted session.
package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dsmirnov/stockfolio/internal/client/api"
	"github.com/dsmirnov/stockfolio/internal/client/session"
)

// State is the client's view of its own session.
type State int

const (
	// StateLoading holds from construction until Bootstrap finishes.
	StateLoading State = iota
	StateAuthenticated
	StateAnonymous
)

// AuthService drives the session state machine. The only legal transitions
// are Loading to Authenticated, Loading to Anonymous, and Authenticated to
// Anonymous; a session that fails verification for any reason ends Anonymous
// with the persisted state wiped.
type AuthService struct {
	client   api.Client
	store    *session.Store
	state    State
	identity *api.Identity
}

func NewAuthService(client api.Client, db *sql.DB) *AuthService {
	return &AuthService{
		client: client,
		store:  session.NewStore(db),
		state:  StateLoading,
	}
}

func (a *AuthService) State() State { return a.state }

func (a *AuthService) Identity() *api.Identity { return a.identity }

func (a *AuthService) IsAuthenticated() bool { return a.state == StateAuthenticated }

// Bootstrap resolves the persisted session exactly once at startup. Without
// a stored token it goes Anonymous immediately, making no network call. With
// one, the token is verified against the server; any failure, whether a
// rejection or an unreachable server, clears the stored session and ends
// Anonymous. The caller never observes StateLoading after Bootstrap returns.
func (a *AuthService) Bootstrap(ctx context.Context) State {
	token, err := a.store.Token(ctx)
	if err != nil || token == "" {
		a.toAnonymous(ctx)
		return a.state
	}

	a.client.SetToken(token)
	identity, err := a.client.VerifySession(ctx)
	if err != nil {
		a.toAnonymous(ctx)
		return a.state
	}

	a.identity = identity
	a.state = StateAuthenticated
	return a.state
}

// SignUp registers a new account and establishes the session. The identity
// comes from a single verify-session round trip with the fresh token.
func (a *AuthService) SignUp(ctx context.Context, email, password string) (*api.Identity, error) {
	token, err := a.client.Register(ctx, email, password)
	if err != nil {
		return nil, err
	}
	return a.establish(ctx, token)
}

// SignIn authenticates with credentials and establishes the session.
func (a *AuthService) SignIn(ctx context.Context, email, password string) (*api.Identity, error) {
	token, err := a.client.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}
	return a.establish(ctx, token)
}

func (a *AuthService) establish(ctx context.Context, token string) (*api.Identity, error) {
	a.client.SetToken(token)

	identity, err := a.client.VerifySession(ctx)
	if err != nil {
		a.client.SetToken("")
		return nil, fmt.Errorf("session verification error: %w", err)
	}

	if err := a.Login(ctx, identity, token); err != nil {
		return nil, err
	}
	return identity, nil
}

// Login installs an already verified session: token and user summary are
// persisted in one transaction and the state flips to Authenticated without
// another network round trip.
func (a *AuthService) Login(ctx context.Context, identity *api.Identity, token string) error {
	if err := a.store.Save(ctx, token, identity.Username); err != nil {
		return fmt.Errorf("session saving error: %w", err)
	}

	a.client.SetToken(token)
	a.identity = identity
	a.state = StateAuthenticated
	return nil
}

// Logout drops the session, in memory and on disk.
func (a *AuthService) Logout(ctx context.Context) error {
	a.toAnonymous(ctx)
	return nil
}

func (a *AuthService) toAnonymous(ctx context.Context) {
	_ = a.store.Clear(ctx)
	a.client.SetToken("")
	a.identity = nil
	a.state = StateAnonymous
}
