// Package cli implements the interactive stockfolio client: a small REPL
// over the HTTP API with a locally persisted session.
package cli

import (
	"bufio"
	"context"
	"database/sql"
	"log"
	"os"

	"github.com/dsmirnov/stockfolio/internal/client/api"
	"github.com/dsmirnov/stockfolio/internal/client/config"
	"github.com/dsmirnov/stockfolio/internal/client/localdb"
	"github.com/dsmirnov/stockfolio/internal/client/services"
)

type App struct {
	config *config.Config
	api    api.Client
	auth   *services.AuthService
	db     *sql.DB
	reader *bufio.Reader
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	db, err := localdb.Open(ctx, c.DatabasePath)
	if err != nil {
		log.Printf("error initializing local database: %s", err.Error())
		return nil, err
	}

	apiClient := api.NewHTTPClient(c.ServerBaseURL, c.RequestTimeout)
	auth := services.NewAuthService(apiClient, db)

	return &App{
		config: c,
		api:    apiClient,
		auth:   auth,
		db:     db,
		reader: bufio.NewReader(os.Stdin),
	}, nil
}

func (a *App) Run(ctx context.Context) {
	defer a.db.Close()
	defer a.api.Close()

	// Resolve the persisted session before the first prompt; the REPL
	// never observes the loading state.
	if a.auth.Bootstrap(ctx) == services.StateAuthenticated {
		log.Printf("Welcome back, %s", a.displayName())
	}

	a.Root(ctx)
}

func (a *App) isLoggedIn() bool {
	return a.auth.IsAuthenticated()
}

// displayName prefers the username and falls back to the email.
func (a *App) displayName() string {
	identity := a.auth.Identity()
	if identity == nil {
		return ""
	}
	if identity.Username != "" {
		return identity.Username
	}
	return identity.Email
}
