// Package session persists the client's session state (token plus a minimal
// user summary) in the local database. The two keys are written and cleared
// together, in one transaction, so the store never holds a token without a
// username or the other way around.
package session

import (
	"context"
	"database/sql"

	"github.com/dsmirnov/stockfolio/internal/client/repositories/metadata"
	"github.com/dsmirnov/stockfolio/internal/dbx"
)

const (
	keyToken    = "token"
	keyUsername = "username"
)

type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// Save persists the token and the username atomically.
func (s *Store) Save(ctx context.Context, token, username string) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := metadata.NewSQLiteRepository(tx)
		if err := repo.Set(ctx, keyToken, []byte(token)); err != nil {
			return err
		}
		return repo.Set(ctx, keyUsername, []byte(username))
	})
}

// Token returns the persisted token, or "" when no session is stored.
func (s *Store) Token(ctx context.Context) (string, error) {
	value, err := metadata.NewSQLiteRepository(s.db).Get(ctx, keyToken)
	if err != nil {
		return "", err
	}
	return string(value), nil
}

// Username returns the persisted user summary, or "" when absent.
func (s *Store) Username(ctx context.Context) (string, error) {
	value, err := metadata.NewSQLiteRepository(s.db).Get(ctx, keyUsername)
	if err != nil {
		return "", err
	}
	return string(value), nil
}

// Clear removes the token and the username atomically.
func (s *Store) Clear(ctx context.Context) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := metadata.NewSQLiteRepository(tx)
		if err := repo.Delete(ctx, keyToken); err != nil {
			return err
		}
		return repo.Delete(ctx, keyUsername)
	})
}
