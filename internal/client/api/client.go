// Package api is the client-side view of the stockfolio HTTP API. It hides
// transport details from the services; callers only ever see the package's
// sentinel errors and plain structs.
package api

import (
	"context"
	"errors"
	"time"
)

var (
	ErrUnavailable  = errors.New("server unavailable")
	ErrUnauthorized = errors.New("unauthorized")
	ErrNotFound     = errors.New("not found")
	ErrEmailTaken   = errors.New("email already exists")
	ErrInvalidInput = errors.New("invalid input")
	ErrServer       = errors.New("server error")
)

// Identity is the authenticated user as the server reports it.
type Identity struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

type Stock struct {
	Symbol    string    `json:"symbol"`
	Name      string    `json:"name"`
	Exchange  string    `json:"exchange"`
	Currency  string    `json:"currency"`
	LastPrice float64   `json:"last_price"`
	UpdatedAt time.Time `json:"updated_at"`
}

type StockPage struct {
	Stocks []*Stock `json:"stocks"`
	Page   int      `json:"page"`
	Pages  int      `json:"pages"`
	Total  int64    `json:"total"`
}

type PortfolioItem struct {
	ID      string    `json:"id"`
	Symbol  string    `json:"symbol"`
	Shares  float64   `json:"shares"`
	AddedAt time.Time `json:"added_at"`
}

type Filing struct {
	ID         string    `json:"id"`
	Symbol     string    `json:"symbol"`
	FilingType string    `json:"filing_type"`
	Period     string    `json:"period"`
	FiledAt    time.Time `json:"filed_at"`
}

// Client is the remote API surface the CLI services depend on. The bearer
// token travels with the client, not with every call: SetToken installs it
// and SetToken("") removes it.
type Client interface {
	Close() error
	SetToken(token string)
	Register(ctx context.Context, email, password string) (string, error)
	Login(ctx context.Context, email, password string) (string, error)
	VerifySession(ctx context.Context) (*Identity, error)
	ListStocks(ctx context.Context, page int, query string) (*StockPage, error)
	GetStock(ctx context.Context, symbol string) (*Stock, error)
	ListFilings(ctx context.Context, symbol string) ([]*Filing, error)
	FilingDocumentURL(ctx context.Context, filingID string) (string, error)
	Portfolio(ctx context.Context) ([]*PortfolioItem, error)
	AddToPortfolio(ctx context.Context, symbol string, shares float64) (*PortfolioItem, error)
	RemoveFromPortfolio(ctx context.Context, symbol string) error
}
