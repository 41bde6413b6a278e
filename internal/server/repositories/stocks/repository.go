package stocks

import (
	"context"

	"github.com/dsmirnov/stockfolio/internal/server/models"
)

type Repository interface {
	// List returns one page of the catalog ordered by symbol.
	List(ctx context.Context, limit, offset int) ([]*models.Stock, error)
	Count(ctx context.Context) (int64, error)
	GetBySymbol(ctx context.Context, symbol string) (*models.Stock, error)
	// All returns the full catalog snapshot handed to the search worker.
	All(ctx context.Context) ([]*models.Stock, error)
}
