package portfolios

import (
	"context"

	"github.com/dsmirnov/stockfolio/internal/server/models"
)

type Repository interface {
	ListByUser(ctx context.Context, userID string) ([]*models.PortfolioItem, error)
	// Upsert inserts the holding or replaces the share count of an existing one.
	Upsert(ctx context.Context, item *models.PortfolioItem) (*models.PortfolioItem, error)
	Remove(ctx context.Context, userID, symbol string) error
}
