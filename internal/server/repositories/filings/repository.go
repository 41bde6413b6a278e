package filings

import (
	"context"

	"github.com/dsmirnov/stockfolio/internal/server/models"
)

type Repository interface {
	ListBySymbol(ctx context.Context, symbol string) ([]*models.Filing, error)
	GetByID(ctx context.Context, id string) (*models.Filing, error)
}
