package services

import (
	"context"
	"database/sql"
	"errors"

	"github.com/dsmirnov/stockfolio/internal/common"
	"github.com/dsmirnov/stockfolio/internal/server/models"
	"github.com/dsmirnov/stockfolio/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

// PortfolioService manages per-user holdings. Every operation is scoped to
// the authenticated user's id; there is no cross-user access path.
type PortfolioService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewPortfolioService(db *sql.DB, m repomanager.RepositoryManager) *PortfolioService {
	return &PortfolioService{db: db, repomanager: m}
}

func (s *PortfolioService) List(ctx context.Context, userID string) ([]*models.PortfolioItem, error) {
	items, err := s.repomanager.Portfolios(s.db).ListByUser(ctx, userID)
	if err != nil {
		return nil, common.ErrorInternal
	}
	return items, nil
}

// Add stores a holding for userID. The symbol must exist in the catalog and
// shares must be positive, otherwise common.ErrorInvalidInput. Adding a
// symbol that is already held replaces its share count.
func (s *PortfolioService) Add(ctx context.Context, userID, symbol string, shares float64) (*models.PortfolioItem, error) {
	if symbol == "" || shares <= 0 {
		return nil, common.ErrorInvalidInput
	}

	if _, err := s.repomanager.Stocks(s.db).GetBySymbol(ctx, symbol); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorInvalidInput
		}
		return nil, common.ErrorInternal
	}

	item := &models.PortfolioItem{
		ID:     uuid.NewString(),
		UserID: userID,
		Symbol: symbol,
		Shares: shares,
	}

	item, err := s.repomanager.Portfolios(s.db).Upsert(ctx, item)
	if err != nil {
		return nil, common.ErrorInternal
	}
	return item, nil
}

func (s *PortfolioService) Remove(ctx context.Context, userID, symbol string) error {
	err := s.repomanager.Portfolios(s.db).Remove(ctx, userID, symbol)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrorNotFound
		}
		return common.ErrorInternal
	}
	return nil
}
