package services

import (
	"context"

	"github.com/dsmirnov/stockfolio/internal/dbx"
	"github.com/dsmirnov/stockfolio/internal/server/models"
	"github.com/dsmirnov/stockfolio/internal/server/repositories/filings"
	"github.com/dsmirnov/stockfolio/internal/server/repositories/portfolios"
	"github.com/dsmirnov/stockfolio/internal/server/repositories/stocks"
	"github.com/dsmirnov/stockfolio/internal/server/repositories/users"
)

// fakeRepoManager hands out the configured fake repositories regardless of
// the db handle, which lets service tests run without a database.
type fakeRepoManager struct {
	users      users.Repository
	stocks     stocks.Repository
	portfolios portfolios.Repository
	filings    filings.Repository
}

func (m *fakeRepoManager) Users(dbx.DBTX) users.Repository           { return m.users }
func (m *fakeRepoManager) Stocks(dbx.DBTX) stocks.Repository         { return m.stocks }
func (m *fakeRepoManager) Portfolios(dbx.DBTX) portfolios.Repository { return m.portfolios }
func (m *fakeRepoManager) Filings(dbx.DBTX) filings.Repository       { return m.filings }

type fakeUsersRepo struct {
	createOut *models.User
	createErr error

	byEmailOut *models.User
	byEmailErr error

	byIDOut *models.User
	byIDErr error

	createCalls int
}

func (f *fakeUsersRepo) Create(ctx context.Context, u *models.User) (*models.User, error) {
	f.createCalls++
	if f.createErr != nil {
		return nil, f.createErr
	}
	if f.createOut != nil {
		return f.createOut, nil
	}
	return u, nil
}

func (f *fakeUsersRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if f.byEmailErr != nil {
		return nil, f.byEmailErr
	}
	return f.byEmailOut, nil
}

func (f *fakeUsersRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	if f.byIDErr != nil {
		return nil, f.byIDErr
	}
	return f.byIDOut, nil
}

type fakeStocksRepo struct {
	listOut []*models.Stock
	listErr error

	countOut int64
	countErr error

	getOut *models.Stock
	getErr error

	allOut []*models.Stock
	allErr error
}

func (f *fakeStocksRepo) List(ctx context.Context, limit, offset int) ([]*models.Stock, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.listOut, nil
}

func (f *fakeStocksRepo) Count(ctx context.Context) (int64, error) {
	if f.countErr != nil {
		return 0, f.countErr
	}
	return f.countOut, nil
}

func (f *fakeStocksRepo) GetBySymbol(ctx context.Context, symbol string) (*models.Stock, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.getOut, nil
}

func (f *fakeStocksRepo) All(ctx context.Context) ([]*models.Stock, error) {
	if f.allErr != nil {
		return nil, f.allErr
	}
	return f.allOut, nil
}

type fakePortfoliosRepo struct {
	listOut []*models.PortfolioItem
	listErr error

	upsertErr error

	removeErr error
}

func (f *fakePortfoliosRepo) ListByUser(ctx context.Context, userID string) ([]*models.PortfolioItem, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.listOut, nil
}

func (f *fakePortfoliosRepo) Upsert(ctx context.Context, item *models.PortfolioItem) (*models.PortfolioItem, error) {
	if f.upsertErr != nil {
		return nil, f.upsertErr
	}
	return item, nil
}

func (f *fakePortfoliosRepo) Remove(ctx context.Context, userID, symbol string) error {
	return f.removeErr
}

type fakeFilingsRepo struct {
	listOut []*models.Filing
	listErr error

	getOut *models.Filing
	getErr error
}

func (f *fakeFilingsRepo) ListBySymbol(ctx context.Context, symbol string) ([]*models.Filing, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.listOut, nil
}

func (f *fakeFilingsRepo) GetByID(ctx context.Context, id string) (*models.Filing, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.getOut, nil
}
