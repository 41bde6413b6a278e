package httpapi

import (
	"context"
	"sync"

	"github.com/dsmirnov/stockfolio/internal/common"
	"github.com/dsmirnov/stockfolio/internal/dbx"
	"github.com/dsmirnov/stockfolio/internal/server/models"
	"github.com/dsmirnov/stockfolio/internal/server/repositories/filings"
	"github.com/dsmirnov/stockfolio/internal/server/repositories/portfolios"
	"github.com/dsmirnov/stockfolio/internal/server/repositories/stocks"
	"github.com/dsmirnov/stockfolio/internal/server/repositories/users"
)

// memRepoManager backs the handler tests with in-memory repositories, so the
// full auth flow runs through real services without a database.
type memRepoManager struct {
	usersRepo      *memUsersRepo
	stocksRepo     *memStocksRepo
	portfoliosRepo *memPortfoliosRepo
	filingsRepo    *memFilingsRepo
}

func newMemRepoManager() *memRepoManager {
	return &memRepoManager{
		usersRepo:      &memUsersRepo{byID: map[string]*models.User{}},
		stocksRepo:     &memStocksRepo{},
		portfoliosRepo: &memPortfoliosRepo{},
		filingsRepo:    &memFilingsRepo{},
	}
}

func (m *memRepoManager) Users(dbx.DBTX) users.Repository           { return m.usersRepo }
func (m *memRepoManager) Stocks(dbx.DBTX) stocks.Repository         { return m.stocksRepo }
func (m *memRepoManager) Portfolios(dbx.DBTX) portfolios.Repository { return m.portfoliosRepo }
func (m *memRepoManager) Filings(dbx.DBTX) filings.Repository       { return m.filingsRepo }

type memUsersRepo struct {
	mu   sync.Mutex
	byID map[string]*models.User
}

func (r *memUsersRepo) Create(ctx context.Context, user *models.User) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.byID {
		if u.Email == user.Email {
			return nil, common.ErrorAlreadyExists
		}
	}
	clone := *user
	r.byID[user.ID] = &clone
	return user, nil
}

func (r *memUsersRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.byID {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r *memUsersRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *memUsersRepo) delete(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.byID, id)
}

type memStocksRepo struct {
	stocks []*models.Stock
	err    error
}

func (r *memStocksRepo) List(ctx context.Context, limit, offset int) ([]*models.Stock, error) {
	if r.err != nil {
		return nil, r.err
	}
	if offset >= len(r.stocks) {
		return nil, nil
	}
	end := offset + limit
	if end > len(r.stocks) {
		end = len(r.stocks)
	}
	return r.stocks[offset:end], nil
}

func (r *memStocksRepo) Count(ctx context.Context) (int64, error) {
	if r.err != nil {
		return 0, r.err
	}
	return int64(len(r.stocks)), nil
}

func (r *memStocksRepo) GetBySymbol(ctx context.Context, symbol string) (*models.Stock, error) {
	if r.err != nil {
		return nil, r.err
	}
	for _, s := range r.stocks {
		if s.Symbol == symbol {
			return s, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r *memStocksRepo) All(ctx context.Context) ([]*models.Stock, error) {
	if r.err != nil {
		return nil, r.err
	}
	return r.stocks, nil
}

type memPortfoliosRepo struct {
	mu    sync.Mutex
	items []*models.PortfolioItem
}

func (r *memPortfoliosRepo) ListByUser(ctx context.Context, userID string) ([]*models.PortfolioItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.PortfolioItem
	for _, i := range r.items {
		if i.UserID == userID {
			out = append(out, i)
		}
	}
	return out, nil
}

func (r *memPortfoliosRepo) Upsert(ctx context.Context, item *models.PortfolioItem) (*models.PortfolioItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, i := range r.items {
		if i.UserID == item.UserID && i.Symbol == item.Symbol {
			i.Shares = item.Shares
			return i, nil
		}
	}
	r.items = append(r.items, item)
	return item, nil
}

func (r *memPortfoliosRepo) Remove(ctx context.Context, userID, symbol string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for n, i := range r.items {
		if i.UserID == userID && i.Symbol == symbol {
			r.items = append(r.items[:n], r.items[n+1:]...)
			return nil
		}
	}
	return common.ErrorNotFound
}

type memFilingsRepo struct {
	filings []*models.Filing
}

func (r *memFilingsRepo) ListBySymbol(ctx context.Context, symbol string) ([]*models.Filing, error) {
	var out []*models.Filing
	for _, f := range r.filings {
		if f.Symbol == symbol {
			out = append(out, f)
		}
	}
	return out, nil
}

func (r *memFilingsRepo) GetByID(ctx context.Context, id string) (*models.Filing, error) {
	for _, f := range r.filings {
		if f.ID == id {
			return f, nil
		}
	}
	return nil, common.ErrorNotFound
}
