package services

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/dsmirnov/stockfolio/internal/common"
	"github.com/dsmirnov/stockfolio/internal/server/config"
	"github.com/dsmirnov/stockfolio/internal/server/models"
	"github.com/dsmirnov/stockfolio/internal/server/repositories/repomanager"
)

// StockPage is one page of catalog or search results.
type StockPage struct {
	Stocks []*models.Stock
	Page   int
	Pages  int
	Total  int64
}

type searchRequest struct {
	query  string
	stocks []*models.Stock
	reply  chan []*models.Stock
}

// StockService serves the catalog: paginated listing, symbol lookup, and
// substring search. The filter itself runs on a dedicated worker goroutine;
// each request carries its own dataset snapshot and reply channel, so the
// worker holds no state of its own.
type StockService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	pageSize    int
	searchReq   chan searchRequest
}

func NewStockService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *StockService {
	s := &StockService{
		db:          db,
		repomanager: m,
		pageSize:    cfg.PageSize,
		searchReq:   make(chan searchRequest),
	}
	go s.searchWorker()
	return s
}

func (s *StockService) searchWorker() {
	for req := range s.searchReq {
		req.reply <- filterStocks(req.stocks, req.query)
	}
}

func filterStocks(stocks []*models.Stock, query string) []*models.Stock {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return stocks
	}
	result := make([]*models.Stock, 0, len(stocks))
	for _, st := range stocks {
		if strings.Contains(strings.ToLower(st.Symbol), q) ||
			strings.Contains(strings.ToLower(st.Name), q) {
			result = append(result, st)
		}
	}
	return result
}

// search hands the snapshot to the worker and waits for the filtered list,
// honoring ctx on both sides of the exchange.
func (s *StockService) search(ctx context.Context, stocks []*models.Stock, query string) ([]*models.Stock, error) {
	reply := make(chan []*models.Stock, 1)

	select {
	case s.searchReq <- searchRequest{query: query, stocks: stocks, reply: reply}:
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	select {
	case result := <-reply:
		return result, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// List returns the requested catalog page. With a non-empty query the full
// catalog is filtered first and the page cut from the filtered list; page
// indexes start at 1 and out-of-range pages return an empty page, not an error.
func (s *StockService) List(ctx context.Context, page int, query string) (*StockPage, error) {
	if page < 1 {
		page = 1
	}

	repo := s.repomanager.Stocks(s.db)

	if query != "" {
		all, err := repo.All(ctx)
		if err != nil {
			return nil, common.ErrorInternal
		}
		filtered, err := s.search(ctx, all, query)
		if err != nil {
			return nil, common.ErrorInternal
		}
		return pageOf(filtered, page, s.pageSize), nil
	}

	total, err := repo.Count(ctx)
	if err != nil {
		return nil, common.ErrorInternal
	}

	stocks, err := repo.List(ctx, s.pageSize, (page-1)*s.pageSize)
	if err != nil {
		return nil, common.ErrorInternal
	}

	return &StockPage{
		Stocks: stocks,
		Page:   page,
		Pages:  pageCount(total, s.pageSize),
		Total:  total,
	}, nil
}

// Get returns a single catalog entry or common.ErrorNotFound.
func (s *StockService) Get(ctx context.Context, symbol string) (*models.Stock, error) {
	stock, err := s.repomanager.Stocks(s.db).GetBySymbol(ctx, symbol)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, common.ErrorInternal
	}
	return stock, nil
}

func pageOf(stocks []*models.Stock, page, pageSize int) *StockPage {
	total := int64(len(stocks))
	pages := pageCount(total, pageSize)

	start := (page - 1) * pageSize
	if start > len(stocks) {
		start = len(stocks)
	}
	end := start + pageSize
	if end > len(stocks) {
		end = len(stocks)
	}

	return &StockPage{Stocks: stocks[start:end], Page: page, Pages: pages, Total: total}
}

func pageCount(total int64, pageSize int) int {
	if total == 0 {
		return 0
	}
	return int((total + int64(pageSize) - 1) / int64(pageSize))
}
