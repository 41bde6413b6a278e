package repomanager

import (
	"github.com/dsmirnov/stockfolio/internal/dbx"
	"github.com/dsmirnov/stockfolio/internal/server/repositories/filings"
	"github.com/dsmirnov/stockfolio/internal/server/repositories/portfolios"
	"github.com/dsmirnov/stockfolio/internal/server/repositories/stocks"
	"github.com/dsmirnov/stockfolio/internal/server/repositories/users"
)

type PostgresRepositoryManager struct {
}

func NewPostgresRepositoryManager() *PostgresRepositoryManager {
	return &PostgresRepositoryManager{}
}

func (m *PostgresRepositoryManager) Users(db dbx.DBTX) users.Repository {
	return users.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Stocks(db dbx.DBTX) stocks.Repository {
	return stocks.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Portfolios(db dbx.DBTX) portfolios.Repository {
	return portfolios.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Filings(db dbx.DBTX) filings.Repository {
	return filings.NewPostgresRepository(db)
}
