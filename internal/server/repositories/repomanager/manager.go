// Package repomanager binds per-entity repositories to a database handle so
// services can run the same repository against the pool or a transaction.
package repomanager

import (
	"github.com/dsmirnov/stockfolio/internal/dbx"
	"github.com/dsmirnov/stockfolio/internal/server/repositories/filings"
	"github.com/dsmirnov/stockfolio/internal/server/repositories/portfolios"
	"github.com/dsmirnov/stockfolio/internal/server/repositories/stocks"
	"github.com/dsmirnov/stockfolio/internal/server/repositories/users"
)

type RepositoryManager interface {
	Users(db dbx.DBTX) users.Repository
	Stocks(db dbx.DBTX) stocks.Repository
	Portfolios(db dbx.DBTX) portfolios.Repository
	Filings(db dbx.DBTX) filings.Repository
}
