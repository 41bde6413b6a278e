package filings

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dsmirnov/stockfolio/internal/common"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

func TestListBySymbol(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"id", "symbol", "filing_type", "period", "filed_at", "storage_key"}).
		AddRow("f-1", "AAPL", "10-K", "FY2024", time.Now(), "filings/AAPL/f-1.pdf").
		AddRow("f-2", "AAPL", "10-Q", "Q2 2024", time.Now(), "filings/AAPL/f-2.pdf")
	mock.ExpectQuery(`(?s)^SELECT\s+.*\s+FROM\s+filings\s+WHERE\s+symbol\s*=\s*\$1`).
		WithArgs("AAPL").
		WillReturnRows(rows)

	got, err := repo.ListBySymbol(context.Background(), "AAPL")
	if err != nil {
		t.Fatalf("ListBySymbol error: %v", err)
	}
	if len(got) != 2 || got[0].FilingType != "10-K" {
		t.Fatalf("unexpected filings: %+v", got)
	}
}

func TestGetByID_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`(?s)^SELECT\s+.*\s+FROM\s+filings\s+WHERE\s+id\s*=\s*\$1`).
		WithArgs("ghost").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), "ghost")
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("expected common.ErrorNotFound, got %v", err)
	}
}
