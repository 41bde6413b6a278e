// Package filings persists company filing references.
package filings

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dsmirnov/stockfolio/internal/common"
	"github.com/dsmirnov/stockfolio/internal/dbx"
	"github.com/dsmirnov/stockfolio/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) ListBySymbol(ctx context.Context, symbol string) ([]*models.Filing, error) {
	query :=
		`SELECT id, symbol, filing_type, period, filed_at, storage_key FROM filings
		 WHERE symbol = $1
		 ORDER BY filed_at DESC
		 `

	rows, err := r.db.QueryContext(ctx, query, symbol)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Filing
	for rows.Next() {
		f := &models.Filing{}
		if err := rows.Scan(&f.ID, &f.Symbol, &f.FilingType, &f.Period, &f.FiledAt, &f.StorageKey); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Filing, error) {
	query :=
		`SELECT id, symbol, filing_type, period, filed_at, storage_key FROM filings
		 WHERE id = $1
		 `

	f := &models.Filing{}
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&f.ID, &f.Symbol, &f.FilingType, &f.Period, &f.FiledAt, &f.StorageKey)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return f, nil
}
