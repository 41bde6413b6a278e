// Package portfolios persists user holdings.
package portfolios

import (
	"context"
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

func (r *PostgresRepository) ListByUser(ctx context.Context, userID string) ([]*models.PortfolioItem, error) {
	query :=
		`SELECT id, user_id, symbol, shares, added_at FROM portfolio_items
		 WHERE user_id = $1
		 ORDER BY symbol
		 `

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.PortfolioItem
	for rows.Next() {
		item := &models.PortfolioItem{}
		if err := rows.Scan(&item.ID, &item.UserID, &item.Symbol, &item.Shares, &item.AddedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

func (r *PostgresRepository) Upsert(ctx context.Context, item *models.PortfolioItem) (*models.PortfolioItem, error) {
	query :=
		`INSERT INTO portfolio_items (id, user_id, symbol, shares)
         VALUES ($1, $2, $3, $4)
		 ON CONFLICT (user_id, symbol) DO UPDATE SET shares = excluded.shares
		 RETURNING id, added_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		item.ID, item.UserID, item.Symbol, item.Shares).Scan(&item.ID, &item.AddedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return item, nil
}

func (r *PostgresRepository) Remove(ctx context.Context, userID, symbol string) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM portfolio_items WHERE user_id = $1 AND symbol = $2`, userID, symbol)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}
