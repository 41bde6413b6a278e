package models

import "time"

// PortfolioItem is one holding in a user's portfolio. A user holds at most
// one item per symbol (enforced by a unique index).
type PortfolioItem struct {
	ID      string
	UserID  string
	Symbol  string
	Shares  float64
	AddedAt time.Time
}
