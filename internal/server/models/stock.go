package models

import "time"

// Stock is a catalog entry for a listed company.
type Stock struct {
	Symbol    string
	Name      string
	Exchange  string
	Currency  string
	LastPrice float64
	UpdatedAt time.Time
}
