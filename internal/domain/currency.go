package domain

import "time"

type Currency struct {
	ID        string
	Code      string
	Name      string
	Value     float64
	Previous  float64
	Nominal   int
	UpdatedAt time.Time
}

// CurrencyHistory is an append-only snapshot of a rate taken right before
// its value changed. Rows are never updated or deleted.
type CurrencyHistory struct {
	ID         string
	CurrencyID string
	Value      float64
	Previous   float64
	CheckedAt  time.Time
}

// FetchedRate is a single record returned by a rate provider.
type FetchedRate struct {
	Code     string
	Name     string
	Value    float64
	Previous float64
	Nominal  int
}
