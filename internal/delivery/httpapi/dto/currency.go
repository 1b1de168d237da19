package dto

import (
	"time"

	"github.com/mkartashov/currency-rates-service/internal/domain"
)

type CreateCurrencyRequest struct {
	Code     string  `json:"code" binding:"required"`
	Name     string  `json:"name" binding:"required"`
	Value    float64 `json:"value" binding:"required"`
	Previous float64 `json:"previous"`
	Nominal  int     `json:"nominal"`
}

type UpdateCurrencyRequest struct {
	Name     *string  `json:"name"`
	Value    *float64 `json:"value"`
	Previous *float64 `json:"previous"`
	Nominal  *int     `json:"nominal"`
}

type CurrencyResponse struct {
	ID        string    `json:"id"`
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	Value     float64   `json:"value"`
	Previous  float64   `json:"previous"`
	Nominal   int       `json:"nominal"`
	UpdatedAt time.Time `json:"updated_at"`
}

type CurrencyHistoryResponse struct {
	ID         string    `json:"id"`
	CurrencyID string    `json:"currency_id"`
	Value      float64   `json:"value"`
	Previous   float64   `json:"previous"`
	CheckedAt  time.Time `json:"checked_at"`
}

func ToCurrencyResponse(currency *domain.Currency) CurrencyResponse {
	return CurrencyResponse{
		ID:        currency.ID,
		Code:      currency.Code,
		Name:      currency.Name,
		Value:     currency.Value,
		Previous:  currency.Previous,
		Nominal:   currency.Nominal,
		UpdatedAt: currency.UpdatedAt,
	}
}

func ToCurrencyHistoryResponse(entry *domain.CurrencyHistory) CurrencyHistoryResponse {
	return CurrencyHistoryResponse{
		ID:         entry.ID,
		CurrencyID: entry.CurrencyID,
		Value:      entry.Value,
		Previous:   entry.Previous,
		CheckedAt:  entry.CheckedAt,
	}
}
