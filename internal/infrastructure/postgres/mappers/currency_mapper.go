package mappers

import (
	"github.com/mkartashov/currency-rates-service/internal/domain"
	"github.com/mkartashov/currency-rates-service/internal/infrastructure/postgres/models"
)

func ToCurrencyModel(currency *domain.Currency) *models.CurrencyModel {
	return &models.CurrencyModel{
		ID:        currency.ID,
		Code:      currency.Code,
		Name:      currency.Name,
		Value:     currency.Value,
		Previous:  currency.Previous,
		Nominal:   currency.Nominal,
		UpdatedAt: currency.UpdatedAt,
	}
}

func ToCurrencyDomain(model *models.CurrencyModel) *domain.Currency {
	return &domain.Currency{
		ID:        model.ID,
		Code:      model.Code,
		Name:      model.Name,
		Value:     model.Value,
		Previous:  model.Previous,
		Nominal:   model.Nominal,
		UpdatedAt: model.UpdatedAt,
	}
}

func ToCurrencyHistoryModel(entry *domain.CurrencyHistory) *models.CurrencyHistoryModel {
	return &models.CurrencyHistoryModel{
		ID:         entry.ID,
		CurrencyID: entry.CurrencyID,
		Value:      entry.Value,
		Previous:   entry.Previous,
		CheckedAt:  entry.CheckedAt,
	}
}

func ToCurrencyHistoryDomain(model *models.CurrencyHistoryModel) *domain.CurrencyHistory {
	return &domain.CurrencyHistory{
		ID:         model.ID,
		CurrencyID: model.CurrencyID,
		Value:      model.Value,
		Previous:   model.Previous,
		CheckedAt:  model.CheckedAt,
	}
}
