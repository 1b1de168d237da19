package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/mkartashov/currency-rates-service/internal/domain"
	"github.com/mkartashov/currency-rates-service/internal/infrastructure/postgres/mappers"
	"github.com/mkartashov/currency-rates-service/internal/infrastructure/postgres/models"
)

type DefaultCurrencyRepository struct {
	DB *gorm.DB
}

func NewDefaultCurrencyRepository(db *gorm.DB) *DefaultCurrencyRepository {
	return &DefaultCurrencyRepository{DB: db}
}

func (r *DefaultCurrencyRepository) FindByCode(code string) (*domain.Currency, error) {
	var model models.CurrencyModel
	if err := r.DB.Where("code = ?", code).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrCurrencyNotFound
		}
		return nil, fmt.Errorf("find currency by code: %w", err)
	}
	return mappers.ToCurrencyDomain(&model), nil
}

func (r *DefaultCurrencyRepository) GetAll() ([]*domain.Currency, error) {
	var modelList []models.CurrencyModel
	if err := r.DB.Order("code").Find(&modelList).Error; err != nil {
		return nil, fmt.Errorf("list currencies: %w", err)
	}

	currencies := make([]*domain.Currency, 0, len(modelList))
	for i := range modelList {
		currencies = append(currencies, mappers.ToCurrencyDomain(&modelList[i]))
	}
	return currencies, nil
}

func (r *DefaultCurrencyRepository) Create(currency *domain.Currency) error {
	if err := r.DB.Create(mappers.ToCurrencyModel(currency)).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.ErrCurrencyExists
		}
		return fmt.Errorf("create currency: %w", err)
	}
	return nil
}

func (r *DefaultCurrencyRepository) Update(currency *domain.Currency) error {
	if err := r.DB.Save(mappers.ToCurrencyModel(currency)).Error; err != nil {
		return fmt.Errorf("update currency: %w", err)
	}
	return nil
}

func (r *DefaultCurrencyRepository) Delete(currency *domain.Currency) error {
	result := r.DB.Delete(&models.CurrencyModel{}, "id = ?", currency.ID)
	if result.Error != nil {
		return fmt.Errorf("delete currency: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrCurrencyNotFound
	}
	return nil
}

func (r *DefaultCurrencyRepository) SaveHistory(entry *domain.CurrencyHistory) error {
	if err := r.DB.Create(mappers.ToCurrencyHistoryModel(entry)).Error; err != nil {
		return fmt.Errorf("save history entry: %w", err)
	}
	return nil
}

func (r *DefaultCurrencyRepository) GetHistory(currencyID string) ([]*domain.CurrencyHistory, error) {
	var modelList []models.CurrencyHistoryModel
	if err := r.DB.Where("currency_id = ?", currencyID).Order("checked_at").Find(&modelList).Error; err != nil {
		return nil, fmt.Errorf("list history entries: %w", err)
	}

	entries := make([]*domain.CurrencyHistory, 0, len(modelList))
	for i := range modelList {
		entries = append(entries, mappers.ToCurrencyHistoryDomain(&modelList[i]))
	}
	return entries, nil
}
