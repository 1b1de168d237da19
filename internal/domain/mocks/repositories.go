package mocks

import (
	"github.com/stretchr/testify/mock"

	"github.com/mkartashov/currency-rates-service/internal/domain"
)

// MockCurrencyRepository is a mock implementation of CurrencyRepository
type MockCurrencyRepository struct {
	mock.Mock
}

func (m *MockCurrencyRepository) FindByCode(code string) (*domain.Currency, error) {
	args := m.Called(code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Currency), args.Error(1)
}

func (m *MockCurrencyRepository) GetAll() ([]*domain.Currency, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Currency), args.Error(1)
}

func (m *MockCurrencyRepository) Create(currency *domain.Currency) error {
	args := m.Called(currency)
	return args.Error(0)
}

func (m *MockCurrencyRepository) Update(currency *domain.Currency) error {
	args := m.Called(currency)
	return args.Error(0)
}

func (m *MockCurrencyRepository) Delete(currency *domain.Currency) error {
	args := m.Called(currency)
	return args.Error(0)
}

func (m *MockCurrencyRepository) SaveHistory(entry *domain.CurrencyHistory) error {
	args := m.Called(entry)
	return args.Error(0)
}

func (m *MockCurrencyRepository) GetHistory(currencyID string) ([]*domain.CurrencyHistory, error) {
	args := m.Called(currencyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.CurrencyHistory), args.Error(1)
}
