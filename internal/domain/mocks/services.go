package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/mkartashov/currency-rates-service/internal/domain"
)

// MockRateProvider is a mock implementation of RateProvider
type MockRateProvider struct {
	mock.Mock
}

func (m *MockRateProvider) Fetch(ctx context.Context) []domain.FetchedRate {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]domain.FetchedRate)
}

// MockEventBus is a mock implementation of EventBus
type MockEventBus struct {
	mock.Mock
}

func (m *MockEventBus) Publish(ctx context.Context, topic string, payload []byte) error {
	args := m.Called(ctx, topic, payload)
	return args.Error(0)
}

func (m *MockEventBus) Subscribe(ctx context.Context, pattern string, handler domain.EventHandler) error {
	args := m.Called(ctx, pattern, handler)
	return args.Error(0)
}
