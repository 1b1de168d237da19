package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mkartashov/currency-rates-service/internal/domain"
	currencydto "github.com/mkartashov/currency-rates-service/internal/usecase/dto/currency"
)

type CurrencyUsecase interface {
	GetAll() ([]*domain.Currency, error)
	GetByCode(code string) (*domain.Currency, error)
	Create(ctx context.Context, input currencydto.CreateCurrencyInput) (*domain.Currency, error)
	Update(ctx context.Context, code string, input currencydto.UpdateCurrencyInput) (*domain.Currency, error)
	Delete(ctx context.Context, code string) error
	GetHistory(currencyID string) ([]*domain.CurrencyHistory, error)
}

type DefaultCurrencyUsecase struct {
	repo   domain.CurrencyRepository
	bus    domain.EventBus
	logger *zap.Logger
}

func NewDefaultCurrencyUsecase(repo domain.CurrencyRepository, bus domain.EventBus, logger *zap.Logger) *DefaultCurrencyUsecase {
	return &DefaultCurrencyUsecase{
		repo:   repo,
		bus:    bus,
		logger: logger,
	}
}

func (uc *DefaultCurrencyUsecase) GetAll() ([]*domain.Currency, error) {
	return uc.repo.GetAll()
}

func (uc *DefaultCurrencyUsecase) GetByCode(code string) (*domain.Currency, error) {
	return uc.repo.FindByCode(strings.ToUpper(code))
}

func (uc *DefaultCurrencyUsecase) Create(ctx context.Context, input currencydto.CreateCurrencyInput) (*domain.Currency, error) {
	code := strings.ToUpper(input.Code)

	if _, err := uc.repo.FindByCode(code); err == nil {
		return nil, domain.ErrCurrencyExists
	} else if !errors.Is(err, domain.ErrCurrencyNotFound) {
		return nil, err
	}

	nominal := input.Nominal
	if nominal == 0 {
		nominal = 1
	}

	currency := &domain.Currency{
		ID:        uuid.NewString(),
		Code:      code,
		Name:      input.Name,
		Value:     input.Value,
		Previous:  input.Previous,
		Nominal:   nominal,
		UpdatedAt: time.Now().UTC(),
	}

	if err := uc.repo.Create(currency); err != nil {
		return nil, err
	}

	uc.publish(ctx, domain.TopicCurrencyNew, domain.CurrencyNewEvent{
		Code:      currency.Code,
		Name:      currency.Name,
		Value:     currency.Value,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})

	return currency, nil
}

func (uc *DefaultCurrencyUsecase) Update(ctx context.Context, code string, input currencydto.UpdateCurrencyInput) (*domain.Currency, error) {
	currency, err := uc.repo.FindByCode(strings.ToUpper(code))
	if err != nil {
		return nil, err
	}

	valueChanged := false
	oldValue := currency.Value

	if input.Name != nil {
		currency.Name = *input.Name
	}
	if input.Value != nil && *input.Value != currency.Value {
		currency.Previous = currency.Value
		currency.Value = *input.Value
		currency.UpdatedAt = time.Now().UTC()
		valueChanged = true
	}
	if input.Previous != nil {
		currency.Previous = *input.Previous
	}
	if input.Nominal != nil {
		currency.Nominal = *input.Nominal
	}

	if err := uc.repo.Update(currency); err != nil {
		return nil, err
	}

	if valueChanged {
		uc.publish(ctx, domain.TopicCurrencyUpdated, domain.CurrencyUpdatedEvent{
			Code:      currency.Code,
			Name:      currency.Name,
			OldValue:  oldValue,
			NewValue:  currency.Value,
			Change:    currency.Value - oldValue,
			Timestamp: time.Now().UTC().Format(time.RFC3339),
		})
	}

	return currency, nil
}

func (uc *DefaultCurrencyUsecase) Delete(ctx context.Context, code string) error {
	currency, err := uc.repo.FindByCode(strings.ToUpper(code))
	if err != nil {
		return err
	}

	if err := uc.repo.Delete(currency); err != nil {
		return err
	}

	uc.publish(ctx, domain.TopicCurrencyDeleted, domain.CurrencyDeletedEvent{
		Code:      currency.Code,
		Name:      currency.Name,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})

	return nil
}

func (uc *DefaultCurrencyUsecase) GetHistory(currencyID string) ([]*domain.CurrencyHistory, error) {
	return uc.repo.GetHistory(currencyID)
}

// publish sends an event to the bus. Bus failures are logged and
// swallowed: the store write already happened and stays authoritative.
func (uc *DefaultCurrencyUsecase) publish(ctx context.Context, topic string, event any) {
	payload, err := json.Marshal(event)
	if err != nil {
		uc.logger.Error("failed to marshal event", zap.String("topic", topic), zap.Error(err))
		return
	}

	if err := uc.bus.Publish(ctx, topic, payload); err != nil {
		uc.logger.Error("failed to publish event", zap.String("topic", topic), zap.Error(err))
	}
}
