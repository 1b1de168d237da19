package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mkartashov/currency-rates-service/internal/domain"
	"github.com/mkartashov/currency-rates-service/internal/infrastructure/metrics"
)

type SyncSummary struct {
	Added   int
	Updated int
}

type SyncUsecase interface {
	RunOnce(ctx context.Context) (SyncSummary, error)
	StartWorker(ctx context.Context)
}

type DefaultSyncUsecase struct {
	repo     domain.CurrencyRepository
	provider domain.RateProvider
	bus      domain.EventBus
	metrics  *metrics.CurrencyMetrics
	interval time.Duration
	logger   *zap.Logger
}

func NewDefaultSyncUsecase(
	repo domain.CurrencyRepository,
	provider domain.RateProvider,
	bus domain.EventBus,
	m *metrics.CurrencyMetrics,
	interval time.Duration,
	logger *zap.Logger,
) *DefaultSyncUsecase {
	return &DefaultSyncUsecase{
		repo:     repo,
		provider: provider,
		bus:      bus,
		metrics:  m,
		interval: interval,
		logger:   logger,
	}
}

// RunOnce fetches the current rate list and reconciles it with the
// store. For every record the order is: history entry first, then the
// rate row, then the bus event, so a subscriber never sees an update
// whose history entry is not durable yet. A store failure skips that
// record and surfaces in the returned error; the rest of the list is
// still processed.
func (uc *DefaultSyncUsecase) RunOnce(ctx context.Context) (SyncSummary, error) {
	started := time.Now()
	rates := uc.provider.Fetch(ctx)

	uc.logger.Info("starting currency rates update", zap.Int("records", len(rates)))

	var summary SyncSummary
	var errs []error

	for _, item := range rates {
		existing, err := uc.repo.FindByCode(item.Code)
		if err != nil && !errors.Is(err, domain.ErrCurrencyNotFound) {
			errs = append(errs, fmt.Errorf("%s: %w", item.Code, err))
			continue
		}

		if existing == nil {
			if err := uc.createCurrency(ctx, item); err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", item.Code, err))
				continue
			}
			summary.Added++
			continue
		}

		if existing.Value == item.Value {
			continue
		}

		if err := uc.updateCurrency(ctx, existing, item.Value); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", item.Code, err))
			continue
		}
		summary.Updated++
	}

	uc.metrics.SyncRunsTotal.Inc()
	uc.metrics.SyncDuration.Observe(time.Since(started).Seconds())

	uc.logger.Info("currency rates update completed",
		zap.Int("added", summary.Added),
		zap.Int("updated", summary.Updated),
	)

	if len(errs) > 0 {
		uc.metrics.SyncErrorsTotal.Inc()
		return summary, errors.Join(errs...)
	}
	return summary, nil
}

func (uc *DefaultSyncUsecase) createCurrency(ctx context.Context, item domain.FetchedRate) error {
	currency := &domain.Currency{
		ID:        uuid.NewString(),
		Code:      item.Code,
		Name:      item.Name,
		Value:     item.Value,
		Previous:  item.Previous,
		Nominal:   item.Nominal,
		UpdatedAt: time.Now().UTC(),
	}

	if err := uc.repo.Create(currency); err != nil {
		return err
	}

	uc.metrics.RatesAddedTotal.Inc()
	uc.logger.Info("new currency", zap.String("code", currency.Code), zap.String("name", currency.Name))

	uc.publish(ctx, domain.TopicCurrencyNew, domain.CurrencyNewEvent{
		Code:      currency.Code,
		Name:      currency.Name,
		Value:     currency.Value,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
	return nil
}

func (uc *DefaultSyncUsecase) updateCurrency(ctx context.Context, existing *domain.Currency, newValue float64) error {
	// snapshot the state being superseded before touching the rate row
	entry := &domain.CurrencyHistory{
		ID:         uuid.NewString(),
		CurrencyID: existing.ID,
		Value:      existing.Value,
		Previous:   existing.Previous,
		CheckedAt:  time.Now().UTC(),
	}
	if err := uc.repo.SaveHistory(entry); err != nil {
		return err
	}

	oldValue := existing.Value
	existing.Previous = oldValue
	existing.Value = newValue
	existing.UpdatedAt = time.Now().UTC()

	if err := uc.repo.Update(existing); err != nil {
		return err
	}

	uc.metrics.RatesUpdatedTotal.Inc()
	uc.logger.Info("currency rate changed",
		zap.String("code", existing.Code),
		zap.Float64("old", oldValue),
		zap.Float64("new", newValue),
	)

	uc.publish(ctx, domain.TopicCurrencyUpdated, domain.CurrencyUpdatedEvent{
		Code:      existing.Code,
		Name:      existing.Name,
		OldValue:  oldValue,
		NewValue:  newValue,
		Change:    newValue - oldValue,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
	return nil
}

// StartWorker runs the sync loop until ctx is cancelled. An iteration
// failure is logged and does not stop the loop.
func (uc *DefaultSyncUsecase) StartWorker(ctx context.Context) {
	ticker := time.NewTicker(uc.interval)
	defer ticker.Stop()

	uc.logger.Info("background currency fetcher started", zap.Duration("interval", uc.interval))

	for {
		if _, err := uc.RunOnce(ctx); err != nil {
			uc.logger.Error("currency sync iteration failed", zap.Error(err))
		}

		select {
		case <-ctx.Done():
			uc.logger.Info("background currency fetcher stopped")
			return
		case <-ticker.C:
		}
	}
}

func (uc *DefaultSyncUsecase) publish(ctx context.Context, topic string, event any) {
	payload, err := json.Marshal(event)
	if err != nil {
		uc.logger.Error("failed to marshal event", zap.String("topic", topic), zap.Error(err))
		return
	}

	if err := uc.bus.Publish(ctx, topic, payload); err != nil {
		uc.metrics.BusPublishErrorsTotal.Inc()
		uc.logger.Error("failed to publish event", zap.String("topic", topic), zap.Error(err))
	}
}
