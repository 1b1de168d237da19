package ws

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"github.com/mkartashov/currency-rates-service/internal/domain"
	"github.com/mkartashov/currency-rates-service/internal/infrastructure/metrics"
)

const subscribeRetryDelay = 5 * time.Second

// BusListener relays currency events from the bus to the broadcaster.
type BusListener struct {
	bus         domain.EventBus
	broadcaster *Broadcaster
	metrics     *metrics.CurrencyMetrics
	logger      *zap.Logger
}

func NewBusListener(bus domain.EventBus, broadcaster *Broadcaster, m *metrics.CurrencyMetrics, logger *zap.Logger) *BusListener {
	return &BusListener{
		bus:         bus,
		broadcaster: broadcaster,
		metrics:     m,
		logger:      logger,
	}
}

// Run subscribes to all currency topics, retrying until the bus is
// reachable or ctx is cancelled. Reconnection after a lost subscription
// is handled inside the bus.
func (l *BusListener) Run(ctx context.Context) {
	for {
		err := l.bus.Subscribe(ctx, domain.TopicCurrencyAll, l.handleMessage)
		if err == nil {
			l.logger.Info("bus listener started", zap.String("pattern", domain.TopicCurrencyAll))
			return
		}

		l.logger.Error("bus listener failed to subscribe, retrying", zap.Error(err))
		select {
		case <-ctx.Done():
			return
		case <-time.After(subscribeRetryDelay):
		}
	}
}

// handleMessage decodes one bus message and hands it to the
// broadcaster. A malformed message is dropped without affecting the
// subscription.
func (l *BusListener) handleMessage(topic string, payload []byte) {
	var data map[string]any
	if err := json.Unmarshal(payload, &data); err != nil {
		l.logger.Error("failed to decode bus message", zap.String("topic", topic), zap.Error(err))
		return
	}

	l.broadcaster.Broadcast(EventMessage{
		Type:      topic,
		Data:      data,
		Timestamp: data["timestamp"],
	})
	l.metrics.EventsBroadcastTotal.Inc()
}
