package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// CurrencyMetrics содержит все метрики сервиса курсов валют
type CurrencyMetrics struct {
	// Цикл синхронизации
	SyncRunsTotal   prometheus.Counter
	SyncErrorsTotal prometheus.Counter
	SyncDuration    prometheus.Histogram

	RatesAddedTotal   prometheus.Counter
	RatesUpdatedTotal prometheus.Counter

	// Шина событий
	BusPublishErrorsTotal prometheus.Counter
	EventsBroadcastTotal  prometheus.Counter

	// WebSocket подключения
	WSConnections prometheus.Gauge
}

// NewCurrencyMetrics создает новый экземпляр метрик
func NewCurrencyMetrics(reg prometheus.Registerer) *CurrencyMetrics {
	factory := promauto.With(reg)

	return &CurrencyMetrics{
		SyncRunsTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "currency_sync_runs_total",
			Help: "Общее количество запусков синхронизации курсов",
		}),

		SyncErrorsTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "currency_sync_errors_total",
			Help: "Количество итераций синхронизации, завершившихся ошибкой",
		}),

		SyncDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "currency_sync_duration_seconds",
			Help:    "Время одной итерации синхронизации в секундах",
			Buckets: prometheus.ExponentialBuckets(0.01, 2, 10),
		}),

		RatesAddedTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "currency_rates_added_total",
			Help: "Количество новых валют, созданных синхронизацией",
		}),

		RatesUpdatedTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "currency_rates_updated_total",
			Help: "Количество обновлений курсов валют",
		}),

		BusPublishErrorsTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "currency_bus_publish_errors_total",
			Help: "Количество неудачных публикаций в шину событий",
		}),

		EventsBroadcastTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "currency_events_broadcast_total",
			Help: "Количество событий, разосланных WebSocket клиентам",
		}),

		WSConnections: factory.NewGauge(prometheus.GaugeOpts{
			Name: "currency_ws_connections",
			Help: "Текущее количество живых WebSocket подключений",
		}),
	}
}
