package ws

import (
	"sync"

	"go.uber.org/zap"

	"github.com/mkartashov/currency-rates-service/internal/infrastructure/metrics"
)

// Broadcaster holds the set of live connections and fans messages out
// to all of them. A connection whose send fails is pruned; one dead or
// slow client never aborts delivery to the rest.
type Broadcaster struct {
	clients map[Client]struct{}
	mu      sync.RWMutex
	logger  *zap.Logger
	metrics *metrics.CurrencyMetrics
}

func NewBroadcaster(logger *zap.Logger, m *metrics.CurrencyMetrics) *Broadcaster {
	return &Broadcaster{
		clients: make(map[Client]struct{}),
		logger:  logger,
		metrics: m,
	}
}

func (b *Broadcaster) Register(client Client) {
	b.mu.Lock()
	b.clients[client] = struct{}{}
	total := len(b.clients)
	b.mu.Unlock()

	b.metrics.WSConnections.Inc()
	b.logger.Info("new websocket connection", zap.String("client", client.ID()), zap.Int("total", total))
}

func (b *Broadcaster) Deregister(client Client) {
	b.mu.Lock()
	if _, ok := b.clients[client]; !ok {
		b.mu.Unlock()
		return
	}
	delete(b.clients, client)
	total := len(b.clients)
	b.mu.Unlock()

	b.metrics.WSConnections.Dec()
	client.Close()
	b.logger.Info("websocket disconnected", zap.String("client", client.ID()), zap.Int("total", total))
}

// Broadcast sends message to every connection present at call time.
// The set is snapshotted first so deregistration of failed clients
// never mutates a map being iterated.
func (b *Broadcaster) Broadcast(message any) {
	b.mu.RLock()
	clients := make([]Client, 0, len(b.clients))
	for client := range b.clients {
		clients = append(clients, client)
	}
	b.mu.RUnlock()

	for _, client := range clients {
		if err := client.Send(message); err != nil {
			b.logger.Warn("failed to send to client, pruning", zap.String("client", client.ID()), zap.Error(err))
			b.Deregister(client)
		}
	}
}

// Handle processes one inbound text frame from a client.
func (b *Broadcaster) Handle(client Client, raw string) {
	switch raw {
	case "ping":
		if err := client.Send("pong"); err != nil {
			b.Deregister(client)
		}
	case "get_currencies":
		reply := InfoMessage{Type: "info", Message: "current currency rates are available via GET /currencies"}
		if err := client.Send(reply); err != nil {
			b.Deregister(client)
		}
	default:
		b.Broadcast(EchoMessage{Type: "echo", Message: raw})
	}
}

// Count reports the number of live connections.
func (b *Broadcaster) Count() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.clients)
}
