package redisbus

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/mkartashov/currency-rates-service/internal/domain"
)

const reconnectDelay = 5 * time.Second

type connState int

const (
	stateDisconnected connState = iota
	stateConnecting
	stateConnected
)

// RedisEventBus carries topic events over redis pub/sub. The connection
// is established lazily on the first publish or subscribe and shared by
// concurrent callers; a failed connection drops back to disconnected so
// the next call reconnects.
type RedisEventBus struct {
	addr   string
	logger *zap.Logger

	mu     sync.Mutex
	state  connState
	client *redis.Client
	connCh chan struct{} // closed when an in-flight connect attempt finishes
}

func NewRedisEventBus(addr string, logger *zap.Logger) *RedisEventBus {
	return &RedisEventBus{
		addr:   addr,
		logger: logger,
		state:  stateDisconnected,
	}
}

// conn returns the live client, establishing the connection if needed.
// Callers that find a connect attempt already in flight wait for it and
// retry instead of dialing a second time.
func (b *RedisEventBus) conn(ctx context.Context) (*redis.Client, error) {
	for {
		b.mu.Lock()
		switch b.state {
		case stateConnected:
			client := b.client
			b.mu.Unlock()
			return client, nil

		case stateConnecting:
			ch := b.connCh
			b.mu.Unlock()
			select {
			case <-ch:
			case <-ctx.Done():
				return nil, ctx.Err()
			}

		case stateDisconnected:
			b.state = stateConnecting
			b.connCh = make(chan struct{})
			b.mu.Unlock()

			client := redis.NewClient(&redis.Options{Addr: b.addr})
			err := client.Ping(ctx).Err()

			b.mu.Lock()
			close(b.connCh)
			if err != nil {
				b.state = stateDisconnected
				b.mu.Unlock()
				_ = client.Close()
				return nil, fmt.Errorf("%w: connect %s: %v", domain.ErrBusUnavailable, b.addr, err)
			}
			b.client = client
			b.state = stateConnected
			b.mu.Unlock()

			b.logger.Info("connected to redis event bus", zap.String("addr", b.addr))
			return client, nil
		}
	}
}

// dropConn discards the shared client after a transport error so the
// next publish or subscribe dials again.
func (b *RedisEventBus) dropConn() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state != stateConnected {
		return
	}
	_ = b.client.Close()
	b.client = nil
	b.state = stateDisconnected
}

func (b *RedisEventBus) Publish(ctx context.Context, topic string, payload []byte) error {
	client, err := b.conn(ctx)
	if err != nil {
		return err
	}

	if err := client.Publish(ctx, topic, payload).Err(); err != nil {
		b.dropConn()
		return fmt.Errorf("%w: publish %s: %v", domain.ErrBusUnavailable, topic, err)
	}
	return nil
}

// Subscribe registers handler for every topic matching pattern. The
// subscription is confirmed synchronously; message delivery runs in a
// background goroutine until ctx is cancelled. A lost connection is
// re-established with a delay.
func (b *RedisEventBus) Subscribe(ctx context.Context, pattern string, handler domain.EventHandler) error {
	client, err := b.conn(ctx)
	if err != nil {
		return err
	}

	pubsub := client.PSubscribe(ctx, pattern)
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		b.dropConn()
		return fmt.Errorf("%w: subscribe %s: %v", domain.ErrBusUnavailable, pattern, err)
	}

	go b.consume(ctx, pattern, pubsub, handler)
	return nil
}

func (b *RedisEventBus) consume(ctx context.Context, pattern string, pubsub *redis.PubSub, handler domain.EventHandler) {
	defer pubsub.Close()

	ch := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				b.logger.Warn("bus subscription lost, reconnecting", zap.String("pattern", pattern))
				b.dropConn()
				b.resubscribe(ctx, pattern, handler)
				return
			}
			// redis globs match across segments, the topic matcher
			// restores one-segment wildcard semantics
			if !domain.MatchTopic(pattern, msg.Channel) {
				continue
			}
			handler(msg.Channel, []byte(msg.Payload))
		}
	}
}

func (b *RedisEventBus) resubscribe(ctx context.Context, pattern string, handler domain.EventHandler) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-time.After(reconnectDelay):
		}

		if err := b.Subscribe(ctx, pattern, handler); err != nil {
			b.logger.Warn("bus resubscribe failed", zap.String("pattern", pattern), zap.Error(err))
			continue
		}
		b.logger.Info("bus resubscribed", zap.String("pattern", pattern))
		return
	}
}

func (b *RedisEventBus) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state != stateConnected {
		return nil
	}
	err := b.client.Close()
	b.client = nil
	b.state = stateDisconnected
	return err
}
