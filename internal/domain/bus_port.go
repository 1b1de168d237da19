package domain

import "context"

type EventHandler func(topic string, payload []byte)

// EventBus decouples writers from notification consumers. Connection to
// the underlying transport is lazy: publish and subscribe establish it
// on demand and reuse it afterwards.
type EventBus interface {
	Publish(ctx context.Context, topic string, payload []byte) error
	Subscribe(ctx context.Context, pattern string, handler EventHandler) error
}
