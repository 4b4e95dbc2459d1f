package repository

import (
	"context"
	"time"
)

// CacheRepository is the shared external cache. The core stays correct
// when it is absent or cold; it only avoids redundant downstream calls.
type CacheRepository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}

// StreamRepository publishes and consumes background tasks.
type StreamRepository interface {
	Publish(ctx context.Context, stream string, values map[string]interface{}) error
	EnsureGroup(ctx context.Context, stream, group string) error
	ReadGroup(ctx context.Context, stream, group, consumer string, block time.Duration) ([]StreamMessage, error)
	Ack(ctx context.Context, stream, group string, ids ...string) error
}

type StreamMessage struct {
	ID     string
	Values map[string]interface{}
}
