package cache

import (
	"context"
	"time"
)

// NoopCache misses on every lookup. Used when no Redis is configured.
type NoopCache struct{}

func NewNoopCache() *NoopCache {
	return &NoopCache{}
}

func (c *NoopCache) GetSummary(_ context.Context, _ string) (*Entry, error) {
	return nil, nil
}

func (c *NoopCache) SetSummary(_ context.Context, _ string, _ *Entry, _ time.Duration) error {
	return nil
}

func (c *NoopCache) Close() error {
	return nil
}
