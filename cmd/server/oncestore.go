package main

import (
	"context"
	"time"

	"github.com/JhonRainbow6/WebProject/pkg/auth"
	"github.com/JhonRainbow6/WebProject/pkg/metrics"
)

// meteredOnceStore counts hits and misses of OAuth states and exchange codes.
type meteredOnceStore struct {
	next    auth.OnceStore
	metrics *metrics.Metrics
}

func (s meteredOnceStore) Put(ctx context.Context, key, value string, ttl time.Duration) (bool, error) {
	stored, err := s.next.Put(ctx, key, value, ttl)
	s.metrics.OnceStore("put", stored, err)
	return stored, err
}

func (s meteredOnceStore) Take(ctx context.Context, key string) (string, bool, error) {
	value, ok, err := s.next.Take(ctx, key)
	s.metrics.OnceStore("take", ok, err)
	return value, ok, err
}
