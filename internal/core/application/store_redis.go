// Copyright (c) 2026 JanSetu. All rights reserved.
// Author: dev@jansetu.in

package application

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jansetu/jansetu/internal/platform/constants"
)

// RedisTrackingCache implements the TrackingCache interface on top of Redis.
//
// Entries are JSON-encoded TrackingView snapshots keyed by reference under
// the applications:tracking: prefix. The public tracking endpoint is
// unauthenticated, so this cache is what keeps anonymous polling off
// PostgreSQL.
type RedisTrackingCache struct {
	client *redis.Client
}

// NewTrackingCache creates a Redis-backed TrackingCache.
func NewTrackingCache(client *redis.Client) *RedisTrackingCache {
	return &RedisTrackingCache{client: client}
}

// GetTracking returns the cached view for a reference, or (nil, nil) on a
// cache miss. A corrupt entry is treated as a miss.
func (cache *RedisTrackingCache) GetTracking(context context.Context, reference string) (*TrackingView, error) {
	payload, err := cache.client.Get(context, trackingKey(reference)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("redis_tracking_cache_get_failed: %w", err)
	}

	view := &TrackingView{}
	if err := json.Unmarshal(payload, view); err != nil {
		return nil, nil
	}

	return view, nil
}

// SetTracking stores a view snapshot under the given TTL.
func (cache *RedisTrackingCache) SetTracking(context context.Context, reference string, view *TrackingView, ttl time.Duration) error {
	payload, err := json.Marshal(view)
	if err != nil {
		return fmt.Errorf("redis_tracking_cache_encode_failed: %w", err)
	}

	if err := cache.client.Set(context, trackingKey(reference), payload, ttl).Err(); err != nil {
		return fmt.Errorf("redis_tracking_cache_set_failed: %w", err)
	}

	return nil
}

// InvalidateTracking drops the cached view after a status transition.
func (cache *RedisTrackingCache) InvalidateTracking(context context.Context, reference string) error {
	if err := cache.client.Del(context, trackingKey(reference)).Err(); err != nil {
		return fmt.Errorf("redis_tracking_cache_del_failed: %w", err)
	}

	return nil
}

func trackingKey(reference string) string {
	return constants.RedisPrefixTracking + reference
}
