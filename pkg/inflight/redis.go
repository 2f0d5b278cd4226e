package inflight

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	redis "github.com/redis/go-redis/v9"
)

const keyPrefix = "loanverify:inflight:"

// RedisTracker backs single-flight with redis SET NX so the guarantee holds
// across multiple API instances. Keys carry a TTL as a backstop against
// instances that die mid-flight without releasing.
type RedisTracker struct {
	client redis.UniversalClient
	ttl    time.Duration
	logger *slog.Logger
}

func NewRedisTracker(client redis.UniversalClient, ttl time.Duration, logger *slog.Logger) *RedisTracker {
	return &RedisTracker{
		client: client,
		ttl:    ttl,
		logger: logger.With("module", "inflight_redis"),
	}
}

func (t *RedisTracker) Begin(ctx context.Context, key Key) error {
	acquired, err := t.client.SetNX(ctx, keyPrefix+key.String(), time.Now().UTC().Format(time.RFC3339), t.ttl).Result()
	if err != nil {
		return fmt.Errorf("failed to claim in-flight key: %w", err)
	}

	if !acquired {
		return ErrInFlight
	}

	return nil
}

func (t *RedisTracker) End(ctx context.Context, key Key) error {
	if err := t.client.Del(ctx, keyPrefix+key.String()).Err(); err != nil {
		return fmt.Errorf("failed to release in-flight key: %w", err)
	}

	return nil
}

// Sweep deletes claims whose recorded start time is older than the cutoff.
// The TTL already bounds leakage; the sweep tightens it for long TTLs.
func (t *RedisTracker) Sweep(ctx context.Context, olderThan time.Duration) (int, error) {
	cutoff := time.Now().UTC().Add(-olderThan)
	swept := 0

	iter := t.client.Scan(ctx, 0, keyPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		key := iter.Val()

		startedAt, err := t.client.Get(ctx, key).Result()
		if err != nil {
			continue
		}

		started, err := time.Parse(time.RFC3339, startedAt)
		if err != nil || !started.Before(cutoff) {
			continue
		}

		if err := t.client.Del(ctx, key).Err(); err != nil {
			t.logger.WarnContext(ctx, "Failed to sweep in-flight key", "key", key, "error", err)

			continue
		}

		swept++
	}

	if err := iter.Err(); err != nil {
		return swept, fmt.Errorf("in-flight sweep scan failed: %w", err)
	}

	return swept, nil
}
