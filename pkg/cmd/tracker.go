package cmd

import (
	"log/slog"
	"time"

	"github.com/anunay-mishra-24/loanverify/pkg/inflight"
	redis "github.com/redis/go-redis/v9"
)

// NewTracker selects the single-flight backend. An empty redis URL keeps
// the guarantee process-local; a redis URL extends it across instances.
func NewTracker(redisURL string, ttl time.Duration, logger *slog.Logger) (inflight.Tracker, error) {
	if redisURL == "" {
		return inflight.NewMemoryTracker(), nil
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}

	return inflight.NewRedisTracker(redis.NewClient(opts), ttl, logger), nil
}
