package inflight

import (
	"context"
	"sync"
	"time"
)

// MemoryTracker is the in-process tracker used in tests and single-instance
// deployments.
type MemoryTracker struct {
	mu      sync.Mutex
	entries map[Key]time.Time
}

func NewMemoryTracker() *MemoryTracker {
	return &MemoryTracker{entries: make(map[Key]time.Time)}
}

func (t *MemoryTracker) Begin(_ context.Context, key Key) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, held := t.entries[key]; held {
		return ErrInFlight
	}

	t.entries[key] = time.Now().UTC()

	return nil
}

func (t *MemoryTracker) End(_ context.Context, key Key) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	delete(t.entries, key)

	return nil
}

func (t *MemoryTracker) Sweep(_ context.Context, olderThan time.Duration) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	cutoff := time.Now().UTC().Add(-olderThan)
	swept := 0

	for key, startedAt := range t.entries {
		if startedAt.Before(cutoff) {
			delete(t.entries, key)

			swept++
		}
	}

	return swept, nil
}
