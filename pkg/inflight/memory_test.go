package inflight

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryTracker_BeginEnd(t *testing.T) {
	tracker := NewMemoryTracker()
	key := Key{RecordID: "rec-1", Integration: "litigation-check"}

	require.NoError(t, tracker.Begin(t.Context(), key))
	assert.ErrorIs(t, tracker.Begin(t.Context(), key), ErrInFlight)

	// A different integration on the same record is independent.
	other := Key{RecordID: "rec-1", Integration: "kyc-verification"}
	assert.NoError(t, tracker.Begin(t.Context(), other))

	require.NoError(t, tracker.End(t.Context(), key))
	assert.NoError(t, tracker.Begin(t.Context(), key))
}

func TestMemoryTracker_EndIsIdempotent(t *testing.T) {
	tracker := NewMemoryTracker()
	key := Key{RecordID: "rec-1", Integration: "litigation-check"}

	assert.NoError(t, tracker.End(t.Context(), key))
}

func TestMemoryTracker_ConcurrentBegin(t *testing.T) {
	tracker := NewMemoryTracker()
	key := Key{RecordID: "rec-1", Integration: "litigation-check"}

	const attempts = 50

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		acquired int
	)

	for range attempts {
		wg.Add(1)

		go func() {
			defer wg.Done()

			if tracker.Begin(t.Context(), key) == nil {
				mu.Lock()
				acquired++
				mu.Unlock()
			}
		}()
	}

	wg.Wait()
	assert.Equal(t, 1, acquired)
}

func TestMemoryTracker_Sweep(t *testing.T) {
	tracker := NewMemoryTracker()

	require.NoError(t, tracker.Begin(t.Context(), Key{RecordID: "rec-1", Integration: "a"}))
	require.NoError(t, tracker.Begin(t.Context(), Key{RecordID: "rec-2", Integration: "b"}))

	// Nothing is old enough yet.
	swept, err := tracker.Sweep(t.Context(), time.Minute)
	require.NoError(t, err)
	assert.Zero(t, swept)

	// With a zero cutoff everything qualifies.
	swept, err = tracker.Sweep(t.Context(), -time.Second)
	require.NoError(t, err)
	assert.Equal(t, 2, swept)

	assert.NoError(t, tracker.Begin(t.Context(), Key{RecordID: "rec-1", Integration: "a"}))
}

func TestKeyString(t *testing.T) {
	key := Key{RecordID: "rec-1", Integration: "litigation-check"}
	assert.Equal(t, "rec-1:litigation-check", key.String())
}
