// Package inflight enforces single-flight dispatch per record/integration
// pair. A key is held for the whole dispatch flow, including the delayed
// follow-up wait, and released only on the terminal outcome.
package inflight

import (
	"context"
	"errors"
	"time"
)

// ErrInFlight indicates the key is already held by a live dispatch.
var ErrInFlight = errors.New("dispatch already in flight for this key")

// Key identifies one logical dispatch flight.
type Key struct {
	RecordID    string
	Integration string
}

func (k Key) String() string {
	return k.RecordID + ":" + k.Integration
}

// Tracker is the single-flight store. Begin claims the key or fails with
// ErrInFlight; End releases it. Sweep removes entries older than the given
// age, covering flights orphaned by a crashed process.
type Tracker interface {
	Begin(ctx context.Context, key Key) error
	End(ctx context.Context, key Key) error
	Sweep(ctx context.Context, olderThan time.Duration) (int, error)
}
