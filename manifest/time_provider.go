package manifest

import (
	"sync"
	"time"
)

// TimeProvider is the clock a manifest is stamped with. CreatedAt comes from
// Now and RenderMs from Since.
type TimeProvider interface {
	Now() time.Time
	Since(t time.Time) time.Duration
}

// SystemClock reads the wall clock.
type SystemClock struct{}

// Now implements TimeProvider.
func (SystemClock) Now() time.Time { return time.Now() }

// Since implements TimeProvider.
func (SystemClock) Since(t time.Time) time.Duration { return time.Since(t) }

var (
	clockMu      sync.RWMutex
	defaultClock TimeProvider = SystemClock{}
)

// SetDefaultTimeProvider replaces the clock used for manifests created with
// a nil provider. nil restores SystemClock.
func SetDefaultTimeProvider(tp TimeProvider) {
	if tp == nil {
		tp = SystemClock{}
	}
	clockMu.Lock()
	defaultClock = tp
	clockMu.Unlock()
}

func defaultTimeProvider() TimeProvider {
	clockMu.RLock()
	defer clockMu.RUnlock()
	return defaultClock
}
