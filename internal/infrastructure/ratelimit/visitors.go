package ratelimit

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const (
	defaultIdleTTL         = 3 * time.Minute
	defaultCleanupInterval = time.Minute
)

// visitor is a single client's token bucket with its last access time
type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// VisitorLimiter is a thread-safe registry of per-client token buckets.
// Idle visitors are dropped by a background sweep.
type VisitorLimiter struct {
	visitors map[string]*visitor
	mutex    sync.Mutex

	limit   rate.Limit
	burst   int
	idleTTL time.Duration

	stop     chan struct{}
	stopOnce sync.Once
}

// NewVisitorLimiter creates a limiter allowing perMinute requests per client.
// A non-positive perMinute disables limiting.
func NewVisitorLimiter(perMinute int) *VisitorLimiter {
	return newVisitorLimiter(perMinute, defaultIdleTTL, defaultCleanupInterval)
}

func newVisitorLimiter(perMinute int, idleTTL, cleanupInterval time.Duration) *VisitorLimiter {
	limit := rate.Inf
	burst := 1
	if perMinute > 0 {
		limit = rate.Every(time.Minute / time.Duration(perMinute))
		burst = perMinute
	}

	v := &VisitorLimiter{
		visitors: make(map[string]*visitor),
		limit:    limit,
		burst:    burst,
		idleTTL:  idleTTL,
		stop:     make(chan struct{}),
	}

	go v.cleanupIdle(cleanupInterval)

	return v
}

// Allow reports whether the client identified by key may make a request now
func (v *VisitorLimiter) Allow(key string) bool {
	v.mutex.Lock()
	defer v.mutex.Unlock()

	entry, exists := v.visitors[key]
	if !exists {
		entry = &visitor{limiter: rate.NewLimiter(v.limit, v.burst)}
		v.visitors[key] = entry
	}
	entry.lastSeen = time.Now()

	return entry.limiter.Allow()
}

// Size returns the number of tracked visitors (for debugging/monitoring)
func (v *VisitorLimiter) Size() int {
	v.mutex.Lock()
	defer v.mutex.Unlock()
	return len(v.visitors)
}

// Close stops the background sweep
func (v *VisitorLimiter) Close() {
	v.stopOnce.Do(func() { close(v.stop) })
}

// cleanupIdle removes visitors not seen within idleTTL periodically
func (v *VisitorLimiter) cleanupIdle(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-v.stop:
			return
		case <-ticker.C:
			v.removeIdle(time.Now())
		}
	}
}

func (v *VisitorLimiter) removeIdle(now time.Time) {
	v.mutex.Lock()
	defer v.mutex.Unlock()

	for key, entry := range v.visitors {
		if now.Sub(entry.lastSeen) > v.idleTTL {
			delete(v.visitors, key)
		}
	}
}
