package http

import (
	"sync"
	"time"
)

const (
	idleBucketTTL = 1 * time.Hour
	sweepInterval = 30 * time.Minute
)

// RateLimiter lets each client make burst requests at once and then one more
// every window/burst. A client's state is the time at which its bucket would be
// full again (theoretical arrival time).
type RateLimiter struct {
	mu       sync.Mutex
	perToken time.Duration
	burstDur time.Duration
	buckets  map[string]time.Time
	now      func() time.Time
	done     chan struct{}
	stopOnce sync.Once
}

func NewRateLimiter(burst int, window time.Duration) *RateLimiter {
	perToken := window / time.Duration(burst)
	rl := &RateLimiter{
		perToken: perToken,
		burstDur: perToken * time.Duration(burst),
		buckets:  make(map[string]time.Time),
		now:      time.Now,
		done:     make(chan struct{}),
	}
	go rl.sweepLoop()
	return rl
}

func (r *RateLimiter) sweepLoop() {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			r.sweep()
		case <-r.done:
			return
		}
	}
}

// sweep forgets clients idle for longer than idleBucketTTL.
func (r *RateLimiter) sweep() {
	r.mu.Lock()
	defer r.mu.Unlock()

	cutoff := r.now().Add(-idleBucketTTL)
	for client, tat := range r.buckets {
		if tat.Before(cutoff) {
			delete(r.buckets, client)
		}
	}
}

// Stop ends the background sweep. Safe to call more than once.
func (r *RateLimiter) Stop() {
	r.stopOnce.Do(func() { close(r.done) })
}

// Allow records a request from client. When the client is over its rate it
// returns false and how long until the next request would be accepted.
func (r *RateLimiter) Allow(client string) (bool, time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	tat, ok := r.buckets[client]
	if !ok || tat.Before(now) {
		tat = now
	}

	next := tat.Add(r.perToken)
	allowAt := next.Add(-r.burstDur)
	if now.Before(allowAt) {
		return false, allowAt.Sub(now)
	}

	r.buckets[client] = next
	return true, 0
}
