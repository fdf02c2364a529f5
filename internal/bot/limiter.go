// Per-user token-bucket limiter for bot commands.
//
// Buckets are created on demand, keyed by the sender's numeric ID, and idle
// buckets are evicted opportunistically during lookups to bound memory. The
// limiter is process-local; the bot runs as a single poller, so no
// distributed coordination is needed.
package bot

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// visitor holds one user's limiter and the last time it was seen.
type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// UserLimiter enforces a per-user token bucket over bot commands.
// Safe for concurrent use.
type UserLimiter struct {
	rps   rate.Limit
	burst int

	mu       sync.Mutex
	visitors map[int64]*visitor
	ttl      time.Duration
	cleanupN uint64
}

// NewUserLimiter constructs a limiter replenishing rps tokens per second with
// the given burst size; burst values <= 0 are coerced to 1.
func NewUserLimiter(rps float64, burst int) *UserLimiter {
	if burst <= 0 {
		burst = 1
	}
	return &UserLimiter{
		rps:      rate.Limit(rps),
		burst:    burst,
		visitors: make(map[int64]*visitor),
		ttl:      10 * time.Minute,
	}
}

// Allow reports whether the user may run a command now, consuming a token
// when it does.
func (l *UserLimiter) Allow(userID int64) bool {
	return l.getVisitor(userID).Allow()
}

// getVisitor returns (and refreshes) the limiter for userID, creating it when
// absent. Idle entries are swept after a threshold of lookups; the sweep runs
// before the refresh so a stale bucket for the requested user is also evicted.
func (l *UserLimiter) getVisitor(userID int64) *rate.Limiter {
	now := time.Now()

	l.mu.Lock()
	defer l.mu.Unlock()

	l.cleanupN++
	if l.cleanupN >= 5000 {
		for id, v := range l.visitors {
			if now.Sub(v.lastSeen) >= l.ttl {
				delete(l.visitors, id)
			}
		}
		l.cleanupN = 0
	}

	if v, ok := l.visitors[userID]; ok {
		v.lastSeen = now
		return v.limiter
	}

	lim := rate.NewLimiter(l.rps, l.burst)
	l.visitors[userID] = &visitor{limiter: lim, lastSeen: now}
	return lim
}
