package httpapi

import (
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// RateLimitConfig holds the comment posting limit for one client.
type RateLimitConfig struct {
	// RequestsPerSecond is the sustained rate.
	RequestsPerSecond float64
	// BurstSize is the maximum burst size.
	BurstSize int
}

// DefaultCommentRateLimit allows a short burst, then one comment every two seconds.
var DefaultCommentRateLimit = RateLimitConfig{RequestsPerSecond: 0.5, BurstSize: 5}

// maxClients bounds the limiter table; idle entries are dropped past it.
const maxClients = 1024

// clientLimiter is a token bucket per client address.
type clientLimiter struct {
	cfg RateLimitConfig

	mu      sync.Mutex
	clients map[string]*clientBucket
}

type clientBucket struct {
	limiter *rate.Limiter
	seen    time.Time
}

func newClientLimiter(cfg RateLimitConfig) *clientLimiter {
	if cfg.RequestsPerSecond <= 0 {
		cfg.RequestsPerSecond = DefaultCommentRateLimit.RequestsPerSecond
	}
	if cfg.BurstSize <= 0 {
		cfg.BurstSize = DefaultCommentRateLimit.BurstSize
	}
	return &clientLimiter{cfg: cfg, clients: make(map[string]*clientBucket)}
}

// Allow reports whether the client may post now. When it may not, the
// second result is how long until the next token.
func (l *clientLimiter) Allow(r *http.Request) (bool, time.Duration) {
	key := clientKey(r)
	now := time.Now()

	l.mu.Lock()
	b, ok := l.clients[key]
	if !ok {
		if len(l.clients) >= maxClients {
			l.evictLocked(now)
		}
		b = &clientBucket{limiter: rate.NewLimiter(rate.Limit(l.cfg.RequestsPerSecond), l.cfg.BurstSize)}
		l.clients[key] = b
	}
	b.seen = now
	l.mu.Unlock()

	res := b.limiter.ReserveN(now, 1)
	if delay := res.DelayFrom(now); delay > 0 {
		res.CancelAt(now)
		return false, delay
	}
	return true, 0
}

// evictLocked drops clients idle long enough for their bucket to be full.
func (l *clientLimiter) evictLocked(now time.Time) {
	refill := time.Duration(float64(l.cfg.BurstSize) / l.cfg.RequestsPerSecond * float64(time.Second))
	for key, b := range l.clients {
		if now.Sub(b.seen) > refill {
			delete(l.clients, key)
		}
	}
}

func clientKey(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
