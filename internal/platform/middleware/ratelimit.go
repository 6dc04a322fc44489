package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
)

// RateLimitConfig holds rate limiting settings.
type RateLimitConfig struct {
	RequestsPerSecond float64
	BurstSize         int
}

// DefaultRateLimitConfig mirrors the server's config defaults.
func DefaultRateLimitConfig() RateLimitConfig {
	return RateLimitConfig{
		RequestsPerSecond: 100,
		BurstSize:         200,
	}
}

// idleExpiry is how long a client's bucket survives without traffic before
// the sweep reclaims it.
const idleExpiry = 10 * time.Minute

// client is one caller's token bucket plus the timestamp the sweep checks.
// Tokens refill lazily from lastSeen on the next request.
type client struct {
	tokens   float64
	lastSeen time.Time
}

// limiter owns every client bucket behind one mutex. Refill happens on
// access and idle buckets are swept inline, so there is no background
// goroutine to start or stop.
type limiter struct {
	mu      sync.Mutex
	clients map[string]*client
	rate    float64
	burst   float64
	swept   time.Time
}

func newLimiter(cfg RateLimitConfig) *limiter {
	return &limiter{
		clients: make(map[string]*client),
		rate:    cfg.RequestsPerSecond,
		burst:   float64(cfg.BurstSize),
		swept:   time.Now(),
	}
}

// take spends one token for key. It reports whole tokens left on success
// and the seconds to wait when the bucket is empty.
func (l *limiter) take(key string) (allowed bool, remaining int, retryAfter int) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	l.sweep(now)

	cl, ok := l.clients[key]
	if !ok {
		cl = &client{tokens: l.burst}
		l.clients[key] = cl
	} else {
		cl.tokens += now.Sub(cl.lastSeen).Seconds() * l.rate
		if cl.tokens > l.burst {
			cl.tokens = l.burst
		}
	}
	cl.lastSeen = now

	if cl.tokens < 1 {
		wait := 1
		if l.rate > 0 {
			wait = int((1-cl.tokens)/l.rate) + 1
		}
		return false, 0, wait
	}
	cl.tokens--
	return true, int(cl.tokens), 0
}

// sweep drops buckets idle past expiry. It runs at most once per expiry
// window, under the lock take already holds.
func (l *limiter) sweep(now time.Time) {
	if now.Sub(l.swept) < idleExpiry {
		return
	}
	l.swept = now
	for key, cl := range l.clients {
		if now.Sub(cl.lastSeen) > idleExpiry {
			delete(l.clients, key)
		}
	}
}

// RateLimit budgets each caller per route pattern. Keying on IP plus route
// means a burst of expansions from one client cannot starve that same
// client's searches or phrase edits.
func RateLimit(cfg RateLimitConfig) echo.MiddlewareFunc {
	lim := newLimiter(cfg)
	limitHeader := strconv.FormatFloat(cfg.RequestsPerSecond, 'f', -1, 64)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			allowed, remaining, retryAfter := lim.take(c.RealIP() + " " + c.Path())

			h := c.Response().Header()
			h.Set("X-RateLimit-Limit", limitHeader)
			if !allowed {
				h.Set("X-RateLimit-Remaining", "0")
				h.Set("Retry-After", strconv.Itoa(retryAfter))
				return echo.NewHTTPError(http.StatusTooManyRequests, "rate limit exceeded")
			}
			h.Set("X-RateLimit-Remaining", strconv.Itoa(remaining))
			return next(c)
		}
	}
}
