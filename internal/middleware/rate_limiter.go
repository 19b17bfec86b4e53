package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/45061/Hotelregistryapp/internal/apierror"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// ── Fixed-window limiter per client IP ───────────────────────────────────────

type rateEntry struct {
	count     int
	windowEnd time.Time
}

type windowLimiter struct {
	name    string
	limit   int
	window  time.Duration
	message string

	mu      sync.Mutex
	entries map[string]*rateEntry
}

var (
	limitersMu sync.Mutex
	limiters   []*windowLimiter
	purgeOnce  sync.Once
)

const purgeInterval = 5 * time.Minute

func newWindowLimiter(name string, limit int, window time.Duration, message string) *windowLimiter {
	l := &windowLimiter{
		name:    name,
		limit:   limit,
		window:  window,
		message: message,
		entries: make(map[string]*rateEntry),
	}
	limitersMu.Lock()
	limiters = append(limiters, l)
	limitersMu.Unlock()
	purgeOnce.Do(func() { go purgeLoop() })
	return l
}

// allow counts one request for key and reports whether it fits the window,
// together with the window end.
func (l *windowLimiter) allow(key string, now time.Time) (bool, time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()

	e, ok := l.entries[key]
	if !ok || now.After(e.windowEnd) {
		e = &rateEntry{windowEnd: now.Add(l.window)}
		l.entries[key] = e
	}
	e.count++
	return e.count <= l.limit, e.windowEnd
}

// purge drops expired windows and returns how many were removed.
func (l *windowLimiter) purge(now time.Time) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	n := 0
	for key, e := range l.entries {
		if now.After(e.windowEnd) {
			delete(l.entries, key)
			n++
		}
	}
	return n
}

func (l *windowLimiter) handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		ok, windowEnd := l.allow(c.ClientIP(), time.Now())
		if !ok {
			log.Warn().Str("limiter", l.name).Str("ip", c.ClientIP()).Msg("rate limit exceeded")
			c.Header("Retry-After", windowEnd.UTC().Format(http.TimeFormat))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, apierror.New(l.message))
			return
		}
		c.Next()
	}
}

func purgeLoop() {
	ticker := time.NewTicker(purgeInterval)
	defer ticker.Stop()
	for now := range ticker.C {
		limitersMu.Lock()
		current := append([]*windowLimiter(nil), limiters...)
		limitersMu.Unlock()
		for _, l := range current {
			if n := l.purge(now); n > 0 {
				log.Debug().Str("limiter", l.name).Int("purged", n).Msg("rate limiter entries purged")
			}
		}
	}
}

// ── Public constructors ──────────────────────────────────────────────────────

// register and login share one budget of 20 attempts per minute per IP.
var authLimiter = newWindowLimiter("auth", 20, time.Minute,
	"Demasiados intentos. Intente de nuevo en 1 minuto.")

// LoginRateLimiter guards the public auth endpoints.
func LoginRateLimiter() gin.HandlerFunc { return authLimiter.handler() }

// RateLimiter allows limit requests per window per IP.
func RateLimiter(limit int, window time.Duration) gin.HandlerFunc {
	return newWindowLimiter("api", limit, window,
		"Demasiadas solicitudes. Intente nuevamente en un momento.").handler()
}
