package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/shashiranjanraj/ventas/pkg/logger"
	"github.com/shashiranjanraj/ventas/pkg/response"
)

// bucket tracks a fixed-window request count for one key.
type bucket struct {
	count   int
	resetAt time.Time
}

// Limiter counts requests per key inside a window. Expired buckets are
// evicted lazily whenever the map is touched after a full window.
type Limiter struct {
	max    int
	window time.Duration
	now    func() time.Time

	mu        sync.Mutex
	buckets   map[string]*bucket
	nextSweep time.Time
}

func NewLimiter(max int, window time.Duration) *Limiter {
	return &Limiter{
		max:     max,
		window:  window,
		now:     time.Now,
		buckets: map[string]*bucket{},
	}
}

// Allow records a hit for key and reports whether it is within the limit.
func (l *Limiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if now.After(l.nextSweep) {
		for k, b := range l.buckets {
			if now.After(b.resetAt) {
				delete(l.buckets, k)
			}
		}
		l.nextSweep = now.Add(l.window)
	}

	b, ok := l.buckets[key]
	if !ok || now.After(b.resetAt) {
		b = &bucket{resetAt: now.Add(l.window)}
		l.buckets[key] = b
	}

	b.count++
	return b.count <= l.max
}

// Throttle limits each client IP to the limiter's budget on the routes it
// wraps. Rejected requests go to onLimit, or get the plain 429 page when
// onLimit is nil.
//
//	r.Post("/login", "login.attempt", h, middleware.Throttle(middleware.NewLimiter(5, time.Minute), nil))
func Throttle(l *Limiter, onLimit http.Handler) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := ClientIP(r)
			if !l.Allow(ip + "|" + r.URL.Path) {
				logger.WithCtx(r.Context()).Warn("throttled", "ip", ip, "path", r.URL.Path)
				w.Header().Set("Retry-After", strconv.Itoa(int(l.window.Seconds())))
				if onLimit != nil {
					onLimit.ServeHTTP(w, r)
				} else {
					response.TooManyRequests(w)
				}
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
