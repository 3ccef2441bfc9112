package middleware

import (
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/GregMSThompson/nirvor-backend/internal/response"
	"github.com/GregMSThompson/nirvor-backend/pkg/logger"
)

// idleLimiterTTL is how long an unused per-client limiter is kept.
const idleLimiterTTL = 10 * time.Minute

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// rateLimiter throttles each client IP with its own token bucket.
type rateLimiter struct {
	mu       sync.Mutex
	clients  map[string]*clientLimiter
	limit    rate.Limit
	burst    int
	rh       response.ResponseHandler
	clockNow func() time.Time
}

func NewRateLimiter(perSecond float64, burst int, rh response.ResponseHandler) *rateLimiter {
	if burst < 1 {
		burst = 1
	}
	return &rateLimiter{
		clients:  make(map[string]*clientLimiter),
		limit:    rate.Limit(perSecond),
		burst:    burst,
		rh:       rh,
		clockNow: time.Now,
	}
}

func (l *rateLimiter) limiterFor(ip string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.clockNow()
	for key, c := range l.clients {
		if now.Sub(c.lastSeen) > idleLimiterTTL {
			delete(l.clients, key)
		}
	}

	c, ok := l.clients[ip]
	if !ok {
		c = &clientLimiter{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.clients[ip] = c
	}
	c.lastSeen = now
	return c.limiter
}

func (l *rateLimiter) RateLimitMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := clientIP(r)
		if !l.limiterFor(ip).Allow() {
			logger.FromContext(r.Context()).Warn("rate limit exceeded", "ip", ip)
			w.Header().Set("Retry-After", "1")
			l.rh.WriteError(w, r, http.StatusTooManyRequests, "rate_limited", "Too many requests. Try again shortly.")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
