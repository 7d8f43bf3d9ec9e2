package middleware

import (
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/time/rate"

	perr "observafloresta/internal/platform/errors"
	pnet "observafloresta/internal/platform/net"
)

// RateOptions configures a per client token bucket
// Rate is tokens per second, zero or less disables limiting
type RateOptions struct {
	Rate    float64
	Burst   int
	Clients int           // default 1000
	Idle    time.Duration // default 5m, an idle client starts over with a full bucket
}

// Limiter hands out one token bucket per client key
type Limiter struct {
	mu      sync.Mutex
	buckets *expirable.LRU[string, *rate.Limiter]
	rate    rate.Limit
	burst   int
	off     bool
}

// NewLimiter returns a Limiter for o
func NewLimiter(o RateOptions) *Limiter {
	if o.Clients <= 0 {
		o.Clients = 1000
	}
	if o.Idle <= 0 {
		o.Idle = 5 * time.Minute
	}
	if o.Burst <= 0 {
		o.Burst = 1
	}
	return &Limiter{
		buckets: expirable.NewLRU[string, *rate.Limiter](o.Clients, nil, o.Idle),
		rate:    rate.Limit(o.Rate),
		burst:   o.Burst,
		off:     o.Rate <= 0,
	}
}

// Allow spends one token of key's bucket
func (l *Limiter) Allow(key string) bool {
	if l == nil || l.off {
		return true
	}
	l.mu.Lock()
	b, ok := l.buckets.Get(key)
	if !ok {
		b = rate.NewLimiter(l.rate, l.burst)
		l.buckets.Add(key, b)
	}
	l.mu.Unlock()
	return b.Allow()
}

// RetryAfter is the wait for one token to refill, in whole seconds
func (l *Limiter) RetryAfter() int {
	if l == nil || l.off || l.rate <= 0 {
		return 0
	}
	s := int(1 / float64(l.rate))
	if s < 1 {
		s = 1
	}
	return s
}

// RateLimit rejects requests once the client bucket is empty
// the key is the client ip, see ClientIP
func RateLimit(l *Limiter, write func(w http.ResponseWriter, status int, body any)) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if l.Allow(ClientIP(r)) {
				next.ServeHTTP(w, r)
				return
			}
			if s := l.RetryAfter(); s > 0 {
				w.Header().Set("Retry-After", strconv.Itoa(s))
			}
			err := perr.TooManyRequestsf("Muitas requisições. Tente novamente em instantes.")
			status, body := pnet.Error(err, pnet.RequestID(r.Context()))
			write(w, status, body)
		})
	}
}

// ClientIP picks the first X-Forwarded-For hop, then X-Real-IP, then the peer address
func ClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		if ip := strings.TrimSpace(first); ip != "" {
			return ip
		}
	}
	if ip := strings.TrimSpace(r.Header.Get("X-Real-IP")); ip != "" {
		return ip
	}
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
