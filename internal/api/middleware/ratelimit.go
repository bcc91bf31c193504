package middleware

import (
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"

	"github.com/futig/mock-interview/internal/pkg/response"
)

const inactiveClientTTL = time.Hour

// clientLimit is the token bucket of one client.
type clientLimit struct {
	mu         sync.Mutex
	tokens     float64
	lastRefill time.Time
}

// RateLimiter caps model-backed requests per client address with a token
// bucket. Idle buckets expire from the cache.
type RateLimiter struct {
	clients    *cache.Cache
	mu         sync.Mutex
	maxTokens  float64
	refillRate float64
	now        func() time.Time
}

// NewRateLimiter allows requestsPerMinute requests per client, all of them
// usable in a burst. Zero or less disables limiting.
func NewRateLimiter(requestsPerMinute int) *RateLimiter {
	return &RateLimiter{
		clients:    cache.New(inactiveClientTTL, 10*time.Minute),
		maxTokens:  float64(requestsPerMinute),
		refillRate: float64(requestsPerMinute) / 60.0,
		now:        time.Now,
	}
}

func (rl *RateLimiter) Handle(next http.Handler) http.Handler {
	if rl.maxTokens <= 0 {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		client := clientAddr(r)
		if wait, ok := rl.allow(client); !ok {
			ctxzap.Warn(r.Context(), "rate limit exceeded",
				zap.String("client", client),
				zap.Duration("retry_after", wait),
			)
			w.Header().Set("Retry-After", strconv.Itoa(int(wait.Seconds()+0.999)))
			response.ErrorWithCode(w, http.StatusTooManyRequests, http.StatusText(http.StatusTooManyRequests),
				"rate_limited", "too many requests, slow down")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// allow takes a token for client or reports how long until one is available.
func (rl *RateLimiter) allow(client string) (time.Duration, bool) {
	limit := rl.bucket(client)

	limit.mu.Lock()
	defer limit.mu.Unlock()

	now := rl.now()
	limit.tokens += now.Sub(limit.lastRefill).Seconds() * rl.refillRate
	if limit.tokens > rl.maxTokens {
		limit.tokens = rl.maxTokens
	}
	limit.lastRefill = now

	if limit.tokens >= 1.0 {
		limit.tokens--
		return 0, true
	}
	missing := 1.0 - limit.tokens
	return time.Duration(missing / rl.refillRate * float64(time.Second)), false
}

func (rl *RateLimiter) bucket(client string) *clientLimit {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	if v, ok := rl.clients.Get(client); ok {
		rl.clients.SetDefault(client, v)
		return v.(*clientLimit)
	}
	limit := &clientLimit{tokens: rl.maxTokens, lastRefill: rl.now()}
	rl.clients.SetDefault(client, limit)
	return limit
}

func clientAddr(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
