package restapi

import (
	"math"
	"net/http"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/goccy/go-json"
	"golang.org/x/time/rate"

	"communityconnect.org/internal/models"
	"communityconnect.org/internal/utils"
)

const (
	limiterCleanupInterval = 5 * time.Minute
	limiterIdleTimeout     = 10 * time.Minute
)

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen atomic.Int64 // unix nanoseconds
}

// RateLimitMiddleware provides per-client rate limiting keyed by client IP
type RateLimitMiddleware struct {
	limiters   map[string]*clientLimiter
	mu         sync.RWMutex
	rateLimit  rate.Limit
	burstSize  int
	disabled   bool
	trustProxy bool // key on forwarding headers instead of the connection address
	done       chan struct{}
	stopOnce   sync.Once
}

// NewRateLimitMiddleware creates a new rate limiting middleware that allows
// ratePerSecond requests per interval for each client, with bursts of the
// same size. A non-positive rate disables limiting. Clients are keyed by
// connection address unless trustProxy is set.
func NewRateLimitMiddleware(ratePerSecond int, interval time.Duration, trustProxy bool) *RateLimitMiddleware {
	rl := &RateLimitMiddleware{
		limiters:   make(map[string]*clientLimiter),
		done:       make(chan struct{}),
		trustProxy: trustProxy,
	}

	if ratePerSecond <= 0 {
		rl.disabled = true
		rl.rateLimit = rate.Inf
		return rl
	}

	rl.rateLimit = rate.Every(interval / time.Duration(ratePerSecond))
	rl.burstSize = ratePerSecond

	go rl.cleanup(limiterCleanupInterval)

	return rl
}

// getLimiter gets or creates a rate limiter for the given client
func (rl *RateLimitMiddleware) getLimiter(client string) *rate.Limiter {
	now := time.Now().UnixNano()

	rl.mu.RLock()
	entry, exists := rl.limiters[client]
	rl.mu.RUnlock()

	if exists {
		entry.lastSeen.Store(now)
		return entry.limiter
	}

	rl.mu.Lock()
	defer rl.mu.Unlock()

	// Double-check after acquiring write lock
	if entry, exists := rl.limiters[client]; exists {
		entry.lastSeen.Store(now)
		return entry.limiter
	}

	entry = &clientLimiter{limiter: rate.NewLimiter(rl.rateLimit, rl.burstSize)}
	entry.lastSeen.Store(now)
	rl.limiters[client] = entry

	return entry.limiter
}

// Handler is the HTTP middleware function
func (rl *RateLimitMiddleware) Handler(next http.Handler) http.Handler {
	if rl.disabled {
		return next
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !rl.getLimiter(utils.ClientIP(r, rl.trustProxy)).Allow() {
			rl.sendRateLimitExceeded(w)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// sendRateLimitExceeded sends a 429 Too Many Requests response
func (rl *RateLimitMiddleware) sendRateLimitExceeded(w http.ResponseWriter) {
	retryAfter := 1
	if rl.rateLimit > 0 && rl.rateLimit != rate.Inf {
		retryAfter = max(1, int(math.Ceil(1/float64(rl.rateLimit))))
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
	w.Header().Set("X-RateLimit-Limit", strconv.Itoa(rl.burstSize))
	w.Header().Set("X-RateLimit-Remaining", "0")
	w.WriteHeader(http.StatusTooManyRequests)

	body, _ := json.Marshal(models.ErrorResponse{Error: "Rate limit exceeded. Please try again later."})
	_, _ = w.Write(append(body, '\n'))
}

// cleanup periodically drops limiters of clients that have gone quiet.
func (rl *RateLimitMiddleware) cleanup(every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-rl.done:
			return
		case now := <-ticker.C:
			rl.evictIdle(now, limiterIdleTimeout)
		}
	}
}

func (rl *RateLimitMiddleware) evictIdle(now time.Time, idle time.Duration) {
	cutoff := now.Add(-idle).UnixNano()

	rl.mu.Lock()
	defer rl.mu.Unlock()
	for client, entry := range rl.limiters {
		if entry.lastSeen.Load() < cutoff {
			delete(rl.limiters, client)
		}
	}
}

// Stop stops the cleanup goroutine
func (rl *RateLimitMiddleware) Stop() {
	rl.stopOnce.Do(func() { close(rl.done) })
}

func (rl *RateLimitMiddleware) trackedClients() int {
	rl.mu.RLock()
	defer rl.mu.RUnlock()
	return len(rl.limiters)
}
