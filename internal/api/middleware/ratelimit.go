package middleware

import (
	"net/http"
	"sync"
	"time"
)

// RateLimiter implements a simple in-memory fixed-window rate limiter
// keyed by client IP. For multi-instance deployments a shared store
// would be needed; a single post backend instance does not.
type RateLimiter struct {
	clients  map[string]*clientWindow
	requests int
	window   time.Duration
	mu       sync.Mutex
}

type clientWindow struct {
	resetAt time.Time
	count   int
}

// NewRateLimiter creates a rate limiter allowing `requests` per
// `window` for each client
func NewRateLimiter(requests int, window time.Duration) *RateLimiter {
	rl := &RateLimiter{
		clients:  make(map[string]*clientWindow),
		requests: requests,
		window:   window,
	}

	go rl.evictExpired()

	return rl
}

// Middleware returns the rate limiting http middleware
func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !rl.allow(clientIP(r)) {
			http.Error(w, "Rate limit exceeded. Please try again later.", http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (rl *RateLimiter) allow(clientID string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now().UTC()

	client, ok := rl.clients[clientID]
	if !ok || now.After(client.resetAt) {
		rl.clients[clientID] = &clientWindow{count: 1, resetAt: now.Add(rl.window)}
		return true
	}

	if client.count < rl.requests {
		client.count++
		return true
	}

	return false
}

// evictExpired drops stale client windows once per window duration
func (rl *RateLimiter) evictExpired() {
	ticker := time.NewTicker(rl.window)
	defer ticker.Stop()

	for range ticker.C {
		rl.mu.Lock()
		now := time.Now().UTC()
		for clientID, client := range rl.clients {
			if now.After(client.resetAt) {
				delete(rl.clients, clientID)
			}
		}
		rl.mu.Unlock()
	}
}

// clientIP extracts the client IP, preferring proxy headers
func clientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		return forwarded
	}
	if realIP := r.Header.Get("X-Real-IP"); realIP != "" {
		return realIP
	}
	return r.RemoteAddr
}
