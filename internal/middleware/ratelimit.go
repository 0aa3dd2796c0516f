package middleware

import (
	"encoding/json"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"
)

// RateLimiter is a sliding-window request log per client IP.
type RateLimiter struct {
	mu         sync.Mutex
	hits       map[string][]time.Time
	limit      int
	window     time.Duration
	trustProxy bool
	now        func() time.Time
	stop       chan struct{}
}

// NewRateLimiter starts a limiter allowing limit requests per window.
// With trustProxy the client IP is taken from X-Forwarded-For/X-Real-IP,
// otherwise from the connection. Call Close to stop its cleanup goroutine.
func NewRateLimiter(limit int, window time.Duration, trustProxy bool) *RateLimiter {
	rl := &RateLimiter{
		hits:       make(map[string][]time.Time),
		limit:      limit,
		window:     window,
		trustProxy: trustProxy,
		now:        time.Now,
		stop:       make(chan struct{}),
	}
	go rl.cleanupLoop()
	return rl
}

func (rl *RateLimiter) Allow(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	recent := pruneBefore(rl.hits[ip], now.Add(-rl.window))

	if len(recent) >= rl.limit {
		rl.hits[ip] = recent
		return false
	}

	rl.hits[ip] = append(recent, now)
	return true
}

func (rl *RateLimiter) Close() {
	close(rl.stop)
}

func (rl *RateLimiter) cleanupLoop() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.cleanup()
		case <-rl.stop:
			return
		}
	}
}

// cleanup drops IPs idle for two windows
func (rl *RateLimiter) cleanup() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	cutoff := rl.now().Add(-2 * rl.window)
	for ip, hits := range rl.hits {
		if len(hits) == 0 || !hits[len(hits)-1].After(cutoff) {
			delete(rl.hits, ip)
		}
	}
}

// pruneBefore keeps timestamps after cutoff; hits are in ascending order.
func pruneBefore(hits []time.Time, cutoff time.Time) []time.Time {
	i := 0
	for i < len(hits) && !hits[i].After(cutoff) {
		i++
	}
	return hits[i:]
}

// RateLimit wraps a handler with a per-IP limit. Rejected requests get
// 429 with a JSON error body and Retry-After.
func RateLimit(rl *RateLimiter) func(http.HandlerFunc) http.HandlerFunc {
	retryAfter := strconv.Itoa(int(rl.window.Seconds()))

	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			ip := getClientIP(r, rl.trustProxy)

			if !rl.Allow(ip) {
				slog.Warn("rate limit exceeded", "ip", ip, "path", r.URL.Path)

				w.Header().Set("Content-Type", "application/json")
				w.Header().Set("Retry-After", retryAfter)
				w.WriteHeader(http.StatusTooManyRequests)
				_ = json.NewEncoder(w).Encode(map[string]string{
					"error": "Too many requests. Please try again later.",
				})
				return
			}

			next(w, r)
		}
	}
}

// getClientIP returns RemoteAddr without port. Proxy headers are client
// controlled and only read when trustProxy is set.
func getClientIP(r *http.Request, trustProxy bool) string {
	if trustProxy {
		if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
			first, _, _ := strings.Cut(xff, ",")
			return strings.TrimSpace(first)
		}

		if xri := r.Header.Get("X-Real-IP"); xri != "" {
			return strings.TrimSpace(xri)
		}
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
