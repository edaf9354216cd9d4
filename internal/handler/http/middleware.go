package http

import (
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"runtime/debug"
	"strings"
	"sync"
	"time"

	"not-project-backend/internal/handler/http/requestid"
	"not-project-backend/internal/handler/http/respond"
	"not-project-backend/internal/handler/http/responsewriter"

	"go.opentelemetry.io/otel/trace"
)

// Logging returns middleware that logs each request with its request ID,
// trace ID, status, and duration. The trace ID comes from the OpenTelemetry
// span context so logs correlate with traces.
func Logging(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			wrapped := responsewriter.Wrap(w)
			next.ServeHTTP(wrapped, r)

			duration := time.Since(start)
			span := trace.SpanFromContext(r.Context())

			logger.Info("request completed",
				slog.String("request_id", requestid.FromContext(r.Context())),
				slog.String("trace_id", span.SpanContext().TraceID().String()),
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.String("query", r.URL.RawQuery),
				slog.String("remote_addr", r.RemoteAddr),
				slog.String("user_agent", r.Header.Get("User-Agent")),
				slog.Int("status", wrapped.StatusCode()),
				slog.Int("bytes", wrapped.BytesWritten()),
				slog.Duration("duration", duration),
				slog.String("duration_ms", fmt.Sprintf("%.2f", duration.Seconds()*1000)),
			)
		})
	}
}

// Recover returns middleware that converts panics into 500 responses
// instead of tearing down the server.
func Recover(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}

				respond.SafeError(w, http.StatusInternalServerError, fmt.Errorf("internal error"))

				logger.Error("panic recovered",
					slog.String("request_id", requestid.FromContext(r.Context())),
					slog.String("method", r.Method),
					slog.String("path", r.URL.Path),
					slog.Any("panic", rec),
					slog.String("stack", string(debug.Stack())),
				)
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// LimitRequestBody caps request body size. Multipart story uploads go
// through this too, so the cap must cover thumbnail plus editor images.
func LimitRequestBody(maxBytes int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			next.ServeHTTP(w, r)
		})
	}
}

// clientLog holds the recent request times for one client address.
type clientLog struct {
	mu    sync.Mutex
	times []time.Time
}

// prune drops entries at or before cutoff and reports how many remain.
// Caller holds mu.
func (c *clientLog) prune(cutoff time.Time) int {
	kept := c.times[:0]
	for _, ts := range c.times {
		if ts.After(cutoff) {
			kept = append(kept, ts)
		}
	}
	c.times = kept
	return len(kept)
}

// RateLimiter applies per-IP sliding window rate limiting. The contact and
// subscribe endpoints sit behind it so one client cannot drain the mailer
// quota.
type RateLimiter struct {
	clients   sync.Map // map[string]*clientLog
	limit     int
	window    time.Duration
	sweepMu   sync.Mutex
	lastSweep time.Time
}

// NewRateLimiter allows limit requests per window for each client IP.
func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		limit:     limit,
		window:    window,
		lastSweep: time.Now(),
	}
}

// Limit rejects over-limit requests with 429.
func (rl *RateLimiter) Limit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rl.sweepIdleClients()

		if !rl.allow(ClientIP(r)) {
			respond.SafeError(w, http.StatusTooManyRequests, fmt.Errorf("rate limit exceeded"))
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (rl *RateLimiter) allow(ip string) bool {
	now := time.Now()

	val, _ := rl.clients.LoadOrStore(ip, &clientLog{times: make([]time.Time, 0, rl.limit)})
	client := val.(*clientLog)

	client.mu.Lock()
	defer client.mu.Unlock()

	if client.prune(now.Add(-rl.window)) >= rl.limit {
		return false
	}
	client.times = append(client.times, now)
	return true
}

// sweepIdleClients drops clients with no requests inside two windows so
// the map cannot grow without bound. Runs at most every ten minutes.
func (rl *RateLimiter) sweepIdleClients() {
	rl.sweepMu.Lock()
	defer rl.sweepMu.Unlock()

	if time.Since(rl.lastSweep) < 10*time.Minute {
		return
	}
	rl.lastSweep = time.Now()
	cutoff := time.Now().Add(-rl.window * 2)

	rl.clients.Range(func(key, value interface{}) bool {
		client := value.(*clientLog)
		client.mu.Lock()
		if client.prune(cutoff) == 0 {
			rl.clients.Delete(key)
		}
		client.mu.Unlock()
		return true
	})
}

// ClientIP resolves the client IP, preferring proxy headers over
// RemoteAddr since the service runs behind a load balancer.
func ClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		if ip := parseFirstIP(xff); ip != "" {
			return ip
		}
	}

	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		if ip := net.ParseIP(xri); ip != nil {
			return ip.String()
		}
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// parseFirstIP returns the first address of an X-Forwarded-For chain,
// or "" when it does not parse as an IP.
func parseFirstIP(s string) string {
	first, _, _ := strings.Cut(s, ",")
	if ip := net.ParseIP(strings.TrimSpace(first)); ip != nil {
		return ip.String()
	}
	return ""
}
