package http

import (
	"context"
	"net/http"
	"sync"
	"time"
)

// Timeout caps how long a request may run. Past the deadline the client
// gets 504 and the request context is cancelled so the handler's database
// and outbound calls unwind. The shared mutex guarantees exactly one side
// writes the response: the timeout path or the handler, never both.
func Timeout(duration time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), duration)
			defer cancel()

			tw := &timeoutWriter{dst: w}
			done := make(chan struct{})

			go func() {
				defer close(done)
				next.ServeHTTP(tw, r.WithContext(ctx))
			}()

			select {
			case <-done:
			case <-ctx.Done():
				tw.abort()
			}
		})
	}
}

// timeoutWriter forwards handler output until abort is called, after
// which handler writes report http.ErrHandlerTimeout.
type timeoutWriter struct {
	dst http.ResponseWriter

	mu       sync.Mutex
	timedOut bool
	wrote    bool
}

func (tw *timeoutWriter) Header() http.Header {
	return tw.dst.Header()
}

func (tw *timeoutWriter) WriteHeader(statusCode int) {
	tw.mu.Lock()
	defer tw.mu.Unlock()

	if tw.timedOut || tw.wrote {
		return
	}
	tw.wrote = true
	tw.dst.WriteHeader(statusCode)
}

func (tw *timeoutWriter) Write(data []byte) (int, error) {
	tw.mu.Lock()
	defer tw.mu.Unlock()

	if tw.timedOut {
		return 0, http.ErrHandlerTimeout
	}
	if !tw.wrote {
		tw.wrote = true
		tw.dst.WriteHeader(http.StatusOK)
	}
	return tw.dst.Write(data)
}

// abort sends the 504 unless the handler already produced a response,
// then blocks any further handler output.
func (tw *timeoutWriter) abort() {
	tw.mu.Lock()
	defer tw.mu.Unlock()

	tw.timedOut = true
	if tw.wrote {
		return
	}
	tw.dst.Header().Set("Content-Type", "application/json")
	tw.dst.WriteHeader(http.StatusGatewayTimeout)
	_, _ = tw.dst.Write([]byte(`{"error":"request timeout"}`))
}
