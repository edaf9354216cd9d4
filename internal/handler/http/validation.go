package http

import (
	"net/http"
)

const (
	maxAuthHeaderLen = 8192
	maxPathLen       = 2048
	maxInlineBody    = 10 << 20
)

// InputValidation rejects requests whose headers or path exceed sane bounds
// before any handler work happens, and caps the body so a client cannot
// stream an unbounded payload into memory. Tokens fit well under the header
// limit; the headroom covers proxies that stack additional auth material.
func InputValidation() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if len(r.Header.Get("Authorization")) > maxAuthHeaderLen {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusBadRequest)
				_, _ = w.Write([]byte(`{"error":"authorization header too large"}`))
				return
			}

			if len(r.URL.Path) > maxPathLen {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusRequestURITooLong)
				_, _ = w.Write([]byte(`{"error":"URI too long"}`))
				return
			}

			r.Body = http.MaxBytesReader(w, r.Body, maxInlineBody)

			next.ServeHTTP(w, r)
		})
	}
}
