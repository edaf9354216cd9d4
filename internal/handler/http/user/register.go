// Package user exposes account management to authenticated callers and the
// public newsletter signup.
package user

import (
	"net/http"

	httpx "not-project-backend/internal/handler/http"
	"not-project-backend/internal/handler/http/auth"
	userUC "not-project-backend/internal/usecase/user"
)

// Register wires the user and subscriber routes onto the mux. The signup
// endpoint is rate limited so the subscriber table cannot be stuffed; a nil
// limiter mounts it unthrottled.
func Register(mux *http.ServeMux, svc *userUC.Service, limiter *httpx.RateLimiter) {
	var subscribe http.Handler = SubscribeHandler{svc}
	if limiter != nil {
		subscribe = limiter.Limit(subscribe)
	}
	mux.Handle("POST   /subscribe", subscribe)

	mux.Handle("POST   /users", auth.Authz(CreateHandler{svc}))
	mux.Handle("GET    /users/", auth.Authz(GetHandler{svc}))
	mux.Handle("PATCH  /users/", auth.Authz(UpdateNameHandler{svc}))
}
