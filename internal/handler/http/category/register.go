// Package category exposes category listing publicly and category CRUD to
// authenticated editors.
package category

import (
	"net/http"

	"not-project-backend/internal/handler/http/auth"
	catUC "not-project-backend/internal/usecase/category"
)

// Register wires the category routes onto the mux.
func Register(mux *http.ServeMux, svc *catUC.Service) {
	mux.Handle("GET    /categories", ListHandler{svc})
	mux.Handle("GET    /categories/active", ActiveHandler{svc})

	mux.Handle("POST   /categories", auth.Authz(CreateHandler{svc}))
	mux.Handle("PATCH  /categories/", auth.Authz(UpdateHandler{svc}))
	mux.Handle("DELETE /categories/", auth.Authz(DeleteHandler{svc}))
}
