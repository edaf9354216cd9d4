// Package story exposes the story resource over HTTP: public list and
// detail views, the radar and recommended endpoints, bookmarks, and the
// authenticated editorial operations (create, edit, lifecycle, delete).
package story

import (
	"log/slog"
	"net/http"

	"not-project-backend/internal/common/pagination"
	"not-project-backend/internal/handler/http/auth"
	saveUC "not-project-backend/internal/usecase/save"
	storyUC "not-project-backend/internal/usecase/story"
)

// Register wires all story routes onto the mux. Protected routes go
// through the auth middleware; everything else is public.
func Register(mux *http.ServeMux, svc *storyUC.Service, saves *saveUC.Service, paginationCfg pagination.Config, logger *slog.Logger) {
	mux.Handle("GET    /stories", ListHandler{
		Svc:           svc,
		PaginationCfg: paginationCfg,
		Logger:        logger,
	})
	mux.Handle("GET    /stories/s/", GetHandler{svc})
	mux.Handle("GET    /stories/radar", RadarHandler{svc})
	mux.Handle("GET    /stories/recommended", RecommendedHandler{svc})
	mux.Handle("GET    /stories/saved/", SavedListHandler{svc})
	mux.Handle("POST   /stories/save", SaveHandler{saves})
	mux.Handle("DELETE /stories/save", UnsaveHandler{saves})

	mux.Handle("GET    /stories/hidden", auth.Authz(HiddenHandler{svc}))
	mux.Handle("POST   /stories", auth.Authz(CreateHandler{svc}))
	mux.Handle("PATCH  /stories/republish/", auth.Authz(RepublishHandler{svc}))
	mux.Handle("PATCH  /stories/unpublish/", auth.Authz(UnpublishHandler{svc}))
	mux.Handle("PATCH  /stories/radar/", auth.Authz(RadarPromoteHandler{svc}))
	// /stories/{id} and /stories/{id}/recommend share these prefixes.
	mux.Handle("PATCH  /stories/", auth.Authz(patchDispatch{svc}))
	mux.Handle("DELETE /stories/", auth.Authz(deleteDispatch{svc}))
}
