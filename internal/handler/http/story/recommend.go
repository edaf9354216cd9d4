package story

import (
	"net/http"
	"strings"

	"not-project-backend/internal/handler/http/pathutil"
	"not-project-backend/internal/handler/http/respond"
	storyUC "not-project-backend/internal/usecase/story"
)

type RecommendedHandler struct{ Svc *storyUC.Service }

// ServeHTTP returns the recommended story set.
// @Summary      List recommended stories
// @Description  Returns up to 4 recommended stories in list projection.
// @Tags         stories
// @Produce      json
// @Success      200 {array} storyUC.PublicStory
// @Failure      500 {string} string "Internal server error"
// @Router       /stories/recommended [get]
func (h RecommendedHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	rows, err := h.Svc.Recommendations(r.Context())
	if err != nil {
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}
	respond.JSON(w, http.StatusOK, storyUC.ProjectAll(rows, storyUC.ViewList))
}

// RecommendHandler flips the recommended flag on a story. recommended is
// true for PATCH and false for DELETE.
type RecommendHandler struct {
	Svc         *storyUC.Service
	Recommended bool
}

// ServeHTTP sets or clears the recommended flag.
// @Summary      Recommend or unrecommend a story
// @Description  PATCH marks the story recommended, DELETE clears the flag. The display set is capped at 4; older flags are simply not shown.
// @Tags         stories
// @Security     BearerAuth
// @Produce      json
// @Param        id path string true "Story ID (UUID)"
// @Success      200 {object} map[string]string
// @Failure      404 {string} string "Story not found"
// @Failure      500 {string} string "Internal server error"
// @Router       /stories/{id}/recommend [patch]
func (h RecommendHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimSuffix(r.URL.Path, "/recommend")
	id, err := pathutil.ExtractID(path, "/stories/")
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	if err := h.Svc.Recommend(r.Context(), id, h.Recommended); err != nil {
		respond.SafeError(w, statusFor(err), err)
		return
	}

	message := "story recommended"
	if !h.Recommended {
		message = "story unrecommended"
	}
	respond.JSON(w, http.StatusOK, map[string]string{"message": message})
}

// patchDispatch routes PATCH /stories/{id} to edit and
// PATCH /stories/{id}/recommend to recommend.
type patchDispatch struct{ Svc *storyUC.Service }

func (h patchDispatch) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if strings.HasSuffix(r.URL.Path, "/recommend") {
		RecommendHandler{Svc: h.Svc, Recommended: true}.ServeHTTP(w, r)
		return
	}
	EditHandler{h.Svc}.ServeHTTP(w, r)
}

// deleteDispatch routes DELETE /stories/{id} to delete and
// DELETE /stories/{id}/recommend to unrecommend.
type deleteDispatch struct{ Svc *storyUC.Service }

func (h deleteDispatch) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if strings.HasSuffix(r.URL.Path, "/recommend") {
		RecommendHandler{Svc: h.Svc, Recommended: false}.ServeHTTP(w, r)
		return
	}
	DeleteHandler{h.Svc}.ServeHTTP(w, r)
}
