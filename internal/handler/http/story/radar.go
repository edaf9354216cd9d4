package story

import (
	"net/http"

	"not-project-backend/internal/handler/http/pathutil"
	"not-project-backend/internal/handler/http/respond"
	storyUC "not-project-backend/internal/usecase/story"
)

type RadarHandler struct{ Svc *storyUC.Service }

// ServeHTTP returns the current radar story.
// @Summary      Get the radar story
// @Description  Returns the single featured story. If none is set, a published story is auto-selected (recommended stories preferred). 204 when no published story exists.
// @Tags         stories
// @Produce      json
// @Success      200 {object} storyUC.PublicStory
// @Success      204 {string} string "No published story available"
// @Failure      500 {string} string "Internal server error"
// @Router       /stories/radar [get]
func (h RadarHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	row, err := h.Svc.Radar(r.Context())
	if err != nil {
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}
	if row == nil {
		respond.JSON(w, http.StatusNoContent, nil)
		return
	}
	respond.JSON(w, http.StatusOK, storyUC.Project(row, storyUC.ViewDetail, nil))
}

type RadarPromoteHandler struct{ Svc *storyUC.Service }

// ServeHTTP promotes a story to the radar slot.
// @Summary      Promote a story to radar
// @Description  Atomically moves the radar flag to the target story. The target must be published.
// @Tags         stories
// @Security     BearerAuth
// @Produce      json
// @Param        id path string true "Story ID (UUID)"
// @Success      200 {object} map[string]string
// @Failure      400 {string} string "Story is not published"
// @Failure      404 {string} string "Story not found"
// @Failure      500 {string} string "Internal server error"
// @Router       /stories/radar/{id} [patch]
func (h RadarPromoteHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.ExtractID(r.URL.Path, "/stories/radar/")
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	if err := h.Svc.PromoteRadar(r.Context(), id); err != nil {
		respond.SafeError(w, statusFor(err), err)
		return
	}
	respond.JSON(w, http.StatusOK, map[string]string{"message": "story promoted to radar"})
}
