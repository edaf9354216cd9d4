package story

import (
	"net/http"

	"not-project-backend/internal/handler/http/pathutil"
	"not-project-backend/internal/handler/http/respond"
	storyUC "not-project-backend/internal/usecase/story"
)

type GetHandler struct{ Svc *storyUC.Service }

// ServeHTTP returns a single published story.
// @Summary      Get story detail
// @Description  Returns a published story with content, categories, and author. Drafts read as 404. Pass userId to receive the viewer's bookmark state.
// @Tags         stories
// @Produce      json
// @Param        id     path   string  true   "Story ID (UUID)"
// @Param        userId query  string  false  "Viewer user ID for isSaved"
// @Success      200 {object} storyUC.PublicStory
// @Failure      400 {string} string "Invalid story ID"
// @Failure      404 {string} string "Story not found or not published"
// @Failure      500 {string} string "Internal server error"
// @Router       /stories/s/{id} [get]
func (h GetHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.ExtractID(r.URL.Path, "/stories/s/")
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	viewerID := r.URL.Query().Get("userId")
	row, saved, err := h.Svc.Detail(r.Context(), id, viewerID)
	if err != nil {
		respond.SafeError(w, statusFor(err), err)
		return
	}

	respond.JSON(w, http.StatusOK, storyUC.Project(row, storyUC.ViewDetail, saved))
}
