package story

import (
	"net/http"

	"not-project-backend/internal/handler/http/respond"
	storyUC "not-project-backend/internal/usecase/story"
)

type HiddenHandler struct{ Svc *storyUC.Service }

// ServeHTTP lists unpublished stories for the editor dashboard.
// @Summary      List hidden stories
// @Description  Returns every unpublished story, newest first.
// @Tags         stories
// @Security     BearerAuth
// @Produce      json
// @Success      200 {array} storyUC.PublicStory
// @Failure      401 {string} string "Authentication required"
// @Failure      500 {string} string "Internal server error"
// @Router       /stories/hidden [get]
func (h HiddenHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	rows, err := h.Svc.Hidden(r.Context())
	if err != nil {
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}
	respond.JSON(w, http.StatusOK, storyUC.ProjectAll(rows, storyUC.ViewList))
}
