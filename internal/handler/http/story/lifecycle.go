package story

import (
	"net/http"

	"not-project-backend/internal/handler/http/pathutil"
	"not-project-backend/internal/handler/http/respond"
	storyUC "not-project-backend/internal/usecase/story"
)

type UnpublishHandler struct{ Svc *storyUC.Service }

// ServeHTTP hides a story from the public site.
// @Summary      Unpublish a story
// @Description  Clears the published flag. Rejected while the story holds the radar slot; move the radar first.
// @Tags         stories
// @Security     BearerAuth
// @Produce      json
// @Param        id path string true "Story ID (UUID)"
// @Success      200 {object} map[string]string
// @Failure      400 {string} string "Story holds the radar slot"
// @Failure      404 {string} string "Story not found"
// @Failure      500 {string} string "Internal server error"
// @Router       /stories/unpublish/{id} [patch]
func (h UnpublishHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.ExtractID(r.URL.Path, "/stories/unpublish/")
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	if err := h.Svc.Unpublish(r.Context(), id); err != nil {
		respond.SafeError(w, statusFor(err), err)
		return
	}
	respond.JSON(w, http.StatusOK, map[string]string{"message": "story unpublished"})
}

type RepublishHandler struct{ Svc *storyUC.Service }

// ServeHTTP returns a hidden story to the public site.
// @Summary      Republish a story
// @Tags         stories
// @Security     BearerAuth
// @Produce      json
// @Param        id path string true "Story ID (UUID)"
// @Success      200 {object} map[string]string
// @Failure      404 {string} string "Story not found"
// @Failure      500 {string} string "Internal server error"
// @Router       /stories/republish/{id} [patch]
func (h RepublishHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.ExtractID(r.URL.Path, "/stories/republish/")
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	if err := h.Svc.Republish(r.Context(), id); err != nil {
		respond.SafeError(w, statusFor(err), err)
		return
	}
	respond.JSON(w, http.StatusOK, map[string]string{"message": "story republished"})
}

type DeleteHandler struct{ Svc *storyUC.Service }

// ServeHTTP permanently removes a story.
// @Summary      Delete a story
// @Description  Removes the story and its category associations. Only allowed once the story is unpublished and carries no radar or recommended flag.
// @Tags         stories
// @Security     BearerAuth
// @Produce      json
// @Param        id path string true "Story ID (UUID)"
// @Success      200 {object} map[string]string
// @Failure      400 {string} string "Story is still published, radar, or recommended"
// @Failure      404 {string} string "Story not found"
// @Failure      500 {string} string "Internal server error"
// @Router       /stories/{id} [delete]
func (h DeleteHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.ExtractID(r.URL.Path, "/stories/")
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	if err := h.Svc.Delete(r.Context(), id); err != nil {
		respond.SafeError(w, statusFor(err), err)
		return
	}
	respond.JSON(w, http.StatusOK, map[string]string{"message": "story deleted successfully"})
}
