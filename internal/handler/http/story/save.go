package story

import (
	"encoding/json"
	"errors"
	"net/http"

	"not-project-backend/internal/handler/http/pathutil"
	"not-project-backend/internal/handler/http/respond"
	saveUC "not-project-backend/internal/usecase/save"
	storyUC "not-project-backend/internal/usecase/story"
)

// saveRequest is the JSON body shared by save and unsave.
type saveRequest struct {
	StoryID string `json:"storyId"`
	UserID  string `json:"userId"`
}

func decodeSaveRequest(r *http.Request) (saveRequest, error) {
	var req saveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return req, errors.New("request body is invalid JSON")
	}
	return req, nil
}

type SaveHandler struct{ Svc *saveUC.Service }

// ServeHTTP bookmarks a story for a user.
// @Summary      Save a story
// @Description  Bookmarks the story for the user. Saving twice is a no-op.
// @Tags         stories
// @Accept       json
// @Produce      json
// @Param        body body saveRequest true "Story and user IDs"
// @Success      201 {object} map[string]string
// @Failure      400 {string} string "Validation error"
// @Failure      500 {string} string "Internal server error"
// @Router       /stories/save [post]
func (h SaveHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	req, err := decodeSaveRequest(r)
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	if err := h.Svc.Save(r.Context(), req.StoryID, req.UserID); err != nil {
		respond.SafeError(w, statusFor(err), err)
		return
	}
	respond.JSON(w, http.StatusCreated, map[string]string{"message": "story saved"})
}

type UnsaveHandler struct{ Svc *saveUC.Service }

// ServeHTTP removes a bookmark.
// @Summary      Unsave a story
// @Description  Removes the bookmark. Removing an absent bookmark is a no-op.
// @Tags         stories
// @Accept       json
// @Produce      json
// @Param        body body saveRequest true "Story and user IDs"
// @Success      200 {object} map[string]string
// @Failure      400 {string} string "Validation error"
// @Failure      500 {string} string "Internal server error"
// @Router       /stories/save [delete]
func (h UnsaveHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	req, err := decodeSaveRequest(r)
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	if err := h.Svc.Unsave(r.Context(), req.StoryID, req.UserID); err != nil {
		respond.SafeError(w, statusFor(err), err)
		return
	}
	respond.JSON(w, http.StatusOK, map[string]string{"message": "story unsaved"})
}

type SavedListHandler struct{ Svc *storyUC.Service }

// ServeHTTP lists the stories a user has saved.
// @Summary      List saved stories
// @Tags         stories
// @Produce      json
// @Param        userId path string true "User ID"
// @Success      200 {array} storyUC.PublicStory
// @Failure      400 {string} string "Invalid user ID"
// @Failure      500 {string} string "Internal server error"
// @Router       /stories/saved/{userId} [get]
func (h SavedListHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	userID, err := pathutil.ExtractSegment(r.URL.Path, "/stories/saved/")
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	rows, err := h.Svc.ListSavedBy(r.Context(), userID)
	if err != nil {
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}
	respond.JSON(w, http.StatusOK, storyUC.ProjectAll(rows, storyUC.ViewList))
}
