package story

import (
	"net/http"

	"not-project-backend/internal/handler/http/pathutil"
	"not-project-backend/internal/handler/http/respond"
	storyUC "not-project-backend/internal/usecase/story"
)

type EditHandler struct{ Svc *storyUC.Service }

// ServeHTTP edits a story from a multipart form. Absent fields stay
// unchanged; sending categoryIds (even empty) replaces the whole set.
// @Summary      Edit a story
// @Description  Patches the story's text fields and optionally replaces the thumbnail, editor images, and category set. New images go through the same ingestion pipeline as creation.
// @Tags         stories
// @Security     BearerAuth
// @Accept       multipart/form-data
// @Produce      json
// @Param        id            path      string  true   "Story ID (UUID)"
// @Param        title         formData  string  false  "Story title"
// @Param        content       formData  string  false  "Rich text content"
// @Param        summary       formData  string  false  "Short summary"
// @Param        borough       formData  string  false  "Borough name"
// @Param        categoryIds   formData  string  false  "Category IDs (repeatable, replaces set)"
// @Param        thumbnail     formData  file    false  "Replacement thumbnail"
// @Param        editor_images formData  file    false  "New editor images (repeatable)"
// @Success      200 {object} map[string]bool
// @Failure      400 {string} string "Validation error"
// @Failure      401 {string} string "Authentication required"
// @Failure      404 {string} string "Story not found"
// @Failure      500 {string} string "Internal server error"
// @Router       /stories/{id} [patch]
func (h EditHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.ExtractID(r.URL.Path, "/stories/")
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	form, err := parseStoryForm(r)
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}
	defer form.Close()

	in := storyUC.EditInput{
		ID:           id,
		Title:        formValue(r, "title"),
		Content:      formValue(r, "content"),
		Summary:      formValue(r, "summary"),
		Borough:      formValue(r, "borough"),
		Thumbnail:    form.Thumbnail,
		ContentFiles: form.EditorImages,
	}
	if form.HasCategories {
		in.CategoryIDs = form.CategoryIDs
		if in.CategoryIDs == nil {
			in.CategoryIDs = []string{}
		}
	}

	if _, err := h.Svc.Edit(r.Context(), in); err != nil {
		respond.SafeError(w, statusFor(err), err)
		return
	}
	respond.JSON(w, http.StatusOK, map[string]bool{"success": true})
}

// formValue returns a pointer only when the field was present, so the edit
// can tell "unset" from "set to empty".
func formValue(r *http.Request, key string) *string {
	if r.MultipartForm == nil {
		return nil
	}
	values, ok := r.MultipartForm.Value[key]
	if !ok || len(values) == 0 {
		return nil
	}
	return &values[0]
}
