package story

import (
	"net/http"

	"not-project-backend/internal/domain/entity"
	"not-project-backend/internal/handler/http/respond"
	storyUC "not-project-backend/internal/usecase/story"
)

type CreateHandler struct{ Svc *storyUC.Service }

// ServeHTTP creates a story from a multipart form.
// @Summary      Create a story
// @Description  Accepts the editor's multipart payload: text fields plus a required thumbnail and optional editor images. Images are normalized, uploaded, and blob references in the content are rewritten to durable URLs. The story publishes immediately.
// @Tags         stories
// @Security     BearerAuth
// @Accept       multipart/form-data
// @Produce      json
// @Param        title         formData  string  true   "Story title"
// @Param        content       formData  string  true   "Rich text content"
// @Param        summary       formData  string  true   "Short summary"
// @Param        borough       formData  string  true   "Borough name"
// @Param        authorId      formData  string  true   "Author user ID"
// @Param        categoryIds   formData  string  false  "Category IDs (repeatable)"
// @Param        thumbnail     formData  file    true   "Thumbnail image"
// @Param        editor_images formData  file    false  "Editor images (repeatable)"
// @Success      201 {object} storyUC.PublicStory
// @Failure      400 {string} string "Validation error"
// @Failure      401 {string} string "Authentication required"
// @Failure      500 {string} string "Internal server error"
// @Router       /stories [post]
func (h CreateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	form, err := parseStoryForm(r)
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}
	defer form.Close()

	if form.Thumbnail == nil {
		respond.SafeError(w, http.StatusBadRequest,
			&entity.ValidationError{Field: "thumbnail", Message: "is required"})
		return
	}

	created, err := h.Svc.Create(r.Context(), storyUC.CreateInput{
		AuthorID:     form.AuthorID,
		Title:        form.Title,
		Content:      form.Content,
		Summary:      form.Summary,
		Borough:      form.Borough,
		CategoryIDs:  form.CategoryIDs,
		Thumbnail:    form.Thumbnail,
		ContentFiles: form.EditorImages,
	})
	if err != nil {
		respond.SafeError(w, statusFor(err), err)
		return
	}

	row, err := h.Svc.Get(r.Context(), created.ID)
	if err != nil {
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}
	respond.JSON(w, http.StatusCreated, storyUC.Project(row, storyUC.ViewDetail, nil))
}
