package story

import (
	"errors"
	"mime/multipart"
	"net/http"

	"not-project-backend/internal/domain/entity"
	"not-project-backend/internal/usecase/asset"
	storyUC "not-project-backend/internal/usecase/story"
)

// maxMultipartMemory caps the in-memory portion of a story upload; larger
// file parts spill to temp files.
const maxMultipartMemory = 32 << 20

// statusFor maps use case errors onto HTTP status codes. Unknown errors
// are 500 and get masked by respond.SafeError.
func statusFor(err error) int {
	var verr *entity.ValidationError
	switch {
	case errors.As(err, &verr),
		errors.Is(err, storyUC.ErrInvalidStoryID),
		errors.Is(err, entity.ErrCategoryNotFound),
		errors.Is(err, entity.ErrRadarConflict),
		errors.Is(err, entity.ErrDeleteGuard),
		errors.Is(err, entity.ErrNotPublished):
		return http.StatusBadRequest
	case errors.Is(err, storyUC.ErrStoryNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// storyForm holds the parsed multipart fields of a create or edit request.
type storyForm struct {
	Title       string
	Content     string
	Summary     string
	Borough     string
	AuthorID    string
	CategoryIDs []string
	// HasCategories distinguishes "clear the set" from "leave unchanged"
	// on edit.
	HasCategories bool

	Thumbnail    *asset.Upload
	EditorImages []asset.Upload

	// open file handles, closed by the caller after ingestion
	files []multipart.File
}

// Close releases the upload file handles.
func (f *storyForm) Close() {
	for _, file := range f.files {
		_ = file.Close()
	}
}

// parseStoryForm reads the multipart body of a story create/edit request.
// Field names follow the editor client: title, content, summary, borough,
// authorId, categoryIds (repeated), thumbnail, editor_images (repeated).
func parseStoryForm(r *http.Request) (*storyForm, error) {
	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		return nil, &entity.ValidationError{Field: "body", Message: "is invalid multipart form data"}
	}

	form := &storyForm{
		Title:    r.FormValue("title"),
		Content:  r.FormValue("content"),
		Summary:  r.FormValue("summary"),
		Borough:  r.FormValue("borough"),
		AuthorID: r.FormValue("authorId"),
	}
	if values, ok := r.MultipartForm.Value["categoryIds"]; ok {
		form.HasCategories = true
		form.CategoryIDs = values
	}

	if headers := r.MultipartForm.File["thumbnail"]; len(headers) > 0 {
		upload, file, err := openUpload(headers[0])
		if err != nil {
			form.Close()
			return nil, err
		}
		form.Thumbnail = upload
		form.files = append(form.files, file)
	}

	for _, header := range r.MultipartForm.File["editor_images"] {
		upload, file, err := openUpload(header)
		if err != nil {
			form.Close()
			return nil, err
		}
		form.EditorImages = append(form.EditorImages, *upload)
		form.files = append(form.files, file)
	}

	return form, nil
}

func openUpload(header *multipart.FileHeader) (*asset.Upload, multipart.File, error) {
	file, err := header.Open()
	if err != nil {
		return nil, nil, &entity.ValidationError{Field: header.Filename, Message: "cannot be read"}
	}
	return &asset.Upload{Filename: header.Filename, Data: file}, file, nil
}
