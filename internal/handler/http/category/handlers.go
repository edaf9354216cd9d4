package category

import (
	"encoding/json"
	"errors"
	"net/http"

	"not-project-backend/internal/domain/entity"
	"not-project-backend/internal/handler/http/pathutil"
	"not-project-backend/internal/handler/http/respond"
	catUC "not-project-backend/internal/usecase/category"
)

// DTO is the wire shape of a category.
type DTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

func toDTO(c entity.Category) DTO {
	return DTO{ID: c.ID, Name: c.Name, Description: c.Description}
}

func statusFor(err error) int {
	var verr *entity.ValidationError
	switch {
	case errors.As(err, &verr), errors.Is(err, catUC.ErrInvalidCategoryID):
		return http.StatusBadRequest
	case errors.Is(err, catUC.ErrCategoryNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

type ListHandler struct{ Svc *catUC.Service }

// ServeHTTP lists every category.
// @Summary      List categories
// @Tags         categories
// @Produce      json
// @Success      200 {array} DTO
// @Failure      500 {string} string "Internal server error"
// @Router       /categories [get]
func (h ListHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	categories, err := h.Svc.List(r.Context())
	if err != nil {
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}
	out := make([]DTO, 0, len(categories))
	for _, c := range categories {
		out = append(out, toDTO(c))
	}
	respond.JSON(w, http.StatusOK, out)
}

type ActiveHandler struct{ Svc *catUC.Service }

// ServeHTTP lists categories that have at least one story.
// @Summary      List active categories
// @Description  Returns only categories with at least one associated story, for the public filter bar.
// @Tags         categories
// @Produce      json
// @Success      200 {array} DTO
// @Failure      500 {string} string "Internal server error"
// @Router       /categories/active [get]
func (h ActiveHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	categories, err := h.Svc.ListActive(r.Context())
	if err != nil {
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}
	out := make([]DTO, 0, len(categories))
	for _, c := range categories {
		out = append(out, toDTO(c))
	}
	respond.JSON(w, http.StatusOK, out)
}

type createRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type CreateHandler struct{ Svc *catUC.Service }

// ServeHTTP creates a category.
// @Summary      Create a category
// @Tags         categories
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        body body createRequest true "Category fields"
// @Success      201 {object} DTO
// @Failure      400 {string} string "Validation error"
// @Failure      401 {string} string "Authentication required"
// @Failure      500 {string} string "Internal server error"
// @Router       /categories [post]
func (h CreateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.SafeError(w, http.StatusBadRequest, errors.New("request body is invalid JSON"))
		return
	}

	created, err := h.Svc.Create(r.Context(), catUC.CreateInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		respond.SafeError(w, statusFor(err), err)
		return
	}
	respond.JSON(w, http.StatusCreated, toDTO(*created))
}

type updateRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

type UpdateHandler struct{ Svc *catUC.Service }

// ServeHTTP updates a category. Absent fields stay unchanged.
// @Summary      Edit a category
// @Tags         categories
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id   path string        true "Category ID (UUID)"
// @Param        body body updateRequest true "Fields to change"
// @Success      200 {object} map[string]bool
// @Failure      400 {string} string "Validation error"
// @Failure      401 {string} string "Authentication required"
// @Failure      404 {string} string "Category not found"
// @Failure      500 {string} string "Internal server error"
// @Router       /categories/{id} [patch]
func (h UpdateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.ExtractID(r.URL.Path, "/categories/")
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	var req updateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.SafeError(w, http.StatusBadRequest, errors.New("request body is invalid JSON"))
		return
	}

	err = h.Svc.Update(r.Context(), catUC.UpdateInput{
		ID:          id,
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		respond.SafeError(w, statusFor(err), err)
		return
	}
	respond.JSON(w, http.StatusOK, map[string]bool{"success": true})
}

type DeleteHandler struct{ Svc *catUC.Service }

// ServeHTTP deletes a category and its story associations.
// @Summary      Delete a category
// @Tags         categories
// @Security     BearerAuth
// @Produce      json
// @Param        id path string true "Category ID (UUID)"
// @Success      200 {object} map[string]string
// @Failure      401 {string} string "Authentication required"
// @Failure      404 {string} string "Category not found"
// @Failure      500 {string} string "Internal server error"
// @Router       /categories/{id} [delete]
func (h DeleteHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.ExtractID(r.URL.Path, "/categories/")
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	if err := h.Svc.Delete(r.Context(), id); err != nil {
		respond.SafeError(w, statusFor(err), err)
		return
	}
	respond.JSON(w, http.StatusOK, map[string]string{"message": "category deleted"})
}
