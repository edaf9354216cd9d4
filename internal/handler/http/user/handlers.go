package user

import (
	"encoding/json"
	"errors"
	"net/http"

	"not-project-backend/internal/domain/entity"
	"not-project-backend/internal/handler/http/pathutil"
	"not-project-backend/internal/handler/http/respond"
	userUC "not-project-backend/internal/usecase/user"
)

// DTO is the wire shape of a user account.
type DTO struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

func toDTO(u *entity.User) DTO {
	return DTO{ID: u.ID, Email: u.Email, FirstName: u.FirstName, LastName: u.LastName}
}

func statusFor(err error) int {
	var verr *entity.ValidationError
	switch {
	case errors.As(err, &verr), errors.Is(err, userUC.ErrInvalidUserID):
		return http.StatusBadRequest
	case errors.Is(err, userUC.ErrUserNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

type createRequest struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

type CreateHandler struct{ Svc *userUC.Service }

// ServeHTTP registers an account for an externally authenticated identity.
// @Summary      Create a user
// @Description  Registers the account row for an identity minted by the auth provider. The ID is supplied, never generated here.
// @Tags         users
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        body body createRequest true "User fields"
// @Success      201 {object} DTO
// @Failure      400 {string} string "Validation error"
// @Failure      401 {string} string "Authentication required"
// @Failure      500 {string} string "Internal server error"
// @Router       /users [post]
func (h CreateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.SafeError(w, http.StatusBadRequest, errors.New("request body is invalid JSON"))
		return
	}

	created, err := h.Svc.Create(r.Context(), userUC.CreateInput{
		ID:        req.ID,
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		respond.SafeError(w, statusFor(err), err)
		return
	}
	respond.JSON(w, http.StatusCreated, toDTO(created))
}

type GetHandler struct{ Svc *userUC.Service }

// ServeHTTP returns a user account.
// @Summary      Get a user
// @Tags         users
// @Security     BearerAuth
// @Produce      json
// @Param        id path string true "User ID"
// @Success      200 {object} DTO
// @Failure      401 {string} string "Authentication required"
// @Failure      404 {string} string "User not found"
// @Failure      500 {string} string "Internal server error"
// @Router       /users/{id} [get]
func (h GetHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.ExtractSegment(r.URL.Path, "/users/")
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	user, err := h.Svc.Get(r.Context(), id)
	if err != nil {
		respond.SafeError(w, statusFor(err), err)
		return
	}
	respond.JSON(w, http.StatusOK, toDTO(user))
}

type updateNameRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

type UpdateNameHandler struct{ Svc *userUC.Service }

// ServeHTTP updates a user's display name.
// @Summary      Update a user's name
// @Tags         users
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id   path string            true "User ID"
// @Param        body body updateNameRequest true "New name"
// @Success      200 {object} map[string]bool
// @Failure      401 {string} string "Authentication required"
// @Failure      404 {string} string "User not found"
// @Failure      500 {string} string "Internal server error"
// @Router       /users/{id} [patch]
func (h UpdateNameHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.ExtractSegment(r.URL.Path, "/users/")
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	var req updateNameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.SafeError(w, http.StatusBadRequest, errors.New("request body is invalid JSON"))
		return
	}

	if err := h.Svc.UpdateName(r.Context(), id, req.FirstName, req.LastName); err != nil {
		respond.SafeError(w, statusFor(err), err)
		return
	}
	respond.JSON(w, http.StatusOK, map[string]bool{"success": true})
}

type subscribeRequest struct {
	Email string `json:"email"`
	Phone string `json:"phone"`
}

type SubscribeHandler struct{ Svc *userUC.Service }

// ServeHTTP signs an email up for the newsletter.
// @Summary      Subscribe to the newsletter
// @Description  Adds the email to the subscriber list. A repeat signup returns 200 without revealing that the address was already subscribed.
// @Tags         subscribers
// @Accept       json
// @Produce      json
// @Param        body body subscribeRequest true "Email and optional phone"
// @Success      200 {object} map[string]string "Already subscribed"
// @Success      201 {object} map[string]string
// @Failure      400 {string} string "Validation error"
// @Failure      500 {string} string "Internal server error"
// @Router       /subscribe [post]
func (h SubscribeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req subscribeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.SafeError(w, http.StatusBadRequest, errors.New("request body is invalid JSON"))
		return
	}

	_, err := h.Svc.Subscribe(r.Context(), userUC.SubscribeInput{
		Email: req.Email,
		Phone: req.Phone,
	})
	if err != nil {
		// Duplicates read as success so the form cannot be used to probe
		// the subscriber list.
		if errors.Is(err, entity.ErrAlreadySubscribed) {
			respond.JSON(w, http.StatusOK, map[string]string{"message": "subscribed"})
			return
		}
		respond.SafeError(w, statusFor(err), err)
		return
	}
	respond.JSON(w, http.StatusCreated, map[string]string{"message": "subscribed"})
}
