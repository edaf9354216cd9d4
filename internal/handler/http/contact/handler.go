// Package contact exposes the contact-form relay endpoint.
package contact

import (
	"encoding/json"
	"errors"
	"net/http"

	"not-project-backend/internal/domain/entity"
	httpx "not-project-backend/internal/handler/http"
	"not-project-backend/internal/handler/http/respond"
	contactUC "not-project-backend/internal/usecase/contact"
)

type relayRequest struct {
	Message string `json:"message"`
	Email   string `json:"email"`
	Type    string `json:"type"`
	Token   string `json:"token"`
}

// RelayHandler forwards contact-form submissions to the editorial inbox.
type RelayHandler struct {
	Svc *contactUC.Service
}

// ServeHTTP relays a contact-form submission.
// @Summary      Submit the contact form
// @Description  Verifies the captcha token and relays the message to the editorial inbox. A collab type additionally sends a collaboration acknowledgment to the sender.
// @Tags         contact
// @Accept       json
// @Produce      json
// @Param        body body relayRequest true "Message, optional reply email, form type, captcha token"
// @Success      200 {object} map[string]string
// @Failure      400 {string} string "Validation or captcha error"
// @Failure      500 {string} string "Internal server error"
// @Router       /contact [post]
func (h RelayHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req relayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.SafeError(w, http.StatusBadRequest, errors.New("request body is invalid JSON"))
		return
	}

	err := h.Svc.Relay(r.Context(), contactUC.RelayInput{
		Message:  req.Message,
		Email:    req.Email,
		Type:     req.Type,
		Token:    req.Token,
		RemoteIP: httpx.ClientIP(r),
	})
	httpx.RecordContactRelayed(err == nil)
	if err != nil {
		respond.SafeError(w, statusFor(err), err)
		return
	}
	respond.JSON(w, http.StatusOK, map[string]string{"message": "message sent"})
}

func statusFor(err error) int {
	var verr *entity.ValidationError
	switch {
	case errors.As(err, &verr), errors.Is(err, contactUC.ErrCaptchaRejected):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// Register mounts the contact endpoint behind a rate limiter so the form
// cannot drain the mailer quota. A nil limiter mounts it unthrottled.
func Register(mux *http.ServeMux, svc *contactUC.Service, limiter *httpx.RateLimiter) {
	var h http.Handler = RelayHandler{Svc: svc}
	if limiter != nil {
		h = limiter.Limit(h)
	}
	mux.Handle("POST   /contact", h)
}
