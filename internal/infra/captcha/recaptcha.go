// Package captcha verifies contact form submissions against reCAPTCHA v3.
package captcha

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"not-project-backend/internal/resilience/circuitbreaker"
	"not-project-backend/internal/resilience/retry"
)

const recaptchaEndpoint = "https://www.google.com/recaptcha/api/siteverify"

// ErrRejected marks a submission the captcha service scored as likely
// automated, or whose token failed verification.
var ErrRejected = errors.New("captcha verification rejected")

// Verifier checks a captcha token supplied by the client.
type Verifier interface {
	Verify(ctx context.Context, token, remoteIP string) error
}

// RecaptchaConfig configures the reCAPTCHA v3 verifier.
type RecaptchaConfig struct {
	Secret string
	// MinScore rejects tokens below this score. Zero means the v3 default
	// of 0.5.
	MinScore float64
	Timeout  time.Duration
	// Endpoint overrides the API URL, used in tests.
	Endpoint string
}

// RecaptchaVerifier calls the siteverify API. Transient failures are
// retried once; a dead verification service trips the circuit breaker so
// the contact form fails fast instead of hanging.
type RecaptchaVerifier struct {
	config      RecaptchaConfig
	endpoint    string
	minScore    float64
	httpClient  *http.Client
	breaker     *circuitbreaker.CircuitBreaker
	retryConfig retry.Config
}

func NewRecaptchaVerifier(config RecaptchaConfig) *RecaptchaVerifier {
	endpoint := config.Endpoint
	if endpoint == "" {
		endpoint = recaptchaEndpoint
	}
	minScore := config.MinScore
	if minScore == 0 {
		minScore = 0.5
	}
	timeout := config.Timeout
	if timeout == 0 {
		timeout = 5 * time.Second
	}
	return &RecaptchaVerifier{
		config:      config,
		endpoint:    endpoint,
		minScore:    minScore,
		httpClient:  &http.Client{Timeout: timeout},
		breaker:     circuitbreaker.New(circuitbreaker.CaptchaConfig()),
		retryConfig: retry.CaptchaConfig(),
	}
}

// Breaker exposes the outbound circuit breaker for health reporting.
func (v *RecaptchaVerifier) Breaker() *circuitbreaker.CircuitBreaker { return v.breaker }

type siteverifyResponse struct {
	Success    bool     `json:"success"`
	Score      float64  `json:"score"`
	Action     string   `json:"action"`
	ErrorCodes []string `json:"error-codes"`
}

// Verify checks the token and returns ErrRejected for tokens that fail or
// score below the threshold. Other errors mean the verification service
// itself was unreachable.
func (v *RecaptchaVerifier) Verify(ctx context.Context, token, remoteIP string) error {
	var result siteverifyResponse
	err := retry.WithBackoff(ctx, v.retryConfig, func() error {
		res, err := v.breaker.Execute(func() (interface{}, error) {
			return v.post(ctx, token, remoteIP)
		})
		if err != nil {
			return err
		}
		result = res.(siteverifyResponse)
		return nil
	})
	if err != nil {
		return fmt.Errorf("Verify: %w", err)
	}

	if !result.Success {
		slog.Warn("captcha token rejected",
			slog.String("error_codes", strings.Join(result.ErrorCodes, ",")))
		return ErrRejected
	}
	if result.Score < v.minScore {
		slog.Warn("captcha score below threshold",
			slog.Float64("score", result.Score),
			slog.Float64("min_score", v.minScore))
		return ErrRejected
	}
	return nil
}

func (v *RecaptchaVerifier) post(ctx context.Context, token, remoteIP string) (siteverifyResponse, error) {
	form := url.Values{}
	form.Set("secret", v.config.Secret)
	form.Set("response", token)
	if remoteIP != "" {
		form.Set("remoteip", remoteIP)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, v.endpoint,
		strings.NewReader(form.Encode()))
	if err != nil {
		return siteverifyResponse{}, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := v.httpClient.Do(req)
	if err != nil {
		return siteverifyResponse{}, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return siteverifyResponse{}, &retry.HTTPError{
			StatusCode: resp.StatusCode,
			Message:    "siteverify request failed",
		}
	}

	var result siteverifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return siteverifyResponse{}, err
	}
	return result, nil
}

// AllowAll accepts every token. Used in development when no secret is
// configured.
type AllowAll struct{}

func NewAllowAll() *AllowAll { return &AllowAll{} }

func (a *AllowAll) Verify(ctx context.Context, token, remoteIP string) error { return nil }
