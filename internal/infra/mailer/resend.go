package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"not-project-backend/internal/resilience/circuitbreaker"
	"not-project-backend/internal/resilience/retry"
)

const resendEndpoint = "https://api.resend.com/emails"

// ResendConfig configures the Resend API client.
type ResendConfig struct {
	APIKey  string
	Timeout time.Duration
	// Endpoint overrides the API URL, used in tests.
	Endpoint string
}

// ResendMailer sends email through the Resend HTTP API. Calls are rate
// limited to 2 requests per second, retried with backoff on transient
// failures, and guarded by a circuit breaker so a dead API fails fast.
type ResendMailer struct {
	config      ResendConfig
	endpoint    string
	httpClient  *http.Client
	limiter     *rate.Limiter
	breaker     *circuitbreaker.CircuitBreaker
	retryConfig retry.Config
}

// NewResendMailer creates a configured Resend client.
func NewResendMailer(config ResendConfig) *ResendMailer {
	endpoint := config.Endpoint
	if endpoint == "" {
		endpoint = resendEndpoint
	}
	timeout := config.Timeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	return &ResendMailer{
		config:      config,
		endpoint:    endpoint,
		httpClient:  &http.Client{Timeout: timeout},
		limiter:     rate.NewLimiter(rate.Limit(2), 2),
		breaker:     circuitbreaker.New(circuitbreaker.MailerConfig()),
		retryConfig: retry.MailerConfig(),
	}
}

// Breaker exposes the outbound circuit breaker for health reporting.
func (m *ResendMailer) Breaker() *circuitbreaker.CircuitBreaker { return m.breaker }

type resendPayload struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	ReplyTo string   `json:"reply_to,omitempty"`
	Subject string   `json:"subject"`
	Text    string   `json:"text,omitempty"`
	HTML    string   `json:"html,omitempty"`
}

// Send posts the message to the email API.
func (m *ResendMailer) Send(ctx context.Context, msg Message) error {
	if err := m.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("Send: rate limit: %w", err)
	}

	body, err := json.Marshal(resendPayload{
		From:    msg.From,
		To:      msg.To,
		ReplyTo: msg.ReplyTo,
		Subject: msg.Subject,
		Text:    msg.Text,
		HTML:    msg.HTML,
	})
	if err != nil {
		return fmt.Errorf("Send: marshal: %w", err)
	}

	err = retry.WithBackoff(ctx, m.retryConfig, func() error {
		_, err := m.breaker.Execute(func() (interface{}, error) {
			return nil, m.post(ctx, body)
		})
		return err
	})
	if err != nil {
		slog.Error("email send failed",
			slog.String("subject", msg.Subject),
			slog.Any("error", err))
		return fmt.Errorf("Send: %w", err)
	}
	return nil
}

func (m *ResendMailer) post(ctx context.Context, body []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+m.config.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	return &retry.HTTPError{
		StatusCode: resp.StatusCode,
		Message:    string(detail),
	}
}
