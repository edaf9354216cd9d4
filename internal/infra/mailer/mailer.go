// Package mailer sends transactional email through an external email API.
// It defines the Mailer interface so the contact relay can be tested
// without network access, plus a no-op implementation for environments
// where outbound email is disabled.
package mailer

import "context"

// Message is a single outbound email. Text and HTML may both be set; the
// provider picks the best representation per recipient.
type Message struct {
	From    string
	To      []string
	ReplyTo string
	Subject string
	Text    string
	HTML    string
}

// Mailer sends messages. Implementations handle rate limiting, retries,
// and circuit breaking internally.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// NoopMailer drops every message. Used when outbound email is disabled so
// callers need no nil checks.
type NoopMailer struct{}

func NewNoopMailer() *NoopMailer { return &NoopMailer{} }

func (n *NoopMailer) Send(ctx context.Context, msg Message) error { return nil }
