// Package contact relays contact-form submissions to the editorial inbox.
package contact

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"not-project-backend/internal/domain/entity"
	"not-project-backend/internal/infra/captcha"
	"not-project-backend/internal/infra/mailer"
)

// ErrCaptchaRejected indicates the submission failed human verification.
var ErrCaptchaRejected = errors.New("contact form failed captcha verification")

// TypeCollab marks a collaboration request; any other type is treated as a
// general message.
const TypeCollab = "collab"

// Config holds the relay addressing. From must be a sender the email
// provider has verified for the domain.
type Config struct {
	From       string
	Recipients []string
}

// RelayInput represents a contact-form submission.
type RelayInput struct {
	Message  string
	Email    string
	Type     string
	Token    string
	RemoteIP string
}

// Service verifies and forwards contact-form submissions.
type Service struct {
	Verifier captcha.Verifier
	Mailer   mailer.Mailer
	Config   Config
}

// Relay validates the submission, verifies the captcha token, and forwards
// the message to the editorial recipients. When the sender left an email
// address, a short acknowledgment goes back to them; a failure there is
// logged but does not fail the relay.
func (s *Service) Relay(ctx context.Context, in RelayInput) error {
	if strings.TrimSpace(in.Message) == "" {
		return &entity.ValidationError{Field: "message", Message: "is required"}
	}
	if strings.TrimSpace(in.Type) == "" {
		return &entity.ValidationError{Field: "type", Message: "is required"}
	}

	if err := s.Verifier.Verify(ctx, in.Token, in.RemoteIP); err != nil {
		if errors.Is(err, captcha.ErrRejected) {
			return ErrCaptchaRejected
		}
		return fmt.Errorf("verify captcha: %w", err)
	}

	replyTo := strings.TrimSpace(in.Email)
	if err := s.Mailer.Send(ctx, s.editorialMessage(in, replyTo)); err != nil {
		return fmt.Errorf("relay contact message: %w", err)
	}

	if replyTo != "" {
		if err := s.Mailer.Send(ctx, s.acknowledgment(in.Type, replyTo)); err != nil {
			slog.Warn("contact acknowledgment failed",
				slog.String("type", in.Type),
				slog.Any("error", err))
		}
	}
	return nil
}

func (s *Service) editorialMessage(in RelayInput, replyTo string) mailer.Message {
	kind := "message"
	subject := "New Message from The Not Project"
	if in.Type == TypeCollab {
		kind = "collaboration request"
		subject = "New Collaboration Request"
	}

	sender := replyTo
	if sender == "" {
		sender = "not provided"
	}

	body := fmt.Sprintf("New %s from The Not Project:\n\n%s\n\n---\nEmail: %s",
		kind, in.Message, sender)

	return mailer.Message{
		From:    s.Config.From,
		To:      s.Config.Recipients,
		ReplyTo: replyTo,
		Subject: subject,
		Text:    body,
	}
}

func (s *Service) acknowledgment(formType, to string) mailer.Message {
	subject := "Thanks for your message"
	body := "Hey! We got your message. If needed, we'll get back to you soon."
	if formType == TypeCollab {
		subject = "Thanks for reaching out to collaborate"
		body = "Thanks for reaching out to collaborate! We'll read your message and get back to you soon."
	}
	return mailer.Message{
		From:    s.Config.From,
		To:      []string{to},
		Subject: subject,
		Text:    body,
	}
}
