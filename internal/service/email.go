package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/resend/resend-go/v2"
)

// EmailService delivers transactional mail through Resend. In development
// (or when no API key is configured) it logs the message instead of
// sending it. Delivery failures never roll back the state change that
// triggered the email.
type EmailService struct {
	client       *resend.Client
	fromEmail    string
	supportEmail string
	appName      string
	isDev        bool
}

func NewEmailService(apiKey, fromEmail, supportEmail, appName string, isDev bool) *EmailService {
	var client *resend.Client
	if apiKey != "" && !isDev {
		client = resend.NewClient(apiKey)
	}

	return &EmailService{
		client:       client,
		fromEmail:    fromEmail,
		supportEmail: supportEmail,
		appName:      appName,
		isDev:        isDev,
	}
}

func (s *EmailService) SendVerificationEmail(email, name, code string) error {
	subject, body := verificationEmailTemplate(name, code, s.appName)
	return s.send("verification", email, subject, body)
}

func (s *EmailService) SendVerificationReminderEmail(email, name, code string) error {
	subject, body := verificationReminderEmailTemplate(name, code, s.appName)
	return s.send("verification_reminder", email, subject, body)
}

func (s *EmailService) SendContactMessage(name, email, purpose, message string) error {
	subject, body := contactMessageTemplate(name, email, purpose, message, s.appName)
	return s.send("contact", s.supportEmail, subject, body)
}

func (s *EmailService) send(kind, to, subject, body string) error {
	if s.isDev {
		slog.Info("email sent (dev mode)", "type", kind, "to", to, "subject", subject, "body", body)
		return nil
	}

	if s.client == nil {
		return fmt.Errorf("email service not configured (missing RESEND_API_KEY)")
	}

	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("%s <%s>", s.appName, s.fromEmail),
		To:      []string{to},
		Subject: subject,
		Text:    body,
	}

	_, err := s.client.Emails.SendWithContext(context.Background(), params)
	if err == nil {
		slog.Info("email sent", "type", kind, "to", to)
	}
	return err
}
