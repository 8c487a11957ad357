// internal/notification/email.go

package notifications

import (
	"context"
	"crypto/tls"
	"fmt"
	"log"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"gopkg.in/gomail.v2"
)

// EmailProvider defines the email provider interface
type EmailProvider interface {
	SendEmail(ctx context.Context, message *EmailMessage) error
}

// SMTPEmailProvider implements EmailProvider using SMTP
type SMTPEmailProvider struct {
	from     string
	fromName string
	dialer   *gomail.Dialer
}

// NewSMTPEmailProvider creates a new SMTP email provider
func NewSMTPEmailProvider(host string, port int, username, password, from, fromName string) (EmailProvider, error) {
	if host == "" || username == "" || password == "" {
		return nil, fmt.Errorf("incomplete SMTP configuration")
	}

	dialer := gomail.NewDialer(host, port, username, password)
	dialer.TLSConfig = &tls.Config{InsecureSkipVerify: false}

	return &SMTPEmailProvider{
		from:     from,
		fromName: fromName,
		dialer:   dialer,
	}, nil
}

// SendEmail sends an email using SMTP
func (p *SMTPEmailProvider) SendEmail(ctx context.Context, message *EmailMessage) error {
	m := gomail.NewMessage()

	m.SetHeader("From", m.FormatAddress(p.from, p.fromName))
	m.SetHeader("To", message.To)
	m.SetHeader("Subject", message.Subject)

	if message.HTML != "" {
		m.SetBody("text/html", message.HTML)
		if message.Body != "" {
			m.AddAlternative("text/plain", message.Body)
		}
	} else {
		m.SetBody("text/plain", message.Body)
	}

	if err := p.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}

// SendGridEmailProvider implements EmailProvider using SendGrid
type SendGridEmailProvider struct {
	apiKey   string
	from     string
	fromName string
}

// NewSendGridEmailProvider creates a new SendGrid email provider
func NewSendGridEmailProvider(apiKey, from, fromName string) (EmailProvider, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("incomplete SendGrid configuration")
	}

	return &SendGridEmailProvider{
		apiKey:   apiKey,
		from:     from,
		fromName: fromName,
	}, nil
}

// SendEmail sends an email using SendGrid
func (p *SendGridEmailProvider) SendEmail(ctx context.Context, message *EmailMessage) error {
	from := mail.NewEmail(p.fromName, p.from)
	to := mail.NewEmail("", message.To)

	email := mail.NewSingleEmail(from, message.Subject, to, message.Body, message.HTML)
	client := sendgrid.NewSendClient(p.apiKey)

	response, err := client.Send(email)
	if err != nil {
		return fmt.Errorf("failed to send email via SendGrid: %w", err)
	}

	if response.StatusCode >= 400 {
		return fmt.Errorf("SendGrid returned error status: %d", response.StatusCode)
	}

	return nil
}

// MockEmailProvider implements EmailProvider for testing and local development
type MockEmailProvider struct {
	SentEmails []EmailMessage
}

// NewMockEmailProvider creates a new mock email provider
func NewMockEmailProvider() *MockEmailProvider {
	return &MockEmailProvider{
		SentEmails: make([]EmailMessage, 0),
	}
}

// SendEmail records the email instead of sending it
func (p *MockEmailProvider) SendEmail(ctx context.Context, message *EmailMessage) error {
	p.SentEmails = append(p.SentEmails, *message)
	log.Printf("Mock: sending email to %s: %s", message.To, message.Subject)
	return nil
}
