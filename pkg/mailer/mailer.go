// Package mailer sends notification emails over SMTP or SendGrid.
package mailer

import (
	"context"
	"fmt"
	"strings"
)

// Message is one outbound email.
type Message struct {
	To      string
	ToName  string
	Subject string
	Body    string // plain text or HTML
}

// Mailer sends messages.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

func (m Message) validate(sender string) error {
	if m.To == "" {
		return fmt.Errorf("recipient email address cannot be empty")
	}
	if sender == "" {
		return fmt.Errorf("sender email address cannot be empty")
	}
	if m.Subject == "" {
		return fmt.Errorf("email subject cannot be empty")
	}
	return nil
}

// contentType infers text/html when the body carries basic HTML tags.
func contentType(body string) string {
	lower := strings.ToLower(body)
	if strings.Contains(lower, "<html>") || strings.Contains(lower, "<p>") {
		return "text/html"
	}
	return "text/plain"
}
