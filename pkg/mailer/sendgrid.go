package mailer

import (
	"context"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// SendGridMailer sends mail through the SendGrid v3 API.
type SendGridMailer struct {
	client   *sendgrid.Client
	from     string
	fromName string
}

// NewSendGridMailer returns a SendGridMailer using apiKey.
func NewSendGridMailer(apiKey, from, fromName string) *SendGridMailer {
	return &SendGridMailer{client: sendgrid.NewSendClient(apiKey), from: from, fromName: fromName}
}

func (m *SendGridMailer) Send(ctx context.Context, msg Message) error {
	if err := msg.validate(m.from); err != nil {
		return err
	}

	message := mail.NewV3Mail()
	message.From = mail.NewEmail(m.fromName, m.from)
	message.Subject = msg.Subject

	personalization := mail.NewPersonalization()
	personalization.To = append(personalization.To, mail.NewEmail(msg.ToName, msg.To))
	message.Personalizations = append(message.Personalizations, personalization)
	message.Content = append(message.Content, mail.NewContent(contentType(msg.Body), msg.Body))

	resp, err := m.client.SendWithContext(ctx, message)
	if err != nil {
		return fmt.Errorf("while sending mail through SendGrid: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("non-2XX response while sending mail through SendGrid: %d %s", resp.StatusCode, resp.Body)
	}
	return nil
}
