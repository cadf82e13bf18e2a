package core

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"nexta-backend-go/internal/db"
	"nexta-backend-go/internal/models"
	"nexta-backend-go/pkg/mailer"
)

// Notifier turns workflow events into emails to the event's recipient.
type Notifier struct {
	users  db.UserRepository
	mailer mailer.Mailer
	logger *zap.Logger
}

// NewNotifier creates a Notifier.
func NewNotifier(users db.UserRepository, m mailer.Mailer, logger *zap.Logger) *Notifier {
	return &Notifier{users: users, mailer: m, logger: logger}
}

// Handle processes one queued event. Events whose recipient cannot be
// reached are logged and acknowledged; delivery failures are returned so the
// message is rejected.
func (n *Notifier) Handle(ctx context.Context, body []byte) error {
	var event models.Event
	if err := json.Unmarshal(body, &event); err != nil {
		return fmt.Errorf("failed to decode event: %w", err)
	}

	if _, _, ok := describeEvent(event, ""); !ok {
		n.logger.Warn("Ignoring unknown event type", zap.String("type", string(event.Type)))
		return nil
	}

	recipient, err := n.users.GetByID(ctx, event.RecipientID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			n.logger.Warn("Event recipient does not exist", zap.String("recipientId", event.RecipientID))
			return nil
		}
		return fmt.Errorf("failed to load recipient '%s': %w", event.RecipientID, err)
	}
	if recipient.Email == "" {
		n.logger.Warn("Event recipient has no email", zap.String("recipientId", event.RecipientID))
		return nil
	}

	actorName := "Someone"
	if actor, err := n.users.GetByID(ctx, event.ActorID); err == nil && actor.Name != "" {
		actorName = actor.Name
	}

	subject, text, _ := describeEvent(event, actorName)
	msg := mailer.Message{
		To:      recipient.Email,
		ToName:  recipient.Name,
		Subject: subject,
		Body:    text,
	}
	if err := n.mailer.Send(ctx, msg); err != nil {
		return fmt.Errorf("failed to email %s about %s: %w", event.RecipientID, event.Type, err)
	}
	n.logger.Info("Notification sent",
		zap.String("type", string(event.Type)),
		zap.String("recipientId", event.RecipientID),
		zap.String("subjectId", event.SubjectID),
	)
	return nil
}

// describeEvent returns the email subject and body for e.
func describeEvent(e models.Event, actorName string) (string, string, bool) {
	status := strings.ToLower(e.Status)
	switch e.Type {
	case models.EventApplicationSubmitted:
		return "New application received", actorName + " applied to one of your jobs.", true
	case models.EventApplicationDecided:
		return "Your application was " + status, actorName + " marked your application as " + status + ".", true
	case models.EventBookingRequested:
		return "New booking request", actorName + " wants to book you. Review the request on your hires page.", true
	case models.EventBookingLineDecided:
		return "Your booking request was " + status, actorName + " marked your booking request as " + status + ".", true
	default:
		return "", "", false
	}
}
