package models

import "time"

// EventType names a workflow transition that someone should hear about.
type EventType string

const (
	EventApplicationSubmitted EventType = "application.submitted"
	EventApplicationDecided   EventType = "application.decided"
	EventBookingRequested     EventType = "booking.requested"
	EventBookingLineDecided   EventType = "booking.line_decided"
)

// Event is published to the notifications queue after a workflow commits.
type Event struct {
	Type        EventType `json:"type"`
	ActorID     string    `json:"actorId"`
	RecipientID string    `json:"recipientId"`
	SubjectID   string    `json:"subjectId"`
	Status      string    `json:"status,omitempty"`
	OccurredAt  time.Time `json:"occurredAt"`
}
