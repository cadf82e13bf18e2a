package core

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"nexta-backend-go/internal/models"
	"nexta-backend-go/pkg/messagequeue"
)

// queuePublisher publishes events as JSON to a message queue.
type queuePublisher struct {
	queue     messagequeue.MessageQueue
	queueName string
}

// NewQueuePublisher returns an EventPublisher backed by queue.
func NewQueuePublisher(queue messagequeue.MessageQueue, queueName string) EventPublisher {
	return &queuePublisher{queue: queue, queueName: queueName}
}

func (p *queuePublisher) Publish(ctx context.Context, event models.Event) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to encode event %s: %w", event.Type, err)
	}
	return p.queue.Publish(ctx, p.queueName, body)
}

// logPublisher logs events instead of publishing them. Used when no broker
// is configured.
type logPublisher struct {
	logger *zap.Logger
}

// NewLogPublisher returns an EventPublisher that only logs.
func NewLogPublisher(logger *zap.Logger) EventPublisher {
	return &logPublisher{logger: logger}
}

func (p *logPublisher) Publish(_ context.Context, event models.Event) error {
	p.logger.Info("Workflow event",
		zap.String("type", string(event.Type)),
		zap.String("actorId", event.ActorID),
		zap.String("recipientId", event.RecipientID),
		zap.String("subjectId", event.SubjectID),
		zap.String("status", event.Status),
	)
	return nil
}
