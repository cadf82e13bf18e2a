package messagequeue

import "context"

// Handler processes one message. A nil error acknowledges it; a non-nil
// error rejects it without requeueing.
type Handler func(ctx context.Context, body []byte) error

// MessageQueue defines the interface for message queue services.
type MessageQueue interface {
	Publish(ctx context.Context, queueName string, body []byte) error
	// Consume blocks, delivering messages to handler until ctx is done or
	// the queue is closed.
	Consume(ctx context.Context, queueName string, handler Handler) error
	Close() error
}
