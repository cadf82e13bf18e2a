package messagequeue

import (
	"context"
	"errors"
	"sync"
)

// ErrClosed is returned by MemoryQueue after Close.
var ErrClosed = errors.New("queue closed")

// MemoryQueue is an in-process MessageQueue for tests and local runs.
// Rejected messages are dropped, matching a nack without requeue.
type MemoryQueue struct {
	mu     sync.Mutex
	queues map[string]chan []byte
	closed chan struct{}
	once   sync.Once
}

// NewMemoryQueue returns an empty MemoryQueue.
func NewMemoryQueue() *MemoryQueue {
	return &MemoryQueue{queues: make(map[string]chan []byte), closed: make(chan struct{})}
}

func (m *MemoryQueue) queue(name string) chan []byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	q, ok := m.queues[name]
	if !ok {
		q = make(chan []byte, 256)
		m.queues[name] = q
	}
	return q
}

func (m *MemoryQueue) Publish(ctx context.Context, queueName string, body []byte) error {
	msg := append([]byte(nil), body...)
	select {
	case <-m.closed:
		return ErrClosed
	default:
	}
	select {
	case <-m.closed:
		return ErrClosed
	case <-ctx.Done():
		return ctx.Err()
	case m.queue(queueName) <- msg:
		return nil
	}
}

func (m *MemoryQueue) Consume(ctx context.Context, queueName string, handler Handler) error {
	q := m.queue(queueName)
	for {
		select {
		case <-m.closed:
			return ErrClosed
		case <-ctx.Done():
			return ctx.Err()
		case body := <-q:
			_ = handler(ctx, body)
		}
	}
}

func (m *MemoryQueue) Close() error {
	m.once.Do(func() { close(m.closed) })
	return nil
}
