package messagequeue

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/streadway/amqp"
	"go.uber.org/zap"
)

// RabbitMQService implements the MessageQueue interface using RabbitMQ.
type RabbitMQService struct {
	conn     *amqp.Connection
	mu       sync.Mutex // amqp channels are not safe for concurrent publishes
	channel  *amqp.Channel
	declared map[string]struct{}
	prefetch int
	logger   *zap.Logger
}

// NewRabbitMQServiceConfig contains options for creating a new RabbitMQService.
// Prefetch bounds unacknowledged deliveries per consumer; zero means 10.
type NewRabbitMQServiceConfig struct {
	URL      string
	Prefetch int
}

// NewRabbitMQService dials RabbitMQ and opens a channel.
func NewRabbitMQService(cfg NewRabbitMQServiceConfig, logger *zap.Logger) (*RabbitMQService, error) {
	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, err
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, err
	}

	prefetch := cfg.Prefetch
	if prefetch <= 0 {
		prefetch = 10
	}
	logger.Info("Connected to RabbitMQ and opened a channel")
	return &RabbitMQService{
		conn:     conn,
		channel:  ch,
		declared: make(map[string]struct{}),
		prefetch: prefetch,
		logger:   logger,
	}, nil
}

// declare makes sure queueName exists as a durable queue. Callers hold s.mu.
func (s *RabbitMQService) declare(queueName string) error {
	if _, ok := s.declared[queueName]; ok {
		return nil
	}
	_, err := s.channel.QueueDeclare(
		queueName, // name
		true,      // durable
		false,     // delete when unused
		false,     // exclusive
		false,     // no-wait
		nil,       // arguments
	)
	if err != nil {
		return err
	}
	s.declared[queueName] = struct{}{}
	return nil
}

// Publish sends a persistent JSON message to a RabbitMQ queue.
func (s *RabbitMQService) Publish(ctx context.Context, queueName string, body []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.declare(queueName); err != nil {
		s.logger.Error("Failed to declare queue", zap.String("queue", queueName), zap.Error(err))
		return err
	}

	err := s.channel.Publish("", queueName, false, false, amqp.Publishing{
		ContentType:  "application/json",
		Body:         body,
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
	})
	if err != nil {
		s.logger.Error("Failed to publish message", zap.String("queue", queueName), zap.Error(err))
		return err
	}
	s.logger.Debug("Published message", zap.String("queue", queueName))
	return nil
}

// Consume delivers messages from queueName to handler with manual acks.
func (s *RabbitMQService) Consume(ctx context.Context, queueName string, handler Handler) error {
	s.mu.Lock()
	msgs, err := s.subscribe(queueName)
	s.mu.Unlock()
	if err != nil {
		return err
	}

	s.logger.Info("Waiting for messages", zap.String("queue", queueName), zap.Int("prefetch", s.prefetch))
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case d, ok := <-msgs:
			if !ok {
				return errors.New("rabbitmq delivery channel closed")
			}
			if err := handler(ctx, d.Body); err != nil {
				s.logger.Warn("Message handler failed; rejecting", zap.String("queue", queueName), zap.Error(err))
				if nackErr := d.Nack(false, false); nackErr != nil {
					s.logger.Error("Failed to nack message", zap.Error(nackErr))
				}
				continue
			}
			if ackErr := d.Ack(false); ackErr != nil {
				s.logger.Error("Failed to ack message", zap.Error(ackErr))
			}
		}
	}
}

// subscribe declares queueName and registers a manual-ack consumer on it.
func (s *RabbitMQService) subscribe(queueName string) (<-chan amqp.Delivery, error) {
	if err := s.declare(queueName); err != nil {
		return nil, err
	}
	if err := s.channel.Qos(s.prefetch, 0, false); err != nil {
		return nil, err
	}
	return s.channel.Consume(
		queueName, // queue
		"",        // consumer
		false,     // auto-ack
		false,     // exclusive
		false,     // no-local
		false,     // no-wait
		nil,       // args
	)
}

// Close closes the RabbitMQ channel and connection.
func (s *RabbitMQService) Close() error {
	var lastErr error
	if s.channel != nil {
		if err := s.channel.Close(); err != nil {
			s.logger.Warn("Error closing RabbitMQ channel", zap.Error(err))
			lastErr = err
		}
	}
	if s.conn != nil {
		if err := s.conn.Close(); err != nil {
			s.logger.Warn("Error closing RabbitMQ connection", zap.Error(err))
			lastErr = err
		}
	}
	return lastErr
}
