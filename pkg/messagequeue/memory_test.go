package messagequeue

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestMemoryQueueDelivers(t *testing.T) {
	q := NewMemoryQueue()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	for _, m := range []string{"a", "b"} {
		if err := q.Publish(ctx, "events", []byte(m)); err != nil {
			t.Fatalf("Publish: %v", err)
		}
	}

	got := make(chan string, 2)
	done := make(chan error, 1)
	consumeCtx, stop := context.WithCancel(ctx)
	go func() {
		done <- q.Consume(consumeCtx, "events", func(_ context.Context, body []byte) error {
			got <- string(body)
			return nil
		})
	}()

	for _, want := range []string{"a", "b"} {
		select {
		case m := <-got:
			if m != want {
				t.Errorf("got %q, want %q", m, want)
			}
		case <-ctx.Done():
			t.Fatal("timed out waiting for message")
		}
	}
	stop()
	if err := <-done; !errors.Is(err, context.Canceled) {
		t.Errorf("Consume returned %v, want context.Canceled", err)
	}

	q.Close()
	if err := q.Publish(context.Background(), "events", nil); !errors.Is(err, ErrClosed) {
		t.Errorf("Publish after Close: got %v, want ErrClosed", err)
	}
}
