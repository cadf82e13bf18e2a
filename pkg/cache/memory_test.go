package cache

import (
	"context"
	"testing"
	"time"
)

func TestMemoryCacheExpiry(t *testing.T) {
	ctx := context.Background()
	clock := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	c := NewMemoryCache()
	c.now = func() time.Time { return clock }

	if err := c.Set(ctx, "k", "v", time.Minute); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := c.Set(ctx, "forever", 42, 0); err != nil {
		t.Fatalf("Set: %v", err)
	}

	if got, _ := c.Get(ctx, "k"); got != "v" {
		t.Errorf("Get before expiry = %q, want v", got)
	}
	clock = clock.Add(time.Minute)
	if got, _ := c.Get(ctx, "k"); got != "" {
		t.Errorf("Get after expiry = %q, want empty", got)
	}
	if got, _ := c.Get(ctx, "forever"); got != "42" {
		t.Errorf("Get forever = %q, want 42", got)
	}

	if err := c.Delete(ctx, "forever"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if got, _ := c.Get(ctx, "forever"); got != "" {
		t.Errorf("Get after delete = %q, want empty", got)
	}
}
