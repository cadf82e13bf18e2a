package objectstore

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore("http://localhost/objects/")

	if _, err := s.URL(ctx, "profiles/missing.png"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("URL missing: got %v, want ErrNotFound", err)
	}

	ref, err := s.Put(ctx, "profiles/a b.png", "image/png", strings.NewReader("png"))
	if err != nil {
		t.Fatalf("Put: %v", err)
	}
	url, err := s.URL(ctx, ref)
	if err != nil {
		t.Fatalf("URL: %v", err)
	}
	if want := "http://localhost/objects/profiles%2Fa%20b.png"; url != want {
		t.Errorf("URL = %q, want %q", url, want)
	}
	data, ct, ok := s.Open(ref)
	if !ok || string(data) != "png" || ct != "image/png" {
		t.Errorf("Open = %q, %q, %v", data, ct, ok)
	}
}
