// Package objectstore stores uploaded files and resolves their opaque
// references to fetchable URLs.
package objectstore

import (
	"context"
	"errors"
	"io"
)

// ErrNotFound is returned when resolving a reference that was never stored.
var ErrNotFound = errors.New("object not found")

// Store uploads objects and resolves references to URLs.
type Store interface {
	// Put writes r under name and returns the reference to persist.
	Put(ctx context.Context, name, contentType string, r io.Reader) (string, error)
	// URL resolves a reference returned by Put to a time-limited URL.
	URL(ctx context.Context, ref string) (string, error)
}
