// Package database defines a path-addressed document store.
//
// Paths follow the Firestore layout: a document path has an even number of
// segments ("users/u1/jobs/j1") and a collection path an odd number
// ("users/u1/jobs"). Two implementations are provided: FirestoreStore for
// production and MemoryStore for tests and local runs.
package database

import (
	"context"
	"errors"
	"strings"
)

var (
	// ErrNotFound is returned when a document does not exist.
	ErrNotFound = errors.New("document not found")
	// ErrAlreadyExists is returned by Create when the document exists.
	ErrAlreadyExists = errors.New("document already exists")
	// ErrInvalidPath is returned for paths with the wrong number of segments.
	ErrInvalidPath = errors.New("invalid document path")
)

// Supported filter operators.
const (
	OpEqual         = "=="
	OpArrayContains = "array-contains"
)

// Filter is a single equality or membership clause for List.
type Filter struct {
	Field string
	Op    string
	Value interface{}
}

// Where builds a Filter.
func Where(field, op string, value interface{}) Filter {
	return Filter{Field: field, Op: op, Value: value}
}

// Document is a snapshot of a stored document.
type Document struct {
	ID     string
	Path   string
	decode func(dst interface{}) error
}

// DataTo decodes the document into dst, which must be a pointer to a struct
// or map.
func (d *Document) DataTo(dst interface{}) error {
	if d == nil || d.decode == nil {
		return ErrNotFound
	}
	return d.decode(dst)
}

// arrayTransform is a field value understood by Update that adds or removes
// elements of an array field without rewriting it.
type arrayTransform struct {
	remove bool
	values []interface{}
}

// ArrayUnion returns an Update value that appends the given elements to an
// array field, skipping elements already present.
func ArrayUnion(values ...interface{}) interface{} {
	return arrayTransform{values: values}
}

// ArrayRemove returns an Update value that removes every instance of the
// given elements from an array field.
func ArrayRemove(values ...interface{}) interface{} {
	return arrayTransform{remove: true, values: values}
}

// Store is a hierarchical document store.
type Store interface {
	// Get reads one document. Returns ErrNotFound if it does not exist.
	Get(ctx context.Context, path string) (*Document, error)
	// List returns every document of a collection that matches all filters.
	List(ctx context.Context, collection string, filters ...Filter) ([]*Document, error)
	// NewID returns a fresh document id for the collection without writing.
	NewID(collection string) string
	// Add creates a document with a generated id and returns the id.
	Add(ctx context.Context, collection string, data interface{}) (string, error)
	// Create writes a new document. Returns ErrAlreadyExists if it exists.
	Create(ctx context.Context, path string, data interface{}) error
	// Set writes a document, replacing any existing content.
	Set(ctx context.Context, path string, data interface{}) error
	// Update changes the named top-level fields. Returns ErrNotFound if the
	// document does not exist.
	Update(ctx context.Context, path string, fields map[string]interface{}) error
	// Delete removes a document. Deleting a missing document is not an error.
	Delete(ctx context.Context, path string) error
	// RunTransaction runs fn atomically. All reads must happen before the
	// first write. fn may be retried on contention.
	RunTransaction(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	Close() error
}

// Tx is the set of operations available inside a transaction.
type Tx interface {
	Get(path string) (*Document, error)
	List(collection string, filters ...Filter) ([]*Document, error)
	Create(path string, data interface{}) error
	Set(path string, data interface{}) error
	Update(path string, fields map[string]interface{}) error
	Delete(path string) error
}

// Join builds a path from segments.
func Join(segments ...string) string {
	return strings.Join(segments, "/")
}

func isDocumentPath(path string) bool {
	if path == "" {
		return false
	}
	segments := strings.Split(path, "/")
	for _, s := range segments {
		if s == "" {
			return false
		}
	}
	return len(segments)%2 == 0
}

func isCollectionPath(path string) bool {
	if path == "" {
		return false
	}
	segments := strings.Split(path, "/")
	for _, s := range segments {
		if s == "" {
			return false
		}
	}
	return len(segments)%2 == 1
}
