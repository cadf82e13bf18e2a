package database

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"cloud.google.com/go/firestore"
	"go.uber.org/zap"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// FirestoreStore implements Store on top of a Firestore client.
type FirestoreStore struct {
	client *firestore.Client
	logger *zap.Logger
}

// NewFirestoreStore wraps an existing client. The caller owns client creation
// so that the Firebase app can share credentials between auth, storage and
// firestore.
func NewFirestoreStore(client *firestore.Client, logger *zap.Logger) *FirestoreStore {
	return &FirestoreStore{client: client, logger: logger}
}

func (s *FirestoreStore) doc(path string) (*firestore.DocumentRef, error) {
	if !isDocumentPath(path) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidPath, path)
	}
	ref := s.client.Doc(path)
	if ref == nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidPath, path)
	}
	return ref, nil
}

func (s *FirestoreStore) query(collection string, filters []Filter) (firestore.Query, error) {
	if !isCollectionPath(collection) {
		return firestore.Query{}, fmt.Errorf("%w: %q", ErrInvalidPath, collection)
	}
	col := s.client.Collection(collection)
	if col == nil {
		return firestore.Query{}, fmt.Errorf("%w: %q", ErrInvalidPath, collection)
	}
	q := col.Query
	for _, f := range filters {
		q = q.Where(f.Field, f.Op, f.Value)
	}
	return q, nil
}

// Get reads one document.
func (s *FirestoreStore) Get(ctx context.Context, path string) (*Document, error) {
	ref, err := s.doc(path)
	if err != nil {
		return nil, err
	}
	snap, err := ref.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, ErrNotFound
		}
		s.logger.Error("Error getting document", zap.String("path", path), zap.Error(err))
		return nil, err
	}
	return snapshotDocument(snap), nil
}

// List returns all documents in collection matching filters.
func (s *FirestoreStore) List(ctx context.Context, collection string, filters ...Filter) ([]*Document, error) {
	q, err := s.query(collection, filters)
	if err != nil {
		return nil, err
	}
	iter := q.Documents(ctx)
	defer iter.Stop()

	var docs []*Document
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			s.logger.Error("Error iterating collection", zap.String("collection", collection), zap.Error(err))
			return nil, err
		}
		docs = append(docs, snapshotDocument(snap))
	}
	return docs, nil
}

// NewID returns a fresh auto-generated id.
func (s *FirestoreStore) NewID(collection string) string {
	return s.client.Collection(collection).NewDoc().ID
}

// Add creates a document with a generated id.
func (s *FirestoreStore) Add(ctx context.Context, collection string, data interface{}) (string, error) {
	if !isCollectionPath(collection) {
		return "", fmt.Errorf("%w: %q", ErrInvalidPath, collection)
	}
	ref, _, err := s.client.Collection(collection).Add(ctx, data)
	if err != nil {
		s.logger.Error("Error adding document", zap.String("collection", collection), zap.Error(err))
		return "", err
	}
	return ref.ID, nil
}

// Create writes a new document and fails if it exists.
func (s *FirestoreStore) Create(ctx context.Context, path string, data interface{}) error {
	ref, err := s.doc(path)
	if err != nil {
		return err
	}
	if _, err := ref.Create(ctx, data); err != nil {
		return mapWriteError(err)
	}
	return nil
}

// Set replaces a document.
func (s *FirestoreStore) Set(ctx context.Context, path string, data interface{}) error {
	ref, err := s.doc(path)
	if err != nil {
		return err
	}
	if _, err := ref.Set(ctx, data); err != nil {
		s.logger.Error("Error setting document", zap.String("path", path), zap.Error(err))
		return err
	}
	return nil
}

// Update changes top-level fields of an existing document.
func (s *FirestoreStore) Update(ctx context.Context, path string, fields map[string]interface{}) error {
	ref, err := s.doc(path)
	if err != nil {
		return err
	}
	if _, err := ref.Update(ctx, toUpdates(fields)); err != nil {
		return mapWriteError(err)
	}
	return nil
}

// Delete removes a document.
func (s *FirestoreStore) Delete(ctx context.Context, path string) error {
	ref, err := s.doc(path)
	if err != nil {
		return err
	}
	if _, err := ref.Delete(ctx); err != nil {
		s.logger.Error("Error deleting document", zap.String("path", path), zap.Error(err))
		return err
	}
	return nil
}

// RunTransaction runs fn inside a Firestore transaction.
func (s *FirestoreStore) RunTransaction(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error {
	err := s.client.RunTransaction(ctx, func(ctx context.Context, t *firestore.Transaction) error {
		return fn(ctx, &firestoreTx{store: s, tx: t})
	})
	if err != nil {
		return mapWriteError(err)
	}
	return nil
}

// Close closes the underlying client.
func (s *FirestoreStore) Close() error {
	if s.client != nil {
		return s.client.Close()
	}
	return nil
}

type firestoreTx struct {
	store *FirestoreStore
	tx    *firestore.Transaction
}

func (t *firestoreTx) Get(path string) (*Document, error) {
	ref, err := t.store.doc(path)
	if err != nil {
		return nil, err
	}
	snap, err := t.tx.Get(ref)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return snapshotDocument(snap), nil
}

func (t *firestoreTx) List(collection string, filters ...Filter) ([]*Document, error) {
	q, err := t.store.query(collection, filters)
	if err != nil {
		return nil, err
	}
	snaps, err := t.tx.Documents(q).GetAll()
	if err != nil {
		return nil, err
	}
	docs := make([]*Document, 0, len(snaps))
	for _, snap := range snaps {
		docs = append(docs, snapshotDocument(snap))
	}
	return docs, nil
}

func (t *firestoreTx) Create(path string, data interface{}) error {
	ref, err := t.store.doc(path)
	if err != nil {
		return err
	}
	return t.tx.Create(ref, data)
}

func (t *firestoreTx) Set(path string, data interface{}) error {
	ref, err := t.store.doc(path)
	if err != nil {
		return err
	}
	return t.tx.Set(ref, data)
}

func (t *firestoreTx) Update(path string, fields map[string]interface{}) error {
	ref, err := t.store.doc(path)
	if err != nil {
		return err
	}
	return t.tx.Update(ref, toUpdates(fields))
}

func (t *firestoreTx) Delete(path string) error {
	ref, err := t.store.doc(path)
	if err != nil {
		return err
	}
	return t.tx.Delete(ref)
}

func snapshotDocument(snap *firestore.DocumentSnapshot) *Document {
	return &Document{
		ID:     snap.Ref.ID,
		Path:   relativePath(snap.Ref.Path),
		decode: snap.DataTo,
	}
}

// relativePath strips the "projects/<p>/databases/<d>/documents/" prefix.
func relativePath(full string) string {
	const marker = "/documents/"
	if i := strings.Index(full, marker); i >= 0 {
		return full[i+len(marker):]
	}
	return full
}

func toUpdates(fields map[string]interface{}) []firestore.Update {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	updates := make([]firestore.Update, 0, len(keys))
	for _, k := range keys {
		v := fields[k]
		if at, ok := v.(arrayTransform); ok {
			if at.remove {
				v = firestore.ArrayRemove(at.values...)
			} else {
				v = firestore.ArrayUnion(at.values...)
			}
		}
		updates = append(updates, firestore.Update{Path: k, Value: v})
	}
	return updates
}

func mapWriteError(err error) error {
	if errors.Is(err, ErrNotFound) || errors.Is(err, ErrAlreadyExists) {
		return err
	}
	switch status.Code(err) {
	case codes.NotFound:
		return ErrNotFound
	case codes.AlreadyExists:
		return ErrAlreadyExists
	}
	return err
}
