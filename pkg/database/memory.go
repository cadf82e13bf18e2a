package database

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// errReadAfterWrite mirrors Firestore's rule that transactional reads must
// precede writes.
var errReadAfterWrite = errors.New("transaction: read after write")

// MemoryStore is an in-process Store. Documents are normalised through JSON,
// so models must use the same name in their json and firestore tags.
// Top-level fields tagged firestore:"-" are dropped on write, as Firestore
// drops them; nested values are stored as their json encoding.
type MemoryStore struct {
	mu   sync.Mutex
	docs map[string]map[string]interface{}
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{docs: make(map[string]map[string]interface{})}
}

// Get reads one document.
func (m *MemoryStore) Get(_ context.Context, path string) (*Document, error) {
	if !isDocumentPath(path) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidPath, path)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return getDoc(m.docs, path)
}

// List returns documents of a collection ordered by id.
func (m *MemoryStore) List(_ context.Context, collection string, filters ...Filter) ([]*Document, error) {
	if !isCollectionPath(collection) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidPath, collection)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return listDocs(m.docs, collection, filters)
}

// NewID returns a random 20 character id.
func (m *MemoryStore) NewID(string) string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:20]
}

// Add creates a document with a generated id.
func (m *MemoryStore) Add(ctx context.Context, collection string, data interface{}) (string, error) {
	if !isCollectionPath(collection) {
		return "", fmt.Errorf("%w: %q", ErrInvalidPath, collection)
	}
	id := m.NewID(collection)
	if err := m.Create(ctx, Join(collection, id), data); err != nil {
		return "", err
	}
	return id, nil
}

// Create writes a new document.
func (m *MemoryStore) Create(ctx context.Context, path string, data interface{}) error {
	return m.RunTransaction(ctx, func(_ context.Context, tx Tx) error {
		return tx.Create(path, data)
	})
}

// Set replaces a document.
func (m *MemoryStore) Set(ctx context.Context, path string, data interface{}) error {
	return m.RunTransaction(ctx, func(_ context.Context, tx Tx) error {
		return tx.Set(path, data)
	})
}

// Update changes fields of an existing document.
func (m *MemoryStore) Update(ctx context.Context, path string, fields map[string]interface{}) error {
	return m.RunTransaction(ctx, func(_ context.Context, tx Tx) error {
		return tx.Update(path, fields)
	})
}

// Delete removes a document.
func (m *MemoryStore) Delete(ctx context.Context, path string) error {
	return m.RunTransaction(ctx, func(_ context.Context, tx Tx) error {
		return tx.Delete(path)
	})
}

// RunTransaction serialises fn against all other writers. Writes are staged
// and applied only if fn returns nil and every staged write is valid.
func (m *MemoryStore) RunTransaction(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	tx := &memoryTx{docs: m.docs}
	if err := fn(ctx, tx); err != nil {
		return err
	}
	if tx.err != nil {
		return tx.err
	}

	next := make(map[string]map[string]interface{}, len(m.docs))
	for k, v := range m.docs {
		next[k] = v
	}
	for _, op := range tx.ops {
		if err := op(next); err != nil {
			return err
		}
	}
	m.docs = next
	return nil
}

// Close is a no-op.
func (m *MemoryStore) Close() error { return nil }

type memoryOp func(docs map[string]map[string]interface{}) error

type memoryTx struct {
	docs  map[string]map[string]interface{}
	ops   []memoryOp
	wrote bool
	err   error
}

func (t *memoryTx) Get(path string) (*Document, error) {
	if t.wrote {
		return nil, errReadAfterWrite
	}
	if !isDocumentPath(path) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidPath, path)
	}
	return getDoc(t.docs, path)
}

func (t *memoryTx) List(collection string, filters ...Filter) ([]*Document, error) {
	if t.wrote {
		return nil, errReadAfterWrite
	}
	if !isCollectionPath(collection) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidPath, collection)
	}
	return listDocs(t.docs, collection, filters)
}

// stage records a write. Encoding errors surface at commit.
func (t *memoryTx) stage(path string, op memoryOp) error {
	t.wrote = true
	if !isDocumentPath(path) {
		err := fmt.Errorf("%w: %q", ErrInvalidPath, path)
		if t.err == nil {
			t.err = err
		}
		return err
	}
	t.ops = append(t.ops, op)
	return nil
}

func (t *memoryTx) Create(path string, data interface{}) error {
	fields, err := normalize(data)
	if err != nil {
		return err
	}
	return t.stage(path, func(docs map[string]map[string]interface{}) error {
		if _, ok := docs[path]; ok {
			return fmt.Errorf("%s: %w", path, ErrAlreadyExists)
		}
		docs[path] = fields
		return nil
	})
}

func (t *memoryTx) Set(path string, data interface{}) error {
	fields, err := normalize(data)
	if err != nil {
		return err
	}
	return t.stage(path, func(docs map[string]map[string]interface{}) error {
		docs[path] = fields
		return nil
	})
}

func (t *memoryTx) Update(path string, fields map[string]interface{}) error {
	plain := make(map[string]interface{}, len(fields))
	transforms := make(map[string]arrayTransform)
	for k, v := range fields {
		if at, ok := v.(arrayTransform); ok {
			values, err := normalizeSlice(at.values)
			if err != nil {
				return err
			}
			transforms[k] = arrayTransform{remove: at.remove, values: values}
			continue
		}
		plain[k] = v
	}
	normalized, err := normalize(plain)
	if err != nil {
		return err
	}
	return t.stage(path, func(docs map[string]map[string]interface{}) error {
		current, ok := docs[path]
		if !ok {
			return fmt.Errorf("%s: %w", path, ErrNotFound)
		}
		updated := make(map[string]interface{}, len(current)+len(fields))
		for k, v := range current {
			updated[k] = v
		}
		for k, v := range normalized {
			updated[k] = v
		}
		for k, at := range transforms {
			existing, _ := updated[k].([]interface{})
			updated[k] = applyArrayTransform(existing, at)
		}
		docs[path] = updated
		return nil
	})
}

func (t *memoryTx) Delete(path string) error {
	return t.stage(path, func(docs map[string]map[string]interface{}) error {
		delete(docs, path)
		return nil
	})
}

func getDoc(docs map[string]map[string]interface{}, path string) (*Document, error) {
	fields, ok := docs[path]
	if !ok {
		return nil, ErrNotFound
	}
	return newMemoryDocument(path, fields), nil
}

func listDocs(docs map[string]map[string]interface{}, collection string, filters []Filter) ([]*Document, error) {
	normalized := make([]Filter, len(filters))
	for i, f := range filters {
		if f.Op != OpEqual && f.Op != OpArrayContains {
			return nil, fmt.Errorf("unsupported filter operator %q", f.Op)
		}
		v, err := normalizeValue(f.Value)
		if err != nil {
			return nil, err
		}
		normalized[i] = Filter{Field: f.Field, Op: f.Op, Value: v}
	}

	prefix := collection + "/"
	var paths []string
	for path := range docs {
		if !strings.HasPrefix(path, prefix) {
			continue
		}
		if strings.Contains(path[len(prefix):], "/") {
			continue
		}
		if matches(docs[path], normalized) {
			paths = append(paths, path)
		}
	}
	sort.Strings(paths)

	result := make([]*Document, 0, len(paths))
	for _, p := range paths {
		result = append(result, newMemoryDocument(p, docs[p]))
	}
	return result, nil
}

func matches(fields map[string]interface{}, filters []Filter) bool {
	for _, f := range filters {
		v, ok := fields[f.Field]
		if !ok {
			return false
		}
		switch f.Op {
		case OpEqual:
			if !reflect.DeepEqual(v, f.Value) {
				return false
			}
		case OpArrayContains:
			arr, ok := v.([]interface{})
			if !ok || !containsValue(arr, f.Value) {
				return false
			}
		}
	}
	return true
}

func applyArrayTransform(existing []interface{}, at arrayTransform) []interface{} {
	out := make([]interface{}, 0, len(existing)+len(at.values))
	if at.remove {
		for _, e := range existing {
			if !containsValue(at.values, e) {
				out = append(out, e)
			}
		}
		return out
	}
	out = append(out, existing...)
	for _, v := range at.values {
		if !containsValue(out, v) {
			out = append(out, v)
		}
	}
	return out
}

func containsValue(arr []interface{}, v interface{}) bool {
	for _, e := range arr {
		if reflect.DeepEqual(e, v) {
			return true
		}
	}
	return false
}

func newMemoryDocument(path string, fields map[string]interface{}) *Document {
	raw, err := json.Marshal(fields)
	return &Document{
		ID:   path[strings.LastIndex(path, "/")+1:],
		Path: path,
		decode: func(dst interface{}) error {
			if err != nil {
				return err
			}
			return json.Unmarshal(raw, dst)
		},
	}
}

func normalize(data interface{}) (map[string]interface{}, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}
	fields := make(map[string]interface{})
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, fmt.Errorf("document must encode to an object: %w", err)
	}
	for _, name := range unstoredFields(reflect.TypeOf(data)) {
		delete(fields, name)
	}
	return fields, nil
}

// unstoredFields returns the json names of the fields of t tagged
// firestore:"-", including those promoted from embedded structs.
func unstoredFields(t reflect.Type) []string {
	for t != nil && t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t == nil || t.Kind() != reflect.Struct {
		return nil
	}
	var names []string
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		jsonName, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if f.Anonymous && jsonName == "" {
			names = append(names, unstoredFields(f.Type)...)
			continue
		}
		if !f.IsExported() || f.Tag.Get("firestore") != "-" || jsonName == "-" {
			continue
		}
		if jsonName == "" {
			jsonName = f.Name
		}
		names = append(names, jsonName)
	}
	return names
}

func normalizeValue(v interface{}) (interface{}, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var out interface{}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func normalizeSlice(values []interface{}) ([]interface{}, error) {
	out := make([]interface{}, 0, len(values))
	for _, v := range values {
		n, err := normalizeValue(v)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, nil
}
