package objectstore

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/url"
	"sync"
)

type memoryObject struct {
	contentType string
	data        []byte
}

// MemoryStore keeps objects in process memory for tests and local runs.
// URLs are built by appending the escaped reference to baseURL.
type MemoryStore struct {
	mu      sync.RWMutex
	objects map[string]memoryObject
	baseURL string
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore(baseURL string) *MemoryStore {
	return &MemoryStore{objects: make(map[string]memoryObject), baseURL: baseURL}
}

func (m *MemoryStore) Put(_ context.Context, name, contentType string, r io.Reader) (string, error) {
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, r); err != nil {
		return "", fmt.Errorf("while reading upload %s: %w", name, err)
	}
	m.mu.Lock()
	m.objects[name] = memoryObject{contentType: contentType, data: buf.Bytes()}
	m.mu.Unlock()
	return name, nil
}

func (m *MemoryStore) URL(_ context.Context, ref string) (string, error) {
	m.mu.RLock()
	_, ok := m.objects[ref]
	m.mu.RUnlock()
	if !ok {
		return "", fmt.Errorf("%s: %w", ref, ErrNotFound)
	}
	return m.baseURL + url.PathEscape(ref), nil
}

// Open returns the stored bytes and content type of ref.
func (m *MemoryStore) Open(ref string) ([]byte, string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	obj, ok := m.objects[ref]
	return obj.data, obj.contentType, ok
}
