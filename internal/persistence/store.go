package persistence

import (
	"sync"

	"github.com/NammaLakes/dashboard/internal/db/repository"
)

// BlobStore is a key/value store of serialized state.
// Get returns repository.ErrNotFound for a missing key.
type BlobStore interface {
	Get(key string) ([]byte, error)
	Put(key string, value []byte) error
}

// MemoryStore keeps blobs in process memory
type MemoryStore struct {
	mu    sync.RWMutex
	blobs map[string][]byte
}

// NewMemoryStore creates an empty MemoryStore
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{blobs: make(map[string][]byte)}
}

// Get returns a copy of the blob stored under key
func (m *MemoryStore) Get(key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	blob, ok := m.blobs[key]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return append([]byte(nil), blob...), nil
}

// Put stores a copy of value under key
func (m *MemoryStore) Put(key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.blobs[key] = append([]byte(nil), value...)
	return nil
}
