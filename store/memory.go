package store

import (
	"context"
	"sync"
)

// InMemoryStore is a thread-safe in-memory BlobStore
type InMemoryStore struct {
	mu    sync.RWMutex
	blobs map[string][]byte
}

// NewInMemoryStore constructs a new InMemoryStore
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		blobs: make(map[string][]byte),
	}
}

// compile-time assertion that InMemoryStore implements BlobStore
var _ BlobStore = (*InMemoryStore)(nil)

func (s *InMemoryStore) Load(ctx context.Context, key string) ([]byte, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	b, ok := s.blobs[key]
	if !ok {
		return nil, nil
	}
	return append([]byte(nil), b...), nil
}

func (s *InMemoryStore) Save(ctx context.Context, key string, data []byte) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// callers may reuse their buffer
	s.blobs[key] = append([]byte(nil), data...)
	return nil
}

func (s *InMemoryStore) Close() error {
	return nil
}
