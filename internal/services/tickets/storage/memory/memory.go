// Package memory provides an in-process slot backend.
package memory

import (
	"context"
	"sync"

	"github.com/louisbranch/ticketdesk/internal/services/tickets/storage"
)

// Store keeps slots in a map. The zero value is not usable; call New.
type Store struct {
	mu    sync.RWMutex
	slots map[string][]byte
}

// New returns an empty in-memory slot store.
func New() *Store {
	return &Store{slots: map[string][]byte{}}
}

// GetSlot returns a copy of the value under key.
func (s *Store) GetSlot(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := storage.ValidateKey(key); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	value, ok := s.slots[key]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return append([]byte(nil), value...), nil
}

// PutSlot stores a copy of value under key.
func (s *Store) PutSlot(ctx context.Context, key string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := storage.ValidateKey(key); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.slots[key] = append([]byte(nil), value...)
	return nil
}

// DeleteSlot removes key.
func (s *Store) DeleteSlot(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := storage.ValidateKey(key); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.slots, key)
	return nil
}

// Close is a no-op so the memory store can stand in for closable backends.
func (s *Store) Close() error { return nil }

var _ storage.SlotStore = (*Store)(nil)
