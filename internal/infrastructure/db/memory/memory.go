// Package memory provides a process-local ports.Storage, used by tests and by
// the "memory" storage backend.
package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/99minutos/community-board/internal/core/domain"
	"github.com/99minutos/community-board/internal/core/ports"
)

// Storage keeps documents in a map. It is safe for concurrent use.
type Storage struct {
	mu    sync.Mutex
	docs  map[string][]byte
	saves int
}

var _ ports.Storage = (*Storage)(nil)

// New returns an empty Storage.
func New() *Storage {
	return &Storage{docs: make(map[string][]byte)}
}

func (s *Storage) Load(_ context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, ok := s.docs[key]
	if !ok {
		return nil, domain.ErrStateNotFound
	}
	return slices.Clone(doc), nil
}

func (s *Storage) Save(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[key] = slices.Clone(value)
	s.saves++
	return nil
}

func (s *Storage) Remove(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.docs, key)
	return nil
}

func (s *Storage) Ping(context.Context) error { return nil }

// Saves reports how many writes have been made.
func (s *Storage) Saves() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saves
}
