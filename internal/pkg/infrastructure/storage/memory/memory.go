// Package memory provides an in-process keyed-list engine for tests and local development.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/diwise/eventity/internal/pkg/infrastructure/storage"
)

// Store keeps every list in a map. A single mutex makes Push and Delete atomic.
type Store struct {
	mu    sync.RWMutex
	lists map[string][][]byte
}

func New() *Store {
	return &Store{lists: make(map[string][][]byte)}
}

func (s *Store) Push(ctx context.Context, pushes []storage.Push) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, p := range pushes {
		for _, v := range p.Values {
			s.lists[p.Key] = append(s.lists[p.Key], clone(v))
		}
	}

	return nil
}

func (s *Store) Range(ctx context.Context, key string) ([][]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	list := s.lists[key]
	result := make([][]byte, len(list))
	for i, v := range list {
		result[i] = clone(v)
	}

	return result, nil
}

func (s *Store) Keys(ctx context.Context, prefix string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	keys := make([]string, 0)
	for k := range s.lists {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	return keys, nil
}

func (s *Store) Delete(ctx context.Context, keys []string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, k := range keys {
		delete(s.lists, k)
	}

	return nil
}

func (s *Store) Close() error {
	return nil
}

func clone(b []byte) []byte {
	c := make([]byte, len(b))
	copy(c, b)
	return c
}
