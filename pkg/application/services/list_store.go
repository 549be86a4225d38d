package services

import (
	"context"
	"sync"

	"github.com/mbarret/expertdesk/pkg/infrastructure/logging"
)

// ListStore caches one REST list endpoint. The first Items call fetches, later
// calls serve the cache until Refresh or Invalidate. Reads across the
// back-office (accounts, organizations, vehicles) change rarely enough that an
// explicit refresh beats a TTL.
type ListStore[T any] struct {
	name  string
	fetch func(ctx context.Context) ([]T, error)
	log   *logging.Logger

	mu     sync.Mutex
	items  []T
	loaded bool
}

// NewListStore builds a store over a fetch function. The name only serves log
// context.
func NewListStore[T any](
	name string,
	fetch func(ctx context.Context) ([]T, error),
	log *logging.Logger,
) *ListStore[T] {
	if log == nil {
		log = logging.Nop()
	}
	return &ListStore[T]{name: name, fetch: fetch, log: log}
}

// Items returns the cached list, fetching it on first use. The returned slice
// is a copy.
func (s *ListStore[T]) Items(ctx context.Context) ([]T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.loaded {
		if err := s.fetchLocked(ctx); err != nil {
			return nil, err
		}
	}
	return s.copyLocked(), nil
}

// Refresh refetches the list unconditionally and returns the fresh copy.
func (s *ListStore[T]) Refresh(ctx context.Context) ([]T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.fetchLocked(ctx); err != nil {
		return nil, err
	}
	return s.copyLocked(), nil
}

// Invalidate drops the cache; the next Items call fetches again.
func (s *ListStore[T]) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = nil
	s.loaded = false
}

// Loaded reports whether the store currently holds a fetched list.
func (s *ListStore[T]) Loaded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loaded
}

func (s *ListStore[T]) fetchLocked(ctx context.Context) error {
	items, err := s.fetch(ctx)
	if err != nil {
		s.log.Warn("Failed to fetch list", "store", s.name, "error", err)
		return err
	}
	s.items = items
	s.loaded = true
	s.log.Debug("Fetched list", "store", s.name, "count", len(items))
	return nil
}

func (s *ListStore[T]) copyLocked() []T {
	out := make([]T, len(s.items))
	copy(out, s.items)
	return out
}
