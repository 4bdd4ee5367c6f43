package cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/tribuneros/tribuneros-api/internal/platform/resilience"
)

type entry struct {
	value     any
	fetchedAt time.Time
}

// Store memoizes loaded values for a fixed freshness window. Entries older
// than the window are treated as absent and reloaded on next access. The key
// space is expected to stay small (one entry per distinct outbound query), so
// there is no eviction beyond expiry-on-read.
type Store struct {
	mu      sync.RWMutex
	entries map[string]entry
	window  time.Duration
	flight  resilience.SingleFlight
	now     func() time.Time
}

func NewStore(window time.Duration) *Store {
	return &Store{
		entries: make(map[string]entry),
		window:  window,
		now:     time.Now,
	}
}

func (s *Store) Get(_ context.Context, key string) (any, bool) {
	value, _, ok := s.lookup(key)
	return value, ok
}

// FetchedAt reports when the live entry for key was stored. Missing or stale
// entries report false.
func (s *Store) FetchedAt(key string) (time.Time, bool) {
	_, fetchedAt, ok := s.lookup(key)
	return fetchedAt, ok
}

func (s *Store) lookup(key string) (any, time.Time, bool) {
	if key == "" {
		return nil, time.Time{}, false
	}

	now := s.now()
	s.mu.RLock()
	e, ok := s.entries[key]
	s.mu.RUnlock()
	if !ok {
		return nil, time.Time{}, false
	}
	if s.window > 0 && now.Sub(e.fetchedAt) >= s.window {
		s.mu.Lock()
		if cur, still := s.entries[key]; still && cur.fetchedAt.Equal(e.fetchedAt) {
			delete(s.entries, key)
		}
		s.mu.Unlock()
		return nil, time.Time{}, false
	}

	return e.value, e.fetchedAt, true
}

func (s *Store) Set(_ context.Context, key string, value any) {
	if key == "" {
		return
	}

	s.mu.Lock()
	s.entries[key] = entry{
		value:     value,
		fetchedAt: s.now(),
	}
	s.mu.Unlock()
}

func (s *Store) Delete(_ context.Context, key string) {
	if key == "" {
		return
	}

	s.mu.Lock()
	delete(s.entries, key)
	s.mu.Unlock()
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// GetOrLoad returns the cached value for key, or runs loader exactly once per
// concurrent group of callers and stores its result. Loader failures are not
// cached, so the next caller retries.
func (s *Store) GetOrLoad(ctx context.Context, key string, loader func(context.Context) (any, error)) (any, error) {
	if loader == nil {
		return nil, fmt.Errorf("loader is required")
	}
	if key == "" {
		return loader(ctx)
	}

	if value, ok := s.Get(ctx, key); ok {
		return value, nil
	}

	value, err, _ := s.flight.Do(key, func() (any, error) {
		if cached, ok := s.Get(ctx, key); ok {
			return cached, nil
		}

		loaded, loadErr := loader(ctx)
		if loadErr != nil {
			return nil, loadErr
		}
		s.Set(ctx, key, loaded)
		return loaded, nil
	})
	if err != nil {
		return nil, err
	}

	return value, nil
}
