package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/tribuneros/tribuneros-api/internal/domain/match"
)

// MatchRepository is the dev-mode store used when no database is configured.
type MatchRepository struct {
	mu   sync.RWMutex
	byID map[int64]match.Match
}

func NewMatchRepository(seed []match.Match) *MatchRepository {
	byID := make(map[int64]match.Match, len(seed))
	for _, m := range seed {
		byID[m.ExternalID] = m
	}
	return &MatchRepository{byID: byID}
}

func (r *MatchRepository) Upsert(_ context.Context, m match.Match) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.byID[m.ExternalID]; ok {
		m.CreatedAt = existing.CreatedAt
	}
	r.byID[m.ExternalID] = m
	return nil
}

func (r *MatchRepository) GetByExternalID(_ context.Context, externalID int64) (match.Match, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, ok := r.byID[externalID]
	if !ok {
		return match.Match{}, match.ErrNotFound
	}
	return m, nil
}

func (r *MatchRepository) ListByDate(_ context.Context, matchDate string) ([]match.Match, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.collect(func(m match.Match) bool {
		return m.MatchDate == matchDate
	}), nil
}

func (r *MatchRepository) ListByDateAndStatuses(_ context.Context, matchDate string, statuses []string) ([]match.Match, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	wanted := make(map[string]bool, len(statuses))
	for _, status := range statuses {
		wanted[status] = true
	}

	return r.collect(func(m match.Match) bool {
		return m.MatchDate == matchDate && wanted[m.Status]
	}), nil
}

// collect assumes the read lock is held.
func (r *MatchRepository) collect(keep func(match.Match) bool) []match.Match {
	out := make([]match.Match, 0)
	for _, m := range r.byID {
		if keep(m) {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].KickoffAt.Equal(out[j].KickoffAt) {
			return out[i].KickoffAt.Before(out[j].KickoffAt)
		}
		return out[i].ExternalID < out[j].ExternalID
	})
	return out
}
