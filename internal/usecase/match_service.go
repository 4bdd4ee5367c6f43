package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/tribuneros/tribuneros-api/internal/domain/match"
	"github.com/tribuneros/tribuneros-api/internal/platform/logging"
)

// MatchService serves reads from the local store only. It never talks to the
// fixtures provider; the sync controller keeps the store current.
type MatchService struct {
	matches match.Repository
	logger  *logging.Logger
}

func NewMatchService(matches match.Repository, logger *logging.Logger) (*MatchService, error) {
	if matches == nil {
		return nil, fmt.Errorf("%w: match repository is required", ErrInvalidInput)
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &MatchService{matches: matches, logger: logger}, nil
}

// MatchesByDate lists every stored match for one civil date, live and
// finished alike. An empty day yields an empty slice, not an error.
func (s *MatchService) MatchesByDate(ctx context.Context, date string) ([]match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "MatchService.MatchesByDate")
	defer span.End()

	if _, err := time.Parse(civilDateLayout, date); err != nil {
		return nil, fmt.Errorf("%w: date must be YYYY-MM-DD", ErrInvalidInput)
	}

	matches, err := s.matches.ListByDate(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("list matches for %s: %w", date, err)
	}
	return matches, nil
}

// FinishedMatchesByDate lists only matches with a final result for one civil
// date.
func (s *MatchService) FinishedMatchesByDate(ctx context.Context, date string) ([]match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "MatchService.FinishedMatchesByDate")
	defer span.End()

	if _, err := time.Parse(civilDateLayout, date); err != nil {
		return nil, fmt.Errorf("%w: date must be YYYY-MM-DD", ErrInvalidInput)
	}

	matches, err := s.matches.ListByDateAndStatuses(ctx, date, match.FinishedStatuses())
	if err != nil {
		return nil, fmt.Errorf("list finished matches for %s: %w", date, err)
	}
	return matches, nil
}

// MatchByExternalID fetches one match by the provider's fixture id.
func (s *MatchService) MatchByExternalID(ctx context.Context, externalID int64) (match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "MatchService.MatchByExternalID")
	defer span.End()

	if externalID <= 0 {
		return match.Match{}, fmt.Errorf("%w: match id must be positive", ErrInvalidInput)
	}

	found, err := s.matches.GetByExternalID(ctx, externalID)
	if err != nil {
		if errors.Is(err, match.ErrNotFound) {
			return match.Match{}, fmt.Errorf("%w: match %d", ErrNotFound, externalID)
		}
		return match.Match{}, fmt.Errorf("get match %d: %w", externalID, err)
	}
	return found, nil
}
