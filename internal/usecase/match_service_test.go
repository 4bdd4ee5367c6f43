package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/tribuneros/tribuneros-api/internal/domain/match"
)

func seedMatch(t *testing.T, repo *fakeMatchRepo, externalID int64, matchDate, status string) {
	t.Helper()

	require.NoError(t, repo.Upsert(context.Background(), match.Match{
		ExternalID: externalID,
		MatchDate:  matchDate,
		KickoffAt:  time.Date(2024, 5, 1, 20, 0, 0, 0, time.UTC),
		Status:     status,
		HomeTeam:   "Home",
		AwayTeam:   "Away",
	}))
}

func TestMatchService_MatchesByDate(t *testing.T) {
	t.Parallel()

	repo := newFakeMatchRepo()
	seedMatch(t, repo, 1, "2024-05-01", "FT")
	seedMatch(t, repo, 2, "2024-05-01", "1H")
	seedMatch(t, repo, 3, "2024-05-02", "FT")

	service, err := NewMatchService(repo, nil)
	require.NoError(t, err)

	matches, err := service.MatchesByDate(context.Background(), "2024-05-01")
	require.NoError(t, err)
	require.Len(t, matches, 2)

	matches, err = service.MatchesByDate(context.Background(), "2024-05-09")
	require.NoError(t, err)
	require.Empty(t, matches)

	_, err = service.MatchesByDate(context.Background(), "01-05-2024")
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestMatchService_FinishedMatchesByDate(t *testing.T) {
	t.Parallel()

	repo := newFakeMatchRepo()
	seedMatch(t, repo, 1, "2024-05-01", "FT")
	seedMatch(t, repo, 2, "2024-05-01", "1H")
	seedMatch(t, repo, 3, "2024-05-01", "PEN")

	service, err := NewMatchService(repo, nil)
	require.NoError(t, err)

	matches, err := service.FinishedMatchesByDate(context.Background(), "2024-05-01")
	require.NoError(t, err)
	require.Len(t, matches, 2)
	for _, m := range matches {
		require.True(t, match.IsFinishedStatus(m.Status))
	}
}

func TestMatchService_MatchByExternalID(t *testing.T) {
	t.Parallel()

	repo := newFakeMatchRepo()
	seedMatch(t, repo, 7, "2024-05-01", "FT")

	service, err := NewMatchService(repo, nil)
	require.NoError(t, err)

	found, err := service.MatchByExternalID(context.Background(), 7)
	require.NoError(t, err)
	require.Equal(t, int64(7), found.ExternalID)

	_, err = service.MatchByExternalID(context.Background(), 8)
	require.ErrorIs(t, err, ErrNotFound)

	_, err = service.MatchByExternalID(context.Background(), -1)
	require.ErrorIs(t, err, ErrInvalidInput)
}
