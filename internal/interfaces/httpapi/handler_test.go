package httpapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/stretchr/testify/require"

	"github.com/tribuneros/tribuneros-api/internal/infrastructure/repository/memory"
	"github.com/tribuneros/tribuneros-api/internal/usecase"
)

const testSyncToken = "test-sync-token"

type stubProvider struct {
	fixtures []usecase.ExternalFixture
}

func (p *stubProvider) FixturesByDate(ctx context.Context, date string) ([]usecase.ExternalFixture, error) {
	return p.fixtures, nil
}

func (p *stubProvider) FixturesByLeagueSeason(ctx context.Context, leagueID int64, season int) ([]usecase.ExternalFixture, error) {
	return p.fixtures, nil
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	matchRepo := memory.NewMatchRepository(memory.SeedMatches())
	matchService, err := usecase.NewMatchService(matchRepo, nil)
	require.NoError(t, err)

	syncService, err := usecase.NewSyncService(usecase.SyncServiceConfig{
		Provider: &stubProvider{},
		Matches:  matchRepo,
		Runs:     memory.NewSyncRunRepository(),
		Now:      func() time.Time { return time.Date(2024, 5, 2, 12, 0, 0, 0, time.UTC) },
	})
	require.NoError(t, err)

	handler := NewHandler(matchService, syncService, nil, nil)
	return NewRouter(handler, nil, []string{"*"}, testSyncToken)
}

func doRequest(t *testing.T, router http.Handler, method, target, token, body string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	request := httptest.NewRequest(method, target, reader)
	if token != "" {
		request.Header.Set("Authorization", "Bearer "+token)
	}
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)
	return recorder
}

func TestRouter_HealthAndReady(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)

	require.Equal(t, http.StatusOK, doRequest(t, router, http.MethodGet, "/health", "", "").Code)
	require.Equal(t, http.StatusOK, doRequest(t, router, http.MethodGet, "/ready", "", "").Code)
}

func TestRouter_ListMatchesByDate(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)

	recorder := doRequest(t, router, http.MethodGet, "/api/v1/matches?date=2024-05-01", "", "")
	require.Equal(t, http.StatusOK, recorder.Code)

	var envelope struct {
		Data []matchDTO `json:"data"`
	}
	require.NoError(t, sonic.Unmarshal(recorder.Body.Bytes(), &envelope))
	require.Len(t, envelope.Data, 2)
	require.Equal(t, "2024-05-01", envelope.Data[0].Date)

	recorder = doRequest(t, router, http.MethodGet, "/api/v1/matches?date=yesterday", "", "")
	require.Equal(t, http.StatusBadRequest, recorder.Code)

	recorder = doRequest(t, router, http.MethodGet, "/api/v1/matches", "", "")
	require.Equal(t, http.StatusBadRequest, recorder.Code, "missing date parameter")
}

func TestRouter_GetMatchByExternalID(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)

	recorder := doRequest(t, router, http.MethodGet, "/api/v1/matches/900001", "", "")
	require.Equal(t, http.StatusOK, recorder.Code)

	var envelope struct {
		Data matchDTO `json:"data"`
	}
	require.NoError(t, sonic.Unmarshal(recorder.Body.Bytes(), &envelope))
	require.Equal(t, int64(900001), envelope.Data.ID)
	require.Equal(t, "River Plate", envelope.Data.HomeTeam)

	require.Equal(t, http.StatusNotFound, doRequest(t, router, http.MethodGet, "/api/v1/matches/123456", "", "").Code)
	require.Equal(t, http.StatusBadRequest, doRequest(t, router, http.MethodGet, "/api/v1/matches/not-a-number", "", "").Code)
}

func TestRouter_InternalSyncRequiresToken(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)

	require.Equal(t, http.StatusUnauthorized, doRequest(t, router, http.MethodPost, "/api/v1/internal/sync", "", "").Code)
	require.Equal(t, http.StatusUnauthorized, doRequest(t, router, http.MethodPost, "/api/v1/internal/sync", "wrong", "").Code)
	require.Equal(t, http.StatusUnauthorized, doRequest(t, router, http.MethodGet, "/api/v1/internal/sync", "", "").Code)
}

func TestRouter_ForceSyncAndStatus(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)

	recorder := doRequest(t, router, http.MethodPost, "/api/v1/internal/sync", testSyncToken, "")
	require.Equal(t, http.StatusAccepted, recorder.Code)

	var forceEnvelope struct {
		Data forceSyncResponseDTO `json:"data"`
	}
	require.NoError(t, sonic.Unmarshal(recorder.Body.Bytes(), &forceEnvelope))
	require.Equal(t, "sync completed", forceEnvelope.Data.Message)
	require.Equal(t, "2024-05-02", forceEnvelope.Data.Status.LastSyncDate)

	recorder = doRequest(t, router, http.MethodGet, "/api/v1/internal/sync", testSyncToken, "")
	require.Equal(t, http.StatusOK, recorder.Code)

	var statusEnvelope struct {
		Data usecase.SyncStatus `json:"data"`
	}
	require.NoError(t, sonic.Unmarshal(recorder.Body.Bytes(), &statusEnvelope))
	require.Equal(t, "2024-05-02", statusEnvelope.Data.LastSyncDate)
	require.False(t, statusEnvelope.Data.IsSyncing)

	recorder = doRequest(t, router, http.MethodGet, "/api/v1/internal/sync/runs", testSyncToken, "")
	require.Equal(t, http.StatusOK, recorder.Code)
}

func TestRouter_Backfill(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)

	recorder := doRequest(t, router, http.MethodPost, "/api/v1/internal/sync/backfill", testSyncToken,
		`{"from_date":"2024-04-28","to_date":"2024-04-30","max_workers":2}`)
	require.Equal(t, http.StatusOK, recorder.Code)

	var envelope struct {
		Data usecase.BackfillResult `json:"data"`
	}
	require.NoError(t, sonic.Unmarshal(recorder.Body.Bytes(), &envelope))
	require.Equal(t, 3, envelope.Data.TaskCount)
	require.Equal(t, 3, envelope.Data.SuccessCount)

	recorder = doRequest(t, router, http.MethodPost, "/api/v1/internal/sync/backfill", testSyncToken,
		`{"from_date":"2024-04-28"}`)
	require.Equal(t, http.StatusBadRequest, recorder.Code)

	recorder = doRequest(t, router, http.MethodPost, "/api/v1/internal/sync/backfill", testSyncToken,
		`{"from_date":"2024-04-28","to_date":"2024-04-30","unknown_field":true}`)
	require.Equal(t, http.StatusBadRequest, recorder.Code)
}
