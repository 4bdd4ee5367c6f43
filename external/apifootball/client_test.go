package apifootball

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/tribuneros/tribuneros-api/internal/platform/resilience"
)

const fixturesByDateBody = `{
	"response": [
		{
			"fixture": {
				"id": 1100,
				"date": "2024-05-01T20:00:00+00:00",
				"status": {"short": "FT", "elapsed": 90},
				"venue": {"name": "Estadio Monumental", "city": "Buenos Aires"}
			},
			"league": {"id": 128, "name": "Liga Profesional Argentina", "season": 2024, "round": "Regular Season - 14"},
			"teams": {
				"home": {"id": 435, "name": "River Plate", "logo": "https://media.api-sports.io/football/teams/435.png"},
				"away": {"id": 434, "name": "Racing Club", "logo": "https://media.api-sports.io/football/teams/434.png"}
			},
			"goals": {"home": 2, "away": 1}
		},
		{
			"fixture": {
				"id": 1101,
				"date": "2024-05-01T22:00:00+00:00",
				"status": {"short": "NS", "elapsed": null},
				"venue": {"name": null, "city": null}
			},
			"league": {"id": 128, "name": "Liga Profesional Argentina", "season": 2024, "round": "Regular Season - 14"},
			"teams": {
				"home": {"id": 451, "name": "Boca Juniors", "logo": ""},
				"away": {"id": 437, "name": "San Lorenzo", "logo": ""}
			},
			"goals": {"home": null, "away": null}
		}
	]
}`

func newTestClient(t *testing.T, handler http.HandlerFunc, apiKey string, window time.Duration) (*Client, *atomic.Int32) {
	t.Helper()

	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		handler(w, r)
	}))
	t.Cleanup(server.Close)

	client := NewClient(ClientConfig{
		HTTPClient:     server.Client(),
		BaseURL:        server.URL,
		APIKey:         apiKey,
		CacheWindow:    window,
		CircuitBreaker: resilience.CircuitBreakerConfig{Enabled: false},
	})
	return client, &calls
}

func TestClient_FixturesByDate_SecondCallWithinWindowSkipsNetwork(t *testing.T) {
	t.Parallel()

	client, calls := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "secret-key", r.Header.Get(apiKeyHeader))
		_, _ = w.Write([]byte(fixturesByDateBody))
	}, "secret-key", 5*time.Minute)

	first, err := client.FixturesByDate(context.Background(), "2024-05-01")
	require.NoError(t, err)
	second, err := client.FixturesByDate(context.Background(), "2024-05-01")
	require.NoError(t, err)

	require.Equal(t, int32(1), calls.Load())
	require.Equal(t, first, second)

	require.Len(t, first, 2)
	require.Equal(t, int64(1100), first[0].ExternalID)
	require.Equal(t, "FT", first[0].Status)
	require.NotNil(t, first[0].HomeGoals)
	require.Equal(t, 2, *first[0].HomeGoals)
	require.Equal(t, "NS", first[1].Status)
	require.Nil(t, first[1].HomeGoals)
	require.Empty(t, first[1].VenueName)
}

func TestClient_FixturesByDate_ExpiredWindowRefetches(t *testing.T) {
	t.Parallel()

	client, calls := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(fixturesByDateBody))
	}, "secret-key", 30*time.Millisecond)

	_, err := client.FixturesByDate(context.Background(), "2024-05-01")
	require.NoError(t, err)

	time.Sleep(60 * time.Millisecond)

	_, err = client.FixturesByDate(context.Background(), "2024-05-01")
	require.NoError(t, err)
	require.Equal(t, int32(2), calls.Load())
}

func TestClient_FixturesByDate_NoAPIKeyServesSampleWithoutNetwork(t *testing.T) {
	t.Parallel()

	client, calls := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(fixturesByDateBody))
	}, "", 5*time.Minute)

	fixtures, err := client.FixturesByDate(context.Background(), "2024-05-01")
	require.NoError(t, err)
	require.Equal(t, sampleFixtures(), fixtures)
	require.Equal(t, int32(0), calls.Load())
}

func TestClient_FixturesByDate_ProviderFailureServesSampleAndIsNotCached(t *testing.T) {
	t.Parallel()

	client, calls := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}, "secret-key", 5*time.Minute)

	fixtures, err := client.FixturesByDate(context.Background(), "2024-05-01")
	require.NoError(t, err)
	require.Equal(t, sampleFixtures(), fixtures)

	// A failed call stores nothing, so the next one retries the provider.
	_, err = client.FixturesByDate(context.Background(), "2024-05-01")
	require.NoError(t, err)
	require.Equal(t, int32(2), calls.Load())
}

func TestClient_FixturesByLeagueSeason_UsesCanonicalKey(t *testing.T) {
	t.Parallel()

	client, calls := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "128", r.URL.Query().Get("league"))
		require.Equal(t, "2024", r.URL.Query().Get("season"))
		_, _ = w.Write([]byte(fixturesByDateBody))
	}, "secret-key", 5*time.Minute)

	_, err := client.FixturesByLeagueSeason(context.Background(), 128, 2024)
	require.NoError(t, err)
	_, err = client.FixturesByLeagueSeason(context.Background(), 128, 2024)
	require.NoError(t, err)
	require.Equal(t, int32(1), calls.Load())
}
