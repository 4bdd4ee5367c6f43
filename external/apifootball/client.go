package apifootball

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/valyala/bytebufferpool"

	"github.com/tribuneros/tribuneros-api/internal/platform/cache"
	"github.com/tribuneros/tribuneros-api/internal/platform/logging"
	"github.com/tribuneros/tribuneros-api/internal/platform/resilience"
	"github.com/tribuneros/tribuneros-api/internal/usecase"
)

const (
	defaultBaseURL     = "https://v3.football.api-sports.io"
	defaultCacheWindow = 5 * time.Minute
	apiKeyHeader       = "x-apisports-key"
	maxResponseBytes   = 6 << 20
)

var errProviderTransient = crerr.New("fixtures provider transient failure")

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	APIKey         string
	Timeout        time.Duration
	MaxRetries     int
	CacheWindow    time.Duration
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client queries the fixtures provider through a short-TTL memoization
// layer. Lookups never surface provider failures: when the call cannot be
// completed (or no API key is configured) a fixed sample payload is returned
// instead, the failure is logged, and nothing is cached so the next call
// retries.
type Client struct {
	httpClient     *http.Client
	baseURL        string
	apiKey         string
	maxRetries     int
	logger         *logging.Logger
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
	store          *cache.Store
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = 20 * time.Second
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	window := cfg.CacheWindow
	if window <= 0 {
		window = defaultCacheWindow
	}

	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)

	return &Client{
		httpClient:     httpClient,
		baseURL:        baseURL,
		apiKey:         strings.TrimSpace(cfg.APIKey),
		maxRetries:     maxInt(cfg.MaxRetries, 0),
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(breakerCfg.FailureThreshold, breakerCfg.OpenTimeout, breakerCfg.HalfOpenMaxReq),
		circuitEnabled: breakerCfg.Enabled,
		store:          cache.NewStore(window),
	}
}

// FixturesByDate returns every fixture the provider reports for a civil date
// (YYYY-MM-DD).
func (c *Client) FixturesByDate(ctx context.Context, date string) ([]usecase.ExternalFixture, error) {
	query := url.Values{}
	query.Set("date", strings.TrimSpace(date))
	return c.fixtures(ctx, query)
}

// FixturesByLeagueSeason returns every fixture for one league and season.
func (c *Client) FixturesByLeagueSeason(ctx context.Context, leagueID int64, season int) ([]usecase.ExternalFixture, error) {
	query := url.Values{}
	query.Set("league", strconv.FormatInt(leagueID, 10))
	query.Set("season", strconv.Itoa(season))
	return c.fixtures(ctx, query)
}

func (c *Client) fixtures(ctx context.Context, query url.Values) ([]usecase.ExternalFixture, error) {
	// Encode sorts parameters, so logically identical queries share a key.
	key := "/fixtures?" + query.Encode()

	out, err := c.store.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		return c.loadFixtures(ctx, query)
	})
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		c.logger.WarnContext(ctx, "fixtures fetch failed, serving sample payload",
			"query", query.Encode(),
			"error", err,
		)
		return sampleFixtures(), nil
	}

	fixtures, ok := out.([]usecase.ExternalFixture)
	if !ok {
		return nil, fmt.Errorf("unexpected cached payload type %T", out)
	}
	return fixtures, nil
}

func (c *Client) loadFixtures(ctx context.Context, query url.Values) ([]usecase.ExternalFixture, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("%w: no API key configured", errProviderTransient)
	}

	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "fixtures provider circuit breaker rejected request", "state", c.breaker.State())
			return nil, fmt.Errorf("%w: circuit open", errProviderTransient)
		}
	}

	fullURL := c.baseURL + "/fixtures"
	if encoded := query.Encode(); encoded != "" {
		fullURL += "?" + encoded
	}
	c.logger.DebugContext(ctx, "fixtures provider request", "curl", buildCurlPreview(fullURL))

	raw, err := c.executeRequest(ctx, fullURL)
	if c.circuitEnabled {
		if err != nil && crerr.Is(err, errProviderTransient) {
			c.breaker.RecordFailure()
		} else {
			c.breaker.RecordSuccess()
		}
	}
	if err != nil {
		return nil, err
	}

	var envelope fixturesEnvelope
	if err := sonic.Unmarshal(raw, &envelope); err != nil {
		return nil, fmt.Errorf("decode provider payload: %w", err)
	}

	fixtures := make([]usecase.ExternalFixture, 0, len(envelope.Response))
	for _, item := range envelope.Response {
		if item.Fixture.ID <= 0 {
			continue
		}
		fixtures = append(fixtures, mapFixtureItem(item))
	}
	return fixtures, nil
}

func (c *Client) executeRequest(ctx context.Context, fullURL string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}
		req.Header.Set("accept", "application/json")
		req.Header.Set(apiKeyHeader, c.apiKey)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("%w: send request: %s", errProviderTransient, sanitizeSensitiveText(err.Error(), c.apiKey))
		} else {
			raw, readErr := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
			_ = resp.Body.Close()
			switch {
			case readErr != nil:
				lastErr = fmt.Errorf("%w: read response body: %v", errProviderTransient, readErr)
			case resp.StatusCode >= 200 && resp.StatusCode < 300:
				return raw, nil
			case isRetryableStatus(resp.StatusCode):
				lastErr = fmt.Errorf("%w: provider status=%d body=%s", errProviderTransient, resp.StatusCode, abbreviateBody(raw))
			default:
				return nil, fmt.Errorf("provider status=%d body=%s", resp.StatusCode, abbreviateBody(raw))
			}
		}

		if attempt == c.maxRetries {
			break
		}
		backoff := time.Duration(attempt+1) * time.Second
		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("%w: request failed", errProviderTransient)
	}
	return nil, lastErr
}

func buildCurlPreview(fullURL string) string {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	_, _ = buf.WriteString("curl -sS -H '")
	_, _ = buf.WriteString(apiKeyHeader)
	_, _ = buf.WriteString(": REDACTED' '")
	_, _ = buf.WriteString(fullURL)
	_, _ = buf.WriteString("'")
	return buf.String()
}

func sanitizeSensitiveText(value, secret string) string {
	value = strings.TrimSpace(value)
	if value == "" || secret == "" {
		return value
	}
	return strings.ReplaceAll(value, secret, "REDACTED")
}

func isRetryableStatus(status int) bool {
	switch status {
	case http.StatusRequestTimeout,
		http.StatusTooManyRequests,
		http.StatusInternalServerError,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true
	default:
		return false
	}
}

func abbreviateBody(raw []byte) string {
	const limit = 256
	body := strings.TrimSpace(string(raw))
	if len(body) <= limit {
		return body
	}
	return body[:limit] + "..."
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
