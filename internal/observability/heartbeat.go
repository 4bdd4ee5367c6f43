package observability

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/tribuneros/tribuneros-api/internal/config"
	"github.com/tribuneros/tribuneros-api/internal/platform/events"
	"github.com/tribuneros/tribuneros-api/internal/platform/logging"
)

const heartbeatTimeout = 10 * time.Second

// StartHeartbeat pings an uptime monitor URL every time a reconciliation
// pass completes. Returns a stop func; a no-op when no URL is configured.
func StartHeartbeat(cfg config.Config, bus *events.Bus, logger *logging.Logger) func() {
	if logger == nil {
		logger = logging.Default()
	}

	if cfg.HeartbeatURL == "" || bus == nil {
		logger.Info("heartbeat disabled", "reason", "HEARTBEAT_URL empty")
		return func() {}
	}

	sub, cancel := bus.Subscribe()
	done := make(chan struct{})

	client := &http.Client{Timeout: heartbeatTimeout}

	go func() {
		defer close(done)
		for event := range sub {
			pingHeartbeat(client, cfg.HeartbeatURL, logger, event)
		}
	}()

	logger.Info("heartbeat enabled", "url", cfg.HeartbeatURL)

	return func() {
		cancel()
		<-done
	}
}

func pingHeartbeat(client *http.Client, url string, logger *logging.Logger, event events.SyncCompleted) {
	ctx, cancel := context.WithTimeout(context.Background(), heartbeatTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		logger.Warn("heartbeat request build failed", "error", err)
		return
	}

	resp, err := client.Do(req)
	if err != nil {
		logger.Warn("heartbeat ping failed", "error", err, "synced_date", event.SyncedDate)
		return
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode >= http.StatusBadRequest {
		logger.Warn("heartbeat ping got non-2xx", "status", resp.StatusCode)
		return
	}

	logger.Debug("heartbeat ping sent", "synced_date", event.SyncedDate, "trigger", event.Trigger)
}
