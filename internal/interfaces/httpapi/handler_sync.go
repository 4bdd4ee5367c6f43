package httpapi

import (
	"fmt"
	"net/http"
	"time"

	sonic "github.com/bytedance/sonic"

	"github.com/tribuneros/tribuneros-api/internal/domain/syncrun"
	"github.com/tribuneros/tribuneros-api/internal/usecase"
)

type forceSyncResponseDTO struct {
	Message   string             `json:"message"`
	Result    usecase.SyncResult `json:"result"`
	Status    usecase.SyncStatus `json:"status"`
	Timestamp string             `json:"timestamp"`
}

type backfillRequest struct {
	FromDate   string `json:"from_date" validate:"required,datetime=2006-01-02"`
	ToDate     string `json:"to_date" validate:"required,datetime=2006-01-02"`
	MaxWorkers int    `json:"max_workers" validate:"omitempty,min=1,max=4"`
}

type syncLeagueSeasonRequest struct {
	LeagueID int64 `json:"league_id" validate:"required,gt=0"`
	Season   int   `json:"season" validate:"required,min=2000,max=2100"`
}

type syncRunDTO struct {
	ID            string   `json:"id"`
	Trigger       string   `json:"trigger"`
	Dates         []string `json:"dates"`
	Synced        int      `json:"synced"`
	Skipped       int      `json:"skipped"`
	Failed        int      `json:"failed"`
	StartedAtUTC  string   `json:"started_at_utc"`
	FinishedAtUTC string   `json:"finished_at_utc"`
	Error         string   `json:"error,omitempty"`
}

func (h *Handler) ForceSync(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ForceSync")
	defer span.End()

	result, err := h.syncService.ForceSyncNow(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "forced sync failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusAccepted, forceSyncResponseDTO{
		Message:   "sync completed",
		Result:    result,
		Status:    h.syncService.Status(),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

func (h *Handler) SyncStatus(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SyncStatus")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, h.syncService.Status())
}

func (h *Handler) ListSyncRuns(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListSyncRuns")
	defer span.End()

	runs, err := h.syncService.RecentRuns(ctx, parseIntQuery(r.URL.Query().Get("limit")))
	if err != nil {
		h.logger.WarnContext(ctx, "list sync runs failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]syncRunDTO, 0, len(runs))
	for _, run := range runs {
		items = append(items, syncRunToDTO(run))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) RunBackfill(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunBackfill")
	defer span.End()

	var req backfillRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.syncService.Backfill(ctx, usecase.BackfillInput{
		FromDate:   req.FromDate,
		ToDate:     req.ToDate,
		MaxWorkers: req.MaxWorkers,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "backfill failed", "from_date", req.FromDate, "to_date", req.ToDate, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, result)
}

func (h *Handler) SyncLeagueSeason(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SyncLeagueSeason")
	defer span.End()

	var req syncLeagueSeasonRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.syncService.SyncLeagueSeason(ctx, req.LeagueID, req.Season)
	if err != nil {
		h.logger.WarnContext(ctx, "league season sync failed", "league_id", req.LeagueID, "season", req.Season, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, result)
}

func syncRunToDTO(run syncrun.Run) syncRunDTO {
	return syncRunDTO{
		ID:            run.PublicID,
		Trigger:       run.Trigger,
		Dates:         append([]string(nil), run.Dates...),
		Synced:        run.Synced,
		Skipped:       run.Skipped,
		Failed:        run.Failed,
		StartedAtUTC:  run.StartedAt.UTC().Format(time.RFC3339),
		FinishedAtUTC: run.FinishedAt.UTC().Format(time.RFC3339),
		Error:         run.ErrorText,
	}
}

func parseIntQuery(value string) int {
	var parsed int
	_, err := fmt.Sscanf(value, "%d", &parsed)
	if err != nil {
		return 0
	}
	return parsed
}
