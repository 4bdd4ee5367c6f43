package usecase

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/tribuneros/tribuneros-api/internal/domain/match"
	"github.com/tribuneros/tribuneros-api/internal/domain/syncrun"
)

const (
	backfillMaxRangeDays  = 60
	backfillMaxWorkers    = 4
	backfillTaskStatusOK  = "success"
	backfillTaskStatusErr = "failed"
)

type BackfillInput struct {
	FromDate   string `json:"from_date" validate:"required"`
	ToDate     string `json:"to_date" validate:"required"`
	MaxWorkers int    `json:"max_workers" validate:"omitempty,min=1,max=4"`
}

type BackfillTaskResult struct {
	Date       string `json:"date"`
	Status     string `json:"status"`
	Synced     int    `json:"synced"`
	Skipped    int    `json:"skipped"`
	Failed     int    `json:"failed"`
	Message    string `json:"message,omitempty"`
	DurationMs int64  `json:"duration_ms"`
}

type BackfillResult struct {
	TaskCount    int                  `json:"task_count"`
	SuccessCount int                  `json:"success_count"`
	FailedCount  int                  `json:"failed_count"`
	WorkerCount  int                  `json:"worker_count"`
	Tasks        []BackfillTaskResult `json:"tasks"`
}

// Backfill reconciles a closed date range with one worker-pool task per civil
// date. It takes the same single-pass slot as the daily sync, so it cannot
// overlap with a scheduled or forced pass.
func (s *SyncService) Backfill(ctx context.Context, input BackfillInput) (BackfillResult, error) {
	ctx, span := startUsecaseSpan(ctx, "SyncService.Backfill")
	defer span.End()

	dates, err := s.expandDateRange(input.FromDate, input.ToDate)
	if err != nil {
		return BackfillResult{}, err
	}

	s.mu.Lock()
	if s.syncing {
		s.mu.Unlock()
		return BackfillResult{}, ErrSyncInProgress
	}
	s.syncing = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.syncing = false
		s.mu.Unlock()
	}()

	workerCount := normalizeBackfillWorkerCount(input.MaxWorkers, len(dates))
	pool, err := ants.NewPool(workerCount)
	if err != nil {
		return BackfillResult{}, fmt.Errorf("%w: create worker pool: %v", ErrDependencyUnavailable, err)
	}
	defer pool.Release()

	startedAt := s.now()
	s.logger.InfoContext(ctx, "backfill started",
		"from_date", dates[0],
		"to_date", dates[len(dates)-1],
		"tasks", len(dates),
		"workers", workerCount,
	)

	var (
		workers      sync.WaitGroup
		successCount atomic.Int64
		failedCount  atomic.Int64
		results      = make(chan BackfillTaskResult, len(dates))
	)

	for _, date := range dates {
		date := date
		workers.Add(1)
		submitErr := pool.Submit(func() {
			defer workers.Done()
			task := s.backfillDate(ctx, date)
			if task.Status == backfillTaskStatusOK {
				successCount.Add(1)
			} else {
				failedCount.Add(1)
			}
			results <- task
		})
		if submitErr != nil {
			workers.Done()
			failedCount.Add(1)
			results <- BackfillTaskResult{
				Date:    date,
				Status:  backfillTaskStatusErr,
				Message: fmt.Sprintf("submit task: %v", submitErr),
			}
		}
	}

	workers.Wait()
	close(results)

	result := BackfillResult{
		TaskCount:    len(dates),
		SuccessCount: int(successCount.Load()),
		FailedCount:  int(failedCount.Load()),
		WorkerCount:  workerCount,
		Tasks:        make([]BackfillTaskResult, 0, len(dates)),
	}
	totals := SyncResult{Trigger: syncrun.TriggerBackfill, Dates: dates}
	for task := range results {
		result.Tasks = append(result.Tasks, task)
		totals.Synced += task.Synced
		totals.Skipped += task.Skipped
		totals.Failed += task.Failed
	}
	sort.Slice(result.Tasks, func(i, j int) bool {
		return result.Tasks[i].Date < result.Tasks[j].Date
	})

	finishedAt := s.now()
	errorText := ""
	if result.FailedCount > 0 {
		errorText = fmt.Sprintf("%d of %d dates failed", result.FailedCount, result.TaskCount)
	}
	s.recordRun(ctx, totals, startedAt, finishedAt, errorText)

	s.logger.InfoContext(ctx, "backfill finished",
		"tasks", result.TaskCount,
		"succeeded", result.SuccessCount,
		"failed", result.FailedCount,
		"duration_ms", finishedAt.Sub(startedAt).Milliseconds(),
	)
	return result, nil
}

// SyncLeagueSeason imports the full fixture list of one league season,
// upcoming fixtures included. Cancelled-like fixtures are skipped.
func (s *SyncService) SyncLeagueSeason(ctx context.Context, leagueID int64, season int) (SyncResult, error) {
	ctx, span := startUsecaseSpan(ctx, "SyncService.SyncLeagueSeason")
	defer span.End()

	if leagueID <= 0 {
		return SyncResult{}, fmt.Errorf("%w: league id must be positive", ErrInvalidInput)
	}
	if season < 2000 || season > 2100 {
		return SyncResult{}, fmt.Errorf("%w: season %d out of range", ErrInvalidInput, season)
	}

	s.mu.Lock()
	if s.syncing {
		s.mu.Unlock()
		return SyncResult{}, ErrSyncInProgress
	}
	s.syncing = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.syncing = false
		s.mu.Unlock()
	}()

	startedAt := s.now()
	result := SyncResult{Trigger: syncrun.TriggerBackfill, Dates: []string{fmt.Sprintf("league=%d season=%d", leagueID, season)}}

	fixtures, err := s.provider.FixturesByLeagueSeason(ctx, leagueID, season)
	if err != nil {
		return result, fmt.Errorf("fetch league %d season %d fixtures: %w", leagueID, season, err)
	}

	for _, fixture := range fixtures {
		if fixture.ExternalID <= 0 || match.IsCancelledLikeStatus(fixture.Status) {
			result.Skipped++
			continue
		}
		if err := s.matches.Upsert(ctx, s.toMatch(fixture, fixture.KickoffAt.In(s.loc).Format(civilDateLayout))); err != nil {
			result.Failed++
			s.logger.WarnContext(ctx, "match upsert failed",
				"external_id", fixture.ExternalID,
				"league_id", leagueID,
				"error", err,
			)
			continue
		}
		result.Synced++
	}

	finishedAt := s.now()
	result.DurationMs = finishedAt.Sub(startedAt).Milliseconds()
	s.recordRun(ctx, result, startedAt, finishedAt, "")
	return result, nil
}

// backfillDate syncs one historical date. Fixtures that were never played
// (not started or cancelled-like) are skipped the same way the daily pass
// skips them for today.
func (s *SyncService) backfillDate(ctx context.Context, date string) BackfillTaskResult {
	startedAt := s.now()
	partial := SyncResult{}

	err := s.syncDate(ctx, date, &partial, func(status string) bool {
		return !match.IsNotStartedStatus(status) && !match.IsCancelledLikeStatus(status)
	})

	task := BackfillTaskResult{
		Date:       date,
		Status:     backfillTaskStatusOK,
		Synced:     partial.Synced,
		Skipped:    partial.Skipped,
		Failed:     partial.Failed,
		DurationMs: s.now().Sub(startedAt).Milliseconds(),
	}
	if err != nil {
		task.Status = backfillTaskStatusErr
		task.Message = err.Error()
	}
	return task
}

func (s *SyncService) expandDateRange(fromDate, toDate string) ([]string, error) {
	from, err := time.ParseInLocation(civilDateLayout, fromDate, s.loc)
	if err != nil {
		return nil, fmt.Errorf("%w: from_date must be YYYY-MM-DD", ErrInvalidInput)
	}
	to, err := time.ParseInLocation(civilDateLayout, toDate, s.loc)
	if err != nil {
		return nil, fmt.Errorf("%w: to_date must be YYYY-MM-DD", ErrInvalidInput)
	}
	if to.Before(from) {
		return nil, fmt.Errorf("%w: to_date precedes from_date", ErrInvalidInput)
	}

	days := int(to.Sub(from).Hours()/24) + 1
	if days > backfillMaxRangeDays {
		return nil, fmt.Errorf("%w: range spans %d days, maximum is %d", ErrInvalidInput, days, backfillMaxRangeDays)
	}

	dates := make([]string, 0, days)
	for cursor := from; !cursor.After(to); cursor = cursor.AddDate(0, 0, 1) {
		dates = append(dates, cursor.Format(civilDateLayout))
	}
	return dates, nil
}

func normalizeBackfillWorkerCount(requested, taskCount int) int {
	count := requested
	if count <= 0 {
		count = 2
	}
	if count > backfillMaxWorkers {
		count = backfillMaxWorkers
	}
	if taskCount > 0 && count > taskCount {
		count = taskCount
	}
	return count
}
