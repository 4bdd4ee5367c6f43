package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/sourcegraph/conc"

	"github.com/tribuneros/tribuneros-api/internal/domain/match"
	"github.com/tribuneros/tribuneros-api/internal/domain/syncrun"
	"github.com/tribuneros/tribuneros-api/internal/platform/events"
	"github.com/tribuneros/tribuneros-api/internal/platform/id"
	"github.com/tribuneros/tribuneros-api/internal/platform/logging"
)

const (
	defaultSyncInterval = time.Hour
	civilDateLayout     = "2006-01-02"
)

var ErrSchedulerAlreadyStarted = errors.New("sync scheduler already started")

// SyncResult summarizes one reconciliation pass.
type SyncResult struct {
	Trigger    string   `json:"trigger"`
	Dates      []string `json:"dates"`
	Synced     int      `json:"synced"`
	Skipped    int      `json:"skipped"`
	Failed     int      `json:"failed"`
	DurationMs int64    `json:"duration_ms"`
}

// SyncStatus is a point-in-time snapshot of the controller.
type SyncStatus struct {
	LastSyncDate string     `json:"last_sync_date"`
	IsRunning    bool       `json:"is_running"`
	IsSyncing    bool       `json:"is_syncing"`
	LastRunAt    *time.Time `json:"last_run_at,omitempty"`
	LastError    string     `json:"last_error,omitempty"`
}

type SyncServiceConfig struct {
	Provider FixtureProvider
	Matches  match.Repository
	Runs     syncrun.Repository // optional, audit only
	Bus      *events.Bus        // optional
	Logger   *logging.Logger
	IDGen    id.Generator
	Interval time.Duration
	Location *time.Location
	Now      func() time.Time
}

// SyncService reconciles stored matches against the fixtures provider. Each
// pass covers yesterday (final results only) and today (everything already
// under way or finished). One pass runs at a time; overlapping triggers are
// rejected, never queued.
type SyncService struct {
	provider FixtureProvider
	matches  match.Repository
	runs     syncrun.Repository
	bus      *events.Bus
	logger   *logging.Logger
	idGen    id.Generator
	interval time.Duration
	loc      *time.Location
	now      func() time.Time

	mu           sync.Mutex
	running      bool
	syncing      bool
	lastSyncDate string
	lastRunAt    time.Time
	lastError    string
	stop         chan struct{}
	loops        conc.WaitGroup
}

func NewSyncService(cfg SyncServiceConfig) (*SyncService, error) {
	if cfg.Provider == nil {
		return nil, fmt.Errorf("%w: fixture provider is required", ErrInvalidInput)
	}
	if cfg.Matches == nil {
		return nil, fmt.Errorf("%w: match repository is required", ErrInvalidInput)
	}

	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	idGen := cfg.IDGen
	if idGen == nil {
		idGen = id.NewRandomGenerator()
	}
	interval := cfg.Interval
	if interval <= 0 {
		interval = defaultSyncInterval
	}
	loc := cfg.Location
	if loc == nil {
		loc = time.UTC
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	return &SyncService{
		provider: cfg.Provider,
		matches:  cfg.Matches,
		runs:     cfg.Runs,
		bus:      cfg.Bus,
		logger:   logger,
		idGen:    idGen,
		interval: interval,
		loc:      loc,
		now:      now,
	}, nil
}

// Start runs one pass immediately, then keeps a single ticker loop alive
// until Stop. Calling Start on a running scheduler is an error; it never
// spawns a second loop.
func (s *SyncService) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return ErrSchedulerAlreadyStarted
	}
	s.running = true
	s.stop = make(chan struct{})
	stop := s.stop
	s.mu.Unlock()

	if _, err := s.runPass(ctx, syncrun.TriggerScheduled); err != nil {
		// The scheduler still starts; the next tick retries.
		s.logger.WarnContext(ctx, "initial sync pass failed", "error", err)
	}

	s.loops.Go(func() {
		s.loop(ctx, stop)
	})

	s.logger.InfoContext(ctx, "sync scheduler started", "interval", s.interval.String())
	return nil
}

// Stop halts the ticker loop and waits for it. An in-flight pass is allowed
// to finish; Stop on a stopped scheduler is a no-op.
func (s *SyncService) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	close(s.stop)
	s.mu.Unlock()

	s.loops.Wait()
	s.logger.Info("sync scheduler stopped")
}

// ForceSyncNow runs a full pass regardless of lastSyncDate. It fails with
// ErrSyncInProgress while another pass holds the slot.
func (s *SyncService) ForceSyncNow(ctx context.Context) (SyncResult, error) {
	ctx, span := startUsecaseSpan(ctx, "SyncService.ForceSyncNow")
	defer span.End()

	return s.runPass(ctx, syncrun.TriggerForced)
}

// Status returns a consistent snapshot of the controller state.
func (s *SyncService) Status() SyncStatus {
	s.mu.Lock()
	defer s.mu.Unlock()

	status := SyncStatus{
		LastSyncDate: s.lastSyncDate,
		IsRunning:    s.running,
		IsSyncing:    s.syncing,
		LastError:    s.lastError,
	}
	if !s.lastRunAt.IsZero() {
		at := s.lastRunAt
		status.LastRunAt = &at
	}
	return status
}

// RecentRuns lists the latest recorded reconciliation passes, newest first.
func (s *SyncService) RecentRuns(ctx context.Context, limit int) ([]syncrun.Run, error) {
	ctx, span := startUsecaseSpan(ctx, "SyncService.RecentRuns")
	defer span.End()

	if s.runs == nil {
		return nil, nil
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	runs, err := s.runs.ListRecent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("list recent sync runs: %w", err)
	}
	return runs, nil
}

func (s *SyncService) loop(ctx context.Context, stop <-chan struct{}) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			today := s.now().In(s.loc).Format(civilDateLayout)
			s.mu.Lock()
			done := s.lastSyncDate == today
			s.mu.Unlock()
			if done {
				continue
			}
			if _, err := s.runPass(ctx, syncrun.TriggerScheduled); err != nil {
				s.logger.WarnContext(ctx, "scheduled sync pass failed", "error", err)
			}
		}
	}
}

// runPass takes the single-pass slot, runs the reconciliation, and releases
// the slot. A concurrent caller gets ErrSyncInProgress instead of queueing.
func (s *SyncService) runPass(ctx context.Context, trigger string) (SyncResult, error) {
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

	return s.performDailySync(ctx, trigger)
}

func (s *SyncService) performDailySync(ctx context.Context, trigger string) (SyncResult, error) {
	startedAt := s.now()
	local := startedAt.In(s.loc)
	today := local.Format(civilDateLayout)
	yesterday := local.AddDate(0, 0, -1).Format(civilDateLayout)

	result := SyncResult{Trigger: trigger, Dates: []string{yesterday, today}}

	s.logger.InfoContext(ctx, "sync pass started", "trigger", trigger, "yesterday", yesterday, "today", today)

	err := s.syncDate(ctx, yesterday, &result, func(status string) bool {
		return match.IsFinishedStatus(status)
	})
	if err == nil {
		err = s.syncDate(ctx, today, &result, func(status string) bool {
			return !match.IsNotStartedStatus(status) && !match.IsCancelledLikeStatus(status)
		})
	}

	finishedAt := s.now()
	result.DurationMs = finishedAt.Sub(startedAt).Milliseconds()

	if err != nil {
		// lastSyncDate stays put so the next tick retries the whole pass.
		s.mu.Lock()
		s.lastRunAt = finishedAt
		s.lastError = err.Error()
		s.mu.Unlock()

		s.recordRun(ctx, result, startedAt, finishedAt, err.Error())
		return result, err
	}

	s.mu.Lock()
	s.lastSyncDate = today
	s.lastRunAt = finishedAt
	s.lastError = ""
	s.mu.Unlock()

	if s.bus != nil {
		s.bus.Publish(events.SyncCompleted{SyncedDate: today, Trigger: trigger, OccurredAt: finishedAt})
	}
	s.recordRun(ctx, result, startedAt, finishedAt, "")

	s.logger.InfoContext(ctx, "sync pass finished",
		"trigger", trigger,
		"synced", result.Synced,
		"skipped", result.Skipped,
		"failed", result.Failed,
		"duration_ms", result.DurationMs,
	)
	return result, nil
}

// syncDate fetches one civil date and upserts the fixtures that pass the
// filter. A fetch error fails the date; a single bad record only bumps the
// failed counter.
func (s *SyncService) syncDate(ctx context.Context, date string, result *SyncResult, keep func(status string) bool) error {
	fixtures, err := s.provider.FixturesByDate(ctx, date)
	if err != nil {
		return fmt.Errorf("fetch fixtures for %s: %w", date, err)
	}

	for _, fixture := range fixtures {
		if fixture.ExternalID <= 0 || !keep(fixture.Status) {
			result.Skipped++
			continue
		}
		if err := s.matches.Upsert(ctx, s.toMatch(fixture, date)); err != nil {
			result.Failed++
			s.logger.WarnContext(ctx, "match upsert failed",
				"external_id", fixture.ExternalID,
				"match_date", date,
				"error", err,
			)
			continue
		}
		result.Synced++
	}
	return nil
}

func (s *SyncService) toMatch(fixture ExternalFixture, fallbackDate string) match.Match {
	matchDate := fallbackDate
	if !fixture.KickoffAt.IsZero() {
		matchDate = fixture.KickoffAt.In(s.loc).Format(civilDateLayout)
	}

	now := s.now()
	return match.Match{
		ExternalID:   fixture.ExternalID,
		MatchDate:    matchDate,
		KickoffAt:    fixture.KickoffAt,
		Status:       match.NormalizeStatus(fixture.Status),
		Elapsed:      fixture.Elapsed,
		HomeTeamID:   fixture.HomeTeamID,
		HomeTeam:     fixture.HomeTeam,
		HomeCrestURL: fixture.HomeCrestURL,
		AwayTeamID:   fixture.AwayTeamID,
		AwayTeam:     fixture.AwayTeam,
		AwayCrestURL: fixture.AwayCrestURL,
		HomeGoals:    fixture.HomeGoals,
		AwayGoals:    fixture.AwayGoals,
		LeagueID:     fixture.LeagueID,
		LeagueName:   fixture.LeagueName,
		Season:       fixture.Season,
		Round:        fixture.Round,
		VenueName:    fixture.VenueName,
		VenueCity:    fixture.VenueCity,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func (s *SyncService) recordRun(ctx context.Context, result SyncResult, startedAt, finishedAt time.Time, errorText string) {
	if s.runs == nil {
		return
	}

	publicID, err := s.idGen.NewID()
	if err != nil {
		s.logger.WarnContext(ctx, "generate sync run id failed", "error", err)
		return
	}

	run := syncrun.Run{
		PublicID:   publicID,
		Trigger:    result.Trigger,
		Dates:      result.Dates,
		Synced:     result.Synced,
		Skipped:    result.Skipped,
		Failed:     result.Failed,
		StartedAt:  startedAt,
		FinishedAt: finishedAt,
		ErrorText:  errorText,
	}
	if err := s.runs.Record(ctx, run); err != nil {
		s.logger.WarnContext(ctx, "record sync run failed", "error", err)
	}
}
