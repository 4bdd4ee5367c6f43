package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/tribuneros/tribuneros-api/internal/domain/syncrun"
	qb "github.com/tribuneros/tribuneros-api/internal/platform/querybuilder"
)

type SyncRunRepository struct {
	db *sqlx.DB
}

func NewSyncRunRepository(db *sqlx.DB) *SyncRunRepository {
	return &SyncRunRepository{db: db}
}

func (r *SyncRunRepository) Record(ctx context.Context, run syncrun.Run) error {
	publicID := strings.TrimSpace(run.PublicID)
	if publicID == "" {
		return fmt.Errorf("sync run public id is required")
	}

	model := syncRunInsertModel{
		PublicID:    publicID,
		TriggerKind: run.Trigger,
		Dates:       pq.StringArray(run.Dates),
		Synced:      run.Synced,
		Skipped:     run.Skipped,
		Failed:      run.Failed,
		StartedAt:   run.StartedAt.UTC(),
		FinishedAt:  run.FinishedAt.UTC(),
		ErrorText:   run.ErrorText,
	}

	query, args, err := qb.InsertModel("sync_runs", model, "")
	if err != nil {
		return fmt.Errorf("build insert sync run query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert sync run public_id=%s: %w", publicID, err)
	}
	return nil
}

func (r *SyncRunRepository) ListRecent(ctx context.Context, limit int) ([]syncrun.Run, error) {
	if limit <= 0 {
		limit = 20
	}

	query, args, err := qb.Select("*").From("sync_runs").
		OrderBy("started_at DESC", "id DESC").
		Limit(limit).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select sync runs query: %w", err)
	}

	var rows []syncRunTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select sync runs: %w", err)
	}

	out := make([]syncrun.Run, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}
