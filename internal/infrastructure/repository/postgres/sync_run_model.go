package postgres

import (
	"time"

	"github.com/lib/pq"

	"github.com/tribuneros/tribuneros-api/internal/domain/syncrun"
)

type syncRunTableModel struct {
	ID          int64          `db:"id"`
	PublicID    string         `db:"public_id"`
	TriggerKind string         `db:"trigger_kind"`
	Dates       pq.StringArray `db:"dates"`
	Synced      int            `db:"synced"`
	Skipped     int            `db:"skipped"`
	Failed      int            `db:"failed"`
	StartedAt   time.Time      `db:"started_at"`
	FinishedAt  time.Time      `db:"finished_at"`
	ErrorText   string         `db:"error_text"`
}

type syncRunInsertModel struct {
	PublicID    string         `db:"public_id"`
	TriggerKind string         `db:"trigger_kind"`
	Dates       pq.StringArray `db:"dates"`
	Synced      int            `db:"synced"`
	Skipped     int            `db:"skipped"`
	Failed      int            `db:"failed"`
	StartedAt   time.Time      `db:"started_at"`
	FinishedAt  time.Time      `db:"finished_at"`
	ErrorText   string         `db:"error_text"`
}

func (m syncRunTableModel) toDomain() syncrun.Run {
	return syncrun.Run{
		PublicID:   m.PublicID,
		Trigger:    m.TriggerKind,
		Dates:      append([]string(nil), m.Dates...),
		Synced:     m.Synced,
		Skipped:    m.Skipped,
		Failed:     m.Failed,
		StartedAt:  m.StartedAt,
		FinishedAt: m.FinishedAt,
		ErrorText:  m.ErrorText,
	}
}
