package syncrun

import "time"

const (
	TriggerScheduled = "scheduled"
	TriggerForced    = "forced"
	TriggerBackfill  = "backfill"
)

// Run is the audit record of one reconciliation pass. Recording it is best
// effort and never fails the pass itself.
type Run struct {
	PublicID   string
	Trigger    string
	Dates      []string
	Synced     int
	Skipped    int
	Failed     int
	StartedAt  time.Time
	FinishedAt time.Time
	ErrorText  string
}
