package syncrun

import "context"

type Repository interface {
	Record(ctx context.Context, run Run) error
	ListRecent(ctx context.Context, limit int) ([]Run, error)
}
