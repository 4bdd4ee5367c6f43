package match

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("match not found")

// Repository persists matches keyed by the provider's fixture id. Upsert must
// be idempotent: repeating it with the same external id updates in place.
type Repository interface {
	Upsert(ctx context.Context, m Match) error
	GetByExternalID(ctx context.Context, externalID int64) (Match, error)
	ListByDate(ctx context.Context, matchDate string) ([]Match, error)
	ListByDateAndStatuses(ctx context.Context, matchDate string, statuses []string) ([]Match, error)
}
