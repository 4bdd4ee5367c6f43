package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/tribuneros/tribuneros-api/internal/domain/match"
	qb "github.com/tribuneros/tribuneros-api/internal/platform/querybuilder"
)

type MatchRepository struct {
	db *sqlx.DB
}

func NewMatchRepository(db *sqlx.DB) *MatchRepository {
	return &MatchRepository{db: db}
}

// Upsert inserts or refreshes a match keyed by the provider's fixture id.
// created_at survives updates; everything else tracks the latest snapshot.
func (r *MatchRepository) Upsert(ctx context.Context, m match.Match) error {
	if m.ExternalID <= 0 {
		return fmt.Errorf("external id is required")
	}

	model := matchInsertModel{
		ExternalID:   m.ExternalID,
		MatchDate:    m.MatchDate,
		KickoffAt:    m.KickoffAt.UTC(),
		Status:       m.Status,
		Elapsed:      m.Elapsed,
		HomeTeamID:   m.HomeTeamID,
		HomeTeam:     m.HomeTeam,
		HomeCrestURL: m.HomeCrestURL,
		AwayTeamID:   m.AwayTeamID,
		AwayTeam:     m.AwayTeam,
		AwayCrestURL: m.AwayCrestURL,
		HomeGoals:    m.HomeGoals,
		AwayGoals:    m.AwayGoals,
		LeagueID:     m.LeagueID,
		LeagueName:   m.LeagueName,
		Season:       m.Season,
		Round:        m.Round,
		VenueName:    m.VenueName,
		VenueCity:    m.VenueCity,
		CreatedAt:    m.CreatedAt.UTC(),
		UpdatedAt:    m.UpdatedAt.UTC(),
	}

	query, args, err := qb.InsertModel("matches", model, `ON CONFLICT (external_id)
DO UPDATE SET
    match_date = EXCLUDED.match_date,
    kickoff_at = EXCLUDED.kickoff_at,
    status = EXCLUDED.status,
    elapsed = EXCLUDED.elapsed,
    home_team_id = EXCLUDED.home_team_id,
    home_team = EXCLUDED.home_team,
    home_crest_url = EXCLUDED.home_crest_url,
    away_team_id = EXCLUDED.away_team_id,
    away_team = EXCLUDED.away_team,
    away_crest_url = EXCLUDED.away_crest_url,
    home_goals = EXCLUDED.home_goals,
    away_goals = EXCLUDED.away_goals,
    league_id = EXCLUDED.league_id,
    league_name = EXCLUDED.league_name,
    season = EXCLUDED.season,
    round = EXCLUDED.round,
    venue_name = EXCLUDED.venue_name,
    venue_city = EXCLUDED.venue_city,
    updated_at = EXCLUDED.updated_at`)
	if err != nil {
		return fmt.Errorf("build upsert match query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert match external_id=%d: %w", m.ExternalID, err)
	}
	return nil
}

func (r *MatchRepository) GetByExternalID(ctx context.Context, externalID int64) (match.Match, error) {
	query, args, err := qb.Select("*").From("matches").
		Where(qb.Eq("external_id", externalID)).
		Limit(1).
		ToSQL()
	if err != nil {
		return match.Match{}, fmt.Errorf("build select match query: %w", err)
	}

	var row matchTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return match.Match{}, match.ErrNotFound
		}
		return match.Match{}, fmt.Errorf("select match external_id=%d: %w", externalID, err)
	}
	return row.toDomain(), nil
}

func (r *MatchRepository) ListByDate(ctx context.Context, matchDate string) ([]match.Match, error) {
	query, args, err := qb.Select("*").From("matches").
		Where(qb.Eq("match_date", matchDate)).
		OrderBy("kickoff_at", "external_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select matches by date query: %w", err)
	}

	var rows []matchTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select matches by date: %w", err)
	}

	out := make([]match.Match, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *MatchRepository) ListByDateAndStatuses(ctx context.Context, matchDate string, statuses []string) ([]match.Match, error) {
	if len(statuses) == 0 {
		return []match.Match{}, nil
	}

	values := make([]any, 0, len(statuses))
	for _, status := range statuses {
		values = append(values, status)
	}

	query, args, err := qb.Select("*").From("matches").
		Where(
			qb.Eq("match_date", matchDate),
			qb.In("status", values),
		).
		OrderBy("kickoff_at", "external_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select matches by date and statuses query: %w", err)
	}

	var rows []matchTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select matches by date and statuses: %w", err)
	}

	out := make([]match.Match, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}
