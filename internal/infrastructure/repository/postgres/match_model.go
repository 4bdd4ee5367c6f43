package postgres

import (
	"time"

	"github.com/tribuneros/tribuneros-api/internal/domain/match"
)

type matchTableModel struct {
	ID           int64     `db:"id"`
	ExternalID   int64     `db:"external_id"`
	MatchDate    string    `db:"match_date"`
	KickoffAt    time.Time `db:"kickoff_at"`
	Status       string    `db:"status"`
	Elapsed      *int      `db:"elapsed"`
	HomeTeamID   int64     `db:"home_team_id"`
	HomeTeam     string    `db:"home_team"`
	HomeCrestURL string    `db:"home_crest_url"`
	AwayTeamID   int64     `db:"away_team_id"`
	AwayTeam     string    `db:"away_team"`
	AwayCrestURL string    `db:"away_crest_url"`
	HomeGoals    *int      `db:"home_goals"`
	AwayGoals    *int      `db:"away_goals"`
	LeagueID     int64     `db:"league_id"`
	LeagueName   string    `db:"league_name"`
	Season       int       `db:"season"`
	Round        string    `db:"round"`
	VenueName    string    `db:"venue_name"`
	VenueCity    string    `db:"venue_city"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

type matchInsertModel struct {
	ExternalID   int64     `db:"external_id"`
	MatchDate    string    `db:"match_date"`
	KickoffAt    time.Time `db:"kickoff_at"`
	Status       string    `db:"status"`
	Elapsed      *int      `db:"elapsed"`
	HomeTeamID   int64     `db:"home_team_id"`
	HomeTeam     string    `db:"home_team"`
	HomeCrestURL string    `db:"home_crest_url"`
	AwayTeamID   int64     `db:"away_team_id"`
	AwayTeam     string    `db:"away_team"`
	AwayCrestURL string    `db:"away_crest_url"`
	HomeGoals    *int      `db:"home_goals"`
	AwayGoals    *int      `db:"away_goals"`
	LeagueID     int64     `db:"league_id"`
	LeagueName   string    `db:"league_name"`
	Season       int       `db:"season"`
	Round        string    `db:"round"`
	VenueName    string    `db:"venue_name"`
	VenueCity    string    `db:"venue_city"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

func (m matchTableModel) toDomain() match.Match {
	return match.Match{
		ExternalID:   m.ExternalID,
		MatchDate:    m.MatchDate,
		KickoffAt:    m.KickoffAt,
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
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}
