package usecase

import (
	"context"
	"time"
)

// ExternalFixture is one match as reported by the fixtures provider at fetch
// time. Scores and elapsed minutes stay nil until the provider reports them.
type ExternalFixture struct {
	ExternalID   int64
	Status       string
	Elapsed      *int
	KickoffAt    time.Time
	HomeTeamID   int64
	HomeTeam     string
	HomeCrestURL string
	AwayTeamID   int64
	AwayTeam     string
	AwayCrestURL string
	HomeGoals    *int
	AwayGoals    *int
	LeagueID     int64
	LeagueName   string
	Season       int
	Round        string
	VenueName    string
	VenueCity    string
}

// FixtureProvider is the outbound fixtures API. Implementations are expected
// to degrade gracefully (sample payload) rather than error on transient
// provider failures; a returned error therefore fails the whole pass.
type FixtureProvider interface {
	FixturesByDate(ctx context.Context, date string) ([]ExternalFixture, error)
	FixturesByLeagueSeason(ctx context.Context, leagueID int64, season int) ([]ExternalFixture, error)
}
