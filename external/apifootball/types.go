package apifootball

import (
	"strings"
	"time"

	"github.com/tribuneros/tribuneros-api/internal/usecase"
)

// Provider wire shape. Venue, goals and elapsed are frequently null and must
// stay optional.
type fixturesEnvelope struct {
	Response []fixtureItem `json:"response"`
}

type fixtureItem struct {
	Fixture fixtureCore  `json:"fixture"`
	League  leagueInfo   `json:"league"`
	Teams   fixtureTeams `json:"teams"`
	Goals   fixtureGoals `json:"goals"`
}

type fixtureCore struct {
	ID     int64         `json:"id"`
	Date   string        `json:"date"`
	Status fixtureStatus `json:"status"`
	Venue  fixtureVenue  `json:"venue"`
}

type fixtureStatus struct {
	Short   string `json:"short"`
	Elapsed *int   `json:"elapsed"`
}

type fixtureVenue struct {
	Name string `json:"name"`
	City string `json:"city"`
}

type leagueInfo struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Season int    `json:"season"`
	Round  string `json:"round"`
}

type fixtureTeams struct {
	Home teamInfo `json:"home"`
	Away teamInfo `json:"away"`
}

type teamInfo struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Logo string `json:"logo"`
}

type fixtureGoals struct {
	Home *int `json:"home"`
	Away *int `json:"away"`
}

func mapFixtureItem(item fixtureItem) usecase.ExternalFixture {
	return usecase.ExternalFixture{
		ExternalID:   item.Fixture.ID,
		Status:       strings.ToUpper(strings.TrimSpace(item.Fixture.Status.Short)),
		Elapsed:      cloneIntPtr(item.Fixture.Status.Elapsed),
		KickoffAt:    parseProviderDateTime(item.Fixture.Date),
		HomeTeamID:   item.Teams.Home.ID,
		HomeTeam:     strings.TrimSpace(item.Teams.Home.Name),
		HomeCrestURL: strings.TrimSpace(item.Teams.Home.Logo),
		AwayTeamID:   item.Teams.Away.ID,
		AwayTeam:     strings.TrimSpace(item.Teams.Away.Name),
		AwayCrestURL: strings.TrimSpace(item.Teams.Away.Logo),
		HomeGoals:    cloneIntPtr(item.Goals.Home),
		AwayGoals:    cloneIntPtr(item.Goals.Away),
		LeagueID:     item.League.ID,
		LeagueName:   strings.TrimSpace(item.League.Name),
		Season:       item.League.Season,
		Round:        strings.TrimSpace(item.League.Round),
		VenueName:    strings.TrimSpace(item.Fixture.Venue.Name),
		VenueCity:    strings.TrimSpace(item.Fixture.Venue.City),
	}
}

func parseProviderDateTime(raw string) time.Time {
	value := strings.TrimSpace(raw)
	if value == "" {
		return time.Time{}
	}

	layouts := []string{
		time.RFC3339,
		"2006-01-02T15:04:05Z07:00",
		"2006-01-02 15:04:05",
	}
	for _, layout := range layouts {
		parsed, err := time.Parse(layout, value)
		if err == nil {
			return parsed.UTC()
		}
	}
	return time.Time{}
}

func cloneIntPtr(value *int) *int {
	if value == nil {
		return nil
	}
	v := *value
	return &v
}
