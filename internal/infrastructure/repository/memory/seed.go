package memory

import (
	"time"

	"github.com/tribuneros/tribuneros-api/internal/domain/match"
)

// SeedMatches returns a handful of finished fixtures so dev mode has data to
// serve before the first sync pass.
func SeedMatches() []match.Match {
	kickoff := time.Date(2024, 5, 1, 23, 0, 0, 0, time.UTC)
	two, one, zero := 2, 1, 0
	ninety := 90

	return []match.Match{
		{
			ExternalID:   900001,
			MatchDate:    "2024-05-01",
			KickoffAt:    kickoff,
			Status:       match.StatusFullTime,
			Elapsed:      &ninety,
			HomeTeamID:   435,
			HomeTeam:     "River Plate",
			HomeCrestURL: "https://media.api-sports.io/football/teams/435.png",
			AwayTeamID:   451,
			AwayTeam:     "Boca Juniors",
			AwayCrestURL: "https://media.api-sports.io/football/teams/451.png",
			HomeGoals:    &two,
			AwayGoals:    &one,
			LeagueID:     128,
			LeagueName:   "Liga Profesional Argentina",
			Season:       2024,
			Round:        "Regular Season - 1",
			VenueName:    "Estadio Monumental",
			VenueCity:    "Buenos Aires",
			CreatedAt:    kickoff,
			UpdatedAt:    kickoff,
		},
		{
			ExternalID:   900002,
			MatchDate:    "2024-05-01",
			KickoffAt:    kickoff.Add(2 * time.Hour),
			Status:       match.StatusFullTime,
			Elapsed:      &ninety,
			HomeTeamID:   434,
			HomeTeam:     "Racing Club",
			HomeCrestURL: "https://media.api-sports.io/football/teams/434.png",
			AwayTeamID:   436,
			AwayTeam:     "Independiente",
			AwayCrestURL: "https://media.api-sports.io/football/teams/436.png",
			HomeGoals:    &one,
			AwayGoals:    &zero,
			LeagueID:     128,
			LeagueName:   "Liga Profesional Argentina",
			Season:       2024,
			Round:        "Regular Season - 1",
			VenueName:    "El Cilindro",
			VenueCity:    "Avellaneda",
			CreatedAt:    kickoff,
			UpdatedAt:    kickoff,
		},
	}
}
