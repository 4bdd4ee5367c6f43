package apifootball

import (
	"time"

	"github.com/tribuneros/tribuneros-api/internal/usecase"
)

// sampleFixtures is the fixed fallback returned when the provider cannot be
// reached or no API key is configured. Callers always get a well-shaped
// response; the ids are far outside the provider's real id space.
func sampleFixtures() []usecase.ExternalFixture {
	kickoff := time.Date(2024, 5, 1, 20, 0, 0, 0, time.UTC)
	two, one, zero := 2, 1, 0

	return []usecase.ExternalFixture{
		{
			ExternalID:   900001,
			Status:       "FT",
			KickoffAt:    kickoff,
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
		},
		{
			ExternalID:   900002,
			Status:       "FT",
			KickoffAt:    kickoff.Add(2 * time.Hour),
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
		},
		{
			ExternalID:   900003,
			Status:       "NS",
			KickoffAt:    kickoff.Add(24 * time.Hour),
			HomeTeamID:   437,
			HomeTeam:     "San Lorenzo",
			HomeCrestURL: "https://media.api-sports.io/football/teams/437.png",
			AwayTeamID:   438,
			AwayTeam:     "Estudiantes L.P.",
			AwayCrestURL: "https://media.api-sports.io/football/teams/438.png",
			LeagueID:     128,
			LeagueName:   "Liga Profesional Argentina",
			Season:       2024,
			Round:        "Regular Season - 2",
			VenueName:    "Pedro Bidegain",
			VenueCity:    "Buenos Aires",
		},
	}
}
