package match

import (
	"strings"
	"time"
)

// Provider short status codes. The external API owns the lifecycle; these
// constants only name the values this service filters on.
const (
	StatusNotStarted   = "NS"
	StatusToBeDefined  = "TBD"
	StatusFirstHalf    = "1H"
	StatusHalfTime     = "HT"
	StatusSecondHalf   = "2H"
	StatusExtraTime    = "ET"
	StatusBreakTime    = "BT"
	StatusPenaltyShoot = "P"
	StatusLive         = "LIVE"
	StatusFullTime     = "FT"
	StatusAfterExtra   = "AET"
	StatusAfterPens    = "PEN"
	StatusSuspended    = "SUSP"
	StatusInterrupted  = "INT"
	StatusCancelled    = "CANC"
	StatusPostponed    = "PP"
	StatusAbandoned    = "ABD"
	StatusWalkover     = "WO"
)

// Match is the durable representation of a fixture, denormalized so reads
// never need the external API.
type Match struct {
	ExternalID   int64
	MatchDate    string // civil date in the reference timezone, YYYY-MM-DD
	KickoffAt    time.Time
	Status       string
	Elapsed      *int
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
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func NormalizeStatus(value string) string {
	status := strings.ToUpper(strings.TrimSpace(value))
	if status == "" {
		return StatusToBeDefined
	}
	return status
}

// IsFinishedStatus reports a final result: full time, after extra time, or
// after penalties.
func IsFinishedStatus(status string) bool {
	switch NormalizeStatus(status) {
	case StatusFullTime, StatusAfterExtra, StatusAfterPens:
		return true
	default:
		return false
	}
}

func IsNotStartedStatus(status string) bool {
	switch NormalizeStatus(status) {
	case StatusNotStarted, StatusToBeDefined:
		return true
	default:
		return false
	}
}

func IsCancelledLikeStatus(status string) bool {
	switch NormalizeStatus(status) {
	case StatusCancelled, StatusPostponed, StatusAbandoned, StatusWalkover:
		return true
	default:
		return false
	}
}

// IsLiveStatus covers every in-play variant, including interruptions that
// may still resume.
func IsLiveStatus(status string) bool {
	switch NormalizeStatus(status) {
	case StatusFirstHalf, StatusHalfTime, StatusSecondHalf, StatusExtraTime,
		StatusBreakTime, StatusPenaltyShoot, StatusLive, StatusSuspended, StatusInterrupted:
		return true
	default:
		return false
	}
}

func FinishedStatuses() []string {
	return []string{StatusFullTime, StatusAfterExtra, StatusAfterPens}
}
