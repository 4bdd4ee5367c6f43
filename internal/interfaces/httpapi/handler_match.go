package httpapi

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/tribuneros/tribuneros-api/internal/domain/match"
)

type matchDTO struct {
	ID           int64  `json:"id"`
	Date         string `json:"date"`
	KickoffAt    string `json:"kickoffAt"`
	Status       string `json:"status"`
	Elapsed      *int   `json:"elapsed,omitempty"`
	HomeTeamID   int64  `json:"homeTeamId"`
	HomeTeam     string `json:"homeTeam"`
	HomeCrestURL string `json:"homeCrestUrl,omitempty"`
	AwayTeamID   int64  `json:"awayTeamId"`
	AwayTeam     string `json:"awayTeam"`
	AwayCrestURL string `json:"awayCrestUrl,omitempty"`
	HomeGoals    *int   `json:"homeGoals"`
	AwayGoals    *int   `json:"awayGoals"`
	LeagueID     int64  `json:"leagueId"`
	LeagueName   string `json:"leagueName"`
	Season       int    `json:"season"`
	Round        string `json:"round,omitempty"`
	VenueName    string `json:"venueName,omitempty"`
	VenueCity    string `json:"venueCity,omitempty"`
	UpdatedAtUTC string `json:"updatedAtUtc"`
}

type listMatchesRequest struct {
	Date string `validate:"required,datetime=2006-01-02"`
}

func (h *Handler) ListMatchesByDate(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMatchesByDate")
	defer span.End()

	date := strings.TrimSpace(r.URL.Query().Get("date"))
	if err := h.validateRequest(ctx, listMatchesRequest{Date: date}); err != nil {
		writeError(ctx, w, err)
		return
	}

	var (
		matches []match.Match
		err     error
	)
	if parseBoolQuery(r.URL.Query().Get("finished")) {
		matches, err = h.matchService.FinishedMatchesByDate(ctx, date)
	} else {
		matches, err = h.matchService.MatchesByDate(ctx, date)
	}
	if err != nil {
		h.logger.WarnContext(ctx, "list matches failed", "date", date, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]matchDTO, 0, len(matches))
	for _, m := range matches {
		items = append(items, matchToDTO(ctx, m))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetMatchByExternalID(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMatchByExternalID")
	defer span.End()

	externalID, _ := strconv.ParseInt(strings.TrimSpace(r.PathValue("externalID")), 10, 64)
	found, err := h.matchService.MatchByExternalID(ctx, externalID)
	if err != nil {
		h.logger.WarnContext(ctx, "get match failed", "external_id", externalID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchToDTO(ctx, found))
}

func matchToDTO(ctx context.Context, m match.Match) matchDTO {
	ctx, span := startSpan(ctx, "httpapi.matchToDTO")
	defer span.End()

	kickoff := ""
	if !m.KickoffAt.IsZero() {
		kickoff = m.KickoffAt.UTC().Format(time.RFC3339)
	}

	return matchDTO{
		ID:           m.ExternalID,
		Date:         m.MatchDate,
		KickoffAt:    kickoff,
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
		UpdatedAtUTC: m.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

func parseBoolQuery(value string) bool {
	parsed, err := strconv.ParseBool(strings.TrimSpace(value))
	return err == nil && parsed
}
