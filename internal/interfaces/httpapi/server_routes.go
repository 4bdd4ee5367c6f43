package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /health", handler.Health)
	mux.HandleFunc("GET /ready", handler.Ready)
}

func registerMatchRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /api/v1/matches", handler.ListMatchesByDate)
	mux.HandleFunc("GET /api/v1/matches/{externalID}", handler.GetMatchByExternalID)
}

func registerInternalSyncRoutes(mux *http.ServeMux, handler *Handler, syncToken string) {
	mux.Handle("POST /api/v1/internal/sync", RequireSyncToken(syncToken, http.HandlerFunc(handler.ForceSync)))
	mux.Handle("GET /api/v1/internal/sync", RequireSyncToken(syncToken, http.HandlerFunc(handler.SyncStatus)))
	mux.Handle("GET /api/v1/internal/sync/runs", RequireSyncToken(syncToken, http.HandlerFunc(handler.ListSyncRuns)))
	mux.Handle("POST /api/v1/internal/sync/backfill", RequireSyncToken(syncToken, http.HandlerFunc(handler.RunBackfill)))
	mux.Handle("POST /api/v1/internal/sync/league", RequireSyncToken(syncToken, http.HandlerFunc(handler.SyncLeagueSeason)))
}
