package httpapi

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/tribuneros/tribuneros-api/internal/platform/logging"
	"github.com/tribuneros/tribuneros-api/internal/usecase"
)

type Handler struct {
	matchService *usecase.MatchService
	syncService  *usecase.SyncService
	readiness    func(ctx context.Context) error
	logger       *logging.Logger
	validator    *validator.Validate
}

func NewHandler(
	matchService *usecase.MatchService,
	syncService *usecase.SyncService,
	readiness func(ctx context.Context) error,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		matchService: matchService,
		syncService:  syncService,
		readiness:    readiness,
		logger:       logger,
		validator:    validator.New(),
	}
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Health")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Ready")
	defer span.End()

	if h.readiness != nil {
		if err := h.readiness(ctx); err != nil {
			h.logger.WarnContext(ctx, "readiness check failed", "error", err)
			writeError(ctx, w, fmt.Errorf("%w: %v", usecase.ErrDependencyUnavailable, err))
			return
		}
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ready"})
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}
