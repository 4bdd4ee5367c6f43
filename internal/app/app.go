package app

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
	"go.opentelemetry.io/otel/attribute"

	"github.com/tribuneros/tribuneros-api/external/apifootball"
	"github.com/tribuneros/tribuneros-api/internal/config"
	"github.com/tribuneros/tribuneros-api/internal/domain/match"
	"github.com/tribuneros/tribuneros-api/internal/domain/syncrun"
	"github.com/tribuneros/tribuneros-api/internal/infrastructure/repository/memory"
	"github.com/tribuneros/tribuneros-api/internal/infrastructure/repository/postgres"
	"github.com/tribuneros/tribuneros-api/internal/interfaces/httpapi"
	"github.com/tribuneros/tribuneros-api/internal/observability"
	"github.com/tribuneros/tribuneros-api/internal/platform/events"
	idgen "github.com/tribuneros/tribuneros-api/internal/platform/id"
	"github.com/tribuneros/tribuneros-api/internal/platform/logging"
	"github.com/tribuneros/tribuneros-api/internal/platform/resilience"
	"github.com/tribuneros/tribuneros-api/internal/usecase"
)

// App wires configuration, storage, the fixtures provider, and the HTTP
// surface into one runnable unit.
type App struct {
	HTTPServer  *http.Server
	SyncService *usecase.SyncService

	cfg           config.Config
	logger        *logging.Logger
	db            *sqlx.DB
	stopHeartbeat func()
}

func New(cfg config.Config, logger *logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}

	location, err := time.LoadLocation(cfg.SyncTimezone)
	if err != nil {
		return nil, fmt.Errorf("load sync timezone %q: %w", cfg.SyncTimezone, err)
	}

	var (
		db        *sqlx.DB
		matches   match.Repository
		runs      syncrun.Repository
		readiness func(ctx context.Context) error
	)

	if useInMemoryStorage(cfg.DBURL) {
		logger.Info("storage backend", "kind", "memory")
		matches = memory.NewMatchRepository(memory.SeedMatches())
		runs = memory.NewSyncRunRepository()
	} else {
		db, err = openDB(cfg)
		if err != nil {
			return nil, fmt.Errorf("open database: %w", err)
		}
		logger.Info("storage backend", "kind", "postgres", "db_name", dbNameFromURL(cfg.DBURL))
		matches = postgres.NewMatchRepository(db)
		runs = postgres.NewSyncRunRepository(db)
		readiness = db.PingContext
	}

	provider := apifootball.NewClient(apifootball.ClientConfig{
		BaseURL:     cfg.FootballAPIBaseURL,
		APIKey:      cfg.FootballAPIKey,
		Timeout:     cfg.FootballAPITimeout,
		MaxRetries:  cfg.FootballAPIMaxRetries,
		CacheWindow: cfg.FootballAPICacheWindow,
		Logger:      logger,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.FootballAPICircuitEnabled,
			FailureThreshold: cfg.FootballAPICircuitFailureCount,
			OpenTimeout:      cfg.FootballAPICircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.FootballAPICircuitHalfOpenMaxReq,
		},
	})

	bus := events.NewBus()
	stopHeartbeat := observability.StartHeartbeat(cfg, bus, logger)

	syncService, err := usecase.NewSyncService(usecase.SyncServiceConfig{
		Provider: provider,
		Matches:  matches,
		Runs:     runs,
		Bus:      bus,
		Logger:   logger,
		IDGen:    idgen.NewPrefixedGenerator("run"),
		Interval: cfg.SyncInterval,
		Location: location,
	})
	if err != nil {
		closeQuietly(db)
		stopHeartbeat()
		return nil, fmt.Errorf("build sync service: %w", err)
	}

	matchService, err := usecase.NewMatchService(matches, logger)
	if err != nil {
		closeQuietly(db)
		stopHeartbeat()
		return nil, fmt.Errorf("build match service: %w", err)
	}

	handler := httpapi.NewHandler(matchService, syncService, readiness, logger)
	router := httpapi.NewRouter(handler, logger, cfg.CORSAllowedOrigins, cfg.SyncToken)

	if strings.TrimSpace(cfg.HTTPAddr) == "" {
		closeQuietly(db)
		stopHeartbeat()
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	return &App{
		HTTPServer:    server,
		SyncService:   syncService,
		cfg:           cfg,
		logger:        logger,
		db:            db,
		stopHeartbeat: stopHeartbeat,
	}, nil
}

// Start launches the reconciliation scheduler when enabled. The HTTP server
// is started by the caller so it can own the listener lifecycle.
func (a *App) Start(ctx context.Context) error {
	if !a.cfg.SyncEnabled {
		a.logger.Info("sync scheduler disabled", "reason", "SYNC_ENABLED=false")
		return nil
	}

	if err := a.SyncService.Start(ctx); err != nil {
		return fmt.Errorf("start sync scheduler: %w", err)
	}

	return nil
}

func (a *App) Shutdown(context.Context) error {
	a.SyncService.Stop()
	a.stopHeartbeat()

	if a.db != nil {
		if err := a.db.Close(); err != nil {
			return fmt.Errorf("close database: %w", err)
		}
	}

	return nil
}

func openDB(cfg config.Config) (*sqlx.DB, error) {
	dsn := normalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinary)

	db, err := otelsqlx.Open("postgres", dsn,
		otelsql.WithAttributes(attribute.String("db.system", "postgresql")),
		otelsql.WithDBName(dbNameFromURL(cfg.DBURL)),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		closeQuietly(db)
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return db, nil
}

func useInMemoryStorage(dbURL string) bool {
	value := strings.ToLower(strings.TrimSpace(dbURL))
	return value == "" || value == "memory"
}

func closeQuietly(db *sqlx.DB) {
	if db != nil {
		_ = db.Close()
	}
}
