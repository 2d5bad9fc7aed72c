// Package cli wires the application dependencies for the CLI commands.
package cli

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	"github.com/avencia/servio/internal/application/usecase"
	"github.com/avencia/servio/internal/domain/repository"
	"github.com/avencia/servio/internal/infrastructure/config"
	"github.com/avencia/servio/internal/infrastructure/persistence/sqlite"
	"github.com/avencia/servio/internal/logging"
)

// App holds CLI dependencies.
type App struct {
	Trends repository.TrendRepository
	Events repository.EventRepository

	// Use cases
	SuggestUC *usecase.SuggestTrendsUseCase
	TrackUC   *usecase.TrackEventsUseCase

	manager *config.Manager
	db      *sql.DB
	ctx     context.Context
}

// NewApp creates a new CLI application with all dependencies.
func NewApp() (*App, error) {
	manager, err := config.NewManager()
	if err != nil {
		return nil, fmt.Errorf("create config manager: %w", err)
	}
	if err := manager.Load(); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	cfg := manager.Get()

	logLevel := cfg.Logging.Level
	if envLevel := os.Getenv("SERVIO_LOG_LEVEL"); envLevel != "" {
		logLevel = envLevel
	}
	logger := logging.New(logging.Config{
		Level:      logging.ParseLevel(logLevel),
		Format:     cfg.Logging.Format,
		TimeFormat: "15:04:05",
	})
	ctx := logging.WithContext(context.Background(), logger)

	db, err := sqlite.NewConnection(ctx, cfg.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	logger.Debug().Str("db_path", cfg.Database.Path).Msg("database connected")

	// Commands read settings through App.Config(), so a successful hot
	// reload is visible to every query issued after it.
	manager.OnConfigChange(func(reloaded *config.Config) {
		logger.Info().
			Str("log_level", reloaded.Logging.Level).
			Int("debounce_ms", reloaded.Search.DebounceMs).
			Int("max_results", reloaded.Search.MaxResults).
			Msg("configuration reloaded")
	})
	manager.Watch()

	trendRepo := sqlite.NewTrendRepository(db)
	eventRepo := sqlite.NewEventRepository(db)

	return &App{
		Trends:    trendRepo,
		Events:    eventRepo,
		SuggestUC: usecase.NewSuggestTrendsUseCase(trendRepo),
		TrackUC:   usecase.NewTrackEventsUseCase(eventRepo, trendRepo),
		manager:   manager,
		db:        db,
		ctx:       ctx,
	}, nil
}

// Config returns the current configuration. Values reflect the latest
// successful hot reload.
func (a *App) Config() *config.Config {
	return a.manager.Get()
}

// Ctx returns the application context carrying the logger.
func (a *App) Ctx() context.Context {
	return a.ctx
}

// Close releases application resources.
func (a *App) Close() error {
	return sqlite.Close(a.db)
}
