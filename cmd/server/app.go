package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/bhashamitra/lingua-api/internal/config"
	"github.com/bhashamitra/lingua-api/internal/domain/srs"
	"github.com/bhashamitra/lingua-api/internal/platform/postgres"
	"github.com/bhashamitra/lingua-api/internal/platform/tts"
	"github.com/bhashamitra/lingua-api/internal/pronunciation"
	"github.com/bhashamitra/lingua-api/internal/service/review"
	"github.com/bhashamitra/lingua-api/internal/store"
)

// application holds all the shared application dependencies to simplify
// management and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	// Stores
	wordStore     store.WordStore
	progressStore store.WordProgressStore

	// Services
	srsService    srs.Service
	scorer        *pronunciation.Scorer
	analyzer      *pronunciation.Analyzer
	synthesizer   tts.Provider
	reviewService review.ReviewService
}

// newApplication creates a new application instance with all
// dependencies initialized. Configuration, logger, and database must be
// established before this is called.
func newApplication(cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	app.wordStore = postgres.NewPostgresWordStore(db, logger)
	app.progressStore = postgres.NewPostgresWordProgressStore(db, logger)

	app.srsService = srs.NewDefaultService()
	app.scorer = pronunciation.NewScorer()
	app.analyzer = pronunciation.NewAnalyzer(nil, logger)

	synthesizer, err := setupSynthesizer(cfg.Speech, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to set up speech synthesis: %w", err)
	}
	app.synthesizer = synthesizer

	app.reviewService = review.NewReviewService(
		db,
		app.wordStore,
		app.progressStore,
		app.srsService,
		app.scorer,
		app.analyzer,
		logger,
	)

	logger.Info("application initialized")
	return app, nil
}

// setupSynthesizer builds the provider fallback chain from the
// configured API keys. Returns nil when no provider is configured;
// words without pre-recorded audio then have no audio endpoint.
func setupSynthesizer(cfg config.SpeechConfig, logger *slog.Logger) (tts.Provider, error) {
	var providers []tts.Provider

	if cfg.GoogleAPIKey != "" {
		google, err := tts.NewGoogleProvider(cfg.GoogleAPIKey, nil, logger)
		if err != nil {
			return nil, err
		}
		providers = append(providers, google)
	}

	if cfg.SarvamAPIKey != "" {
		sarvam, err := tts.NewSarvamProvider(cfg.SarvamAPIKey, nil, logger)
		if err != nil {
			return nil, err
		}
		providers = append(providers, sarvam)
	}

	if len(providers) == 0 {
		logger.Warn("no speech provider configured, word audio synthesis disabled")
		return nil, nil
	}

	return tts.NewChain(providers, cfg.CacheSize, logger)
}

// Run starts the application server, handling lifecycle and cleanup.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("error closing database connection", "error", err)
		}
	}

	app.logger.Info("application shutdown completed")
}
