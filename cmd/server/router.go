package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/bhashamitra/lingua-api/internal/api"
	apiMiddleware "github.com/bhashamitra/lingua-api/internal/api/middleware"
)

// setupRouter creates and configures the application router with all
// routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware)

	reviewHandler := api.NewReviewHandler(app.reviewService, app.logger)
	pronunciationHandler := api.NewPronunciationHandler(app.reviewService, app.logger)
	audioHandler := api.NewAudioHandler(
		app.wordStore,
		app.synthesizer,
		app.config.Speech.Voice,
		app.logger,
	)

	r.Route("/api", func(r chi.Router) {
		r.Route("/learners/{learnerID}/words", func(r chi.Router) {
			r.Get("/due", reviewHandler.GetDueWords)
			r.Post("/{wordID}/review", reviewHandler.SubmitReview)
			r.Post("/{wordID}/postpone", reviewHandler.PostponeWord)
			r.Post("/{wordID}/pronunciation", pronunciationHandler.ScorePronunciation)
		})

		r.Get("/words/{wordID}/audio", audioHandler.GetWordAudio)
	})

	// Health check endpoint
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("failed to write health check response", "error", err)
		}
	})

	return r
}
