package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/hanzideck/hanzideck-api/internal/api"
	apiMiddleware "github.com/hanzideck/hanzideck-api/internal/api/middleware"
)

// setupRouter creates and configures the application router with all routes
// and middleware. It accepts the application dependencies to create handlers
// and register routes. Returns the configured router.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	// Apply standard middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware)

	// Create API handlers using the application's services
	studyHandler := api.NewStudyHandler(app.studyService, app.logger)
	vocabHandler := api.NewVocabHandler(app.dictionary, app.logger)

	// Register routes
	r.Route("/api", func(r chi.Router) {
		// Dictionary endpoints (public, read-only)
		r.Get("/vocabulary/levels", vocabHandler.GetLevels)
		r.Get("/vocabulary/categories", vocabHandler.GetCategories)
		r.Get("/vocabulary/words", vocabHandler.GetWords)

		// Per-user routes require a caller identity
		r.Group(func(r chi.Router) {
			r.Use(apiMiddleware.UserMiddleware)

			// Study session endpoints
			r.Get("/study/learn", studyHandler.GetLearningWords)
			r.Get("/study/review", studyHandler.GetReviewWords)
			r.Get("/study/batch/{mode}", studyHandler.GetTodaysBatch)
			r.Post("/study/results", studyHandler.SubmitResults)

			// Word endpoints
			r.Post("/words/{id}/bookmark", studyHandler.ToggleBookmark)

			// Progress endpoints
			r.Get("/progress/stats", studyHandler.GetProgressStats)
		})
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	return r
}
