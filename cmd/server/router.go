package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/phrazzld/hero-flashcards/internal/api"
	apiMiddleware "github.com/phrazzld/hero-flashcards/internal/api/middleware"
	"github.com/phrazzld/hero-flashcards/internal/domain/grading"
	"github.com/phrazzld/hero-flashcards/internal/service"
)

// setupRouter creates the router with all routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware(app.logger))

	gradeHandler := api.NewGradeHandler(grading.NewDefaultGrader(), app.logger)
	sessionHandler := api.NewSessionHandler(app.sessionService, app.tokenService, app.tables, app.logger)
	authMiddleware := apiMiddleware.NewAuthMiddleware(app.tokenService)

	r.Route("/api", func(r chi.Router) {
		r.Post("/grade", gradeHandler.Grade)
		r.Post("/sessions", sessionHandler.Start)

		r.Route("/session", func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			r.Get("/", sessionHandler.Get)
			r.Delete("/", sessionHandler.End)

			r.Post("/advance", sessionHandler.Navigate(service.NavAdvance))
			r.Post("/retreat", sessionHandler.Navigate(service.NavRetreat))
			r.Post("/shuffle", sessionHandler.Navigate(service.NavShuffle))
			r.Post("/reset-order", sessionHandler.Navigate(service.NavResetOrder))
			r.Post("/questions/next", sessionHandler.Navigate(service.NavNextQuestion))
			r.Post("/questions/previous", sessionHandler.Navigate(service.NavPreviousQuestion))

			r.Post("/answers", sessionHandler.SubmitAnswer)
			r.Post("/feedback/dismiss", sessionHandler.DismissFeedback)
			r.Post("/mastered", sessionHandler.MarkMastered)
		})
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("failed to write health check response", "error", err)
		}
	})

	return r
}
