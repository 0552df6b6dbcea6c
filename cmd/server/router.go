package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/quizlight/quizlight-api/internal/api"
	apiMiddleware "github.com/quizlight/quizlight-api/internal/api/middleware"
)

// setupRouter creates and configures the application router with all routes
// and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware)

	authHandler := api.NewAuthHandler(
		app.userStore,
		app.jwtService,
		app.passwordVerifier,
		app.config.Auth,
	)
	authMiddleware := apiMiddleware.NewAuthMiddleware(app.jwtService)

	studySetHandler := api.NewStudySetHandler(app.db, app.studySetStore, app.flashcardStore)
	chatHandler := api.NewChatHandler(app.composer, app.flashcardStore, app.chatMessageStore)
	starredHandler := api.NewStarredHandler(app.starredStore, app.studySetStore)
	quizHandler := api.NewQuizHandler(app.quizStore, app.studySetStore)
	reminderHandler := api.NewReminderHandler(app.reminderStore, app.studySetStore)
	exportHandler := api.NewExportHandler(app.db, app.studySetStore, app.flashcardStore)

	r.Route("/api", func(r chi.Router) {
		// Authentication endpoints (public)
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)
		r.Post("/auth/refresh", authHandler.RefreshToken)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			// Study set endpoints
			r.Post("/study-sets", studySetHandler.Create)
			r.Get("/study-sets", studySetHandler.List)
			r.Get("/study-sets/{id}", studySetHandler.Get)
			r.Put("/study-sets/{id}", studySetHandler.Update)
			r.Delete("/study-sets/{id}", studySetHandler.Delete)

			// Assistant endpoints
			r.Post("/study-sets/{id}/answer", chatHandler.Answer)
			r.Get("/study-sets/{id}/messages", chatHandler.History)
			r.Delete("/study-sets/{id}/messages", chatHandler.ClearHistory)

			// Interchange endpoints
			r.Get("/study-sets/{id}/export", exportHandler.Export)
			r.Post("/study-sets/import", exportHandler.Import)
			r.Post("/flashcards/generate", exportHandler.Generate)

			// Bookmark endpoints
			r.Post("/starred-messages", starredHandler.Star)
			r.Get("/starred-messages", starredHandler.List)
			r.Delete("/starred-messages/{id}", starredHandler.Unstar)

			// Quiz endpoints
			r.Post("/quiz-attempts", quizHandler.Record)
			r.Get("/quiz-attempts", quizHandler.History)

			// Reminder endpoints
			r.Post("/reminders", reminderHandler.Create)
			r.Get("/reminders", reminderHandler.List)
			r.Patch("/reminders/{id}", reminderHandler.SetActive)
			r.Delete("/reminders/{id}", reminderHandler.Delete)
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
