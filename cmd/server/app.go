package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/quizlight/quizlight-api/internal/assistant"
	"github.com/quizlight/quizlight-api/internal/config"
	"github.com/quizlight/quizlight-api/internal/platform/gemini"
	"github.com/quizlight/quizlight-api/internal/platform/openai"
	"github.com/quizlight/quizlight-api/internal/platform/postgres"
	"github.com/quizlight/quizlight-api/internal/platform/tavily"
	"github.com/quizlight/quizlight-api/internal/service/auth"
	"github.com/quizlight/quizlight-api/internal/store"
)

// application holds all the core dependencies of the server. It is assembled
// once at startup by newApplication and threaded through the router setup.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	// Stores
	userStore        store.UserStore
	studySetStore    store.StudySetStore
	flashcardStore   store.FlashcardStore
	chatMessageStore store.ChatMessageStore
	starredStore     store.StarredMessageStore
	quizStore        store.QuizAttemptStore
	reminderStore    store.ReminderStore

	// Services
	jwtService       auth.JWTService
	passwordVerifier auth.PasswordVerifier
	composer         *assistant.Composer
}

// newApplication wires the application dependency graph: stores over the
// shared database handle, the auth services, and the answer pipeline with
// whichever optional upstream clients the configuration enables.
func newApplication(
	ctx context.Context,
	cfg *config.Config,
	logger *slog.Logger,
	db *sql.DB,
) (*application, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger cannot be nil")
	}
	if db == nil {
		return nil, fmt.Errorf("database cannot be nil")
	}

	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	// Stores share the database handle; transactional request paths rebind
	// them with WithTx.
	app.userStore = postgres.NewPostgresUserStore(db, cfg.Auth.BcryptCost, logger)
	app.studySetStore = postgres.NewPostgresStudySetStore(db, logger)
	app.flashcardStore = postgres.NewPostgresFlashcardStore(db, logger)
	app.chatMessageStore = postgres.NewPostgresChatMessageStore(db, logger)
	app.starredStore = postgres.NewPostgresStarredMessageStore(db, logger)
	app.quizStore = postgres.NewPostgresQuizAttemptStore(db, logger)
	app.reminderStore = postgres.NewPostgresReminderStore(db, logger)
	logger.Info("Data stores initialized")

	jwtService, err := auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to create JWT service: %w", err)
	}
	app.jwtService = jwtService
	app.passwordVerifier = auth.NewBcryptVerifier()
	logger.Info("Auth services initialized")

	composer, err := buildComposer(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to build answer composer: %w", err)
	}
	app.composer = composer

	return app, nil
}

// buildComposer assembles the answer pipeline from configuration. Both
// upstream clients are optional: with no LLM key the pipeline runs in pure
// lexical-fallback mode, and with no search key web search is disabled.
func buildComposer(
	ctx context.Context,
	cfg *config.Config,
	logger *slog.Logger,
) (*assistant.Composer, error) {
	builder := assistant.NewContextBuilder(assistant.Budgets{
		MaxPairs:          cfg.Assistant.MaxPairs,
		ContextChars:      cfg.Assistant.ContextChars,
		QuestionChars:     cfg.Assistant.QuestionChars,
		AnswerChars:       cfg.Assistant.AnswerChars,
		WebSnippetChars:   cfg.Assistant.WebSnippetChars,
		MaxWebResults:     cfg.Search.MaxResults,
		GibberishMinLen:   cfg.Assistant.GibberishMinLen,
		GibberishMinRatio: cfg.Assistant.GibberishMinRatio,
	})

	// When both LLM backends are configured the OpenAI-compatible one wins.
	var llm assistant.CompletionClient
	switch {
	case cfg.LLM.OpenAIAPIKey != "":
		client, err := openai.NewClient(cfg.LLM, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to create openai client: %w", err)
		}
		llm = client
		logger.Info("LLM backend configured", "backend", "openai", "model", cfg.LLM.OpenAIModel)
	case cfg.LLM.GeminiAPIKey != "":
		client, err := gemini.NewClient(ctx, cfg.LLM, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to create gemini client: %w", err)
		}
		llm = client
		logger.Info("LLM backend configured", "backend", "gemini", "model", cfg.LLM.GeminiModel)
	default:
		logger.Warn("No LLM backend configured, answers use lexical retrieval only")
	}

	var search assistant.SearchClient
	if cfg.Search.TavilyAPIKey != "" {
		client, err := tavily.NewClient(cfg.Search, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to create search client: %w", err)
		}
		search = client
		logger.Info("Web search configured", "backend", "tavily")
	} else {
		logger.Info("Web search disabled, no search API key configured")
	}

	return assistant.NewComposer(builder, search, llm, cfg.LLM.Temperature, logger), nil
}

// Run starts the HTTP server and blocks until shutdown.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()
	return app.startHTTPServer(ctx, router)
}

// cleanup releases application resources during shutdown.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("Failed to close database connection", "error", err)
		} else {
			app.logger.Info("Database connection closed")
		}
	}
}
