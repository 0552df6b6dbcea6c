package assistant

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/quizlight/quizlight-api/internal/platform/logger"
	"github.com/quizlight/quizlight-api/internal/redact"
)

// WebResult is one externally supplied web search hit.
type WebResult struct {
	Title   string
	URL     string
	Snippet string
}

// Source attributes part of an answer to a web result.
type Source struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// SearchClient is the optional web search collaborator. Absence (a nil
// client) and failure are treated identically: the feature is simply off for
// that request.
type SearchClient interface {
	Search(ctx context.Context, query string) ([]WebResult, error)
}

// CompletionClient is the optional generative-language collaborator.
type CompletionClient interface {
	// Complete performs a single, non-streaming completion of the user
	// prompt under the given system instruction.
	Complete(ctx context.Context, system, prompt string, temperature float32) (string, error)
}

// Mode tags how an answer was produced, so callers and tests can distinguish
// "answered normally" from "answered via fallback".
type Mode string

const (
	// ModeGenerated means the generative backend produced the answer.
	ModeGenerated Mode = "generated"

	// ModeFallback means the lexical fallback produced the answer, either
	// because no backend is configured or because the backend failed or
	// returned an empty completion.
	ModeFallback Mode = "fallback"
)

// Result is the composer's sole output. A Result is always produced: upstream
// failures degrade the Mode and populate Note/Details, they never surface as
// errors.
type Result struct {
	Mode    Mode
	Answer  string
	Sources []Source
	Note    string
	Details string
}

// systemInstruction is the fixed system prompt for generative answers.
var systemInstruction = strings.Join([]string{
	"You are an expert study assistant.",
	"Answer the user's question clearly and concisely.",
	"First use the provided Study Set context; if insufficient, use the Web Sources if present.",
	"Cite sources inline with [n] and include a short 'Sources' list with URLs at the end when web sources are used.",
	"If the answer is not found, say you don't know and suggest how to refine the question.",
}, " ")

// Composer produces a final answer with attributed sources, choosing among
// generative synthesis, lexical fallback, and error fallback. Collaborators
// are injected; a nil SearchClient disables web search and a nil
// CompletionClient forces the lexical strategy.
type Composer struct {
	builder     *ContextBuilder
	search      SearchClient
	llm         CompletionClient
	temperature float32
	logger      *slog.Logger
}

// NewComposer creates a Composer. builder must be non-nil; search and llm may
// be nil to disable the corresponding collaborator.
func NewComposer(
	builder *ContextBuilder,
	search SearchClient,
	llm CompletionClient,
	temperature float32,
	log *slog.Logger,
) *Composer {
	if builder == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("builder cannot be nil for Composer")
	}
	if log == nil {
		log = slog.Default()
	}
	return &Composer{
		builder:     builder,
		search:      search,
		llm:         llm,
		temperature: temperature,
		logger:      log.With(slog.String("component", "answer_composer")),
	}
}

// Answer runs the pipeline for one question over the given raw flashcard
// pairs. It makes at most one web search call and at most one completion
// call, both best-effort, and always returns a usable Result.
func (c *Composer) Answer(ctx context.Context, question string, rawPairs []Pair, useWeb bool) Result {
	log := logger.FromContextOrDefault(ctx, c.logger)

	pairs := c.builder.PreparePairs(rawPairs)
	studyContext := c.builder.BuildContext(pairs)

	// Web search runs before the completion call because its results feed
	// the prompt. Any failure downgrades to "no web results".
	var web []WebResult
	if useWeb && c.search != nil {
		results, err := c.search.Search(ctx, question)
		if err != nil {
			log.Warn("web search failed, continuing without results",
				slog.String("error", redact.Error(err)))
		} else {
			web = results
		}
	}
	if max := c.builder.Budgets().MaxWebResults; len(web) > max {
		web = web[:max]
	}

	sources := make([]Source, 0, len(web))
	for _, r := range web {
		sources = append(sources, Source{Title: r.Title, URL: r.URL})
	}

	if c.llm == nil {
		log.Debug("no generative backend configured, using lexical fallback",
			slog.Int("pair_count", len(pairs)))
		return Result{
			Mode:    ModeFallback,
			Answer:  FallbackAnswer(question, pairs),
			Sources: sources,
		}
	}

	prompt := c.buildPrompt(question, studyContext, web)

	text, err := c.llm.Complete(ctx, systemInstruction, prompt, c.temperature)
	if err != nil {
		// An upstream LLM failure never becomes a hard failure for the
		// caller; the fallback answers and the note records the cause.
		log.Warn("completion failed, using lexical fallback",
			slog.String("error", redact.Error(err)))
		return Result{
			Mode:    ModeFallback,
			Answer:  FallbackAnswer(question, pairs),
			Note:    "LLM error",
			Details: err.Error(),
		}
	}

	if text == "" {
		log.Debug("empty completion, substituting lexical fallback")
		return Result{
			Mode:    ModeFallback,
			Answer:  FallbackAnswer(question, pairs),
			Sources: sources,
		}
	}

	return Result{
		Mode:    ModeGenerated,
		Answer:  text,
		Sources: sources,
	}
}

// buildPrompt concatenates the question, the study context (if non-empty),
// and the bounded web results (if present) into the user prompt.
func (c *Composer) buildPrompt(question, studyContext string, web []WebResult) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Question: %s", question)

	if studyContext != "" {
		sb.WriteString("\n\nStudy Set Context:\n")
		sb.WriteString(studyContext)
	}

	if len(web) > 0 {
		sb.WriteString("\n\nWeb Sources:\n")
		snippetMax := c.builder.Budgets().WebSnippetChars
		for i, r := range web {
			if i > 0 {
				sb.WriteString("\n\n")
			}
			snippet := r.Snippet
			if runes := []rune(snippet); len(runes) > snippetMax {
				snippet = string(runes[:snippetMax])
			}
			fmt.Fprintf(&sb, "Source %d: %s\n%s\n%s...", i+1, r.Title, r.URL, snippet)
		}
	}

	sb.WriteString("\n\nInstructions: Use the study context first. " +
		"When using web info, cite with [1], [2], etc., and list sources at the end.")
	return sb.String()
}
