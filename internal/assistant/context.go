package assistant

import (
	"fmt"
	"regexp"
	"strings"
)

// Pair is one question/answer flashcard pair considered for answering.
type Pair struct {
	Question string
	Answer   string
}

// Ellipsis is appended when Sanitize truncates a text.
const Ellipsis = "…"

var (
	// controlChars matches the non-printable control characters stripped
	// before any other processing. Tab, LF, and CR survive; they count as
	// whitespace and are collapsed later.
	controlChars = regexp.MustCompile(`[\x00-\x08\x0B\x0C\x0E-\x1F]`)

	// pdfMarkers matches the structural keywords of raw PDF (and similar
	// binary document) content that occasionally leaks through text
	// extraction.
	pdfMarkers = regexp.MustCompile(`(?i)%PDF|\bxref\b|\bobj\b|\bendobj\b|\btrailer\b|\bstartxref\b|\bstream\b|\bendstream\b`)

	// whitespaceRuns matches runs of whitespace collapsed to single spaces.
	whitespaceRuns = regexp.MustCompile(`\s+`)
)

// ContextBuilder turns a raw, possibly-dirty set of flashcards into a safe,
// bounded prompt fragment.
type ContextBuilder struct {
	budgets Budgets
}

// NewContextBuilder creates a ContextBuilder with the given budgets.
// Zero-valued budget fields fall back to the package defaults.
func NewContextBuilder(budgets Budgets) *ContextBuilder {
	return &ContextBuilder{budgets: budgets.withDefaults()}
}

// Budgets returns the effective budgets the builder applies.
func (cb *ContextBuilder) Budgets() Budgets {
	return cb.budgets
}

// IsGibberish reports whether a text should be excluded from prompt
// construction: empty texts, texts carrying binary/PDF structural markers,
// and long texts whose printable-ASCII ratio falls below the configured
// threshold. Texts at or below the minimum length are never rejected on
// ratio alone.
func (cb *ContextBuilder) IsGibberish(text string) bool {
	if text == "" {
		return true
	}

	t := controlChars.ReplaceAllString(text, " ")
	if pdfMarkers.MatchString(t) {
		return true
	}

	runes := []rune(t)
	if len(runes) <= cb.budgets.GibberishMinLen {
		return false
	}

	printable := 0
	for _, r := range runes {
		if (r >= ' ' && r <= '~') || r == '\t' || r == '\n' || r == '\r' {
			printable++
		}
	}

	ratio := float64(printable) / float64(len(runes))
	return ratio < cb.budgets.GibberishMinRatio
}

// Sanitize strips control characters, collapses whitespace runs to single
// spaces, trims, and truncates to maxLen characters with an ellipsis marker.
// Already-sanitized text is a fixed point.
func Sanitize(text string, maxLen int) string {
	if text == "" {
		return ""
	}

	t := controlChars.ReplaceAllString(text, " ")
	t = whitespaceRuns.ReplaceAllString(t, " ")
	t = strings.TrimSpace(t)

	runes := []rune(t)
	if len(runes) > maxLen {
		t = string(runes[:maxLen]) + Ellipsis
	}
	return t
}

// PreparePairs classifies and sanitizes raw flashcard pairs: pairs whose
// question or answer reads as gibberish are dropped, the survivors are
// sanitized at the intake budgets, and the result is capped at MaxPairs to
// bound worst-case work.
func (cb *ContextBuilder) PreparePairs(raw []Pair) []Pair {
	pairs := make([]Pair, 0, len(raw))
	for _, p := range raw {
		if cb.IsGibberish(p.Question) || cb.IsGibberish(p.Answer) {
			continue
		}
		pairs = append(pairs, Pair{
			Question: Sanitize(p.Question, cb.budgets.GeneralChars),
			Answer:   Sanitize(p.Answer, cb.budgets.PairAnswerChars),
		})
		if len(pairs) == cb.budgets.MaxPairs {
			break
		}
	}
	return pairs
}

// BuildContext renders sanitized pairs as "Q: …\nA: …" blocks joined by
// blank lines, greedily keeping whole blocks in order until adding the next
// one would exceed the total budget. A block is never partially included, so
// the output is always a strict prefix of the formatted sequence.
func (cb *ContextBuilder) BuildContext(pairs []Pair) string {
	if len(pairs) == 0 {
		return ""
	}

	var sb strings.Builder
	total := 0
	for _, p := range pairs {
		block := fmt.Sprintf("Q: %s\nA: %s",
			Sanitize(p.Question, cb.budgets.QuestionChars),
			Sanitize(p.Answer, cb.budgets.AnswerChars))
		cost := len([]rune(block))
		if sb.Len() > 0 {
			cost += len("\n\n")
		}
		if total+cost > cb.budgets.ContextChars {
			break
		}
		if sb.Len() > 0 {
			sb.WriteString("\n\n")
		}
		sb.WriteString(block)
		total += cost
	}
	return sb.String()
}
