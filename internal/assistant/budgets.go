package assistant

// Default budget values. The gibberish thresholds are heuristics inherited
// from observed extraction noise, not derived constants; they are exposed as
// configuration so they can be recalibrated without code changes.
const (
	DefaultMaxPairs          = 200
	DefaultContextChars      = 8000
	DefaultQuestionChars     = 300
	DefaultAnswerChars       = 700
	DefaultGeneralChars      = 800
	DefaultPairAnswerChars   = 1000
	DefaultWebSnippetChars   = 400
	DefaultMaxWebResults     = 5
	DefaultGibberishMinLen   = 80
	DefaultGibberishMinRatio = 0.85
)

// Budgets collects every length limit the pipeline applies. A zero value for
// any field falls back to the package default, so config only needs to set
// the limits it wants to override.
type Budgets struct {
	// MaxPairs caps how many flashcard pairs are considered per request.
	MaxPairs int

	// ContextChars is the total character budget of the assembled context block.
	ContextChars int

	// QuestionChars caps a pair's question side inside the context block.
	QuestionChars int

	// AnswerChars caps a pair's answer side inside the context block.
	AnswerChars int

	// GeneralChars is the sanitize budget applied to pair questions on intake.
	GeneralChars int

	// PairAnswerChars is the sanitize budget applied to pair answers on intake.
	PairAnswerChars int

	// WebSnippetChars caps each web result snippet rendered into the prompt.
	WebSnippetChars int

	// MaxWebResults caps how many web results are rendered into the prompt.
	MaxWebResults int

	// GibberishMinLen is the minimum length at which the printable-ratio
	// check applies; shorter texts are never rejected on ratio alone.
	GibberishMinLen int

	// GibberishMinRatio is the minimum fraction of printable ASCII or
	// whitespace characters a text must contain to pass classification.
	GibberishMinRatio float64
}

// DefaultBudgets returns the reference limits.
func DefaultBudgets() Budgets {
	return Budgets{
		MaxPairs:          DefaultMaxPairs,
		ContextChars:      DefaultContextChars,
		QuestionChars:     DefaultQuestionChars,
		AnswerChars:       DefaultAnswerChars,
		GeneralChars:      DefaultGeneralChars,
		PairAnswerChars:   DefaultPairAnswerChars,
		WebSnippetChars:   DefaultWebSnippetChars,
		MaxWebResults:     DefaultMaxWebResults,
		GibberishMinLen:   DefaultGibberishMinLen,
		GibberishMinRatio: DefaultGibberishMinRatio,
	}
}

// withDefaults fills zero-valued fields with the package defaults.
func (b Budgets) withDefaults() Budgets {
	def := DefaultBudgets()
	if b.MaxPairs <= 0 {
		b.MaxPairs = def.MaxPairs
	}
	if b.ContextChars <= 0 {
		b.ContextChars = def.ContextChars
	}
	if b.QuestionChars <= 0 {
		b.QuestionChars = def.QuestionChars
	}
	if b.AnswerChars <= 0 {
		b.AnswerChars = def.AnswerChars
	}
	if b.GeneralChars <= 0 {
		b.GeneralChars = def.GeneralChars
	}
	if b.PairAnswerChars <= 0 {
		b.PairAnswerChars = def.PairAnswerChars
	}
	if b.WebSnippetChars <= 0 {
		b.WebSnippetChars = def.WebSnippetChars
	}
	if b.MaxWebResults <= 0 {
		b.MaxWebResults = def.MaxWebResults
	}
	if b.GibberishMinLen <= 0 {
		b.GibberishMinLen = def.GibberishMinLen
	}
	if b.GibberishMinRatio <= 0 {
		b.GibberishMinRatio = def.GibberishMinRatio
	}
	return b
}
