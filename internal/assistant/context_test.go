package assistant

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsGibberish(t *testing.T) {
	t.Parallel()

	cb := NewContextBuilder(DefaultBudgets())

	t.Run("empty text is gibberish", func(t *testing.T) {
		t.Parallel()
		assert.True(t, cb.IsGibberish(""))
	})

	t.Run("ordinary text passes", func(t *testing.T) {
		t.Parallel()
		assert.False(t, cb.IsGibberish("What is the capital of France?"))
	})

	t.Run("pdf structural markers are rejected", func(t *testing.T) {
		t.Parallel()
		for _, text := range []string{
			"%PDF-1.7 some header bytes",
			"%pdf-1.4",
			"0000000016 00000 n xref table",
			"4 0 obj << /Length 128 >>",
			"endobj",
			"trailer << /Size 22 >>",
			"startxref 11734",
			"stream of extracted bytes",
			"endstream",
		} {
			assert.True(t, cb.IsGibberish(text), "expected gibberish: %q", text)
		}
	})

	t.Run("marker words only match whole words", func(t *testing.T) {
		t.Parallel()
		// "objects" and "streaming" contain marker substrings but are not
		// the bare keywords.
		assert.False(t, cb.IsGibberish("JavaScript objects support streaming APIs"))
	})

	t.Run("short text never fails the ratio check", func(t *testing.T) {
		t.Parallel()
		// 40 runes, mostly non-ASCII: below the length threshold, so the
		// ratio check does not apply.
		short := strings.Repeat("ф", 40)
		assert.False(t, cb.IsGibberish(short))
	})

	t.Run("ratio check applies past the length threshold", func(t *testing.T) {
		t.Parallel()
		// 100 runes with 16 non-printable-ASCII: ratio 0.84 < 0.85.
		low := strings.Repeat("a", 84) + strings.Repeat("ф", 16)
		assert.True(t, cb.IsGibberish(low))

		// 100 runes with 14 non-printable-ASCII: ratio 0.86 passes.
		high := strings.Repeat("a", 86) + strings.Repeat("ф", 14)
		assert.False(t, cb.IsGibberish(high))
	})

	t.Run("exactly the minimum length is exempt from the ratio check", func(t *testing.T) {
		t.Parallel()
		atBoundary := strings.Repeat("ф", DefaultGibberishMinLen)
		assert.False(t, cb.IsGibberish(atBoundary))

		pastBoundary := strings.Repeat("ф", DefaultGibberishMinLen+1)
		assert.True(t, cb.IsGibberish(pastBoundary))
	})
}

func TestSanitize(t *testing.T) {
	t.Parallel()

	t.Run("strips control characters and collapses whitespace", func(t *testing.T) {
		t.Parallel()
		got := Sanitize("hello\x00\x01  world\t\t again", 100)
		assert.Equal(t, "hello world again", got)
	})

	t.Run("trims surrounding whitespace", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "mid", Sanitize("  mid  ", 100))
	})

	t.Run("truncates by rune count with ellipsis", func(t *testing.T) {
		t.Parallel()
		got := Sanitize("ααββγγδδεε", 4)
		assert.Equal(t, "ααββ"+Ellipsis, got)
	})

	t.Run("text at the limit is untouched", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "abcd", Sanitize("abcd", 4))
	})

	t.Run("sanitizing twice is a fixed point", func(t *testing.T) {
		t.Parallel()
		once := Sanitize(strings.Repeat("word ", 300), 800)
		twice := Sanitize(once, 800)
		assert.Equal(t, once, twice)
	})

	t.Run("empty in empty out", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "", Sanitize("", 10))
	})
}

func TestPreparePairs(t *testing.T) {
	t.Parallel()

	t.Run("drops pairs with gibberish on either side", func(t *testing.T) {
		t.Parallel()
		cb := NewContextBuilder(DefaultBudgets())
		pairs := cb.PreparePairs([]Pair{
			{Question: "What is DNA?", Answer: "Deoxyribonucleic acid."},
			{Question: "%PDF-1.5 garbage", Answer: "fine answer"},
			{Question: "fine question", Answer: "trailer << /Root 1 0 R >>"},
			{Question: "", Answer: "orphan answer"},
		})
		require.Len(t, pairs, 1)
		assert.Equal(t, "What is DNA?", pairs[0].Question)
	})

	t.Run("sanitizes surviving pairs at the intake budgets", func(t *testing.T) {
		t.Parallel()
		cb := NewContextBuilder(Budgets{GeneralChars: 10, PairAnswerChars: 12})
		pairs := cb.PreparePairs([]Pair{
			{
				Question: "a question longer than ten characters",
				Answer:   "an answer longer than twelve characters",
			},
		})
		require.Len(t, pairs, 1)
		assert.Equal(t, "a question"+Ellipsis, pairs[0].Question)
		assert.Equal(t, "an answer lo"+Ellipsis, pairs[0].Answer)
	})

	t.Run("caps the number of pairs", func(t *testing.T) {
		t.Parallel()
		cb := NewContextBuilder(Budgets{MaxPairs: 3})
		raw := make([]Pair, 10)
		for i := range raw {
			raw[i] = Pair{Question: "steady question", Answer: "steady answer"}
		}
		assert.Len(t, cb.PreparePairs(raw), 3)
	})
}

func TestBuildContext(t *testing.T) {
	t.Parallel()

	t.Run("formats pairs as Q/A blocks joined by blank lines", func(t *testing.T) {
		t.Parallel()
		cb := NewContextBuilder(DefaultBudgets())
		got := cb.BuildContext([]Pair{
			{Question: "q1", Answer: "a1"},
			{Question: "q2", Answer: "a2"},
		})
		assert.Equal(t, "Q: q1\nA: a1\n\nQ: q2\nA: a2", got)
	})

	t.Run("empty input produces empty context", func(t *testing.T) {
		t.Parallel()
		cb := NewContextBuilder(DefaultBudgets())
		assert.Equal(t, "", cb.BuildContext(nil))
	})

	t.Run("never exceeds the total budget and never splits a block", func(t *testing.T) {
		t.Parallel()
		cb := NewContextBuilder(Budgets{ContextChars: 30})

		pairs := []Pair{
			{Question: "first", Answer: "one"},   // "Q: first\nA: one" = 15 runes
			{Question: "second", Answer: "two"},  // block + separator would be 33
			{Question: "third", Answer: "three"}, // never reached
		}
		got := cb.BuildContext(pairs)
		assert.Equal(t, "Q: first\nA: one", got)
		assert.LessOrEqual(t, len([]rune(got)), 30)
	})

	t.Run("output is a strict prefix of the full rendering", func(t *testing.T) {
		t.Parallel()
		pairs := make([]Pair, 50)
		for i := range pairs {
			pairs[i] = Pair{
				Question: strings.Repeat("q", 120),
				Answer:   strings.Repeat("a", 250),
			}
		}

		full := NewContextBuilder(Budgets{ContextChars: 1 << 20}).BuildContext(pairs)
		bounded := NewContextBuilder(Budgets{ContextChars: 2000}).BuildContext(pairs)

		assert.True(t, strings.HasPrefix(full, bounded))
		assert.LessOrEqual(t, len([]rune(bounded)), 2000)
	})

	t.Run("applies the per-side context budgets", func(t *testing.T) {
		t.Parallel()
		cb := NewContextBuilder(Budgets{QuestionChars: 5, AnswerChars: 6})
		got := cb.BuildContext([]Pair{
			{Question: "a long question", Answer: "a longer answer"},
		})
		assert.Equal(t, "Q: a lon"+Ellipsis+"\nA: a long"+Ellipsis, got)
	})
}
