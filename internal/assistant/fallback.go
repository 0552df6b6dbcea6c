package assistant

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// NoMatchAnswer is returned when no flashcard pair shares a token with the
// question.
const NoMatchAnswer = "I couldn't find this topic in your study set. " +
	"Try rephrasing your question or add relevant flashcards."

// multiMatchIntro prefixes the numbered composite answer when several pairs
// qualify.
const multiMatchIntro = "Here's what your study set says about this topic:"

// substringBonus rewards near-exact topic matches over keyword overlap alone.
const substringBonus = 2

// fallbackTopN caps how many matched answers the composite answer lists.
const fallbackTopN = 3

var nonAlphanumeric = regexp.MustCompile(`[^a-z0-9\s]`)

// normalize lower-cases the text and replaces every character outside
// [a-z0-9\s] with a space.
func normalize(s string) string {
	return nonAlphanumeric.ReplaceAllString(strings.ToLower(s), " ")
}

// tokenSet splits normalized text on whitespace into a set of unique tokens.
func tokenSet(s string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, tok := range strings.Fields(normalize(s)) {
		set[tok] = struct{}{}
	}
	return set
}

// FallbackAnswer is the deterministic, dependency-free retrieval strategy
// used when no generative backend is configured or it fails. It scores every
// pair by the number of question tokens it shares, with a bonus when the
// pair's question contains the whole normalized question, and returns the
// best answer(s) verbatim. A pure function of its inputs: no randomness, no
// external calls.
func FallbackAnswer(question string, pairs []Pair) string {
	query := tokenSet(question)
	normQuestion := normalize(question)

	type scored struct {
		pair  Pair
		score int
	}

	ranked := make([]scored, 0, len(pairs))
	for _, p := range pairs {
		words := tokenSet(p.Question + " " + p.Answer)
		overlap := 0
		for tok := range query {
			if _, ok := words[tok]; ok {
				overlap++
			}
		}
		score := overlap
		if strings.Contains(normalize(p.Question), normQuestion) {
			score += substringBonus
		}
		ranked = append(ranked, scored{pair: p, score: score})
	}

	// Stable sort keeps the original pair order on ties, which keeps the
	// whole function deterministic.
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].score > ranked[j].score
	})

	top := make([]scored, 0, fallbackTopN)
	for _, s := range ranked {
		if s.score <= 0 || len(top) == fallbackTopN {
			break
		}
		top = append(top, s)
	}

	switch len(top) {
	case 0:
		return NoMatchAnswer
	case 1:
		return top[0].pair.Answer
	default:
		lines := make([]string, 0, len(top)+1)
		lines = append(lines, multiMatchIntro)
		for i, s := range top {
			lines = append(lines, fmt.Sprintf("%d. %s", i+1, s.pair.Answer))
		}
		return strings.Join(lines, "\n\n")
	}
}
