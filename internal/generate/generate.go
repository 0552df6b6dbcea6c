// Package generate derives draft flashcards from pasted or uploaded study
// notes. The heuristics are intentionally simple: they give the user a
// starting set to edit, not a finished one.
package generate

import (
	"regexp"
	"strings"
)

// maxCards caps how many draft cards one text produces.
const maxCards = 10

// minSentenceLen filters out fragments too short to carry a fact.
const minSentenceLen = 20

// minFactLen and minFactWords select sentences substantial enough to become
// a question/answer pair.
const (
	minFactLen   = 30
	minFactWords = 5
)

// minKeywordLen is the shortest word considered a usable question topic.
const minKeywordLen = 4

var sentenceBoundary = regexp.MustCompile(`[.!?]+`)

// Card is one generated front/back draft pair.
type Card struct {
	Front string
	Back  string
}

// sentences splits text on sentence-ending punctuation and keeps trimmed
// sentences past the minimum length.
func sentences(text string) []string {
	parts := sentenceBoundary.Split(text, -1)
	kept := make([]string, 0, len(parts))
	for _, part := range parts {
		s := strings.TrimSpace(part)
		if len(s) > minSentenceLen {
			kept = append(kept, s)
		}
	}
	return kept
}

// keyword picks the first word longer than the keyword threshold, stripped
// of surrounding punctuation. Returns "" when no word qualifies.
func keyword(sentence string) string {
	for _, word := range strings.Fields(sentence) {
		w := strings.Trim(word, `.,;:!?"'()`)
		if len(w) > minKeywordLen {
			return w
		}
	}
	return ""
}

// FromText produces up to ten draft cards from free-form study notes. Each
// substantial sentence becomes one card: the front asks about the sentence's
// first notable word, the back is the sentence itself.
func FromText(text string) []Card {
	cards := make([]Card, 0, maxCards)
	for _, sentence := range sentences(text) {
		if len(cards) == maxCards {
			break
		}
		if len(sentence) <= minFactLen || len(strings.Fields(sentence)) <= minFactWords {
			continue
		}

		topic := keyword(sentence)
		if topic == "" {
			continue
		}

		cards = append(cards, Card{
			Front: "What do your notes say about \"" + topic + "\"?",
			Back:  sentence + ".",
		})
	}
	return cards
}
