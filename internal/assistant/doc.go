// Package assistant implements the answer-composition pipeline behind the
// study-set chat: it turns a user question and a bounded, sanitized slice of
// the user's flashcards (plus optional web search results) into a cited
// answer, synthesized by a generative-language backend when one is configured
// and by deterministic lexical retrieval otherwise.
package assistant
