// Package export converts study sets to and from portable interchange
// formats (CSV, JSON, and plain text) for download and bulk import.
package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/quizlight/quizlight-api/internal/domain"
)

// Format identifies an interchange format.
type Format string

// Supported interchange formats.
const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
	FormatTXT  Format = "txt"
)

// ContentType returns the MIME type to serve for the format.
func (f Format) ContentType() string {
	switch f {
	case FormatJSON:
		return "application/json"
	case FormatTXT:
		return "text/plain; charset=utf-8"
	default:
		return "text/csv; charset=utf-8"
	}
}

// ParseFormat maps a request string to a Format, defaulting to CSV.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "csv":
		return FormatCSV, nil
	case "json":
		return FormatJSON, nil
	case "txt", "text":
		return FormatTXT, nil
	default:
		return "", fmt.Errorf("unsupported export format %q", s)
	}
}

// jsonSet is the JSON interchange shape for one study set.
type jsonSet struct {
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Flashcards  []jsonCard `json:"flashcards"`
}

type jsonCard struct {
	Front string `json:"front"`
	Back  string `json:"back"`
}

// Export renders the study set and its flashcards in the given format.
func Export(set *domain.StudySet, cards []*domain.Flashcard, format Format) ([]byte, error) {
	switch format {
	case FormatCSV:
		return exportCSV(cards)
	case FormatJSON:
		return exportJSON(set, cards)
	case FormatTXT:
		return exportTXT(cards), nil
	default:
		return nil, fmt.Errorf("unsupported export format %q", format)
	}
}

// exportCSV renders "Front,Back" rows with a header. encoding/csv handles
// quoting of commas, quotes, and newlines in card text.
func exportCSV(cards []*domain.Flashcard) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write([]string{"Front", "Back"}); err != nil {
		return nil, fmt.Errorf("writing csv header: %w", err)
	}
	for _, card := range cards {
		if err := w.Write([]string{card.FrontText, card.BackText}); err != nil {
			return nil, fmt.Errorf("writing csv row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flushing csv: %w", err)
	}

	return buf.Bytes(), nil
}

func exportJSON(set *domain.StudySet, cards []*domain.Flashcard) ([]byte, error) {
	out := jsonSet{
		Title:       set.Title,
		Description: set.Description,
		Flashcards:  make([]jsonCard, 0, len(cards)),
	}
	for _, card := range cards {
		out.Flashcards = append(out.Flashcards, jsonCard{
			Front: card.FrontText,
			Back:  card.BackText,
		})
	}
	return json.MarshalIndent(out, "", "  ")
}

// exportTXT renders "Q: …\nA: …" blocks separated by blank lines.
func exportTXT(cards []*domain.Flashcard) []byte {
	blocks := make([]string, 0, len(cards))
	for _, card := range cards {
		blocks = append(blocks, fmt.Sprintf("Q: %s\nA: %s", card.FrontText, card.BackText))
	}
	return []byte(strings.Join(blocks, "\n\n"))
}

// Filename builds a download filename from the set title: non-alphanumeric
// runs become single underscores, with the format as extension.
func Filename(title string, format Format) string {
	var sb strings.Builder
	lastUnderscore := false
	for _, r := range strings.ToLower(title) {
		isAlnum := (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')
		if isAlnum {
			sb.WriteRune(r)
			lastUnderscore = false
			continue
		}
		if !lastUnderscore && sb.Len() > 0 {
			sb.WriteByte('_')
			lastUnderscore = true
		}
	}
	name := strings.TrimSuffix(sb.String(), "_")
	if name == "" {
		name = "study_set"
	}
	return fmt.Sprintf("%s.%s", name, format)
}
