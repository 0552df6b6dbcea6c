package export

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrNoCards is returned when an import payload parses but contains no
// usable flashcard pairs.
var ErrNoCards = errors.New("no flashcards found in import data")

// ImportedCard is one front/back pair parsed from an import payload, before
// it is turned into a domain Flashcard.
type ImportedCard struct {
	Front string
	Back  string
}

// ImportedSet is the result of parsing an import payload.
type ImportedSet struct {
	Title       string
	Description string
	Cards       []ImportedCard
}

// Import parses a payload in the given format. Title and Description are
// only populated for JSON payloads; CSV and TXT carry cards alone.
func Import(data []byte, format Format) (*ImportedSet, error) {
	switch format {
	case FormatCSV:
		return importCSV(data)
	case FormatJSON:
		return importJSON(data)
	case FormatTXT:
		return importTXT(data)
	default:
		return nil, fmt.Errorf("unsupported import format %q", format)
	}
}

// importCSV accepts two-column rows, skipping a "Front,Back" header when
// present and any row with a blank side.
func importCSV(data []byte) (*ImportedSet, error) {
	r := csv.NewReader(strings.NewReader(string(data)))
	r.FieldsPerRecord = -1

	set := &ImportedSet{}
	first := true
	for {
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parsing csv: %w", err)
		}
		if len(record) < 2 {
			continue
		}

		front := strings.TrimSpace(record[0])
		back := strings.TrimSpace(record[1])

		if first {
			first = false
			if strings.EqualFold(front, "front") && strings.EqualFold(back, "back") {
				continue
			}
		}
		if front == "" || back == "" {
			continue
		}
		set.Cards = append(set.Cards, ImportedCard{Front: front, Back: back})
	}

	if len(set.Cards) == 0 {
		return nil, ErrNoCards
	}
	return set, nil
}

// importJSON accepts the export shape, tolerating both "front"/"back" and
// "front_text"/"back_text" key spellings.
func importJSON(data []byte) (*ImportedSet, error) {
	var payload struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		Flashcards  []struct {
			Front     string `json:"front"`
			Back      string `json:"back"`
			FrontText string `json:"front_text"`
			BackText  string `json:"back_text"`
		} `json:"flashcards"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("parsing json: %w", err)
	}

	set := &ImportedSet{
		Title:       strings.TrimSpace(payload.Title),
		Description: strings.TrimSpace(payload.Description),
	}
	for _, card := range payload.Flashcards {
		front := strings.TrimSpace(card.Front)
		if front == "" {
			front = strings.TrimSpace(card.FrontText)
		}
		back := strings.TrimSpace(card.Back)
		if back == "" {
			back = strings.TrimSpace(card.BackText)
		}
		if front == "" || back == "" {
			continue
		}
		set.Cards = append(set.Cards, ImportedCard{Front: front, Back: back})
	}

	if len(set.Cards) == 0 {
		return nil, ErrNoCards
	}
	return set, nil
}

// importTXT accepts "Q: …"/"A: …" line pairs. A question line opens a pair;
// the next answer line closes it. Anything else is ignored.
func importTXT(data []byte) (*ImportedSet, error) {
	set := &ImportedSet{}
	var front string

	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(line, "Q:"):
			front = strings.TrimSpace(strings.TrimPrefix(line, "Q:"))
		case strings.HasPrefix(line, "A:") && front != "":
			back := strings.TrimSpace(strings.TrimPrefix(line, "A:"))
			if back != "" {
				set.Cards = append(set.Cards, ImportedCard{Front: front, Back: back})
			}
			front = ""
		}
	}

	if len(set.Cards) == 0 {
		return nil, ErrNoCards
	}
	return set, nil
}
