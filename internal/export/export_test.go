package export

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quizlight/quizlight-api/internal/domain"
)

func sampleSet(t *testing.T) (*domain.StudySet, []*domain.Flashcard) {
	t.Helper()
	set, err := domain.NewStudySet(uuid.New(), "Cell Biology", "Chapter 4 review", false)
	require.NoError(t, err)

	first, err := domain.NewFlashcard(set.ID, "What is mitosis?", "Cell division.", 0)
	require.NoError(t, err)
	second, err := domain.NewFlashcard(set.ID, "Comma, and \"quotes\"", "Still, fine", 1)
	require.NoError(t, err)

	return set, []*domain.Flashcard{first, second}
}

func TestExportCSV(t *testing.T) {
	t.Parallel()
	set, cards := sampleSet(t)

	out, err := Export(set, cards, FormatCSV)
	require.NoError(t, err)

	got := string(out)
	assert.Equal(t, "Front,Back\nWhat is mitosis?,Cell division.\n\"Comma, and \"\"quotes\"\"\",\"Still, fine\"\n", got)
}

func TestExportJSON(t *testing.T) {
	t.Parallel()
	set, cards := sampleSet(t)

	out, err := Export(set, cards, FormatJSON)
	require.NoError(t, err)

	var parsed map[string]any
	require.NoError(t, json.Unmarshal(out, &parsed))
	assert.Equal(t, "Cell Biology", parsed["title"])
	assert.Equal(t, "Chapter 4 review", parsed["description"])
	assert.Len(t, parsed["flashcards"], 2)
}

func TestExportTXT(t *testing.T) {
	t.Parallel()
	set, cards := sampleSet(t)

	out, err := Export(set, cards[:1], FormatTXT)
	require.NoError(t, err)
	assert.Equal(t, "Q: What is mitosis?\nA: Cell division.", string(out))
}

func TestExportImportRoundTrip(t *testing.T) {
	t.Parallel()
	set, cards := sampleSet(t)

	for _, format := range []Format{FormatCSV, FormatJSON, FormatTXT} {
		out, err := Export(set, cards, format)
		require.NoError(t, err)

		imported, err := Import(out, format)
		require.NoError(t, err, "format %s", format)
		require.Len(t, imported.Cards, 2, "format %s", format)
		assert.Equal(t, "What is mitosis?", imported.Cards[0].Front)
		assert.Equal(t, "Cell division.", imported.Cards[0].Back)
	}
}

func TestImportCSV(t *testing.T) {
	t.Parallel()

	t.Run("skips header and blank rows", func(t *testing.T) {
		t.Parallel()
		data := "Front,Back\nterm,definition\n,missing front\nother term,\n"
		set, err := Import([]byte(data), FormatCSV)
		require.NoError(t, err)
		require.Len(t, set.Cards, 1)
		assert.Equal(t, ImportedCard{Front: "term", Back: "definition"}, set.Cards[0])
	})

	t.Run("headerless payload keeps the first row", func(t *testing.T) {
		t.Parallel()
		set, err := Import([]byte("term,definition\n"), FormatCSV)
		require.NoError(t, err)
		assert.Len(t, set.Cards, 1)
	})

	t.Run("empty payload is ErrNoCards", func(t *testing.T) {
		t.Parallel()
		_, err := Import([]byte(""), FormatCSV)
		assert.ErrorIs(t, err, ErrNoCards)
	})
}

func TestImportJSON(t *testing.T) {
	t.Parallel()

	t.Run("accepts front_text key spelling", func(t *testing.T) {
		t.Parallel()
		data := `{"title":"T","flashcards":[{"front_text":"q","back_text":"a"}]}`
		set, err := Import([]byte(data), FormatJSON)
		require.NoError(t, err)
		assert.Equal(t, "T", set.Title)
		require.Len(t, set.Cards, 1)
		assert.Equal(t, ImportedCard{Front: "q", Back: "a"}, set.Cards[0])
	})

	t.Run("malformed json is an error", func(t *testing.T) {
		t.Parallel()
		_, err := Import([]byte("{nope"), FormatJSON)
		assert.ErrorContains(t, err, "parsing json")
	})
}

func TestImportTXT(t *testing.T) {
	t.Parallel()

	data := "Q: one\nA: 1\n\nstray line\nQ: two\nA: 2\nA: orphan answer\n"
	set, err := Import([]byte(data), FormatTXT)
	require.NoError(t, err)
	require.Len(t, set.Cards, 2)
	assert.Equal(t, ImportedCard{Front: "two", Back: "2"}, set.Cards[1])
}

func TestParseFormat(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"", FormatCSV, false},
		{"csv", FormatCSV, false},
		{"JSON", FormatJSON, false},
		{"txt", FormatTXT, false},
		{"text", FormatTXT, false},
		{"xml", "", true},
	}
	for _, tc := range cases {
		got, err := ParseFormat(tc.in)
		if tc.wantErr {
			assert.Error(t, err, "input %q", tc.in)
			continue
		}
		require.NoError(t, err, "input %q", tc.in)
		assert.Equal(t, tc.want, got, "input %q", tc.in)
	}
}

func TestFilename(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "cell_biology.csv", Filename("Cell Biology", FormatCSV))
	assert.Equal(t, "ap_euro_unit_3.json", Filename("AP Euro: Unit 3!", FormatJSON))
	assert.Equal(t, "study_set.txt", Filename("???", FormatTXT))
}
