package services

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/purge-dev/CliniCord/models"
)

func TestNewInstrumentCatalog(t *testing.T) {
	t.Run("Built-in inventory loads and validates", func(t *testing.T) {
		catalog, err := NewInstrumentCatalog("")
		assert.NoError(t, err)

		in, ok := catalog.Get(BDIInstrumentID)
		assert.True(t, ok)
		assert.Len(t, in.Questions, 21)
		assert.Equal(t, 63, in.MaxTotal())
		assert.Len(t, catalog.List(), 1)
	})

	t.Run("Unknown instrument is reported absent", func(t *testing.T) {
		catalog, err := NewInstrumentCatalog("")
		assert.NoError(t, err)

		_, ok := catalog.Get("no-such-thing")
		assert.False(t, ok)
	})

	t.Run("Malformed instrument aborts loading", func(t *testing.T) {
		_, err := newInstrumentCatalog([]models.Instrument{
			{ID: "broken", Questions: []models.Question{{Prompt: "Q", Choices: []models.Choice{{Label: "only one", Points: 0}}}}},
		})
		assert.Error(t, err)
		var malformed *models.MalformedInstrumentError
		assert.ErrorAs(t, err, &malformed)
	})

	t.Run("Duplicate instrument IDs abort loading", func(t *testing.T) {
		in := defaultBDIInstrument()
		_, err := newInstrumentCatalog([]models.Instrument{in, in})
		assert.Error(t, err)
	})
}

func TestLoadInstrumentDir(t *testing.T) {
	const phqYAML = `id: phq-2
name: Patient Health Questionnaire-2
questions:
  - prompt: "Little interest or pleasure in doing things"
    choices:
      - label: "Not at all"
        points: 0
      - label: "Several days"
        points: 1
      - label: "More than half the days"
        points: 2
      - label: "Nearly every day"
        points: 3
  - prompt: "Feeling down, depressed, or hopeless"
    choices:
      - label: "Not at all"
        points: 0
      - label: "Several days"
        points: 1
      - label: "More than half the days"
        points: 2
      - label: "Nearly every day"
        points: 3
bands:
  - low: 0
    high: 2
    category: "negative screen"
    guidance: "Your responses do not suggest further screening is needed."
  - low: 3
    high: 6
    category: "positive screen"
    guidance: "Consider a follow-up with a clinician."
`

	t.Run("YAML instruments load alongside the built-ins", func(t *testing.T) {
		dir := t.TempDir()
		assert.NoError(t, os.WriteFile(filepath.Join(dir, "phq2.yaml"), []byte(phqYAML), 0644))

		catalog, err := NewInstrumentCatalog(dir)
		assert.NoError(t, err)
		assert.Len(t, catalog.List(), 2)

		in, ok := catalog.Get("phq-2")
		assert.True(t, ok)
		assert.Equal(t, "Patient Health Questionnaire-2", in.Name)
		assert.Len(t, in.Questions, 2)
		assert.Equal(t, 6, in.MaxTotal())

		band, ok := in.BandFor(4)
		assert.True(t, ok)
		assert.Equal(t, "positive screen", band.Category)
	})

	t.Run("Non-YAML files are ignored", func(t *testing.T) {
		dir := t.TempDir()
		assert.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("not an instrument"), 0644))

		catalog, err := NewInstrumentCatalog(dir)
		assert.NoError(t, err)
		assert.Len(t, catalog.List(), 1)
	})

	t.Run("Missing directory fails", func(t *testing.T) {
		_, err := NewInstrumentCatalog(filepath.Join(t.TempDir(), "absent"))
		assert.Error(t, err)
	})

	t.Run("Malformed YAML instrument fails loading", func(t *testing.T) {
		dir := t.TempDir()
		bad := `id: bad
name: Bad
questions:
  - prompt: "Q"
    choices:
      - label: "only one"
        points: 0
bands:
  - low: 0
    high: 0
    category: "x"
`
		assert.NoError(t, os.WriteFile(filepath.Join(dir, "bad.yml"), []byte(bad), 0644))

		_, err := NewInstrumentCatalog(dir)
		assert.Error(t, err)
		var malformed *models.MalformedInstrumentError
		assert.ErrorAs(t, err, &malformed)
	})
}
