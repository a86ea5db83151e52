package models

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func validInstrument() Instrument {
	return Instrument{
		ID:   "stress-check",
		Name: "Stress Check",
		Questions: []Question{
			{
				Prompt: "Restlessness",
				Choices: []Choice{
					{Label: "Not at all", Points: 0},
					{Label: "Sometimes", Points: 1},
					{Label: "Often", Points: 2},
				},
			},
			{
				Prompt: "Sleep",
				Choices: []Choice{
					{Label: "Sleeping fine", Points: 0},
					{Label: "Some trouble sleeping", Points: 1},
					{Label: "Barely sleeping", Points: 2},
				},
			},
		},
		Bands: []ScoreBand{
			{Low: 0, High: 1, Category: "Low", Guidance: "You seem to be doing okay."},
			{Low: 2, High: 4, Category: "High", Guidance: "Consider talking to someone."},
		},
	}
}

func TestInstrumentValidate(t *testing.T) {
	t.Run("Valid instrument passes", func(t *testing.T) {
		in := validInstrument()
		assert.NoError(t, in.Validate())
	})

	t.Run("Empty ID rejected", func(t *testing.T) {
		in := validInstrument()
		in.ID = ""
		assertMalformed(t, in.Validate())
	})

	t.Run("No questions rejected", func(t *testing.T) {
		in := validInstrument()
		in.Questions = nil
		assertMalformed(t, in.Validate())
	})

	t.Run("Question with a single choice rejected", func(t *testing.T) {
		in := validInstrument()
		in.Questions[0].Choices = in.Questions[0].Choices[:1]
		assertMalformed(t, in.Validate())
	})

	t.Run("Negative point value rejected", func(t *testing.T) {
		in := validInstrument()
		in.Questions[1].Choices[0].Points = -1
		assertMalformed(t, in.Validate())
	})

	t.Run("Band gap rejected", func(t *testing.T) {
		in := validInstrument()
		in.Bands[1].Low = 3 // Leaves total 2 uncovered
		assertMalformed(t, in.Validate())
	})

	t.Run("Band overlap rejected", func(t *testing.T) {
		in := validInstrument()
		in.Bands[1].Low = 1
		assertMalformed(t, in.Validate())
	})

	t.Run("Bands not reaching max total rejected", func(t *testing.T) {
		in := validInstrument()
		in.Bands[1].High = 3 // Achievable max is 4
		assertMalformed(t, in.Validate())
	})

	t.Run("Bands exceeding max total rejected", func(t *testing.T) {
		in := validInstrument()
		in.Bands[1].High = 5
		assertMalformed(t, in.Validate())
	})

	t.Run("Bands not starting at zero rejected", func(t *testing.T) {
		in := validInstrument()
		in.Bands[0].Low = 1
		assertMalformed(t, in.Validate())
	})
}

func assertMalformed(t *testing.T, err error) {
	t.Helper()
	assert.Error(t, err)
	var malformed *MalformedInstrumentError
	assert.True(t, errors.As(err, &malformed), "expected MalformedInstrumentError, got %v", err)
}

func TestInstrumentMaxTotal(t *testing.T) {
	in := validInstrument()
	assert.Equal(t, 4, in.MaxTotal())
}

func TestInstrumentBandFor(t *testing.T) {
	in := validInstrument()

	band, ok := in.BandFor(0)
	assert.True(t, ok)
	assert.Equal(t, "Low", band.Category)

	band, ok = in.BandFor(3)
	assert.True(t, ok)
	assert.Equal(t, "High", band.Category)

	_, ok = in.BandFor(99)
	assert.False(t, ok)
}

func TestInstrumentBandsPartitionScoreRange(t *testing.T) {
	// Every achievable total must land in exactly one band.
	in := validInstrument()
	assert.NoError(t, in.Validate())

	for total := 0; total <= in.MaxTotal(); total++ {
		matches := 0
		for _, b := range in.Bands {
			if b.Contains(total) {
				matches++
			}
		}
		assert.Equal(t, 1, matches, "total %d should fall in exactly one band", total)
	}
}

func TestInstrumentResolveChoice(t *testing.T) {
	in := validInstrument()

	t.Run("Positional index", func(t *testing.T) {
		idx, ok := in.ResolveChoice(0, "2")
		assert.True(t, ok)
		assert.Equal(t, 2, idx)
	})

	t.Run("Exact label", func(t *testing.T) {
		idx, ok := in.ResolveChoice(0, "Sometimes")
		assert.True(t, ok)
		assert.Equal(t, 1, idx)
	})

	t.Run("Label match is case-insensitive", func(t *testing.T) {
		idx, ok := in.ResolveChoice(1, "bArElY sLeEpInG")
		assert.True(t, ok)
		assert.Equal(t, 2, idx)
	})

	t.Run("Label match tolerates surrounding whitespace", func(t *testing.T) {
		idx, ok := in.ResolveChoice(0, "  Often  ")
		assert.True(t, ok)
		assert.Equal(t, 2, idx)
	})

	t.Run("No match", func(t *testing.T) {
		_, ok := in.ResolveChoice(0, "banana")
		assert.False(t, ok)
	})

	t.Run("Index out of range", func(t *testing.T) {
		_, ok := in.ResolveChoice(0, "3")
		assert.False(t, ok)
	})

	t.Run("Empty input", func(t *testing.T) {
		_, ok := in.ResolveChoice(0, "   ")
		assert.False(t, ok)
	})

	t.Run("Question index out of range", func(t *testing.T) {
		_, ok := in.ResolveChoice(5, "0")
		assert.False(t, ok)
	})
}

func TestMalformedInstrumentErrorMessage(t *testing.T) {
	err := &MalformedInstrumentError{InstrumentID: "bdi", Reason: "instrument has no questions"}
	assert.Equal(t, fmt.Sprintf("malformed instrument %q: instrument has no questions", "bdi"), err.Error())
}
