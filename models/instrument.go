package models

import (
	"fmt"
	"strings"
)

// Choice is one selectable answer to a Question, carrying the points it
// contributes to the total score.
type Choice struct {
	Label  string `json:"label" mapstructure:"label"`
	Points int    `json:"points" mapstructure:"points"`
}

// Question is a single prompt with an ordered set of choices. The position
// of a choice in Choices is the stable index the presenter enumerates.
type Question struct {
	Prompt  string   `json:"prompt" mapstructure:"prompt"`
	Choices []Choice `json:"choices" mapstructure:"choices"`
}

// ScoreBand maps an inclusive score range to a named severity category and
// its guidance text.
type ScoreBand struct {
	Low      int    `json:"low" mapstructure:"low"`
	High     int    `json:"high" mapstructure:"high"`
	Category string `json:"category" mapstructure:"category"`
	Guidance string `json:"guidance" mapstructure:"guidance"`
	Caution  string `json:"caution,omitempty" mapstructure:"caution"`
}

// Contains reports whether total falls inside the band's inclusive range.
func (b ScoreBand) Contains(total int) bool {
	return total >= b.Low && total <= b.High
}

// Instrument is a named, ordered questionnaire with a fixed scoring table.
// Instruments are immutable after Validate passes and are shared read-only
// across all sessions.
type Instrument struct {
	ID        string      `json:"id" mapstructure:"id"`
	Name      string      `json:"name" mapstructure:"name"`
	Questions []Question  `json:"questions" mapstructure:"questions"`
	Bands     []ScoreBand `json:"bands" mapstructure:"bands"`
}

// MaxTotal is the highest achievable total score: the sum over all
// questions of their highest-valued choice.
func (in *Instrument) MaxTotal() int {
	total := 0
	for _, q := range in.Questions {
		max := 0
		for _, c := range q.Choices {
			if c.Points > max {
				max = c.Points
			}
		}
		total += max
	}
	return total
}

// BandFor returns the band containing total, or false if no band matches.
// With a validated instrument a miss is impossible for totals in range.
func (in *Instrument) BandFor(total int) (ScoreBand, bool) {
	for _, b := range in.Bands {
		if b.Contains(total) {
			return b, true
		}
	}
	return ScoreBand{}, false
}

// ResolveChoice maps raw user input to a choice index for the question at
// the given position. Accepted forms: the zero-based index the presenter
// enumerates ("0".."N-1"), or a case-insensitive exact match on the choice
// label. Returns -1 and false when nothing matches.
func (in *Instrument) ResolveChoice(questionIndex int, rawInput string) (int, bool) {
	if questionIndex < 0 || questionIndex >= len(in.Questions) {
		return -1, false
	}
	q := in.Questions[questionIndex]
	trimmed := strings.TrimSpace(rawInput)
	if trimmed == "" {
		return -1, false
	}

	// Positional selection first: a bare number is always an index, never a
	// label, so numeric labels cannot shadow enumeration.
	if idx, ok := parseChoiceIndex(trimmed); ok {
		if idx >= 0 && idx < len(q.Choices) {
			return idx, true
		}
		return -1, false
	}

	for i, c := range q.Choices {
		if strings.EqualFold(strings.TrimSpace(c.Label), trimmed) {
			return i, true
		}
	}
	return -1, false
}

func parseChoiceIndex(s string) (int, bool) {
	if len(s) == 0 || len(s) > 3 {
		return 0, false
	}
	n := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, false
		}
		n = n*10 + int(r-'0')
	}
	return n, true
}

// Validate checks the structural invariants an instrument must satisfy
// before it may be served: at least one question, at least two choices per
// question, no negative point values, and score bands that partition
// [0, MaxTotal] with no gaps or overlaps. Any violation is returned as a
// MalformedInstrumentError; a process must not start with one.
func (in *Instrument) Validate() error {
	if in.ID == "" {
		return &MalformedInstrumentError{InstrumentID: in.ID, Reason: "instrument ID is empty"}
	}
	if len(in.Questions) == 0 {
		return &MalformedInstrumentError{InstrumentID: in.ID, Reason: "instrument has no questions"}
	}
	for qi, q := range in.Questions {
		if strings.TrimSpace(q.Prompt) == "" {
			return &MalformedInstrumentError{InstrumentID: in.ID, Reason: fmt.Sprintf("question %d has an empty prompt", qi)}
		}
		if len(q.Choices) < 2 {
			return &MalformedInstrumentError{InstrumentID: in.ID, Reason: fmt.Sprintf("question %d has %d choices, need at least 2", qi, len(q.Choices))}
		}
		for ci, c := range q.Choices {
			if c.Points < 0 {
				return &MalformedInstrumentError{InstrumentID: in.ID, Reason: fmt.Sprintf("question %d choice %d has negative point value %d", qi, ci, c.Points)}
			}
			if strings.TrimSpace(c.Label) == "" {
				return &MalformedInstrumentError{InstrumentID: in.ID, Reason: fmt.Sprintf("question %d choice %d has an empty label", qi, ci)}
			}
		}
	}

	if len(in.Bands) == 0 {
		return &MalformedInstrumentError{InstrumentID: in.ID, Reason: "instrument has no score bands"}
	}
	// Bands must be contiguous from 0 through MaxTotal, in order.
	next := 0
	for bi, b := range in.Bands {
		if b.Low != next {
			return &MalformedInstrumentError{InstrumentID: in.ID, Reason: fmt.Sprintf("band %d starts at %d, expected %d (bands must be contiguous from 0)", bi, b.Low, next)}
		}
		if b.High < b.Low {
			return &MalformedInstrumentError{InstrumentID: in.ID, Reason: fmt.Sprintf("band %d range [%d,%d] is inverted", bi, b.Low, b.High)}
		}
		if strings.TrimSpace(b.Category) == "" {
			return &MalformedInstrumentError{InstrumentID: in.ID, Reason: fmt.Sprintf("band %d has an empty category label", bi)}
		}
		next = b.High + 1
	}
	if maxTotal := in.MaxTotal(); next != maxTotal+1 {
		return &MalformedInstrumentError{InstrumentID: in.ID, Reason: fmt.Sprintf("bands cover [0,%d] but the achievable score range is [0,%d]", next-1, maxTotal)}
	}
	return nil
}
