package services

import (
	"fmt"
	"time"

	"github.com/purge-dev/CliniCord/models"
)

// Score computes the result for a complete answer set against an
// instrument. It is pure: no side effects, and the same answers always
// yield the same total and band.
//
// The answer set must contain exactly one entry per question index in
// 0..N-1, no extras and no gaps; anything else is ErrIncompleteAnswerSet.
// A total that no band contains is ErrScoreBandNotFound — unreachable for
// a validated instrument and treated as an internal bug by callers.
func Score(instrument *models.Instrument, answers []models.AnswerSelection, completedAt time.Time) (*models.Result, error) {
	n := len(instrument.Questions)
	if len(answers) != n {
		return nil, fmt.Errorf("%w: got %d answers for %d questions", models.ErrIncompleteAnswerSet, len(answers), n)
	}

	seen := make([]bool, n)
	total := 0
	for _, a := range answers {
		if a.QuestionIndex < 0 || a.QuestionIndex >= n {
			return nil, fmt.Errorf("%w: answer refers to question %d, instrument has %d", models.ErrIncompleteAnswerSet, a.QuestionIndex, n)
		}
		if seen[a.QuestionIndex] {
			return nil, fmt.Errorf("%w: duplicate answer for question %d", models.ErrIncompleteAnswerSet, a.QuestionIndex)
		}
		seen[a.QuestionIndex] = true

		choices := instrument.Questions[a.QuestionIndex].Choices
		if a.ChoiceIndex < 0 || a.ChoiceIndex >= len(choices) {
			return nil, fmt.Errorf("%w: answer for question %d selects choice %d of %d", models.ErrIncompleteAnswerSet, a.QuestionIndex, a.ChoiceIndex, len(choices))
		}
		total += choices[a.ChoiceIndex].Points
	}

	band, ok := instrument.BandFor(total)
	if !ok {
		return nil, fmt.Errorf("%w: total %d on instrument '%s'", models.ErrScoreBandNotFound, total, instrument.ID)
	}

	return &models.Result{
		InstrumentID: instrument.ID,
		Total:        total,
		Band:         band,
		CompletedAt:  completedAt,
	}, nil
}
