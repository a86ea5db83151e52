package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSessionStatusTerminal(t *testing.T) {
	assert.False(t, SessionStatusActive.Terminal())
	assert.True(t, SessionStatusCompleted.Terminal())
	assert.True(t, SessionStatusAbandoned.Terminal())
	assert.True(t, SessionStatusExpired.Terminal())
}

func TestSessionRecordAnswer(t *testing.T) {
	t.Run("Appends answer at pointer", func(t *testing.T) {
		s := &Session{Pointer: 0}
		s.RecordAnswer(2)
		assert.Equal(t, []AnswerSelection{{QuestionIndex: 0, ChoiceIndex: 2}}, s.Answers)
	})

	t.Run("Re-submission before advancing replaces prior value", func(t *testing.T) {
		s := &Session{Pointer: 1, Answers: []AnswerSelection{
			{QuestionIndex: 0, ChoiceIndex: 1},
			{QuestionIndex: 1, ChoiceIndex: 0},
		}}
		s.RecordAnswer(3)
		assert.Len(t, s.Answers, 2)
		assert.Equal(t, AnswerSelection{QuestionIndex: 1, ChoiceIndex: 3}, s.Answers[1])
	})

	t.Run("Keeps insertion order", func(t *testing.T) {
		s := &Session{}
		for i := 0; i < 4; i++ {
			s.Pointer = i
			s.RecordAnswer(i % 2)
		}
		for i, a := range s.Answers {
			assert.Equal(t, i, a.QuestionIndex)
		}
	})
}
