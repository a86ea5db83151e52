package models

import (
	"time"
)

// SessionStatus defines the lifecycle state of an assessment session.
type SessionStatus string

const (
	SessionStatusActive    SessionStatus = "active"    // Session is accepting answers
	SessionStatusCompleted SessionStatus = "completed" // All questions answered, result attached
	SessionStatusAbandoned SessionStatus = "abandoned" // Cancelled by the user (or forced on internal error)
	SessionStatusExpired   SessionStatus = "expired"   // Timed out after the inactivity window
)

// Terminal reports whether the status accepts no further mutations.
func (s SessionStatus) Terminal() bool {
	return s == SessionStatusCompleted || s == SessionStatusAbandoned || s == SessionStatusExpired
}

// AnswerSelection records one accepted answer: which question, and which of
// its choices the user picked.
type AnswerSelection struct {
	QuestionIndex int `json:"question_index"`
	ChoiceIndex   int `json:"choice_index"`
}

// Result is the derived outcome of a completed session: the total score and
// the band it landed in. Immutable, produced once per completed session.
type Result struct {
	InstrumentID string    `json:"instrument_id"`
	Total        int       `json:"total"`
	Band         ScoreBand `json:"band"`
	CompletedAt  time.Time `json:"completed_at"`
}

// Session tracks one user's in-progress run through one instrument. All
// mutation goes through the flow controller, which serializes access per
// user; the struct carries no locking of its own.
type Session struct {
	ID           string            `json:"id"`
	UserID       string            `json:"user_id"`
	InstrumentID string            `json:"instrument_id"`
	Status       SessionStatus     `json:"status"`
	Pointer      int               `json:"pointer"` // Index of the question currently awaiting an answer
	Answers      []AnswerSelection `json:"answers"` // Insertion-ordered, one entry per answered question
	Result       *Result           `json:"result,omitempty"`
	StartedAt    time.Time         `json:"started_at"`
	LastActivity time.Time         `json:"last_activity"` // Basis for the inactivity expiry sweep
}

// RecordAnswer stores the choice for the question at the current pointer.
// Re-submission before the pointer advances replaces the prior value.
func (s *Session) RecordAnswer(choiceIndex int) {
	for i := range s.Answers {
		if s.Answers[i].QuestionIndex == s.Pointer {
			s.Answers[i].ChoiceIndex = choiceIndex
			return
		}
	}
	s.Answers = append(s.Answers, AnswerSelection{QuestionIndex: s.Pointer, ChoiceIndex: choiceIndex})
}

// AssessmentRecord is the persisted, append-only trace of a completed
// assessment. One row per completed session, keyed by user and timestamp.
type AssessmentRecord struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	SessionID    string    `json:"session_id" gorm:"index"`
	UserID       string    `json:"user_id" gorm:"index"`
	InstrumentID string    `json:"instrument_id"`
	Total        int       `json:"total"`
	Category     string    `json:"category"`
	CompletedAt  time.Time `json:"completed_at" gorm:"index"`
	CreatedAt    time.Time `json:"created_at"`
}
