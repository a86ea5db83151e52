package api

// StartAssessmentRequest begins an assessment for a user. InstrumentID may
// be omitted; the built-in depression inventory is the default.
type StartAssessmentRequest struct {
	UserID       string `json:"user_id" binding:"required"`
	InstrumentID string `json:"instrument_id"`
}

// AnswerRequest submits raw input for the user's current question. The
// answer is either a choice label or the zero-based option number shown to
// the user.
type AnswerRequest struct {
	UserID string `json:"user_id" binding:"required"`
	Answer string `json:"answer" binding:"required"`
}

// CancelAssessmentRequest abandons the user's active assessment.
type CancelAssessmentRequest struct {
	UserID string `json:"user_id" binding:"required"`
}

// InstrumentSummary is the list-view shape of one instrument.
type InstrumentSummary struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	QuestionCount int    `json:"question_count"`
	MaxTotal      int    `json:"max_total"`
}
