package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/purge-dev/CliniCord/models"
	"github.com/purge-dev/CliniCord/repository"
)

// QuestionPrompt is what the presenter needs to render one question. The
// core never formats platform markup; labels and indices are plain values.
type QuestionPrompt struct {
	InstrumentID   string          `json:"instrument_id"`
	InstrumentName string          `json:"instrument_name"`
	QuestionIndex  int             `json:"question_index"` // Zero-based; also the positional answer the presenter may enumerate
	QuestionCount  int             `json:"question_count"`
	Question       models.Question `json:"question"`
}

// AnswerOutcomeKind tags what HandleAnswer produced, so the presenter can
// branch without inspecting errors.
type AnswerOutcomeKind string

const (
	OutcomeNextQuestion  AnswerOutcomeKind = "next_question"  // Answer accepted, another question follows
	OutcomeCompleted     AnswerOutcomeKind = "completed"      // Answer accepted, assessment finished, result attached
	OutcomeInvalidAnswer AnswerOutcomeKind = "invalid_answer" // Input matched no choice; same question should be re-prompted
)

// AnswerOutcome is the tagged result of one answer submission.
type AnswerOutcome struct {
	Kind         AnswerOutcomeKind `json:"kind"`
	NextQuestion *QuestionPrompt   `json:"next_question,omitempty"` // Set for OutcomeNextQuestion and OutcomeInvalidAnswer (the question to re-prompt)
	Result       *models.Result    `json:"result,omitempty"`        // Set for OutcomeCompleted
	Message      string            `json:"message,omitempty"`       // User-facing explanation for OutcomeInvalidAnswer
}

// AssessmentService drives a session through an instrument one question at
// a time. It is the only mutator of the session registry; all transitions
// for one user run under that user's lock so concurrent submissions,
// cancellations and expiry sweeps cannot interleave.
type AssessmentService interface {
	// BeginAssessment starts a session and returns the first question.
	// Fails with models.ErrUnknownInstrument or, when the user already has
	// an active session, models.ErrSessionAlreadyActive.
	BeginAssessment(userID string, instrumentID string) (*QuestionPrompt, error)

	// HandleAnswer submits raw input for the user's current question. The
	// returned outcome tells the presenter whether to render the next
	// question, the final result, or re-prompt after invalid input. Fails
	// with models.ErrSessionNotActive when there is nothing to answer.
	HandleAnswer(userID string, rawInput string) (*AnswerOutcome, error)

	// CancelAssessment abandons the user's active session. Fails with
	// models.ErrSessionNotActive when no active session exists.
	CancelAssessment(userID string) error

	// ExpireStaleSessions transitions active sessions idle for longer than
	// the window to expired, returning how many it moved. Safe to call on
	// any cadence; terminal sessions are untouched.
	ExpireStaleSessions(window time.Duration) int
}

type assessmentService struct {
	catalog    InstrumentCatalog
	registry   repository.SessionRegistry
	resultRepo repository.ResultRepository
}

// NewAssessmentService creates the flow controller over a validated
// instrument catalog, a session registry, and the append-only result
// store. resultRepo may be nil in environments without persistence.
func NewAssessmentService(catalog InstrumentCatalog, registry repository.SessionRegistry, resultRepo repository.ResultRepository) AssessmentService {
	return &assessmentService{
		catalog:    catalog,
		registry:   registry,
		resultRepo: resultRepo,
	}
}

func (s *assessmentService) BeginAssessment(userID string, instrumentID string) (*QuestionPrompt, error) {
	if userID == "" {
		return nil, errors.New("user ID cannot be empty")
	}

	instrument, ok := s.catalog.Get(instrumentID)
	if !ok {
		log.Printf("INFO: [AssessmentService] UserID '%s' requested unknown instrument '%s'.", userID, instrumentID)
		return nil, fmt.Errorf("%w: '%s'", models.ErrUnknownInstrument, instrumentID)
	}

	lock := s.registry.UserLock(userID)
	lock.Lock()
	defer lock.Unlock()

	now := time.Now()
	session := &models.Session{
		ID:           uuid.NewString(),
		UserID:       userID,
		InstrumentID: instrument.ID,
		Status:       models.SessionStatusActive,
		Pointer:      0,
		Answers:      make([]models.AnswerSelection, 0, len(instrument.Questions)),
		StartedAt:    now,
		LastActivity: now,
	}

	// Register is the atomic one-active-session-per-user gate; racing
	// BeginAssessment calls for the same user queue on the lock above and
	// all but the first are rejected here.
	if err := s.registry.Register(session); err != nil {
		return nil, err
	}

	log.Printf("INFO: [AssessmentService] UserID '%s' began assessment '%s' (session %s, %d questions).", userID, instrument.ID, session.ID, len(instrument.Questions))
	return s.promptFor(instrument, 0), nil
}

func (s *assessmentService) HandleAnswer(userID string, rawInput string) (*AnswerOutcome, error) {
	lock := s.registry.UserLock(userID)
	lock.Lock()
	defer lock.Unlock()

	session, ok := s.registry.Get(userID)
	if !ok || session.Status != models.SessionStatusActive {
		log.Printf("INFO: [AssessmentService] UserID '%s' submitted an answer without an active session.", userID)
		return nil, models.ErrSessionNotActive
	}

	instrument, ok := s.catalog.Get(session.InstrumentID)
	if !ok {
		// The catalog is immutable after start, so a registered session
		// pointing at a missing instrument is a bug.
		log.Printf("ERROR: [AssessmentService] Session %s (userID '%s') references unknown instrument '%s'. Abandoning session.", session.ID, userID, session.InstrumentID)
		session.Status = models.SessionStatusAbandoned
		return nil, fmt.Errorf("internal error processing session %s", session.ID)
	}

	choiceIndex, matched := instrument.ResolveChoice(session.Pointer, rawInput)
	if !matched {
		log.Printf("INFO: [AssessmentService] UserID '%s' gave an invalid answer for question %d of '%s'; re-prompting.", userID, session.Pointer, instrument.ID)
		return &AnswerOutcome{
			Kind:         OutcomeInvalidAnswer,
			NextQuestion: s.promptFor(instrument, session.Pointer),
			Message:      models.ErrInvalidAnswer.Error(),
		}, nil
	}

	session.RecordAnswer(choiceIndex)
	session.Pointer++
	session.LastActivity = time.Now()

	if session.Pointer < len(instrument.Questions) {
		return &AnswerOutcome{
			Kind:         OutcomeNextQuestion,
			NextQuestion: s.promptFor(instrument, session.Pointer),
		}, nil
	}

	// All questions answered: score and complete.
	result, err := Score(instrument, session.Answers, session.LastActivity)
	if err != nil {
		// Scorer failures on a session the controller itself assembled are
		// internal bugs. Abandon the session so the user is not stuck.
		log.Printf("ERROR: [AssessmentService] Scoring failed for session %s (userID '%s'): %v. Abandoning session.", session.ID, userID, err)
		session.Status = models.SessionStatusAbandoned
		return nil, fmt.Errorf("internal error scoring session %s", session.ID)
	}

	session.Result = result
	session.Status = models.SessionStatusCompleted
	log.Printf("INFO: [AssessmentService] Session %s (userID '%s') completed '%s': total=%d, category='%s'.", session.ID, userID, instrument.ID, result.Total, result.Band.Category)

	s.persistResult(session, result)

	return &AnswerOutcome{
		Kind:   OutcomeCompleted,
		Result: result,
	}, nil
}

func (s *assessmentService) CancelAssessment(userID string) error {
	lock := s.registry.UserLock(userID)
	lock.Lock()
	defer lock.Unlock()

	session, ok := s.registry.Get(userID)
	if !ok || session.Status != models.SessionStatusActive {
		return models.ErrSessionNotActive
	}

	session.Status = models.SessionStatusAbandoned
	log.Printf("INFO: [AssessmentService] UserID '%s' cancelled session %s.", userID, session.ID)
	return nil
}

func (s *assessmentService) ExpireStaleSessions(window time.Duration) int {
	cutoff := time.Now().Add(-window)
	expired := 0

	for _, userID := range s.registry.UserIDs() {
		lock := s.registry.UserLock(userID)
		lock.Lock()
		// Re-check under the lock: a late answer or cancel may have won
		// the race since the active snapshot was taken.
		if session, ok := s.registry.Get(userID); ok &&
			session.Status == models.SessionStatusActive &&
			session.LastActivity.Before(cutoff) {
			session.Status = models.SessionStatusExpired
			expired++
			log.Printf("INFO: [AssessmentService] Session %s (userID '%s') expired after inactivity (last activity %s).", session.ID, userID, session.LastActivity.Format(time.RFC3339))
		}
		lock.Unlock()
	}
	return expired
}

// persistResult appends the completed result to the history store. History
// is best-effort: a write failure is logged but never fails the assessment
// the user just finished.
func (s *assessmentService) persistResult(session *models.Session, result *models.Result) {
	if s.resultRepo == nil {
		return
	}
	record := &models.AssessmentRecord{
		SessionID:    session.ID,
		UserID:       session.UserID,
		InstrumentID: result.InstrumentID,
		Total:        result.Total,
		Category:     result.Band.Category,
		CompletedAt:  result.CompletedAt,
	}
	if err := s.resultRepo.SaveRecord(record); err != nil {
		log.Printf("WARN: [AssessmentService] Failed to persist result for session %s (userID '%s'): %v", session.ID, session.UserID, err)
	}
}

func (s *assessmentService) promptFor(instrument *models.Instrument, questionIndex int) *QuestionPrompt {
	return &QuestionPrompt{
		InstrumentID:   instrument.ID,
		InstrumentName: instrument.Name,
		QuestionIndex:  questionIndex,
		QuestionCount:  len(instrument.Questions),
		Question:       instrument.Questions[questionIndex],
	}
}
