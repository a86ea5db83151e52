package services

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// stubAssessmentService counts expiry sweeps; the other operations are
// never reached by the sweeper.
type stubAssessmentService struct {
	sweeps atomic.Int32
}

func (s *stubAssessmentService) BeginAssessment(string, string) (*QuestionPrompt, error) {
	return nil, nil
}

func (s *stubAssessmentService) HandleAnswer(string, string) (*AnswerOutcome, error) {
	return nil, nil
}

func (s *stubAssessmentService) CancelAssessment(string) error {
	return nil
}

func (s *stubAssessmentService) ExpireStaleSessions(window time.Duration) int {
	s.sweeps.Add(1)
	return 0
}

func TestExpirySweeper(t *testing.T) {
	stub := &stubAssessmentService{}
	sweeper := NewExpirySweeper(stub, time.Minute, 50*time.Millisecond)

	assert.NoError(t, sweeper.Start())
	defer sweeper.Stop()

	assert.Eventually(t, func() bool {
		return stub.sweeps.Load() >= 1
	}, 2*time.Second, 20*time.Millisecond, "sweep should run on its cadence")
}
