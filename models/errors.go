package models

import (
	"errors"
	"fmt"
)

// Recoverable, user-caused failures. These are surfaced to the presenter
// as friendly messages and never abort a session.
var (
	// ErrSessionAlreadyActive is returned when a user tries to begin an
	// assessment while another one of theirs is still active.
	ErrSessionAlreadyActive = errors.New("an assessment is already in progress for this user")

	// ErrSessionNotActive is returned for any answer, cancel or expire
	// attempt against a session in a terminal state, or when the user has
	// no session at all.
	ErrSessionNotActive = errors.New("no active assessment session")

	// ErrInvalidAnswer is returned when raw input resolves to none of the
	// current question's choices. The session stays active on the same
	// question so the user can retry.
	ErrInvalidAnswer = errors.New("answer does not match any of the offered choices")

	// ErrUnknownInstrument is returned when an assessment is requested for
	// an instrument the catalog does not hold.
	ErrUnknownInstrument = errors.New("unknown assessment instrument")
)

// Internal invariant violations. Hitting one of these is a bug: it is
// logged for operators, the affected session is abandoned, and the user
// sees a generic failure.
var (
	// ErrIncompleteAnswerSet is returned by the scorer when the answer set
	// does not contain exactly one entry per question.
	ErrIncompleteAnswerSet = errors.New("answer set does not cover every question exactly once")

	// ErrScoreBandNotFound is returned by the scorer when no band contains
	// the computed total. Unreachable for a validated instrument.
	ErrScoreBandNotFound = errors.New("no score band matches the computed total")
)

// MalformedInstrumentError reports a structural defect in an instrument
// definition. It is fatal at load time.
type MalformedInstrumentError struct {
	InstrumentID string
	Reason       string
}

func (e *MalformedInstrumentError) Error() string {
	if e.InstrumentID == "" {
		return fmt.Sprintf("malformed instrument: %s", e.Reason)
	}
	return fmt.Sprintf("malformed instrument %q: %s", e.InstrumentID, e.Reason)
}
