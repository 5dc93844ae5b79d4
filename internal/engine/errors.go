package engine

import (
	"errors"
	"fmt"

	"github.com/roach88/scricket/internal/match"
)

// SessionError represents a failure to change or load a persisted match.
//
// Session errors include:
//   - Rejected: the rules refused the event; nothing was written
//   - Corrupt log: a stored event does not decode or does not replay
//   - Replay diverged: rebuilding from the store gave a different match
type SessionError struct {
	// Code identifies the error category.
	Code SessionErrorCode

	// Message is a human-readable description.
	Message string

	// MatchID identifies the affected match.
	MatchID string

	// Seq is the event position involved, or 0.
	Seq int64

	// Err is the underlying cause, if any.
	Err error
}

// SessionErrorCode categorizes session errors.
type SessionErrorCode string

const (
	// ErrCodeRejected indicates the rules rejected a submitted event.
	ErrCodeRejected SessionErrorCode = "REJECTED"

	// ErrCodeCorruptLog indicates stored events cannot be rebuilt into a match.
	ErrCodeCorruptLog SessionErrorCode = "CORRUPT_LOG"

	// ErrCodeReplayDiverged indicates the stored log replays to a different match.
	ErrCodeReplayDiverged SessionErrorCode = "REPLAY_DIVERGED"
)

// Error implements the error interface.
func (e *SessionError) Error() string {
	msg := fmt.Sprintf("%s: %s (match=%s", e.Code, e.Message, e.MatchID)
	if e.Seq > 0 {
		msg += fmt.Sprintf(", seq=%d", e.Seq)
	}
	msg += ")"
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *SessionError) Unwrap() error {
	return e.Err
}

// IsRejected returns true if the rules rejected an event.
// Uses errors.As to handle wrapped errors.
func IsRejected(err error) bool {
	var se *SessionError
	if errors.As(err, &se) {
		return se.Code == ErrCodeRejected
	}
	var re *match.RuleError
	return errors.As(err, &re)
}

// IsCorruptLog returns true if a stored log could not be rebuilt.
func IsCorruptLog(err error) bool {
	var se *SessionError
	return errors.As(err, &se) && se.Code == ErrCodeCorruptLog
}

// IsReplayDiverged returns true if replay verification failed.
func IsReplayDiverged(err error) bool {
	var se *SessionError
	return errors.As(err, &se) && se.Code == ErrCodeReplayDiverged
}

func rejected(matchID string, seq int64, err error) *SessionError {
	return &SessionError{Code: ErrCodeRejected, Message: "event rejected", MatchID: matchID, Seq: seq, Err: err}
}

func corrupt(matchID string, seq int64, err error) *SessionError {
	return &SessionError{Code: ErrCodeCorruptLog, Message: "stored log cannot be replayed", MatchID: matchID, Seq: seq, Err: err}
}
