package match

import (
	"errors"
	"fmt"
)

// ErrorCode classifies a rejected event.
type ErrorCode string

const (
	// CodePrecondition means the event is not legal in the current state.
	CodePrecondition ErrorCode = "PRECONDITION"

	// CodeLookup means the event names a player or side that does not exist.
	CodeLookup ErrorCode = "LOOKUP"
)

var (
	// ErrFielderRequired is returned when a caught wicket has no fielder.
	ErrFielderRequired = errors.New("caught requires a fielder")

	// ErrBatterRequired is returned when a run out does not name the
	// dismissed batter.
	ErrBatterRequired = errors.New("run out requires the dismissed batter")
)

// RuleError reports an event rejected by the state machine. The state is
// unchanged when Apply returns one.
type RuleError struct {
	Code    ErrorCode
	Kind    Kind
	Message string
	Err     error
}

func (e *RuleError) Error() string {
	return fmt.Sprintf("%s: %s: %s", e.Code, e.Kind.Name(), e.Message)
}

func (e *RuleError) Unwrap() error {
	return e.Err
}

func preconditionf(kind Kind, format string, args ...any) *RuleError {
	return &RuleError{Code: CodePrecondition, Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func lookupError(kind Kind, side Side, index, size int) *RuleError {
	return &RuleError{
		Code:    CodeLookup,
		Kind:    kind,
		Message: fmt.Sprintf("team %s has no player %d (roster size %d)", side, index, size),
	}
}

func wrapRule(kind Kind, err error) *RuleError {
	return &RuleError{Code: CodePrecondition, Kind: kind, Message: err.Error(), Err: err}
}

// IsPrecondition reports whether err is a precondition violation.
func IsPrecondition(err error) bool {
	var re *RuleError
	return errors.As(err, &re) && re.Code == CodePrecondition
}

// IsLookup reports whether err is a failed roster lookup.
func IsLookup(err error) bool {
	var re *RuleError
	return errors.As(err, &re) && re.Code == CodeLookup
}
