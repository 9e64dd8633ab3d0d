package core

import "errors"

// Exported variables.
var (
	// ErrInvalidTokenName is returned when a call token name is empty or only whitespace.
	ErrInvalidTokenName = errors.New("call token name can't be empty or whitespace")
	// ErrDuplicateTokenName is returned when a call token name is already registered.
	ErrDuplicateTokenName = errors.New("call token name is already in use")
	// ErrNilToken is returned when a nil call token is passed where one is required.
	ErrNilToken = errors.New("call token can't be nil")

	// ErrEmptySequence is returned when a sequence is constructed without values.
	ErrEmptySequence = errors.New("sequence needs at least one value")
	// ErrInvalidMaxCalls is wrapped by a SequenceError when the max calls budget is below 1.
	ErrInvalidMaxCalls = errors.New("invalid max calls")
	// ErrMaxCallsExceeded is wrapped by a SequenceError when the budget is used up.
	ErrMaxCallsExceeded = errors.New("max calls exceeded")
	// ErrNotAdvanced is wrapped by a SequenceError when the sequence is read before it was advanced.
	ErrNotAdvanced = errors.New("sequence not advanced")

	// ErrOrderViolation is wrapped by every VerifierError.
	ErrOrderViolation = errors.New("call order violation")
	// ErrHistoryMismatch is returned by VerifyHistory when the recorded calls differ from the expected ones.
	ErrHistoryMismatch = errors.New("recorded calls don't match")
)

// SequenceError reports a misuse of a Sequence.
// Its message is the literal diagnostic; errors.Is matches the wrapped sentinel.
type SequenceError struct {
	Message string
	kind    error
}

// Error returns the diagnostic message.
func (e *SequenceError) Error() string {
	return e.Message
}

// Unwrap returns the sentinel describing the kind of failure.
func (e *SequenceError) Unwrap() error {
	return e.kind
}

// VerifierError reports the first declared call order that didn't hold.
type VerifierError struct {
	// Constraint is the 1-based declaration index of the failing order.
	Constraint int
	Message    string
}

// Error returns the diagnostic message.
func (e *VerifierError) Error() string {
	return e.Message
}

// Unwrap returns ErrOrderViolation.
func (e *VerifierError) Unwrap() error {
	return ErrOrderViolation
}
