// Package callorder provides test helpers for mocked dependencies: a Sequence
// of stubbed return values, and a Verifier that records mock calls and checks
// that they happened in a declared relative order.
//
// This is the public API entry point. Implementation lives in internal/core.
package callorder

import (
	"github.com/rs/zerolog"

	"github.com/toejough/callorder/internal/core"
)

// CallRef refers to one call of a token.
type CallRef = core.CallRef

// CallToken names a distinguishable mocked method or call site.
type CallToken = core.CallToken

// HookOption configures a recording hook.
type HookOption = core.HookOption

// OrderConstraint declares that one call must happen before another.
type OrderConstraint = core.OrderConstraint

// RecordedCall is one entry in a verifier's call history.
type RecordedCall = core.RecordedCall

// Sequence hands out a fixed list of values one after another.
type Sequence[T any] = core.Sequence[T]

// SequenceError reports a misuse of a Sequence.
type SequenceError = core.SequenceError

// SequenceOption configures a Sequence.
type SequenceOption = core.SequenceOption

// TestReporter is the minimal interface callorder needs from test frameworks.
type TestReporter = core.TestReporter

// TokenRegistry creates call tokens and keeps their names unique.
type TokenRegistry = core.TokenRegistry

// Verifier records mock calls and checks them against declared call orders.
type Verifier = core.Verifier

// VerifierError reports the first declared call order that didn't hold.
type VerifierError = core.VerifierError

// VerifierOption configures a Verifier.
type VerifierOption = core.VerifierOption

// Errors re-exported from internal/core.
//
//nolint:gochecknoglobals // Sentinel errors must be comparable with errors.Is
var (
	ErrDuplicateTokenName = core.ErrDuplicateTokenName
	ErrEmptySequence      = core.ErrEmptySequence
	ErrHistoryMismatch    = core.ErrHistoryMismatch
	ErrInvalidMaxCalls    = core.ErrInvalidMaxCalls
	ErrInvalidTokenName   = core.ErrInvalidTokenName
	ErrMaxCallsExceeded   = core.ErrMaxCallsExceeded
	ErrNilToken           = core.ErrNilToken
	ErrNotAdvanced        = core.ErrNotAdvanced
	ErrOrderViolation     = core.ErrOrderViolation
)

// Functions re-exported from internal/core.

// GetOrCreateVerifier returns the Verifier for the given test, creating one if needed.
func GetOrCreateVerifier(t TestReporter, opts ...VerifierOption) *Verifier {
	return core.GetOrCreateVerifier(t, opts...)
}

// MustCallToken creates a token in the process-wide registry, panicking on error.
func MustCallToken(name string) *CallToken {
	return core.MustCallToken(name)
}

// NewCallToken creates a token in the process-wide registry.
func NewCallToken(name string) (*CallToken, error) {
	return core.NewCallToken(name)
}

// NewSequence creates a sequence over values.
func NewSequence[T any](values []T, opts ...SequenceOption) (*Sequence[T], error) {
	return core.NewSequence(values, opts...)
}

// NewTokenRegistry creates an empty token registry.
func NewTokenRegistry() *TokenRegistry {
	return core.NewTokenRegistry()
}

// NewVerifier creates a verifier with an empty history and no declared orders.
func NewVerifier(opts ...VerifierOption) *Verifier {
	return core.NewVerifier(opts...)
}

// ResetCallTokens resets the process-wide token registry.
func ResetCallTokens() {
	core.ResetCallTokens()
}

// WithCallNumber sets the call number recorded by a hook.
func WithCallNumber(n int) HookOption {
	return core.WithCallNumber(n)
}

// WithLogger makes a verifier log recorded calls and evaluated orders at debug level.
func WithLogger(logger zerolog.Logger) VerifierOption {
	return core.WithLogger(logger)
}

// WithMaxCalls limits how many times a sequence's current value may be read.
func WithMaxCalls(n int) SequenceOption {
	return core.WithMaxCalls(n)
}

// WithSideEffect runs fn each time a hook fires, before the call is recorded.
func WithSideEffect(fn func()) HookOption {
	return core.WithSideEffect(fn)
}
