// Package core provides the internal implementation of callorder's call
// tokens, value sequences and call order verifier.
package core

import (
	"fmt"

	"github.com/rs/zerolog"
)

// HookOption configures a recording hook.
type HookOption func(*hookConfig)

// Verifier records calls made to mocks and checks them against declared call
// orders.
//
// A Verifier is not safe for concurrent use. Record calls and declare orders
// from the test's goroutine, then call Verify.
type Verifier struct {
	history     []RecordedCall
	constraints []OrderConstraint
	// relative holds the names of tokens declared with a negative call number.
	relative map[string]struct{}
	logger   zerolog.Logger
}

// VerifierOption configures a Verifier.
type VerifierOption func(*Verifier)

// NewVerifier creates a verifier with an empty history and no declared orders.
func NewVerifier(opts ...VerifierOption) *Verifier {
	verifier := &Verifier{
		relative: make(map[string]struct{}),
		logger:   zerolog.Nop(),
	}

	for _, opt := range opts {
		if opt == nil {
			continue
		}

		opt(verifier)
	}

	return verifier
}

// WithCallNumber sets the call number recorded by the hook.
func WithCallNumber(n int) HookOption {
	return func(cfg *hookConfig) {
		cfg.callNumber = n
	}
}

// WithLogger makes the verifier log recorded calls and evaluated orders at
// debug level.
func WithLogger(logger zerolog.Logger) VerifierOption {
	return func(v *Verifier) {
		v.logger = logger.With().Str("component", "call-order-verifier").Logger()
	}
}

// WithSideEffect runs fn each time the hook fires, before the call is recorded.
func WithSideEffect(fn func()) HookOption {
	return func(cfg *hookConfig) {
		cfg.sideEffect = fn
	}
}

// Constraints returns a copy of the declared orders.
func (v *Verifier) Constraints() []OrderConstraint {
	return append([]OrderConstraint(nil), v.constraints...)
}

// DeclareCallOrder declares that the given call of first must happen before the
// given call of second. See CallRef for how call numbers are matched.
//
// Only nil tokens are rejected here. Contradictory declarations are reported by
// Verify.
func (v *Verifier) DeclareCallOrder(first *CallToken, firstCallNumber int, second *CallToken, secondCallNumber int) error {
	if first == nil {
		return fmt.Errorf("first %w", ErrNilToken)
	}

	if second == nil {
		return fmt.Errorf("second %w", ErrNilToken)
	}

	if firstCallNumber < 0 {
		v.relative[first.Name()] = struct{}{}
	}

	if secondCallNumber < 0 {
		v.relative[second.Name()] = struct{}{}
	}

	v.constraints = append(v.constraints, OrderConstraint{
		Index:  len(v.constraints) + 1,
		First:  CallRef{Token: first, CallNumber: firstCallNumber},
		Second: CallRef{Token: second, CallNumber: secondCallNumber},
	})

	return nil
}

// DeclareOrder declares that the first call of first must happen before the
// first call of second.
func (v *Verifier) DeclareOrder(first, second *CallToken) error {
	return v.DeclareCallOrder(first, 0, second, 0)
}

// History returns a copy of the recorded calls, oldest first.
func (v *Verifier) History() []RecordedCall {
	return append([]RecordedCall(nil), v.history...)
}

// Record appends a call of token to the history.
func (v *Verifier) Record(token *CallToken, callNumber int) {
	call := RecordedCall{
		Token:      token,
		CallNumber: callNumber,
		Position:   len(v.history) + 1,
	}
	v.history = append(v.history, call)

	v.logger.Debug().
		Str("call", call.DisplayName()).
		Int("position", call.Position).
		Msg("recorded call")
}

// RecordingHook returns a function that records a call of token on v each time
// it runs. Install it wherever the mock framework lets you run code when the
// mocked method is called.
func (v *Verifier) RecordingHook(token *CallToken, opts ...HookOption) func() {
	var cfg hookConfig

	for _, opt := range opts {
		if opt == nil {
			continue
		}

		opt(&cfg)
	}

	return func() {
		if cfg.sideEffect != nil {
			cfg.sideEffect()
		}

		v.Record(token, cfg.callNumber)
	}
}

// Reset clears the history and the declared orders.
func (v *Verifier) Reset() {
	v.history = nil
	v.constraints = nil
	v.relative = make(map[string]struct{})
}

// Verify checks every declared order against the history, in declaration
// order, and returns a *VerifierError for the first one that doesn't hold.
func (v *Verifier) Verify() error {
	for _, constraint := range v.constraints {
		err := v.verifyConstraint(constraint)
		if err != nil {
			v.logger.Debug().
				Int("constraint", constraint.Index).
				Err(err).
				Msg("call order failed")

			return err
		}
	}

	return nil
}

// checkDeclaration reports constraints that can never hold, whatever the history.
func (v *Verifier) checkDeclaration(constraint OrderConstraint) error {
	first, second, index := constraint.First, constraint.Second, constraint.Index

	if first.Token.Equal(second.Token) && first.CallNumber == second.CallNumber {
		return newVerifierError(index,
			"The first and second call on expected call order #%d can't both be %s with call number %d",
			index, first.Token.Name(), first.CallNumber)
	}

	for _, ref := range []CallRef{first, second} {
		if _, ok := v.relative[ref.Token.Name()]; ok && ref.CallNumber >= 0 {
			return newVerifierError(index,
				"All instances of %s should have a negative call number, but found %d on expected call order #%d",
				ref.Token.Name(), ref.CallNumber, index)
		}
	}

	if first.Token.Equal(second.Token) && first.CallNumber < 0 && first.CallNumber <= second.CallNumber {
		return newVerifierError(index,
			"%s can't come before %s on expected call order #%d",
			first.DisplayName(), second.DisplayName(), index)
	}

	return nil
}

// findPositions scans the history once and returns the 1-based positions of the
// calls matching the constraint's first and second references, or 0 if not found.
//
// A first match is taken at most once. A second match for a non-negative call
// number keeps moving to later matches until the first one is found, so that
// "second" means any matching call after the first.
func (v *Verifier) findPositions(constraint OrderConstraint) (firstPos, secondPos int) {
	first, second := constraint.First, constraint.Second
	// Ordinal countdowns: they reach 0 on the targeted occurrence.
	firstCountdown, secondCountdown := first.CallNumber, second.CallNumber

	for _, call := range v.history {
		isFirst := call.Token.Equal(first.Token)
		isSecond := call.Token.Equal(second.Token)

		if isFirst && firstCountdown < 0 {
			firstCountdown++
		}

		if isSecond && secondCountdown < 0 {
			secondCountdown++
		}

		if firstPos == 0 && isFirst {
			if firstCountdown < 0 {
				continue
			}

			if matchesCallNumber(first.CallNumber, call.CallNumber) {
				firstPos = call.Position

				continue
			}
		} else if isSecond {
			if second.CallNumber < 0 && secondPos != 0 {
				continue
			}

			if secondCountdown < 0 {
				continue
			}

			if matchesCallNumber(second.CallNumber, call.CallNumber) {
				secondPos = call.Position

				if firstPos != 0 {
					break
				}
			}
		}
	}

	return firstPos, secondPos
}

func (v *Verifier) verifyConstraint(constraint OrderConstraint) error {
	err := v.checkDeclaration(constraint)
	if err != nil {
		return err
	}

	first, second, index := constraint.First, constraint.Second, constraint.Index
	firstPos, secondPos := v.findPositions(constraint)

	v.logger.Debug().
		Int("constraint", index).
		Str("first", first.DisplayName()).
		Str("second", second.DisplayName()).
		Int("first_position", firstPos).
		Int("second_position", secondPos).
		Msg("evaluated call order")

	for _, found := range []struct {
		ref CallRef
		pos int
	}{{first, firstPos}, {second, secondPos}} {
		if found.pos == 0 {
			return newVerifierError(index,
				"The call sequence for %s on expected call order #%d should be greater than 0, but was 0",
				found.ref.DisplayName(), index)
		}
	}

	if firstPos >= secondPos {
		return newVerifierError(index,
			"%s call sequence should be less than %s call sequence on expected call order #%d, but was %d and %d, respectively.",
			first.DisplayName(), second.DisplayName(), index, firstPos, secondPos)
	}

	return nil
}

type hookConfig struct {
	callNumber int
	sideEffect func()
}

// matchesCallNumber reports whether a recorded call number satisfies a
// declared one. Ordinal (negative) and unspecified (zero) declarations match any
// recorded number; positive ones need an exact match.
func matchesCallNumber(declared, recorded int) bool {
	return declared <= 0 || recorded == declared
}

func newVerifierError(index int, format string, args ...any) *VerifierError {
	return &VerifierError{
		Constraint: index,
		Message:    fmt.Sprintf(format, args...),
	}
}
