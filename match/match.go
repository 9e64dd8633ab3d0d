// Package match provides gomega matchers for callorder verifiers.
// This package is designed to be dot-imported alongside gomega:
//
//	import (
//	    . "github.com/onsi/gomega"
//	    . "github.com/toejough/callorder/match"
//	)
//
//	Expect(verifier).To(HaveSatisfiedOrder())
//	Expect(verifier).To(HaveRecorded(save))
package match

import (
	"errors"
	"fmt"

	"github.com/onsi/gomega/format"
	"github.com/onsi/gomega/types"

	"github.com/toejough/callorder"
)

// HaveRecorded succeeds when the verifier recorded at least one call of token.
func HaveRecorded(token *callorder.CallToken) types.GomegaMatcher {
	return &recordedMatcher{token: token}
}

// HaveRecordedCalls succeeds when the verifier recorded exactly count calls.
func HaveRecordedCalls(count int) types.GomegaMatcher {
	return &recordedCallsMatcher{count: count}
}

// HaveSatisfiedOrder succeeds when every call order declared on the verifier holds.
// On failure, the message is the verifier's diagnostic followed by the recorded history.
func HaveSatisfiedOrder() types.GomegaMatcher {
	return &satisfiedOrderMatcher{}
}

// unexported variables.
var (
	// errNotVerifier is a sentinel error for actual values that aren't verifiers.
	errNotVerifier = errors.New("expected a *callorder.Verifier")

	_ types.GomegaMatcher = (*recordedCallsMatcher)(nil)
	_ types.GomegaMatcher = (*recordedMatcher)(nil)
	_ types.GomegaMatcher = (*satisfiedOrderMatcher)(nil)
)

type recordedCallsMatcher struct {
	count int
}

func (m *recordedCallsMatcher) FailureMessage(actual any) string {
	return fmt.Sprintf("Expected %d recorded calls, got:\n%s", m.count, transcript(actual))
}

func (m *recordedCallsMatcher) Match(actual any) (bool, error) {
	verifier, err := toVerifier(actual)
	if err != nil {
		return false, err
	}

	return len(verifier.History()) == m.count, nil
}

func (m *recordedCallsMatcher) NegatedFailureMessage(actual any) string {
	return fmt.Sprintf("Expected other than %d recorded calls, got:\n%s", m.count, transcript(actual))
}

type recordedMatcher struct {
	token *callorder.CallToken
}

func (m *recordedMatcher) FailureMessage(actual any) string {
	return fmt.Sprintf("Expected a recorded call of %s, got:\n%s", m.token, transcript(actual))
}

func (m *recordedMatcher) Match(actual any) (bool, error) {
	verifier, err := toVerifier(actual)
	if err != nil {
		return false, err
	}

	for _, call := range verifier.History() {
		if call.Token.Equal(m.token) {
			return true, nil
		}
	}

	return false, nil
}

func (m *recordedMatcher) NegatedFailureMessage(actual any) string {
	return fmt.Sprintf("Expected no recorded call of %s, got:\n%s", m.token, transcript(actual))
}

type satisfiedOrderMatcher struct {
	lastErr error
}

func (m *satisfiedOrderMatcher) FailureMessage(actual any) string {
	return fmt.Sprintf("%v\nrecorded history:\n%s", m.lastErr, transcript(actual))
}

func (m *satisfiedOrderMatcher) Match(actual any) (bool, error) {
	verifier, err := toVerifier(actual)
	if err != nil {
		return false, err
	}

	m.lastErr = verifier.Verify()

	return m.lastErr == nil, nil
}

func (m *satisfiedOrderMatcher) NegatedFailureMessage(actual any) string {
	return "Expected a declared call order to fail, but all held\nrecorded history:\n" + transcript(actual)
}

func toVerifier(actual any) (*callorder.Verifier, error) {
	verifier, ok := actual.(*callorder.Verifier)
	if !ok || verifier == nil {
		return nil, fmt.Errorf("%w, got:\n%s", errNotVerifier, format.Object(actual, 1))
	}

	return verifier, nil
}

func transcript(actual any) string {
	verifier, ok := actual.(*callorder.Verifier)
	if !ok || verifier == nil {
		return format.Object(actual, 1)
	}

	return verifier.Transcript()
}
