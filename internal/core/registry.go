package core

import (
	"sync"
)

// DefaultTokens is the process-wide token registry used by NewCallToken,
// MustCallToken and ResetCallTokens.
//
//nolint:gochecknoglobals // Process-wide token names are the point of the default registry
var DefaultTokens = NewTokenRegistry()

// GetOrCreateVerifier returns the Verifier for the given test, creating one if needed.
// Multiple calls with the same TestReporter return the same Verifier, so helpers
// that build mocks for a test can record into the verifier the test asserts on.
//
// If the TestReporter supports Cleanup (like *testing.T), the Verifier is
// automatically removed from the registry when the test completes.
func GetOrCreateVerifier(t TestReporter, opts ...VerifierOption) *Verifier {
	registryMu.Lock()
	defer registryMu.Unlock()

	if verifier, ok := registry[t]; ok {
		return verifier
	}

	verifier := NewVerifier(opts...)
	registry[t] = verifier

	if cr, ok := t.(cleanupRegistrar); ok {
		cr.Cleanup(func() {
			registryMu.Lock()
			delete(registry, t)
			registryMu.Unlock()
		})
	}

	return verifier
}

// MustCallToken creates a token in DefaultTokens, panicking on error.
func MustCallToken(name string) *CallToken {
	return DefaultTokens.MustNew(name)
}

// NewCallToken creates a token in DefaultTokens.
func NewCallToken(name string) (*CallToken, error) {
	return DefaultTokens.New(name)
}

// ResetCallTokens resets DefaultTokens. Call it from test setup when
// independent tests reuse token names.
func ResetCallTokens() {
	DefaultTokens.Reset()
}

// unexported variables.
var (
	//nolint:gochecknoglobals // Package-level registry is intentional for test coordination
	registry = make(map[TestReporter]*Verifier)
	//nolint:gochecknoglobals // Mutex for registry
	registryMu sync.Mutex
)

// cleanupRegistrar is the interface needed for registering cleanup functions.
// This is satisfied by *testing.T and *testing.B.
type cleanupRegistrar interface {
	Cleanup(cleanupFunc func())
}
