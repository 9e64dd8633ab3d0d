package core_test

import (
	"sync"
	"testing"

	. "github.com/onsi/gomega"
	"pgregory.net/rapid"

	"github.com/toejough/callorder/internal/core"
)

// TestGetOrCreateVerifier_SameT_ReturnsSameVerifier verifies that calling
// GetOrCreateVerifier with the same *testing.T returns the same *Verifier.
func TestGetOrCreateVerifier_SameT_ReturnsSameVerifier(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	verifier1 := core.GetOrCreateVerifier(t)
	verifier2 := core.GetOrCreateVerifier(t)

	g.Expect(verifier1).To(BeIdenticalTo(verifier2), "same t should return same Verifier")
}

// TestGetOrCreateVerifier_DifferentT_ReturnsDifferentVerifier verifies that
// different *testing.T values get different verifiers.
func TestGetOrCreateVerifier_DifferentT_ReturnsDifferentVerifier(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	var verifier1, verifier2 *core.Verifier

	t.Run("subtest1", func(t *testing.T) {
		verifier1 = core.GetOrCreateVerifier(t)
	})

	t.Run("subtest2", func(t *testing.T) {
		verifier2 = core.GetOrCreateVerifier(t)
	})

	g.Expect(verifier1).NotTo(BeIdenticalTo(verifier2), "different t should return different Verifier")
}

// TestGetOrCreateVerifier_CleanupRemovesEntry verifies that the registry entry
// is removed by the registered cleanup, so a later lookup builds a new verifier.
func TestGetOrCreateVerifier_CleanupRemovesEntry(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	reporter := &cleanupReporter{TestReporter: &mockReporter{}}

	before := core.GetOrCreateVerifier(reporter)
	g.Expect(reporter.cleanups).To(HaveLen(1))
	g.Expect(core.GetOrCreateVerifier(reporter)).To(BeIdenticalTo(before))

	reporter.runCleanups()

	g.Expect(core.GetOrCreateVerifier(reporter)).NotTo(BeIdenticalTo(before))
}

// TestGetOrCreateVerifier_WithoutCleanup verifies that reporters without
// Cleanup still get a verifier.
func TestGetOrCreateVerifier_WithoutCleanup(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	reporter := &mockReporter{}

	g.Expect(core.GetOrCreateVerifier(reporter)).To(BeIdenticalTo(core.GetOrCreateVerifier(reporter)))
}

// TestGetOrCreateVerifier_ConcurrentAccess_Rapid uses property-based testing to
// verify concurrent access safety with randomized access patterns.
func TestGetOrCreateVerifier_ConcurrentAccess_Rapid(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(rt *rapid.T) {
		numGoroutines := rapid.IntRange(2, 50).Draw(rt, "numGoroutines")
		reporter := &mockReporter{}
		results := make([]*core.Verifier, numGoroutines)

		var wg sync.WaitGroup

		for i := range numGoroutines {
			wg.Go(func() {
				results[i] = core.GetOrCreateVerifier(reporter)
			})
		}

		wg.Wait()

		for i := 1; i < numGoroutines; i++ {
			if results[i] != results[0] {
				rt.Fatalf("goroutine %d got different Verifier", i)
			}
		}
	})
}

// cleanupReporter is a TestReporter that collects Cleanup functions so tests
// can run them on demand.
type cleanupReporter struct {
	core.TestReporter

	cleanups []func()
}

func (c *cleanupReporter) Cleanup(fn func()) {
	c.cleanups = append(c.cleanups, fn)
}

func (c *cleanupReporter) runCleanups() {
	for _, fn := range c.cleanups {
		fn()
	}
}
