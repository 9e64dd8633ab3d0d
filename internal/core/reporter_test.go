package core_test

import (
	"fmt"
	"testing"

	. "github.com/onsi/gomega"

	"github.com/toejough/callorder/internal/core"
)

func TestAssertVerified_Passes(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	tokens := core.NewTokenRegistry()
	x, y := tokens.MustNew("X"), tokens.MustNew("Y")
	verifier := core.NewVerifier()

	verifier.RecordingHook(x)()
	verifier.RecordingHook(y)()
	g.Expect(verifier.DeclareOrder(x, y)).To(Succeed())

	reporter := &mockReporter{}
	verifier.AssertVerified(reporter)

	g.Expect(reporter.failed).To(BeFalse())
}

func TestAssertVerified_ReportsFirstFailure(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	tokens := core.NewTokenRegistry()
	x, y := tokens.MustNew("X"), tokens.MustNew("Y")
	verifier := core.NewVerifier()

	verifier.RecordingHook(x)()
	verifier.RecordingHook(y)()
	g.Expect(verifier.DeclareOrder(y, x)).To(Succeed())

	reporter := &mockReporter{}
	verifier.AssertVerified(reporter)

	g.Expect(reporter.failed).To(BeTrue())
	g.Expect(reporter.helperCalls).To(BeNumerically(">", 0))
	g.Expect(reporter.msg).To(Equal(
		"Y call sequence should be less than X call sequence on expected call order #1, but was 2 and 1, respectively."))
}

func TestAssertHistory_ReportsDiffAndTranscript(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	tokens := core.NewTokenRegistry()
	x, y := tokens.MustNew("X"), tokens.MustNew("Y")
	verifier := core.NewVerifier()

	verifier.RecordingHook(y)()
	verifier.RecordingHook(x, core.WithCallNumber(1))()

	reporter := &mockReporter{}
	verifier.AssertHistory(reporter, "X[1]", "Y")

	g.Expect(reporter.failed).To(BeTrue())
	g.Expect(reporter.msg).To(ContainSubstring("recorded calls don't match"))
	g.Expect(reporter.msg).To(ContainSubstring("recorded history:\n1: Y\n2: X[1]\n"))
}

// mockReporter is a TestReporter that records the last failure instead of
// stopping the test.
type mockReporter struct {
	failed      bool
	msg         string
	helperCalls int
}

func (m *mockReporter) Fatalf(format string, args ...any) {
	m.failed = true
	m.msg = fmt.Sprintf(format, args...)
}

func (m *mockReporter) Helper() {
	m.helperCalls++
}
