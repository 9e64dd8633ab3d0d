package core

// TestReporter is the minimal interface callorder needs from test frameworks.
// *testing.T and *testing.B satisfy it.
type TestReporter interface {
	Helper()
	Fatalf(format string, args ...any)
}

// AssertVerified fails t with the first call order that doesn't hold.
func (v *Verifier) AssertVerified(t TestReporter) {
	t.Helper()

	err := v.Verify()
	if err != nil {
		t.Fatalf("%v", err)
	}
}

// AssertHistory fails t unless the history is exactly the expected calls.
func (v *Verifier) AssertHistory(t TestReporter, expected ...string) {
	t.Helper()

	err := v.VerifyHistory(expected...)
	if err != nil {
		t.Fatalf("%v\nrecorded history:\n%s", err, v.Transcript())
	}
}
