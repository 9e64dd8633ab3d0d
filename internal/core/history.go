package core

import (
	"fmt"
	"strings"

	"github.com/akedrou/textdiff"
)

// Transcript renders the history one call per line, numbered by position.
func (v *Verifier) Transcript() string {
	var buf strings.Builder

	for _, call := range v.history {
		fmt.Fprintf(&buf, "%d: %s\n", call.Position, call.DisplayName())
	}

	return buf.String()
}

// VerifyHistory checks that the history consists of exactly the expected calls,
// given by display name (name, name[n]), in order. On mismatch the error holds
// a unified diff of expected against recorded calls.
func (v *Verifier) VerifyHistory(expected ...string) error {
	recorded := make([]string, 0, len(v.history))
	for _, call := range v.history {
		recorded = append(recorded, call.DisplayName())
	}

	want, got := joinLines(expected), joinLines(recorded)
	if want == got {
		return nil
	}

	diff := textdiff.Unified("expected calls", "recorded calls", want, got)

	return fmt.Errorf("%w:\n%s", ErrHistoryMismatch, diff)
}

func joinLines(lines []string) string {
	if len(lines) == 0 {
		return ""
	}

	return strings.Join(lines, "\n") + "\n"
}
