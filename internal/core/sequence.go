package core

import "fmt"

// Sequence hands out a fixed list of values one after another, typically as
// the successive return values of a stubbed dependency.
//
// The cursor starts before the first value and only ever moves forward. Once it
// reaches the last value it stays there, so the last value is repeated for as
// long as the max calls budget allows.
type Sequence[T any] struct {
	values   []T
	cursor   int
	calls    int
	maxCalls int
	bounded  bool
}

// SequenceOption configures a Sequence.
type SequenceOption func(*sequenceConfig)

// NewSequence creates a sequence over values. Values are not copied.
func NewSequence[T any](values []T, opts ...SequenceOption) (*Sequence[T], error) {
	if len(values) == 0 {
		return nil, ErrEmptySequence
	}

	var cfg sequenceConfig

	for _, opt := range opts {
		if opt == nil {
			continue
		}

		opt(&cfg)
	}

	return &Sequence[T]{
		values:   values,
		cursor:   constBeforeFirst,
		maxCalls: cfg.maxCalls,
		bounded:  cfg.bounded,
	}, nil
}

// WithMaxCalls limits how many times the current value may be read.
func WithMaxCalls(n int) SequenceOption {
	return func(cfg *sequenceConfig) {
		cfg.maxCalls = n
		cfg.bounded = true
	}
}

// Advance moves the cursor to the next value. At the last value it does nothing.
func (s *Sequence[T]) Advance() {
	if s.cursor < len(s.values)-1 {
		s.cursor++
	}
}

// AdvanceAndGet advances the cursor and returns the value it lands on.
func (s *Sequence[T]) AdvanceAndGet() (T, error) {
	s.Advance()

	return s.Current()
}

// Calls returns how many times the current value has been read successfully.
func (s *Sequence[T]) Calls() int {
	return s.calls
}

// Current returns the value at the cursor.
//
// It fails if the max calls budget is below 1, if reading would exceed the
// budget, or if the sequence was never advanced. Failed reads don't count
// toward the budget.
func (s *Sequence[T]) Current() (T, error) {
	var zero T

	if s.bounded {
		if s.maxCalls < 1 {
			return zero, &SequenceError{
				Message: fmt.Sprintf("max calls must be at least 1, but was %d", s.maxCalls),
				kind:    ErrInvalidMaxCalls,
			}
		}

		if s.calls+1 > s.maxCalls {
			return zero, &SequenceError{
				Message: fmt.Sprintf("current value requested %d times, but max calls is %d", s.calls+1, s.maxCalls),
				kind:    ErrMaxCallsExceeded,
			}
		}
	}

	if s.cursor == constBeforeFirst {
		return zero, &SequenceError{
			Message: "current value requested before the first value",
			kind:    ErrNotAdvanced,
		}
	}

	s.calls++

	return s.values[s.cursor], nil
}

// Len returns the number of values in the sequence.
func (s *Sequence[T]) Len() int {
	return len(s.values)
}

// Stub returns a function that advances the sequence and returns the new value
// each time it's called, failing t if the sequence can't produce one.
// The result can be used directly as the body of a stubbed method.
func (s *Sequence[T]) Stub(t TestReporter) func() T {
	return func() T {
		t.Helper()

		value, err := s.AdvanceAndGet()
		if err != nil {
			t.Fatalf("sequence stub: %v", err)
		}

		return value
	}
}

// unexported constants.
const (
	constBeforeFirst = -1
)

type sequenceConfig struct {
	maxCalls int
	bounded  bool
}
