package core

import (
	"fmt"
	"strconv"
)

// CallRef refers to one call of a token.
//
// A CallNumber of 0 matches the first call of Token regardless of the number
// it was recorded with. A positive CallNumber matches the first call recorded
// with exactly that number. A negative CallNumber matches the |n|-th call of
// Token in the history: -1 is the first call, -2 the second, and so on.
type CallRef struct {
	Token      *CallToken
	CallNumber int
}

// DisplayName renders the reference the way diagnostics show it.
func (r CallRef) DisplayName() string {
	return displayName(r.Token, r.CallNumber)
}

// OrderConstraint declares that First must be called before Second.
type OrderConstraint struct {
	// Index is the 1-based declaration index used in diagnostics.
	Index  int
	First  CallRef
	Second CallRef
}

// RecordedCall is one entry in a verifier's call history.
type RecordedCall struct {
	Token      *CallToken
	CallNumber int
	// Position is the 1-based position in the history.
	Position int
}

// DisplayName renders the call as name, name[n] or name[+n].
func (c RecordedCall) DisplayName() string {
	return displayName(c.Token, c.CallNumber)
}

func displayName(token *CallToken, callNumber int) string {
	name := token.Name()

	switch {
	case callNumber > 0:
		return fmt.Sprintf("%s[%d]", name, callNumber)
	case callNumber < 0:
		return name + "[+" + strconv.Itoa(-callNumber) + "]"
	default:
		return name
	}
}
