package core

import (
	"fmt"
	"strings"
	"sync"
)

// CallToken names a distinguishable mocked method or call site.
// Two tokens are equal when their ids match.
type CallToken struct {
	name string
	id   int64
}

// Equal reports whether both tokens have the same id.
func (c *CallToken) Equal(other *CallToken) bool {
	if c == nil || other == nil {
		return c == other
	}

	return c.id == other.id
}

// ID returns the id assigned when the token was created.
func (c *CallToken) ID() int64 {
	return c.id
}

// Name returns the token's name.
func (c *CallToken) Name() string {
	return c.name
}

func (c *CallToken) String() string {
	return c.name
}

// TokenRegistry creates call tokens and keeps their names unique.
// Ids increase monotonically in creation order, starting at 1.
//
// A registry is usually long-lived and shared by a whole test suite, so it is
// safe for concurrent use.
type TokenRegistry struct {
	mu     sync.Mutex
	names  map[string]struct{}
	lastID int64
}

// NewTokenRegistry creates an empty token registry.
func NewTokenRegistry() *TokenRegistry {
	return &TokenRegistry{names: make(map[string]struct{})}
}

// MustNew is like New but panics on error.
// Use it to declare package-level token sets.
func (r *TokenRegistry) MustNew(name string) *CallToken {
	token, err := r.New(name)
	if err != nil {
		panic(fmt.Sprintf("callorder.MustNew: %v", err))
	}

	return token
}

// New creates a call token with the given name.
// It fails if the name is empty, only whitespace, or already taken.
func (r *TokenRegistry) New(name string) (*CallToken, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrInvalidTokenName
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.names == nil {
		r.names = make(map[string]struct{})
	}

	if _, ok := r.names[name]; ok {
		return nil, fmt.Errorf("%w: %q", ErrDuplicateTokenName, name)
	}

	r.names[name] = struct{}{}
	r.lastID++

	return &CallToken{name: name, id: r.lastID}, nil
}

// Reset forgets every name and restarts ids at 1.
// It exists for test isolation; tokens created before the reset keep their ids,
// so don't mix them with tokens created after it.
func (r *TokenRegistry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.names = make(map[string]struct{})
	r.lastID = 0
}
