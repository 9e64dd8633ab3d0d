package core_test

import (
	"sync"
	"testing"

	. "github.com/onsi/gomega"

	"github.com/toejough/callorder/internal/core"
)

func TestTokenRegistry_New(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	tokens := core.NewTokenRegistry()

	save, err := tokens.New("Save")
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(save.Name()).To(Equal("Save"))
	g.Expect(save.String()).To(Equal("Save"))

	load, err := tokens.New("Load")
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(load.ID()).To(BeNumerically(">", save.ID()))
	g.Expect(save.Equal(load)).To(BeFalse())
	g.Expect(save.Equal(save)).To(BeTrue())
}

func TestTokenRegistry_InvalidNames(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"", " ", "\t\n"} {
		g := NewWithT(t)

		token, err := core.NewTokenRegistry().New(name)
		g.Expect(err).To(MatchError(core.ErrInvalidTokenName))
		g.Expect(token).To(BeNil())
	}
}

func TestTokenRegistry_DuplicateName(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	tokens := core.NewTokenRegistry()
	_, err := tokens.New("Save")
	g.Expect(err).NotTo(HaveOccurred())

	_, err = tokens.New("Save")
	g.Expect(err).To(MatchError(core.ErrDuplicateTokenName))
	g.Expect(err).To(MatchError(`call token name is already in use: "Save"`))
}

func TestTokenRegistry_ResetAllowsReuse(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	tokens := core.NewTokenRegistry()
	before := tokens.MustNew("Save")

	tokens.Reset()

	after, err := tokens.New("Save")
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(after.ID()).To(Equal(int64(1)))
	g.Expect(before.ID()).To(Equal(int64(1)))
}

func TestTokenRegistry_MustNewPanics(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	tokens := core.NewTokenRegistry()
	tokens.MustNew("Save")

	g.Expect(func() { tokens.MustNew("Save") }).To(PanicWith(
		`callorder.MustNew: call token name is already in use: "Save"`))
}

func TestTokenRegistry_ZeroValueIsUsable(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	var tokens core.TokenRegistry

	token, err := tokens.New("Save")
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(token.ID()).To(Equal(int64(1)))
}

func TestTokenRegistry_ConcurrentIDsAreUnique(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	const numGoroutines = 50

	tokens := core.NewTokenRegistry()
	ids := make([]int64, numGoroutines)

	var wg sync.WaitGroup

	for i := range numGoroutines {
		wg.Go(func() {
			ids[i] = tokens.MustNew(string(rune('a'+i%26)) + string(rune('A'+i/26))).ID()
		})
	}

	wg.Wait()

	g.Expect(ids).To(ConsistOf(func() []any {
		want := make([]any, numGoroutines)
		for i := range numGoroutines {
			want[i] = int64(i + 1)
		}

		return want
	}()...))
}

func TestCallToken_EqualNil(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	var missing *core.CallToken

	token := core.NewTokenRegistry().MustNew("Save")

	g.Expect(missing.Equal(nil)).To(BeTrue())
	g.Expect(token.Equal(nil)).To(BeFalse())
	g.Expect(missing.Equal(token)).To(BeFalse())
}

func TestDefaultTokens(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	// Names are unique to this test so the shared registry isn't reset under
	// other parallel tests.
	token, err := core.NewCallToken("TestDefaultTokens.Save")
	g.Expect(err).NotTo(HaveOccurred())

	_, err = core.NewCallToken("TestDefaultTokens.Save")
	g.Expect(err).To(MatchError(core.ErrDuplicateTokenName))

	g.Expect(core.MustCallToken("TestDefaultTokens.Load").ID()).To(BeNumerically(">", token.ID()))
}
