package intern

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestInternDeduplicates(t *testing.T) {
	in := New()
	a := in.Intern("foo")
	b := in.Intern("bar")
	c := in.Intern("foo")

	require.Equal(t, a, c)
	require.NotEqual(t, a, b)
	require.Equal(t, 2, in.Len())
}

func TestResolveRoundTrips(t *testing.T) {
	in := New()
	words := []string{"init", "add", "factorial", "init"}
	syms := make([]Symbol, len(words))
	for i, w := range words {
		syms[i] = in.Intern(w)
	}
	for i, w := range words {
		require.Equal(t, w, in.Resolve(syms[i]))
	}
	require.Equal(t, syms[0], syms[3])
	require.Equal(t, 3, in.Len())
}

func TestInternPreservesInsertionOrder(t *testing.T) {
	in := New()
	first := in.Intern("a")
	second := in.Intern("b")
	third := in.Intern("c")

	require.Equal(t, Symbol(0), first)
	require.Equal(t, Symbol(1), second)
	require.Equal(t, Symbol(2), third)
}
