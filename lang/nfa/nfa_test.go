package nfa

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/scriptum-lang/scriptum/lang/regexast"
)

// epsilonClosure returns the set of states reachable from seeds via any
// number of epsilon edges, seeds included.
func epsilonClosure(n *Nfa, seeds []int) map[int]bool {
	closure := make(map[int]bool)
	var visit func(s int)
	visit = func(s int) {
		if closure[s] {
			return
		}
		closure[s] = true
		for _, next := range n.States[s].Epsilon {
			visit(next)
		}
	}
	for _, s := range seeds {
		visit(s)
	}
	return closure
}

func step(n *Nfa, states map[int]bool, ch rune) []int {
	var next []int
	for s := range states {
		for _, tr := range n.States[s].Transitions {
			if tr.Set.Contains(ch) {
				next = append(next, tr.Target)
			}
		}
	}
	return next
}

func accepts(n *Nfa, input string) bool {
	current := epsilonClosure(n, []int{n.Start})
	for _, ch := range input {
		next := step(n, current, ch)
		if len(next) == 0 {
			return false
		}
		current = epsilonClosure(n, next)
	}
	return current[n.Accept]
}

func parse(t *testing.T, pattern string) *regexast.Node {
	t.Helper()
	node, err := regexast.Parse(pattern)
	require.NoError(t, err)
	return node
}

func TestBuildConcatenation(t *testing.T) {
	n := Build(parse(t, "abc"))
	require.True(t, accepts(n, "abc"))
	require.False(t, accepts(n, "ab"))
	require.False(t, accepts(n, "abcd"))
}

func TestBuildAlternation(t *testing.T) {
	n := Build(parse(t, "cat|dog"))
	require.True(t, accepts(n, "cat"))
	require.True(t, accepts(n, "dog"))
	require.False(t, accepts(n, "cow"))
}

func TestBuildZeroOrMore(t *testing.T) {
	n := Build(parse(t, "a*"))
	require.True(t, accepts(n, ""))
	require.True(t, accepts(n, "a"))
	require.True(t, accepts(n, "aaaa"))
	require.False(t, accepts(n, "aaab"))
}

func TestBuildOneOrMore(t *testing.T) {
	n := Build(parse(t, "a+"))
	require.False(t, accepts(n, ""))
	require.True(t, accepts(n, "a"))
	require.True(t, accepts(n, "aaa"))
}

func TestBuildZeroOrOne(t *testing.T) {
	n := Build(parse(t, "a?b"))
	require.True(t, accepts(n, "b"))
	require.True(t, accepts(n, "ab"))
	require.False(t, accepts(n, "aab"))
}

func TestBuildNestedGroup(t *testing.T) {
	n := Build(parse(t, "(ab)+c"))
	require.True(t, accepts(n, "abc"))
	require.True(t, accepts(n, "ababc"))
	require.False(t, accepts(n, "c"))
	require.False(t, accepts(n, "abab"))
}
