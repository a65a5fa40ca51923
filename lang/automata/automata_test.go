package automata_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/scriptum-lang/scriptum/lang/automata"
	"github.com/scriptum-lang/scriptum/lang/charclass"
	"github.com/scriptum-lang/scriptum/lang/nfa"
	"github.com/scriptum-lang/scriptum/lang/regexast"
)

func buildMinDfa(t *testing.T, pattern string, tokenIndex, priority int) *automata.MinDfa {
	t.Helper()
	node, err := regexast.Parse(pattern)
	require.NoError(t, err)
	n := nfa.Build(node)
	d := automata.Subset(n, tokenIndex, priority)
	return automata.Minimize(d)
}

func stateAfter(d *automata.MinDfa, data []rune, n int) int {
	state := d.Start
	for i := 0; i < n; i++ {
		cls := charclass.Classify(data[i])
		state = d.Transitions[state][int(cls)]
	}
	return state
}

func TestRunLongestMatchOneOrMore(t *testing.T) {
	// The DFA steps over character classes, so the run must end on a
	// character outside the LOWER class for the match to stop early.
	d := buildMinDfa(t, "a+", 0, 0)
	data := []rune("aaa;")

	end, ok := automata.Run(d, data, 0)
	require.True(t, ok)
	require.Equal(t, 3, end)
}

func TestRunZeroOrMoreMatchesEmpty(t *testing.T) {
	d := buildMinDfa(t, "a*", 0, 0)
	data := []rune("bbb")

	end, ok := automata.Run(d, data, 0)
	require.True(t, ok)
	require.Equal(t, 0, end)
}

func TestRunNoMatch(t *testing.T) {
	d := buildMinDfa(t, "ab|cd", 0, 0)
	data := []rune("xyz")

	_, ok := automata.Run(d, data, 0)
	require.False(t, ok)
}

func TestRunAlternation(t *testing.T) {
	// Each branch mixes two distinct classes (LOWER via its representative
	// 'a', and ZERO), since letters of one class are indistinguishable.
	d := buildMinDfa(t, "a0|0a", 0, 0)

	end, ok := automata.Run(d, []rune("a0z"), 0)
	require.True(t, ok)
	require.Equal(t, 2, end)

	end, ok = automata.Run(d, []rune("0az"), 0)
	require.True(t, ok)
	require.Equal(t, 2, end)
}

func TestRunDigitClass(t *testing.T) {
	d := buildMinDfa(t, "[0-9]+", 0, 0)
	data := []rune("123a")

	end, ok := automata.Run(d, data, 0)
	require.True(t, ok)
	require.Equal(t, 3, end)
}

func TestRunAtNonZeroOffset(t *testing.T) {
	d := buildMinDfa(t, "[0-9]+", 0, 0)
	data := []rune("xx123")

	end, ok := automata.Run(d, data, 2)
	require.True(t, ok)
	require.Equal(t, 5, end)
}

func TestMinimizePreservesAcceptingLabel(t *testing.T) {
	d := buildMinDfa(t, "a+", 7, 3)
	data := []rune("aaa")

	end, ok := automata.Run(d, data, 0)
	require.True(t, ok)

	state := stateAfter(d, data, end)
	acc, isAccept := d.Accept[state]
	require.True(t, isAccept)
	require.Equal(t, 7, acc.TokenIndex)
	require.Equal(t, 3, acc.Priority)
}

func TestTransitionTableIsTotal(t *testing.T) {
	d := buildMinDfa(t, "a+", 0, 0)
	for s, row := range d.Transitions {
		require.Len(t, row, d.ClassCount, "state %d", s)
		for _, target := range row {
			require.GreaterOrEqual(t, target, 0)
			require.Less(t, target, len(d.Transitions))
		}
	}
}
