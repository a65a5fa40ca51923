package regexast

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCharSetContains(t *testing.T) {
	cases := []struct {
		desc string
		set  CharSet
		ch   rune
		want bool
	}{
		{"any matches anything", AnySet(), 'x', true},
		{"negated any matches nothing", CharSet{Any: true, Negated: true}, 'x', false},
		{"singleton matches self", Singleton('a'), 'a', true},
		{"singleton rejects other", Singleton('a'), 'b', false},
		{"range matches inside", FromRanges([][2]rune{{'a', 'z'}}, false), 'm', true},
		{"range rejects outside", FromRanges([][2]rune{{'a', 'z'}}, false), 'A', false},
		{"negated range flips membership", FromRanges([][2]rune{{'a', 'z'}}, true), 'A', true},
		{"negated range rejects member", FromRanges([][2]rune{{'a', 'z'}}, true), 'm', false},
		{"empty set matches nothing", EmptySet(), 'a', false},
	}
	for _, c := range cases {
		t.Run(c.desc, func(t *testing.T) {
			require.Equal(t, c.want, c.set.Contains(c.ch))
		})
	}
}

func TestCharSetIsEmpty(t *testing.T) {
	require.True(t, EmptySet().IsEmpty())
	require.False(t, AnySet().IsEmpty())
	require.False(t, Singleton('a').IsEmpty())
	require.False(t, FromRanges(nil, true).IsEmpty()) // negated empty matches everything
}

func TestCharSetNormalizeMergesOverlapping(t *testing.T) {
	c := CharSet{Ranges: [][2]rune{{'d', 'f'}, {'a', 'c'}, {'c', 'e'}}}
	c.Normalize()
	require.Equal(t, [][2]rune{{'a', 'f'}}, c.Ranges)
}

func TestCharSetNormalizeKeepsDisjoint(t *testing.T) {
	c := CharSet{Ranges: [][2]rune{{'x', 'z'}, {'a', 'c'}}}
	c.Normalize()
	require.Equal(t, [][2]rune{{'a', 'c'}, {'x', 'z'}}, c.Ranges)
}

func TestCharSetUnion(t *testing.T) {
	c := Singleton('a')
	c.Union(Singleton('b'))
	require.True(t, c.Contains('a'))
	require.True(t, c.Contains('b'))
	require.False(t, c.Contains('c'))
}
