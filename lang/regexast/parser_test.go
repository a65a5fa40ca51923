package regexast

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseConcatenation(t *testing.T) {
	node, err := Parse("abc")
	require.NoError(t, err)
	require.Equal(t, KindConcat, node.Kind)
	require.Len(t, node.Children, 3)
	for i, ch := range []rune{'a', 'b', 'c'} {
		require.Equal(t, KindCharSet, node.Children[i].Kind)
		require.True(t, node.Children[i].Set.Contains(ch))
	}
}

func TestParseAlternation(t *testing.T) {
	node, err := Parse("a|b")
	require.NoError(t, err)
	require.Equal(t, KindAlternate, node.Kind)
	require.Len(t, node.Children, 2)
	require.True(t, node.Children[0].Set.Contains('a'))
	require.True(t, node.Children[1].Set.Contains('b'))
}

func TestParseQuantifiers(t *testing.T) {
	cases := []struct {
		pattern string
		want    RepeatKind
	}{
		{"a*", ZeroOrMore},
		{"a+", OneOrMore},
		{"a?", ZeroOrOne},
	}
	for _, c := range cases {
		node, err := Parse(c.pattern)
		require.NoError(t, err)
		require.Equal(t, KindRepeat, node.Kind)
		require.Equal(t, c.want, node.Repeat)
		require.Equal(t, KindCharSet, node.Child.Kind)
		require.True(t, node.Child.Set.Contains('a'))
	}
}

func TestParseCharClassRange(t *testing.T) {
	node, err := Parse("[a-z]")
	require.NoError(t, err)
	require.Equal(t, KindCharSet, node.Kind)
	require.True(t, node.Set.Contains('m'))
	require.False(t, node.Set.Contains('A'))
	require.False(t, node.Set.Negated)
}

func TestParseNegatedCharClass(t *testing.T) {
	node, err := Parse("[^abc]")
	require.NoError(t, err)
	require.Equal(t, KindCharSet, node.Kind)
	require.False(t, node.Set.Contains('a'))
	require.False(t, node.Set.Contains('b'))
	require.True(t, node.Set.Contains('d'))
}

func TestParseGroupAndQuantifier(t *testing.T) {
	node, err := Parse("(ab)+")
	require.NoError(t, err)
	require.Equal(t, KindRepeat, node.Kind)
	require.Equal(t, OneOrMore, node.Repeat)
	require.Equal(t, KindConcat, node.Child.Kind)
	require.Len(t, node.Child.Children, 2)
}

func TestParseEmptyPattern(t *testing.T) {
	node, err := Parse("")
	require.NoError(t, err)
	require.Equal(t, KindEmpty, node.Kind)
}

func TestParseEscapes(t *testing.T) {
	cases := []struct {
		pattern string
		match   rune
	}{
		{`\n`, '\n'},
		{`\t`, '\t'},
		{`\d`, '5'},
		{`\w`, '_'},
		{`\x41`, 'A'},
	}
	for _, c := range cases {
		node, err := Parse(c.pattern)
		require.NoError(t, err, c.pattern)
		require.Equal(t, KindCharSet, node.Kind)
		require.True(t, node.Set.Contains(c.match), c.pattern)
	}
}

func TestParseDot(t *testing.T) {
	node, err := Parse(".")
	require.NoError(t, err)
	require.Equal(t, KindCharSet, node.Kind)
	require.True(t, node.Set.Any)
}

func TestParseErrors(t *testing.T) {
	cases := []string{"(a", "[a", "a)"}
	for _, pattern := range cases {
		_, err := Parse(pattern)
		require.Error(t, err, pattern)
	}
}
