package charclass

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClassifyKnownChars(t *testing.T) {
	cases := []struct {
		ch   rune
		want Class
	}{
		{'a', Lower},
		{'z', Lower},
		{'A', Upper},
		{'Z', Upper},
		{'0', Zero},
		{'1', Digit},
		{'9', Digit},
		{'_', Underscore},
		{' ', Space},
		{'\t', Tab},
		{'\r', CarriageReturn},
		{'\n', Newline},
		{'/', Slash},
		{'"', DoubleQuote},
		{'\'', SingleQuote},
		{'(', LParen},
		{')', RParen},
		{'{', LBrace},
		{'}', RBrace},
		{'[', LBracket},
		{']', RBracket},
	}
	for _, c := range cases {
		require.Equal(t, c.want, Classify(c.ch), "char %q", c.ch)
	}
}

func TestClassifyCollapsesUnknownToOther(t *testing.T) {
	for _, ch := range []rune{'@', '#', '$', '`', 0x00e9, 0x4e2d} {
		require.Equal(t, Other, Classify(ch), "char %q", ch)
	}
}

func TestStringCoversEveryClass(t *testing.T) {
	for c := Class(0); c < Count; c++ {
		require.NotEqual(t, "UNKNOWN", c.String(), "class %d missing a name", c)
	}
}

func TestStringOutOfRange(t *testing.T) {
	require.Equal(t, "UNKNOWN", Count.String())
	require.Equal(t, "UNKNOWN", (Count + 1).String())
}
