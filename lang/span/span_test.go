package span

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSpanLen(t *testing.T) {
	cases := []struct {
		s    Span
		want uint32
	}{
		{Span{0, 0}, 0},
		{Span{0, 5}, 5},
		{Span{3, 3}, 0},
		{Span{5, 3}, 0}, // malformed, End < Start
	}
	for _, c := range cases {
		t.Run(fmt.Sprintf("%v", c.s), func(t *testing.T) {
			require.Equal(t, c.want, c.s.Len())
		})
	}
}

func TestSpanSlice(t *testing.T) {
	src := "functio init"
	require.Equal(t, "functio", Span{0, 7}.Slice(src))
	require.Equal(t, "init", Span{8, 12}.Slice(src))
}

func TestJoin(t *testing.T) {
	cases := []struct {
		a, b Span
		want Span
	}{
		{Span{0, 3}, Span{5, 8}, Span{0, 8}},
		{Span{5, 8}, Span{0, 3}, Span{0, 8}},
		{Span{2, 6}, Span{3, 4}, Span{2, 6}},
		{Span{2, 4}, Span{2, 4}, Span{2, 4}},
	}
	for _, c := range cases {
		t.Run(fmt.Sprintf("%v+%v", c.a, c.b), func(t *testing.T) {
			require.Equal(t, c.want, Join(c.a, c.b))
		})
	}
}

func TestLineTableResolve(t *testing.T) {
	// line 1: "abc\n" (offsets 0-3, newline at 3)
	// line 2: "de\n"  (offsets 4-6, newline at 6)
	// line 3: "f"     (offset 7)
	src := "abc\nde\nf"
	lt := NewLineTable(src)

	cases := []struct {
		offset uint32
		want   Pos
	}{
		{0, Pos{Line: 1, Column: 1}},
		{2, Pos{Line: 1, Column: 3}},
		{3, Pos{Line: 1, Column: 4}}, // the newline itself
		{4, Pos{Line: 2, Column: 1}},
		{6, Pos{Line: 2, Column: 3}},
		{7, Pos{Line: 3, Column: 1}},
	}
	for _, c := range cases {
		t.Run(fmt.Sprintf("offset=%d", c.offset), func(t *testing.T) {
			require.Equal(t, c.want, lt.Resolve(c.offset))
		})
	}
}

func TestLineTableNoNewlines(t *testing.T) {
	lt := NewLineTable("nolinebreaks")
	require.Equal(t, Pos{Line: 1, Column: 1}, lt.Resolve(0))
	require.Equal(t, Pos{Line: 1, Column: 5}, lt.Resolve(4))
}
