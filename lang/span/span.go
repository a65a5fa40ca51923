// Package span provides byte-offset source locations shared by every
// downstream stage: tokens, AST nodes, IR instructions, and diagnostics.
package span

import "golang.org/x/exp/slices"

// Span is a half-open byte interval [Start, End) over a single source
// string. It is value-typed and copyable; the zero value is [0,0).
type Span struct {
	Start uint32
	End   uint32
}

// Zero is the default, empty span.
var Zero = Span{}

// Len returns the number of bytes the span covers.
func (s Span) Len() uint32 {
	if s.End < s.Start {
		return 0
	}
	return s.End - s.Start
}

// Slice returns the substring of src covered by s. It does not bounds-check
// beyond what Go's slicing already guarantees.
func (s Span) Slice(src string) string {
	return src[s.Start:s.End]
}

// Join returns the smallest span covering both a and b.
func Join(a, b Span) Span {
	start := a.Start
	if b.Start < start {
		start = b.Start
	}
	end := a.End
	if b.End > end {
		end = b.End
	}
	return Span{Start: start, End: end}
}

// Pos is a resolved line/column pair, both 1-based.
type Pos struct {
	Line   int
	Column int
}

// LineTable resolves byte offsets to 1-based line/column pairs via a
// precomputed prefix sum of newline offsets.
type LineTable struct {
	// starts[i] is the byte offset of the first byte of line i+1 (line 1's
	// start is always 0 and is not stored).
	starts []uint32
}

// NewLineTable scans src once for '\n' bytes and records the offset that
// begins each subsequent line.
func NewLineTable(src string) *LineTable {
	lt := &LineTable{}
	for i := 0; i < len(src); i++ {
		if src[i] == '\n' {
			lt.starts = append(lt.starts, uint32(i+1))
		}
	}
	return lt
}

// Resolve returns the 1-based line and column of the given byte offset.
func (lt *LineTable) Resolve(offset uint32) Pos {
	// count = number of recorded line-starts that are <= offset, i.e. how
	// many lines strictly precede the one containing offset.
	idx, found := slices.BinarySearch(lt.starts, offset)
	count := idx
	if found {
		count++
	}
	var lineStart uint32
	if count > 0 {
		lineStart = lt.starts[count-1]
	}
	return Pos{Line: count + 1, Column: int(offset-lineStart) + 1}
}
