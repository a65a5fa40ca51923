// Package regexast is the machine-level intermediate representation for the
// lexer generator: a regular-expression AST, a CharSet value type, and a
// textual recursive-descent parser that builds it.
package regexast

import "sort"

// RepeatKind distinguishes the three quantifiers the grammar supports.
type RepeatKind int

const (
	ZeroOrMore RepeatKind = iota
	OneOrMore
	ZeroOrOne
)

// Kind discriminates a Node's variant.
type Kind int

const (
	KindEmpty Kind = iota
	KindCharSet
	KindConcat
	KindAlternate
	KindRepeat
)

// Node is a regex AST node. Which fields are meaningful is selected by
// Kind, as annotated on each field.
type Node struct {
	Kind     Kind
	Set      CharSet      // KindCharSet
	Children []*Node      // KindConcat, KindAlternate
	Child    *Node        // KindRepeat
	Repeat   RepeatKind   // KindRepeat
}

// Empty is the node matching the empty string.
func Empty() *Node { return &Node{Kind: KindEmpty} }

// CharSetNode wraps a CharSet as a matcher node.
func CharSetNode(s CharSet) *Node { return &Node{Kind: KindCharSet, Set: s} }

// Concat flattens nested concatenations, matching the original builder's
// behavior of never nesting Concat inside Concat.
func Concat(parts []*Node) *Node {
	flat := make([]*Node, 0, len(parts))
	for _, p := range parts {
		if p.Kind == KindConcat {
			flat = append(flat, p.Children...)
		} else {
			flat = append(flat, p)
		}
	}
	if len(flat) == 1 {
		return flat[0]
	}
	return &Node{Kind: KindConcat, Children: flat}
}

// Alternate flattens nested alternations the same way Concat does.
func Alternate(parts []*Node) *Node {
	flat := make([]*Node, 0, len(parts))
	for _, p := range parts {
		if p.Kind == KindAlternate {
			flat = append(flat, p.Children...)
		} else {
			flat = append(flat, p)
		}
	}
	if len(flat) == 1 {
		return flat[0]
	}
	return &Node{Kind: KindAlternate, Children: flat}
}

// Repeat wraps child with the given quantifier.
func Repeat(child *Node, kind RepeatKind) *Node {
	return &Node{Kind: KindRepeat, Child: child, Repeat: kind}
}

// CharSet is a set of inclusive code-point ranges, optionally negated, or
// the universal "any" matcher.
type CharSet struct {
	Ranges  [][2]rune
	Negated bool
	Any     bool
}

// EmptySet returns the set matching nothing.
func EmptySet() CharSet { return CharSet{} }

// AnySet returns the universal matcher (used for '.').
func AnySet() CharSet { return CharSet{Any: true} }

// Singleton returns the set matching exactly ch.
func Singleton(ch rune) CharSet {
	return CharSet{Ranges: [][2]rune{{ch, ch}}}
}

// FromRanges builds a set from explicit ranges, optionally negated.
func FromRanges(ranges [][2]rune, negated bool) CharSet {
	return CharSet{Ranges: append([][2]rune(nil), ranges...), Negated: negated}
}

// PushRange appends an inclusive range to the set.
func (c *CharSet) PushRange(lo, hi rune) {
	c.Ranges = append(c.Ranges, [2]rune{lo, hi})
}

// Union merges other's ranges into c. Negation flags are not combined;
// callers union only same-polarity sets (matching the original parser's
// usage, which only unions positive sets while building up a class body).
func (c *CharSet) Union(other CharSet) {
	if other.Any {
		c.Any = true
	}
	c.Ranges = append(c.Ranges, other.Ranges...)
}

// Normalize sorts and merges overlapping/adjacent ranges.
func (c *CharSet) Normalize() {
	if len(c.Ranges) < 2 {
		return
	}
	sort.Slice(c.Ranges, func(i, j int) bool { return c.Ranges[i][0] < c.Ranges[j][0] })
	merged := c.Ranges[:1]
	for _, r := range c.Ranges[1:] {
		last := &merged[len(merged)-1]
		if r[0] <= last[1]+1 {
			if r[1] > last[1] {
				last[1] = r[1]
			}
		} else {
			merged = append(merged, r)
		}
	}
	c.Ranges = merged
}

// Contains reports whether ch is matched by the set, honoring Any and
// Negated.
func (c CharSet) Contains(ch rune) bool {
	if c.Any {
		return !c.Negated
	}
	in := false
	for _, r := range c.Ranges {
		if ch >= r[0] && ch <= r[1] {
			in = true
			break
		}
	}
	if c.Negated {
		return !in
	}
	return in
}

// IsEmpty reports whether the set matches no code point at all.
func (c CharSet) IsEmpty() bool {
	return !c.Any && !c.Negated && len(c.Ranges) == 0
}

// singletonValue returns the single code point this set matches, if it
// matches exactly one and isn't negated/any — used by the textual parser
// to detect range endpoints like `a-z`.
func (c CharSet) singletonValue() (rune, bool) {
	if c.Any || c.Negated {
		return 0, false
	}
	if len(c.Ranges) == 1 && c.Ranges[0][0] == c.Ranges[0][1] {
		return c.Ranges[0][0], true
	}
	return 0, false
}
