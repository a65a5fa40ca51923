// Package scanner is the longest-match, priority-ordered token driver that
// runs the lexspec-built DFAs over a source string.
package scanner

import (
	"fmt"

	"github.com/scriptum-lang/scriptum/lang/automata"
	"github.com/scriptum-lang/scriptum/lang/lexspec"
	"github.com/scriptum-lang/scriptum/lang/span"
	"github.com/scriptum-lang/scriptum/lang/token"
)

// LexError reports an unrecognized character or an otherwise-unmatched
// position. Lexical errors halt scanning (spec error kind 1).
type LexError struct {
	Span span.Span
	Pos  span.Pos
}

func (e *LexError) Error() string {
	return fmt.Sprintf("%d:%d: unrecognized character", e.Pos.Line, e.Pos.Column)
}

// Scan tokenizes src against the built token catalog, returning an ordered
// token sequence terminated by EOF, or the first LexError encountered.
func Scan(src string) ([]token.Token, error) {
	return ScanCatalog(src, lexspec.BuiltCatalog)
}

// ScanCatalog is Scan parameterized over an explicit built catalog, mainly
// useful for tests that exercise a narrower set of token definitions.
func ScanCatalog(src string, catalog []lexspec.BuiltToken) ([]token.Token, error) {
	data := []rune(src)
	lines := span.NewLineTable(src)

	// byteOffsets[i] is the byte offset of rune i, needed because Span is
	// byte-indexed but the DFA walks runes.
	byteOffsets := make([]int, len(data)+1)
	off := 0
	for i, r := range data {
		byteOffsets[i] = off
		off += runeLen(r)
	}
	byteOffsets[len(data)] = off

	var tokens []token.Token
	pos := 0
	for pos < len(data) {
		bestEnd := -1
		bestPriority := -1
		bestIndex := -1
		for i := range catalog {
			def := &catalog[i]
			end, ok := automata.Run(def.Dfa, data, pos)
			if !ok || end <= pos {
				continue
			}
			if end > bestEnd ||
				(end == bestEnd && def.Priority > bestPriority) ||
				(end == bestEnd && def.Priority == bestPriority && def.Index < bestIndex) {
				bestEnd = end
				bestPriority = def.Priority
				bestIndex = def.Index
			}
		}
		if bestEnd < 0 {
			byteStart := uint32(byteOffsets[pos])
			sp := span.Span{Start: byteStart, End: byteStart + 1}
			return tokens, &LexError{Span: sp, Pos: lines.Resolve(byteStart)}
		}

		winner := &catalog[bestIndex]
		sp := span.Span{Start: uint32(byteOffsets[pos]), End: uint32(byteOffsets[bestEnd])}
		lexeme := string(data[pos:bestEnd])
		pos = bestEnd

		if winner.Discard {
			continue
		}

		kind, ok := token.KindForCatalogName(winner.Name)
		if !ok {
			kind = token.IDENT
		}
		if kind == token.IDENT {
			if kw, isKw := token.LookupKeyword(lexeme); isKw {
				kind = kw
			}
		}
		tokens = append(tokens, token.Token{Kind: kind, Span: sp, Lexeme: lexeme})
	}

	eofOff := uint32(byteOffsets[len(data)])
	tokens = append(tokens, token.Token{Kind: token.EOF, Span: span.Span{Start: eofOff, End: eofOff}})
	return tokens, nil
}

func runeLen(r rune) int {
	switch {
	case r < 0x80:
		return 1
	case r < 0x800:
		return 2
	case r < 0x10000:
		return 3
	default:
		return 4
	}
}
