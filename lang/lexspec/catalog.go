// Package lexspec declares the Scriptum token catalog and builds each
// entry's minimized DFA via the regexast/nfa/automata pipeline.
package lexspec

// TokenDefinition is one declarative entry in the token catalog: a name, a
// textual regex pattern, whether matches are discarded (whitespace and
// comments), and a tie-breaking priority (the scanner prefers the longest
// match; among matches of equal length, higher priority wins).
type TokenDefinition struct {
	Name     string
	Pattern  string
	Discard  bool
	Priority int
}

// Catalog is the full declarative token catalog, in declaration order;
// declaration index is used as the final scanner tie-breaker.
//
// Patterns and the literal-to-name mapping are grounded on
// scriptum/crates/lexer/src/spec.rs's build_token_definitions.
var Catalog = buildCatalog()

func buildCatalog() []TokenDefinition {
	defs := []TokenDefinition{
		{Name: "WS", Pattern: `[ \t\r\n]+`, Discard: true, Priority: 0},
		{Name: "LINE_COMMENT", Pattern: `//[^\n]*`, Discard: true, Priority: 0},
		{Name: "BLOCK_COMMENT", Pattern: `/\*([^*]|\*+[^/])*\*+/`, Discard: true, Priority: 0},
		{Name: "STRING", Pattern: `"(\\.|[^"\\\n\r])*"`, Discard: false, Priority: 1},
		{Name: "NUMBER", Pattern: `(0|[1-9][0-9]*)(\.[0-9]+)?([eE][+-]?[0-9]+)?`, Discard: false, Priority: 1},
		{Name: "IDENT", Pattern: `[a-z][a-z0-9_]*`, Discard: false, Priority: 0},
	}
	for _, lit := range literals {
		defs = append(defs, TokenDefinition{
			Name:     lit.name,
			Pattern:  escapeLiteral(lit.text),
			Discard:  false,
			Priority: 2,
		})
	}
	return defs
}

type literalDef struct {
	text string
	name string
}

// literals enumerate every operator/punctuation/delimiter token,
// multi-character texts before single-character ones, so e.g. "===" is
// declared before "==" (index-based tie-breaking only matters when lengths
// tie, but declaring long-to-short mirrors the original catalog and keeps
// priority semantics obvious).
var literals = []literalDef{
	{"**", "STAR_STAR"},
	{"===", "TRIPLE_EQUAL"},
	{"!==", "BANG_DOUBLE_EQUAL"},
	{"==", "DOUBLE_EQUAL"},
	{"!=", "BANG_EQUAL"},
	{"<=", "LESS_EQUAL"},
	{">=", "GREATER_EQUAL"},
	{"&&", "AMP_AMP"},
	{"||", "PIPE_PIPE"},
	{"??", "QUESTION_QUESTION"},
	{"?.", "QUESTION_DOT"},
	{"->", "ARROW"},
	{"::", "COLON_COLON"},
	{"+", "PLUS"},
	{"-", "MINUS"},
	{"*", "STAR"},
	{"/", "SLASH"},
	{"%", "PERCENT"},
	{"=", "EQUAL"},
	{"<", "LESS"},
	{">", "GREATER"},
	{"!", "BANG"},
	{"&", "AMP"},
	{"|", "PIPE"},
	{"^", "CARET"},
	{"~", "TILDE"},
	{"?", "QUESTION"},
	{"(", "LPAREN"},
	{")", "RPAREN"},
	{"[", "LBRACKET"},
	{"]", "RBRACKET"},
	{"{", "LBRACE"},
	{"}", "RBRACE"},
	{",", "COMMA"},
	{";", "SEMICOLON"},
	{".", "DOT"},
	{":", "COLON"},
}

var literalEscapes = map[rune]bool{
	'.': true, '*': true, '+': true, '?': true, '(': true, ')': true,
	'[': true, ']': true, '{': true, '}': true, '|': true, '^': true,
	'$': true, '\\': true,
}

// escapeLiteral renders a fixed literal string as a regex pattern matching
// exactly that text, backslash-escaping any textual-regex metacharacter.
func escapeLiteral(s string) string {
	out := make([]byte, 0, len(s)*2)
	for _, r := range s {
		if literalEscapes[r] {
			out = append(out, '\\')
		}
		out = append(out, string(r)...)
	}
	return string(out)
}
