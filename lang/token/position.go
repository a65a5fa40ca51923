package token

import "github.com/scriptum-lang/scriptum/lang/span"

// Token is {kind, span}: a scanner output unit. Tokens are short-lived,
// consumed by the parser.
type Token struct {
	Kind   Kind
	Span   span.Span
	Lexeme string
}
