// Package parser is a recursive-descent Pratt parser that turns a token
// stream into a Scriptum AST, with panic-mode error recovery bounded by a
// fuel counter, following the structure of
// original_source/crates/scriptum-parser.
package parser

import (
	"fmt"

	"github.com/scriptum-lang/scriptum/lang/ast"
	"github.com/scriptum-lang/scriptum/lang/intern"
	"github.com/scriptum-lang/scriptum/lang/span"
	"github.com/scriptum-lang/scriptum/lang/token"
)

// Diagnostic is one syntactic error: an unexpected token, a missing
// delimiter, or fuel exhaustion.
type Diagnostic struct {
	Message string
	Span    span.Span
}

func (d Diagnostic) Error() string { return d.Message }

// Output is the parser's result: a best-effort module plus any
// diagnostics. A non-empty diagnostic list still returns a usable module
// so downstream stages can surface more errors in the same run.
type Output struct {
	Module      *ast.Module
	Diagnostics []Diagnostic
}

// ParseTokens parses an already-scanned token stream (e.g. the output of
// scanner.Scan) into a Module, collecting syntax diagnostics.
func ParseTokens(tokens []token.Token, interner *intern.Interner) Output {
	p := &parser{tokens: tokens, interner: interner, ids: &ast.IdGen{}}
	p.fuel = len(tokens)*4 + 32
	module := p.parseModule()
	return Output{Module: module, Diagnostics: p.diagnostics}
}

type parser struct {
	tokens      []token.Token
	pos         int
	interner    *intern.Interner
	ids         *ast.IdGen
	diagnostics []Diagnostic
	fuel        int
}

func (p *parser) cur() token.Token {
	if p.pos >= len(p.tokens) {
		return token.Token{Kind: token.EOF}
	}
	return p.tokens[p.pos]
}

func (p *parser) at(k token.Kind) bool { return p.cur().Kind == k }

func (p *parser) advance() token.Token {
	t := p.cur()
	if p.pos < len(p.tokens) {
		p.pos++
	}
	p.fuel--
	return t
}

// outOfFuel reports whether the parser has used up its budget; each call
// made once the budget is spent records a fuel-exhausted diagnostic.
func (p *parser) outOfFuel() bool {
	if p.fuel > 0 {
		return false
	}
	p.errorf(p.cur().Span, "parser fuel exhausted, aborting")
	return true
}

func (p *parser) errorf(sp span.Span, format string, args ...interface{}) {
	p.diagnostics = append(p.diagnostics, Diagnostic{Message: fmt.Sprintf(format, args...), Span: sp})
}

// expect consumes a token of kind k, or records a diagnostic and returns
// the current token without consuming it.
func (p *parser) expect(k token.Kind) token.Token {
	if p.at(k) {
		return p.advance()
	}
	p.errorf(p.cur().Span, "expected %s, found %s", k, p.cur().Kind)
	return p.cur()
}

// guardProgress aborts a sub-parse that failed to consume at least one
// token, forcing the caller to advance and avoid an infinite loop.
func (p *parser) guardProgress(startPos int) bool {
	if p.pos == startPos {
		p.advance()
		return false
	}
	return true
}

// synchronize skips tokens until a statement terminator (`;` or `}`) or
// EOF, the panic-mode recovery point.
func (p *parser) synchronize() {
	for !p.at(token.EOF) {
		if p.at(token.Semicolon) {
			p.advance()
			return
		}
		if p.at(token.RBrace) {
			return
		}
		p.advance()
	}
}

func (p *parser) intern(lexeme string) intern.Symbol {
	return p.interner.Intern(lexeme)
}

func (p *parser) parseModule() *ast.Module {
	start := p.cur().Span
	var items []ast.Item
	for !p.at(token.EOF) {
		if p.outOfFuel() {
			break
		}
		startPos := p.pos
		item := p.parseItem()
		if item != nil {
			items = append(items, item)
		}
		if !p.guardProgress(startPos) {
			continue
		}
	}
	end := p.cur().Span
	return ast.NewModule(p.ids, span.Join(start, end), p.interner, items)
}

func (p *parser) parseItem() ast.Item {
	switch p.cur().Kind {
	case token.KwFunctio:
		return p.parseFunction()
	case token.KwMutabilis, token.KwConstans:
		decl := p.parseVarDecl()
		return ast.NewGlobalVar(p.ids, decl.Span(), decl)
	default:
		p.errorf(p.cur().Span, "expected item, found %s", p.cur().Kind)
		p.synchronize()
		return nil
	}
}
