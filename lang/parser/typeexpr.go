package parser

import (
	"github.com/scriptum-lang/scriptum/lang/ast"
	"github.com/scriptum-lang/scriptum/lang/intern"
	"github.com/scriptum-lang/scriptum/lang/span"
	"github.com/scriptum-lang/scriptum/lang/token"
)

// parseType parses a TypeExpr: a simple name, an array suffix `T[]`,
// an object type `structura{...}` (or bare `{...}`), a function type, a
// tuple, or a trailing `?` for Optional.
// Array uses a postfix `[]` rather than a generic `Array<T>` spelling
// because the lexical catalog's IDENT pattern is lowercase-only and has no
// capitalized "Array" keyword to anchor a generic-style syntax on.
func (p *parser) parseType() ast.TypeExpr {
	base := p.parseTypeAtom()
	for {
		switch {
		case p.at(token.LBracket):
			start := p.advance().Span
			end := p.expect(token.RBracket).Span
			_ = start
			base = ast.NewArrayTypeExpr(p.ids, span.Join(base.Span(), end), base)
		case p.at(token.Question):
			end := p.advance().Span
			base = ast.NewOptionalTypeExpr(p.ids, span.Join(base.Span(), end), base)
		default:
			return base
		}
	}
}

func (p *parser) parseTypeAtom() ast.TypeExpr {
	t := p.cur()
	switch t.Kind {
	case token.IDENT, token.KwNumerus, token.KwTextus, token.KwBooleanum,
		token.KwVacuum, token.KwNullum, token.KwIndefinitum, token.KwQuodlibet:
		p.advance()
		sym := p.intern(t.Lexeme)
		return ast.NewSimpleTypeExpr(p.ids, t.Span, sym)
	case token.KwStructura, token.LBrace:
		return p.parseObjectType()
	case token.KwFunctio:
		return p.parseFunctionType()
	case token.LParen:
		return p.parseTupleType()
	default:
		p.errorf(t.Span, "expected type, found %s", t.Kind)
		p.advance()
		return ast.NewSimpleTypeExpr(p.ids, t.Span, p.intern("quodlibet"))
	}
}

func (p *parser) parseObjectType() ast.TypeExpr {
	start := p.cur().Span
	if p.at(token.KwStructura) {
		p.advance()
	}
	p.expect(token.LBrace)
	var fields []ast.ObjectTypeField
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		nameTok := p.expect(token.IDENT)
		p.expect(token.Colon)
		typ := p.parseType()
		fields = append(fields, ast.ObjectTypeField{Name: p.intern(nameTok.Lexeme), Type: typ})
		if p.at(token.Comma) {
			p.advance()
		} else {
			break
		}
	}
	end := p.expect(token.RBrace).Span
	return ast.NewObjectTypeExpr(p.ids, span.Join(start, end), fields)
}

func (p *parser) parseFunctionType() ast.TypeExpr {
	start := p.advance().Span // "functio"
	var generics []intern.Symbol
	if p.at(token.Less) {
		p.advance()
		for !p.at(token.Greater) && !p.at(token.EOF) {
			generics = append(generics, p.intern(p.expect(token.IDENT).Lexeme))
			if p.at(token.Comma) {
				p.advance()
			} else {
				break
			}
		}
		p.expect(token.Greater)
	}
	p.expect(token.LParen)
	var params []ast.TypeExpr
	for !p.at(token.RParen) && !p.at(token.EOF) {
		params = append(params, p.parseType())
		if p.at(token.Comma) {
			p.advance()
		} else {
			break
		}
	}
	end := p.expect(token.RParen).Span
	var ret ast.TypeExpr
	if p.at(token.Arrow) {
		p.advance()
		ret = p.parseType()
		end = ret.Span()
	}
	return ast.NewFunctionTypeExpr(p.ids, span.Join(start, end), generics, params, ret)
}

func (p *parser) parseTupleType() ast.TypeExpr {
	start := p.advance().Span // "("
	var elements []ast.TypeExpr
	for !p.at(token.RParen) && !p.at(token.EOF) {
		elements = append(elements, p.parseType())
		if p.at(token.Comma) {
			p.advance()
		} else {
			break
		}
	}
	end := p.expect(token.RParen).Span
	return ast.NewTupleTypeExpr(p.ids, span.Join(start, end), elements)
}
