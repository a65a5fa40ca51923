package parser

import (
	"github.com/scriptum-lang/scriptum/lang/ast"
	"github.com/scriptum-lang/scriptum/lang/intern"
	"github.com/scriptum-lang/scriptum/lang/span"
	"github.com/scriptum-lang/scriptum/lang/token"
)

func (p *parser) parseFunction() *ast.Function {
	start := p.advance().Span // "functio"
	nameTok := p.expect(token.IDENT)
	name := p.intern(nameTok.Lexeme)

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
	var params []ast.Param
	for !p.at(token.RParen) && !p.at(token.EOF) {
		params = append(params, p.parseParam())
		if p.at(token.Comma) {
			p.advance()
		} else {
			break
		}
	}
	p.expect(token.RParen)

	var ret ast.TypeExpr
	if p.at(token.Arrow) {
		p.advance()
		ret = p.parseType()
	}

	body := p.parseBlock()
	return ast.NewFunction(p.ids, span.Join(start, body.Span()), name, generics, params, ret, body)
}

// parseParam supports both "Type ident" and "ident: Type" parameter
// syntax, matching the original grammar's trailing-colon-type convenience.
func (p *parser) parseParam() ast.Param {
	startSpan := p.cur().Span
	if p.at(token.IDENT) {
		// lookahead: "ident :" means trailing-type form; an identifier
		// followed by "," or ")" is itself a (typeless) parameter name.
		save := p.pos
		nameTok := p.advance()
		if p.at(token.Colon) {
			p.advance()
			typ := p.parseType()
			return ast.Param{Name: p.intern(nameTok.Lexeme), Type: typ, Span: span.Join(startSpan, typ.Span())}
		}
		if p.at(token.Comma) || p.at(token.RParen) {
			return ast.Param{Name: p.intern(nameTok.Lexeme), Span: nameTok.Span}
		}
		p.pos = save
	}
	typ := p.parseType()
	nameTok := p.expect(token.IDENT)
	return ast.Param{Name: p.intern(nameTok.Lexeme), Type: typ, Span: span.Join(startSpan, nameTok.Span)}
}

func (p *parser) parseBlock() *ast.Block {
	start := p.expect(token.LBrace).Span
	var stmts []ast.Stmt
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		if p.outOfFuel() {
			break
		}
		startPos := p.pos
		s := p.parseStatement()
		if s != nil {
			stmts = append(stmts, s)
		}
		if !p.guardProgress(startPos) {
			continue
		}
	}
	end := p.expect(token.RBrace).Span
	return ast.NewBlock(p.ids, span.Join(start, end), stmts)
}

// parseEmbeddedStatement parses the single embedded statement that follows
// an `si`/`aliter`/`dum`/`pro` clause head — either a block or a single
// statement.
func (p *parser) parseEmbeddedStatement() ast.Stmt {
	if p.at(token.LBrace) {
		return p.parseBlock()
	}
	return p.parseStatement()
}

func (p *parser) parseStatement() ast.Stmt {
	switch p.cur().Kind {
	case token.KwMutabilis, token.KwConstans:
		return p.parseVarDecl()
	case token.KwRedde:
		return p.parseReturnStatement()
	case token.KwSi:
		return p.parseIfStatement()
	case token.KwDum:
		return p.parseWhileStatement()
	case token.KwPro:
		return p.parseForStatement()
	case token.KwFrange:
		start := p.advance().Span
		end := p.expect(token.Semicolon).Span
		return ast.NewBreakStmt(p.ids, span.Join(start, end))
	case token.KwPerge:
		start := p.advance().Span
		end := p.expect(token.Semicolon).Span
		return ast.NewContinueStmt(p.ids, span.Join(start, end))
	case token.LBrace:
		return p.parseBlock()
	default:
		start := p.cur().Span
		x := p.parseExpression()
		end := p.expect(token.Semicolon).Span
		return ast.NewExprStmt(p.ids, span.Join(start, end), x)
	}
}

func (p *parser) parseVarDecl() *ast.VarDecl {
	kwTok := p.advance() // mutabilis | constans
	mutable := kwTok.Kind == token.KwMutabilis

	var typ ast.TypeExpr
	var nameTok token.Token
	if p.at(token.IDENT) {
		save := p.pos
		candidate := p.advance()
		if p.at(token.Colon) {
			p.advance()
			typ = p.parseType()
			nameTok = candidate
		} else {
			p.pos = save
			nameTok = p.expect(token.IDENT)
		}
	} else {
		typ = p.parseType()
		nameTok = p.expect(token.IDENT)
	}

	var init ast.Expr
	if p.at(token.Equal) {
		p.advance()
		init = p.parseExpression()
	}
	end := p.expect(token.Semicolon).Span
	return ast.NewVarDecl(p.ids, span.Join(kwTok.Span, end), p.intern(nameTok.Lexeme), mutable, typ, init)
}

func (p *parser) parseReturnStatement() ast.Stmt {
	start := p.advance().Span // "redde"
	var value ast.Expr
	if !p.at(token.Semicolon) {
		value = p.parseExpression()
	}
	end := p.expect(token.Semicolon).Span
	return ast.NewReturnStmt(p.ids, span.Join(start, end), value)
}

// parseIfStatement resolves dangling else by always attaching a following
// `aliter` to the innermost `si` currently being parsed, which falls out
// naturally from recursive descent: the recursive call for the `then`
// branch consumes its own optional `aliter` before control returns here.
func (p *parser) parseIfStatement() ast.Stmt {
	start := p.advance().Span // "si"
	cond := p.parseExpression()
	then := p.parseEmbeddedStatement()
	var els ast.Stmt
	end := then.Span()
	if p.at(token.KwAliter) {
		p.advance()
		els = p.parseEmbeddedStatement()
		end = els.Span()
	}
	return ast.NewIfStmt(p.ids, span.Join(start, end), cond, then, els)
}

func (p *parser) parseWhileStatement() ast.Stmt {
	start := p.advance().Span // "dum"
	cond := p.parseExpression()
	body := p.parseEmbeddedStatement()
	return ast.NewWhileStmt(p.ids, span.Join(start, body.Span()), cond, body)
}

func (p *parser) parseForStatement() ast.Stmt {
	start := p.advance().Span // "pro"
	nameTok := p.expect(token.IDENT)
	p.expect(token.KwIn)
	iter := p.parseExpression()
	body := p.parseEmbeddedStatement()
	return ast.NewForStmt(p.ids, span.Join(start, body.Span()), p.intern(nameTok.Lexeme), iter, body)
}
