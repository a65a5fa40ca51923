package parser

import (
	"strconv"

	"github.com/scriptum-lang/scriptum/lang/ast"
	"github.com/scriptum-lang/scriptum/lang/span"
	"github.com/scriptum-lang/scriptum/lang/token"
)

// parseExpression is the grammar's Expr = Assignment entry point.
func (p *parser) parseExpression() ast.Expr {
	return p.parseAssignment()
}

func (p *parser) parseAssignment() ast.Expr {
	left := p.parseTernary()
	if p.at(token.Equal) {
		p.advance()
		value := p.parseAssignment() // right-associative
		return ast.NewAssignmentExpr(p.ids, span.Join(left.Span(), value.Span()), left, value)
	}
	return left
}

// Ternary binds looser than nullish-coalesce, so `a ?? b ? c : d` parses
// as `(a ?? b) ? c : d`.
func (p *parser) parseTernary() ast.Expr {
	cond := p.parseNullish()
	if p.at(token.Question) {
		p.advance()
		then := p.parseExpression()
		p.expect(token.Colon)
		els := p.parseExpression()
		return ast.NewConditionalExpr(p.ids, span.Join(cond.Span(), els.Span()), cond, then, els)
	}
	return cond
}

func (p *parser) parseNullish() ast.Expr {
	left := p.parseLogicalOr()
	for p.at(token.QuestionQuestion) {
		p.advance()
		right := p.parseLogicalOr()
		left = ast.NewNullishCoalesceExpr(p.ids, span.Join(left.Span(), right.Span()), left, right)
	}
	return left
}

func (p *parser) parseLogicalOr() ast.Expr {
	left := p.parseLogicalAnd()
	for p.at(token.PipePipe) {
		p.advance()
		right := p.parseLogicalAnd()
		left = ast.NewLogicalExpr(p.ids, span.Join(left.Span(), right.Span()), ast.LogicalOr, left, right)
	}
	return left
}

func (p *parser) parseLogicalAnd() ast.Expr {
	left := p.parseEquality()
	for p.at(token.AmpAmp) {
		p.advance()
		right := p.parseEquality()
		left = ast.NewLogicalExpr(p.ids, span.Join(left.Span(), right.Span()), ast.LogicalAnd, left, right)
	}
	return left
}

var equalityOps = map[token.Kind]ast.BinOp{
	token.DoubleEqual:     ast.OpEq,
	token.TripleEqual:     ast.OpStrictEq,
	token.BangEqual:       ast.OpNe,
	token.BangDoubleEqual: ast.OpStrictNe,
}

func (p *parser) parseEquality() ast.Expr {
	left := p.parseComparison()
	for {
		op, ok := equalityOps[p.cur().Kind]
		if !ok {
			return left
		}
		p.advance()
		right := p.parseComparison()
		left = ast.NewBinaryExpr(p.ids, span.Join(left.Span(), right.Span()), op, left, right)
	}
}

var comparisonOps = map[token.Kind]ast.BinOp{
	token.Less:         ast.OpLt,
	token.LessEqual:    ast.OpLe,
	token.Greater:      ast.OpGt,
	token.GreaterEqual: ast.OpGe,
}

func (p *parser) parseComparison() ast.Expr {
	left := p.parseTerm()
	for {
		op, ok := comparisonOps[p.cur().Kind]
		if !ok {
			return left
		}
		p.advance()
		right := p.parseTerm()
		left = ast.NewBinaryExpr(p.ids, span.Join(left.Span(), right.Span()), op, left, right)
	}
}

func (p *parser) parseTerm() ast.Expr {
	left := p.parseFactor()
	for p.at(token.Plus) || p.at(token.Minus) {
		op := ast.OpAdd
		if p.cur().Kind == token.Minus {
			op = ast.OpSub
		}
		p.advance()
		right := p.parseFactor()
		left = ast.NewBinaryExpr(p.ids, span.Join(left.Span(), right.Span()), op, left, right)
	}
	return left
}

var factorOps = map[token.Kind]ast.BinOp{
	token.Star:    ast.OpMul,
	token.Slash:   ast.OpDiv,
	token.Percent: ast.OpMod,
}

func (p *parser) parseFactor() ast.Expr {
	left := p.parsePower()
	for {
		op, ok := factorOps[p.cur().Kind]
		if !ok {
			return left
		}
		p.advance()
		right := p.parsePower()
		left = ast.NewBinaryExpr(p.ids, span.Join(left.Span(), right.Span()), op, left, right)
	}
}

// parsePower is right-associative: `2 ** 3 ** 2` parses as `Power(2,
// Power(3, 2))`.
func (p *parser) parsePower() ast.Expr {
	left := p.parseUnary()
	if p.at(token.StarStar) {
		p.advance()
		right := p.parsePower()
		return ast.NewBinaryExpr(p.ids, span.Join(left.Span(), right.Span()), ast.OpPow, left, right)
	}
	return left
}

func (p *parser) parseUnary() ast.Expr {
	switch p.cur().Kind {
	case token.Minus:
		start := p.advance().Span
		operand := p.parseUnary()
		// unary minus desugars to `0 - x`; no dedicated negation node.
		zero := ast.NewLiteral(p.ids, start, ast.LitNumber)
		zero.Num = 0
		return ast.NewBinaryExpr(p.ids, span.Join(start, operand.Span()), ast.OpSub, zero, operand)
	case token.Plus:
		start := p.advance().Span
		operand := p.parseUnary()
		return ast.NewUnaryExpr(p.ids, span.Join(start, operand.Span()), ast.UnaryPlus, operand)
	case token.Bang:
		start := p.advance().Span
		operand := p.parseUnary()
		return ast.NewUnaryExpr(p.ids, span.Join(start, operand.Span()), ast.UnaryNot, operand)
	default:
		return p.parsePostfix()
	}
}

func (p *parser) parsePostfix() ast.Expr {
	expr := p.parsePrimary()
	for {
		switch p.cur().Kind {
		case token.LParen:
			p.advance()
			var args []ast.Expr
			for !p.at(token.RParen) && !p.at(token.EOF) {
				args = append(args, p.parseExpression())
				if p.at(token.Comma) {
					p.advance()
				} else {
					break
				}
			}
			end := p.expect(token.RParen).Span
			expr = ast.NewCallExpr(p.ids, span.Join(expr.Span(), end), expr, args)
		case token.LBracket:
			p.advance()
			index := p.parseExpression()
			end := p.expect(token.RBracket).Span
			expr = ast.NewIndexExpr(p.ids, span.Join(expr.Span(), end), expr, index)
		case token.Dot:
			p.advance()
			nameTok := p.expect(token.IDENT)
			expr = ast.NewMemberExpr(p.ids, span.Join(expr.Span(), nameTok.Span), expr, p.intern(nameTok.Lexeme))
		default:
			return expr
		}
	}
}

func (p *parser) parsePrimary() ast.Expr {
	t := p.cur()
	switch t.Kind {
	case token.NUMBER:
		p.advance()
		lit := ast.NewLiteral(p.ids, t.Span, ast.LitNumber)
		lit.Num, _ = strconv.ParseFloat(t.Lexeme, 64)
		return lit
	case token.STRING:
		p.advance()
		lit := ast.NewLiteral(p.ids, t.Span, ast.LitText)
		lit.Text = unquoteString(t.Lexeme)
		return lit
	case token.KwVerum:
		p.advance()
		lit := ast.NewLiteral(p.ids, t.Span, ast.LitBool)
		lit.Bool = true
		return lit
	case token.KwFalsum:
		p.advance()
		return ast.NewLiteral(p.ids, t.Span, ast.LitBool)
	case token.KwNullum:
		p.advance()
		return ast.NewLiteral(p.ids, t.Span, ast.LitNull)
	case token.KwIndefinitum:
		p.advance()
		return ast.NewLiteral(p.ids, t.Span, ast.LitUndefined)
	case token.IDENT:
		p.advance()
		return ast.NewIdentifier(p.ids, t.Span, p.intern(t.Lexeme))
	case token.LParen:
		p.advance()
		inner := p.parseExpression()
		p.expect(token.RParen)
		return inner
	case token.LBracket:
		return p.parseArrayLiteral()
	case token.LBrace:
		return p.parseObjectLiteral()
	case token.KwFunctio:
		return p.parseLambda()
	default:
		p.errorf(t.Span, "expected expression, found %s", t.Kind)
		p.advance()
		return ast.NewBadExpr(p.ids, t.Span)
	}
}

func (p *parser) parseArrayLiteral() ast.Expr {
	start := p.advance().Span // "["
	var elements []ast.Expr
	for !p.at(token.RBracket) && !p.at(token.EOF) {
		elements = append(elements, p.parseExpression())
		if p.at(token.Comma) {
			p.advance()
		} else {
			break
		}
	}
	end := p.expect(token.RBracket).Span
	return ast.NewArrayLiteralExpr(p.ids, span.Join(start, end), elements)
}

func (p *parser) parseObjectLiteral() ast.Expr {
	start := p.advance().Span // "{"
	var fields []ast.ObjectField
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		nameTok := p.expect(token.IDENT)
		p.expect(token.Colon)
		value := p.parseExpression()
		fields = append(fields, ast.ObjectField{Name: p.intern(nameTok.Lexeme), Value: value})
		if p.at(token.Comma) {
			p.advance()
		} else {
			break
		}
	}
	end := p.expect(token.RBrace).Span
	return ast.NewObjectLiteralExpr(p.ids, span.Join(start, end), fields)
}

func (p *parser) parseLambda() ast.Expr {
	start := p.advance().Span // "functio"
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
	return ast.NewLambdaExpr(p.ids, span.Join(start, body.Span()), params, ret, body)
}

// unquoteString strips the surrounding quotes and resolves the lexer's
// `\.`-style escapes. The scanner already validated the escape shape.
func unquoteString(lexeme string) string {
	if len(lexeme) < 2 {
		return ""
	}
	inner := lexeme[1 : len(lexeme)-1]
	out := make([]byte, 0, len(inner))
	for i := 0; i < len(inner); i++ {
		if inner[i] == '\\' && i+1 < len(inner) {
			i++
			switch inner[i] {
			case 'n':
				out = append(out, '\n')
			case 't':
				out = append(out, '\t')
			case 'r':
				out = append(out, '\r')
			case '"':
				out = append(out, '"')
			case '\\':
				out = append(out, '\\')
			default:
				out = append(out, inner[i])
			}
			continue
		}
		out = append(out, inner[i])
	}
	return string(out)
}
