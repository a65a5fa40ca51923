package ast

import (
	"github.com/scriptum-lang/scriptum/lang/intern"
	"github.com/scriptum-lang/scriptum/lang/span"
)

// VarDecl is a `mutabilis`/`constans` declaration, used both as a
// statement and (wrapped in GlobalVar) as a top-level item.
type VarDecl struct {
	base
	Name    intern.Symbol
	Mutable bool
	Type    TypeExpr // nil if omitted
	Init    Expr     // nil if omitted
}

func (*VarDecl) stmtNode() {}

func NewVarDecl(g *IdGen, sp span.Span, name intern.Symbol, mutable bool, typ TypeExpr, init Expr) *VarDecl {
	return &VarDecl{base: base{id: g.Next(), sp: sp}, Name: name, Mutable: mutable, Type: typ, Init: init}
}

// ExprStmt wraps an expression used as a statement.
type ExprStmt struct {
	base
	X Expr
}

func (*ExprStmt) stmtNode() {}

func NewExprStmt(g *IdGen, sp span.Span, x Expr) *ExprStmt {
	return &ExprStmt{base: base{id: g.Next(), sp: sp}, X: x}
}

// ReturnStmt is `redde expr? ;`.
type ReturnStmt struct {
	base
	Value Expr // nil for a bare `redde;`
}

func (*ReturnStmt) stmtNode() {}

func NewReturnStmt(g *IdGen, sp span.Span, value Expr) *ReturnStmt {
	return &ReturnStmt{base: base{id: g.Next(), sp: sp}, Value: value}
}

// IfStmt is `si cond then (aliter else)?`.
type IfStmt struct {
	base
	Cond Expr
	Then Stmt
	Else Stmt // nil if absent
}

func (*IfStmt) stmtNode() {}

func NewIfStmt(g *IdGen, sp span.Span, cond Expr, then, els Stmt) *IfStmt {
	return &IfStmt{base: base{id: g.Next(), sp: sp}, Cond: cond, Then: then, Else: els}
}

// WhileStmt is `dum cond body`.
type WhileStmt struct {
	base
	Cond Expr
	Body Stmt
}

func (*WhileStmt) stmtNode() {}

func NewWhileStmt(g *IdGen, sp span.Span, cond Expr, body Stmt) *WhileStmt {
	return &WhileStmt{base: base{id: g.Next(), sp: sp}, Cond: cond, Body: body}
}

// ForStmt is `pro binding in iter body`.
type ForStmt struct {
	base
	Binding intern.Symbol
	Iter    Expr
	Body    Stmt
}

func (*ForStmt) stmtNode() {}

func NewForStmt(g *IdGen, sp span.Span, binding intern.Symbol, iter Expr, body Stmt) *ForStmt {
	return &ForStmt{base: base{id: g.Next(), sp: sp}, Binding: binding, Iter: iter, Body: body}
}

// BreakStmt is `frange;`.
type BreakStmt struct{ base }

func (*BreakStmt) stmtNode() {}

func NewBreakStmt(g *IdGen, sp span.Span) *BreakStmt {
	return &BreakStmt{base: base{id: g.Next(), sp: sp}}
}

// ContinueStmt is `perge;`.
type ContinueStmt struct{ base }

func (*ContinueStmt) stmtNode() {}

func NewContinueStmt(g *IdGen, sp span.Span) *ContinueStmt {
	return &ContinueStmt{base: base{id: g.Next(), sp: sp}}
}

// BadStmt is a placeholder produced during panic-mode recovery.
type BadStmt struct{ base }

func (*BadStmt) stmtNode() {}

func NewBadStmt(g *IdGen, sp span.Span) *BadStmt {
	return &BadStmt{base: base{id: g.Next(), sp: sp}}
}
