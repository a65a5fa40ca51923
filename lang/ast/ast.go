// Package ast defines the Scriptum abstract syntax tree: modules,
// functions, statements, expressions, and type expressions, each carrying
// a Span and a unique NodeId, following the teacher's Node/Span/Walk
// structural pattern.
package ast

import (
	"github.com/scriptum-lang/scriptum/lang/intern"
	"github.com/scriptum-lang/scriptum/lang/span"
)

// NodeId uniquely identifies an AST node within one module.
type NodeId uint32

// IdGen hands out sequential, unique NodeIds for one module.
type IdGen struct{ next NodeId }

// Next returns the next unused NodeId.
func (g *IdGen) Next() NodeId {
	id := g.next
	g.next++
	return id
}

// Node is implemented by every AST node: expressions, statements, the
// module, and their structural children.
type Node interface {
	ID() NodeId
	Span() span.Span
}

// Expr is implemented by every expression node.
type Expr interface {
	Node
	exprNode()
}

// Stmt is implemented by every statement node.
type Stmt interface {
	Node
	stmtNode()
}

// TypeExpr is implemented by every type-expression node.
type TypeExpr interface {
	Node
	typeExprNode()
}

// base is embedded by every concrete node to provide ID()/Span().
type base struct {
	id  NodeId
	sp  span.Span
}

func (b base) ID() NodeId     { return b.id }
func (b base) Span() span.Span { return b.sp }

// Module is the root of one compilation unit.
type Module struct {
	base
	Interner *intern.Interner
	Items    []Item
}

// Item is a top-level declaration: a Function or a GlobalVar.
type Item interface {
	Node
	itemNode()
}

// Function is a top-level function declaration.
type Function struct {
	base
	Name          intern.Symbol
	GenericParams []intern.Symbol
	Params        []Param
	ReturnType    TypeExpr // nil if absent
	Body          *Block
}

func (*Function) itemNode() {}

// Param is one function parameter.
type Param struct {
	Name intern.Symbol
	Type TypeExpr // nil if the parameter has no declared type
	Span span.Span
}

// GlobalVar is a top-level Let/Const declaration.
type GlobalVar struct {
	base
	Decl *VarDecl
}

func (*GlobalVar) itemNode() {}

// Block is a brace-delimited statement sequence.
type Block struct {
	base
	Statements []Stmt
}

func (b *Block) stmtNode() {}
