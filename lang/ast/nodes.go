package ast

import (
	"github.com/scriptum-lang/scriptum/lang/intern"
	"github.com/scriptum-lang/scriptum/lang/span"
)

// NewModule constructs the module root.
func NewModule(g *IdGen, sp span.Span, interner *intern.Interner, items []Item) *Module {
	return &Module{base: base{id: g.Next(), sp: sp}, Interner: interner, Items: items}
}

// NewFunction constructs a top-level function item.
func NewFunction(g *IdGen, sp span.Span, name intern.Symbol, generics []intern.Symbol, params []Param, ret TypeExpr, body *Block) *Function {
	return &Function{
		base:          base{id: g.Next(), sp: sp},
		Name:          name,
		GenericParams: generics,
		Params:        params,
		ReturnType:    ret,
		Body:          body,
	}
}

// NewGlobalVar wraps a VarDecl as a top-level item.
func NewGlobalVar(g *IdGen, sp span.Span, decl *VarDecl) *GlobalVar {
	return &GlobalVar{base: base{id: g.Next(), sp: sp}, Decl: decl}
}

// NewBlock constructs a statement block.
func NewBlock(g *IdGen, sp span.Span, statements []Stmt) *Block {
	return &Block{base: base{id: g.Next(), sp: sp}, Statements: statements}
}
