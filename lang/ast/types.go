package ast

import (
	"github.com/scriptum-lang/scriptum/lang/intern"
	"github.com/scriptum-lang/scriptum/lang/span"
)

// SimpleTypeExpr is a bare name reference to a primitive or a declared
// type name (e.g. `numerus`, `textus`, a `structura` name).
type SimpleTypeExpr struct {
	base
	Name intern.Symbol
}

func (*SimpleTypeExpr) typeExprNode() {}

func NewSimpleTypeExpr(g *IdGen, sp span.Span, name intern.Symbol) *SimpleTypeExpr {
	return &SimpleTypeExpr{base: base{id: g.Next(), sp: sp}, Name: name}
}

// ArrayTypeExpr is `Elem[]`.
type ArrayTypeExpr struct {
	base
	Elem TypeExpr
}

func (*ArrayTypeExpr) typeExprNode() {}

func NewArrayTypeExpr(g *IdGen, sp span.Span, elem TypeExpr) *ArrayTypeExpr {
	return &ArrayTypeExpr{base: base{id: g.Next(), sp: sp}, Elem: elem}
}

// ObjectTypeField is one named field of an object type expression.
type ObjectTypeField struct {
	Name intern.Symbol
	Type TypeExpr
}

// ObjectTypeExpr is `structura{field: Type, ...}` (or bare `{...}`).
type ObjectTypeExpr struct {
	base
	Fields []ObjectTypeField
}

func (*ObjectTypeExpr) typeExprNode() {}

func NewObjectTypeExpr(g *IdGen, sp span.Span, fields []ObjectTypeField) *ObjectTypeExpr {
	return &ObjectTypeExpr{base: base{id: g.Next(), sp: sp}, Fields: fields}
}

// FunctionTypeExpr is a function type: generics, parameter types, return
// type.
type FunctionTypeExpr struct {
	base
	GenericParams []intern.Symbol
	Params        []TypeExpr
	Return        TypeExpr
}

func (*FunctionTypeExpr) typeExprNode() {}

func NewFunctionTypeExpr(g *IdGen, sp span.Span, generics []intern.Symbol, params []TypeExpr, ret TypeExpr) *FunctionTypeExpr {
	return &FunctionTypeExpr{base: base{id: g.Next(), sp: sp}, GenericParams: generics, Params: params, Return: ret}
}

// OptionalTypeExpr is `Type?`.
type OptionalTypeExpr struct {
	base
	Elem TypeExpr
}

func (*OptionalTypeExpr) typeExprNode() {}

func NewOptionalTypeExpr(g *IdGen, sp span.Span, elem TypeExpr) *OptionalTypeExpr {
	return &OptionalTypeExpr{base: base{id: g.Next(), sp: sp}, Elem: elem}
}

// TupleTypeExpr is a fixed-arity positional tuple, modeled (like the
// checker) as sugar over an Object type with indexed field names "0","1"…
type TupleTypeExpr struct {
	base
	Elements []TypeExpr
}

func (*TupleTypeExpr) typeExprNode() {}

func NewTupleTypeExpr(g *IdGen, sp span.Span, elements []TypeExpr) *TupleTypeExpr {
	return &TupleTypeExpr{base: base{id: g.Next(), sp: sp}, Elements: elements}
}
