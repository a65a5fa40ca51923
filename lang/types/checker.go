package types

import (
	"fmt"

	"github.com/dolthub/swiss"
	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/scriptum-lang/scriptum/lang/ast"
	"github.com/scriptum-lang/scriptum/lang/intern"
	"github.com/scriptum-lang/scriptum/lang/span"
)

// Diagnostic is one type-checking finding, carrying a stable code so
// tooling can key off it without parsing the message.
type Diagnostic struct {
	Code    string
	Message string
	Span    span.Span
}

func (d Diagnostic) Error() string { return fmt.Sprintf("%s: %s", d.Code, d.Message) }

// Output is the result of checking one module.
type Output struct {
	Diagnostics []Diagnostic
}

// Check type-checks module and returns every diagnostic found. It never
// aborts early: a module with errors still produces a full diagnostic list
// in one pass.
func Check(module *ast.Module) Output {
	c := &checker{
		module:    module,
		interner:  module.Interner,
		symbols:   newSymbolTable(),
		functions: swiss.NewMap[intern.Symbol, functionSignature](8),
	}
	c.visitModule()
	return Output{Diagnostics: c.diagnostics}
}

type functionSignature struct {
	params []*Type
	ret    *Type
}

type checker struct {
	module        *ast.Module
	interner      *intern.Interner
	diagnostics   []Diagnostic
	symbols       *symbolTable
	functions     *swiss.Map[intern.Symbol, functionSignature]
	currentReturn *Type // nil outside any function
}

func (c *checker) errorf(code string, sp span.Span, format string, args ...interface{}) {
	c.diagnostics = append(c.diagnostics, Diagnostic{Code: code, Message: fmt.Sprintf(format, args...), Span: sp})
}

func (c *checker) visitModule() {
	for _, item := range c.module.Items {
		if fn, ok := item.(*ast.Function); ok {
			c.functions.Put(fn.Name, c.functionSignature(fn))
		}
	}
	for _, item := range c.module.Items {
		switch it := item.(type) {
		case *ast.Function:
			c.visitFunction(it)
		case *ast.GlobalVar:
			c.declareGlobal(it.Decl, it.Span())
		}
	}
}

func (c *checker) declareGlobal(decl *ast.VarDecl, sp span.Span) {
	if c.symbols.containsInCurrent(decl.Name) {
		c.errorf("S001", sp, "variable '%s' already declared", c.interner.Resolve(decl.Name))
		return
	}
	ty := TQuodlibet
	if decl.Type != nil {
		ty = c.resolveTypeExpr(decl.Type)
	}
	initTy := TVacuum
	if decl.Init != nil {
		initTy = c.visitExpr(decl.Init)
	}
	if decl.Init != nil && decl.Type != nil {
		if !IsAssignable(ty, initTy) {
			c.errorf("T005", decl.Init.Span(), "incompatible type: expected %s, found %s",
				ty.Name(c.interner), initTy.Name(c.interner))
		}
	}
	c.symbols.insert(decl.Name, symbolInfo{ty: ty, mutable: decl.Mutable, span: sp})
}

func (c *checker) visitFunction(fn *ast.Function) {
	c.symbols.enterScope()
	sig, ok := c.functions.Get(fn.Name)
	if !ok {
		params := make([]*Type, len(fn.Params))
		for i := range params {
			params[i] = TQuodlibet
		}
		sig = functionSignature{params: params, ret: TQuodlibet}
	}
	for i, param := range fn.Params {
		ty := TQuodlibet
		if i < len(sig.params) {
			ty = sig.params[i]
		}
		c.symbols.insert(param.Name, symbolInfo{ty: ty, mutable: true, span: param.Span})
	}
	prevReturn := c.currentReturn
	c.currentReturn = sig.ret
	c.visitBlock(fn.Body)
	c.currentReturn = prevReturn
	c.symbols.exitScope()
}

func (c *checker) functionSignature(fn *ast.Function) functionSignature {
	params := make([]*Type, len(fn.Params))
	for i, p := range fn.Params {
		if p.Type != nil {
			params[i] = c.resolveTypeExpr(p.Type)
		} else {
			params[i] = TQuodlibet
		}
	}
	ret := TVacuum
	if fn.ReturnType != nil {
		ret = c.resolveTypeExpr(fn.ReturnType)
	}
	return functionSignature{params: params, ret: ret}
}

func (c *checker) visitBlock(b *ast.Block) {
	c.symbols.enterScope()
	for _, stmt := range b.Statements {
		c.visitStatement(stmt)
	}
	c.symbols.exitScope()
}

func (c *checker) visitStatement(stmt ast.Stmt) {
	switch s := stmt.(type) {
	case *ast.VarDecl:
		c.visitLocalVarDecl(s)
	case *ast.ExprStmt:
		c.visitExpr(s.X)
	case *ast.ReturnStmt:
		c.visitReturn(s)
	case *ast.Block:
		c.visitBlock(s)
	case *ast.IfStmt:
		c.visitIf(s)
	case *ast.WhileStmt:
		c.visitWhile(s)
	case *ast.ForStmt:
		c.visitFor(s)
	case *ast.BreakStmt, *ast.ContinueStmt, *ast.BadStmt:
		// no type information to check
	}
}

func (c *checker) visitLocalVarDecl(decl *ast.VarDecl) {
	if c.symbols.containsInCurrent(decl.Name) {
		c.errorf("S001", decl.Span(), "variable '%s' already declared in this scope", c.interner.Resolve(decl.Name))
		return
	}
	ty := TQuodlibet
	if decl.Type != nil {
		ty = c.resolveTypeExpr(decl.Type)
	}
	initTy := TVacuum
	if decl.Init != nil {
		initTy = c.visitExpr(decl.Init)
	}
	if decl.Type != nil {
		if !IsAssignable(ty, initTy) {
			c.errorf("T005", decl.Type.Span(), "incompatible type: expected %s, found %s",
				ty.Name(c.interner), initTy.Name(c.interner))
		}
	}
	declared := ty
	if decl.Type == nil {
		declared = initTy
	}
	c.symbols.insert(decl.Name, symbolInfo{ty: declared, mutable: decl.Mutable, span: decl.Span()})
}

func (c *checker) visitReturn(stmt *ast.ReturnStmt) {
	var found *Type
	if stmt.Value != nil {
		found = c.visitExpr(stmt.Value)
	}
	expected := c.currentReturn
	if expected == nil {
		return
	}
	switch {
	case expected.Kind == Vacuum && found == nil:
	case expected.Kind == Vacuum && found != nil && found.Kind == Vacuum:
	case found != nil:
		if !IsAssignable(expected, found) {
			sp := stmt.Span()
			if stmt.Value != nil {
				sp = stmt.Value.Span()
			}
			c.errorf("T010", sp, "incompatible return: expected %s, found %s",
				expected.Name(c.interner), found.Name(c.interner))
		}
	default:
		if expected.Kind != Vacuum {
			c.errorf("T010", stmt.Span(), "incompatible return: expected %s, found empty", expected.Name(c.interner))
		}
	}
}

func (c *checker) visitIf(stmt *ast.IfStmt) {
	condTy := c.visitExpr(stmt.Cond)
	if condTy.Kind != Booleanum && condTy.Kind != Quodlibet {
		c.errorf("T020", stmt.Cond.Span(), "condition must be booleanum, found %s", condTy.Name(c.interner))
	}
	c.visitStatement(stmt.Then)
	if stmt.Else != nil {
		c.visitStatement(stmt.Else)
	}
}

func (c *checker) visitWhile(stmt *ast.WhileStmt) {
	condTy := c.visitExpr(stmt.Cond)
	if condTy.Kind != Booleanum && condTy.Kind != Quodlibet {
		c.errorf("T021", stmt.Cond.Span(), "condition must be booleanum, found %s", condTy.Name(c.interner))
	}
	c.visitStatement(stmt.Body)
}

func (c *checker) visitFor(stmt *ast.ForStmt) {
	iterTy := c.visitExpr(stmt.Iter)
	var elementTy *Type
	switch {
	case iterTy.Kind == Array:
		elementTy = iterTy.Elem
	case iterTy.Kind == Quodlibet:
		elementTy = TQuodlibet
	default:
		c.errorf("T030", stmt.Iter.Span(), "type '%s' is not iterable", iterTy.Name(c.interner))
		elementTy = TQuodlibet
	}
	c.symbols.enterScope()
	c.symbols.insert(stmt.Binding, symbolInfo{ty: elementTy, mutable: true, span: stmt.Body.Span()})
	c.visitStatement(stmt.Body)
	c.symbols.exitScope()
}

func (c *checker) visitExpr(expr ast.Expr) *Type {
	switch e := expr.(type) {
	case *ast.Identifier:
		return c.visitIdentifier(e)
	case *ast.Literal:
		return c.visitLiteral(e)
	case *ast.UnaryExpr:
		return c.visitUnary(e)
	case *ast.BinaryExpr:
		left := c.visitExpr(e.Left)
		right := c.visitExpr(e.Right)
		return c.typeBinary(e, left, right)
	case *ast.LogicalExpr:
		return c.visitLogical(e)
	case *ast.NullishCoalesceExpr:
		return c.visitNullish(e)
	case *ast.ConditionalExpr:
		return c.visitConditional(e)
	case *ast.AssignmentExpr:
		return c.visitAssignment(e)
	case *ast.CallExpr:
		return c.visitCall(e)
	case *ast.IndexExpr:
		return c.visitIndex(e)
	case *ast.MemberExpr:
		return c.visitMember(e)
	case *ast.ArrayLiteralExpr:
		return c.visitArrayLiteral(e)
	case *ast.ObjectLiteralExpr:
		return c.visitObjectLiteral(e)
	case *ast.LambdaExpr:
		return c.visitLambda(e)
	case *ast.BadExpr:
		return TQuodlibet
	default:
		return TQuodlibet
	}
}

func (c *checker) visitIdentifier(e *ast.Identifier) *Type {
	if info, ok := c.symbols.get(e.Name); ok {
		return info.ty
	}
	if sig, ok := c.functions.Get(e.Name); ok {
		return NewFunction(sig.params, sig.ret)
	}
	c.errorf("S100", e.Span(), "identifier '%s' not declared", c.interner.Resolve(e.Name))
	return TQuodlibet
}

func (c *checker) visitLiteral(e *ast.Literal) *Type {
	switch e.Kind {
	case ast.LitNumber:
		return TNumerus
	case ast.LitText:
		return TTextus
	case ast.LitBool:
		return TBooleanum
	case ast.LitNull:
		return TNullum
	default:
		return TIndefinitum
	}
}

func (c *checker) visitUnary(e *ast.UnaryExpr) *Type {
	ty := c.visitExpr(e.Operand)
	switch e.Op {
	case ast.UnaryPlus:
		if ty.Kind != Numerus && ty.Kind != Quodlibet {
			c.errorf("T101", e.Operand.Span(), "unary operator requires numerus, found %s", ty.Name(c.interner))
		}
		return TNumerus
	default: // UnaryNot
		return TBooleanum
	}
}

func (c *checker) visitLogical(e *ast.LogicalExpr) *Type {
	leftTy := c.visitExpr(e.Left)
	rightTy := c.visitExpr(e.Right)
	if leftTy.Kind != Booleanum {
		c.errorf("T110", e.Left.Span(), "logical operator requires booleanum, found %s", leftTy.Name(c.interner))
	}
	if rightTy.Kind != Booleanum {
		c.errorf("T110", e.Right.Span(), "logical operator requires booleanum, found %s", rightTy.Name(c.interner))
	}
	return TBooleanum
}

func (c *checker) visitNullish(e *ast.NullishCoalesceExpr) *Type {
	leftTy := c.visitExpr(e.Left)
	rightTy := c.visitExpr(e.Right)
	switch {
	case leftTy.Kind == Nullum || leftTy.Kind == Indefinitum:
		return rightTy
	case leftTy.Kind == Optional:
		return leftTy.Elem
	default:
		return leftTy
	}
}

func (c *checker) visitConditional(e *ast.ConditionalExpr) *Type {
	condTy := c.visitExpr(e.Cond)
	if condTy.Kind != Booleanum && condTy.Kind != Quodlibet {
		c.errorf("T111", e.Cond.Span(), "ternary condition must be booleanum, found %s", condTy.Name(c.interner))
	}
	thenTy := c.visitExpr(e.Then)
	elseTy := c.visitExpr(e.Else)
	switch {
	case IsAssignable(thenTy, elseTy):
		return thenTy
	case IsAssignable(elseTy, thenTy):
		return elseTy
	default:
		return TQuodlibet
	}
}

func (c *checker) visitAssignment(e *ast.AssignmentExpr) *Type {
	if ident, ok := e.Target.(*ast.Identifier); ok {
		if info, ok := c.symbols.get(ident.Name); ok && !info.mutable {
			c.errorf("S200", e.Target.Span(), "variable '%s' is immutable", c.interner.Resolve(ident.Name))
		}
	}
	targetTy := c.visitExpr(e.Target)
	valueTy := c.visitExpr(e.Value)
	if !IsAssignable(targetTy, valueTy) {
		c.errorf("T200", e.Value.Span(), "invalid assignment: %s not compatible with %s",
			valueTy.Name(c.interner), targetTy.Name(c.interner))
	}
	return targetTy
}

func (c *checker) visitCall(e *ast.CallExpr) *Type {
	calleeTy := c.visitExpr(e.Callee)
	if calleeTy.Kind != Function {
		c.errorf("T302", e.Callee.Span(), "attempt to call something that is not functio")
		for _, arg := range e.Args {
			c.visitExpr(arg)
		}
		return TQuodlibet
	}
	if len(calleeTy.Params) != len(e.Args) {
		c.errorf("T300", e.Span(), "wrong number of arguments: expected %d, found %d", len(calleeTy.Params), len(e.Args))
	}
	for i, arg := range e.Args {
		argTy := c.visitExpr(arg)
		if i >= len(calleeTy.Params) {
			continue
		}
		expected := calleeTy.Params[i]
		if !IsAssignable(expected, argTy) {
			c.errorf("T301", arg.Span(), "incompatible argument: expected %s, found %s",
				expected.Name(c.interner), argTy.Name(c.interner))
		}
	}
	return calleeTy.Ret
}

func (c *checker) visitIndex(e *ast.IndexExpr) *Type {
	targetTy := c.visitExpr(e.Target)
	indexTy := c.visitExpr(e.Index)
	if indexTy.Kind != Numerus && indexTy.Kind != Quodlibet {
		c.errorf("T400", e.Index.Span(), "index must be numerus, found %s", indexTy.Name(c.interner))
	}
	switch {
	case targetTy.Kind == Array:
		return targetTy.Elem
	case targetTy.Kind == Quodlibet:
		return TQuodlibet
	default:
		c.errorf("T401", e.Target.Span(), "type '%s' does not support indexing", targetTy.Name(c.interner))
		return TQuodlibet
	}
}

func (c *checker) visitMember(e *ast.MemberExpr) *Type {
	targetTy := c.visitExpr(e.Target)
	switch {
	case targetTy.Kind == Object:
		if ty, ok := targetTy.Fields.Get(e.Name); ok {
			return ty
		}
		return TQuodlibet
	case targetTy.Kind == Quodlibet:
		return TQuodlibet
	default:
		c.errorf("T410", e.Target.Span(), "type '%s' has no members", targetTy.Name(c.interner))
		return TQuodlibet
	}
}

func (c *checker) visitArrayLiteral(e *ast.ArrayLiteralExpr) *Type {
	elementTy := TQuodlibet
	for _, v := range e.Elements {
		ty := c.visitExpr(v)
		switch {
		case elementTy.Kind == Quodlibet:
			elementTy = ty
		case !IsAssignable(elementTy, ty):
			elementTy = TQuodlibet
		}
	}
	return NewArray(elementTy)
}

func (c *checker) visitObjectLiteral(e *ast.ObjectLiteralExpr) *Type {
	fields := orderedmap.New[intern.Symbol, *Type]()
	for _, field := range e.Fields {
		ty := c.visitExpr(field.Value)
		fields.Set(field.Name, ty)
	}
	return NewObject(fields)
}

func (c *checker) visitLambda(e *ast.LambdaExpr) *Type {
	params := make([]*Type, len(e.Params))
	for i, p := range e.Params {
		if p.Type != nil {
			params[i] = c.resolveTypeExpr(p.Type)
		} else {
			params[i] = TQuodlibet
		}
	}
	ret := TVacuum
	if e.ReturnType != nil {
		ret = c.resolveTypeExpr(e.ReturnType)
	}
	return NewFunction(params, ret)
}

func (c *checker) typeBinary(e *ast.BinaryExpr, leftTy, rightTy *Type) *Type {
	switch e.Op {
	case ast.OpAdd, ast.OpSub, ast.OpMul, ast.OpDiv, ast.OpMod, ast.OpPow:
		c.ensureNumeric(e.Left, leftTy)
		c.ensureNumeric(e.Right, rightTy)
		return TNumerus
	case ast.OpEq, ast.OpNe, ast.OpStrictEq, ast.OpStrictNe, ast.OpGt, ast.OpGe, ast.OpLt, ast.OpLe:
		if !IsAssignable(leftTy, rightTy) && !IsAssignable(rightTy, leftTy) {
			c.errorf("T120", e.Left.Span(), "comparison between %s and %s may be invalid",
				leftTy.Name(c.interner), rightTy.Name(c.interner))
		}
		return TBooleanum
	default: // bitwise, shift, range
		c.ensureNumeric(e.Left, leftTy)
		c.ensureNumeric(e.Right, rightTy)
		return TNumerus
	}
}

func (c *checker) ensureNumeric(expr ast.Expr, ty *Type) {
	if ty.Kind != Numerus && ty.Kind != Quodlibet {
		c.errorf("T100", expr.Span(), "operator requires numerus, found %s", ty.Name(c.interner))
	}
}

// resolveTypeExpr lowers a parsed TypeExpr into a checked Type. An unknown
// simple-name annotation (one that isn't a declared primitive) resolves to
// Quodlibet, since Scriptum has no user-declared nominal types.
func (c *checker) resolveTypeExpr(t ast.TypeExpr) *Type {
	switch te := t.(type) {
	case *ast.SimpleTypeExpr:
		switch c.interner.Resolve(te.Name) {
		case "numerus":
			return TNumerus
		case "textus":
			return TTextus
		case "booleanum":
			return TBooleanum
		case "vacuum":
			return TVacuum
		case "nullum":
			return TNullum
		case "indefinitum":
			return TIndefinitum
		case "quodlibet":
			return TQuodlibet
		default:
			return TQuodlibet
		}
	case *ast.ArrayTypeExpr:
		return NewArray(c.resolveTypeExpr(te.Elem))
	case *ast.ObjectTypeExpr:
		fields := orderedmap.New[intern.Symbol, *Type]()
		for _, f := range te.Fields {
			fields.Set(f.Name, c.resolveTypeExpr(f.Type))
		}
		return NewObject(fields)
	case *ast.FunctionTypeExpr:
		params := make([]*Type, len(te.Params))
		for i, p := range te.Params {
			params[i] = c.resolveTypeExpr(p)
		}
		ret := TVacuum
		if te.Return != nil {
			ret = c.resolveTypeExpr(te.Return)
		}
		return NewFunction(params, ret)
	case *ast.OptionalTypeExpr:
		return NewOptional(c.resolveTypeExpr(te.Elem))
	case *ast.TupleTypeExpr:
		fields := orderedmap.New[intern.Symbol, *Type]()
		for i, el := range te.Elements {
			fields.Set(c.interner.Intern(tupleFieldName(i)), c.resolveTypeExpr(el))
		}
		return NewObject(fields)
	default:
		return TQuodlibet
	}
}
