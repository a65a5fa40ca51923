package ir

import (
	"fmt"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/scriptum-lang/scriptum/lang/ast"
	"github.com/scriptum-lang/scriptum/lang/intern"
	"github.com/scriptum-lang/scriptum/lang/span"
)

// LowerError reports an AST construct the lowerer could not express in the
// numeric stack-VM core (the Non-goals exclude heap objects, GC, and
// closures, so textus/array/object/member/index/lambda values have no
// runtime representation here even though the parser and checker accept
// them). A function that hits one of these still lowers to a best-effort
// instruction stream so the rest of the module can be inspected.
type LowerError struct {
	Message string
	Span    span.Span
}

func (e LowerError) Error() string { return e.Message }

// Lower converts a checked AST module into its IR form.
func Lower(module *ast.Module) (*Module, []LowerError) {
	var errs []LowerError
	var functions []Function
	for _, item := range module.Items {
		if fn, ok := item.(*ast.Function); ok {
			f, ferrs := lowerFunction(fn)
			functions = append(functions, f)
			errs = append(errs, ferrs...)
		}
	}
	return &Module{Functions: functions}, errs
}

type loweringContext struct {
	instructions []Instruction
	locals       *orderedmap.OrderedMap[intern.Symbol, uint16]
	nextLocal    uint16
	errs         []LowerError
}

func newLoweringContext() *loweringContext {
	return &loweringContext{locals: orderedmap.New[intern.Symbol, uint16]()}
}

func (c *loweringContext) emit(instr Instruction) int {
	idx := len(c.instructions)
	c.instructions = append(c.instructions, instr)
	return idx
}

func (c *loweringContext) patch(pos int, target int) {
	c.instructions[pos].Target = target
}

func (c *loweringContext) allocLocal(sym intern.Symbol) uint16 {
	if idx, ok := c.locals.Get(sym); ok {
		return idx
	}
	idx := c.nextLocal
	c.locals.Set(sym, idx)
	c.nextLocal++
	return idx
}

func (c *loweringContext) local(sym intern.Symbol) (uint16, bool) {
	return c.locals.Get(sym)
}

func (c *loweringContext) fail(sp span.Span, format string, args ...interface{}) {
	c.errs = append(c.errs, LowerError{Message: fmt.Sprintf(format, args...), Span: sp})
	c.emit(Instruction{Op: OpConst, Const: 0})
}

func lowerFunction(fn *ast.Function) (Function, []LowerError) {
	ctx := newLoweringContext()
	for i, param := range fn.Params {
		ctx.locals.Set(param.Name, uint16(i))
		ctx.nextLocal = uint16(i + 1)
	}
	lowerBlock(fn.Body, ctx)
	if len(ctx.instructions) == 0 || ctx.instructions[len(ctx.instructions)-1].Op != OpReturn {
		ctx.emit(Instruction{Op: OpConst, Const: 0})
		ctx.emit(Instruction{Op: OpReturn})
	}
	return Function{Name: fn.Name, Arity: uint8(len(fn.Params)), Instructions: ctx.instructions}, ctx.errs
}

func lowerBlock(b *ast.Block, ctx *loweringContext) {
	for _, stmt := range b.Statements {
		lowerStatement(stmt, ctx)
	}
}

func lowerStatement(stmt ast.Stmt, ctx *loweringContext) {
	switch s := stmt.(type) {
	case *ast.VarDecl:
		if s.Init != nil {
			lowerExpr(s.Init, ctx)
		} else {
			ctx.emit(Instruction{Op: OpConst, Const: 0})
		}
		local := ctx.allocLocal(s.Name)
		ctx.emit(Instruction{Op: OpStoreLocal, Local: local})
	case *ast.ExprStmt:
		if assign, ok := s.X.(*ast.AssignmentExpr); ok {
			lowerAssignStatement(assign, ctx)
			return
		}
		lowerExpr(s.X, ctx)
		// result is implicitly dropped; there is no Pop opcode
	case *ast.IfStmt:
		lowerIf(s, ctx)
	case *ast.WhileStmt:
		lowerWhile(s, ctx)
	case *ast.ReturnStmt:
		if s.Value != nil {
			lowerExpr(s.Value, ctx)
		} else {
			ctx.emit(Instruction{Op: OpConst, Const: 0})
		}
		ctx.emit(Instruction{Op: OpReturn})
	case *ast.Block:
		lowerBlock(s, ctx)
	case *ast.ForStmt, *ast.BreakStmt, *ast.ContinueStmt, *ast.BadStmt:
		ctx.fail(stmt.Span(), "statement kind not supported by the numeric bytecode core")
	}
}

// lowerAssignStatement special-cases `ident = expr;` used as a statement so
// it doesn't need to leave a value on the stack the way the general
// expression lowering does.
func lowerAssignStatement(assign *ast.AssignmentExpr, ctx *loweringContext) {
	ident, ok := assign.Target.(*ast.Identifier)
	if !ok {
		ctx.fail(assign.Span(), "assignment target must be a local variable")
		return
	}
	lowerExpr(assign.Value, ctx)
	local, ok := ctx.local(ident.Name)
	if !ok {
		local = ctx.allocLocal(ident.Name)
	}
	ctx.emit(Instruction{Op: OpStoreLocal, Local: local})
}

func lowerIf(s *ast.IfStmt, ctx *loweringContext) {
	lowerExpr(s.Cond, ctx)
	jumpFalse := ctx.emit(Instruction{Op: OpJumpFalse, Target: -1})
	lowerStatement(s.Then, ctx)
	if s.Else != nil {
		jumpEnd := ctx.emit(Instruction{Op: OpJump, Target: -1})
		elseStart := len(ctx.instructions)
		ctx.patch(jumpFalse, elseStart)
		lowerStatement(s.Else, ctx)
		ctx.patch(jumpEnd, len(ctx.instructions))
	} else {
		ctx.patch(jumpFalse, len(ctx.instructions))
	}
}

func lowerWhile(s *ast.WhileStmt, ctx *loweringContext) {
	loopStart := len(ctx.instructions)
	lowerExpr(s.Cond, ctx)
	jumpExit := ctx.emit(Instruction{Op: OpJumpFalse, Target: -1})
	lowerStatement(s.Body, ctx)
	ctx.emit(Instruction{Op: OpJump, Target: loopStart})
	ctx.patch(jumpExit, len(ctx.instructions))
}

var binOpTable = map[ast.BinOp]Op{
	ast.OpAdd:      OpAdd,
	ast.OpSub:      OpSub,
	ast.OpMul:      OpMul,
	ast.OpDiv:      OpDiv,
	ast.OpEq:       OpCmpEq,
	ast.OpStrictEq: OpCmpEq,
	ast.OpNe:       OpCmpNe,
	ast.OpStrictNe: OpCmpNe,
	ast.OpLt:       OpCmpLt,
	ast.OpLe:       OpCmpLe,
	ast.OpGt:       OpCmpGt,
	ast.OpGe:       OpCmpGe,
}

func lowerExpr(expr ast.Expr, ctx *loweringContext) {
	switch e := expr.(type) {
	case *ast.Literal:
		lowerLiteral(e, ctx)
	case *ast.Identifier:
		local, ok := ctx.local(e.Name)
		if !ok {
			ctx.fail(e.Span(), "identifier '%d' has no runtime local slot (likely a free function reference)", e.Name)
			return
		}
		ctx.emit(Instruction{Op: OpLoadLocal, Local: local})
	case *ast.UnaryExpr:
		lowerUnary(e, ctx)
	case *ast.BinaryExpr:
		op, ok := binOpTable[e.Op]
		if !ok {
			ctx.fail(e.Span(), "binary operator not supported by the numeric bytecode core")
			return
		}
		lowerExpr(e.Left, ctx)
		lowerExpr(e.Right, ctx)
		ctx.emit(Instruction{Op: op})
	case *ast.LogicalExpr:
		lowerLogical(e, ctx)
	case *ast.ConditionalExpr:
		lowerConditional(e, ctx)
	case *ast.AssignmentExpr:
		lowerAssignExpr(e, ctx)
	case *ast.CallExpr:
		lowerCall(e, ctx)
	default:
		ctx.fail(expr.Span(), "expression kind has no runtime representation in the numeric bytecode core")
	}
}

func lowerLiteral(e *ast.Literal, ctx *loweringContext) {
	switch e.Kind {
	case ast.LitNumber:
		ctx.emit(Instruction{Op: OpConst, Const: e.Num})
	case ast.LitBool:
		v := 0.0
		if e.Bool {
			v = 1.0
		}
		ctx.emit(Instruction{Op: OpConst, Const: v})
	default:
		ctx.fail(e.Span(), "literal kind has no runtime representation in the numeric bytecode core")
	}
}

func lowerUnary(e *ast.UnaryExpr, ctx *loweringContext) {
	lowerExpr(e.Operand, ctx)
	if e.Op == ast.UnaryNot {
		ctx.emit(Instruction{Op: OpConst, Const: 0})
		ctx.emit(Instruction{Op: OpCmpEq})
	}
	// UnaryPlus is numeric identity: the operand's value is already on the
	// stack, nothing further to emit.
}

// lowerLogical implements short-circuit evaluation with forward jumps: `&&`
// jumps past the right operand (to a false result) when the left operand is
// falsy, `||` jumps past the right operand (to a true result) when the left
// operand is truthy.
func lowerLogical(e *ast.LogicalExpr, ctx *loweringContext) {
	lowerExpr(e.Left, ctx)
	switch e.Op {
	case ast.LogicalAnd:
		jumpFalse := ctx.emit(Instruction{Op: OpJumpFalse, Target: -1})
		lowerExpr(e.Right, ctx)
		jumpEnd := ctx.emit(Instruction{Op: OpJump, Target: -1})
		ctx.patch(jumpFalse, len(ctx.instructions))
		ctx.emit(Instruction{Op: OpConst, Const: 0})
		ctx.patch(jumpEnd, len(ctx.instructions))
	default: // LogicalOr
		jumpFalse := ctx.emit(Instruction{Op: OpJumpFalse, Target: -1})
		ctx.emit(Instruction{Op: OpConst, Const: 1})
		jumpEnd := ctx.emit(Instruction{Op: OpJump, Target: -1})
		ctx.patch(jumpFalse, len(ctx.instructions))
		lowerExpr(e.Right, ctx)
		ctx.patch(jumpEnd, len(ctx.instructions))
	}
}

func lowerConditional(e *ast.ConditionalExpr, ctx *loweringContext) {
	lowerExpr(e.Cond, ctx)
	jumpFalse := ctx.emit(Instruction{Op: OpJumpFalse, Target: -1})
	lowerExpr(e.Then, ctx)
	jumpEnd := ctx.emit(Instruction{Op: OpJump, Target: -1})
	ctx.patch(jumpFalse, len(ctx.instructions))
	lowerExpr(e.Else, ctx)
	ctx.patch(jumpEnd, len(ctx.instructions))
}

func lowerAssignExpr(e *ast.AssignmentExpr, ctx *loweringContext) {
	ident, ok := e.Target.(*ast.Identifier)
	if !ok {
		ctx.fail(e.Span(), "assignment target must be a local variable")
		return
	}
	lowerExpr(e.Value, ctx)
	local, ok := ctx.local(ident.Name)
	if !ok {
		local = ctx.allocLocal(ident.Name)
	}
	ctx.emit(Instruction{Op: OpStoreLocal, Local: local})
	ctx.emit(Instruction{Op: OpLoadLocal, Local: local})
}

func lowerCall(e *ast.CallExpr, ctx *loweringContext) {
	callee, ok := e.Callee.(*ast.Identifier)
	if !ok {
		ctx.fail(e.Callee.Span(), "call target must be a direct function name")
		return
	}
	for _, arg := range e.Args {
		lowerExpr(arg, ctx)
	}
	ctx.emit(Instruction{Op: OpCall, Callee: callee.Name, Nargs: uint8(len(e.Args))})
}
