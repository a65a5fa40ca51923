// Package machine is Scriptum's stack-based virtual machine: a value
// stack of float64 and a frame stack of {function, ip, locals}, following
// the structure of original_source/compilador/crates/runtime/src/vm.rs.
package machine

import (
	"fmt"

	"github.com/scriptum-lang/scriptum/lang/intern"
	"github.com/scriptum-lang/scriptum/lang/ir"
)

// Error reports a runtime failure: a missing entry or callee function, or
// an unknown opcode.
type Error struct {
	msg string
}

func (e *Error) Error() string { return e.msg }

// ErrUnknownEntry indicates run was asked to start at, or call, a function
// name the chunk does not define.
var ErrUnknownEntry = &Error{msg: "unknown entry function"}

// Result is the value produced by the outermost frame's Return.
type Result struct {
	Value float64
}

// Machine indexes a module's functions by name for O(1) call dispatch and
// runs them against its own value/frame stacks. It holds no mutable state
// between Run calls beyond the function index, so one Machine can safely
// run multiple entry points against the same module.
type Machine struct {
	functions map[intern.Symbol]*ir.Function
}

// New indexes module's functions by name.
func New(module *ir.Module) *Machine {
	index := make(map[intern.Symbol]*ir.Function, len(module.Functions))
	for i := range module.Functions {
		fn := &module.Functions[i]
		index[fn.Name] = fn
	}
	return &Machine{functions: index}
}

// frame is one active call's execution state: the function it is
// executing, its instruction pointer, and its local-variable slots.
type frame struct {
	function *ir.Function
	ip       int
	locals   []float64
}

func newFrame(fn *ir.Function, args []float64) *frame {
	locals := make([]float64, localCount(fn))
	copy(locals, args)
	return &frame{function: fn, locals: locals}
}

// localCount sizes the locals slice to the widest slot referenced by any
// LoadLocal/StoreLocal in fn, so a parameter-only function with dead stores
// past its arity still gets the space those stores need.
func localCount(fn *ir.Function) int {
	max := int(fn.Arity)
	for _, instr := range fn.Instructions {
		switch instr.Op {
		case ir.OpLoadLocal, ir.OpStoreLocal:
			if n := int(instr.Local) + 1; n > max {
				max = n
			}
		}
	}
	return max
}

// Run executes entry with args and returns its final Return value.
// Truthiness for JumpFalse is "non-zero is truthy"; booleans are 1.0/0.0.
// Arithmetic follows IEEE-754 defaults, so division by zero is not an
// error.
func (m *Machine) Run(entry intern.Symbol, args []float64) (Result, error) {
	fn, ok := m.functions[entry]
	if !ok {
		return Result{}, ErrUnknownEntry
	}

	var stack []float64
	frames := []*frame{newFrame(fn, args)}

	for len(frames) > 0 {
		fr := frames[len(frames)-1]
		if fr.ip >= len(fr.function.Instructions) {
			break
		}
		instr := fr.function.Instructions[fr.ip]

		switch instr.Op {
		case ir.OpConst:
			stack = append(stack, instr.Const)
			fr.ip++
		case ir.OpLoadLocal:
			stack = append(stack, fr.locals[instr.Local])
			fr.ip++
		case ir.OpStoreLocal:
			fr.locals[instr.Local] = pop(&stack)
			fr.ip++
		case ir.OpAdd:
			binaryOp(&stack, func(lhs, rhs float64) float64 { return lhs + rhs })
			fr.ip++
		case ir.OpSub:
			binaryOp(&stack, func(lhs, rhs float64) float64 { return lhs - rhs })
			fr.ip++
		case ir.OpMul:
			binaryOp(&stack, func(lhs, rhs float64) float64 { return lhs * rhs })
			fr.ip++
		case ir.OpDiv:
			binaryOp(&stack, func(lhs, rhs float64) float64 { return lhs / rhs })
			fr.ip++
		case ir.OpCmpEq:
			compare(&stack, func(lhs, rhs float64) bool { return lhs == rhs })
			fr.ip++
		case ir.OpCmpNe:
			compare(&stack, func(lhs, rhs float64) bool { return lhs != rhs })
			fr.ip++
		case ir.OpCmpLt:
			compare(&stack, func(lhs, rhs float64) bool { return lhs < rhs })
			fr.ip++
		case ir.OpCmpLe:
			compare(&stack, func(lhs, rhs float64) bool { return lhs <= rhs })
			fr.ip++
		case ir.OpCmpGt:
			compare(&stack, func(lhs, rhs float64) bool { return lhs > rhs })
			fr.ip++
		case ir.OpCmpGe:
			compare(&stack, func(lhs, rhs float64) bool { return lhs >= rhs })
			fr.ip++
		case ir.OpJump:
			fr.ip = instr.Target
		case ir.OpJumpFalse:
			if pop(&stack) == 0.0 {
				fr.ip = instr.Target
			} else {
				fr.ip++
			}
		case ir.OpCall:
			callee, ok := m.functions[instr.Callee]
			if !ok {
				return Result{}, ErrUnknownEntry
			}
			callArgs := make([]float64, instr.Nargs)
			for i := int(instr.Nargs) - 1; i >= 0; i-- {
				callArgs[i] = pop(&stack)
			}
			frames = append(frames, newFrame(callee, callArgs))
		case ir.OpReturn:
			value := pop(&stack)
			frames = frames[:len(frames)-1]
			if len(frames) > 0 {
				stack = append(stack, value)
				frames[len(frames)-1].ip++
			} else {
				return Result{Value: value}, nil
			}
		default:
			return Result{}, &Error{msg: fmt.Sprintf("unknown opcode %s", instr.Op)}
		}
	}

	return Result{Value: pop(&stack)}, nil
}

// pop removes and returns the top of *stack, or 0.0 if it is empty. The
// bytecode is produced exclusively by the checked lowering/encoding
// pipeline, so an empty pop only happens on a malformed externally-loaded
// chunk; 0.0 keeps execution going rather than panicking on untrusted
// input.
func pop(stack *[]float64) float64 {
	s := *stack
	if len(s) == 0 {
		return 0.0
	}
	v := s[len(s)-1]
	*stack = s[:len(s)-1]
	return v
}

func binaryOp(stack *[]float64, op func(lhs, rhs float64) float64) {
	rhs := pop(stack)
	lhs := pop(stack)
	*stack = append(*stack, op(lhs, rhs))
}

func compare(stack *[]float64, cmp func(lhs, rhs float64) bool) {
	rhs := pop(stack)
	lhs := pop(stack)
	if cmp(lhs, rhs) {
		*stack = append(*stack, 1.0)
	} else {
		*stack = append(*stack, 0.0)
	}
}
