package ir

// Optimize runs the peephole constant-folding pass over every function in
// module, in place.
func Optimize(module *Module) {
	for i := range module.Functions {
		module.Functions[i].Instructions = optimizeFunction(module.Functions[i].Instructions)
	}
}

// optimizeFunction maintains a model stack of known-constant operand
// values alongside the emitted instruction list. On Const it pushes the
// model stack and re-emits the instruction. On Add/Sub/Mul/Div, if the top
// two model values are both constants, it pops them, folds the arithmetic
// in IEEE-754 double precision, and replaces the two emitted Const
// instructions with one fused Const(result). Any other opcode invalidates
// the model stack: comparisons and jumps are never folded.
func optimizeFunction(instrs []Instruction) []Instruction {
	optimized := make([]Instruction, 0, len(instrs))
	var stack []float64

	fold := func(op Op) (float64, bool) {
		if len(stack) < 2 {
			return 0, false
		}
		rhs := stack[len(stack)-1]
		lhs := stack[len(stack)-2]
		stack = stack[:len(stack)-2]
		switch op {
		case OpAdd:
			return lhs + rhs, true
		case OpSub:
			return lhs - rhs, true
		case OpMul:
			return lhs * rhs, true
		case OpDiv:
			return lhs / rhs, true
		default:
			return 0, false
		}
	}

	for _, instr := range instrs {
		switch instr.Op {
		case OpConst:
			stack = append(stack, instr.Const)
			optimized = append(optimized, instr)
		case OpAdd, OpSub, OpMul, OpDiv:
			if value, ok := fold(instr.Op); ok {
				optimized = optimized[:len(optimized)-2]
				optimized = append(optimized, Instruction{Op: OpConst, Const: value})
				stack = append(stack, value)
			} else {
				stack = nil
				optimized = append(optimized, instr)
			}
		default:
			stack = nil
			optimized = append(optimized, instr)
		}
	}
	return optimized
}
