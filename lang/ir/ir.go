// Package ir is Scriptum's linear intermediate representation: the
// instruction set a function body lowers to before bytecode encoding,
// following the structure of original_source/compilador/crates/codegen.
package ir

import (
	"fmt"

	"github.com/scriptum-lang/scriptum/lang/intern"
)

// Op identifies one instruction's operation. Values are IR-local; package
// bytecode maps each Op to its own opcode byte when encoding.
type Op uint8

const (
	OpConst Op = iota // - Const<f64> v
	OpLoadLocal
	OpStoreLocal
	OpAdd // lhs rhs Add v
	OpSub
	OpMul
	OpDiv
	OpCmpEq // lhs rhs Cmp* 1.0|0.0
	OpCmpNe
	OpCmpLt
	OpCmpLe
	OpCmpGt
	OpCmpGe
	OpJump       // unconditional, absolute instruction index
	OpJumpFalse  // pops cond, jumps iff cond == 0.0
	OpCall       // pops n args, pushes callee's Return value
	OpReturn     // pops result, ends the current frame
)

var opNames = [...]string{
	OpConst:      "const",
	OpLoadLocal:  "load_local",
	OpStoreLocal: "store_local",
	OpAdd:        "add",
	OpSub:        "sub",
	OpMul:        "mul",
	OpDiv:        "div",
	OpCmpEq:      "cmp_eq",
	OpCmpNe:      "cmp_ne",
	OpCmpLt:      "cmp_lt",
	OpCmpLe:      "cmp_le",
	OpCmpGt:      "cmp_gt",
	OpCmpGe:      "cmp_ge",
	OpJump:       "jump",
	OpJumpFalse:  "jump_false",
	OpCall:       "call",
	OpReturn:     "return",
}

func (op Op) String() string {
	if int(op) < len(opNames) && opNames[op] != "" {
		return opNames[op]
	}
	return fmt.Sprintf("illegal op (%d)", op)
}

// Instruction is one IR instruction. Only the fields relevant to Op are
// meaningful; a tagged struct (rather than an interface per variant) keeps
// the peephole optimizer and the bytecode emitter simple linear walks.
type Instruction struct {
	Op     Op
	Const  float64
	Local  uint16
	Target int           // absolute instruction index, for Jump/JumpFalse
	Callee intern.Symbol // for Call
	Nargs  uint8         // for Call
}

// Function is one lowered function body.
type Function struct {
	Name         intern.Symbol
	Arity        uint8
	Instructions []Instruction
}

// Module is every function lowered from one AST module.
type Module struct {
	Functions []Function
}
