// Package bytecode encodes and decodes Scriptum's ".sbc" chunk format, a
// contiguous little-endian byte sequence. Magic and opcode byte values follow
// original_source/compilador/crates/runtime/src/bytecode.rs and emit.rs;
// function names and call targets are written as length-prefixed strings
// (see Encode), so the layout is not byte-for-byte the original's.
package bytecode

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/scriptum-lang/scriptum/lang/intern"
	"github.com/scriptum-lang/scriptum/lang/ir"
)

// Opcode byte values, fixed by the wire format.
const (
	opConst      = 0x01
	opLoadLocal  = 0x02
	opStoreLocal = 0x03
	opAdd        = 0x10
	opSub        = 0x11
	opMul        = 0x12
	opDiv        = 0x13
	opCmpEq      = 0x20
	opCmpNe      = 0x21
	opCmpLt      = 0x22
	opCmpLe      = 0x23
	opCmpGt      = 0x24
	opCmpGe      = 0x25
	opJump       = 0x30
	opJumpFalse  = 0x31
	opCall       = 0x40
	opReturn     = 0x50
)

// magic is the 4-byte header identifying a Scriptum bytecode chunk.
var magic = [4]byte{'S', 'B', 'C', '0'}

// Error reports a malformed or truncated chunk.
type Error struct {
	msg string
}

func (e *Error) Error() string { return e.msg }

// ErrInvalidFormat indicates a bad magic header or an unrecognized opcode.
var ErrInvalidFormat = &Error{msg: "invalid bytecode format"}

// ErrUnexpectedEOF indicates a chunk that ends in the middle of a field.
var ErrUnexpectedEOF = &Error{msg: "unexpected end of bytecode"}

var irOpToByte = map[ir.Op]byte{
	ir.OpConst:      opConst,
	ir.OpLoadLocal:  opLoadLocal,
	ir.OpStoreLocal: opStoreLocal,
	ir.OpAdd:        opAdd,
	ir.OpSub:        opSub,
	ir.OpMul:        opMul,
	ir.OpDiv:        opDiv,
	ir.OpCmpEq:      opCmpEq,
	ir.OpCmpNe:      opCmpNe,
	ir.OpCmpLt:      opCmpLt,
	ir.OpCmpLe:      opCmpLe,
	ir.OpCmpGt:      opCmpGt,
	ir.OpCmpGe:      opCmpGe,
	ir.OpJump:       opJump,
	ir.OpJumpFalse:  opJumpFalse,
	ir.OpCall:       opCall,
	ir.OpReturn:     opReturn,
}

// Encode serializes module into a ".sbc" chunk, resolving every function
// name and call callee against in to a length-prefixed UTF-8 string. The
// original compilador bytecode.rs instead writes the interned Symbol's
// raw u32 index directly, which is only meaningful within the process
// that produced it; Scriptum's CLI builds a chunk in one process
// invocation and may run it in a completely different one (`build` then
// a later `run file.sbc`), so the wire format carries names as text and
// Decode re-interns them into a fresh table instead. It is total: every
// well-formed ir.Module encodes, there is no error return.
func Encode(module *ir.Module, in *intern.Interner) []byte {
	var out []byte
	out = append(out, magic[:]...)
	out = appendU32(out, uint32(len(module.Functions)))
	for _, fn := range module.Functions {
		out = encodeFunction(fn, in, out)
	}
	return out
}

func encodeFunction(fn ir.Function, in *intern.Interner, out []byte) []byte {
	out = appendString(out, in.Resolve(fn.Name))
	out = append(out, fn.Arity)
	out = appendU32(out, uint32(len(fn.Instructions)))
	for _, instr := range fn.Instructions {
		out = encodeInstruction(instr, in, out)
	}
	return out
}

func encodeInstruction(instr ir.Instruction, in *intern.Interner, out []byte) []byte {
	b, ok := irOpToByte[instr.Op]
	if !ok {
		panic(fmt.Sprintf("bytecode: no wire encoding for ir op %s", instr.Op))
	}
	out = append(out, b)
	switch instr.Op {
	case ir.OpConst:
		out = appendF64(out, instr.Const)
	case ir.OpLoadLocal, ir.OpStoreLocal:
		out = appendU16(out, instr.Local)
	case ir.OpJump, ir.OpJumpFalse:
		out = appendU32(out, uint32(instr.Target))
	case ir.OpCall:
		out = appendString(out, in.Resolve(instr.Callee))
		out = append(out, instr.Nargs)
	}
	return out
}

func appendString(out []byte, s string) []byte {
	out = appendU32(out, uint32(len(s)))
	return append(out, s...)
}

func appendU16(out []byte, v uint16) []byte {
	var buf [2]byte
	binary.LittleEndian.PutUint16(buf[:], v)
	return append(out, buf[:]...)
}

func appendU32(out []byte, v uint32) []byte {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], v)
	return append(out, buf[:]...)
}

func appendF64(out []byte, v float64) []byte {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], math.Float64bits(v))
	return append(out, buf[:]...)
}
