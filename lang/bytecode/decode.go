package bytecode

import (
	"encoding/binary"
	"math"

	"github.com/scriptum-lang/scriptum/lang/intern"
	"github.com/scriptum-lang/scriptum/lang/ir"
)

// Decode parses a ".sbc" chunk back into an ir.Module. Function names and
// call callees are interned into a freshly created Interner, which the
// caller must use to resolve the entry function's name to a Symbol
// before calling machine.Run (see Encode's doc comment for why the chunk
// carries names as text rather than raw Symbol ids).
func Decode(data []byte) (*ir.Module, *intern.Interner, error) {
	if len(data) < 8 || string(data[:4]) != string(magic[:]) {
		return nil, nil, ErrInvalidFormat
	}
	offset := 4
	count, err := readU32(data, &offset)
	if err != nil {
		return nil, nil, err
	}
	in := intern.New()
	functions := make([]ir.Function, 0, count)
	for i := uint32(0); i < count; i++ {
		fn, err := readFunction(data, &offset, in)
		if err != nil {
			return nil, nil, err
		}
		functions = append(functions, fn)
	}
	return &ir.Module{Functions: functions}, in, nil
}

func readFunction(data []byte, offset *int, in *intern.Interner) (ir.Function, error) {
	name, err := readString(data, offset)
	if err != nil {
		return ir.Function{}, err
	}
	arity, err := readU8(data, offset)
	if err != nil {
		return ir.Function{}, err
	}
	count, err := readU32(data, offset)
	if err != nil {
		return ir.Function{}, err
	}
	instrs := make([]ir.Instruction, 0, count)
	for i := uint32(0); i < count; i++ {
		instr, err := readInstruction(data, offset, in)
		if err != nil {
			return ir.Function{}, err
		}
		instrs = append(instrs, instr)
	}
	return ir.Function{Name: in.Intern(name), Arity: arity, Instructions: instrs}, nil
}

func readInstruction(data []byte, offset *int, in *intern.Interner) (ir.Instruction, error) {
	op, err := readU8(data, offset)
	if err != nil {
		return ir.Instruction{}, err
	}
	switch op {
	case opConst:
		v, err := readF64(data, offset)
		return ir.Instruction{Op: ir.OpConst, Const: v}, err
	case opLoadLocal:
		v, err := readU16(data, offset)
		return ir.Instruction{Op: ir.OpLoadLocal, Local: v}, err
	case opStoreLocal:
		v, err := readU16(data, offset)
		return ir.Instruction{Op: ir.OpStoreLocal, Local: v}, err
	case opAdd:
		return ir.Instruction{Op: ir.OpAdd}, nil
	case opSub:
		return ir.Instruction{Op: ir.OpSub}, nil
	case opMul:
		return ir.Instruction{Op: ir.OpMul}, nil
	case opDiv:
		return ir.Instruction{Op: ir.OpDiv}, nil
	case opCmpEq:
		return ir.Instruction{Op: ir.OpCmpEq}, nil
	case opCmpNe:
		return ir.Instruction{Op: ir.OpCmpNe}, nil
	case opCmpLt:
		return ir.Instruction{Op: ir.OpCmpLt}, nil
	case opCmpLe:
		return ir.Instruction{Op: ir.OpCmpLe}, nil
	case opCmpGt:
		return ir.Instruction{Op: ir.OpCmpGt}, nil
	case opCmpGe:
		return ir.Instruction{Op: ir.OpCmpGe}, nil
	case opJump:
		v, err := readU32(data, offset)
		return ir.Instruction{Op: ir.OpJump, Target: int(v)}, err
	case opJumpFalse:
		v, err := readU32(data, offset)
		return ir.Instruction{Op: ir.OpJumpFalse, Target: int(v)}, err
	case opCall:
		fnName, err := readString(data, offset)
		if err != nil {
			return ir.Instruction{}, err
		}
		nargs, err := readU8(data, offset)
		return ir.Instruction{Op: ir.OpCall, Callee: in.Intern(fnName), Nargs: nargs}, err
	case opReturn:
		return ir.Instruction{Op: ir.OpReturn}, nil
	default:
		return ir.Instruction{}, ErrInvalidFormat
	}
}

func readString(data []byte, offset *int) (string, error) {
	n, err := readU32(data, offset)
	if err != nil {
		return "", err
	}
	if *offset+int(n) > len(data) {
		return "", ErrUnexpectedEOF
	}
	s := string(data[*offset : *offset+int(n)])
	*offset += int(n)
	return s, nil
}

func readU8(data []byte, offset *int) (uint8, error) {
	if *offset >= len(data) {
		return 0, ErrUnexpectedEOF
	}
	v := data[*offset]
	*offset++
	return v, nil
}

func readU16(data []byte, offset *int) (uint16, error) {
	if *offset+2 > len(data) {
		return 0, ErrUnexpectedEOF
	}
	v := binary.LittleEndian.Uint16(data[*offset:])
	*offset += 2
	return v, nil
}

func readU32(data []byte, offset *int) (uint32, error) {
	if *offset+4 > len(data) {
		return 0, ErrUnexpectedEOF
	}
	v := binary.LittleEndian.Uint32(data[*offset:])
	*offset += 4
	return v, nil
}

func readF64(data []byte, offset *int) (float64, error) {
	if *offset+8 > len(data) {
		return 0, ErrUnexpectedEOF
	}
	v := math.Float64frombits(binary.LittleEndian.Uint64(data[*offset:]))
	*offset += 8
	return v, nil
}
