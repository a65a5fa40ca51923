package bytecode_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/scriptum-lang/scriptum/lang/bytecode"
	"github.com/scriptum-lang/scriptum/lang/intern"
	"github.com/scriptum-lang/scriptum/lang/ir"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	in := intern.New()
	add := in.Intern("add")
	mainFn := in.Intern("init")

	module := &ir.Module{
		Functions: []ir.Function{
			{
				Name:  add,
				Arity: 2,
				Instructions: []ir.Instruction{
					{Op: ir.OpLoadLocal, Local: 0},
					{Op: ir.OpLoadLocal, Local: 1},
					{Op: ir.OpAdd},
					{Op: ir.OpReturn},
				},
			},
			{
				Name:  mainFn,
				Arity: 0,
				Instructions: []ir.Instruction{
					{Op: ir.OpConst, Const: 1},
					{Op: ir.OpConst, Const: 2},
					{Op: ir.OpCall, Callee: add, Nargs: 2},
					{Op: ir.OpJump, Target: 5},
					{Op: ir.OpReturn},
				},
			},
		},
	}

	chunk := bytecode.Encode(module, in)
	decoded, decodedIn, err := bytecode.Decode(chunk)
	require.NoError(t, err)
	require.Len(t, decoded.Functions, 2)

	require.Equal(t, "add", decodedIn.Resolve(decoded.Functions[0].Name))
	require.Equal(t, uint8(2), decoded.Functions[0].Arity)
	require.Equal(t, module.Functions[0].Instructions, decoded.Functions[0].Instructions)

	require.Equal(t, "init", decodedIn.Resolve(decoded.Functions[1].Name))
	callInstr := decoded.Functions[1].Instructions[2]
	require.Equal(t, ir.OpCall, callInstr.Op)
	require.Equal(t, "add", decodedIn.Resolve(callInstr.Callee))
	require.Equal(t, uint8(2), callInstr.Nargs)
}

func TestDecodeRejectsBadMagic(t *testing.T) {
	_, _, err := bytecode.Decode([]byte("NOPE0000"))
	require.ErrorIs(t, err, bytecode.ErrInvalidFormat)
}

func TestDecodeRejectsTruncatedChunk(t *testing.T) {
	in := intern.New()
	module := &ir.Module{Functions: []ir.Function{{
		Name:         in.Intern("f"),
		Instructions: []ir.Instruction{{Op: ir.OpReturn}},
	}}}
	chunk := bytecode.Encode(module, in)
	_, _, err := bytecode.Decode(chunk[:len(chunk)-1])
	require.ErrorIs(t, err, bytecode.ErrUnexpectedEOF)
}
