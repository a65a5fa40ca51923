package ir_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/scriptum-lang/scriptum/lang/ir"
)

func TestOptimizeFoldsConstantArithmetic(t *testing.T) {
	module, _, errs := lower(t, `functio f() -> numerus { redde 2 + 3 * 4; }`)
	require.Empty(t, errs)
	require.Len(t, module.Functions, 1)

	before := module.Functions[0].Instructions
	require.Greater(t, len(before), 1, "expected multiple instructions prior to folding")

	ir.Optimize(module)
	after := module.Functions[0].Instructions

	require.Len(t, after, 2, "fully constant expression should fold to one Const plus Return")
	require.Equal(t, ir.OpConst, after[0].Op)
	require.Equal(t, 14.0, after[0].Const)
	require.Equal(t, ir.OpReturn, after[1].Op)
}

func TestOptimizeDoesNotFoldAcrossNonConstantOperands(t *testing.T) {
	module, _, errs := lower(t, `functio f(a: numerus) -> numerus { redde a + 1 + 2; }`)
	require.Empty(t, errs)
	before := len(module.Functions[0].Instructions)

	ir.Optimize(module)
	after := module.Functions[0].Instructions

	// a + 1 cannot fold (a isn't constant); 1 + 2 is decided by evaluation
	// order (left-associative: (a + 1) + 2, so no two adjacent Consts ever
	// appear back to back) and so also doesn't fold.
	require.Len(t, after, before)
}
