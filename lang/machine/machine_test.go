package machine_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/scriptum-lang/scriptum/lang/intern"
	"github.com/scriptum-lang/scriptum/lang/ir"
	"github.com/scriptum-lang/scriptum/lang/machine"
	"github.com/scriptum-lang/scriptum/lang/parser"
	"github.com/scriptum-lang/scriptum/lang/scanner"
)

func compileAndRun(t *testing.T, src, entry string, args []float64) machine.Result {
	t.Helper()
	tokens, err := scanner.Scan(src)
	require.NoError(t, err)
	in := intern.New()
	out := parser.ParseTokens(tokens, in)
	require.Empty(t, out.Diagnostics)

	module, lowerErrs := ir.Lower(out.Module)
	require.Empty(t, lowerErrs)
	ir.Optimize(module)

	vm := machine.New(module)
	result, err := vm.Run(in.Intern(entry), args)
	require.NoError(t, err)
	return result
}

func TestRunArithmetic(t *testing.T) {
	result := compileAndRun(t, `functio init() -> numerus { redde 2 + 3 * 4; }`, "init", nil)
	require.Equal(t, 14.0, result.Value)
}

func TestRunWhileLoop(t *testing.T) {
	src := `functio init() -> numerus {
		mutabilis i = 0;
		mutabilis total = 0;
		dum i < 5 {
			total = total + i;
			i = i + 1;
		}
		redde total;
	}`
	result := compileAndRun(t, src, "init", nil)
	require.Equal(t, 10.0, result.Value)
}

func TestRunRecursiveCall(t *testing.T) {
	src := `functio factorial(n: numerus) -> numerus {
		si n <= 1 {
			redde 1;
		}
		redde n * factorial(n - 1);
	}
	functio init() -> numerus { redde factorial(5); }`
	result := compileAndRun(t, src, "init", nil)
	require.Equal(t, 120.0, result.Value)
}

func TestRunTernaryAndLogical(t *testing.T) {
	src := `functio init() -> numerus {
		constans a = 3;
		constans b = 4;
		redde (a > 0 && b > 0) ? a + b : 0;
	}`
	result := compileAndRun(t, src, "init", nil)
	require.Equal(t, 7.0, result.Value)
}

func TestRunLogicalOr(t *testing.T) {
	cases := []struct {
		desc string
		src  string
		want float64
	}{
		{"falsum || falsum", `functio init() -> booleanum { redde falsum || falsum; }`, 0},
		{"verum || falsum", `functio init() -> booleanum { redde verum || falsum; }`, 1},
		{"falsum || verum", `functio init() -> booleanum { redde falsum || verum; }`, 1},
		{"verum || verum", `functio init() -> booleanum { redde verum || verum; }`, 1},
	}
	for _, tt := range cases {
		t.Run(tt.desc, func(t *testing.T) {
			result := compileAndRun(t, tt.src, "init", nil)
			require.Equal(t, tt.want, result.Value)
		})
	}
}

func TestRunEntryWithArgs(t *testing.T) {
	src := `functio init(a: numerus, b: numerus) -> numerus { redde a - b; }`
	result := compileAndRun(t, src, "init", []float64{10, 3})
	require.Equal(t, 7.0, result.Value)
}

func TestRunUnknownEntry(t *testing.T) {
	tokens, err := scanner.Scan(`functio init() -> numerus { redde 1; }`)
	require.NoError(t, err)
	in := intern.New()
	out := parser.ParseTokens(tokens, in)
	module, lowerErrs := ir.Lower(out.Module)
	require.Empty(t, lowerErrs)

	vm := machine.New(module)
	_, err = vm.Run(in.Intern("missing"), nil)
	require.ErrorIs(t, err, machine.ErrUnknownEntry)
}
