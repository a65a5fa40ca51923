package ir_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/scriptum-lang/scriptum/lang/intern"
	"github.com/scriptum-lang/scriptum/lang/ir"
	"github.com/scriptum-lang/scriptum/lang/parser"
	"github.com/scriptum-lang/scriptum/lang/scanner"
)

func lower(t *testing.T, src string) (*ir.Module, *intern.Interner, []ir.LowerError) {
	t.Helper()
	tokens, err := scanner.Scan(src)
	require.NoError(t, err)
	in := intern.New()
	out := parser.ParseTokens(tokens, in)
	require.Empty(t, out.Diagnostics)
	module, errs := ir.Lower(out.Module)
	return module, in, errs
}

func TestLowerSupportedConstructs(t *testing.T) {
	cases := []struct {
		desc string
		src  string
	}{
		{"arithmetic", `functio f(a: numerus, b: numerus) -> numerus { redde a + b * 2; }`},
		{"if/else", `functio f(a: numerus) -> numerus { si a > 0 { redde 1; } aliter { redde 0; } }`},
		{"while loop", `functio f(n: numerus) -> numerus {
			mutabilis i = 0;
			dum i < n { i = i + 1; }
			redde i;
		}`},
		{"logical and", `functio f(a: numerus, b: numerus) -> booleanum { redde a > 0 && b > 0; }`},
		{"logical or", `functio f(a: numerus, b: numerus) -> booleanum { redde a > 0 || b > 0; }`},
		{"ternary", `functio f(a: numerus) -> numerus { redde a > 0 ? 1 : 0; }`},
		{"call", `functio g() -> numerus { redde 1; }
		          functio f() -> numerus { redde g(); }`},
	}
	for _, tt := range cases {
		t.Run(tt.desc, func(t *testing.T) {
			_, _, errs := lower(t, tt.src)
			require.Empty(t, errs)
		})
	}
}

func TestLowerUnsupportedConstructReportsErrorButFinishesModule(t *testing.T) {
	module, in, errs := lower(t, `functio f() -> numerus[] { redde [1, 2, 3]; }
	                              functio g() -> numerus { redde 1; }`)
	require.NotEmpty(t, errs)
	require.Len(t, module.Functions, 2)
	require.Equal(t, "g", in.Resolve(module.Functions[1].Name))
}
