package types_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/scriptum-lang/scriptum/lang/intern"
	"github.com/scriptum-lang/scriptum/lang/parser"
	"github.com/scriptum-lang/scriptum/lang/scanner"
	"github.com/scriptum-lang/scriptum/lang/types"
)

func check(t *testing.T, src string) types.Output {
	t.Helper()
	tokens, err := scanner.Scan(src)
	require.NoError(t, err)
	in := intern.New()
	out := parser.ParseTokens(tokens, in)
	require.Empty(t, out.Diagnostics, "unexpected parse diagnostics")
	return types.Check(out.Module)
}

func codes(out types.Output) []string {
	var cs []string
	for _, d := range out.Diagnostics {
		cs = append(cs, d.Code)
	}
	return cs
}

func TestCheck(t *testing.T) {
	cases := []struct {
		desc  string
		src   string
		codes []string
	}{
		{
			"valid function",
			`functio sum(a: numerus, b: numerus) -> numerus { redde a + b; }`,
			nil,
		},
		{
			"forward reference between functions",
			`functio a() -> numerus { redde b(); }
			 functio b() -> numerus { redde 1; }`,
			nil,
		},
		{
			"redeclaration in same scope",
			`functio f() -> numerus {
				constans x = 1;
				constans x = 2;
				redde x;
			}`,
			[]string{"S001"},
		},
		{
			"undeclared identifier",
			`functio f() -> numerus { redde y; }`,
			[]string{"S100"},
		},
		{
			"assignment to immutable",
			`functio f() -> numerus {
				constans x = 1;
				x = 2;
				redde x;
			}`,
			[]string{"S200"},
		},
		{
			"var decl type mismatch",
			`functio f() {
				constans x: textus = 1;
			}`,
			[]string{"T005"},
		},
		{
			"return type mismatch",
			`functio f() -> textus { redde 1; }`,
			[]string{"T010"},
		},
		{
			"if condition must be boolean",
			`functio f() { si 1 { } }`,
			[]string{"T020"},
		},
		{
			"while condition must be boolean",
			`functio f() { dum 1 { } }`,
			[]string{"T021"},
		},
		{
			"non-numeric arithmetic operand",
			`functio f() -> numerus { redde verum + 1; }`,
			[]string{"T100"},
		},
		{
			"non-boolean logical operand",
			`functio f() -> booleanum { redde 1 && verum; }`,
			[]string{"T110"},
		},
		{
			"wrong call arity",
			`functio g(a: numerus) -> numerus { redde a; }
			 functio f() -> numerus { redde g(1, 2); }`,
			[]string{"T300"},
		},
		{
			"incompatible argument",
			`functio g(a: numerus) -> numerus { redde a; }
			 functio f() -> numerus { redde g(verum); }`,
			[]string{"T301"},
		},
		{
			"calling a non-function",
			`functio f() -> numerus {
				constans x = 1;
				redde x();
			}`,
			[]string{"T302"},
		},
	}

	for _, tt := range cases {
		t.Run(tt.desc, func(t *testing.T) {
			out := check(t, tt.src)
			require.Equal(t, tt.codes, codes(out))
		})
	}
}

func TestIsAssignable(t *testing.T) {
	require.True(t, types.IsAssignable(types.TQuodlibet, types.TNumerus))
	require.True(t, types.IsAssignable(types.TNumerus, types.TQuodlibet))
	require.True(t, types.IsAssignable(types.TNumerus, types.TNumerus))
	require.False(t, types.IsAssignable(types.TNumerus, types.TTextus))

	require.True(t, types.IsAssignable(types.NewArray(types.TNumerus), types.NewArray(types.TNumerus)))
	require.False(t, types.IsAssignable(types.NewArray(types.TNumerus), types.NewArray(types.TTextus)))

	optNum := types.NewOptional(types.TNumerus)
	require.True(t, types.IsAssignable(optNum, types.TNullum))
	require.True(t, types.IsAssignable(optNum, types.TNumerus))
	require.True(t, types.IsAssignable(types.TNumerus, optNum))
	require.True(t, types.IsAssignable(types.TQuodlibet, optNum))
}
