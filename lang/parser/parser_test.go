package parser_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/scriptum-lang/scriptum/lang/ast"
	"github.com/scriptum-lang/scriptum/lang/intern"
	"github.com/scriptum-lang/scriptum/lang/parser"
	"github.com/scriptum-lang/scriptum/lang/scanner"
)

func parseSrc(t *testing.T, src string) parser.Output {
	t.Helper()
	tokens, err := scanner.Scan(src)
	require.NoError(t, err)
	return parser.ParseTokens(tokens, intern.New())
}

func TestParseFunctionDecl(t *testing.T) {
	out := parseSrc(t, `functio add(a: numerus, b: numerus) -> numerus { redde a + b; }`)
	require.Empty(t, out.Diagnostics)
	require.Len(t, out.Module.Items, 1)

	fn, ok := out.Module.Items[0].(*ast.Function)
	require.True(t, ok)
	require.Equal(t, "add", out.Module.Interner.Resolve(fn.Name))
	require.Len(t, fn.Params, 2)
	require.NotNil(t, fn.ReturnType)
	require.Len(t, fn.Body.Statements, 1)
}

func TestParseGlobalVar(t *testing.T) {
	out := parseSrc(t, `constans x: numerus = 1;`)
	require.Empty(t, out.Diagnostics)
	require.Len(t, out.Module.Items, 1)

	_, ok := out.Module.Items[0].(*ast.GlobalVar)
	require.True(t, ok)
}

func TestParseMultipleItems(t *testing.T) {
	out := parseSrc(t, `
		constans x: numerus = 1;
		functio f() -> numerus { redde x; }
		functio g() -> numerus { redde f(); }
	`)
	require.Empty(t, out.Diagnostics)
	require.Len(t, out.Module.Items, 3)
}

func TestParseIfElse(t *testing.T) {
	out := parseSrc(t, `
		functio f(a: numerus) -> numerus {
			si a > 0 {
				redde 1;
			} aliter {
				redde 0;
			}
		}
	`)
	require.Empty(t, out.Diagnostics)
	fn := out.Module.Items[0].(*ast.Function)
	require.Len(t, fn.Body.Statements, 1)
}

func TestParseExpressionPrecedence(t *testing.T) {
	// 2 + 3 * 4 should parse with * binding tighter than +; the AST's
	// top-level binary op is the addition.
	out := parseSrc(t, `functio f() -> numerus { redde 2 + 3 * 4; }`)
	require.Empty(t, out.Diagnostics)
	fn := out.Module.Items[0].(*ast.Function)
	require.Len(t, fn.Body.Statements, 1)

	ret, ok := fn.Body.Statements[0].(*ast.ReturnStmt)
	require.True(t, ok)
	sum, ok := ret.Value.(*ast.BinaryExpr)
	require.True(t, ok)
	require.Equal(t, ast.OpAdd, sum.Op)
	product, ok := sum.Right.(*ast.BinaryExpr)
	require.True(t, ok)
	require.Equal(t, ast.OpMul, product.Op)
}

func TestParseReportsDiagnosticOnUnexpectedToken(t *testing.T) {
	out := parseSrc(t, `functio f() -> numerus { redde 1 + ; }`)
	require.NotEmpty(t, out.Diagnostics)
}

func TestParseRecoversAfterErrorToParseFollowingItem(t *testing.T) {
	// a malformed item followed by a well-formed one: the parser should
	// still report the second function as a usable item after recovering.
	out := parseSrc(t, `
		123;
		functio g() -> numerus { redde 1; }
	`)
	require.NotEmpty(t, out.Diagnostics)

	var names []string
	for _, item := range out.Module.Items {
		if fn, ok := item.(*ast.Function); ok {
			names = append(names, out.Module.Interner.Resolve(fn.Name))
		}
	}
	require.Contains(t, names, "g")
}

func TestParseEmptySource(t *testing.T) {
	out := parseSrc(t, ``)
	require.Empty(t, out.Diagnostics)
	require.Empty(t, out.Module.Items)
}
