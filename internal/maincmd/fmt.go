package maincmd

import (
	"context"
	"fmt"

	"github.com/mna/mainer"

	"github.com/scriptum-lang/scriptum/lang/ast"
)

// Fmt runs the parser over each file and prints its canonical
// pretty-printed form. Re-running fmt over its own output is a no-op,
// since Unparse always fully parenthesizes compound expressions.
func (c *Cmd) Fmt(ctx context.Context, stdio mainer.Stdio, args []string) error {
	return FmtFiles(stdio, args...)
}

func FmtFiles(stdio mainer.Stdio, files ...string) error {
	var failed bool
	for _, path := range files {
		module, diags, lines, err := parseFile(stdio, path)
		if err != nil {
			failed = true
			continue
		}
		if len(diags) > 0 {
			wrapped := make([]diagLike, len(diags))
			for i, d := range diags {
				wrapped[i] = parserDiag(d)
			}
			printDiagnostics(stdio, path, lines, wrapped)
			failed = true
			continue
		}
		fmt.Fprint(stdio.Stdout, ast.Unparse(module))
	}
	if failed {
		return errSomeFileFailed
	}
	return nil
}
