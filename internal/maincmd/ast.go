package maincmd

import (
	"context"
	"fmt"

	"github.com/mna/mainer"

	"github.com/scriptum-lang/scriptum/lang/ast"
)

// Ast runs the parser over each file and prints the resulting syntax
// tree. Syntax diagnostics, if any, go to stderr and the file is skipped.
func (c *Cmd) Ast(ctx context.Context, stdio mainer.Stdio, args []string) error {
	return AstFiles(stdio, args...)
}

func AstFiles(stdio mainer.Stdio, files ...string) error {
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
		fmt.Fprint(stdio.Stdout, ast.Print(module))
	}
	if failed {
		return errSomeFileFailed
	}
	return nil
}
