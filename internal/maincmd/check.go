package maincmd

import (
	"context"
	"fmt"

	"github.com/mna/mainer"

	"github.com/scriptum-lang/scriptum/lang/span"
	"github.com/scriptum-lang/scriptum/lang/types"
)

// Check runs the parser and type checker over each file and prints any
// diagnostics found. A file with syntax diagnostics prints only those and is
// not type-checked; a file with no diagnostics prints "<path>: ok".
func (c *Cmd) Check(ctx context.Context, stdio mainer.Stdio, args []string) error {
	return CheckFiles(stdio, args...)
}

func CheckFiles(stdio mainer.Stdio, files ...string) error {
	var failed bool
	for _, path := range files {
		if !checkFileReport(stdio, path) {
			failed = true
		}
	}
	if failed {
		return errSomeFileFailed
	}
	return nil
}

func checkFileReport(stdio mainer.Stdio, path string) bool {
	module, parseDiags, lines, err := parseFile(stdio, path)
	if err != nil {
		return false
	}
	if len(parseDiags) > 0 {
		wrapped := make([]diagLike, len(parseDiags))
		for i, d := range parseDiags {
			wrapped[i] = parserDiag(d)
		}
		printDiagnostics(stdio, path, lines, wrapped)
		return false
	}

	out := types.Check(module)
	if len(out.Diagnostics) == 0 {
		fmt.Fprintf(stdio.Stdout, "%s: ok\n", path)
		return true
	}
	wrapped := make([]diagLike, len(out.Diagnostics))
	for i, d := range out.Diagnostics {
		wrapped[i] = typesDiag(d)
	}
	printDiagnostics(stdio, path, lines, wrapped)
	return false
}

type typesDiag types.Diagnostic

func (d typesDiag) span() span.Span  { return d.Span }
func (d typesDiag) message() string { return fmt.Sprintf("%s: %s", d.Code, d.Message) }
