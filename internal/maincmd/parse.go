package maincmd

import (
	"context"
	"fmt"

	"github.com/mna/mainer"
)

// Parse runs the parser over each file and prints any syntax diagnostics
// found. A file with no diagnostics prints "<path>: ok (<n> item(s))" and
// counts as a pass.
func (c *Cmd) Parse(ctx context.Context, stdio mainer.Stdio, args []string) error {
	return ParseFiles(stdio, args...)
}

func ParseFiles(stdio mainer.Stdio, files ...string) error {
	var failed bool
	for _, path := range files {
		if !parseFileReport(stdio, path) {
			failed = true
		}
	}
	if failed {
		return errSomeFileFailed
	}
	return nil
}

func parseFileReport(stdio mainer.Stdio, path string) bool {
	module, diags, lines, err := parseFile(stdio, path)
	if err != nil {
		return false
	}
	if len(diags) == 0 {
		fmt.Fprintf(stdio.Stdout, "%s: ok (%d item(s))\n", path, len(module.Items))
		return true
	}
	wrapped := make([]diagLike, len(diags))
	for i, d := range diags {
		wrapped[i] = parserDiag(d)
	}
	printDiagnostics(stdio, path, lines, wrapped)
	return false
}
