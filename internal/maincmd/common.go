package maincmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/mna/mainer"

	"github.com/scriptum-lang/scriptum/lang/ast"
	"github.com/scriptum-lang/scriptum/lang/intern"
	"github.com/scriptum-lang/scriptum/lang/parser"
	"github.com/scriptum-lang/scriptum/lang/scanner"
	"github.com/scriptum-lang/scriptum/lang/span"
)

// errSomeFileFailed is returned by the multi-file commands when at least
// one input file failed, after every file has still been given a chance
// to run (so one bad file in a batch doesn't hide diagnostics from the
// rest).
var errSomeFileFailed = errors.New("one or more files failed")

// parseFile lexes and parses path, reporting a lex error immediately (a
// lex error halts before any parse diagnostics exist) or otherwise
// returning the parser's best-effort module plus its diagnostics and a
// line table for resolving diagnostic spans back to line:column.
func parseFile(stdio mainer.Stdio, path string) (*ast.Module, []parser.Diagnostic, *span.LineTable, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		printError(stdio, err)
		return nil, nil, nil, err
	}
	lines := span.NewLineTable(string(src))

	tokens, lexErr := scanner.Scan(string(src))
	if lexErr != nil {
		err := fmt.Errorf("%s: %w", path, lexErr)
		printError(stdio, err)
		return nil, nil, lines, err
	}

	in := intern.New()
	out := parser.ParseTokens(tokens, in)
	return out.Module, out.Diagnostics, lines, nil
}

func printDiagnostics(stdio mainer.Stdio, path string, lines *span.LineTable, diags []diagLike) {
	for _, d := range diags {
		pos := lines.Resolve(d.span().Start)
		fmt.Fprintf(stdio.Stderr, "%s:%d:%d: %s\n", path, pos.Line, pos.Column, d.message())
	}
}

// diagLike unifies parser.Diagnostic and types.Diagnostic for shared
// reporting, since neither carries a code/message/span in the same
// concrete type.
type diagLike interface {
	span() span.Span
	message() string
}

type parserDiag parser.Diagnostic

func (d parserDiag) span() span.Span  { return d.Span }
func (d parserDiag) message() string { return d.Message }
