package maincmd

import (
	"context"
	"fmt"
	"os"

	"github.com/mna/mainer"

	"github.com/scriptum-lang/scriptum/lang/scanner"
	"github.com/scriptum-lang/scriptum/lang/span"
)

// Lex runs the scanner phase over each file and prints the resulting token
// stream, one token per line.
func (c *Cmd) Lex(ctx context.Context, stdio mainer.Stdio, args []string) error {
	return LexFiles(stdio, args...)
}

func LexFiles(stdio mainer.Stdio, files ...string) error {
	var failed bool
	for _, path := range files {
		if err := lexFile(stdio, path); err != nil {
			failed = true
		}
	}
	if failed {
		return errSomeFileFailed
	}
	return nil
}

func lexFile(stdio mainer.Stdio, path string) error {
	src, err := os.ReadFile(path)
	if err != nil {
		printError(stdio, err)
		return err
	}

	tokens, lexErr := scanner.Scan(string(src))
	lines := span.NewLineTable(string(src))
	for _, tok := range tokens {
		pos := lines.Resolve(tok.Span.Start)
		fmt.Fprintf(stdio.Stdout, "%s:%d:%d: %s %q\n", path, pos.Line, pos.Column, tok.Kind, tok.Lexeme)
	}
	if lexErr != nil {
		printError(stdio, fmt.Errorf("%s: %w", path, lexErr))
		return lexErr
	}
	return nil
}
