package maincmd

import (
	"context"
	"fmt"
	"os"

	"github.com/mna/mainer"

	"github.com/scriptum-lang/scriptum/lang/bytecode"
	"github.com/scriptum-lang/scriptum/lang/intern"
	"github.com/scriptum-lang/scriptum/lang/ir"
	"github.com/scriptum-lang/scriptum/lang/span"
	"github.com/scriptum-lang/scriptum/lang/types"
)

// Build compiles one source file through lex, parse, check, lower and
// optimize, then writes the resulting ".sbc" chunk to -o (or stdout if
// -o was not given).
func (c *Cmd) Build(ctx context.Context, stdio mainer.Stdio, args []string) error {
	if len(args) != 1 {
		err := fmt.Errorf("build: exactly one file must be provided")
		printError(stdio, err)
		return err
	}
	return BuildFile(stdio, args[0], c.Output)
}

func BuildFile(stdio mainer.Stdio, path, output string) error {
	_, _, chunk, err := compile(stdio, path)
	if err != nil {
		return err
	}

	if output == "" {
		if _, err := stdio.Stdout.Write(chunk); err != nil {
			printError(stdio, err)
			return err
		}
		return nil
	}
	if err := os.WriteFile(output, chunk, 0o644); err != nil {
		printError(stdio, err)
		return err
	}
	return nil
}

// compile runs the full source-to-bytecode pipeline for one file, sharing
// its lex/parse/check/lower stages with Run. It returns the interner that
// produced module's Symbols alongside module itself, since a caller that
// wants to look up a function by name (the run command's entry point)
// needs to intern against that same table.
func compile(stdio mainer.Stdio, path string) (*ir.Module, *intern.Interner, []byte, error) {
	astModule, diags, lines, err := parseFile(stdio, path)
	if err != nil {
		return nil, nil, nil, err
	}
	if len(diags) > 0 {
		wrapped := make([]diagLike, len(diags))
		for i, d := range diags {
			wrapped[i] = parserDiag(d)
		}
		printDiagnostics(stdio, path, lines, wrapped)
		return nil, nil, nil, errSomeFileFailed
	}

	checked := types.Check(astModule)
	if len(checked.Diagnostics) > 0 {
		wrapped := make([]diagLike, len(checked.Diagnostics))
		for i, d := range checked.Diagnostics {
			wrapped[i] = typesDiag(d)
		}
		printDiagnostics(stdio, path, lines, wrapped)
		return nil, nil, nil, errSomeFileFailed
	}

	module, lowerErrs := ir.Lower(astModule)
	if len(lowerErrs) > 0 {
		wrapped := make([]diagLike, len(lowerErrs))
		for i, e := range lowerErrs {
			wrapped[i] = lowerDiag(e)
		}
		printDiagnostics(stdio, path, lines, wrapped)
		return nil, nil, nil, errSomeFileFailed
	}

	ir.Optimize(module)
	return module, astModule.Interner, bytecode.Encode(module, astModule.Interner), nil
}

type lowerDiag ir.LowerError

func (d lowerDiag) span() span.Span  { return d.Span }
func (d lowerDiag) message() string { return d.Message }
