package maincmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/mna/mainer"

	"github.com/scriptum-lang/scriptum/lang/bytecode"
	"github.com/scriptum-lang/scriptum/lang/intern"
	"github.com/scriptum-lang/scriptum/lang/ir"
	"github.com/scriptum-lang/scriptum/lang/machine"
)

const defaultEntry = "init"

// Run executes path: a ".sbc" chunk is decoded and run directly, anything
// else runs the full source-to-bytecode pipeline first.
func (c *Cmd) Run(ctx context.Context, stdio mainer.Stdio, args []string) error {
	if len(args) != 1 {
		err := fmt.Errorf("run: exactly one file must be provided")
		printError(stdio, err)
		return err
	}
	entry := c.Entry
	if entry == "" {
		entry = defaultEntry
	}
	return RunFile(stdio, args[0], entry)
}

func RunFile(stdio mainer.Stdio, path, entry string) error {
	var module *ir.Module
	var in *intern.Interner

	if strings.HasSuffix(path, ".sbc") {
		data, err := os.ReadFile(path)
		if err != nil {
			printError(stdio, err)
			return err
		}
		m, decodedInterner, err := bytecode.Decode(data)
		if err != nil {
			printError(stdio, fmt.Errorf("%s: %w", path, err))
			return err
		}
		module, in = m, decodedInterner
	} else {
		m, compiledInterner, _, err := compile(stdio, path)
		if err != nil {
			return err
		}
		module, in = m, compiledInterner
	}

	vm := machine.New(module)
	result, err := vm.Run(in.Intern(entry), nil)
	if err != nil {
		printError(stdio, fmt.Errorf("%s: %w", path, err))
		return err
	}
	fmt.Fprintf(stdio.Stdout, "%g\n", result.Value)
	return nil
}
