package maincmd_test

import (
	"bytes"
	"flag"
	"path/filepath"
	"testing"

	"github.com/mna/mainer"

	"github.com/scriptum-lang/scriptum/internal/filetest"
	"github.com/scriptum-lang/scriptum/internal/maincmd"
)

var testUpdateLexTests = flag.Bool("test.update-lex-tests", false, "If set, replace expected lex test results with actual results.")

func TestLexFiles(t *testing.T) {
	srcDir, resultDir := filepath.Join("testdata", "in"), filepath.Join("testdata", "out")

	for _, fi := range filetest.SourceFiles(t, srcDir, ".scriptum") {
		t.Run(fi.Name(), func(t *testing.T) {
			var buf, ebuf bytes.Buffer
			stdio := mainer.Stdio{Stdout: &buf, Stderr: &ebuf}

			// error is ignored, we just want it reflected in ebuf
			_ = maincmd.LexFiles(stdio, filepath.Join(srcDir, fi.Name()))
			filetest.DiffOutput(t, fi, buf.String(), resultDir, testUpdateLexTests)
			filetest.DiffErrors(t, fi, ebuf.String(), resultDir, testUpdateLexTests)
		})
	}
}
