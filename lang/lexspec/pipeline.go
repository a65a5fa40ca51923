package lexspec

import (
	"fmt"

	"github.com/scriptum-lang/scriptum/lang/automata"
	"github.com/scriptum-lang/scriptum/lang/nfa"
	"github.com/scriptum-lang/scriptum/lang/regexast"
)

// BuiltToken is a token definition with its minimized DFA and build
// statistics attached, ready for the scanner to run.
type BuiltToken struct {
	Name     string
	Pattern  string
	Discard  bool
	Priority int
	Index    int // declaration index, used as the final scanner tie-break
	Dfa      *automata.MinDfa
	Stats    BuildStats
}

// BuildStats records NFA/DFA sizes reached while building one token,
// useful for diagnostics and tests that assert the pipeline did real work.
type BuildStats struct {
	NfaStates int
	DfaStates int
	MinStates int
}

// PipelineError reports a failure while compiling one token definition.
type PipelineError struct {
	TokenName string
	Cause     error
}

func (e *PipelineError) Error() string {
	return fmt.Sprintf("lexspec: building token %q: %s", e.TokenName, e.Cause)
}

func (e *PipelineError) Unwrap() error { return e.Cause }

// Build compiles every entry of defs into a BuiltToken, wiring
// parse-regex -> build-NFA -> subset-construction -> minimize, in
// declaration order so each definition's index is its position in defs.
func Build(defs []TokenDefinition) ([]BuiltToken, error) {
	built := make([]BuiltToken, 0, len(defs))
	for i, def := range defs {
		node, err := regexast.Parse(def.Pattern)
		if err != nil {
			return nil, &PipelineError{TokenName: def.Name, Cause: err}
		}
		machine := nfa.Build(node)
		dfa := automata.Subset(machine, i, def.Priority)
		min := automata.Minimize(dfa)
		built = append(built, BuiltToken{
			Name:     def.Name,
			Pattern:  def.Pattern,
			Discard:  def.Discard,
			Priority: def.Priority,
			Index:    i,
			Dfa:      min,
			Stats: BuildStats{
				NfaStates: len(machine.States),
				DfaStates: len(dfa.Transitions),
				MinStates: len(min.Transitions),
			},
		})
	}
	return built, nil
}

// BuiltCatalog is the result of compiling Catalog once at package-init
// time; every stage downstream of the lexer generator shares these tables
// as build-time artifacts, matching the "generated DFAs are build-time
// artifacts embedded as immutable tables" design note.
var BuiltCatalog = mustBuild(Catalog)

func mustBuild(defs []TokenDefinition) []BuiltToken {
	built, err := Build(defs)
	if err != nil {
		panic(err)
	}
	return built
}
