// Package automata implements subset construction, Hopcroft-style DFA
// minimization, and the runtime DFA-walking function the scanner uses.
package automata

import (
	"sort"
	"strconv"
	"strings"

	"github.com/scriptum-lang/scriptum/lang/charclass"
	"github.com/scriptum-lang/scriptum/lang/nfa"
	"github.com/scriptum-lang/scriptum/lang/regexast"
)

// Accepting labels an accepting DFA state with which token it matches and
// at what declared priority, for tie-breaking among simultaneously
// matching automata.
type Accepting struct {
	TokenIndex int
	Priority   int
}

// Dfa is a dense, total transition table indexed by (state, class).
type Dfa struct {
	ClassCount  int
	Transitions [][]int // Transitions[state][class] -> state; -1 means absent prior to sink materialization
	Accept      map[int]Accepting
	Start       int
}

func epsilonClosure(n *nfa.Nfa, states map[int]bool) map[int]bool {
	closure := make(map[int]bool, len(states))
	stack := make([]int, 0, len(states))
	for s := range states {
		closure[s] = true
		stack = append(stack, s)
	}
	for len(stack) > 0 {
		s := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, eps := range n.States[s].Epsilon {
			if !closure[eps] {
				closure[eps] = true
				stack = append(stack, eps)
			}
		}
	}
	return closure
}

func stateSetKey(set map[int]bool) string {
	ids := make([]int, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	var sb strings.Builder
	for i, id := range ids {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(strconv.Itoa(id))
	}
	return sb.String()
}

// every ASCII code point the classifier recognizes as something other than
// Other, plus one representative "other" code point, used to probe which
// classes a CharSet's ranges actually match.
var representativeCodePoints = buildRepresentatives()

func buildRepresentatives() map[charclass.Class]rune {
	reps := make(map[charclass.Class]rune, charclass.Count)
	for cp := rune(0); cp <= 0x7F; cp++ {
		cls := charclass.Classify(cp)
		if _, ok := reps[cls]; !ok {
			reps[cls] = cp
		}
	}
	if _, ok := reps[charclass.Other]; !ok {
		reps[charclass.Other] = 0x80
	}
	return reps
}

// Subset runs subset construction on n, tagging the resulting DFA's accept
// states with tokenIndex/priority. A sink state is materialized so every
// (state, class) entry is total.
func Subset(n *nfa.Nfa, tokenIndex, priority int) *Dfa {
	classCount := int(charclass.Count)
	start := epsilonClosure(n, map[int]bool{n.Start: true})

	order := []map[int]bool{start}
	indexOf := map[string]int{stateSetKey(start): 0}

	var transitions [][]int
	var accept = map[int]Accepting{}

	for i := 0; i < len(order); i++ {
		set := order[i]
		row := make([]int, classCount)
		for c := 0; c < classCount; c++ {
			row[c] = -1
		}
		transitions = append(transitions, row)

		if set[n.Accept] {
			accept[i] = Accepting{TokenIndex: tokenIndex, Priority: priority}
		}

		for cls := charclass.Class(0); int(cls) < classCount; cls++ {
			rep := representativeCodePoints[cls]
			target := map[int]bool{}
			for s := range set {
				for _, tr := range n.States[s].Transitions {
					if setMatchesClass(tr.Set, cls, rep) {
						target[tr.Target] = true
					}
				}
			}
			if len(target) == 0 {
				continue
			}
			closure := epsilonClosure(n, target)
			key := stateSetKey(closure)
			idx, ok := indexOf[key]
			if !ok {
				idx = len(order)
				indexOf[key] = idx
				order = append(order, closure)
			}
			transitions[i][int(cls)] = idx
		}
	}

	// materialize sink state so the table is dense/total.
	sink := len(order)
	sinkRow := make([]int, classCount)
	for c := range sinkRow {
		sinkRow[c] = sink
	}
	transitions = append(transitions, sinkRow)
	for i, row := range transitions[:sink] {
		for c, t := range row {
			if t == -1 {
				transitions[i][c] = sink
			}
		}
	}

	return &Dfa{
		ClassCount:  classCount,
		Transitions: transitions,
		Accept:      accept,
		Start:       start2int(),
	}
}

// start2int always returns 0: subset construction always seeds order[0]
// with the start set, so the pre-minimization start is always state 0.
func start2int() int { return 0 }

// setMatchesClass reports whether set matches the representative code
// point rep of class cls. Only rep is tested: a set that holds some members
// of a class but not its representative (e.g. [eE] within the LOWER class,
// whose representative is 'a') does not match that class.
func setMatchesClass(set regexast.CharSet, cls charclass.Class, rep rune) bool {
	return set.Contains(rep)
}
