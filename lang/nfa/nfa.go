// Package nfa builds a Thompson-construction NFA from a regexast.Node.
package nfa

import "github.com/scriptum-lang/scriptum/lang/regexast"

// Transition is a single (matcher, target) edge out of a state.
type Transition struct {
	Set    regexast.CharSet
	Target int
}

// State is one NFA state: a list of epsilon edges plus a list of
// character-consuming transitions.
type State struct {
	Epsilon     []int
	Transitions []Transition
}

// Nfa is a Thompson-construction automaton: states numbered 0..N, a
// distinguished start and accept state.
type Nfa struct {
	States []State
	Start  int
	Accept int
}

func (n *Nfa) newState() int {
	n.States = append(n.States, State{})
	return len(n.States) - 1
}

func (n *Nfa) addEpsilon(from, to int) {
	n.States[from].Epsilon = append(n.States[from].Epsilon, to)
}

func (n *Nfa) addTransition(from int, set regexast.CharSet, to int) {
	n.States[from].Transitions = append(n.States[from].Transitions, Transition{Set: set, Target: to})
}

// fragment is a sub-automaton with its own start/accept, not yet wired into
// the overall accept chain.
type fragment struct {
	start, accept int
}

// Build runs Thompson construction over node, producing a complete NFA.
// It never mutates node.
func Build(node *regexast.Node) *Nfa {
	n := &Nfa{}
	frag := n.buildFragment(node)
	n.Start = frag.start
	n.Accept = frag.accept
	return n
}

func (n *Nfa) buildFragment(node *regexast.Node) fragment {
	switch node.Kind {
	case regexast.KindEmpty:
		s := n.newState()
		a := n.newState()
		n.addEpsilon(s, a)
		return fragment{s, a}

	case regexast.KindCharSet:
		s := n.newState()
		a := n.newState()
		n.addTransition(s, node.Set, a)
		return fragment{s, a}

	case regexast.KindConcat:
		if len(node.Children) == 0 {
			return n.buildFragment(regexast.Empty())
		}
		first := n.buildFragment(node.Children[0])
		prevAccept := first.accept
		start := first.start
		for _, child := range node.Children[1:] {
			f := n.buildFragment(child)
			n.addEpsilon(prevAccept, f.start)
			prevAccept = f.accept
		}
		return fragment{start, prevAccept}

	case regexast.KindAlternate:
		s := n.newState()
		a := n.newState()
		for _, child := range node.Children {
			f := n.buildFragment(child)
			n.addEpsilon(s, f.start)
			n.addEpsilon(f.accept, a)
		}
		return fragment{s, a}

	case regexast.KindRepeat:
		return n.buildRepeat(node)

	default:
		panic("nfa: unknown regexast.Kind")
	}
}

func (n *Nfa) buildRepeat(node *regexast.Node) fragment {
	inner := n.buildFragment(node.Child)
	s := n.newState()
	a := n.newState()
	switch node.Repeat {
	case regexast.ZeroOrMore:
		n.addEpsilon(s, inner.start)
		n.addEpsilon(s, a)
		n.addEpsilon(inner.accept, inner.start)
		n.addEpsilon(inner.accept, a)
	case regexast.OneOrMore:
		n.addEpsilon(s, inner.start)
		n.addEpsilon(inner.accept, inner.start)
		n.addEpsilon(inner.accept, a)
	case regexast.ZeroOrOne:
		n.addEpsilon(s, inner.start)
		n.addEpsilon(s, a)
		n.addEpsilon(inner.accept, a)
	}
	return fragment{s, a}
}
