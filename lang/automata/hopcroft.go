package automata

import "fmt"

// MinDfa is a minimized DFA: same shape as Dfa but with canonically
// renumbered states and a guaranteed start of 0.
type MinDfa struct {
	ClassCount  int
	Transitions [][]int
	Accept      map[int]Accepting
	Start       int
}

// Minimize performs partition-refinement minimization on d. States are
// first partitioned by their Accepting label (two non-accepting states
// group together; accepting states group by equal Accepting value), then
// iteratively split whenever two members of the same block disagree on
// the block id of a class's target, until a fixed point. The process is
// deterministic and produces isomorphism-canonical DFAs. The resulting
// start state is always 0, regardless of which pre-minimization state the
// start block ends up numbered as.
func Minimize(d *Dfa) *MinDfa {
	n := len(d.Transitions)
	blockOf := make([]int, n)
	blockKey := make(map[string]int)
	for s := 0; s < n; s++ {
		key := blockSignature(d, s)
		id, ok := blockKey[key]
		if !ok {
			id = len(blockKey)
			blockKey[key] = id
		}
		blockOf[s] = id
	}

	for {
		changed := false
		newBlockKey := make(map[string]int)
		newBlockOf := make([]int, n)
		for s := 0; s < n; s++ {
			sig := fmt.Sprintf("%d|", blockOf[s])
			for c := 0; c < d.ClassCount; c++ {
				sig += fmt.Sprintf("%d,", blockOf[d.Transitions[s][c]])
			}
			id, ok := newBlockKey[sig]
			if !ok {
				id = len(newBlockKey)
				newBlockKey[sig] = id
			}
			newBlockOf[s] = id
		}
		if len(newBlockKey) != len(blockKey) {
			changed = true
		} else {
			for s := 0; s < n; s++ {
				if newBlockOf[s] != blockOf[s] {
					changed = true
					break
				}
			}
		}
		blockOf = newBlockOf
		blockKey = newBlockKey
		if !changed {
			break
		}
	}

	numBlocks := len(blockKey)
	representative := make([]int, numBlocks)
	seen := make([]bool, numBlocks)
	for s := 0; s < n; s++ {
		b := blockOf[s]
		if !seen[b] {
			seen[b] = true
			representative[b] = s
		}
	}

	// Renumber blocks so the start block is always 0: perm[oldBlockId] =
	// newBlockId. The spec requires start == 0 after minimization, which
	// the original Rust hopcroft.rs leaves incidental; this permutation
	// enforces it explicitly.
	startBlock := blockOf[d.Start]
	perm := make([]int, numBlocks)
	next := 1
	for b := 0; b < numBlocks; b++ {
		switch {
		case b == startBlock:
			perm[b] = 0
		default:
			perm[b] = next
			next++
		}
	}

	transitions := make([][]int, numBlocks)
	accept := make(map[int]Accepting, len(d.Accept))
	for oldB := 0; oldB < numBlocks; oldB++ {
		rep := representative[oldB]
		row := make([]int, d.ClassCount)
		for c := 0; c < d.ClassCount; c++ {
			row[c] = perm[blockOf[d.Transitions[rep][c]]]
		}
		transitions[perm[oldB]] = row
		if acc, ok := d.Accept[rep]; ok {
			accept[perm[oldB]] = acc
		}
	}

	return &MinDfa{
		ClassCount:  d.ClassCount,
		Transitions: transitions,
		Accept:      accept,
		Start:       0,
	}
}

func blockSignature(d *Dfa, s int) string {
	if acc, ok := d.Accept[s]; ok {
		return fmt.Sprintf("accept:%d:%d", acc.TokenIndex, acc.Priority)
	}
	return "non-accepting"
}
