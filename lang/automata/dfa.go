package automata

import "github.com/scriptum-lang/scriptum/lang/charclass"

// Run walks minDfa from state 0 against the code points of data starting
// at offset, tracking the furthest rune index into data at which an
// accepting state was reached. It returns that index and ok=true if any
// accepting state was reached, else ok=false.
func Run(d *MinDfa, data []rune, offset int) (end int, ok bool) {
	state := d.Start
	lastMatch := -1
	pos := offset
	for {
		if _, isAccept := d.Accept[state]; isAccept {
			lastMatch = pos
		}
		if pos >= len(data) {
			break
		}
		cls := charclass.Classify(data[pos])
		next := d.Transitions[state][int(cls)]
		state = next
		pos++
	}
	if lastMatch < 0 {
		return 0, false
	}
	return lastMatch, true
}
