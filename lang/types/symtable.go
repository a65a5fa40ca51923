package types

import (
	"github.com/dolthub/swiss"

	"github.com/scriptum-lang/scriptum/lang/intern"
	"github.com/scriptum-lang/scriptum/lang/span"
)

// symbolInfo is what the checker tracks per declared binding.
type symbolInfo struct {
	ty      *Type
	mutable bool
	span    span.Span
}

// symbolTable is a stack of lexical scopes, innermost last, each mapping a
// symbol to its declared type and mutability.
type symbolTable struct {
	scopes []*swiss.Map[intern.Symbol, symbolInfo]
}

func newSymbolTable() *symbolTable {
	return &symbolTable{scopes: []*swiss.Map[intern.Symbol, symbolInfo]{swiss.NewMap[intern.Symbol, symbolInfo](8)}}
}

func (t *symbolTable) enterScope() {
	t.scopes = append(t.scopes, swiss.NewMap[intern.Symbol, symbolInfo](8))
}

func (t *symbolTable) exitScope() {
	t.scopes = t.scopes[:len(t.scopes)-1]
}

func (t *symbolTable) insert(sym intern.Symbol, info symbolInfo) {
	t.scopes[len(t.scopes)-1].Put(sym, info)
}

func (t *symbolTable) get(sym intern.Symbol) (symbolInfo, bool) {
	for i := len(t.scopes) - 1; i >= 0; i-- {
		if info, ok := t.scopes[i].Get(sym); ok {
			return info, true
		}
	}
	return symbolInfo{}, false
}

func (t *symbolTable) containsInCurrent(sym intern.Symbol) bool {
	_, ok := t.scopes[len(t.scopes)-1].Get(sym)
	return ok
}
