// Package intern provides a per-module string interner producing dense
// 32-bit Symbol ids.
package intern

import "github.com/dolthub/swiss"

// Symbol is an interned string, a small opaque integer. Equal strings
// intern to equal symbols; symbols are only meaningful relative to the
// Interner that issued them.
type Symbol uint32

// Interner owns the backing storage for every string it has interned, so
// resolved strings outlive the symbols referencing them. It preserves
// insertion order and is not safe for concurrent use by multiple
// goroutines (each module owns its own interner, per the single-threaded
// per-module model).
type Interner struct {
	byString *swiss.Map[string, Symbol]
	strings  []string
}

// New creates an empty interner.
func New() *Interner {
	return &Interner{
		byString: swiss.NewMap[string, Symbol](64),
	}
}

// Intern returns the Symbol for s, interning it if this is the first
// occurrence. Re-interning an equal string always returns the original
// symbol.
func (in *Interner) Intern(s string) Symbol {
	if sym, ok := in.byString.Get(s); ok {
		return sym
	}
	sym := Symbol(len(in.strings))
	in.strings = append(in.strings, s)
	in.byString.Put(s, sym)
	return sym
}

// Resolve returns the string associated with sym. It panics if sym was
// never issued by this interner, since that indicates a programming error
// (symbols are not meaningful across interners).
func (in *Interner) Resolve(sym Symbol) string {
	return in.strings[sym]
}

// Len returns the number of distinct strings interned so far.
func (in *Interner) Len() int {
	return len(in.strings)
}
