// Package types is Scriptum's static type lattice and two-pass checker,
// following the structure of original_source/crates/scriptum-types.
package types

import (
	"fmt"
	"strconv"
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/scriptum-lang/scriptum/lang/intern"
)

// Kind discriminates the variants of Type.
type Kind int

const (
	Numerus Kind = iota
	Textus
	Booleanum
	Vacuum
	Nullum
	Indefinitum
	Quodlibet
	Array
	Object
	Function
	Optional
)

// Type is Scriptum's static type value. Array/Optional carry Elem,
// Object carries Fields, Function carries Params/Ret; every other kind is
// a bare tag.
type Type struct {
	Kind   Kind
	Elem   *Type
	Fields *orderedmap.OrderedMap[intern.Symbol, *Type]
	Params []*Type
	Ret    *Type
}

func simple(k Kind) *Type { return &Type{Kind: k} }

// Primitive singletons. Shared since bare-tag types carry no payload.
var (
	TNumerus     = simple(Numerus)
	TTextus      = simple(Textus)
	TBooleanum   = simple(Booleanum)
	TVacuum      = simple(Vacuum)
	TNullum      = simple(Nullum)
	TIndefinitum = simple(Indefinitum)
	TQuodlibet   = simple(Quodlibet)
)

// NewArray builds an Array(elem) type.
func NewArray(elem *Type) *Type { return &Type{Kind: Array, Elem: elem} }

// NewObject builds an Object type from an ordered field map.
func NewObject(fields *orderedmap.OrderedMap[intern.Symbol, *Type]) *Type {
	return &Type{Kind: Object, Fields: fields}
}

// NewFunction builds a Function type.
func NewFunction(params []*Type, ret *Type) *Type {
	return &Type{Kind: Function, Params: params, Ret: ret}
}

// NewOptional builds an Optional(elem) type.
func NewOptional(elem *Type) *Type { return &Type{Kind: Optional, Elem: elem} }

// Equal reports whether t and other denote the same type, structurally.
func (t *Type) Equal(other *Type) bool {
	if t == nil || other == nil {
		return t == other
	}
	if t.Kind != other.Kind {
		return false
	}
	switch t.Kind {
	case Array, Optional:
		return t.Elem.Equal(other.Elem)
	case Object:
		if t.Fields.Len() != other.Fields.Len() {
			return false
		}
		for pair := t.Fields.Oldest(); pair != nil; pair = pair.Next() {
			ov, ok := other.Fields.Get(pair.Key)
			if !ok || !pair.Value.Equal(ov) {
				return false
			}
		}
		return true
	case Function:
		if len(t.Params) != len(other.Params) {
			return false
		}
		for i, p := range t.Params {
			if !p.Equal(other.Params[i]) {
				return false
			}
		}
		return t.Ret.Equal(other.Ret)
	default:
		return true
	}
}

// Name renders t for diagnostics, resolving field/parameter symbols through
// in. Arrays render as `array<T>`; every other kind renders in Scriptum
// type syntax.
func (t *Type) Name(in *intern.Interner) string {
	switch t.Kind {
	case Numerus:
		return "numerus"
	case Textus:
		return "textus"
	case Booleanum:
		return "booleanum"
	case Vacuum:
		return "vacuum"
	case Nullum:
		return "nullum"
	case Indefinitum:
		return "indefinitum"
	case Quodlibet:
		return "quodlibet"
	case Array:
		return fmt.Sprintf("array<%s>", t.Elem.Name(in))
	case Object:
		var pieces []string
		for pair := t.Fields.Oldest(); pair != nil; pair = pair.Next() {
			pieces = append(pieces, fmt.Sprintf("%s: %s", in.Resolve(pair.Key), pair.Value.Name(in)))
		}
		return "{" + strings.Join(pieces, ", ") + "}"
	case Function:
		parts := make([]string, len(t.Params))
		for i, p := range t.Params {
			parts[i] = p.Name(in)
		}
		return fmt.Sprintf("functio(%s) -> %s", strings.Join(parts, ", "), t.Ret.Name(in))
	case Optional:
		return t.Elem.Name(in) + "?"
	default:
		return "?"
	}
}

// tupleFieldName renders the positional field name for tuple-as-object
// desugaring ("0", "1", ...), matching the original's Symbol::from_u32 index
// encoding.
func tupleFieldName(idx int) string { return strconv.Itoa(idx) }

// IsAssignable reports whether a value of type found may be used where
// expected is required. Quodlibet absorbs in both directions; Array is
// covariant in its element; Object is width-subtyping (expected's fields
// must all be present and compatible in found, extra fields in found are
// ignored); Function is covariant in its return type and requires equal
// arity with invariant parameters (each pair assignable both ways);
// Optional absorbs Nullum and
// otherwise delegates to its element.
func IsAssignable(expected, found *Type) bool {
	if expected.Kind == Quodlibet || found.Kind == Quodlibet {
		return true
	}
	switch {
	case expected.Kind == Array && found.Kind == Array:
		return IsAssignable(expected.Elem, found.Elem)
	case expected.Kind == Object && found.Kind == Object:
		for pair := expected.Fields.Oldest(); pair != nil; pair = pair.Next() {
			fv, ok := found.Fields.Get(pair.Key)
			if !ok || !IsAssignable(pair.Value, fv) {
				return false
			}
		}
		return true
	case expected.Kind == Function && found.Kind == Function:
		if len(expected.Params) != len(found.Params) {
			return false
		}
		for i, ep := range expected.Params {
			if !IsAssignable(ep, found.Params[i]) || !IsAssignable(found.Params[i], ep) {
				return false
			}
		}
		return IsAssignable(expected.Ret, found.Ret)
	case expected.Kind == Optional && found.Kind == Optional:
		return IsAssignable(expected.Elem, found.Elem)
	case expected.Kind == Optional:
		return IsAssignable(expected.Elem, found) || found.Kind == Nullum
	case found.Kind == Optional:
		return IsAssignable(expected, found.Elem) || expected.Kind == Nullum
	case expected.Kind == found.Kind:
		return true
	default:
		return false
	}
}
