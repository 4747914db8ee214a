// Package series provides the engine's view of ordered input: arrays of
// values, text, and byte sequences behind one capability interface.
//
// A position is a plain index into a Series. Combinators hold positions,
// not sub-slices, so in-place mutation (change/remove/insert) is visible
// through every position into the same storage. A position held across a
// mutation of earlier storage is invalidated; guarding against that is
// the rule author's responsibility.
package series

import (
	"fmt"

	"github.com/roach88/matcha/internal/value"
)

// Series is the single three-way dispatch point for input kinds. Leaf
// combinators branch on these capabilities instead of switching on the
// input kind themselves.
type Series interface {
	// Len returns the element count (values, characters, or bytes).
	Len() int

	// At returns the element at i as a value: the array element, a Char,
	// or an Int byte.
	At(i int) value.Value

	// ElemKind returns the kind of the element at i, for datatype and
	// typeset matching.
	ElemKind(i int) value.Kind

	// Slice returns a copy of [i, j) as a value of the series' own kind.
	Slice(i, j int) value.Value

	// Value returns the current contents as a value of the series' kind.
	Value() value.Value

	// MatchLiteral matches a literal rule element at i: a substring for
	// text input, a byte run for binary input, one equal element for
	// array input. Returns the position after the match.
	MatchLiteral(i int, v value.Value, caseSensitive bool) (int, bool)

	// MatchOne matches exactly one element at i against v (quoted-value
	// semantics: no substring interpretation).
	MatchOne(i int, v value.Value, caseSensitive bool) (int, bool)

	// MatchBitset matches one element at i against a character set.
	MatchBitset(i int, set value.Bitset) (int, bool)

	// Insert splices v into the storage at i and returns the number of
	// elements inserted. Series-kinded values splice element-wise.
	Insert(i int, v value.Value) (int, error)

	// Remove deletes [i, j) from the storage.
	Remove(i, j int)
}

// FromValue builds a Series over a copy of v's contents. Only
// series-kinded values (block, text, binary) have a Series view.
func FromValue(v value.Value) (Series, error) {
	switch val := v.(type) {
	case value.Block:
		return NewArray(val), nil
	case value.Text:
		return NewText(string(val)), nil
	case value.Binary:
		return NewBinary(val), nil
	default:
		return nil, fmt.Errorf("input must be a block, text, or binary value, got %s", v.Kind())
	}
}
