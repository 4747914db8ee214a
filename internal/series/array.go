package series

import (
	"fmt"
	"slices"

	"github.com/roach88/matcha/internal/value"
)

// Array is a Series over an array of values.
type Array struct {
	elems []value.Value
}

// NewArray builds an Array over a copy of block's elements.
func NewArray(block value.Block) *Array {
	return &Array{elems: slices.Clone([]value.Value(block))}
}

func (a *Array) Len() int { return len(a.elems) }

func (a *Array) At(i int) value.Value { return a.elems[i] }

func (a *Array) ElemKind(i int) value.Kind { return a.elems[i].Kind() }

func (a *Array) Slice(i, j int) value.Value {
	return value.Block(slices.Clone(a.elems[i:j]))
}

func (a *Array) Value() value.Value {
	return value.Block(slices.Clone(a.elems))
}

// MatchLiteral for arrays is element equality: every literal kind,
// including text, matches exactly one element.
func (a *Array) MatchLiteral(i int, v value.Value, caseSensitive bool) (int, bool) {
	return a.MatchOne(i, v, caseSensitive)
}

func (a *Array) MatchOne(i int, v value.Value, caseSensitive bool) (int, bool) {
	if i >= len(a.elems) {
		return i, false
	}
	if value.Equal(a.elems[i], v, caseSensitive) {
		return i + 1, true
	}
	return i, false
}

func (a *Array) MatchBitset(i int, set value.Bitset) (int, bool) {
	if i >= len(a.elems) {
		return i, false
	}
	if c, ok := a.elems[i].(value.Char); ok && set.Has(rune(c)) {
		return i + 1, true
	}
	return i, false
}

func (a *Array) Insert(i int, v value.Value) (int, error) {
	if block, ok := v.(value.Block); ok {
		a.elems = slices.Insert(a.elems, i, []value.Value(block)...)
		return len(block), nil
	}
	a.elems = slices.Insert(a.elems, i, v)
	return 1, nil
}

func (a *Array) Remove(i, j int) {
	a.elems = slices.Delete(a.elems, i, j)
}

var _ Series = (*Array)(nil)

// errInsertKind reports an insertion value the series kind cannot hold.
func errInsertKind(series string, v value.Value) error {
	return fmt.Errorf("cannot insert %s into %s input", v.Kind(), series)
}
