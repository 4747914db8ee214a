package series

import (
	"slices"

	"github.com/roach88/matcha/internal/value"
)

// Binary is a Series over bytes. Elements surface as Int values.
type Binary struct {
	bytes []byte
}

func NewBinary(b []byte) *Binary {
	return &Binary{bytes: slices.Clone(b)}
}

func (b *Binary) Len() int { return len(b.bytes) }

func (b *Binary) At(i int) value.Value { return value.Int(b.bytes[i]) }

func (b *Binary) ElemKind(i int) value.Kind { return value.KindInt }

func (b *Binary) Slice(i, j int) value.Value {
	return value.Binary(slices.Clone(b.bytes[i:j]))
}

func (b *Binary) Value() value.Value {
	return value.Binary(slices.Clone(b.bytes))
}

func (b *Binary) MatchLiteral(i int, v value.Value, caseSensitive bool) (int, bool) {
	switch lit := v.(type) {
	case value.Binary:
		if i+len(lit) > len(b.bytes) {
			return i, false
		}
		for k := range lit {
			if b.bytes[i+k] != lit[k] {
				return i, false
			}
		}
		return i + len(lit), true
	case value.Int:
		return b.MatchOne(i, v, caseSensitive)
	default:
		return i, false
	}
}

func (b *Binary) MatchOne(i int, v value.Value, caseSensitive bool) (int, bool) {
	n, ok := v.(value.Int)
	if !ok || n < 0 || n > 255 || i >= len(b.bytes) {
		return i, false
	}
	if b.bytes[i] == byte(n) {
		return i + 1, true
	}
	return i, false
}

func (b *Binary) MatchBitset(i int, set value.Bitset) (int, bool) {
	if i < len(b.bytes) && set.Has(rune(b.bytes[i])) {
		return i + 1, true
	}
	return i, false
}

func (b *Binary) Insert(i int, v value.Value) (int, error) {
	switch val := v.(type) {
	case value.Binary:
		b.bytes = slices.Insert(b.bytes, i, []byte(val)...)
		return len(val), nil
	case value.Int:
		if val < 0 || val > 255 {
			return 0, errInsertKind("binary", v)
		}
		b.bytes = slices.Insert(b.bytes, i, byte(val))
		return 1, nil
	default:
		return 0, errInsertKind("binary", v)
	}
}

func (b *Binary) Remove(i, j int) {
	b.bytes = slices.Delete(b.bytes, i, j)
}

var _ Series = (*Binary)(nil)
