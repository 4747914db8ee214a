package series

import (
	"slices"

	"github.com/roach88/matcha/internal/value"
)

// Text is a Series over characters. Storage is a rune slice so positions
// count characters, not bytes, and in-place mutation stays cheap to
// reason about.
type Text struct {
	runes []rune
}

func NewText(s string) *Text {
	return &Text{runes: []rune(s)}
}

func (t *Text) Len() int { return len(t.runes) }

func (t *Text) At(i int) value.Value { return value.Char(t.runes[i]) }

func (t *Text) ElemKind(i int) value.Kind { return value.KindChar }

func (t *Text) Slice(i, j int) value.Value {
	return value.Text(string(t.runes[i:j]))
}

func (t *Text) Value() value.Value {
	return value.Text(string(t.runes))
}

func (t *Text) MatchLiteral(i int, v value.Value, caseSensitive bool) (int, bool) {
	switch lit := v.(type) {
	case value.Text:
		want := []rune(string(lit))
		if i+len(want) > len(t.runes) {
			return i, false
		}
		for k, r := range want {
			if !runeEqual(t.runes[i+k], r, caseSensitive) {
				return i, false
			}
		}
		return i + len(want), true
	case value.Char:
		if i < len(t.runes) && runeEqual(t.runes[i], rune(lit), caseSensitive) {
			return i + 1, true
		}
		return i, false
	default:
		return i, false
	}
}

func (t *Text) MatchOne(i int, v value.Value, caseSensitive bool) (int, bool) {
	c, ok := v.(value.Char)
	if !ok || i >= len(t.runes) {
		return i, false
	}
	if runeEqual(t.runes[i], rune(c), caseSensitive) {
		return i + 1, true
	}
	return i, false
}

func (t *Text) MatchBitset(i int, set value.Bitset) (int, bool) {
	if i < len(t.runes) && set.Has(t.runes[i]) {
		return i + 1, true
	}
	return i, false
}

func (t *Text) Insert(i int, v value.Value) (int, error) {
	switch val := v.(type) {
	case value.Text:
		ins := []rune(string(val))
		t.runes = slices.Insert(t.runes, i, ins...)
		return len(ins), nil
	case value.Char:
		t.runes = slices.Insert(t.runes, i, rune(val))
		return 1, nil
	default:
		return 0, errInsertKind("text", v)
	}
}

func (t *Text) Remove(i, j int) {
	t.runes = slices.Delete(t.runes, i, j)
}

var _ Series = (*Text)(nil)

func runeEqual(a, b rune, caseSensitive bool) bool {
	if caseSensitive {
		return a == b
	}
	return value.FoldEqualRune(a, b)
}
