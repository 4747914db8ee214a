package value

import "golang.org/x/text/cases"

// FoldEqual reports whether two strings are equal under Unicode case
// folding. A fresh Caser is built per call: cases.Caser carries internal
// state and is not safe to share.
func FoldEqual(a, b string) bool {
	if a == b {
		return true
	}
	return cases.Fold().String(a) == cases.Fold().String(b)
}

// FoldEqualRune reports case-folded equality of two characters.
func FoldEqualRune(a, b rune) bool {
	if a == b {
		return true
	}
	return FoldEqual(string(a), string(b))
}

// Equal reports deep equality of two values. When caseSensitive is false,
// Text, Char, Word, SetWord, and Tag compare under case folding; all
// other kinds compare exactly.
func Equal(a, b Value, caseSensitive bool) bool {
	if a.Kind() != b.Kind() {
		return false
	}
	switch av := a.(type) {
	case Null:
		return true
	case Logic:
		return av == b.(Logic)
	case Int:
		return av == b.(Int)
	case Char:
		if caseSensitive {
			return av == b.(Char)
		}
		return FoldEqualRune(rune(av), rune(b.(Char)))
	case Text:
		if caseSensitive {
			return av == b.(Text)
		}
		return FoldEqual(string(av), string(b.(Text)))
	case Binary:
		bv := b.(Binary)
		if len(av) != len(bv) {
			return false
		}
		for i := range av {
			if av[i] != bv[i] {
				return false
			}
		}
		return true
	case Word:
		if caseSensitive {
			return av == b.(Word)
		}
		return FoldEqual(string(av), string(b.(Word)))
	case SetWord:
		if caseSensitive {
			return av == b.(SetWord)
		}
		return FoldEqual(string(av), string(b.(SetWord)))
	case Tag:
		if caseSensitive {
			return av == b.(Tag)
		}
		return FoldEqual(string(av), string(b.(Tag)))
	case Block:
		bv := b.(Block)
		if len(av) != len(bv) {
			return false
		}
		for i := range av {
			if !Equal(av[i], bv[i], caseSensitive) {
				return false
			}
		}
		return true
	case Quoted:
		return Equal(av.V, b.(Quoted).V, caseSensitive)
	case Datatype:
		return av == b.(Datatype)
	case Typeset:
		return av.Name == b.(Typeset).Name
	case Position:
		bv := b.(Position)
		return av.Store == bv.Store && av.Index == bv.Index
	case Object:
		bv := b.(Object)
		if len(av) != len(bv) {
			return false
		}
		for i := range av {
			if av[i].Name != bv[i].Name || !Equal(av[i].Val, bv[i].Val, caseSensitive) {
				return false
			}
		}
		return true
	default:
		// Group, GetGroup, Bitset, Native: identity has no useful
		// structural definition; never equal.
		return false
	}
}
