package value

import "sort"

// Bitset is a set of characters usable as a one-element matcher.
type Bitset struct {
	runes map[rune]bool
}

// Charset builds a Bitset from the characters of spec.
func Charset(spec string) Bitset {
	set := make(map[rune]bool, len(spec))
	for _, r := range spec {
		set[r] = true
	}
	return Bitset{runes: set}
}

// CharsetRange builds a Bitset covering lo through hi inclusive.
func CharsetRange(lo, hi rune) Bitset {
	set := make(map[rune]bool, hi-lo+1)
	for r := lo; r <= hi; r++ {
		set[r] = true
	}
	return Bitset{runes: set}
}

// Union returns a Bitset containing the members of both sets.
func (b Bitset) Union(other Bitset) Bitset {
	set := make(map[rune]bool, len(b.runes)+len(other.runes))
	for r := range b.runes {
		set[r] = true
	}
	for r := range other.runes {
		set[r] = true
	}
	return Bitset{runes: set}
}

func (b Bitset) Has(r rune) bool {
	return b.runes[r]
}

// Members returns the set's characters in sorted order.
func (b Bitset) Members() []rune {
	out := make([]rune, 0, len(b.runes))
	for r := range b.runes {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
