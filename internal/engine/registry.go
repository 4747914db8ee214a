package engine

import "github.com/roach88/matcha/internal/value"

// DefaultRegistry returns a fresh copy of the built-in combinator
// catalog. Callers may mutate the returned registry freely; sessions
// never share it.
func DefaultRegistry() *Registry {
	r := NewRegistry()

	// Structural
	r.Set("opt", optComb)
	r.Set("not", notComb)
	r.Set("ahead", aheadComb)
	r.Set("further", furtherComb)

	// Iteration
	r.Set("while", whileComb)
	r.Set("some", someComb)
	r.Set("tally", tallyComb)
	r.Set("repeat", repeatComb)

	// Seeking
	r.Set("to", toComb)
	r.Set("thru", thruComb)
	r.Set("seek", seekComb)
	r.Set("between", betweenComb)
	r.Set("across", acrossComb)
	r.Set("into", intoComb)

	// Mutating
	r.Set("change", changeComb)
	r.Set("remove", removeComb)
	r.Set("insert", insertComb)

	// Accumulation
	r.Set("collect", collectComb)
	r.Set("keep", keepComb)
	r.Set("gather", gatherComb)
	r.Set("emit", emitComb)

	// Leaves and escapes
	r.Set("skip", skipComb)
	r.Set("elide", elideComb)
	r.Set("comment", commentComb)
	r.Set("return", returnComb)

	// Kind dispatch for literal rule elements. Blocks, nulls, and
	// natives are bound by the compiler directly.
	r.SetKind(value.KindText, literalComb("text!"))
	r.SetKind(value.KindChar, literalComb("char!"))
	r.SetKind(value.KindBinary, literalComb("binary!"))
	r.SetKind(value.KindBitset, bitsetComb)
	r.SetKind(value.KindQuoted, quotedComb)
	r.SetKind(value.KindDatatype, datatypeComb)
	r.SetKind(value.KindTypeset, typesetComb)
	r.SetKind(value.KindLogic, logicComb)
	r.SetKind(value.KindInt, intComb)
	r.SetKind(value.KindTag, tagComb)
	r.SetKind(value.KindGroup, groupComb)
	r.SetKind(value.KindSetWord, setWordComb)

	return r
}
