package engine

import "github.com/roach88/matcha/internal/value"

// Leaf combinators: literal and typed matchers dispatched on the kind of
// the rule element itself, plus skip, comment, elide, and the tag
// pseudo-keywords.
//
// Matchers synthesize what they matched: literals their literal value,
// typed scans (datatype, typeset, bitset) and skip the matched element.
// That is what makes [some integer!] yield the last integer matched and
// keep "c" keep the text. Wrap a match in elide to silence it.

// identityComb backs null rule elements: always succeeds, consumes
// nothing, contributes nothing.
var identityComb = newCombinator("null", "match without consuming input", nil,
	func(st *State, in Input, args []Arg) (Result, int, error) {
		return Invisible(), in.At, nil
	})

func literalComb(kindName string) *Combinator {
	return newCombinator(kindName, "match the literal against the input", nil,
		func(st *State, in Input, args []Arg) (Result, int, error) {
			next, ok := in.S.MatchLiteral(in.At, args[0].Lit, st.CaseSensitive)
			if !ok {
				return Failure(), in.At, nil
			}
			return Synthesized(args[0].Lit), next, nil
		})
}

var quotedComb = newCombinator("quoted!", "match one element exactly equal to the quoted value", nil,
	func(st *State, in Input, args []Arg) (Result, int, error) {
		q := args[0].Lit.(value.Quoted)
		next, ok := in.S.MatchOne(in.At, q.V, st.CaseSensitive)
		if !ok {
			return Failure(), in.At, nil
		}
		return Synthesized(q.V), next, nil
	})

var bitsetComb = newCombinator("bitset!", "match one element in the character set", nil,
	func(st *State, in Input, args []Arg) (Result, int, error) {
		set := args[0].Lit.(value.Bitset)
		next, ok := in.S.MatchBitset(in.At, set)
		if !ok {
			return Failure(), in.At, nil
		}
		return Synthesized(in.S.At(in.At)), next, nil
	})

var datatypeComb = newCombinator("datatype!", "match one element of the datatype", nil,
	func(st *State, in Input, args []Arg) (Result, int, error) {
		dt := args[0].Lit.(value.Datatype)
		if in.AtEnd() || in.S.ElemKind(in.At) != value.Kind(dt) {
			return Failure(), in.At, nil
		}
		return Synthesized(in.S.At(in.At)), in.At + 1, nil
	})

var typesetComb = newCombinator("typeset!", "match one element whose datatype is in the set", nil,
	func(st *State, in Input, args []Arg) (Result, int, error) {
		ts := args[0].Lit.(value.Typeset)
		if in.AtEnd() || !ts.Has(in.S.ElemKind(in.At)) {
			return Failure(), in.At, nil
		}
		return Synthesized(in.S.At(in.At)), in.At + 1, nil
	})

// logicComb short-circuits: true is a no-op, false fails the current
// alternative.
var logicComb = newCombinator("logic!", "true continues, false fails", nil,
	func(st *State, in Input, args []Arg) (Result, int, error) {
		if bool(args[0].Lit.(value.Logic)) {
			return Invisible(), in.At, nil
		}
		return Failure(), in.At, nil
	})

var skipComb = newCombinator("skip", "match any single element", nil,
	func(st *State, in Input, args []Arg) (Result, int, error) {
		if in.AtEnd() {
			return Failure(), in.At, nil
		}
		return Synthesized(in.S.At(in.At)), in.At + 1, nil
	})

// commentComb consumes its rule argument and does nothing with it.
var commentComb = newCombinator("comment", "ignore the next rule element",
	[]ParamKind{ParamLiteral},
	func(st *State, in Input, args []Arg) (Result, int, error) {
		return Invisible(), in.At, nil
	})

var elideComb = newCombinator("elide", "match the rule but discard its value",
	[]ParamKind{ParamParser},
	func(st *State, in Input, args []Arg) (Result, int, error) {
		res, rem, err := args[0].Parser.Run(st, in)
		if err != nil || res.Failed() {
			return res, in.At, err
		}
		return Invisible(), rem, nil
	})

// Tag pseudo-keywords.
const (
	tagHere  = value.Tag("here")
	tagEnd   = value.Tag("end")
	tagInput = value.Tag("input")
)

var tagComb = newCombinator("tag!", "positional pseudo-keywords: <here> <end> <input>", nil,
	func(st *State, in Input, args []Arg) (Result, int, error) {
		switch tag := args[0].Lit.(value.Tag); tag {
		case tagHere:
			return Synthesized(value.Position{Store: in.S, Index: in.At}), in.At, nil
		case tagEnd:
			if in.AtEnd() {
				return Invisible(), in.At, nil
			}
			return Failure(), in.At, nil
		case tagInput:
			return Synthesized(st.Input.S.Value()), in.At, nil
		default:
			return Failure(), in.At, usageErrorf(ErrCodeBadElement, "<"+string(tag)+">", "unknown tag")
		}
	})
