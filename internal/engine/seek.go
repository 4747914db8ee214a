package engine

import (
	"github.com/roach88/matcha/internal/series"
	"github.com/roach88/matcha/internal/value"
)

// Seeking combinators scan forward, capture spans, or jump the cursor.

// scanFor tries the parser at every position from in.At to the tail and
// returns the first position where it matches, along with the parser's
// remainder there.
func scanFor(st *State, parser *Step, in Input) (at int, rem int, found bool, err error) {
	for i := in.At; i <= in.S.Len(); i++ {
		res, r, err := parser.Run(st, Input{S: in.S, At: i})
		if err != nil {
			return 0, 0, false, err
		}
		if !res.Failed() {
			return i, r, true, nil
		}
	}
	return 0, 0, false, nil
}

// toComb positions the cursor immediately before the rule's match.
var toComb = newCombinator("to", "advance to where the rule matches",
	[]ParamKind{ParamParser},
	func(st *State, in Input, args []Arg) (Result, int, error) {
		at, _, found, err := scanFor(st, args[0].Parser, in)
		if err != nil {
			return Failure(), in.At, err
		}
		if !found {
			return Failure(), in.At, nil
		}
		return Invisible(), at, nil
	})

// thruComb positions the cursor immediately after the rule's match.
var thruComb = newCombinator("thru", "advance through the rule's match",
	[]ParamKind{ParamParser},
	func(st *State, in Input, args []Arg) (Result, int, error) {
		_, rem, found, err := scanFor(st, args[0].Parser, in)
		if err != nil {
			return Failure(), in.At, err
		}
		if !found {
			return Failure(), in.At, nil
		}
		return Invisible(), rem, nil
	})

// betweenComb matches the left rule here, scans for the right rule, and
// synthesizes a copy of the span between the two matches.
var betweenComb = newCombinator("between", "capture the span between two rules",
	[]ParamKind{ParamParser, ParamParser},
	func(st *State, in Input, args []Arg) (Result, int, error) {
		lres, afterL, err := args[0].Parser.Run(st, in)
		if err != nil {
			return Failure(), in.At, err
		}
		if lres.Failed() {
			return Failure(), in.At, nil
		}
		at, rem, found, err := scanFor(st, args[1].Parser, Input{S: in.S, At: afterL})
		if err != nil {
			return Failure(), in.At, err
		}
		if !found {
			return Failure(), in.At, nil
		}
		return Synthesized(in.S.Slice(afterL, at)), rem, nil
	})

// acrossComb synthesizes a copy of exactly the subsequence the rule
// consumed.
var acrossComb = newCombinator("across", "capture the span the rule consumes",
	[]ParamKind{ParamParser},
	func(st *State, in Input, args []Arg) (Result, int, error) {
		res, rem, err := args[0].Parser.Run(st, in)
		if err != nil {
			return Failure(), in.At, err
		}
		if res.Failed() {
			return Failure(), in.At, nil
		}
		if rem < in.At {
			// A backwards seek inside across leaves no well-defined span.
			return Failure(), in.At, usageErrorf(ErrCodeBadSeek, "across",
				"wrapped rule moved the cursor backwards")
		}
		return Synthesized(in.S.Slice(in.At, rem)), rem, nil
	})

// seekComb jumps the cursor to a synthesized integer index (1-based, the
// dialect's user-facing numbering) or to a position captured by <here>.
var seekComb = newCombinator("seek", "jump to a synthesized index or position",
	[]ParamKind{ParamParser},
	func(st *State, in Input, args []Arg) (Result, int, error) {
		res, _, err := args[0].Parser.Run(st, in)
		if err != nil {
			return Failure(), in.At, err
		}
		if res.Failed() {
			return Failure(), in.At, nil
		}
		if res.IsInvisible() {
			return Failure(), in.At, usageErrorf(ErrCodeBadSeek, "seek", "rule synthesized no value")
		}
		switch target := res.Value().(type) {
		case value.Int:
			idx := int(target) - 1
			if idx < 0 || idx > in.S.Len() {
				return Failure(), in.At, usageErrorf(ErrCodeBadSeek, "seek",
					"index %d out of range 1..%d", target, in.S.Len()+1)
			}
			return Invisible(), idx, nil
		case value.Position:
			store, ok := target.Store.(series.Series)
			if !ok || store != in.S {
				return Failure(), in.At, usageErrorf(ErrCodeForeignSeries, "seek",
					"position belongs to a different series than the one being parsed")
			}
			if target.Index < 0 || target.Index > in.S.Len() {
				return Failure(), in.At, usageErrorf(ErrCodeBadSeek, "seek",
					"position %d out of range", target.Index)
			}
			return Invisible(), target.Index, nil
		default:
			return Failure(), in.At, usageErrorf(ErrCodeBadSeek, "seek",
				"target must be an integer or position, got %s", res.Value().Kind())
		}
	})

// intoComb recurses into a synthesized sub-series: the shape rule
// produces a series value, and the second rule must match that
// sub-series exactly to its end.
var intoComb = newCombinator("into", "match a rule against a synthesized sub-series",
	[]ParamKind{ParamParser, ParamParser},
	func(st *State, in Input, args []Arg) (Result, int, error) {
		shape, rem, err := args[0].Parser.Run(st, in)
		if err != nil {
			return Failure(), in.At, err
		}
		if shape.Failed() {
			return Failure(), in.At, nil
		}
		if shape.IsInvisible() {
			return Failure(), in.At, usageErrorf(ErrCodeInvisibleValue, "into",
				"shape rule synthesized no sub-series")
		}
		sub, err := series.FromValue(shape.Value())
		if err != nil {
			return Failure(), in.At, usageErrorf(ErrCodeBadArg, "into",
				"shape rule must synthesize a series value, got %s", shape.Value().Kind())
		}
		res, subRem, err := args[1].Parser.Run(st, Input{S: sub, At: 0})
		if err != nil {
			return Failure(), in.At, err
		}
		if res.Failed() || subRem != sub.Len() {
			return Failure(), in.At, nil
		}
		return res, rem, nil
	})
