package engine

import "github.com/roach88/matcha/internal/value"

// Iteration combinators repeatedly run a sub-rule. All of them stop on a
// zero-width success instead of spinning, the same advancement check
// further applies.

// runWhile runs the parser until it fails or stops advancing. It returns
// the iteration count, the last synthesized result, and the remainder.
func runWhile(st *State, parser *Step, in Input) (int, Result, int, error) {
	pos := in.At
	count := 0
	last := Invisible()
	for {
		res, rem, err := parser.Run(st, Input{S: in.S, At: pos})
		if err != nil {
			return count, Failure(), in.At, err
		}
		if res.Failed() {
			break
		}
		count++
		if !res.IsInvisible() {
			last = res
		}
		if rem <= pos {
			break
		}
		pos = rem
	}
	return count, last, pos, nil
}

// whileComb accepts zero or more matches and never fails outright.
var whileComb = newCombinator("while", "match the rule zero or more times",
	[]ParamKind{ParamParser},
	func(st *State, in Input, args []Arg) (Result, int, error) {
		count, last, rem, err := runWhile(st, args[0].Parser, in)
		if err != nil {
			return Failure(), in.At, err
		}
		if count == 0 {
			return Synthesized(value.Null{}), in.At, nil
		}
		return last, rem, nil
	})

// someComb requires at least one match.
var someComb = newCombinator("some", "match the rule one or more times",
	[]ParamKind{ParamParser},
	func(st *State, in Input, args []Arg) (Result, int, error) {
		count, last, rem, err := runWhile(st, args[0].Parser, in)
		if err != nil {
			return Failure(), in.At, err
		}
		if count == 0 {
			return Failure(), in.At, nil
		}
		return last, rem, nil
	})

// tallyComb counts matches instead of keeping a value.
var tallyComb = newCombinator("tally", "count how many times the rule matches",
	[]ParamKind{ParamParser},
	func(st *State, in Input, args []Arg) (Result, int, error) {
		count, _, rem, err := runWhile(st, args[0].Parser, in)
		if err != nil {
			return Failure(), in.At, err
		}
		return Synthesized(value.Int(count)), rem, nil
	})

// runRepeat runs the parser exactly n times, failing the whole
// combinator when any iteration fails.
func runRepeat(st *State, n int, parser *Step, in Input) (Result, int, error) {
	pos := in.At
	last := Invisible()
	for k := 0; k < n; k++ {
		res, rem, err := parser.Run(st, Input{S: in.S, At: pos})
		if err != nil {
			return Failure(), in.At, err
		}
		if res.Failed() {
			return Failure(), in.At, nil
		}
		if !res.IsInvisible() {
			last = res
		}
		pos = rem
	}
	return last, pos, nil
}

// repeatComb is the keyword form: repeat N rule.
var repeatComb = newCombinator("repeat", "match the rule exactly N times",
	[]ParamKind{ParamLiteral, ParamParser},
	func(st *State, in Input, args []Arg) (Result, int, error) {
		n, ok := args[0].Lit.(value.Int)
		if !ok {
			return Failure(), in.At, usageErrorf(ErrCodeBadArg, "repeat",
				"count must be an integer, got %s", args[0].Lit.Kind())
		}
		if n < 0 {
			return Failure(), in.At, usageErrorf(ErrCodeBadArg, "repeat", "count must not be negative")
		}
		return runRepeat(st, int(n), args[1].Parser, in)
	})

// intComb backs bare integer rule elements: N rule is repeat N rule.
var intComb = newCombinator("integer!", "match the following rule N times",
	[]ParamKind{ParamParser},
	func(st *State, in Input, args []Arg) (Result, int, error) {
		n := args[0].Lit.(value.Int)
		if n < 0 {
			return Failure(), in.At, usageErrorf(ErrCodeBadArg, "integer", "count must not be negative")
		}
		return runRepeat(st, int(n), args[1].Parser, in)
	})
