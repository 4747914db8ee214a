package engine

import "github.com/roach88/matcha/internal/value"

// Structural combinators wrap another rule to change its success and
// failure semantics without (usually) consuming input.

// optComb never fails: on failure of the wrapped rule it synthesizes
// Null and leaves the position unchanged.
var optComb = newCombinator("opt", "match the rule or succeed with null",
	[]ParamKind{ParamParser},
	func(st *State, in Input, args []Arg) (Result, int, error) {
		res, rem, err := args[0].Parser.Run(st, in)
		if err != nil {
			return Failure(), in.At, err
		}
		if res.Failed() {
			return Synthesized(value.Null{}), in.At, nil
		}
		return res, rem, nil
	})

// notComb inverts the wrapped rule and never advances either way.
var notComb = newCombinator("not", "succeed only if the rule does not match",
	[]ParamKind{ParamParser},
	func(st *State, in Input, args []Arg) (Result, int, error) {
		res, _, err := args[0].Parser.Run(st, in)
		if err != nil {
			return Failure(), in.At, err
		}
		if res.Failed() {
			return Synthesized(value.Null{}), in.At, nil
		}
		return Failure(), in.At, nil
	})

// aheadComb is lookahead: match, keep the value, restore the position.
var aheadComb = newCombinator("ahead", "match the rule without consuming input",
	[]ParamKind{ParamParser},
	func(st *State, in Input, args []Arg) (Result, int, error) {
		res, _, err := args[0].Parser.Run(st, in)
		if err != nil || res.Failed() {
			return res, in.At, err
		}
		return res, in.At, nil
	})

// furtherComb guards iteration: success without advancement counts as
// failure.
var furtherComb = newCombinator("further", "match the rule only if it advances the position",
	[]ParamKind{ParamParser},
	func(st *State, in Input, args []Arg) (Result, int, error) {
		res, rem, err := args[0].Parser.Run(st, in)
		if err != nil || res.Failed() {
			return res, in.At, err
		}
		if rem <= in.At {
			return Failure(), in.At, nil
		}
		return res, rem, nil
	})
