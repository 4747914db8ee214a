package engine

// Mutating combinators are the only combinators that write to the series
// storage. Everything else reports position changes purely through its
// return value.
//
// Mutation invalidates positions held elsewhere into the same series
// (captured by <here>, an enclosing between, and so on). The engine does
// not police that aliasing; rule authors must.

// synthesize runs a parser and requires a value-bearing success.
func synthesize(st *State, parser *Step, in Input, word string) (Result, int, error) {
	res, rem, err := parser.Run(st, in)
	if err != nil || res.Failed() {
		return res, in.At, err
	}
	if res.IsInvisible() {
		return Failure(), in.At, usageErrorf(ErrCodeInvisibleValue, word,
			"rule must synthesize a replacement value")
	}
	return res, rem, nil
}

// changeComb matches an extent, synthesizes a replacement, and replaces
// the extent in place.
var changeComb = newCombinator("change", "replace the matched extent with a synthesized value",
	[]ParamKind{ParamParser, ParamParser},
	func(st *State, in Input, args []Arg) (Result, int, error) {
		res, extent, err := args[0].Parser.Run(st, in)
		if err != nil {
			return Failure(), in.At, err
		}
		if res.Failed() {
			return Failure(), in.At, nil
		}
		repl, _, err := synthesize(st, args[1].Parser, in, "change")
		if err != nil || repl.Failed() {
			return repl, in.At, err
		}
		in.S.Remove(in.At, extent)
		n, err := in.S.Insert(in.At, repl.Value())
		if err != nil {
			return Failure(), in.At, usageErrorf(ErrCodeMutation, "change", "%v", err)
		}
		return Invisible(), in.At + n, nil
	})

// removeComb matches an extent and deletes it.
var removeComb = newCombinator("remove", "delete the matched extent",
	[]ParamKind{ParamParser},
	func(st *State, in Input, args []Arg) (Result, int, error) {
		res, extent, err := args[0].Parser.Run(st, in)
		if err != nil {
			return Failure(), in.At, err
		}
		if res.Failed() {
			return Failure(), in.At, nil
		}
		in.S.Remove(in.At, extent)
		return Invisible(), in.At, nil
	})

// insertComb synthesizes a value and inserts it at the cursor without
// consuming input.
var insertComb = newCombinator("insert", "insert a synthesized value at the cursor",
	[]ParamKind{ParamParser},
	func(st *State, in Input, args []Arg) (Result, int, error) {
		repl, _, err := synthesize(st, args[0].Parser, in, "insert")
		if err != nil || repl.Failed() {
			return repl, in.At, err
		}
		n, err := in.S.Insert(in.At, repl.Value())
		if err != nil {
			return Failure(), in.At, usageErrorf(ErrCodeMutation, "insert", "%v", err)
		}
		return Invisible(), in.At + n, nil
	})
