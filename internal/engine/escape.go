package engine

import "github.com/roach88/matcha/internal/value"

// Escape-hatch combinators re-enter host code mid-match. Host code runs
// synchronously and must not attempt to continue the parse itself.

// Evaluator runs group bodies on behalf of the engine. Embedders supply
// their own to expose real host evaluation; the default understands only
// literals.
type Evaluator interface {
	// Eval evaluates a group body and returns its result. A nil result
	// is reported to the rule as Null, never as match failure.
	Eval(st *State, body value.Block) (value.Value, error)
}

// LiteralEvaluator is the default Evaluator: the body must be a sequence
// of literal values and evaluates to the last one. An empty body
// evaluates to Null. Words are beyond it, deliberately.
type LiteralEvaluator struct{}

func (LiteralEvaluator) Eval(st *State, body value.Block) (value.Value, error) {
	var last value.Value = value.Null{}
	for _, v := range body {
		switch v.(type) {
		case value.Word, value.SetWord, value.Group, value.GetGroup:
			return nil, usageErrorf(ErrCodeEvaluation, "",
				"default evaluator handles literals only, got %s", value.Mold(v))
		}
		last = v
	}
	return last, nil
}

// evalGroupBody dispatches to the session's Evaluator and maps a nil
// host result to Null.
func evalGroupBody(st *State, body value.Block) (value.Value, error) {
	ev := st.Evaluator
	if ev == nil {
		ev = LiteralEvaluator{}
	}
	v, err := ev.Eval(st, body)
	if err != nil {
		if IsUsageError(err) {
			return nil, err
		}
		return nil, usageErrorf(ErrCodeEvaluation, "", "group evaluation: %v", err)
	}
	if v == nil {
		return value.Null{}, nil
	}
	return v, nil
}

// groupComb executes host code without consuming input. Its evaluation
// result becomes the synthesized value.
var groupComb = newCombinator("group!", "evaluate host code without consuming input", nil,
	func(st *State, in Input, args []Arg) (Result, int, error) {
		g := args[0].Lit.(value.Group)
		v, err := evalGroupBody(st, g.Body)
		if err != nil {
			return Failure(), in.At, err
		}
		return Synthesized(v), in.At, nil
	})

// actionComb calls an ordinary host function. Each declared argument
// slot is a compiled sub-rule run against the current position in turn;
// the gathered values feed the function and its result is synthesized.
//
// Fn is assigned in init: compileStep references this var, and the body
// re-enters the compiler through Step.Run, so a direct initializer
// would be an initialization cycle.
var actionComb = newCombinator("native!", "call a host function on combinator-derived arguments", nil, nil)

func init() {
	actionComb.Fn = runAction
}

func runAction(st *State, in Input, args []Arg) (Result, int, error) {
	native := args[0].Lit.(value.Native)
	pos := in.At
	hostArgs := make([]value.Value, 0, native.Arity)
	for _, arg := range args[1:] {
		res, rem, err := arg.Parser.Run(st, Input{S: in.S, At: pos})
		if err != nil {
			return Failure(), in.At, err
		}
		if res.Failed() {
			return Failure(), in.At, nil
		}
		hostArgs = append(hostArgs, res.Value())
		pos = rem
	}
	out, err := native.Fn(hostArgs)
	if err != nil {
		return Failure(), in.At, usageErrorf(ErrCodeEvaluation, native.Name, "%v", err)
	}
	if out == nil {
		out = value.Null{}
	}
	return Synthesized(out), pos, nil
}

// returnComb aborts the whole session successfully with the rule's
// synthesized value in place of the matched input.
var returnComb = newCombinator("return", "succeed the session with an override value",
	[]ParamKind{ParamParser},
	func(st *State, in Input, args []Arg) (Result, int, error) {
		res, rem, err := args[0].Parser.Run(st, in)
		if err != nil || res.Failed() {
			return res, in.At, err
		}
		return Failure(), in.At, &returnSignal{val: res.Value(), at: rem}
	})
