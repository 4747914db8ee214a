package engine

import "github.com/roach88/matcha/internal/value"

// Accumulation combinators thread results out of the match into named
// storage. The buffers live on State, scoped strictly to the dynamic
// extent of their owning collect/gather call, and are rolled back to the
// recorded mark when the enclosing alternative fails.

// collectComb gathers keep'd values into a fresh block.
var collectComb = newCombinator("collect", "collect kept values into a block",
	[]ParamKind{ParamParser},
	func(st *State, in Input, args []Arg) (Result, int, error) {
		mark := len(st.collect)
		st.collectDepth++
		res, rem, err := args[0].Parser.Run(st, in)
		st.collectDepth--
		if err != nil {
			st.collect = st.collect[:mark]
			return Failure(), in.At, err
		}
		if res.Failed() {
			st.collect = st.collect[:mark]
			return Failure(), in.At, nil
		}
		kept := make(value.Block, len(st.collect)-mark)
		copy(kept, st.collect[mark:])
		st.collect = st.collect[:mark]
		return Synthesized(kept), rem, nil
	})

// keepComb appends the wrapped rule's value to the active collect.
var keepComb = newCombinator("keep", "append the rule's value to the active collect",
	[]ParamKind{ParamParser},
	func(st *State, in Input, args []Arg) (Result, int, error) {
		if st.collectDepth == 0 {
			return Failure(), in.At, usageErrorf(ErrCodeKeepOutsideCollect, "keep",
				"keep requires an active collect")
		}
		res, rem, err := args[0].Parser.Run(st, in)
		if err != nil || res.Failed() {
			return res, in.At, err
		}
		if !res.IsInvisible() {
			st.collect = append(st.collect, res.Value())
		}
		return res, rem, nil
	})

// gatherComb scoops emitted name/value pairs into an object.
var gatherComb = newCombinator("gather", "gather emitted pairs into an object",
	[]ParamKind{ParamParser},
	func(st *State, in Input, args []Arg) (Result, int, error) {
		mark := len(st.gather)
		st.gatherDepth++
		res, rem, err := args[0].Parser.Run(st, in)
		st.gatherDepth--
		if err != nil {
			st.gather = st.gather[:mark]
			return Failure(), in.At, err
		}
		if res.Failed() {
			st.gather = st.gather[:mark]
			return Failure(), in.At, nil
		}
		obj := make(value.Object, len(st.gather)-mark)
		copy(obj, st.gather[mark:])
		st.gather = st.gather[:mark]
		return Synthesized(obj), rem, nil
	})

// emitComb records one name/value pair. Without an active gather the
// pair lands in the session's accruals, queryable after the parse.
var emitComb = newCombinator("emit", "record a name/value pair for gather",
	[]ParamKind{ParamLiteral, ParamParser},
	func(st *State, in Input, args []Arg) (Result, int, error) {
		name, ok := args[0].Lit.(value.Word)
		if !ok {
			return Failure(), in.At, usageErrorf(ErrCodeBadArg, "emit",
				"field name must be a word, got %s", args[0].Lit.Kind())
		}
		res, rem, err := args[1].Parser.Run(st, in)
		if err != nil || res.Failed() {
			return res, in.At, err
		}
		if res.IsInvisible() {
			return Failure(), in.At, usageErrorf(ErrCodeInvisibleValue, "emit",
				"rule for field %q synthesized no value", string(name))
		}
		pair := value.Pair{Name: string(name), Val: res.Value()}
		if st.gatherDepth > 0 {
			st.gather = append(st.gather, pair)
		} else {
			st.accruals = append(st.accruals, pair)
		}
		return res, rem, nil
	})

// setWordComb backs assignment targets in rule position: x: rule runs
// the rule, assigns its value on success, and passes the value through.
// On failure the target is left unmodified.
var setWordComb = newCombinator("set-word!", "assign the rule's value to the named binding",
	[]ParamKind{ParamParser},
	func(st *State, in Input, args []Arg) (Result, int, error) {
		target := args[0].Lit.(value.SetWord)
		res, rem, err := args[1].Parser.Run(st, in)
		if err != nil || res.Failed() {
			return res, in.At, err
		}
		if res.IsInvisible() {
			return Failure(), in.At, usageErrorf(ErrCodeInvisibleValue, string(target),
				"set-word requires a value-bearing rule")
		}
		if st.Bindings == nil {
			st.Bindings = make(map[string]value.Value)
		}
		st.Bindings[string(target)] = res.Value()
		return res, rem, nil
	})
