// Package engine implements a combinator-based pattern-matching runtime:
// declarative rule blocks execute against arrays, text, or byte input,
// producing a new cursor position and an optional synthesized value.
//
// The engine is single-threaded and fully synchronous. Call depth tracks
// rule nesting, not input length. One State is shared by reference
// through a session's whole call graph.
package engine

import (
	"errors"

	"github.com/google/uuid"

	"github.com/roach88/matcha/internal/series"
	"github.com/roach88/matcha/internal/value"
)

// Outcome reports a finished session.
type Outcome struct {
	// Matched reports whether any path through the rules succeeded.
	Matched bool

	// Value is the matched input (current contents, after any
	// mutations), or the return combinator's override value. Null when
	// the session did not match.
	Value value.Value

	// Synthesized is the last non-invisible value along the successful
	// path (Null when no step contributed one, or on no-match).
	Synthesized value.Value

	// Progress is the remainder position after the successful path.
	// Matching the whole input is the caller's choice, via <end>.
	Progress int

	// Furthest is the diagnostic high-water mark of positions reached
	// across every attempted alternative.
	Furthest int

	// Bindings holds set-word assignments made along the final path.
	Bindings map[string]value.Value

	// Accruals holds pairs emitted outside any gather.
	Accruals value.Object

	// SessionID is the session's unique identifier.
	SessionID string
}

// Option configures a session.
type Option func(*State)

// WithRegistry overrides the built-in combinator catalog.
func WithRegistry(r *Registry) Option {
	return func(st *State) { st.Registry = r }
}

// CaseSensitive makes text, char, and word matching exact. The default
// matches under Unicode case folding.
func CaseSensitive() Option {
	return func(st *State) { st.CaseSensitive = true }
}

// WithEnv binds named sub-rules referencable as words in rule position.
func WithEnv(env map[string]value.Block) Option {
	return func(st *State) { st.Env = env }
}

// WithEvaluator installs the host evaluator for group bodies.
func WithEvaluator(ev Evaluator) Option {
	return func(st *State) { st.Evaluator = ev }
}

// WithTrace enables per-step diagnostics through fn.
func WithTrace(fn func(line string)) Option {
	return func(st *State) {
		st.Verbose = true
		st.Trace = fn
	}
}

// Validate compiles a rule block without running it, reporting usage
// errors the compiler can see. Run-time-only mistakes (keep outside
// collect, seek into a foreign series) surface only during a session.
func Validate(rules value.Block, opts ...Option) error {
	st := &State{Registry: DefaultRegistry()}
	for _, opt := range opts {
		opt(st)
	}
	_, err := compileBlock(st, rules)
	return err
}

// Parse runs one session: it builds the shared state, compiles the rule
// block into a program, and drives the sequencer over the whole input.
//
// The error return carries usage errors only — a rule that fails to
// match is not an error, it is an Outcome with Matched false.
func Parse(input value.Value, rules value.Block, opts ...Option) (*Outcome, error) {
	s, err := series.FromValue(input)
	if err != nil {
		return nil, usageErrorf(ErrCodeBadArg, "", "%v", err)
	}
	return ParseSeries(s, rules, opts...)
}

// ParseSeries is Parse over an existing series view, for callers that
// need to observe in-place mutation of the storage they supplied.
func ParseSeries(s series.Series, rules value.Block, opts ...Option) (*Outcome, error) {
	st := &State{
		Registry:  DefaultRegistry(),
		Input:     Input{S: s, At: 0},
		SessionID: uuid.NewString(),
	}
	for _, opt := range opts {
		opt(st)
	}

	prog, err := compileBlock(st, rules)
	if err != nil {
		return nil, err
	}

	out := &Outcome{SessionID: st.SessionID, Synthesized: value.Null{}}
	res, rem, err := runProgram(st, prog, st.Input)
	if err != nil {
		var ret *returnSignal
		if errors.As(err, &ret) {
			out.Matched = true
			out.Value = ret.val
			out.Synthesized = ret.val
			out.Progress = ret.at
			st.noteFurthest(ret.at)
			finishOutcome(out, st)
			return out, nil
		}
		return nil, err
	}

	if res.Failed() {
		out.Value = value.Null{}
		finishOutcome(out, st)
		return out, nil
	}
	out.Matched = true
	out.Value = s.Value()
	out.Synthesized = res.Value()
	out.Progress = rem
	finishOutcome(out, st)
	return out, nil
}

func finishOutcome(out *Outcome, st *State) {
	out.Furthest = st.Furthest
	out.Bindings = st.Bindings
	out.Accruals = st.Accruals()
}
