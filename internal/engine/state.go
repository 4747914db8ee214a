package engine

import (
	"fmt"

	"github.com/roach88/matcha/internal/series"
	"github.com/roach88/matcha/internal/value"
)

// Input is a series plus a cursor position.
type Input struct {
	S  series.Series
	At int
}

// AtEnd reports whether the cursor is at the series tail.
func (in Input) AtEnd() bool { return in.At >= in.S.Len() }

// State is the shared, session-scoped parse state. It is created at
// session start, passed by reference into every combinator invocation,
// and discarded at session end. Nothing here is global.
type State struct {
	// Registry is the active combinator catalog.
	Registry *Registry

	// CaseSensitive controls text, char, and word equality.
	CaseSensitive bool

	// Verbose enables per-step diagnostics through Trace.
	Verbose bool

	// Trace receives a line per combinator step when Verbose is set.
	// Nil means discard.
	Trace func(line string)

	// Input is the original session input, for the <input> tag and for
	// seek's same-series check.
	Input Input

	// Furthest is the diagnostic high-water mark of input positions
	// reached across all attempted alternatives. It only ever grows.
	Furthest int

	// Env binds words to named sub-rules, compiled lazily on first use.
	Env map[string]value.Block

	// Evaluator runs group bodies. Defaults to LiteralEvaluator.
	Evaluator Evaluator

	// Bindings holds set-word assignments, queryable after the session.
	Bindings map[string]value.Value

	// SessionID correlates this session in trace output and the trace
	// store.
	SessionID string

	// Collecting buffer. Lazily created (nil until the first keep);
	// collectDepth counts nested active collects.
	collect      []value.Value
	collectDepth int

	// Gathering buffer, plus accruals recorded by emit outside any
	// gather. Accruals survive the session and are reported on the
	// outcome.
	gather      []value.Pair
	gatherDepth int
	accruals    []value.Pair

	// compiledEnv caches lazily compiled named sub-rules. The cache also
	// breaks recursion: a rule that references itself compiles once.
	compiledEnv map[string]*program
}

// marks snapshots the accumulation buffers so a failed alternative can
// be rolled back without disturbing growth from outer scopes. Accruals
// are included: an emit on a failed path never reaches the outcome.
type marks struct {
	collect  int
	gather   int
	accruals int
}

func (st *State) mark() marks {
	return marks{collect: len(st.collect), gather: len(st.gather), accruals: len(st.accruals)}
}

// rollback truncates buffer growth past m. Invariant: buffers are
// append-only within one alternative, so truncation is exact.
func (st *State) rollback(m marks) {
	st.collect = st.collect[:m.collect]
	st.gather = st.gather[:m.gather]
	st.accruals = st.accruals[:m.accruals]
}

// noteFurthest records a successful position for diagnostics. It never
// influences matching.
func (st *State) noteFurthest(pos int) {
	if pos > st.Furthest {
		st.Furthest = pos
	}
}

// Accruals returns name/value pairs recorded by emit outside any gather.
func (st *State) Accruals() value.Object {
	return value.Object(st.accruals)
}

func (st *State) tracef(format string, args ...any) {
	if st.Verbose && st.Trace != nil {
		st.Trace(fmt.Sprintf(format, args...))
	}
}
