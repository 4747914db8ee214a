package engine

import (
	"sort"

	"github.com/roach88/matcha/internal/value"
)

// ParamKind declares how the rule compiler fills one combinator
// parameter: verbatim from the rule stream, or by compiling the next
// rule element(s) into a nested, ready-to-run parser.
type ParamKind int

const (
	// ParamLiteral takes the next rule element as-is.
	ParamLiteral ParamKind = iota

	// ParamParser compiles the next rule element(s) into a sub-parser.
	ParamParser
)

// Arg is one bound combinator argument.
type Arg struct {
	// Lit holds the rule element for ParamLiteral parameters.
	Lit value.Value

	// Parser holds the bound sub-parser for ParamParser parameters.
	Parser *Step
}

// CombinatorFunc is the uniform calling convention: shared state, the
// input with its cursor, and the bound arguments. It returns the result,
// the remainder position, and a usage error if the rule is malformed.
// The remainder is meaningful only for non-Failure results.
type CombinatorFunc func(st *State, in Input, args []Arg) (Result, int, error)

// Combinator is one dialect keyword or datatype matcher. For
// kind-dispatched combinators the triggering rule element itself arrives
// as args[0] and Params declares only the additional parameters.
type Combinator struct {
	// Name is the keyword, or the kind name for kind dispatch.
	Name string

	// Summary is a one-line description for the keyword listing.
	Summary string

	// Params declares the parameters the compiler must bind, in order.
	Params []ParamKind

	// Fn is the matcher body.
	Fn CombinatorFunc
}

func newCombinator(name, summary string, params []ParamKind, fn CombinatorFunc) *Combinator {
	return &Combinator{Name: name, Summary: summary, Params: params, Fn: fn}
}

// Step is a bound, ready-to-run combinator invocation: the output of the
// rule compiler. Steps are immutable once compiled.
type Step struct {
	comb *Combinator
	args []Arg

	// prog is set for nested rule blocks, compiled ahead of time.
	prog *program

	// ruleName is set for references to named sub-rules, which compile
	// lazily through the session cache (self-reference stays finite).
	ruleName string
}

// Run executes the step. This is the single wrapping point around every
// matcher body: it records the furthest position reached on success,
// independent of which combinator produced it. Purely diagnostic.
func (s *Step) Run(st *State, in Input) (Result, int, error) {
	res, rem, err := s.eval(st, in)
	if err == nil && !res.Failed() {
		st.noteFurthest(rem)
	}
	if st.Verbose {
		if err != nil {
			st.tracef("%s @%d -> error: %v", s.name(), in.At, err)
		} else if res.Failed() {
			st.tracef("%s @%d -> no match", s.name(), in.At)
		} else {
			st.tracef("%s @%d -> @%d %s", s.name(), in.At, rem, value.Mold(res.Value()))
		}
	}
	return res, rem, err
}

func (s *Step) eval(st *State, in Input) (Result, int, error) {
	if s.prog != nil {
		return runProgram(st, s.prog, in)
	}
	if s.ruleName != "" {
		prog, err := st.compiledRule(s.ruleName)
		if err != nil {
			return Failure(), in.At, err
		}
		return runProgram(st, prog, in)
	}
	return s.comb.Fn(st, in, s.args)
}

func (s *Step) name() string {
	if s.ruleName != "" {
		return s.ruleName
	}
	if s.prog != nil {
		return "block"
	}
	return s.comb.Name
}

// Registry maps rule keywords and rule-element kinds to combinators.
// It is the dialect's sole extension mechanism: copy the default
// registry, add or replace entries, and pass the result to Parse.
type Registry struct {
	words map[string]*Combinator
	kinds map[value.Kind]*Combinator
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		words: make(map[string]*Combinator),
		kinds: make(map[value.Kind]*Combinator),
	}
}

// Copy returns an independent copy; mutating it leaves the original
// untouched.
func (r *Registry) Copy() *Registry {
	c := NewRegistry()
	for w, comb := range r.words {
		c.words[w] = comb
	}
	for k, comb := range r.kinds {
		c.kinds[k] = comb
	}
	return c
}

// Set registers (or replaces) the combinator for a keyword.
func (r *Registry) Set(word string, c *Combinator) {
	r.words[word] = c
}

// Get looks up a keyword combinator.
func (r *Registry) Get(word string) (*Combinator, bool) {
	c, ok := r.words[word]
	return c, ok
}

// SetKind registers the combinator dispatched for a rule-element kind.
func (r *Registry) SetKind(k value.Kind, c *Combinator) {
	r.kinds[k] = c
}

// ForKind looks up the kind-dispatch combinator.
func (r *Registry) ForKind(k value.Kind) (*Combinator, bool) {
	c, ok := r.kinds[k]
	return c, ok
}

// Words returns the registered keywords in sorted order.
func (r *Registry) Words() []string {
	out := make([]string, 0, len(r.words))
	for w := range r.words {
		out = append(out, w)
	}
	sort.Strings(out)
	return out
}
