package engine

import "github.com/roach88/matcha/internal/value"

// The rule compiler is two-phase: a rule block compiles once into an
// immutable program, and the sequencer interprets that program. The rule
// stream is never advanced during matching, so backtracking never has to
// reason about rule aliasing.
//
// A program is a sequence of segments (split on "||"); each segment is a
// set of alternatives (split on "|"); each alternative is a sequence of
// bound steps. Step separators ("," ) are pure syntax and dropped here.
type program struct {
	segs []segment
}

type segment struct {
	alts []alternative
}

type alternative struct {
	steps []*Step
}

// compileBlock compiles one rule block into a program. All errors are
// usage errors: the rule itself is malformed.
func compileBlock(st *State, block value.Block) (*program, error) {
	prog := &program{}
	seg := segment{}
	alt := alternative{}
	i := 0
	for i < len(block) {
		if w, ok := block[i].(value.Word); ok {
			switch string(w) {
			case ",":
				i++
				continue
			case "|":
				seg.alts = append(seg.alts, alt)
				alt = alternative{}
				i++
				continue
			case "||":
				seg.alts = append(seg.alts, alt)
				prog.segs = append(prog.segs, seg)
				seg = segment{}
				alt = alternative{}
				i++
				continue
			}
		}
		step, err := compileStep(st, block, &i)
		if err != nil {
			return nil, err
		}
		alt.steps = append(alt.steps, step)
	}
	seg.alts = append(seg.alts, alt)
	prog.segs = append(prog.segs, seg)
	return prog, nil
}

// compileStep compiles the rule element at *i into one bound step,
// consuming as many following elements as the combinator's parameter
// list declares.
func compileStep(st *State, block value.Block, i *int) (*Step, error) {
	if *i >= len(block) {
		return nil, usageErrorf(ErrCodeMissingArg, "", "rule ends where another element is required")
	}
	elem := block[*i]
	*i++

	// Get-groups resolve at compile time: host code picks the rule
	// element that takes their place.
	if gg, ok := elem.(value.GetGroup); ok {
		v, err := evalGroupBody(st, gg.Body)
		if err != nil {
			return nil, err
		}
		elem = v
	}

	switch e := elem.(type) {
	case value.Word:
		w := string(e)
		if w == "|" || w == "||" || w == "," {
			return nil, usageErrorf(ErrCodeBadArg, w, "marker cannot stand where a rule is required")
		}
		if c, ok := st.Registry.Get(w); ok {
			args, err := bindParams(st, c, nil, block, i)
			if err != nil {
				return nil, err
			}
			return &Step{comb: c, args: args}, nil
		}
		if _, ok := st.Env[w]; ok {
			return &Step{ruleName: w}, nil
		}
		return nil, usageErrorf(ErrCodeUnknownWord, w, "word is neither a combinator nor a bound sub-rule")

	case value.Null:
		// Conditionally-omitted rule fragments: null matches without
		// consuming input.
		return &Step{comb: identityComb}, nil

	case value.Block:
		prog, err := compileBlock(st, e)
		if err != nil {
			return nil, err
		}
		return &Step{prog: prog}, nil

	case value.Native:
		// Bind one sub-parser per declared host argument.
		args := []Arg{{Lit: e}}
		for n := 0; n < e.Arity; n++ {
			sub, err := compileStep(st, block, i)
			if err != nil {
				return nil, err
			}
			args = append(args, Arg{Parser: sub})
		}
		return &Step{comb: actionComb, args: args}, nil

	default:
		c, ok := st.Registry.ForKind(elem.Kind())
		if !ok {
			return nil, usageErrorf(ErrCodeBadElement, value.Mold(elem),
				"no combinator handles rule elements of kind %s", elem.Kind())
		}
		args, err := bindParams(st, c, []Arg{{Lit: elem}}, block, i)
		if err != nil {
			return nil, err
		}
		return &Step{comb: c, args: args}, nil
	}
}

// bindParams consumes rule elements for each declared parameter. Seed
// carries the triggering element for kind-dispatched combinators.
func bindParams(st *State, c *Combinator, seed []Arg, block value.Block, i *int) ([]Arg, error) {
	args := seed
	for _, p := range c.Params {
		switch p {
		case ParamLiteral:
			if *i >= len(block) {
				return nil, usageErrorf(ErrCodeMissingArg, c.Name, "missing argument")
			}
			lit := block[*i]
			*i++
			if gg, ok := lit.(value.GetGroup); ok {
				v, err := evalGroupBody(st, gg.Body)
				if err != nil {
					return nil, err
				}
				lit = v
			}
			args = append(args, Arg{Lit: lit})
		case ParamParser:
			sub, err := compileStep(st, block, i)
			if err != nil {
				return nil, err
			}
			args = append(args, Arg{Parser: sub})
		}
	}
	return args, nil
}

// compiledRule compiles a named sub-rule on first use and memoizes it.
// References resolve lazily at run time, so self-recursive rules are
// fine.
func (st *State) compiledRule(name string) (*program, error) {
	if prog, ok := st.compiledEnv[name]; ok {
		return prog, nil
	}
	block, ok := st.Env[name]
	if !ok {
		return nil, usageErrorf(ErrCodeUnknownWord, name, "sub-rule vanished from the environment")
	}
	prog, err := compileBlock(st, block)
	if err != nil {
		return nil, err
	}
	if st.compiledEnv == nil {
		st.compiledEnv = make(map[string]*program)
	}
	st.compiledEnv[name] = prog
	return prog, nil
}
