package engine

import "github.com/roach88/matcha/internal/value"

// resultKind is the three-way outcome tag. Failure is its own case so a
// synthesized Null payload is never confused with "did not match".
type resultKind uint8

const (
	resultFailed resultKind = iota
	resultInvisible
	resultValue
)

// Result is the outcome of one combinator invocation.
//
//   - Failure: the combinator did not match.
//   - Invisible: it matched but contributes no value (literal matches,
//     elide, <end>, and the like).
//   - Value: it matched and synthesized a value, which may itself be Null.
type Result struct {
	kind resultKind
	val  value.Value
}

// Failure is the no-match result.
func Failure() Result {
	return Result{kind: resultFailed}
}

// Invisible is a successful result carrying no value.
func Invisible() Result {
	return Result{kind: resultInvisible}
}

// Synthesized is a successful result carrying v. v may be value.Null.
func Synthesized(v value.Value) Result {
	return Result{kind: resultValue, val: v}
}

func (r Result) Failed() bool { return r.kind == resultFailed }

// IsInvisible reports a successful result with no value contribution.
func (r Result) IsInvisible() bool { return r.kind == resultInvisible }

// Value returns the synthesized value. For Invisible results it returns
// Null; it must not be called on a Failure.
func (r Result) Value() value.Value {
	if r.kind == resultValue {
		return r.val
	}
	return value.Null{}
}
