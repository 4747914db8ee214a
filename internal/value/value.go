package value

// Value is a sealed interface over the engine's host values and rule
// elements. Only the types in this file implement it.
//
// The same union serves both roles: input arrays hold Values, and rule
// blocks are Blocks of Values (words, literals, nested blocks, markers).
type Value interface {
	Kind() Kind
	value() // sealed
}

// Null is the absent value. It is a legitimate domain member, distinct
// from match failure (see engine.Result).
type Null struct{}

func (Null) value()     {}
func (Null) Kind() Kind { return KindNull }

// Logic is a boolean. As a rule element, true is a no-op and false fails.
type Logic bool

func (Logic) value()     {}
func (Logic) Kind() Kind { return KindLogic }

// Int is an integer. Always int64, never float (floats have no place in
// the dialect). As a rule element it is a repeat count.
type Int int64

func (Int) value()     {}
func (Int) Kind() Kind { return KindInt }

// Char is a single character. As a rule element it matches one element.
type Char rune

func (Char) value()     {}
func (Char) Kind() Kind { return KindChar }

// Text is a character string. As a rule element it matches a substring
// (text input) or one equal element (array input).
type Text string

func (Text) value()     {}
func (Text) Kind() Kind { return KindText }

// Binary is a byte sequence.
type Binary []byte

func (Binary) value()     {}
func (Binary) Kind() Kind { return KindBinary }

// Word names a combinator keyword or a bound sub-rule.
type Word string

func (Word) value()     {}
func (Word) Kind() Kind { return KindWord }

// SetWord is an assignment target ("x:") in rule position.
type SetWord string

func (SetWord) value()     {}
func (SetWord) Kind() Kind { return KindSetWord }

// Tag is a pseudo-keyword: <here>, <end>, <input>.
type Tag string

func (Tag) value()     {}
func (Tag) Kind() Kind { return KindTag }

// Block is an ordered sequence of values: an input array or a rule block.
type Block []Value

func (Block) value()     {}
func (Block) Kind() Kind { return KindBlock }

// Group holds host code to evaluate during the match without consuming
// input. The body is evaluated by the session's Evaluator.
type Group struct {
	Body Block
}

func (Group) value()     {}
func (Group) Kind() Kind { return KindGroup }

// GetGroup is a group in "get" position (":( ... )"). It is evaluated at
// rule-compile time and its result takes its place in the rule stream.
type GetGroup struct {
	Body Block
}

func (GetGroup) value()     {}
func (GetGroup) Kind() Kind { return KindGetGroup }

// Quoted wraps a value to be matched as one literal element, exactly,
// regardless of what the value would mean as a rule.
type Quoted struct {
	V Value
}

func (Quoted) value()     {}
func (Quoted) Kind() Kind { return KindQuoted }

// Datatype is a kind used as a matcher: it matches one input element of
// that kind.
type Datatype Kind

func (Datatype) value()     {}
func (Datatype) Kind() Kind { return KindDatatype }

func (Typeset) value()     {}
func (Typeset) Kind() Kind { return KindTypeset }

func (Bitset) value()     {}
func (Bitset) Kind() Kind { return KindBitset }

// Position is a cursor into a series, synthesized by <here> and consumed
// by seek. Store identifies the owning series storage; it is declared any
// because the series package depends on this one.
type Position struct {
	Store any
	Index int
}

func (Position) value()     {}
func (Position) Kind() Kind { return KindPosition }

// Native is an ordinary host function usable in rule position. The
// compiler binds Arity sub-rules as its arguments; their synthesized
// values are passed to Fn and Fn's result becomes the synthesized value.
type Native struct {
	Name  string
	Arity int
	Fn    func(args []Value) (Value, error)
}

func (Native) value()     {}
func (Native) Kind() Kind { return KindNative }

// Pair is one name/value accrual produced by emit.
type Pair struct {
	Name string
	Val  Value
}

// Object is an ordered collection of name/value pairs, the result of
// gather. Order is accrual order, kept stable for deterministic output.
type Object []Pair

func (Object) value()     {}
func (Object) Kind() Kind { return KindObject }
