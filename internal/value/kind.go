package value

// Kind identifies the concrete type of a Value.
//
// Kinds double as the dialect's datatype values: a rule element of kind
// KindDatatype carries one of these and matches input elements by kind.
type Kind int

const (
	KindNull Kind = iota
	KindLogic
	KindInt
	KindChar
	KindText
	KindBinary
	KindWord
	KindSetWord
	KindTag
	KindBlock
	KindGroup
	KindGetGroup
	KindQuoted
	KindDatatype
	KindTypeset
	KindBitset
	KindPosition
	KindNative
	KindObject
)

// kindNames holds the dialect-facing name for each kind.
// Datatype words in rule text ("integer!") resolve through this table.
var kindNames = map[Kind]string{
	KindNull:     "null",
	KindLogic:    "logic!",
	KindInt:      "integer!",
	KindChar:     "char!",
	KindText:     "text!",
	KindBinary:   "binary!",
	KindWord:     "word!",
	KindSetWord:  "set-word!",
	KindTag:      "tag!",
	KindBlock:    "block!",
	KindGroup:    "group!",
	KindGetGroup: "get-group!",
	KindQuoted:   "quoted!",
	KindDatatype: "datatype!",
	KindTypeset:  "typeset!",
	KindBitset:   "bitset!",
	KindPosition: "position!",
	KindNative:   "native!",
	KindObject:   "object!",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown!"
}

// KindByName resolves a dialect datatype word ("integer!") to its Kind.
func KindByName(name string) (Kind, bool) {
	for k, n := range kindNames {
		if n == name {
			return k, true
		}
	}
	return 0, false
}

// Typeset is a named set of kinds. Typeset rule elements match any input
// element whose kind is a member.
type Typeset struct {
	Name  string
	Kinds []Kind
}

func (t Typeset) Has(k Kind) bool {
	for _, m := range t.Kinds {
		if m == k {
			return true
		}
	}
	return false
}

// Built-in typesets, resolvable from rule text by name.
var (
	AnySeries = Typeset{Name: "any-series!", Kinds: []Kind{KindBlock, KindText, KindBinary}}
	AnyString = Typeset{Name: "any-string!", Kinds: []Kind{KindText, KindBinary}}
	AnyWord   = Typeset{Name: "any-word!", Kinds: []Kind{KindWord, KindSetWord, KindTag}}
	AnyScalar = Typeset{Name: "any-scalar!", Kinds: []Kind{KindLogic, KindInt, KindChar}}
)

// TypesetByName resolves a dialect typeset word to its Typeset.
func TypesetByName(name string) (Typeset, bool) {
	for _, t := range []Typeset{AnySeries, AnyString, AnyWord, AnyScalar} {
		if t.Name == name {
			return t, true
		}
	}
	return Typeset{}, false
}
