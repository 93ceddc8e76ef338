package literal

type Kind int

const (
	KindMapping Kind = iota
	KindSequence
	KindString
	KindSymbol
	KindBool
	KindInteger
	KindFloat
	KindNull
)

func (k Kind) String() string {
	switch k {
	case KindMapping:
		return "mapping"
	case KindSequence:
		return "sequence"
	case KindString:
		return "string"
	case KindSymbol:
		return "symbol"
	case KindBool:
		return "boolean"
	case KindInteger:
		return "integer"
	case KindFloat:
		return "float"
	case KindNull:
		return "null"
	default:
		return "unknown"
	}
}

// Value is a constant parsed from source text. Text holds the decoded string
// for String and Symbol, and the normalized source digits for Integer and
// Float, so arbitrarily large integers survive unchanged.
type Value struct {
	Kind  Kind
	Text  string
	Bool  bool
	Items []Value
	Pairs []Pair
	Line  int
	Col   int
}

type Pair struct {
	Key   Value
	Value Value
}

func String(s string) Value { return Value{Kind: KindString, Text: s} }

func Symbol(s string) Value { return Value{Kind: KindSymbol, Text: s} }

func Bool(b bool) Value { return Value{Kind: KindBool, Bool: b} }

func Integer(digits string) Value { return Value{Kind: KindInteger, Text: digits} }

func Sequence(items ...Value) Value { return Value{Kind: KindSequence, Items: items} }

func Mapping(pairs ...Pair) Value { return Value{Kind: KindMapping, Pairs: pairs} }
