// Package value implements the tagged scalar used throughout the filter
// engine: integers, floats, text, booleans, and a null marker, plus the
// coercion rules the evaluator needs when comparing two of them.
package value

import "fmt"

// Kind tags which field of a Value is meaningful.
type Kind uint8

const (
	Null Kind = iota
	Int
	Float
	Text
	Bool
)

func (k Kind) String() string {
	switch k {
	case Null:
		return "null"
	case Int:
		return "int"
	case Float:
		return "float"
	case Text:
		return "text"
	case Bool:
		return "bool"
	default:
		return "unknown"
	}
}

// Value is a small tagged union. Only the field matching Kind is valid.
type Value struct {
	Kind Kind
	I    int64
	F    float64
	S    string
	B    bool
}

func NullValue() Value         { return Value{Kind: Null} }
func IntValue(i int64) Value   { return Value{Kind: Int, I: i} }
func FloatValue(f float64) Value { return Value{Kind: Float, F: f} }
func TextValue(s string) Value { return Value{Kind: Text, S: s} }
func BoolValue(b bool) Value   { return Value{Kind: Bool, B: b} }

func (v Value) IsNull() bool { return v.Kind == Null }

// AsFloat reports whether v is Int or Float and returns it widened to
// float64; an Int is always converted, whatever kind the caller compares
// it against.
func (v Value) AsFloat() (float64, bool) {
	switch v.Kind {
	case Int:
		return float64(v.I), true
	case Float:
		return v.F, true
	default:
		return 0, false
	}
}

func (v Value) String() string {
	switch v.Kind {
	case Null:
		return "NULL"
	case Int:
		return fmt.Sprintf("%d", v.I)
	case Float:
		return fmt.Sprintf("%g", v.F)
	case Text:
		return v.S
	case Bool:
		if v.B {
			return "true"
		}
		return "false"
	default:
		return ""
	}
}

// Truthy implements the "bare term" rule from the grammar: a nonzero
// number, nonempty text, or true boolean is truthy; Null is never truthy
// (callers that need three-valued propagation check IsNull separately).
func (v Value) Truthy() bool {
	switch v.Kind {
	case Int:
		return v.I != 0
	case Float:
		return v.F != 0
	case Text:
		return v.S != ""
	case Bool:
		return v.B
	default:
		return false
	}
}
