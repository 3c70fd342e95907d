package lang

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Kind indicates the type of a [Value].
type Kind int

const (
	// KindNone is the kind of the zero Value.
	KindNone Kind = iota

	// KindString represents a string literal or a bare word.
	KindString

	// KindInteger represents a 64-bit signed integer literal.
	KindInteger

	// KindFloat represents a 64-bit floating point literal.
	KindFloat

	// KindBool represents a boolean literal.
	KindBool

	// KindVariable represents an unresolved reference to a variable.
	KindVariable
)

// String returns a string representation of the value kind.
func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"

	case KindString:
		return "string"

	case KindInteger:
		return "integer"

	case KindFloat:
		return "float"

	case KindBool:
		return "bool"

	case KindVariable:
		return "variable"

	default:
		return "unknown"
	}
}

// Value is a scalar parameter value.
//
// A Value of kind [KindVariable] names a variable that must be resolved to a
// concrete scalar before it is handed to a generator.
type Value struct {
	kind Kind
	str  string // KindString, KindVariable
	num  int64  // KindInteger
	real float64
	bit  bool
}

// StringValue returns a string Value.
func StringValue(s string) Value { return Value{kind: KindString, str: s} }

// IntValue returns an integer Value.
func IntValue(i int64) Value { return Value{kind: KindInteger, num: i} }

// FloatValue returns a float Value.
func FloatValue(f float64) Value { return Value{kind: KindFloat, real: f} }

// BoolValue returns a boolean Value.
func BoolValue(b bool) Value { return Value{kind: KindBool, bit: b} }

// VarRef returns a reference to the variable with the given name.
func VarRef(name string) Value { return Value{kind: KindVariable, str: name} }

// ValueOf converts a Go scalar into a Value.
// Strings, booleans, and all integer and float types are supported.
func ValueOf(v any) (Value, error) {
	switch v := v.(type) {
	case Value:
		return v, nil
	case string:
		return StringValue(v), nil
	case bool:
		return BoolValue(v), nil
	case int:
		return IntValue(int64(v)), nil
	case int8:
		return IntValue(int64(v)), nil
	case int16:
		return IntValue(int64(v)), nil
	case int32:
		return IntValue(int64(v)), nil
	case int64:
		return IntValue(v), nil
	case uint:
		return uintValue(uint64(v))
	case uint8:
		return IntValue(int64(v)), nil
	case uint16:
		return IntValue(int64(v)), nil
	case uint32:
		return IntValue(int64(v)), nil
	case uint64:
		return uintValue(v)
	case float32:
		return FloatValue(float64(v)), nil
	case float64:
		return FloatValue(v), nil
	default:
		return Value{}, fmt.Errorf("unsupported scalar type %T", v)
	}
}

func uintValue(u uint64) (Value, error) {
	if u > math.MaxInt64 {
		return Value{}, fmt.Errorf("integer %d overflows int64", u)
	}

	return IntValue(int64(u)), nil
}

// ParseLiteral interprets s the way a bare command-line value is understood:
// an integer, a float, true or false, and otherwise a string.
func ParseLiteral(s string) Value {
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return IntValue(i)
	}

	if strings.ContainsAny(s, ".eE") {
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return FloatValue(f)
		}
	}

	switch s {
	case "true":
		return BoolValue(true)
	case "false":
		return BoolValue(false)
	}

	return StringValue(s)
}

// Kind returns the kind of v.
func (v Value) Kind() Kind { return v.kind }

// IsZero reports whether v is the zero Value.
func (v Value) IsZero() bool { return v.kind == KindNone }

// Str returns the string of a string Value or the name of a variable
// reference, and "" otherwise.
func (v Value) Str() string { return v.str }

// Int returns the integer of an integer Value, and 0 otherwise.
func (v Value) Int() int64 { return v.num }

// Float returns the float of a float or integer Value, and 0 otherwise.
func (v Value) Float() float64 {
	if v.kind == KindInteger {
		return float64(v.num)
	}

	return v.real
}

// Bool returns the boolean of a bool Value, and false otherwise.
func (v Value) Bool() bool { return v.bit }

// Any returns v as a native Go value: string, int64, float64, bool, or nil.
// Variable references are returned as their "$name" spelling.
func (v Value) Any() any {
	switch v.kind {
	case KindString:
		return v.str
	case KindInteger:
		return v.num
	case KindFloat:
		return v.real
	case KindBool:
		return v.bit
	case KindVariable:
		return "$" + v.str
	default:
		return nil
	}
}

// String returns the text of v as it would be rendered into a document.
func (v Value) String() string {
	switch v.kind {
	case KindString:
		return v.str
	case KindInteger:
		return strconv.FormatInt(v.num, 10)
	case KindFloat:
		return strconv.FormatFloat(v.real, 'g', -1, 64)
	case KindBool:
		return strconv.FormatBool(v.bit)
	case KindVariable:
		return "$" + v.str
	default:
		return ""
	}
}

// Literal returns v spelled as a directive parameter literal.
func (v Value) Literal() string {
	if v.kind == KindString {
		return strconv.Quote(v.str)
	}

	if v.kind == KindFloat && !strings.ContainsAny(v.String(), ".eEnNI") {
		return v.String() + ".0"
	}

	return v.String()
}
