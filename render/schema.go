package render

import (
	"fmt"
	"maps"
	"slices"
	"strconv"

	"github.com/ardnew/rdmx/lang"
)

// Type is the type a parameter value must have.
type Type int

const (
	TypeAny Type = iota
	TypeString
	TypeInteger
	TypeFloat
	TypeBool
)

// String returns a string representation of the type.
func (t Type) String() string {
	switch t {
	case TypeAny:
		return "any"
	case TypeString:
		return "string"
	case TypeInteger:
		return "integer"
	case TypeFloat:
		return "float"
	case TypeBool:
		return "bool"
	default:
		return "Type(" + strconv.Itoa(int(t)) + ")"
	}
}

// Accepts reports whether v is of type t, returning v converted to t.
// Integers are accepted as floats.
func (t Type) Accepts(v lang.Value) (lang.Value, bool) {
	switch k := v.Kind(); t {
	case TypeAny:
		return v, k != lang.KindNone && k != lang.KindVariable
	case TypeString:
		return v, k == lang.KindString
	case TypeInteger:
		return v, k == lang.KindInteger
	case TypeFloat:
		if k == lang.KindInteger {
			return lang.FloatValue(v.Float()), true
		}

		return v, k == lang.KindFloat
	case TypeBool:
		return v, k == lang.KindBool
	default:
		return v, false
	}
}

// ParamSpec describes one parameter of an action.
type ParamSpec struct {
	Type     Type
	Required bool
	Default  lang.Value // applied when an optional parameter is omitted
	Doc      string
}

// Schema maps the parameter names of an action to their specs.
//
// A nil Schema accepts any parameter of any type. A non-nil Schema rejects
// parameters it does not name, so an empty Schema accepts none.
type Schema map[string]ParamSpec

// Keys returns the parameter names of s in sorted order.
func (s Schema) Keys() []string {
	return slices.Sorted(maps.Keys(s))
}

// Reason classifies a [SchemaError].
type Reason string

const (
	ReasonUnknown    Reason = "unknown parameter"
	ReasonDuplicate  Reason = "duplicate parameter"
	ReasonType       Reason = "wrong type"
	ReasonMissing    Reason = "missing required parameter"
	ReasonUnresolved Reason = "unresolved variable"
)

// SchemaError describes why a parameter list does not satisfy a [Schema].
// Pos is the position of the offending key, or invalid for a missing one.
type SchemaError struct {
	Key    string
	Reason Reason
	Want   Type
	Got    lang.Kind
	Pos    lang.Position
}

func (e *SchemaError) Error() string {
	if e.Reason == ReasonType {
		return fmt.Sprintf("%s %q: want %s, got %s", e.Reason, e.Key, e.Want, e.Got)
	}

	return fmt.Sprintf("%s %q", e.Reason, e.Key)
}

// Validate checks params against s and returns them in source order followed
// by the defaults of omitted parameters in key order.
//
// Every key may appear at most once, whatever the schema.
func (s Schema) Validate(params []lang.Param) (Params, error) {
	var out Params

	seen := make(map[string]bool, len(params))

	for _, p := range params {
		if seen[p.Key] {
			return Params{}, &SchemaError{
				Key: p.Key, Reason: ReasonDuplicate, Pos: p.Pos,
			}
		}

		seen[p.Key] = true

		if p.Value.Kind() == lang.KindVariable {
			return Params{}, &SchemaError{
				Key: p.Key, Reason: ReasonUnresolved, Got: lang.KindVariable, Pos: p.Pos,
			}
		}

		spec, ok := s[p.Key]
		if s != nil && !ok {
			return Params{}, &SchemaError{
				Key: p.Key, Reason: ReasonUnknown, Pos: p.Pos,
			}
		}

		v, ok := spec.Type.Accepts(p.Value)
		if !ok {
			return Params{}, &SchemaError{
				Key:    p.Key,
				Reason: ReasonType,
				Want:   spec.Type,
				Got:    p.Value.Kind(),
				Pos:    p.Pos,
			}
		}

		out.set(p.Key, v)
	}

	for _, key := range s.Keys() {
		spec := s[key]

		switch {
		case seen[key]:
		case spec.Required:
			return Params{}, &SchemaError{
				Key: key, Reason: ReasonMissing, Want: spec.Type,
			}
		case !spec.Default.IsZero():
			out.set(key, spec.Default)
		}
	}

	return out, nil
}
