package render

import (
	"iter"
	"slices"

	"github.com/ardnew/rdmx/lang"
)

// Params is an ordered set of validated parameter values.
// The zero Params is empty.
type Params struct {
	keys   []string
	values map[string]lang.Value
}

func (p *Params) set(key string, v lang.Value) {
	if p.values == nil {
		p.values = make(map[string]lang.Value)
	}

	if _, ok := p.values[key]; !ok {
		p.keys = append(p.keys, key)
	}

	p.values[key] = v
}

// Len returns the number of parameters.
func (p Params) Len() int { return len(p.keys) }

// Keys returns the parameter names in order.
func (p Params) Keys() []string { return slices.Clone(p.keys) }

// Get returns the value of the named parameter.
func (p Params) Get(key string) (lang.Value, bool) {
	v, ok := p.values[key]

	return v, ok
}

// String returns the text of the named parameter, or "" if it is absent.
func (p Params) String(key string) string { return p.values[key].String() }

// Int returns the named integer parameter, or 0.
func (p Params) Int(key string) int64 { return p.values[key].Int() }

// Float returns the named numeric parameter, or 0.
func (p Params) Float(key string) float64 { return p.values[key].Float() }

// Bool returns the named boolean parameter, or false.
func (p Params) Bool(key string) bool { return p.values[key].Bool() }

// All returns an iterator over the parameters in order.
func (p Params) All() iter.Seq2[string, lang.Value] {
	return func(yield func(string, lang.Value) bool) {
		for _, k := range p.keys {
			if !yield(k, p.values[k]) {
				return
			}
		}
	}
}

// Map returns the parameters as native Go values.
func (p Params) Map() map[string]any {
	m := make(map[string]any, len(p.keys))
	for k, v := range p.All() {
		m[k] = v.Any()
	}

	return m
}
