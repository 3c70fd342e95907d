package vars

import (
	"context"
	"os"
	"strings"

	"github.com/ardnew/rdmx/lang"
)

// DefaultEnvPrefix selects the environment variables read by [Env] in the
// command line tool.
const DefaultEnvPrefix = "RDMX_"

// Map is a static [Source] of Go scalars.
type Map map[string]any

// Variables implements [Source]. Nested maps are flattened as in [YAMLFile].
func (m Map) Variables(context.Context) (Table, error) {
	t := make(Table, len(m))

	var err error

	flatten(t, "", map[string]any(m), func(_ string, e *lang.Error) {
		if err == nil {
			err = e
		}
	})

	if err != nil {
		return nil, err
	}

	return t, nil
}

// Env is a [Source] of the process environment. Only variables whose name
// begins with Prefix are used, with the prefix removed. Values are
// interpreted with [lang.ParseLiteral].
type Env struct {
	Prefix string

	// Environ returns "key=value" pairs. It defaults to [os.Environ].
	Environ func() []string
}

// Variables implements [Source].
func (e Env) Variables(context.Context) (Table, error) {
	environ := e.Environ
	if environ == nil {
		environ = os.Environ
	}

	t := make(Table)

	for _, kv := range environ() {
		key, value, ok := strings.Cut(kv, "=")
		if !ok {
			continue
		}

		name, ok := strings.CutPrefix(key, e.Prefix)
		if !ok || !IsName(name) {
			continue
		}

		t[name] = lang.ParseLiteral(value)
	}

	return t, nil
}
