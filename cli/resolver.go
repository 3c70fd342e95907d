package cli

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"
)

// resolve returns a [kong.ConfigurationLoader] for YAML configuration files.
//
// Flags are looked up by name, with hyphens optionally written as
// underscores, either at the top level or inside a mapping named after the
// flag's group:
//
//	log-level: debug
//	backup: false
//	log:
//	  format: json
//	var:
//	  - project=rdmx
//
// Command line flags override configuration values.
func resolve(ctx context.Context) func(r io.Reader) (kong.Resolver, error) {
	return func(r io.Reader) (kong.Resolver, error) {
		var doc map[string]any

		if err := yaml.NewDecoder(r).DecodeContext(ctx, &doc); err != nil &&
			err != io.EOF {
			return nil, fmt.Errorf("configuration: %w", err)
		}

		return config(doc), nil
	}
}

// config implements [kong.Resolver] over a decoded YAML mapping.
type config map[string]any

// Validate implements [kong.Resolver].
func (config) Validate(*kong.Application) error { return nil }

// Resolve implements [kong.Resolver].
func (c config) Resolve(_ *kong.Context, _ *kong.Path, flag *kong.Flag) (any, error) {
	v, ok := c.lookup(flag)
	if !ok {
		return nil, nil
	}

	return flagValue(v), nil
}

func (c config) lookup(flag *kong.Flag) (any, bool) {
	for _, name := range []string{flag.Name, strings.ReplaceAll(flag.Name, "-", "_")} {
		if v, ok := c[name]; ok {
			return v, true
		}
	}

	if flag.Group == nil {
		return nil, false
	}

	sub, ok := c[flag.Group.Key].(map[string]any)
	if !ok {
		return nil, false
	}

	rest, ok := strings.CutPrefix(flag.Name, flag.Group.Key+"-")
	if !ok {
		return nil, false
	}

	for _, name := range []string{rest, strings.ReplaceAll(rest, "-", "_")} {
		if v, ok := sub[name]; ok {
			return v, true
		}
	}

	return nil, false
}

// flagValue converts a decoded YAML value into the form kong expects:
// numbers as strings, including inside sequences.
func flagValue(v any) any {
	switch v := v.(type) {
	case int64:
		return strconv.FormatInt(v, 10)
	case uint64:
		return strconv.FormatUint(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case []any:
		s := make([]any, len(v))
		for i, e := range v {
			s[i] = flagValue(e)
		}

		return s
	default:
		return v
	}
}
