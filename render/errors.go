package render

import (
	"log/slog"
	"slices"
	"strconv"
	"strings"

	"github.com/agext/levenshtein"
	"github.com/sahilm/fuzzy"

	"github.com/ardnew/rdmx/lang"
)

// Sentinel errors produced while resolving and rendering directives.
// They match derived errors with [errors.Is].
var (
	ErrUnresolvedGenerator = lang.NewError(
		"unresolved_generator", "no generator registered for namespace")
	ErrUnknownAction = lang.NewError(
		"unknown_action", "unknown action")
	ErrUndefVar = lang.NewError(
		"undef_var", "undefined variable")
	ErrParamsValidation = lang.NewError(
		"params_validation_error", "invalid parameters")
	ErrGenerator = lang.NewError(
		"generator_error", "generator failed")
	ErrInvalidGeneratorReturn = lang.NewError(
		"invalid_generator_return", "generator returned an invalid result")
	ErrSectionNotFound = lang.NewError(
		"section_not_found", "section not found")
	ErrDuplicateNamespace = lang.NewError(
		"duplicate_namespace", "namespace already registered")
)

// locate attributes e to the header of directive d.
func locate(e *lang.Error, d *lang.Directive) *lang.Error {
	return e.At(d.File, d.Pos).
		WithSource(d.RawHeader, d.Pos).
		With(slog.String("directive", d.Name()))
}

// maxEditDistance bounds the typos for which a name is suggested.
const maxEditDistance = 2

// suggest returns the candidates that name may have been meant to be: those
// it abbreviates, then those within a small edit distance.
func suggest(name string, candidates []string) []string {
	var out []string

	for _, m := range fuzzy.Find(name, candidates) {
		out = append(out, m.Str)
	}

	for _, c := range candidates {
		if slices.Contains(out, c) {
			continue
		}

		if levenshtein.Distance(name, c, nil) <= maxEditDistance {
			out = append(out, c)
		}
	}

	return out
}

// unknown wraps name and any suggestions for it in a copy of e.
func unknown(e *lang.Error, name string, candidates []string) *lang.Error {
	s := suggest(name, candidates)
	if len(s) == 0 {
		return e.Wrapf("%q", name).With(slog.String("name", name))
	}

	quoted := make([]string, len(s))
	for i, c := range s {
		quoted[i] = strconv.Quote(c)
	}

	return e.Wrapf("%q (did you mean %s?)", name, strings.Join(quoted, " or ")).
		With(slog.String("name", name), slog.Any("suggestions", s))
}
