package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/goccy/go-yaml"

	"github.com/ardnew/rdmx/render"
)

// Actions lists the actions of every registered namespace with their
// parameters.
type Actions struct {
	Format string `default:"text" enum:"text,json,yaml" help:"Output format (${enum})." short:"f"`

	Namespace []string `arg:"" help:"Namespaces to list (default all)." optional:""`
}

type actionInfo struct {
	Name      string      `json:"name"                yaml:"name"`
	Doc       string      `json:"doc,omitempty"       yaml:"doc,omitempty"`
	Container string      `json:"container,omitempty" yaml:"container,omitempty"`
	Params    []paramInfo `json:"params,omitempty"    yaml:"params,omitempty"`
}

type paramInfo struct {
	Key      string `json:"key"               yaml:"key"`
	Type     string `json:"type"              yaml:"type"`
	Required bool   `json:"required"          yaml:"required"`
	Default  any    `json:"default,omitempty" yaml:"default,omitempty"`
	Doc      string `json:"doc,omitempty"     yaml:"doc,omitempty"`
}

// describe returns the actions of the selected namespaces in sorted order.
func (a *Actions) describe(reg *render.Registry) ([]actionInfo, error) {
	namespaces := reg.Namespaces()

	if len(a.Namespace) > 0 {
		for _, ns := range a.Namespace {
			if !slices.Contains(namespaces, ns) {
				return nil, render.ErrUnresolvedGenerator.Wrapf("%q", ns).
					With(slog.String("name", ns))
			}
		}

		namespaces = slices.Compact(slices.Sorted(slices.Values(a.Namespace)))
	}

	var infos []actionInfo

	for _, ns := range namespaces {
		g, _ := reg.Lookup(ns)
		catalog := g.Catalog()

		for _, name := range catalog.Names() {
			act := catalog[name]

			info := actionInfo{
				Name:      ns + ":" + name,
				Doc:       act.Doc,
				Container: act.Container,
			}

			for _, key := range act.Params.Keys() {
				spec := act.Params[key]

				info.Params = append(info.Params, paramInfo{
					Key:      key,
					Type:     spec.Type.String(),
					Required: spec.Required,
					Default:  spec.Default.Any(),
					Doc:      spec.Doc,
				})
			}

			infos = append(infos, info)
		}
	}

	return infos, nil
}

// Run executes the actions command.
func (a *Actions) Run(ctx context.Context) error {
	reg, err := Registry()
	if err != nil {
		return err
	}

	infos, err := a.describe(reg)
	if err != nil {
		return err
	}

	w := stdout(ctx)

	switch a.Format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")

		if err := enc.Encode(infos); err != nil {
			return ErrMarshal.Wrap(err).With(slog.String("format", a.Format))
		}

	case "yaml":
		data, err := yaml.MarshalContext(ctx, infos)
		if err != nil {
			return ErrMarshal.Wrap(err).With(slog.String("format", a.Format))
		}

		if _, err := w.Write(data); err != nil {
			return err
		}

	case "text":
		_, err := fmt.Fprintln(w, actionTable(infos))

		return err

	default:
		return ErrUnknownFormat.With(slog.String("format", a.Format))
	}

	return nil
}

// actionTable renders one row per parameter, with the action named on its
// first row.
func actionTable(infos []actionInfo) string {
	t := table.New().
		Border(lipgloss.HiddenBorder()).
		Headers("ACTION", "PARAMETER", "TYPE", "DEFAULT", "DESCRIPTION")

	for _, info := range infos {
		t.Row(info.Name, "", "", "", info.Doc)

		for _, p := range info.Params {
			def := "required"
			if !p.Required {
				def = fmt.Sprint(p.Default)
				if s, ok := p.Default.(string); ok {
					def = fmt.Sprintf("%q", s)
				} else if p.Default == nil {
					def = "-"
				}
			}

			doc := p.Doc
			if p.Key == info.Container {
				doc = strings.TrimSpace(doc + " (section name)")
			}

			t.Row("", p.Key, p.Type, def, doc)
		}
	}

	return t.String()
}
