package lang

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/goccy/go-yaml"
)

// Format writes an indented outline of the document tree to the writer, one
// node per line. A negative indent is treated as zero.
func (doc *Document) Format(_ context.Context, w io.Writer, indent int) error {
	var err error

	indent = max(indent, 0)

	Walk(doc.Nodes, func(n Node, depth int) bool {
		if err != nil {
			return false
		}

		pad := strings.Repeat(" ", depth*indent)

		switch n := n.(type) {
		case *Text:
			_, err = fmt.Fprintf(w, "%s%s text %s\n",
				pad, n.Pos, strconv.Quote(n.Content))

		case *Directive:
			_, err = fmt.Fprintf(w, "%s%s %s%s\n",
				pad, n.Pos, n.Name(), formatParams(n.Params))
		}

		return err == nil
	})

	return err
}

// FormatJSON writes the document tree as JSON to the writer.
func (doc *Document) FormatJSON(_ context.Context, w io.Writer, indent int) error {
	var (
		jsonData []byte
		err      error
	)

	if indent > 0 {
		jsonData, err = json.MarshalIndent(doc.outline(), "", strings.Repeat(" ", indent))
	} else {
		jsonData, err = json.Marshal(doc.outline())
	}

	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(w, string(jsonData))

	return err
}

// FormatYAML writes the document tree as YAML to the writer.
func (doc *Document) FormatYAML(ctx context.Context, w io.Writer, indent int) error {
	var opts []yaml.EncodeOption
	if indent > 0 {
		opts = append(opts, yaml.Indent(indent))
	} else {
		opts = append(opts, yaml.Flow(true))
	}

	yamlData, err := yaml.MarshalContext(ctx, doc.outline(), opts...)
	if err != nil {
		return err
	}

	_, err = fmt.Fprint(w, string(yamlData))

	return err
}

func formatParams(params []Param) string {
	var sb strings.Builder

	for _, p := range params {
		sb.WriteByte(' ')
		sb.WriteString(p.Key)
		sb.WriteByte(':')
		sb.WriteString(p.Value.Literal())
	}

	return sb.String()
}

// nodeOutline is the serialized form of a [Node].
type nodeOutline struct {
	Kind      string         `json:"kind"                yaml:"kind"`
	Line      int            `json:"line"                yaml:"line"`
	Column    int            `json:"column"              yaml:"column"`
	Namespace string         `json:"namespace,omitempty" yaml:"namespace,omitempty"`
	Action    string         `json:"action,omitempty"    yaml:"action,omitempty"`
	Params    []paramOutline `json:"params,omitempty"    yaml:"params,omitempty"`
	Text      string         `json:"text,omitempty"      yaml:"text,omitempty"`
	Children  []nodeOutline  `json:"children,omitempty"  yaml:"children,omitempty"`
}

type paramOutline struct {
	Key   string `json:"key"   yaml:"key"`
	Value any    `json:"value" yaml:"value"`
	Type  string `json:"type"  yaml:"type"`
}

type docOutline struct {
	File  string        `json:"file"  yaml:"file"`
	Nodes []nodeOutline `json:"nodes" yaml:"nodes"`
}

func (doc *Document) outline() docOutline {
	return docOutline{File: doc.File, Nodes: outlineNodes(doc.Nodes)}
}

func outlineNodes(nodes []Node) []nodeOutline {
	out := make([]nodeOutline, 0, len(nodes))

	for _, n := range nodes {
		o := nodeOutline{Line: n.Position().Line, Column: n.Position().Column}

		switch n := n.(type) {
		case *Text:
			o.Kind = "text"
			o.Text = n.Content

		case *Directive:
			o.Kind = "directive"
			o.Namespace = n.Namespace
			o.Action = n.Action
			o.Children = outlineNodes(n.Children)

			for _, p := range n.Params {
				o.Params = append(o.Params, paramOutline{
					Key:   p.Key,
					Value: p.Value.Any(),
					Type:  p.Value.Kind().String(),
				})
			}
		}

		out = append(out, o)
	}

	return out
}
