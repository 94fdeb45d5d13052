// # internal/ui/report/formats/dot.go
package formats

import (
	"fmt"
	"io"
	"modfather/internal/engine/graph"
	"modfather/internal/shared/util"
	"strings"
	"unicode"
)

// Attr is a single DOT attribute; order is preserved on output.
type Attr struct {
	Key   string
	Value string
}

type DOTGenerator struct {
	GraphName  string
	GraphAttrs []Attr
	NodeAttrs  []Attr
	EdgeAttrs  []Attr
}

func NewDOTGenerator(graphName string) *DOTGenerator {
	return &DOTGenerator{
		GraphName: graphName,
		GraphAttrs: []Attr{
			{"rankdir", "LR"},
			{"splines", "ortho"},
		},
		NodeAttrs: []Attr{
			{"shape", "box"},
			{"style", "rounded,filled"},
			{"fillcolor", "lightblue"},
		},
		EdgeAttrs: []Attr{
			{"color", "gray"},
		},
	}
}

func (d *DOTGenerator) Generate(g *graph.Graph) (string, error) {
	var buf strings.Builder
	if err := d.Write(&buf, g); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Write renders g with nodes sorted by id and edges by (from, to), so equal
// graphs always produce identical bytes.
func (d *DOTGenerator) Write(w io.Writer, g *graph.Graph) error {
	var buf strings.Builder

	buf.WriteString(fmt.Sprintf("digraph %s {\n", escapeID(d.GraphName)))
	for _, attr := range d.GraphAttrs {
		buf.WriteString(fmt.Sprintf("  %s=\"%s\";\n", attr.Key, escapeString(attr.Value)))
	}
	buf.WriteString("\n")
	buf.WriteString("  node [" + attrList(d.NodeAttrs) + "];\n")
	buf.WriteString("  edge [" + attrList(d.EdgeAttrs) + "];\n")
	buf.WriteString("\n")

	for _, node := range g.Nodes() {
		attrs := []Attr{{"label", node.Label}}
		for _, key := range util.SortedStringKeys(node.Metadata) {
			attrs = append(attrs, Attr{key, node.Metadata[key]})
		}
		buf.WriteString(fmt.Sprintf("  %s [%s];\n", escapeID(node.ID), attrList(attrs)))
	}
	buf.WriteString("\n")

	for _, edge := range g.Edges() {
		buf.WriteString(fmt.Sprintf("  %s -> %s", escapeID(edge.From), escapeID(edge.To)))
		var attrs []Attr
		if edge.Label != "" {
			attrs = append(attrs, Attr{"label", edge.Label})
		}
		for _, key := range util.SortedStringKeys(edge.Metadata) {
			attrs = append(attrs, Attr{key, edge.Metadata[key]})
		}
		if len(attrs) > 0 {
			buf.WriteString(" [" + attrList(attrs) + "]")
		}
		buf.WriteString(";\n")
	}
	buf.WriteString("}\n")

	_, err := io.WriteString(w, buf.String())
	return err
}

func attrList(attrs []Attr) string {
	parts := make([]string, 0, len(attrs))
	for _, attr := range attrs {
		parts = append(parts, fmt.Sprintf("%s=\"%s\"", escapeID(attr.Key), escapeString(attr.Value)))
	}
	return strings.Join(parts, ", ")
}

// dotKeywords may not appear as bare identifiers; DOT matches them
// case-insensitively.
var dotKeywords = map[string]bool{
	"node": true, "edge": true, "graph": true, "digraph": true, "subgraph": true, "strict": true,
}

// escapeID leaves plain identifiers bare and quotes everything else.
func escapeID(s string) string {
	if s == "" || dotKeywords[strings.ToLower(s)] || unicode.IsDigit(rune(s[0])) {
		return `"` + escapeString(s) + `"`
	}
	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' {
			return `"` + escapeString(s) + `"`
		}
	}
	return s
}

func escapeString(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	return strings.ReplaceAll(s, "\n", `\n`)
}
