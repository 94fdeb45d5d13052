// # internal/ui/report/formats/structured.go
package formats

import (
	"bytes"
	"encoding/json"
	"fmt"
	"modfather/internal/engine/graph"
	"modfather/internal/engine/modularity"

	"gopkg.in/yaml.v3"
)

type graphDocument struct {
	Name  string         `json:"name" yaml:"name"`
	Nodes []nodeDocument `json:"nodes" yaml:"nodes"`
	Edges []edgeDocument `json:"edges" yaml:"edges"`
}

type nodeDocument struct {
	ID       string            `json:"id" yaml:"id"`
	Label    string            `json:"label" yaml:"label"`
	Metadata map[string]string `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

type edgeDocument struct {
	From     string            `json:"from" yaml:"from"`
	To       string            `json:"to" yaml:"to"`
	Label    string            `json:"label,omitempty" yaml:"label,omitempty"`
	Metadata map[string]string `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

// StructuredGenerator serializes graphs and reports as YAML or JSON.
type StructuredGenerator struct {
	format Format
}

func NewStructuredGenerator(format Format) (*StructuredGenerator, error) {
	if format != FormatYAML && format != FormatJSON {
		return nil, fmt.Errorf("structured output supports yaml and json, got %q", format)
	}
	return &StructuredGenerator{format: format}, nil
}

func (s *StructuredGenerator) GenerateGraph(name string, g *graph.Graph) (string, error) {
	doc := graphDocument{
		Name:  name,
		Nodes: make([]nodeDocument, 0, g.NodeCount()),
		Edges: make([]edgeDocument, 0, g.EdgeCount()),
	}
	for _, n := range g.Nodes() {
		doc.Nodes = append(doc.Nodes, nodeDocument{ID: n.ID, Label: n.Label, Metadata: n.Metadata})
	}
	for _, e := range g.Edges() {
		doc.Edges = append(doc.Edges, edgeDocument{From: e.From, To: e.To, Label: e.Label, Metadata: e.Metadata})
	}
	return s.encode(doc)
}

func (s *StructuredGenerator) GenerateReport(report *modularity.Report) (string, error) {
	if report == nil {
		return "", fmt.Errorf("nil report")
	}
	return s.encode(report)
}

func (s *StructuredGenerator) encode(v any) (string, error) {
	if s.format == FormatJSON {
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return "", err
		}
		return string(data) + "\n", nil
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return "", err
	}
	if err := enc.Close(); err != nil {
		return "", err
	}
	return buf.String(), nil
}
