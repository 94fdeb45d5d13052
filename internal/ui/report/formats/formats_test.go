package formats

import (
	"encoding/json"
	"modfather/internal/core/errors"
	"modfather/internal/engine/graph"
	"modfather/internal/engine/modularity"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

func sampleReport() *modularity.Report {
	g := graph.NewGraph()
	g.AddNode(graph.NewNode(`App\Http`, `App\Http`).WithMetadata(graph.MetaClasses, "2"))
	g.AddNode(graph.NewNode(`App\Domain`, `App\Domain`).WithMetadata(graph.MetaClasses, "3"))
	g.AddEdge(graph.NewEdge(`App\Http`, `App\Domain`))
	g.AddEdge(graph.NewEdge(`App\Domain`, `App\Http`))
	return modularity.NewRecommender(g).GenerateReport()
}

func TestCSVGenerator(t *testing.T) {
	t.Parallel()

	g := graph.NewGraph()
	g.AddEdge(graph.NewEdge("b", "c"))
	g.AddEdge(graph.NewEdge(`App\A`, `App\"B"`))
	g.AddEdge(graph.NewEdge("a,1", "b"))

	out, err := NewCSVGenerator(true).Generate(g)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	expected := "from,to\n" +
		"App\\A,\"App\\\"\"B\"\"\"\n" +
		"\"a,1\",b\n" +
		"b,c\n"
	if out != expected {
		t.Fatalf("expected %q, got %q", expected, out)
	}

	noHeader, _ := NewCSVGenerator(false).Generate(g)
	if strings.HasPrefix(noHeader, "from,to") {
		t.Errorf("expected no header, got %q", noHeader)
	}
}

func TestTextGenerator_WithCycles(t *testing.T) {
	t.Parallel()

	out, err := NewTextGenerator().Generate(sampleReport())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, want := range []string{
		"# PHP Modularization Analysis Report",
		"- Total namespaces analyzed: 2",
		"- Namespaces involved in cycles: 2",
		"- Cycles detected: 1",
		"### Cycle #1",
		"**Severity**: 🟢 Low",
		"**Type**: Simple",
		"- `App\\Domain`",
		"**Impact**: Low impact",
		"Option 2: Move coupled classes into one namespace",
		"### 1. App ⚠️ (contains cycles)",
		"- **Classes**: 5",
		"- **Cohesion Score**: 1.00 (higher is better)",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected report to contain %q\n%s", want, out)
		}
	}
}

func TestTextGenerator_Acyclic(t *testing.T) {
	t.Parallel()

	out, err := NewTextGenerator().Generate(&modularity.Report{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "No Circular Dependencies") {
		t.Errorf("expected acyclic section\n%s", out)
	}
	if _, err := NewTextGenerator().Generate(nil); err == nil {
		t.Error("expected error for nil report")
	}
}

func TestStructuredGenerator(t *testing.T) {
	t.Parallel()

	jsonGen, err := NewStructuredGenerator(FormatJSON)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out, err := jsonGen.GenerateReport(sampleReport())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var decoded map[string]any
	if err := json.Unmarshal([]byte(out), &decoded); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if decoded["total_namespaces"].(float64) != 2 {
		t.Errorf("unexpected total_namespaces: %v", decoded["total_namespaces"])
	}

	yamlGen, _ := NewStructuredGenerator(FormatYAML)
	out, err = yamlGen.GenerateGraph("deps", classGraph())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var doc struct {
		Name  string `yaml:"name"`
		Nodes []struct {
			ID string `yaml:"id"`
		} `yaml:"nodes"`
		Edges []struct {
			From string `yaml:"from"`
			To   string `yaml:"to"`
		} `yaml:"edges"`
	}
	if err := yaml.Unmarshal([]byte(out), &doc); err != nil {
		t.Fatalf("invalid YAML: %v", err)
	}
	if doc.Name != "deps" || len(doc.Nodes) != 4 || len(doc.Edges) != 3 {
		t.Errorf("unexpected YAML graph: %+v", doc)
	}

	if _, err := NewStructuredGenerator(FormatDOT); err == nil {
		t.Error("expected dot to be rejected by the structured generator")
	}
}

func TestParseFormatAndRender(t *testing.T) {
	t.Parallel()

	if f, err := ParseFormat(" YAML "); err != nil || f != FormatYAML {
		t.Errorf("expected yaml, got %q (%v)", f, err)
	}
	if _, err := ParseFormat("svg"); !errors.IsCode(err, errors.CodeValidationError) {
		t.Errorf("expected validation error, got %v", err)
	}

	if _, err := RenderGraph(FormatText, classGraph(), RenderOptions{}); !errors.IsCode(err, errors.CodeNotSupported) {
		t.Errorf("expected text to be unsupported for graphs, got %v", err)
	}
	if _, err := RenderReport(FormatCSV, sampleReport()); !errors.IsCode(err, errors.CodeNotSupported) {
		t.Errorf("expected csv to be unsupported for reports, got %v", err)
	}

	out, err := RenderGraph(FormatCSV, classGraph(), RenderOptions{CSVHeader: true})
	if err != nil || !strings.HasPrefix(out, "from,to\n") {
		t.Errorf("unexpected csv rendering %q (%v)", out, err)
	}
	out, err = RenderGraph(FormatDOT, classGraph(), RenderOptions{GraphName: "g"})
	if err != nil || !strings.HasPrefix(out, "digraph g {") {
		t.Errorf("unexpected dot rendering %q (%v)", out, err)
	}
}
