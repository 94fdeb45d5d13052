package graph

import (
	"testing"
)

func TestGraph_AddEdgeCreatesEndpoints(t *testing.T) {
	g := NewGraph()
	g.AddEdge(NewEdge("A", "B"))

	if g.NodeCount() != 2 {
		t.Fatalf("Expected 2 nodes, got %d", g.NodeCount())
	}
	a, ok := g.Node("A")
	if !ok {
		t.Fatal("Expected node A to be auto-created")
	}
	if a.ID != "A" || a.Label != "A" {
		t.Errorf("Expected auto-created node with id=label=A, got %+v", a)
	}
	if _, ok := g.Node("B"); !ok {
		t.Fatal("Expected node B to be auto-created")
	}
}

func TestGraph_AddEdgeDeduplicates(t *testing.T) {
	g := NewGraph()
	g.AddEdge(NewEdge("A", "B"))
	g.AddEdge(NewEdge("A", "B"))
	g.AddEdge(NewEdge("A", "B").WithLabel("extends"))

	if g.EdgeCount() != 1 {
		t.Fatalf("Expected 1 edge, got %d", g.EdgeCount())
	}
	if edges := g.Edges(); edges[0].Label != "" {
		t.Errorf("Expected first inserted edge to be kept, got label %q", edges[0].Label)
	}

	g.AddEdge(NewEdge("B", "A"))
	if g.EdgeCount() != 2 {
		t.Fatalf("Expected reversed edge to be distinct, got %d edges", g.EdgeCount())
	}
}

func TestGraph_AddNodeUpserts(t *testing.T) {
	g := NewGraph()
	g.AddEdge(NewEdge("A", "B"))
	g.AddNode(NewNode("A", "Class A").WithMetadata(MetaType, TypeInternal))

	a, _ := g.Node("A")
	if a.Label != "Class A" || a.Metadata[MetaType] != TypeInternal {
		t.Errorf("Expected node A to be replaced, got %+v", a)
	}
	if g.NodeCount() != 2 {
		t.Errorf("Expected 2 nodes, got %d", g.NodeCount())
	}
}

func TestGraph_DependenciesAndDependents(t *testing.T) {
	g := NewGraph()
	g.AddEdge(NewEdge("A", "B"))
	g.AddEdge(NewEdge("A", "C"))
	g.AddEdge(NewEdge("C", "B"))

	deps := g.DependenciesOf("A")
	if len(deps) != 2 || deps[0].ID != "B" || deps[1].ID != "C" {
		t.Errorf("Unexpected dependencies of A: %v", ids(deps))
	}

	dependents := g.DependentsOf("B")
	if len(dependents) != 2 || dependents[0].ID != "A" || dependents[1].ID != "C" {
		t.Errorf("Unexpected dependents of B: %v", ids(dependents))
	}

	if len(g.DependenciesOf("B")) != 0 {
		t.Error("Expected B to have no dependencies")
	}
	if len(g.DependentsOf("missing")) != 0 {
		t.Error("Expected unknown node to have no dependents")
	}
}

func TestGraph_SortedViews(t *testing.T) {
	g := NewGraph()
	g.AddEdge(NewEdge("c", "a"))
	g.AddEdge(NewEdge("a", "c"))
	g.AddEdge(NewEdge("a", "b"))

	if got := ids(g.Nodes()); len(got) != 3 || got[0] != "a" || got[1] != "b" || got[2] != "c" {
		t.Errorf("Expected sorted nodes, got %v", got)
	}

	edges := g.Edges()
	want := []EdgeKey{{"a", "b"}, {"a", "c"}, {"c", "a"}}
	for i, e := range edges {
		if e.Key() != want[i] {
			t.Errorf("edge %d: expected %v, got %v", i, want[i], e.Key())
		}
	}
	if !g.HasEdge("c", "a") || g.HasEdge("b", "a") {
		t.Error("HasEdge returned unexpected result")
	}
}

func ids(nodes []*Node) []string {
	out := make([]string, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, n.ID)
	}
	return out
}
