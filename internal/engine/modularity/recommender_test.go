package modularity

import (
	"modfather/internal/engine/graph"
	"strconv"
	"strings"
	"testing"
)

func namespaceGraph(classes map[string]int, edges ...[2]string) *graph.Graph {
	g := graph.NewGraph()
	for ns, count := range classes {
		g.AddNode(graph.NewNode(ns, ns).WithMetadata(graph.MetaClasses, strconv.Itoa(count)))
	}
	for _, e := range edges {
		g.AddEdge(graph.NewEdge(e[0], e[1]))
	}
	return g
}

func TestDetectCycles_SelfCycle(t *testing.T) {
	r := NewRecommender(namespaceGraph(nil, [2]string{"A", "A"}))

	cycles := r.DetectCycles()
	if len(cycles) != 1 {
		t.Fatalf("Expected 1 cycle, got %v", cycles)
	}
	c := cycles[0]
	if c.Shape != SelfCycle || c.Severity != SeverityMedium {
		t.Errorf("Expected SelfCycle/Medium, got %s/%s", c.Shape, c.Severity)
	}
	if len(c.Namespaces) != 1 || c.Namespaces[0] != "A" {
		t.Errorf("Unexpected members %v", c.Namespaces)
	}
}

func TestDetectCycles_SimpleMutualReference(t *testing.T) {
	r := NewRecommender(namespaceGraph(nil, [2]string{"B", "A"}, [2]string{"A", "B"}))

	cycles := r.DetectCycles()
	if len(cycles) != 1 {
		t.Fatalf("Expected 1 cycle, got %v", cycles)
	}
	c := cycles[0]
	if c.Shape != Simple || c.Severity != SeverityLow || c.Edges != 2 {
		t.Errorf("Expected Simple/Low with 2 edges, got %s/%s/%d", c.Shape, c.Severity, c.Edges)
	}
	if len(c.Namespaces) != 2 || c.Namespaces[0] != "A" || c.Namespaces[1] != "B" {
		t.Errorf("Expected sorted [A B], got %v", c.Namespaces)
	}
}

func TestDetectCycles_ThreeRingIsMedium(t *testing.T) {
	r := NewRecommender(namespaceGraph(nil,
		[2]string{"A", "B"}, [2]string{"B", "C"}, [2]string{"C", "A"}))

	cycles := r.DetectCycles()
	if len(cycles) != 1 {
		t.Fatalf("Expected 1 cycle, got %v", cycles)
	}
	c := cycles[0]
	if c.Shape != Complex || c.Edges != 3 || c.Severity != SeverityMedium {
		t.Errorf("Expected Complex/Medium with 3 edges, got %s/%s/%d", c.Shape, c.Severity, c.Edges)
	}
	if strings.Join(c.Namespaces, ",") != "A,B,C" {
		t.Errorf("Unexpected members %v", c.Namespaces)
	}
}

func TestDetectCycles_SeverityThresholds(t *testing.T) {
	tests := []struct {
		edges int
		want  Severity
	}{
		{0, SeverityLow},
		{2, SeverityLow},
		{3, SeverityMedium},
		{5, SeverityMedium},
		{6, SeverityHigh},
		{12, SeverityHigh},
	}
	for _, tt := range tests {
		if got := severityFor(tt.edges); got != tt.want {
			t.Errorf("severityFor(%d) = %s, want %s", tt.edges, got, tt.want)
		}
	}

	// Fully connected triangle: six edges.
	r := NewRecommender(namespaceGraph(nil,
		[2]string{"A", "B"}, [2]string{"B", "A"},
		[2]string{"B", "C"}, [2]string{"C", "B"},
		[2]string{"A", "C"}, [2]string{"C", "A"}))
	if cycles := r.DetectCycles(); len(cycles) != 1 || cycles[0].Severity != SeverityHigh {
		t.Errorf("Expected one High cycle, got %v", cycles)
	}
}

func TestDetectCycles_AcyclicAndOrdering(t *testing.T) {
	acyclic := NewRecommender(namespaceGraph(nil, [2]string{"A", "B"}, [2]string{"B", "C"}))
	if cycles := acyclic.DetectCycles(); len(cycles) != 0 {
		t.Errorf("Expected no cycles, got %v", cycles)
	}

	r := NewRecommender(namespaceGraph(nil,
		[2]string{"Z", "Y"}, [2]string{"Y", "Z"},
		[2]string{"M", "M"},
		[2]string{"B", "A"}, [2]string{"A", "B"},
		[2]string{"A", "Z"}))
	cycles := r.DetectCycles()
	if len(cycles) != 3 {
		t.Fatalf("Expected 3 cycles, got %v", cycles)
	}
	firsts := []string{cycles[0].Namespaces[0], cycles[1].Namespaces[0], cycles[2].Namespaces[0]}
	if strings.Join(firsts, ",") != "A,M,Y" {
		t.Errorf("Expected cycles ordered by first member, got %v", firsts)
	}
}

func TestRecommendCycleBreaking(t *testing.T) {
	r := NewRecommender(namespaceGraph(nil))
	recs := r.RecommendCycleBreaking([]Cycle{
		{Namespaces: []string{"A"}, Shape: SelfCycle, Severity: SeverityMedium},
		{Namespaces: []string{`App\Http`, `App\Domain`}, Shape: Simple, Severity: SeverityLow},
		{Namespaces: []string{"A", "B", "C"}, Shape: Complex, Severity: SeverityHigh},
	})

	if len(recs) != 3 {
		t.Fatalf("Expected 3 recommendations, got %d", len(recs))
	}
	if len(recs[0].Suggestions) != 3 || !strings.Contains(recs[0].Suggestions[0], "'A'") {
		t.Errorf("Unexpected self-cycle suggestions %v", recs[0].Suggestions)
	}
	if len(recs[1].Suggestions) != 4 {
		t.Errorf("Expected header plus 3 options, got %v", recs[1].Suggestions)
	}
	if !strings.Contains(recs[1].Suggestions[3], `make App\Domain depend on abstractions from App\Http`) {
		t.Errorf("Expected both namespaces in option 3, got %q", recs[1].Suggestions[3])
	}
	if len(recs[2].Suggestions) != 5 || !strings.Contains(recs[2].Suggestions[0], "A → B → C") {
		t.Errorf("Unexpected complex suggestions %v", recs[2].Suggestions)
	}
	if !strings.HasPrefix(recs[0].Impact, "Medium impact") ||
		!strings.HasPrefix(recs[1].Impact, "Low impact") ||
		!strings.HasPrefix(recs[2].Impact, "High impact") {
		t.Errorf("Unexpected impacts: %q / %q / %q", recs[0].Impact, recs[1].Impact, recs[2].Impact)
	}
}

func TestSuggestModules_Cohesion(t *testing.T) {
	g := namespaceGraph(map[string]int{
		`App\Http`:      3,
		`App\Domain`:    2,
		`Lib\Util`:      1,
		`Standalone`:    4,
		GlobalNamespace: 7,
	},
		[2]string{`App\Http`, `App\Domain`},
		[2]string{`App\Http`, `Lib\Util`},
		[2]string{`Lib\Util`, GlobalNamespace},
	)

	mods := NewRecommender(g).SuggestModules()
	if len(mods) != 3 {
		t.Fatalf("Expected 3 modules (global excluded), got %v", mods)
	}

	byPrefix := make(map[string]ModuleSuggestion)
	for _, m := range mods {
		byPrefix[m.Prefix] = m
	}

	standalone := byPrefix["Standalone"]
	if standalone.Cohesion != 1.0 || standalone.InternalDeps != 0 || standalone.ExternalDeps != 0 {
		t.Errorf("Expected zero-edge bucket to have cohesion 1.0, got %+v", standalone)
	}
	app := byPrefix["App"]
	if app.ClassCount != 5 || app.InternalDeps != 1 || app.ExternalDeps != 1 || app.Cohesion != 0.5 {
		t.Errorf("Unexpected App module %+v", app)
	}
	lib := byPrefix["Lib"]
	if lib.Cohesion != 0 || lib.ExternalDeps != 1 {
		t.Errorf("Unexpected Lib module %+v", lib)
	}

	if mods[0].Prefix != "Standalone" || mods[1].Prefix != "App" || mods[2].Prefix != "Lib" {
		t.Errorf("Expected modules sorted by cohesion, got %s, %s, %s", mods[0].Prefix, mods[1].Prefix, mods[2].Prefix)
	}
}

func TestSuggestModules_StableTiesAndCycleMarker(t *testing.T) {
	g := namespaceGraph(map[string]int{"Beta": 1, "Alpha": 1, "Gamma": 1},
		[2]string{`Alpha\X`, `Alpha\Y`},
		[2]string{`Alpha\Y`, `Alpha\X`},
	)

	mods := NewRecommender(g).SuggestModules()
	if len(mods) != 3 {
		t.Fatalf("Expected 3 modules, got %v", mods)
	}
	for _, m := range mods {
		if m.Cohesion != 1.0 {
			t.Errorf("Expected cohesion 1.0 for %s, got %f", m.Prefix, m.Cohesion)
		}
	}
	if mods[0].Prefix != "Alpha" || mods[1].Prefix != "Beta" || mods[2].Prefix != "Gamma" {
		t.Errorf("Expected ties to keep discovery order, got %s, %s, %s", mods[0].Prefix, mods[1].Prefix, mods[2].Prefix)
	}
	if !mods[0].HasCycles || !strings.Contains(mods[0].Name, "contains cycles") {
		t.Errorf("Expected Alpha to be flagged, got %+v", mods[0])
	}
	if mods[1].HasCycles || mods[1].Name != "Beta" {
		t.Errorf("Expected Beta to be unflagged, got %+v", mods[1])
	}
}

func TestGenerateReport(t *testing.T) {
	g := namespaceGraph(map[string]int{`App\A`: 1, `App\B`: 1, `App\C`: 1, "Other": 1},
		[2]string{`App\A`, `App\B`},
		[2]string{`App\B`, `App\A`},
		[2]string{`App\C`, `App\C`},
	)
	before := g.EdgeCount()

	report := NewRecommender(g).GenerateReport()
	if report.TotalNamespaces != 4 {
		t.Errorf("Expected 4 namespaces, got %d", report.TotalNamespaces)
	}
	if report.NamespacesInCycles != 3 {
		t.Errorf("Expected 3 namespaces in cycles, got %d", report.NamespacesInCycles)
	}
	if len(report.Cycles) != 2 || len(report.Recommendations) != 2 {
		t.Errorf("Expected 2 cycles with recommendations, got %d/%d", len(report.Cycles), len(report.Recommendations))
	}
	if len(report.ModuleSuggestions) != 2 {
		t.Errorf("Expected 2 module suggestions, got %d", len(report.ModuleSuggestions))
	}
	if g.EdgeCount() != before {
		t.Error("Recommender must not mutate the source graph")
	}
}

func TestMetrics(t *testing.T) {
	g := namespaceGraph(map[string]int{"A": 2},
		[2]string{"A", "B"}, [2]string{"C", "B"})
	g.AddNode(graph.NewNode("D", "D").WithMetadata(graph.MetaClasses, "n/a"))

	r := NewRecommender(g)
	a, _ := r.Metrics("A")
	if a.Classes != 2 || a.Outgoing != 1 || a.Incoming != 0 {
		t.Errorf("Unexpected metrics for A: %+v", a)
	}
	b, _ := r.Metrics("B")
	if b.Incoming != 2 {
		t.Errorf("Expected B to have 2 incoming edges, got %+v", b)
	}
	if d, ok := r.Metrics("D"); !ok || d.Classes != 0 {
		t.Errorf("Expected malformed class count to read as 0, got %+v", d)
	}
	if _, ok := r.Metrics("missing"); ok {
		t.Error("Expected unknown namespace to have no metrics")
	}
}
