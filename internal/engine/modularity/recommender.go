// Package modularity finds circular namespace dependencies and proposes module
// groupings for a namespace-level dependency graph.
package modularity

import (
	"fmt"
	"modfather/internal/engine/graph"
	"sort"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/graph/simple"
)

// GlobalNamespace is the id of the global namespace; it never joins a module.
const GlobalNamespace = `\`

// NamespaceMetrics are computed once per recommender.
type NamespaceMetrics struct {
	Classes  int `json:"classes" yaml:"classes"`
	Incoming int `json:"incoming" yaml:"incoming"`
	Outgoing int `json:"outgoing" yaml:"outgoing"`
}

// ModuleSuggestion is a group of namespaces sharing a top-level segment.
type ModuleSuggestion struct {
	// Name is the display name; it carries a marker when HasCycles is set.
	Name         string   `json:"name" yaml:"name"`
	Prefix       string   `json:"prefix" yaml:"prefix"`
	Namespaces   []string `json:"namespaces" yaml:"namespaces"`
	ClassCount   int      `json:"class_count" yaml:"class_count"`
	InternalDeps int      `json:"internal_dependencies" yaml:"internal_dependencies"`
	ExternalDeps int      `json:"external_dependencies" yaml:"external_dependencies"`
	Cohesion     float64  `json:"cohesion_score" yaml:"cohesion_score"`
	HasCycles    bool     `json:"has_cycles" yaml:"has_cycles"`
}

// CycleRecommendation is advisory text for breaking one cycle.
type CycleRecommendation struct {
	Cycle       Cycle    `json:"cycle" yaml:"cycle"`
	Suggestions []string `json:"suggestions" yaml:"suggestions"`
	Impact      string   `json:"impact" yaml:"impact"`
}

// Report is the full modularization analysis.
type Report struct {
	TotalNamespaces    int                   `json:"total_namespaces" yaml:"total_namespaces"`
	NamespacesInCycles int                   `json:"namespaces_in_cycles" yaml:"namespaces_in_cycles"`
	Cycles             []Cycle               `json:"cycles" yaml:"cycles"`
	Recommendations    []CycleRecommendation `json:"recommendations" yaml:"recommendations"`
	ModuleSuggestions  []ModuleSuggestion    `json:"module_suggestions" yaml:"module_suggestions"`
}

// Recommender holds a read-only view of a namespace graph. It never mutates
// the graph it was built from.
type Recommender struct {
	names     []string
	index     map[string]int64
	directed  *simple.DirectedGraph
	selfLoops map[string]bool
	adjacency map[string][]string
	metrics   map[string]NamespaceMetrics
}

// NewRecommender snapshots g. Namespace class counts are read from the
// "classes" node metadata; missing or malformed values count as zero.
func NewRecommender(g *graph.Graph) *Recommender {
	r := &Recommender{
		index:     make(map[string]int64),
		directed:  simple.NewDirectedGraph(),
		selfLoops: make(map[string]bool),
		adjacency: make(map[string][]string),
		metrics:   make(map[string]NamespaceMetrics),
	}

	for _, node := range g.Nodes() {
		id := int64(len(r.names))
		r.names = append(r.names, node.ID)
		r.index[node.ID] = id
		r.directed.AddNode(simple.Node(id))

		classes, _ := strconv.Atoi(node.Metadata[graph.MetaClasses])
		r.metrics[node.ID] = NamespaceMetrics{Classes: classes}
	}

	for _, edge := range g.Edges() {
		fromID, fromOK := r.index[edge.From]
		toID, toOK := r.index[edge.To]
		if !fromOK || !toOK {
			continue
		}
		r.adjacency[edge.From] = append(r.adjacency[edge.From], edge.To)

		from := r.metrics[edge.From]
		from.Outgoing++
		r.metrics[edge.From] = from
		to := r.metrics[edge.To]
		to.Incoming++
		r.metrics[edge.To] = to

		// simple graphs reject self edges
		if fromID == toID {
			r.selfLoops[edge.From] = true
			continue
		}
		r.directed.SetEdge(simple.Edge{F: simple.Node(fromID), T: simple.Node(toID)})
	}

	return r
}

// Metrics returns the counts recorded for ns.
func (r *Recommender) Metrics(ns string) (NamespaceMetrics, bool) {
	m, ok := r.metrics[ns]
	return m, ok
}

// RecommendCycleBreaking attaches templated advice and an impact statement to
// each cycle.
func (r *Recommender) RecommendCycleBreaking(cycles []Cycle) []CycleRecommendation {
	out := make([]CycleRecommendation, 0, len(cycles))
	for _, c := range cycles {
		out = append(out, CycleRecommendation{
			Cycle:       c,
			Suggestions: breakingSuggestions(c),
			Impact:      impactOf(c.Severity),
		})
	}
	return out
}

func breakingSuggestions(c Cycle) []string {
	switch c.Shape {
	case SelfCycle:
		return []string{
			fmt.Sprintf("Namespace '%s' has internal circular dependencies", c.Namespaces[0]),
			"Consider splitting into separate sub-namespaces",
			"Extract interfaces to break direct class dependencies",
		}
	case Simple:
		return []string{
			fmt.Sprintf("Cycle between: %s ↔ %s", c.Namespaces[0], c.Namespaces[1]),
			"Option 1: Extract shared interfaces into a common namespace",
			"Option 2: Move coupled classes into one namespace",
			fmt.Sprintf("Option 3: Introduce dependency inversion - make %s depend on abstractions from %s",
				c.Namespaces[1], c.Namespaces[0]),
		}
	case Complex:
		return []string{
			fmt.Sprintf("Complex cycle detected: %s → [back to start]", strings.Join(c.Namespaces, " → ")),
			"Option 1: Extract a shared 'Core' or 'Common' namespace for shared types",
			"Option 2: Consider if these namespaces should be merged into a single module",
			"Option 3: Apply dependency inversion principle with interfaces",
			"Option 4: Identify and remove unnecessary dependencies",
		}
	}
	return nil
}

func impactOf(s Severity) string {
	switch s {
	case SeverityLow:
		return "Low impact: Few dependencies involved, should be straightforward to resolve"
	case SeverityMedium:
		return "Medium impact: Moderate coupling, may require interface extraction or class movement"
	case SeverityHigh:
		return "High impact: Tight coupling detected, likely requires significant refactoring or module merging"
	}
	return ""
}

// topLevel returns the first namespace segment.
func topLevel(ns string) string {
	if idx := strings.Index(ns, GlobalNamespace); idx >= 0 {
		return ns[:idx]
	}
	return ns
}

// SuggestModules buckets namespaces by top-level segment and orders the
// buckets by cohesion, highest first. Buckets with equal cohesion keep the
// order of their first namespace.
func (r *Recommender) SuggestModules() []ModuleSuggestion {
	return r.suggestModules(r.DetectCycles())
}

func (r *Recommender) suggestModules(cycles []Cycle) []ModuleSuggestion {
	inCycle := make(map[string]bool)
	for _, c := range cycles {
		for _, ns := range c.Namespaces {
			inCycle[ns] = true
		}
	}

	var prefixes []string
	buckets := make(map[string][]string)
	for _, ns := range r.names {
		if ns == GlobalNamespace {
			continue
		}
		prefix := topLevel(ns)
		if _, seen := buckets[prefix]; !seen {
			prefixes = append(prefixes, prefix)
		}
		buckets[prefix] = append(buckets[prefix], ns)
	}

	suggestions := make([]ModuleSuggestion, 0, len(prefixes))
	for _, prefix := range prefixes {
		members := buckets[prefix]

		s := ModuleSuggestion{
			Name:       prefix,
			Prefix:     prefix,
			Namespaces: members,
		}
		for _, ns := range members {
			s.ClassCount += r.metrics[ns].Classes
			if inCycle[ns] {
				s.HasCycles = true
			}
		}
		s.InternalDeps, s.ExternalDeps = r.moduleDependencies(members)
		s.Cohesion = cohesion(s.InternalDeps, s.ExternalDeps)
		if s.HasCycles {
			s.Name = prefix + " (contains cycles)"
		}
		suggestions = append(suggestions, s)
	}

	sort.SliceStable(suggestions, func(i, j int) bool {
		return suggestions[i].Cohesion > suggestions[j].Cohesion
	})
	return suggestions
}

// moduleDependencies counts outgoing edges of members that stay inside the
// group and those that leave it.
func (r *Recommender) moduleDependencies(members []string) (internal, external int) {
	inside := make(map[string]bool, len(members))
	for _, ns := range members {
		inside[ns] = true
	}
	for _, ns := range members {
		for _, next := range r.adjacency[ns] {
			if inside[next] {
				internal++
			} else {
				external++
			}
		}
	}
	return internal, external
}

func cohesion(internal, external int) float64 {
	if internal+external == 0 {
		return 1.0
	}
	return float64(internal) / float64(internal+external)
}

// GenerateReport runs cycle detection, recommendations and module grouping.
func (r *Recommender) GenerateReport() *Report {
	cycles := r.DetectCycles()

	involved := make(map[string]bool)
	for _, c := range cycles {
		for _, ns := range c.Namespaces {
			involved[ns] = true
		}
	}

	return &Report{
		TotalNamespaces:    len(r.names),
		NamespacesInCycles: len(involved),
		Cycles:             cycles,
		Recommendations:    r.RecommendCycleBreaking(cycles),
		ModuleSuggestions:  r.suggestModules(cycles),
	}
}
