// # internal/engine/modularity/cycles.go
package modularity

import (
	"sort"

	"gonum.org/v1/gonum/graph/topo"
)

type CycleShape string

const (
	// SelfCycle is a namespace depending on itself.
	SelfCycle CycleShape = "SelfCycle"
	// Simple is a two-namespace cycle.
	Simple CycleShape = "Simple"
	// Complex spans three or more namespaces.
	Complex CycleShape = "Complex"
)

type Severity string

const (
	SeverityLow    Severity = "Low"
	SeverityMedium Severity = "Medium"
	SeverityHigh   Severity = "High"
)

// Cycle is a strongly connected component of the namespace graph.
type Cycle struct {
	Namespaces []string   `json:"namespaces" yaml:"namespaces"`
	Shape      CycleShape `json:"type" yaml:"type"`
	Severity   Severity   `json:"severity" yaml:"severity"`
	// Edges is the number of namespace edges with both ends inside the cycle.
	Edges int `json:"edges" yaml:"edges"`
}

// severityFor maps the number of intra-component edges to a severity.
func severityFor(edges int) Severity {
	switch {
	case edges <= 2:
		return SeverityLow
	case edges <= 5:
		return SeverityMedium
	default:
		return SeverityHigh
	}
}

// DetectCycles returns every SCC with two or more members plus every
// namespace with a self-loop. Members are sorted and cycles are ordered by
// their first member.
func (r *Recommender) DetectCycles() []Cycle {
	var cycles []Cycle

	for _, component := range topo.TarjanSCC(r.directed) {
		members := make([]string, 0, len(component))
		for _, node := range component {
			members = append(members, r.names[node.ID()])
		}
		sort.Strings(members)

		switch len(members) {
		case 0:
			continue
		case 1:
			// Self-loops are not part of the simple graph, so a singleton
			// component is only a cycle when recorded separately.
			if !r.selfLoops[members[0]] {
				continue
			}
			cycles = append(cycles, Cycle{
				Namespaces: members,
				Shape:      SelfCycle,
				Severity:   SeverityMedium,
				Edges:      1,
			})
		default:
			shape := Complex
			if len(members) == 2 {
				shape = Simple
			}
			edges := r.countInternalEdges(members)
			cycles = append(cycles, Cycle{
				Namespaces: members,
				Shape:      shape,
				Severity:   severityFor(edges),
				Edges:      edges,
			})
		}
	}

	sort.SliceStable(cycles, func(i, j int) bool {
		return cycles[i].Namespaces[0] < cycles[j].Namespaces[0]
	})
	return cycles
}

// countInternalEdges counts edges, self-loops included, whose endpoints are
// both members.
func (r *Recommender) countInternalEdges(members []string) int {
	inside := make(map[string]bool, len(members))
	for _, ns := range members {
		inside[ns] = true
	}

	count := 0
	for _, ns := range members {
		for _, next := range r.adjacency[ns] {
			if inside[next] {
				count++
			}
		}
	}
	return count
}
