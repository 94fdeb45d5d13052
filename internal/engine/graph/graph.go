// # internal/engine/graph/graph.go
package graph

import (
	"sort"
	"sync"
)

// Metadata keys shared by graph producers and writers.
const (
	MetaType    = "type"
	MetaFile    = "file"
	MetaKind    = "kind"
	MetaClasses = "classes"
	MetaFiles   = "files"

	TypeInternal = "internal"
	TypeExternal = "external"
)

type Node struct {
	ID       string
	Label    string
	Metadata map[string]string
}

func NewNode(id, label string) *Node {
	return &Node{ID: id, Label: label, Metadata: make(map[string]string)}
}

// WithMetadata sets key on the node and returns it for chaining.
func (n *Node) WithMetadata(key, value string) *Node {
	if n.Metadata == nil {
		n.Metadata = make(map[string]string)
	}
	n.Metadata[key] = value
	return n
}

type Edge struct {
	From     string
	To       string
	Label    string
	Metadata map[string]string
}

func NewEdge(from, to string) *Edge {
	return &Edge{From: from, To: to}
}

func (e *Edge) WithLabel(label string) *Edge {
	e.Label = label
	return e
}

func (e *Edge) WithMetadata(key, value string) *Edge {
	if e.Metadata == nil {
		e.Metadata = make(map[string]string)
	}
	e.Metadata[key] = value
	return e
}

// EdgeKey identifies an edge; label and metadata do not take part.
type EdgeKey struct {
	From string
	To   string
}

func (e *Edge) Key() EdgeKey {
	return EdgeKey{From: e.From, To: e.To}
}

// Graph is a directed dependency graph. Nodes are unique by id and edges are
// unique by (from, to). Every edge endpoint is present as a node.
type Graph struct {
	mu sync.RWMutex

	nodes map[string]*Node
	edges map[EdgeKey]*Edge
}

func NewGraph() *Graph {
	return &Graph{
		nodes: make(map[string]*Node),
		edges: make(map[EdgeKey]*Edge),
	}
}

// AddNode inserts or replaces the node with the same id.
func (g *Graph) AddNode(node *Node) {
	if node == nil {
		return
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	g.nodes[node.ID] = node
}

// AddEdge creates any missing endpoint (id and label both set to the endpoint
// name) and inserts the edge. An edge already present for the same endpoints
// is kept as is.
func (g *Graph) AddEdge(edge *Edge) {
	if edge == nil {
		return
	}
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, ok := g.nodes[edge.From]; !ok {
		g.nodes[edge.From] = NewNode(edge.From, edge.From)
	}
	if _, ok := g.nodes[edge.To]; !ok {
		g.nodes[edge.To] = NewNode(edge.To, edge.To)
	}
	key := edge.Key()
	if _, ok := g.edges[key]; ok {
		return
	}
	g.edges[key] = edge
}

func (g *Graph) Node(id string) (*Node, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	n, ok := g.nodes[id]
	return n, ok
}

func (g *Graph) HasEdge(from, to string) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	_, ok := g.edges[EdgeKey{From: from, To: to}]
	return ok
}

// DependenciesOf returns the nodes id points to.
func (g *Graph) DependenciesOf(id string) []*Node {
	g.mu.RLock()
	defer g.mu.RUnlock()

	var out []*Node
	for key := range g.edges {
		if key.From != id {
			continue
		}
		if n, ok := g.nodes[key.To]; ok {
			out = append(out, n)
		}
	}
	sortNodes(out)
	return out
}

// DependentsOf returns the nodes pointing to id.
func (g *Graph) DependentsOf(id string) []*Node {
	g.mu.RLock()
	defer g.mu.RUnlock()

	var out []*Node
	for key := range g.edges {
		if key.To != id {
			continue
		}
		if n, ok := g.nodes[key.From]; ok {
			out = append(out, n)
		}
	}
	sortNodes(out)
	return out
}

// Nodes returns all nodes sorted by id.
func (g *Graph) Nodes() []*Node {
	g.mu.RLock()
	defer g.mu.RUnlock()

	out := make([]*Node, 0, len(g.nodes))
	for _, n := range g.nodes {
		out = append(out, n)
	}
	sortNodes(out)
	return out
}

// Edges returns all edges sorted by (from, to).
func (g *Graph) Edges() []*Edge {
	g.mu.RLock()
	defer g.mu.RUnlock()

	out := make([]*Edge, 0, len(g.edges))
	for _, e := range g.edges {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].From == out[j].From {
			return out[i].To < out[j].To
		}
		return out[i].From < out[j].From
	})
	return out
}

func (g *Graph) NodeCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.nodes)
}

func (g *Graph) EdgeCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.edges)
}

func sortNodes(nodes []*Node) {
	sort.Slice(nodes, func(i, j int) bool { return nodes[i].ID < nodes[j].ID })
}
