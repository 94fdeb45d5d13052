// # internal/engine/extract/analyzer.go
package extract

import (
	"modfather/internal/engine/ast"
	"modfather/internal/engine/graph"
	"modfather/internal/engine/resolver"
	"sort"
	"strconv"
)

// GlobalNamespace is the node id of the global namespace in namespace graphs.
const GlobalNamespace = ast.Separator

// Analyzer turns parsed files into a dependency graph at some granularity.
type Analyzer interface {
	Analyze(file *ast.File, path string)
	Merge(v *Visitor)
	BuildGraph(includeExternal bool) *graph.Graph
}

// ClassAnalyzer builds a graph whose nodes are class-likes.
type ClassAnalyzer struct {
	visitor *Visitor
}

func NewClassAnalyzer() *ClassAnalyzer {
	return &ClassAnalyzer{visitor: NewVisitor()}
}

func (a *ClassAnalyzer) Analyze(file *ast.File, path string) {
	a.visitor.Visit(file, path)
}

func (a *ClassAnalyzer) Merge(v *Visitor) {
	a.visitor.Merge(v)
}

func (a *ClassAnalyzer) Visitor() *Visitor {
	return a.visitor
}

// BuildGraph adds every declared class-like as an internal node. Targets that
// were never declared become external nodes when includeExternal is set;
// otherwise edges to them are dropped.
func (a *ClassAnalyzer) BuildGraph(includeExternal bool) *graph.Graph {
	g := graph.NewGraph()

	for _, decl := range a.visitor.Declarations() {
		g.AddNode(graph.NewNode(decl.Name, decl.Name).
			WithMetadata(graph.MetaFile, decl.File).
			WithMetadata(graph.MetaKind, string(decl.Kind)).
			WithMetadata(graph.MetaType, graph.TypeInternal))
	}

	for _, dep := range a.visitor.Dependencies() {
		_, internal := a.visitor.Declaration(dep.To)
		if !internal {
			if !includeExternal {
				continue
			}
			if _, exists := g.Node(dep.To); !exists {
				g.AddNode(graph.NewNode(dep.To, dep.To).WithMetadata(graph.MetaType, graph.TypeExternal))
			}
		}
		g.AddEdge(graph.NewEdge(dep.From, dep.To))
	}

	return g
}

// NamespaceAnalyzer projects class-level dependencies onto the namespaces that
// declare them. Two classes in namespaces A and B produce a single A -> B edge.
type NamespaceAnalyzer struct {
	visitor *Visitor
	// DropSelfEdges removes the A -> A edges produced by dependencies between
	// classes of the same namespace. Those edges surface as self-cycles.
	DropSelfEdges bool
}

func NewNamespaceAnalyzer() *NamespaceAnalyzer {
	return &NamespaceAnalyzer{visitor: NewVisitor()}
}

func (a *NamespaceAnalyzer) Analyze(file *ast.File, path string) {
	a.visitor.Visit(file, path)
}

func (a *NamespaceAnalyzer) Merge(v *Visitor) {
	a.visitor.Merge(v)
}

func (a *NamespaceAnalyzer) Visitor() *Visitor {
	return a.visitor
}

type namespaceStats struct {
	classes int
	files   map[string]bool
}

func (a *NamespaceAnalyzer) BuildGraph(includeExternal bool) *graph.Graph {
	g := graph.NewGraph()

	stats := make(map[string]*namespaceStats)
	for _, decl := range a.visitor.Declarations() {
		ns := namespaceID(decl.Namespace)
		st := stats[ns]
		if st == nil {
			st = &namespaceStats{files: make(map[string]bool)}
			stats[ns] = st
		}
		st.classes++
		st.files[decl.File] = true
	}

	names := make([]string, 0, len(stats))
	for ns := range stats {
		names = append(names, ns)
	}
	sort.Strings(names)
	for _, ns := range names {
		st := stats[ns]
		g.AddNode(graph.NewNode(ns, namespaceLabel(ns)).
			WithMetadata(graph.MetaType, graph.TypeInternal).
			WithMetadata(graph.MetaClasses, strconv.Itoa(st.classes)).
			WithMetadata(graph.MetaFiles, strconv.Itoa(len(st.files))))
	}

	for _, dep := range a.visitor.Dependencies() {
		fromDecl, ok := a.visitor.Declaration(dep.From)
		if !ok {
			continue
		}
		fromNS := namespaceID(fromDecl.Namespace)

		var toNS string
		if toDecl, internal := a.visitor.Declaration(dep.To); internal {
			toNS = namespaceID(toDecl.Namespace)
		} else {
			if !includeExternal {
				continue
			}
			toNS = namespaceID(resolver.NamespaceOf(dep.To))
			if _, exists := g.Node(toNS); !exists {
				g.AddNode(graph.NewNode(toNS, namespaceLabel(toNS)).WithMetadata(graph.MetaType, graph.TypeExternal))
			}
		}

		if fromNS == toNS && a.DropSelfEdges {
			continue
		}
		g.AddEdge(graph.NewEdge(fromNS, toNS))
	}

	return g
}

func namespaceID(ns string) string {
	if ns == "" {
		return GlobalNamespace
	}
	return ns
}

func namespaceLabel(id string) string {
	if id == GlobalNamespace {
		return "(global)"
	}
	return id
}
