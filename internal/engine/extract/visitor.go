// Package extract walks parsed PHP declarations and records which class-like
// depends on which.
package extract

import (
	"modfather/internal/engine/ast"
	"modfather/internal/engine/resolver"
)

// DeclarationKind is the flavour of a class-like declaration.
type DeclarationKind string

const (
	KindClass     DeclarationKind = "class"
	KindInterface DeclarationKind = "interface"
	KindTrait     DeclarationKind = "trait"
	KindEnum      DeclarationKind = "enum"
)

// Declaration is a class-like found in the analyzed code.
type Declaration struct {
	Name      string // fully qualified
	Namespace string
	File      string
	Kind      DeclarationKind
}

// Dependency is a single (declaring, referenced) pair.
type Dependency struct {
	From string
	To   string
}

// Visitor accumulates declarations and dependencies over any number of files.
// It is not safe for concurrent use; give each goroutine its own Visitor and
// Merge them afterwards.
type Visitor struct {
	declarations map[string]Declaration
	declOrder    []string

	deps     map[string]map[string]bool
	depOrder []Dependency
}

func NewVisitor() *Visitor {
	return &Visitor{
		declarations: make(map[string]Declaration),
		deps:         make(map[string]map[string]bool),
	}
}

// scope is the lexical context while walking one statement list.
type scope struct {
	file      string
	namespace string
	imports   *resolver.ImportTable
}

// Visit walks a parsed file and returns the dependency pairs it contributed,
// in discovery order and without duplicates. It never fails: statements,
// members and hints the extractor does not understand are skipped.
func (v *Visitor) Visit(file *ast.File, path string) []Dependency {
	if file == nil {
		return nil
	}
	if path == "" {
		path = file.Path
	}
	before := len(v.depOrder)
	v.visitStatements(file.Statements, scope{file: path})
	return v.depOrder[before:len(v.depOrder):len(v.depOrder)]
}

func (v *Visitor) visitStatements(stmts []ast.Stmt, sc scope) {
	sc.imports = resolver.NewImportTable(useDecls(stmts)...)

	for _, stmt := range stmts {
		switch s := stmt.(type) {
		case *ast.NamespaceBlock:
			// Namespace blocks never inherit the enclosing imports.
			v.visitStatements(s.Statements, scope{file: sc.file, namespace: s.Name})
		case *ast.UseDecl:
			// Already folded into sc.imports.
		case *ast.ClassDecl:
			fqn := v.declare(s.Name, KindClass, sc)
			v.dependOnNames(fqn, s.Extends, sc)
			v.dependOnNames(fqn, s.Implements, sc)
			v.visitMembers(fqn, s.Members, sc)
		case *ast.InterfaceDecl:
			fqn := v.declare(s.Name, KindInterface, sc)
			v.dependOnNames(fqn, s.Extends, sc)
		case *ast.TraitDecl:
			fqn := v.declare(s.Name, KindTrait, sc)
			v.visitMembers(fqn, s.Members, sc)
		case *ast.EnumDecl:
			fqn := v.declare(s.Name, KindEnum, sc)
			v.dependOnHint(fqn, s.BackingType, sc)
			v.dependOnNames(fqn, s.Implements, sc)
			v.visitTraitUses(fqn, s.Members, sc)
		case *ast.UnsupportedStmt:
		}
	}
}

func useDecls(stmts []ast.Stmt) []*ast.UseDecl {
	var out []*ast.UseDecl
	for _, stmt := range stmts {
		if use, ok := stmt.(*ast.UseDecl); ok {
			out = append(out, use)
		}
	}
	return out
}

func (v *Visitor) visitMembers(current string, members []ast.Member, sc scope) {
	for _, member := range members {
		switch m := member.(type) {
		case *ast.TraitUse:
			v.dependOnNames(current, m.Traits, sc)
		case *ast.Property:
			v.dependOnHint(current, m.Type, sc)
		case *ast.Method:
			v.dependOnHint(current, m.ReturnType, sc)
			for _, p := range m.Params {
				v.dependOnHint(current, p.Type, sc)
			}
		case *ast.UnsupportedMember:
		}
	}
}

// visitTraitUses records trait uses only; enum method signatures are not
// dependency sources.
func (v *Visitor) visitTraitUses(current string, members []ast.Member, sc scope) {
	for _, member := range members {
		if use, ok := member.(*ast.TraitUse); ok {
			v.dependOnNames(current, use.Traits, sc)
		}
	}
}

func (v *Visitor) declare(name ast.Name, kind DeclarationKind, sc scope) string {
	fqn := resolver.Qualify(name.Value, sc.namespace)
	if fqn == "" {
		return ""
	}
	if _, seen := v.declarations[fqn]; !seen {
		v.declOrder = append(v.declOrder, fqn)
	}
	v.declarations[fqn] = Declaration{
		Name:      fqn,
		Namespace: sc.namespace,
		File:      sc.file,
		Kind:      kind,
	}
	return fqn
}

func (v *Visitor) dependOnNames(from string, names []ast.Name, sc scope) {
	for _, name := range names {
		if name.Value == "" {
			continue
		}
		v.addDependency(from, resolver.Resolve(name.Value, sc.namespace, sc.imports))
	}
}

func (v *Visitor) dependOnHint(from string, hint ast.TypeHint, sc scope) {
	for _, name := range ast.Identifiers(hint) {
		if resolver.IsBuiltinType(name.Value) {
			continue
		}
		v.addDependency(from, resolver.Resolve(name.Value, sc.namespace, sc.imports))
	}
}

func (v *Visitor) addDependency(from, to string) {
	if from == "" || to == "" {
		return
	}
	targets := v.deps[from]
	if targets == nil {
		targets = make(map[string]bool)
		v.deps[from] = targets
	}
	if targets[to] {
		return
	}
	targets[to] = true
	v.depOrder = append(v.depOrder, Dependency{From: from, To: to})
}

// Merge folds other into v. Declarations from other overwrite those already
// present, matching the order in which the files would have been visited.
func (v *Visitor) Merge(other *Visitor) {
	if other == nil {
		return
	}
	for _, fqn := range other.declOrder {
		if _, seen := v.declarations[fqn]; !seen {
			v.declOrder = append(v.declOrder, fqn)
		}
		v.declarations[fqn] = other.declarations[fqn]
	}
	for _, dep := range other.depOrder {
		v.addDependency(dep.From, dep.To)
	}
}

// Declarations returns every declared class-like in first-seen order.
func (v *Visitor) Declarations() []Declaration {
	out := make([]Declaration, 0, len(v.declOrder))
	for _, fqn := range v.declOrder {
		out = append(out, v.declarations[fqn])
	}
	return out
}

// Declaration looks up a declared class-like by fully qualified name.
func (v *Visitor) Declaration(fqn string) (Declaration, bool) {
	d, ok := v.declarations[fqn]
	return d, ok
}

// Dependencies returns every recorded pair in first-seen order.
func (v *Visitor) Dependencies() []Dependency {
	out := make([]Dependency, len(v.depOrder))
	copy(out, v.depOrder)
	return out
}
