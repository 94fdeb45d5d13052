// Package ast is the declaration-level PHP tree consumed by the dependency
// extractor. It only models what the extractor looks at: namespaces, imports,
// class-like declarations, their members and type hints. Every category is a
// closed set: the marker methods are unexported, so only this package can add
// variants, and each consumer switches over the full list plus the matching
// Unsupported variant.
package ast

// Separator joins namespace segments in fully qualified names.
const Separator = `\`

// File is one parsed source file.
type File struct {
	Path       string
	Statements []Stmt
	// HasErrors is set when the parser recovered from syntax errors; the
	// statements then describe a partial tree.
	HasErrors bool
}

// Name is a class-like reference exactly as written in source, e.g. `Foo`,
// `Foo\Bar` or `\Foo\Bar`.
type Name struct {
	Value string
	Line  int
}

// Stmt is a top-level or namespace-level statement.
type Stmt interface {
	stmtNode()
}

// NamespaceBlock is `namespace X { ... }` or `namespace X;` together with the
// statements that follow it up to the next namespace declaration. Name is empty
// for the anonymous global block `namespace { ... }`.
type NamespaceBlock struct {
	Name       string
	Statements []Stmt
}

// UseDecl is a class import declaration. Function and constant imports never
// reach the tree.
type UseDecl struct {
	Items []UseItem
}

// UseItem is a single imported name with its optional alias.
type UseItem struct {
	Name  Name
	Alias string
}

// ClassDecl is a class declaration.
type ClassDecl struct {
	Name       Name
	Extends    []Name
	Implements []Name
	Members    []Member
}

// InterfaceDecl is an interface declaration.
type InterfaceDecl struct {
	Name    Name
	Extends []Name
	Members []Member
}

// TraitDecl is a trait declaration.
type TraitDecl struct {
	Name    Name
	Members []Member
}

// EnumDecl is an enum declaration, optionally backed by a scalar type.
type EnumDecl struct {
	Name        Name
	BackingType TypeHint
	Implements  []Name
	Members     []Member
}

// UnsupportedStmt stands for every statement the extractor ignores (functions,
// expressions, control flow, constants, broken fragments).
type UnsupportedStmt struct {
	Kind string
}

func (*NamespaceBlock) stmtNode()  {}
func (*UseDecl) stmtNode()         {}
func (*ClassDecl) stmtNode()       {}
func (*InterfaceDecl) stmtNode()   {}
func (*TraitDecl) stmtNode()       {}
func (*EnumDecl) stmtNode()        {}
func (*UnsupportedStmt) stmtNode() {}

// Member is a class-like body member.
type Member interface {
	memberNode()
}

// Property is a property declaration; Type is nil for untyped properties.
type Property struct {
	Names []string
	Type  TypeHint
}

// Method is a method declaration. ReturnType is nil when not declared.
type Method struct {
	Name       string
	Params     []Param
	ReturnType TypeHint
}

// Param is a method parameter; Type is nil when untyped.
type Param struct {
	Name string
	Type TypeHint
}

// TraitUse is `use A, B;` inside a class-like body.
type TraitUse struct {
	Traits []Name
}

// UnsupportedMember stands for constants, enum cases and anything else the
// extractor ignores.
type UnsupportedMember struct {
	Kind string
}

func (*Property) memberNode()          {}
func (*Method) memberNode()            {}
func (*TraitUse) memberNode()          {}
func (*UnsupportedMember) memberNode() {}

// TypeHint is a (possibly composite) declared type.
type TypeHint interface {
	hintNode()
}

// Ident is a plain type name, builtin or class-like.
type Ident struct {
	Name Name
}

// Nullable is `?T`.
type Nullable struct {
	Inner TypeHint
}

// Union is `A|B|...`.
type Union struct {
	Types []TypeHint
}

// Intersection is `A&B&...`.
type Intersection struct {
	Types []TypeHint
}

// Parenthesized is a parenthesized group inside a DNF type, e.g. `(A&B)|null`.
type Parenthesized struct {
	Inner TypeHint
}

// UnsupportedHint stands for hint shapes the parser could not classify.
type UnsupportedHint struct {
	Kind string
}

func (*Ident) hintNode()           {}
func (*Nullable) hintNode()        {}
func (*Union) hintNode()           {}
func (*Intersection) hintNode()    {}
func (*Parenthesized) hintNode()   {}
func (*UnsupportedHint) hintNode() {}

// Identifiers flattens a hint into the plain names it references, in source
// order. Unsupported shapes contribute nothing.
func Identifiers(h TypeHint) []Name {
	var out []Name
	collectIdentifiers(h, &out)
	return out
}

func collectIdentifiers(h TypeHint, out *[]Name) {
	switch t := h.(type) {
	case nil:
		return
	case *Ident:
		if t.Name.Value != "" {
			*out = append(*out, t.Name)
		}
	case *Nullable:
		collectIdentifiers(t.Inner, out)
	case *Parenthesized:
		collectIdentifiers(t.Inner, out)
	case *Union:
		for _, inner := range t.Types {
			collectIdentifiers(inner, out)
		}
	case *Intersection:
		for _, inner := range t.Types {
			collectIdentifiers(inner, out)
		}
	case *UnsupportedHint:
		return
	}
}
