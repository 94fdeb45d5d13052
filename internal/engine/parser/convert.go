// # internal/engine/parser/convert.go
package parser

import (
	"modfather/internal/engine/ast"
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"
)

// converter maps tree-sitter-php nodes onto the declaration tree. Anything it
// does not model becomes an Unsupported variant.
type converter struct {
	source []byte
}

func (c *converter) text(node *sitter.Node) string {
	if node == nil {
		return ""
	}
	raw := string(c.source[node.StartByte():node.EndByte()])
	// Qualified names may legally contain whitespace around separators.
	return strings.Join(strings.Fields(raw), "")
}

func (c *converter) name(node *sitter.Node) ast.Name {
	if node == nil {
		return ast.Name{}
	}
	return ast.Name{Value: c.text(node), Line: int(node.StartPosition().Row) + 1}
}

func namedChildren(node *sitter.Node) []*sitter.Node {
	if node == nil {
		return nil
	}
	out := make([]*sitter.Node, 0, node.NamedChildCount())
	for i := uint(0); i < node.NamedChildCount(); i++ {
		if child := node.NamedChild(i); child != nil {
			out = append(out, child)
		}
	}
	return out
}

// ignorable nodes carry no statement or member of their own.
func ignorable(kind string) bool {
	switch kind {
	case "comment", "php_tag", "text", "text_interpolation", "empty_statement":
		return true
	}
	return false
}

func (c *converter) program(root *sitter.Node) []ast.Stmt {
	return c.statements(namedChildren(root))
}

func (c *converter) statements(nodes []*sitter.Node) []ast.Stmt {
	var out []ast.Stmt
	for i := 0; i < len(nodes); i++ {
		node := nodes[i]
		kind := node.Kind()
		if ignorable(kind) {
			continue
		}
		if kind != "namespace_definition" {
			out = append(out, c.statement(node))
			continue
		}

		name := c.text(node.ChildByFieldName("name"))
		if body := node.ChildByFieldName("body"); body != nil {
			out = append(out, &ast.NamespaceBlock{Name: name, Statements: c.statements(namedChildren(body))})
			continue
		}

		// `namespace X;` owns every statement up to the next namespace.
		end := i + 1
		for end < len(nodes) && nodes[end].Kind() != "namespace_definition" {
			end++
		}
		out = append(out, &ast.NamespaceBlock{Name: name, Statements: c.statements(nodes[i+1 : end])})
		i = end - 1
	}
	return out
}

func (c *converter) statement(node *sitter.Node) ast.Stmt {
	switch node.Kind() {
	case "namespace_use_declaration":
		if decl := c.useDeclaration(node); decl != nil {
			return decl
		}
	case "class_declaration":
		return c.classDeclaration(node)
	case "interface_declaration":
		return c.interfaceDeclaration(node)
	case "trait_declaration":
		return &ast.TraitDecl{
			Name:    c.name(node.ChildByFieldName("name")),
			Members: c.members(node.ChildByFieldName("body")),
		}
	case "enum_declaration":
		return c.enumDeclaration(node)
	}
	return &ast.UnsupportedStmt{Kind: node.Kind()}
}

// useDeclaration returns nil for function and constant imports.
func (c *converter) useDeclaration(node *sitter.Node) *ast.UseDecl {
	decl := &ast.UseDecl{}
	prefix := ""
	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		switch child.Kind() {
		case "function", "const":
			return nil
		case "namespace_name", "qualified_name", "name":
			// `use Prefix\{...}`: the group prefix precedes the group.
			prefix = c.text(child)
		case "namespace_use_clause":
			if item, ok := c.useClause(child, ""); ok {
				decl.Items = append(decl.Items, item)
			}
		case "namespace_use_group":
			for _, clause := range namedChildren(child) {
				if clause.Kind() != "namespace_use_clause" && clause.Kind() != "namespace_use_group_clause" {
					continue
				}
				if item, ok := c.useClause(clause, prefix); ok {
					decl.Items = append(decl.Items, item)
				}
			}
		}
	}
	return decl
}

func (c *converter) useClause(node *sitter.Node, prefix string) (ast.UseItem, bool) {
	var item ast.UseItem
	afterAs := false
	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		switch child.Kind() {
		case "function", "const":
			return ast.UseItem{}, false
		case "as":
			afterAs = true
		case "namespace_aliasing_clause":
			for _, alias := range namedChildren(child) {
				item.Alias = c.text(alias)
			}
		case "name", "qualified_name", "namespace_name":
			switch {
			case afterAs:
				item.Alias = c.text(child)
			case item.Name.Value == "":
				item.Name = c.name(child)
			}
		}
	}
	if alias := node.ChildByFieldName("alias"); alias != nil {
		item.Alias = c.text(alias)
	}
	if item.Name.Value == "" {
		return ast.UseItem{}, false
	}
	if prefix != "" {
		item.Name.Value = strings.TrimSuffix(prefix, ast.Separator) + ast.Separator + item.Name.Value
	}
	return item, true
}

func (c *converter) names(clause *sitter.Node) []ast.Name {
	var out []ast.Name
	for _, child := range namedChildren(clause) {
		switch child.Kind() {
		case "name", "qualified_name":
			out = append(out, c.name(child))
		}
	}
	return out
}

func (c *converter) classDeclaration(node *sitter.Node) *ast.ClassDecl {
	decl := &ast.ClassDecl{Name: c.name(node.ChildByFieldName("name"))}
	for _, child := range namedChildren(node) {
		switch child.Kind() {
		case "base_clause":
			decl.Extends = c.names(child)
		case "class_interface_clause":
			decl.Implements = c.names(child)
		case "declaration_list":
			decl.Members = c.members(child)
		}
	}
	return decl
}

func (c *converter) interfaceDeclaration(node *sitter.Node) *ast.InterfaceDecl {
	decl := &ast.InterfaceDecl{Name: c.name(node.ChildByFieldName("name"))}
	for _, child := range namedChildren(node) {
		switch child.Kind() {
		case "base_clause":
			decl.Extends = c.names(child)
		case "declaration_list":
			decl.Members = c.members(child)
		}
	}
	return decl
}

func (c *converter) enumDeclaration(node *sitter.Node) *ast.EnumDecl {
	decl := &ast.EnumDecl{Name: c.name(node.ChildByFieldName("name"))}
	backing := false
	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		switch {
		case child.Kind() == ":":
			backing = true
		case !child.IsNamed():
		case backing:
			decl.BackingType = c.hint(child)
			backing = false
		case child.Kind() == "class_interface_clause":
			decl.Implements = c.names(child)
		case child.Kind() == "enum_declaration_list":
			decl.Members = c.members(child)
		}
	}
	return decl
}

func (c *converter) members(body *sitter.Node) []ast.Member {
	var out []ast.Member
	for _, child := range namedChildren(body) {
		if ignorable(child.Kind()) {
			continue
		}
		out = append(out, c.member(child))
	}
	return out
}

func (c *converter) member(node *sitter.Node) ast.Member {
	switch node.Kind() {
	case "property_declaration":
		prop := &ast.Property{Type: c.hint(node.ChildByFieldName("type"))}
		for _, child := range namedChildren(node) {
			if child.Kind() != "property_element" {
				continue
			}
			nameNode := child.ChildByFieldName("name")
			if nameNode == nil && child.NamedChildCount() > 0 {
				nameNode = child.NamedChild(0)
			}
			prop.Names = append(prop.Names, strings.TrimPrefix(c.text(nameNode), "$"))
		}
		return prop
	case "method_declaration":
		method := &ast.Method{
			Name:       c.text(node.ChildByFieldName("name")),
			ReturnType: c.hint(node.ChildByFieldName("return_type")),
		}
		for _, param := range namedChildren(node.ChildByFieldName("parameters")) {
			switch param.Kind() {
			case "simple_parameter", "variadic_parameter", "property_promotion_parameter":
				method.Params = append(method.Params, ast.Param{
					Name: strings.TrimPrefix(c.text(param.ChildByFieldName("name")), "$"),
					Type: c.hint(param.ChildByFieldName("type")),
				})
			}
		}
		return method
	case "use_declaration":
		return &ast.TraitUse{Traits: c.names(node)}
	}
	return &ast.UnsupportedMember{Kind: node.Kind()}
}

// hint converts a type node. A nil node means no declared type.
func (c *converter) hint(node *sitter.Node) ast.TypeHint {
	if node == nil {
		return nil
	}
	switch node.Kind() {
	case "named_type", "name", "qualified_name", "primitive_type", "bottom_type":
		return &ast.Ident{Name: c.name(node)}
	case "optional_type":
		children := namedChildren(node)
		if len(children) == 0 {
			return &ast.UnsupportedHint{Kind: node.Kind()}
		}
		return &ast.Nullable{Inner: c.hint(children[0])}
	case "union_type":
		return &ast.Union{Types: c.hints(node, false)}
	case "intersection_type":
		return &ast.Intersection{Types: c.hints(node, false)}
	case "disjunctive_normal_form_type":
		return &ast.Union{Types: c.hints(node, true)}
	}
	return &ast.UnsupportedHint{Kind: node.Kind()}
}

func (c *converter) hints(node *sitter.Node, groupIntersections bool) []ast.TypeHint {
	var out []ast.TypeHint
	for _, child := range namedChildren(node) {
		h := c.hint(child)
		if groupIntersections && child.Kind() == "intersection_type" {
			h = &ast.Parenthesized{Inner: h}
		}
		out = append(out, h)
	}
	return out
}
