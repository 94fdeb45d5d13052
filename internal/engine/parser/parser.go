// # internal/engine/parser/parser.go
package parser

import (
	"fmt"
	"modfather/internal/core/errors"
	"modfather/internal/engine/ast"
	"modfather/internal/shared/util"

	sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_php "github.com/tree-sitter/tree-sitter-php/bindings/go"
)

// Extensions handled by the parser, lower case.
var Extensions = []string{".php"}

// Parser turns PHP source into the declaration tree. It is safe for
// concurrent use.
type Parser struct {
	pool *ParserPool
}

func phpLanguage() *sitter.Language {
	return sitter.NewLanguage(tree_sitter_php.LanguagePHP())
}

func NewParser() *Parser {
	return &Parser{pool: NewParserPool(phpLanguage())}
}

// Supports reports whether path has a PHP extension, ignoring case.
func Supports(path string) bool {
	return util.HasExtFold(path, Extensions...)
}

// ParseFile parses content. On syntax errors it still returns the partial
// tree, together with a PARSE_ERROR describing the first error; callers may
// log the error and keep using the tree. A nil file is only returned when
// tree-sitter produced nothing at all.
func (p *Parser) ParseFile(path string, content []byte) (*ast.File, error) {
	sp := p.pool.Get()
	defer p.pool.Put(sp)

	tree := sp.Parse(content, nil)
	if tree == nil {
		err := errors.New(errors.CodeParse, "parser produced no tree")
		return nil, errors.AddContext(err, errors.CtxPath, path)
	}
	defer tree.Close()

	root := tree.RootNode()
	c := &converter{source: content}
	file := &ast.File{
		Path:       path,
		Statements: c.program(root),
		HasErrors:  root.HasError(),
	}
	if !file.HasErrors {
		return file, nil
	}

	line := 0
	if bad := firstError(root); bad != nil {
		line = int(bad.StartPosition().Row) + 1
	}
	err := errors.New(errors.CodeParse, fmt.Sprintf("syntax error near line %d", line))
	err = errors.AddContext(err, errors.CtxPath, path)
	return file, errors.AddContext(err, errors.CtxLine, line)
}

// firstError returns the first ERROR or MISSING node in document order.
func firstError(node *sitter.Node) *sitter.Node {
	if node == nil {
		return nil
	}
	if node.IsError() || node.IsMissing() {
		return node
	}
	if !node.HasError() {
		return nil
	}
	for i := uint(0); i < node.ChildCount(); i++ {
		if found := firstError(node.Child(i)); found != nil {
			return found
		}
	}
	return nil
}
