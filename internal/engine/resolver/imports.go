package resolver

import (
	"modfather/internal/engine/ast"
	"strings"
)

// ImportTable maps short or aliased names to fully qualified names for one
// lexical scope. A nil table behaves as an empty one.
type ImportTable struct {
	entries map[string]string
}

// NewImportTable builds the table for a scope from its use declarations, in
// order. A later import of the same short name replaces the earlier one.
func NewImportTable(decls ...*ast.UseDecl) *ImportTable {
	t := &ImportTable{entries: make(map[string]string)}
	for _, decl := range decls {
		if decl == nil {
			continue
		}
		for _, item := range decl.Items {
			t.add(item.Name.Value, item.Alias)
		}
	}
	return t
}

func (t *ImportTable) add(fullyQualified, alias string) {
	fqn := strings.TrimPrefix(strings.TrimSpace(fullyQualified), ast.Separator)
	if fqn == "" {
		return
	}
	short := strings.TrimSpace(alias)
	if short == "" {
		short = ShortName(fqn)
	}
	t.entries[short] = fqn
}

// Lookup returns the fully qualified name imported as short. The match is
// exact and case-sensitive.
func (t *ImportTable) Lookup(short string) (string, bool) {
	if t == nil {
		return "", false
	}
	fqn, ok := t.entries[short]
	return fqn, ok
}

// Len returns the number of imported names.
func (t *ImportTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.entries)
}
