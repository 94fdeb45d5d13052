// # internal/engine/resolver/resolver.go
package resolver

import (
	"modfather/internal/engine/ast"
	"strings"
)

// builtinTypes are PHP type keywords that never name a class-like.
var builtinTypes = map[string]bool{
	"int":      true,
	"float":    true,
	"string":   true,
	"bool":     true,
	"array":    true,
	"object":   true,
	"callable": true,
	"iterable": true,
	"void":     true,
	"mixed":    true,
	"never":    true,
	"true":     true,
	"false":    true,
	"null":     true,
	"self":     true,
	"parent":   true,
	"static":   true,
}

// IsBuiltinType reports whether name is a builtin type keyword. PHP keywords
// are case-insensitive, so `Int` and `NULL` match too.
func IsBuiltinType(name string) bool {
	return builtinTypes[strings.ToLower(name)]
}

// Resolve turns a type reference into its fully qualified name.
//
// Order: an explicit leading separator wins, then a namespace-relative
// `namespace\X` reference, then an exact import match, then the enclosing
// namespace, and finally the global namespace. Multi-segment names are only
// ever prefixed with the namespace; the first segment is not looked up in the
// import table.
func Resolve(name, namespace string, imports *ImportTable) string {
	if strings.HasPrefix(name, ast.Separator) {
		return strings.TrimPrefix(name, ast.Separator)
	}
	if rest, ok := trimRelativePrefix(name); ok {
		return Qualify(rest, namespace)
	}
	if fqn, ok := imports.Lookup(name); ok {
		return fqn
	}
	if namespace != "" {
		return namespace + ast.Separator + name
	}
	return name
}

// relativePrefix is the `namespace` keyword used as a name prefix, matched
// case-insensitively like every PHP keyword.
const relativePrefix = "namespace" + ast.Separator

func trimRelativePrefix(name string) (string, bool) {
	if len(name) <= len(relativePrefix) || !strings.EqualFold(name[:len(relativePrefix)], relativePrefix) {
		return name, false
	}
	return name[len(relativePrefix):], true
}

// Qualify builds the fully qualified name of a declaration named name inside
// namespace.
func Qualify(name, namespace string) string {
	if strings.HasPrefix(name, ast.Separator) {
		return strings.TrimPrefix(name, ast.Separator)
	}
	if namespace != "" {
		return namespace + ast.Separator + name
	}
	return name
}

// NamespaceOf returns the namespace part of a fully qualified name, or "" for
// names in the global namespace.
func NamespaceOf(fqn string) string {
	idx := strings.LastIndex(fqn, ast.Separator)
	if idx <= 0 {
		return ""
	}
	return fqn[:idx]
}

// ShortName returns the last segment of a qualified name.
func ShortName(name string) string {
	idx := strings.LastIndex(name, ast.Separator)
	if idx < 0 {
		return name
	}
	return name[idx+1:]
}
