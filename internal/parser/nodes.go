package parser

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"comprehend/internal/model"
)

func line(node *sitter.Node) int {
	return int(node.StartPoint().Row) + 1
}

func fieldText(node *sitter.Node, field string, src []byte) string {
	child := node.ChildByFieldName(field)
	if child == nil {
		return ""
	}
	return child.Content(src)
}

// packageName extracts "com.x.y" from a package_declaration node.
func packageName(node *sitter.Node, src []byte) string {
	for i := 0; i < int(node.NamedChildCount()); i++ {
		c := node.NamedChild(i)
		if c.Type() == "scoped_identifier" || c.Type() == "identifier" {
			return c.Content(src)
		}
	}
	return ""
}

// importPath extracts the imported path from an import_declaration node,
// including the trailing ".*" of wildcard imports.
func importPath(node *sitter.Node, src []byte) string {
	text := node.Content(src)
	text = strings.TrimPrefix(text, "import")
	text = strings.TrimSuffix(strings.TrimSpace(text), ";")
	return strings.Join(strings.Fields(text), " ")
}

// modifierWords returns the modifier keywords of a declaration, annotations
// excluded.
func modifierWords(node *sitter.Node, src []byte) []string {
	for i := 0; i < int(node.NamedChildCount()); i++ {
		c := node.NamedChild(i)
		if c.Type() != "modifiers" {
			continue
		}
		var words []string
		for _, w := range strings.Fields(c.Content(src)) {
			if !strings.HasPrefix(w, "@") {
				words = append(words, w)
			}
		}
		return words
	}
	return nil
}

func hasWord(words []string, want string) bool {
	for _, w := range words {
		if w == want {
			return true
		}
	}
	return false
}

func visibility(mods []string) model.Visibility {
	switch {
	case hasWord(mods, "public"):
		return model.Public
	case hasWord(mods, "private"):
		return model.Private
	case hasWord(mods, "protected"):
		return model.Protected
	default:
		return model.PackagePrivate
	}
}

// superType extracts the single type of a superclass node ("extends Foo").
func superType(node *sitter.Node, src []byte) string {
	for i := 0; i < int(node.NamedChildCount()); i++ {
		return typeName(node.NamedChild(i), src)
	}
	return ""
}

// typeList collects type names from super_interfaces, extends_interfaces or
// throws nodes, descending into the wrapped type_list when present.
func typeList(node *sitter.Node, src []byte) []string {
	var out []string
	for i := 0; i < int(node.NamedChildCount()); i++ {
		c := node.NamedChild(i)
		if c.Type() == "type_list" {
			out = append(out, typeList(c, src)...)
			continue
		}
		if name := typeName(c, src); name != "" {
			out = append(out, name)
		}
	}
	return out
}

// typeName renders a type node as source text with whitespace collapsed,
// e.g. "List<Foo>" or "int[]".
func typeName(node *sitter.Node, src []byte) string {
	if node == nil {
		return ""
	}
	return strings.Join(strings.Fields(node.Content(src)), "")
}

// spreadParamType extracts the element type of a varargs parameter. A
// spread_parameter node has no type field; the type is the first named child
// that is not the modifiers list or the variable_declarator.
func spreadParamType(node *sitter.Node, src []byte) string {
	for i := 0; i < int(node.NamedChildCount()); i++ {
		c := node.NamedChild(i)
		if c.Type() == "modifiers" || c.Type() == "variable_declarator" {
			continue
		}
		return typeName(c, src) + "..."
	}
	return ""
}

// spreadParamName reads the parameter name from the variable_declarator
// nested inside a spread_parameter node.
func spreadParamName(node *sitter.Node, src []byte) string {
	for i := 0; i < int(node.NamedChildCount()); i++ {
		c := node.NamedChild(i)
		if c.Type() == "variable_declarator" {
			return fieldText(c, "name", src)
		}
	}
	return ""
}

// hasDocComment reports whether a block comment immediately precedes the
// declaration. Adjacency means at most one blank line in between, matching
// how Javadoc is conventionally attached.
func hasDocComment(node *sitter.Node) bool {
	prev := node.PrevSibling()
	if prev == nil {
		return false
	}
	if node.StartPoint().Row-prev.EndPoint().Row > 1 {
		return false
	}
	return prev.Type() == "block_comment"
}
