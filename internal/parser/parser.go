// Package parser adapts the tree-sitter Java grammar into the typed
// declaration model. Every Java source yields *some* model.File: files the
// grammar rejects come back with zero classes and a parse-error marker
// instead of an error.
package parser

import (
	"context"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/java"

	"comprehend/internal/model"
)

// Parser wraps a tree-sitter parser configured for Java. It is not safe for
// concurrent use; each worker owns its own instance.
type Parser struct {
	inner *sitter.Parser
}

// New creates a Parser for Java sources.
func New() *Parser {
	p := sitter.NewParser()
	p.SetLanguage(java.GetLanguage())
	return &Parser{inner: p}
}

// Parse builds the declaration forest for one file. It never fails: syntax
// the grammar cannot handle produces a File with ParseError set and an empty
// class list.
func (p *Parser) Parse(path string, source []byte) *model.File {
	f := model.NewFile(path, string(source))

	tree, err := p.inner.ParseCtx(context.Background(), nil, source)
	if err != nil {
		f.ParseError = err.Error()
		return f
	}
	root := tree.RootNode()
	if root.HasError() {
		f.ParseError = "syntax error"
		return f
	}

	w := &walker{file: f, src: source}
	for i := 0; i < int(root.ChildCount()); i++ {
		child := root.Child(i)
		switch child.Type() {
		case "package_declaration":
			f.Package = packageName(child, source)
		case "import_declaration":
			f.Imports = append(f.Imports, importPath(child, source))
		case "class_declaration", "interface_declaration", "enum_declaration":
			w.typeDecl(child, 0)
		}
	}
	return f
}

type walker struct {
	file *model.File
	src  []byte
}

func (w *walker) typeDecl(node *sitter.Node, parent int) {
	name := fieldText(node, "name", w.src)
	if name == "" {
		return
	}

	kind := model.KindClass
	switch node.Type() {
	case "interface_declaration":
		kind = model.KindInterface
	case "enum_declaration":
		kind = model.KindEnum
	}

	mods := modifierWords(node, w.src)
	detail := &model.ClassDetail{}
	if sup := node.ChildByFieldName("superclass"); sup != nil {
		detail.Extends = superType(sup, w.src)
	}
	if ifaces := node.ChildByFieldName("interfaces"); ifaces != nil {
		detail.Implements = typeList(ifaces, w.src)
	}
	// Interfaces keep their extends list in the implements slot; the
	// grammar has no superclass field for them.
	for i := 0; i < int(node.NamedChildCount()); i++ {
		if c := node.NamedChild(i); c.Type() == "extends_interfaces" {
			detail.Implements = append(detail.Implements, typeList(c, w.src)...)
		}
	}

	id := w.file.AddDecl(parent, model.Declaration{
		Kind:       kind,
		Name:       name,
		Visibility: visibility(mods),
		Line:       line(node),
		HasDoc:     hasDocComment(node),
		Class:      detail,
	})

	if body := node.ChildByFieldName("body"); body != nil {
		w.body(body, id)
	}
}

// body walks a class_body, interface_body, enum_body or
// enum_body_declarations node and attaches members to parent.
func (w *walker) body(node *sitter.Node, parent int) {
	for i := 0; i < int(node.NamedChildCount()); i++ {
		child := node.NamedChild(i)
		switch child.Type() {
		case "field_declaration":
			w.fieldDecl(child, parent)
		case "method_declaration":
			w.methodDecl(child, parent, false)
		case "constructor_declaration":
			w.methodDecl(child, parent, true)
		case "class_declaration", "interface_declaration", "enum_declaration":
			w.typeDecl(child, parent)
		case "enum_body_declarations":
			w.body(child, parent)
		}
	}
}

func (w *walker) methodDecl(node *sitter.Node, parent int, constructor bool) {
	name := fieldText(node, "name", w.src)
	if name == "" {
		return
	}
	mods := modifierWords(node, w.src)

	detail := &model.MethodDetail{
		Static:   hasWord(mods, "static"),
		Abstract: hasWord(mods, "abstract"),
	}
	if !constructor {
		detail.ReturnType = typeName(node.ChildByFieldName("type"), w.src)
		if detail.ReturnType == "" {
			detail.ReturnType = "void"
		}
	}
	if params := node.ChildByFieldName("parameters"); params != nil {
		for i := 0; i < int(params.NamedChildCount()); i++ {
			p := params.NamedChild(i)
			switch p.Type() {
			case "formal_parameter":
				detail.Params = append(detail.Params, model.Param{
					Type: typeName(p.ChildByFieldName("type"), w.src),
					Name: fieldText(p, "name", w.src),
				})
			case "spread_parameter":
				detail.Params = append(detail.Params, model.Param{
					Type: spreadParamType(p, w.src),
					Name: spreadParamName(p, w.src),
				})
			}
		}
	}
	for i := 0; i < int(node.NamedChildCount()); i++ {
		if c := node.NamedChild(i); c.Type() == "throws" {
			detail.Throws = append(detail.Throws, typeList(c, w.src)...)
		}
	}

	kind := model.KindMethod
	if constructor {
		kind = model.KindConstructor
	}
	w.file.AddDecl(parent, model.Declaration{
		Kind:       kind,
		Name:       name,
		Visibility: visibility(mods),
		Line:       line(node),
		HasDoc:     hasDocComment(node),
		Method:     detail,
	})
}

func (w *walker) fieldDecl(node *sitter.Node, parent int) {
	mods := modifierWords(node, w.src)
	fieldType := typeName(node.ChildByFieldName("type"), w.src)
	hasDoc := hasDocComment(node)

	// One field_declaration may declare several variables; each becomes its
	// own Declaration with the shared type and modifiers.
	for i := 0; i < int(node.NamedChildCount()); i++ {
		decl := node.NamedChild(i)
		if decl.Type() != "variable_declarator" {
			continue
		}
		name := fieldText(decl, "name", w.src)
		if name == "" {
			continue
		}
		w.file.AddDecl(parent, model.Declaration{
			Kind:       model.KindField,
			Name:       name,
			Visibility: visibility(mods),
			Line:       line(node),
			HasDoc:     hasDoc,
			Field: &model.FieldDetail{
				Type:   fieldType,
				Static: hasWord(mods, "static"),
				Final:  hasWord(mods, "final"),
			},
		})
	}
}
