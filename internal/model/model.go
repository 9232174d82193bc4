// Package model holds the typed representation of parsed Java sources.
//
// A File owns a flat arena of Declarations; parent/child links are indices
// into that arena rather than pointers, so the forest never contains
// ownership cycles. Line numbers always refer to the original, unmodified
// source text.
package model

import (
	"strings"
)

// Kind identifies what a Declaration is.
type Kind string

const (
	KindFile        Kind = "file"
	KindClass       Kind = "class"
	KindInterface   Kind = "interface"
	KindEnum        Kind = "enum"
	KindMethod      Kind = "method"
	KindConstructor Kind = "constructor"
	KindField       Kind = "field"
)

// Visibility is a Java access modifier.
type Visibility string

const (
	Public         Visibility = "public"
	Private        Visibility = "private"
	Protected      Visibility = "protected"
	PackagePrivate Visibility = "package-private"
)

// Glyph returns the UML visibility marker for diagram labels.
func (v Visibility) Glyph() string {
	switch v {
	case Public:
		return "+"
	case Private:
		return "-"
	case Protected:
		return "#"
	default:
		return "~"
	}
}

// Param is one (type, name) pair of a method signature, in declaration order.
type Param struct {
	Type string
	Name string
}

// ClassDetail carries the class/interface/enum specific parts of a Declaration.
type ClassDetail struct {
	Extends    string
	Implements []string
}

// MethodDetail carries the method/constructor specific parts of a Declaration.
type MethodDetail struct {
	ReturnType string
	Params     []Param
	Throws     []string
	Static     bool
	Abstract   bool
}

// FieldDetail carries the field specific parts of a Declaration.
type FieldDetail struct {
	Type   string
	Static bool
	Final  bool
}

// Declaration is one node of a file's declaration forest. Exactly one of the
// detail pointers is set, matching Kind.
type Declaration struct {
	ID         int
	Parent     int // arena index of the owner, -1 for the root file node
	Kind       Kind
	Name       string
	Visibility Visibility
	Line       int // 1-based line in the original source
	HasDoc     bool
	Children   []int

	Class  *ClassDetail
	Method *MethodDetail
	Field  *FieldDetail
}

// File is the parsed representation of one Java source file.
type File struct {
	Path    string
	Package string
	Imports []string
	Source  string

	// ParseError is non-empty when the file could not be parsed; the
	// declaration arena then contains only the file node.
	ParseError string

	Decls []Declaration
}

// NewFile creates a File whose arena contains the root file node at index 0.
func NewFile(path, source string) *File {
	f := &File{Path: path, Source: source}
	f.Decls = []Declaration{{
		ID:         0,
		Parent:     -1,
		Kind:       KindFile,
		Name:       baseName(path),
		Visibility: PackagePrivate,
		Line:       1,
	}}
	return f
}

// AddDecl appends d to the arena under the given parent and returns its index.
func (f *File) AddDecl(parent int, d Declaration) int {
	d.ID = len(f.Decls)
	d.Parent = parent
	f.Decls = append(f.Decls, d)
	f.Decls[parent].Children = append(f.Decls[parent].Children, d.ID)
	return d.ID
}

// Decl returns the declaration at the given arena index.
func (f *File) Decl(id int) *Declaration {
	return &f.Decls[id]
}

// Classes returns the arena indices of every class-like declaration in the
// file, in declaration order, inner classes included.
func (f *File) Classes() []int {
	var out []int
	for i := range f.Decls {
		switch f.Decls[i].Kind {
		case KindClass, KindInterface, KindEnum:
			out = append(out, i)
		}
	}
	return out
}

// Members returns the child indices of the declaration with the given kind.
func (f *File) Members(id int, kind Kind) []int {
	var out []int
	for _, c := range f.Decls[id].Children {
		if f.Decls[c].Kind == kind {
			out = append(out, c)
		}
	}
	return out
}

// FullName builds the dotted name of a declaration from the package down
// through its enclosing classes.
func (f *File) FullName(id int) string {
	var parts []string
	for cur := id; cur >= 0; cur = f.Decls[cur].Parent {
		if f.Decls[cur].Kind == KindFile {
			break
		}
		parts = append([]string{f.Decls[cur].Name}, parts...)
	}
	name := strings.Join(parts, ".")
	if f.Package != "" && name != "" {
		return f.Package + "." + name
	}
	return name
}

func baseName(path string) string {
	if i := strings.LastIndexAny(path, "/\\"); i >= 0 {
		return path[i+1:]
	}
	return path
}
