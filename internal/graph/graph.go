// Package graph builds and queries the class-to-class dependency graph.
package graph

import (
	"sort"
	"strings"

	"comprehend/internal/model"
)

// Graph holds directed class dependencies keyed by fully qualified name.
// Forward and reverse adjacency are maintained together so both directions
// are O(1) to query; AddEdge is the only mutation path, which keeps the two
// maps symmetric.
type Graph struct {
	forward map[string]map[string]bool
	reverse map[string]map[string]bool
}

// New creates an empty graph.
func New() *Graph {
	return &Graph{
		forward: make(map[string]map[string]bool),
		reverse: make(map[string]map[string]bool),
	}
}

// AddEdge records that from depends on to. Self-edges are ignored.
func (g *Graph) AddEdge(from, to string) {
	if from == "" || to == "" || from == to {
		return
	}
	if g.forward[from] == nil {
		g.forward[from] = make(map[string]bool)
	}
	g.forward[from][to] = true

	if g.reverse[to] == nil {
		g.reverse[to] = make(map[string]bool)
	}
	g.reverse[to][from] = true
}

// Dependencies returns the classes from depends on, sorted.
func (g *Graph) Dependencies(from string) []string {
	return sortedKeys(g.forward[from])
}

// Dependents returns the classes that depend on to, sorted.
func (g *Graph) Dependents(to string) []string {
	return sortedKeys(g.reverse[to])
}

// Degree is the combined in+out degree of a class.
func (g *Graph) Degree(fqn string) int {
	return len(g.forward[fqn]) + len(g.reverse[fqn])
}

// EdgeCount returns the total number of edges.
func (g *Graph) EdgeCount() int {
	n := 0
	for _, tos := range g.forward {
		n += len(tos)
	}
	return n
}

// MaxFanOut returns the largest dependency count of any single class.
func (g *Graph) MaxFanOut() int {
	max := 0
	for _, tos := range g.forward {
		if len(tos) > max {
			max = len(tos)
		}
	}
	return max
}

func sortedKeys(set map[string]bool) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Builder derives a Graph from a project's class registry. Edge sources are
// supertypes, implemented interfaces, field types, method parameter and
// return types, and declared exceptions. Primitives and ubiquitous library
// types never become edges; names that do not resolve to a project class are
// dropped silently.
type Builder struct {
	excluded map[string]bool
}

// javaPrimitives and ubiquitousTypes form the built-in allow-list of names
// excluded from edge generation.
var javaPrimitives = []string{
	"boolean", "byte", "char", "short", "int", "long", "float", "double", "void",
}

var ubiquitousTypes = []string{
	"Object", "String", "CharSequence", "StringBuilder",
	"Integer", "Long", "Double", "Float", "Boolean", "Byte", "Short", "Character", "Number",
	"List", "ArrayList", "LinkedList", "Map", "HashMap", "TreeMap", "Set", "HashSet", "TreeSet",
	"Collection", "Iterable", "Iterator", "Optional", "Stream",
	"Exception", "RuntimeException", "Error", "Throwable", "IOException",
}

// NewBuilder creates a Builder whose exclusion list is the built-in default
// extended by extra.
func NewBuilder(extra []string) *Builder {
	b := &Builder{excluded: make(map[string]bool)}
	for _, t := range javaPrimitives {
		b.excluded[t] = true
	}
	for _, t := range ubiquitousTypes {
		b.excluded[t] = true
	}
	for _, t := range extra {
		b.excluded[strings.TrimSpace(t)] = true
	}
	return b
}

// Build produces the dependency graph for every class in the project.
func (b *Builder) Build(p *model.Project) *Graph {
	g := New()
	for _, c := range p.Classes() {
		for _, raw := range c.TypeRefs {
			for _, name := range baseTypeNames(raw) {
				if b.excluded[name] {
					continue
				}
				target, ok := p.Resolve(name, c.Package)
				if !ok {
					continue
				}
				g.AddEdge(c.FQN, target)
			}
		}
	}
	return g
}

// baseTypeNames splits a raw type reference into candidate class names:
// array markers and varargs are stripped, generic arguments contribute their
// own names ("Map<Foo,Bar>" yields Map, Foo and Bar).
func baseTypeNames(raw string) []string {
	raw = strings.ReplaceAll(raw, "...", "")
	raw = strings.ReplaceAll(raw, "[]", "")
	var out []string
	for _, part := range strings.FieldsFunc(raw, func(r rune) bool {
		return r == '<' || r == '>' || r == ',' || r == '?' || r == ' '
	}) {
		part = strings.TrimSpace(part)
		if part == "" || part == "extends" || part == "super" {
			continue
		}
		out = append(out, part)
	}
	return out
}
