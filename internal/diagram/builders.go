package diagram

import (
	"fmt"
	"sort"
	"strings"

	"comprehend/internal/graph"
	"comprehend/internal/model"
)

const memberLabelCap = 5

// PackageGraph builds the package-level architecture graph: one node per
// package with its class count, one edge when any class of A depends on any
// class of B. Self-loops are excluded.
func PackageGraph(p *model.Project, g *graph.Graph) Desc {
	d := Desc{Name: "package_structure", RankDir: "TB"}

	packages := p.Packages()
	names := make([]string, 0, len(packages))
	for name := range packages {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		d.Nodes = append(d.Nodes, Node{
			ID:    packageID(name),
			Label: fmt.Sprintf("%s\\n(%d classes)", packageID(name), len(packages[name])),
			Style: "shape=folder, style=filled, fillcolor=lightblue",
		})
	}

	seen := make(map[string]bool)
	for _, name := range names {
		for _, cls := range packages[name] {
			for _, dep := range g.Dependencies(cls.FQN) {
				target, ok := p.Class(dep)
				if !ok || target.Package == name {
					continue
				}
				key := name + "|" + target.Package
				if seen[key] {
					continue
				}
				seen[key] = true
				d.Edges = append(d.Edges, Edge{From: packageID(name), To: packageID(target.Package)})
			}
		}
	}
	return d
}

// ClassGraph builds a class diagram bounded at maxClasses nodes, selected
// deterministically in declaration order. Node labels carry up to five
// fields and five methods with UML visibility glyphs.
func ClassGraph(p *model.Project, maxClasses int) Desc {
	d := Desc{Name: "class_diagram", RankDir: "BT"}

	classes := p.Classes()
	if maxClasses > 0 && len(classes) > maxClasses {
		classes = classes[:maxClasses]
	}
	shown := make(map[string]bool, len(classes))
	for _, cls := range classes {
		shown[cls.FQN] = true
	}

	for _, cls := range classes {
		d.Nodes = append(d.Nodes, Node{
			ID:    cls.FQN,
			Label: classLabel(cls),
			Style: "shape=record, style=filled, fillcolor=" + kindColor(cls.Kind),
		})
	}

	// Inheritance edges between shown classes only.
	for _, cls := range classes {
		if cls.Extends != "" {
			if target, ok := p.Resolve(cls.Extends, cls.Package); ok && shown[target] {
				d.Edges = append(d.Edges, Edge{From: cls.FQN, To: target, Style: "arrowhead=empty"})
			}
		}
		for _, iface := range cls.Implements {
			if target, ok := p.Resolve(iface, cls.Package); ok && shown[target] {
				d.Edges = append(d.Edges, Edge{From: cls.FQN, To: target, Style: "arrowhead=empty, style=dashed"})
			}
		}
	}
	return d
}

// FocusGraph builds the dependency diagram limited to the topN most
// connected classes by combined in+out degree. Classes sitting on a detected
// cycle are highlighted, and edges inside a cycle are drawn in red.
func FocusGraph(p *model.Project, g *graph.Graph, stats *graph.Statistics, topN int) Desc {
	d := Desc{Name: "dependency_graph", RankDir: "LR"}

	focus := make(map[string]bool)
	for _, cd := range stats.TopConnected(topN) {
		focus[cd.FQN] = true
	}
	if len(focus) == 0 {
		// No dependencies at all; show the first classes anyway.
		for i, cls := range p.Classes() {
			if topN > 0 && i >= topN {
				break
			}
			focus[cls.FQN] = true
		}
	}

	onCycle := graph.CycleMembers(stats.Cycles)

	for _, cls := range p.Classes() {
		if !focus[cls.FQN] {
			continue
		}
		style := "shape=ellipse, style=filled, fillcolor=" + kindColor(cls.Kind)
		if onCycle[cls.FQN] {
			style = "shape=ellipse, style=filled, fillcolor=salmon, color=red"
		}
		d.Nodes = append(d.Nodes, Node{ID: cls.FQN, Label: cls.Name, Style: style})
	}

	for _, cls := range p.Classes() {
		if !focus[cls.FQN] {
			continue
		}
		for _, dep := range g.Dependencies(cls.FQN) {
			if !focus[dep] {
				continue
			}
			style := ""
			if onCycle[cls.FQN] && onCycle[dep] {
				style = "color=red, penwidth=2"
			}
			d.Edges = append(d.Edges, Edge{From: cls.FQN, To: dep, Style: style})
		}
	}
	return d
}

func classLabel(cls *model.ClassInfo) string {
	var b strings.Builder
	b.WriteString("{")
	switch cls.Kind {
	case model.KindInterface:
		b.WriteString("\\<\\<interface\\>\\>\\n")
	case model.KindEnum:
		b.WriteString("\\<\\<enum\\>\\>\\n")
	}
	b.WriteString(cls.Name)

	if len(cls.Fields) > 0 {
		b.WriteString("|")
		for _, f := range capMembers(cls.Fields) {
			fmt.Fprintf(&b, "%s %s\\l", f.Visibility.Glyph(), f.Name)
		}
	}
	if len(cls.Methods) > 0 {
		b.WriteString("|")
		for _, m := range capMembers(cls.Methods) {
			fmt.Fprintf(&b, "%s %s()\\l", m.Visibility.Glyph(), m.Name)
		}
	}
	b.WriteString("}")
	return b.String()
}

func capMembers(members []model.Member) []model.Member {
	if len(members) > memberLabelCap {
		return members[:memberLabelCap]
	}
	return members
}

func kindColor(kind model.Kind) string {
	switch kind {
	case model.KindInterface:
		return "lightyellow"
	case model.KindEnum:
		return "lightgreen"
	default:
		return "lightblue"
	}
}

func packageID(name string) string {
	if name == "" {
		return "default"
	}
	return name
}
