// Package diagram turns the source model and dependency graph into
// renderable graph descriptions and a plain-text statistics report. The
// actual layout engine is a collaborator behind the Renderer interface.
package diagram

import (
	"fmt"
	"strings"
)

// Node is one vertex of a graph description.
type Node struct {
	ID    string
	Label string
	Style string // DOT attribute list, e.g. `shape=folder, fillcolor=lightblue`
}

// Edge is one directed edge of a graph description.
type Edge struct {
	From  string
	To    string
	Style string
}

// Desc is a renderable graph description.
type Desc struct {
	Name    string
	RankDir string // TB, BT or LR
	Nodes   []Node
	Edges   []Edge
}

// DOT renders the description in Graphviz dot syntax.
func (d Desc) DOT() string {
	var b strings.Builder
	fmt.Fprintf(&b, "digraph %s {\n", dotQuote(d.Name))
	if d.RankDir != "" {
		fmt.Fprintf(&b, "    rankdir=%s;\n", d.RankDir)
	}
	for _, n := range d.Nodes {
		style := n.Style
		if style != "" {
			style = ", " + style
		}
		fmt.Fprintf(&b, "    %s [label=%s%s];\n", dotQuote(n.ID), dotQuote(n.Label), style)
	}
	for _, e := range d.Edges {
		if e.Style != "" {
			fmt.Fprintf(&b, "    %s -> %s [%s];\n", dotQuote(e.From), dotQuote(e.To), e.Style)
		} else {
			fmt.Fprintf(&b, "    %s -> %s;\n", dotQuote(e.From), dotQuote(e.To))
		}
	}
	b.WriteString("}\n")
	return b.String()
}

// dotQuote wraps s as a DOT double-quoted string. Only the quote character
// needs escaping; backslashes pass through untouched so record escape
// sequences like \l and \< reach Graphviz intact.
func dotQuote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `\"`) + `"`
}
