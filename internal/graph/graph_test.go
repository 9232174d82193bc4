package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"comprehend/internal/model"
)

func projectWith(classes ...*model.ClassInfo) *model.Project {
	p := model.NewProject("")
	for _, c := range classes {
		f := model.NewFile(c.Name+".java", "")
		f.Package = c.Package
		d := model.Declaration{Kind: model.KindClass, Name: c.Name, Class: &model.ClassDetail{Extends: c.Extends}}
		id := f.AddDecl(0, d)
		for _, ref := range c.TypeRefs {
			f.AddDecl(id, model.Declaration{Kind: model.KindField, Name: "ref" + ref, Field: &model.FieldDetail{Type: ref}})
		}
		p.AddFile(f)
	}
	return p
}

func TestGraph_AddEdgeSymmetry(t *testing.T) {
	g := New()
	g.AddEdge("a.A", "b.B")
	g.AddEdge("a.A", "c.C")
	g.AddEdge("b.B", "c.C")

	assert.Equal(t, []string{"b.B", "c.C"}, g.Dependencies("a.A"))
	assert.Equal(t, []string{"a.A", "b.B"}, g.Dependents("c.C"))
	assert.Equal(t, 3, g.EdgeCount())
	assert.Equal(t, 2, g.MaxFanOut())
	assert.Equal(t, 3, g.Degree("b.B"), "one incoming plus one outgoing, counted once each")
}

func TestGraph_AddEdgeIgnoresSelfAndEmpty(t *testing.T) {
	g := New()
	g.AddEdge("a.A", "a.A")
	g.AddEdge("", "a.A")
	g.AddEdge("a.A", "")
	assert.Equal(t, 0, g.EdgeCount())
}

func TestGraph_AddEdgeDeduplicates(t *testing.T) {
	g := New()
	g.AddEdge("a.A", "b.B")
	g.AddEdge("a.A", "b.B")
	assert.Equal(t, 1, g.EdgeCount())
}

func TestBuilder_Build(t *testing.T) {
	p := projectWith(
		&model.ClassInfo{Name: "Service", Package: "app", TypeRefs: []string{"Repo", "String", "int", "List<Repo>"}},
		&model.ClassInfo{Name: "Repo", Package: "app", TypeRefs: []string{"Unknown"}},
	)
	g := NewBuilder(nil).Build(p)

	assert.Equal(t, []string{"app.Repo"}, g.Dependencies("app.Service"))
	assert.Empty(t, g.Dependencies("app.Repo"), "unresolved names are dropped")
}

func TestBuilder_ExtraExclusions(t *testing.T) {
	p := projectWith(
		&model.ClassInfo{Name: "Service", Package: "app", TypeRefs: []string{"Repo"}},
		&model.ClassInfo{Name: "Repo", Package: "app"},
	)
	g := NewBuilder([]string{"Repo"}).Build(p)
	assert.Equal(t, 0, g.EdgeCount())
}

func TestBuilder_GenericArgumentsBecomeEdges(t *testing.T) {
	p := projectWith(
		&model.ClassInfo{Name: "Cache", Package: "app", TypeRefs: []string{"Map<String,Entry>", "Entry[]", "Entry..."}},
		&model.ClassInfo{Name: "Entry", Package: "app"},
	)
	g := NewBuilder(nil).Build(p)
	assert.Equal(t, []string{"app.Entry"}, g.Dependencies("app.Cache"))
}

func TestBaseTypeNames(t *testing.T) {
	assert.ElementsMatch(t, []string{"Map", "Foo", "Bar"}, baseTypeNames("Map<Foo, Bar>"))
	assert.ElementsMatch(t, []string{"List", "Foo"}, baseTypeNames("List<? extends Foo>"))
	assert.ElementsMatch(t, []string{"Foo"}, baseTypeNames("Foo[]"))
	assert.ElementsMatch(t, []string{"Foo"}, baseTypeNames("Foo..."))
	assert.Empty(t, baseTypeNames(""))
}

func TestGraph_CyclesThreeNodeRing(t *testing.T) {
	g := New()
	g.AddEdge("a.A", "b.B")
	g.AddEdge("b.B", "c.C")
	g.AddEdge("c.C", "a.A")

	cycles := g.Cycles()
	require.NotEmpty(t, cycles)
	cycle := cycles[0]
	require.Len(t, cycle, 4, "ring plus closing repeat")
	assert.Equal(t, cycle[0], cycle[len(cycle)-1])
	assert.ElementsMatch(t, []string{"a.A", "b.B", "c.C"}, cycle[:3])
}

func TestGraph_CyclesNoneInDAG(t *testing.T) {
	g := New()
	g.AddEdge("a.A", "b.B")
	g.AddEdge("a.A", "c.C")
	g.AddEdge("b.B", "c.C")
	assert.Empty(t, g.Cycles())
}

func TestCycleMembers(t *testing.T) {
	members := CycleMembers([][]string{{"a.A", "b.B", "a.A"}})
	assert.True(t, members["a.A"])
	assert.True(t, members["b.B"])
	assert.False(t, members["c.C"])
}

func TestCollect_Statistics(t *testing.T) {
	p := model.NewProject("")

	f := model.NewFile("Svc.java", "")
	f.Package = "app"
	cid := f.AddDecl(0, model.Declaration{Kind: model.KindClass, Name: "Svc", Class: &model.ClassDetail{}})
	f.AddDecl(cid, model.Declaration{Kind: model.KindMethod, Name: "a", Method: &model.MethodDetail{}})
	f.AddDecl(cid, model.Declaration{Kind: model.KindMethod, Name: "b", Method: &model.MethodDetail{}})
	f.AddDecl(cid, model.Declaration{Kind: model.KindField, Name: "repo", Field: &model.FieldDetail{Type: "Repo"}})
	p.AddFile(f)

	i := model.NewFile("Repo.java", "")
	i.Package = "app"
	i.AddDecl(0, model.Declaration{Kind: model.KindInterface, Name: "Repo", Class: &model.ClassDetail{}})
	p.AddFile(i)

	broken := model.NewFile("Broken.java", "")
	broken.ParseError = "syntax error"
	p.AddFile(broken)

	g := NewBuilder(nil).Build(p)
	stats := Collect(p, g)

	assert.Equal(t, 3, stats.TotalFiles)
	assert.Equal(t, 1, stats.ParseFailures)
	assert.Equal(t, 1, stats.TotalClasses)
	assert.Equal(t, 1, stats.TotalInterfaces)
	assert.Equal(t, 2, stats.TotalMethods)
	assert.Equal(t, 1, stats.TotalFields)
	assert.Equal(t, 1, stats.PackageCount)
	assert.InDelta(t, 2.0, stats.AverageMethodsPerClass, 0.01)
	assert.Equal(t, 1, stats.TotalEdges)
	assert.Equal(t, 1, stats.MaxClassDependencies)

	top := stats.TopConnected(5)
	require.Len(t, top, 2)
	assert.Equal(t, 1, top[0].Degree)
}
