package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func classFile(path, pkg, name string) *File {
	f := NewFile(path, "")
	f.Package = pkg
	f.AddDecl(0, Declaration{Kind: KindClass, Name: name, Class: &ClassDetail{}})
	return f
}

func TestProject_AddFileAndLookup(t *testing.T) {
	p := NewProject("/tmp/demo")
	collisions := p.AddFile(classFile("a/Foo.java", "com.a", "Foo"))
	assert.Empty(t, collisions)

	c, ok := p.Class("com.a.Foo")
	require.True(t, ok)
	assert.Equal(t, "Foo", c.Name)
	assert.Equal(t, "com.a", c.Package)
}

func TestProject_CollisionLaterWins(t *testing.T) {
	p := NewProject("")
	p.AddFile(classFile("one/Foo.java", "com.a", "Foo"))

	dup := NewFile("two/Foo.java", "")
	dup.Package = "com.a"
	dup.AddDecl(0, Declaration{Kind: KindClass, Name: "Foo", Class: &ClassDetail{Extends: "Base"}})

	collisions := p.AddFile(dup)
	assert.Equal(t, []string{"com.a.Foo"}, collisions)

	c, ok := p.Class("com.a.Foo")
	require.True(t, ok)
	assert.Equal(t, "Base", c.Extends, "the later registration should win")
	assert.Len(t, p.Classes(), 1)
}

func TestProject_ClassesDeclarationOrder(t *testing.T) {
	p := NewProject("")
	p.AddFile(classFile("B.java", "pkg", "B"))
	p.AddFile(classFile("A.java", "pkg", "A"))

	classes := p.Classes()
	require.Len(t, classes, 2)
	assert.Equal(t, "pkg.B", classes[0].FQN)
	assert.Equal(t, "pkg.A", classes[1].FQN)
}

func TestProject_Resolve(t *testing.T) {
	p := NewProject("")
	p.AddFile(classFile("a/Service.java", "com.a", "Service"))
	p.AddFile(classFile("b/Repo.java", "com.b", "Repo"))

	t.Run("exact FQN", func(t *testing.T) {
		fqn, ok := p.Resolve("com.b.Repo", "com.a")
		assert.True(t, ok)
		assert.Equal(t, "com.b.Repo", fqn)
	})

	t.Run("same package first", func(t *testing.T) {
		fqn, ok := p.Resolve("Service", "com.a")
		assert.True(t, ok)
		assert.Equal(t, "com.a.Service", fqn)
	})

	t.Run("unique simple name", func(t *testing.T) {
		fqn, ok := p.Resolve("Repo", "com.a")
		assert.True(t, ok)
		assert.Equal(t, "com.b.Repo", fqn)
	})

	t.Run("ambiguous simple name", func(t *testing.T) {
		p.AddFile(classFile("c/Repo.java", "com.c", "Repo"))
		_, ok := p.Resolve("Repo", "com.a")
		assert.False(t, ok)
	})

	t.Run("unknown name", func(t *testing.T) {
		_, ok := p.Resolve("Nope", "com.a")
		assert.False(t, ok)
	})
}

func TestProject_SummaryTypeRefs(t *testing.T) {
	f := NewFile("Svc.java", "")
	f.Package = "app"
	cid := f.AddDecl(0, Declaration{
		Kind:  KindClass,
		Name:  "Svc",
		Class: &ClassDetail{Extends: "Base", Implements: []string{"Runnable"}},
	})
	f.AddDecl(cid, Declaration{Kind: KindField, Name: "repo", Field: &FieldDetail{Type: "Repo"}})
	f.AddDecl(cid, Declaration{
		Kind: KindMethod, Name: "find",
		Method: &MethodDetail{
			ReturnType: "Result",
			Params:     []Param{{Type: "Query", Name: "q"}},
			Throws:     []string{"NotFoundException"},
		},
	})

	p := NewProject("")
	p.AddFile(f)

	c, ok := p.Class("app.Svc")
	assert.True(t, ok)
	assert.ElementsMatch(t,
		[]string{"Base", "Runnable", "Repo", "Result", "Query", "NotFoundException"},
		c.TypeRefs)
	assert.Equal(t, []Member{{Name: "repo", Visibility: ""}}, c.Fields)
}
