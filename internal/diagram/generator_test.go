package diagram

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"comprehend/internal/graph"
)

// recordingRenderer captures rendered descriptions instead of shelling out.
type recordingRenderer struct {
	rendered []string
	fail     map[string]bool
}

func (r *recordingRenderer) Render(desc Desc, dir string) (string, error) {
	if r.fail[desc.Name] {
		return "", errors.New("layout failed")
	}
	r.rendered = append(r.rendered, desc.Name)
	return filepath.Join(dir, desc.Name+".png"), nil
}

func TestGenerator_ProducesAllArtifacts(t *testing.T) {
	p, g := demoProject()
	stats := graph.Collect(p, g)
	dir := t.TempDir()

	rec := &recordingRenderer{}
	gen := NewGenerator(rec, Options{}, nil)

	generated, omitted := gen.Generate(p, g, stats, dir)

	assert.Equal(t, 4, generated)
	assert.Equal(t, 0, omitted)
	assert.Equal(t, []string{"package_structure", "class_diagram", "dependency_graph"}, rec.rendered)

	report, err := os.ReadFile(filepath.Join(dir, reportFileName))
	require.NoError(t, err)
	assert.Contains(t, string(report), "# Code Statistics Report")
}

func TestGenerator_OneFailureDoesNotBlockOthers(t *testing.T) {
	p, g := demoProject()
	stats := graph.Collect(p, g)

	rec := &recordingRenderer{fail: map[string]bool{"class_diagram": true}}
	gen := NewGenerator(rec, Options{}, nil)

	generated, omitted := gen.Generate(p, g, stats, t.TempDir())

	assert.Equal(t, 3, generated)
	assert.Equal(t, 1, omitted)
	assert.Equal(t, []string{"package_structure", "dependency_graph"}, rec.rendered)
}

func TestGraphvizRenderer_KeepsDotSource(t *testing.T) {
	dir := t.TempDir()
	r := NewGraphvizRenderer("png")

	desc := Desc{Name: "sample", Nodes: []Node{{ID: "a", Label: "a"}}}
	_, err := r.Render(desc, dir)
	require.NoError(t, err)

	dot, err := os.ReadFile(filepath.Join(dir, "sample.dot"))
	require.NoError(t, err)
	assert.Contains(t, string(dot), `digraph "sample"`)
}
