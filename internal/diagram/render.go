package diagram

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
)

// Renderer lays out a graph description and persists an image file. The core
// only depends on this contract; Graphviz is the default implementation.
type Renderer interface {
	// Render writes the diagram into dir and returns the created file path.
	Render(desc Desc, dir string) (string, error)
}

// GraphvizRenderer shells out to the dot binary. The .dot source is always
// written next to the image so runs without Graphviz still produce a usable
// artifact.
type GraphvizRenderer struct {
	Format string // output format, e.g. "png" or "svg"
}

// NewGraphvizRenderer creates a renderer for the given output format.
func NewGraphvizRenderer(format string) *GraphvizRenderer {
	if format == "" {
		format = "png"
	}
	return &GraphvizRenderer{Format: format}
}

// Available reports whether the dot binary can be found.
func (r *GraphvizRenderer) Available() bool {
	_, err := exec.LookPath("dot")
	return err == nil
}

func (r *GraphvizRenderer) Render(desc Desc, dir string) (string, error) {
	dotPath := filepath.Join(dir, desc.Name+".dot")
	if err := os.WriteFile(dotPath, []byte(desc.DOT()), 0o644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", dotPath, err)
	}

	if !r.Available() {
		// Graceful degradation: keep the .dot source as the artifact.
		return dotPath, nil
	}

	outPath := filepath.Join(dir, desc.Name+"."+r.Format)
	cmd := exec.Command("dot", "-T"+r.Format, "-o", outPath, dotPath)
	if out, err := cmd.CombinedOutput(); err != nil {
		return "", fmt.Errorf("dot failed for %s: %v: %s", desc.Name, err, string(out))
	}
	return outPath, nil
}
