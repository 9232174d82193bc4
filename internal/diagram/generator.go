package diagram

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"comprehend/internal/graph"
	"comprehend/internal/model"
)

const reportFileName = "statistics_report.md"

// Options controls which diagrams are produced and how large they may grow.
type Options struct {
	Format        string
	MaxClassNodes int
	MaxFocusNodes int
}

// Generator writes the architecture artifacts for an analyzed project.
// Each artifact is produced independently; one failure never blocks the rest.
type Generator struct {
	renderer Renderer
	opts     Options
	log      *slog.Logger
}

// NewGenerator creates a generator. A nil renderer defaults to Graphviz and a
// nil logger defaults to slog.Default.
func NewGenerator(renderer Renderer, opts Options, log *slog.Logger) *Generator {
	if renderer == nil {
		renderer = NewGraphvizRenderer(opts.Format)
	}
	if log == nil {
		log = slog.Default()
	}
	if opts.MaxClassNodes <= 0 {
		opts.MaxClassNodes = 50
	}
	if opts.MaxFocusNodes <= 0 {
		opts.MaxFocusNodes = 30
	}
	return &Generator{renderer: renderer, opts: opts, log: log}
}

// Generate produces the package graph, class graph, focus graph and the
// statistics report under dir. It returns how many artifacts were written and
// how many were skipped because of errors.
func (gen *Generator) Generate(p *model.Project, g *graph.Graph, stats *graph.Statistics, dir string) (generated, omitted int) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		gen.log.Error("cannot create diagram directory", "dir", dir, "error", err)
		return 0, 4
	}

	descs := []Desc{
		PackageGraph(p, g),
		ClassGraph(p, gen.opts.MaxClassNodes),
		FocusGraph(p, g, stats, gen.opts.MaxFocusNodes),
	}
	for _, desc := range descs {
		if len(desc.Nodes) == 0 {
			gen.log.Info("skipping empty diagram", "diagram", desc.Name)
			omitted++
			continue
		}
		path, err := gen.renderer.Render(desc, dir)
		if err != nil {
			gen.log.Error("diagram generation failed", "diagram", desc.Name, "error", err)
			omitted++
			continue
		}
		gen.log.Info("generated diagram", "path", path)
		generated++
	}

	if err := gen.writeReport(p, stats, dir); err != nil {
		gen.log.Error("statistics report failed", "error", err)
		omitted++
	} else {
		generated++
	}
	return generated, omitted
}

func (gen *Generator) writeReport(p *model.Project, stats *graph.Statistics, dir string) error {
	path := filepath.Join(dir, reportFileName)
	report := StatisticsReport(p, stats)
	if err := os.WriteFile(path, []byte(report), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	gen.log.Info("generated report", "path", path)
	return nil
}
