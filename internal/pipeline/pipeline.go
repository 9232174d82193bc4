// Package pipeline wires crawling, parsing, comment generation and diagram
// generation into a single run over one source tree.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/sourcegraph/conc/pool"

	"comprehend/internal/commenter"
	"comprehend/internal/config"
	"comprehend/internal/crawler"
	"comprehend/internal/diagram"
	"comprehend/internal/git"
	"comprehend/internal/graph"
	"comprehend/internal/llm"
	"comprehend/internal/model"
	"comprehend/internal/parser"
)

// CompleterFactory builds one completion client. Each worker calls it once and
// owns the returned client for its lifetime.
type CompleterFactory func() (llm.Completer, error)

// Summary reports what a run produced.
type Summary struct {
	FilesFound        int
	FilesCommented    int
	FilesFailed       int
	SupportFilesCount int
	DiagramsGenerated int
	DiagramsOmitted   int
	Elapsed           time.Duration
}

// Pipeline executes a full annotation run.
type Pipeline struct {
	cfg     *config.Config
	log     *slog.Logger
	factory CompleterFactory
}

// New creates a pipeline. A nil factory defaults to the configured provider
// and a nil logger to slog.Default.
func New(cfg *config.Config, log *slog.Logger, factory CompleterFactory) *Pipeline {
	if log == nil {
		log = slog.Default()
	}
	if factory == nil {
		factory = func() (llm.Completer, error) {
			return llm.NewCompleter(llm.Options{
				Provider:          cfg.AI.Provider,
				APIKey:            cfg.AI.APIKey,
				Model:             cfg.AI.Model,
				BaseURL:           cfg.AI.BaseURL,
				Temperature:       cfg.AI.Temperature,
				Timeout:           time.Duration(cfg.AI.TimeoutSeconds) * time.Second,
				MaxRetries:        cfg.AI.MaxRetries,
				RequestsPerSecond: cfg.AI.RequestsPerSecond,
			})
		}
	}
	return &Pipeline{cfg: cfg, log: log, factory: factory}
}

// Run processes source, which is either a local directory or a GitHub URL,
// and writes the annotated tree and architecture artifacts under outputDir.
// Per-file problems are logged and survived; only infrastructure failures
// return an error.
func (pl *Pipeline) Run(ctx context.Context, source, outputDir string) (*Summary, error) {
	start := time.Now()
	summary := &Summary{}

	root := source
	if git.IsRepoURL(source) {
		pl.log.Info("cloning repository", "url", source)
		dir, err := git.Clone(ctx, source)
		if err != nil {
			return nil, err
		}
		defer os.RemoveAll(dir)
		root = dir
	}

	files, err := crawler.FindJavaFiles(root)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no Java files found in %s", root)
	}
	summary.FilesFound = len(files)
	pl.log.Info("discovered sources", "files", len(files))

	project, parsed := pl.parseAll(root, files)

	srcOut := filepath.Join(outputDir, "src")
	if err := os.MkdirAll(srcOut, 0o755); err != nil {
		return nil, fmt.Errorf("cannot create output directory: %w", err)
	}

	if pl.cfg.Comments.Skip {
		pl.log.Info("comment generation skipped")
		for _, f := range parsed {
			if err := pl.writeOutput(srcOut, f.Path, f.Source); err != nil {
				pl.log.Error("failed to write source", "file", f.Path, "error", err)
				summary.FilesFailed++
			}
		}
	} else {
		pl.commentAll(ctx, parsed, srcOut, summary)
	}

	copied, err := crawler.CopySupportFiles(root, srcOut)
	if err != nil {
		pl.log.Warn("support file copy incomplete", "error", err)
	}
	summary.SupportFilesCount = copied

	if !pl.cfg.Diagrams.Skip {
		depGraph := graph.NewBuilder(pl.cfg.ExcludedTypes).Build(project)
		stats := graph.Collect(project, depGraph)
		gen := diagram.NewGenerator(nil, diagram.Options{
			Format:        pl.cfg.Diagrams.Format,
			MaxClassNodes: pl.cfg.Diagrams.MaxClassNodes,
			MaxFocusNodes: pl.cfg.Diagrams.MaxFocusNodes,
		}, pl.log)
		summary.DiagramsGenerated, summary.DiagramsOmitted = gen.Generate(
			project, depGraph, stats, filepath.Join(outputDir, "architecture"))
	}

	summary.Elapsed = time.Since(start)
	if summary.FilesFailed*2 > summary.FilesFound {
		pl.log.Warn("more than half of the files failed",
			"failed", summary.FilesFailed, "total", summary.FilesFound)
	}
	pl.log.Info("run complete",
		"commented", summary.FilesCommented,
		"failed", summary.FilesFailed,
		"diagrams", summary.DiagramsGenerated,
		"elapsed", summary.Elapsed.Round(time.Millisecond))
	return summary, nil
}

// parseAll reads and parses every file, accumulating the project model.
// Unreadable or unparseable files stay in the result so their content is still
// copied through.
func (pl *Pipeline) parseAll(root string, files []string) (*model.Project, []*model.File) {
	p := parser.New()
	project := model.NewProject(root)
	parsed := make([]*model.File, 0, len(files))

	for _, path := range files {
		rel, err := filepath.Rel(root, path)
		if err != nil {
			rel = filepath.Base(path)
		}
		source, err := os.ReadFile(path)
		if err != nil {
			pl.log.Error("cannot read file", "file", rel, "error", err)
			continue
		}
		f := p.Parse(rel, source)
		if f.ParseError != "" {
			pl.log.Warn("parse failed", "file", rel, "error", f.ParseError)
		}
		for _, fqn := range project.AddFile(f) {
			pl.log.Warn("duplicate class name, keeping latest", "class", fqn, "file", rel)
		}
		parsed = append(parsed, f)
	}
	return project, parsed
}

// commentAll shards the files across the worker pool. Every worker creates
// and owns its own completion client.
func (pl *Pipeline) commentAll(ctx context.Context, files []*model.File, srcOut string, summary *Summary) {
	workers := pl.cfg.Workers
	if workers > len(files) {
		workers = len(files)
	}
	if workers < 1 {
		workers = 1
	}
	shards := make([][]*model.File, workers)
	for i, f := range files {
		shards[i%workers] = append(shards[i%workers], f)
	}

	var mu sync.Mutex
	p := pool.New().WithMaxGoroutines(workers)
	for _, shard := range shards {
		shard := shard
		p.Go(func() {
			completer, err := pl.factory()
			if err != nil {
				pl.log.Error("cannot create completion client", "error", err)
				mu.Lock()
				summary.FilesFailed += len(shard)
				mu.Unlock()
				return
			}
			defer completer.Close()

			engine := commenter.New(completer, commenter.Options{
				Javadoc:   pl.cfg.Comments.Javadoc,
				Inline:    pl.cfg.Comments.Inline,
				BatchSize: pl.cfg.Comments.BatchSize,
			}, pl.log)

			for _, f := range shard {
				annotated := engine.AddComments(ctx, f)
				err := pl.writeOutput(srcOut, f.Path, annotated)
				mu.Lock()
				if err != nil {
					pl.log.Error("failed to write source", "file", f.Path, "error", err)
					summary.FilesFailed++
				} else {
					summary.FilesCommented++
				}
				mu.Unlock()
			}
		})
	}
	p.Wait()
}

// writeOutput writes content under srcOut at the file's relative path, with
// the configured suffix inserted before the .java extension.
func (pl *Pipeline) writeOutput(srcOut, rel, content string) error {
	out := filepath.Join(srcOut, suffixed(rel, pl.cfg.Comments.Suffix))
	if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
		return err
	}
	return os.WriteFile(out, []byte(content), 0o644)
}

func suffixed(rel, suffix string) string {
	if suffix == "" {
		return rel
	}
	if strings.HasSuffix(rel, ".java") {
		return strings.TrimSuffix(rel, ".java") + suffix + ".java"
	}
	return rel + suffix
}
