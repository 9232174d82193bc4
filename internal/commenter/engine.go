package commenter

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/sourcegraph/conc/pool"

	"comprehend/internal/llm"
	"comprehend/internal/model"
)

// Engine runs the comment pipeline for single files. One engine is owned by
// one worker; it shares nothing with its siblings.
type Engine struct {
	completer llm.Completer
	opts      Options
	log       *slog.Logger
}

// New creates an Engine around the given completion client.
func New(completer llm.Completer, opts Options, log *slog.Logger) *Engine {
	if log == nil {
		log = slog.Default()
	}
	if opts.BatchSize < 1 {
		opts.BatchSize = 1
	}
	return &Engine{completer: completer, opts: opts, log: log}
}

// AddComments returns the file's source with generated comments spliced in.
// Comment generation never fails a file: dropped tasks are logged, and when
// nothing at all survives the original text comes back unchanged.
func (e *Engine) AddComments(ctx context.Context, f *model.File) string {
	lines := strings.Split(f.Source, "\n")

	tasks := Plan(f, lines, e.opts)
	if len(tasks) == 0 {
		return f.Source
	}
	e.log.Debug("planned comment tasks", "file", f.Path, "tasks", len(tasks))

	results := e.generateAll(ctx, f.Path, tasks)
	if len(results) == 0 {
		e.log.Warn("no comments generated, returning original source", "file", f.Path)
		return f.Source
	}

	return Patch(lines, results)
}

// generateAll issues every batch of one file concurrently and waits for all
// of them. A failing batch never cancels its siblings; failures degrade to
// dropped tasks.
func (e *Engine) generateAll(ctx context.Context, path string, tasks []Task) []Result {
	batches := chunkTasks(tasks, e.opts.BatchSize)

	p := pool.New().WithMaxGoroutines(len(batches))
	var mu sync.Mutex
	var results []Result

	for _, batch := range batches {
		batch := batch
		p.Go(func() {
			done := e.generateBatch(ctx, batch)
			mu.Lock()
			results = append(results, done...)
			mu.Unlock()
		})
	}
	p.Wait()

	e.log.Debug("generated comments", "file", path, "generated", len(results), "planned", len(tasks))
	return results
}

// generateBatch requests one batch. When the batch call itself fails every
// task is retried once individually before being dropped; when the response
// is short or has empty segments only the affected tasks are dropped.
func (e *Engine) generateBatch(ctx context.Context, batch []Task) []Result {
	response, err := e.completer.Complete(ctx, batchPrompt(batch), batchTokens(batch))
	if err != nil {
		e.log.Debug("batch completion failed, retrying tasks individually", "tasks", len(batch), "error", err)
		results := make([]Result, 0, len(batch))
		for _, task := range batch {
			if r, ok := e.generateOne(ctx, task); ok {
				results = append(results, r)
			}
		}
		e.log.Info("recovered batch individually",
			"recovered", fmt.Sprintf("%d/%d via fallback", len(results), len(batch)))
		return results
	}

	answers := splitAnswers(response)
	results := make([]Result, 0, len(batch))
	for i, task := range batch {
		if i >= len(answers) {
			e.log.Warn("batch response shorter than batch, dropping task", "task", task.Key)
			continue
		}
		if strings.TrimSpace(answers[i]) == "" {
			e.log.Warn("empty batch answer, dropping task", "task", task.Key)
			continue
		}
		results = append(results, Result{Task: task, Comment: formatComment(task.Kind, answers[i])})
	}
	return results
}

// generateOne is the isolated single-task fallback.
func (e *Engine) generateOne(ctx context.Context, task Task) (Result, bool) {
	text, err := e.completer.Complete(ctx, task.Prompt, task.MaxTokens)
	if err != nil {
		e.log.Warn("dropping comment task", "task", task.Key, "error", err)
		return Result{}, false
	}
	if strings.TrimSpace(text) == "" {
		e.log.Warn("dropping comment task, empty completion", "task", task.Key)
		return Result{}, false
	}
	return Result{Task: task, Comment: formatComment(task.Kind, text)}, true
}
