package pipeline

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"comprehend/internal/config"
	"comprehend/internal/llm"
)

type echoCompleter struct{}

func (echoCompleter) Complete(_ context.Context, prompt string, _ int) (string, error) {
	// Answer a batch prompt with one canned answer per request.
	n := strings.Count(prompt, "Request ")
	if n == 0 {
		return "Generated comment.", nil
	}
	answers := make([]string, n)
	for i := range answers {
		answers[i] = "Generated comment."
	}
	return strings.Join(answers, "\n-----\n"), nil
}

func (echoCompleter) Close() error { return nil }

func echoFactory() (llm.Completer, error) { return echoCompleter{}, nil }

func writeFixtureTree(t *testing.T) string {
	t.Helper()
	root := t.TempDir()

	app := `package com.demo;

public class App {
    private Service service;

    public void run() {
    }
}
`
	service := `package com.demo;

public class Service {
    public void execute() {
    }
}
`
	require.NoError(t, os.MkdirAll(filepath.Join(root, "src", "com", "demo"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "src", "com", "demo", "App.java"), []byte(app), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "src", "com", "demo", "Service.java"), []byte(service), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "pom.xml"), []byte("<project/>"), 0o644))
	return root
}

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.AI.APIKey = "test"
	cfg.Workers = 2
	cfg.Diagrams.Skip = true
	return cfg
}

func TestPipeline_Run(t *testing.T) {
	root := writeFixtureTree(t)
	out := filepath.Join(t.TempDir(), "out")

	pl := New(testConfig(), nil, echoFactory)
	summary, err := pl.Run(context.Background(), root, out)
	require.NoError(t, err)

	assert.Equal(t, 2, summary.FilesFound)
	assert.Equal(t, 2, summary.FilesCommented)
	assert.Equal(t, 0, summary.FilesFailed)
	assert.Equal(t, 1, summary.SupportFilesCount)

	annotated, err := os.ReadFile(filepath.Join(out, "src", "src", "com", "demo", "App_commented.java"))
	require.NoError(t, err)
	text := string(annotated)
	assert.Contains(t, text, "Generated comment.")
	assert.Contains(t, text, "public class App {")
	assert.Contains(t, text, "private Service service;")

	_, err = os.Stat(filepath.Join(out, "src", "pom.xml"))
	assert.NoError(t, err)
}

func TestPipeline_Run_SkipComments(t *testing.T) {
	root := writeFixtureTree(t)
	out := filepath.Join(t.TempDir(), "out")

	cfg := testConfig()
	cfg.Comments.Skip = true
	pl := New(cfg, nil, echoFactory)

	summary, err := pl.Run(context.Background(), root, out)
	require.NoError(t, err)
	assert.Equal(t, 0, summary.FilesCommented)

	original, err := os.ReadFile(filepath.Join(out, "src", "src", "com", "demo", "Service_commented.java"))
	require.NoError(t, err)
	assert.NotContains(t, string(original), "Generated comment.")
}

func TestPipeline_Run_Diagrams(t *testing.T) {
	root := writeFixtureTree(t)
	out := filepath.Join(t.TempDir(), "out")

	cfg := testConfig()
	cfg.Diagrams.Skip = false
	pl := New(cfg, nil, echoFactory)

	summary, err := pl.Run(context.Background(), root, out)
	require.NoError(t, err)
	assert.Greater(t, summary.DiagramsGenerated, 0)

	report, err := os.ReadFile(filepath.Join(out, "architecture", "statistics_report.md"))
	require.NoError(t, err)
	assert.Contains(t, string(report), "# Code Statistics Report")

	// The .dot source is kept regardless of whether Graphviz is installed.
	_, err = os.Stat(filepath.Join(out, "architecture", "package_structure.dot"))
	assert.NoError(t, err)
}

func TestPipeline_Run_NoJavaFiles(t *testing.T) {
	root := t.TempDir()
	pl := New(testConfig(), nil, echoFactory)

	_, err := pl.Run(context.Background(), root, t.TempDir())
	assert.ErrorContains(t, err, "no Java files")
}

func TestPipeline_Run_FactoryFailureCountsShard(t *testing.T) {
	root := writeFixtureTree(t)

	failing := func() (llm.Completer, error) { return nil, errors.New("no credentials") }
	pl := New(testConfig(), nil, failing)

	summary, err := pl.Run(context.Background(), root, filepath.Join(t.TempDir(), "out"))
	require.NoError(t, err, "completion problems never fail the run")
	assert.Equal(t, 2, summary.FilesFailed)
	assert.Equal(t, 0, summary.FilesCommented)
}

func TestPipeline_Run_BrokenFileSurvives(t *testing.T) {
	root := writeFixtureTree(t)
	require.NoError(t, os.WriteFile(filepath.Join(root, "src", "Broken.java"), []byte("class Broken { void x( }"), 0o644))

	out := filepath.Join(t.TempDir(), "out")
	pl := New(testConfig(), nil, echoFactory)

	summary, err := pl.Run(context.Background(), root, out)
	require.NoError(t, err)
	assert.Equal(t, 3, summary.FilesFound)

	original, err := os.ReadFile(filepath.Join(out, "src", "src", "Broken_commented.java"))
	require.NoError(t, err)
	assert.Equal(t, "class Broken { void x( }", string(original))
}

func TestSuffixed(t *testing.T) {
	assert.Equal(t, "a/App_commented.java", suffixed("a/App.java", "_commented"))
	assert.Equal(t, "a/App.java", suffixed("a/App.java", ""))
}
