package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"comprehend/internal/config"
	"comprehend/internal/git"
	"comprehend/internal/pipeline"

	"github.com/spf13/cobra"
)

var (
	rootCmd = &cobra.Command{
		Use:   "comprehend",
		Short: "AI-powered Java codebase annotator",
		Long:  "comprehend parses a Java source tree, generates documentation comments with an LLM, and renders architecture diagrams.",
	}

	flagOutput    string
	flagConfig    string
	flagAPIKey    string
	flagModel     string
	flagProvider  string
	flagBaseURL   string
	flagWorkers   int
	flagBatchSize int
	flagSuffix    string
	flagFormat    string
	flagVerbose   bool

	flagCommentsOnly bool
	flagDiagramsOnly bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&flagOutput, "output", "o", "", "Output directory (default <source>_commented)")
	pf.StringVarP(&flagConfig, "config", "c", "config.yaml", "Path to the YAML config file")
	pf.StringVar(&flagAPIKey, "api-key", "", "API key for the completion provider")
	pf.StringVar(&flagModel, "model", "", "Completion model name")
	pf.StringVar(&flagProvider, "provider", "", "Completion provider (openai, ollama)")
	pf.StringVar(&flagBaseURL, "base-url", "", "Override the provider API base URL")
	pf.IntVarP(&flagWorkers, "workers", "w", 0, "Number of parallel file workers")
	pf.IntVar(&flagBatchSize, "batch-size", 0, "Comment requests per LLM call")
	pf.StringVar(&flagSuffix, "suffix", "", "Suffix appended to annotated file names")
	pf.StringVar(&flagFormat, "format", "", "Diagram image format (png, svg)")
	pf.BoolVarP(&flagVerbose, "verbose", "v", false, "Enable debug logging")

	runCmd.Flags().BoolVar(&flagCommentsOnly, "comments-only", false, "Skip diagram generation")
	runCmd.Flags().BoolVar(&flagDiagramsOnly, "diagrams-only", false, "Skip comment generation")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(commentCmd)
	rootCmd.AddCommand(diagramCmd)
}

// setup loads the config, applies flag overrides, and installs the logger.
func setup() (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, nil, err
	}
	if flagAPIKey != "" {
		cfg.AI.APIKey = flagAPIKey
	}
	if flagModel != "" {
		cfg.AI.Model = flagModel
	}
	if flagProvider != "" {
		cfg.AI.Provider = flagProvider
	}
	if flagBaseURL != "" {
		cfg.AI.BaseURL = flagBaseURL
	}
	if flagWorkers > 0 {
		cfg.Workers = flagWorkers
	}
	if flagBatchSize > 0 {
		cfg.Comments.BatchSize = flagBatchSize
	}
	if flagSuffix != "" {
		cfg.Comments.Suffix = flagSuffix
	}
	if flagFormat != "" {
		cfg.Diagrams.Format = flagFormat
	}

	level := slog.LevelInfo
	if flagVerbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(log)
	return cfg, log, nil
}

func outputDir(source string) string {
	if flagOutput != "" {
		return flagOutput
	}
	if git.IsRepoURL(source) {
		return git.RepoName(source) + "_commented"
	}
	return source + "_commented"
}

func execute(cfg *config.Config, log *slog.Logger, source string) {
	out := outputDir(source)
	fmt.Printf("📂 Processing %s -> %s\n", source, out)

	pl := pipeline.New(cfg, log, nil)
	summary, err := pl.Run(context.Background(), source, out)
	if err != nil {
		log.Error("run failed", "error", err)
		os.Exit(1)
	}

	fmt.Printf("✅ Done in %v: %d/%d files commented", summary.Elapsed.Round(0), summary.FilesCommented, summary.FilesFound)
	if summary.FilesFailed > 0 {
		fmt.Printf(", %d failed", summary.FilesFailed)
	}
	if summary.DiagramsGenerated > 0 {
		fmt.Printf(", %d diagrams", summary.DiagramsGenerated)
	}
	fmt.Println()
}

var runCmd = &cobra.Command{
	Use:   "run <source>",
	Short: "Comment a Java codebase and generate architecture diagrams",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg, log, err := setup()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		if flagCommentsOnly {
			cfg.Diagrams.Skip = true
		}
		if flagDiagramsOnly {
			cfg.Comments.Skip = true
		}
		execute(cfg, log, args[0])
	},
}

var commentCmd = &cobra.Command{
	Use:   "comment <source>",
	Short: "Generate documentation comments only",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg, log, err := setup()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		cfg.Diagrams.Skip = true
		execute(cfg, log, args[0])
	},
}

var diagramCmd = &cobra.Command{
	Use:   "diagram <source>",
	Short: "Generate architecture diagrams only",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg, log, err := setup()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		cfg.Comments.Skip = true
		execute(cfg, log, args[0])
	},
}
