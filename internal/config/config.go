package config

import (
	"fmt"
	"os"
	"runtime"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config carries every knob for a single run. It is built once in the CLI
// layer and passed down explicitly; nothing in the pipeline reads ambient
// process state.
type Config struct {
	AI struct {
		Provider          string  `yaml:"provider"`
		Model             string  `yaml:"model"`
		APIKey            string  `yaml:"api_key"`
		BaseURL           string  `yaml:"base_url"`
		Temperature       float64 `yaml:"temperature"`
		TimeoutSeconds    int     `yaml:"timeout_seconds"`
		MaxRetries        int     `yaml:"max_retries"`
		RequestsPerSecond float64 `yaml:"requests_per_second"`
	} `yaml:"ai"`

	Comments struct {
		Skip      bool   `yaml:"skip"`
		Javadoc   bool   `yaml:"javadoc"`
		Inline    bool   `yaml:"inline"`
		BatchSize int    `yaml:"batch_size"`
		Suffix    string `yaml:"suffix"`
	} `yaml:"comments"`

	Diagrams struct {
		Skip          bool   `yaml:"skip"`
		Format        string `yaml:"format"`
		MaxClassNodes int    `yaml:"max_class_nodes"`
		MaxFocusNodes int    `yaml:"max_focus_nodes"`
	} `yaml:"diagrams"`

	// Workers is the size of the cross-file worker pool.
	Workers int `yaml:"workers"`

	// ExcludedTypes extends the built-in allow-list of ubiquitous Java types
	// that never become dependency edges.
	ExcludedTypes []string `yaml:"excluded_types"`
}

// Default returns a Config with every field set to its built-in default.
func Default() *Config {
	cfg := &Config{}
	cfg.AI.Provider = "openai"
	cfg.AI.Model = "gpt-4o-mini"
	cfg.AI.Temperature = 0.3
	cfg.AI.TimeoutSeconds = 60
	cfg.AI.MaxRetries = 2
	cfg.AI.RequestsPerSecond = 5
	cfg.Comments.Javadoc = true
	cfg.Comments.Inline = true
	cfg.Comments.BatchSize = 7
	cfg.Comments.Suffix = "_commented"
	cfg.Diagrams.Format = "png"
	cfg.Diagrams.MaxClassNodes = 50
	cfg.Diagrams.MaxFocusNodes = 30
	cfg.Workers = DefaultWorkers()
	return cfg
}

// DefaultWorkers is half the cores plus one, with a floor of two.
func DefaultWorkers() int {
	n := runtime.NumCPU()/2 + 1
	if n < 2 {
		n = 2
	}
	return n
}

// Load builds a Config from defaults, an optional YAML file, and environment
// variables, in that order of precedence. A missing config file is not an
// error; a malformed one is.
func Load(path string) (*Config, error) {
	// .env is picked up if present so API keys never need exporting.
	_ = godotenv.Load()

	cfg := Default()

	if path != "" {
		file, err := os.ReadFile(path)
		if err == nil {
			if err := yaml.Unmarshal(file, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	}

	if key := os.Getenv("COMPREHEND_API_KEY"); key != "" {
		cfg.AI.APIKey = key
	}
	if cfg.AI.APIKey == "" {
		cfg.AI.APIKey = os.Getenv("OPENAI_API_KEY")
	}
	if provider := os.Getenv("COMPREHEND_AI_PROVIDER"); provider != "" {
		cfg.AI.Provider = provider
	}
	if baseURL := os.Getenv("COMPREHEND_BASE_URL"); baseURL != "" {
		cfg.AI.BaseURL = baseURL
	}

	if cfg.Comments.BatchSize < 1 {
		cfg.Comments.BatchSize = 1
	}
	if cfg.Workers < 1 {
		cfg.Workers = DefaultWorkers()
	}

	return cfg, nil
}
