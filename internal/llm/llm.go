// Package llm provides the text-completion collaborator used for comment
// generation. Providers are plain HTTP clients behind the Completer
// interface; the engine never knows which one it talks to.
package llm

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Completer turns a prompt into generated text. Implementations must support
// concurrent invocation and release their resources on Close.
type Completer interface {
	Complete(ctx context.Context, prompt string, maxTokens int) (string, error)
	Close() error
}

// Options configures a provider client. One Completer is created per worker
// and owned by it for the worker's lifetime.
type Options struct {
	Provider          string
	APIKey            string
	Model             string
	BaseURL           string
	Temperature       float64
	Timeout           time.Duration
	MaxRetries        int
	RequestsPerSecond float64
}

// NewCompleter creates the configured provider client.
func NewCompleter(opts Options) (Completer, error) {
	provider := strings.ToLower(strings.TrimSpace(opts.Provider))
	if provider == "" {
		provider = "openai"
	}
	switch provider {
	case "openai":
		return NewOpenAIClient(opts), nil
	case "ollama":
		return NewOllamaClient(opts), nil
	default:
		return nil, fmt.Errorf("unsupported completion provider: %s", opts.Provider)
	}
}
