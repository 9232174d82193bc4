package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/hashicorp/go-retryablehttp"
	"golang.org/x/time/rate"
)

// OllamaClient talks to a local Ollama server's generate endpoint.
type OllamaClient struct {
	client      *retryablehttp.Client
	limiter     *rate.Limiter
	model       string
	endpoint    string
	temperature float64
}

type ollamaGenerateRequest struct {
	Model   string        `json:"model"`
	Prompt  string        `json:"prompt"`
	Stream  bool          `json:"stream"`
	Options ollamaOptions `json:"options,omitempty"`
}

type ollamaOptions struct {
	Temperature float64 `json:"temperature,omitempty"`
	NumPredict  int     `json:"num_predict,omitempty"`
}

type ollamaGenerateResponse struct {
	Response string `json:"response"`
}

// NewOllamaClient creates a client for the given base URL, defaulting to the
// local daemon.
func NewOllamaClient(opts Options) *OllamaClient {
	url := strings.TrimSpace(opts.BaseURL)
	if url == "" {
		url = "http://127.0.0.1:11434"
	}
	url = strings.TrimRight(url, "/")
	if !strings.HasSuffix(url, "/api/generate") {
		url += "/api/generate"
	}

	client := retryablehttp.NewClient()
	client.Logger = nil
	client.RetryMax = opts.MaxRetries
	client.HTTPClient.Timeout = timeoutOrDefault(opts.Timeout)

	return &OllamaClient{
		client:      client,
		limiter:     newLimiter(opts.RequestsPerSecond),
		model:       opts.Model,
		endpoint:    url,
		temperature: opts.Temperature,
	}
}

func (c *OllamaClient) Complete(ctx context.Context, prompt string, maxTokens int) (string, error) {
	if strings.TrimSpace(c.model) == "" {
		return "", fmt.Errorf("ollama model is required")
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return "", err
	}

	reqBody := ollamaGenerateRequest{
		Model:  c.model,
		Prompt: prompt,
		Stream: false,
		Options: ollamaOptions{
			Temperature: c.temperature,
			NumPredict:  maxTokens,
		},
	}
	body, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("ollama generate request failed (%d): %s", resp.StatusCode, strings.TrimSpace(string(raw)))
	}

	var parsed ollamaGenerateResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", err
	}
	return strings.TrimSpace(parsed.Response), nil
}

func (c *OllamaClient) Close() error {
	c.client.HTTPClient.CloseIdleConnections()
	return nil
}
