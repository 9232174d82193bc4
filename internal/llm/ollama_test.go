package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOllamaClient_Complete(t *testing.T) {
	var gotPath string
	var gotReq ollamaGenerateRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		json.NewEncoder(w).Encode(map[string]string{"response": "generated text\n"})
	}))
	defer srv.Close()

	c := NewOllamaClient(Options{Model: "llama3", BaseURL: srv.URL, Temperature: 0.2})
	defer c.Close()

	text, err := c.Complete(context.Background(), "describe Foo", 80)
	require.NoError(t, err)
	assert.Equal(t, "generated text", text)

	assert.Equal(t, "/api/generate", gotPath)
	assert.Equal(t, "llama3", gotReq.Model)
	assert.Equal(t, "describe Foo", gotReq.Prompt)
	assert.False(t, gotReq.Stream)
	assert.Equal(t, 80, gotReq.Options.NumPredict)
}

func TestOllamaClient_MissingModel(t *testing.T) {
	c := NewOllamaClient(Options{})
	_, err := c.Complete(context.Background(), "prompt", 10)
	assert.ErrorContains(t, err, "model")
}

func TestOllamaClient_ServerErrorSurfaces(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not loaded", http.StatusNotFound)
	}))
	defer srv.Close()

	c := NewOllamaClient(Options{Model: "llama3", BaseURL: srv.URL})
	_, err := c.Complete(context.Background(), "prompt", 10)
	assert.ErrorContains(t, err, "404")
}
