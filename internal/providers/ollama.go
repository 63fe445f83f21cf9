package providers

import (
	"context"
	"os"
	"strings"
	"time"
)

const defaultOllamaURL = "http://localhost:11434"

// Ollama implements Completer for Ollama and LM Studio through their
// OpenAI-compatible endpoint. No API key is required.
type Ollama struct {
	apiKey  string
	model   string
	baseURL string
	opts    options
}

// NewOllama creates an Ollama provider. OLLAMA_HOST selects the server and
// CRITIQUE_OLLAMA_API_KEY is sent as a bearer token when set.
func NewOllama(model string, opts ...Option) *Ollama {
	o := buildOptions(300*time.Second, opts)
	host := firstNonEmpty(o.baseURL, os.Getenv("OLLAMA_HOST"), defaultOllamaURL)
	return &Ollama{
		apiKey:  os.Getenv("CRITIQUE_OLLAMA_API_KEY"),
		model:   model,
		baseURL: normalizeOllamaURL(host),
		opts:    o,
	}
}

// normalizeOllamaURL accepts a bare host, a /v1 prefix or the full
// completions path and returns the full path.
func normalizeOllamaURL(host string) string {
	host = strings.TrimRight(host, "/")
	host = strings.TrimSuffix(host, "/v1/chat/completions")
	host = strings.TrimSuffix(host, "/v1")
	return host + "/v1/chat/completions"
}

func (o *Ollama) Name() string { return "ollama" }

func (o *Ollama) Complete(ctx context.Context, req Request) (Response, error) {
	var headers map[string]string
	if o.apiKey != "" {
		headers = map[string]string{"Authorization": "Bearer " + o.apiKey}
	}
	return chatComplete(ctx, o.Name(), o.model, o.baseURL, headers, o.opts, req)
}
