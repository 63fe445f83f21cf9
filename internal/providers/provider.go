package providers

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

const (
	defaultMaxTokens = 4096
	defaultTimeout   = 120 * time.Second
)

// Request is one completion call: a system instruction, a user instruction
// and the sampling limits.
type Request struct {
	System      string
	User        string
	MaxTokens   int
	Temperature float64
}

// Response is the text completion returned by a provider.
type Response struct {
	Text       string
	TokensUsed int
}

// Completer sends a prompt to a remote model and returns its completion.
type Completer interface {
	Complete(ctx context.Context, req Request) (Response, error)
	Name() string
}

// Option customizes a provider at construction.
type Option func(*options)

type options struct {
	retry   RetryPolicy
	client  *http.Client
	baseURL string
}

// WithRetry sets the retry policy. The default never retries.
func WithRetry(p RetryPolicy) Option {
	return func(o *options) { o.retry = p }
}

// WithHTTPClient replaces the HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(o *options) { o.client = c }
}

// WithBaseURL points the provider at a different endpoint.
func WithBaseURL(u string) Option {
	return func(o *options) { o.baseURL = u }
}

func buildOptions(timeout time.Duration, opts []Option) options {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.client == nil {
		o.client = &http.Client{Timeout: timeout}
	}
	return o
}

// Names lists the accepted provider names, aliases excluded.
var Names = []string{"openai", "anthropic", "gemini", "ollama"}

// New creates a provider by name.
func New(provider, model string, opts ...Option) (Completer, error) {
	switch provider {
	case "openai":
		return NewOpenAI(model, opts...), nil
	case "anthropic":
		return NewAnthropic(model, opts...), nil
	case "gemini", "google":
		return NewGemini(model, opts...), nil
	case "ollama", "lmstudio":
		return NewOllama(model, opts...), nil
	default:
		return nil, fmt.Errorf("unknown provider: %s", provider)
	}
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
