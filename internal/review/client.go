package review

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/dshills/critique/internal/cache"
	"github.com/dshills/critique/internal/providers"
	"github.com/dshills/critique/internal/redact"
)

// Settings is the fixed configuration a Client is built with.
type Settings struct {
	Provider    string
	Model       string
	MaxTokens   int
	Temperature float64
	Redact      bool
}

// Request is one file to review.
type Request struct {
	Source   string
	Filename string
}

// Result is the outcome of one review.
type Result struct {
	RunID      string  `json:"runId"`
	Filename   string  `json:"filename"`
	Provider   string  `json:"provider"`
	Model      string  `json:"model"`
	Text       string  `json:"review"`
	Summary    Summary `json:"summary"`
	TokensUsed int     `json:"tokensUsed"`
	Cached     bool    `json:"cached"`
	DurationMs int64   `json:"durationMs"`
}

// Client sends review prompts through a Completer.
type Client struct {
	completer providers.Completer
	settings  Settings
	cache     *cache.Cache
	logger    *zap.Logger
}

// Option customizes a Client.
type Option func(*Client)

// WithCache answers repeated prompts from c.
func WithCache(c *cache.Cache) Option {
	return func(cl *Client) { cl.cache = c }
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(cl *Client) { cl.logger = l }
}

// NewClient creates a Client. The settings are copied and never change.
func NewClient(completer providers.Completer, s Settings, opts ...Option) *Client {
	c := &Client{completer: completer, settings: s, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Settings returns the client's settings.
func (c *Client) Settings() Settings { return c.settings }

// Review builds the prompt for req and returns the completion. Completer
// errors are wrapped and returned as is; the client never retries.
func (c *Client) Review(ctx context.Context, req Request) (*Result, error) {
	start := time.Now()
	log := c.logger.With(
		zap.String("file", req.Filename),
		zap.String("provider", c.settings.Provider),
		zap.String("model", c.settings.Model),
	)

	source := req.Source
	if c.settings.Redact {
		var counts map[string]int
		source, counts = redact.SecretsWithCount(source)
		for name, n := range counts {
			log.Info("redacted secrets", zap.String("rule", name), zap.Int("count", n))
		}
	}

	prompt := BuildPrompt(source, req.Filename)
	result := &Result{
		RunID:    uuid.NewString(),
		Filename: req.Filename,
		Provider: c.settings.Provider,
		Model:    c.settings.Model,
	}

	key := c.cacheKey(prompt)
	if c.cache != nil {
		if e, ok := c.cache.Get(key); ok {
			log.Debug("cache hit", zap.String("key", key))
			result.Text = e.Text
			result.TokensUsed = e.TokensUsed
			result.Cached = true
			result.Summary = Summarize(e.Text)
			result.DurationMs = time.Since(start).Milliseconds()
			return result, nil
		}
	}

	log.Debug("requesting completion",
		zap.Int("max_tokens", c.settings.MaxTokens),
		zap.Float64("temperature", c.settings.Temperature),
		zap.Int("prompt_chars", len(prompt.System)+len(prompt.User)),
	)
	resp, err := c.completer.Complete(ctx, providers.Request{
		System:      prompt.System,
		User:        prompt.User,
		MaxTokens:   c.settings.MaxTokens,
		Temperature: c.settings.Temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("reviewing %s: %w", req.Filename, err)
	}
	if strings.TrimSpace(resp.Text) == "" {
		return nil, fmt.Errorf("reviewing %s: %w", req.Filename, &providers.ServiceError{
			Provider: c.completer.Name(),
			Kind:     providers.KindResponse,
			Message:  "empty completion",
		})
	}

	if c.cache != nil {
		if err := c.cache.Put(key, resp.Text, resp.TokensUsed); err != nil {
			log.Warn("cache write failed", zap.Error(err))
		}
	}

	result.Text = resp.Text
	result.TokensUsed = resp.TokensUsed
	result.Summary = Summarize(resp.Text)
	result.DurationMs = time.Since(start).Milliseconds()
	log.Debug("review complete",
		zap.Int("tokens", resp.TokensUsed),
		zap.Int64("duration_ms", result.DurationMs),
	)
	return result, nil
}

func (c *Client) cacheKey(p Prompt) string {
	return cache.BuildKey(
		c.settings.Provider,
		c.settings.Model,
		strconv.Itoa(c.settings.MaxTokens),
		strconv.FormatFloat(c.settings.Temperature, 'g', -1, 64),
		p.System,
		p.User,
	)
}
