package providers

import (
	"context"
	"os"
)

const defaultOpenAIURL = "https://api.openai.com/v1/chat/completions"

// OpenAI implements Completer for the OpenAI chat completions API.
type OpenAI struct {
	apiKey  string
	model   string
	baseURL string
	opts    options
}

// NewOpenAI creates an OpenAI provider. OPENAI_API_KEY supplies the key and
// CRITIQUE_OPENAI_BASE_URL may redirect requests to a compatible endpoint.
func NewOpenAI(model string, opts ...Option) *OpenAI {
	o := buildOptions(defaultTimeout, opts)
	return &OpenAI{
		apiKey:  os.Getenv("OPENAI_API_KEY"),
		model:   model,
		baseURL: firstNonEmpty(o.baseURL, os.Getenv("CRITIQUE_OPENAI_BASE_URL"), defaultOpenAIURL),
		opts:    o,
	}
}

func (o *OpenAI) Name() string { return "openai" }

func (o *OpenAI) Complete(ctx context.Context, req Request) (Response, error) {
	if o.apiKey == "" {
		return Response{}, missingKey(o.Name(), "OPENAI_API_KEY")
	}
	headers := map[string]string{"Authorization": "Bearer " + o.apiKey}
	return chatComplete(ctx, o.Name(), o.model, o.baseURL, headers, o.opts, req)
}

// chatComplete runs one OpenAI-style chat completion. Ollama and LM Studio
// expose the same wire format.
func chatComplete(ctx context.Context, provider, model, url string, headers map[string]string, o options, req Request) (Response, error) {
	maxTokens := req.MaxTokens
	if maxTokens == 0 {
		maxTokens = defaultMaxTokens
	}
	body := openaiRequest{
		Model: model,
		Messages: []openaiMessage{
			{Role: "system", Content: req.System},
			{Role: "user", Content: req.User},
		},
		MaxTokens:   maxTokens,
		Temperature: req.Temperature,
	}

	var resp Response
	err := o.retry.do(ctx, func() error {
		var result openaiResponse
		if err := postJSON(ctx, o.client, provider, url, headers, body, &result); err != nil {
			return err
		}
		if len(result.Choices) == 0 {
			return malformed(provider, "no choices in response")
		}
		text := result.Choices[0].Message.Content
		if text == "" {
			return malformed(provider, "empty text content in response")
		}
		resp = Response{Text: text, TokensUsed: result.Usage.TotalTokens}
		return nil
	})
	return resp, err
}

type openaiRequest struct {
	Model       string          `json:"model"`
	Messages    []openaiMessage `json:"messages"`
	MaxTokens   int             `json:"max_tokens"`
	Temperature float64         `json:"temperature"`
}

type openaiMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type openaiResponse struct {
	Choices []openaiChoice `json:"choices"`
	Usage   openaiUsage    `json:"usage"`
}

type openaiChoice struct {
	Message openaiMessage `json:"message"`
}

type openaiUsage struct {
	TotalTokens int `json:"total_tokens"`
}
