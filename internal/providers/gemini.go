package providers

import (
	"context"
	"fmt"
	"os"
	"strings"
)

const defaultGeminiURL = "https://generativelanguage.googleapis.com/v1beta/models"

// Gemini implements Completer for Google's Gemini generateContent API.
type Gemini struct {
	apiKey  string
	model   string
	baseURL string
	opts    options
}

// NewGemini creates a Gemini provider keyed by GEMINI_API_KEY, falling back
// to GOOGLE_API_KEY.
func NewGemini(model string, opts ...Option) *Gemini {
	o := buildOptions(defaultTimeout, opts)
	return &Gemini{
		apiKey:  firstNonEmpty(os.Getenv("GEMINI_API_KEY"), os.Getenv("GOOGLE_API_KEY")),
		model:   model,
		baseURL: strings.TrimRight(firstNonEmpty(o.baseURL, defaultGeminiURL), "/"),
		opts:    o,
	}
}

func (g *Gemini) Name() string { return "gemini" }

func (g *Gemini) Complete(ctx context.Context, req Request) (Response, error) {
	if g.apiKey == "" {
		return Response{}, missingKey(g.Name(), "GEMINI_API_KEY (or GOOGLE_API_KEY)")
	}
	maxTokens := req.MaxTokens
	if maxTokens == 0 {
		maxTokens = defaultMaxTokens
	}
	temp := req.Temperature
	body := geminiRequest{
		SystemInstruction: &geminiContent{
			Parts: []geminiPart{{Text: req.System}},
		},
		Contents: []geminiContent{
			{Role: "user", Parts: []geminiPart{{Text: req.User}}},
		},
		GenerationConfig: &geminiGenConfig{
			MaxOutputTokens: maxTokens,
			Temperature:     &temp,
		},
	}
	url := fmt.Sprintf("%s/%s:generateContent", g.baseURL, g.model)
	headers := map[string]string{"x-goog-api-key": g.apiKey}

	var resp Response
	err := g.opts.retry.do(ctx, func() error {
		var result geminiResponse
		if err := postJSON(ctx, g.opts.client, g.Name(), url, headers, body, &result); err != nil {
			return err
		}
		if len(result.Candidates) == 0 || len(result.Candidates[0].Content.Parts) == 0 {
			return malformed(g.Name(), "no content in response")
		}
		var b strings.Builder
		for _, part := range result.Candidates[0].Content.Parts {
			b.WriteString(part.Text)
		}
		resp = Response{
			Text:       b.String(),
			TokensUsed: result.UsageMetadata.TotalTokenCount,
		}
		return nil
	})
	return resp, err
}

type geminiRequest struct {
	SystemInstruction *geminiContent   `json:"systemInstruction,omitempty"`
	Contents          []geminiContent  `json:"contents"`
	GenerationConfig  *geminiGenConfig `json:"generationConfig,omitempty"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiGenConfig struct {
	MaxOutputTokens int      `json:"maxOutputTokens,omitempty"`
	Temperature     *float64 `json:"temperature,omitempty"`
}

type geminiResponse struct {
	Candidates    []geminiCandidate `json:"candidates"`
	UsageMetadata geminiUsage       `json:"usageMetadata"`
}

type geminiCandidate struct {
	Content geminiContent `json:"content"`
}

type geminiUsage struct {
	TotalTokenCount int `json:"totalTokenCount"`
}
