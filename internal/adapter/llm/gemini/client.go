// Package gemini completes gap-filler prompts with the Gemini API.
package gemini

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"google.golang.org/genai"
)

// Client sends single-turn prompts to Gemini.
type Client struct {
	api       *genai.Client
	model     string
	maxTokens int32
	timeout   time.Duration
}

// Options tune the underlying SDK client. BaseURL is empty in production.
type Options struct {
	BaseURL    string
	HTTPClient *http.Client
}

// New creates a Client.
func New(ctx context.Context, apiKey, model string, maxTokens int64, timeout time.Duration, opts Options) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini: api key is required")
	}

	api, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:      apiKey,
		Backend:     genai.BackendGeminiAPI,
		HTTPClient:  opts.HTTPClient,
		HTTPOptions: genai.HTTPOptions{BaseURL: opts.BaseURL},
	})
	if err != nil {
		return nil, fmt.Errorf("gemini: create client: %w", err)
	}

	return &Client{
		api:       api,
		model:     model,
		maxTokens: int32(maxTokens),
		timeout:   timeout,
	}, nil
}

// Complete returns the text of the first candidate.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	resp, err := c.api.Models.GenerateContent(ctx, c.model, genai.Text(prompt), &genai.GenerateContentConfig{
		MaxOutputTokens: c.maxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("gemini: generate content: %w", err)
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", fmt.Errorf("gemini: empty response")
	}
	return text, nil
}
