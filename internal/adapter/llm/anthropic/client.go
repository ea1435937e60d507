// Package anthropic completes gap-filler prompts with the Claude Messages API.
package anthropic

import (
	"context"
	"fmt"
	"strings"
	"time"

	sdk "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// Client sends single-turn prompts to Claude.
type Client struct {
	api       sdk.Client
	model     string
	maxTokens int64
	timeout   time.Duration
}

// New creates a Client. Extra options are passed to the SDK and are used by
// tests to point it at a local server.
func New(apiKey, model string, maxTokens int64, timeout time.Duration, opts ...option.RequestOption) *Client {
	opts = append([]option.RequestOption{option.WithAPIKey(apiKey)}, opts...)
	return &Client{
		api:       sdk.NewClient(opts...),
		model:     model,
		maxTokens: maxTokens,
		timeout:   timeout,
	}
}

// Complete returns the concatenated text blocks of the reply.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	msg, err := c.api.Messages.New(ctx, sdk.MessageNewParams{
		Model:     sdk.Model(c.model),
		MaxTokens: c.maxTokens,
		Messages: []sdk.MessageParam{
			sdk.NewUserMessage(sdk.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return "", fmt.Errorf("anthropic: messages.new: %w", err)
	}

	var b strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			b.WriteString(block.Text)
		}
	}
	if b.Len() == 0 {
		return "", fmt.Errorf("anthropic: empty response")
	}
	return b.String(), nil
}
