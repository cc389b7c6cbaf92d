package vision

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// ClaudeConfig holds configuration for the Claude vision backend.
type ClaudeConfig struct {
	APIKey string
	Model  string // default: claude-sonnet-4-20250514
}

// Claude answers image queries through the Anthropic Messages API.
type Claude struct {
	client anthropic.Client
	model  string
}

// NewClaude creates a Claude vision provider.
func NewClaude(cfg ClaudeConfig) *Claude {
	if cfg.Model == "" {
		cfg.Model = "claude-sonnet-4-20250514"
	}
	return &Claude{
		client: anthropic.NewClient(option.WithAPIKey(cfg.APIKey)),
		model:  cfg.Model,
	}
}

func (c *Claude) Name() string { return "claude" }

func (c *Claude) Answer(ctx context.Context, req QueryRequest) (*QueryResult, error) {
	data, mimeType, err := readImage(req.ImagePath)
	if err != nil {
		return nil, err
	}
	encoded := base64.StdEncoding.EncodeToString(data)

	resp, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(c.model),
		MaxTokens: 1024,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(
				anthropic.NewImageBlockBase64(mimeType, encoded),
				anthropic.NewTextBlock(req.Query),
			),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("claude message: %w", err)
	}

	content := ""
	for _, block := range resp.Content {
		if block.Type == "text" {
			content += block.Text
		}
	}
	if content == "" {
		return nil, fmt.Errorf("claude returned no text for %s", req.ImagePath)
	}

	return &QueryResult{Content: content, Model: c.model}, nil
}
