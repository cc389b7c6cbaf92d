package vision

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// GeminiConfig holds configuration for the Gemini vision backend.
type GeminiConfig struct {
	APIKey string
	Model  string // default: gemini-2.5-flash
}

// Gemini answers image queries through the Gemini API.
type Gemini struct {
	client *genai.Client
	model  string
}

// NewGemini creates a Gemini vision provider.
func NewGemini(ctx context.Context, cfg GeminiConfig) (*Gemini, error) {
	if cfg.Model == "" {
		cfg.Model = "gemini-2.5-flash"
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("gemini client: %w", err)
	}
	return &Gemini{client: client, model: cfg.Model}, nil
}

func (g *Gemini) Name() string { return "gemini" }

func (g *Gemini) Answer(ctx context.Context, req QueryRequest) (*QueryResult, error) {
	data, mimeType, err := readImage(req.ImagePath)
	if err != nil {
		return nil, err
	}

	parts := []*genai.Part{
		genai.NewPartFromBytes(data, mimeType),
		genai.NewPartFromText(req.Query),
	}
	contents := []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, contents, nil)
	if err != nil {
		return nil, fmt.Errorf("gemini generate: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return nil, fmt.Errorf("gemini returned no text for %s", req.ImagePath)
	}

	return &QueryResult{Content: text, Model: g.model}, nil
}
