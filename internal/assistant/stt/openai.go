package stt

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAIConfig holds configuration for the Whisper STT backend.
type OpenAIConfig struct {
	APIKey  string
	BaseURL string // override to point at a whisper.cpp-compatible server
	Model   string // default: whisper-1
}

// OpenAI transcribes audio through the OpenAI audio API or any endpoint
// speaking the same protocol.
type OpenAI struct {
	client *openai.Client
	model  string
}

// NewOpenAI creates an OpenAI STT provider with defaults applied.
func NewOpenAI(cfg OpenAIConfig) *OpenAI {
	if cfg.Model == "" {
		cfg.Model = openai.Whisper1
	}
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	return &OpenAI{
		client: openai.NewClientWithConfig(clientCfg),
		model:  cfg.Model,
	}
}

func (o *OpenAI) Name() string { return "openai-whisper" }

func (o *OpenAI) Transcribe(ctx context.Context, req TranscriptionRequest) (*TranscriptionResult, error) {
	resp, err := o.client.CreateTranscription(ctx, openai.AudioRequest{
		Model:    o.model,
		FilePath: req.FilePath,
		Language: req.Language,
		Prompt:   req.Prompt,
	})
	if err != nil {
		return nil, fmt.Errorf("whisper transcription: %w", err)
	}

	return &TranscriptionResult{
		Text:     resp.Text,
		Language: resp.Language,
		Duration: resp.Duration,
	}, nil
}
