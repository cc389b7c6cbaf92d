package tts

import (
	"context"
	"fmt"
	"io"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAIConfig holds configuration for the OpenAI TTS backend.
type OpenAIConfig struct {
	APIKey string
	Model  string // default: tts-1
}

// OpenAI synthesizes speech through the OpenAI speech API.
type OpenAI struct {
	client *openai.Client
	model  openai.SpeechModel
}

// NewOpenAI creates an OpenAI TTS provider with defaults applied.
func NewOpenAI(cfg OpenAIConfig) *OpenAI {
	model := openai.SpeechModel(cfg.Model)
	if cfg.Model == "" {
		model = openai.TTSModel1
	}
	return &OpenAI{
		client: openai.NewClient(cfg.APIKey),
		model:  model,
	}
}

func (o *OpenAI) Name() string { return "openai-tts" }

func (o *OpenAI) Synthesize(ctx context.Context, req SynthesisRequest) (*SynthesisResult, error) {
	voice := req.Voice
	if voice == "" {
		voice = string(openai.VoiceAlloy)
	}

	resp, err := o.client.CreateSpeech(ctx, openai.CreateSpeechRequest{
		Model: o.model,
		Input: req.Input,
		Voice: openai.SpeechVoice(voice),
		Speed: req.Speed,
	})
	if err != nil {
		return nil, fmt.Errorf("speech request: %w", err)
	}
	defer resp.Close()

	audio, err := io.ReadAll(resp)
	if err != nil {
		return nil, fmt.Errorf("read audio: %w", err)
	}

	return &SynthesisResult{
		Audio:       audio,
		ContentType: "audio/mpeg",
	}, nil
}

func (o *OpenAI) Voices(ctx context.Context) (map[string]Voice, error) {
	out := make(map[string]Voice, len(openaiVoices))
	for id, v := range openaiVoices {
		out[id] = v
	}
	return out, nil
}

func (o *OpenAI) VoicesByLanguage(ctx context.Context) (map[string][]string, error) {
	out := make(map[string][]string)
	for _, id := range openaiVoiceOrder {
		lang := openaiVoices[id].Language
		out[lang] = append(out[lang], id)
	}
	return out, nil
}

var openaiVoiceOrder = []string{"alloy", "echo", "fable", "onyx", "nova", "shimmer"}

var openaiVoices = map[string]Voice{
	"alloy":   {Name: "Alloy", Gender: "Neutral", Language: "American English"},
	"echo":    {Name: "Echo", Gender: "Male", Language: "American English"},
	"fable":   {Name: "Fable", Gender: "Male", Language: "British English"},
	"onyx":    {Name: "Onyx", Gender: "Male", Language: "American English"},
	"nova":    {Name: "Nova", Gender: "Female", Language: "American English"},
	"shimmer": {Name: "Shimmer", Gender: "Female", Language: "American English"},
}
