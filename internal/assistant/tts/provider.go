package tts

import "context"

// SynthesisRequest holds the parameters for text-to-speech generation.
type SynthesisRequest struct {
	Input string  `json:"input"`
	Voice string  `json:"voice,omitempty"`
	Speed float64 `json:"speed,omitempty"`
}

// SynthesisResult holds the generated audio and its content type.
type SynthesisResult struct {
	Audio       []byte
	ContentType string // "audio/mpeg" or "audio/wav"
}

// Voice describes a synthesizable voice in the provider's catalog.
type Voice struct {
	Name     string `json:"name"`
	Gender   string `json:"gender"`
	Language string `json:"language"`
}

// Provider is the interface for text-to-speech backends. Voices and
// VoicesByLanguage expose the same catalog; grouping must neither drop nor
// duplicate ids.
type Provider interface {
	Synthesize(ctx context.Context, req SynthesisRequest) (*SynthesisResult, error)
	Voices(ctx context.Context) (map[string]Voice, error)
	VoicesByLanguage(ctx context.Context) (map[string][]string, error)
	Name() string
}
