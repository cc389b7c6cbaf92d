package tts

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// KokoroConfig holds configuration for the Kokoro TTS backend.
type KokoroConfig struct {
	BaseURL string // default: "http://localhost:8880/v1"
	Model   string // default: "kokoro"
}

// Kokoro synthesizes speech against a Kokoro server's OpenAI-compatible
// /audio/speech endpoint. The voice catalog is fixed by the model's released
// voice packs, so it ships here as static data.
type Kokoro struct {
	cfg        KokoroConfig
	httpClient *http.Client
}

// NewKokoro creates a Kokoro provider with defaults applied.
func NewKokoro(cfg KokoroConfig) *Kokoro {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "http://localhost:8880/v1"
	}
	if cfg.Model == "" {
		cfg.Model = "kokoro"
	}
	return &Kokoro{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: 120 * time.Second,
		},
	}
}

func (k *Kokoro) Name() string { return "kokoro" }

func (k *Kokoro) Synthesize(ctx context.Context, req SynthesisRequest) (*SynthesisResult, error) {
	voice := req.Voice
	if voice == "" {
		voice = "af_heart"
	}

	body := map[string]any{
		"model":           k.cfg.Model,
		"input":           req.Input,
		"voice":           voice,
		"response_format": "mp3",
	}
	if req.Speed > 0 {
		body["speed"] = req.Speed
	}

	data, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST", k.cfg.BaseURL+"/audio/speech", bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := k.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("tts request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("tts failed (status %d): %s", resp.StatusCode, string(respBody))
	}

	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read audio: %w", err)
	}

	return &SynthesisResult{
		Audio:       audio,
		ContentType: "audio/mpeg",
	}, nil
}

func (k *Kokoro) Voices(ctx context.Context) (map[string]Voice, error) {
	out := make(map[string]Voice, len(kokoroVoices))
	for id, v := range kokoroVoices {
		out[id] = v
	}
	return out, nil
}

func (k *Kokoro) VoicesByLanguage(ctx context.Context) (map[string][]string, error) {
	out := make(map[string][]string)
	for _, id := range kokoroVoiceOrder {
		lang := kokoroVoices[id].Language
		out[lang] = append(out[lang], id)
	}
	return out, nil
}

// kokoroVoiceOrder keeps grouping output stable across calls.
var kokoroVoiceOrder = []string{
	"af_heart", "af_bella", "af_nicole", "af_sarah", "am_adam", "am_michael",
	"bf_emma", "bf_isabella", "bm_george", "bm_lewis",
	"ef_dora", "em_alex",
	"ff_siwis",
	"hf_alpha", "hm_omega",
	"if_sara", "im_nicola",
	"jf_alpha", "jm_kumo",
	"pf_dora", "pm_alex",
	"zf_xiaobei", "zm_yunjian",
}

var kokoroVoices = map[string]Voice{
	"af_heart":    {Name: "Heart", Gender: "Female", Language: "American English"},
	"af_bella":    {Name: "Bella", Gender: "Female", Language: "American English"},
	"af_nicole":   {Name: "Nicole", Gender: "Female", Language: "American English"},
	"af_sarah":    {Name: "Sarah", Gender: "Female", Language: "American English"},
	"am_adam":     {Name: "Adam", Gender: "Male", Language: "American English"},
	"am_michael":  {Name: "Michael", Gender: "Male", Language: "American English"},
	"bf_emma":     {Name: "Emma", Gender: "Female", Language: "British English"},
	"bf_isabella": {Name: "Isabella", Gender: "Female", Language: "British English"},
	"bm_george":   {Name: "George", Gender: "Male", Language: "British English"},
	"bm_lewis":    {Name: "Lewis", Gender: "Male", Language: "British English"},
	"ef_dora":     {Name: "Dora", Gender: "Female", Language: "Spanish"},
	"em_alex":     {Name: "Alex", Gender: "Male", Language: "Spanish"},
	"ff_siwis":    {Name: "Siwis", Gender: "Female", Language: "French"},
	"hf_alpha":    {Name: "Alpha", Gender: "Female", Language: "Hindi"},
	"hm_omega":    {Name: "Omega", Gender: "Male", Language: "Hindi"},
	"if_sara":     {Name: "Sara", Gender: "Female", Language: "Italian"},
	"im_nicola":   {Name: "Nicola", Gender: "Male", Language: "Italian"},
	"jf_alpha":    {Name: "Alpha", Gender: "Female", Language: "Japanese"},
	"jm_kumo":     {Name: "Kumo", Gender: "Male", Language: "Japanese"},
	"pf_dora":     {Name: "Dora", Gender: "Female", Language: "Brazilian Portuguese"},
	"pm_alex":     {Name: "Alex", Gender: "Male", Language: "Brazilian Portuguese"},
	"zf_xiaobei":  {Name: "Xiaobei", Gender: "Female", Language: "Mandarin Chinese"},
	"zm_yunjian":  {Name: "Yunjian", Gender: "Male", Language: "Mandarin Chinese"},
}
