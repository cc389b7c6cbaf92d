// Package assistant is the capability layer behind the gateway: speech
// recognition, image query answering, and voice synthesis, each delegated to
// a configurable provider.
package assistant

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/nkapoor/visionvoice/internal/assistant/stt"
	"github.com/nkapoor/visionvoice/internal/assistant/tts"
	"github.com/nkapoor/visionvoice/internal/assistant/vision"
	"github.com/nkapoor/visionvoice/internal/upload"
)

// Delegate is the surface request handlers program against. Implementations
// can swap providers without touching handler code.
type Delegate interface {
	// Transcribe converts the audio file at audioPath to text.
	Transcribe(ctx context.Context, audioPath string) (string, error)
	// AnswerQuery answers a text query about the image at imagePath.
	AnswerQuery(ctx context.Context, imagePath, query string) (string, error)
	// Synthesize renders text as speech and returns the name of the audio
	// file written into the upload directory.
	Synthesize(ctx context.Context, text, voice string, speed float64) (string, error)
	// Voices returns the full voice catalog keyed by voice id.
	Voices(ctx context.Context) (map[string]tts.Voice, error)
	// VoicesByLanguage returns catalog ids grouped by language.
	VoicesByLanguage(ctx context.Context) (map[string][]string, error)
}

// Manager implements Delegate by composing one provider per capability.
type Manager struct {
	stt      stt.Provider
	vision   vision.Provider
	tts      tts.Provider
	store    *upload.Store
	language string // optional transcription language hint
}

func NewManager(sttP stt.Provider, visionP vision.Provider, ttsP tts.Provider, store *upload.Store, language string) *Manager {
	return &Manager{
		stt:      sttP,
		vision:   visionP,
		tts:      ttsP,
		store:    store,
		language: language,
	}
}

func (m *Manager) Transcribe(ctx context.Context, audioPath string) (string, error) {
	res, err := m.stt.Transcribe(ctx, stt.TranscriptionRequest{
		FilePath: audioPath,
		Language: m.language,
	})
	if err != nil {
		return "", fmt.Errorf("%s: %w", m.stt.Name(), err)
	}
	return res.Text, nil
}

func (m *Manager) AnswerQuery(ctx context.Context, imagePath, query string) (string, error) {
	res, err := m.vision.Answer(ctx, vision.QueryRequest{
		ImagePath: imagePath,
		Query:     query,
	})
	if err != nil {
		return "", fmt.Errorf("%s: %w", m.vision.Name(), err)
	}
	return res.Content, nil
}

func (m *Manager) Synthesize(ctx context.Context, text, voice string, speed float64) (string, error) {
	res, err := m.tts.Synthesize(ctx, tts.SynthesisRequest{
		Input: text,
		Voice: voice,
		Speed: speed,
	})
	if err != nil {
		return "", fmt.Errorf("%s: %w", m.tts.Name(), err)
	}

	name := "response_" + uuid.NewString() + extFor(res.ContentType)
	if _, err := m.store.WriteGenerated(name, res.Audio); err != nil {
		return "", err
	}
	return name, nil
}

func (m *Manager) Voices(ctx context.Context) (map[string]tts.Voice, error) {
	return m.tts.Voices(ctx)
}

func (m *Manager) VoicesByLanguage(ctx context.Context) (map[string][]string, error) {
	return m.tts.VoicesByLanguage(ctx)
}

func extFor(contentType string) string {
	switch contentType {
	case "audio/wav":
		return ".wav"
	default:
		return ".mp3"
	}
}
