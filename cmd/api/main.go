package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/nkapoor/visionvoice/internal/api"
	"github.com/nkapoor/visionvoice/internal/assistant"
	"github.com/nkapoor/visionvoice/internal/assistant/stt"
	"github.com/nkapoor/visionvoice/internal/assistant/tts"
	"github.com/nkapoor/visionvoice/internal/assistant/vision"
	"github.com/nkapoor/visionvoice/internal/config"
	"github.com/nkapoor/visionvoice/internal/upload"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid config", "error", err)
		os.Exit(1)
	}

	if err := os.MkdirAll(cfg.Upload.Dir, 0o755); err != nil {
		slog.Error("failed to create upload dir", "dir", cfg.Upload.Dir, "error", err)
		os.Exit(1)
	}
	store := upload.NewStore(cfg.Upload.Dir, cfg.Upload.MaxBytes)

	ctx := context.Background()
	delegate, err := buildDelegate(ctx, cfg, store)
	if err != nil {
		slog.Error("failed to initialize providers", "error", err)
		os.Exit(1)
	}

	router := api.NewRouter(cfg, delegate, store)
	handler := router.Setup()

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		slog.Info("starting API server", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced shutdown", "error", err)
	}
	slog.Info("server stopped")
}

func buildDelegate(ctx context.Context, cfg *config.Config, store *upload.Store) (assistant.Delegate, error) {
	sttP := stt.NewOpenAI(stt.OpenAIConfig{
		APIKey:  cfg.STT.APIKey,
		BaseURL: cfg.STT.BaseURL,
		Model:   cfg.STT.Model,
	})

	var visionP vision.Provider
	switch cfg.Vision.Backend {
	case "claude":
		visionP = vision.NewClaude(vision.ClaudeConfig{
			APIKey: cfg.Vision.AnthropicKey,
			Model:  cfg.Vision.AnthropicModel,
		})
	case "gemini":
		g, err := vision.NewGemini(ctx, vision.GeminiConfig{
			APIKey: cfg.Vision.GeminiKey,
			Model:  cfg.Vision.GeminiModel,
		})
		if err != nil {
			return nil, err
		}
		visionP = g
	default:
		return nil, fmt.Errorf("unknown VISION_BACKEND %q", cfg.Vision.Backend)
	}

	var ttsP tts.Provider
	switch cfg.TTS.Backend {
	case "openai":
		ttsP = tts.NewOpenAI(tts.OpenAIConfig{
			APIKey: cfg.TTS.OpenAIKey,
			Model:  cfg.TTS.OpenAIModel,
		})
	case "kokoro":
		ttsP = tts.NewKokoro(tts.KokoroConfig{BaseURL: cfg.TTS.KokoroURL})
	default:
		return nil, fmt.Errorf("unknown TTS_BACKEND %q", cfg.TTS.Backend)
	}

	slog.Info("providers ready", "stt", sttP.Name(), "vision", visionP.Name(), "tts", ttsP.Name())
	return assistant.NewManager(sttP, visionP, ttsP, store, cfg.STT.Language), nil
}
