package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Server ServerConfig
	Upload UploadConfig
	STT    STTConfig
	Vision VisionConfig
	TTS    TTSConfig
	Web    WebConfig

	// ExposeErrorDetails controls whether the raw cause of a failed request
	// is included in the JSON error body. Off by default; enable only for
	// local debugging.
	ExposeErrorDetails bool
}

type ServerConfig struct {
	Host      string
	Port      int
	SecretKey string
}

type UploadConfig struct {
	Dir      string
	MaxBytes int64
}

type STTConfig struct {
	Backend  string // "openai"
	APIKey   string
	BaseURL  string // override for whisper.cpp-compatible servers
	Model    string
	Language string
}

type VisionConfig struct {
	Backend        string // "gemini" or "claude"
	GeminiKey      string
	GeminiModel    string
	AnthropicKey   string
	AnthropicModel string
}

type TTSConfig struct {
	Backend     string // "kokoro" or "openai"
	KokoroURL   string
	OpenAIKey   string
	OpenAIModel string
}

type WebConfig struct {
	Host   string
	Port   int
	APIURL string
}

func Load() (*Config, error) {
	// A .env in the working directory fills in anything the environment
	// doesn't already set.
	_ = godotenv.Load()

	port, err := getEnvInt("SERVER_PORT", 8080)
	if err != nil {
		return nil, fmt.Errorf("invalid SERVER_PORT: %w", err)
	}

	webPort, err := getEnvInt("WEB_PORT", 3000)
	if err != nil {
		return nil, fmt.Errorf("invalid WEB_PORT: %w", err)
	}

	maxBytes, err := getEnvInt("MAX_CONTENT_LENGTH", 16_000_000)
	if err != nil {
		return nil, fmt.Errorf("invalid MAX_CONTENT_LENGTH: %w", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Host:      getEnv("SERVER_HOST", "0.0.0.0"),
			Port:      port,
			SecretKey: getEnv("SECRET_KEY", "default-dev-key"),
		},
		Upload: UploadConfig{
			Dir:      getEnv("UPLOAD_FOLDER", "uploads"),
			MaxBytes: int64(maxBytes),
		},
		STT: STTConfig{
			Backend:  getEnv("STT_BACKEND", "openai"),
			APIKey:   getEnv("OPENAI_API_KEY", ""),
			BaseURL:  getEnv("STT_OPENAI_BASE_URL", ""),
			Model:    getEnv("STT_OPENAI_MODEL", ""),
			Language: getEnv("STT_LANGUAGE", ""),
		},
		Vision: VisionConfig{
			Backend:        getEnv("VISION_BACKEND", "gemini"),
			GeminiKey:      getEnv("GEMINI_API_KEY", ""),
			GeminiModel:    getEnv("VISION_GEMINI_MODEL", "gemini-2.5-flash"),
			AnthropicKey:   getEnv("ANTHROPIC_API_KEY", ""),
			AnthropicModel: getEnv("VISION_CLAUDE_MODEL", "claude-sonnet-4-20250514"),
		},
		TTS: TTSConfig{
			Backend:     getEnv("TTS_BACKEND", "kokoro"),
			KokoroURL:   getEnv("KOKORO_BASE_URL", "http://localhost:8880/v1"),
			OpenAIKey:   getEnv("OPENAI_API_KEY", ""),
			OpenAIModel: getEnv("TTS_OPENAI_MODEL", ""),
		},
		Web: WebConfig{
			Host:   getEnv("WEB_HOST", "0.0.0.0"),
			Port:   webPort,
			APIURL: getEnv("API_URL", "http://localhost:8080"),
		},
		ExposeErrorDetails: getEnvBool("EXPOSE_ERROR_DETAILS", false),
	}

	return cfg, nil
}

func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func (c *Config) WebAddr() string {
	return fmt.Sprintf("%s:%d", c.Web.Host, c.Web.Port)
}

func (c *Config) Validate() error {
	var missing []string
	switch c.Vision.Backend {
	case "gemini":
		if c.Vision.GeminiKey == "" {
			missing = append(missing, "GEMINI_API_KEY")
		}
	case "claude":
		if c.Vision.AnthropicKey == "" {
			missing = append(missing, "ANTHROPIC_API_KEY")
		}
	}
	if c.STT.Backend == "openai" && c.STT.APIKey == "" && c.STT.BaseURL == "" {
		missing = append(missing, "OPENAI_API_KEY")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required env vars: %s", strings.Join(missing, ", "))
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	return strconv.Atoi(v)
}

func getEnvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return strings.EqualFold(v, "true") || v == "1"
}
