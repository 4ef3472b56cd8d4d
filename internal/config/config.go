// Package config loads portald configuration from environment variables.
package config

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
)

// Config holds service runtime configuration.
type Config struct {
	// ListenAddr is the HTTP listen address.
	ListenAddr string `env:"PORTAL_LISTEN_ADDR" envDefault:":5000"`
	// LogLevel sets the zerolog level.
	LogLevel string `env:"PORTAL_LOG_LEVEL" envDefault:"info"`
	// DataDir is the directory holding the flat-file stores.
	DataDir string `env:"PORTAL_DATA_DIR" envDefault:"data"`

	// LLMBaseURL is the root of an OpenAI-compatible API.
	LLMBaseURL string `env:"PORTAL_LLM_BASE_URL" envDefault:"https://api.openai.com/v1"`
	// LLMAPIKey authenticates model calls.
	LLMAPIKey string `env:"PORTAL_LLM_API_KEY"`
	// LLMModel is the model identifier sent on every completion request.
	LLMModel string `env:"PORTAL_LLM_MODEL" envDefault:"gpt-4o-mini"`
	// LLMTemperature is the sampling temperature.
	LLMTemperature float64 `env:"PORTAL_LLM_TEMPERATURE" envDefault:"0"`
	// LLMMaxTokens caps completion length.
	LLMMaxTokens int `env:"PORTAL_LLM_MAX_TOKENS" envDefault:"1000"`

	// ChatRatePerMinute limits /api/chat requests per client IP.
	ChatRatePerMinute int `env:"PORTAL_CHAT_RATE_PER_MINUTE" envDefault:"20"`
	// ChatRateBurst is the token-bucket burst for the chat limiter.
	ChatRateBurst int `env:"PORTAL_CHAT_RATE_BURST" envDefault:"5"`
}

// Load returns configuration parsed from environment variables.
func Load() (Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return Config{}, fmt.Errorf("parsing environment: %w", err)
	}

	cfg.LogLevel = strings.ToLower(strings.TrimSpace(cfg.LogLevel))
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	cfg.LLMBaseURL = strings.TrimRight(strings.TrimSpace(cfg.LLMBaseURL), "/")

	if strings.TrimSpace(cfg.ListenAddr) == "" {
		return Config{}, fmt.Errorf("PORTAL_LISTEN_ADDR must not be empty")
	}
	if strings.TrimSpace(cfg.DataDir) == "" {
		return Config{}, fmt.Errorf("PORTAL_DATA_DIR must not be empty")
	}
	if cfg.LLMBaseURL == "" {
		return Config{}, fmt.Errorf("PORTAL_LLM_BASE_URL must not be empty")
	}
	if strings.TrimSpace(cfg.LLMAPIKey) == "" {
		return Config{}, fmt.Errorf("PORTAL_LLM_API_KEY is required")
	}
	if cfg.LLMTemperature < 0 || cfg.LLMTemperature > 2 {
		return Config{}, fmt.Errorf("PORTAL_LLM_TEMPERATURE %v out of range [0,2]", cfg.LLMTemperature)
	}
	if cfg.LLMMaxTokens <= 0 {
		return Config{}, fmt.Errorf("PORTAL_LLM_MAX_TOKENS must be positive")
	}
	if cfg.ChatRatePerMinute <= 0 || cfg.ChatRateBurst <= 0 {
		return Config{}, fmt.Errorf("chat rate limit settings must be positive")
	}

	return cfg, nil
}
