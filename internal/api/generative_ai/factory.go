package generativeAI

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/jetfriend/jetfriend-api/config"
)

// NewAIClient builds the configured chat-completion client. API keys come
// from the environment so they never land in the config file.
func NewAIClient(ctx context.Context, cfg config.AIConfig, logger *slog.Logger) (AIClient, error) {
	switch strings.ToLower(cfg.Provider) {
	case "gemini":
		return NewGeminiClient(ctx, os.Getenv("GEMINI_API_KEY"), cfg.Model, cfg.MaxTokens, cfg.Temperature, logger)
	case "openrouter":
		apiKey := os.Getenv("OPENROUTER_API_KEY")
		if apiKey == "" {
			return nil, fmt.Errorf("OPENROUTER_API_KEY environment variable is not set")
		}
		return NewOpenRouterClient(apiKey, cfg.OpenRouterModel, cfg.OpenRouterBaseURL, cfg.MaxTokens, cfg.Temperature, logger), nil
	default:
		return nil, fmt.Errorf("unsupported ai provider: %s", cfg.Provider)
	}
}
