package generativeAI

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sashabaranov/go-openai"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/jetfriend/jetfriend-api/internal/types"
)

// Ensure implementation satisfies the interface
var _ AIClient = (*OpenRouterClient)(nil)

// OpenRouterClient talks to OpenRouter through its OpenAI-compatible API.
type OpenRouterClient struct {
	client      *openai.Client
	model       string
	maxTokens   int
	temperature float64
	logger      *slog.Logger
}

func NewOpenRouterClient(apiKey, model, baseURL string, maxTokens int, temperature float64, logger *slog.Logger) *OpenRouterClient {
	config := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = baseURL
	}
	return &OpenRouterClient{
		client:      openai.NewClientWithConfig(config),
		model:       model,
		maxTokens:   maxTokens,
		temperature: temperature,
		logger:      logger,
	}
}

func (c *OpenRouterClient) GenerateResponse(ctx context.Context, message string, history []types.ChatMessage, places []types.PlaceCandidate) (string, error) {
	ctx, span := otel.Tracer("GenerativeAI").Start(ctx, "GenerateResponse", trace.WithAttributes(
		attribute.String("provider", "openrouter"),
		attribute.String("model", c.model),
		attribute.Int("history.length", len(history)),
	))
	defer span.End()

	messages := make([]openai.ChatCompletionMessage, 0, len(history)+2)
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleSystem,
		Content: systemPrompt,
	})
	for _, turn := range recentHistory(history) {
		role := openai.ChatMessageRoleUser
		if turn.Role == "assistant" {
			role = openai.ChatMessageRoleAssistant
		}
		messages = append(messages, openai.ChatCompletionMessage{Role: role, Content: turn.Content})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: buildUserPrompt(message, places),
	})

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		Messages:    messages,
		MaxTokens:   c.maxTokens,
		Temperature: float32(c.temperature),
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "OpenRouter generation failed")
		c.logger.ErrorContext(ctx, "OpenRouter generation failed", slog.Any("error", err))
		return "", fmt.Errorf("openrouter generation: %w", err)
	}
	if len(resp.Choices) == 0 {
		err := fmt.Errorf("openrouter returned no choices")
		span.RecordError(err)
		span.SetStatus(codes.Error, "Empty response")
		return "", err
	}

	span.SetStatus(codes.Ok, "Response generated")
	return resp.Choices[0].Message.Content, nil
}

func (c *OpenRouterClient) CheckConnectivity(ctx context.Context) error {
	ctx, span := otel.Tracer("GenerativeAI").Start(ctx, "CheckConnectivity")
	defer span.End()

	_, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:     c.model,
		Messages:  []openai.ChatCompletionMessage{{Role: openai.ChatMessageRoleUser, Content: "ping"}},
		MaxTokens: 8,
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Connectivity check failed")
		return fmt.Errorf("openrouter connectivity: %w", err)
	}
	span.SetStatus(codes.Ok, "Connectivity verified")
	return nil
}
