package generativeAI

import (
	"context"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"google.golang.org/genai"

	"github.com/jetfriend/jetfriend-api/internal/types"
)

// Ensure implementation satisfies the interface
var _ AIClient = (*GeminiClient)(nil)

// GeminiClient talks to the Gemini API through the official SDK.
type GeminiClient struct {
	client      *genai.Client
	model       string
	maxTokens   int
	temperature float64
	logger      *slog.Logger
}

func NewGeminiClient(ctx context.Context, apiKey, model string, maxTokens int, temperature float64, logger *slog.Logger) (*GeminiClient, error) {
	ctx, span := otel.Tracer("GenerativeAI").Start(ctx, "NewGeminiClient")
	defer span.End()

	if apiKey == "" {
		err := fmt.Errorf("gemini API key is not set")
		span.RecordError(err)
		span.SetStatus(codes.Error, "API key not set")
		return nil, err
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to create Gemini client")
		return nil, err
	}

	span.SetStatus(codes.Ok, "Gemini client created")
	return &GeminiClient{
		client:      client,
		model:       model,
		maxTokens:   maxTokens,
		temperature: temperature,
		logger:      logger,
	}, nil
}

func (c *GeminiClient) GenerateResponse(ctx context.Context, message string, history []types.ChatMessage, places []types.PlaceCandidate) (string, error) {
	ctx, span := otel.Tracer("GenerativeAI").Start(ctx, "GenerateResponse", trace.WithAttributes(
		attribute.String("provider", "gemini"),
		attribute.String("model", c.model),
		attribute.Int("history.length", len(history)),
	))
	defer span.End()

	config := &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: systemPrompt}}},
		Temperature:       genai.Ptr(float32(c.temperature)),
		MaxOutputTokens:   int32(c.maxTokens),
	}

	contents := make([]*genai.Content, 0, len(history)+1)
	for _, turn := range recentHistory(history) {
		role := genai.RoleUser
		if turn.Role == "assistant" {
			role = genai.RoleModel
		}
		contents = append(contents, &genai.Content{
			Role:  role,
			Parts: []*genai.Part{{Text: turn.Content}},
		})
	}
	contents = append(contents, &genai.Content{
		Role:  genai.RoleUser,
		Parts: []*genai.Part{{Text: buildUserPrompt(message, places)}},
	})

	result, err := c.client.Models.GenerateContent(ctx, c.model, contents, config)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Gemini generation failed")
		c.logger.ErrorContext(ctx, "Gemini generation failed", slog.Any("error", err))
		return "", fmt.Errorf("gemini generation: %w", err)
	}

	text := result.Text()
	if text == "" {
		err := fmt.Errorf("gemini returned no candidates")
		span.RecordError(err)
		span.SetStatus(codes.Error, "Empty response")
		return "", err
	}

	span.SetStatus(codes.Ok, "Response generated")
	return text, nil
}

// CheckConnectivity issues a minimal generation to confirm the API key and
// model are usable.
func (c *GeminiClient) CheckConnectivity(ctx context.Context) error {
	ctx, span := otel.Tracer("GenerativeAI").Start(ctx, "CheckConnectivity")
	defer span.End()

	_, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text("ping"), &genai.GenerateContentConfig{
		MaxOutputTokens: 8,
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Connectivity check failed")
		return fmt.Errorf("gemini connectivity: %w", err)
	}
	span.SetStatus(codes.Ok, "Connectivity verified")
	return nil
}
