package enrich

import (
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"

	"github.com/jetfriend/jetfriend-api/internal/api"
	generativeAI "github.com/jetfriend/jetfriend-api/internal/api/generative_ai"
	"github.com/jetfriend/jetfriend-api/internal/types"
)

// fallbackAnswer is returned when the chat model cannot be reached. The
// request still succeeds so the front end renders a message instead of an
// error screen.
const fallbackAnswer = "I'm sorry, I'm having trouble connecting right now. Please try again in a moment."

type Handler struct {
	logger   *slog.Logger
	service  Service
	aiClient generativeAI.AIClient
}

func NewHandler(service Service, aiClient generativeAI.AIClient, logger *slog.Logger) *Handler {
	return &Handler{
		logger:   logger,
		service:  service,
		aiClient: aiClient,
	}
}

// Chat handles POST /api/v1/chat.
func (h *Handler) Chat(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("EnrichHandler").Start(r.Context(), "Chat")
	defer span.End()

	l := h.logger.With(slog.String("method", "Chat"))

	var req types.ChatRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		l.WarnContext(ctx, "Invalid chat request body", slog.Any("error", err))
		span.SetStatus(codes.Error, "Invalid request body")
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}
	req.Message = strings.TrimSpace(req.Message)
	if req.Message == "" {
		l.WarnContext(ctx, "Empty chat message")
		span.SetStatus(codes.Error, "Empty message")
		api.ErrorResponse(w, r, http.StatusBadRequest, "message is required")
		return
	}

	result, err := h.service.Chat(ctx, req)
	if err != nil {
		l.ErrorContext(ctx, "Chat pipeline failed, returning fallback answer", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Chat pipeline failed")
		api.WriteJSONResponse(w, r, http.StatusOK, types.ChatResponse{
			Success:       true,
			Response:      fallbackAnswer,
			InteractionID: uuid.New(),
			Timestamp:     time.Now().UTC(),
		})
		return
	}

	span.SetStatus(codes.Ok, "Chat completed")
	api.WriteJSONResponse(w, r, http.StatusOK, types.ChatResponse{
		Success:              true,
		Response:             result.FinalHTML,
		PlacesFound:          result.PlacesFound,
		EnhancedWithLocation: result.Enhanced,
		InteractionID:        uuid.New(),
		Timestamp:            time.Now().UTC(),
	})
}

// Health handles GET /api/v1/health. It reports which provider credentials
// are configured without calling any of them.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	_, span := otel.Tracer("EnrichHandler").Start(r.Context(), "Health")
	defer span.End()

	resp := map[string]interface{}{
		"status":  "healthy",
		"service": "JetFriend API",
		"version": "1.0.0",
		"apis_configured": map[string]bool{
			"gemini":        os.Getenv("GEMINI_API_KEY") != "",
			"openrouter":    os.Getenv("OPENROUTER_API_KEY") != "",
			"google_places": os.Getenv("GOOGLE_PLACES_API_KEY") != "",
			"geocoding":     os.Getenv("GOOGLE_GEOCODING_API_KEY") != "",
			"image_search":  os.Getenv("GOOGLE_SEARCH_API_KEY") != "" && os.Getenv("GOOGLE_SEARCH_ENGINE_ID") != "",
		},
	}
	span.SetStatus(codes.Ok, "Health reported")
	api.WriteJSONResponse(w, r, http.StatusOK, resp)
}

// Test handles GET /api/v1/test: a live connectivity check against the chat
// model, for use after deployments.
func (h *Handler) Test(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("EnrichHandler").Start(r.Context(), "Test")
	defer span.End()

	l := h.logger.With(slog.String("method", "Test"))

	if err := h.aiClient.CheckConnectivity(ctx); err != nil {
		l.ErrorContext(ctx, "Chat model connectivity check failed", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Connectivity check failed")
		api.WriteJSONResponse(w, r, http.StatusServiceUnavailable, map[string]interface{}{
			"success": false,
			"error":   err.Error(),
		})
		return
	}

	span.SetStatus(codes.Ok, "Connectivity verified")
	api.WriteJSONResponse(w, r, http.StatusOK, map[string]interface{}{
		"success":   true,
		"ai_status": "connected",
	})
}
