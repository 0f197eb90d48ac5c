package generativeAI

import (
	"context"

	"github.com/jetfriend/jetfriend-api/internal/types"
)

// AIClient generates a conversational travel answer for a user message,
// carrying forward recent conversation history. When retrieved place data is
// supplied it is appended to the prompt so cards are grounded in real
// records. Implementations return the raw model text, which may contain
// place-card markup with placeholder tokens for a later enrichment pass to
// fill in.
type AIClient interface {
	GenerateResponse(ctx context.Context, message string, history []types.ChatMessage, places []types.PlaceCandidate) (string, error)
	CheckConnectivity(ctx context.Context) error
}

// historyWindow bounds how many prior turns are replayed to the model.
const historyWindow = 6

func recentHistory(history []types.ChatMessage) []types.ChatMessage {
	if len(history) > historyWindow {
		return history[len(history)-historyWindow:]
	}
	return history
}
