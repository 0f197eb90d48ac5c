package types

import (
	"time"

	"github.com/google/uuid"
)

// QueryCategory is the keyword category that classified a message as a
// location query. Categories are tested in a fixed priority order; the
// zero value means no category matched.
type QueryCategory string

const (
	CategoryTripPlanning   QueryCategory = "trip_planning"
	CategoryLodging        QueryCategory = "lodging"
	CategoryDining         QueryCategory = "dining"
	CategoryAttractions    QueryCategory = "attractions"
	CategoryTransportation QueryCategory = "transportation"
	CategoryGeneric        QueryCategory = "generic"
	CategoryNone           QueryCategory = ""
)

// QueryClassification is the classifier's verdict on one user message.
type QueryClassification struct {
	IsLocationQuery bool          `json:"is_location_query"`
	Category        QueryCategory `json:"category,omitempty"`
	MatchedStem     string        `json:"matched_stem,omitempty"`
}

// ChatMessage is one turn of conversation history supplied by the client.
type ChatMessage struct {
	Role    string `json:"role"` // "user" or "assistant"
	Content string `json:"content"`
}

// ChatRequest is the body of POST /api/v1/chat.
type ChatRequest struct {
	Message string        `json:"message"`
	History []ChatMessage `json:"history,omitempty"`
}

// ChatResponse is the enriched payload returned to the front end, which
// performs no validation of its own.
type ChatResponse struct {
	Success              bool      `json:"success"`
	Response             string    `json:"response"`
	PlacesFound          int       `json:"places_found"`
	EnhancedWithLocation bool      `json:"enhanced_with_location"`
	InteractionID        uuid.UUID `json:"interaction_id"`
	Timestamp            time.Time `json:"timestamp"`
}

// EnrichmentResult is what the orchestrator hands back to the chat handler.
type EnrichmentResult struct {
	FinalHTML   string
	PlacesFound int
	Enhanced    bool
	Places      []EnrichedPlace
}
