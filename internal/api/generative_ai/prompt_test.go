package generativeAI

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jetfriend/jetfriend-api/internal/types"
)

func TestBuildUserPrompt_NoPlacesPassesMessageThrough(t *testing.T) {
	assert.Equal(t, "hello", buildUserPrompt("hello", nil))
}

func TestBuildUserPrompt_AppendsTopThreePlaces(t *testing.T) {
	places := []types.PlaceCandidate{
		{Name: "Ichiran Shibuya", Address: "1-22-7 Jinnan, Shibuya", Rating: 4.4, ReviewCount: 12000},
		{Name: "Afuri Ebisu", Address: "1-1-7 Ebisu", Rating: 4.2, ReviewCount: 8000},
		{Name: "Nagi Golden Gai", Rating: 4.1, ReviewCount: 3000},
		{Name: "Fourth Place That Should Be Cut"},
	}

	prompt := buildUserPrompt("best ramen in Tokyo", places)

	assert.True(t, strings.HasPrefix(prompt, "best ramen in Tokyo"))
	assert.Contains(t, prompt, "Ichiran Shibuya")
	assert.Contains(t, prompt, "1-22-7 Jinnan, Shibuya")
	assert.Contains(t, prompt, "Rating: 4.4 (12000 reviews)")
	assert.Contains(t, prompt, "Nagi Golden Gai")
	assert.NotContains(t, prompt, "Fourth Place That Should Be Cut")
}

func TestRecentHistory_WindowsToLastSixTurns(t *testing.T) {
	var history []types.ChatMessage
	for i := 0; i < 10; i++ {
		history = append(history, types.ChatMessage{Role: "user", Content: strings.Repeat("x", i+1)})
	}

	recent := recentHistory(history)
	assert.Len(t, recent, 6)
	assert.Equal(t, history[4], recent[0])

	short := []types.ChatMessage{{Role: "user", Content: "hi"}}
	assert.Equal(t, short, recentHistory(short))
}

func TestSystemPrompt_ContainsAllPlaceholderTokens(t *testing.T) {
	tokens := []string{
		"[image_url]", "[place_name]", "[rating]", "[review_count]",
		"[google_maps_url]", "[yelp_search_url]", "[tripadvisor_search_url]",
		"[website]", "[opentable_url]", "[booking_url]", "[uber_url]",
	}
	for _, token := range tokens {
		assert.Contains(t, systemPrompt, token)
	}
}
