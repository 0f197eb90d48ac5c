package enrich

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jetfriend/jetfriend-api/internal/types"
)

func TestBuildLinks_SearchLinksAlwaysPresent(t *testing.T) {
	links := BuildLinks(types.PlaceCandidate{
		Name:    "Tokyo Tower",
		Address: "4 Chome-2-8 Shibakoen, Minato City, Tokyo",
	}, false)

	assert.Equal(t, "https://www.google.com/maps/search/?api=1&query=Tokyo+Tower+4+Chome-2-8+Shibakoen%2C+Minato+City%2C+Tokyo", links.Maps)
	assert.Equal(t, "https://www.yelp.com/search?find_desc=Tokyo+Tower&find_loc=4+Chome-2-8+Shibakoen%2C+Minato+City%2C+Tokyo", links.Yelp)
	assert.True(t, strings.HasPrefix(links.TripAdvisor, "https://www.tripadvisor.com/Search?q="))
}

func TestBuildLinks_WebsiteOnlyWhenVerified(t *testing.T) {
	place := types.PlaceCandidate{Name: "Ichiran", Website: "https://ichiran.com"}

	assert.Empty(t, BuildLinks(place, false).Website)
	assert.Equal(t, "https://ichiran.com", BuildLinks(place, true).Website)
}

func TestBuildLinks_CategoryGating(t *testing.T) {
	dining := BuildLinks(types.PlaceCandidate{Name: "Ichiran", Categories: []string{"restaurant"}}, false)
	assert.NotEmpty(t, dining.OpenTable)
	assert.Empty(t, dining.Booking)

	hotel := BuildLinks(types.PlaceCandidate{Name: "Park Hyatt", Categories: []string{"lodging"}}, false)
	assert.Empty(t, hotel.OpenTable)
	assert.NotEmpty(t, hotel.Booking)

	temple := BuildLinks(types.PlaceCandidate{Name: "Senso-ji", Categories: []string{"place_of_worship"}}, false)
	assert.Empty(t, temple.OpenTable)
	assert.Empty(t, temple.Booking)
}

func TestBuildLinks_UberNeedsCoordinates(t *testing.T) {
	withCoords := BuildLinks(types.PlaceCandidate{
		Name:        "Tokyo Tower",
		Address:     "Minato City",
		Coordinates: &types.Coordinates{Latitude: 35.6586, Longitude: 139.7454},
	}, false)
	assert.Contains(t, withCoords.Uber, "dropoff[latitude]=35.658600")

	withoutCoords := BuildLinks(types.PlaceCandidate{Name: "Tokyo Tower"}, false)
	assert.Empty(t, withoutCoords.Uber)
}

const sampleCard = `<div class="place-card">
  <img src="[image_url]" alt="[place_name]">
  <h3>[place_name]</h3>
  <div>[rating] ([review_count] reviews)</div>
  <a href="[google_maps_url]">Maps</a>
  <a href="[yelp_search_url]">Yelp</a>
  <a href="[tripadvisor_search_url]">TripAdvisor</a>
  <a href="[website]">Website</a>
  <a href="[opentable_url]">OpenTable</a>
  <a href="[booking_url]">Booking</a>
  <a href="[uber_url]">Uber</a>
</div>`

func enrichedFixture(name string) types.EnrichedPlace {
	candidate := types.PlaceCandidate{
		Name:        name,
		Address:     "Somewhere in Tokyo",
		Rating:      4.4,
		ReviewCount: 1200,
		Website:     "https://example.com",
	}
	return types.EnrichedPlace{
		PlaceCandidate: candidate,
		Links:          BuildLinks(candidate, true),
		Image:          types.ResolvedImage{URL: "https://img.example.com/" + name + ".jpg", Tier: types.TierProviderPhoto},
		Confidence:     0.9,
		Band:           types.BandHigh,
	}
}

func TestSubstituteTokens_FillsCardsInOrder(t *testing.T) {
	html := sampleCard + "\nSome prose between cards.\n" + sampleCard
	out := SubstituteTokens(html, []types.EnrichedPlace{
		enrichedFixture("First"),
		enrichedFixture("Second"),
	})

	assert.NotContains(t, out, "[place_name]")
	assert.NotContains(t, out, "[image_url]")
	first := strings.Index(out, "First")
	second := strings.Index(out, "Second")
	assert.Greater(t, first, -1)
	assert.Greater(t, second, first)
	assert.Contains(t, out, "4.4 (1200 reviews)")
	assert.Contains(t, out, "https://img.example.com/First.jpg")
}

func TestSubstituteTokens_LeftoverTokensNeutralized(t *testing.T) {
	// Model emitted two cards but only one place survived filtering.
	html := sampleCard + sampleCard
	out := SubstituteTokens(html, []types.EnrichedPlace{enrichedFixture("Only")})

	for _, token := range placeholderTokens {
		assert.NotContains(t, out, token)
	}
	assert.Contains(t, out, `href="#"`)
}

func TestSubstituteTokens_UnverifiedLinksAreInert(t *testing.T) {
	candidate := types.PlaceCandidate{Name: "Senso-ji", Address: "Asakusa"}
	place := types.EnrichedPlace{
		PlaceCandidate: candidate,
		Links:          BuildLinks(candidate, false),
		Image:          types.ResolvedImage{URL: "https://img.example.com/sensoji.jpg"},
	}

	out := SubstituteTokens(sampleCard, []types.EnrichedPlace{place})

	assert.Contains(t, out, `<a href="#">Website</a>`)
	assert.Contains(t, out, `<a href="#">OpenTable</a>`)
	assert.Contains(t, out, `<a href="#">Booking</a>`)
	assert.Contains(t, out, `<a href="#">Uber</a>`)
}

func TestSubstituteTokens_NoCardsPassesThrough(t *testing.T) {
	plain := "Just general travel advice with no cards."
	assert.Equal(t, plain, SubstituteTokens(plain, nil))
}
