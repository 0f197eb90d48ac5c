package enrich

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/jetfriend/jetfriend-api/internal/types"
)

// inertLink replaces any link token that has no verified counterpart so the
// front end never renders a dead outbound link.
const inertLink = "#"

// BuildLinks derives the outbound links for one place. The website link is
// only populated when its reachability probe passed; search links are
// constructed deterministically and need no probing. OpenTable and Booking
// links are category-gated: a temple gets no table-reservation link.
func BuildLinks(place types.PlaceCandidate, websiteVerified bool) types.PlaceLinks {
	nameAndAddress := strings.TrimSpace(place.Name + " " + place.Address)

	links := types.PlaceLinks{
		Maps:        "https://www.google.com/maps/search/?api=1&query=" + url.QueryEscape(nameAndAddress),
		Yelp:        "https://www.yelp.com/search?find_desc=" + url.QueryEscape(place.Name) + "&find_loc=" + url.QueryEscape(place.Address),
		TripAdvisor: "https://www.tripadvisor.com/Search?q=" + url.QueryEscape(nameAndAddress),
	}

	if websiteVerified && place.Website != "" {
		links.Website = place.Website
	}
	if place.HasCategory("restaurant", "food", "meal_takeaway", "cafe", "bar") {
		links.OpenTable = "https://www.opentable.com/s?term=" + url.QueryEscape(nameAndAddress)
	}
	if place.HasCategory("lodging") {
		links.Booking = "https://www.booking.com/searchresults.html?ss=" + url.QueryEscape(nameAndAddress)
	}
	if place.Coordinates != nil {
		links.Uber = fmt.Sprintf(
			"https://m.uber.com/ul/?action=setPickup&pickup=my_location&dropoff[formatted_address]=%s&dropoff[latitude]=%f&dropoff[longitude]=%f",
			url.QueryEscape(place.Address), place.Coordinates.Latitude, place.Coordinates.Longitude,
		)
	}
	return links
}

// placeholder tokens emitted by the model, substituted per surviving place
// in card order.
var placeholderTokens = []string{
	"[image_url]", "[place_name]", "[rating]", "[review_count]",
	"[google_maps_url]", "[yelp_search_url]", "[tripadvisor_search_url]",
	"[website]", "[opentable_url]", "[booking_url]", "[uber_url]",
}

func tokenValues(place types.EnrichedPlace) map[string]string {
	rating := "N/A"
	if place.Rating > 0 {
		rating = strconv.FormatFloat(place.Rating, 'f', 1, 64)
	}
	return map[string]string{
		"[image_url]":              place.Image.URL,
		"[place_name]":             place.Name,
		"[rating]":                 rating,
		"[review_count]":           strconv.Itoa(place.ReviewCount),
		"[google_maps_url]":        orInert(place.Links.Maps),
		"[yelp_search_url]":        orInert(place.Links.Yelp),
		"[tripadvisor_search_url]": orInert(place.Links.TripAdvisor),
		"[website]":                orInert(place.Links.Website),
		"[opentable_url]":          orInert(place.Links.OpenTable),
		"[booking_url]":            orInert(place.Links.Booking),
		"[uber_url]":               orInert(place.Links.Uber),
	}
}

func orInert(link string) string {
	if link == "" {
		return inertLink
	}
	return link
}

// SubstituteTokens fills the model's placeholder tokens with verified place
// data. Cards appear in the response in the same order places survived
// filtering, so the i-th occurrence of each token belongs to the i-th place.
// Tokens left over after every place is consumed are neutralized rather than
// shipped raw.
func SubstituteTokens(html string, places []types.EnrichedPlace) string {
	for _, place := range places {
		values := tokenValues(place)
		for _, token := range placeholderTokens {
			html = strings.Replace(html, token, values[token], 1)
		}
	}

	for _, token := range placeholderTokens {
		switch token {
		case "[place_name]":
			html = strings.ReplaceAll(html, token, "this place")
		case "[rating]":
			html = strings.ReplaceAll(html, token, "N/A")
		case "[review_count]":
			html = strings.ReplaceAll(html, token, "0")
		default:
			html = strings.ReplaceAll(html, token, inertLink)
		}
	}
	return html
}
