package types

// Coordinates is a latitude/longitude pair in decimal degrees.
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// PlaceCandidate is a single location returned by the place-data provider,
// normalized from the raw provider payload. It is immutable once constructed;
// verifiers read it and never write back.
type PlaceCandidate struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Address     string       `json:"address"`
	Coordinates *Coordinates `json:"coordinates,omitempty"`
	Categories  []string     `json:"categories,omitempty"`
	Rating      float64      `json:"rating,omitempty"`
	ReviewCount int          `json:"review_count,omitempty"`
	Phone       string       `json:"phone,omitempty"`
	Website     string       `json:"website,omitempty"`
	PhotoURLs   []string     `json:"photo_urls,omitempty"`
}

// HasCategory reports whether any of the candidate's category tags equals tag.
func (p PlaceCandidate) HasCategory(tags ...string) bool {
	for _, c := range p.Categories {
		for _, t := range tags {
			if c == t {
				return true
			}
		}
	}
	return false
}

// EnrichedPlace is a PlaceCandidate plus its verified links, resolved image
// and overall confidence score. Built once per request, discarded after the
// response is written.
type EnrichedPlace struct {
	PlaceCandidate

	Links      PlaceLinks    `json:"links"`
	Image      ResolvedImage `json:"image"`
	Confidence float64       `json:"confidence"`
	Band       ScoreBand     `json:"confidence_band"`
}

// PlaceLinks holds the outbound links substituted into the response HTML.
// An empty field means no verified counterpart exists for that link.
type PlaceLinks struct {
	Maps        string `json:"google_maps_url,omitempty"`
	Website     string `json:"website,omitempty"`
	Yelp        string `json:"yelp_search_url,omitempty"`
	TripAdvisor string `json:"tripadvisor_search_url,omitempty"`
	OpenTable   string `json:"opentable_url,omitempty"`
	Booking     string `json:"booking_url,omitempty"`
	Uber        string `json:"uber_url,omitempty"`
}

// ScoreBand buckets a confidence score for reporting.
type ScoreBand string

const (
	BandHigh   ScoreBand = "high"   // score >= 0.7
	BandMedium ScoreBand = "medium" // 0.5 <= score < 0.7
	BandLow    ScoreBand = "low"    // score < 0.5
)

// BandForScore maps a confidence score in [0,1] to its band.
func BandForScore(score float64) ScoreBand {
	switch {
	case score >= 0.7:
		return BandHigh
	case score >= 0.5:
		return BandMedium
	default:
		return BandLow
	}
}

// --- Raw Google Places payload shapes ---

type GooglePlacesResponse struct {
	Results []GooglePlaceResult `json:"results"`
	Status  string              `json:"status"`
}

type GooglePlaceResult struct {
	PlaceID          string              `json:"place_id"`
	Name             string              `json:"name"`
	FormattedAddress string              `json:"formatted_address"`
	Geometry         GooglePlaceGeometry `json:"geometry"`
	Types            []string            `json:"types"`
	Rating           float64             `json:"rating"`
	UserRatingsTotal int                 `json:"user_ratings_total"`
	Photos           []GooglePlacePhoto  `json:"photos,omitempty"`
}

type GooglePlaceGeometry struct {
	Location GoogleLatLng `json:"location"`
}

type GoogleLatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type GooglePlacePhoto struct {
	PhotoReference   string   `json:"photo_reference"`
	Width            int      `json:"width"`
	Height           int      `json:"height"`
	HTMLAttributions []string `json:"html_attributions,omitempty"`
}

type GooglePlaceDetailsResponse struct {
	Result GooglePlaceDetails `json:"result"`
	Status string             `json:"status"`
}

type GooglePlaceDetails struct {
	Website              string `json:"website"`
	InternationalPhoneNo string `json:"international_phone_number"`
}

// GoogleGeocodeResponse is the Geocoding API payload, trimmed to what the
// coordinate verifier consumes.
type GoogleGeocodeResponse struct {
	Results []struct {
		FormattedAddress string `json:"formatted_address"`
		Geometry         struct {
			Location     GoogleLatLng `json:"location"`
			LocationType string       `json:"location_type"`
		} `json:"geometry"`
	} `json:"results"`
	Status string `json:"status"`
}
