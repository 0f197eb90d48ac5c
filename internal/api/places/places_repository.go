package places

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/jetfriend/jetfriend-api/internal/api"
	"github.com/jetfriend/jetfriend-api/internal/types"
)

const defaultBaseURL = "https://maps.googleapis.com/maps/api/place"

// Ensure implementation satisfies the interface
var _ Repository = (*GoogleRepository)(nil)

// Repository defines the data-access contract against the place-data provider.
type Repository interface {
	TextSearch(ctx context.Context, query string, radiusMeters int) ([]types.GooglePlaceResult, error)
	PlaceDetails(ctx context.Context, placeID string) (*types.GooglePlaceDetails, error)
	PhotoURL(photoReference string, maxWidth int) string
}

// GoogleRepository talks to the Google Places Text Search, Details and Photo
// endpoints. Details responses are cached; the text search itself is not, so
// every enrichment pass sees the provider's current ranking.
type GoogleRepository struct {
	client  *http.Client
	apiKey  string
	baseURL string
	cache   *cache.Cache
	logger  *slog.Logger
}

func NewGoogleRepository(apiKey string, logger *slog.Logger) *GoogleRepository {
	return &GoogleRepository{
		client:  &http.Client{Timeout: 10 * time.Second},
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		cache:   cache.New(1*time.Hour, 10*time.Minute),
		logger:  logger,
	}
}

// NewGoogleRepositoryWithBaseURL is used by tests to point at a local server.
func NewGoogleRepositoryWithBaseURL(apiKey, baseURL string, logger *slog.Logger) *GoogleRepository {
	r := NewGoogleRepository(apiKey, logger)
	r.baseURL = baseURL
	return r
}

func (r *GoogleRepository) TextSearch(ctx context.Context, query string, radiusMeters int) ([]types.GooglePlaceResult, error) {
	params := url.Values{}
	params.Set("query", query)
	params.Set("key", r.apiKey)
	if radiusMeters > 0 {
		params.Set("radius", fmt.Sprintf("%d", radiusMeters))
	}

	endpoint := fmt.Sprintf("%s/textsearch/json?%s", r.baseURL, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("building text search request: %w", err)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: text search: %s", api.ErrProviderUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: text search returned HTTP %d", api.ErrProviderUnavailable, resp.StatusCode)
	}

	var payload types.GooglePlacesResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: decoding text search response: %s", api.ErrProviderUnavailable, err)
	}

	switch payload.Status {
	case "OK":
		return payload.Results, nil
	case "ZERO_RESULTS":
		// Valid call, no matches. Not an error.
		return nil, nil
	default:
		return nil, fmt.Errorf("%w: text search status %s", api.ErrProviderUnavailable, payload.Status)
	}
}

func (r *GoogleRepository) PlaceDetails(ctx context.Context, placeID string) (*types.GooglePlaceDetails, error) {
	cacheKey := "details:" + placeID
	if cached, found := r.cache.Get(cacheKey); found {
		details := cached.(types.GooglePlaceDetails)
		return &details, nil
	}

	params := url.Values{}
	params.Set("place_id", placeID)
	params.Set("fields", "website,international_phone_number")
	params.Set("key", r.apiKey)

	endpoint := fmt.Sprintf("%s/details/json?%s", r.baseURL, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("building details request: %w", err)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: place details: %s", api.ErrProviderUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: place details returned HTTP %d", api.ErrProviderUnavailable, resp.StatusCode)
	}

	var payload types.GooglePlaceDetailsResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: decoding details response: %s", api.ErrProviderUnavailable, err)
	}
	if payload.Status != "OK" {
		return nil, fmt.Errorf("%w: details status %s", api.ErrProviderUnavailable, payload.Status)
	}

	r.cache.Set(cacheKey, payload.Result, cache.DefaultExpiration)
	return &payload.Result, nil
}

// PhotoURL builds the Places Photo endpoint URL for a photo reference.
func (r *GoogleRepository) PhotoURL(photoReference string, maxWidth int) string {
	if photoReference == "" {
		return ""
	}
	return fmt.Sprintf("%s/photo?maxwidth=%d&photoreference=%s&key=%s",
		r.baseURL, maxWidth, url.QueryEscape(photoReference), r.apiKey)
}
