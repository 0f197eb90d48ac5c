package validation

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

const defaultGeocodeBaseURL = "https://maps.googleapis.com/maps/api/geocode"

// Ensure implementation satisfies the interface
var _ GeocodeRepository = (*GoogleGeocodeRepository)(nil)

// GeocodeRepository resolves a textual address to coordinates.
type GeocodeRepository interface {
	Geocode(ctx context.Context, address string) (*types.Coordinates, error)
}

// GoogleGeocodeRepository calls the Google Geocoding API. Resolved addresses
// are cached so repeated candidates in one session do not re-geocode; the
// cache lives below the verifier boundary and never stores ValidationResults.
type GoogleGeocodeRepository struct {
	client  *http.Client
	apiKey  string
	baseURL string
	cache   *cache.Cache
	logger  *slog.Logger
}

func NewGoogleGeocodeRepository(apiKey string, logger *slog.Logger) *GoogleGeocodeRepository {
	return &GoogleGeocodeRepository{
		client:  &http.Client{Timeout: 10 * time.Second},
		apiKey:  apiKey,
		baseURL: defaultGeocodeBaseURL,
		cache:   cache.New(24*time.Hour, 1*time.Hour),
		logger:  logger,
	}
}

// NewGoogleGeocodeRepositoryWithBaseURL is used by tests to point at a local server.
func NewGoogleGeocodeRepositoryWithBaseURL(apiKey, baseURL string, logger *slog.Logger) *GoogleGeocodeRepository {
	r := NewGoogleGeocodeRepository(apiKey, logger)
	r.baseURL = baseURL
	return r
}

func (r *GoogleGeocodeRepository) Geocode(ctx context.Context, address string) (*types.Coordinates, error) {
	if address == "" {
		return nil, api.ErrGeocodeUnresolvable
	}

	cacheKey := "geocode:" + address
	if cached, found := r.cache.Get(cacheKey); found {
		coords := cached.(types.Coordinates)
		return &coords, nil
	}

	params := url.Values{}
	params.Set("address", address)
	params.Set("key", r.apiKey)

	endpoint := fmt.Sprintf("%s/json?%s", r.baseURL, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("building geocode request: %w", err)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: geocode: %s", api.ErrProviderUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: geocode returned HTTP %d", api.ErrProviderUnavailable, resp.StatusCode)
	}

	var payload types.GoogleGeocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: decoding geocode response: %s", api.ErrProviderUnavailable, err)
	}

	switch payload.Status {
	case "OK":
	case "ZERO_RESULTS":
		return nil, api.ErrGeocodeUnresolvable
	default:
		return nil, fmt.Errorf("%w: geocode status %s", api.ErrProviderUnavailable, payload.Status)
	}
	if len(payload.Results) == 0 {
		return nil, api.ErrGeocodeUnresolvable
	}

	loc := payload.Results[0].Geometry.Location
	coords := types.Coordinates{Latitude: loc.Lat, Longitude: loc.Lng}
	r.cache.Set(cacheKey, coords, cache.DefaultExpiration)
	return &coords, nil
}
