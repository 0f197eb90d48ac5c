package validation

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/jetfriend/jetfriend-api/internal/api"
	"github.com/jetfriend/jetfriend-api/internal/types"
)

const defaultImageSearchBaseURL = "https://www.googleapis.com/customsearch/v1"

// Ensure implementation satisfies the interface
var _ ImageSearchRepository = (*GoogleImageSearchRepository)(nil)

// ImageSearchRepository runs a license-filtered image search and returns the
// best candidate with its licensing metadata.
type ImageSearchRepository interface {
	SearchLicensed(ctx context.Context, query string) (*types.ResolvedImage, error)
}

// GoogleImageSearchRepository calls the Custom Search API restricted to
// Creative-Commons-compatible rights.
type GoogleImageSearchRepository struct {
	client   *http.Client
	apiKey   string
	engineID string
	baseURL  string
	logger   *slog.Logger
}

type customSearchResponse struct {
	Items []struct {
		Link        string `json:"link"`
		Title       string `json:"title"`
		DisplayLink string `json:"displayLink"`
	} `json:"items"`
}

func NewGoogleImageSearchRepository(apiKey, engineID string, logger *slog.Logger) *GoogleImageSearchRepository {
	return &GoogleImageSearchRepository{
		client:   &http.Client{Timeout: 10 * time.Second},
		apiKey:   apiKey,
		engineID: engineID,
		baseURL:  defaultImageSearchBaseURL,
		logger:   logger,
	}
}

// NewGoogleImageSearchRepositoryWithBaseURL is used by tests to point at a local server.
func NewGoogleImageSearchRepositoryWithBaseURL(apiKey, engineID, baseURL string, logger *slog.Logger) *GoogleImageSearchRepository {
	r := NewGoogleImageSearchRepository(apiKey, engineID, logger)
	r.baseURL = baseURL
	return r
}

func (r *GoogleImageSearchRepository) SearchLicensed(ctx context.Context, query string) (*types.ResolvedImage, error) {
	if r.apiKey == "" || r.engineID == "" {
		return nil, fmt.Errorf("%w: image search not configured", api.ErrProviderUnavailable)
	}

	params := url.Values{}
	params.Set("key", r.apiKey)
	params.Set("cx", r.engineID)
	params.Set("q", query)
	params.Set("searchType", "image")
	params.Set("rights", "cc_publicdomain,cc_attribute,cc_sharealike")
	params.Set("num", "5")
	params.Set("safe", "active")
	params.Set("imgSize", "large")

	endpoint := fmt.Sprintf("%s?%s", r.baseURL, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("building image search request: %w", err)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: image search: %s", api.ErrProviderUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: image search returned HTTP %d", api.ErrProviderUnavailable, resp.StatusCode)
	}

	var payload customSearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: decoding image search response: %s", api.ErrProviderUnavailable, err)
	}
	if len(payload.Items) == 0 {
		return nil, api.ErrEmptyResult
	}

	item := payload.Items[0]
	return &types.ResolvedImage{
		URL:         item.Link,
		Tier:        types.TierLicensedWeb,
		License:     "creative_commons",
		Attribution: item.DisplayLink,
		AltText:     item.Title,
	}, nil
}
