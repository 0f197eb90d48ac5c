package validation

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jetfriend/jetfriend-api/internal/api"
	"github.com/jetfriend/jetfriend-api/internal/types"
)

// MockGeocodeRepository is a mock implementation of GeocodeRepository
type MockGeocodeRepository struct {
	mock.Mock
}

func (m *MockGeocodeRepository) Geocode(ctx context.Context, address string) (*types.Coordinates, error) {
	args := m.Called(ctx, address)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.Coordinates), args.Error(1)
}

const googleplexAddress = "1600 Amphitheatre Pkwy, Mountain View, CA"

func TestGeocodeVerifier_ExactMatchScoresFull(t *testing.T) {
	repo := new(MockGeocodeRepository)
	repo.On("Geocode", mock.Anything, googleplexAddress).
		Return(&types.Coordinates{Latitude: 37.4224, Longitude: -122.0842}, nil)

	v := NewGeocodeVerifier(repo, testLogger())
	result := v.Verify(context.Background(), googleplexAddress, 37.4224, -122.0842, 500)

	assert.Equal(t, types.CheckCoordinate, result.Kind)
	assert.True(t, result.Passed)
	assert.InDelta(t, 1.0, result.SubScore, 1e-9)
	assert.InDelta(t, 0.0, result.DistanceMeters, 0.5)
}

func TestGeocodeVerifier_LinearDecayWithinTolerance(t *testing.T) {
	repo := new(MockGeocodeRepository)
	repo.On("Geocode", mock.Anything, googleplexAddress).
		Return(&types.Coordinates{Latitude: 37.4224, Longitude: -122.0842}, nil)

	v := NewGeocodeVerifier(repo, testLogger())
	// ~0.00225 degrees of latitude is ~250m.
	result := v.Verify(context.Background(), googleplexAddress, 37.42465, -122.0842, 500)

	assert.True(t, result.Passed)
	assert.InDelta(t, 250, result.DistanceMeters, 5)
	assert.InDelta(t, 0.5, result.SubScore, 0.02)
}

func TestGeocodeVerifier_BeyondToleranceScoresZero(t *testing.T) {
	repo := new(MockGeocodeRepository)
	repo.On("Geocode", mock.Anything, googleplexAddress).
		Return(&types.Coordinates{Latitude: 37.4224, Longitude: -122.0842}, nil)

	v := NewGeocodeVerifier(repo, testLogger())
	// ~0.027 degrees of latitude is ~3000m off, tolerance 500m.
	result := v.Verify(context.Background(), googleplexAddress, 37.4494, -122.0842, 500)

	assert.False(t, result.Passed)
	assert.Equal(t, 0.0, result.SubScore)
	assert.Greater(t, result.DistanceMeters, 2500.0)
}

func TestGeocodeVerifier_UnresolvableAddressFailsGracefully(t *testing.T) {
	repo := new(MockGeocodeRepository)
	repo.On("Geocode", mock.Anything, "nowhere at all").Return(nil, api.ErrGeocodeUnresolvable)

	v := NewGeocodeVerifier(repo, testLogger())
	result := v.Verify(context.Background(), "nowhere at all", 10, 10, 500)

	assert.False(t, result.Passed)
	assert.Equal(t, 0.0, result.SubScore)
	assert.Equal(t, "address could not be geocoded", result.Detail)
}

func TestGeocodeVerifier_ProviderFailureIsNotFatal(t *testing.T) {
	repo := new(MockGeocodeRepository)
	repo.On("Geocode", mock.Anything, googleplexAddress).
		Return(nil, fmt.Errorf("%w: timeout", api.ErrProviderUnavailable))

	v := NewGeocodeVerifier(repo, testLogger())
	result := v.Verify(context.Background(), googleplexAddress, 37.42, -122.08, 500)

	assert.False(t, result.Passed)
	assert.Contains(t, result.Detail, "geocoding failed")
}

func TestHaversineMeters(t *testing.T) {
	// Paris to London is roughly 344km.
	d := haversineMeters(48.8566, 2.3522, 51.5074, -0.1278)
	assert.InDelta(t, 344000, d, 2000)

	assert.InDelta(t, 0, haversineMeters(35.0, 139.0, 35.0, 139.0), 1e-6)
}

func TestGoogleGeocodeRepository_ResolvesAndCaches(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		assert.Equal(t, googleplexAddress, r.URL.Query().Get("address"))
		fmt.Fprint(w, `{"status":"OK","results":[{"formatted_address":"1600 Amphitheatre Pkwy","geometry":{"location":{"lat":37.4224,"lng":-122.0842},"location_type":"ROOFTOP"}}]}`)
	}))
	defer srv.Close()

	repo := NewGoogleGeocodeRepositoryWithBaseURL("test-key", srv.URL, testLogger())

	coords, err := repo.Geocode(context.Background(), googleplexAddress)
	require.NoError(t, err)
	assert.InDelta(t, 37.4224, coords.Latitude, 1e-9)

	_, err = repo.Geocode(context.Background(), googleplexAddress)
	require.NoError(t, err)
	assert.Equal(t, 1, calls, "second resolution should come from cache")
}

func TestGoogleGeocodeRepository_ZeroResultsIsUnresolvable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"status":"ZERO_RESULTS","results":[]}`)
	}))
	defer srv.Close()

	repo := NewGoogleGeocodeRepositoryWithBaseURL("test-key", srv.URL, testLogger())
	_, err := repo.Geocode(context.Background(), "gibberish")
	assert.ErrorIs(t, err, api.ErrGeocodeUnresolvable)
}

func TestGoogleGeocodeRepository_EmptyAddressIsUnresolvable(t *testing.T) {
	repo := NewGoogleGeocodeRepository("test-key", testLogger())
	_, err := repo.Geocode(context.Background(), "")
	assert.ErrorIs(t, err, api.ErrGeocodeUnresolvable)
}
