package validation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/jetfriend/jetfriend-api/internal/api"
	"github.com/jetfriend/jetfriend-api/internal/types"
)

const earthRadiusMeters = 6371000

// Ensure implementation satisfies the interface
var _ GeocodeVerifier = (*GeocodeVerifierImpl)(nil)

// GeocodeVerifier checks that the coordinates reported by the place-data
// provider agree with the coordinates the address geocodes to. Reported
// coordinates are never corrected; disagreement is reflected in the
// sub-score only.
type GeocodeVerifier interface {
	Verify(ctx context.Context, address string, reportedLat, reportedLng, toleranceMeters float64) types.ValidationResult
}

type GeocodeVerifierImpl struct {
	logger *slog.Logger
	repo   GeocodeRepository
}

func NewGeocodeVerifier(repo GeocodeRepository, logger *slog.Logger) *GeocodeVerifierImpl {
	return &GeocodeVerifierImpl{logger: logger, repo: repo}
}

// Verify geocodes the address and scores agreement with the reported
// coordinates. The sub-score decays linearly from 1.0 at distance 0 to 0.0
// at the tolerance, clamped to 0 beyond it. An unresolvable address fails
// with sub-score 0 and is never fatal to the pipeline.
func (v *GeocodeVerifierImpl) Verify(ctx context.Context, address string, reportedLat, reportedLng, toleranceMeters float64) types.ValidationResult {
	result := types.ValidationResult{Kind: types.CheckCoordinate}

	coords, err := v.repo.Geocode(ctx, address)
	if err != nil {
		if errors.Is(err, api.ErrGeocodeUnresolvable) {
			result.Detail = "address could not be geocoded"
		} else {
			result.Detail = "geocoding failed: " + err.Error()
			v.logger.WarnContext(ctx, "Geocoding provider failure", slog.Any("error", err))
		}
		return result
	}

	distance := haversineMeters(reportedLat, reportedLng, coords.Latitude, coords.Longitude)
	result.DistanceMeters = distance
	result.Detail = fmt.Sprintf("distance %.0fm (tolerance %.0fm)", distance, toleranceMeters)

	if toleranceMeters <= 0 {
		return result
	}
	if distance <= toleranceMeters {
		result.Passed = true
		result.SubScore = 1.0 - distance/toleranceMeters
	}
	return result
}

// haversineMeters computes the great-circle distance between two coordinates.
func haversineMeters(lat1, lng1, lat2, lng2 float64) float64 {
	lat1Rad := lat1 * math.Pi / 180
	lng1Rad := lng1 * math.Pi / 180
	lat2Rad := lat2 * math.Pi / 180
	lng2Rad := lng2 * math.Pi / 180

	dLat := lat2Rad - lat1Rad
	dLng := lng2Rad - lng1Rad

	a := math.Pow(math.Sin(dLat/2), 2) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*math.Pow(math.Sin(dLng/2), 2)
	return earthRadiusMeters * 2 * math.Asin(math.Sqrt(a))
}
