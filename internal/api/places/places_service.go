package places

import (
	"context"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/jetfriend/jetfriend-api/internal/api"
	"github.com/jetfriend/jetfriend-api/internal/types"
)

const photoMaxWidth = 1200

// Ensure implementation satisfies the interface
var _ Service = (*ServiceImpl)(nil)

// Service defines the business logic contract for place retrieval.
type Service interface {
	Search(ctx context.Context, queryTerms, locationHint string, radiusMeters int) ([]types.PlaceCandidate, error)
}

type ServiceImpl struct {
	logger          *slog.Logger
	repo            Repository
	maxCandidates   int
	maxRadiusMeters int
}

func NewServiceImpl(repo Repository, maxCandidates, maxRadiusMeters int, logger *slog.Logger) *ServiceImpl {
	return &ServiceImpl{
		logger:          logger,
		repo:            repo,
		maxCandidates:   maxCandidates,
		maxRadiusMeters: maxRadiusMeters,
	}
}

// Search fetches and normalizes candidate place records. The provider's
// relevance ranking is preserved: candidates are never re-sorted here.
// Provider failures propagate (wrapped as ErrProviderUnavailable); a valid
// call with zero matches returns an empty slice and no error.
func (s *ServiceImpl) Search(ctx context.Context, queryTerms, locationHint string, radiusMeters int) ([]types.PlaceCandidate, error) {
	ctx, span := otel.Tracer("PlacesService").Start(ctx, "Search", trace.WithAttributes(
		attribute.String("query", queryTerms),
		attribute.String("location_hint", locationHint),
	))
	defer span.End()

	if queryTerms == "" {
		return nil, fmt.Errorf("query terms must not be empty")
	}

	if radiusMeters < 0 {
		return nil, fmt.Errorf("radius must be positive, got %d", radiusMeters)
	}
	if radiusMeters > s.maxRadiusMeters {
		radiusMeters = s.maxRadiusMeters
	}

	searchQuery := queryTerms
	if locationHint != "" {
		searchQuery = fmt.Sprintf("%s in %s", queryTerms, locationHint)
	}

	results, err := s.repo.TextSearch(ctx, searchQuery, radiusMeters)
	if err != nil {
		s.logger.ErrorContext(ctx, "Place search failed", slog.Any("error", err))
		span.RecordError(err)
		return nil, err
	}

	if len(results) > s.maxCandidates {
		results = results[:s.maxCandidates]
	}

	candidates := make([]types.PlaceCandidate, 0, len(results))
	for _, raw := range results {
		if raw.Name == "" && raw.FormattedAddress == "" {
			// Unusable record, dropped before scoring.
			s.logger.DebugContext(ctx, "Dropping candidate",
				slog.String("place_id", raw.PlaceID),
				slog.Any("error", api.ErrMalformedCandidate))
			continue
		}
		candidates = append(candidates, s.normalize(ctx, raw))
	}

	span.SetAttributes(attribute.Int("candidates.count", len(candidates)))
	span.SetStatus(codes.Ok, "Places retrieved")
	return candidates, nil
}

// normalize translates one raw provider record into a PlaceCandidate,
// enriching it with the website and phone from the details endpoint when
// that lookup succeeds. A failed details call never drops the candidate.
func (s *ServiceImpl) normalize(ctx context.Context, raw types.GooglePlaceResult) types.PlaceCandidate {
	candidate := types.PlaceCandidate{
		ID:          raw.PlaceID,
		Name:        raw.Name,
		Address:     raw.FormattedAddress,
		Categories:  raw.Types,
		Rating:      raw.Rating,
		ReviewCount: raw.UserRatingsTotal,
	}

	if raw.Geometry.Location.Lat != 0 || raw.Geometry.Location.Lng != 0 {
		candidate.Coordinates = &types.Coordinates{
			Latitude:  raw.Geometry.Location.Lat,
			Longitude: raw.Geometry.Location.Lng,
		}
	}

	for _, photo := range raw.Photos {
		if u := s.repo.PhotoURL(photo.PhotoReference, photoMaxWidth); u != "" {
			candidate.PhotoURLs = append(candidate.PhotoURLs, u)
		}
	}

	if raw.PlaceID != "" {
		details, err := s.repo.PlaceDetails(ctx, raw.PlaceID)
		if err != nil {
			s.logger.DebugContext(ctx, "Place details lookup failed, continuing without",
				slog.String("place_id", raw.PlaceID), slog.Any("error", err))
		} else {
			candidate.Website = details.Website
			candidate.Phone = details.InternationalPhoneNo
		}
	}

	return candidate
}
