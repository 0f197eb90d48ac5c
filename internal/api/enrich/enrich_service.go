package enrich

import (
	"context"
	"log/slog"
	"regexp"
	"sort"
	"strings"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"github.com/jetfriend/jetfriend-api/app/observability/metrics"
	"github.com/jetfriend/jetfriend-api/config"
	"github.com/jetfriend/jetfriend-api/internal/api/classify"
	generativeAI "github.com/jetfriend/jetfriend-api/internal/api/generative_ai"
	"github.com/jetfriend/jetfriend-api/internal/api/places"
	"github.com/jetfriend/jetfriend-api/internal/api/validation"
	"github.com/jetfriend/jetfriend-api/internal/types"
)

// Ensure implementation satisfies the interface
var _ Service = (*ServiceImpl)(nil)

// Service runs the full chat pipeline: classification, place retrieval,
// verification, scoring, filtering and token substitution. Provider outages
// degrade the answer instead of failing it; the only hard error is the chat
// model itself being unreachable.
type Service interface {
	Chat(ctx context.Context, req types.ChatRequest) (types.EnrichmentResult, error)
}

type ServiceImpl struct {
	logger     *slog.Logger
	classifier classify.Service
	places     places.Service
	aiClient   generativeAI.AIClient
	urlChecker validation.URLChecker
	geocoder   validation.GeocodeVerifier
	contacts   validation.ContactVerifier
	images     validation.ImageSourcer
	cfg        config.EnrichmentConfig
}

func NewServiceImpl(
	classifier classify.Service,
	placesSvc places.Service,
	aiClient generativeAI.AIClient,
	urlChecker validation.URLChecker,
	geocoder validation.GeocodeVerifier,
	contacts validation.ContactVerifier,
	images validation.ImageSourcer,
	cfg config.EnrichmentConfig,
	logger *slog.Logger,
) *ServiceImpl {
	return &ServiceImpl{
		logger:     logger,
		classifier: classifier,
		places:     placesSvc,
		aiClient:   aiClient,
		urlChecker: urlChecker,
		geocoder:   geocoder,
		contacts:   contacts,
		images:     images,
		cfg:        cfg,
	}
}

// locationHintPattern pulls the destination out of phrasings like
// "restaurants in Tokyo" or "hotels near the Eiffel Tower".
var locationHintPattern = regexp.MustCompile(`(?i)(?:in|at|near)\s+([A-Za-z\s]+?)(?:$|[.,!?])`)

func extractLocationHint(message string) string {
	m := locationHintPattern.FindStringSubmatch(message)
	if m == nil {
		return ""
	}
	return strings.TrimSpace(m[1])
}

// Chat answers one user message. For location queries it retrieves and
// verifies real place data before asking the model, then substitutes the
// model's placeholder tokens with verified values.
func (s *ServiceImpl) Chat(ctx context.Context, req types.ChatRequest) (types.EnrichmentResult, error) {
	ctx, span := otel.Tracer("EnrichService").Start(ctx, "Chat", trace.WithAttributes(
		attribute.Int("message.length", len(req.Message)),
	))
	defer span.End()

	start := time.Now()
	defer func() {
		metrics.Get().EnrichmentRequestsTotal.Add(ctx, 1)
		metrics.Get().EnrichmentDurationSeconds.Record(ctx, time.Since(start).Seconds())
	}()

	l := s.logger.With(slog.String("method", "Chat"))

	classification := s.classifier.Classify(req.Message)
	span.SetAttributes(attribute.Bool("location_query", classification.IsLocationQuery))

	var enriched []types.EnrichedPlace
	if classification.IsLocationQuery {
		enriched = s.retrieveAndVerify(ctx, req.Message)
	}

	candidates := make([]types.PlaceCandidate, len(enriched))
	for i, p := range enriched {
		candidates[i] = p.PlaceCandidate
	}

	answer, err := s.aiClient.GenerateResponse(ctx, req.Message, req.History, candidates)
	if err != nil {
		metrics.Get().ProviderErrorsTotal.Add(ctx, 1)
		span.RecordError(err)
		span.SetStatus(codes.Error, "Chat model unreachable")
		return types.EnrichmentResult{}, err
	}

	final := SubstituteTokens(answer, enriched)

	l.InfoContext(ctx, "Chat answered",
		slog.Bool("location_query", classification.IsLocationQuery),
		slog.Int("places_found", len(enriched)))
	span.SetStatus(codes.Ok, "Chat completed")

	return types.EnrichmentResult{
		FinalHTML:   final,
		PlacesFound: len(enriched),
		Enhanced:    len(enriched) > 0,
		Places:      enriched,
	}, nil
}

// retrieveAndVerify fetches place candidates and runs the verification
// pipeline over them. It fails open: any provider outage returns however
// many places were verified, possibly none.
func (s *ServiceImpl) retrieveAndVerify(ctx context.Context, message string) []types.EnrichedPlace {
	ctx, span := otel.Tracer("EnrichService").Start(ctx, "retrieveAndVerify")
	defer span.End()

	l := s.logger.With(slog.String("method", "retrieveAndVerify"))

	hint := extractLocationHint(message)
	candidates, err := s.places.Search(ctx, message, hint, s.cfg.MaxRadiusMeters)
	if err != nil {
		metrics.Get().ProviderErrorsTotal.Add(ctx, 1)
		l.WarnContext(ctx, "Place retrieval failed, answering without location data", slog.Any("error", err))
		span.RecordError(err)
		return nil
	}
	metrics.Get().PlacesRetrievedTotal.Add(ctx, int64(len(candidates)))
	span.SetAttributes(attribute.Int("candidates", len(candidates)))

	workerCap := int64(s.cfg.WorkerCap)
	if workerCap < 1 {
		workerCap = 1
	}
	sem := semaphore.NewWeighted(workerCap)

	type ranked struct {
		index int
		place types.EnrichedPlace
	}

	var mu sync.Mutex
	var survivors []ranked

	g, gctx := errgroup.WithContext(ctx)
	for i, candidate := range candidates {
		if err := sem.Acquire(gctx, 1); err != nil {
			break
		}
		g.Go(func() error {
			defer sem.Release(1)

			place, score := s.verify(gctx, candidate)
			if score < s.cfg.ConfidenceThreshold {
				metrics.Get().PlacesFilteredTotal.Add(gctx, 1)
				l.InfoContext(gctx, "Dropping low-confidence place",
					slog.String("place", candidate.Name),
					slog.Float64("score", score))
				return nil
			}

			mu.Lock()
			survivors = append(survivors, ranked{index: i, place: place})
			mu.Unlock()
			return nil
		})
	}
	// Verification errors degrade scores instead of propagating, so the
	// group never returns one.
	_ = g.Wait()

	sort.Slice(survivors, func(a, b int) bool { return survivors[a].index < survivors[b].index })

	enriched := make([]types.EnrichedPlace, len(survivors))
	for i, r := range survivors {
		enriched[i] = r.place
	}

	span.SetAttributes(attribute.Int("survivors", len(enriched)))
	span.SetStatus(codes.Ok, "Verification completed")
	return enriched
}

// verify runs the four verification checks for one candidate concurrently
// and folds them into a confidence score.
func (s *ServiceImpl) verify(ctx context.Context, candidate types.PlaceCandidate) (types.EnrichedPlace, float64) {
	checkStart := time.Now()

	var (
		urlResult     types.ValidationResult
		coordResult   types.ValidationResult
		contactResult types.ValidationResult
		image         types.ResolvedImage
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		urlResult = s.urlChecker.Check(gctx, candidate.Website, s.cfg.ProbeTimeout)
		return nil
	})
	g.Go(func() error {
		if candidate.Coordinates == nil || candidate.Address == "" {
			coordResult = types.ValidationResult{
				Kind:   types.CheckCoordinate,
				Detail: "no coordinates or address to cross-check",
			}
			return nil
		}
		coordResult = s.geocoder.Verify(gctx, candidate.Address,
			candidate.Coordinates.Latitude, candidate.Coordinates.Longitude,
			s.cfg.CoordinateToleranceMeters)
		return nil
	})
	g.Go(func() error {
		contactResult = s.contacts.Verify(gctx, candidate.Phone, candidate.Website)
		return nil
	})
	g.Go(func() error {
		image = s.images.Source(gctx, candidate)
		return nil
	})
	_ = g.Wait()

	metrics.Get().ValidationDurationSeconds.Record(ctx, time.Since(checkStart).Seconds())

	results := []types.ValidationResult{
		urlResult, coordResult, contactResult, validation.ImageCheckResult(image),
	}
	score := validation.Score(results)

	return types.EnrichedPlace{
		PlaceCandidate: candidate,
		Links:          BuildLinks(candidate, urlResult.Passed),
		Image:          image,
		Confidence:     score,
		Band:           types.BandForScore(score),
	}, score
}
