package validation

import (
	"context"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/jetfriend/jetfriend-api/internal/types"
)

// Ensure implementation satisfies the interface
var _ ImageSourcer = (*ImageSourcerImpl)(nil)

// ImageSourcer resolves a licensed, attributable photo for a place through
// an ordered fallback chain. It never returns an empty image URL.
type ImageSourcer interface {
	Source(ctx context.Context, place types.PlaceCandidate) types.ResolvedImage
}

// sourceStrategy is one rung of the fallback chain.
type sourceStrategy interface {
	attempt(ctx context.Context, place types.PlaceCandidate) (types.ResolvedImage, bool)
}

type ImageSourcerImpl struct {
	logger     *slog.Logger
	strategies []sourceStrategy
}

func NewImageSourcer(searchRepo ImageSearchRepository, urlChecker URLChecker, probeTimeout time.Duration, logger *slog.Logger) *ImageSourcerImpl {
	return &ImageSourcerImpl{
		logger: logger,
		strategies: []sourceStrategy{
			&providerPhotoStrategy{},
			&licensedWebStrategy{repo: searchRepo, urlChecker: urlChecker, probeTimeout: probeTimeout, logger: logger},
			&stockFallbackStrategy{},
			&generatedFallbackStrategy{},
		},
	}
}

// Source walks the fallback chain and returns the first tier that yields a
// usable image. If no strategy answers (a place with no name, no category
// and no photos) the stock tier's generic placeholder is returned with the
// Degraded flag set.
func (s *ImageSourcerImpl) Source(ctx context.Context, place types.PlaceCandidate) types.ResolvedImage {
	for _, strategy := range s.strategies {
		if img, ok := strategy.attempt(ctx, place); ok {
			return img
		}
	}

	s.logger.WarnContext(ctx, "All image sourcing tiers failed, using generic placeholder",
		slog.String("place", place.Name))
	return types.ResolvedImage{
		URL:         stockImages["default"],
		Tier:        types.TierStockFallback,
		License:     "pexels_license",
		Attribution: "Pexels",
		AltText:     "Travel destination",
		Degraded:    true,
	}
}

// --- Tier 1: photo reference already attached by the place-data provider ---

type providerPhotoStrategy struct{}

func (p *providerPhotoStrategy) attempt(_ context.Context, place types.PlaceCandidate) (types.ResolvedImage, bool) {
	if len(place.PhotoURLs) == 0 {
		return types.ResolvedImage{}, false
	}
	return types.ResolvedImage{
		URL:         place.PhotoURLs[0],
		Tier:        types.TierProviderPhoto,
		License:     "provider_terms",
		Attribution: "Google Maps contributors",
		AltText:     place.Name,
	}, true
}

// --- Tier 2: license-filtered image search ---

type licensedWebStrategy struct {
	repo         ImageSearchRepository
	urlChecker   URLChecker
	probeTimeout time.Duration
	logger       *slog.Logger
}

func (l *licensedWebStrategy) attempt(ctx context.Context, place types.PlaceCandidate) (types.ResolvedImage, bool) {
	if place.Name == "" {
		return types.ResolvedImage{}, false
	}

	query := place.Name
	if place.Address != "" {
		query += " " + place.Address
	}
	switch {
	case place.HasCategory("restaurant", "food"):
		query += " restaurant interior exterior"
	case place.HasCategory("lodging"):
		query += " hotel building"
	case place.HasCategory("tourist_attraction"):
		query += " attraction landmark"
	}

	img, err := l.repo.SearchLicensed(ctx, query)
	if err != nil {
		l.logger.DebugContext(ctx, "Licensed image search unavailable",
			slog.String("place", place.Name), slog.Any("error", err))
		return types.ResolvedImage{}, false
	}

	// An image that is not actually reachable is worse than a stock one.
	if probe := l.urlChecker.Check(ctx, img.URL, l.probeTimeout); !probe.Passed {
		return types.ResolvedImage{}, false
	}
	return *img, true
}

// --- Tier 3: curated stock keyed by category tag ---

// stockImages maps place categories to licensed stock photos, carried over
// from the curated set the service has always shipped with.
var stockImages = map[string]string{
	"restaurant":         "https://images.pexels.com/photos/1581384/pexels-photo-1581384.jpeg?auto=compress&cs=tinysrgb&w=1200",
	"hotel":              "https://images.pexels.com/photos/2067396/pexels-photo-2067396.jpeg?auto=compress&cs=tinysrgb&w=1200",
	"temple":             "https://images.pexels.com/photos/1444424/pexels-photo-1444424.jpeg?auto=compress&cs=tinysrgb&w=1200",
	"shrine":             "https://images.pexels.com/photos/4331617/pexels-photo-4331617.jpeg?auto=compress&cs=tinysrgb&w=1200",
	"tourist_attraction": "https://images.pexels.com/photos/4022092/pexels-photo-4022092.jpeg?auto=compress&cs=tinysrgb&w=1200",
	"bar":                "https://images.pexels.com/photos/941864/pexels-photo-941864.jpeg?auto=compress&cs=tinysrgb&w=1200",
	"cafe":               "https://images.pexels.com/photos/302899/pexels-photo-302899.jpeg?auto=compress&cs=tinysrgb&w=1200",
	"museum":             "https://images.pexels.com/photos/1263986/pexels-photo-1263986.jpeg?auto=compress&cs=tinysrgb&w=1200",
	"park":               "https://images.pexels.com/photos/1680172/pexels-photo-1680172.jpeg?auto=compress&cs=tinysrgb&w=1200",
	"shopping":           "https://images.pexels.com/photos/1005058/pexels-photo-1005058.jpeg?auto=compress&cs=tinysrgb&w=1200",
	"default":            "https://images.pexels.com/photos/2067396/pexels-photo-2067396.jpeg?auto=compress&cs=tinysrgb&w=1200",
}

// specificPlaceImages overrides the category map for famous landmarks whose
// category tags alone would pick a generic photo.
var specificPlaceImages = map[string]string{
	"kinkaku-ji":      "https://images.pexels.com/photos/4022092/pexels-photo-4022092.jpeg?auto=compress&cs=tinysrgb&w=1200",
	"golden pavilion": "https://images.pexels.com/photos/4022092/pexels-photo-4022092.jpeg?auto=compress&cs=tinysrgb&w=1200",
	"senso-ji":        "https://images.pexels.com/photos/4331617/pexels-photo-4331617.jpeg?auto=compress&cs=tinysrgb&w=1200",
	"todai-ji":        "https://images.pexels.com/photos/1444424/pexels-photo-1444424.jpeg?auto=compress&cs=tinysrgb&w=1200",
	"fushimi inari":   "https://images.pexels.com/photos/4331617/pexels-photo-4331617.jpeg?auto=compress&cs=tinysrgb&w=1200",
}

// categoryAliases folds provider category tags onto stock map keys.
var categoryAliases = map[string]string{
	"food":             "restaurant",
	"meal_takeaway":    "restaurant",
	"night_club":       "bar",
	"lodging":          "hotel",
	"place_of_worship": "temple",
	"store":            "shopping",
	"shopping_mall":    "shopping",
}

type stockFallbackStrategy struct{}

func (s *stockFallbackStrategy) attempt(_ context.Context, place types.PlaceCandidate) (types.ResolvedImage, bool) {
	nameLower := strings.ToLower(place.Name)
	for landmark, imageURL := range specificPlaceImages {
		if strings.Contains(nameLower, landmark) {
			return types.ResolvedImage{
				URL:         imageURL,
				Tier:        types.TierStockFallback,
				License:     "pexels_license",
				Attribution: "Pexels",
				AltText:     place.Name,
			}, true
		}
	}

	for _, tag := range place.Categories {
		key := tag
		if alias, ok := categoryAliases[tag]; ok {
			key = alias
		}
		if imageURL, ok := stockImages[key]; ok {
			return types.ResolvedImage{
				URL:         imageURL,
				Tier:        types.TierStockFallback,
				License:     "pexels_license",
				Attribution: "Pexels",
				AltText:     humanizeTag(key) + " image",
			}, true
		}
	}
	return types.ResolvedImage{}, false
}

func humanizeTag(tag string) string {
	s := strings.ReplaceAll(tag, "_", " ")
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// --- Tier 4: generated image as last resort ---

type generatedFallbackStrategy struct{}

func (g *generatedFallbackStrategy) attempt(_ context.Context, place types.PlaceCandidate) (types.ResolvedImage, bool) {
	if place.Name == "" {
		return types.ResolvedImage{}, false
	}
	prompt := place.Name + " travel photography"
	return types.ResolvedImage{
		URL:         "https://image.pollinations.ai/prompt/" + url.PathEscape(prompt),
		Tier:        types.TierGeneratedFallback,
		License:     "generated",
		Attribution: "AI generated image",
		AltText:     place.Name,
	}, true
}
