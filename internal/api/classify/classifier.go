package classify

import (
	"log/slog"
	"strings"

	"github.com/jetfriend/jetfriend-api/internal/types"
)

// Ensure implementation satisfies the interface
var _ Service = (*ServiceImpl)(nil)

// Service decides whether a user message is a location-seeking travel query.
type Service interface {
	Classify(message string) types.QueryClassification
}

type ServiceImpl struct {
	logger *slog.Logger
}

func NewServiceImpl(logger *slog.Logger) *ServiceImpl {
	return &ServiceImpl{logger: logger}
}

// categoryStems lists the keyword stems tested for each category. The slice
// order is the category priority: trip-planning phrasing frequently also
// contains generic verbs ("see", "visit"), so higher-signal categories must
// be checked first. Within a category the first matching stem is recorded.
var categoryStems = []struct {
	category types.QueryCategory
	stems    []string
}{
	{types.CategoryTripPlanning, []string{
		"trip", "itinerary", "vacation", "holiday", "getaway", "travel",
		"journey", "plan", "weekend", "week", "day",
	}},
	{types.CategoryLodging, []string{
		"hotel", "hostel", "resort", "accommodation", "lodging", "lodge",
		"inn", "motel", "villa", "airbnb", "where to stay", "stay",
	}},
	{types.CategoryDining, []string{
		"restaurant", "food", "eat", "dine", "dining", "cuisine",
		"breakfast", "lunch", "dinner", "brunch", "coffee", "dessert",
		"cafe", "bar", "pub", "brewery", "winery", "drink",
	}},
	{types.CategoryAttractions, []string{
		"attraction", "museum", "park", "beach", "gallery", "zoo",
		"aquarium", "castle", "palace", "cathedral", "temple", "shrine",
		"monument", "landmark", "things to do", "activity", "activities",
		"sight", "sightseeing", "tour", "excursion", "adventure",
		"experience",
	}},
	{types.CategoryTransportation, []string{
		"airport", "station", "train", "bus", "metro", "subway", "taxi",
		"uber", "ferry", "cruise", "transport", "transit", "terminal",
	}},
	{types.CategoryGeneric, []string{
		"visit", "see", "explore", "discover", "near me", "nearby",
		"hidden gems", "best places", "must see", "local", "where",
	}},
}

// Classify inspects the message and returns whether it seeks real-world
// place data, along with the matched category. Total over all input: an
// empty or unmatched message simply classifies as not a location query.
func (s *ServiceImpl) Classify(message string) types.QueryClassification {
	tokens, padded := normalize(message)
	if len(tokens) == 0 {
		return types.QueryClassification{}
	}

	for _, cs := range categoryStems {
		for _, stem := range cs.stems {
			if matches(stem, tokens, padded) {
				s.logger.Debug("Classified location query",
					slog.String("category", string(cs.category)),
					slog.String("stem", stem))
				return types.QueryClassification{
					IsLocationQuery: true,
					Category:        cs.category,
					MatchedStem:     stem,
				}
			}
		}
	}
	return types.QueryClassification{}
}

// normalize case-folds the message, strips punctuation, and returns both the
// token list and a space-padded form for phrase stems.
func normalize(message string) ([]string, string) {
	lower := strings.ToLower(message)
	cleaned := strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			return r
		}
		return ' '
	}, lower)
	tokens := strings.Fields(cleaned)
	return tokens, " " + strings.Join(tokens, " ") + " "
}

// matches tests a stem against the normalized message. Multi-word stems are
// matched as phrases; single-word stems must land on a token boundary with a
// plural allowance, so "hotel" matches "hotels" but "plan" never matches
// "airplanes".
func matches(stem string, tokens []string, padded string) bool {
	if strings.Contains(stem, " ") {
		return strings.Contains(padded, " "+stem+" ")
	}
	for _, tok := range tokens {
		if tok == stem || tok == stem+"s" {
			return true
		}
	}
	return false
}
