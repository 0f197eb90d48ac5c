package validation

import (
	"fmt"

	"github.com/jetfriend/jetfriend-api/internal/types"
)

// Check-category weights. They sum to 1.0 so the combined score stays in
// [0,1]. A category with no ValidationResult contributes 0: absence is
// penalized, not ignored.
var checkWeights = map[types.CheckKind]float64{
	types.CheckURL:        0.30,
	types.CheckCoordinate: 0.20,
	types.CheckContact:    0.20,
	types.CheckImage:      0.30,
}

// tierScores maps image sourcing tiers to their sub-score. Provider photos
// and licensed web images carry full trust; stock and generated images are
// progressively discounted.
var tierScores = map[types.ImageTier]float64{
	types.TierProviderPhoto:     1.0,
	types.TierLicensedWeb:       1.0,
	types.TierStockFallback:     0.6,
	types.TierGeneratedFallback: 0.3,
}

// Score combines per-check sub-scores into one normalized confidence score.
// It is a pure function of its inputs: re-scoring the same results always
// yields the same value. When the same check kind appears more than once the
// last result wins.
func Score(results []types.ValidationResult) float64 {
	subScores := make(map[types.CheckKind]float64, len(results))
	for _, r := range results {
		subScores[r.Kind] = r.SubScore
	}

	var total float64
	for kind, weight := range checkWeights {
		total += subScores[kind] * weight
	}
	return total
}

// ImageCheckResult converts a resolved image into the image-kind
// ValidationResult the scorer consumes, scoring it by source tier.
func ImageCheckResult(img types.ResolvedImage) types.ValidationResult {
	detail := fmt.Sprintf("tier %s, license %s", img.Tier, img.License)
	if img.Degraded {
		detail += " (degraded: all sourcing tiers failed)"
	}
	return types.ValidationResult{
		Kind:     types.CheckImage,
		Passed:   img.URL != "",
		SubScore: tierScores[img.Tier],
		Detail:   detail,
	}
}
