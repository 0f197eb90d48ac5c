package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jetfriend/jetfriend-api/internal/types"
)

func TestScore_AllChecksPerfect(t *testing.T) {
	results := []types.ValidationResult{
		{Kind: types.CheckURL, Passed: true, SubScore: 1.0},
		{Kind: types.CheckCoordinate, Passed: true, SubScore: 1.0},
		{Kind: types.CheckContact, Passed: true, SubScore: 1.0},
		{Kind: types.CheckImage, Passed: true, SubScore: 1.0},
	}
	assert.InDelta(t, 1.0, Score(results), 1e-9)
}

func TestScore_AllChecksFailed(t *testing.T) {
	results := []types.ValidationResult{
		{Kind: types.CheckURL},
		{Kind: types.CheckCoordinate},
		{Kind: types.CheckContact},
		{Kind: types.CheckImage},
	}
	assert.InDelta(t, 0.0, Score(results), 1e-9)
}

func TestScore_WeightsApplied(t *testing.T) {
	// Only the URL check passes: the total equals its weight.
	results := []types.ValidationResult{
		{Kind: types.CheckURL, Passed: true, SubScore: 1.0},
	}
	assert.InDelta(t, 0.30, Score(results), 1e-9)

	// Coordinate alone.
	assert.InDelta(t, 0.20, Score([]types.ValidationResult{
		{Kind: types.CheckCoordinate, Passed: true, SubScore: 1.0},
	}), 1e-9)

	// Contact alone.
	assert.InDelta(t, 0.20, Score([]types.ValidationResult{
		{Kind: types.CheckContact, Passed: true, SubScore: 1.0},
	}), 1e-9)

	// Image alone.
	assert.InDelta(t, 0.30, Score([]types.ValidationResult{
		{Kind: types.CheckImage, Passed: true, SubScore: 1.0},
	}), 1e-9)
}

func TestScore_MissingChecksContributeNothing(t *testing.T) {
	// A candidate with verified coordinates must never score below an
	// otherwise-identical candidate whose coordinates were never verified.
	base := []types.ValidationResult{
		{Kind: types.CheckURL, Passed: true, SubScore: 1.0},
		{Kind: types.CheckContact, Passed: true, SubScore: 0.5},
	}
	withCoords := append([]types.ValidationResult{}, base...)
	withCoords = append(withCoords, types.ValidationResult{Kind: types.CheckCoordinate, Passed: true, SubScore: 0.8})

	assert.GreaterOrEqual(t, Score(withCoords), Score(base))
}

func TestScore_MonotonicInSubScores(t *testing.T) {
	low := []types.ValidationResult{
		{Kind: types.CheckURL, Passed: true, SubScore: 0.4},
		{Kind: types.CheckCoordinate, Passed: true, SubScore: 0.4},
		{Kind: types.CheckContact, Passed: true, SubScore: 0.4},
		{Kind: types.CheckImage, Passed: true, SubScore: 0.4},
	}
	for i := range low {
		high := make([]types.ValidationResult, len(low))
		copy(high, low)
		high[i].SubScore = 0.9
		assert.Greater(t, Score(high), Score(low), "raising %s must raise the total", low[i].Kind)
	}
}

func TestScore_PartialCredit(t *testing.T) {
	// 0.30*1.0 + 0.20*0 + 0.20*0.5 + 0.30*0.6 = 0.58
	results := []types.ValidationResult{
		{Kind: types.CheckURL, Passed: true, SubScore: 1.0},
		{Kind: types.CheckCoordinate, Passed: false, SubScore: 0},
		{Kind: types.CheckContact, Passed: true, SubScore: 0.5},
		{Kind: types.CheckImage, Passed: true, SubScore: 0.6},
	}
	assert.InDelta(t, 0.58, Score(results), 1e-9)
}

func TestImageCheckResult_TierSubScores(t *testing.T) {
	cases := []struct {
		tier types.ImageTier
		want float64
	}{
		{types.TierProviderPhoto, 1.0},
		{types.TierLicensedWeb, 1.0},
		{types.TierStockFallback, 0.6},
		{types.TierGeneratedFallback, 0.3},
	}
	for _, tc := range cases {
		result := ImageCheckResult(types.ResolvedImage{URL: "https://img.example.com/x.jpg", Tier: tc.tier})
		assert.Equal(t, types.CheckImage, result.Kind)
		assert.True(t, result.Passed)
		assert.InDelta(t, tc.want, result.SubScore, 1e-9, "tier %s", tc.tier)
	}
}

func TestBandForScore_Boundaries(t *testing.T) {
	cases := []struct {
		score float64
		want  types.ScoreBand
	}{
		{1.0, types.BandHigh},
		{0.7, types.BandHigh},
		{0.69, types.BandMedium},
		{0.5, types.BandMedium},
		{0.49, types.BandLow},
		{0.0, types.BandLow},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, types.BandForScore(tc.score), "score %.2f", tc.score)
	}
}
