package types

import "time"

// CheckKind identifies which verifier produced a ValidationResult.
type CheckKind string

const (
	CheckURL        CheckKind = "url"
	CheckCoordinate CheckKind = "coordinate"
	CheckContact    CheckKind = "contact"
	CheckImage      CheckKind = "image"
)

// ValidationResult is a per-candidate, per-check outcome. Results are created
// fresh for every enrichment pass and owned by the scorer that requested them.
type ValidationResult struct {
	Kind     CheckKind `json:"kind"`
	Passed   bool      `json:"passed"`
	SubScore float64   `json:"sub_score"` // normalized to [0,1]
	Detail   string    `json:"detail,omitempty"`

	// URL check diagnostics
	StatusCode int           `json:"status_code,omitempty"`
	Elapsed    time.Duration `json:"elapsed,omitempty"`

	// Coordinate check diagnostics
	DistanceMeters float64 `json:"distance_meters,omitempty"`
}

// ImageTier records which rung of the sourcing fallback chain produced an
// image. Lower tiers carry more trust.
type ImageTier string

const (
	TierProviderPhoto     ImageTier = "provider_photo"
	TierLicensedWeb       ImageTier = "licensed_web"
	TierStockFallback     ImageTier = "stock_fallback"
	TierGeneratedFallback ImageTier = "generated_fallback"
)

// ResolvedImage is the outcome of the image sourcing chain. URL is never
// empty; when every networked tier fails the stock tier answers with a
// generic placeholder and Degraded set.
type ResolvedImage struct {
	URL         string    `json:"url"`
	Tier        ImageTier `json:"source_tier"`
	License     string    `json:"license"`
	Attribution string    `json:"attribution,omitempty"`
	AltText     string    `json:"alt_text,omitempty"`
	Degraded    bool      `json:"degraded,omitempty"`
}
