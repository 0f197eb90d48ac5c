package api

import "errors"

// Error taxonomy for the enrichment pipeline. Every external-call failure is
// caught at its own verifier boundary and converted into a failing
// ValidationResult; only the retriever lets these sentinels reach the
// orchestrator.
var (
	// ErrProviderUnavailable signals a network or auth failure talking to an
	// external provider. The orchestrator degrades to the unenriched response.
	ErrProviderUnavailable = errors.New("provider unavailable")

	// ErrGeocodeUnresolvable signals an address the geocoding provider could
	// not resolve at all. Scored as a failed coordinate check, never fatal.
	ErrGeocodeUnresolvable = errors.New("address could not be geocoded")

	// ErrEmptyResult signals a valid provider call with zero matches. Not an
	// error condition for callers; retained for repository diagnostics.
	ErrEmptyResult = errors.New("no matching places")

	// ErrMalformedCandidate signals a provider record missing both name and
	// address. Dropped before scoring.
	ErrMalformedCandidate = errors.New("candidate missing name and address")
)
